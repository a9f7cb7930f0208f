package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/daliphone/money-marketing-room/internal/models"
	"github.com/daliphone/money-marketing-room/internal/schedule"
	"github.com/daliphone/money-marketing-room/internal/views"
)

// DashboardHandler serves the read-only views of the schedule
type DashboardHandler struct {
	board *schedule.Board
}

// NewDashboardHandler creates a new DashboardHandler instance
func NewDashboardHandler(board *schedule.Board) *DashboardHandler {
	return &DashboardHandler{board: board}
}

// GetToday returns the recurring tasks due and the campaigns running on a date.
// Query Params: date (optional, defaults to today)
func (h *DashboardHandler) GetToday(c *gin.Context) {
	today, ok := dateParam(c, "date", h.board.Today())
	if !ok {
		return
	}

	v, err := h.board.Views(c.Request.Context(), today)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"today":            v.Today,
		"today_label":      v.TodayLabel,
		"due_today":        v.DueToday,
		"active_campaigns": v.ActiveCampaigns,
	})
}

// GetPlanning returns the planning pool (drafts awaiting promotion)
func (h *DashboardHandler) GetPlanning(c *gin.Context) {
	records, err := h.board.Records(c.Request.Context())
	if err != nil {
		respondError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": views.Table(schedule.PlanningPool(records))})
}

// GetArchived returns executing records whose window has closed
func (h *DashboardHandler) GetArchived(c *gin.Context) {
	today, ok := dateParam(c, "date", h.board.Today())
	if !ok {
		return
	}

	records, err := h.board.Records(c.Request.Context())
	if err != nil {
		respondError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": views.Table(schedule.Archived(records, today))})
}

// GetRecords returns the full, unfiltered listing
func (h *DashboardHandler) GetRecords(c *gin.Context) {
	records, err := h.board.Records(c.Request.Context())
	if err != nil {
		respondError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": views.Table(records),
		"meta": gin.H{"total": len(records)},
	})
}

// GetTimeline returns Gantt bars overlapping a date range.
// Query Params: start, end (default: the current year), kind (campaign by default, or "recurring", "all")
func (h *DashboardHandler) GetTimeline(c *gin.Context) {
	today := h.board.Today()
	start, ok := dateParam(c, "start", models.NewDate(today.Year(), time.January, 1))
	if !ok {
		return
	}
	end, ok := dateParam(c, "end", models.NewDate(today.Year(), time.December, 31))
	if !ok {
		return
	}
	if start.After(end) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must not be after end"})
		return
	}

	var kinds []models.Kind
	switch strings.ToLower(c.DefaultQuery("kind", "campaign")) {
	case "campaign", string(models.KindCampaign):
		kinds = []models.Kind{models.KindCampaign}
	case "recurring", string(models.KindRecurring):
		kinds = []models.Kind{models.KindRecurring}
	case "all":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be campaign, recurring or all"})
		return
	}

	records, err := h.board.Records(c.Request.Context())
	if err != nil {
		respondError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"start": start,
		"end":   end,
		"today": today,
		"data":  views.Timeline(records, start, end, kinds...),
	})
}

// GetCalendar returns a month grid.
// Query Params: month (YYYY-MM, defaults to the current month)
func (h *DashboardHandler) GetCalendar(c *gin.Context) {
	today := h.board.Today()
	year, month := today.Year(), today.Month()

	if raw := c.Query("month"); raw != "" {
		t, err := time.Parse("2006-01", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month, expected YYYY-MM"})
			return
		}
		year, month = t.Year(), t.Month()
	}

	records, err := h.board.Records(c.Request.Context())
	if err != nil {
		respondError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, views.Calendar(records, year, month))
}
