package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/daliphone/money-marketing-room/internal/schedule"
)

var submissions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "board_submissions_total",
		Help: "Form submissions by outcome",
	},
	[]string{"result"},
)

func RegisterMetrics() {
	prometheus.MustRegister(submissions)
}

// RecordHandler handles the submission form
type RecordHandler struct {
	builder *schedule.Builder
	vocab   schedule.Vocabulary
}

// NewRecordHandler creates a new RecordHandler instance
func NewRecordHandler(builder *schedule.Builder, vocab schedule.Vocabulary) *RecordHandler {
	return &RecordHandler{builder: builder, vocab: vocab}
}

// GetOptions returns the choices the form offers
func (h *RecordHandler) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, h.vocab.Options())
}

// CreateRecord validates a submission and appends it to the sheet.
// On failure the submitted input is echoed back so the form can be refilled.
func (h *RecordHandler) CreateRecord(c *gin.Context) {
	var input schedule.Submission
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.builder.Submit(c.Request.Context(), input)
	if err != nil {
		var validationErr *schedule.ValidationError
		if errors.As(err, &validationErr) {
			submissions.WithLabelValues("invalid").Inc()
		} else {
			submissions.WithLabelValues("store_error").Inc()
		}
		respondError(c, err, gin.H{"input": input})
		return
	}

	submissions.WithLabelValues("created").Inc()
	c.JSON(http.StatusCreated, gin.H{
		"message": "Added " + rec.Name + " (" + string(rec.Status) + ")",
		"record":  rec,
	})
}
