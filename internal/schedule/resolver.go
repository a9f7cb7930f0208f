package schedule

import (
	"github.com/daliphone/money-marketing-room/internal/models"
)

// CampaignProgress is an active campaign with its countdown.
type CampaignProgress struct {
	Record        models.ScheduleRecord `json:"record"`
	DaysRemaining int                   `json:"days_remaining"`
	// Progress is the elapsed share of the window in [0, 1].
	Progress float64 `json:"progress"`
}

// Views is everything the dashboard derives for one reference date.
type Views struct {
	Today           models.Date             `json:"today"`
	TodayLabel      string                  `json:"today_label"`
	DueToday        []models.ScheduleRecord `json:"due_today"`
	ActiveCampaigns []CampaignProgress      `json:"active_campaigns"`
	PlanningPool    []models.ScheduleRecord `json:"planning_pool"`
	Archived        []models.ScheduleRecord `json:"archived"`
	All             []models.ScheduleRecord `json:"all"`
}

// Resolve classifies records against today. It never mutates its input and
// returns the same result for the same arguments.
func Resolve(records []models.ScheduleRecord, today models.Date) Views {
	return Views{
		Today:           today,
		TodayLabel:      models.WeekdayLabels[today.Weekday()],
		DueToday:        DueToday(records, today),
		ActiveCampaigns: ActiveCampaigns(records, today),
		PlanningPool:    PlanningPool(records),
		Archived:        Archived(records, today),
		All:             append([]models.ScheduleRecord{}, records...),
	}
}

// DueToday returns the executing recurring records that fire on today.
func DueToday(records []models.ScheduleRecord, today models.Date) []models.ScheduleRecord {
	out := []models.ScheduleRecord{}
	for _, r := range records {
		if r.Status != models.StatusExecuting || r.Kind != models.KindRecurring {
			continue
		}
		if IsDue(r, today) {
			out = append(out, r)
		}
	}
	return out
}

// IsDue reports whether a recurring record has a task on day, ignoring status.
func IsDue(r models.ScheduleRecord, day models.Date) bool {
	if r.Kind != models.KindRecurring || !dated(r) || !r.Covers(day) {
		return false
	}
	return r.FiresOn(day)
}

// ActiveCampaigns returns the executing campaigns whose window contains today.
func ActiveCampaigns(records []models.ScheduleRecord, today models.Date) []CampaignProgress {
	out := []CampaignProgress{}
	for _, r := range records {
		if r.Status != models.StatusExecuting || r.Kind != models.KindCampaign {
			continue
		}
		if !dated(r) || !r.Covers(today) {
			continue
		}
		out = append(out, CampaignProgress{
			Record:        r,
			DaysRemaining: today.DaysUntil(r.EndDate),
			Progress:      Progress(r.StartDate, r.EndDate, today),
		})
	}
	return out
}

// Progress is (today - start) / (end - start) clamped to [0, 1].
// A one-day window counts as complete.
func Progress(start, end, today models.Date) float64 {
	total := start.DaysUntil(end)
	if total <= 0 {
		return 1
	}
	p := float64(start.DaysUntil(today)) / float64(total)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// PlanningPool returns every draft, whatever its dates. Closed records are
// left to the full listing.
func PlanningPool(records []models.ScheduleRecord) []models.ScheduleRecord {
	out := []models.ScheduleRecord{}
	for _, r := range records {
		if r.Status == models.StatusPlanning && !r.Closed {
			out = append(out, r)
		}
	}
	return out
}

// Archived returns executing records whose window ended before today.
func Archived(records []models.ScheduleRecord, today models.Date) []models.ScheduleRecord {
	out := []models.ScheduleRecord{}
	for _, r := range records {
		if r.Status != models.StatusExecuting || !dated(r) {
			continue
		}
		if r.EndDate.Before(today) {
			out = append(out, r)
		}
	}
	return out
}

// InRange returns records whose window overlaps [start, end], both ends
// inclusive, regardless of status.
func InRange(records []models.ScheduleRecord, start, end models.Date) []models.ScheduleRecord {
	out := []models.ScheduleRecord{}
	if !start.Valid() || !end.Valid() || start.After(end) {
		return out
	}
	for _, r := range records {
		if !dated(r) {
			continue
		}
		if !r.StartDate.After(end) && !r.EndDate.Before(start) {
			out = append(out, r)
		}
	}
	return out
}

// dated reports whether a record may take part in date-based views.
// Rows with unparseable or inverted dates, or no name, only show up in the listing.
func dated(r models.ScheduleRecord) bool {
	return r.Name != "" && r.HasValidWindow()
}
