package views

import (
	"sort"
	"strings"
	"time"

	"github.com/daliphone/money-marketing-room/internal/models"
	"github.com/daliphone/money-marketing-room/internal/schedule"
)

// TableRow is one line of the full-table and planning-pool listings.
type TableRow struct {
	Row       int    `json:"row"`
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Platforms string `json:"platforms"`
	Formats   string `json:"formats"`
	Start     string `json:"start"`
	End       string `json:"end"`
	CycleMode string `json:"cycle_mode"`
	Weekdays  string `json:"weekdays"`
	Note      string `json:"note"`
	Owner     string `json:"owner"`
	Link      string `json:"link,omitempty"`
	Status    string `json:"status"`
	// DateIssue is set when the row is left out of date-based views.
	DateIssue string `json:"date_issue,omitempty"`
}

func Table(records []models.ScheduleRecord) []TableRow {
	rows := make([]TableRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, TableRow{
			Row:       r.Row,
			Kind:      string(r.Kind),
			Name:      r.Name,
			Platforms: schedule.JoinSet(r.Platforms),
			Formats:   schedule.JoinSet(r.Formats),
			Start:     displayDate(r.StartDate, r.RawStart),
			End:       displayDate(r.EndDate, r.RawEnd),
			CycleMode: string(r.CycleMode),
			Weekdays:  schedule.JoinSet(r.Weekdays),
			Note:      r.Note,
			Owner:     r.Owner,
			Link:      r.Link,
			Status:    statusLabel(r),
			DateIssue: dateIssue(r),
		})
	}
	return rows
}

// TimelineBar is one bar of the Gantt view.
type TimelineBar struct {
	Row       int    `json:"row"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Status    string `json:"status"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Days      int    `json:"days"`
	Platforms string `json:"platforms"`
	Owner     string `json:"owner"`
}

// Timeline returns the bars overlapping [start, end]. An empty kinds list keeps every kind.
func Timeline(records []models.ScheduleRecord, start, end models.Date, kinds ...models.Kind) []TimelineBar {
	matched := schedule.InRange(records, start, end)
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].StartDate.Equal(matched[j].StartDate) {
			return matched[i].StartDate.Before(matched[j].StartDate)
		}
		return matched[i].Row < matched[j].Row
	})

	bars := []TimelineBar{}
	for _, r := range matched {
		if len(kinds) > 0 && !hasKind(kinds, r.Kind) {
			continue
		}
		bars = append(bars, TimelineBar{
			Row:       r.Row,
			Name:      r.Name,
			Kind:      string(r.Kind),
			Status:    string(r.Status),
			Start:     r.StartDate.String(),
			End:       r.EndDate.String(),
			Days:      r.StartDate.DaysUntil(r.EndDate) + 1,
			Platforms: schedule.JoinSet(r.Platforms),
			Owner:     r.Owner,
		})
	}
	return bars
}

// CalendarEntry is a record shown inside a calendar cell.
type CalendarEntry struct {
	Row    int    `json:"row"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Owner  string `json:"owner"`
}

type CalendarDay struct {
	Date      string          `json:"date"`
	Weekday   string          `json:"weekday"`
	Campaigns []CalendarEntry `json:"campaigns"`
	Recurring []CalendarEntry `json:"recurring"`
}

type CalendarMonth struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Days  []CalendarDay `json:"days"`
}

// Calendar lays out one month: campaigns spanning each day and the recurring
// tasks firing on it, in any status.
func Calendar(records []models.ScheduleRecord, year int, month time.Month) CalendarMonth {
	first := models.NewDate(year, month, 1)
	last := models.NewDate(year, month+1, 1).AddDays(-1)
	inMonth := schedule.InRange(records, first, last)

	cal := CalendarMonth{Year: first.Year(), Month: int(first.Month())}
	for day := first; !day.After(last); day = day.AddDays(1) {
		cell := CalendarDay{
			Date:      day.String(),
			Weekday:   models.WeekdayLabels[day.Weekday()],
			Campaigns: []CalendarEntry{},
			Recurring: []CalendarEntry{},
		}
		for _, r := range inMonth {
			switch r.Kind {
			case models.KindCampaign:
				if r.Covers(day) {
					cell.Campaigns = append(cell.Campaigns, entry(r))
				}
			case models.KindRecurring:
				if schedule.IsDue(r, day) {
					cell.Recurring = append(cell.Recurring, entry(r))
				}
			}
		}
		cal.Days = append(cal.Days, cell)
	}
	return cal
}

func entry(r models.ScheduleRecord) CalendarEntry {
	return CalendarEntry{Row: r.Row, Name: r.Name, Status: string(r.Status), Owner: r.Owner}
}

func hasKind(kinds []models.Kind, k models.Kind) bool {
	for _, want := range kinds {
		if want == k {
			return true
		}
	}
	return false
}

func displayDate(d models.Date, raw string) string {
	if d.Valid() {
		return d.String()
	}
	return raw
}

func dateIssue(r models.ScheduleRecord) string {
	var issues []string
	if !r.StartDate.Valid() {
		issues = append(issues, "invalid start date")
	}
	if !r.EndDate.Valid() {
		issues = append(issues, "invalid end date")
	}
	if len(issues) == 0 && r.StartDate.After(r.EndDate) {
		issues = append(issues, "end date before start date")
	}
	return strings.Join(issues, "; ")
}

// statusLabel shows a closed record by the label written in its cell.
func statusLabel(r models.ScheduleRecord) string {
	if r.Closed {
		return r.RawStatus
	}
	return string(r.Status)
}
