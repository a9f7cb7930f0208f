package schedule

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/daliphone/money-marketing-room/internal/models"
)

// Submission is the raw input of the "new activity" form.
type Submission struct {
	Status        string   `json:"status"`
	Kind          string   `json:"kind"`
	Name          string   `json:"name"`
	Owner         string   `json:"owner"`
	Link          string   `json:"link"`
	Platforms     []string `json:"platforms"`
	OtherPlatform string   `json:"other_platform"`
	Formats       []string `json:"formats"`
	CycleMode     string   `json:"cycle_mode"`
	Weekdays      []string `json:"weekdays"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	Note          string   `json:"note"`
}

// Appender is the slice of the store the builder writes through.
type Appender interface {
	Append(ctx context.Context, row map[string]string) error
}

// Builder validates submissions and appends them to the sheet.
type Builder struct {
	store        Appender
	clock        Clock
	vocab        Vocabulary
	recurringEnd models.Date
}

// NewBuilder creates a builder. recurringEnd is the default end date of
// Daily and WeeklyOn records.
func NewBuilder(store Appender, clock Clock, vocab Vocabulary, recurringEnd models.Date) *Builder {
	return &Builder{store: store, clock: clock, vocab: vocab, recurringEnd: recurringEnd}
}

// Submit validates sub and appends it. Nothing is written when validation fails.
func (b *Builder) Submit(ctx context.Context, sub Submission) (models.ScheduleRecord, error) {
	rec, err := b.Build(sub)
	if err != nil {
		return models.ScheduleRecord{}, err
	}
	if err := b.store.Append(ctx, Row(rec)); err != nil {
		slog.Error("append failed", "name", rec.Name, "error", err)
		return models.ScheduleRecord{}, err
	}
	return rec, nil
}

// Build checks sub in order, first failure wins, and assembles the record.
func (b *Builder) Build(sub Submission) (models.ScheduleRecord, error) {
	// 1. Name
	name := strings.TrimSpace(sub.Name)
	if name == "" {
		return models.ScheduleRecord{}, invalid("name", "missing name")
	}

	// 2. Weekdays for WeeklyOn
	mode, modeOK := parseSubmittedCycle(sub.CycleMode)
	weekdays := cleanList(sub.Weekdays)
	if modeOK && mode == models.CycleWeekly && len(weekdays) == 0 {
		return models.ScheduleRecord{}, invalid("weekdays", "missing weekdays")
	}

	// 3. Labels
	if !modeOK {
		return models.ScheduleRecord{}, invalid("cycle_mode", "unknown cycle mode: "+sub.CycleMode)
	}
	kind := models.KindCampaign
	if strings.TrimSpace(sub.Kind) != "" {
		kind = ParseKind(sub.Kind)
		if kind == models.KindUnknown {
			return models.ScheduleRecord{}, invalid("kind", "unknown kind: "+sub.Kind)
		}
	}
	status, ok := parseSubmittedStatus(sub.Status)
	if !ok {
		return models.ScheduleRecord{}, invalid("status", "unknown status: "+sub.Status)
	}

	// 4. Sets
	if mode == models.CycleWeekly {
		for _, w := range weekdays {
			if !contains(models.WeekdayOrder, w) {
				return models.ScheduleRecord{}, invalid("weekdays", "unknown weekday: "+w)
			}
		}
		weekdays = inOrder(models.WeekdayOrder, weekdays)
	} else {
		weekdays = []string{}
	}

	formats := cleanList(sub.Formats)
	for _, f := range formats {
		if !b.vocab.HasFormat(f) {
			return models.ScheduleRecord{}, invalid("formats", "unknown format: "+f)
		}
	}
	formats = inOrder(b.vocab.Formats, formats)

	platforms := cleanList(sub.Platforms)
	for _, p := range platforms {
		if !b.vocab.HasPlatform(p) {
			return models.ScheduleRecord{}, invalid("platforms", "unknown platform: "+p)
		}
	}
	platforms = inOrder(b.vocab.Platforms, platforms)
	if other := strings.TrimSpace(sub.OtherPlatform); other != "" && !contains(platforms, other) {
		platforms = append(platforms, other)
	}

	// 5. Dates
	today := Today(b.clock)
	start, end := today, today
	if mode != models.CycleOnce {
		end = b.recurringEnd
	}
	if s := strings.TrimSpace(sub.StartDate); s != "" {
		if start = models.ParseDate(s); !start.Valid() {
			return models.ScheduleRecord{}, invalid("start_date", "invalid start date")
		}
	}
	if s := strings.TrimSpace(sub.EndDate); s != "" {
		if end = models.ParseDate(s); !end.Valid() {
			return models.ScheduleRecord{}, invalid("end_date", "invalid end date")
		}
	}
	if start.After(end) {
		return models.ScheduleRecord{}, invalid("end_date", "end date before start date")
	}

	// 6. Link
	link := strings.TrimSpace(sub.Link)
	if link != "" {
		u, err := url.Parse(link)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return models.ScheduleRecord{}, invalid("link", "invalid link")
		}
	}

	return models.ScheduleRecord{
		Row:       -1,
		Kind:      kind,
		Name:      name,
		Platforms: platforms,
		Formats:   formats,
		StartDate: start,
		EndDate:   end,
		CycleMode: mode,
		Weekdays:  weekdays,
		Note:      strings.TrimSpace(sub.Note),
		Owner:     strings.TrimSpace(sub.Owner),
		Link:      link,
		Status:    status,
	}, nil
}

// Row renders a record as sheet cells.
func Row(rec models.ScheduleRecord) map[string]string {
	weekdays := ""
	switch rec.CycleMode {
	case models.CycleDaily:
		// the sheet has always carried 每日 here for daily posts
		weekdays = string(models.CycleDaily)
	case models.CycleWeekly:
		weekdays = JoinSet(rec.Weekdays)
	}

	return map[string]string{
		models.ColKind:      string(rec.Kind),
		models.ColName:      rec.Name,
		models.ColPlatforms: JoinSet(rec.Platforms),
		models.ColFormats:   JoinSet(rec.Formats),
		models.ColStart:     rec.StartDate.String(),
		models.ColEnd:       rec.EndDate.String(),
		models.ColCycle:     string(rec.CycleMode),
		models.ColWeekdays:  weekdays,
		models.ColNote:      rec.Note,
		models.ColOwner:     rec.Owner,
		models.ColLink:      rec.Link,
		models.ColStatus:    string(rec.Status),
	}
}

// parseSubmittedCycle accepts the three mode labels; blank means Once.
func parseSubmittedCycle(raw string) (models.CycleMode, bool) {
	s := fold(raw)
	switch {
	case s == "", s == string(models.CycleOnce):
		return models.CycleOnce, true
	case s == string(models.CycleDaily):
		return models.CycleDaily, true
	case s == string(models.CycleWeekly), strings.HasPrefix(s, "重覆"), strings.HasPrefix(s, "重複"):
		return models.CycleWeekly, true
	}
	return "", false
}

// parseSubmittedStatus accepts the bare labels and the form's long labels
// ("企畫中 (草案)"); blank means Planning.
func parseSubmittedStatus(raw string) (models.Status, bool) {
	s := fold(raw)
	if s == "" {
		return models.StatusPlanning, true
	}
	head := strings.Fields(s)[0]
	switch models.Status(head) {
	case models.StatusPlanning:
		return models.StatusPlanning, true
	case models.StatusExecuting:
		return models.StatusExecuting, true
	}
	return "", false
}

func cleanList(items []string) []string {
	out := []string{}
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}

// inOrder returns the members of picked following the order of ref, without duplicates.
func inOrder(ref, picked []string) []string {
	out := []string{}
	for _, r := range ref {
		if contains(picked, r) {
			out = append(out, r)
		}
	}
	return out
}
