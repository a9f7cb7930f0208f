package schedule

import (
	"fmt"
	"strings"

	"golang.org/x/text/width"

	"github.com/daliphone/money-marketing-room/internal/models"
)

// StatusMatch decides how a free-text status cell is read as Executing.
type StatusMatch string

const (
	// MatchLenient treats any cell containing the Executing label as Executing,
	// which tolerates hand-edited annotations such as "執行中 (延長)".
	MatchLenient StatusMatch = "lenient"
	// MatchStrict requires the cell to equal the Executing label.
	MatchStrict StatusMatch = "strict"
)

func ParseStatusMatch(s string) (StatusMatch, error) {
	switch StatusMatch(strings.ToLower(strings.TrimSpace(s))) {
	case MatchLenient, "":
		return MatchLenient, nil
	case MatchStrict:
		return MatchStrict, nil
	}
	return "", fmt.Errorf("unknown status match mode %q", s)
}

// cells that spreadsheet exports use for "nothing here"
var nullPlaceholders = map[string]bool{
	"nan": true, "none": true, "null": true, "nat": true, "<na>": true, "n/a": true,
}

// Normalizer turns raw sheet snapshots into typed records.
type Normalizer struct {
	Match StatusMatch
}

func NewNormalizer(match StatusMatch) *Normalizer {
	return &Normalizer{Match: match}
}

// Normalize coerces every row of table. Only a missing required column is an
// error; bad cells degrade to defaults or the invalid-date sentinel.
func (n *Normalizer) Normalize(table models.Table) ([]models.ScheduleRecord, error) {
	if table.IsEmpty() {
		return []models.ScheduleRecord{}, nil
	}

	var missing []string
	for _, col := range []string{models.ColName, models.ColKind} {
		if !table.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	hasStatus := table.HasColumn(models.ColStatus)

	records := make([]models.ScheduleRecord, 0, len(table.Rows))
	for i, row := range table.Rows {
		records = append(records, n.record(i, row, hasStatus))
	}
	return records, nil
}

func (n *Normalizer) record(pos int, row map[string]string, hasStatus bool) models.ScheduleRecord {
	rec := models.ScheduleRecord{
		Row:       pos,
		Kind:      ParseKind(row[models.ColKind]),
		Name:      clean(row[models.ColName]),
		Platforms: SplitSet(row[models.ColPlatforms]),
		Formats:   SplitSet(row[models.ColFormats]),
		Note:      clean(row[models.ColNote]),
		Owner:     clean(row[models.ColOwner]),
		Link:      nullToEmpty(clean(row[models.ColLink])),
		RawStart:  clean(row[models.ColStart]),
		RawEnd:    clean(row[models.ColEnd]),
		RawStatus: clean(row[models.ColStatus]),
	}
	rec.Name = nullToEmpty(rec.Name)
	rec.Note = nullToEmpty(rec.Note)
	rec.Owner = nullToEmpty(rec.Owner)

	rec.StartDate = models.ParseDate(fold(rec.RawStart))
	rec.EndDate = models.ParseDate(fold(rec.RawEnd))

	weekdays := SplitSet(row[models.ColWeekdays])
	rec.CycleMode = parseCycleMode(row[models.ColCycle], weekdays)
	if rec.CycleMode == models.CycleWeekly {
		rec.Weekdays = weekdays
	} else {
		rec.Weekdays = []string{}
	}

	rec.Status, rec.Closed = n.status(row[models.ColStatus], hasStatus)
	return rec
}

// status applies the rule table: absent column → Executing, blank cell →
// Planning, otherwise the configured match against the two labels. Any other
// label reads as Planning with closed set.
func (n *Normalizer) status(raw string, hasColumn bool) (models.Status, bool) {
	if !hasColumn {
		return models.StatusExecuting, false
	}
	s := fold(raw)
	if s == "" || nullPlaceholders[strings.ToLower(s)] {
		return models.StatusPlanning, false
	}

	switch {
	case n.matches(s, models.StatusExecuting):
		return models.StatusExecuting, false
	case n.matches(s, models.StatusPlanning):
		return models.StatusPlanning, false
	}
	return models.StatusPlanning, true
}

func (n *Normalizer) matches(cell string, label models.Status) bool {
	if n.Match == MatchStrict {
		return cell == string(label)
	}
	return strings.Contains(cell, string(label))
}

// ParseKind reads a kind label, tolerating the form's long labels
// ("行銷案 (單次活動)").
func ParseKind(raw string) models.Kind {
	s := fold(raw)
	switch {
	case s == "":
		return models.KindUnknown
	case strings.Contains(s, string(models.KindCampaign)):
		return models.KindCampaign
	case strings.Contains(s, string(models.KindRecurring)):
		return models.KindRecurring
	}
	return models.KindUnknown
}

// parseCycleMode reads the mode label. Unknown labels are inferred from the
// weekday column; WeeklyOn without any weekday degrades to Once.
func parseCycleMode(raw string, weekdays []string) models.CycleMode {
	s := fold(raw)
	var mode models.CycleMode
	switch {
	case s == string(models.CycleOnce):
		mode = models.CycleOnce
	case strings.Contains(s, string(models.CycleDaily)):
		mode = models.CycleDaily
	case strings.HasPrefix(s, "重覆"), strings.HasPrefix(s, "重複"), strings.Contains(s, "特定星期"):
		mode = models.CycleWeekly
	case contains(weekdays, string(models.CycleDaily)):
		mode = models.CycleDaily
	case len(knownWeekdays(weekdays)) > 0:
		mode = models.CycleWeekly
	default:
		mode = models.CycleOnce
	}

	if mode == models.CycleWeekly && len(weekdays) == 0 {
		return models.CycleOnce
	}
	return mode
}

func knownWeekdays(tokens []string) []string {
	var out []string
	for _, t := range tokens {
		if contains(models.WeekdayOrder, t) {
			out = append(out, t)
		}
	}
	return out
}

// SplitSet splits a comma-joined cell into trimmed, non-empty, unique tokens.
// Full-width and ideographic commas count as separators.
func SplitSet(raw string) []string {
	s := fold(raw)
	if nullPlaceholders[strings.ToLower(s)] {
		return []string{}
	}
	s = strings.ReplaceAll(s, "、", ",")

	out := []string{}
	seen := map[string]bool{}
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}

// JoinSet is the inverse of SplitSet for writing back to the sheet.
func JoinSet(items []string) string {
	return strings.Join(items, ", ")
}

func clean(s string) string {
	return strings.TrimSpace(s)
}

// fold maps full-width characters typed into the sheet to their narrow forms.
func fold(s string) string {
	return strings.TrimSpace(width.Fold.String(s))
}

func nullToEmpty(s string) string {
	if nullPlaceholders[strings.ToLower(s)] {
		return ""
	}
	return s
}
