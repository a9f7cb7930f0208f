package models

import "time"

// Kind separates one-off campaigns from periodic posting tasks.
type Kind string

const (
	KindUnknown   Kind = ""
	KindCampaign  Kind = "行銷案"
	KindRecurring Kind = "常態"
)

// CycleMode governs recurrence inside the active window.
type CycleMode string

const (
	CycleOnce   CycleMode = "單次"
	CycleDaily  CycleMode = "每日"
	CycleWeekly CycleMode = "重覆 (特定星期)"
)

// Status is the lifecycle flag. Only humans move a record between states,
// by editing the sheet directly.
type Status string

const (
	StatusPlanning  Status = "企畫中"
	StatusExecuting Status = "執行中"
)

// Column names of the backing sheet.
const (
	ColKind      = "類型"
	ColName      = "活動名稱"
	ColPlatforms = "刊登平台"
	ColFormats   = "呈現形式"
	ColStart     = "開始日期"
	ColEnd       = "結束日期"
	ColCycle     = "週期模式"
	ColWeekdays  = "重複星期"
	ColNote      = "文案重點"
	ColOwner     = "負責人"
	ColLink      = "相關連結"
	ColStatus    = "活動狀態"
)

// Columns is the canonical column order used when a sheet is created from scratch.
var Columns = []string{
	ColKind, ColName, ColPlatforms, ColFormats, ColStart, ColEnd,
	ColCycle, ColWeekdays, ColNote, ColOwner, ColLink, ColStatus,
}

// WeekdayLabels maps time.Weekday to the literal label stored in the sheet.
var WeekdayLabels = map[time.Weekday]string{
	time.Monday:    "每週一",
	time.Tuesday:   "每週二",
	time.Wednesday: "每週三",
	time.Thursday:  "每週四",
	time.Friday:    "每週五",
	time.Saturday:  "每週六",
	time.Sunday:    "每週日",
}

// WeekdayOrder lists the labels Monday first, the way the form offers them.
var WeekdayOrder = []string{"每週一", "每週二", "每週三", "每週四", "每週五", "每週六", "每週日"}

// ScheduleRecord is one normalized row of the schedule sheet.
type ScheduleRecord struct {
	// Row is the 0-based position in the backing sheet; it is the only identity a record has.
	Row int `json:"row"`

	Kind      Kind      `json:"kind"`
	Name      string    `json:"name"`
	Platforms []string  `json:"platforms"`
	Formats   []string  `json:"formats"`
	StartDate Date      `json:"start_date"`
	EndDate   Date      `json:"end_date"`
	CycleMode CycleMode `json:"cycle_mode"`
	Weekdays  []string  `json:"weekdays"`
	Note      string    `json:"note"`
	Owner     string    `json:"owner"`
	Link      string    `json:"link"`
	Status    Status    `json:"status"`
	// Closed marks a status cell carrying a label other than Planning or
	// Executing (e.g. 已結案). Status stays Planning.
	Closed bool `json:"closed,omitempty"`

	// Raw cells kept for the audit listing.
	RawStart  string `json:"raw_start,omitempty"`
	RawEnd    string `json:"raw_end,omitempty"`
	RawStatus string `json:"raw_status,omitempty"`
}

// HasValidWindow reports whether the record can take part in date math:
// both dates parsed and start not after end.
func (r ScheduleRecord) HasValidWindow() bool {
	if !r.StartDate.Valid() || !r.EndDate.Valid() {
		return false
	}
	return !r.StartDate.After(r.EndDate)
}

// Covers reports whether d falls inside [StartDate, EndDate], both ends inclusive.
func (r ScheduleRecord) Covers(d Date) bool {
	if !r.HasValidWindow() || !d.Valid() {
		return false
	}
	return !d.Before(r.StartDate) && !d.After(r.EndDate)
}

// FiresOn reports whether a recurring record is scheduled on d's weekday.
// Weekday matching is literal label membership.
func (r ScheduleRecord) FiresOn(d Date) bool {
	if r.CycleMode == CycleDaily {
		return true
	}
	label := WeekdayLabels[d.Weekday()]
	for _, w := range r.Weekdays {
		if w == label {
			return true
		}
	}
	return false
}
