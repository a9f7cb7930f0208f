package schedule

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/daliphone/money-marketing-room/internal/models"
)

// fakeStore records appended rows instead of writing them anywhere.
type fakeStore struct {
	rows []map[string]string
	err  error
}

func (f *fakeStore) Append(ctx context.Context, row map[string]string) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, row)
	return nil
}

func newTestBuilder(store Appender) *Builder {
	clock := MockClock{MockTime: time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC)}
	return NewBuilder(store, clock, DefaultVocabulary(), date("2026-12-31"))
}

func TestSubmitRejectsWithoutWriting(t *testing.T) {
	tests := []struct {
		name      string
		sub       Submission
		wantField string
		wantMsg   string
	}{
		{
			name:      "Missing name",
			sub:       Submission{Name: "  ", CycleMode: "重覆 (特定星期)"},
			wantField: "name",
			wantMsg:   "missing name",
		},
		{
			name:      "Weekly without weekdays",
			sub:       Submission{Name: "週一新品開箱", CycleMode: "重覆 (特定星期)", Weekdays: []string{}},
			wantField: "weekdays",
			wantMsg:   "missing weekdays",
		},
		{
			name:      "Unknown cycle mode",
			sub:       Submission{Name: "A", CycleMode: "每月"},
			wantField: "cycle_mode",
		},
		{
			name:      "Unknown kind",
			sub:       Submission{Name: "A", Kind: "其他"},
			wantField: "kind",
		},
		{
			name:      "Unknown status",
			sub:       Submission{Name: "A", Status: "已結束"},
			wantField: "status",
		},
		{
			name:      "Unknown weekday",
			sub:       Submission{Name: "A", CycleMode: "重覆 (特定星期)", Weekdays: []string{"Monday"}},
			wantField: "weekdays",
		},
		{
			name:      "Unknown format",
			sub:       Submission{Name: "A", Formats: []string{"直播"}},
			wantField: "formats",
		},
		{
			name:      "Unknown platform",
			sub:       Submission{Name: "A", Platforms: []string{"Myspace"}},
			wantField: "platforms",
		},
		{
			name:      "Bad start date",
			sub:       Submission{Name: "A", StartDate: "06/31/2025"},
			wantField: "start_date",
			wantMsg:   "invalid start date",
		},
		{
			name:      "End before start",
			sub:       Submission{Name: "A", StartDate: "2025-06-10", EndDate: "2025-06-01"},
			wantField: "end_date",
			wantMsg:   "end date before start date",
		},
		{
			name:      "Bad link",
			sub:       Submission{Name: "A", Link: "javascript:alert(1)"},
			wantField: "link",
			wantMsg:   "invalid link",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			_, err := newTestBuilder(store).Submit(context.Background(), tt.sub)

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("Expected ValidationError, got %v", err)
			}
			if validationErr.Field != tt.wantField {
				t.Errorf("Field: Got %q, want %q", validationErr.Field, tt.wantField)
			}
			if tt.wantMsg != "" && validationErr.Reason != tt.wantMsg {
				t.Errorf("Reason: Got %q, want %q", validationErr.Reason, tt.wantMsg)
			}
			if len(store.rows) != 0 {
				t.Errorf("Rejected submission was written: %v", store.rows)
			}
		})
	}
}

func TestSubmitDefaults(t *testing.T) {
	tests := []struct {
		name       string
		sub        Submission
		wantStart  string
		wantEnd    string
		wantKind   models.Kind
		wantStatus models.Status
	}{
		{"Once defaults to today", Submission{Name: "A"}, "2025-06-02", "2025-06-02", models.KindCampaign, models.StatusPlanning},
		{"Daily runs to the recurring end", Submission{Name: "A", Kind: "常態", CycleMode: "每日"}, "2025-06-02", "2026-12-31", models.KindRecurring, models.StatusPlanning},
		{"Long status label", Submission{Name: "A", Status: "執行中 (立即上線)"}, "2025-06-02", "2025-06-02", models.KindCampaign, models.StatusExecuting},
		{"Explicit dates", Submission{Name: "A", StartDate: "2025/06/01", EndDate: "2025-06-10"}, "2025-06-01", "2025-06-10", models.KindCampaign, models.StatusPlanning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := newTestBuilder(&fakeStore{}).Build(tt.sub)
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			if rec.StartDate.String() != tt.wantStart || rec.EndDate.String() != tt.wantEnd {
				t.Errorf("Window: Got %s..%s, want %s..%s", rec.StartDate, rec.EndDate, tt.wantStart, tt.wantEnd)
			}
			if rec.Kind != tt.wantKind {
				t.Errorf("Kind: Got %q, want %q", rec.Kind, tt.wantKind)
			}
			if rec.Status != tt.wantStatus {
				t.Errorf("Status: Got %q, want %q", rec.Status, tt.wantStatus)
			}
		})
	}
}

func TestSubmitAppendsRow(t *testing.T) {
	store := &fakeStore{}
	rec, err := newTestBuilder(store).Submit(context.Background(), Submission{
		Status:        "執行中",
		Kind:          "常態",
		Name:          " 週末 LINE 推播 ",
		Owner:         "Amy",
		Link:          "https://example.com/brief",
		Platforms:     []string{"LINE OA", "FB", "FB"},
		OtherPlatform: "Dcard",
		Formats:       []string{"限動", "貼文"},
		CycleMode:     "重覆 (特定星期)",
		Weekdays:      []string{"每週日", "每週六"},
		Note:          "週末優惠",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if rec.Row != -1 {
		t.Errorf("A new record has no position yet, got %d", rec.Row)
	}
	if len(store.rows) != 1 {
		t.Fatalf("Expected 1 appended row, got %d", len(store.rows))
	}

	want := map[string]string{
		models.ColKind:      "常態",
		models.ColName:      "週末 LINE 推播",
		models.ColPlatforms: "FB, LINE OA, Dcard",
		models.ColFormats:   "貼文, 限動",
		models.ColStart:     "2025-06-02",
		models.ColEnd:       "2026-12-31",
		models.ColCycle:     "重覆 (特定星期)",
		models.ColWeekdays:  "每週六, 每週日",
		models.ColNote:      "週末優惠",
		models.ColOwner:     "Amy",
		models.ColLink:      "https://example.com/brief",
		models.ColStatus:    "執行中",
	}
	if !reflect.DeepEqual(store.rows[0], want) {
		t.Errorf("Row mismatch.\nGot:  %v\nWant: %v", store.rows[0], want)
	}
}

func TestSubmitRoundTripsThroughNormalizer(t *testing.T) {
	store := &fakeStore{}
	b := newTestBuilder(store)
	if _, err := b.Submit(context.Background(), Submission{Name: "每日限動", Kind: "常態", CycleMode: "每日", Status: "執行中"}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if store.rows[0][models.ColWeekdays] != "每日" {
		t.Errorf("Daily rows carry 每日 in the weekday column, got %q", store.rows[0][models.ColWeekdays])
	}

	records, err := NewNormalizer(MatchStrict).Normalize(sheet(store.rows...))
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	got := records[0]
	if got.CycleMode != models.CycleDaily || got.Status != models.StatusExecuting || len(got.Weekdays) != 0 {
		t.Errorf("Unexpected record after round trip: %+v", got)
	}
	if len(DueToday(records, date("2025-06-03"))) != 1 {
		t.Error("Submitted daily task should be due the next day")
	}
}

func TestSubmitStoreFailure(t *testing.T) {
	boom := errors.New("quota exceeded")
	_, err := newTestBuilder(&fakeStore{err: boom}).Submit(context.Background(), Submission{Name: "A"})
	if !errors.Is(err, boom) {
		t.Errorf("Expected the store error to surface, got %v", err)
	}
}
