package database

import (
	"context"
	"log"

	"github.com/daliphone/money-marketing-room/internal/models"
	"github.com/daliphone/money-marketing-room/internal/storage"
)

// SeedSchedule fills an empty sheet with a demonstration schedule.
// A sheet that already has rows is left alone. It reports whether rows were written.
func SeedSchedule(ctx context.Context, store *storage.Client) (bool, error) {
	current, err := store.Fresh(ctx)
	if err != nil {
		return false, err
	}
	if len(current.Rows) > 0 {
		log.Printf("🌱 Sheet %q already has %d rows, skipping seed", store.Sheet(), len(current.Rows))
		return false, nil
	}

	rows := []map[string]string{
		// --- RECURRING POSTS ---
		{
			models.ColKind:      string(models.KindRecurring),
			models.ColName:      "每日限動打卡",
			models.ColPlatforms: "IG, @Threads",
			models.ColFormats:   "限動",
			models.ColStart:     "2025-01-01",
			models.ColEnd:       "2026-12-31",
			models.ColCycle:     string(models.CycleDaily),
			models.ColWeekdays:  "每日",
			models.ColNote:      "當日門市新品一張圖",
			models.ColOwner:     "小美",
			models.ColStatus:    string(models.StatusExecuting),
		},
		{
			models.ColKind:      string(models.KindRecurring),
			models.ColName:      "週一新品開箱",
			models.ColPlatforms: "FB, IG, YT",
			models.ColFormats:   "貼文, 短影音(Reels/Shorts)",
			models.ColStart:     "2025-01-01",
			models.ColEnd:       "2026-12-31",
			models.ColCycle:     string(models.CycleWeekly),
			models.ColWeekdays:  "每週一",
			models.ColNote:      "開箱影片 30 秒內",
			models.ColOwner:     "阿哲",
			models.ColStatus:    string(models.StatusExecuting),
		},
		{
			models.ColKind:      string(models.KindRecurring),
			models.ColName:      "週末 LINE 推播",
			models.ColPlatforms: "LINE OA, LINE VOOM",
			models.ColFormats:   "貼文",
			models.ColStart:     "2025-03-01",
			models.ColEnd:       "2026-12-31",
			models.ColCycle:     string(models.CycleWeekly),
			models.ColWeekdays:  "每週六, 每週日",
			models.ColNote:      "週末優惠券",
			models.ColOwner:     "小美",
			models.ColStatus:    string(models.StatusExecuting),
		},

		// --- CAMPAIGNS ---
		{
			models.ColKind:      string(models.KindCampaign),
			models.ColName:      "百倍奉還抽獎",
			models.ColPlatforms: "FB, IG, 官網",
			models.ColFormats:   "貼文, 影片",
			models.ColStart:     "2025-06-01",
			models.ColEnd:       "2025-06-10",
			models.ColCycle:     string(models.CycleOnce),
			models.ColNote:      "留言抽獎，6/12 公布",
			models.ColOwner:     "阿哲",
			models.ColLink:      "https://example.com/lottery",
			models.ColStatus:    string(models.StatusExecuting),
		},
		{
			models.ColKind:      string(models.KindCampaign),
			models.ColName:      "年終慶草案",
			models.ColPlatforms: "FB, IG, TikTok",
			models.ColFormats:   "影片",
			models.ColStart:     "2026-11-20",
			models.ColEnd:       "2026-12-31",
			models.ColCycle:     string(models.CycleOnce),
			models.ColNote:      "待確認預算",
			models.ColOwner:     "店長",
			models.ColStatus:    string(models.StatusPlanning),
		},
	}

	table := models.Table{Columns: append([]string(nil), models.Columns...)}
	for _, r := range rows {
		table.AppendRow(r)
	}

	log.Printf("🌱 Seeding %d schedule rows into %q...", len(rows), store.Sheet())
	if err := store.Replace(ctx, table); err != nil {
		return false, err
	}
	return true, nil
}
