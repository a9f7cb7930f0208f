package storage

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/daliphone/money-marketing-room/internal/models"
)

// SetupInMemoryDB creates a throwaway DB for testing
func SetupInMemoryDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	d, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	if err := d.AutoMigrate(&models.Sheet{}, &models.SheetRow{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	sqlDB, _ := d.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return d
}

func TestDatabaseProviderRoundTrip(t *testing.T) {
	p := NewDatabaseProvider(SetupInMemoryDB(t))
	ctx := context.Background()

	// 1. Unknown sheet reads as empty
	table, err := p.Read(ctx, "Marketing_Schedule")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !table.IsEmpty() {
		t.Errorf("Expected empty table, got %+v", table)
	}

	// 2. Write then read back, order preserved
	in := models.Table{
		Columns: []string{models.ColKind, models.ColName, models.ColStatus},
		Rows: []map[string]string{
			{models.ColKind: "行銷案", models.ColName: "B", models.ColStatus: "執行中"},
			{models.ColKind: "常態", models.ColName: "A", models.ColStatus: ""},
			{models.ColKind: "常態", models.ColName: "C"},
		},
	}
	if err := p.Write(ctx, "Marketing_Schedule", in); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	out, err := p.Read(ctx, "Marketing_Schedule")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(out.Columns) != 3 || out.Columns[2] != models.ColStatus {
		t.Errorf("Columns: Got %v", out.Columns)
	}
	for i, want := range []string{"B", "A", "C"} {
		if out.Rows[i][models.ColName] != want {
			t.Errorf("Row %d: Got %q, want %q", i, out.Rows[i][models.ColName], want)
		}
	}

	// 3. A second write replaces the whole sheet
	in.Columns = append(in.Columns, models.ColOwner)
	in.Rows = in.Rows[:1]
	if err := p.Write(ctx, "Marketing_Schedule", in); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}
	out, _ = p.Read(ctx, "Marketing_Schedule")
	if len(out.Rows) != 1 || len(out.Columns) != 4 {
		t.Errorf("Expected full overwrite, got %d rows / %v", len(out.Rows), out.Columns)
	}

	// 4. Sheets do not leak into each other
	other, _ := p.Read(ctx, "Other")
	if !other.IsEmpty() {
		t.Errorf("Other sheet should be empty, got %+v", other)
	}
}

func TestClientOnDatabase(t *testing.T) {
	client := NewClient(NewDatabaseProvider(SetupInMemoryDB(t)), "Marketing_Schedule", 0)
	ctx := context.Background()

	for _, name := range []string{"一", "二"} {
		if err := client.Append(ctx, row(name)); err != nil {
			t.Fatalf("Append %s failed: %v", name, err)
		}
	}

	table, err := client.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(table.Rows) != 2 || table.Rows[1][models.ColName] != "二" {
		t.Errorf("Unexpected table: %+v", table)
	}
}
