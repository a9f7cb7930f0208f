package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/daliphone/money-marketing-room/internal/models"
)

// DatabaseProvider keeps sheets in the sheets / sheet_rows tables.
type DatabaseProvider struct {
	db *gorm.DB
}

func NewDatabaseProvider(db *gorm.DB) *DatabaseProvider {
	return &DatabaseProvider{db: db}
}

func (p *DatabaseProvider) Read(ctx context.Context, sheet string) (models.Table, error) {
	var header models.Sheet
	err := p.db.WithContext(ctx).Where("name = ?", sheet).First(&header).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Table{}, nil
	}
	if err != nil {
		return models.Table{}, err
	}

	var table models.Table
	if header.Columns != "" {
		if err := json.Unmarshal([]byte(header.Columns), &table.Columns); err != nil {
			return models.Table{}, fmt.Errorf("decode columns: %w", err)
		}
	}

	var rows []models.SheetRow
	if err := p.db.WithContext(ctx).
		Where("sheet_name = ?", sheet).
		Order("position asc").
		Find(&rows).Error; err != nil {
		return models.Table{}, err
	}

	for _, r := range rows {
		cells := map[string]string{}
		if r.Cells != "" {
			if err := json.Unmarshal([]byte(r.Cells), &cells); err != nil {
				return models.Table{}, fmt.Errorf("decode row %d: %w", r.Position, err)
			}
		}
		table.Rows = append(table.Rows, cells)
	}
	return table, nil
}

// Write replaces the whole sheet inside one transaction.
func (p *DatabaseProvider) Write(ctx context.Context, sheet string, table models.Table) error {
	columns, err := json.Marshal(table.Columns)
	if err != nil {
		return err
	}

	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Upsert the header
		header := models.Sheet{Name: sheet, Columns: string(columns)}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"columns", "updated_at"}),
		}).Create(&header).Error; err != nil {
			return err
		}

		// 2. Remove existing rows
		if err := tx.Where("sheet_name = ?", sheet).Delete(&models.SheetRow{}).Error; err != nil {
			return err
		}

		// 3. Insert the new rows in order
		if len(table.Rows) == 0 {
			return nil
		}
		rows := make([]models.SheetRow, 0, len(table.Rows))
		for i, cells := range table.Rows {
			raw, err := json.Marshal(cells)
			if err != nil {
				return err
			}
			rows = append(rows, models.SheetRow{SheetName: sheet, Position: i, Cells: string(raw)})
		}
		return tx.CreateInBatches(rows, 200).Error
	})
}
