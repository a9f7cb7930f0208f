package models

import (
	"time"
)

// Sheet is the header of a sheet stored by the database backend.
type Sheet struct {
	Name      string    `gorm:"primaryKey;type:varchar(255)" json:"name"`
	Columns   string    `gorm:"type:text" json:"columns"` // JSON array, in sheet order
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SheetRow stores one sheet row as a JSON object of cells.
type SheetRow struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	SheetName string `gorm:"index;not null;type:varchar(255)" json:"sheet_name"`
	Position  int    `gorm:"not null" json:"position"`
	Cells     string `gorm:"type:text" json:"cells"`
}
