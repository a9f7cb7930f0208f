package models

import "strings"

// Table is a raw snapshot of one sheet: every cell is a string and rows are
// keyed by column name.
type Table struct {
	Columns []string            `json:"columns"`
	Rows    []map[string]string `json:"rows"`
}

// HasColumn reports whether name is part of the table's shape.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// IsEmpty is true for a sheet that has never been written.
func (t Table) IsEmpty() bool {
	return len(t.Columns) == 0 && len(t.Rows) == 0
}

// Clone deep-copies the table so callers can append without touching a cached snapshot.
func (t Table) Clone() Table {
	out := Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]map[string]string, 0, len(t.Rows)),
	}
	for _, row := range t.Rows {
		cp := make(map[string]string, len(row))
		for k, v := range row {
			cp[k] = v
		}
		out.Rows = append(out.Rows, cp)
	}
	return out
}

// AppendRow adds a row, extending the column list with any columns the row
// introduces. New columns follow the canonical order.
func (t *Table) AppendRow(row map[string]string) {
	for _, col := range Columns {
		if _, ok := row[col]; ok && !t.HasColumn(col) {
			t.Columns = append(t.Columns, col)
		}
	}
	for col := range row {
		if !t.HasColumn(col) {
			t.Columns = append(t.Columns, col)
		}
	}
	t.Rows = append(t.Rows, row)
}

// DropBlankRows removes rows in which every cell is empty.
func (t *Table) DropBlankRows() {
	kept := t.Rows[:0]
	for _, row := range t.Rows {
		blank := true
		for _, v := range row {
			if strings.TrimSpace(v) != "" {
				blank = false
				break
			}
		}
		if !blank {
			kept = append(kept, row)
		}
	}
	t.Rows = kept
}
