package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/daliphone/money-marketing-room/internal/models"
)

// LocalProvider keeps each sheet as <RootPath>/<sheet>.csv.
type LocalProvider struct {
	RootPath string
}

func NewLocalProvider(root string) *LocalProvider {
	// Ensure the root directory exists
	_ = os.MkdirAll(root, 0755)
	return &LocalProvider{RootPath: root}
}

func (l *LocalProvider) path(sheet string) string {
	return filepath.Join(l.RootPath, filepath.Base(sheet)+".csv")
}

func (l *LocalProvider) Read(ctx context.Context, sheet string) (models.Table, error) {
	if err := ctx.Err(); err != nil {
		return models.Table{}, err
	}
	f, err := os.Open(l.path(sheet))
	if os.IsNotExist(err) {
		// A sheet nobody wrote yet is empty, not an error
		return models.Table{}, nil
	}
	if err != nil {
		return models.Table{}, err
	}
	defer f.Close()

	return decodeCSV(f)
}

func (l *LocalProvider) Write(ctx context.Context, sheet string, table models.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := encodeCSV(&buf, table); err != nil {
		return err
	}

	dest := l.path(sheet)
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}

	// Write to a temp file then rename (atomic on the same filesystem)
	tmp := dest + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, dest)
}
