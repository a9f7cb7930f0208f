package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"gorm.io/gorm"

	"github.com/daliphone/money-marketing-room/internal/config"
	"github.com/daliphone/money-marketing-room/internal/models"
)

// Client is the record store adapter: one sheet on one backend, with a
// snapshot cache in front of reads.
type Client struct {
	backend TableStore
	sheet   string

	// nil when caching is disabled
	cache *expirable.LRU[string, models.Table]
}

// New wires the backend selected in cfg. db is only used by the database provider.
func New(cfg *config.Config, db *gorm.DB) (*Client, error) {
	var backend TableStore

	// 1. Internal Selection Logic
	switch cfg.Store.Provider {
	case "local":
		backend = NewLocalProvider(cfg.Store.LocalPath)
	case "s3":
		p, err := NewS3Provider(S3Options{
			KeyID:    cfg.Store.KeyID,
			AppKey:   cfg.Store.AppKey,
			Endpoint: cfg.Store.Endpoint,
			Region:   cfg.Store.Region,
			Bucket:   cfg.Store.Bucket,
			Prefix:   cfg.Store.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 session: %w", err)
		}
		backend = p
	case "database":
		if db == nil {
			return nil, fmt.Errorf("database provider selected but no database connection given")
		}
		backend = NewDatabaseProvider(db)
	default:
		return nil, fmt.Errorf("unknown store provider %q", cfg.Store.Provider)
	}

	log.Printf("🗂️ Store: %s backend, sheet %q, cache %s", cfg.Store.Provider, cfg.Store.Sheet, cfg.CacheTTL())
	return NewClient(backend, cfg.Store.Sheet, cfg.CacheTTL()), nil
}

// NewClient wraps a backend. A ttl of zero disables the snapshot cache.
func NewClient(backend TableStore, sheet string, ttl time.Duration) *Client {
	c := &Client{backend: backend, sheet: sheet}
	if ttl > 0 {
		c.cache = expirable.NewLRU[string, models.Table](4, nil, ttl)
	}
	return c
}

// Sheet is the name of the sheet this client serves.
func (c *Client) Sheet() string { return c.sheet }

// Snapshot returns the sheet, served from the cache while it is fresh.
// The returned table is shared with the cache and must not be modified.
func (c *Client) Snapshot(ctx context.Context) (models.Table, error) {
	if c.cache != nil {
		if table, ok := c.cache.Get(c.sheet); ok {
			cacheLookups.WithLabelValues("hit").Inc()
			return table, nil
		}
		cacheLookups.WithLabelValues("miss").Inc()
	}

	table, err := c.Fresh(ctx)
	if err != nil {
		return models.Table{}, err
	}

	if c.cache != nil {
		c.cache.Add(c.sheet, table)
	}
	return table, nil
}

// Fresh reads the sheet straight from the backend, bypassing the cache.
func (c *Client) Fresh(ctx context.Context) (models.Table, error) {
	start := time.Now()
	table, err := c.backend.Read(ctx, c.sheet)
	observe("read", start, err)
	if err != nil {
		return models.Table{}, &StoreError{Op: "read", Sheet: c.sheet, Err: err}
	}
	table.DropBlankRows()
	return table, nil
}

// Append adds one row with a read-modify-write: the latest snapshot is read
// immediately before the full-table write, and the cache is invalidated
// afterwards. Two writers that both read before either writes can still lose
// an update; the backends offer no conditional write to close that gap.
func (c *Client) Append(ctx context.Context, row map[string]string) error {
	current, err := c.Fresh(ctx)
	if err != nil {
		return err
	}

	updated := current.Clone()

	// Rows of a sheet without a status column read as Executing. Write that
	// out before the column appears, or they would read back as blank drafts.
	if len(updated.Columns) > 0 && !updated.HasColumn(models.ColStatus) {
		for _, r := range updated.Rows {
			r[models.ColStatus] = string(models.StatusExecuting)
		}
		updated.Columns = append(updated.Columns, models.ColStatus)
	}

	updated.AppendRow(row)

	start := time.Now()
	err = c.backend.Write(ctx, c.sheet, updated)
	observe("write", start, err)
	if err != nil {
		return &StoreError{Op: "write", Sheet: c.sheet, Err: err}
	}

	c.Invalidate()
	return nil
}

// Replace overwrites the sheet with table and invalidates the cache.
func (c *Client) Replace(ctx context.Context, table models.Table) error {
	start := time.Now()
	err := c.backend.Write(ctx, c.sheet, table)
	observe("write", start, err)
	if err != nil {
		return &StoreError{Op: "write", Sheet: c.sheet, Err: err}
	}
	c.Invalidate()
	return nil
}

// Invalidate drops the cached snapshot so the next read is fresh.
func (c *Client) Invalidate() {
	if c.cache != nil {
		c.cache.Remove(c.sheet)
	}
}
