package config

import (
	"fmt"
	"time"
)

// Validate checks the settings that would otherwise only fail on first use.
func (c *Config) Validate() error {
	switch c.Store.Provider {
	case "local":
		if c.Store.LocalPath == "" {
			return fmt.Errorf("store.local_path is required for the local provider (BOARD_STORE_LOCAL_PATH)")
		}
	case "s3":
		if c.Store.Bucket == "" {
			return fmt.Errorf("store.bucket is required for the s3 provider (BOARD_STORE_BUCKET)")
		}
		if c.Store.KeyID == "" {
			return fmt.Errorf("store.key_id is missing (BOARD_STORE_KEY_ID)")
		}
	case "database":
		if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
			return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
		}
	default:
		return fmt.Errorf("unsupported store.provider %q", c.Store.Provider)
	}

	if c.Store.Sheet == "" {
		return fmt.Errorf("store.sheet must not be empty")
	}
	if c.Store.CacheTTLSeconds < 0 {
		return fmt.Errorf("store.cache_ttl_seconds must not be negative")
	}

	switch c.Schedule.StatusMatch {
	case "lenient", "strict":
	default:
		return fmt.Errorf("schedule.status_match must be lenient or strict, got %q", c.Schedule.StatusMatch)
	}
	if _, err := time.Parse("2006-01-02", c.Schedule.RecurringEndDate); err != nil {
		return fmt.Errorf("schedule.recurring_end_date: %w", err)
	}

	return nil
}

// CacheTTL converts the configured freshness window.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Store.CacheTTLSeconds) * time.Second
}

// TokenTTL is how long an operator token stays valid.
func (c *Config) TokenTTL() time.Duration {
	if c.Admin.TokenTTLMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(c.Admin.TokenTTLMinutes) * time.Minute
}
