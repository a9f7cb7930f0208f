package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	var c Config
	c.Store.Provider = "local"
	c.Store.Sheet = "Marketing_Schedule"
	c.Store.LocalPath = "./data"
	c.Store.CacheTTLSeconds = 600
	c.Database.Driver = "sqlite"
	c.Schedule.StatusMatch = "lenient"
	c.Schedule.RecurringEndDate = "2026-12-31"
	return &c
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"Defaults", func(c *Config) {}, ""},
		{"Unknown provider", func(c *Config) { c.Store.Provider = "ftp" }, "store.provider"},
		{"S3 without bucket", func(c *Config) { c.Store.Provider = "s3"; c.Store.KeyID = "k" }, "store.bucket"},
		{"S3 without key", func(c *Config) { c.Store.Provider = "s3"; c.Store.Bucket = "b" }, "store.key_id"},
		{"Database with bad driver", func(c *Config) { c.Store.Provider = "database"; c.Database.Driver = "mysql" }, "database.driver"},
		{"Database postgres", func(c *Config) { c.Store.Provider = "database"; c.Database.Driver = "postgres" }, ""},
		{"Empty sheet", func(c *Config) { c.Store.Sheet = "" }, "store.sheet"},
		{"Negative TTL", func(c *Config) { c.Store.CacheTTLSeconds = -1 }, "cache_ttl_seconds"},
		{"Bad status match", func(c *Config) { c.Schedule.StatusMatch = "fuzzy" }, "status_match"},
		{"Bad recurring end", func(c *Config) { c.Schedule.RecurringEndDate = "2026-31-12" }, "recurring_end_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDurations(t *testing.T) {
	c := validConfig()
	if got := c.CacheTTL(); got != 10*time.Minute {
		t.Errorf("CacheTTL: Got %s, want 10m", got)
	}
	if got := c.TokenTTL(); got != 30*time.Minute {
		t.Errorf("TokenTTL default: Got %s, want 30m", got)
	}
	c.Admin.TokenTTLMinutes = 5
	if got := c.TokenTTL(); got != 5*time.Minute {
		t.Errorf("TokenTTL: Got %s, want 5m", got)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BOARD_STORE_PROVIDER", "database")
	t.Setenv("BOARD_STORE_CACHE_TTL_SECONDS", "30")
	t.Setenv("BOARD_SCHEDULE_STATUS_MATCH", "strict")
	t.Setenv("BOARD_ADMIN_PASSWORD", "open-sesame")

	cfg := Load()

	if cfg.Store.Provider != "database" {
		t.Errorf("Provider: Got %q, want database", cfg.Store.Provider)
	}
	if cfg.CacheTTL() != 30*time.Second {
		t.Errorf("CacheTTL: Got %s, want 30s", cfg.CacheTTL())
	}
	if cfg.Schedule.StatusMatch != "strict" || cfg.Admin.Password != "open-sesame" {
		t.Errorf("Unexpected schedule/admin config: %+v %+v", cfg.Schedule, cfg.Admin)
	}
	// Untouched keys keep their defaults
	if cfg.Store.Sheet != "Marketing_Schedule" || cfg.Schedule.RecurringEndDate != "2026-12-31" {
		t.Errorf("Defaults not applied: sheet %q, recurring end %q", cfg.Store.Sheet, cfg.Schedule.RecurringEndDate)
	}
}
