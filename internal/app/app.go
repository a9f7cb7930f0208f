package app

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"

	"github.com/daliphone/money-marketing-room/internal/config"
	database "github.com/daliphone/money-marketing-room/internal/db"
	"github.com/daliphone/money-marketing-room/internal/models"
	"github.com/daliphone/money-marketing-room/internal/schedule"
	"github.com/daliphone/money-marketing-room/internal/storage"
)

// Deps is the wiring shared by the API server and the CLI.
type Deps struct {
	DB         *database.Client
	Store      *storage.Client
	Board      *schedule.Board
	Builder    *schedule.Builder
	Vocabulary schedule.Vocabulary
}

// Build connects the configured backend and assembles the schedule components.
func Build(cfg *config.Config) (*Deps, error) {
	deps := &Deps{}

	// 1. Database, only for the database provider
	if cfg.Store.Provider == "database" {
		db, err := database.New(cfg)
		if err != nil {
			return nil, err
		}
		if err := db.AutoMigrate(); err != nil {
			return nil, err
		}
		deps.DB = db
	}

	// 2. Store
	var store *storage.Client
	var err error
	if deps.DB != nil {
		store, err = storage.New(cfg, deps.DB.DB)
	} else {
		store, err = storage.New(cfg, nil)
	}
	if err != nil {
		return nil, err
	}
	deps.Store = store

	// 3. Schedule components
	match, err := schedule.ParseStatusMatch(cfg.Schedule.StatusMatch)
	if err != nil {
		return nil, err
	}
	vocab, err := schedule.LoadVocabulary(cfg.Schedule.VocabularyFile)
	if err != nil {
		return nil, fmt.Errorf("vocabulary: %w", err)
	}
	recurringEnd := models.ParseDate(cfg.Schedule.RecurringEndDate)
	if !recurringEnd.Valid() {
		return nil, fmt.Errorf("invalid schedule.recurring_end_date %q", cfg.Schedule.RecurringEndDate)
	}

	clock := schedule.RealClock{}
	deps.Vocabulary = vocab
	deps.Board = schedule.NewBoard(store, schedule.NewNormalizer(match), clock)
	deps.Builder = schedule.NewBuilder(store, clock, vocab, recurringEnd)

	log.Printf("📅 Schedule ready: status match %s, recurring end %s", match, recurringEnd)
	return deps, nil
}

// Close releases the database connection, if any.
func (d *Deps) Close() {
	if d.DB == nil {
		return
	}
	if sqlDB, err := d.DB.DB.DB(); err == nil {
		sqlDB.Close()
	}
}

// EnsureTokenSecret fills in a random per-process secret when none is configured.
// Operator tokens then stop working on restart.
func EnsureTokenSecret(cfg *config.Config) {
	if cfg.Admin.TokenSecret != "" {
		return
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("Critical: cannot generate token secret: %v", err)
	}
	cfg.Admin.TokenSecret = hex.EncodeToString(buf)
	log.Println("⚠️ admin.token_secret not set, using a random secret for this process")
}
