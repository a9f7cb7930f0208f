package main

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/daliphone/money-marketing-room/internal/api/handlers"
	"github.com/daliphone/money-marketing-room/internal/app"
	"github.com/daliphone/money-marketing-room/internal/config"
	"github.com/daliphone/money-marketing-room/internal/storage"

	// Use an alias to prevent naming collisions with the 'server' variable
	apiserver "github.com/daliphone/money-marketing-room/internal/api/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Marketing Board API Server...")

	// 1. Setup Configuration
	cfg := config.Load()
	app.EnsureTokenSecret(cfg)

	// 2. Initialize Infrastructure (store, normalizer, resolver, builder)
	deps, err := app.Build(cfg)
	if err != nil {
		log.Fatalf("❌ Startup failed: %v", err)
	}
	defer deps.Close()

	// 3. Setup Metrics
	storage.RegisterMetrics()
	handlers.RegisterMetrics()
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/_metrics", promhttp.Handler())
		log.Printf("📊 Metrics exposed at http://localhost%s/_metrics", cfg.Server.MetricsPort)
		if err := http.ListenAndServe(cfg.Server.MetricsPort, mux); err != nil {
			log.Printf("⚠️ Metrics server error: %v", err)
		}
	}()

	// 4. Start Server
	srv := apiserver.New(cfg, deps.Store, deps.Board, deps.Builder, deps.Vocabulary)

	log.Printf("🚀 API Server starting on %s", cfg.Server.Port)

	if err := srv.Start(cfg.Server.Port); err != nil {
		log.Fatalf("❌ Server failed to start: %v", err)
	}
}
