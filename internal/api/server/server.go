package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/daliphone/money-marketing-room/internal/config"
	"github.com/daliphone/money-marketing-room/internal/schedule"
	"github.com/daliphone/money-marketing-room/internal/storage"

	"github.com/daliphone/money-marketing-room/internal/api/handlers"
	"github.com/daliphone/money-marketing-room/internal/api/middleware"
)

type Server struct {
	cfg     *config.Config
	store   *storage.Client
	board   *schedule.Board
	builder *schedule.Builder
	vocab   schedule.Vocabulary
	router  *gin.Engine
}

func New(cfg *config.Config, store *storage.Client, board *schedule.Board, builder *schedule.Builder, vocab schedule.Vocabulary) *Server {
	if cfg.Server.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode) // Set to Release for production
	}

	s := &Server{
		cfg:     cfg,
		store:   store,
		board:   board,
		builder: builder,
		vocab:   vocab,
		router:  gin.New(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.SilentLogger())

	// CORS Configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}

	// "Authorization" must be allowed so the frontend can send the operator token
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Request-ID"}

	s.router.Use(cors.New(corsConfig))
}

func (s *Server) setupRoutes() {
	// 1. Initialize Modular Handlers
	dashboardHandler := handlers.NewDashboardHandler(s.board)
	recordHandler := handlers.NewRecordHandler(s.builder, s.vocab)
	adminHandler := handlers.NewAdminHandler(
		s.cfg.Admin.Password,
		s.cfg.Admin.EditorURL,
		[]byte(s.cfg.Admin.TokenSecret),
		s.cfg.TokenTTL(),
		s.store,
	)

	// Health Check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "marketing-board"})
	})

	// API Group
	v1 := s.router.Group("/api/v1")
	{
		// --- FORM (page A)
		v1.GET("/options", recordHandler.GetOptions)
		v1.POST("/records", recordHandler.CreateRecord)

		// --- DASHBOARD (page B)
		v1.GET("/records", dashboardHandler.GetRecords)
		v1.GET("/dashboard/today", dashboardHandler.GetToday)
		v1.GET("/dashboard/planning", dashboardHandler.GetPlanning)
		v1.GET("/dashboard/archived", dashboardHandler.GetArchived)
		v1.GET("/timeline", dashboardHandler.GetTimeline)
		v1.GET("/calendar", dashboardHandler.GetCalendar)

		// --- OPERATOR GATE
		v1.POST("/admin/unlock", adminHandler.Unlock)

		operator := v1.Group("/admin")
		operator.Use(middleware.RequireAuth([]byte(s.cfg.Admin.TokenSecret)), middleware.RequireRole(middleware.RoleOperator))
		{
			operator.GET("/editor", adminHandler.GetEditor)
			operator.POST("/refresh", adminHandler.Refresh)
		}
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the server on the configured port
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
