package server

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mailsift/mailsift/internal/auth"
	"github.com/mailsift/mailsift/internal/config"
	"github.com/mailsift/mailsift/internal/core"
	"github.com/mailsift/mailsift/internal/handlers"
	"go.uber.org/zap"
)

// Version is set at build time
var Version = "dev"

// Server is the HTTP surface of the analyzer
type Server struct {
	echo        *echo.Echo
	cfg         config.ServerConfig
	analysis    *core.AnalysisService
	authService *auth.Service
	logger      *zap.Logger
}

// New creates a new server instance
func New(cfg *config.Config, analysis *core.AnalysisService, authService *auth.Service, logger *zap.Logger) *Server {
	return &Server{
		cfg:         cfg.GetServer(),
		analysis:    analysis,
		authService: authService,
		logger:      logger,
	}
}

// zapMiddleware creates a zap-based request logging middleware for Echo
func (s *Server) zapMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			res := c.Response()

			s.logger.Info("HTTP request",
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.String("remote_ip", c.RealIP()),
				zap.Int("status", res.Status),
				zap.Int64("latency_ms", time.Since(start).Milliseconds()))

			return err
		}
	}
}

// Initialize sets up the Echo framework with middleware and routes
func (s *Server) Initialize() {
	s.echo = echo.New()
	s.echo.HideBanner = true

	s.echo.Use(s.zapMiddleware())
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     s.cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	s.setupRoutes()
}

// setupRoutes configures all the application routes
func (s *Server) setupRoutes() {
	s.echo.GET("/healthz", handlers.HealthHandler(Version))

	authGroup := s.echo.Group("/auth")
	authGroup.GET("/google", handlers.GoogleAuthHandler(s.authService))
	authGroup.GET("/callback", handlers.CallbackHandler(s.authService, s.logger))

	gmailGroup := s.echo.Group("/gmail")
	gmailGroup.POST("/analyze", handlers.AnalyzeHandler(s.analysis, s.logger))
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.logger.Info("Server starting", zap.String("listen_address", s.cfg.ListenAddress))
	return s.echo.Start(s.cfg.ListenAddress)
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
