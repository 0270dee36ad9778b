package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"textkeeper/config"
	"textkeeper/internal/handler"
	"textkeeper/internal/i18n"
	"textkeeper/internal/middleware"
	"textkeeper/internal/repository"
	"textkeeper/internal/transport/httpdto"
	"textkeeper/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
	registry   *prometheus.Registry
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Auth *handler.AuthHandler
	Text *handler.TextHandler
	User *handler.UserHandler
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.AppPort),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		engine:   engine,
		config:   cfg,
		logger:   l,
		registry: registry,
	}
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// SetupRoutes registers middleware and every endpoint. health is pinged by
// /health and may be nil.
func (s *Server) SetupRoutes(handlers *Handlers, health repository.Pinger) {
	httpdto.UseJSONFieldNames()

	metrics := middleware.NewMetrics(s.registry)

	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.CORSMiddleware(s.config.CORSOrigins))
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(metrics.Middleware())
	s.engine.Use(middleware.ErrorHandler(s.logger))

	s.engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, i18n.Localize(c.GetHeader("Accept-Language"), i18n.Welcome))
	})

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	s.engine.GET("/health", func(c *gin.Context) {
		if health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
			defer cancel()
			if err := health.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error(), "UNHEALTHY"))
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	api := s.engine.Group("/", middleware.ProviderTimeout(s.config.ProviderTimeout))
	{
		api.POST("/register", handlers.Auth.Register)
		api.POST("/login", handlers.Auth.Login)

		api.POST("/submit-text", handlers.Text.Submit)
		api.GET("/get-text/:userId", handlers.Text.Get)
		api.GET("/get-text", handlers.Text.Get)
		api.PUT("/update-text/:userId", handlers.Text.Update)
		api.PUT("/update-text", handlers.Text.Update)
		api.DELETE("/delete-text/:userId", handlers.Text.Delete)
		api.DELETE("/delete-text", handlers.Text.Delete)

		api.PUT("/update-username", handlers.User.UpdateUsername)
	}
}

// Start serves until SIGINT/SIGTERM and then shuts down gracefully. A
// listener failure is returned immediately.
func (s *Server) Start() error {
	serveErr := make(chan error, 1)
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		if s.logger != nil {
			s.logger.Errorf("Error in starting the server: %s", err)
		}
		return fmt.Errorf("listen on :%s: %w", s.config.AppPort, err)
	case <-quit:
	}

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Errorf("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}

	return nil
}
