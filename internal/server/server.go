package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/roboard/spares-kiosk/internal/config"
	"github.com/roboard/spares-kiosk/internal/metrics"
)

// RegisterHandlerFn registers API routes on the /api group.
type RegisterHandlerFn func(router *gin.RouterGroup)

type Server struct {
	cfg        *config.Configuration
	log        *zap.SugaredLogger
	httpServer *http.Server
}

func NewServer(cfg *config.Configuration, aggregator *metrics.Aggregator, registerHandlers RegisterHandlerFn) *Server {
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(RequestLogger(aggregator))
	router.Use(ginzap.RecoveryWithZap(zap.L().Named("http"), true))

	registerHandlers(router.Group("/api"))

	return &Server{
		cfg: cfg,
		log: zap.S().Named("server"),
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start blocks serving HTTP until the server is stopped or fails.
func (s *Server) Start() error {
	s.log.Infow("starting http server", "addr", s.httpServer.Addr, "env", s.cfg.Env)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully, waiting for in-flight requests.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("shutting down http server")
	return s.httpServer.Shutdown(ctx)
}
