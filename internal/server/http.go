package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kubev2v/migration-discovery/internal/config"
	"github.com/kubev2v/migration-discovery/internal/server/middlewares"
	"github.com/kubev2v/migration-discovery/pkg/certificates"
)

const (
	ProductionServer string = "prod"
	DevServer        string = "dev"
	apiV1            string = "/api/v1"

	certificateValidity = 365 * 24 * time.Hour
)

type Server struct {
	srv *http.Server
}

type ServerOption func(*gin.Engine)

// WithMetricsHandler serves h at GET /metrics, outside the API group.
func WithMetricsHandler(h http.Handler) ServerOption {
	return func(engine *gin.Engine) {
		engine.GET("/metrics", gin.WrapH(h))
	}
}

func NewServer(cfg *config.Configuration, registerHandlerFn func(router *gin.RouterGroup), opts ...ServerOption) (*Server, error) {
	gin.SetMode(gin.DebugMode)
	if cfg.Server.ServerMode == ProductionServer {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	srv := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", cfg.Server.HTTPPort),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.Server.ServerMode == ProductionServer {
		tlsConfig, err := certificates.NewSelfSignedTLSConfig(certificateValidity)
		if err != nil {
			return nil, fmt.Errorf("failed to generate server's certificates: %w", err)
		}

		srv.TLSConfig = tlsConfig
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "endpoint not found"})
	})

	for _, opt := range opts {
		opt(engine)
	}

	router := engine.Group(apiV1)

	router.Use(
		middlewares.Logger(),
		ginzap.RecoveryWithZap(zap.S().Desugar(), true),
	)

	registerHandlerFn(router)

	return &Server{srv: srv}, nil
}

// Start starts the HTTP or HTTPS server based on TLS configuration.
// http.ErrServerClosed is not reported.
func (r *Server) Start(ctx context.Context) error {
	var err error
	if r.srv.TLSConfig != nil {
		err = r.srv.ListenAndServeTLS("", "")
	} else {
		err = r.srv.ListenAndServe()
	}
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (r *Server) Stop(ctx context.Context) {
	if err := r.srv.Shutdown(ctx); err != nil {
		zap.S().Errorw("server shutdown", "error", err)
	}
}
