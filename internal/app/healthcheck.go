package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/specialistvlad/mpipgo/internal/ctxlog"
	"github.com/specialistvlad/mpipgo/internal/model"
)

// runStatus counts progress for the /status endpoint. It is an
// executor.Observer.
type runStatus struct {
	discovered   atomic.Int64
	parsed       atomic.Int64
	failed       atomic.Int64
	uploaded     atomic.Int64
	uploadFailed atomic.Int64
}

func (s *runStatus) DocumentParsed(context.Context, string, *model.ParsedRecord) {
	s.parsed.Add(1)
}

func (s *runStatus) DocumentFailed(context.Context, string, error) {
	s.failed.Add(1)
}

func (s *runStatus) snapshot() gin.H {
	return gin.H{
		"discovered":    s.discovered.Load(),
		"parsed":        s.parsed.Load(),
		"failed":        s.failed.Load(),
		"uploaded":      s.uploaded.Load(),
		"upload_failed": s.uploadFailed.Load(),
	}
}

// healthRouter builds the gin engine serving /health and /status.
func (a *App) healthRouter() *gin.Engine {
	if a.config.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/health", func(c *gin.Context) {
		a.logger.Debug("Health check endpoint hit.", "remote_addr", c.Request.RemoteAddr, "path", c.Request.URL.Path)
		c.String(http.StatusOK, "OK\n")
	})
	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, a.status.snapshot())
	})
	return engine
}

// healthCheckServer initializes and runs the health check HTTP server.
func (a *App) healthCheckServer() {
	logger := ctxlog.FromContext(a.ctx)
	logger.Debug("Configuring health check server.")
	if a.config.HealthcheckPort <= 0 {
		logger.Debug("Health check server not started: disabled.")
		return
	}

	addr := fmt.Sprintf(":%d", a.config.HealthcheckPort)
	a.httpServer = &http.Server{
		Addr:    addr,
		Handler: a.healthRouter(),
	}

	go func() {
		logger.Info("Health check server starting.", "address", fmt.Sprintf("http://localhost%s/health", addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Health check server failed unexpectedly.", "error", err)
		}
	}()
}

func (a *App) closeHealthCheckServer() error {
	logger := ctxlog.FromContext(a.ctx)

	if a.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()

	logger.Debug("Shutting down health check server.")
	if err := a.httpServer.Shutdown(ctx); err != nil {
		logger.Error("Health check server shutdown failed.", "error", err)
		return err
	}
	return nil
}
