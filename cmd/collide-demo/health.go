package main

import (
	"context"
	"net/http"
	"time"

	"github.com/opd-ai/collide2d/pkg/health"
	"github.com/opd-ai/collide2d/pkg/logging"
)

const (
	demoWorldName     = "scene"
	healthMaxMemoryMB = 512
)

// newHealthMux routes the probes and the stats dump for the demo world
func newHealthMux(monitor *health.Monitor) *http.ServeMux {
	checker := health.NewHealthChecker()
	checker.AddCheck(health.NewManagerHealthCheck(monitor))
	checker.AddCheck(health.NewWorldHealthCheck(monitor, demoWorldName, 0))
	checker.AddCheck(health.NewMemoryHealthCheck(healthMaxMemoryMB, health.CurrentMemoryMB))

	mux := http.NewServeMux()
	mux.HandleFunc("/health", checker.LivenessHandler)
	mux.HandleFunc("/ready", checker.ReadinessHandler)
	mux.HandleFunc("/stats", monitor.StatsHandler)
	return mux
}

// startHealthServer serves the health mux on addr in the background
func startHealthServer(ctx context.Context, logger *logging.Logger, addr string, monitor *health.Monitor) *http.Server {
	server := &http.Server{
		Addr:         addr,
		Handler:      newHealthMux(monitor),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info(ctx, "Starting health check server", "address", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "Health check server failed", err)
		}
	}()
	return server
}

func stopHealthServer(ctx context.Context, logger *logging.Logger, server *http.Server) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Health check server shutdown failed", err)
	}
}
