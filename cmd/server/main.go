/*
main.go - HTTP server entry point

PURPOSE:
  Starts the stateless residence calculator service.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (defaults, RECKONER_CONFIG file, RECKONER_* env)
  2. Apply command-line flags
  3. Initialize logger and metrics
  4. Configure HTTP router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -addr     Listen address (default from config, ":8080")
  -origins  Comma-separated CORS origins (default "*")

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - config/loader.go: Configuration layering
*/
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/warp/residence-engine/api"
	"github.com/warp/residence-engine/config"
	"github.com/warp/residence-engine/logger"
	"github.com/warp/residence-engine/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("failed to load config")
	}

	// Flags
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	origins := flag.String("origins", "*", "comma-separated CORS origins")
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		logger.Get().Fatal().Err(err).Msg("invalid config")
	}

	logger.Init(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "reckoner-server"})
	log := logger.Get()

	handler := api.NewHandler(cfg, metrics.NewManager())
	router := api.NewRouter(handler, strings.Split(*origins, ","))

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", cfg.Addr).
			Int("goal_days", cfg.GoalDays).
			Int("excuse_days", cfg.ExcuseDays).
			Str("timezone", cfg.Timezone).
			Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
