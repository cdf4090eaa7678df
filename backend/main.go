// ABOUTME: Entry point for the separator sizing backend service
// ABOUTME: Provides HTTP API for separator sizing, well classification and PDF reports

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/markalston/separator-sizer/backend/cache"
	"github.com/markalston/separator-sizer/backend/config"
	"github.com/markalston/separator-sizer/backend/handlers"
	"github.com/markalston/separator-sizer/backend/logger"
	"github.com/markalston/separator-sizer/backend/middleware"
	"github.com/markalston/separator-sizer/backend/models"
)

func main() {
	// Initialize structured logging
	logger.Init()

	// Load configuration
	cfg, err := config.Load(envFile())
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting Separator Sizer Backend", "version", handlers.Version)

	// Classified batches stay downloadable for the report TTL
	reportTTL := time.Duration(cfg.ReportTTL) * time.Second
	batches := cache.New[[]models.Recommendation](reportTTL)
	defer batches.Close()
	slog.Info("Report cache initialized", "ttl", reportTTL)

	h := handlers.NewHandler(cfg, batches)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newMux(cfg, h),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

// envFile returns the dotenv path, ENV_FILE or ".env"
func envFile() string {
	if p := os.Getenv("ENV_FILE"); p != "" {
		return p
	}
	return ".env"
}

// newMux registers every route behind the shared middleware chain and the
// rate limiter for its tier.
func newMux(cfg *config.Config, h *handlers.Handler) *http.ServeMux {
	limiters := map[handlers.RateTier]*middleware.RateLimiter{}
	if cfg.RateLimitEnabled {
		limiters[handlers.TierDefault] = middleware.NewRateLimiter(string(handlers.TierDefault), cfg.RateLimitDefault, time.Minute)
		limiters[handlers.TierUpload] = middleware.NewRateLimiter(string(handlers.TierUpload), cfg.RateLimitUpload, time.Minute)
		slog.Info("Rate limiting enabled", "default_per_min", cfg.RateLimitDefault, "upload_per_min", cfg.RateLimitUpload)
	} else {
		slog.Warn("Rate limiting disabled")
	}

	cors := middleware.CORS(cfg.CORSAllowedOrigins)

	mux := http.NewServeMux()
	for _, route := range h.Routes() {
		handler := middleware.Chain(route.Handler,
			middleware.LogRequest,
			middleware.Recover,
			cors,
			middleware.RateLimit(limiters[route.Tier], middleware.ClientIP),
		)
		mux.HandleFunc(route.Method+" "+route.Path, handler)
		// Preflight for browser clients
		mux.HandleFunc(http.MethodOptions+" "+route.Path, cors(func(http.ResponseWriter, *http.Request) {}))
	}

	return mux
}
