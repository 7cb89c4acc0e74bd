package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/securepass/securepass-go/internal/config"
	"github.com/securepass/securepass-go/internal/handler"
	"github.com/securepass/securepass-go/internal/middleware"
	"github.com/securepass/securepass-go/internal/model"
	"github.com/securepass/securepass-go/internal/repository"
	"github.com/securepass/securepass-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	historyStore, closeHistory := repository.OpenHistoryStore(ctx, cfg)
	defer closeHistory()

	settingsService := service.NewSettingsService(ctx, repository.NewSettingsFile(cfg.SettingsPath))
	historyService := service.NewHistoryService(ctx, historyStore, settingsService.Get().MaxHistory)
	settingsService.OnUpdate(func(ctx context.Context, s model.Settings) {
		historyService.SetMax(ctx, s.MaxHistory)
	})

	genService := service.NewGeneratorService(settingsService, historyService)
	genHandler := handler.NewGeneratorHandler(genService)

	done := make(chan struct{})
	defer close(done)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, done))
		r.Post("/api/v1/generate", genHandler.HandleGenerate)
	})
	r.Post("/api/v1/strength", genHandler.HandleStrength)

	if cfg.AdminPassphraseHash == "" {
		slog.Warn("ADMIN_PASSPHRASE_HASH not set, history and settings routes disabled")
	} else {
		authService := service.NewAuthService(cfg.AdminPassphraseHash, cfg.JWTSecret, cfg.JWTExpiry)
		authHandler := handler.NewAuthHandler(authService)
		historyHandler := handler.NewHistoryHandler(historyService)
		settingsHandler := handler.NewSettingsHandler(settingsService)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, done))
			r.Post("/api/v1/auth/token", authHandler.HandleToken)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(cfg.JWTSecret))

			r.Get("/api/v1/history", historyHandler.HandleList)
			r.Delete("/api/v1/history", historyHandler.HandleClear)
			r.Get("/api/v1/history/export", historyHandler.HandleExport)

			r.Get("/api/v1/settings", settingsHandler.HandleGet)
			r.Put("/api/v1/settings", settingsHandler.HandleUpdate)
		})
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "history_backend", cfg.HistoryBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
