package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"catalog-service/internal/api"
	"catalog-service/internal/catalog"
	"catalog-service/internal/config"
)

const serviceName = "catalog-service"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the catalog HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	cfg, bolt, kvStore, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		if err := bolt.Close(); err != nil {
			zap.L().Warn("closing data file failed", zap.Error(err))
		}
	}()

	logger, err := config.InitLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	zap.S().Infof("starting %s, env: %s, data file: %s", serviceName, cfg.AppEnv, cfg.Storage.Path())

	data := catalog.New(kvStore)
	if err := data.Refresh(context.Background()); err != nil {
		return err
	}
	zap.S().Infof("initial data load complete: %d products, %d categories",
		len(data.Products()), len(data.Categories()))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))
	registerHealthCheck(router)

	api.NewHTTPHandler(data).RegisterRoutes(router)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HttpServer.Port,
		Handler:      router,
		ReadTimeout:  cfg.HttpServer.TimeoutRead,
		WriteTimeout: cfg.HttpServer.TimeoutWrite,
		IdleTimeout:  cfg.HttpServer.TimeoutIdle,
	}

	serveErr := make(chan error, 1)
	go func() {
		zap.S().Infof("HTTP server listening on port %s", cfg.HttpServer.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return err
	case sig := <-sigChan:
		zap.S().Infof("received signal %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zap.L().Warn("HTTP server graceful shutdown failed", zap.Error(err))
	}
	zap.S().Info("shutdown complete")
	return nil
}

func registerHealthCheck(router *chi.Mux) {
	router.Get("/api/v1/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":      "healthy",
			"serviceName": serviceName,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
		})
	})
}
