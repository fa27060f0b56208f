// cmd/player-api/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"player-api/internal/api"
	"player-api/internal/common/config"
	"player-api/internal/common/logger"
	"player-api/internal/common/observability"
	"player-api/internal/common/validation"
	"player-api/internal/narrative"
	"player-api/internal/similarity"
	"player-api/internal/stats"
	"player-api/pkg/registry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog).With(map[string]interface{}{
		"service": cfg.App.Name,
		"env":     cfg.App.Environment,
	})

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	reg, err := loadRegistry(cfg.RegistryPath)
	if err != nil {
		zapLog.Fatal("registry load failed", zap.Error(err))
	}
	validator, err := validation.NewSchemaValidator(reg)
	if err != nil {
		zapLog.Fatal("registry schemas invalid", zap.Error(err))
	}

	statsCfg := &stats.Config{
		BaseURL: cfg.Stats.BaseURL,
		APIKey:  cfg.Stats.APIKey,
		Timeout: config.GetDuration(cfg.Stats.Timeout),
	}
	genCfg := &narrative.Config{
		BaseURL: cfg.GenAI.BaseURL,
		APIKey:  cfg.GenAI.APIKey,
		Model:   cfg.GenAI.Model,
		Timeout: config.GetDuration(cfg.GenAI.Timeout),
	}
	if err := statsCfg.Validate(); err != nil {
		zapLog.Fatal("stats client config invalid", zap.Error(err))
	}
	if err := genCfg.Validate(); err != nil {
		zapLog.Fatal("genai client config invalid", zap.Error(err))
	}

	handler := api.NewHandler(
		stats.NewClient(statsCfg, obs, log),
		narrative.NewGenerator(genCfg, obs, log),
		similarity.NewFinder(),
		validator,
		log,
		api.ServiceInfo{Name: cfg.App.Name, Version: cfg.App.Version},
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.NewRouter(handler, cfg.Server.CORS, log),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		log.Info("player api listening", map[string]interface{}{
			"addr":      server.Addr,
			"statsURL":  statsCfg.BaseURL,
			"genaiURL":  genCfg.BaseURL,
			"endpoints": len(reg.Endpoints),
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("server error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining connections...")

	ctx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
		return
	}
	zapLog.Info("player api stopped")
}

// loadRegistry prefers a catalog file when one is configured.
func loadRegistry(path string) (*registry.EndpointRegistry, error) {
	if path == "" {
		return registry.Default(), nil
	}
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return nil, err
	}
	if problems := reg.Check(); len(problems) > 0 {
		return nil, errors.New("registry " + path + ": " + problems[0])
	}
	return reg, nil
}
