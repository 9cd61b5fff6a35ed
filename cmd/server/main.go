package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"

	"github.com/lmittmann/tint"

	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/config"
	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/serverapp"
)

func main() {
	configPath := flag.String("config", "roster_config.yml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	handler, err := serverapp.NewHandler(context.Background(), serverapp.Options{
		Config: cfg,
		Logger: logger,
	})
	if err != nil {
		logger.Error("build server", "error", err)
		os.Exit(1)
	}

	logger.Info("listening", "addr", cfg.Listen)
	if err := http.ListenAndServe(cfg.Listen, handler); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
	}))
}
