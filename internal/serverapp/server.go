// Package serverapp wires the catalog, roster service and game engine
// into one HTTP handler.
package serverapp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/catalog"
	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/config"
	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/export"
	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/game"
	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/httpmw"
	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/roster"
)

type Options struct {
	Config *config.Config
	Logger *slog.Logger
}

// NewHandler loads the catalog and roster collection and returns the
// assembled API handler.
func NewHandler(ctx context.Context, opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	cfg := opts.Config
	logger := opts.Logger

	cat, err := catalog.Load(cfg.Catalog.Dir, logger)
	if err != nil {
		return nil, err
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	svc := roster.NewService(cat, store, logger)
	if err := svc.Load(ctx); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "roster-server",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if _, err := store.Load(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "storage unavailable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "roster-server",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	catalogHandler := catalog.NewHandler(cat)
	mux.HandleFunc("/api/catalog/cards", catalogHandler.Cards)
	mux.HandleFunc("/api/catalog/keywords", catalogHandler.KeywordList)

	rosterHandler := roster.NewHandler(svc)
	mux.HandleFunc("/api/roster/state", rosterHandler.GetState)
	mux.HandleFunc("/api/roster/cmd", rosterHandler.Command)

	gameHandler := game.NewHandler(svc)
	mux.HandleFunc("/api/game/enter", gameHandler.Enter)
	mux.HandleFunc("/api/game/exit", gameHandler.Exit)
	mux.HandleFunc("/api/game/state", gameHandler.GetState)
	mux.HandleFunc("/api/game/cmd", gameHandler.Command)

	exportHandler := export.NewHandler(svc)
	mux.HandleFunc("/api/export/sheet", exportHandler.Sheet)

	return httpmw.Chain(
		mux,
		httpmw.WithAccessLog(logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(logger),
	), nil
}

func newStore(ctx context.Context, cfg *config.Config) (roster.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return roster.NewMemoryStore(), nil
	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, err
		}
		return roster.NewRedisStore(rdb), nil
	default:
		return roster.NewFileStore(cfg.Storage.DataDir)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
