package app

import (
	"context"
	"fmt"

	"github.com/blackwell-systems/funnelplan/internal/config"
	"github.com/blackwell-systems/funnelplan/internal/draft"
	"github.com/blackwell-systems/funnelplan/internal/store"
)

// openDB opens the configured SQLite database.
func openDB(cfg *config.Config) (*store.DB, error) {
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", cfg.DBPath, err)
	}
	return db, nil
}

// openDraftStore returns the configured draft backend. The sqlite backend
// shares db; the returned close func releases anything else it opened.
func openDraftStore(ctx context.Context, cfg *config.Config, db *store.DB) (draft.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Draft.Backend {
	case config.BackendMemory:
		return draft.NewMemory(), noop, nil

	case config.BackendRedis:
		r := draft.NewRedis(draft.RedisOptions{
			Addr:     cfg.Draft.RedisAddr,
			Password: cfg.Draft.RedisPassword,
			DB:       cfg.Draft.RedisDB,
			Prefix:   cfg.Draft.KeyPrefix,
			TTL:      cfg.Draft.TTL,
		})
		if err := r.Ping(ctx); err != nil {
			_ = r.Close()
			return nil, nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Draft.RedisAddr, err)
		}
		return r, r.Close, nil

	default:
		if db == nil {
			return nil, nil, fmt.Errorf("sqlite draft backend needs an open database")
		}
		return db.Drafts(), noop, nil
	}
}
