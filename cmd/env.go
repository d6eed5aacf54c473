package main

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/leadgen/internal/pipeline"
	"github.com/sells-group/leadgen/internal/store"
	"github.com/sells-group/leadgen/pkg/anthropic"
	"github.com/sells-group/leadgen/pkg/brightdata"
)

// env bundles the wired pipeline and its collaborators for a command.
type env struct {
	Pipeline *pipeline.Pipeline
	Store    store.Store
}

// initEnv wires the search gateway, oracle, and audit store from config.
// The store is optional: a failure to open it degrades to logging only.
func initEnv(ctx context.Context) (*env, error) {
	var gwOpts []brightdata.Option
	if cfg.BrightData.BaseURL != "" {
		gwOpts = append(gwOpts, brightdata.WithBaseURL(cfg.BrightData.BaseURL))
	}
	if cfg.BrightData.TimeoutSecs > 0 {
		gwOpts = append(gwOpts, brightdata.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.BrightData.TimeoutSecs) * time.Second,
		}))
	}
	gateway := brightdata.NewClient(cfg.BrightData.Token, gwOpts...)
	oracle := anthropic.NewClient(cfg.Anthropic.Key)

	e := &env{
		Pipeline: pipeline.New(gateway, oracle, cfg.Pipeline, cfg.BrightData, cfg.Anthropic),
	}

	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		zap.L().Warn("audit store unavailable, runs will not be recorded",
			zap.String("path", cfg.Store.Path),
			zap.Error(err),
		)
		return e, nil
	}
	if err := st.Migrate(ctx); err != nil {
		zap.L().Warn("audit store migration failed, runs will not be recorded",
			zap.Error(err),
		)
		st.Close()
		return e, nil
	}
	e.Store = st

	return e, nil
}

// Close releases resources held by the environment.
func (e *env) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}
