package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen/internal/model"
	"github.com/sells-group/leadgen/internal/pipeline"
	"github.com/sells-group/leadgen/internal/store"
)

var servePort int

// leadRunner is the slice of the pipeline the HTTP layer depends on.
type leadRunner interface {
	Run(ctx context.Context, icp model.ICP) (*pipeline.Result, error)
}

// healthStatus reports which external capabilities are configured. It is
// computed from config alone; the health endpoint makes no network calls.
type healthStatus struct {
	SearchConfigured bool `json:"search_configured"`
	OracleConfigured bool `json:"oracle_configured"`
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for lead search requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		health := healthStatus{
			SearchConfigured: cfg.BrightData.Token != "",
			OracleConfigured: cfg.Anthropic.Key != "",
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(e.Pipeline, e.Store, health),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newRouter builds the API routes over the given collaborators.
func newRouter(runner leadRunner, st store.Store, health healthStatus) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/api/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":            "healthy",
			"search_configured": health.SearchConfigured,
			"oracle_configured": health.OracleConfigured,
		})
	})

	r.Post("/api/search-leads", func(w http.ResponseWriter, req *http.Request) {
		var icp model.ICP
		if err := json.NewDecoder(req.Body).Decode(&icp); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"success": false,
				"error":   "invalid request body",
			})
			return
		}

		start := time.Now()
		result, err := runner.Run(req.Context(), icp)
		if err != nil {
			var verr *model.ValidationError
			if errors.As(err, &verr) {
				writeJSON(w, http.StatusBadRequest, map[string]any{
					"success":        false,
					"error":          verr.Error(),
					"missing_fields": verr.Missing,
				})
				return
			}

			zap.L().Error("lead search failed",
				zap.String("icp", icp.ICPName),
				zap.Error(err),
			)
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"success": false,
				"error":   err.Error(),
			})
			return
		}

		recordRun(req.Context(), st, result, time.Since(start))

		writeJSON(w, http.StatusOK, map[string]any{
			"success":     true,
			"icp_name":    result.ICPName,
			"timestamp":   result.Timestamp.Format(time.RFC3339),
			"total_leads": result.TotalLeads,
			"leads":       result.Leads,
		})
	})

	r.Get("/api/runs", func(w http.ResponseWriter, req *http.Request) {
		if st == nil {
			writeJSON(w, http.StatusOK, map[string]any{"runs": []model.Run{}})
			return
		}
		runs, err := st.ListRuns(req.Context(), store.RunFilter{
			ICPName: req.URL.Query().Get("icp_name"),
		})
		if err != nil {
			zap.L().Error("list runs failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error": "failed to list runs",
			})
			return
		}
		if runs == nil {
			runs = []model.Run{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
	})

	return r
}

// recordRun writes one audit row; failures are logged, never surfaced.
func recordRun(ctx context.Context, st store.Store, result *pipeline.Result, took time.Duration) {
	if st == nil {
		return
	}
	err := st.RecordRun(ctx, model.Run{
		ID:           uuid.New().String(),
		ICPName:      result.ICPName,
		TotalLeads:   result.TotalLeads,
		UsedFallback: result.UsedFallback,
		DurationMS:   took.Milliseconds(),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		zap.L().Warn("failed to record run", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
