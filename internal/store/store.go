// Package store persists the run audit log. Leads themselves are never
// stored; only operational metadata about each processed search.
package store

import (
	"context"

	"github.com/sells-group/leadgen/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	ICPName string `json:"icp_name,omitempty"`
	Limit   int    `json:"limit,omitempty"`
}

// Store defines the audit-log persistence interface.
type Store interface {
	RecordRun(ctx context.Context, run model.Run) error
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)
	Migrate(ctx context.Context) error
	Close() error
}
