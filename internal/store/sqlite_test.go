package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	st, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestRecordAndListRuns(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	run := model.Run{
		ID:           uuid.New().String(),
		ICPName:      "Q3 Fintech Push",
		TotalLeads:   5,
		UsedFallback: true,
		DurationMS:   1234,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, st.RecordRun(ctx, run))

	runs, err := st.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, run.ICPName, got.ICPName)
	assert.Equal(t, 5, got.TotalLeads)
	assert.True(t, got.UsedFallback)
	assert.Equal(t, int64(1234), got.DurationMS)
}

func TestListRuns_FilterByICPName(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"alpha", "beta", "alpha"} {
		require.NoError(t, st.RecordRun(ctx, model.Run{
			ID:      uuid.New().String(),
			ICPName: name,
		}))
	}

	runs, err := st.ListRuns(ctx, RunFilter{ICPName: "alpha"})
	require.NoError(t, err)
	require.Len(t, runs, 2)
	for _, r := range runs {
		assert.Equal(t, "alpha", r.ICPName)
	}
}

func TestListRuns_OrderAndLimit(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	ids := make([]string, 3)
	for i := range ids {
		ids[i] = uuid.New().String()
		require.NoError(t, st.RecordRun(ctx, model.Run{
			ID:        ids[i],
			ICPName:   "ordered",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	runs, err := st.ListRuns(ctx, RunFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[1], runs[1].ID)
}

func TestRecordRun_DuplicateIDRejected(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	run := model.Run{ID: "fixed-id", ICPName: "dup"}
	require.NoError(t, st.RecordRun(ctx, run))
	assert.Error(t, st.RecordRun(ctx, run))
}
