package statsdb

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndFetchRecentRuns(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(filepath.Join(dir, "runs.duckdb"))
	require.NoError(t, err)
	defer db.Close()

	older := RunStats{
		StartedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		InputGFA:    "graph.gfa",
		VertexCount: 100,
		EdgeCount:   120,
		RefCount:    3,
		RoVCount:    10,
		RecordCount: 8,
		Duration:    2 * time.Second,
	}
	newer := older
	newer.StartedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	newer.RecordCount = 9

	require.NoError(t, db.RecordRun(older))
	require.NoError(t, db.RecordRun(newer))

	runs, err := db.RecentRuns("graph.gfa", 5)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 9, runs[0].RecordCount, "newest run should sort first")
	assert.Equal(t, 8, runs[1].RecordCount)
}

func TestRecentRunsFiltersByInputGFA(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(filepath.Join(dir, "runs.duckdb"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.RecordRun(RunStats{InputGFA: "a.gfa", RecordCount: 1}))
	require.NoError(t, db.RecordRun(RunStats{InputGFA: "b.gfa", RecordCount: 2}))

	runs, err := db.RecentRuns("a.gfa", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "a.gfa", runs[0].InputGFA)
}
