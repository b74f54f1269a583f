// Package statsdb persists per-run variant-calling statistics to a local
// DuckDB file, so successive runs over the same graph can be compared.
package statsdb

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/marcboeker/go-duckdb"
)

// DB is a run-stats cache backed by a DuckDB file.
type DB struct {
	sql  *sql.DB
	path string
}

// Open creates (or attaches to) the DuckDB file at path and ensures the
// runs table exists.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("statsdb: open %s: %w", path, err)
	}
	db := &DB{sql: conn, path: path}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) migrate() error {
	_, err := db.sql.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			started_at    TIMESTAMP,
			input_gfa     VARCHAR,
			vertex_count  INTEGER,
			edge_count    INTEGER,
			ref_count     INTEGER,
			rov_count     INTEGER,
			tangled_count INTEGER,
			record_count  INTEGER,
			duration_ms   BIGINT
		)
	`)
	if err != nil {
		return fmt.Errorf("statsdb: migrate: %w", err)
	}
	return nil
}

// RunStats summarizes one gfa2vcf/call invocation.
type RunStats struct {
	StartedAt    time.Time
	InputGFA     string
	VertexCount  int
	EdgeCount    int
	RefCount     int
	RoVCount     int
	TangledCount int
	RecordCount  int
	Duration     time.Duration
}

// RecordRun appends one run's stats.
func (db *DB) RecordRun(s RunStats) error {
	_, err := db.sql.Exec(`
		INSERT INTO runs (started_at, input_gfa, vertex_count, edge_count, ref_count,
		                   rov_count, tangled_count, record_count, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.StartedAt, s.InputGFA, s.VertexCount, s.EdgeCount, s.RefCount,
		s.RoVCount, s.TangledCount, s.RecordCount, s.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("statsdb: record run: %w", err)
	}
	return nil
}

// RecentRuns returns the most recent n runs for inputGFA, newest first.
func (db *DB) RecentRuns(inputGFA string, n int) ([]RunStats, error) {
	rows, err := db.sql.Query(`
		SELECT started_at, input_gfa, vertex_count, edge_count, ref_count,
		       rov_count, tangled_count, record_count, duration_ms
		FROM runs
		WHERE input_gfa = ?
		ORDER BY started_at DESC
		LIMIT ?
	`, inputGFA, n)
	if err != nil {
		return nil, fmt.Errorf("statsdb: query recent runs: %w", err)
	}
	defer rows.Close()

	var out []RunStats
	for rows.Next() {
		var s RunStats
		var durMs int64
		if err := rows.Scan(&s.StartedAt, &s.InputGFA, &s.VertexCount, &s.EdgeCount,
			&s.RefCount, &s.RoVCount, &s.TangledCount, &s.RecordCount, &durMs); err != nil {
			return nil, fmt.Errorf("statsdb: scan run: %w", err)
		}
		s.Duration = time.Duration(durMs) * time.Millisecond
		out = append(out, s)
	}
	return out, rows.Err()
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.sql.Close()
}
