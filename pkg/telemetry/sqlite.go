package telemetry

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteSink persists generation records to a SQLite history table so runs
// can be inspected after the process exits. It is an observability log,
// not engine state: the engine never reads it back.
type SQLiteSink struct {
	db *sql.DB
}

// SQLiteConfig controls the history database.
type SQLiteConfig struct {
	// Path is the database file; ":memory:" works for tests.
	Path string
	// EnableWAL turns on write-ahead logging for concurrent readers.
	EnableWAL bool
}

// NewSQLiteSink opens (or creates) the history database.
func NewSQLiteSink(config SQLiteConfig) (*SQLiteSink, error) {
	if config.Path == "" {
		config.Path = "algen_history.db"
	}

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sink := &SQLiteSink{db: db}
	if err := sink.initDB(); err != nil {
		db.Close()
		return nil, err
	}

	if config.EnableWAL {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}
	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set synchronous pragma: %w", err)
	}

	return sink, nil
}

func (s *SQLiteSink) initDB() error {
	schema := `
	CREATE TABLE IF NOT EXISTS generation_history (
		run_id TEXT NOT NULL,
		generation INTEGER NOT NULL,
		population_size INTEGER NOT NULL,
		best_fitness REAL NOT NULL,
		mean_fitness REAL NOT NULL,
		worst_fitness REAL NOT NULL,
		failures INTEGER NOT NULL,
		scoring_ms INTEGER NOT NULL,
		reproduction_ms INTEGER NOT NULL,
		total_ms INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL,
		PRIMARY KEY (run_id, generation)
	);
	CREATE INDEX IF NOT EXISTS idx_history_run ON generation_history(run_id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return nil
}

func (s *SQLiteSink) Record(ctx context.Context, rec Generation) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO generation_history
		(run_id, generation, population_size, best_fitness, mean_fitness,
		 worst_fitness, failures, scoring_ms, reproduction_ms, total_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID,
		rec.Generation,
		rec.PopulationSize,
		rec.BestFitness,
		rec.MeanFitness,
		rec.WorstFitness,
		rec.Failures,
		rec.ScoringMillis,
		rec.ReproductionMillis,
		rec.TotalMillis,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record generation: %w", err)
	}
	return nil
}

// History returns the recorded generations of a run in order.
func (s *SQLiteSink) History(ctx context.Context, runID string) ([]Generation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, generation, population_size, best_fitness, mean_fitness,
		       worst_fitness, failures, scoring_ms, reproduction_ms, total_ms, created_at
		FROM generation_history
		WHERE run_id = ?
		ORDER BY generation`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var history []Generation
	for rows.Next() {
		var rec Generation
		if err := rows.Scan(
			&rec.RunID,
			&rec.Generation,
			&rec.PopulationSize,
			&rec.BestFitness,
			&rec.MeanFitness,
			&rec.WorstFitness,
			&rec.Failures,
			&rec.ScoringMillis,
			&rec.ReproductionMillis,
			&rec.TotalMillis,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		history = append(history, rec)
	}
	return history, rows.Err()
}

func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
