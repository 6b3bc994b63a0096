package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"linfer/domain/core"
	"linfer/domain/dataset"
	"linfer/domain/regression"
	"linfer/domain/run"
	"linfer/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// runRepository implements ports.RunRepository over postgres
type runRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &runRepository{db: db}
}

// Connect opens a postgres connection pool
func Connect(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return db, nil
}

// Migrate creates the runs table if it does not exist
func Migrate(db *sqlx.DB) error {
	schema := `CREATE TABLE IF NOT EXISTS analysis_runs (
		id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		params JSONB NOT NULL,
		fingerprint TEXT NOT NULL,
		frequentist JSONB NOT NULL,
		posterior JSONB NOT NULL,
		comparison JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_analysis_runs_created_at ON analysis_runs (created_at DESC);`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate analysis_runs: %w", err)
	}
	return nil
}

// Create inserts a completed run
func (r *runRepository) Create(ctx context.Context, ar *run.AnalysisRun) error {
	paramsJSON, err := json.Marshal(ar.Params)
	if err != nil {
		return fmt.Errorf("failed to marshal params: %w", err)
	}
	freqJSON, err := json.Marshal(ar.Frequentist)
	if err != nil {
		return fmt.Errorf("failed to marshal frequentist fit: %w", err)
	}
	postJSON, err := json.Marshal(ar.Posterior)
	if err != nil {
		return fmt.Errorf("failed to marshal posterior fit: %w", err)
	}
	compJSON, err := json.Marshal(ar.Comparison)
	if err != nil {
		return fmt.Errorf("failed to marshal comparison: %w", err)
	}

	query := `INSERT INTO analysis_runs (
		id, status, params, fingerprint, frequentist, posterior, comparison, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.db.ExecContext(ctx, query,
		ar.ID.String(), string(ar.Status), paramsJSON, ar.Fingerprint().String(),
		freqJSON, postJSON, compJSON, ar.CreatedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// GetByID retrieves a run by its ID
func (r *runRepository) GetByID(ctx context.Context, id core.RunID) (*run.AnalysisRun, error) {
	query := `SELECT id, status, params, fingerprint, frequentist, posterior, comparison, created_at
		FROM analysis_runs WHERE id = $1`

	row := r.db.QueryRowxContext(ctx, query, id.String())
	ar, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, core.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}
	return ar, nil
}

// List returns recent runs, newest first
func (r *runRepository) List(ctx context.Context, limit int) ([]*run.AnalysisRun, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, status, params, fingerprint, frequentist, posterior, comparison, created_at
		FROM analysis_runs ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.QueryxContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*run.AnalysisRun
	for rows.Next() {
		ar, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, ar)
	}
	return runs, rows.Err()
}

// rowScanner covers both Row and Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*run.AnalysisRun, error) {
	var (
		ar          run.AnalysisRun
		id          string
		status      string
		fingerprint string
		paramsJSON  []byte
		freqJSON    []byte
		postJSON    []byte
		compJSON    []byte
		createdAt   sql.NullTime
	)

	if err := row.Scan(&id, &status, &paramsJSON, &fingerprint, &freqJSON, &postJSON, &compJSON, &createdAt); err != nil {
		return nil, err
	}

	ar.ID = core.RunID(id)
	ar.Status = run.Status(status)
	if err := json.Unmarshal(paramsJSON, &ar.Params); err != nil {
		return nil, fmt.Errorf("failed to unmarshal params: %w", err)
	}
	ar.Frequentist = &regression.FrequentistFit{}
	if err := json.Unmarshal(freqJSON, ar.Frequentist); err != nil {
		return nil, fmt.Errorf("failed to unmarshal frequentist fit: %w", err)
	}
	ar.Posterior = &regression.PosteriorFit{}
	if err := json.Unmarshal(postJSON, ar.Posterior); err != nil {
		return nil, fmt.Errorf("failed to unmarshal posterior fit: %w", err)
	}
	ar.Comparison = &regression.Comparison{}
	if err := json.Unmarshal(compJSON, ar.Comparison); err != nil {
		return nil, fmt.Errorf("failed to unmarshal comparison: %w", err)
	}
	if createdAt.Valid {
		ar.CreatedAt = core.NewTimestamp(createdAt.Time)
	}

	// Raw observations are not persisted; keep the fingerprint visible
	ar.Dataset = &dataset.SyntheticDataset{
		Params:      ar.Params,
		Fingerprint: core.DatasetFingerprint(fingerprint),
	}

	return &ar, nil
}
