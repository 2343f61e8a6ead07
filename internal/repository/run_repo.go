package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"reddit-persona/internal/domain"
)

// ErrRunNotFound indica que no hay corridas guardadas para el usuario.
var ErrRunNotFound = errors.New("analysis run not found")

// RunRepository persiste corridas de analisis (persona + citas).
type RunRepository interface {
	Save(ctx context.Context, run domain.AnalysisRun) error
	GetLatestByUsername(ctx context.Context, username string) (domain.AnalysisRun, error)
	ListByUsername(ctx context.Context, username string, limit int) ([]domain.AnalysisRun, error)
}

type PgRunRepository struct {
	pool *pgxpool.Pool
}

func NewPgRunRepository(pool *pgxpool.Pool) *PgRunRepository {
	return &PgRunRepository{pool: pool}
}

func (r *PgRunRepository) Save(ctx context.Context, run domain.AnalysisRun) error {
	const query = `
		INSERT INTO analysis_runs (id, username, persona, citations, item_count, skipped_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	personaJSON, err := json.Marshal(run.Persona)
	if err != nil {
		return fmt.Errorf("marshal persona: %w", err)
	}
	citationsJSON, err := json.Marshal(run.Citations)
	if err != nil {
		return fmt.Errorf("marshal citations: %w", err)
	}

	_, err = r.pool.Exec(ctx, query,
		run.ID,
		run.Username,
		personaJSON,
		citationsJSON,
		run.ItemCount,
		run.SkippedCount,
		run.CreatedAt,
	)
	return err
}

func (r *PgRunRepository) GetLatestByUsername(ctx context.Context, username string) (domain.AnalysisRun, error) {
	const query = `
		SELECT id, username, persona, citations, item_count, skipped_count, created_at
		FROM analysis_runs
		WHERE username = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	row := r.pool.QueryRow(ctx, query, username)
	run, err := scanRun(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.AnalysisRun{}, ErrRunNotFound
	}
	return run, err
}

func (r *PgRunRepository) ListByUsername(ctx context.Context, username string, limit int) ([]domain.AnalysisRun, error) {
	const query = `
		SELECT id, username, persona, citations, item_count, skipped_count, created_at
		FROM analysis_runs
		WHERE username = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	if limit <= 0 {
		limit = 10
	}

	rows, err := r.pool.Query(ctx, query, username, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []domain.AnalysisRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}

func scanRun(row pgx.Row) (domain.AnalysisRun, error) {
	var run domain.AnalysisRun
	var personaJSON, citationsJSON []byte

	if err := row.Scan(
		&run.ID,
		&run.Username,
		&personaJSON,
		&citationsJSON,
		&run.ItemCount,
		&run.SkippedCount,
		&run.CreatedAt,
	); err != nil {
		return domain.AnalysisRun{}, err
	}
	if err := json.Unmarshal(personaJSON, &run.Persona); err != nil {
		return domain.AnalysisRun{}, fmt.Errorf("unmarshal persona: %w", err)
	}
	if len(citationsJSON) > 0 {
		if err := json.Unmarshal(citationsJSON, &run.Citations); err != nil {
			return domain.AnalysisRun{}, fmt.Errorf("unmarshal citations: %w", err)
		}
	}
	return run, nil
}
