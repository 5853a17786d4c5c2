package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soteria-labs/soteria/pkg/engine"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS analysis_records (
	id              UUID PRIMARY KEY,
	text            TEXT NOT NULL,
	context         TEXT NOT NULL DEFAULT '',
	toxicity_score  DOUBLE PRECISION NOT NULL,
	is_toxic        BOOLEAN NOT NULL,
	category        TEXT NOT NULL,
	severity        TEXT NOT NULL,
	sentiment_score DOUBLE PRECISION NOT NULL,
	confidence      DOUBLE PRECISION NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analysis_records_created_at
	ON analysis_records (created_at DESC);`

// PostgresStore persists records to Postgres through a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects, verifies the connection and ensures the schema.
func NewPostgresStore(ctx context.Context, url string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = 10
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Save(ctx context.Context, rec Record) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO analysis_records
			(id, text, context, toxicity_score, is_toxic, category, severity,
			 sentiment_score, confidence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rec.ID, rec.Text, rec.Context, rec.ToxicityScore, rec.IsToxic,
		string(rec.Category), string(rec.Severity),
		rec.Sentiment, rec.Confidence, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	return nil
}

func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, text, context, toxicity_score, is_toxic, category, severity,
		       sentiment_score, confidence, created_at
		FROM analysis_records
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var category, severity string
		if err := rows.Scan(&rec.ID, &rec.Text, &rec.Context, &rec.ToxicityScore,
			&rec.IsToxic, &category, &severity,
			&rec.Sentiment, &rec.Confidence, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.Category = engine.Category(category)
		rec.Severity = engine.Severity(severity)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Stats(ctx context.Context) (Stats, error) {
	st := Stats{
		ByCategory: make(map[engine.Category]int),
		BySeverity: make(map[engine.Severity]int),
	}

	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_toxic)
		FROM analysis_records`).Scan(&st.TotalAnalyzed, &st.ToxicCount)
	if err != nil {
		return st, fmt.Errorf("aggregate totals: %w", err)
	}
	if st.TotalAnalyzed > 0 {
		st.ToxicRate = float64(st.ToxicCount) / float64(st.TotalAnalyzed)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT category, severity, COUNT(*)
		FROM analysis_records
		GROUP BY category, severity`)
	if err != nil {
		return st, fmt.Errorf("aggregate breakdown: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var category, severity string
		var n int
		if err := rows.Scan(&category, &severity, &n); err != nil {
			return st, fmt.Errorf("scan breakdown: %w", err)
		}
		st.ByCategory[engine.Category(category)] += n
		st.BySeverity[engine.Severity(severity)] += n
	}
	return st, rows.Err()
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
