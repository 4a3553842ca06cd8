package pgrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/programme-lv/writing/logger"
	"github.com/programme-lv/writing/writing/domain"
)

type pgSubmRepo struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
}

// NewPgSubmRepo returns a repository over a shared pool. A zero
// queryTimeout leaves queries bounded only by the caller's context.
func NewPgSubmRepo(pool *pgxpool.Pool, queryTimeout time.Duration) *pgSubmRepo {
	return &pgSubmRepo{pool: pool, queryTimeout: queryTimeout}
}

// NewPool opens a pgx pool and verifies connectivity.
func NewPool(ctx context.Context, pgURL string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(pgURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pg config: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to pg: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping pg: %w", err)
	}
	return pool, nil
}

func (r *pgSubmRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

const listByUserQuery = `
	SELECT uuid, user_id, created_at, difficulty, topic, prompt_text,
		user_text, word_count, evaluation::text
	FROM writing_submissions
	WHERE user_id = $1
	ORDER BY created_at DESC
`

func (r *pgSubmRepo) ListByUser(ctx context.Context, userID string) ([]domain.WritingSubm, error) {
	log := logger.FromContext(ctx)
	log.Debug("executing ListByUser query", "user_id", userID)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, listByUserQuery, userID)
	if err != nil {
		log.Debug("failed to query writing submissions", "error", err)
		return nil, fmt.Errorf("failed to query writing submissions: %w", err)
	}

	subms, err := pgx.CollectRows(rows, scanSubm)
	if err != nil {
		log.Debug("failed to scan writing submissions", "error", err)
		return nil, fmt.Errorf("failed to scan writing submissions: %w", err)
	}
	if subms == nil {
		subms = []domain.WritingSubm{}
	}

	log.Debug("ListByUser query completed", "count", len(subms))
	return subms, nil
}

func scanSubm(row pgx.CollectableRow) (domain.WritingSubm, error) {
	var s domain.WritingSubm
	var eval *string
	err := row.Scan(
		&s.UUID,
		&s.UserID,
		&s.CreatedAt,
		&s.Difficulty,
		&s.Topic,
		&s.PromptText,
		&s.UserText,
		&s.WordCount,
		&eval,
	)
	if err != nil {
		return domain.WritingSubm{}, err
	}
	if eval != nil {
		s.Evaluation = json.RawMessage(*eval)
	}
	return s, nil
}

func (r *pgSubmRepo) StoreSubm(ctx context.Context, s domain.WritingSubm) error {
	log := logger.FromContext(ctx)
	log.Debug("storing writing submission", "subm_uuid", s.UUID, "user_id", s.UserID)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO writing_submissions (
			uuid, user_id, created_at, difficulty, topic,
			prompt_text, user_text, word_count, evaluation
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::jsonb)
		ON CONFLICT (uuid) DO UPDATE SET
			difficulty = EXCLUDED.difficulty,
			topic = EXCLUDED.topic,
			prompt_text = EXCLUDED.prompt_text,
			user_text = EXCLUDED.user_text,
			word_count = EXCLUDED.word_count,
			evaluation = EXCLUDED.evaluation
	`,
		s.UUID,
		s.UserID,
		s.CreatedAt,
		s.Difficulty,
		s.Topic,
		s.PromptText,
		s.UserText,
		s.WordCount,
		s.EvaluationOrNil(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert writing submission: %w", err)
	}
	return nil
}

func (r *pgSubmRepo) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.pool.Ping(ctx)
}
