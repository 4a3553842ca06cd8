package sqliterepo

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/programme-lv/writing/logger"
	"github.com/programme-lv/writing/writing/domain"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// createdAtLayout is fixed width so that text order equals time order.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z"

type sqliteSubmRepo struct {
	db *sqlx.DB
}

// Open opens (creating if needed) the database at path and applies the
// schema.
func Open(ctx context.Context, path string) (*sqliteSubmRepo, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)"
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply sqlite schema: %w", err)
	}
	return &sqliteSubmRepo{db: db}, nil
}

func (r *sqliteSubmRepo) Close() error {
	return r.db.Close()
}

type submRow struct {
	UUID       string         `db:"uuid"`
	UserID     string         `db:"user_id"`
	CreatedAt  string         `db:"created_at"`
	Difficulty string         `db:"difficulty"`
	Topic      string         `db:"topic"`
	PromptText string         `db:"prompt_text"`
	UserText   string         `db:"user_text"`
	WordCount  int            `db:"word_count"`
	Evaluation sql.NullString `db:"evaluation"`
}

func toRow(s domain.WritingSubm) submRow {
	row := submRow{
		UUID:       s.UUID.String(),
		UserID:     s.UserID,
		CreatedAt:  s.CreatedAt.UTC().Format(createdAtLayout),
		Difficulty: s.Difficulty,
		Topic:      s.Topic,
		PromptText: s.PromptText,
		UserText:   s.UserText,
		WordCount:  s.WordCount,
	}
	if e := s.EvaluationOrNil(); e != nil {
		row.Evaluation = sql.NullString{String: *e, Valid: true}
	}
	return row
}

func (row submRow) toDomain() (domain.WritingSubm, error) {
	id, err := uuid.Parse(row.UUID)
	if err != nil {
		return domain.WritingSubm{}, fmt.Errorf("bad uuid %q: %w", row.UUID, err)
	}
	createdAt, err := time.Parse(createdAtLayout, row.CreatedAt)
	if err != nil {
		return domain.WritingSubm{}, fmt.Errorf("bad created_at %q: %w", row.CreatedAt, err)
	}
	s := domain.WritingSubm{
		UUID:       id,
		UserID:     row.UserID,
		CreatedAt:  createdAt,
		Difficulty: row.Difficulty,
		Topic:      row.Topic,
		PromptText: row.PromptText,
		UserText:   row.UserText,
		WordCount:  row.WordCount,
	}
	if row.Evaluation.Valid {
		s.Evaluation = json.RawMessage(row.Evaluation.String)
	}
	return s, nil
}

func (r *sqliteSubmRepo) ListByUser(ctx context.Context, userID string) ([]domain.WritingSubm, error) {
	log := logger.FromContext(ctx)
	log.Debug("executing ListByUser query", "user_id", userID)

	var rows []submRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT uuid, user_id, created_at, difficulty, topic, prompt_text,
			user_text, word_count, evaluation
		FROM writing_submissions
		WHERE user_id = ?
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query writing submissions: %w", err)
	}

	subms := make([]domain.WritingSubm, 0, len(rows))
	for _, row := range rows {
		s, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("failed to map writing submission: %w", err)
		}
		subms = append(subms, s)
	}
	return subms, nil
}

func (r *sqliteSubmRepo) StoreSubm(ctx context.Context, s domain.WritingSubm) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO writing_submissions (
			uuid, user_id, created_at, difficulty, topic,
			prompt_text, user_text, word_count, evaluation
		) VALUES (
			:uuid, :user_id, :created_at, :difficulty, :topic,
			:prompt_text, :user_text, :word_count, :evaluation
		)
		ON CONFLICT (uuid) DO UPDATE SET
			difficulty = excluded.difficulty,
			topic = excluded.topic,
			prompt_text = excluded.prompt_text,
			user_text = excluded.user_text,
			word_count = excluded.word_count,
			evaluation = excluded.evaluation
	`, toRow(s))
	if err != nil {
		return fmt.Errorf("failed to insert writing submission: %w", err)
	}
	return nil
}

func (r *sqliteSubmRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
