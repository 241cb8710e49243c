package quiz

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"quiz-service/internal/db"
)

type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, q *Quiz) (*Quiz, error) {

	query := `
		INSERT INTO quizzes (question, option_a, option_b, option_c, option_d, correct_option)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		q.Question, q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectOption,
	).Scan(&q.ID, &q.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return q, nil
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*Quiz, error) {

	query := `
		SELECT id, question, option_a, option_b, option_c, option_d, correct_option, created_at
		FROM quizzes
		WHERE id = $1
	`

	q := &Quiz{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&q.ID, &q.Question, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD,
		&q.CorrectOption, &q.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return q, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Quiz, error) {

	query := `
		SELECT id, question, option_a, option_b, option_c, option_d, correct_option, created_at
		FROM quizzes
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []Quiz
	for rows.Next() {
		var q Quiz
		if err := rows.Scan(
			&q.ID, &q.Question, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD,
			&q.CorrectOption, &q.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}

func (s *PostgresStore) Update(ctx context.Context, id uuid.UUID, upd Update) (*Quiz, error) {

	// nil pointers become SQL NULLs, so COALESCE keeps the current value
	query := `
		UPDATE quizzes
		SET question       = COALESCE($2, question),
		    option_a       = COALESCE($3, option_a),
		    option_b       = COALESCE($4, option_b),
		    option_c       = COALESCE($5, option_c),
		    option_d       = COALESCE($6, option_d),
		    correct_option = COALESCE($7, correct_option)
		WHERE id = $1
		RETURNING id, question, option_a, option_b, option_c, option_d, correct_option, created_at
	`

	q := &Quiz{}
	err := s.db.QueryRowContext(ctx, query, id,
		upd.Question, upd.OptionA, upd.OptionB, upd.OptionC, upd.OptionD, upd.CorrectOption,
	).Scan(
		&q.ID, &q.Question, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD,
		&q.CorrectOption, &q.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return q, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {

	res, err := s.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}
