// Package postgres stores contestants in a Postgres table with the question
// list as JSONB.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"millionaire-quiz-service/internal/domain"
)

// ContestantStore is a pgx-backed implementation of app.ContestantStore.
type ContestantStore struct {
	pool *pgxpool.Pool
}

func NewContestantStore(pool *pgxpool.Pool) *ContestantStore {
	return &ContestantStore{pool: pool}
}

const selectColumns = `id, name, questions, randomize_questions, randomize_options, enable_timer, timer_minutes`

func (s *ContestantStore) List(ctx context.Context) ([]domain.Contestant, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+selectColumns+` FROM contestants ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list contestants: %w", err)
	}
	defer rows.Close()

	var out []domain.Contestant
	for rows.Next() {
		contestant, err := scanContestant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, contestant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contestants: %w", err)
	}
	return out, nil
}

func (s *ContestantStore) Get(ctx context.Context, id string) (domain.Contestant, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM contestants WHERE id=$1`, id)
	contestant, err := scanContestant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Contestant{}, domain.ErrContestantNotFound
		}
		return domain.Contestant{}, err
	}
	return contestant, nil
}

func (s *ContestantStore) Create(ctx context.Context, insert domain.NewContestant) (domain.Contestant, error) {
	contestant := domain.Materialize(insert, uuid.NewString())
	questions, err := json.Marshal(contestant.Questions)
	if err != nil {
		return domain.Contestant{}, fmt.Errorf("encode questions: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO contestants (id, name, questions, randomize_questions, randomize_options, enable_timer, timer_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		contestant.ID, contestant.Name, questions,
		contestant.RandomizeQuestions, contestant.RandomizeOptions,
		contestant.EnableTimer, contestant.TimerMinutes,
	)
	if err != nil {
		return domain.Contestant{}, fmt.Errorf("insert contestant: %w", err)
	}
	return contestant, nil
}

func (s *ContestantStore) Delete(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM contestants WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete contestant: %w", err)
	}
	return nil
}

func scanContestant(row pgx.Row) (domain.Contestant, error) {
	var c domain.Contestant
	var questions []byte
	if err := row.Scan(&c.ID, &c.Name, &questions, &c.RandomizeQuestions, &c.RandomizeOptions, &c.EnableTimer, &c.TimerMinutes); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Contestant{}, err
		}
		return domain.Contestant{}, fmt.Errorf("scan contestant: %w", err)
	}
	if err := json.Unmarshal(questions, &c.Questions); err != nil {
		return domain.Contestant{}, fmt.Errorf("unmarshal questions: %w", err)
	}
	return c, nil
}
