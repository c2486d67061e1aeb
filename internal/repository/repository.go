package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype/zeronull"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/samandr77/microservices/acquiring/internal/entity"
)

const defaultLimit = 50

type Repository struct {
	db *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{
		db: pool,
	}
}

// SavePollResult stores the result of a finished payment status poll.
func (r *Repository) SavePollResult(ctx context.Context, res entity.PollResult) error {
	var errText string
	if res.Err != nil {
		errText = res.Err.Error()
	}

	sql, args, err := sq.Insert(pollsTable).
		Columns(pollColumns...).
		Values(
			res.ID,
			res.PaymentID,
			res.Info.OrderID,
			res.Info.Amount,
			res.Outcome,
			res.State,
			res.Info.Status,
			res.Attempts,
			errText,
			res.StartedAt,
			res.FinishedAt,
		).
		Suffix("ON CONFLICT (id) DO NOTHING").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("insert poll result %s: %w", res.ID, err)
	}

	return nil
}

// PollResults returns finished polls of a payment, newest first.
func (r *Repository) PollResults(ctx context.Context, f entity.PollResultFilter) ([]entity.PollResult, error) {
	if f.Limit == 0 {
		f.Limit = defaultLimit
	}

	stmt := sq.Select(pollColumns...).
		From(pollsTable).
		Where(sq.Eq{"payment_id": f.PaymentID}).
		OrderBy("finished_at DESC").
		Limit(f.Limit).
		PlaceholderFormat(sq.Dollar)

	if f.Outcome != "" {
		stmt = stmt.Where(sq.Eq{"outcome": f.Outcome})
	}

	sql, args, err := stmt.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	results, err := pgx.CollectRows(rows, scanPollResult)
	if err != nil {
		return nil, fmt.Errorf("collect rows: %w", err)
	}

	return results, nil
}

func scanPollResult(row pgx.CollectableRow) (entity.PollResult, error) {
	var (
		res     entity.PollResult
		errText string
	)

	err := row.Scan(
		&res.ID,
		&res.PaymentID,
		(*zeronull.Text)(&res.Info.OrderID),
		&res.Info.Amount,
		&res.Outcome,
		&res.State,
		(*zeronull.Text)(&res.Info.Status),
		&res.Attempts,
		(*zeronull.Text)(&errText),
		&res.StartedAt,
		&res.FinishedAt,
	)
	if err != nil {
		return entity.PollResult{}, err
	}

	res.Info.PaymentID = res.PaymentID

	if errText != "" {
		res.Err = errors.New(errText)
	}

	return res, nil
}
