package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plushmarket/storefront/internal/model"
)

// AttemptRepository journals checkout attempts: one row per run through the
// pipeline, holding the current state plus enough context to resume it.
type AttemptRepository interface {
	Create(ctx context.Context, attempt *model.CheckoutAttempt) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.CheckoutAttempt, error)
	Update(ctx context.Context, attempt *model.CheckoutAttempt) error
	ListByUserID(ctx context.Context, userID string) ([]model.CheckoutAttempt, error)
}

type pgAttemptRepo struct{ pool *pgxpool.Pool }

func NewAttemptRepository(pool *pgxpool.Pool) AttemptRepository {
	return &pgAttemptRepo{pool: pool}
}

func (r *pgAttemptRepo) Create(ctx context.Context, attempt *model.CheckoutAttempt) error {
	query := `INSERT INTO checkout_attempts
			  (id, user_id, state, order_id, session_url, idempotency_key, items, last_error, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW()) RETURNING created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		attempt.ID, attempt.UserID, attempt.State, attempt.OrderID,
		attempt.SessionURL, attempt.IdempotencyKey, attempt.Items, attempt.LastError,
	).Scan(&attempt.CreatedAt, &attempt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

func (r *pgAttemptRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.CheckoutAttempt, error) {
	query := `SELECT id, user_id, state, order_id, session_url, idempotency_key, items, last_error, created_at, updated_at
			  FROM checkout_attempts WHERE id = $1`
	a := &model.CheckoutAttempt{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.UserID, &a.State, &a.OrderID, &a.SessionURL,
		&a.IdempotencyKey, &a.Items, &a.LastError, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get attempt: %w", err)
	}
	return a, nil
}

func (r *pgAttemptRepo) Update(ctx context.Context, attempt *model.CheckoutAttempt) error {
	query := `UPDATE checkout_attempts
			  SET state=$2, order_id=$3, session_url=$4, last_error=$5, updated_at=NOW()
			  WHERE id=$1 RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		attempt.ID, attempt.State, attempt.OrderID, attempt.SessionURL, attempt.LastError,
	).Scan(&attempt.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("attempt not found: %s", attempt.ID)
		}
		return fmt.Errorf("update attempt: %w", err)
	}
	return nil
}

func (r *pgAttemptRepo) ListByUserID(ctx context.Context, userID string) ([]model.CheckoutAttempt, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, state, order_id, session_url, idempotency_key, items, last_error, created_at, updated_at
		 FROM checkout_attempts WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []model.CheckoutAttempt
	for rows.Next() {
		var a model.CheckoutAttempt
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.State, &a.OrderID, &a.SessionURL,
			&a.IdempotencyKey, &a.Items, &a.LastError, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, nil
}
