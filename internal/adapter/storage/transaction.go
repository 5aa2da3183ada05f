package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/hegaajarad/cashbox/internal/core/domain"
)

type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create records an immutable transaction. Amounts are stored at the
// precision they were entered with; no quantization happens here.
func (r *TransactionRepository) Create(ctx context.Context, cashBoxID uuid.UUID, dir domain.Direction, amount decimal.Decimal, note string) (*domain.Transaction, error) {
	if err := domain.ValidateNewTransaction(dir, amount); err != nil {
		return nil, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// The cashbox must exist; surface a clean not-found instead of an
	// FK violation.
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM cashboxes WHERE id = $1)`, cashBoxID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	query := `
		INSERT INTO transactions (cashbox_id, direction, amount, note)
		VALUES ($1, $2, $3, $4)
		RETURNING id, cashbox_id, direction, amount, note, created_at
	`
	var t domain.Transaction
	err = tx.QueryRow(ctx, query, cashBoxID, string(dir), amount, note).Scan(
		&t.ID, &t.CashBoxID, &t.Direction, &t.Amount, &t.Note, &t.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT id, cashbox_id, direction, amount, note, created_at FROM transactions WHERE id = $1`
	var t domain.Transaction
	err := r.db.QueryRow(ctx, query, id).Scan(&t.ID, &t.CashBoxID, &t.Direction, &t.Amount, &t.Note, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FetchTransactions returns a box's history in chronological order,
// ties broken by insertion order. Satisfies ledger.TransactionSource.
func (r *TransactionRepository) FetchTransactions(ctx context.Context, cashBoxID uuid.UUID) ([]domain.Transaction, error) {
	query := `
		SELECT id, cashbox_id, direction, amount, note, created_at
		FROM transactions
		WHERE cashbox_id = $1
		ORDER BY created_at, seq
	`
	return r.queryTransactions(ctx, query, cashBoxID)
}

// ListForCashBoxDesc is the review/statement ordering: newest first.
func (r *TransactionRepository) ListForCashBoxDesc(ctx context.Context, cashBoxID uuid.UUID) ([]domain.Transaction, error) {
	query := `
		SELECT id, cashbox_id, direction, amount, note, created_at
		FROM transactions
		WHERE cashbox_id = $1
		ORDER BY created_at DESC, seq DESC
	`
	return r.queryTransactions(ctx, query, cashBoxID)
}

// ListForCustomerDesc returns all transactions across a customer's
// boxes, newest first.
func (r *TransactionRepository) ListForCustomerDesc(ctx context.Context, customerID uuid.UUID) ([]domain.Transaction, error) {
	query := `
		SELECT t.id, t.cashbox_id, t.direction, t.amount, t.note, t.created_at
		FROM transactions t
		JOIN cashboxes b ON t.cashbox_id = b.id
		WHERE b.customer_id = $1
		ORDER BY t.created_at DESC, t.seq DESC
	`
	return r.queryTransactions(ctx, query, customerID)
}

func (r *TransactionRepository) queryTransactions(ctx context.Context, query string, arg any) ([]domain.Transaction, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.CashBoxID, &t.Direction, &t.Amount, &t.Note, &t.CreatedAt); err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// QueueWebhook enqueues an event for the background worker.
func (r *TransactionRepository) QueueWebhook(ctx context.Context, url string, payload []byte) error {
	_, err := r.db.Exec(ctx, `INSERT INTO webhook_jobs (url, payload) VALUES ($1, $2)`, url, payload)
	return err
}
