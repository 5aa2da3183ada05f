package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hegaajarad/cashbox/internal/core/domain"
)

type CashBoxRepository struct {
	db *pgxpool.Pool
}

func NewCashBoxRepository(db *pgxpool.Pool) *CashBoxRepository {
	return &CashBoxRepository{db: db}
}

func (r *CashBoxRepository) Create(ctx context.Context, customerID uuid.UUID, currencyCode, accountTypeCode, name string) (*domain.CashBox, error) {
	query := `
		INSERT INTO cashboxes (customer_id, currency_code, account_type_code, name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, customer_id, currency_code, account_type_code, name, created_at
	`
	var b domain.CashBox
	err := r.db.QueryRow(ctx, query, customerID, currencyCode, accountTypeCode, name).Scan(
		&b.ID, &b.CustomerID, &b.CurrencyCode, &b.AccountTypeCode, &b.Name, &b.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cashbox: %w", err)
	}
	return &b, nil
}

func (r *CashBoxRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CashBox, error) {
	query := `
		SELECT id, customer_id, currency_code, account_type_code, name, created_at
		FROM cashboxes WHERE id = $1
	`
	var b domain.CashBox
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.CustomerID, &b.CurrencyCode, &b.AccountTypeCode, &b.Name, &b.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// FetchCashBoxesForCustomer returns the customer's boxes in creation
// order. Satisfies ledger.CashBoxSource.
func (r *CashBoxRepository) FetchCashBoxesForCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.CashBox, error) {
	query := `
		SELECT id, customer_id, currency_code, account_type_code, name, created_at
		FROM cashboxes
		WHERE customer_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	boxes := []domain.CashBox{}
	for rows.Next() {
		var b domain.CashBox
		if err := rows.Scan(&b.ID, &b.CustomerID, &b.CurrencyCode, &b.AccountTypeCode, &b.Name, &b.CreatedAt); err != nil {
			return nil, err
		}
		boxes = append(boxes, b)
	}
	return boxes, rows.Err()
}
