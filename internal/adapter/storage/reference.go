package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hegaajarad/cashbox/internal/core/domain"
)

// CurrencyRepository manages the currency reference data consulted at
// rounding time.
type CurrencyRepository struct {
	db *pgxpool.Pool
}

func NewCurrencyRepository(db *pgxpool.Pool) *CurrencyRepository {
	return &CurrencyRepository{db: db}
}

func (r *CurrencyRepository) Create(ctx context.Context, cur domain.Currency) (*domain.Currency, error) {
	query := `
		INSERT INTO currencies (code, name, symbol, decimal_places, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING code, name, symbol, decimal_places, is_active, created_at
	`
	var out domain.Currency
	err := r.db.QueryRow(ctx, query, cur.Code, cur.Name, cur.Symbol, cur.DecimalPlaces, cur.IsActive).Scan(
		&out.Code, &out.Name, &out.Symbol, &out.DecimalPlaces, &out.IsActive, &out.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create currency: %w", err)
	}
	return &out, nil
}

// FetchCurrency resolves a code. (nil, nil) means unknown, which the
// ledger turns into a ConfigurationError. Satisfies
// ledger.CurrencySource.
func (r *CurrencyRepository) FetchCurrency(ctx context.Context, code string) (*domain.Currency, error) {
	query := `SELECT code, name, symbol, decimal_places, is_active, created_at FROM currencies WHERE code = $1`
	var cur domain.Currency
	err := r.db.QueryRow(ctx, query, code).Scan(
		&cur.Code, &cur.Name, &cur.Symbol, &cur.DecimalPlaces, &cur.IsActive, &cur.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cur, nil
}

func (r *CurrencyRepository) List(ctx context.Context) ([]domain.Currency, error) {
	query := `SELECT code, name, symbol, decimal_places, is_active, created_at FROM currencies ORDER BY code`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	currencies := []domain.Currency{}
	for rows.Next() {
		var cur domain.Currency
		if err := rows.Scan(&cur.Code, &cur.Name, &cur.Symbol, &cur.DecimalPlaces, &cur.IsActive, &cur.CreatedAt); err != nil {
			return nil, err
		}
		currencies = append(currencies, cur)
	}
	return currencies, rows.Err()
}

// AccountTypeRepository manages the cash box classification labels.
type AccountTypeRepository struct {
	db *pgxpool.Pool
}

func NewAccountTypeRepository(db *pgxpool.Pool) *AccountTypeRepository {
	return &AccountTypeRepository{db: db}
}

func (r *AccountTypeRepository) Create(ctx context.Context, code, name string) (*domain.AccountType, error) {
	query := `INSERT INTO account_types (code, name) VALUES ($1, $2) RETURNING code, name`
	var at domain.AccountType
	if err := r.db.QueryRow(ctx, query, code, name).Scan(&at.Code, &at.Name); err != nil {
		return nil, fmt.Errorf("failed to create account type: %w", err)
	}
	return &at, nil
}

func (r *AccountTypeRepository) List(ctx context.Context) ([]domain.AccountType, error) {
	rows, err := r.db.Query(ctx, `SELECT code, name FROM account_types ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := []domain.AccountType{}
	for rows.Next() {
		var at domain.AccountType
		if err := rows.Scan(&at.Code, &at.Name); err != nil {
			return nil, err
		}
		types = append(types, at)
	}
	return types, rows.Err()
}

// SaveAPIKey stores the hashed operator key.
func SaveAPIKey(ctx context.Context, db *pgxpool.Pool, keyHash, keyPrefix, label string) error {
	query := `INSERT INTO api_keys (key_hash, key_prefix, label) VALUES ($1, $2, $3)`
	if _, err := db.Exec(ctx, query, keyHash, keyPrefix, label); err != nil {
		return fmt.Errorf("failed to save api key: %w", err)
	}
	return nil
}

// Counts powers the dashboard.
type Counts struct {
	Customers    int64 `json:"customers"`
	CashBoxes    int64 `json:"cashboxes"`
	Transactions int64 `json:"transactions"`
	Currencies   int64 `json:"currencies"`
	AccountTypes int64 `json:"account_types"`
}

func FetchCounts(ctx context.Context, db *pgxpool.Pool) (*Counts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM customers),
			(SELECT COUNT(*) FROM cashboxes),
			(SELECT COUNT(*) FROM transactions),
			(SELECT COUNT(*) FROM currencies),
			(SELECT COUNT(*) FROM account_types)
	`
	var c Counts
	err := db.QueryRow(ctx, query).Scan(&c.Customers, &c.CashBoxes, &c.Transactions, &c.Currencies, &c.AccountTypes)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
