package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hegaajarad/cashbox/internal/core/domain"
	"github.com/hegaajarad/cashbox/internal/core/ledger"
)

// Store interfaces the handlers depend on; the pgx repositories in
// adapter/storage satisfy them, fakes stand in for tests.

type CustomerStore interface {
	Create(ctx context.Context, name, phone string) (*domain.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CashBoxStore interface {
	Create(ctx context.Context, customerID uuid.UUID, currencyCode, accountTypeCode, name string) (*domain.CashBox, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CashBox, error)
	FetchCashBoxesForCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.CashBox, error)
}

type TransactionStore interface {
	Create(ctx context.Context, cashBoxID uuid.UUID, dir domain.Direction, amount decimal.Decimal, note string) (*domain.Transaction, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	ListForCashBoxDesc(ctx context.Context, cashBoxID uuid.UUID) ([]domain.Transaction, error)
	ListForCustomerDesc(ctx context.Context, customerID uuid.UUID) ([]domain.Transaction, error)
	QueueWebhook(ctx context.Context, url string, payload []byte) error
}

type CurrencyStore interface {
	Create(ctx context.Context, cur domain.Currency) (*domain.Currency, error)
	FetchCurrency(ctx context.Context, code string) (*domain.Currency, error)
	List(ctx context.Context) ([]domain.Currency, error)
}

type AccountTypeStore interface {
	Create(ctx context.Context, code, name string) (*domain.AccountType, error)
	List(ctx context.Context) ([]domain.AccountType, error)
}

// ReportService is the read side of the ledger calculator.
type ReportService interface {
	CustomerReport(ctx context.Context, customerID uuid.UUID) (*ledger.Report, error)
	CashBoxBalance(ctx context.Context, cashBoxID uuid.UUID) (decimal.Decimal, error)
}
