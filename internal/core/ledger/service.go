package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hegaajarad/cashbox/internal/core/domain"
)

// TransactionSource yields a box's transactions in chronological
// order (ties broken by insertion order). The calculator itself does
// not depend on the order, but statements do.
type TransactionSource interface {
	FetchTransactions(ctx context.Context, cashBoxID uuid.UUID) ([]domain.Transaction, error)
}

// CashBoxSource yields a customer's cash boxes in creation order.
type CashBoxSource interface {
	FetchCashBoxesForCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.CashBox, error)
}

// CurrencySource resolves a currency code to its configuration.
// Returning (nil, nil) means the code is unknown.
type CurrencySource interface {
	FetchCurrency(ctx context.Context, code string) (*domain.Currency, error)
}

// Service wires the pure calculator to the persistence layer's
// read-only sources.
type Service struct {
	Boxes      CashBoxSource
	Txns       TransactionSource
	Currencies CurrencySource
}

func NewService(boxes CashBoxSource, txns TransactionSource, currencies CurrencySource) *Service {
	return &Service{Boxes: boxes, Txns: txns, Currencies: currencies}
}

// CashBoxBalance loads one box's history and folds it. A box with no
// transactions yields zero, not an error.
func (s *Service) CashBoxBalance(ctx context.Context, cashBoxID uuid.UUID) (decimal.Decimal, error) {
	txns, err := s.Txns.FetchTransactions(ctx, cashBoxID)
	if err != nil {
		return decimal.Zero, err
	}
	return CashBoxBalance(txns), nil
}

// CustomerReport loads the customer's boxes and histories and computes
// per-currency totals plus the per-box breakdown. A customer with no
// boxes gets an empty report.
func (s *Service) CustomerReport(ctx context.Context, customerID uuid.UUID) (*Report, error) {
	boxes, err := s.Boxes.FetchCashBoxesForCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	loaded := make([]BoxWithTransactions, 0, len(boxes))
	currencies := map[string]*domain.Currency{}
	for _, box := range boxes {
		txns, err := s.Txns.FetchTransactions(ctx, box.ID)
		if err != nil {
			return nil, err
		}
		loaded = append(loaded, BoxWithTransactions{Box: box, Transactions: txns})

		if _, ok := currencies[box.CurrencyCode]; !ok {
			cur, err := s.Currencies.FetchCurrency(ctx, box.CurrencyCode)
			if err != nil {
				return nil, err
			}
			if cur != nil {
				currencies[box.CurrencyCode] = cur
			}
		}
	}

	return ComputeCustomerReport(customerID, loaded, currencies)
}
