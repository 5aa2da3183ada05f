package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hegaajarad/cashbox/internal/core/domain"
)

type fakeSources struct {
	boxes      map[uuid.UUID][]domain.CashBox
	txns       map[uuid.UUID][]domain.Transaction
	currencies map[string]*domain.Currency
	txnErr     error
}

func (f *fakeSources) FetchCashBoxesForCustomer(_ context.Context, customerID uuid.UUID) ([]domain.CashBox, error) {
	return f.boxes[customerID], nil
}

func (f *fakeSources) FetchTransactions(_ context.Context, cashBoxID uuid.UUID) ([]domain.Transaction, error) {
	if f.txnErr != nil {
		return nil, f.txnErr
	}
	return f.txns[cashBoxID], nil
}

func (f *fakeSources) FetchCurrency(_ context.Context, code string) (*domain.Currency, error) {
	return f.currencies[code], nil
}

func newFakeService(f *fakeSources) *Service {
	return NewService(f, f, f)
}

func TestService_CustomerReport(t *testing.T) {
	customerID := uuid.New()
	boxA := domain.CashBox{ID: uuid.New(), CustomerID: customerID, CurrencyCode: "USD", AccountTypeCode: "CASH", Name: "A"}
	boxB := domain.CashBox{ID: uuid.New(), CustomerID: customerID, CurrencyCode: "USD", AccountTypeCode: "CASH", Name: "B"}

	f := &fakeSources{
		boxes: map[uuid.UUID][]domain.CashBox{customerID: {boxA, boxB}},
		txns: map[uuid.UUID][]domain.Transaction{
			boxA.ID: {deposit("100.00"), withdraw("30.00")},
			boxB.ID: {deposit("15.50")},
		},
		currencies: map[string]*domain.Currency{
			"USD": {Code: "USD", Name: "US Dollar", DecimalPlaces: 2},
		},
	}

	report, err := newFakeService(f).CustomerReport(context.Background(), customerID)
	require.NoError(t, err)

	require.Len(t, report.Totals, 1)
	assert.Equal(t, "USD", report.Totals[0].CurrencyCode)
	assert.Equal(t, "85.50", report.Totals[0].Display)

	require.Len(t, report.Boxes, 2)
	assert.Equal(t, "70.00", report.Boxes[0].Display)
	assert.Equal(t, "15.50", report.Boxes[1].Display)
}

func TestService_CustomerReport_NoBoxes(t *testing.T) {
	f := &fakeSources{boxes: map[uuid.UUID][]domain.CashBox{}}

	report, err := newFakeService(f).CustomerReport(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, report.Totals)
	assert.Empty(t, report.Boxes)
}

func TestService_CustomerReport_UnknownCurrency(t *testing.T) {
	customerID := uuid.New()
	box := domain.CashBox{ID: uuid.New(), CustomerID: customerID, CurrencyCode: "XAU", AccountTypeCode: "CASH"}
	f := &fakeSources{
		boxes:      map[uuid.UUID][]domain.CashBox{customerID: {box}},
		txns:       map[uuid.UUID][]domain.Transaction{},
		currencies: map[string]*domain.Currency{},
	}

	_, err := newFakeService(f).CustomerReport(context.Background(), customerID)

	var confErr *domain.ConfigurationError
	require.ErrorAs(t, err, &confErr)
	assert.Equal(t, "XAU", confErr.CurrencyCode)
}

func TestService_CustomerReport_SourceErrorPropagates(t *testing.T) {
	customerID := uuid.New()
	box := domain.CashBox{ID: uuid.New(), CustomerID: customerID, CurrencyCode: "USD", AccountTypeCode: "CASH"}
	boom := errors.New("connection reset")
	f := &fakeSources{
		boxes:  map[uuid.UUID][]domain.CashBox{customerID: {box}},
		txnErr: boom,
	}

	_, err := newFakeService(f).CustomerReport(context.Background(), customerID)
	require.ErrorIs(t, err, boom)
}

func TestService_CashBoxBalance(t *testing.T) {
	boxID := uuid.New()
	f := &fakeSources{
		txns: map[uuid.UUID][]domain.Transaction{
			boxID: {deposit("10.005"), withdraw("0.005")},
		},
	}

	balance, err := newFakeService(f).CashBoxBalance(context.Background(), boxID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("10")), "got %s", balance)
}

func TestService_CashBoxBalance_EmptyBox(t *testing.T) {
	f := &fakeSources{txns: map[uuid.UUID][]domain.Transaction{}}

	balance, err := newFakeService(f).CashBoxBalance(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}
