package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hegaajarad/cashbox/internal/adapter/storage"
	"github.com/hegaajarad/cashbox/internal/core/domain"
	"github.com/hegaajarad/cashbox/internal/core/ledger"
)

// In-memory fakes standing in for the pgx repositories.

type fakeCustomerStore struct {
	customers map[uuid.UUID]*domain.Customer
}

func (f *fakeCustomerStore) Create(_ context.Context, name, phone string) (*domain.Customer, error) {
	c := &domain.Customer{ID: uuid.New(), Name: name, Phone: phone}
	f.customers[c.ID] = c
	return c, nil
}

func (f *fakeCustomerStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return c, nil
}

func (f *fakeCustomerStore) List(_ context.Context) ([]domain.Customer, error) {
	out := []domain.Customer{}
	for _, c := range f.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCustomerStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.customers[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.customers, id)
	return nil
}

type fakeTransactionStore struct {
	txns    map[uuid.UUID]*domain.Transaction
	byBox   map[uuid.UUID][]domain.Transaction
	boxes   map[uuid.UUID]bool
	webhook struct {
		url      string
		payloads [][]byte
	}
}

func newFakeTransactionStore() *fakeTransactionStore {
	return &fakeTransactionStore{
		txns:  map[uuid.UUID]*domain.Transaction{},
		byBox: map[uuid.UUID][]domain.Transaction{},
		boxes: map[uuid.UUID]bool{},
	}
}

func (f *fakeTransactionStore) Create(_ context.Context, cashBoxID uuid.UUID, dir domain.Direction, amount decimal.Decimal, note string) (*domain.Transaction, error) {
	if err := domain.ValidateNewTransaction(dir, amount); err != nil {
		return nil, err
	}
	if !f.boxes[cashBoxID] {
		return nil, storage.ErrNotFound
	}
	t := &domain.Transaction{ID: uuid.New(), CashBoxID: cashBoxID, Direction: dir, Amount: amount, Note: note}
	f.txns[t.ID] = t
	f.byBox[cashBoxID] = append(f.byBox[cashBoxID], *t)
	return t, nil
}

func (f *fakeTransactionStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Transaction, error) {
	t, ok := f.txns[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return t, nil
}

func (f *fakeTransactionStore) ListForCashBoxDesc(_ context.Context, cashBoxID uuid.UUID) ([]domain.Transaction, error) {
	txns := f.byBox[cashBoxID]
	out := make([]domain.Transaction, len(txns))
	for i, t := range txns {
		out[len(txns)-1-i] = t
	}
	return out, nil
}

func (f *fakeTransactionStore) ListForCustomerDesc(_ context.Context, _ uuid.UUID) ([]domain.Transaction, error) {
	return nil, nil
}

func (f *fakeTransactionStore) QueueWebhook(_ context.Context, url string, payload []byte) error {
	f.webhook.url = url
	f.webhook.payloads = append(f.webhook.payloads, payload)
	return nil
}

type fakeCashBoxStore struct {
	byID       map[uuid.UUID]*domain.CashBox
	byCustomer map[uuid.UUID][]domain.CashBox
}

func newFakeCashBoxStore() *fakeCashBoxStore {
	return &fakeCashBoxStore{byID: map[uuid.UUID]*domain.CashBox{}, byCustomer: map[uuid.UUID][]domain.CashBox{}}
}

func (f *fakeCashBoxStore) Create(_ context.Context, customerID uuid.UUID, currencyCode, accountTypeCode, name string) (*domain.CashBox, error) {
	b := &domain.CashBox{ID: uuid.New(), CustomerID: customerID, CurrencyCode: currencyCode, AccountTypeCode: accountTypeCode, Name: name}
	f.add(b)
	return b, nil
}

func (f *fakeCashBoxStore) add(b *domain.CashBox) {
	f.byID[b.ID] = b
	f.byCustomer[b.CustomerID] = append(f.byCustomer[b.CustomerID], *b)
}

func (f *fakeCashBoxStore) GetByID(_ context.Context, id uuid.UUID) (*domain.CashBox, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return b, nil
}

func (f *fakeCashBoxStore) FetchCashBoxesForCustomer(_ context.Context, customerID uuid.UUID) ([]domain.CashBox, error) {
	return f.byCustomer[customerID], nil
}

type fakeCurrencyStore struct {
	currencies map[string]*domain.Currency
}

func (f *fakeCurrencyStore) Create(_ context.Context, cur domain.Currency) (*domain.Currency, error) {
	f.currencies[cur.Code] = &cur
	return &cur, nil
}

func (f *fakeCurrencyStore) FetchCurrency(_ context.Context, code string) (*domain.Currency, error) {
	return f.currencies[code], nil
}

func (f *fakeCurrencyStore) List(_ context.Context) ([]domain.Currency, error) {
	out := []domain.Currency{}
	for _, c := range f.currencies {
		out = append(out, *c)
	}
	return out, nil
}

// ledgerOver wires the real calculator service over the fakes, so
// handler tests exercise the production computation path.
func ledgerOver(boxes *fakeCashBoxStore, txns *fakeTransactionStore, currencies *fakeCurrencyStore) *ledger.Service {
	return ledger.NewService(boxes, &fakeTxnSource{txns}, currencies)
}

// fakeTxnSource adapts the fake store's chronological view to
// ledger.TransactionSource.
type fakeTxnSource struct {
	store *fakeTransactionStore
}

func (f *fakeTxnSource) FetchTransactions(_ context.Context, cashBoxID uuid.UUID) ([]domain.Transaction, error) {
	return f.store.byBox[cashBoxID], nil
}
