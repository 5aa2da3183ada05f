package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Currency is reference data created by an admin before use.
// DecimalPlaces drives display rounding only; stored amounts keep the
// precision they were entered with.
type Currency struct {
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Symbol        string    `json:"symbol"`
	DecimalPlaces int32     `json:"decimal_places"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// AccountType classifies a cash box (e.g. "CASH", "WALLET"). Label only.
type AccountType struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Customer owns zero or more cash boxes. Deleting a customer cascades
// to its boxes in the database.
type Customer struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// CashBox belongs to one customer, is denominated in one currency and
// classified by one account type. Name is an optional friendly label.
type CashBox struct {
	ID              uuid.UUID `json:"id"`
	CustomerID      uuid.UUID `json:"customer_id"`
	CurrencyCode    string    `json:"currency_code"`
	AccountTypeCode string    `json:"account_type_code"`
	Name            string    `json:"name"`
	CreatedAt       time.Time `json:"created_at"`
}

// Label returns the friendly name if set, otherwise "CUR-ACCT".
func (b CashBox) Label() string {
	if b.Name != "" {
		return b.Name
	}
	return b.CurrencyCode + "-" + b.AccountTypeCode
}

// Direction of a transaction. The sign of a transaction's contribution
// to a balance is carried here, never on the amount.
type Direction string

const (
	Deposit  Direction = "DEPOSIT"
	Withdraw Direction = "WITHDRAW"
)

// Valid reports whether d is one of the two known directions.
func (d Direction) Valid() bool {
	return d == Deposit || d == Withdraw
}

// Transaction is an immutable movement of money on one cash box.
// Correcting a mistake means recording an offsetting transaction,
// never editing this one.
type Transaction struct {
	ID        uuid.UUID       `json:"id"`
	CashBoxID uuid.UUID       `json:"cashbox_id"`
	Direction Direction       `json:"direction"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note"`
	CreatedAt time.Time       `json:"created_at"`
}

// SignedAmount is the transaction's contribution to its box balance:
// +Amount for a deposit, -Amount for a withdrawal.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Direction == Withdraw {
		return t.Amount.Neg()
	}
	return t.Amount
}

// ValidateNewTransaction checks the operator-supplied fields of a
// transaction before it is persisted. Amounts must be strictly
// positive; sign is carried by the direction alone.
func ValidateNewTransaction(dir Direction, amount decimal.Decimal) error {
	if !dir.Valid() {
		return &InvalidTransactionError{Reason: "direction must be DEPOSIT or WITHDRAW"}
	}
	if amount.Sign() <= 0 {
		return &InvalidTransactionError{Reason: "amount must be positive"}
	}
	return nil
}
