package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateNewTransaction(t *testing.T) {
	tests := []struct {
		name    string
		dir     Direction
		amount  string
		wantErr bool
	}{
		{
			name:   "valid deposit",
			dir:    Deposit,
			amount: "10.50",
		},
		{
			name:   "valid withdrawal",
			dir:    Withdraw,
			amount: "0.01",
		},
		{
			name:    "negative amount",
			dir:     Deposit,
			amount:  "-5",
			wantErr: true,
		},
		{
			name:    "zero amount",
			dir:     Deposit,
			amount:  "0",
			wantErr: true,
		},
		{
			name:    "unknown direction",
			dir:     Direction("TRANSFER"),
			amount:  "10",
			wantErr: true,
		},
		{
			name:    "empty direction",
			dir:     Direction(""),
			amount:  "10",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNewTransaction(tt.dir, decimal.RequireFromString(tt.amount))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateNewTransaction() error=%v wantErr=%v", err, tt.wantErr)
			}
			if tt.wantErr {
				if _, ok := err.(*InvalidTransactionError); !ok {
					t.Fatalf("error type got=%T want=*InvalidTransactionError", err)
				}
			}
		})
	}
}

func TestTransaction_SignedAmount(t *testing.T) {
	amount := decimal.RequireFromString("12.34")

	dep := Transaction{Direction: Deposit, Amount: amount}
	if !dep.SignedAmount().Equal(amount) {
		t.Fatalf("deposit signed amount got=%s want=%s", dep.SignedAmount(), amount)
	}

	wd := Transaction{Direction: Withdraw, Amount: amount}
	if !wd.SignedAmount().Equal(amount.Neg()) {
		t.Fatalf("withdraw signed amount got=%s want=%s", wd.SignedAmount(), amount.Neg())
	}
}

func TestCashBox_Label(t *testing.T) {
	named := CashBox{Name: "Petty Cash", CurrencyCode: "USD", AccountTypeCode: "CASH"}
	if got := named.Label(); got != "Petty Cash" {
		t.Fatalf("named label got=%q", got)
	}

	unnamed := CashBox{CurrencyCode: "USD", AccountTypeCode: "CASH"}
	if got := unnamed.Label(); got != "USD-CASH" {
		t.Fatalf("fallback label got=%q", got)
	}
}
