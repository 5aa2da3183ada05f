// Package ledger computes cash box balances and per-customer,
// per-currency totals. Everything here is a stateless fold over
// already-loaded data; nothing is mutated.
package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hegaajarad/cashbox/internal/core/domain"
)

// CashBoxBalance sums the signed contributions of a box's
// transactions: +amount for deposits, -amount for withdrawals.
// The result keeps full stored precision; an empty sequence is zero.
func CashBoxBalance(txns []domain.Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, t := range txns {
		balance = balance.Add(t.SignedAmount())
	}
	return balance
}

// Display renders an amount at a currency's configured decimal places
// using round-half-even. Rounding happens here and only here; stored
// amounts are never quantized.
func Display(amount decimal.Decimal, currency *domain.Currency) string {
	return amount.StringFixedBank(currency.DecimalPlaces)
}

// BoxBalance is one line of a customer report.
type BoxBalance struct {
	CashBoxID    uuid.UUID       `json:"cashbox_id"`
	Label        string          `json:"label"`
	CurrencyCode string          `json:"currency_code"`
	Balance      decimal.Decimal `json:"balance"`
	Display      string          `json:"display"`
}

// CurrencyTotal is the summed balance of all of a customer's boxes in
// one currency.
type CurrencyTotal struct {
	CurrencyCode string          `json:"currency_code"`
	Total        decimal.Decimal `json:"total"`
	Display      string          `json:"display"`
}

// Report is the result of ComputeCustomerReport. Totals preserve the
// insertion order of each currency's first occurrence so rendering is
// deterministic.
type Report struct {
	CustomerID uuid.UUID       `json:"customer_id"`
	Totals     []CurrencyTotal `json:"totals"`
	Boxes      []BoxBalance    `json:"boxes"`
}

// BoxWithTransactions pairs a cash box with its loaded transaction
// history, the input shape of ComputeCustomerReport.
type BoxWithTransactions struct {
	Box          domain.CashBox
	Transactions []domain.Transaction
}

// ComputeCustomerReport folds each box's balance and groups totals by
// currency code. currencies must contain every currency referenced by
// the boxes; a missing one is a ConfigurationError rather than a
// guessed precision.
func ComputeCustomerReport(customerID uuid.UUID, boxes []BoxWithTransactions, currencies map[string]*domain.Currency) (*Report, error) {
	report := &Report{CustomerID: customerID, Totals: []CurrencyTotal{}, Boxes: []BoxBalance{}}

	totalIdx := map[string]int{}
	for _, bt := range boxes {
		cur, ok := currencies[bt.Box.CurrencyCode]
		if !ok || cur == nil {
			return nil, &domain.ConfigurationError{CurrencyCode: bt.Box.CurrencyCode}
		}

		balance := CashBoxBalance(bt.Transactions)
		report.Boxes = append(report.Boxes, BoxBalance{
			CashBoxID:    bt.Box.ID,
			Label:        bt.Box.Label(),
			CurrencyCode: bt.Box.CurrencyCode,
			Balance:      balance,
			Display:      Display(balance, cur),
		})

		idx, seen := totalIdx[cur.Code]
		if !seen {
			totalIdx[cur.Code] = len(report.Totals)
			report.Totals = append(report.Totals, CurrencyTotal{CurrencyCode: cur.Code, Total: balance})
		} else {
			report.Totals[idx].Total = report.Totals[idx].Total.Add(balance)
		}
	}

	// Totals are summed at full precision first, rounded once at the end.
	for i := range report.Totals {
		report.Totals[i].Display = Display(report.Totals[i].Total, currencies[report.Totals[i].CurrencyCode])
	}

	return report, nil
}
