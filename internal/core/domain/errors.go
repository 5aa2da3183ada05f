package domain

import "fmt"

// ConfigurationError means reference data needed for a computation is
// missing or unusable, e.g. rounding against a currency that was never
// registered. We refuse to guess a default precision.
type ConfigurationError struct {
	CurrencyCode string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("currency %q is not configured", e.CurrencyCode)
}

// InvalidTransactionError rejects a transaction at creation time.
type InvalidTransactionError struct {
	Reason string
}

func (e *InvalidTransactionError) Error() string {
	return "invalid transaction: " + e.Reason
}
