package types

import (
	"github.com/shopspring/decimal"
)

// Currency is the ISO 4217 code attached to a monetary amount.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// Money is a decimal amount plus currency, matching the wire shape
// {"amount": 999, "currency": "USD"} the storefront services return.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency Currency        `json:"currency"`
}

// NewMoney builds a Money from an integer amount in major units.
func NewMoney(amount int64, currency Currency) Money {
	return Money{Amount: decimal.NewFromInt(amount), Currency: currency}
}

// Times returns the amount multiplied by a quantity.
func (m Money) Times(qty int) decimal.Decimal {
	return m.Amount.Mul(decimal.NewFromInt(int64(qty)))
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}
