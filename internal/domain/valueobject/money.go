package valueobject

import (
	"math"

	"github.com/shopspring/decimal"
)

// Currency represents a monetary currency using ISO 4217 codes.
type Currency string

// CurrencyUSD is the only currency the estimators quote in.
const CurrencyUSD Currency = "USD"

// Money represents a monetary value with currency.
// Amounts keep full precision; rounding to cents happens only in Format.
//
// Example usage:
//
//	cost := valueobject.NewMoneyFromFloat(850, valueobject.CurrencyUSD)
//	cost.Format() // "$850.00"
type Money struct {
	// Amount is the exact decimal amount.
	Amount decimal.Decimal `json:"amount"`

	// Currency using ISO 4217 code
	Currency Currency `json:"currency"`
}

// NewMoneyFromFloat creates a new Money from a float amount.
// Non-finite amounts collapse to zero; callers that care must check before converting.
//
// Parameters:
//   - amount: decimal amount (e.g., 19.99)
//   - currency: ISO 4217 currency code
//
// Returns:
//   - Money: the created Money value object
func NewMoneyFromFloat(amount float64, currency Currency) Money {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Zero(currency)
	}
	return Money{Amount: decimal.NewFromFloat(amount), Currency: currency}
}

// Zero returns a zero-value Money in the specified currency.
func Zero(currency Currency) Money {
	return Money{Amount: decimal.Zero, Currency: currency}
}

// Format returns the money formatted with its currency symbol and thousands separators.
//
// Returns:
//   - string: formatted string with currency symbol (e.g., "$1,234.56", "-$850.00")
func (m Money) Format() string {
	sign, digits := splitSign(m.Amount.StringFixed(2))
	return sign + currencySymbol(m.Currency) + groupThousands(digits)
}

// FormatCurrency formats a US dollar amount with two decimals, the way the calculators display costs.
//
// Parameters:
//   - amount: the dollar amount
//
// Returns:
//   - string: formatted amount (e.g., "$1,234.56")
func FormatCurrency(amount float64) string {
	switch {
	case math.IsNaN(amount):
		return "NaN"
	case math.IsInf(amount, 1):
		return "$∞"
	case math.IsInf(amount, -1):
		return "-$∞"
	}
	return NewMoneyFromFloat(amount, CurrencyUSD).Format()
}

// currencySymbol returns the symbol for a given currency.
func currencySymbol(c Currency) string {
	if c == CurrencyUSD {
		return "$"
	}
	return string(c) + " "
}
