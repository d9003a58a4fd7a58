package money

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Currency is a code of a supported currency
type Currency string

const (
	// USD - US dollar
	USD Currency = "USD"

	// RUB - russian ruble
	RUB Currency = "RUB"
)

// ErrUnsupportedCurrency is returned for currencies outside of the closed set
var ErrUnsupportedCurrency = errors.New("Unsupported currency")

// Supported returns all supported currencies. The set is closed.
func Supported() []Currency {
	return []Currency{USD, RUB}
}

// Valid reports if the currency is one of supported
func (c Currency) Valid() bool {
	return c == USD || c == RUB
}

// ParseCurrency converts a currency code (case insensitive) to a Currency
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if !c.Valid() {
		return "", errors.Wrapf(ErrUnsupportedCurrency, "%q", code)
	}
	return c, nil
}

// CounterCurrency returns the other supported currency
func CounterCurrency(c Currency) (Currency, error) {
	switch c {
	case USD:
		return RUB, nil
	case RUB:
		return USD, nil
	}
	return "", errors.Wrapf(ErrUnsupportedCurrency, "%q", c)
}

// Balances maps each supported currency to an amount
type Balances map[Currency]decimal.Decimal

// NewBalances builds balances with every supported currency present.
// Currencies missing in amounts are set to zero
func NewBalances(amounts map[Currency]decimal.Decimal) Balances {
	balances := make(Balances, len(Supported()))
	for _, c := range Supported() {
		balances[c] = decimal.Zero
		if amount, ok := amounts[c]; ok {
			balances[c] = amount
		}
	}
	return balances
}

// Copy returns an independent copy of the balances
func (b Balances) Copy() Balances {
	result := make(Balances, len(b))
	for c, amount := range b {
		result[c] = amount
	}
	return result
}

// Currencies returns currencies of the balances in a stable order
func (b Balances) Currencies() []Currency {
	result := make([]Currency, 0, len(b))
	for c := range b {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
