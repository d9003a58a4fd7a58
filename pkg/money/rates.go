package money

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ErrRateNotDefined is returned when there is no rate for a pair
var ErrRateNotDefined = errors.New("Exchange rate is not defined")

// ErrRatesDiverged means that a rate and its reverse are not reciprocal.
// This is a data integrity problem of a rates table
var ErrRatesDiverged = errors.New("Exchange rates are not reciprocal")

// Pair is a conversion direction
type Pair struct {
	From Currency
	To   Currency
}

// Rates is a fixed conversion table. It is the single source of conversion rates
type Rates struct {
	rates map[Pair]decimal.Decimal
}

// DefaultUSDToRUB and DefaultRUBToUSD form the default rates table
var (
	DefaultUSDToRUB = decimal.NewFromInt(100)
	DefaultRUBToUSD = decimal.New(1, -2)
)

// NewRates creates the rates table and validates it
func NewRates(rates map[Pair]decimal.Decimal) (*Rates, error) {
	table := &Rates{rates: make(map[Pair]decimal.Decimal, len(rates))}
	for pair, rate := range rates {
		if !pair.From.Valid() || !pair.To.Valid() {
			return nil, errors.Wrapf(ErrUnsupportedCurrency, "pair %v->%v", pair.From, pair.To)
		}
		if !rate.IsPositive() {
			return nil, errors.Errorf("Rate %v->%v must be positive, got %v", pair.From, pair.To, rate)
		}
		table.rates[pair] = rate
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// DefaultRates returns USD<->RUB table with 100 rubles per dollar
func DefaultRates() *Rates {
	rates, err := NewRates(map[Pair]decimal.Decimal{
		{From: USD, To: RUB}: DefaultUSDToRUB,
		{From: RUB, To: USD}: DefaultRUBToUSD,
	})
	if err != nil {
		panic(err)
	}
	return rates
}

// Validate checks that every pair of supported currencies has a rate
// and rate(A,B) * rate(B,A) == 1
func (r *Rates) Validate() error {
	for _, from := range Supported() {
		for _, to := range Supported() {
			if from == to {
				continue
			}
			forward, ok := r.rates[Pair{From: from, To: to}]
			if !ok {
				return errors.Wrapf(ErrRateNotDefined, "%v->%v", from, to)
			}
			reverse, ok := r.rates[Pair{From: to, To: from}]
			if !ok {
				return errors.Wrapf(ErrRateNotDefined, "%v->%v", to, from)
			}
			if !forward.Mul(reverse).Equal(decimal.NewFromInt(1)) {
				return errors.Wrapf(ErrRatesDiverged, "%v->%v=%v, %v->%v=%v", from, to, forward, to, from, reverse)
			}
		}
	}
	return nil
}

// Rate returns the multiplier that converts an amount in from currency to to currency
func (r *Rates) Rate(from, to Currency) (decimal.Decimal, error) {
	if !from.Valid() {
		return decimal.Zero, errors.Wrapf(ErrUnsupportedCurrency, "%q", from)
	}
	if !to.Valid() {
		return decimal.Zero, errors.Wrapf(ErrUnsupportedCurrency, "%q", to)
	}
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	rate, ok := r.rates[Pair{From: from, To: to}]
	if !ok {
		return decimal.Zero, errors.Wrapf(ErrRateNotDefined, "%v->%v", from, to)
	}
	return rate, nil
}

// Convert returns amount * rate(from, to)
func (r *Rates) Convert(amount decimal.Decimal, from, to Currency) (decimal.Decimal, error) {
	rate, err := r.Rate(from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate), nil
}
