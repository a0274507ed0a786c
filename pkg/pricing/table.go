package pricing

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
)

var (
	// ErrUnknownCurrency is returned for a currency missing from a Table.
	ErrUnknownCurrency = errors.New("unknown currency")
	// ErrInvalidPrice is returned for negative or non-finite prices.
	ErrInvalidPrice = errors.New("invalid price")
)

// Currency is an ISO currency code.
type Currency string

const (
	EUR Currency = "EUR"
	USD Currency = "USD"
	JPY Currency = "JPY"
	SGD Currency = "SGD"
)

// ParseCurrency normalizes a currency code
func ParseCurrency(s string) Currency {
	return Currency(strings.ToUpper(strings.TrimSpace(s)))
}

// Symbol returns the display symbol, or the code itself
func (c Currency) Symbol() string {
	switch c {
	case EUR:
		return "€"
	case USD:
		return "$"
	case JPY:
		return "¥"
	case SGD:
		return "S$"
	}
	return string(c) + " "
}

// Format renders an amount with the currency symbol and two decimals
func (c Currency) Format(amount float64) string {
	return fmt.Sprintf("%s%.2f", c.Symbol(), amount)
}

// Prices are unit prices: per kg of powder, per ml of binder, per g of
// silica and per g of glaze.
type Prices struct {
	Powder float64 `json:"powder" yaml:"powder"`
	Binder float64 `json:"binder" yaml:"binder"`
	Silica float64 `json:"silica" yaml:"silica"`
	Glaze  float64 `json:"glaze" yaml:"glaze"`
}

// Validate rejects negative or non-finite prices
func (p Prices) Validate() error {
	for name, v := range map[string]float64{
		"powder": p.Powder,
		"binder": p.Binder,
		"silica": p.Silica,
		"glaze":  p.Glaze,
	} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s price %v must be a non-negative number", ErrInvalidPrice, name, v)
		}
	}
	return nil
}

// Table maps currencies to their unit prices.
type Table map[Currency]Prices

// DefaultTable returns a fresh copy of the built-in prices
func DefaultTable() Table {
	return Table{
		EUR: {Powder: 92.857, Binder: 0.085, Silica: 0.069, Glaze: 88.0 / 9000},
		USD: {Powder: 100, Binder: 0.09, Silica: 0.072, Glaze: 91.0 / 9000},
		JPY: {Powder: 200000.0 / 14, Binder: 250000.0 / 20000, Silica: 11, Glaze: 14000.0 / 9000},
		SGD: {Powder: 135, Binder: 0.12, Silica: 0.10, Glaze: 0.01365},
	}
}

// Lookup returns the prices for c
func (t Table) Lookup(c Currency) (Prices, error) {
	p, ok := t[c]
	if !ok {
		return Prices{}, fmt.Errorf("%w %q", ErrUnknownCurrency, c)
	}
	return p, nil
}

// Set replaces all prices of c after validating them
func (t Table) Set(c Currency, p Prices) error {
	if c == "" {
		return fmt.Errorf("%w: empty code", ErrUnknownCurrency)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	t[c] = p
	return nil
}

// Clone returns an independent copy of the table
func (t Table) Clone() Table {
	return maps.Clone(t)
}

// Currencies returns the table's codes in sorted order
func (t Table) Currencies() []Currency {
	return slices.Sorted(maps.Keys(t))
}
