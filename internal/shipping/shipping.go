// Package shipping computes the delivery fee applied at checkout.
package shipping

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrNegativeSubtotal is returned when a fee is requested for a
	// negative order subtotal.
	ErrNegativeSubtotal = errors.New("shipping: subtotal must not be negative")
)

// Calculator determines the shipping fee for an order subtotal.
type Calculator interface {
	// Fee returns the shipping charge for the given merchandise subtotal.
	Fee(subtotal decimal.Decimal) (decimal.Decimal, error)
}

// TieredFlatFee charges one of two flat fees depending on whether the
// subtotal reaches the threshold. Orders at or above the threshold pay
// the higher fee.
type TieredFlatFee struct {
	Threshold   decimal.Decimal
	StandardFee decimal.Decimal
	HeavyFee    decimal.Decimal
}

// NewTieredFlatFee parses the configured decimal strings into a
// calculator.
func NewTieredFlatFee(threshold, standardFee, heavyFee string) (*TieredFlatFee, error) {
	t, err := decimal.NewFromString(threshold)
	if err != nil {
		return nil, errors.New("shipping: invalid threshold: " + threshold)
	}
	std, err := decimal.NewFromString(standardFee)
	if err != nil {
		return nil, errors.New("shipping: invalid standard fee: " + standardFee)
	}
	heavy, err := decimal.NewFromString(heavyFee)
	if err != nil {
		return nil, errors.New("shipping: invalid heavy fee: " + heavyFee)
	}
	return &TieredFlatFee{Threshold: t, StandardFee: std, HeavyFee: heavy}, nil
}

// Fee picks the tier. Subtotals strictly below the threshold get the
// standard fee; everything else the heavy fee.
func (c *TieredFlatFee) Fee(subtotal decimal.Decimal) (decimal.Decimal, error) {
	if subtotal.IsNegative() {
		return decimal.Zero, ErrNegativeSubtotal
	}
	if subtotal.LessThan(c.Threshold) {
		return c.StandardFee, nil
	}
	return c.HeavyFee, nil
}
