package storefront

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"plugshop/internal/domain/promos"
)

// ErrInvalidPromo covers every reason a code is refused: unknown, disabled,
// or a subtotal below the promo's minimum.
var ErrInvalidPromo = errors.New("invalid promo code")

// PromoSource lists the promos currently offered by the shop.
type PromoSource interface {
	Promos(ctx context.Context) ([]promos.Promo, error)
}

// ApplyPromo looks code up in a fresh promo list and, if it qualifies for the
// current subtotal, replaces any previously applied promo. On failure the
// cart is left exactly as it was.
func (c *Cart) ApplyPromo(ctx context.Context, code string) error {
	canonical := promos.CanonicalCode(code)
	if canonical == "" {
		return ErrInvalidPromo
	}
	if c.promos == nil {
		return errors.New("storefront: no promo source configured")
	}

	list, err := c.promos.Promos(ctx)
	if err != nil {
		c.logger.Warnw("failed to fetch promos", "error", err)
		return fmt.Errorf("fetch promos: %w", err)
	}

	var match *promos.Promo
	for i := range list {
		if list[i].Enabled && promos.CanonicalCode(list[i].Code) == canonical {
			match = &list[i]
			break
		}
	}
	if match == nil {
		return ErrInvalidPromo
	}

	subtotal := c.Totals().Subtotal
	if subtotal.LessThan(decimal.NewFromFloat(match.MinAmount)) {
		return ErrInvalidPromo
	}

	c.promo = &AppliedPromo{Code: canonical, Promo: *match}
	c.savePromo()
	return nil
}

// RemovePromo drops the applied promo and leaves the lines alone.
func (c *Cart) RemovePromo() {
	if c.promo == nil {
		return
	}
	c.promo = nil
	c.savePromo()
}
