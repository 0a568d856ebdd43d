// Package storefront is the customer side of the shop: the cart, promo
// codes, the checkout wizard, the order message and the event theme.
//
// Everything here belongs to a single customer session and is not safe for
// concurrent use, except the ThemePoller.
package storefront

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"plugshop/internal/domain/promos"
)

// Item is what the product page hands to AddItem.
type Item struct {
	ProductID    string          `json:"productId"`
	VariantName  string          `json:"variantName"`
	ProductName  string          `json:"productName"`
	VariantLabel string          `json:"variantLabel"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Image        string          `json:"image,omitempty"`
}

// Line is an Item in the cart. Quantity is always at least 1.
type Line struct {
	ID string `json:"id"`
	Item
}

// LineID is the composite key of a cart line.
func LineID(productID, variantName string) string {
	return productID + "-" + variantName
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// AppliedPromo is the promo snapshot taken when the code was accepted. It is
// honoured until removed even if the server disables the promo later.
type AppliedPromo struct {
	Code  string       `json:"code"`
	Promo promos.Promo `json:"promo"`
}

type Totals struct {
	Subtotal   decimal.Decimal
	Discount   decimal.Decimal
	ServiceFee decimal.Decimal
	Total      decimal.Decimal
}

// ComputeTotals derives the cart totals. A fixed discount is not capped at the
// subtotal; only the total is floored at zero.
func ComputeTotals(lines []Line, promo *promos.Promo, serviceFee decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Total())
	}

	discount := decimal.Zero
	if promo != nil {
		value := decimal.NewFromFloat(promo.Value)
		switch promo.Type {
		case promos.TypePercent:
			discount = subtotal.Mul(value).Div(decimal.NewFromInt(100))
		case promos.TypeFixed:
			discount = value
		}
		if discount.IsNegative() {
			discount = decimal.Zero
		}
	}

	if serviceFee.IsNegative() {
		serviceFee = decimal.Zero
	}

	total := decimal.Max(decimal.Zero, subtotal.Sub(discount).Add(serviceFee))
	return Totals{
		Subtotal:   subtotal,
		Discount:   discount,
		ServiceFee: serviceFee,
		Total:      total,
	}
}

type Cart struct {
	lines  []Line
	promo  *AppliedPromo
	store  LocalStore
	promos PromoSource
	logger *zap.SugaredLogger
}

// NewCart returns an empty cart. Call Load to restore a saved one.
func NewCart(store LocalStore, source PromoSource, logger *zap.SugaredLogger) *Cart {
	if store == nil {
		store = NewMemoryStore()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Cart{
		lines:  []Line{},
		store:  store,
		promos: source,
		logger: logger,
	}
}

// Load replaces the in-memory cart with the stored one. Unreadable documents
// are logged and treated as absent, so the cart always ends up usable.
func (c *Cart) Load() error {
	c.lines = []Line{}
	c.promo = nil

	var errs []error

	data, err := c.store.Get(CartStorageKey)
	switch {
	case errors.Is(err, ErrNotStored):
	case err != nil:
		c.logger.Warnw("failed to read cart", "error", err)
		errs = append(errs, err)
	default:
		var lines []Line
		if err := json.Unmarshal(data, &lines); err != nil {
			c.logger.Warnw("discarding unreadable cart", "error", err)
			errs = append(errs, fmt.Errorf("decode cart: %w", err))
		} else {
			c.lines = sanitizeLines(lines)
		}
	}

	data, err = c.store.Get(PromoStorageKey)
	switch {
	case errors.Is(err, ErrNotStored):
	case err != nil:
		c.logger.Warnw("failed to read promo", "error", err)
		errs = append(errs, err)
	default:
		var applied AppliedPromo
		if err := json.Unmarshal(data, &applied); err != nil || applied.Code == "" {
			c.logger.Warnw("discarding unreadable promo", "error", err)
			if err != nil {
				errs = append(errs, fmt.Errorf("decode promo: %w", err))
			}
		} else {
			c.promo = &applied
		}
	}

	return errors.Join(errs...)
}

// sanitizeLines drops lines a hand-edited store could carry but the cart
// never produces.
func sanitizeLines(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.Quantity < 1 || l.UnitPrice.IsNegative() {
			continue
		}
		if l.ID == "" {
			l.ID = LineID(l.ProductID, l.VariantName)
		}
		out = append(out, l)
	}
	return out
}

// Save writes both cart documents.
func (c *Cart) Save() error {
	return errors.Join(c.saveLines(), c.savePromo())
}

func (c *Cart) saveLines() error {
	data, err := json.Marshal(c.lines)
	if err != nil {
		return err
	}
	if err := c.store.Set(CartStorageKey, data); err != nil {
		c.logger.Errorw("failed to save cart", "error", err)
		return err
	}
	return nil
}

func (c *Cart) savePromo() error {
	var err error
	if c.promo == nil {
		err = c.store.Delete(PromoStorageKey)
	} else {
		var data []byte
		data, err = json.Marshal(c.promo)
		if err == nil {
			err = c.store.Set(PromoStorageKey, data)
		}
	}
	if err != nil {
		c.logger.Errorw("failed to save promo", "error", err)
	}
	return err
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// ItemCount is the number of units across all lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Promo returns the applied promo or nil.
func (c *Cart) Promo() *AppliedPromo {
	if c.promo == nil {
		return nil
	}
	p := *c.promo
	return &p
}

// AddItem merges into the line with the same product and variant, or appends
// a new line. Quantities below 1 and negative prices are ignored.
func (c *Cart) AddItem(item Item) {
	if item.Quantity < 1 || item.UnitPrice.IsNegative() {
		return
	}
	id := LineID(item.ProductID, item.VariantName)
	if i := c.index(id); i >= 0 {
		c.lines[i].Quantity += item.Quantity
	} else {
		c.lines = append(c.lines, Line{ID: id, Item: item})
	}
	c.saveLines()
}

// RemoveItem drops a line. Unknown ids are ignored.
func (c *Cart) RemoveItem(lineID string) {
	i := c.index(lineID)
	if i < 0 {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.saveLines()
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func (c *Cart) UpdateQuantity(lineID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(lineID)
		return
	}
	i := c.index(lineID)
	if i < 0 {
		return
	}
	c.lines[i].Quantity = quantity
	c.saveLines()
}

// Clear empties the cart and drops the applied promo.
func (c *Cart) Clear() {
	c.lines = []Line{}
	c.promo = nil
	if err := c.store.Delete(CartStorageKey); err != nil {
		c.logger.Errorw("failed to clear cart", "error", err)
	}
	c.savePromo()
}

// Totals are the cart-level totals, before any service fee.
func (c *Cart) Totals() Totals {
	return c.TotalsWithFee(decimal.Zero)
}

func (c *Cart) TotalsWithFee(fee decimal.Decimal) Totals {
	var p *promos.Promo
	if c.promo != nil {
		p = &c.promo.Promo
	}
	return ComputeTotals(c.lines, p, fee)
}

func (c *Cart) index(id string) int {
	for i := range c.lines {
		if c.lines[i].ID == id {
			return i
		}
	}
	return -1
}
