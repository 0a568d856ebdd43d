package storefront

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plugshop/internal/domain/promos"
)

func TestAddItemMergesSameVariant(t *testing.T) {
	cart := NewCart(nil, nil, nil)

	quantities := []int{1, 3, 2, 5}
	for _, q := range quantities {
		cart.AddItem(item("p1", "1g", q, "10"))
	}
	cart.AddItem(item("p1", "5g", 1, "40"))

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "p1-1g", lines[0].ID)
	assert.Equal(t, 11, lines[0].Quantity)
	assert.Equal(t, "p1-5g", lines[1].ID)
	assert.Equal(t, 12, cart.ItemCount())
}

func TestAddItemIgnoresNonPositiveQuantity(t *testing.T) {
	cart := NewCart(nil, nil, nil)
	cart.AddItem(item("p1", "1g", 0, "10"))
	cart.AddItem(item("p1", "1g", -2, "10"))
	assert.True(t, cart.IsEmpty())
}

func TestAddItemIgnoresNegativePrice(t *testing.T) {
	cart := NewCart(nil, nil, nil)
	cart.AddItem(item("p1", "1g", 1, "10"))
	cart.AddItem(item("p2", "1g", 3, "-10"))
	assert.Equal(t, 1, cart.ItemCount())
	assert.True(t, dec("10").Equal(cart.Totals().Subtotal))
}

func TestLoadDropsNegativePriceLines(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(CartStorageKey, []byte(
		`[{"productId":"p1","variantName":"1g","quantity":1,"unitPrice":"4"},{"productId":"p2","variantName":"1g","quantity":2,"unitPrice":"-3"}]`,
	)))

	cart := NewCart(store, nil, nil)
	require.NoError(t, cart.Load())
	require.Len(t, cart.Lines(), 1)
	assert.Equal(t, "p1-1g", cart.Lines()[0].ID)
	assert.True(t, cart.Totals().Subtotal.Equal(dec("4")))
}

func TestUpdateQuantityNonPositiveRemoves(t *testing.T) {
	for _, q := range []int{0, -1, -100} {
		viaUpdate := NewCart(nil, nil, nil)
		viaRemove := NewCart(nil, nil, nil)
		for _, c := range []*Cart{viaUpdate, viaRemove} {
			c.AddItem(item("p1", "1g", 2, "10"))
			c.AddItem(item("p2", "1g", 1, "15"))
		}

		viaUpdate.UpdateQuantity("p1-1g", q)
		viaRemove.RemoveItem("p1-1g")

		assert.Equal(t, viaRemove.Lines(), viaUpdate.Lines(), "quantity %d", q)
	}
}

func TestUpdateQuantitySetsExactly(t *testing.T) {
	cart := NewCart(nil, nil, nil)
	cart.AddItem(item("p1", "1g", 2, "10"))
	cart.UpdateQuantity("p1-1g", 7)
	cart.UpdateQuantity("unknown", 3)

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 7, lines[0].Quantity)
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	cart := NewCart(nil, nil, nil)
	cart.AddItem(item("p1", "1g", 1, "10"))
	cart.RemoveItem("p1-1g")
	cart.RemoveItem("p1-1g")
	assert.True(t, cart.IsEmpty())
}

func TestComputeTotalsInvariants(t *testing.T) {
	percent := &promos.Promo{Type: promos.TypePercent, Value: 10}
	fixed := &promos.Promo{Type: promos.TypeFixed, Value: 15}
	fees := []decimal.Decimal{decimal.Zero, dec("2"), dec("7.5")}

	for _, promo := range []*promos.Promo{nil, percent, fixed} {
		for _, fee := range fees {
			prev := decimal.NewFromInt(-1)
			for _, qty := range []int{1, 2, 3, 5, 8} {
				lines := []Line{{ID: "a", Item: item("a", "x", qty, "4.25")}}
				tot := ComputeTotals(lines, promo, fee)

				assert.False(t, tot.Discount.IsNegative())
				want := decimal.Max(decimal.Zero, tot.Subtotal.Sub(tot.Discount).Add(tot.ServiceFee))
				assert.True(t, want.Equal(tot.Total), "total %s want %s", tot.Total, want)
				assert.True(t, tot.Total.GreaterThanOrEqual(prev), "total must not decrease with subtotal")
				prev = tot.Total
			}
		}
	}
}

func TestPromoDiscountArithmetic(t *testing.T) {
	lines := []Line{{ID: "a", Item: item("a", "x", 3, "10")}}

	tot := ComputeTotals(lines, &promos.Promo{Type: promos.TypePercent, Value: 15}, decimal.Zero)
	assert.True(t, dec("4.5").Equal(tot.Discount), tot.Discount.String())
	assert.True(t, dec("25.5").Equal(tot.Total))

	tot = ComputeTotals(lines, &promos.Promo{Type: promos.TypeFixed, Value: 5}, decimal.Zero)
	assert.True(t, dec("5").Equal(tot.Discount))

	// A fixed discount larger than the subtotal is kept as is; only the
	// total is floored.
	tot = ComputeTotals(lines, &promos.Promo{Type: promos.TypeFixed, Value: 50}, decimal.Zero)
	assert.True(t, dec("50").Equal(tot.Discount))
	assert.True(t, tot.Total.IsZero())
}

func TestCartLevelTotalsHaveNoFee(t *testing.T) {
	cart := NewCart(nil, nil, nil)
	cart.AddItem(item("p1", "1g", 2, "9.99"))
	tot := cart.Totals()
	assert.True(t, tot.ServiceFee.IsZero())
	assert.True(t, dec("19.98").Equal(tot.Subtotal))
}

func TestCartPersistsAcrossLoad(t *testing.T) {
	store := NewMemoryStore()
	cart := NewCart(store, nil, nil)
	cart.AddItem(item("p1", "1g", 2, "10"))
	cart.AddItem(item("p2", "3g", 1, "25"))
	cart.promo = &AppliedPromo{Code: "NOEL", Promo: promos.Promo{Code: "noel", Type: promos.TypeFixed, Value: 5, Enabled: true}}
	require.NoError(t, cart.Save())

	restored := NewCart(store, nil, nil)
	require.NoError(t, restored.Load())
	assert.Equal(t, cart.Lines(), restored.Lines())
	require.NotNil(t, restored.Promo())
	assert.Equal(t, "NOEL", restored.Promo().Code)

	raw, err := store.Get(PromoStorageKey)
	require.NoError(t, err)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "code")
	assert.Contains(t, doc, "promo")
}

func TestLoadAcceptsNumericPrices(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(CartStorageKey, []byte(
		`[{"id":"p1-1g","productId":"p1","variantName":"1g","productName":"Lemon","variantLabel":"1g","quantity":2,"unitPrice":12.5}]`,
	)))

	cart := NewCart(store, nil, nil)
	require.NoError(t, cart.Load())
	assert.True(t, dec("25").Equal(cart.Totals().Subtotal))
}

func TestLoadCorruptCartDegradesToEmpty(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(CartStorageKey, []byte("{not json")))

	cart := NewCart(store, nil, nil)
	assert.Error(t, cart.Load())
	assert.True(t, cart.IsEmpty())
}

func TestStorageFailureKeepsCartUsable(t *testing.T) {
	cart := NewCart(failingStore{}, nil, nil)
	assert.Error(t, cart.Load())

	cart.AddItem(item("p1", "1g", 1, "10"))
	assert.Len(t, cart.Lines(), 1)
	assert.Error(t, cart.Save())
}

func TestClearDropsLinesAndPromo(t *testing.T) {
	store := NewMemoryStore()
	cart := NewCart(store, nil, nil)
	cart.AddItem(item("p1", "1g", 1, "10"))
	cart.promo = &AppliedPromo{Code: "X", Promo: promos.Promo{Type: promos.TypeFixed, Value: 1}}
	require.NoError(t, cart.Save())

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.Nil(t, cart.Promo())

	_, err := store.Get(CartStorageKey)
	assert.ErrorIs(t, err, ErrNotStored)
	_, err = store.Get(PromoStorageKey)
	assert.ErrorIs(t, err, ErrNotStored)
}
