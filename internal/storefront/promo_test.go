package storefront

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plugshop/internal/domain/promos"
)

func promoCatalog() *fakeCatalog {
	return &fakeCatalog{
		promos: []promos.Promo{
			{ID: "1", Code: "NOEL", Type: promos.TypeFixed, Value: 5, MinAmount: 20, Enabled: true},
			{ID: "2", Code: "Summer", Type: promos.TypePercent, Value: 10, MinAmount: 0, Enabled: true},
			{ID: "3", Code: "OLD", Type: promos.TypeFixed, Value: 3, Enabled: false},
		},
	}
}

func TestApplyPromoMatchesCaseInsensitively(t *testing.T) {
	store := NewMemoryStore()
	cart := NewCart(store, promoCatalog(), nil)
	cart.AddItem(item("p1", "1g", 3, "10"))

	require.NoError(t, cart.ApplyPromo(context.Background(), "  summer "))
	applied := cart.Promo()
	require.NotNil(t, applied)
	assert.Equal(t, "SUMMER", applied.Code)
	assert.True(t, dec("3").Equal(cart.Totals().Discount))

	_, err := store.Get(PromoStorageKey)
	assert.NoError(t, err)
}

func TestApplyPromoBelowMinimumLeavesStateUnchanged(t *testing.T) {
	store := NewMemoryStore()
	cart := NewCart(store, promoCatalog(), nil)
	cart.AddItem(item("p1", "1g", 1, "19.99"))

	err := cart.ApplyPromo(context.Background(), "NOEL")
	assert.ErrorIs(t, err, ErrInvalidPromo)
	assert.Nil(t, cart.Promo())
	assert.True(t, cart.Totals().Discount.IsZero())

	_, err = store.Get(PromoStorageKey)
	assert.ErrorIs(t, err, ErrNotStored)
}

func TestApplyPromoFailuresAreIndistinguishable(t *testing.T) {
	cart := NewCart(nil, promoCatalog(), nil)
	cart.AddItem(item("p1", "1g", 1, "5"))

	for _, code := range []string{"NOPE", "OLD", "NOEL", ""} {
		err := cart.ApplyPromo(context.Background(), code)
		assert.Equal(t, ErrInvalidPromo, err, code)
	}
	assert.Nil(t, cart.Promo())
}

func TestApplyPromoFailureKeepsPreviousPromo(t *testing.T) {
	cat := promoCatalog()
	cart := NewCart(nil, cat, nil)
	cart.AddItem(item("p1", "1g", 1, "10"))

	require.NoError(t, cart.ApplyPromo(context.Background(), "SUMMER"))
	assert.ErrorIs(t, cart.ApplyPromo(context.Background(), "NOEL"), ErrInvalidPromo)
	assert.Equal(t, "SUMMER", cart.Promo().Code)

	cat.promosErr = errOffline
	err := cart.ApplyPromo(context.Background(), "NOEL")
	assert.ErrorIs(t, err, errOffline)
	assert.NotErrorIs(t, err, ErrInvalidPromo)
	assert.Equal(t, "SUMMER", cart.Promo().Code)
}

func TestApplyPromoAlwaysFetchesFresh(t *testing.T) {
	cat := promoCatalog()
	cart := NewCart(nil, cat, nil)
	cart.AddItem(item("p1", "1g", 3, "10"))

	require.NoError(t, cart.ApplyPromo(context.Background(), "SUMMER"))
	require.NoError(t, cart.ApplyPromo(context.Background(), "NOEL"))
	assert.Equal(t, 2, cat.promoCalls)

	// last write wins, no stacking
	assert.Equal(t, "NOEL", cart.Promo().Code)
	assert.True(t, dec("5").Equal(cart.Totals().Discount))
}

func TestAppliedSnapshotSurvivesServerDisable(t *testing.T) {
	cat := promoCatalog()
	cart := NewCart(nil, cat, nil)
	cart.AddItem(item("p1", "1g", 3, "10"))
	require.NoError(t, cart.ApplyPromo(context.Background(), "NOEL"))

	cat.promos[0].Enabled = false
	cat.promos[0].Value = 50

	assert.True(t, dec("5").Equal(cart.Totals().Discount))
}

func TestRemovePromoKeepsLines(t *testing.T) {
	store := NewMemoryStore()
	cart := NewCart(store, promoCatalog(), nil)
	cart.AddItem(item("p1", "1g", 3, "10"))
	require.NoError(t, cart.ApplyPromo(context.Background(), "SUMMER"))

	cart.RemovePromo()
	assert.Nil(t, cart.Promo())
	assert.Len(t, cart.Lines(), 1)

	_, err := store.Get(PromoStorageKey)
	assert.ErrorIs(t, err, ErrNotStored)
}
