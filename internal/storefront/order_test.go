package storefront

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plugshop/internal/domain/cartsettings"
	"plugshop/internal/domain/promos"
)

type recordingClipboard struct {
	text string
}

func (c *recordingClipboard) WriteText(_ context.Context, text string) error {
	c.text = text
	return nil
}

func TestOrderTextFullLayout(t *testing.T) {
	svc := cartsettings.Service{ID: "delivery", Label: "Livraison", Fee: 2}
	pm := cartsettings.PaymentMethod{ID: "cash", Label: "Espèces"}
	lines := []Line{
		{ID: "p1-1g", Item: Item{ProductID: "p1", VariantName: "1g", ProductName: "Lemon Haze", VariantLabel: "1g", Quantity: 3, UnitPrice: dec("10")}},
	}
	order := Order{
		Customer: CustomerInfo{FirstName: "Jean", LastName: "Dupont", Phone: "0600", Address: "1 rue", AddressComplement: "bât B"},
		Service:  &svc,
		TimeSlot: "morning",
		Payment:  &pm,
		Lines:    lines,
		Totals:   ComputeTotals(lines, &promos.Promo{Type: promos.TypeFixed, Value: 5}, dec("2")),
	}

	want := "🛒 NOUVELLE COMMANDE\n\n" +
		"👤 CLIENT:\n" +
		"Nom: Jean Dupont\n" +
		"Téléphone: 0600\n" +
		"Adresse: 1 rue, bât B\n" +
		"\n📦 PRODUITS:\n" +
		"* Lemon Haze (1g) x 3 = 30.00€\n" +
		"\n💰 TOTAL:\n" +
		"Sous-total: 30.00€\n" +
		"Code promo: -5.00€\n" +
		"Frais: 2.00€\n" +
		"TOTAL: 27.00€\n\n" +
		"🚚 SERVICE: Livraison\n" +
		"⏰ Horaire: morning\n" +
		"💳 PAIEMENT: Espèces\n"

	assert.Equal(t, want, OrderText(order))
}

func TestOrderTextOmitsZeroDiscountAndUsesTwoDecimals(t *testing.T) {
	lines := []Line{
		{ID: "a", Item: Item{ProductName: "A", VariantLabel: "1g", Quantity: 2, UnitPrice: dec("7.5")}},
		{ID: "b", Item: Item{ProductName: "B", VariantLabel: "2g", Quantity: 1, UnitPrice: dec("3.333")}},
	}
	text := OrderText(Order{
		Customer: CustomerInfo{FirstName: "A", LastName: "B", Phone: "1"},
		Lines:    lines,
		Totals:   ComputeTotals(lines, nil, decimal.Zero),
	})

	assert.NotContains(t, text, "Code promo")
	assert.NotContains(t, text, "Frais")
	assert.NotContains(t, text, "Adresse")
	assert.Contains(t, text, "* A (1g) x 2 = 15.00€\n")
	assert.Contains(t, text, "* B (2g) x 1 = 3.33€\n")
	assert.Contains(t, text, "Sous-total: 18.33€\n")
	assert.Contains(t, text, "TOTAL: 18.33€\n")
}

func TestDeepLinkUsesFirstTelegramLink(t *testing.T) {
	links := testSettings().ContactLinks
	links = append(links, cartsettings.ContactLink{URL: "https://t.me/telegram_other"})

	link, ok := DeepLink(links, "a b&c+d\n")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(link, "https://t.me/telegram_shop?text="))

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "a b&c+d\n", u.Query().Get("text"))
	assert.NotContains(t, link, "+")

	_, ok = DeepLink(links[:1], "x")
	assert.False(t, ok)
}

func TestDeepLinkMatchesOnURLOnly(t *testing.T) {
	links := []cartsettings.ContactLink{
		{ID: "1", Name: "Telegram", URL: "https://t.me/shop"},
		{ID: "2", Name: "Chat", URL: "https://Telegram.me/shop?start=1"},
	}
	link, ok := DeepLink(links, "hi")
	require.True(t, ok)
	assert.Equal(t, "https://Telegram.me/shop?start=1&text=hi", link)

	_, ok = DeepLink(links[:1], "hi")
	assert.False(t, ok)
}

func TestCopyAndLinkDoNotMutateWizard(t *testing.T) {
	w := walkToCustomerStep(t, "delivery", "morning")
	require.NoError(t, w.SelectPayment("cash"))
	w.SetCustomer(fullCustomer())
	w.Next()
	before := w.State()

	cb := &recordingClipboard{}
	require.NoError(t, w.CopyOrder(context.Background(), cb))
	assert.Equal(t, w.OrderText(), cb.text)
	assert.Contains(t, cb.text, "🚚 SERVICE: Livraison\n")

	link, err := w.OrderLink()
	require.NoError(t, err)
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, cb.text, u.Query().Get("text"))

	assert.Equal(t, before, w.State())
	assert.Len(t, w.cart.Lines(), 1)
}

func TestOrderLinkWithoutTelegram(t *testing.T) {
	s := testSettings()
	s.ContactLinks = nil
	w := NewWizard(NewCart(nil, nil, nil), s)
	_, err := w.OrderLink()
	assert.ErrorIs(t, err, ErrNoContactLink)
}
