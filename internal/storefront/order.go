package storefront

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"plugshop/internal/domain/cartsettings"
)

// Order is everything the order message is built from.
type Order struct {
	Customer CustomerInfo
	Service  *cartsettings.Service
	TimeSlot string
	Payment  *cartsettings.PaymentMethod
	Lines    []Line
	Totals   Totals
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2) + "€"
}

// OrderText renders the message the customer sends to the shop.
func OrderText(o Order) string {
	var b strings.Builder

	b.WriteString("🛒 NOUVELLE COMMANDE\n\n")
	b.WriteString("👤 CLIENT:\n")
	b.WriteString("Nom: " + o.Customer.FirstName + " " + o.Customer.LastName + "\n")
	b.WriteString("Téléphone: " + o.Customer.Phone + "\n")
	if o.Customer.Address != "" {
		b.WriteString("Adresse: " + o.Customer.Address)
		if o.Customer.AddressComplement != "" {
			b.WriteString(", " + o.Customer.AddressComplement)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n📦 PRODUITS:\n")
	for _, l := range o.Lines {
		b.WriteString("* " + l.ProductName + " (" + l.VariantLabel + ") x ")
		b.WriteString(strconv.Itoa(l.Quantity))
		b.WriteString(" = " + money(l.Total()) + "\n")
	}

	b.WriteString("\n💰 TOTAL:\n")
	b.WriteString("Sous-total: " + money(o.Totals.Subtotal) + "\n")
	if o.Totals.Discount.IsPositive() {
		b.WriteString("Code promo: -" + money(o.Totals.Discount) + "\n")
	}
	if o.Service != nil {
		b.WriteString("Frais: " + money(decimal.NewFromFloat(o.Service.Fee)) + "\n")
	}
	b.WriteString("TOTAL: " + money(o.Totals.Total) + "\n\n")

	if o.Service != nil {
		b.WriteString("🚚 SERVICE: " + o.Service.Label + "\n")
	}
	if o.TimeSlot != "" {
		b.WriteString("⏰ Horaire: " + o.TimeSlot + "\n")
	}
	if o.Payment != nil {
		b.WriteString("💳 PAIEMENT: " + o.Payment.Label + "\n")
	}
	return b.String()
}

// DeepLink pre-fills text into the first Telegram contact link.
func DeepLink(links []cartsettings.ContactLink, text string) (string, bool) {
	for _, l := range links {
		if !strings.Contains(strings.ToLower(l.URL), "telegram") {
			continue
		}
		sep := "?"
		if strings.Contains(l.URL, "?") {
			sep = "&"
		}
		return l.URL + sep + "text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20"), true
	}
	return "", false
}

// Clipboard receives the order text on "copy".
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

var ErrNoContactLink = errors.New("no telegram contact link configured")

// Order snapshots the wizard into an Order.
func (w *Wizard) Order() Order {
	o := Order{
		Customer: w.state.Customer,
		TimeSlot: w.state.TimeSlot,
		Lines:    w.cart.Lines(),
		Totals:   w.Totals(),
	}
	if svc, ok := w.Service(); ok {
		o.Service = &svc
	}
	if pm, ok := w.Payment(); ok {
		o.Payment = &pm
	}
	return o
}

func (w *Wizard) OrderText() string {
	return OrderText(w.Order())
}

// CopyOrder writes the order text to the clipboard. The wizard is unchanged.
func (w *Wizard) CopyOrder(ctx context.Context, cb Clipboard) error {
	return cb.WriteText(ctx, w.OrderText())
}

// OrderLink is the Telegram link carrying the order text.
func (w *Wizard) OrderLink() (string, error) {
	link, ok := DeepLink(w.settings.ContactLinks, w.OrderText())
	if !ok {
		return "", ErrNoContactLink
	}
	return link, nil
}
