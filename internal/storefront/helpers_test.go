package storefront

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"plugshop/internal/domain/cartsettings"
	"plugshop/internal/domain/content"
	"plugshop/internal/domain/events"
	"plugshop/internal/domain/promos"
)

type fakeCatalog struct {
	mu sync.Mutex

	promos     []promos.Promo
	promosErr  error
	promoCalls int

	colors    content.ColorTheme
	colorsErr error
	events    []events.Theme
	eventsErr error

	settings    *cartsettings.Settings
	settingsErr error
}

func (f *fakeCatalog) Promos(ctx context.Context) ([]promos.Promo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.promoCalls++
	return f.promos, f.promosErr
}

func (f *fakeCatalog) ColorTheme(ctx context.Context) (content.ColorTheme, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.colorsErr != nil {
		return content.DefaultColorTheme(), f.colorsErr
	}
	return content.DefaultColorTheme().Merge(f.colors), nil
}

func (f *fakeCatalog) Events(ctx context.Context) ([]events.Theme, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.events, f.eventsErr
}

func (f *fakeCatalog) CartSettings(ctx context.Context) (*cartsettings.Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settings, f.settingsErr
}

func (f *fakeCatalog) setEvents(list []events.Theme) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = list
}

var errOffline = errors.New("offline")

type failingStore struct{}

func (failingStore) Get(string) ([]byte, error) { return nil, errOffline }
func (failingStore) Set(string, []byte) error   { return errOffline }
func (failingStore) Delete(string) error        { return errOffline }

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func item(productID, variant string, qty int, price string) Item {
	return Item{
		ProductID:    productID,
		VariantName:  variant,
		ProductName:  "Product " + productID,
		VariantLabel: variant,
		Quantity:     qty,
		UnitPrice:    dec(price),
	}
}

func boolPtr(b bool) *bool { return &b }

func testSettings() *cartsettings.Settings {
	s := cartsettings.Default()
	s.Services = []cartsettings.Service{
		{
			ID: "delivery", Name: "delivery", Label: "Livraison", Fee: 2, Enabled: true,
			TimeSlots: []cartsettings.TimeSlot{{Label: "Matin", Value: "morning"}, {Label: "Soir", Value: "evening"}},
		},
		{
			ID: "meetup", Name: "meetup", Label: "Meetup", Fee: 0, Enabled: true,
			RequiresAddress: boolPtr(false),
			TimeSlots:       []cartsettings.TimeSlot{{Label: "Midi", Value: "noon"}},
		},
		{
			ID: "postal", Name: "postal", Label: "Envoi postal", Fee: 5, Enabled: false,
			TimeSlots: []cartsettings.TimeSlot{{Label: "Any", Value: "any"}},
		},
	}
	s.PaymentMethods = []cartsettings.PaymentMethod{
		{ID: "cash", Label: "Espèces", Enabled: true},
		{ID: "crypto", Label: "Crypto", Enabled: false},
	}
	s.ContactLinks = []cartsettings.ContactLink{
		{ID: "1", Name: "Instagram", Icon: "ig", URL: "https://instagram.com/shop"},
		{ID: "2", Name: "Telegram", Icon: "tg", URL: "https://t.me/telegram_shop"},
	}
	return s
}

// manualClock hands out a single ticker the test fires by hand.
type manualClock struct {
	mu     sync.Mutex
	now    time.Time
	ticker *manualTicker
}

type manualTicker struct {
	c       chan time.Time
	stopped chan struct{}
	once    sync.Once
}

func newManualClock(now time.Time) *manualClock {
	return &manualClock{
		now: now,
		ticker: &manualTicker{
			c:       make(chan time.Time),
			stopped: make(chan struct{}),
		},
	}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *manualClock) NewTicker(time.Duration) Ticker { return c.ticker }

func (t *manualTicker) C() <-chan time.Time { return t.c }
func (t *manualTicker) Stop()               { t.once.Do(func() { close(t.stopped) }) }
