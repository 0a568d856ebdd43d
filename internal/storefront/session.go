package storefront

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"plugshop/internal/domain/cartsettings"
)

// Catalog is the part of the shop API a session reads from.
type Catalog interface {
	PromoSource
	ThemeSource
	CartSettings(ctx context.Context) (*cartsettings.Settings, error)
}

// Session is one customer's storefront: their cart, the checkout wizard
// over it, the cart settings and the current theme.
type Session struct {
	Cart   *Cart
	Wizard *Wizard

	catalog Catalog
	poller  *ThemePoller
	logger  *zap.SugaredLogger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewSession(catalog Catalog, store LocalStore, logger *zap.SugaredLogger, opts ...PollerOption) *Session {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	cart := NewCart(store, catalog, logger)
	opts = append([]PollerOption{WithPollerLogger(logger)}, opts...)
	return &Session{
		Cart:    cart,
		Wizard:  NewWizard(cart, nil),
		catalog: catalog,
		poller:  NewThemePoller(catalog, opts...),
		logger:  logger,
	}
}

// Load restores the saved cart.
func (s *Session) Load() error {
	return s.Cart.Load()
}

// Save writes the cart out.
func (s *Session) Save() error {
	return s.Cart.Save()
}

// Refresh fetches cart settings and the theme concurrently. Each failure is
// logged and leaves its part at the previous value; the first one is
// returned.
func (s *Session) Refresh(ctx context.Context) error {
	var (
		g        errgroup.Group
		settings *cartsettings.Settings
	)

	g.Go(func() error {
		cs, err := s.catalog.CartSettings(ctx)
		if err != nil {
			s.logger.Warnw("failed to load cart settings", "error", err)
			return err
		}
		settings = cs
		return nil
	})
	g.Go(func() error {
		return s.poller.Refresh(ctx)
	})

	err := g.Wait()
	if settings != nil {
		s.Wizard.SetSettings(settings)
	}
	return err
}

// ResetCheckout starts a new checkout over the same cart.
func (s *Session) ResetCheckout() *Wizard {
	s.Wizard = NewWizard(s.Cart, s.Wizard.Settings())
	return s.Wizard
}

func (s *Session) Settings() *cartsettings.Settings {
	return s.Wizard.Settings()
}

func (s *Session) Theme() Theme {
	return s.poller.Current()
}

// StartThemePolling runs the theme poller in the background until Close or
// until ctx is done. Calling it twice is a no-op.
func (s *Session) StartThemePolling(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		s.poller.Run(ctx)
	}()
}

// Close stops polling and saves the cart.
func (s *Session) Close() error {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	return s.Save()
}
