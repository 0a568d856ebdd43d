package storefront

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"plugshop/internal/domain/content"
	"plugshop/internal/domain/events"
)

const DefaultThemeInterval = 30 * time.Second

// ResolveActiveEvent picks the enabled theme whose window contains now with
// the highest priority. Equal priorities go to the smallest id.
func ResolveActiveEvent(themes []events.Theme, now time.Time) (events.Theme, bool) {
	var (
		best  events.Theme
		found bool
	)
	for _, t := range themes {
		if !t.ActiveAt(now) {
			continue
		}
		if !found || t.Priority > best.Priority || (t.Priority == best.Priority && t.ID < best.ID) {
			best = t
			found = true
		}
	}
	return best, found
}

// Theme is what the storefront paints with.
type Theme struct {
	Colors content.ColorTheme
	Event  *events.Theme
}

func DefaultTheme() Theme {
	return Theme{Colors: content.DefaultColorTheme()}
}

type ThemeSource interface {
	ColorTheme(ctx context.Context) (content.ColorTheme, error)
	Events(ctx context.Context) ([]events.Theme, error)
}

// Clock is the time source of the poller.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) NewTicker(d time.Duration) Ticker { return realTicker{time.NewTicker(d)} }

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// ThemePoller keeps a Theme current by reloading it on every tick.
type ThemePoller struct {
	src      ThemeSource
	clock    Clock
	interval time.Duration
	logger   *zap.SugaredLogger
	onChange func(Theme)

	refreshMu sync.Mutex // serialises whole reloads

	mu      sync.RWMutex
	current Theme
}

type PollerOption func(*ThemePoller)

func WithClock(c Clock) PollerOption {
	return func(p *ThemePoller) { p.clock = c }
}

func WithInterval(d time.Duration) PollerOption {
	return func(p *ThemePoller) {
		if d > 0 {
			p.interval = d
		}
	}
}

func WithPollerLogger(l *zap.SugaredLogger) PollerOption {
	return func(p *ThemePoller) { p.logger = l }
}

// OnThemeChange is called after every reload, in reload order. fn must not
// call Refresh.
func OnThemeChange(fn func(Theme)) PollerOption {
	return func(p *ThemePoller) { p.onChange = fn }
}

func NewThemePoller(src ThemeSource, opts ...PollerOption) *ThemePoller {
	p := &ThemePoller{
		src:      src,
		clock:    realClock{},
		interval: DefaultThemeInterval,
		logger:   zap.NewNop().Sugar(),
		current:  DefaultTheme(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *ThemePoller) Current() Theme {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Refresh reloads the theme once. A failed fetch keeps the previous value
// for the part that failed and is reported in the returned error. Concurrent
// calls run one after the other.
func (p *ThemePoller) Refresh(ctx context.Context) error {
	p.refreshMu.Lock()
	defer p.refreshMu.Unlock()

	next := p.Current()

	colors, colorsErr := p.src.ColorTheme(ctx)
	if colorsErr != nil {
		p.logger.Warnw("failed to load color theme", "error", colorsErr)
	} else {
		next.Colors = colors
	}

	list, eventsErr := p.src.Events(ctx)
	if eventsErr != nil {
		p.logger.Warnw("failed to load event themes", "error", eventsErr)
	} else if ev, ok := ResolveActiveEvent(list, p.clock.Now()); ok {
		next.Event = &ev
	} else {
		next.Event = nil
	}

	p.mu.Lock()
	p.current = next
	p.mu.Unlock()

	if p.onChange != nil {
		p.onChange(next)
	}
	return errors.Join(colorsErr, eventsErr)
}

// Run refreshes immediately and then on every tick until ctx is done.
func (p *ThemePoller) Run(ctx context.Context) error {
	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	p.Refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C():
			p.Refresh(ctx)
		}
	}
}
