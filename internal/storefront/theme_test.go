package storefront

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plugshop/internal/domain/content"
	"plugshop/internal/domain/events"
)

var now = time.Date(2026, 12, 24, 20, 0, 0, 0, time.UTC)

func window(id string, priority int, start, end time.Time) events.Theme {
	return events.Theme{ID: id, Name: id, Enabled: true, Priority: priority, StartDate: start, EndDate: end}
}

func TestResolvePicksHighestPriority(t *testing.T) {
	themes := []events.Theme{
		window("low", 5, now.Add(-time.Hour), now.Add(time.Hour)),
		window("high", 10, now.Add(-time.Hour), now.Add(time.Hour)),
	}
	got, ok := ResolveActiveEvent(themes, now)
	require.True(t, ok)
	assert.Equal(t, "high", got.ID)
}

func TestResolveNoneInRange(t *testing.T) {
	disabled := window("off", 99, now.Add(-time.Hour), now.Add(time.Hour))
	disabled.Enabled = false
	themes := []events.Theme{
		window("past", 5, now.Add(-48*time.Hour), now.Add(-24*time.Hour)),
		window("future", 10, now.Add(time.Hour), now.Add(2*time.Hour)),
		disabled,
	}
	_, ok := ResolveActiveEvent(themes, now)
	assert.False(t, ok)

	_, ok = ResolveActiveEvent(nil, now)
	assert.False(t, ok)
}

func TestResolveBoundsAreInclusive(t *testing.T) {
	themes := []events.Theme{window("edge", 1, now, now)}
	_, ok := ResolveActiveEvent(themes, now)
	assert.True(t, ok)
}

func TestResolveTieBreaksOnSmallestID(t *testing.T) {
	themes := []events.Theme{
		window("b", 7, now.Add(-time.Hour), now.Add(time.Hour)),
		window("a", 7, now.Add(-time.Hour), now.Add(time.Hour)),
		window("c", 7, now.Add(-time.Hour), now.Add(time.Hour)),
	}
	got, ok := ResolveActiveEvent(themes, now)
	require.True(t, ok)
	assert.Equal(t, "a", got.ID)
}

func TestPollerReResolvesOnTick(t *testing.T) {
	clock := newManualClock(now)
	cat := &fakeCatalog{
		colors: content.ColorTheme{AccentColor: "#ff0000"},
		events: []events.Theme{window("xmas", 1, now.Add(-time.Hour), now.Add(time.Hour))},
	}

	updates := make(chan Theme, 4)
	p := NewThemePoller(cat, WithClock(clock), OnThemeChange(func(th Theme) { updates <- th }))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	first := <-updates
	require.NotNil(t, first.Event)
	assert.Equal(t, "xmas", first.Event.ID)
	assert.Equal(t, "#ff0000", first.Colors.AccentColor)
	assert.Equal(t, "#000000", first.Colors.TextPrimary)

	clock.Set(now.Add(2 * time.Hour))
	clock.ticker.c <- clock.Now()

	second := <-updates
	assert.Nil(t, second.Event)
	assert.Nil(t, p.Current().Event)

	cancel()
	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(time.Second):
		t.Fatal("poller did not stop")
	}
	<-clock.ticker.stopped
}

func TestPollerKeepsPreviousOnFailure(t *testing.T) {
	clock := newManualClock(now)
	cat := &fakeCatalog{
		events: []events.Theme{window("xmas", 1, now.Add(-time.Hour), now.Add(time.Hour))},
	}
	p := NewThemePoller(cat, WithClock(clock))
	require.NoError(t, p.Refresh(context.Background()))
	require.NotNil(t, p.Current().Event)

	cat.eventsErr = errOffline
	cat.colorsErr = errOffline
	assert.Error(t, p.Refresh(context.Background()))
	require.NotNil(t, p.Current().Event)
	assert.Equal(t, "xmas", p.Current().Event.ID)
}

func TestPollerDefaultInterval(t *testing.T) {
	p := NewThemePoller(&fakeCatalog{}, WithInterval(0))
	assert.Equal(t, DefaultThemeInterval, p.interval)
	assert.Equal(t, content.DefaultColorTheme(), p.Current().Colors)
}

// gatedThemes holds its first ColorTheme call until release is closed.
type gatedThemes struct {
	mu      sync.Mutex
	calls   int
	entered chan struct{}
	release chan struct{}
}

func (g *gatedThemes) ColorTheme(ctx context.Context) (content.ColorTheme, error) {
	g.mu.Lock()
	g.calls++
	n := g.calls
	g.mu.Unlock()

	if n == 1 {
		close(g.entered)
		<-g.release
		return content.ColorTheme{AccentColor: "#111111"}, nil
	}
	return content.ColorTheme{AccentColor: "#222222"}, nil
}

func (g *gatedThemes) Events(ctx context.Context) ([]events.Theme, error) { return nil, nil }

func (g *gatedThemes) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func TestConcurrentRefreshesApplyInOrder(t *testing.T) {
	src := &gatedThemes{entered: make(chan struct{}), release: make(chan struct{})}
	p := NewThemePoller(src)
	ctx := context.Background()

	first := make(chan error, 1)
	go func() { first <- p.Refresh(ctx) }()
	<-src.entered

	second := make(chan error, 1)
	go func() { second <- p.Refresh(ctx) }()

	assert.Never(t, func() bool { return src.callCount() > 1 }, 50*time.Millisecond, 5*time.Millisecond)

	close(src.release)
	require.NoError(t, <-first)
	require.NoError(t, <-second)
	assert.Equal(t, 2, src.callCount())
	assert.Equal(t, "#222222", p.Current().Colors.AccentColor)
}
