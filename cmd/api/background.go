package main

import (
	"context"
	"time"

	"plugshop/internal/storefront"
)

const activeEventInterval = time.Minute

// trackActiveEvent re-resolves the active event theme and publishes it as
// the plugshop_active_event gauge. Returns the active id, or "".
func (app *application) trackActiveEvent(ctx context.Context, now time.Time) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	themes, err := app.store.Events.List(ctx)
	if err != nil {
		return "", err
	}

	app.metrics.activeEvent.Reset()
	ev, ok := storefront.ResolveActiveEvent(themes, now)
	if !ok {
		return "", nil
	}
	app.metrics.activeEvent.WithLabelValues(ev.ID, ev.Name).Set(float64(ev.Priority))
	return ev.ID, nil
}

func (app *application) trackActiveEventEvery(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		current := ""
		check := func() {
			id, err := app.trackActiveEvent(ctx, time.Now())
			if err != nil {
				app.logger.Errorw("failed to resolve active event", "error", err)
				return
			}
			if id != current {
				app.logger.Infow("active event changed", "from", current, "to", id)
				current = id
			}
		}

		// Run once immediately
		check()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				check()
			}
		}
	}()
}
