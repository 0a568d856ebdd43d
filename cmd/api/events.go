package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"plugshop/internal/domain/events"
)

type eventPayload struct {
	Name      string         `json:"name" validate:"required,max=100"`
	Enabled   bool           `json:"enabled"`
	StartDate time.Time      `json:"startDate" validate:"required"`
	EndDate   time.Time      `json:"endDate" validate:"required"`
	Priority  int            `json:"priority"`
	Config    map[string]any `json:"config"`
}

type updateEventPayload struct {
	Name      *string        `json:"name" validate:"omitempty,min=1,max=100"`
	Enabled   *bool          `json:"enabled"`
	StartDate *time.Time     `json:"startDate"`
	EndDate   *time.Time     `json:"endDate"`
	Priority  *int           `json:"priority"`
	Config    map[string]any `json:"config"`
}

var errEventWindow = errors.New("endDate must not be before startDate")

// listEventsHandler returns every theme, enabled or not; the storefront
// resolves the active one itself.
func (app *application) listEventsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	list, err := app.store.Events.List(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, list)
}

func (app *application) createEventHandler(w http.ResponseWriter, r *http.Request) {
	var payload eventPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if payload.EndDate.Before(payload.StartDate) {
		app.badRequestResponse(w, r, errEventWindow)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	now := time.Now().UTC()
	theme := &events.Theme{
		ID:        uuid.NewString(),
		Name:      payload.Name,
		Enabled:   payload.Enabled,
		StartDate: payload.StartDate,
		EndDate:   payload.EndDate,
		Priority:  payload.Priority,
		Config:    payload.Config,
		CreatedAt: &now,
	}
	if err := app.store.Events.Save(ctx, theme); err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusCreated, theme)
}

func (app *application) updateEventHandler(w http.ResponseWriter, r *http.Request) {
	var payload updateEventPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	theme, err := app.store.Events.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}
	setIf(&theme.Name, payload.Name)
	setIf(&theme.Enabled, payload.Enabled)
	setIf(&theme.StartDate, payload.StartDate)
	setIf(&theme.EndDate, payload.EndDate)
	setIf(&theme.Priority, payload.Priority)
	if payload.Config != nil {
		theme.Config = payload.Config
	}
	if theme.EndDate.Before(theme.StartDate) {
		app.badRequestResponse(w, r, errEventWindow)
		return
	}
	now := time.Now().UTC()
	theme.UpdatedAt = &now

	if err := app.store.Events.Save(ctx, theme); err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, theme)
}

func (app *application) deleteEventHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	if err := app.store.Events.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}
	app.messageResponse(w, http.StatusOK, "event deleted")
}
