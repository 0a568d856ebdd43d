package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"plugshop/internal/domain/promos"
)

type promoPayload struct {
	Code      string  `json:"code" validate:"required,max=50"`
	Type      string  `json:"type" validate:"required,oneof=percent fixed"`
	Value     float64 `json:"value" validate:"gt=0"`
	MinAmount float64 `json:"minAmount" validate:"gte=0"`
	Enabled   bool    `json:"enabled"`
}

type updatePromoPayload struct {
	Code      *string  `json:"code" validate:"omitempty,min=1,max=50"`
	Type      *string  `json:"type" validate:"omitempty,oneof=percent fixed"`
	Value     *float64 `json:"value" validate:"omitempty,gt=0"`
	MinAmount *float64 `json:"minAmount" validate:"omitempty,gte=0"`
	Enabled   *bool    `json:"enabled"`
}

// listPublicPromosHandler godoc
//
//	@Summary		List enabled promo codes
//	@Description	The storefront validates codes against this list.
//	@Tags			promos
//	@Produce		json
//	@Success		200	{object}	dataEnvelope
//	@Router			/promos [get]
func (app *application) listPublicPromosHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	list, err := app.store.Promos.ListEnabled(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, list)
}

// listAllPromosHandler includes disabled codes for the back-office.
func (app *application) listAllPromosHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	list, err := app.store.Promos.List(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, list)
}

func (app *application) createPromoHandler(w http.ResponseWriter, r *http.Request) {
	var payload promoPayload
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

	now := time.Now().UTC()
	promo := &promos.Promo{
		ID:        uuid.NewString(),
		Code:      payload.Code,
		Type:      promos.Type(payload.Type),
		Value:     payload.Value,
		MinAmount: payload.MinAmount,
		Enabled:   payload.Enabled,
		CreatedAt: &now,
	}
	if err := app.store.Promos.Save(ctx, promo); err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusCreated, promo)
}

func (app *application) updatePromoHandler(w http.ResponseWriter, r *http.Request) {
	var payload updatePromoPayload
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

	promo, err := app.store.Promos.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}
	setIf(&promo.Code, payload.Code)
	if payload.Type != nil {
		promo.Type = promos.Type(*payload.Type)
	}
	setIf(&promo.Value, payload.Value)
	setIf(&promo.MinAmount, payload.MinAmount)
	setIf(&promo.Enabled, payload.Enabled)
	now := time.Now().UTC()
	promo.UpdatedAt = &now

	if err := app.store.Promos.Save(ctx, promo); err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, promo)
}

func (app *application) deletePromoHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	if err := app.store.Promos.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}
	app.messageResponse(w, http.StatusOK, "promo deleted")
}
