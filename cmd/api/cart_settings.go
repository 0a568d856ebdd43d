package main

import (
	"context"
	"net/http"

	"plugshop/internal/domain/cartsettings"
)

// listCartServicesHandler godoc
//
//	@Summary		Enabled checkout services
//	@Tags			cart
//	@Produce		json
//	@Success		200	{object}	dataEnvelope
//	@Router			/cart_services [get]
func (app *application) listCartServicesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	services, err := app.store.CartSettings.EnabledServices(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, services)
}

// getCartSettingsHandler godoc
//
//	@Summary		Cart and checkout configuration
//	@Description	Returns defaults until an admin saves settings.
//	@Tags			cart
//	@Produce		json
//	@Success		200	{object}	dataEnvelope
//	@Router			/cart-settings [get]
func (app *application) getCartSettingsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	settings, err := app.store.CartSettings.Get(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, settings)
}

// updateCartSettingsHandler godoc
//
//	@Summary		Update cart settings
//	@Description	Lists sent in the body replace the stored ones; omitted fields are kept.
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		cartsettings.Update	true	"Partial settings"
//	@Success		200		{object}	dataEnvelope
//	@Failure		400		{object}	errorEnvelope
//	@Security		ApiKeyAuth
//	@Router			/cart-settings [post]
func (app *application) updateCartSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var payload cartsettings.Update
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

	updated, err := app.store.CartSettings.Update(ctx, payload)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, updated)
}
