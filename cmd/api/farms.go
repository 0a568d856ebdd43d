package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"plugshop/internal/domain/catalog"
)

type farmPayload struct {
	Name    string `json:"name" validate:"required,max=100"`
	Enabled bool   `json:"enabled"`
}

type updateFarmPayload struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=100"`
	Enabled *bool   `json:"enabled"`
}

// listFarmsHandler only shows enabled farms.
func (app *application) listFarmsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	farms, err := app.store.Catalog.ListFarms(ctx, true)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, farms)
}

func (app *application) getFarmHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	farm, err := app.store.Catalog.GetFarm(ctx, chi.URLParam(r, "id"))
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, farm)
}

func (app *application) createFarmHandler(w http.ResponseWriter, r *http.Request) {
	var payload farmPayload
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
	farm := &catalog.Farm{ID: uuid.NewString(), Name: payload.Name, Enabled: payload.Enabled, CreatedAt: &now}
	if err := app.store.Catalog.SaveFarm(ctx, farm); err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusCreated, farm)
}

func (app *application) updateFarmHandler(w http.ResponseWriter, r *http.Request) {
	var payload updateFarmPayload
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

	farm, err := app.store.Catalog.GetFarm(ctx, chi.URLParam(r, "id"))
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}
	setIf(&farm.Name, payload.Name)
	setIf(&farm.Enabled, payload.Enabled)
	now := time.Now().UTC()
	farm.UpdatedAt = &now

	if err := app.store.Catalog.SaveFarm(ctx, farm); err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, farm)
}

func (app *application) deleteFarmHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	if err := app.store.Catalog.DeleteFarm(ctx, chi.URLParam(r, "id")); err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}
	app.messageResponse(w, http.StatusOK, "farm deleted")
}
