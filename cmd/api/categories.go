package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"plugshop/internal/domain/catalog"
)

type categoryPayload struct {
	Name string `json:"name" validate:"required,max=100"`
	Icon string `json:"icon" validate:"required"`
}

type updateCategoryPayload struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=100"`
	Icon *string `json:"icon" validate:"omitempty,min=1"`
}

func (app *application) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	categories, err := app.store.Catalog.ListCategories(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, categories)
}

func (app *application) getCategoryHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	category, err := app.store.Catalog.GetCategory(ctx, chi.URLParam(r, "id"))
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, category)
}

func (app *application) createCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var payload categoryPayload
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
	category := &catalog.Category{ID: uuid.NewString(), Name: payload.Name, Icon: payload.Icon, CreatedAt: &now}
	if err := app.store.Catalog.SaveCategory(ctx, category); err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusCreated, category)
}

func (app *application) updateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var payload updateCategoryPayload
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

	category, err := app.store.Catalog.GetCategory(ctx, chi.URLParam(r, "id"))
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}
	setIf(&category.Name, payload.Name)
	setIf(&category.Icon, payload.Icon)
	now := time.Now().UTC()
	category.UpdatedAt = &now

	if err := app.store.Catalog.SaveCategory(ctx, category); err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, category)
}

func (app *application) deleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	if err := app.store.Catalog.DeleteCategory(ctx, chi.URLParam(r, "id")); err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}
	app.messageResponse(w, http.StatusOK, "category deleted")
}
