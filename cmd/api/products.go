package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"plugshop/internal/domain/catalog"
	"plugshop/internal/params"
)

const queryTimeout = 5 * time.Second

type productVariantPayload struct {
	Name     string  `json:"name" validate:"required"`
	Grammage float64 `json:"grammage" validate:"gt=0"`
	Unit     string  `json:"unit" validate:"required"`
	Price    float64 `json:"price" validate:"gt=0"`
}

type createProductPayload struct {
	Name        string                  `json:"name" validate:"required,max=200"`
	Description string                  `json:"description" validate:"max=5000"`
	Category    string                  `json:"category" validate:"required"`
	Farm        string                  `json:"farm" validate:"required"`
	Photo       string                  `json:"photo"`
	Image       string                  `json:"image"`
	Video       string                  `json:"video"`
	Medias      []string                `json:"medias"`
	Variants    []productVariantPayload `json:"variants" validate:"required,min=1,dive"`
}

type updateProductPayload struct {
	Name        *string                 `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string                 `json:"description" validate:"omitempty,max=5000"`
	Category    *string                 `json:"category" validate:"omitempty,min=1"`
	Farm        *string                 `json:"farm" validate:"omitempty,min=1"`
	Photo       *string                 `json:"photo"`
	Image       *string                 `json:"image"`
	Video       *string                 `json:"video"`
	Medias      []string                `json:"medias"`
	Variants    []productVariantPayload `json:"variants" validate:"omitempty,min=1,dive"`
}

func toVariants(in []productVariantPayload) []catalog.ProductVariant {
	out := make([]catalog.ProductVariant, len(in))
	for i, v := range in {
		out[i] = catalog.ProductVariant{Name: v.Name, Grammage: v.Grammage, Unit: v.Unit, Price: v.Price}
	}
	return out
}

// listProductsHandler godoc
//
//	@Summary		List products
//	@Description	page/limit are optional; when given, totals are reported in X-Total-Count and X-Total-Pages.
//	@Tags			products
//	@Produce		json
//	@Param			category	query		string	false	"Only products of this category id"
//	@Param			farm		query		string	false	"Only products of this farm id"
//	@Param			page		query		int		false	"Page number, from 1"
//	@Param			limit		query		int		false	"Page size, at most 100"
//	@Success		200	{object}	dataEnvelope
//	@Failure		500	{object}	errorEnvelope
//	@Router			/products [get]
func (app *application) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	products, err := app.store.Catalog.ListProducts(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	q := r.URL.Query()
	if category, farm := q.Get("category"), q.Get("farm"); category != "" || farm != "" {
		filtered := make([]catalog.Product, 0, len(products))
		for _, p := range products {
			if (category == "" || p.Category == category) && (farm == "" || p.Farm == farm) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	if page, ok := params.ParsePagination(q); ok {
		products = params.Window(products, &page)
		w.Header().Set("X-Total-Count", strconv.Itoa(page.Total))
		w.Header().Set("X-Total-Pages", strconv.Itoa(page.TotalPages))
	}

	app.jsonResponse(w, http.StatusOK, products)
}

// getProductHandler godoc
//
//	@Summary		Get a product
//	@Tags			products
//	@Produce		json
//	@Param			id	path		string	true	"Product ID"
//	@Success		200	{object}	dataEnvelope
//	@Failure		404	{object}	errorEnvelope
//	@Router			/products/{id} [get]
func (app *application) getProductHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	product, err := app.store.Catalog.GetProduct(ctx, chi.URLParam(r, "id"))
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, product)
}

// createProductHandler godoc
//
//	@Summary		Create a product
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		createProductPayload	true	"Product"
//	@Success		201		{object}	dataEnvelope
//	@Failure		400		{object}	errorEnvelope
//	@Security		ApiKeyAuth
//	@Router			/products [post]
func (app *application) createProductHandler(w http.ResponseWriter, r *http.Request) {
	var payload createProductPayload
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

	product := &catalog.Product{
		ID:          uuid.NewString(),
		Name:        payload.Name,
		Description: payload.Description,
		Category:    payload.Category,
		Farm:        payload.Farm,
		Photo:       payload.Photo,
		Image:       payload.Image,
		Video:       payload.Video,
		Medias:      payload.Medias,
		Variants:    toVariants(payload.Variants),
		CreatedAt:   time.Now().UTC(),
	}
	if err := app.store.Catalog.SaveProduct(ctx, product); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, product)
}

// updateProductHandler godoc
//
//	@Summary		Update a product
//	@Description	Only the fields present in the body are changed.
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Product ID"
//	@Param			payload	body		updateProductPayload	true	"Fields to change"
//	@Success		200		{object}	dataEnvelope
//	@Failure		400		{object}	errorEnvelope
//	@Failure		404		{object}	errorEnvelope
//	@Security		ApiKeyAuth
//	@Router			/products/{id} [put]
func (app *application) updateProductHandler(w http.ResponseWriter, r *http.Request) {
	var payload updateProductPayload
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

	product, err := app.store.Catalog.GetProduct(ctx, chi.URLParam(r, "id"))
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	setIf(&product.Name, payload.Name)
	setIf(&product.Description, payload.Description)
	setIf(&product.Category, payload.Category)
	setIf(&product.Farm, payload.Farm)
	setIf(&product.Photo, payload.Photo)
	setIf(&product.Image, payload.Image)
	setIf(&product.Video, payload.Video)
	if payload.Medias != nil {
		product.Medias = payload.Medias
	}
	if payload.Variants != nil {
		product.Variants = toVariants(payload.Variants)
	}
	now := time.Now().UTC()
	product.UpdatedAt = &now

	if err := app.store.Catalog.SaveProduct(ctx, product); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, product)
}

// deleteProductHandler godoc
//
//	@Summary		Delete a product
//	@Tags			admin
//	@Produce		json
//	@Param			id	path		string	true	"Product ID"
//	@Success		200	{object}	messageEnvelope
//	@Failure		404	{object}	errorEnvelope
//	@Security		ApiKeyAuth
//	@Router			/products/{id} [delete]
func (app *application) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	if err := app.store.Catalog.DeleteProduct(ctx, chi.URLParam(r, "id")); err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.messageResponse(w, http.StatusOK, "product deleted")
}

// setIf copies *src into dst when the field was sent.
func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// storeErrorResponse maps the domain sentinel errors onto HTTP statuses.
func (app *application) storeErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	for _, nf := range notFoundErrors {
		if errors.Is(err, nf) {
			app.notFoundResponse(w, r, err)
			return
		}
	}
	app.internalServerError(w, r, err)
}
