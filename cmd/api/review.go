package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"plugshop/internal/domain/content"
)

type reviewPayload struct {
	CustomerName string `json:"customerName" validate:"required,max=100"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	Comment      string `json:"comment" validate:"required,max=500"`
}

type updateReviewPayload struct {
	CustomerName *string `json:"customerName" validate:"omitempty,min=1,max=100"`
	Rating       *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment      *string `json:"comment" validate:"omitempty,min=1,max=500"`
}

func (app *application) listReviewsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	reviews, err := app.store.Content.ListReviews(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, reviews)
}

func (app *application) createReviewHandler(w http.ResponseWriter, r *http.Request) {
	var payload reviewPayload
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
	review := &content.Review{
		ID:           uuid.NewString(),
		CustomerName: payload.CustomerName,
		Rating:       payload.Rating,
		Comment:      payload.Comment,
		CreatedAt:    &now,
	}
	if err := app.store.Content.SaveReview(ctx, review); err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusCreated, review)
}

func (app *application) updateReviewHandler(w http.ResponseWriter, r *http.Request) {
	var payload updateReviewPayload
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

	review, err := app.store.Content.GetReview(ctx, chi.URLParam(r, "id"))
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}
	setIf(&review.CustomerName, payload.CustomerName)
	setIf(&review.Rating, payload.Rating)
	setIf(&review.Comment, payload.Comment)
	now := time.Now().UTC()
	review.UpdatedAt = &now

	if err := app.store.Content.SaveReview(ctx, review); err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, review)
}

func (app *application) deleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	if err := app.store.Content.DeleteReview(ctx, chi.URLParam(r, "id")); err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}
	app.messageResponse(w, http.StatusOK, "review deleted")
}
