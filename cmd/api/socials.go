package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"plugshop/internal/domain/content"
)

type socialPayload struct {
	Name string `json:"name" validate:"required,max=100"`
	Icon string `json:"icon" validate:"required"`
	URL  string `json:"url" validate:"required,url"`
}

type updateSocialPayload struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=100"`
	Icon *string `json:"icon" validate:"omitempty,min=1"`
	URL  *string `json:"url" validate:"omitempty,url"`
}

func (app *application) listSocialsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	socials, err := app.store.Content.ListSocials(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, socials)
}

func (app *application) createSocialHandler(w http.ResponseWriter, r *http.Request) {
	var payload socialPayload
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
	link := &content.SocialLink{ID: uuid.NewString(), Name: payload.Name, Icon: payload.Icon, URL: payload.URL, CreatedAt: &now}
	if err := app.store.Content.SaveSocial(ctx, link); err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusCreated, link)
}

func (app *application) updateSocialHandler(w http.ResponseWriter, r *http.Request) {
	var payload updateSocialPayload
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

	link, err := app.store.Content.GetSocial(ctx, chi.URLParam(r, "id"))
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}
	setIf(&link.Name, payload.Name)
	setIf(&link.Icon, payload.Icon)
	setIf(&link.URL, payload.URL)
	now := time.Now().UTC()
	link.UpdatedAt = &now

	if err := app.store.Content.SaveSocial(ctx, link); err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, link)
}

func (app *application) deleteSocialHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	if err := app.store.Content.DeleteSocial(ctx, chi.URLParam(r, "id")); err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}
	app.messageResponse(w, http.StatusOK, "social link deleted")
}
