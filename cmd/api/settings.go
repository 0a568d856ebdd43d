package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"plugshop/internal/domain/content"
)

type homeSectionPayload struct {
	Icon    string `json:"icon"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type colorThemePayload struct {
	TextPrimary      string `json:"textPrimary" validate:"hexcolor_or_empty"`
	TextSecondary    string `json:"textSecondary" validate:"hexcolor_or_empty"`
	TextHeading      string `json:"textHeading" validate:"hexcolor_or_empty"`
	BackgroundColor  string `json:"backgroundColor" validate:"hexcolor_or_empty"`
	CardBackground   string `json:"cardBackground" validate:"hexcolor_or_empty"`
	BorderColor      string `json:"borderColor" validate:"hexcolor_or_empty"`
	ButtonText       string `json:"buttonText" validate:"hexcolor_or_empty"`
	ButtonBackground string `json:"buttonBackground" validate:"hexcolor_or_empty"`
	LinkColor        string `json:"linkColor" validate:"hexcolor_or_empty"`
	AccentColor      string `json:"accentColor" validate:"hexcolor_or_empty"`
}

type updateSettingsPayload struct {
	ShopName        *string                `json:"shopName" validate:"omitempty,max=100"`
	HeroTitle       *string                `json:"heroTitle" validate:"omitempty,max=200"`
	HeroSubtitle    *string                `json:"heroSubtitle" validate:"omitempty,max=500"`
	BackgroundImage *string                `json:"backgroundImage"`
	Sections        []homeSectionPayload   `json:"sections"`
	ColorTheme      *colorThemePayload     `json:"colorTheme"`
	Typography      *content.Typography    `json:"typography"`
	LoadingScreen   *content.LoadingScreen `json:"loadingScreen"`
}

// getSettingsHandler godoc
//
//	@Summary		Home page settings
//	@Tags			settings
//	@Produce		json
//	@Success		200	{object}	dataEnvelope
//	@Router			/settings [get]
func (app *application) getSettingsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	settings, err := app.store.Content.ShopSettings(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, settings)
}

// getSettingHandler godoc
//
//	@Summary		Raw value of one setting
//	@Description	Answers data: null for keys that were never set.
//	@Tags			settings
//	@Produce		json
//	@Param			key	path		string	true	"Setting key, e.g. colorTheme"
//	@Success		200	{object}	dataEnvelope
//	@Router			/settings/{key} [get]
func (app *application) getSettingHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	raw, err := app.store.Content.Setting(ctx, chi.URLParam(r, "key"))
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, raw)
}

func (app *application) updateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var payload updateSettingsPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	in := content.SettingsUpdate{
		ShopName:        payload.ShopName,
		HeroTitle:       payload.HeroTitle,
		HeroSubtitle:    payload.HeroSubtitle,
		BackgroundImage: payload.BackgroundImage,
		Typography:      payload.Typography,
		LoadingScreen:   payload.LoadingScreen,
	}
	if payload.Sections != nil {
		in.Sections = make([]content.HomeSection, len(payload.Sections))
		for i, s := range payload.Sections {
			in.Sections[i] = content.HomeSection{Icon: s.Icon, Title: s.Title, Content: s.Content}
		}
	}
	if c := payload.ColorTheme; c != nil {
		in.ColorTheme = &content.ColorTheme{
			TextPrimary:      c.TextPrimary,
			TextSecondary:    c.TextSecondary,
			TextHeading:      c.TextHeading,
			BackgroundColor:  c.BackgroundColor,
			CardBackground:   c.CardBackground,
			BorderColor:      c.BorderColor,
			ButtonText:       c.ButtonText,
			ButtonBackground: c.ButtonBackground,
			LinkColor:        c.LinkColor,
			AccentColor:      c.AccentColor,
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	if err := app.store.Content.UpdateSettings(ctx, in); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	settings, err := app.store.Content.ShopSettings(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, settings)
}
