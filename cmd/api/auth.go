package main

import (
	"context"
	"errors"
	"net/http"

	"plugshop/internal/auth"
	"plugshop/internal/domain/users"
)

type loginPayload struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

type loginUser struct {
	ID    string     `json:"id"`
	Email string     `json:"email"`
	Role  users.Role `json:"role"`
}

type loginResponse struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	User         loginUser `json:"user"`
}

type refreshPayload struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

var errBadCredentials = errors.New("invalid email or password")

// loginHandler godoc
//
//	@Summary		Back-office login
//	@Description	Exchanges credentials for an access/refresh token pair.
//	@Tags			authentication
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		loginPayload	true	"Credentials"
//	@Success		200		{object}	dataEnvelope
//	@Failure		400		{object}	errorEnvelope
//	@Failure		401		{object}	errorEnvelope
//	@Router			/auth/login [post]
func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
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

	user, err := app.store.Users.GetByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			app.logger.Warnw("failed login attempt", "email", payload.Email)
			app.unauthorizedErrorResponse(w, r, err, errBadCredentials.Error())
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := user.Password.Compare(payload.Password); err != nil {
		app.logger.Warnw("failed login attempt", "email", payload.Email)
		app.unauthorizedErrorResponse(w, r, err, errBadCredentials.Error())
		return
	}

	accessToken, refreshToken, err := app.authenticator.GenerateTokens(user.ID, string(user.Role))
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, loginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         loginUser{ID: user.ID, Email: user.Email, Role: user.Role},
	})
}

// refreshTokenHandler godoc
//
//	@Summary		Refresh the access token
//	@Tags			authentication
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		refreshPayload	true	"Refresh token"
//	@Success		200		{object}	dataEnvelope
//	@Failure		400		{object}	errorEnvelope
//	@Failure		403		{object}	errorEnvelope
//	@Router			/auth/refresh [post]
func (app *application) refreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	var payload refreshPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	token, err := app.authenticator.ValidateRefreshToken(payload.RefreshToken)
	if err != nil {
		app.forbiddenResponse(w, r, "invalid or expired refresh token")
		return
	}
	claims, err := auth.ClaimsFrom(token)
	if err != nil {
		app.forbiddenResponse(w, r, "invalid or expired refresh token")
		return
	}

	accessToken, err := app.authenticator.GenerateAccessToken(claims.UserID, claims.Role)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]string{"accessToken": accessToken})
}
