package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"plugshop/internal/domain/users"
)

type createAdminUserPayload struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=admin superadmin"`
}

type updateAdminUserPayload struct {
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin superadmin"`
}

func (app *application) listAdminUsersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	list, err := app.store.Users.List(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, list)
}

func (app *application) createAdminUserHandler(w http.ResponseWriter, r *http.Request) {
	var payload createAdminUserPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := &users.AdminUser{Email: payload.Email, Role: users.Role(payload.Role)}
	if err := user.Password.Set(payload.Password); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	if err := app.store.Users.Create(ctx, user); err != nil {
		if errors.Is(err, users.ErrDuplicateEmail) {
			app.conflictResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusCreated, user)
}

func (app *application) updateAdminUserHandler(w http.ResponseWriter, r *http.Request) {
	var payload updateAdminUserPayload
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

	user, err := app.store.Users.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}
	setIf(&user.Email, payload.Email)
	if payload.Role != nil {
		user.Role = users.Role(*payload.Role)
	}
	if payload.Password != nil {
		if err := user.Password.Set(*payload.Password); err != nil {
			app.internalServerError(w, r, err)
			return
		}
	}

	if err := app.store.Users.Update(ctx, user); err != nil {
		if errors.Is(err, users.ErrDuplicateEmail) {
			app.conflictResponse(w, r, err)
			return
		}
		app.storeErrorResponse(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, user)
}

func (app *application) deleteAdminUserHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if claims, ok := getClaimsFromContext(r); ok && claims.UserID == id {
		app.badRequestResponse(w, r, errors.New("you cannot delete your own account"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	if err := app.store.Users.Delete(ctx, id); err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}
	app.messageResponse(w, http.StatusOK, "user deleted")
}
