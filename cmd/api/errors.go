package main

import (
	"fmt"
	"net/http"
	"time"

	"plugshop/internal/domain/catalog"
	"plugshop/internal/domain/content"
	"plugshop/internal/domain/events"
	"plugshop/internal/domain/promos"
	"plugshop/internal/domain/users"
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	message := err.Error()
	if app.config.env == "production" {
		message = "the server encountered a problem"
	}
	writeJSONError(w, http.StatusInternalServerError, message)
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusBadRequest, validationMessage(err))
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusNotFound, err.Error())
}

func (app *application) conflictResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("conflict response", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusConflict, err.Error())
}

func (app *application) unauthorizedErrorResponse(w http.ResponseWriter, r *http.Request, err error, message string) {
	app.logger.Warnw("unauthorized error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusUnauthorized, message)
}

func (app *application) forbiddenResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.logger.Warnw("forbidden", "method", r.Method, "path", r.URL.Path)

	writeJSONError(w, http.StatusForbidden, message)
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter time.Duration) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path, "ip", r.RemoteAddr)

	secs := int(retryAfter.Seconds())
	if secs < 1 {
		secs = 1
	}
	w.Header().Set("Retry-After", fmt.Sprintf("%d", secs))

	writeJSONError(w, http.StatusTooManyRequests, "too many requests, please try again later")
}

func (app *application) notImplementedResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.logger.Warnw("not implemented", "method", r.Method, "path", r.URL.Path)

	writeJSONError(w, http.StatusNotImplemented, message)
}

var notFoundErrors = []error{
	catalog.ErrProductNotFound,
	catalog.ErrCategoryNotFound,
	catalog.ErrFarmNotFound,
	promos.ErrNotFound,
	content.ErrReviewNotFound,
	content.ErrSocialNotFound,
	events.ErrNotFound,
	users.ErrNotFound,
}
