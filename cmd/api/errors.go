package main

import (
	"errors"
	"net/http"

	"folio/internal/apperr"
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusInternalServerError, "the server encountered a problem")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusBadRequest, err.Error())
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusNotFound, "not found")
}

func (app *application) unauthorizedBasicErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized basic error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)

	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter string) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)

	w.Header().Set("Retry-After", retryAfter)

	writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded, retry after: "+retryAfter)
}

func (app *application) serviceUnavailableResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("service unavailable", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusServiceUnavailable, apperr.UserMessage(err, "service unavailable"))
}

// domainErrorResponse maps the apperr shapes returned by services onto statuses.
func (app *application) domainErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		app.logger.Warnw("validation failed", "method", r.Method, "path", r.URL.Path, "error", err.Error())
		writeJSONValidationError(w, apperr.UserMessage(err, ""), ve.Fields)
		return
	}

	var ne *apperr.NetworkError
	if errors.As(err, &ne) {
		app.serviceUnavailableResponse(w, r, err)
		return
	}

	var se *apperr.StoreError
	if errors.As(err, &se) {
		app.logger.Errorw("store error", "method", r.Method, "path", r.URL.Path, "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, apperr.UserMessage(err, "the server encountered a problem"))
		return
	}

	app.internalServerError(w, r, err)
}
