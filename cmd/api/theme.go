package main

import (
	"errors"
	"net/http"

	"folio/internal/apperr"
	"folio/internal/theme"
)

type SetThemePayload struct {
	Color string `json:"color"`
}

type themeResponse struct {
	theme.Accent
	HSL           string `json:"hsl"`
	StrictPalette bool   `json:"strict_palette"`
}

func (app *application) currentTheme() themeResponse {
	a := app.theme.Accent()
	return themeResponse{Accent: a, HSL: a.HSL(), StrictPalette: app.theme.Strict()}
}

// getThemeHandler godoc
//
//	@Summary		Current accent colour
//	@Tags			Theme
//	@Produce		json
//	@Success		200	{object}	themeResponse
//	@Router			/theme [get]
func (app *application) getThemeHandler(w http.ResponseWriter, r *http.Request) {
	app.jsonResponse(w, http.StatusOK, app.currentTheme())
}

// setThemeHandler godoc
//
//	@Summary		Select the accent colour
//	@Description	Accepts a hex colour. Unless the strict palette is disabled only palette colours are accepted.
//	@Tags			Theme
//	@Accept			json
//	@Produce		json
//	@Param			theme	body		SetThemePayload	true	"Colour"
//	@Success		200		{object}	themeResponse
//	@Failure		400		{object}	error	"Bad Request"
//	@Failure		401		{object}	error	"Unauthorized"
//	@Failure		429		{object}	error	"Too Many Requests"
//	@Failure		500		{object}	error	"Internal Server Error"
//	@Security		BasicAuth
//	@Router			/theme [put]
func (app *application) setThemeHandler(w http.ResponseWriter, r *http.Request) {
	var payload SetThemePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err := app.theme.Set(r.Context(), payload.Color)
	switch {
	case errors.Is(err, theme.ErrInvalidColor), errors.Is(err, theme.ErrNotInPalette):
		app.domainErrorResponse(w, r, apperr.NewValidationError("color", err.Error()))
		return
	case err != nil:
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, app.currentTheme())
}

// paletteHandler godoc
//
//	@Summary		Selectable accent colours
//	@Tags			Theme
//	@Produce		json
//	@Success		200	{array}	theme.Swatch
//	@Router			/theme/palette [get]
func (app *application) paletteHandler(w http.ResponseWriter, r *http.Request) {
	app.jsonResponse(w, http.StatusOK, theme.Palette)
}

// themeCSSHandler godoc
//
//	@Summary		Accent style variables
//	@Tags			Theme
//	@Produce		text/css
//	@Success		200	{string}	string
//	@Router			/theme/vars.css [get]
func (app *application) themeCSSHandler(w http.ResponseWriter, r *http.Request) {
	css, etag := app.accentCSS.CSS()
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(css))
}
