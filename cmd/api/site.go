package main

import (
	"net/http"

	"folio/internal/theme"
)

type siteConfigResponse struct {
	AnalyticsMeasurementID string         `json:"analytics_measurement_id,omitempty"`
	AccentDefault          string         `json:"accent_default"`
	Palette                []theme.Swatch `json:"palette"`
	StrictPalette          bool           `json:"strict_palette"`
	AvatarUploads          bool           `json:"avatar_uploads"`
}

// siteConfigHandler godoc
//
//	@Summary		Public site settings
//	@Description	Values the front end reads at start-up instead of compiling them in.
//	@Tags			Site
//	@Produce		json
//	@Success		200	{object}	siteConfigResponse
//	@Router			/site [get]
func (app *application) siteConfigHandler(w http.ResponseWriter, r *http.Request) {
	app.jsonResponse(w, http.StatusOK, siteConfigResponse{
		AnalyticsMeasurementID: app.config.site.measurementID,
		AccentDefault:          theme.DefaultColor,
		Palette:                theme.Palette,
		StrictPalette:          app.theme.Strict(),
		AvatarUploads:          app.avatars != nil,
	})
}
