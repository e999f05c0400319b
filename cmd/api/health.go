package main

import (
	"context"
	"net/http"
	"time"
)

// healthCheckHandler godoc
//
//	@Summary		Health check
//	@Tags			Ops
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Failure		503	{object}	error
//	@Security		BasicAuth
//	@Router			/health [get]
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	data := map[string]string{
		"status":  "ok",
		"env":     app.config.env,
		"version": version,
		"theme":   app.theme.State().String(),
	}

	if app.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := app.db.Ping(ctx); err != nil {
			app.logger.Errorw("health check: database unreachable", "error", err)
			data["status"] = "degraded"
			data["database"] = "unreachable"
			app.jsonResponse(w, http.StatusServiceUnavailable, data)
			return
		}
		data["database"] = "ok"
	}

	app.jsonResponse(w, http.StatusOK, data)
}
