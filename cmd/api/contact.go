package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"folio/internal/apperr"
	"folio/internal/domain/contact"
)

type contactResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// contactHandler godoc
//
//	@Summary		Send a contact message
//	@Description	Stores the message and mails it to the site owner in the background.
//	@Tags			Contact
//	@Accept			json
//	@Produce		json
//	@Param			message	body		contact.Input	true	"Contact form"
//	@Success		200		{object}	contactResponse
//	@Failure		400		{object}	contactResponse
//	@Failure		429		{object}	error
//	@Failure		500		{object}	contactResponse
//	@Router			/contact [post]
func (app *application) contactHandler(w http.ResponseWriter, r *http.Request) {
	var in contact.Input
	if err := readJSON(w, r, &in); err != nil {
		app.logger.Warnw("bad contact payload", "error", err)
		writeJSON(w, http.StatusBadRequest, contactResponse{Message: contact.FailedMessage})
		return
	}

	msg, err := app.contact.Submit(r.Context(), in)
	if err != nil {
		var ve *apperr.ValidationError
		if errors.As(err, &ve) {
			writeJSON(w, http.StatusBadRequest, contactResponse{
				Message: apperr.UserMessage(err, contact.FailedMessage),
				Fields:  ve.Fields,
			})
			return
		}
		app.logger.Errorw("contact message not stored", "error", err)
		writeJSON(w, http.StatusInternalServerError, contactResponse{Message: contact.FailedMessage})
		return
	}

	stored := *msg
	app.background(func() {
		app.contact.Deliver(&stored)

		if app.notifier.Enabled() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := app.notifier.ContactReceived(ctx, stored.ID.String(), stored.Name, stored.Message); err != nil {
				app.logger.Warnw("owner contact notification failed", "id", stored.ID, "error", err)
			}
		}
	})

	writeJSON(w, http.StatusOK, contactResponse{Success: true, Message: contact.SentMessage})
}
