package main

import (
	"errors"
	"fmt"
	"net/http"

	"folio/internal/domain/contact"
	"folio/internal/params"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type contactInbox struct {
	Messages   []contact.Message `json:"messages"`
	Pagination params.Pagination `json:"pagination"`
}

// adminListContactHandler godoc
//
//	@Summary		List contact messages
//	@Tags			Admin
//	@Produce		json
//	@Param			unread	query		bool	false	"Only unread messages"
//	@Param			limit	query		int		false	"Page size"
//	@Param			page	query		int		false	"Page number"
//	@Success		200		{object}	contactInbox
//	@Failure		401		{object}	error	"Unauthorized"
//	@Failure		500		{object}	error	"Internal Server Error"
//	@Security		BasicAuth
//	@Router			/admin/contact [get]
func (app *application) adminListContactHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := params.ParsePagination(q, 20, app.reviews.Limits().Max)

	msgs, total, err := app.contact.List(r.Context(), contact.ListOptions{
		UnreadOnly: params.ParseBool(q, "unread"),
		Limit:      p.Limit,
		Offset:     p.Offset,
	})
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	p.ComputeMeta(total)

	app.jsonResponse(w, http.StatusOK, contactInbox{Messages: msgs, Pagination: p})
}

// adminMarkContactReadHandler godoc
//
//	@Summary		Mark a contact message read
//	@Tags			Admin
//	@Produce		json
//	@Param			messageID	path		string	true	"Message ID"
//	@Success		200			{object}	string	"marked as read"
//	@Failure		400			{object}	error	"Bad Request"
//	@Failure		404			{object}	error	"Not Found"
//	@Security		BasicAuth
//	@Router			/admin/contact/{messageID}/read [patch]
func (app *application) adminMarkContactReadHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "messageID"))
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid message id"))
		return
	}

	err = app.contact.MarkRead(r.Context(), id)
	switch {
	case errors.Is(err, contact.ErrNotFound):
		app.notFoundResponse(w, r, err)
		return
	case err != nil:
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]string{"message": "marked as read"})
}
