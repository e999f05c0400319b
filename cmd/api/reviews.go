package main

import (
	"context"
	"net/http"
	"time"

	"folio/internal/domain/reviews"
	"folio/internal/params"
)

// for swagger only
type ReviewPayload struct {
	Name    string  `json:"name"`
	Role    string  `json:"role"`
	Content string  `json:"content"`
	Rating  int     `json:"rating"`
	Avatar  *string `json:"avatar,omitempty"`
}

type reviewView struct {
	reviews.Review
	Initial string `json:"initial"`
}

type submitReviewResponse struct {
	Message string     `json:"message"`
	Review  reviewView `json:"review"`
}

func toReviewViews(rows []reviews.Review) []reviewView {
	out := make([]reviewView, 0, len(rows))
	for _, r := range rows {
		out = append(out, reviewView{Review: r, Initial: r.Initial()})
	}
	return out
}

// listReviewsHandler godoc
//
//	@Summary		List reviews
//	@Description	Newest first, approved or not. Without limit the configured default applies.
//	@Tags			Reviews
//	@Produce		json
//	@Param			limit	query		int				false	"Maximum number of reviews"
//	@Success		200		{array}		reviews.Review	"Reviews"
//	@Failure		400		{object}	error			"Bad Request"
//	@Failure		500		{object}	error			"Internal Server Error"
//	@Failure		503		{object}	error			"Store unreachable"
//	@Router			/reviews [get]
func (app *application) listReviewsHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := params.ParseLimit(r.URL.Query(), app.reviews.Limits().Max)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	rows, err := app.reviews.ListReviews(r.Context(), limit)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, toReviewViews(rows))
}

// listTestimonialsHandler godoc
//
//	@Summary		List testimonials
//	@Description	Approved reviews only, newest first.
//	@Tags			Reviews
//	@Produce		json
//	@Param			limit	query		int				false	"Maximum number of testimonials"
//	@Success		200		{array}		reviews.Review	"Testimonials"
//	@Failure		400		{object}	error			"Bad Request"
//	@Failure		500		{object}	error			"Internal Server Error"
//	@Failure		503		{object}	error			"Store unreachable"
//	@Router			/testimonials [get]
func (app *application) listTestimonialsHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := params.ParseLimit(r.URL.Query(), app.reviews.Limits().Max)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	rows, err := app.reviews.ListTestimonials(r.Context(), limit)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, toReviewViews(rows))
}

// submitReviewHandler godoc
//
//	@Summary		Submit a review
//	@Description	Stores the review unapproved. Rating is clamped into 1..5; a missing rating counts as 5.
//	@Tags			Reviews
//	@Accept			json
//	@Produce		json
//	@Param			review	body		ReviewPayload			true	"Review payload"
//	@Success		201		{object}	submitReviewResponse	"Review submitted"
//	@Failure		400		{object}	error					"Bad Request"
//	@Failure		429		{object}	error					"Too Many Requests"
//	@Failure		500		{object}	error					"Internal Server Error"
//	@Router			/reviews [post]
func (app *application) submitReviewHandler(w http.ResponseWriter, r *http.Request) {
	var payload reviews.Draft
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	review, err := app.reviews.Submit(r.Context(), payload)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	if app.notifier.Enabled() {
		id, name, rating := review.ID.String(), review.Name, review.Rating
		app.background(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := app.notifier.ReviewSubmitted(ctx, id, name, rating); err != nil {
				app.logger.Warnw("owner review notification failed", "review_id", id, "error", err)
			}
		})
	}

	app.jsonResponse(w, http.StatusCreated, submitReviewResponse{
		Message: reviews.SubmittedMessage,
		Review:  reviewView{Review: *review, Initial: review.Initial()},
	})
}
