package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const maxAvatarBytes = 2 << 20

var allowedAvatarTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

type avatarResponse struct {
	URL string `json:"url"`
}

// uploadAvatarHandler godoc
//
//	@Summary		Upload a review avatar
//	@Description	Multipart field "avatar", at most 2MB, JPEG/PNG/WebP/GIF. The returned url goes into the review's avatar field.
//	@Tags			Reviews
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			avatar	formData	file	true	"Avatar image"
//	@Success		201		{object}	avatarResponse
//	@Failure		400		{object}	error	"Bad Request"
//	@Failure		500		{object}	error	"Internal Server Error"
//	@Router			/reviews/avatar [post]
func (app *application) uploadAvatarHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes+64<<10)
	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("parse form: %w", err))
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		app.badRequestResponse(w, r, errors.New("avatar file is required"))
		return
	}
	defer file.Close()

	if header.Size > maxAvatarBytes {
		app.badRequestResponse(w, r, errors.New("avatar must be at most 2MB"))
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarBytes+1))
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("read avatar: %w", err))
		return
	}
	if len(data) > maxAvatarBytes {
		app.badRequestResponse(w, r, errors.New("avatar must be at most 2MB"))
		return
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedAvatarTypes...) {
		app.badRequestResponse(w, r, fmt.Errorf("unsupported avatar type %s", mtype.String()))
		return
	}

	url, err := app.avatars.UploadAvatar(r.Context(), bytes.NewReader(data), "avatar_"+uuid.NewString())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, avatarResponse{URL: url})
}
