package main

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const avatarFolder = "folio/avatars"

type avatarUploader interface {
	UploadAvatar(ctx context.Context, file io.Reader, publicID string) (string, error)
}

type cloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func newCloudinaryUploader(cloudinaryURL string) (*cloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return &cloudinaryUploader{cld: cld}, nil
}

// UploadAvatar stores file under a caller chosen public ID and returns its https URL.
func (u *cloudinaryUploader) UploadAvatar(ctx context.Context, file io.Reader, publicID string) (string, error) {
	resp, err := u.cld.Upload.Upload(
		ctx,
		file,
		uploader.UploadParams{
			Folder:    avatarFolder,
			PublicID:  publicID,
			Overwrite: api.Bool(false),
		},
	)
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}
