package domain

import (
	"errors"
	"mime/multipart"
)

var (
	MessageSuccessUploadImage = "image uploaded successfully"
	MessageFailedUploadImage  = "failed to upload image"

	ErrNoImageProvided = errors.New("no image file provided")
	ErrInvalidFileType = errors.New("file type not allowed")
)

type (
	UploadImageRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	UploadImageResponse struct {
		ImageURL string `json:"image_url"`
	}
)
