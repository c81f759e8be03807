package models

type UploadInput struct {
	Name       string `json:"name" validate:"required"`
	MimeType   string `json:"mime_type" validate:"required"`
	Size       int64  `json:"size" validate:"required"`
	Key        string `json:"key"`
	BucketName string `json:"bucket_name"`
}
