package videos

import "errors"

var (
	ErrNotFound      = errors.New("video not found")
	ErrFileNotFound  = errors.New("media file not found")
	ErrSourcePresent = errors.New("source already attached")
)
