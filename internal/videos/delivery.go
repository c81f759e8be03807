package videos

import "github.com/labstack/echo/v4"

type Handler interface {
	GetPresignUpload() echo.HandlerFunc
	CreateVideo() echo.HandlerFunc
	AttachSource() echo.HandlerFunc
	ListVideos() echo.HandlerFunc
	GetVideoByID() echo.HandlerFunc
	DeleteVideo() echo.HandlerFunc
	GetManifest() echo.HandlerFunc
	GetSegment() echo.HandlerFunc
}
