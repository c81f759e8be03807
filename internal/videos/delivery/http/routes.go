package http

import (
	"github.com/labstack/echo/v4"
	"github.com/videoflix/videoflix-backend/internal/middleware"
	"github.com/videoflix/videoflix-backend/internal/videos"
)

func MapVideoRoutes(videoGroup *echo.Group, h videos.Handler, mw *middleware.MiddlewareManager) {
	videoGroup.Use(mw.AuthJWTMiddleware())
	videoGroup.POST("/get-upload-url", h.GetPresignUpload())
	videoGroup.POST("", h.CreateVideo())
	videoGroup.GET("", h.ListVideos())
	videoGroup.GET("/:video_id", h.GetVideoByID())
	videoGroup.PUT("/:video_id/source", h.AttachSource())
	videoGroup.DELETE("/:video_id", h.DeleteVideo())
	videoGroup.GET("/:video_id/:resolution/index.m3u8", h.GetManifest())
	videoGroup.GET("/:video_id/:resolution/:segment", h.GetSegment())
}
