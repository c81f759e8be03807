package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/videoflix/videoflix-backend/internal/media"
	"github.com/videoflix/videoflix-backend/internal/models"
	"github.com/videoflix/videoflix-backend/internal/videos"
	"github.com/videoflix/videoflix-backend/pkg/utils"
)

type videoHandler struct {
	videoUC videos.UseCase
}

func NewVideoHandler(videoUC videos.UseCase) videos.Handler {
	return &videoHandler{
		videoUC: videoUC,
	}
}

func (h *videoHandler) GetPresignUpload() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.UploadInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}
		presignUrl, err := h.videoUC.GetPresignUpload(c.Request().Context(), input)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"presignUrl": presignUrl})
	}
}

func (h *videoHandler) CreateVideo() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.VideoCreateInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}
		video, err := h.videoUC.CreateVideo(c.Request().Context(), input)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, video)
	}
}

func (h *videoHandler) AttachSource() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := parseVideoID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid video id"})
		}
		input := &models.AttachSourceInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}
		video, err := h.videoUC.AttachSource(c.Request().Context(), videoID, input)
		if err != nil {
			if errors.Is(err, videos.ErrNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "Video not found"})
			}
			if errors.Is(err, videos.ErrSourcePresent) {
				return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
			}
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, video)
	}
}

func (h *videoHandler) ListVideos() echo.HandlerFunc {
	return func(c echo.Context) error {
		pagination, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		list, err := h.videoUC.ListVideos(c.Request().Context(), pagination)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		return c.JSON(http.StatusOK, list)
	}
}

func (h *videoHandler) GetVideoByID() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := parseVideoID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid video id"})
		}
		video, err := h.videoUC.GetVideo(c.Request().Context(), videoID)
		if err != nil {
			if errors.Is(err, videos.ErrNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "Video not found"})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		return c.JSON(http.StatusOK, video)
	}
}

func (h *videoHandler) DeleteVideo() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := parseVideoID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid video id"})
		}
		if err = h.videoUC.DeleteVideo(c.Request().Context(), videoID); err != nil {
			if errors.Is(err, videos.ErrNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "Video not found"})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Video deleted successfully"})
	}
}

func (h *videoHandler) GetManifest() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := parseVideoID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid video id"})
		}
		manifest, err := h.videoUC.GetManifest(c.Request().Context(), videoID, c.Param("resolution"))
		if err != nil {
			return mapMediaError(c, err)
		}
		return c.Blob(http.StatusOK, media.ManifestContentType, manifest)
	}
}

func (h *videoHandler) GetSegment() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := parseVideoID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid video id"})
		}
		segment, err := h.videoUC.GetSegment(c.Request().Context(), videoID, c.Param("resolution"), c.Param("segment"))
		if err != nil {
			return mapMediaError(c, err)
		}
		return c.Blob(http.StatusOK, media.SegmentContentType, segment)
	}
}

func parseVideoID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("video_id"), 10, 64)
}

func mapMediaError(c echo.Context, err error) error {
	if errors.Is(err, videos.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Video not found"})
	}
	if errors.Is(err, videos.ErrFileNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Media file not found"})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
}
