package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/videoflix/videoflix-backend/internal/jobs"
	"github.com/videoflix/videoflix-backend/internal/media"
	"github.com/videoflix/videoflix-backend/internal/middleware"
	"github.com/videoflix/videoflix-backend/internal/videos"
	videoHttp "github.com/videoflix/videoflix-backend/internal/videos/delivery/http"
	videoRepository "github.com/videoflix/videoflix-backend/internal/videos/repository"
	videoUsecase "github.com/videoflix/videoflix-backend/internal/videos/usecase"
	"github.com/videoflix/videoflix-backend/pkg/utils"
)

func (s *Server) MapHandlers(e *echo.Echo) error {
	vRepo := videoRepository.NewVideoRepo(s.db)
	vRedisRepo := videoRepository.NewVideoRedisRepo(s.redisClient)

	var vAWSRepo videos.AWSRepository
	if s.cfg.S3.Enabled && s.s3Client != nil {
		vAWSRepo = videoRepository.NewAwsRepository(s.s3Client, s.preSignClient)
	}

	store := media.NewStore(s.cfg.Media.RootDir)
	cleanupJob := jobs.NewCleanupJob(s.cfg, store, vAWSRepo, s.logger)
	dispatcher := jobs.NewDispatcher(s.cfg, vRedisRepo, cleanupJob, s.logger)

	videoUC := videoUsecase.NewVideoUseCase(s.cfg, vRepo, vAWSRepo, dispatcher, store, s.logger)
	videoHandlers := videoHttp.NewVideoHandler(videoUC)

	mw := middleware.NewMiddlewareManager(s.cfg, []string{"*"}, s.logger)

	v1 := e.Group("/api/v1")
	health := v1.Group("/health")
	videoGroup := v1.Group("/video")

	videoHttp.MapVideoRoutes(videoGroup, videoHandlers, mw)
	health.GET("", func(c echo.Context) error {
		s.logger.Infof("Health check RequestID: %s", utils.GetRequestID(c))
		return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
	})
	return nil
}
