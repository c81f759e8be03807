package jobs

import (
	"context"

	"github.com/videoflix/videoflix-backend/internal/config"
	"github.com/videoflix/videoflix-backend/internal/media"
	"github.com/videoflix/videoflix-backend/internal/models"
	"github.com/videoflix/videoflix-backend/internal/transcoder"
	"github.com/videoflix/videoflix-backend/internal/videos"
	"github.com/videoflix/videoflix-backend/pkg/logger"
)

// ThumbnailJob extracts one still frame from the source. On any failure it
// logs and returns without touching the record.
type ThumbnailJob struct {
	cfg        *config.Config
	videoRepo  videos.Repository
	store      *media.Store
	transcoder transcoder.Transcoder
	resolver   *sourceResolver
	logger     logger.Logger
}

func NewThumbnailJob(
	cfg *config.Config,
	videoRepo videos.Repository,
	store *media.Store,
	tc transcoder.Transcoder,
	awsRepo videos.AWSRepository,
	log logger.Logger,
) *ThumbnailJob {
	return &ThumbnailJob{
		cfg:        cfg,
		videoRepo:  videoRepo,
		store:      store,
		transcoder: tc,
		resolver:   newSourceResolver(cfg, store, awsRepo),
		logger:     log,
	}
}

func (j *ThumbnailJob) Run(ctx context.Context, videoID int64) {
	video, err := j.videoRepo.GetVideoByID(ctx, videoID)
	if err != nil {
		j.logger.Errorf("ThumbnailJob - video %d not found: %v", videoID, err)
		return
	}
	if !video.HasSource() {
		return
	}

	inputPath, err := j.resolver.Resolve(ctx, video)
	if err != nil {
		j.logger.Errorf("ThumbnailJob - failed to resolve source for video %d: %v", videoID, err)
		return
	}

	if err = j.store.EnsureDir(j.store.ThumbnailsDir()); err != nil {
		j.logger.Errorf("ThumbnailJob - %v", err)
		return
	}
	thumbnailPath := j.store.ThumbnailPath(videoID)
	if err = j.transcoder.ExtractFrame(ctx, inputPath, thumbnailPath); err != nil {
		j.logger.Errorf("ThumbnailJob - extraction failed for video %d: %v", videoID, err)
		return
	}

	thumbnailRel := j.store.ThumbnailRel(videoID)
	update := &models.VideoUpdate{ThumbnailFile: &thumbnailRel}
	if err = j.videoRepo.UpdateFields(ctx, videoID, update); err != nil {
		j.logger.Errorf("ThumbnailJob - failed to persist thumbnail for video %d: %v", videoID, err)
		return
	}
	j.logger.Infof("ThumbnailJob - thumbnail generated for video %d", videoID)
}
