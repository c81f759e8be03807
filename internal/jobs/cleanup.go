package jobs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/videoflix/videoflix-backend/internal/config"
	"github.com/videoflix/videoflix-backend/internal/media"
	"github.com/videoflix/videoflix-backend/internal/models"
	"github.com/videoflix/videoflix-backend/internal/videos"
	"github.com/videoflix/videoflix-backend/pkg/logger"
)

// CleanupJob removes every artifact the asset store ever produced for a
// record. Each deletion is independent and best-effort; one failure never
// blocks the rest.
type CleanupJob struct {
	cfg     *config.Config
	store   *media.Store
	awsRepo videos.AWSRepository
	logger  logger.Logger
}

func NewCleanupJob(cfg *config.Config, store *media.Store, awsRepo videos.AWSRepository, log logger.Logger) *CleanupJob {
	return &CleanupJob{
		cfg:     cfg,
		store:   store,
		awsRepo: awsRepo,
		logger:  log,
	}
}

func (j *CleanupJob) Run(ctx context.Context, video *models.Video) {
	if video.HasSource() {
		j.removeFile(*video.SourceFile)
		if j.cfg.S3.Enabled && j.awsRepo != nil {
			if err := j.awsRepo.RemoveObject(ctx, j.cfg.S3.InputBucket, *video.SourceFile); err != nil {
				j.logger.Errorf("CleanupJob - failed to remove remote source for video %d: %v", video.VideoID, err)
			}
		}
	}
	if video.ThumbnailFile != nil && *video.ThumbnailFile != "" {
		j.removeFile(*video.ThumbnailFile)
	}
	if video.PreviewFile != nil && *video.PreviewFile != "" {
		j.removeFile(*video.PreviewFile)
	}

	hlsRoot := j.store.HLSRoot(video.VideoID)
	if err := os.RemoveAll(hlsRoot); err != nil {
		j.logger.Errorf("CleanupJob - failed to remove renditions for video %d: %v", video.VideoID, err)
	}
	j.logger.Infof("CleanupJob - artifacts removed for video %d", video.VideoID)
}

func (j *CleanupJob) removeFile(rel string) {
	path := filepath.Join(j.store.Root(), rel)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		j.logger.Errorf("CleanupJob - failed to remove %s: %v", path, err)
	}
}
