package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/videoflix/videoflix-backend/internal/config"
	"github.com/videoflix/videoflix-backend/internal/models"
	"github.com/videoflix/videoflix-backend/internal/videos"
	"github.com/videoflix/videoflix-backend/pkg/logger"
)

// Dispatcher reacts to record lifecycle events. Created and SourceAttached
// enqueue a thumbnail/transcode pair; Deleted runs cleanup synchronously
// before the row disappears.
type Dispatcher struct {
	cfg       *config.Config
	queueRepo videos.QueueRepository
	cleanup   *CleanupJob
	logger    logger.Logger
}

func NewDispatcher(cfg *config.Config, queueRepo videos.QueueRepository, cleanup *CleanupJob, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		cfg:       cfg,
		queueRepo: queueRepo,
		cleanup:   cleanup,
		logger:    log,
	}
}

func (d *Dispatcher) OnEvent(ctx context.Context, event *models.VideoEvent) {
	video := event.Video
	switch event.Type {
	case models.EventCreated:
		if !video.HasSource() {
			return
		}
		d.enqueuePair(ctx, video.VideoID)
	case models.EventSourceAttached:
		if !video.HasSource() {
			return
		}
		// Two attach events racing before the state commits can still both
		// enqueue; there is no atomic claim, only this check.
		if video.State == models.StateProcessing || video.State == models.StateComplete {
			return
		}
		d.enqueuePair(ctx, video.VideoID)
	case models.EventDeleted:
		d.cleanup.Run(ctx, video)
	}
}

// enqueuePair pushes both job descriptors. Order of consumption between the
// two is not guaranteed; both jobs tolerate running concurrently.
func (d *Dispatcher) enqueuePair(ctx context.Context, videoID int64) {
	for _, jobType := range []models.JobType{models.JobTypeThumbnail, models.JobTypeTranscode} {
		job := &models.JobDescriptor{
			JobID:      uuid.New().String(),
			JobType:    jobType,
			VideoID:    videoID,
			EnqueuedAt: time.Now(),
		}
		if err := d.queueRepo.EnqueueJob(ctx, d.cfg.Redis.JobQueueKey, job); err != nil {
			d.logger.Errorf("Dispatcher - failed to enqueue %s for video %d: %v", jobType, videoID, err)
			continue
		}
		d.logger.Infof("Dispatcher - enqueued %s for video %d", jobType, videoID)
	}
}
