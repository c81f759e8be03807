package worker

import (
	"context"
	"sync"
	"time"

	"github.com/videoflix/videoflix-backend/internal/config"
	"github.com/videoflix/videoflix-backend/internal/jobs"
	"github.com/videoflix/videoflix-backend/internal/models"
	"github.com/videoflix/videoflix-backend/internal/videos"
	"github.com/videoflix/videoflix-backend/pkg/logger"
	"github.com/videoflix/videoflix-backend/pkg/utils"
)

const (
	idleInterval = 5 * time.Second
)

// Worker runs the job pool. Multiple workers may pick up the thumbnail and
// transcode job for the same video at the same time; both jobs write only
// their own fields, so that is safe.
type Worker struct {
	cfg          *config.Config
	logger       logger.Logger
	queueRepo    videos.QueueRepository
	thumbnailJob *jobs.ThumbnailJob
	transcodeJob *jobs.TranscodeJob
	wg           sync.WaitGroup
}

func NewWorker(
	cfg *config.Config,
	log logger.Logger,
	queueRepo videos.QueueRepository,
	thumbnailJob *jobs.ThumbnailJob,
	transcodeJob *jobs.TranscodeJob,
) *Worker {
	return &Worker{
		cfg:          cfg,
		logger:       log,
		queueRepo:    queueRepo,
		thumbnailJob: thumbnailJob,
		transcodeJob: transcodeJob,
	}
}

func (w *Worker) Start(ctx context.Context) {
	w.logger.Infof("Starting %d workers", w.cfg.Worker.WorkerCount)
	for i := 0; i < w.cfg.Worker.WorkerCount; i++ {
		w.wg.Add(1)
		go w.worker(ctx, i)
	}
}

func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) worker(ctx context.Context, id int) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			w.logger.Infof("Worker %d stopping", id)
			return
		default:
		}

		if canAcceptJob, usage := utils.CheckCPUUsage(w.cfg.Worker.MaxCPUUsage); !canAcceptJob {
			w.logger.Infof("Worker %d: CPU usage %.2f%% too high, waiting", id, usage)
			select {
			case <-time.After(idleInterval):
			case <-ctx.Done():
				return
			}
			continue
		}

		job, err := w.queueRepo.DequeueJob(ctx, w.cfg.Redis.JobQueueKey)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Errorf("Worker %d: failed to dequeue job: %v", id, err)
			select {
			case <-time.After(idleInterval):
			case <-ctx.Done():
				return
			}
			continue
		}
		w.process(ctx, id, job)
	}
}

func (w *Worker) process(ctx context.Context, id int, job *models.JobDescriptor) {
	w.logger.Infof("Worker %d: processing %s job %s for video %d", id, job.JobType, job.JobID, job.VideoID)
	switch job.JobType {
	case models.JobTypeThumbnail:
		w.thumbnailJob.Run(ctx, job.VideoID)
	case models.JobTypeTranscode:
		w.transcodeJob.Run(ctx, job.VideoID)
	default:
		w.logger.Errorf("Worker %d: unknown job type %q", id, job.JobType)
	}
}
