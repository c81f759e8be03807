package jobs

import (
	"context"
	"time"

	"github.com/videoflix/videoflix-backend/internal/config"
	"github.com/videoflix/videoflix-backend/internal/media"
	"github.com/videoflix/videoflix-backend/internal/models"
	"github.com/videoflix/videoflix-backend/internal/transcoder"
	"github.com/videoflix/videoflix-backend/internal/videos"
	"github.com/videoflix/videoflix-backend/pkg/logger"
)

// TranscodeJob drives the encode ladder for one video. Failure of one
// resolution never aborts the others; after the full ladder is attempted the
// record goes to complete even when every rung failed. Only per-resolution
// flags distinguish the outcomes.
type TranscodeJob struct {
	cfg        *config.Config
	videoRepo  videos.Repository
	store      *media.Store
	transcoder transcoder.Transcoder
	resolver   *sourceResolver
	logger     logger.Logger
}

func NewTranscodeJob(
	cfg *config.Config,
	videoRepo videos.Repository,
	store *media.Store,
	tc transcoder.Transcoder,
	awsRepo videos.AWSRepository,
	log logger.Logger,
) *TranscodeJob {
	return &TranscodeJob{
		cfg:        cfg,
		videoRepo:  videoRepo,
		store:      store,
		transcoder: tc,
		resolver:   newSourceResolver(cfg, store, awsRepo),
		logger:     log,
	}
}

func (j *TranscodeJob) Run(ctx context.Context, videoID int64) {
	video, err := j.videoRepo.GetVideoByID(ctx, videoID)
	if err != nil {
		j.logger.Errorf("TranscodeJob - video %d not found: %v", videoID, err)
		return
	}
	if !video.HasSource() {
		j.logger.Errorf("TranscodeJob - no source file for video %d", videoID)
		return
	}

	processing := &models.VideoUpdate{}
	if err = j.videoRepo.UpdateFields(ctx, videoID, processing.SetState(models.StateProcessing)); err != nil {
		j.logger.Errorf("TranscodeJob - failed to mark video %d processing: %v", videoID, err)
		return
	}

	inputPath, err := j.resolver.Resolve(ctx, video)
	if err != nil {
		j.logger.Errorf("TranscodeJob - failed to resolve source for video %d: %v", videoID, err)
		j.resetToIdle(ctx, videoID)
		return
	}

	succeeded := 0
	for _, r := range j.cfg.Transcode.Renditions {
		outputDir := j.store.RenditionDir(videoID, r.Label)
		if err := j.store.EnsureDir(outputDir); err != nil {
			j.logger.Errorf("TranscodeJob - %s for video %d: %v", r.Label, videoID, err)
			continue
		}
		if err := j.encode(ctx, inputPath, outputDir, r); err != nil {
			j.logger.Errorf("TranscodeJob - %s encode failed for video %d: %v", r.Label, videoID, err)
			continue
		}
		flag := &models.VideoUpdate{}
		if err := j.videoRepo.UpdateFields(ctx, videoID, flag.SetResolution(r.Label)); err != nil {
			j.logger.Errorf("TranscodeJob - failed to persist %s flag for video %d: %v", r.Label, videoID, err)
			continue
		}
		succeeded++
		j.logger.Infof("TranscodeJob - %s ready for video %d", r.Label, videoID)
	}

	hlsPath := j.store.HLSRootRel(videoID)
	done := &models.VideoUpdate{HLSPath: &hlsPath}
	if err = j.videoRepo.UpdateFields(ctx, videoID, done.SetState(models.StateComplete)); err != nil {
		j.logger.Errorf("TranscodeJob - failed to complete video %d: %v", videoID, err)
		j.resetToIdle(ctx, videoID)
		return
	}

	if succeeded == 0 {
		j.logger.Errorf("TranscodeJob - all renditions failed for video %d", videoID)
		return
	}
	j.logger.Infof("TranscodeJob - video %d done, %d/%d renditions",
		videoID, succeeded, len(j.cfg.Transcode.Renditions))
}

// encode retries a single rung up to maxAttempts. The default of one attempt
// keeps the original no-retry behavior.
func (j *TranscodeJob) encode(ctx context.Context, inputPath, outputDir string, r config.Rendition) error {
	var err error
	for attempt := 1; attempt <= j.cfg.Transcode.MaxAttempts; attempt++ {
		if err = j.transcoder.TranscodeToHLS(ctx, inputPath, outputDir, r); err == nil {
			return nil
		}
		if attempt < j.cfg.Transcode.MaxAttempts {
			j.logger.Warnf("TranscodeJob - %s attempt %d failed, retrying: %v", r.Label, attempt, err)
			select {
			case <-time.After(j.cfg.Transcode.RetryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return err
}

func (j *TranscodeJob) resetToIdle(ctx context.Context, videoID int64) {
	idle := &models.VideoUpdate{}
	if err := j.videoRepo.UpdateFields(ctx, videoID, idle.SetState(models.StateIdle)); err != nil {
		j.logger.Errorf("TranscodeJob - failed to reset video %d to idle: %v", videoID, err)
	}
}
