package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/videoflix/videoflix-backend/internal/config"
	"github.com/videoflix/videoflix-backend/internal/media"
	"github.com/videoflix/videoflix-backend/internal/models"
	"github.com/videoflix/videoflix-backend/internal/videos"
	"github.com/videoflix/videoflix-backend/pkg/logger"
	"github.com/videoflix/videoflix-backend/pkg/utils"
)

var segmentNamePattern = regexp.MustCompile(`^segment_\d{3}\.ts$`)

type videoUC struct {
	cfg        *config.Config
	videoRepo  videos.Repository
	awsRepo    videos.AWSRepository
	dispatcher videos.Dispatcher
	store      *media.Store
	logger     logger.Logger
}

func NewVideoUseCase(
	cfg *config.Config,
	videoRepo videos.Repository,
	awsRepo videos.AWSRepository,
	dispatcher videos.Dispatcher,
	store *media.Store,
	log logger.Logger,
) videos.UseCase {
	return &videoUC{
		cfg:        cfg,
		videoRepo:  videoRepo,
		awsRepo:    awsRepo,
		dispatcher: dispatcher,
		store:      store,
		logger:     log,
	}
}

func (v *videoUC) CreateVideo(ctx context.Context, input *models.VideoCreateInput) (*models.Video, error) {
	if err := utils.ValidateStruct(ctx, input); err != nil {
		v.logger.Errorf("CreateVideo - ValidateStruct error: %v", err)
		return nil, fmt.Errorf("invalid input: %v", err)
	}
	video := &models.Video{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		State:       models.StateIdle,
	}
	if input.SourceFile != "" {
		video.SourceFile = &input.SourceFile
	}
	video, err := v.videoRepo.CreateVideo(ctx, video)
	if err != nil {
		v.logger.Errorf("CreateVideo - CreateVideo error: %v", err)
		return nil, err
	}
	v.dispatcher.OnEvent(ctx, &models.VideoEvent{Type: models.EventCreated, Video: video})
	return video, nil
}

func (v *videoUC) AttachSource(ctx context.Context, videoID int64, input *models.AttachSourceInput) (*models.Video, error) {
	if err := utils.ValidateStruct(ctx, input); err != nil {
		v.logger.Errorf("AttachSource - ValidateStruct error: %v", err)
		return nil, fmt.Errorf("invalid input: %v", err)
	}
	video, err := v.getVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video.HasSource() {
		return nil, videos.ErrSourcePresent
	}
	update := &models.VideoUpdate{SourceFile: &input.SourceFile}
	if err = v.videoRepo.UpdateFields(ctx, videoID, update); err != nil {
		v.logger.Errorf("AttachSource - UpdateFields error: %v", err)
		return nil, fmt.Errorf("failed to attach source: %v", err)
	}
	video, err = v.getVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	v.dispatcher.OnEvent(ctx, &models.VideoEvent{Type: models.EventSourceAttached, Video: video})
	return video, nil
}

func (v *videoUC) GetVideo(ctx context.Context, videoID int64) (*models.Video, error) {
	return v.getVideo(ctx, videoID)
}

func (v *videoUC) ListVideos(ctx context.Context, pagination *utils.Pagination) (*models.VideoList, error) {
	if pagination == nil {
		pagination = &utils.Pagination{
			Page: 1,
			Size: 10,
		}
	}
	if pagination.Page < 1 {
		pagination.Page = 1
	}
	if pagination.Size < 1 || pagination.Size > 100 {
		pagination.Size = 10
	}
	list, err := v.videoRepo.GetVideos(ctx, pagination)
	if err != nil {
		v.logger.Errorf("ListVideos - failed to fetch videos: %v", err)
		return nil, fmt.Errorf("failed to fetch videos: %v", err)
	}
	return list, nil
}

// DeleteVideo removes derived artifacts synchronously (through the Deleted
// event) before the record row goes away.
func (v *videoUC) DeleteVideo(ctx context.Context, videoID int64) error {
	video, err := v.getVideo(ctx, videoID)
	if err != nil {
		return err
	}
	v.dispatcher.OnEvent(ctx, &models.VideoEvent{Type: models.EventDeleted, Video: video})
	if err = v.videoRepo.DeleteVideo(ctx, videoID); err != nil {
		v.logger.Errorf("DeleteVideo - failed to delete video: %v", err)
		return fmt.Errorf("failed to delete video: %v", err)
	}
	return nil
}

func (v *videoUC) GetPresignUpload(ctx context.Context, input *models.UploadInput) (string, error) {
	if input == nil {
		return "", fmt.Errorf("invalid input: input is nil")
	}
	if !v.cfg.S3.Enabled {
		return "", fmt.Errorf("remote uploads are not enabled")
	}
	if err := utils.ValidateStruct(ctx, input); err != nil {
		v.logger.Errorf("GetPresignUpload - ValidateStruct error: %v", err)
		return "", err
	}

	input.BucketName = v.cfg.S3.InputBucket
	// The object key doubles as the record's source reference, so workers can
	// fetch it to the same relative path under the media root.
	input.Key = filepath.Join("videos", "originals", filepath.Base(input.Name))

	v.logger.Infof("Generating presigned URL for key: %s", input.Key)
	url, err := v.awsRepo.GetPresignedURL(ctx, input)
	if err != nil {
		v.logger.Errorf("GetPresignUpload - GetPresignedURL error: %v", err)
		return "", fmt.Errorf("failed to generate presigned URL: %v", err)
	}
	return url, nil
}

func (v *videoUC) GetManifest(ctx context.Context, videoID int64, resolution string) ([]byte, error) {
	video, err := v.getVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !v.validResolution(resolution) {
		return nil, videos.ErrFileNotFound
	}

	var manifestPath string
	if video.HLSPath != nil && *video.HLSPath != "" {
		manifestPath = filepath.Join(v.store.Root(), *video.HLSPath, resolution, media.ManifestFileName)
	} else {
		manifestPath = v.store.ManifestPath(videoID, resolution)
	}
	return v.readArtifact(manifestPath)
}

func (v *videoUC) GetSegment(ctx context.Context, videoID int64, resolution, segment string) ([]byte, error) {
	video, err := v.getVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !v.validResolution(resolution) || !segmentNamePattern.MatchString(segment) {
		return nil, videos.ErrFileNotFound
	}

	var segmentPath string
	if video.HLSPath != nil && *video.HLSPath != "" {
		segmentPath = filepath.Join(v.store.Root(), *video.HLSPath, resolution, segment)
	} else {
		segmentPath = v.store.SegmentPath(videoID, resolution, segment)
	}
	return v.readArtifact(segmentPath)
}

func (v *videoUC) getVideo(ctx context.Context, videoID int64) (*models.Video, error) {
	video, err := v.videoRepo.GetVideoByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			v.logger.Warnf("Video not found with ID: %d", videoID)
			return nil, videos.ErrNotFound
		}
		v.logger.Errorf("GetVideo - failed to fetch video: %v", err)
		return nil, fmt.Errorf("failed to fetch video: %v", err)
	}
	return video, nil
}

func (v *videoUC) validResolution(resolution string) bool {
	for _, r := range v.cfg.Transcode.Renditions {
		if r.Label == resolution {
			return true
		}
	}
	return false
}

func (v *videoUC) readArtifact(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, videos.ErrFileNotFound
		}
		v.logger.Errorf("readArtifact - failed to read %s: %v", path, err)
		return nil, fmt.Errorf("failed to read media file: %v", err)
	}
	return data, nil
}
