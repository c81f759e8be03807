package videos

import (
	"context"

	"github.com/videoflix/videoflix-backend/internal/models"
	"github.com/videoflix/videoflix-backend/pkg/utils"
)

type UseCase interface {
	CreateVideo(ctx context.Context, input *models.VideoCreateInput) (*models.Video, error)
	AttachSource(ctx context.Context, videoID int64, input *models.AttachSourceInput) (*models.Video, error)
	GetVideo(ctx context.Context, videoID int64) (*models.Video, error)
	ListVideos(ctx context.Context, pagination *utils.Pagination) (*models.VideoList, error)
	DeleteVideo(ctx context.Context, videoID int64) error

	GetPresignUpload(ctx context.Context, input *models.UploadInput) (string, error)

	GetManifest(ctx context.Context, videoID int64, resolution string) ([]byte, error)
	GetSegment(ctx context.Context, videoID int64, resolution, segment string) ([]byte, error)
}
