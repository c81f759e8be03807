package videos

import (
	"context"

	"github.com/videoflix/videoflix-backend/internal/models"
	"github.com/videoflix/videoflix-backend/pkg/utils"
)

type Repository interface {
	CreateVideo(ctx context.Context, video *models.Video) (*models.Video, error)
	GetVideoByID(ctx context.Context, videoID int64) (*models.Video, error)
	GetVideos(ctx context.Context, pq *utils.Pagination) (*models.VideoList, error)
	UpdateFields(ctx context.Context, videoID int64, update *models.VideoUpdate) error
	DeleteVideo(ctx context.Context, videoID int64) error
}
