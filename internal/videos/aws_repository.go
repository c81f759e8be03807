package videos

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/videoflix/videoflix-backend/internal/models"
)

type AWSRepository interface {
	GetPresignedURL(ctx context.Context, input *models.UploadInput) (string, error)
	GetObject(ctx context.Context, bucket, filename string) (*s3.GetObjectOutput, error)
	RemoveObject(ctx context.Context, bucket, filename string) error
}
