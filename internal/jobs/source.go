package jobs

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/videoflix/videoflix-backend/internal/config"
	"github.com/videoflix/videoflix-backend/internal/media"
	"github.com/videoflix/videoflix-backend/internal/models"
	"github.com/videoflix/videoflix-backend/internal/videos"
)

// sourceResolver turns a record's source reference into a local file path,
// fetching the original from the input bucket first when remote originals
// are enabled.
type sourceResolver struct {
	cfg     *config.Config
	store   *media.Store
	awsRepo videos.AWSRepository
}

func newSourceResolver(cfg *config.Config, store *media.Store, awsRepo videos.AWSRepository) *sourceResolver {
	return &sourceResolver{cfg: cfg, store: store, awsRepo: awsRepo}
}

func (r *sourceResolver) Resolve(ctx context.Context, video *models.Video) (string, error) {
	if !video.HasSource() {
		return "", ErrSourceMissing
	}
	localPath := filepath.Join(r.store.Root(), *video.SourceFile)
	if _, err := os.Stat(localPath); err == nil {
		return localPath, nil
	}
	if !r.cfg.S3.Enabled || r.awsRepo == nil {
		return "", ErrSourceMissing
	}
	if err := r.download(ctx, *video.SourceFile, localPath); err != nil {
		return "", errors.Wrapf(err, "failed to fetch source for video %d", video.VideoID)
	}
	return localPath, nil
}

func (r *sourceResolver) download(ctx context.Context, key, localPath string) error {
	if err := r.store.EnsureDir(filepath.Dir(localPath)); err != nil {
		return err
	}
	obj, err := r.awsRepo.GetObject(ctx, r.cfg.S3.InputBucket, key)
	if err != nil {
		return err
	}
	defer obj.Body.Close()
	outFile, err := os.Create(localPath)
	if err != nil {
		return err
	}
	defer outFile.Close()
	if _, err = io.Copy(outFile, obj.Body); err != nil {
		return err
	}
	return nil
}
