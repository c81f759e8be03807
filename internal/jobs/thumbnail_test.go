package jobs

import (
	"context"
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/videoflix/videoflix-backend/internal/media"
	"github.com/videoflix/videoflix-backend/internal/models"
)

func TestThumbnailJobPersistsRelativePath(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	repo := newFakeVideoRepo()
	store := media.NewStore(cfg.Media.RootDir)
	tc := newFakeTranscoder()
	job := NewThumbnailJob(cfg, repo, store, tc, nil, nopLogger{})

	video := seedVideo(t, repo, cfg)
	job.Run(context.Background(), video.VideoID)

	got, err := repo.GetVideoByID(context.Background(), video.VideoID)
	require.NoError(t, err)
	require.NotNil(t, got.ThumbnailFile)
	require.Equal(t, store.ThumbnailRel(video.VideoID), *got.ThumbnailFile)

	_, err = os.Stat(store.ThumbnailPath(video.VideoID))
	require.NoError(t, err)
}

func TestThumbnailJobRerunOverwritesInPlace(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	repo := newFakeVideoRepo()
	store := media.NewStore(cfg.Media.RootDir)
	tc := newFakeTranscoder()
	job := NewThumbnailJob(cfg, repo, store, tc, nil, nopLogger{})

	video := seedVideo(t, repo, cfg)
	job.Run(context.Background(), video.VideoID)
	job.Run(context.Background(), video.VideoID)

	got, err := repo.GetVideoByID(context.Background(), video.VideoID)
	require.NoError(t, err)
	require.Equal(t, store.ThumbnailRel(video.VideoID), *got.ThumbnailFile)

	entries, err := os.ReadDir(store.ThumbnailsDir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestThumbnailJobFailureLeavesRecordUntouched(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	repo := newFakeVideoRepo()
	store := media.NewStore(cfg.Media.RootDir)
	tc := newFakeTranscoder()
	tc.frameErr = errors.New("ffmpeg failed: exit status 1")
	job := NewThumbnailJob(cfg, repo, store, tc, nil, nopLogger{})

	video := seedVideo(t, repo, cfg)
	job.Run(context.Background(), video.VideoID)

	got, err := repo.GetVideoByID(context.Background(), video.VideoID)
	require.NoError(t, err)
	require.Nil(t, got.ThumbnailFile)
	require.Equal(t, models.StateIdle, got.State)
}

func TestThumbnailJobNoSourceIsNoop(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	repo := newFakeVideoRepo()
	store := media.NewStore(cfg.Media.RootDir)
	tc := newFakeTranscoder()
	job := NewThumbnailJob(cfg, repo, store, tc, nil, nopLogger{})

	video, err := repo.CreateVideo(context.Background(), &models.Video{Title: "draft"})
	require.NoError(t, err)

	job.Run(context.Background(), video.VideoID)

	got, err := repo.GetVideoByID(context.Background(), video.VideoID)
	require.NoError(t, err)
	require.Nil(t, got.ThumbnailFile)
}
