package usecase

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"
	"github.com/videoflix/videoflix-backend/internal/config"
	"github.com/videoflix/videoflix-backend/internal/media"
	"github.com/videoflix/videoflix-backend/internal/models"
	"github.com/videoflix/videoflix-backend/internal/videos"
	"github.com/videoflix/videoflix-backend/pkg/utils"
)

type nopLogger struct{}

func (nopLogger) InitLogger()                          {}
func (nopLogger) Debug(args ...interface{})            {}
func (nopLogger) Debugf(t string, args ...interface{}) {}
func (nopLogger) Info(args ...interface{})             {}
func (nopLogger) Infof(t string, args ...interface{})  {}
func (nopLogger) Warn(args ...interface{})             {}
func (nopLogger) Warnf(t string, args ...interface{})  {}
func (nopLogger) Error(args ...interface{})            {}
func (nopLogger) Errorf(t string, args ...interface{}) {}
func (nopLogger) Fatal(args ...interface{})            {}
func (nopLogger) Fatalf(t string, args ...interface{}) {}

type memRepo struct {
	mu     sync.Mutex
	nextID int64
	videos map[int64]*models.Video
}

func newMemRepo() *memRepo {
	return &memRepo{nextID: 1, videos: make(map[int64]*models.Video)}
}

func (r *memRepo) CreateVideo(ctx context.Context, video *models.Video) (*models.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := *video
	v.VideoID = r.nextID
	r.nextID++
	r.videos[v.VideoID] = &v
	copied := v
	return &copied, nil
}

func (r *memRepo) GetVideoByID(ctx context.Context, videoID int64) (*models.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.videos[videoID]
	if !ok {
		return nil, fmt.Errorf("failed to get video by id: %w", sql.ErrNoRows)
	}
	copied := *v
	return &copied, nil
}

func (r *memRepo) GetVideos(ctx context.Context, pq *utils.Pagination) (*models.VideoList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := &models.VideoList{
		TotalCount: len(r.videos),
		Page:       pq.GetPage(),
		PageSize:   pq.GetSize(),
	}
	for _, v := range r.videos {
		copied := *v
		list.Videos = append(list.Videos, &copied)
	}
	return list, nil
}

func (r *memRepo) UpdateFields(ctx context.Context, videoID int64, update *models.VideoUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.videos[videoID]
	if !ok {
		return fmt.Errorf("no video found to update: %d", videoID)
	}
	if update.SourceFile != nil {
		v.SourceFile = update.SourceFile
	}
	if update.HLSPath != nil {
		v.HLSPath = update.HLSPath
	}
	if update.State != nil {
		v.State = *update.State
	}
	return nil
}

func (r *memRepo) DeleteVideo(ctx context.Context, videoID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.videos[videoID]; !ok {
		return fmt.Errorf("no video found to delete")
	}
	delete(r.videos, videoID)
	return nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []*models.VideoEvent
}

func (d *recordingDispatcher) OnEvent(ctx context.Context, event *models.VideoEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
}

func (d *recordingDispatcher) recorded() []*models.VideoEvent {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*models.VideoEvent, len(d.events))
	copy(out, d.events)
	return out
}

type fakeAWS struct {
	lastInput *models.UploadInput
}

func (f *fakeAWS) GetPresignedURL(ctx context.Context, input *models.UploadInput) (string, error) {
	f.lastInput = input
	return "https://s3.example.com/" + input.Key, nil
}

func (f *fakeAWS) GetObject(ctx context.Context, bucket, filename string) (*s3.GetObjectOutput, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeAWS) RemoveObject(ctx context.Context, bucket, filename string) error {
	return nil
}

func newTestUC(t *testing.T) (videos.UseCase, *memRepo, *recordingDispatcher, *media.Store, *config.Config) {
	t.Helper()
	cfg := &config.Config{
		Media: config.MediaConfig{RootDir: t.TempDir()},
		Transcode: config.TranscodeConfig{
			Renditions: config.DefaultRenditions(),
		},
	}
	repo := newMemRepo()
	dispatcher := &recordingDispatcher{}
	store := media.NewStore(cfg.Media.RootDir)
	uc := NewVideoUseCase(cfg, repo, &fakeAWS{}, dispatcher, store, nopLogger{})
	return uc, repo, dispatcher, store, cfg
}

func TestCreateVideoEmitsCreatedEvent(t *testing.T) {
	t.Parallel()

	uc, _, dispatcher, _, _ := newTestUC(t)

	video, err := uc.CreateVideo(context.Background(), &models.VideoCreateInput{
		Title:      "movie",
		SourceFile: "videos/originals/movie.mp4",
	})
	require.NoError(t, err)
	require.Equal(t, models.StateIdle, video.State)
	require.True(t, video.HasSource())

	events := dispatcher.recorded()
	require.Len(t, events, 1)
	require.Equal(t, models.EventCreated, events[0].Type)
	require.Equal(t, video.VideoID, events[0].Video.VideoID)
}

func TestCreateVideoRejectsMissingTitle(t *testing.T) {
	t.Parallel()

	uc, _, dispatcher, _, _ := newTestUC(t)

	_, err := uc.CreateVideo(context.Background(), &models.VideoCreateInput{})
	require.Error(t, err)
	require.Empty(t, dispatcher.recorded())
}

func TestAttachSourceEmitsEventWithFreshRecord(t *testing.T) {
	t.Parallel()

	uc, _, dispatcher, _, _ := newTestUC(t)

	video, err := uc.CreateVideo(context.Background(), &models.VideoCreateInput{Title: "draft"})
	require.NoError(t, err)

	updated, err := uc.AttachSource(context.Background(), video.VideoID, &models.AttachSourceInput{
		SourceFile: "videos/originals/movie.mp4",
	})
	require.NoError(t, err)
	require.True(t, updated.HasSource())

	events := dispatcher.recorded()
	require.Len(t, events, 2)
	require.Equal(t, models.EventSourceAttached, events[1].Type)
	require.True(t, events[1].Video.HasSource())
}

func TestAttachSourceRejectsSecondSource(t *testing.T) {
	t.Parallel()

	uc, _, _, _, _ := newTestUC(t)

	video, err := uc.CreateVideo(context.Background(), &models.VideoCreateInput{
		Title:      "movie",
		SourceFile: "videos/originals/movie.mp4",
	})
	require.NoError(t, err)

	_, err = uc.AttachSource(context.Background(), video.VideoID, &models.AttachSourceInput{
		SourceFile: "videos/originals/other.mp4",
	})
	require.ErrorIs(t, err, videos.ErrSourcePresent)
}

func TestAttachSourceUnknownVideo(t *testing.T) {
	t.Parallel()

	uc, _, _, _, _ := newTestUC(t)

	_, err := uc.AttachSource(context.Background(), 404, &models.AttachSourceInput{
		SourceFile: "videos/originals/movie.mp4",
	})
	require.ErrorIs(t, err, videos.ErrNotFound)
}

func TestListVideosClampsPagination(t *testing.T) {
	t.Parallel()

	uc, _, _, _, _ := newTestUC(t)

	list, err := uc.ListVideos(context.Background(), &utils.Pagination{Page: 0, Size: 500})
	require.NoError(t, err)
	require.Equal(t, 1, list.Page)
	require.Equal(t, 10, list.PageSize)

	list, err = uc.ListVideos(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, 1, list.Page)
	require.Equal(t, 10, list.PageSize)
}

func TestDeleteVideoEmitsDeletedBeforeRowRemoval(t *testing.T) {
	t.Parallel()

	uc, repo, dispatcher, _, _ := newTestUC(t)

	video, err := uc.CreateVideo(context.Background(), &models.VideoCreateInput{Title: "movie"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteVideo(context.Background(), video.VideoID))

	events := dispatcher.recorded()
	require.Equal(t, models.EventDeleted, events[len(events)-1].Type)

	_, err = repo.GetVideoByID(context.Background(), video.VideoID)
	require.Error(t, err)

	require.ErrorIs(t, uc.DeleteVideo(context.Background(), video.VideoID), videos.ErrNotFound)
}

func TestGetManifestReadsFromPersistedHLSPath(t *testing.T) {
	t.Parallel()

	uc, repo, _, store, _ := newTestUC(t)

	video, err := uc.CreateVideo(context.Background(), &models.VideoCreateInput{Title: "movie"})
	require.NoError(t, err)

	hlsPath := store.HLSRootRel(video.VideoID)
	require.NoError(t, repo.UpdateFields(context.Background(), video.VideoID, &models.VideoUpdate{HLSPath: &hlsPath}))

	manifest := store.ManifestPath(video.VideoID, "720p")
	require.NoError(t, os.MkdirAll(filepath.Dir(manifest), 0755))
	require.NoError(t, os.WriteFile(manifest, []byte("#EXTM3U\n"), 0644))

	data, err := uc.GetManifest(context.Background(), video.VideoID, "720p")
	require.NoError(t, err)
	require.Equal(t, "#EXTM3U\n", string(data))
}

func TestGetManifestUnknownResolution(t *testing.T) {
	t.Parallel()

	uc, _, _, _, _ := newTestUC(t)

	video, err := uc.CreateVideo(context.Background(), &models.VideoCreateInput{Title: "movie"})
	require.NoError(t, err)

	_, err = uc.GetManifest(context.Background(), video.VideoID, "4k")
	require.ErrorIs(t, err, videos.ErrFileNotFound)
}

func TestGetManifestMissingFile(t *testing.T) {
	t.Parallel()

	uc, _, _, _, _ := newTestUC(t)

	video, err := uc.CreateVideo(context.Background(), &models.VideoCreateInput{Title: "movie"})
	require.NoError(t, err)

	_, err = uc.GetManifest(context.Background(), video.VideoID, "480p")
	require.ErrorIs(t, err, videos.ErrFileNotFound)
}

func TestGetSegmentRejectsBadNames(t *testing.T) {
	t.Parallel()

	uc, _, _, store, _ := newTestUC(t)

	video, err := uc.CreateVideo(context.Background(), &models.VideoCreateInput{Title: "movie"})
	require.NoError(t, err)

	segment := store.SegmentPath(video.VideoID, "480p", "segment_000.ts")
	require.NoError(t, os.MkdirAll(filepath.Dir(segment), 0755))
	require.NoError(t, os.WriteFile(segment, []byte("ts"), 0644))

	for _, name := range []string{"../secret", "segment_000.mp4", "segment_00.ts", "evil.ts"} {
		_, err = uc.GetSegment(context.Background(), video.VideoID, "480p", name)
		require.ErrorIs(t, err, videos.ErrFileNotFound, "segment name %q must be rejected", name)
	}

	data, err := uc.GetSegment(context.Background(), video.VideoID, "480p", "segment_000.ts")
	require.NoError(t, err)
	require.Equal(t, "ts", string(data))
}

func TestGetPresignUploadDisabled(t *testing.T) {
	t.Parallel()

	uc, _, _, _, _ := newTestUC(t)

	_, err := uc.GetPresignUpload(context.Background(), &models.UploadInput{
		Name: "movie.mp4", MimeType: "video/mp4", Size: 1024,
	})
	require.Error(t, err)
}

func TestGetPresignUploadKeyMatchesSourceLayout(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Media:     config.MediaConfig{RootDir: t.TempDir()},
		Transcode: config.TranscodeConfig{Renditions: config.DefaultRenditions()},
		S3:        config.S3Config{Enabled: true, InputBucket: "uploads"},
	}
	aws := &fakeAWS{}
	uc := NewVideoUseCase(cfg, newMemRepo(), aws, &recordingDispatcher{}, media.NewStore(cfg.Media.RootDir), nopLogger{})

	url, err := uc.GetPresignUpload(context.Background(), &models.UploadInput{
		Name: "/tmp/upload/movie.mp4", MimeType: "video/mp4", Size: 1024,
	})
	require.NoError(t, err)
	require.NotEmpty(t, url)
	require.Equal(t, filepath.Join("videos", "originals", "movie.mp4"), aws.lastInput.Key)
	require.Equal(t, "uploads", aws.lastInput.BucketName)
}
