package jobs

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/videoflix/videoflix-backend/internal/config"
	"github.com/videoflix/videoflix-backend/internal/models"
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

// fakeVideoRepo mirrors the partial-update semantics of the SQL repository:
// nil fields untouched, resolution flags accumulate.
type fakeVideoRepo struct {
	mu     sync.Mutex
	nextID int64
	videos map[int64]*models.Video
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{nextID: 1, videos: make(map[int64]*models.Video)}
}

func (r *fakeVideoRepo) CreateVideo(ctx context.Context, video *models.Video) (*models.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := *video
	v.VideoID = r.nextID
	v.State = models.StateIdle
	r.nextID++
	r.videos[v.VideoID] = &v
	copied := v
	return &copied, nil
}

func (r *fakeVideoRepo) GetVideoByID(ctx context.Context, videoID int64) (*models.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.videos[videoID]
	if !ok {
		return nil, fmt.Errorf("failed to get video by id: %w", sql.ErrNoRows)
	}
	copied := *v
	return &copied, nil
}

func (r *fakeVideoRepo) GetVideos(ctx context.Context, pq *utils.Pagination) (*models.VideoList, error) {
	return &models.VideoList{Videos: []*models.Video{}}, nil
}

func (r *fakeVideoRepo) UpdateFields(ctx context.Context, videoID int64, update *models.VideoUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.videos[videoID]
	if !ok {
		return fmt.Errorf("no video found to update: %d", videoID)
	}
	if update.SourceFile != nil {
		v.SourceFile = update.SourceFile
	}
	if update.ThumbnailFile != nil {
		v.ThumbnailFile = update.ThumbnailFile
	}
	if update.PreviewFile != nil {
		v.PreviewFile = update.PreviewFile
	}
	if update.HLSPath != nil {
		v.HLSPath = update.HLSPath
	}
	if update.State != nil {
		v.State = *update.State
	}
	if update.Has480p != nil {
		v.Has480p = v.Has480p || *update.Has480p
	}
	if update.Has720p != nil {
		v.Has720p = v.Has720p || *update.Has720p
	}
	if update.Has1080p != nil {
		v.Has1080p = v.Has1080p || *update.Has1080p
	}
	return nil
}

func (r *fakeVideoRepo) DeleteVideo(ctx context.Context, videoID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.videos[videoID]; !ok {
		return fmt.Errorf("no video found to delete")
	}
	delete(r.videos, videoID)
	return nil
}

type fakeQueue struct {
	mu   sync.Mutex
	jobs []*models.JobDescriptor
}

func (q *fakeQueue) EnqueueJob(ctx context.Context, key string, job *models.JobDescriptor) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *fakeQueue) DequeueJob(ctx context.Context, key string) (*models.JobDescriptor, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.jobs) == 0 {
		return nil, fmt.Errorf("queue empty")
	}
	job := q.jobs[0]
	q.jobs = q.jobs[1:]
	return job, nil
}

func (q *fakeQueue) enqueued() []*models.JobDescriptor {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]*models.JobDescriptor, len(q.jobs))
	copy(out, q.jobs)
	return out
}

// fakeTranscoder writes a manifest on success so availability flags line up
// with files that actually exist.
type fakeTranscoder struct {
	mu         sync.Mutex
	failLabels map[string]int // label -> remaining failures
	frameErr   error
	calls      []string
}

func newFakeTranscoder() *fakeTranscoder {
	return &fakeTranscoder{failLabels: make(map[string]int)}
}

func (f *fakeTranscoder) failResolution(label string, times int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failLabels[label] = times
}

func (f *fakeTranscoder) TranscodeToHLS(ctx context.Context, inputPath, outputDir string, r config.Rendition) error {
	f.mu.Lock()
	f.calls = append(f.calls, r.Label)
	remaining := f.failLabels[r.Label]
	if remaining != 0 {
		f.failLabels[r.Label] = remaining - 1
		f.mu.Unlock()
		return fmt.Errorf("ffmpeg failed: exit status 1")
	}
	f.mu.Unlock()
	return os.WriteFile(filepath.Join(outputDir, "index.m3u8"), []byte("#EXTM3U\n"), 0644)
}

func (f *fakeTranscoder) ExtractFrame(ctx context.Context, inputPath, outputPath string) error {
	if f.frameErr != nil {
		return f.frameErr
	}
	return os.WriteFile(outputPath, []byte("jpeg"), 0644)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Redis: config.RedisConfig{JobQueueKey: "video_jobs"},
		Media: config.MediaConfig{RootDir: t.TempDir()},
		Transcode: config.TranscodeConfig{
			Renditions:     config.DefaultRenditions(),
			SegmentSeconds: 6,
			MaxAttempts:    1,
		},
		Worker: config.WorkerConfig{WorkerCount: 1, MaxCPUUsage: 100},
	}
}

// seedVideo creates a record with a real source file under the media root.
func seedVideo(t *testing.T, repo *fakeVideoRepo, cfg *config.Config) *models.Video {
	t.Helper()
	sourceRel := filepath.Join("videos", "originals", "movie.mp4")
	sourceAbs := filepath.Join(cfg.Media.RootDir, sourceRel)
	require.NoError(t, os.MkdirAll(filepath.Dir(sourceAbs), 0755))
	require.NoError(t, os.WriteFile(sourceAbs, []byte("mp4"), 0644))

	video, err := repo.CreateVideo(context.Background(), &models.Video{
		Title:      "movie",
		SourceFile: &sourceRel,
	})
	require.NoError(t, err)
	return video
}
