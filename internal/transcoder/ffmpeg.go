package transcoder

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/videoflix/videoflix-backend/internal/config"
	"github.com/videoflix/videoflix-backend/internal/media"
)

const (
	thumbnailOffset = "00:00:10"
	thumbnailScale  = "640:360"

	// stderr kept for error reporting; ffmpeg is chatty
	maxStderrBytes = 8 * 1024
)

type ffmpegTranscoder struct {
	cfg *config.TranscodeConfig
}

func NewFFmpegTranscoder(cfg *config.TranscodeConfig) Transcoder {
	return &ffmpegTranscoder{cfg: cfg}
}

// TranscodeToHLS encodes one rendition into outputDir as a bounded VOD
// playlist plus numbered transport-stream segments.
func (t *ffmpegTranscoder) TranscodeToHLS(ctx context.Context, inputPath, outputDir string, r config.Rendition) error {
	args := []string{
		"-y",
		"-i", inputPath,
		"-vf", fmt.Sprintf("scale=%d:%d", r.Width, r.Height),
		"-c:v", "libx264",
		"-b:v", fmt.Sprintf("%dk", r.Bitrate),
		"-c:a", "aac",
		"-hls_time", fmt.Sprintf("%d", t.cfg.SegmentSeconds),
		"-hls_playlist_type", "vod",
		"-hls_segment_filename", filepath.Join(outputDir, media.SegmentFilePattern),
		filepath.Join(outputDir, media.ManifestFileName),
	}
	return t.run(ctx, args)
}

// ExtractFrame grabs a single frame ten seconds in, scaled for thumbnails.
func (t *ffmpegTranscoder) ExtractFrame(ctx context.Context, inputPath, outputPath string) error {
	args := []string{
		"-y",
		"-i", inputPath,
		"-ss", thumbnailOffset,
		"-vframes", "1",
		"-vf", "scale=" + thumbnailScale,
		outputPath,
	}
	return t.run(ctx, args)
}

func (t *ffmpegTranscoder) run(ctx context.Context, args []string) error {
	if t.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.cfg.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("ffmpeg timed out: %w", ctxErr)
		}
		return fmt.Errorf("ffmpeg failed: %v, stderr: %s", err, stderrTail(stderr.String()))
	}
	return nil
}

func stderrTail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxStderrBytes {
		s = s[len(s)-maxStderrBytes:]
	}
	return s
}
