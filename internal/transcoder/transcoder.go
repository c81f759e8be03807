package transcoder

import (
	"context"

	"github.com/videoflix/videoflix-backend/internal/config"
)

// Transcoder is the external encode capability. Each call is blocking and
// covers exactly one (input, rendition) pair.
type Transcoder interface {
	TranscodeToHLS(ctx context.Context, inputPath, outputDir string, r config.Rendition) error
	ExtractFrame(ctx context.Context, inputPath, outputPath string) error
}
