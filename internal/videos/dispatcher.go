package videos

import (
	"context"

	"github.com/videoflix/videoflix-backend/internal/models"
)

// Dispatcher consumes record lifecycle events. Created/SourceAttached enqueue
// job descriptors; Deleted runs artifact cleanup synchronously before the
// record row is removed.
type Dispatcher interface {
	OnEvent(ctx context.Context, event *models.VideoEvent)
}
