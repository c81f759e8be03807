package videos

import (
	"context"

	"github.com/videoflix/videoflix-backend/internal/models"
)

// QueueRepository is the broker-backed job queue. Enqueue is fire-and-forget
// from the dispatcher's point of view; delivery to workers is at-least-once.
type QueueRepository interface {
	EnqueueJob(ctx context.Context, key string, job *models.JobDescriptor) error
	DequeueJob(ctx context.Context, key string) (*models.JobDescriptor, error)
}
