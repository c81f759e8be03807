package models

import "time"

type JobType string

const (
	JobTypeThumbnail JobType = "thumbnail"
	JobTypeTranscode JobType = "transcode"
)

// JobDescriptor is what goes over the queue. Delivery is at-least-once and
// there is no ordering between the thumbnail and transcode job for one video.
type JobDescriptor struct {
	JobID      string    `json:"job_id" redis:"job_id"`
	JobType    JobType   `json:"job_type" redis:"job_type"`
	VideoID    int64     `json:"video_id" redis:"video_id"`
	EnqueuedAt time.Time `json:"enqueued_at" redis:"enqueued_at"`
}
