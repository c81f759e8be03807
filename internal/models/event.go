package models

type EventType string

const (
	EventCreated        EventType = "created"
	EventSourceAttached EventType = "source_attached"
	EventDeleted        EventType = "deleted"
)

// VideoEvent is emitted synchronously by the record usecase on lifecycle
// transitions and consumed by the job dispatcher.
type VideoEvent struct {
	Type  EventType
	Video *Video
}
