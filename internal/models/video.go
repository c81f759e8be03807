package models

import "time"

type ProcessingState string

const (
	StateIdle       ProcessingState = "idle"
	StateProcessing ProcessingState = "processing"
	StateComplete   ProcessingState = "complete"
)

// Video is the record every job reads and partially updates. Jobs must never
// write it back whole; see VideoUpdate.
type Video struct {
	VideoID       int64           `json:"id" db:"video_id"`
	Title         string          `json:"title" db:"title" validate:"required,lte=255"`
	Description   string          `json:"description" db:"description"`
	Category      string          `json:"category" db:"category" validate:"lte=255"`
	SourceFile    *string         `json:"-" db:"source_file"`
	ThumbnailFile *string         `json:"thumbnail_file,omitempty" db:"thumbnail_file"`
	PreviewFile   *string         `json:"preview_file,omitempty" db:"preview_file"`
	HLSPath       *string         `json:"hls_path,omitempty" db:"hls_path"`
	State         ProcessingState `json:"processing_state" db:"processing_state"`
	Has480p       bool            `json:"has_480p" db:"has_480p"`
	Has720p       bool            `json:"has_720p" db:"has_720p"`
	Has1080p      bool            `json:"has_1080p" db:"has_1080p"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

func (v *Video) HasSource() bool {
	return v.SourceFile != nil && *v.SourceFile != ""
}

func (v *Video) HasResolution(label string) bool {
	switch label {
	case "480p":
		return v.Has480p
	case "720p":
		return v.Has720p
	case "1080p":
		return v.Has1080p
	}
	return false
}

// VideoUpdate is a field-level partial update. Nil fields are left untouched
// by the repository, so concurrent jobs touching different fields never
// clobber each other. Resolution flags only ever go false -> true.
type VideoUpdate struct {
	SourceFile    *string
	ThumbnailFile *string
	PreviewFile   *string
	HLSPath       *string
	State         *ProcessingState
	Has480p       *bool
	Has720p       *bool
	Has1080p      *bool
}

func (u *VideoUpdate) SetState(s ProcessingState) *VideoUpdate {
	u.State = &s
	return u
}

// SetResolution marks one ladder rung available. Unknown labels are ignored,
// matching the flag columns that exist on the record.
func (u *VideoUpdate) SetResolution(label string) *VideoUpdate {
	t := true
	switch label {
	case "480p":
		u.Has480p = &t
	case "720p":
		u.Has720p = &t
	case "1080p":
		u.Has1080p = &t
	}
	return u
}

type VideoList struct {
	Videos     []*Video `json:"videos"`
	TotalCount int      `json:"total_count"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	HasMore    bool     `json:"has_more"`
}

type VideoCreateInput struct {
	Title       string `json:"title" validate:"required,lte=255"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"lte=255"`
	SourceFile  string `json:"source_file" validate:"omitempty,lte=500"`
}

type AttachSourceInput struct {
	SourceFile string `json:"source_file" validate:"required,lte=500"`
}
