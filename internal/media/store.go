package media

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	ManifestFileName   = "index.m3u8"
	SegmentFilePattern = "segment_%03d.ts"

	ManifestContentType = "application/vnd.apple.mpegurl"
	SegmentContentType  = "video/MP2T"
)

// Store maps (video id, artifact kind, resolution) to filesystem paths.
// All functions are pure; the same inputs always yield the same path, which
// is what lets re-runs overwrite in place and cleanup find everything.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) Root() string {
	return s.root
}

func (s *Store) OriginalsDir() string {
	return filepath.Join(s.root, "videos", "originals")
}

func (s *Store) OriginalPath(filename string) string {
	return filepath.Join(s.OriginalsDir(), filepath.Base(filename))
}

func (s *Store) ThumbnailsDir() string {
	return filepath.Join(s.root, "videos", "thumbnails")
}

func (s *Store) ThumbnailPath(videoID int64) string {
	return filepath.Join(s.ThumbnailsDir(), fmt.Sprintf("video_%d_thumb.jpg", videoID))
}

// ThumbnailRel is the value persisted on the record, relative to the media root.
func (s *Store) ThumbnailRel(videoID int64) string {
	return filepath.Join("videos", "thumbnails", fmt.Sprintf("video_%d_thumb.jpg", videoID))
}

func (s *Store) PreviewsDir() string {
	return filepath.Join(s.root, "videos", "previews")
}

func (s *Store) PreviewPath(filename string) string {
	return filepath.Join(s.PreviewsDir(), filepath.Base(filename))
}

// HLSRoot is the rendition tree for one video; removing it removes every
// rendition the transcode job ever produced for that id.
func (s *Store) HLSRoot(videoID int64) string {
	return filepath.Join(s.root, "videos", "hls", fmt.Sprintf("video_%d", videoID))
}

// HLSRootRel is the value persisted on the record, relative to the media root.
func (s *Store) HLSRootRel(videoID int64) string {
	return filepath.Join("videos", "hls", fmt.Sprintf("video_%d", videoID))
}

func (s *Store) RenditionDir(videoID int64, resolution string) string {
	return filepath.Join(s.HLSRoot(videoID), resolution)
}

func (s *Store) ManifestPath(videoID int64, resolution string) string {
	return filepath.Join(s.RenditionDir(videoID, resolution), ManifestFileName)
}

func (s *Store) SegmentPath(videoID int64, resolution, segment string) string {
	return filepath.Join(s.RenditionDir(videoID, resolution), filepath.Base(segment))
}

func (s *Store) SegmentPattern(videoID int64, resolution string) string {
	return filepath.Join(s.RenditionDir(videoID, resolution), SegmentFilePattern)
}

// EnsureDir creates dir (and parents) before first write.
func (s *Store) EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
