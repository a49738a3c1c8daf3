package video

import (
	"errors"
	"time"
)

var (
	ErrNotVideo      = errors.New("not a video file")
	ErrDuplicateClip = errors.New("clip already in list")
	ErrClipNotFound  = errors.New("clip not found")
)

// Clip is a local video file queued for submission
type Clip struct {
	ID         string
	Name       string
	Type       string // media subtype, e.g. "video/mp4"
	Size       int64
	PreviewURL string
	Path       string
	Media      *MediaInfo
}

// MediaInfo holds the ffprobe fields shown next to a clip
type MediaInfo struct {
	Duration time.Duration
	Width    int
	Height   int
	Codec    string
}
