package config

import "time"

// Polling Constants
const (
	// DefaultPollInterval is the wait between two task status queries
	DefaultPollInterval = 2 * time.Second

	// DefaultStatusTimeout bounds a single status request
	DefaultStatusTimeout = 5 * time.Second

	// DefaultUploadTimeout bounds the whole multipart submission
	DefaultUploadTimeout = 10 * time.Minute
)

// Progress Constants
//
// Progress is perceived, not measured: every processing tick adds ProgressStep
// until ProgressCap, and completion snaps it to ProgressMax.
const (
	ProgressStep = 10
	ProgressCap  = 90
	ProgressMax  = 100
)

// API Constants
const (
	// ProcessVideoPath accepts the multipart submission
	ProcessVideoPath = "/api/process-video"

	// TaskStatusPath is followed by the task id
	TaskStatusPath = "/api/task-status/"

	// VideosPath serves an immediate result by file name
	VideosPath = "/api/videos/"

	// PromptField and VideosField are the multipart field names
	PromptField = "prompt"
	VideosField = "videos"
)

// Clip Constants
const (
	// MaxClipNameLength truncates long file names in the clip list
	MaxClipNameLength = 48

	// DefaultMediaType is sent when a clip type could not be detected
	DefaultMediaType = "application/octet-stream"
)

// VideoExtensions maps accepted file extensions to their media type. It is the
// fallback when content sniffing does not report a video/* type, and the
// filter applied by the in-app file picker.
var VideoExtensions = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
}

// Directory Constants
const (
	// DefaultOutputDir receives saved results
	DefaultOutputDir = "output"

	// DefaultLogFile keeps logs off the terminal the TUI draws on
	DefaultLogFile = "videoeditor.log"
)

// Event Constants
const (
	DefaultKafkaTopic = "video_editor_events"
)
