package tui

import (
	"time"

	"videoeditor/types"
	"videoeditor/video"
)

// ClipsAddedMsg carries clips loaded from disk and the files that were refused
type ClipsAddedMsg struct {
	Clips []*video.Clip
	Errs  []error
}

// SubmitResultMsg is the outcome of the multipart submission
type SubmitResultMsg struct {
	Resp *types.ProcessResponse
	Err  error
}

// TickMsg asks for the next status poll of TaskID
type TickMsg struct {
	TaskID string
	Time   time.Time
}

// StatusUpdateMsg is one status snapshot for TaskID
type StatusUpdateMsg struct {
	TaskID string
	Status *types.TaskStatusResponse
	Err    error
}

// ResultSavedMsg reports where the processed video was written
type ResultSavedMsg struct {
	Path string
	Err  error
}
