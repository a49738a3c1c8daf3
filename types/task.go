package types

import (
	"strings"
	"time"
)

// TaskStatus is the backend-reported state of a processing job
type TaskStatus string

const (
	StatusProcessing TaskStatus = "processing"
	StatusCompleted  TaskStatus = "completed"
	StatusFailed     TaskStatus = "failed"
)

// IsTerminal returns true once the job will not change anymore
func (s TaskStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// VerificationRecord is the on-chain receipt echoed by the backend.
// It is displayed as-is and never validated locally.
type VerificationRecord struct {
	VerificationID string `json:"verification_id"`
	ChainURL       string `json:"chain_url"`
	Timestamp      string `json:"timestamp"`
	IsValid        bool   `json:"is_valid"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// Time parses the ISO-8601 timestamp. Naive timestamps are read as UTC.
func (v VerificationRecord) Time() (time.Time, bool) {
	raw := strings.TrimSpace(v.Timestamp)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ProcessResponse is the success body of POST /api/process-video
type ProcessResponse struct {
	TaskID       string              `json:"task_id,omitempty"`
	OutputPath   string              `json:"output_path"`
	Verification *VerificationRecord `json:"verification,omitempty"`
}

// TaskStatusResponse is the body of GET /api/task-status/{id}
type TaskStatusResponse struct {
	Status       TaskStatus          `json:"status"`
	Message      string              `json:"message"`
	VideoURL     string              `json:"video_url,omitempty"`
	Result       string              `json:"result,omitempty"`
	Verification *VerificationRecord `json:"verification,omitempty"`
}

// ErrorResponse is the failure body of the backend
type ErrorResponse struct {
	Error string `json:"error"`
}
