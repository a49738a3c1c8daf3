package editor

import (
	"errors"
	"strings"

	"videoeditor/config"
	"videoeditor/types"
	"videoeditor/video"
)

// Phase is where the session stands in the submit/poll cycle
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseProcessing Phase = "processing"
	PhaseCompleted  Phase = "completed"
	PhaseFailed     Phase = "failed"
)

var (
	ErrNoClips     = errors.New("add at least one video clip")
	ErrEmptyPrompt = errors.New("enter an editing instruction")
	ErrBusy        = errors.New("a job is already in progress")
)

const (
	defaultFailureMessage = "Processing failed"
	defaultPollError      = "Failed to fetch task status"

	// DefaultSubmitError is shown when a submission failure carries no text
	DefaultSubmitError = "Failed to process video"
)

// Session is the view state of one editor: the clip list, the prompt and the
// lifecycle of at most one submitted job. It is not safe for concurrent use.
type Session struct {
	Clips  *video.ClipList
	Prompt string

	phase        Phase
	taskID       string
	progress     int
	message      string
	videoURL     string
	result       string
	verification *types.VerificationRecord
	err          string
}

// NewSession creates an idle session with an empty clip list
func NewSession() *Session {
	return &Session{
		Clips: video.NewClipList(),
		phase: PhaseIdle,
	}
}

// Busy returns true while a submission or poll is in flight
func (s *Session) Busy() bool {
	return s.phase == PhaseSubmitting || s.phase == PhaseProcessing
}

// Validate reports why a submission would be refused, or nil
func (s *Session) Validate() error {
	switch {
	case s.Busy():
		return ErrBusy
	case s.Clips.Len() == 0:
		return ErrNoClips
	case strings.TrimSpace(s.Prompt) == "":
		return ErrEmptyPrompt
	}
	return nil
}

// CanSubmit returns true when a submission would be accepted
func (s *Session) CanSubmit() bool {
	return s.Validate() == nil
}

// BeginSubmit moves the session to submitting and clears the previous outcome.
// It returns the validation error and leaves the session untouched when the
// guards do not pass.
func (s *Session) BeginSubmit() error {
	if err := s.Validate(); err != nil {
		return err
	}
	s.phase = PhaseSubmitting
	s.taskID = ""
	s.progress = 0
	s.message = ""
	s.videoURL = ""
	s.result = ""
	s.verification = nil
	s.err = ""
	return nil
}

// Accept records a successful submission. When the backend returned a task id
// the session starts processing and that id is returned for polling; otherwise
// the result is immediate and videoURL is the derived source.
func (s *Session) Accept(resp *types.ProcessResponse, videoURL string) string {
	if s.phase != PhaseSubmitting || resp == nil {
		return ""
	}

	s.verification = resp.Verification
	if resp.TaskID != "" {
		s.phase = PhaseProcessing
		s.taskID = resp.TaskID
		return resp.TaskID
	}

	s.phase = PhaseCompleted
	s.progress = config.ProgressMax
	s.videoURL = videoURL
	return ""
}

// Reject records a failed submission
func (s *Session) Reject(message string) {
	if s.phase != PhaseSubmitting {
		return
	}
	s.fail(message, DefaultSubmitError)
}

// ApplyStatus folds a status snapshot into the session. Snapshots for any task
// other than the active one are ignored. It returns true when polling for
// taskID must stop.
func (s *Session) ApplyStatus(taskID string, status *types.TaskStatusResponse, resolve func(string) string) bool {
	if !s.IsActiveTask(taskID) {
		return true
	}
	if status == nil {
		return false
	}

	s.message = status.Message

	switch status.Status {
	case types.StatusCompleted:
		s.phase = PhaseCompleted
		s.progress = config.ProgressMax
		s.videoURL = status.VideoURL
		if resolve != nil && s.videoURL != "" {
			s.videoURL = resolve(s.videoURL)
		}
		s.result = status.Result
		if status.Verification != nil {
			s.verification = status.Verification
		}
		return true
	case types.StatusFailed:
		s.fail(status.Message, defaultFailureMessage)
		return true
	default:
		if s.progress < config.ProgressCap {
			s.progress += config.ProgressStep
			if s.progress > config.ProgressCap {
				s.progress = config.ProgressCap
			}
		}
		return false
	}
}

// PollFailed records a status request error and ends polling of taskID
func (s *Session) PollFailed(taskID, message string) {
	if !s.IsActiveTask(taskID) {
		return
	}
	s.fail(message, defaultPollError)
}

// Cancel abandons the active job locally; late status snapshots are ignored
func (s *Session) Cancel() {
	if !s.Busy() {
		return
	}
	s.phase = PhaseIdle
	s.taskID = ""
	s.progress = 0
	s.message = ""
}

// IsActiveTask returns true when taskID is the job currently being polled
func (s *Session) IsActiveTask(taskID string) bool {
	return s.phase == PhaseProcessing && taskID != "" && taskID == s.taskID
}

func (s *Session) fail(message, fallback string) {
	if strings.TrimSpace(message) == "" {
		message = fallback
	}
	s.phase = PhaseFailed
	s.err = message
	s.taskID = ""
}

func (s *Session) Phase() Phase                            { return s.phase }
func (s *Session) TaskID() string                          { return s.taskID }
func (s *Session) Progress() int                           { return s.progress }
func (s *Session) Message() string                         { return s.message }
func (s *Session) VideoURL() string                        { return s.videoURL }
func (s *Session) Result() string                          { return s.result }
func (s *Session) Verification() *types.VerificationRecord { return s.verification }
func (s *Session) Err() string                             { return s.err }
