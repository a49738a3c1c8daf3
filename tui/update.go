package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"videoeditor/client"
	"videoeditor/editor"
	"videoeditor/events"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = clamp(msg.Width-8, 20, 60)
		return m, nil
	case tea.KeyMsg:
		if m.pickerOpen {
			return m.handlePickerKey(msg)
		}
		return m.handleKeyPress(msg)
	case ClipsAddedMsg:
		return m.handleClipsAdded(msg)
	case SubmitResultMsg:
		return m.handleSubmitResult(msg)
	case TickMsg:
		return m.handleTick(msg)
	case StatusUpdateMsg:
		return m.handleStatusUpdate(msg)
	case ResultSavedMsg:
		return m.handleResultSaved(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// cursor blinks and directory listings
	var promptCmd, pickerCmd tea.Cmd
	m.prompt, promptCmd = m.prompt.Update(msg)
	m.picker, pickerCmd = m.picker.Update(msg)
	return m, tea.Batch(promptCmd, pickerCmd)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "tab", "shift+tab":
		return m.toggleFocus(), nil
	case "ctrl+o":
		m.pickerOpen = true
		return m, m.picker.Init()
	case "ctrl+s":
		return m.submit()
	case "ctrl+d":
		return m.save()
	}

	if m.focus == FocusClips {
		return m.handleClipsKey(msg)
	}

	if msg.String() == "enter" {
		return m.submit()
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	m.Session.Prompt = m.prompt.Value()
	return m, cmd
}

func (m Model) handleClipsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < m.Session.Clips.Len()-1 {
			m.selected++
		}
	case "d", "delete", "backspace":
		return m.removeSelected(), nil
	}
	return m, nil
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pickerOpen = false
		return m, nil
	case "ctrl+c":
		return m.quit()
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.pickerOpen = false
		return m, loadClips([]string{path}, m.probe, m.logger)
	}
	return m, cmd
}

func (m Model) toggleFocus() Model {
	if m.focus == FocusPrompt {
		m.focus = FocusClips
		m.prompt.Blur()
	} else {
		m.focus = FocusPrompt
		m.prompt.Focus()
	}
	return m
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	// pending ticks and status replies become stale
	m.Session.Cancel()
	return m, tea.Quit
}

func (m Model) removeSelected() Model {
	clip, ok := m.Session.Clips.At(m.selected)
	if !ok {
		return m
	}
	if _, err := m.Session.Clips.Remove(clip.ID); err != nil {
		m.warning = err.Error()
		return m
	}
	if m.preview != nil {
		m.preview.Revoke(clip.ID)
	}
	m.logger.Info("Clip removed", zap.String("id", clip.ID), zap.String("name", clip.Name))

	if m.selected >= m.Session.Clips.Len() && m.selected > 0 {
		m.selected--
	}
	return m
}

// handleClipsAdded appends freshly loaded clips
func (m Model) handleClipsAdded(msg ClipsAddedMsg) (tea.Model, tea.Cmd) {
	m.warning = ""
	var problems []string
	for _, err := range msg.Errs {
		problems = append(problems, err.Error())
	}

	for _, clip := range msg.Clips {
		if m.preview != nil {
			clip.PreviewURL = m.preview.Publish(clip)
		}
		if err := m.Session.Clips.Add(clip); err != nil {
			if m.preview != nil {
				m.preview.Revoke(clip.ID)
			}
			problems = append(problems, fmt.Sprintf("%s: %v", clip.Name, err))
			continue
		}
		m.logger.Info("Clip added",
			zap.String("id", clip.ID),
			zap.String("name", clip.Name),
			zap.String("type", clip.Type),
			zap.Int64("size", clip.Size),
		)
	}

	if len(problems) > 0 {
		m.warning = strings.Join(problems, "; ")
	}
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	m.Session.Prompt = m.prompt.Value()
	if err := m.Session.BeginSubmit(); err != nil {
		m.warning = err.Error()
		return m, nil
	}
	m.warning = ""
	m.notice = ""

	clips := m.Session.Clips.All()
	m.logger.Info("Submitting job", zap.Int("clips", len(clips)))
	return m, submitVideo(m.api, strings.TrimSpace(m.Session.Prompt), clips)
}

// handleSubmitResult starts polling or shows the immediate result
func (m Model) handleSubmitResult(msg SubmitResultMsg) (tea.Model, tea.Cmd) {
	if m.Session.Phase() != editor.PhaseSubmitting {
		return m, nil
	}

	if msg.Err != nil {
		m.Session.Reject(client.UserMessage(msg.Err))
		m.logger.Error("Submission failed", zap.Error(msg.Err))
		return m, publishEvent(m.events, m.logger, m.event(events.TaskFailed, string(editor.PhaseFailed)))
	}

	videoURL := ""
	if msg.Resp != nil && msg.Resp.TaskID == "" {
		videoURL = m.api.VideoURL(msg.Resp.OutputPath)
	}

	taskID := m.Session.Accept(msg.Resp, videoURL)
	if taskID == "" {
		return m, publishEvent(m.events, m.logger, m.event(events.TaskCompleted, string(m.Session.Phase())))
	}

	return m, tea.Batch(
		pollTick(taskID, m.pollInterval),
		publishEvent(m.events, m.logger, m.event(events.TaskSubmitted, "processing")),
	)
}

// handleTick fires one status request for the active task
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if !m.Session.IsActiveTask(msg.TaskID) {
		return m, nil
	}
	return m, fetchStatus(m.api, msg.TaskID)
}

// handleStatusUpdate folds a snapshot in and schedules the next poll
func (m Model) handleStatusUpdate(msg StatusUpdateMsg) (tea.Model, tea.Cmd) {
	if !m.Session.IsActiveTask(msg.TaskID) {
		return m, nil
	}

	if msg.Err != nil {
		m.Session.PollFailed(msg.TaskID, client.UserMessage(msg.Err))
		m.logger.Error("Status poll failed", zap.String("task_id", msg.TaskID), zap.Error(msg.Err))
		event := m.event(events.TaskFailed, string(editor.PhaseFailed))
		event.TaskID = msg.TaskID
		return m, publishEvent(m.events, m.logger, event)
	}

	if !m.Session.ApplyStatus(msg.TaskID, msg.Status, m.api.ResolveURL) {
		return m, pollTick(msg.TaskID, m.pollInterval)
	}

	event := m.event(events.TaskCompleted, string(msg.Status.Status))
	if m.Session.Phase() == editor.PhaseFailed {
		event.Type = events.TaskFailed
	}
	event.TaskID = msg.TaskID
	return m, publishEvent(m.events, m.logger, event)
}

func (m Model) save() (tea.Model, tea.Cmd) {
	locator := m.Session.VideoURL()
	if m.Session.Phase() != editor.PhaseCompleted || locator == "" || m.saving {
		return m, nil
	}
	m.saving = true
	m.notice = "Saving " + client.FileName(locator) + "..."
	return m, saveResult(m.api, locator, m.outputDir)
}

func (m Model) handleResultSaved(msg ResultSavedMsg) (tea.Model, tea.Cmd) {
	m.saving = false
	if msg.Err != nil {
		m.notice = ""
		m.warning = "Save failed: " + client.UserMessage(msg.Err)
		if errors.Is(msg.Err, client.ErrUnsupportedLocator) {
			m.warning = "Save failed: this result cannot be downloaded"
		}
		return m, nil
	}
	m.notice = "Saved to " + msg.Path
	return m, nil
}

// event builds a lifecycle event from the current session
func (m Model) event(typ events.Type, status string) events.Event {
	e := events.Event{
		Type:      typ,
		TaskID:    m.Session.TaskID(),
		Status:    status,
		Message:   m.Session.Message(),
		VideoURL:  m.Session.VideoURL(),
		ClipCount: m.Session.Clips.Len(),
		Timestamp: time.Now().UTC(),
	}
	if typ == events.TaskFailed {
		e.Message = m.Session.Err()
	}
	if v := m.Session.Verification(); v != nil {
		e.VerificationID = v.VerificationID
	}
	return e
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
