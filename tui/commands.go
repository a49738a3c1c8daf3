package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"videoeditor/events"
	"videoeditor/video"
)

// loadClips reads and validates the files at paths
func loadClips(paths []string, probe video.ProbeFunc, logger *zap.Logger) tea.Cmd {
	return func() tea.Msg {
		var msg ClipsAddedMsg
		for _, path := range paths {
			clip, err := video.NewClip(path)
			if err != nil {
				logger.Warn("Rejected file", zap.String("path", path), zap.Error(err))
				msg.Errs = append(msg.Errs, err)
				continue
			}

			if probe != nil {
				info, err := video.Probe(probe, clip.Path)
				if err != nil {
					logger.Warn("Probe failed", zap.String("path", clip.Path), zap.Error(err))
				} else {
					clip.Media = info
				}
			}
			msg.Clips = append(msg.Clips, clip)
		}
		return msg
	}
}

// submitVideo sends the prompt and clips as one request
func submitVideo(api API, prompt string, clips []*video.Clip) tea.Cmd {
	return func() tea.Msg {
		resp, err := api.ProcessVideo(context.Background(), prompt, clips)
		return SubmitResultMsg{Resp: resp, Err: err}
	}
}

// pollTick schedules the next status request for taskID
func pollTick(taskID string, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{TaskID: taskID, Time: t}
	})
}

// fetchStatus requests one status snapshot
func fetchStatus(api API, taskID string) tea.Cmd {
	return func() tea.Msg {
		status, err := api.TaskStatus(context.Background(), taskID)
		return StatusUpdateMsg{TaskID: taskID, Status: status, Err: err}
	}
}

// saveResult downloads the processed video into dir
func saveResult(api API, locator, dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := api.SaveResult(context.Background(), locator, dir)
		return ResultSavedMsg{Path: path, Err: err}
	}
}

// publishEvent sends event in the background; failures are only logged
func publishEvent(pub events.Publisher, logger *zap.Logger, event events.Event) tea.Cmd {
	if pub == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := pub.Publish(ctx, event); err != nil {
			logger.Warn("Event not published", zap.String("type", string(event.Type)), zap.Error(err))
		}
		return nil
	}
}
