package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"videoeditor/client"
	"videoeditor/editor"
	"videoeditor/events"
	"videoeditor/poller"
	"videoeditor/types"
	"videoeditor/video"
)

// HeadlessAPI is the client surface used without the TUI
type HeadlessAPI interface {
	poller.StatusFetcher
	ProcessVideo(ctx context.Context, prompt string, clips []*video.Clip) (*types.ProcessResponse, error)
	VideoURL(outputPath string) string
	ResolveURL(locator string) string
	SaveResult(ctx context.Context, locator, dir string) (string, error)
}

// HeadlessOptions configures one non-interactive run
type HeadlessOptions struct {
	API          HeadlessAPI
	Events       events.Publisher
	Probe        video.ProbeFunc
	Logger       *zap.Logger
	PollInterval time.Duration
	Prompt       string
	Paths        []string
	OutputDir    string
	Save         bool
}

// runHeadless loads the clips, submits them, waits for the job and prints the outcome
func runHeadless(ctx context.Context, opts HeadlessOptions, out io.Writer) error {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	pub := opts.Events
	if pub == nil {
		pub = events.Nop()
	}

	session := editor.NewSession()
	session.Prompt = strings.TrimSpace(opts.Prompt)

	for _, path := range opts.Paths {
		clip, err := video.NewClip(path)
		if err != nil {
			return err
		}
		if opts.Probe != nil {
			if info, err := video.Probe(opts.Probe, clip.Path); err != nil {
				logger.Warn("Probe failed", zap.String("path", clip.Path), zap.Error(err))
			} else {
				clip.Media = info
			}
		}
		if err := session.Clips.Add(clip); err != nil {
			return err
		}
		fmt.Fprintf(out, "Added %s (%s)\n", clip.Name, clip.Type)
	}

	if err := session.BeginSubmit(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Uploading %d clip(s)...\n", session.Clips.Len())
	resp, err := opts.API.ProcessVideo(ctx, session.Prompt, session.Clips.All())
	if err != nil {
		session.Reject(client.UserMessage(err))
		publish(ctx, pub, logger, sessionEvent(session, events.TaskFailed, ""))
		return errors.New(session.Err())
	}

	videoURL := ""
	if resp.TaskID == "" {
		videoURL = opts.API.VideoURL(resp.OutputPath)
	}

	if taskID := session.Accept(resp, videoURL); taskID != "" {
		publish(ctx, pub, logger, sessionEvent(session, events.TaskSubmitted, taskID))
		p := poller.New(opts.API, opts.PollInterval, logger)
		fmt.Fprintf(out, "Task %s accepted, polling every %s\n", taskID, p.Interval())

		_, err := p.Poll(ctx, taskID, func(st *types.TaskStatusResponse) bool {
			stop := session.ApplyStatus(taskID, st, opts.API.ResolveURL)
			if !stop {
				fmt.Fprintf(out, "[%3d%%] %s\n", session.Progress(), st.Message)
			}
			return !stop
		})
		if err != nil {
			session.PollFailed(taskID, client.UserMessage(err))
		}

		kind := events.TaskCompleted
		if session.Phase() != editor.PhaseCompleted {
			kind = events.TaskFailed
		}
		publish(ctx, pub, logger, sessionEvent(session, kind, taskID))
	} else {
		publish(ctx, pub, logger, sessionEvent(session, events.TaskCompleted, ""))
	}

	if session.Phase() != editor.PhaseCompleted {
		return errors.New(session.Err())
	}

	printResult(out, session)

	if opts.Save && session.VideoURL() != "" {
		path, err := opts.API.SaveResult(ctx, session.VideoURL(), opts.OutputDir)
		if err != nil {
			return fmt.Errorf("failed to save result: %w", err)
		}
		fmt.Fprintf(out, "Saved: %s\n", path)
	}
	return nil
}

func printResult(out io.Writer, session *editor.Session) {
	fmt.Fprintln(out, "Completed.")
	if session.VideoURL() != "" {
		fmt.Fprintf(out, "Video: %s\n", session.VideoURL())
	} else {
		fmt.Fprintln(out, "No video was returned.")
	}
	if session.Result() != "" {
		fmt.Fprintf(out, "Result: %s\n", session.Result())
	}
	if v := session.Verification(); v != nil {
		fmt.Fprintf(out, "Verification: %s (valid: %t)\n", v.VerificationID, v.IsValid)
		if v.ChainURL != "" {
			fmt.Fprintf(out, "Chain: %s\n", v.ChainURL)
		}
		if v.Timestamp != "" {
			fmt.Fprintf(out, "Timestamp: %s\n", v.Timestamp)
		}
	}
}

func sessionEvent(session *editor.Session, kind events.Type, taskID string) events.Event {
	e := events.Event{
		Type:      kind,
		TaskID:    taskID,
		Status:    string(session.Phase()),
		Message:   session.Message(),
		VideoURL:  session.VideoURL(),
		ClipCount: session.Clips.Len(),
		Timestamp: time.Now().UTC(),
	}
	if kind == events.TaskFailed {
		e.Message = session.Err()
	}
	if v := session.Verification(); v != nil {
		e.VerificationID = v.VerificationID
	}
	return e
}

func publish(ctx context.Context, pub events.Publisher, logger *zap.Logger, event events.Event) {
	if err := pub.Publish(ctx, event); err != nil {
		logger.Warn("Event not published", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
