package client

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"videoeditor/config"
	"videoeditor/types"
	"videoeditor/video"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// ProcessVideo submits every clip and the prompt as one multipart request.
// File parts are streamed from disk while the request is being sent.
func (c *Client) ProcessVideo(ctx context.Context, prompt string, clips []*video.Clip) (*types.ProcessResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.uploadTimeout)
	defer cancel()

	pr, pw := io.Pipe()
	defer pr.Close()

	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeSubmission(mw, prompt, clips))
	}()

	req, err := c.newRequest(ctx, http.MethodPost, c.baseURL+config.ProcessVideoPath, pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var total int64
	for _, clip := range clips {
		total += clip.Size
	}
	start := time.Now()
	c.logger.Info("Submitting videos",
		zap.Int("clips", len(clips)),
		zap.Int64("bytes", total),
	)

	var out types.ProcessResponse
	if err := c.doJSONRequest(req, DefaultErrorMessage, &out); err != nil {
		c.logger.Error("Submission failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, err
	}

	c.logger.Info("Submission accepted",
		zap.String("task_id", out.TaskID),
		zap.String("output_path", out.OutputPath),
		zap.Duration("duration", time.Since(start)),
	)
	return &out, nil
}

// writeSubmission writes the prompt field followed by one part per clip
func writeSubmission(mw *multipart.Writer, prompt string, clips []*video.Clip) error {
	if err := mw.WriteField(config.PromptField, prompt); err != nil {
		return err
	}

	for _, clip := range clips {
		if err := writeClipPart(mw, clip); err != nil {
			return err
		}
	}

	return mw.Close()
}

func writeClipPart(mw *multipart.Writer, clip *video.Clip) error {
	f, err := os.Open(clip.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", clip.Name, err)
	}
	defer f.Close()

	contentType := clip.Type
	if contentType == "" {
		contentType = config.DefaultMediaType
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(config.VideosField), quoteEscaper.Replace(clip.Name)))
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("failed to stream %s: %w", clip.Name, err)
	}
	return nil
}
