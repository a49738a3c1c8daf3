package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"videoeditor/common"
)

// ErrUnsupportedLocator is returned for result locators the client cannot fetch
var ErrUnsupportedLocator = errors.New("unsupported result locator")

const defaultResultName = "result.mp4"

// SaveResult downloads the processed video behind locator into dir and returns
// the written path. http(s) and backend-relative locators are fetched from the
// backend; s3:// locators require an object store.
func (c *Client) SaveResult(ctx context.Context, locator, dir string) (string, error) {
	if locator == "" {
		return "", fmt.Errorf("empty locator: %w", ErrUnsupportedLocator)
	}

	ctx, cancel := context.WithTimeout(ctx, c.uploadTimeout)
	defer cancel()

	body, name, err := c.openResult(ctx, locator)
	if err != nil {
		return "", err
	}
	defer body.Close()

	if name == "" {
		name = defaultResultName
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", fmt.Errorf("failed to write result: %w", err)
	}

	dest := filepath.Join(dir, name)
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("failed to move result into place: %w", err)
	}

	c.logger.Info("Result saved",
		zap.String("locator", locator),
		zap.String("path", dest),
		zap.Int64("bytes", written),
	)
	return dest, nil
}

func (c *Client) openResult(ctx context.Context, locator string) (io.ReadCloser, string, error) {
	if bucket, key, ok := common.ParseS3Locator(locator); ok {
		if c.store == nil {
			return nil, "", fmt.Errorf("%s: no object store configured: %w", locator, ErrUnsupportedLocator)
		}
		body, err := c.store.Get(ctx, bucket, key)
		if common.IsNotFound(err) {
			return nil, "", fmt.Errorf("processed video %s no longer exists: %w", locator, err)
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to fetch %s: %w", locator, err)
		}
		return body, FileName(key), nil
	}

	resolved := c.ResolveURL(locator)
	u, err := url.Parse(resolved)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, "", fmt.Errorf("%s: %w", locator, ErrUnsupportedLocator)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resolved, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to send request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, "", newAPIError(resp, "Failed to download video")
	}

	return resp.Body, FileName(u.Path), nil
}
