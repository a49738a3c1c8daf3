package client

import (
	"context"
	"net/http"
	"net/url"

	"videoeditor/config"
	"videoeditor/types"
)

// TaskStatus fetches the current snapshot of a processing job
func (c *Client) TaskStatus(ctx context.Context, taskID string) (*types.TaskStatusResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.statusTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, c.baseURL+config.TaskStatusPath+url.PathEscape(taskID), nil)
	if err != nil {
		return nil, err
	}

	var status types.TaskStatusResponse
	if err := c.doJSONRequest(req, "Failed to fetch task status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}
