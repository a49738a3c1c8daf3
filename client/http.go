package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"videoeditor/types"
)

// DefaultErrorMessage is shown when the backend gives no error text
const DefaultErrorMessage = "Failed to process video"

// APIError is a non-success response from the backend
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// UserMessage maps any client error to the single line shown to the user
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// doJSONRequest executes req and decodes a JSON body into result.
// Any non-2xx status becomes an *APIError carrying the backend's error text.
func (c *Client) doJSONRequest(req *http.Request, fallback string, result interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp, fallback)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func newAPIError(resp *http.Response, fallback string) *APIError {
	bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	message := fallback
	var payload types.ErrorResponse
	if err := json.Unmarshal(bodyBytes, &payload); err == nil && strings.TrimSpace(payload.Error) != "" {
		message = payload.Error
	}

	return &APIError{StatusCode: resp.StatusCode, Message: message}
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// getEnvOrDefault returns the value of an environment variable or a default value
func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
