package client

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"videoeditor/config"
)

// ObjectStore fetches objects addressed by s3:// locators
type ObjectStore interface {
	Get(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// Client talks to the video processing backend
type Client struct {
	baseURL       string
	httpClient    *http.Client
	statusTimeout time.Duration
	uploadTimeout time.Duration
	store         ObjectStore
	logger        *zap.Logger
}

// Option customises a Client
type Option func(*Client)

// WithTimeouts sets per-call timeouts for status queries and submissions
func WithTimeouts(status, upload time.Duration) Option {
	return func(c *Client) {
		if status > 0 {
			c.statusTimeout = status
		}
		if upload > 0 {
			c.uploadTimeout = upload
		}
	}
}

// WithObjectStore enables saving results addressed by s3:// locators
func WithObjectStore(store ObjectStore) Option {
	return func(c *Client) { c.store = store }
}

// WithLogger attaches a logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a new backend client
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = getEnvOrDefault("VIDEO_API_URL", "http://localhost:8000")
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// timeouts come from the per-call context
		httpClient:    &http.Client{},
		statusTimeout: config.DefaultStatusTimeout,
		uploadTimeout: config.DefaultUploadTimeout,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root the client was built with
func (c *Client) BaseURL() string {
	return c.baseURL
}

// VideoURL derives the playable source of an immediate result. Only the file
// name segment of outputPath is used; directories on the backend are ignored.
func (c *Client) VideoURL(outputPath string) string {
	name := FileName(outputPath)
	if name == "" {
		return ""
	}
	return c.baseURL + config.VideosPath + url.PathEscape(name)
}

// ResolveURL turns a backend-relative locator into an absolute URL. Absolute
// http(s) and s3 locators are returned unchanged.
func (c *Client) ResolveURL(locator string) string {
	if locator == "" {
		return ""
	}
	u, err := url.Parse(locator)
	if err != nil || u.IsAbs() {
		return locator
	}
	base, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return locator
	}
	return base.ResolveReference(u).String()
}

// FileName returns the last path segment, splitting on both / and \
func FileName(p string) string {
	parts := strings.FieldsFunc(p, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(parts) == 0 {
		return ""
	}
	name := parts[len(parts)-1]
	if name == "." || name == ".." {
		return ""
	}
	return path.Clean(name)
}
