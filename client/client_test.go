package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"videoeditor/types"
	"videoeditor/video"
)

func writeClip(t *testing.T, name, content string) *video.Clip {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write clip: %v", err)
	}
	return &video.Clip{ID: name, Name: name, Type: "video/mp4", Size: int64(len(content)), Path: path}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func TestProcessVideo_SendsMultipart(t *testing.T) {
	clips := []*video.Clip{
		writeClip(t, "intro.mp4", "first-bytes"),
		writeClip(t, `odd "name".mp4`, "second-bytes"),
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/process-video" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("Failed to parse form: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if got := r.FormValue("prompt"); got != "cut the boring parts" {
			t.Errorf("prompt = %q", got)
		}

		files := r.MultipartForm.File["videos"]
		if len(files) != 2 {
			t.Errorf("expected 2 video parts, got %d", len(files))
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if files[0].Filename != "intro.mp4" || files[1].Filename != `odd "name".mp4` {
			t.Errorf("filenames = %q, %q", files[0].Filename, files[1].Filename)
		}
		if ct := files[0].Header.Get("Content-Type"); ct != "video/mp4" {
			t.Errorf("part Content-Type = %q", ct)
		}
		f, _ := files[1].Open()
		data, _ := io.ReadAll(f)
		if string(data) != "second-bytes" {
			t.Errorf("second part body = %q", data)
		}

		respondJSON(w, http.StatusOK, types.ProcessResponse{TaskID: "t-1", OutputPath: "/out/final.mp4"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithLogger(zaptest.NewLogger(t)))
	resp, err := c.ProcessVideo(context.Background(), "cut the boring parts", clips)
	if err != nil {
		t.Fatalf("ProcessVideo failed: %v", err)
	}
	if resp.TaskID != "t-1" || resp.OutputPath != "/out/final.mp4" {
		t.Errorf("response = %+v", resp)
	}
}

func TestProcessVideo_BackendErrorText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		respondJSON(w, http.StatusUnprocessableEntity, types.ErrorResponse{Error: "Prompt too vague"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.ProcessVideo(context.Background(), "x", []*video.Clip{writeClip(t, "a.mp4", "a")})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("StatusCode = %d", apiErr.StatusCode)
	}
	if UserMessage(err) != "Prompt too vague" {
		t.Errorf("UserMessage = %q", UserMessage(err))
	}
}

func TestProcessVideo_GenericFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.ProcessVideo(context.Background(), "x", []*video.Clip{writeClip(t, "a.mp4", "a")})
	if UserMessage(err) != DefaultErrorMessage {
		t.Errorf("UserMessage = %q, expected %q", UserMessage(err), DefaultErrorMessage)
	}
}

func TestProcessVideo_MissingFile(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		io.Copy(io.Discard, r.Body)
		respondJSON(w, http.StatusOK, types.ProcessResponse{OutputPath: "x.mp4"})
	}))
	defer srv.Close()

	clip := &video.Clip{ID: "gone", Name: "gone.mp4", Path: filepath.Join(t.TempDir(), "gone.mp4")}

	c := NewClient(srv.URL)
	if _, err := c.ProcessVideo(context.Background(), "x", []*video.Clip{clip}); err == nil {
		t.Fatal("expected an error when a clip cannot be opened")
	}
}

func TestProcessVideo_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url)
	_, err := c.ProcessVideo(context.Background(), "x", []*video.Clip{writeClip(t, "a.mp4", "a")})
	if err == nil || !strings.Contains(UserMessage(err), "failed to send request") {
		t.Fatalf("expected a transport error, got %v", err)
	}
}

func TestTaskStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/task-status/job%2F7" && r.URL.RawPath != "/api/task-status/job%2F7" {
			t.Errorf("path = %q raw = %q", r.URL.Path, r.URL.RawPath)
		}
		respondJSON(w, http.StatusOK, types.TaskStatusResponse{
			Status:   types.StatusCompleted,
			Message:  "done",
			VideoURL: "/static/final.mp4",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	status, err := c.TaskStatus(context.Background(), "job/7")
	if err != nil {
		t.Fatalf("TaskStatus failed: %v", err)
	}
	if status.Status != types.StatusCompleted || status.VideoURL != "/static/final.mp4" {
		t.Errorf("status = %+v", status)
	}
}

func TestTaskStatus_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(srv.URL, WithTimeouts(20*time.Millisecond, 0))
	if _, err := c.TaskStatus(context.Background(), "slow"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestVideoURL(t *testing.T) {
	c := NewClient("http://editor.local/")

	tests := []struct {
		outputPath string
		expected   string
	}{
		{"/srv/renders/abc/final.mp4", "http://editor.local/api/videos/final.mp4"},
		{"final.mp4", "http://editor.local/api/videos/final.mp4"},
		{`C:\renders\job 1\cut.mp4`, "http://editor.local/api/videos/cut.mp4"},
		{"renders/with space.mp4", "http://editor.local/api/videos/with%20space.mp4"},
		{"/renders/", "http://editor.local/api/videos/renders"},
		{"", ""},
		{"/", ""},
	}

	for _, test := range tests {
		if got := c.VideoURL(test.outputPath); got != test.expected {
			t.Errorf("VideoURL(%q) = %q, expected %q", test.outputPath, got, test.expected)
		}
	}
}

func TestResolveURL(t *testing.T) {
	c := NewClient("http://editor.local:8000")

	tests := []struct {
		locator  string
		expected string
	}{
		{"/static/out.mp4", "http://editor.local:8000/static/out.mp4"},
		{"static/out.mp4", "http://editor.local:8000/static/out.mp4"},
		{"https://cdn.example.com/out.mp4", "https://cdn.example.com/out.mp4"},
		{"s3://bucket/out.mp4", "s3://bucket/out.mp4"},
		{"", ""},
	}

	for _, test := range tests {
		if got := c.ResolveURL(test.locator); got != test.expected {
			t.Errorf("ResolveURL(%q) = %q, expected %q", test.locator, got, test.expected)
		}
	}
}

type fakeStore struct {
	objects map[string]string
}

func (f *fakeStore) Get(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	data, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return io.NopCloser(bytes.NewBufferString(data)), nil
}

func TestSaveResult_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/static/final.mp4" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("rendered"))
	}))
	defer srv.Close()

	dir := filepath.Join(t.TempDir(), "output")
	c := NewClient(srv.URL)

	path, err := c.SaveResult(context.Background(), "/static/final.mp4", dir)
	if err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}
	if path != filepath.Join(dir, "final.mp4") {
		t.Errorf("path = %q", path)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "rendered" {
		t.Errorf("content = %q", data)
	}

	if _, err := c.SaveResult(context.Background(), "/static/missing.mp4", dir); err == nil {
		t.Error("expected an error for a 404 result")
	}
}

func TestSaveResult_S3(t *testing.T) {
	store := &fakeStore{objects: map[string]string{"renders/jobs/42/final.mp4": "from-s3"}}
	dir := t.TempDir()

	c := NewClient("http://unused", WithObjectStore(store))
	path, err := c.SaveResult(context.Background(), "s3://renders/jobs/42/final.mp4", dir)
	if err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	if filepath.Base(path) != "final.mp4" || string(data) != "from-s3" {
		t.Errorf("saved %q with %q", path, data)
	}
}

func TestSaveResult_Unsupported(t *testing.T) {
	c := NewClient("http://unused")

	tests := []string{"", "s3://renders/final.mp4", "ftp://host/final.mp4"}
	for _, locator := range tests {
		if _, err := c.SaveResult(context.Background(), locator, t.TempDir()); !errors.Is(err, ErrUnsupportedLocator) {
			t.Errorf("SaveResult(%q) = %v, expected ErrUnsupportedLocator", locator, err)
		}
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"/a/b/c.mp4", "c.mp4"},
		{`a\b\c.mp4`, "c.mp4"},
		{"c.mp4", "c.mp4"},
		{"/a/b/", "b"},
		{"..", ""},
		{"", ""},
	}

	for _, test := range tests {
		if got := FileName(test.in); got != test.expected {
			t.Errorf("FileName(%q) = %q, expected %q", test.in, got, test.expected)
		}
	}
}
