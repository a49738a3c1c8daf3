package preview

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"videoeditor/video"
)

func testClip(t *testing.T, id, content string) *video.Clip {
	t.Helper()
	path := filepath.Join(t.TempDir(), id+".mp4")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write clip: %v", err)
	}
	return &video.Clip{ID: id, Name: id + ".mp4", Type: "video/mp4", Size: int64(len(content)), Path: path}
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServeClip(t *testing.T) {
	s := New(zaptest.NewLogger(t))
	clip := testClip(t, "abc", "clip-bytes")

	if u := s.Publish(clip); u != "/clips/abc" {
		t.Errorf("Publish = %q", u)
	}

	rec := get(t, s.Handler(), "/clips/abc")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != "clip-bytes" {
		t.Errorf("body = %q", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "video/mp4" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestRevoke(t *testing.T) {
	s := New(nil)
	s.Publish(testClip(t, "abc", "x"))
	s.Revoke("abc")

	if rec := get(t, s.Handler(), "/clips/abc"); rec.Code != http.StatusNotFound {
		t.Errorf("status after revoke = %d", rec.Code)
	}
	if rec := get(t, s.Handler(), "/clips/never"); rec.Code != http.StatusNotFound {
		t.Errorf("status for unknown clip = %d", rec.Code)
	}
}

func TestListClips(t *testing.T) {
	s := New(nil)
	clip := testClip(t, "abc", "12345")
	clip.Media = &video.MediaInfo{}
	s.Publish(clip)

	rec := get(t, s.Handler(), "/clips")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Clips []ClipInfo `json:"clips"`
		Count int        `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if body.Count != 1 || body.Clips[0].ID != "abc" || body.Clips[0].Size != 5 {
		t.Errorf("listing = %+v", body)
	}
	if body.Clips[0].SizeText != "5 B" {
		t.Errorf("SizeText = %q", body.Clips[0].SizeText)
	}
}

func TestHealth(t *testing.T) {
	rec := get(t, New(nil).Handler(), "/health")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "healthy") {
		t.Errorf("health = %d %s", rec.Code, rec.Body.String())
	}
}

func TestStart(t *testing.T) {
	s := New(zaptest.NewLogger(t))
	base, err := s.Start("127.0.0.1:0")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer s.Shutdown(context.Background())

	u := s.Publish(testClip(t, "live", "streamed"))
	if !strings.HasPrefix(u, base+"/clips/") {
		t.Fatalf("URL %q not under %q", u, base)
	}

	resp, err := http.Get(u)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(data) != "streamed" {
		t.Errorf("got %d %q", resp.StatusCode, data)
	}
}
