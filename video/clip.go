package video

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"videoeditor/config"
)

// NewClip inspects a file on disk and returns a clip with a fresh identifier.
// The preview locator defaults to a file:// URL.
func NewClip(path string) (*Clip, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotVideo)
	}

	mediaType, err := DetectMediaType(abs)
	if err != nil {
		return nil, err
	}

	return &Clip{
		ID:         uuid.NewString(),
		Name:       filepath.Base(abs),
		Type:       mediaType,
		Size:       info.Size(),
		PreviewURL: fileURL(abs),
		Path:       abs,
	}, nil
}

// DetectMediaType sniffs the file content and falls back to the extension
// table when sniffing does not report a video type.
func DetectMediaType(path string) (string, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	detected := mtype.String()
	if idx := strings.Index(detected, ";"); idx >= 0 {
		detected = detected[:idx]
	}
	if strings.HasPrefix(detected, "video/") {
		return detected, nil
	}

	if byExt, ok := config.VideoExtensions[strings.ToLower(filepath.Ext(path))]; ok {
		return byExt, nil
	}

	return "", fmt.Errorf("%s (%s): %w", filepath.Base(path), detected, ErrNotVideo)
}

// DisplayName shortens long file names for list rendering
func (c *Clip) DisplayName() string {
	name := []rune(c.Name)
	if len(name) <= config.MaxClipNameLength {
		return c.Name
	}
	return string(name[:config.MaxClipNameLength-3]) + "..."
}

func fileURL(abs string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String()
}
