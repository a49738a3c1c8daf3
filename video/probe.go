package video

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ProbeFunc returns ffprobe JSON output for a file
type ProbeFunc func(path string) (string, error)

// FFProbe runs the ffprobe binary through ffmpeg-go
func FFProbe(path string) (string, error) {
	return ffmpeg.Probe(path)
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
		Duration  string `json:"duration"`
	} `json:"streams"`
}

// Probe reads duration, resolution and codec of a clip
func Probe(probe ProbeFunc, path string) (*MediaInfo, error) {
	raw, err := probe(path)
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}
	return ParseProbe(raw)
}

// ParseProbe extracts MediaInfo from ffprobe -show_format -show_streams JSON
func ParseProbe(raw string) (*MediaInfo, error) {
	var out probeOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	info := &MediaInfo{Duration: parseSeconds(out.Format.Duration)}
	for _, s := range out.Streams {
		if s.CodecType != "video" {
			continue
		}
		info.Codec = s.CodecName
		info.Width = s.Width
		info.Height = s.Height
		if info.Duration == 0 {
			info.Duration = parseSeconds(s.Duration)
		}
		break
	}

	if info.Codec == "" {
		return nil, ErrNotVideo
	}
	return info, nil
}

func parseSeconds(raw string) time.Duration {
	secs, err := strconv.ParseFloat(raw, 64)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}

// Resolution formats the frame size, or "" when unknown
func (m *MediaInfo) Resolution() string {
	if m == nil || m.Width == 0 || m.Height == 0 {
		return ""
	}
	return fmt.Sprintf("%dx%d", m.Width, m.Height)
}
