package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"VIDEO_API_URL", "POLL_INTERVAL", "STATUS_TIMEOUT", "UPLOAD_TIMEOUT",
		"OUTPUT_DIR", "PREVIEW_ADDR", "PROBE_CLIPS", "LOG_FILE", "LOG_LEVEL",
		"KAFKA_BROKERS", "KAFKA_TOPIC", "S3_USE_PATH_STYLE",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.APIURL != "http://localhost:8000" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.PollInterval != DefaultPollInterval {
		t.Errorf("PollInterval = %v, want %v", cfg.PollInterval, DefaultPollInterval)
	}
	if cfg.OutputDir != DefaultOutputDir {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if !cfg.ProbeClips {
		t.Error("expected clip probing to default on")
	}
	if !cfg.PreviewEnabled() {
		t.Error("expected preview server to default on")
	}
	if cfg.EventsEnabled() {
		t.Error("expected events to default off")
	}
	if cfg.KafkaTopic != DefaultKafkaTopic {
		t.Errorf("KafkaTopic = %q", cfg.KafkaTopic)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("VIDEO_API_URL", "https://editor.example.com/")
	t.Setenv("POLL_INTERVAL", "500ms")
	t.Setenv("PREVIEW_ADDR", "OFF")
	t.Setenv("PROBE_CLIPS", "false")
	t.Setenv("KAFKA_BROKERS", "k1:9092, ,k2:9092")
	t.Setenv("S3_USE_PATH_STYLE", "true")

	cfg := Load()

	if cfg.APIURL != "https://editor.example.com" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.APIURL)
	}
	if cfg.PollInterval != 500*time.Millisecond {
		t.Errorf("PollInterval = %v", cfg.PollInterval)
	}
	if cfg.PreviewEnabled() {
		t.Error("expected preview server disabled")
	}
	if cfg.ProbeClips {
		t.Error("expected probing disabled")
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Errorf("KafkaBrokers = %v", cfg.KafkaBrokers)
	}
	if !cfg.S3UsePathStyle {
		t.Error("expected path style addressing")
	}
}

func TestLoadIgnoresInvalidDuration(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "soon")
	t.Setenv("UPLOAD_TIMEOUT", "-1s")

	cfg := Load()

	if cfg.PollInterval != DefaultPollInterval {
		t.Errorf("PollInterval = %v", cfg.PollInterval)
	}
	if cfg.UploadTimeout != DefaultUploadTimeout {
		t.Errorf("UploadTimeout = %v", cfg.UploadTimeout)
	}
}
