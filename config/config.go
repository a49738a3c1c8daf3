package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// PreviewDisabled turns the local preview server off when used as PREVIEW_ADDR
const PreviewDisabled = "off"

// Config holds runtime settings for the editor
type Config struct {
	APIURL        string
	PollInterval  time.Duration
	StatusTimeout time.Duration
	UploadTimeout time.Duration

	OutputDir   string
	PreviewAddr string
	ProbeClips  bool

	LogFile  string
	LogLevel string

	KafkaBrokers []string
	KafkaTopic   string

	S3Region       string
	S3Profile      string
	S3UsePathStyle bool
}

// Load reads the configuration from the environment, falling back to defaults
func Load() *Config {
	return &Config{
		APIURL:        strings.TrimRight(getEnv("VIDEO_API_URL", "http://localhost:8000"), "/"),
		PollInterval:  getEnvAsDuration("POLL_INTERVAL", DefaultPollInterval),
		StatusTimeout: getEnvAsDuration("STATUS_TIMEOUT", DefaultStatusTimeout),
		UploadTimeout: getEnvAsDuration("UPLOAD_TIMEOUT", DefaultUploadTimeout),

		OutputDir:   getEnv("OUTPUT_DIR", DefaultOutputDir),
		PreviewAddr: getEnv("PREVIEW_ADDR", "127.0.0.1:0"),
		ProbeClips:  getEnvAsBool("PROBE_CLIPS", true),

		LogFile:  getEnv("LOG_FILE", DefaultLogFile),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", DefaultKafkaTopic),

		S3Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
		S3Profile:      strings.TrimSpace(os.Getenv("S3_PROFILE")),
		S3UsePathStyle: getEnvAsBool("S3_USE_PATH_STYLE", false),
	}
}

// PreviewEnabled reports whether the local preview server should run
func (c *Config) PreviewEnabled() bool {
	return c.PreviewAddr != "" && !strings.EqualFold(c.PreviewAddr, PreviewDisabled)
}

// EventsEnabled reports whether lifecycle events go to Kafka
func (c *Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// splitList parses a comma separated list, dropping empty entries
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
