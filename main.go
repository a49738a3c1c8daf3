package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"videoeditor/client"
	"videoeditor/common"
	"videoeditor/config"
	"videoeditor/events"
	"videoeditor/logging"
	"videoeditor/preview"
	"videoeditor/tui"
	"videoeditor/video"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()
	cfg := config.Load()

	apiURL := flag.String("url", "", "Processing API base URL or preset (local, docker)")
	headless := flag.Bool("headless", false, "Run without the TUI: submit, wait and print the result")
	prompt := flag.String("prompt", "", "Editing instruction")
	save := flag.Bool("out", false, "Save the processed video into OUTPUT_DIR")
	flag.Parse()

	backend := cfg.APIURL
	if *apiURL != "" {
		backend = *apiURL
	}
	cfg.APIURL = strings.TrimRight(ResolveBackendURL(backend), "/")

	logOpts := logging.Options{File: cfg.LogFile, Level: cfg.LogLevel}
	if *headless {
		logOpts.File = "stderr"
	}
	logger, err := logging.New(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := newClient(ctx, cfg, logger)
	pub := newPublisher(cfg, logger)
	defer pub.Close()

	var probe video.ProbeFunc
	if cfg.ProbeClips {
		probe = video.FFProbe
	}

	if *headless {
		err := runHeadless(ctx, HeadlessOptions{
			API:          api,
			Events:       pub,
			Probe:        probe,
			Logger:       logger,
			PollInterval: cfg.PollInterval,
			Prompt:       *prompt,
			Paths:        flag.Args(),
			OutputDir:    cfg.OutputDir,
			Save:         *save,
		}, os.Stdout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	opts := tui.Options{
		API:          api,
		Events:       pub,
		Probe:        probe,
		Logger:       logger,
		PollInterval: cfg.PollInterval,
		OutputDir:    cfg.OutputDir,
		InitialClips: flag.Args(),
		Prompt:       *prompt,
	}

	var server *preview.Server
	if cfg.PreviewEnabled() {
		server = preview.New(logger)
		if _, err := server.Start(cfg.PreviewAddr); err != nil {
			logger.Warn("Preview server disabled", zap.Error(err))
			server = nil
		} else {
			opts.Preview = server
		}
	}

	program := tea.NewProgram(tui.NewModel(opts), tea.WithContext(ctx))

	logger.Info("Editor started", zap.String("api_url", api.BaseURL()))
	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Preview server shutdown failed", zap.Error(err))
		}
	}
}

// newClient builds the API client, with S3 access when the AWS chain is usable
func newClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) *client.Client {
	opts := []client.Option{
		client.WithTimeouts(cfg.StatusTimeout, cfg.UploadTimeout),
		client.WithLogger(logger),
	}

	store, err := common.NewS3(ctx, common.S3Config{
		Region:       cfg.S3Region,
		Profile:      cfg.S3Profile,
		UsePathStyle: cfg.S3UsePathStyle,
	})
	if err != nil {
		logger.Info("S3 not configured; s3:// results cannot be saved", zap.Error(err))
	} else {
		opts = append(opts, client.WithObjectStore(store))
	}

	return client.NewClient(cfg.APIURL, opts...)
}

// newPublisher connects to Kafka when brokers are configured
func newPublisher(cfg *config.Config, logger *zap.Logger) events.Publisher {
	if !cfg.EventsEnabled() {
		return events.Nop()
	}

	pub, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	if err != nil {
		logger.Warn("Kafka unavailable; lifecycle events disabled", zap.Error(err))
		return events.Nop()
	}
	logger.Info("Publishing lifecycle events",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic", cfg.KafkaTopic),
	)
	return pub
}
