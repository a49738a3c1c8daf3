package tui

import (
	"context"
	"os"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"videoeditor/config"
	"videoeditor/editor"
	"videoeditor/events"
	"videoeditor/types"
	"videoeditor/video"
)

// API is the part of the backend client the view needs
type API interface {
	ProcessVideo(ctx context.Context, prompt string, clips []*video.Clip) (*types.ProcessResponse, error)
	TaskStatus(ctx context.Context, taskID string) (*types.TaskStatusResponse, error)
	VideoURL(outputPath string) string
	ResolveURL(locator string) string
	SaveResult(ctx context.Context, locator, dir string) (string, error)
}

// ClipPublisher hands out preview locators for clips and revokes them
type ClipPublisher interface {
	Publish(clip *video.Clip) string
	Revoke(id string)
}

// Focus is the widget receiving key input
type Focus int

const (
	FocusPrompt Focus = iota
	FocusClips
)

// Options wires the model to its collaborators
type Options struct {
	API          API
	Preview      ClipPublisher
	Events       events.Publisher
	Probe        video.ProbeFunc
	Logger       *zap.Logger
	PollInterval time.Duration
	OutputDir    string
	StartDir     string
	InitialClips []string
	Prompt       string
}

// Model is the editor view
type Model struct {
	Session *editor.Session

	api          API
	preview      ClipPublisher
	events       events.Publisher
	probe        video.ProbeFunc
	logger       *zap.Logger
	pollInterval time.Duration
	outputDir    string
	initialClips []string

	prompt     textinput.Model
	spinner    spinner.Model
	progress   progress.Model
	picker     filepicker.Model
	pickerOpen bool

	focus    Focus
	selected int
	warning  string
	notice   string
	saving   bool
	width    int
}

// NewModel creates the editor view
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	interval := opts.PollInterval
	if interval <= 0 {
		interval = config.DefaultPollInterval
	}
	pub := opts.Events
	if pub == nil {
		pub = events.Nop()
	}

	ti := textinput.New()
	ti.Placeholder = TextPromptHint
	ti.Prompt = "› "
	ti.Width = 60
	ti.SetValue(opts.Prompt)
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = StatusStyle

	fp := filepicker.New()
	fp.AllowedTypes = videoExtensions()
	fp.CurrentDirectory = opts.StartDir
	if fp.CurrentDirectory == "" {
		if wd, err := os.Getwd(); err == nil {
			fp.CurrentDirectory = wd
		}
	}

	session := editor.NewSession()
	session.Prompt = opts.Prompt

	return Model{
		Session:      session,
		api:          opts.API,
		preview:      opts.Preview,
		events:       pub,
		probe:        opts.Probe,
		logger:       logger,
		pollInterval: interval,
		outputDir:    opts.OutputDir,
		initialClips: opts.InitialClips,
		prompt:       ti,
		spinner:      sp,
		progress:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		picker:       fp,
		focus:        FocusPrompt,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick}
	if len(m.initialClips) > 0 {
		cmds = append(cmds, loadClips(m.initialClips, m.probe, m.logger))
	}
	return tea.Batch(cmds...)
}

// Focus returns the widget receiving key input
func (m Model) Focus() Focus { return m.focus }

// PickerOpen returns true while the file picker is shown
func (m Model) PickerOpen() bool { return m.pickerOpen }

// Selected returns the index of the highlighted clip
func (m Model) Selected() int { return m.selected }

// Warning returns the last clip or submission warning
func (m Model) Warning() string { return m.warning }

// Notice returns the last informational line, such as a saved path
func (m Model) Notice() string { return m.notice }

func videoExtensions() []string {
	exts := make([]string, 0, len(config.VideoExtensions))
	for ext := range config.VideoExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
