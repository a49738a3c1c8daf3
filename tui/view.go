package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"videoeditor/config"
	"videoeditor/editor"
	"videoeditor/types"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(TextTitle))
	b.WriteString("\n")

	if m.pickerOpen {
		b.WriteString(SectionStyle.Render(TextPickerHeader))
		b.WriteString("\n\n")
		b.WriteString(m.picker.View())
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render(TextFooterPicker))
		return b.String()
	}

	b.WriteString(m.clipsView())
	b.WriteString("\n")

	b.WriteString(SectionStyle.Render(TextPromptLabel))
	b.WriteString("\n")
	b.WriteString(m.prompt.View())
	b.WriteString("\n\n")

	if m.warning != "" {
		b.WriteString(WarningStyle.Render("⚠ " + m.warning))
		b.WriteString("\n\n")
	}

	if state := m.stateView(); state != "" {
		b.WriteString(state)
		b.WriteString("\n\n")
	}

	if m.notice != "" {
		b.WriteString(InfoStyle.Render(m.notice))
		b.WriteString("\n\n")
	}

	if m.focus == FocusClips {
		b.WriteString(InfoStyle.Render(TextFooterClips))
	} else {
		b.WriteString(InfoStyle.Render(TextFooterPrompt))
	}
	return b.String()
}

func (m Model) clipsView() string {
	var b strings.Builder
	clips := m.Session.Clips

	header := TextClipsHeader
	if clips.Len() > 0 {
		header = fmt.Sprintf("%s (%d, %s)", TextClipsHeader, clips.Len(), humanize.Bytes(uint64(clips.TotalSize())))
	}
	b.WriteString(SectionStyle.Render(header))
	b.WriteString("\n")

	if clips.Len() == 0 {
		b.WriteString(InfoStyle.Render("  " + TextNoClips))
		b.WriteString("\n")
		return b.String()
	}

	for i, clip := range clips.All() {
		line := fmt.Sprintf("%s  %s  %s", clip.DisplayName(), humanize.Bytes(uint64(clip.Size)), clip.Type)
		if clip.Media != nil {
			line += fmt.Sprintf("  %s", clip.Media.Duration.Round(time.Second))
			if res := clip.Media.Resolution(); res != "" {
				line += "  " + res
			}
		}

		if m.focus == FocusClips && i == m.selected {
			b.WriteString(SelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
		if clip.PreviewURL != "" {
			b.WriteString(InfoStyle.Render("    " + clip.PreviewURL))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// stateView renders the job lifecycle area
func (m Model) stateView() string {
	s := m.Session
	switch s.Phase() {
	case editor.PhaseSubmitting:
		return m.spinner.View() + " " + StatusStyle.Render(TextSubmitting)
	case editor.PhaseProcessing:
		var b strings.Builder
		b.WriteString(m.spinner.View() + " " + StatusStyle.Render(TextProcessing))
		if s.Message() != "" {
			b.WriteString("  " + InfoStyle.Render(s.Message()))
		}
		b.WriteString("\n")
		b.WriteString(m.progress.ViewAs(float64(s.Progress()) / float64(config.ProgressMax)))
		return b.String()
	case editor.PhaseCompleted:
		return BoxStyle.Render(m.resultView())
	case editor.PhaseFailed:
		return ErrorStyle.Render("❌ Error: " + s.Err())
	}
	return ""
}

func (m Model) resultView() string {
	s := m.Session
	var b strings.Builder

	b.WriteString(HighlightStyle.Render(TextCompleted))
	b.WriteString("\n\n")
	b.WriteString(m.progress.ViewAs(1))
	b.WriteString("\n\n")

	if s.VideoURL() != "" {
		b.WriteString(fmt.Sprintf("Video: %s\n", StatusStyle.Render(s.VideoURL())))
	} else {
		b.WriteString(InfoStyle.Render(TextNoVideo) + "\n")
	}
	if s.Result() != "" {
		b.WriteString(fmt.Sprintf("\n%s\n", s.Result()))
	}
	if v := s.Verification(); v != nil {
		b.WriteString("\n")
		b.WriteString(verificationView(v))
	}
	if s.VideoURL() != "" {
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render(TextSaveHint))
	}
	return b.String()
}

func verificationView(v *types.VerificationRecord) string {
	var b strings.Builder
	b.WriteString(SectionStyle.Render(TextVerification))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  ID:     %s\n", v.VerificationID))
	if v.ChainURL != "" {
		b.WriteString(fmt.Sprintf("  Chain:  %s\n", v.ChainURL))
	}

	when := v.Timestamp
	if t, ok := v.Time(); ok {
		when = fmt.Sprintf("%s (%s)", t.Local().Format("2006-01-02 15:04:05"), humanize.Time(t))
	}
	if when != "" {
		b.WriteString(fmt.Sprintf("  Time:   %s\n", when))
	}

	if v.IsValid {
		b.WriteString("  Status: " + StatusStyle.Render(TextVerified) + "\n")
	} else {
		b.WriteString("  Status: " + ErrorStyle.Render(TextNotVerified) + "\n")
	}
	return b.String()
}
