package tui

// UI text
const (
	TextTitle         = "🎬 AI Video Editor"
	TextClipsHeader   = "Clips"
	TextNoClips       = "No clips yet. Press ctrl+o to add videos."
	TextPromptLabel   = "Editing instruction"
	TextPromptHint    = "e.g. Cut the silent parts and add a fade between clips"
	TextPickerHeader  = "Select a video (enter to add, esc to close)"
	TextSubmitting    = "Uploading clips..."
	TextProcessing    = "Processing video..."
	TextCompleted     = "✅ Video ready"
	TextNoVideo       = "The backend did not return a video."
	TextVerification  = "Blockchain verification"
	TextVerified      = "valid"
	TextNotVerified   = "not valid"
	TextSaveHint      = "Press ctrl+d to save the video"
	TextFooterPrompt  = "tab: clips | ctrl+o: add | ctrl+s/enter: process | ctrl+c: quit"
	TextFooterClips   = "tab: prompt | ↑/↓: select | d: remove | ctrl+o: add | ctrl+s: process | q: quit"
	TextFooterPicker  = "↑/↓: move | enter: select | esc: close"
)
