// Package paste delivers a transcript to the user's cursor: clipboard
// write, settle delay, paste keystroke, notification. Nothing in here
// propagates errors; partial delivery (text on the clipboard but no
// keystroke) is acceptable and surfaced to the user.
package paste

import (
	"time"

	"github.com/atotto/clipboard"

	"github.com/PieterBecking/whisper-app/internal/logging"
	"github.com/PieterBecking/whisper-app/internal/platform"
)

const notifyTitle = "Voice Transcriber"

// previewLimit caps the transcript preview shown in notifications.
const previewLimit = 50

// Clipboard abstracts the system clipboard write.
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Sink pastes transcripts at the cursor via the platform shim.
type Sink struct {
	shim   platform.Shim
	clip   Clipboard
	settle time.Duration
	notify bool
}

// New creates a sink using the real system clipboard. settle is the delay
// between the clipboard write and the paste keystroke; some clipboard
// managers need the gap before the new content is visible to the paste.
func New(shim platform.Shim, settle time.Duration, notify bool) *Sink {
	return &Sink{shim: shim, clip: systemClipboard{}, settle: settle, notify: notify}
}

// Deliver writes text to the clipboard and triggers the paste keystroke.
// The clipboard write always happens strictly before the keystroke.
func (s *Sink) Deliver(text string) {
	if err := s.clip.WriteAll(text); err != nil {
		logging.Sugar.Errorw("clipboard write failed", "error", err)
		s.notifyUser("Paste failed: clipboard unavailable")
		return
	}

	time.Sleep(s.settle)
	s.shim.PasteKeystroke()

	logging.Sugar.Infow("transcript pasted", "chars", len(text))
	s.notifyUser("Pasted: " + Preview(text))
}

func (s *Sink) notifyUser(message string) {
	if !s.notify {
		return
	}
	s.shim.ShowNotification(notifyTitle, message)
}

// Preview truncates a transcript for notification display.
func Preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLimit {
		return text
	}
	return string(runes[:previewLimit]) + "..."
}
