package platform

import (
	"fmt"
	"os/exec"

	"github.com/PieterBecking/whisper-app/internal/logging"
)

// macShim drives notifications and the paste keystroke through osascript.
type macShim struct{}

func newMacShim() *macShim {
	return &macShim{}
}

func (*macShim) Name() string {
	return "macOS"
}

func (*macShim) ShowNotification(title, message string) {
	// %q quoting escapes double quotes the same way AppleScript expects.
	script := fmt.Sprintf("display notification %q with title %q", message, title)
	if err := exec.Command("osascript", "-e", script).Run(); err != nil {
		logging.Sugar.Debugw("notification failed", "error", err)
	}
}

func (*macShim) PasteKeystroke() {
	script := `tell application "System Events" to keystroke "v" using command down`
	if err := exec.Command("osascript", "-e", script).Run(); err != nil {
		logging.Sugar.Warnw("paste keystroke failed", "error", err)
	}
}

func (*macShim) Shortcut() Shortcut {
	return Shortcut{
		Modifier:  "cmd",
		Secondary: "shift",
		Key:       "space",
		Display:   "Cmd+Shift+Space",
	}
}
