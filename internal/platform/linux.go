package platform

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/PieterBecking/whisper-app/internal/logging"
)

// pasteTools are probed in order at construction; the first one found wins.
var pasteTools = []string{"xdotool", "ydotool"}

// linuxShim shells out to external helpers: notify-send for notifications
// and xdotool or ydotool for the paste keystroke. All helpers are optional
// and presence-checked once when the shim is built.
type linuxShim struct {
	name        string
	hasNotifier bool
	pasteTool   string
}

func newLinuxShim() *linuxShim {
	s := &linuxShim{name: prettyName("/etc/os-release")}
	if _, err := exec.LookPath("notify-send"); err == nil {
		s.hasNotifier = true
	}
	for _, tool := range pasteTools {
		if _, err := exec.LookPath(tool); err == nil {
			s.pasteTool = tool
			break
		}
	}
	return s
}

func (s *linuxShim) Name() string {
	return s.name
}

func (s *linuxShim) ShowNotification(title, message string) {
	if !s.hasNotifier {
		fmt.Printf("[notify] %s: %s\n", title, message)
		return
	}
	cmd := exec.Command("notify-send",
		"--app-name=Voice Transcriber",
		"--urgency=normal",
		title, message)
	if err := cmd.Run(); err != nil {
		logging.Sugar.Debugw("notify-send failed", "error", err)
		fmt.Printf("[notify] %s: %s\n", title, message)
	}
}

func (s *linuxShim) PasteKeystroke() {
	if s.pasteTool == "" {
		fmt.Println("[paste] no key simulation tool available; install one of:")
		fmt.Println("[paste]   sudo apt install xdotool   # X11")
		fmt.Println("[paste]   sudo apt install ydotool   # Wayland")
		return
	}
	if err := exec.Command(s.pasteTool, "key", "ctrl+v").Run(); err != nil {
		logging.Sugar.Warnw("paste keystroke failed", "tool", s.pasteTool, "error", err)
	}
}

func (s *linuxShim) Shortcut() Shortcut {
	return Shortcut{
		Modifier:  "ctrl",
		Secondary: "shift",
		Key:       "space",
		Display:   "Ctrl+Shift+Space",
	}
}

// Tools reports which optional helper commands are present, for the
// startup hint block.
func (s *linuxShim) Tools() map[string]bool {
	tools := map[string]bool{
		"notify-send": s.hasNotifier,
		"xdotool":     false,
		"ydotool":     false,
	}
	if s.pasteTool != "" {
		tools[s.pasteTool] = true
	}
	return tools
}

// prettyName reads PRETTY_NAME from an os-release file, falling back to
// plain "Linux" when the file or the field is missing.
func prettyName(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return "Linux"
	}
	var name string
	for _, line := range strings.Split(string(b), "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"`)
		switch key {
		case "PRETTY_NAME":
			return value
		case "NAME":
			name = value
		}
	}
	if name != "" {
		return name
	}
	return "Linux"
}
