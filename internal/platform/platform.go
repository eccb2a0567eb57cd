// Package platform supplies the OS-specific primitives the transcriber
// needs: desktop notifications, the paste keystroke, and the global
// shortcut mapping. One Shim is selected at startup and shared read-only
// afterwards.
package platform

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned when the host OS has no shim implementation.
var ErrUnsupported = errors.New("unsupported platform")

// Shortcut describes the global toggle key combination for a platform.
type Shortcut struct {
	Modifier  string
	Secondary string
	Key       string
	Display   string
}

// Shim is the platform capability surface. ShowNotification and
// PasteKeystroke are best-effort: failures are logged, never returned.
type Shim interface {
	// Name returns a human-readable platform name for the banner.
	Name() string
	ShowNotification(title, message string)
	PasteKeystroke()
	Shortcut() Shortcut
}

// New selects the shim for the given GOOS value. An unrecognized OS is a
// fatal configuration error, not a degraded mode.
func New(goos string) (Shim, error) {
	switch goos {
	case "darwin":
		return newMacShim(), nil
	case "linux":
		return newLinuxShim(), nil
	default:
		return nil, fmt.Errorf("%w: %q (only macOS and Linux are supported)", ErrUnsupported, goos)
	}
}
