// Package hotkey owns the global shortcut subscription. The underlying
// hook library runs its listener on a background thread; the registered
// callback fires on that thread and must only delegate.
package hotkey

import (
	"errors"
	"sync"

	hook "github.com/robotn/gohook"

	"github.com/PieterBecking/whisper-app/internal/logging"
	"github.com/PieterBecking/whisper-app/internal/platform"
)

// Handle unregisters a hotkey subscription. Unregister is idempotent.
type Handle struct {
	once sync.Once
}

// Register installs the global toggle combo and starts the hook's event
// loop on its own goroutine. onTrigger runs on the hook thread: it must
// not block, only hand off to the orchestrator.
func Register(sc platform.Shortcut, onTrigger func()) (*Handle, error) {
	if onTrigger == nil {
		return nil, errors.New("hotkey: nil trigger callback")
	}

	combo := []string{sc.Key, sc.Modifier, sc.Secondary}
	hook.Register(hook.KeyDown, combo, func(e hook.Event) {
		onTrigger()
	})

	go func() {
		events := hook.Start()
		<-hook.Process(events)
		logging.Sugar.Debug("hotkey event loop stopped")
	}()

	logging.Sugar.Infow("global hotkey registered", "combo", sc.Display)
	return &Handle{}, nil
}

// Unregister stops the hook. Safe to call more than once.
func (h *Handle) Unregister() {
	h.once.Do(hook.End)
}
