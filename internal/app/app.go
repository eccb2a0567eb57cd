// Package app wires the components together and runs the process.
package app

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strings"
	"syscall"
	"time"

	"golang.org/x/net/http2"

	"github.com/PieterBecking/whisper-app/internal/asr"
	"github.com/PieterBecking/whisper-app/internal/config"
	"github.com/PieterBecking/whisper-app/internal/hotkey"
	"github.com/PieterBecking/whisper-app/internal/paste"
	"github.com/PieterBecking/whisper-app/internal/platform"
	"github.com/PieterBecking/whisper-app/internal/record"
)

// Run starts the transcriber and blocks until an interrupt arrives.
func Run(cfg config.Config) error {
	shim, err := platform.New(runtime.GOOS)
	if err != nil {
		return err
	}

	record.StartupCleanup(os.TempDir())
	printBanner(shim)

	sink := paste.New(shim, time.Duration(cfg.SettleDelayMS)*time.Millisecond, cfg.Notification)
	asrClient := asr.New(cfg, newHTTPClient(cfg))
	device := record.NewPortAudioDevice(cfg.SampleRate, cfg.ChunkSize)
	orch := NewOrchestrator(device, asrClient, sink, shim, cfg)
	defer orch.Close()

	handle, err := hotkey.Register(shim.Shortcut(), orch.Toggle)
	if err != nil {
		return fmt.Errorf("register hotkey: %w", err)
	}
	defer handle.Unregister()

	fmt.Println("[main] ready. Press the shortcut to toggle recording; Ctrl+C to quit.")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	fmt.Println("\n[main] shutting down...")
	return nil
}

func printBanner(shim platform.Shim) {
	fmt.Printf("[main] platform: %s\n", shim.Name())
	fmt.Printf("[main] shortcut: %s\n", shim.Shortcut().Display)

	// Linux reports its optional helper tools so missing setup is obvious
	// before the first recording.
	if tl, ok := shim.(interface{ Tools() map[string]bool }); ok {
		var available []string
		for name, present := range tl.Tools() {
			if present {
				available = append(available, name)
			}
		}
		if len(available) == 0 {
			fmt.Println("[main] warning: no desktop helper tools detected; install:")
			fmt.Println("[main]   sudo apt install libnotify-bin xdotool   # X11")
			fmt.Println("[main]   sudo apt install libnotify-bin ydotool   # Wayland")
			return
		}
		sort.Strings(available)
		fmt.Printf("[main] helper tools available: %s\n", strings.Join(available, ", "))
	}
}

func newHTTPClient(cfg config.Config) *http.Client {
	tr := &http.Transport{
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	if !cfg.VerifySSL {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	if cfg.EnableHTTP2 {
		_ = http2.ConfigureTransport(tr)
	}
	return &http.Client{
		Transport: tr,
		Timeout:   time.Duration(cfg.RequestTimeout) * time.Second,
	}
}
