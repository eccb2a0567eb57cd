package app

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/PieterBecking/whisper-app/internal/config"
	"github.com/PieterBecking/whisper-app/internal/logging"
	"github.com/PieterBecking/whisper-app/internal/paste"
	"github.com/PieterBecking/whisper-app/internal/platform"
	"github.com/PieterBecking/whisper-app/internal/record"
)

const notifyTitle = "Voice Transcriber"

// State is the recording cycle state. Transitions follow one linear cycle:
// Idle -> Recording -> Processing -> Idle.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateProcessing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateProcessing:
		return "processing"
	default:
		return "unknown"
	}
}

// Transcriber converts a recorded audio file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, filePath string) (string, error)
}

// Deliverer puts the transcript at the user's cursor.
type Deliverer interface {
	Deliver(text string)
}

// Orchestrator is the recording state machine. Toggle is called from the
// hotkey thread, the frame callback from the capture thread, and the
// processing tail runs on a single worker goroutine; the mutex guards the
// state and frame buffer across all three.
type Orchestrator struct {
	mu        sync.Mutex
	state     State
	accepting bool
	closed    bool
	frames    []record.Frame
	startedAt time.Time
	stream    record.Stream

	device     record.Device
	asr        Transcriber
	sink       Deliverer
	shim       platform.Shim
	notify     bool
	timeout    time.Duration
	sampleRate int

	// jobs has capacity one. A new recording cannot start while a cycle is
	// processing, so the send in Toggle never finds the slot occupied.
	jobs chan []record.Frame
	wg   sync.WaitGroup
}

// NewOrchestrator wires the state machine and starts its worker.
func NewOrchestrator(device record.Device, t Transcriber, sink Deliverer, shim platform.Shim, cfg config.Config) *Orchestrator {
	o := &Orchestrator{
		device:     device,
		asr:        t,
		sink:       sink,
		shim:       shim,
		notify:     cfg.Notification,
		timeout:    time.Duration(cfg.RequestTimeout) * time.Second,
		sampleRate: cfg.SampleRate,
		jobs:       make(chan []record.Frame, 1),
	}
	o.wg.Add(1)
	go o.worker()
	return o
}

// Toggle starts a recording from Idle, stops one from Recording, and is a
// no-op while the previous cycle is still processing.
func (o *Orchestrator) Toggle() {
	o.mu.Lock()
	switch o.state {
	case StateIdle:
		o.frames = nil
		o.accepting = true
		stream, err := o.device.Open(o.appendFrame)
		if err != nil {
			o.accepting = false
			o.mu.Unlock()
			logging.Sugar.Errorw("recording start failed", "error", err)
			o.notifyUser("Failed to start recording")
			return
		}
		o.stream = stream
		o.startedAt = time.Now()
		o.state = StateRecording
		o.mu.Unlock()

		logging.Sugar.Info("recording started")
		o.notifyUser("Recording started...")

	case StateRecording:
		stream := o.stream
		o.stream = nil
		o.state = StateProcessing
		started := o.startedAt
		// Close outside the lock: the capture thread may be blocked in
		// appendFrame, and Close waits for callbacks to drain.
		o.mu.Unlock()

		if stream != nil {
			if err := stream.Close(); err != nil {
				logging.Sugar.Warnw("capture close failed", "error", err)
			}
		}

		o.mu.Lock()
		o.accepting = false
		frames := o.frames
		o.frames = nil
		// The send happens under the mutex so it is ordered against Close
		// closing the channel. It cannot block: only one cycle is ever in
		// flight, so the single slot is free.
		if !o.closed {
			o.jobs <- frames
		}
		o.mu.Unlock()

		logging.Sugar.Infow("recording stopped",
			"frames", len(frames), "duration", time.Since(started).Round(time.Millisecond))
		o.notifyUser("Processing transcription...")

	case StateProcessing:
		o.mu.Unlock()
		logging.Sugar.Info("toggle ignored: previous recording still processing")
	}
}

// State returns the current cycle state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Close stops any active capture, lets an in-flight cycle finish, and
// shuts the worker down. A Toggle arriving from the hotkey thread during
// shutdown is a no-op. Safe to call more than once.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	stream := o.stream
	o.stream = nil
	o.accepting = false
	o.mu.Unlock()

	if stream != nil {
		_ = stream.Close()
	}

	o.mu.Lock()
	close(o.jobs)
	o.mu.Unlock()
	o.wg.Wait()
}

// appendFrame runs on the capture thread. Frames arriving outside an
// accepting window (late flushes after a zero-frame stop) are dropped.
func (o *Orchestrator) appendFrame(f record.Frame) {
	o.mu.Lock()
	if o.accepting {
		o.frames = append(o.frames, f)
	}
	o.mu.Unlock()
}

func (o *Orchestrator) worker() {
	defer o.wg.Done()
	for frames := range o.jobs {
		o.process(frames)
	}
}

// process runs the tail of one cycle: serialize, transcribe, deliver.
// The temp file lives exactly as long as the transcription attempt.
func (o *Orchestrator) process(frames []record.Frame) {
	defer o.setState(StateIdle)

	path, err := record.WriteTemp(frames, o.sampleRate)
	if err != nil {
		if errors.Is(err, record.ErrNoAudio) {
			logging.Sugar.Info("no audio captured, skipping transcription")
			o.notifyUser("No audio captured")
			return
		}
		logging.Sugar.Errorw("saving recording failed", "error", err)
		o.notifyUser("Error: could not save recording")
		return
	}
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logging.Sugar.Warnw("temp file cleanup failed", "path", path, "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	defer cancel()

	text, err := o.asr.Transcribe(ctx, path)
	if err != nil {
		logging.Sugar.Errorw("transcription failed", "error", err)
		o.notifyUser("Transcription failed")
		return
	}
	if text == "" {
		logging.Sugar.Warn("transcription returned empty text")
		o.notifyUser("Empty result from transcription")
		return
	}

	logging.Sugar.Infow("transcribed", "text", paste.Preview(text))
	o.sink.Deliver(text)
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

func (o *Orchestrator) notifyUser(message string) {
	if !o.notify {
		return
	}
	o.shim.ShowNotification(notifyTitle, message)
}
