// Package record owns the microphone stream and the on-disk WAV form of a
// finished recording. Capture runs in callback mode: PortAudio invokes the
// frame callback on its own thread at a fixed cadence for as long as the
// stream is open.
package record

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// Default capture format. The sample rate and frame size can be overridden
// through the config; channel count and bit depth are fixed.
const (
	SampleRate   = 16000
	Channels     = 1
	BitDepth     = 16
	FrameSamples = 1024
)

var (
	// ErrDeviceUnavailable wraps any failure to open the input device.
	ErrDeviceUnavailable = errors.New("audio input device unavailable")
	// ErrNoAudio is reported when a recording produced zero frames.
	ErrNoAudio = errors.New("no audio captured")
)

// Frame is one chunk of little-endian 16-bit PCM samples. Frames are never
// mutated after the capture callback hands them out.
type Frame []byte

// Samples returns the number of samples in the frame.
func (f Frame) Samples() int { return len(f) / 2 }

// Stream is an open capture session. Close stops the hardware stream,
// flushes in-flight callbacks, and releases the device.
type Stream interface {
	Close() error
}

// Device opens microphone streams. onFrame is invoked from the capture
// thread and must not block on I/O.
type Device interface {
	Open(onFrame func(Frame)) (Stream, error)
}

// PortAudioDevice is the real microphone backed by PortAudio.
type PortAudioDevice struct {
	SampleRate   int
	FrameSamples int
}

// NewPortAudioDevice returns a device capturing at the given sample rate
// and frame size. The same rate must be used when serializing the frames,
// or the WAV header will lie about playback speed.
func NewPortAudioDevice(sampleRate, frameSamples int) *PortAudioDevice {
	return &PortAudioDevice{SampleRate: sampleRate, FrameSamples: frameSamples}
}

// Open initializes PortAudio and starts a callback-mode input stream.
// Every failure path tears PortAudio back down so a later attempt starts
// clean.
func (d *PortAudioDevice) Open(onFrame func(Frame)) (Stream, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	cb := func(in []int16) {
		f := make(Frame, len(in)*2)
		for i, s := range in {
			binary.LittleEndian.PutUint16(f[i*2:], uint16(s))
		}
		onFrame(f)
	}

	stream, err := portaudio.OpenDefaultStream(Channels, 0, float64(d.SampleRate), d.FrameSamples, cb)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	return &paStream{stream: stream}, nil
}

type paStream struct {
	stream *portaudio.Stream
	once   sync.Once
	err    error
}

func (s *paStream) Close() error {
	s.once.Do(func() {
		// Stop blocks until pending callbacks have drained.
		err := s.stream.Stop()
		if cerr := s.stream.Close(); err == nil {
			err = cerr
		}
		if terr := portaudio.Terminate(); err == nil {
			err = terr
		}
		s.err = err
	})
	return s.err
}
