package record

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/google/uuid"

	"github.com/PieterBecking/whisper-app/internal/logging"
)

const tempPrefix = "RecordTemp_"

// WriteTemp concatenates the recorded frames into an uncompressed PCM WAV
// file under the platform temp directory and returns its path. The caller
// owns the file and must remove it after the transcription attempt,
// success or failure. Zero captured frames yield ErrNoAudio and no file.
func WriteTemp(frames []Frame, sampleRate int) (string, error) {
	total := 0
	for _, f := range frames {
		total += f.Samples()
	}
	if total == 0 {
		return "", ErrNoAudio
	}

	data := make([]int, 0, total)
	for _, f := range frames {
		for i := 0; i+1 < len(f); i += 2 {
			data = append(data, int(int16(binary.LittleEndian.Uint16(f[i:]))))
		}
	}

	path := tempWavPath()
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create temp wav: %w", err)
	}

	enc := wav.NewEncoder(file, sampleRate, BitDepth, Channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: Channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		_ = file.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("wav write: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("wav close: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close temp wav: %w", err)
	}
	return path, nil
}

// StartupCleanup removes recording temp files left behind by a previous
// crash. Best-effort.
func StartupCleanup(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logging.Sugar.Debugw("temp cleanup: read dir failed", "dir", dir, "error", err)
		return
	}
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), tempPrefix) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if err := os.Remove(path); err != nil {
			logging.Sugar.Debugw("temp cleanup: remove failed", "path", path, "error", err)
		} else {
			logging.Sugar.Infow("removed stale temp file", "path", path)
		}
	}
}

func tempWavPath() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	return filepath.Join(os.TempDir(), fmt.Sprintf("%s%s.wav", tempPrefix, id))
}
