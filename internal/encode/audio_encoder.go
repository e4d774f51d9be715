package encode

import (
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// writeMixedWav writes a planar float32 PCM buffer out as 16-bit PCM WAV,
// using go-audio/wav's encoder — the write-side counterpart to the
// decode-side use of the same library in internal/cache/audio_decode.go
// (itself grounded on the desktop app's waveform.go). ffmpeg reads this
// file as the mux process's audio input.
func writeMixedWav(path string, mixed [][]float32, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mixed audio temp file %s: %w", path, err)
	}
	defer f.Close()

	channels := len(mixed)
	if channels == 0 {
		return fmt.Errorf("mixed audio buffer has no channels")
	}
	frames := len(mixed[0])

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	ints := make([]int, frames*channels)
	for i := 0; i < frames; i++ {
		for c := 0; c < channels; c++ {
			ints[i*channels+c] = int(mixed[c][i] * 32767)
		}
	}

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           ints,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("write mixed pcm to %s: %w", path, err)
	}
	return enc.Close()
}
