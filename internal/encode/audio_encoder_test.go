package encode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

func TestWriteMixedWavProducesReadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mix.wav")
	mixed := [][]float32{
		{0, 0.5, -0.5, 1, -1},
		{0, -0.5, 0.5, -1, 1},
	}
	if err := writeMixedWav(path, mixed, 48000); err != nil {
		t.Fatalf("writeMixedWav returned error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to reopen written wav: %v", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		t.Fatal("written file is not a valid wav")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer returned error: %v", err)
	}
	if buf.Format.NumChannels != 2 {
		t.Errorf("NumChannels = %d, want 2", buf.Format.NumChannels)
	}
	if buf.Format.SampleRate != 48000 {
		t.Errorf("SampleRate = %d, want 48000", buf.Format.SampleRate)
	}
	if len(buf.Data) != len(mixed[0])*len(mixed) {
		t.Errorf("len(buf.Data) = %d, want %d", len(buf.Data), len(mixed[0])*len(mixed))
	}
}

func TestWriteMixedWavRejectsEmptyChannels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.wav")
	if err := writeMixedWav(path, nil, 48000); err == nil {
		t.Error("expected an error for a buffer with no channels")
	}
}
