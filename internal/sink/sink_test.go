package sink

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSinkSaveBufferWritesFile(t *testing.T) {
	dir := t.TempDir()
	s := NewFileSink(dir, "out.mp4", FastStartOff)

	if s.FastStart() != FastStartOff {
		t.Errorf("FastStart() = %q, want %q", s.FastStart(), FastStartOff)
	}

	data := []byte("fake mp4 bytes")
	path, err := s.SaveBuffer(data)
	if err != nil {
		t.Fatalf("SaveBuffer returned error: %v", err)
	}
	if path != filepath.Join(dir, "out.mp4") {
		t.Errorf("path = %q, want %q", path, filepath.Join(dir, "out.mp4"))
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back written file: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("content = %q, want %q", got, data)
	}
}

func TestFileSinkCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")
	s := NewFileSink(dir, "out.mp4", FastStartInMemory)

	if _, err := s.SaveBuffer([]byte("x")); err != nil {
		t.Fatalf("SaveBuffer should create missing directories: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out.mp4")); err != nil {
		t.Errorf("expected output file to exist: %v", err)
	}
}
