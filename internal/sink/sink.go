// Package sink implements the byte-sink contract (§6.2): the muxer's
// final MP4 bytes are handed to a sink that decides where they land and
// whether the container should be repacked for fast-start playback.
package sink

import (
	"fmt"
	"os"
	"path/filepath"
)

// FastStart is the closed set of fast-start declarations a byte-sink can
// make.
type FastStart string

const (
	FastStartInMemory FastStart = "in-memory"
	FastStartOff       FastStart = ""
)

// ByteSink is the core's only way of persisting an export's output.
type ByteSink interface {
	FastStart() FastStart
	SaveBuffer(data []byte) (string, error)
}

// FileSink writes the final MP4 to a file on disk, mirroring the desktop
// app's plain os.Create + io.Copy file-writing idiom (files.go's
// moveFile), generalized from "move an existing file" to "write a byte
// buffer".
type FileSink struct {
	dir       string
	fileName  string
	fastStart FastStart
}

// NewFileSink returns a sink that writes fileName under dir.
func NewFileSink(dir, fileName string, fastStart FastStart) *FileSink {
	return &FileSink{dir: dir, fileName: fileName, fastStart: fastStart}
}

func (f *FileSink) FastStart() FastStart { return f.fastStart }

func (f *FileSink) SaveBuffer(data []byte) (string, error) {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir %s: %w", f.dir, err)
	}
	path := filepath.Join(f.dir, f.fileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write output file %s: %w", path, err)
	}
	return path, nil
}
