// Package ffmpegutil wraps ffmpeg/ffprobe subprocess invocation: the same
// os/exec.Command-with-hidden-window shim the desktop app used for its own
// ffmpeg calls, generalized into a shared helper rather than copy-pasted
// per caller.
package ffmpegutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
)

// Command builds an *exec.Cmd for name/arg. On windows builds this hides
// the console window (see command_windows.go); elsewhere it is a plain
// exec.Command.
func Command(ctx context.Context, name string, arg ...string) *exec.Cmd {
	return commandContext(ctx, name, arg...)
}

// BinaryExists reports whether path resolves to a runnable ffmpeg/ffprobe
// binary by invoking it with -version and discarding all output.
func BinaryExists(ctx context.Context, path string) bool {
	if path == "" {
		return false
	}
	cmd := Command(ctx, path, "-version")
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run() == nil
}

// Probe is the subset of `ffprobe -print_format json` output the
// compositor reads: stream dimensions, frame rate, duration, and codec
// kind, enough to populate a MediaLibraryEntry without decoding a frame.
type Probe struct {
	Streams []ProbeStream `json:"streams"`
	Format  ProbeFormat   `json:"format"`
}

type ProbeStream struct {
	CodecType     string `json:"codec_type"` // "video" | "audio"
	CodecName     string `json:"codec_name"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	RFrameRate    string `json:"r_frame_rate"`
	SampleRate    string `json:"sample_rate"`
	Channels      int    `json:"channels"`
	DurationStr   string `json:"duration"`
}

type ProbeFormat struct {
	DurationStr string `json:"duration"`
}

// RunProbe shells out to ffprobe and parses its JSON stream/format report.
func RunProbe(ctx context.Context, ffprobePath, filePath string) (*Probe, error) {
	args := []string{
		"-v", "error",
		"-print_format", "json",
		"-show_format", "-show_streams",
		filePath,
	}
	cmd := Command(ctx, ffprobePath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w. stderr: %s", err, stderr.String())
	}

	var p Probe
	if err := json.Unmarshal(stdout.Bytes(), &p); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}
	return &p, nil
}

// VideoStream returns the first video stream in the probe, if any.
func (p *Probe) VideoStream() (ProbeStream, bool) {
	for _, s := range p.Streams {
		if s.CodecType == "video" {
			return s, true
		}
	}
	return ProbeStream{}, false
}

// AudioStream returns the first audio stream in the probe, if any.
func (p *Probe) AudioStream() (ProbeStream, bool) {
	for _, s := range p.Streams {
		if s.CodecType == "audio" {
			return s, true
		}
	}
	return ProbeStream{}, false
}
