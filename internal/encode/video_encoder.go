package encode

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"sync/atomic"

	"github.com/reelforge/compositor/internal/ffmpegutil"
)

// muxProcess wraps a single ffmpeg invocation that reads raw RGBA frames
// on stdin and an optional WAV file, and writes a finished MP4. It plays
// the combined role of video encoder, audio encoder, and muxer (§4.9,
// §6.3): ffmpeg itself does the H.264/AAC encode and MP4 muxing, mirroring
// the desktop app's subprocess-driven approach to everything media
// (detectSilences.go, waveform.go) rather than hand-rolling a codec.
type muxProcess struct {
	stdin io.WriteCloser
	done  chan error

	encodedFrames atomic.Int64
}

var frameProgressRe = regexp.MustCompile(`frame=\s*(\d+)`)

type muxConfig struct {
	FFmpegPath      string
	Width, Height   int
	FPS             float64
	VideoBitrateBPS int
	HasAudio        bool
	AudioWavPath    string
	AudioBitrateBPS int
	SampleRate      int
	Channels        int
	FastStart       bool
	OutputPath      string
	KeyframeSeconds int
}

// startMuxProcess launches ffmpeg and returns a handle for feeding frames
// and later waiting for completion.
func startMuxProcess(ctx context.Context, cfg muxConfig) (*muxProcess, error) {
	args := []string{
		"-nostdin", "-y",
		"-f", "rawvideo", "-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"-r", fmt.Sprintf("%.6f", cfg.FPS),
		"-i", "-",
	}
	if cfg.HasAudio {
		args = append(args, "-i", cfg.AudioWavPath)
	}
	args = append(args,
		"-c:v", "libx264",
		"-profile:v", "high", "-level", "4.2",
		"-b:v", strconv.Itoa(cfg.VideoBitrateBPS),
		"-pix_fmt", "yuv420p",
		"-sc_threshold", "0",
		"-force_key_frames", fmt.Sprintf("expr:gte(t,n_forced*%d)", cfg.KeyframeSeconds),
	)
	if cfg.HasAudio {
		args = append(args,
			"-c:a", "aac",
			"-b:a", strconv.Itoa(cfg.AudioBitrateBPS),
			"-ar", strconv.Itoa(cfg.SampleRate),
			"-ac", strconv.Itoa(cfg.Channels),
		)
	} else {
		args = append(args, "-an")
	}
	if cfg.FastStart {
		args = append(args, "-movflags", "+faststart")
	}
	args = append(args, cfg.OutputPath)

	cmd := ffmpegutil.Command(ctx, cfg.FFmpegPath, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("open ffmpeg stdin: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("open ffmpeg stderr: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg mux process: %w", err)
	}

	mp := &muxProcess{stdin: stdin, done: make(chan error, 1)}
	go mp.scanProgress(stderr)
	go func() { mp.done <- cmd.Wait() }()
	return mp, nil
}

// scanProgress tails ffmpeg's stderr for "frame=" progress lines — the
// same bufio.Scanner + regexp idiom the desktop app uses to parse
// silencedetect output in detectSilences.go.
func (mp *muxProcess) scanProgress(r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if m := frameProgressRe.FindStringSubmatch(line); len(m) > 1 {
			if n, err := strconv.ParseInt(m[1], 10, 64); err == nil {
				mp.encodedFrames.Store(n)
			}
		}
	}
}

// WriteFrame writes one raw RGBA frame's bytes to ffmpeg's stdin.
func (mp *muxProcess) WriteFrame(pix []byte) error {
	_, err := mp.stdin.Write(pix)
	return err
}

// EncodedFrames returns the most recently observed encoded-frame count
// from ffmpeg's own progress output.
func (mp *muxProcess) EncodedFrames() int64 {
	return mp.encodedFrames.Load()
}

// CloseAndWait closes stdin (signaling end of input) and waits for ffmpeg
// to finish flushing and finalizing the container.
func (mp *muxProcess) CloseAndWait() error {
	closeErr := mp.stdin.Close()
	waitErr := <-mp.done
	if waitErr != nil {
		return fmt.Errorf("ffmpeg mux process failed: %w", waitErr)
	}
	return closeErr
}
