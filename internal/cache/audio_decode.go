package cache

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-audio/wav"

	"github.com/reelforge/compositor/internal/ffmpegutil"
)

// DecodedAudio is a fully-decoded PCM buffer, one float32 slice per channel,
// normalized to [-1, 1]. This is the "decode fully into a buffer at the
// source's native sample rate and channel count" output §4.10 step 1 asks
// for; resampling and mixing happen downstream in internal/audio.
type DecodedAudio struct {
	SampleRate int
	Channels   int
	Samples    [][]float32 // Samples[channel][frame]
}

// NumFrames returns the number of sample frames in the buffer.
func (d *DecodedAudio) NumFrames() int {
	if len(d.Samples) == 0 {
		return 0
	}
	return len(d.Samples[0])
}

// DurationSeconds returns the buffer's duration at its native sample rate.
func (d *DecodedAudio) DurationSeconds() float64 {
	if d.SampleRate == 0 {
		return 0
	}
	return float64(d.NumFrames()) / float64(d.SampleRate)
}

// DecodeAudioFile shells out to ffmpeg to transcode any source format to
// 16-bit PCM WAV on stdout, then parses it with go-audio/wav exactly as the
// desktop app's waveform.go does for on-disk WAV files — generalized here
// from a file path to a subprocess pipe so any ffmpeg-readable container
// can feed the mixer.
func DecodeAudioFile(ctx context.Context, ffmpegPath, path string) (*DecodedAudio, error) {
	args := []string{
		"-nostdin", "-i", path,
		"-vn",
		"-f", "wav", "-acodec", "pcm_s16le",
		"-",
	}
	cmd := ffmpegutil.Command(ctx, ffmpegPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg decode audio failed for %s: %w. stderr: %s", path, err, stderr.String())
	}

	decoder := wav.NewDecoder(bytes.NewReader(stdout.Bytes()))
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%s: ffmpeg produced an invalid wav stream", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("read pcm buffer for %s: %w", path, err)
	}
	format := buf.Format
	if format == nil || format.NumChannels == 0 {
		return nil, fmt.Errorf("%s: wav stream reported no channels", path)
	}

	channels := format.NumChannels
	frames := len(buf.Data) / channels
	planar := make([][]float32, channels)
	for c := range planar {
		planar[c] = make([]float32, frames)
	}
	for i, v := range buf.Data {
		if i/channels >= frames {
			break
		}
		planar[i%channels][i/channels] = float32(v) / 32768.0
	}

	return &DecodedAudio{
		SampleRate: format.SampleRate,
		Channels:   channels,
		Samples:    planar,
	}, nil
}
