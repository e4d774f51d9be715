package ffmpegutil

import (
	"context"
	"testing"
)

func TestBinaryExistsEmptyPathIsFalse(t *testing.T) {
	if BinaryExists(context.Background(), "") {
		t.Error("empty path should never resolve")
	}
}

func TestBinaryExistsMissingBinaryIsFalse(t *testing.T) {
	if BinaryExists(context.Background(), "/definitely/not/a/real/binary/path") {
		t.Error("nonexistent binary path should be false")
	}
}

func TestProbeVideoAndAudioStream(t *testing.T) {
	p := &Probe{Streams: []ProbeStream{
		{CodecType: "video", CodecName: "h264", Width: 1920, Height: 1080},
		{CodecType: "audio", CodecName: "aac", SampleRate: "48000", Channels: 2},
	}}

	v, ok := p.VideoStream()
	if !ok || v.Width != 1920 {
		t.Errorf("VideoStream() = %+v, %v", v, ok)
	}
	a, ok := p.AudioStream()
	if !ok || a.Channels != 2 {
		t.Errorf("AudioStream() = %+v, %v", a, ok)
	}
}

func TestProbeMissingStreamKind(t *testing.T) {
	p := &Probe{Streams: []ProbeStream{{CodecType: "video"}}}
	if _, ok := p.AudioStream(); ok {
		t.Error("AudioStream() should report false when there is no audio stream")
	}
}
