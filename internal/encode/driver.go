// Package encode implements the Encoder Driver (§4.9): the sequential
// frame loop, bounded in-flight queue, progress emission, and the
// ffmpeg-backed video/audio encode and MP4 mux.
package encode

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/bytebufferpool"

	"github.com/reelforge/compositor/internal/audio"
	"github.com/reelforge/compositor/internal/cache"
	"github.com/reelforge/compositor/internal/errs"
	"github.com/reelforge/compositor/internal/logging"
	"github.com/reelforge/compositor/internal/progress"
	"github.com/reelforge/compositor/internal/render"
	"github.com/reelforge/compositor/internal/sink"
	"github.com/reelforge/compositor/internal/timeline"
)

// defaultQueueDepth is G, the small in-flight frame bound §4.9 names.
const defaultQueueDepth = 5

// Driver owns the frame loop and every resource an export run touches:
// the media cache, the render dependencies, and the progress bus.
type Driver struct {
	FFmpegPath string
	Cache      *cache.MediaCache
	Mixer      *audio.Mixer
	RenderDeps render.Dependencies
	Bus        *progress.Bus
	Logger     *logging.Logger
	QueueDepth int
	TempDir    string
}

// Result summarizes a completed run for the caller, including the
// post-loop chunk-count check (§4.9).
type Result struct {
	OutputLocation    string
	FramesRequested   int64
	FramesEncoded     int64
	ChunkCountMatched bool
	Elapsed           time.Duration
}

// Run executes the full encoder driver loop against an already-validated
// model and settings, writing the result to byteSink.
func (d *Driver) Run(ctx context.Context, model *timeline.Model, settings timeline.ExportSettings, byteSink sink.ByteSink) (*Result, error) {
	queueDepth := d.QueueDepth
	if queueDepth <= 0 {
		queueDepth = defaultQueueDepth
	}

	d.Bus.Publish(progress.Event{Stage: progress.StageInitializing})

	hasAudio := hasAudioBearingElement(model)
	var audioWavPath string
	if hasAudio {
		mixed := d.Mixer.Mix(ctx, model, settings, d.Logger)
		audioWavPath = filepath.Join(d.TempDir, fmt.Sprintf("compositor-mix-%s.wav", uuid.NewString()))
		if err := writeMixedWav(audioWavPath, mixed, settings.AudioSampleRate); err != nil {
			return nil, &errs.EncoderError{Stage: "audio", Cause: err}
		}
		defer os.Remove(audioWavPath)
	}

	w, h := settings.EffectiveSize()
	outPath := filepath.Join(d.TempDir, fmt.Sprintf("compositor-export-%s.mp4", uuid.NewString()))
	defer os.Remove(outPath)

	fastStart := byteSink.FastStart() == sink.FastStartInMemory
	mux, err := startMuxProcess(ctx, muxConfig{
		FFmpegPath:      d.FFmpegPath,
		Width:           w,
		Height:          h,
		FPS:             settings.FPS,
		VideoBitrateBPS: settings.VideoBitrateBPS,
		HasAudio:        hasAudio,
		AudioWavPath:    audioWavPath,
		AudioBitrateBPS: settings.AudioBitrateBPS,
		SampleRate:      settings.AudioSampleRate,
		Channels:        settings.AudioChannels,
		FastStart:       fastStart,
		OutputPath:      outPath,
		KeyframeSeconds: 3,
	})
	if err != nil {
		return nil, &errs.UnsupportedEnvironmentError{Detail: err.Error()}
	}

	totalFrames := timeline.TotalFrames(model.Duration, settings.FPS) + 1

	var pool bytebufferpool.Pool
	queue := make(chan *bytebufferpool.ByteBuffer, queueDepth)
	writeErrCh := make(chan error, 1)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		var writeErr error
		for buf := range queue {
			if writeErr == nil {
				writeErr = mux.WriteFrame(buf.B)
			}
			pool.Put(buf)
		}
		writeErrCh <- writeErr
	}()

	start := time.Now()
	var k int64
	cancelled := false

frameLoop:
	for k = 0; k < totalFrames; k++ {
		select {
		case <-ctx.Done():
			cancelled = true
			break frameLoop
		default:
		}

		surface := render.RenderFrame(ctx, model, settings, k, d.RenderDeps)

		buf := pool.Get()
		buf.Reset()
		buf.Write(surface.Img.Pix)

		select {
		case queue <- buf:
		case <-ctx.Done():
			pool.Put(buf)
			cancelled = true
			break frameLoop
		}

		if k%10 == 0 || k == totalFrames-1 {
			d.publishProgress(k, totalFrames, start)
		}
	}

	close(queue)
	wg.Wait()
	writeErr := <-writeErrCh
	closeErr := mux.CloseAndWait()

	if cancelled {
		d.Bus.Publish(progress.Event{Stage: progress.StageError, CurrentFrame: k, TotalFrames: totalFrames, ErrorMessage: "cancelled"})
		return nil, &errs.CancelledError{AtFrame: k}
	}
	if writeErr != nil {
		d.Bus.Publish(progress.Event{Stage: progress.StageError, ErrorMessage: writeErr.Error()})
		return nil, &errs.EncoderError{Stage: "video", Cause: writeErr}
	}
	if closeErr != nil {
		d.Bus.Publish(progress.Event{Stage: progress.StageError, ErrorMessage: closeErr.Error()})
		return nil, &errs.EncoderError{Stage: "mux", Cause: closeErr}
	}

	d.Bus.Publish(progress.Event{Stage: progress.StageFinalizing, CurrentFrame: totalFrames, TotalFrames: totalFrames, Percentage: 100})

	encoded := mux.EncodedFrames()
	chunkMatch := encoded == totalFrames
	if !chunkMatch && d.Logger != nil {
		d.Logger.Warnf("encoded chunk count %d does not match expected %d; finalizing anyway", encoded, totalFrames)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, &errs.EncoderError{Stage: "mux", Cause: err}
	}
	location, err := byteSink.SaveBuffer(data)
	if err != nil {
		return nil, &errs.EncoderError{Stage: "mux", Cause: err}
	}

	d.Bus.Publish(progress.Event{Stage: progress.StageComplete, CurrentFrame: totalFrames, TotalFrames: totalFrames, Percentage: 100})

	return &Result{
		OutputLocation:    location,
		FramesRequested:   totalFrames,
		FramesEncoded:     encoded,
		ChunkCountMatched: chunkMatch,
		Elapsed:           time.Since(start),
	}, nil
}

func (d *Driver) publishProgress(k, total int64, start time.Time) {
	elapsed := time.Since(start).Seconds()
	pct := float64(k+1) / float64(total) * 100

	var eta, speed *float64
	if k > 0 && elapsed > 0 {
		rate := float64(k) / elapsed
		remaining := elapsed / float64(k) * float64(total-k)
		speed = &rate
		eta = &remaining
	}

	d.Bus.Publish(progress.Event{
		CurrentFrame:           k,
		TotalFrames:            total,
		Percentage:             pct,
		Stage:                  progress.StageProcessing,
		EstimatedTimeRemaining: eta,
		RenderSpeed:            speed,
	})
}

func hasAudioBearingElement(model *timeline.Model) bool {
	for _, tr := range model.Tracks {
		if tr.Muted {
			continue
		}
		for _, el := range tr.Elements {
			me, ok := el.(*timeline.MediaElement)
			if ok && (me.MediaKind == timeline.MediaKindAudio || me.MediaKind == timeline.MediaKindVideo) {
				return true
			}
		}
	}
	return false
}
