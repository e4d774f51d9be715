// Command compositor runs one export end to end: load a project, a media
// library, and export settings from JSON files on disk, render every
// frame, and write the finished MP4 through a file sink. It is the CLI
// counterpart of the desktop app's App struct (app.go) — the same
// load-config/do-the-work/report-errors shape, without the Wails bindings.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/reelforge/compositor/internal/audio"
	"github.com/reelforge/compositor/internal/cache"
	"github.com/reelforge/compositor/internal/encode"
	"github.com/reelforge/compositor/internal/errs"
	"github.com/reelforge/compositor/internal/ffmpegutil"
	"github.com/reelforge/compositor/internal/logging"
	"github.com/reelforge/compositor/internal/progress"
	"github.com/reelforge/compositor/internal/render"
	"github.com/reelforge/compositor/internal/settingsio"
	"github.com/reelforge/compositor/internal/sink"
	"github.com/reelforge/compositor/internal/timeline"
)

func main() {
	var (
		projectPath = flag.String("project", "project.json", "path to the editor project JSON")
		libraryPath = flag.String("media", "media.json", "path to the media library JSON")
		canvasPath  = flag.String("canvas", "canvas.json", "path to the project canvas JSON")
		settingsPath = flag.String("settings", "settings.json", "path to the export settings JSON (created with defaults if missing)")
		outDir      = flag.String("out", "./out", "output directory for the rendered MP4")
		fontsDir    = flag.String("fonts", "./fonts", "directory of .ttf/.otf fonts referenced by text/subtitle elements")
		ffmpegPath  = flag.String("ffmpeg", "ffmpeg", "path to the ffmpeg binary")
		ffprobePath = flag.String("ffprobe", "ffprobe", "path to the ffprobe binary")
		fastStart   = flag.Bool("faststart", true, "repack the container for progressive playback")
	)
	flag.Parse()

	logger, closeLog, err := logging.New("compositor", "export")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(*projectPath, *libraryPath, *canvasPath, *settingsPath, *outDir, *fontsDir, *ffmpegPath, *ffprobePath, *fastStart, logger); err != nil {
		logger.Errorf("export failed: %v", err)
		os.Exit(1)
	}
}

func run(projectPath, libraryPath, canvasPath, settingsPath, outDir, fontsDir, ffmpegPath, ffprobePath string, fastStart bool, logger *logging.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if !ffmpegutil.BinaryExists(ctx, ffmpegPath) {
		return &errs.UnsupportedEnvironmentError{Detail: fmt.Sprintf("ffmpeg binary %q not found", ffmpegPath)}
	}
	if !ffmpegutil.BinaryExists(ctx, ffprobePath) {
		return &errs.UnsupportedEnvironmentError{Detail: fmt.Sprintf("ffprobe binary %q not found", ffprobePath)}
	}

	project, err := settingsio.LoadProject(projectPath)
	if err != nil {
		return err
	}
	library, err := settingsio.LoadMediaLibrary(libraryPath)
	if err != nil {
		return err
	}
	canvas, err := settingsio.LoadProjectCanvas(canvasPath)
	if err != nil {
		return err
	}
	settings, err := settingsio.LoadExportSettings(settingsPath)
	if err != nil {
		return err
	}

	model, dropped := timeline.Adapt(project, library, canvas)
	for _, d := range dropped {
		logger.Warnf("dropped element %s on track %s: %s", d.ElementID, d.TrackID, d.Reason)
	}

	model, err = timeline.Validate(model, settings, library)
	if err != nil {
		return err
	}

	mediaCache := cache.New(ffmpegPath, ffprobePath)
	defer mediaCache.Close()

	bus := progress.NewBus()
	logProgress(bus, logger)

	driver := &encode.Driver{
		FFmpegPath: ffmpegPath,
		Cache:      mediaCache,
		Mixer:      audio.NewMixer(mediaCache),
		RenderDeps: render.Dependencies{
			Cache:  mediaCache,
			Fonts:  render.NewFontProvider(fontsDir),
			Logger: logger,
		},
		Bus:     bus,
		Logger:  logger,
		TempDir: os.TempDir(),
	}

	fastStartMode := sink.FastStartOff
	if fastStart {
		fastStartMode = sink.FastStartInMemory
	}
	fileName := settings.OutputFileName
	if fileName == "" {
		fileName = "output.mp4"
	}
	byteSink := sink.NewFileSink(outDir, fileName, fastStartMode)

	result, err := driver.Run(ctx, model, settings, byteSink)
	if err != nil {
		return err
	}

	logger.Infof("export complete: %s (%d/%d frames, matched=%v, took %s)",
		result.OutputLocation, result.FramesEncoded, result.FramesRequested, result.ChunkCountMatched, result.Elapsed)
	return nil
}

// logProgress subscribes to the bus and logs each event, the CLI's
// stand-in for the websocket transport the server binary uses instead.
func logProgress(bus *progress.Bus, logger *logging.Logger) {
	id, ch := bus.Subscribe(32)
	go func() {
		defer bus.Unsubscribe(id)
		for ev := range ch {
			logger.Infof("[%s] frame %d/%d (%.1f%%)", ev.Stage, ev.CurrentFrame, ev.TotalFrames, ev.Percentage)
			if ev.Stage == progress.StageComplete || ev.Stage == progress.StageError {
				return
			}
		}
	}()
}
