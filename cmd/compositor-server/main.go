// Command compositor-server exposes the compositor over HTTP: POST /export
// starts a run from a JSON job description, and GET /progress/{id} upgrades
// to a websocket that streams that run's progress.Event stream (§6.5,
// §5.1). It mirrors the desktop app's own internal HTTP server
// (httpserver.go) — a single net/http.Server bound to a local port,
// generalized from serving WAV bytes to serving export jobs.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/reelforge/compositor/internal/audio"
	"github.com/reelforge/compositor/internal/cache"
	"github.com/reelforge/compositor/internal/encode"
	"github.com/reelforge/compositor/internal/logging"
	"github.com/reelforge/compositor/internal/progress"
	"github.com/reelforge/compositor/internal/render"
	"github.com/reelforge/compositor/internal/settingsio"
	"github.com/reelforge/compositor/internal/sink"
	"github.com/reelforge/compositor/internal/timeline"
)

// jobRequest is the POST /export body: paths to the JSON documents a run
// needs, plus where to write the result.
type jobRequest struct {
	ProjectPath  string `json:"projectPath"`
	MediaPath    string `json:"mediaPath"`
	CanvasPath   string `json:"canvasPath"`
	SettingsPath string `json:"settingsPath"`
	OutDir       string `json:"outDir"`
	FastStart    bool   `json:"fastStart"`
}

type jobResponse struct {
	JobID string `json:"jobId"`
}

// server holds every in-flight run's progress bus so a later websocket
// upgrade can find it.
type server struct {
	ffmpegPath  string
	ffprobePath string
	fontsDir    string
	logger      *logging.Logger

	mu   sync.Mutex
	jobs map[string]*progress.Bus
}

// progressDebounceWindow bounds how often a websocket client can be sent
// a progress frame, so a browser tab re-rendering a progress bar is never
// flooded faster than it can redraw (§5.1).
const progressDebounceWindow = 150 * time.Millisecond

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func main() {
	addr := flag.String("addr", "localhost:8787", "address to listen on")
	ffmpegPath := flag.String("ffmpeg", "ffmpeg", "path to the ffmpeg binary")
	ffprobePath := flag.String("ffprobe", "ffprobe", "path to the ffprobe binary")
	fontsDir := flag.String("fonts", "./fonts", "directory of fonts referenced by text/subtitle elements")
	flag.Parse()

	logger, closeLog, err := logging.New("compositor", "server")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	srv := &server{
		ffmpegPath:  *ffmpegPath,
		ffprobePath: *ffprobePath,
		fontsDir:    *fontsDir,
		logger:      logger,
		jobs:        make(map[string]*progress.Bus),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/export", srv.handleExport)
	mux.HandleFunc("/progress/", srv.handleProgress)

	logger.Infof("compositor-server listening on http://%s", *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		logger.Errorf("server stopped: %v", err)
		os.Exit(1)
	}
}

func (s *server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req jobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("bad request: %v", err), http.StatusBadRequest)
		return
	}

	jobID := uuid.NewString()
	bus := progress.NewBus()
	s.mu.Lock()
	s.jobs[jobID] = bus
	s.mu.Unlock()

	go s.runJob(jobID, req, bus)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(jobResponse{JobID: jobID})
}

func (s *server) handleProgress(w http.ResponseWriter, r *http.Request) {
	jobID := r.URL.Path[len("/progress/"):]
	s.mu.Lock()
	bus, ok := s.jobs[jobID]
	s.mu.Unlock()
	if !ok {
		http.Error(w, "unknown job id", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warnf("websocket upgrade failed for job %s: %v", jobID, err)
		return
	}
	defer conn.Close()

	progress.AttachDebounced(r.Context(), bus, conn, progressDebounceWindow)
}

func (s *server) runJob(jobID string, req jobRequest, bus *progress.Bus) {
	defer func() {
		s.mu.Lock()
		delete(s.jobs, jobID)
		s.mu.Unlock()
	}()

	logger := s.logger.With(fmt.Sprintf("job:%s", jobID))
	ctx := context.Background()

	project, err := settingsio.LoadProject(req.ProjectPath)
	if err != nil {
		logger.Errorf("load project: %v", err)
		bus.Publish(progress.Event{Stage: progress.StageError, ErrorMessage: err.Error()})
		return
	}
	library, err := settingsio.LoadMediaLibrary(req.MediaPath)
	if err != nil {
		logger.Errorf("load media library: %v", err)
		bus.Publish(progress.Event{Stage: progress.StageError, ErrorMessage: err.Error()})
		return
	}
	canvas, err := settingsio.LoadProjectCanvas(req.CanvasPath)
	if err != nil {
		logger.Errorf("load canvas: %v", err)
		bus.Publish(progress.Event{Stage: progress.StageError, ErrorMessage: err.Error()})
		return
	}
	settings, err := settingsio.LoadExportSettings(req.SettingsPath)
	if err != nil {
		logger.Errorf("load settings: %v", err)
		bus.Publish(progress.Event{Stage: progress.StageError, ErrorMessage: err.Error()})
		return
	}

	model, dropped := timeline.Adapt(project, library, canvas)
	for _, d := range dropped {
		logger.Warnf("dropped element %s on track %s: %s", d.ElementID, d.TrackID, d.Reason)
	}
	model, err = timeline.Validate(model, settings, library)
	if err != nil {
		logger.Errorf("validate: %v", err)
		bus.Publish(progress.Event{Stage: progress.StageError, ErrorMessage: err.Error()})
		return
	}

	mediaCache := cache.New(s.ffmpegPath, s.ffprobePath)
	defer mediaCache.Close()

	driver := &encode.Driver{
		FFmpegPath: s.ffmpegPath,
		Cache:      mediaCache,
		Mixer:      audio.NewMixer(mediaCache),
		RenderDeps: render.Dependencies{
			Cache:  mediaCache,
			Fonts:  render.NewFontProvider(s.fontsDir),
			Logger: logger,
		},
		Bus:     bus,
		Logger:  logger,
		TempDir: os.TempDir(),
	}

	fastStartMode := sink.FastStartOff
	if req.FastStart {
		fastStartMode = sink.FastStartInMemory
	}
	fileName := settings.OutputFileName
	if fileName == "" {
		fileName = "output.mp4"
	}
	byteSink := sink.NewFileSink(req.OutDir, fileName, fastStartMode)

	result, err := driver.Run(ctx, model, settings, byteSink)
	if err != nil {
		logger.Errorf("export failed: %v", err)
		return
	}
	logger.Infof("export complete: %s (%d/%d frames, matched=%v, took %s)",
		result.OutputLocation, result.FramesEncoded, result.FramesRequested, result.ChunkCountMatched, result.Elapsed)
}
