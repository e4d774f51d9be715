// Package timeline holds the pure data model described by the compositor's
// timeline spec: tracks, elements of four kinds, and the export settings
// that size and pace the render. Nothing in this package performs I/O or
// mutates a model after it has been validated — see validate.go for the one
// place a model is touched before a run begins.
package timeline

import (
	"fmt"
	"image/color"
)

// BlendMode is the closed set of per-element/per-track compositing modes.
type BlendMode string

const (
	BlendSourceOver BlendMode = "source-over"
	BlendMultiply   BlendMode = "multiply"
	BlendScreen     BlendMode = "screen"
	BlendOverlay    BlendMode = "overlay"
)

// TrackKind is the closed set of track kinds. Text tracks are promoted above
// non-text tracks in render order regardless of their index (§4.2).
type TrackKind string

const (
	TrackKindMedia    TrackKind = "media"
	TrackKindText     TrackKind = "text"
	TrackKindAudio    TrackKind = "audio"
	TrackKindEffect   TrackKind = "effect"
	TrackKindOverlay  TrackKind = "overlay"
	TrackKindSubtitle TrackKind = "subtitle"
)

// ElementKind identifies which concrete element variant a base element
// holds. Dispatch on this field replaces virtual method dispatch per §9.
type ElementKind string

const (
	ElementKindMedia    ElementKind = "media"
	ElementKindText     ElementKind = "text"
	ElementKindOverlay  ElementKind = "overlay"
	ElementKindSubtitle ElementKind = "subtitle"
)

// Base holds the fields common to every element kind and the active-interval
// math every renderer and the validator share.
type Base struct {
	ID        string    `json:"id"`
	StartTime float64   `json:"startTime"`
	Duration  float64   `json:"duration"`
	TrimStart float64   `json:"trimStart"`
	TrimEnd   float64   `json:"trimEnd"`
	Opacity   float64   `json:"opacity"`
	Blend     BlendMode `json:"blendMode"`

	// ActiveFrameRange is [k0, k1) in output frame units. It is derived,
	// not authoritative, and is only valid after Validate has run against
	// the ExportSettings the run will use (§3.1 of the expanded spec).
	ActiveFrameRange [2]int64 `json:"-"`
}

// DefaultBase fills in the two fields that have defaults per the data model
// table: opacity=1, blend=source-over.
func DefaultBase(id string, startTime, duration, trimStart, trimEnd float64) Base {
	return Base{
		ID:        id,
		StartTime: startTime,
		Duration:  duration,
		TrimStart: trimStart,
		TrimEnd:   trimEnd,
		Opacity:   1,
		Blend:     BlendSourceOver,
	}
}

// ActiveInterval returns the half-open [start, end) interval during which
// the element contributes to output.
func (b Base) ActiveInterval() (start, end float64) {
	return b.StartTime, b.StartTime + b.Duration - b.TrimStart - b.TrimEnd
}

// IsActiveAt reports whether t falls in the element's active interval. The
// end boundary is exclusive: t == end is NOT active (§9 Open Question 1,
// preserved per SPEC_FULL.md §10.1).
func (b Base) IsActiveAt(t float64) bool {
	start, end := b.ActiveInterval()
	return t >= start && t < end
}

// LocalTime translates global timeline time into the element's own source
// time base, accounting for startTime and trimStart.
func (b Base) LocalTime(t float64) float64 {
	return t - b.StartTime + b.TrimStart
}

// Element is implemented by MediaElement, TextElement, OverlayElement, and
// SubtitleElement.
type Element interface {
	Base() *Base
	Kind() ElementKind
}

// MediaKind distinguishes what a MediaElement's referenced asset is.
type MediaKind string

const (
	MediaKindVideo MediaKind = "video"
	MediaKindImage MediaKind = "image"
	MediaKindAudio MediaKind = "audio"
)

// ByteSource is the adapter-supplied handle to a media asset's bytes: either
// a local file path or a remote URL. Exactly one should be set.
type ByteSource struct {
	FilePath string `json:"filePath,omitempty"`
	URL      string `json:"url,omitempty"`
}

func (s ByteSource) IsZero() bool { return s.FilePath == "" && s.URL == "" }

// MediaElement draws a decoded video/image asset, or contributes audio-only
// samples to the mixer.
type MediaElement struct {
	BaseFields Base
	MediaID    string     `json:"mediaId"`
	MediaKind  MediaKind  `json:"mediaKind"`
	Source     ByteSource `json:"source"`
	Intrinsic  struct {
		Width  int `json:"width,omitempty"`
		Height int `json:"height,omitempty"`
	} `json:"intrinsic,omitempty"`
}

func (m *MediaElement) Base() *Base          { return &m.BaseFields }
func (m *MediaElement) Kind() ElementKind    { return ElementKindMedia }

// TextAlign is the closed set of horizontal text justifications.
type TextAlign string

const (
	TextAlignLeft   TextAlign = "left"
	TextAlignCenter TextAlign = "center"
	TextAlignRight  TextAlign = "right"
)

// TextElement renders styled text with canvas-center-origin coordinates.
type TextElement struct {
	BaseFields      Base
	Content         string    `json:"content"`
	FontFamily      string    `json:"fontFamily"`
	FontSize        float64   `json:"fontSize"`
	Weight          string    `json:"weight"`
	Style           string    `json:"style"`
	Decoration      string    `json:"decoration"` // "", "underline", "line-through"
	Color           color.RGBA
	Background      *color.RGBA // nil means "transparent"
	TextAlign       TextAlign   `json:"textAlign"`
	X               float64     `json:"x"`
	Y               float64     `json:"y"`
	RotationDegrees float64     `json:"rotation"`
}

func (t *TextElement) Base() *Base       { return &t.BaseFields }
func (t *TextElement) Kind() ElementKind { return ElementKindText }

// OverlayKind is the closed set of overlay element variants.
type OverlayKind string

const (
	OverlayKindShape   OverlayKind = "shape"
	OverlayKindImage   OverlayKind = "image"
	OverlayKindPattern OverlayKind = "pattern"
)

// PatternName is the closed enum of procedural overlay patterns.
type PatternName string

const (
	PatternDots         PatternName = "dots"
	PatternStripes      PatternName = "stripes"
	PatternCheckerboard PatternName = "checkerboard"
	PatternSolid        PatternName = "solid"
)

// OverlayElement draws a shape, image, or procedural pattern centered on
// (X, Y) in pixel coordinates, top-left canvas origin.
type OverlayElement struct {
	BaseFields      Base
	OverlayKind     OverlayKind `json:"overlayKind"`
	Source          string      `json:"source"` // color, URL, or pattern name
	X               float64     `json:"x"`
	Y               float64     `json:"y"`
	Width           float64     `json:"width"`
	Height          float64     `json:"height"`
	RotationDegrees float64     `json:"rotation"`
}

func (o *OverlayElement) Base() *Base       { return &o.BaseFields }
func (o *OverlayElement) Kind() ElementKind { return ElementKindOverlay }

// SubtitlePosition is the closed set of subtitle placement presets.
type SubtitlePosition string

const (
	SubtitlePositionTop    SubtitlePosition = "top"
	SubtitlePositionCenter SubtitlePosition = "center"
	SubtitlePositionBottom SubtitlePosition = "bottom"
	SubtitlePositionCustom SubtitlePosition = "custom"
)

// SubtitleElement is a text-like element positioned by preset or custom
// coordinates, with 8px background padding when a background is set.
type SubtitleElement struct {
	BaseFields Base
	Content    string           `json:"content"`
	FontFamily string           `json:"fontFamily"`
	FontSize   float64          `json:"fontSize"`
	Color      color.RGBA       `json:"color"`
	Background *color.RGBA      `json:"background"`
	Position   SubtitlePosition `json:"position"`
	CustomX    float64          `json:"customX"`
	CustomY    float64          `json:"customY"`
	Align      TextAlign        `json:"align"`
}

func (s *SubtitleElement) Base() *Base       { return &s.BaseFields }
func (s *SubtitleElement) Kind() ElementKind { return ElementKindSubtitle }

// ResolvePosition computes the (x, y) canvas-center-relative origin for a
// subtitle preset, per §4.6: top = 2*fontSize, bottom = H - 2*fontSize.
func (s *SubtitleElement) ResolvePosition(canvasW, canvasH int) (x, y float64) {
	switch s.Position {
	case SubtitlePositionTop:
		return 0, 2*s.FontSize - float64(canvasH)/2
	case SubtitlePositionBottom:
		return 0, float64(canvasH) - 2*s.FontSize - float64(canvasH)/2
	case SubtitlePositionCustom:
		return s.CustomX, s.CustomY
	default: // center
		return 0, 0
	}
}

// Track is an ordered sequence of elements sharing a kind, mute flag, and
// optional track-wide opacity/blend/effect chain.
type Track struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      TrackKind `json:"kind"`
	Muted     bool      `json:"muted"`
	Opacity   *float64  `json:"opacity,omitempty"`
	Blend     *BlendMode `json:"blendMode,omitempty"`
	Elements  []Element `json:"elements"`
	EffectIDs []string  `json:"effectIds,omitempty"`
}

// Model is the immutable-during-a-run timeline: an ordered sequence of
// tracks plus the project's nominal size/fps (advisory; ExportSettings is
// authoritative for the actual render).
type Model struct {
	Tracks        []Track `json:"tracks"`
	Duration      float64 `json:"duration"`
	NominalWidth  int     `json:"nominalWidth"`
	NominalHeight int     `json:"nominalHeight"`
	NominalFPS    float64 `json:"nominalFps"`
}

// ComputeDuration returns max over every element of
// startTime + duration - trimStart - trimEnd, per §3.
func (m *Model) ComputeDuration() float64 {
	var maxEnd float64
	for _, tr := range m.Tracks {
		for _, el := range tr.Elements {
			_, end := el.Base().ActiveInterval()
			if end > maxEnd {
				maxEnd = end
			}
		}
	}
	return maxEnd
}

// ExportSettings fully resolves the output parameters the core accepts;
// presets are resolved by the caller, not the core (§6.4).
type ExportSettings struct {
	Width, Height         int
	ResolutionMultiplier  float64
	FPS                   float64
	VideoBitrateBPS       int
	AudioSampleRate       int
	AudioChannels         int
	AudioBitrateBPS       int
	BackgroundColor       color.RGBA
	HardwareAccelPreferred bool
	OutputFileName        string
}

// SupportedSampleRates is the closed set of sample rates §3 allows.
var SupportedSampleRates = map[int]bool{
	8000: true, 16000: true, 22050: true, 44100: true, 48000: true,
}

// DefaultExportSettings matches the source's defaults per §6.4: 1080p @
// 30fps, 48kHz stereo, black background, hardware accel preferred.
func DefaultExportSettings() ExportSettings {
	return ExportSettings{
		Width:                  1920,
		Height:                 1080,
		ResolutionMultiplier:   1,
		FPS:                    30,
		VideoBitrateBPS:        8_000_000,
		AudioSampleRate:        48000,
		AudioChannels:          2,
		AudioBitrateBPS:        192_000,
		BackgroundColor:        color.RGBA{A: 255},
		HardwareAccelPreferred: true,
		OutputFileName:         "output.mp4",
	}
}

// EffectiveSize returns round(width*r) x round(height*r), the actual raster
// surface dimensions.
func (s ExportSettings) EffectiveSize() (w, h int) {
	return roundPx(float64(s.Width) * s.ResolutionMultiplier), roundPx(float64(s.Height) * s.ResolutionMultiplier)
}

func roundPx(v float64) int {
	if v < 0 {
		return 0
	}
	return int(v + 0.5)
}

// FrameDurationMicros is floor(1e6/fps), the duration written into every
// encoded frame's presentation metadata (§3 invariant 5).
func (s ExportSettings) FrameDurationMicros() int64 {
	return int64(1_000_000.0 / s.FPS)
}

// PTSMicros is floor(k*1e6/fps) for frame index k (§3 invariant 5).
func (s ExportSettings) PTSMicros(k int64) int64 {
	return int64(float64(k) * 1_000_000.0 / s.FPS)
}

// TotalFrames is ceil(duration*fps), giving frame indices 0..N inclusive.
func TotalFrames(duration, fps float64) int64 {
	n := duration * fps
	whole := int64(n)
	if n > float64(whole) {
		return whole + 1
	}
	return whole
}

// IsKeyframe reports whether output frame k must be an IDR frame: every
// frame where k mod (3*fps) == 0 (§3 invariant 6).
func (s ExportSettings) IsKeyframe(k int64) bool {
	cadence := int64(3 * s.FPS)
	if cadence <= 0 {
		return k == 0
	}
	return k%cadence == 0
}

func (s ExportSettings) String() string {
	w, h := s.EffectiveSize()
	return fmt.Sprintf("%dx%d@%.3gfps (base %dx%d x%.3g)", w, h, s.FPS, s.Width, s.Height, s.ResolutionMultiplier)
}
