package timeline

import (
	"fmt"
	"image/color"
)

// EditorProject, EditorTrack, and EditorElement are the shapes Adapt accepts
// from the upstream editor — intentionally simple, JSON-friendly structs
// rather than the editor's own native objects (those are explicitly out of
// scope, §1). This mirrors the teacher's own ProjectDataPayload/Timeline/
// TimelineItem split (pythonTypes.go), generalized from "audio edit
// instructions" to the full four-kind element model.
type EditorProject struct {
	Tracks []EditorTrack `json:"tracks"`
}

type EditorTrack struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Kind      string          `json:"kind"`
	Muted     bool            `json:"muted"`
	Opacity   *float64        `json:"opacity,omitempty"`
	BlendMode *string         `json:"blendMode,omitempty"`
	EffectIDs []string        `json:"effectIds,omitempty"`
	Elements  []EditorElement `json:"elements"`
}

type EditorElement struct {
	ID        string   `json:"id"`
	StartTime float64  `json:"startTime"`
	Duration  float64  `json:"duration"`
	TrimStart float64  `json:"trimStart"`
	TrimEnd   float64  `json:"trimEnd"`
	Opacity   *float64 `json:"opacity,omitempty"`
	BlendMode *string  `json:"blendMode,omitempty"`
	Kind      string   `json:"kind"`

	Media    *EditorMediaPayload    `json:"media,omitempty"`
	Text     *EditorTextPayload     `json:"text,omitempty"`
	Overlay  *EditorOverlayPayload  `json:"overlay,omitempty"`
	Subtitle *EditorSubtitlePayload `json:"subtitle,omitempty"`
}

type EditorMediaPayload struct {
	MediaID string `json:"mediaId"`
}

type EditorTextPayload struct {
	Content         string  `json:"content"`
	FontFamily      string  `json:"fontFamily"`
	FontSize        float64 `json:"fontSize"`
	Weight          string  `json:"weight"`
	Style           string  `json:"style"`
	Decoration      string  `json:"decoration"`
	Color           string  `json:"color"`      // hex, e.g. "#ffffff"
	Background      string  `json:"background"` // hex or "transparent"
	TextAlign       string  `json:"textAlign"`
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	RotationDegrees float64 `json:"rotation"`
}

type EditorOverlayPayload struct {
	OverlayKind     string  `json:"overlayKind"`
	Source          string  `json:"source"`
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	RotationDegrees float64 `json:"rotation"`
}

type EditorSubtitlePayload struct {
	Content    string  `json:"content"`
	FontFamily string  `json:"fontFamily"`
	FontSize   float64 `json:"fontSize"`
	Color      string  `json:"color"`
	Background string  `json:"background"`
	Position   string  `json:"position"`
	CustomX    float64 `json:"customX"`
	CustomY    float64 `json:"customY"`
	Align      string  `json:"align"`
}

// MediaLibraryEntry is what the adapter's caller knows about a media id
// before the model is built: its byte source, kind, and (optionally)
// intrinsic dimensions.
type MediaLibraryEntry struct {
	Source ByteSource `json:"source"`
	Kind   MediaKind  `json:"kind"`
	Width  int        `json:"width,omitempty"`
	Height int        `json:"height,omitempty"`
}

// MediaLibrary resolves media ids supplied by the editor to concrete byte
// sources. Adapt filters out any element whose media id is absent here.
type MediaLibrary map[string]MediaLibraryEntry

// Resolves implements MediaResolver for use with Validate.
func (lib MediaLibrary) Resolves(mediaID string) bool {
	_, ok := lib[mediaID]
	return ok
}

// ProjectCanvas carries the editor's nominal project size/fps, used only to
// seed Model.Nominal* — ExportSettings remains authoritative for the actual
// render (§3).
type ProjectCanvas struct {
	Width  int
	Height int
	FPS    float64
}

// DroppedElement records why Adapt excluded an element, for the caller to
// surface as a warning (§6.1: "filtering elements whose media id does not
// resolve").
type DroppedElement struct {
	TrackID   string
	ElementID string
	Reason    string
}

// Adapt converts the editor's native track/element shapes into a
// timeline.Model, filtering elements whose media id does not resolve and
// computing duration as §3 specifies. It never mutates its inputs.
func Adapt(project EditorProject, library MediaLibrary, canvas ProjectCanvas) (*Model, []DroppedElement) {
	model := &Model{
		NominalWidth:  canvas.Width,
		NominalHeight: canvas.Height,
		NominalFPS:    canvas.FPS,
	}
	var dropped []DroppedElement

	for _, et := range project.Tracks {
		track := Track{
			ID:        et.ID,
			Name:      et.Name,
			Kind:      TrackKind(et.Kind),
			Muted:     et.Muted,
			Opacity:   et.Opacity,
			EffectIDs: et.EffectIDs,
		}
		if et.BlendMode != nil {
			bm := BlendMode(*et.BlendMode)
			track.Blend = &bm
		}

		for _, ee := range et.Elements {
			el, reason := adaptElement(ee, library)
			if el == nil {
				dropped = append(dropped, DroppedElement{TrackID: et.ID, ElementID: ee.ID, Reason: reason})
				continue
			}
			track.Elements = append(track.Elements, el)
		}
		model.Tracks = append(model.Tracks, track)
	}

	model.Duration = model.ComputeDuration()
	return model, dropped
}

func adaptElement(ee EditorElement, library MediaLibrary) (Element, string) {
	base := DefaultBase(ee.ID, ee.StartTime, ee.Duration, ee.TrimStart, ee.TrimEnd)
	if ee.Opacity != nil {
		base.Opacity = *ee.Opacity
	}
	if ee.BlendMode != nil {
		base.Blend = BlendMode(*ee.BlendMode)
	}

	switch ElementKind(ee.Kind) {
	case ElementKindMedia:
		if ee.Media == nil {
			return nil, "media element missing media payload"
		}
		entry, ok := library[ee.Media.MediaID]
		if !ok {
			return nil, fmt.Sprintf("media id %q does not resolve", ee.Media.MediaID)
		}
		me := &MediaElement{
			BaseFields: base,
			MediaID:    ee.Media.MediaID,
			MediaKind:  entry.Kind,
			Source:     entry.Source,
		}
		me.Intrinsic.Width = entry.Width
		me.Intrinsic.Height = entry.Height
		return me, ""

	case ElementKindText:
		if ee.Text == nil {
			return nil, "text element missing text payload"
		}
		t := ee.Text
		return &TextElement{
			BaseFields:      base,
			Content:         t.Content,
			FontFamily:      t.FontFamily,
			FontSize:        t.FontSize,
			Weight:          t.Weight,
			Style:           t.Style,
			Decoration:      t.Decoration,
			Color:           parseHexColor(t.Color, color.RGBA{A: 255}),
			Background:      parseOptionalHexColor(t.Background),
			TextAlign:       TextAlign(defaultString(t.TextAlign, "left")),
			X:               t.X,
			Y:               t.Y,
			RotationDegrees: t.RotationDegrees,
		}, ""

	case ElementKindOverlay:
		if ee.Overlay == nil {
			return nil, "overlay element missing overlay payload"
		}
		o := ee.Overlay
		return &OverlayElement{
			BaseFields:      base,
			OverlayKind:     OverlayKind(o.OverlayKind),
			Source:          o.Source,
			X:               o.X,
			Y:               o.Y,
			Width:           o.Width,
			Height:          o.Height,
			RotationDegrees: o.RotationDegrees,
		}, ""

	case ElementKindSubtitle:
		if ee.Subtitle == nil {
			return nil, "subtitle element missing subtitle payload"
		}
		s := ee.Subtitle
		return &SubtitleElement{
			BaseFields: base,
			Content:    s.Content,
			FontFamily: s.FontFamily,
			FontSize:   s.FontSize,
			Color:      parseHexColor(s.Color, color.RGBA{A: 255}),
			Background: parseOptionalHexColor(s.Background),
			Position:   SubtitlePosition(defaultString(s.Position, "bottom")),
			CustomX:    s.CustomX,
			CustomY:    s.CustomY,
			Align:      TextAlign(defaultString(s.Align, "center")),
		}, ""

	default:
		return nil, fmt.Sprintf("unknown element kind %q", ee.Kind)
	}
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func parseOptionalHexColor(s string) *color.RGBA {
	if s == "" || s == "transparent" {
		return nil
	}
	c := parseHexColor(s, color.RGBA{})
	return &c
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa" for callers outside this
// package (e.g. the overlay renderer resolving a shape's color source). ok
// is false on malformed input.
func ParseHexColor(s string) (c color.RGBA, ok bool) {
	if (len(s) != 7 && len(s) != 9) || s[0] != '#' {
		return color.RGBA{}, false
	}
	for i := 1; i < len(s); i++ {
		ch := s[i]
		if !(ch >= '0' && ch <= '9' || ch >= 'a' && ch <= 'f' || ch >= 'A' && ch <= 'F') {
			return color.RGBA{}, false
		}
	}
	c = parseHexColor(s, color.RGBA{})
	return c, true
}

// parseHexColor parses "#rrggbb" or "#rrggbbaa"; on malformed input it
// returns fallback rather than erroring, since color parsing failures are
// a presentation detail, not a structural timeline problem (§4.1 only
// validates structure).
func parseHexColor(s string, fallback color.RGBA) color.RGBA {
	if len(s) == 0 || s[0] != '#' {
		return fallback
	}
	hex := s[1:]
	for i := 0; i < len(hex); i++ {
		ch := hex[i]
		if !(ch >= '0' && ch <= '9' || ch >= 'a' && ch <= 'f' || ch >= 'A' && ch <= 'F') {
			return fallback
		}
	}
	var r, g, b, a uint8 = 0, 0, 0, 255
	var ok bool
	switch len(hex) {
	case 6:
		r, g, b, ok = hexByte(hex[0:2]), hexByte(hex[2:4]), hexByte(hex[4:6]), true
	case 8:
		r, g, b, a, ok = hexByte(hex[0:2]), hexByte(hex[2:4]), hexByte(hex[4:6]), hexByte(hex[6:8]), true
	}
	if !ok {
		return fallback
	}
	return color.RGBA{R: r, G: g, B: b, A: a}
}

func hexByte(s string) uint8 {
	var v uint8
	for i := 0; i < len(s); i++ {
		c := s[i]
		var d uint8
		switch {
		case c >= '0' && c <= '9':
			d = c - '0'
		case c >= 'a' && c <= 'f':
			d = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			d = c - 'A' + 10
		default:
			return 0
		}
		v = v*16 + d
	}
	return v
}
