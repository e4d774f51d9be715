package timeline

import "testing"

func TestAdaptDropsUnresolvedMedia(t *testing.T) {
	project := EditorProject{Tracks: []EditorTrack{
		{ID: "t1", Kind: "media", Elements: []EditorElement{
			{ID: "e1", StartTime: 0, Duration: 2, Kind: "media", Media: &EditorMediaPayload{MediaID: "missing"}},
		}},
	}}
	model, dropped := Adapt(project, MediaLibrary{}, ProjectCanvas{Width: 1920, Height: 1080, FPS: 30})
	if len(dropped) != 1 {
		t.Fatalf("expected 1 dropped element, got %d", len(dropped))
	}
	if len(model.Tracks[0].Elements) != 0 {
		t.Errorf("expected 0 elements on track, got %d", len(model.Tracks[0].Elements))
	}
}

func TestAdaptResolvesMediaAndComputesDuration(t *testing.T) {
	project := EditorProject{Tracks: []EditorTrack{
		{ID: "t1", Kind: "media", Elements: []EditorElement{
			{ID: "e1", StartTime: 0, Duration: 5, Kind: "media", Media: &EditorMediaPayload{MediaID: "clip1"}},
		}},
	}}
	lib := MediaLibrary{"clip1": {Source: ByteSource{FilePath: "/tmp/clip1.mp4"}, Kind: MediaKindVideo, Width: 1280, Height: 720}}
	model, dropped := Adapt(project, lib, ProjectCanvas{Width: 1920, Height: 1080, FPS: 30})
	if len(dropped) != 0 {
		t.Fatalf("expected no dropped elements, got %v", dropped)
	}
	if model.Duration != 5 {
		t.Errorf("Duration = %v, want 5", model.Duration)
	}
	me, ok := model.Tracks[0].Elements[0].(*MediaElement)
	if !ok {
		t.Fatalf("expected *MediaElement, got %T", model.Tracks[0].Elements[0])
	}
	if me.MediaKind != MediaKindVideo || me.Intrinsic.Width != 1280 {
		t.Errorf("unexpected adapted media element: %+v", me)
	}
}

func TestAdaptTextElementParsesColor(t *testing.T) {
	project := EditorProject{Tracks: []EditorTrack{
		{ID: "t1", Kind: "text", Elements: []EditorElement{
			{ID: "e1", StartTime: 0, Duration: 2, Kind: "text", Text: &EditorTextPayload{
				Content: "hi", Color: "#ff0000", Background: "transparent",
			}},
		}},
	}}
	model, dropped := Adapt(project, MediaLibrary{}, ProjectCanvas{})
	if len(dropped) != 0 {
		t.Fatalf("expected no dropped elements, got %v", dropped)
	}
	te, ok := model.Tracks[0].Elements[0].(*TextElement)
	if !ok {
		t.Fatalf("expected *TextElement, got %T", model.Tracks[0].Elements[0])
	}
	if te.Color.R != 0xff || te.Color.G != 0 {
		t.Errorf("Color = %+v, want red", te.Color)
	}
	if te.Background != nil {
		t.Errorf("Background = %+v, want nil (transparent)", te.Background)
	}
}

func TestParseHexColorRoundTrip(t *testing.T) {
	c, ok := ParseHexColor("#336699cc")
	if !ok {
		t.Fatal("expected ok=true")
	}
	if c.R != 0x33 || c.G != 0x66 || c.B != 0x99 || c.A != 0xcc {
		t.Errorf("parsed = %+v", c)
	}
	if _, ok := ParseHexColor("not-a-color"); ok {
		t.Error("expected ok=false for malformed input")
	}
}
