package encode

import (
	"testing"

	"github.com/reelforge/compositor/internal/timeline"
)

func TestHasAudioBearingElementDetectsAudio(t *testing.T) {
	model := &timeline.Model{Tracks: []timeline.Track{
		{Elements: []timeline.Element{
			&timeline.MediaElement{MediaKind: timeline.MediaKindAudio},
		}},
	}}
	if !hasAudioBearingElement(model) {
		t.Error("expected audio-bearing element to be detected")
	}
}

func TestHasAudioBearingElementDetectsVideo(t *testing.T) {
	model := &timeline.Model{Tracks: []timeline.Track{
		{Elements: []timeline.Element{
			&timeline.MediaElement{MediaKind: timeline.MediaKindVideo},
		}},
	}}
	if !hasAudioBearingElement(model) {
		t.Error("video elements carry an audio track too and should count")
	}
}

func TestHasAudioBearingElementIgnoresMutedTracks(t *testing.T) {
	model := &timeline.Model{Tracks: []timeline.Track{
		{Muted: true, Elements: []timeline.Element{
			&timeline.MediaElement{MediaKind: timeline.MediaKindAudio},
		}},
	}}
	if hasAudioBearingElement(model) {
		t.Error("muted tracks should not count toward audio-bearing detection")
	}
}

func TestHasAudioBearingElementFalseForImageOnly(t *testing.T) {
	model := &timeline.Model{Tracks: []timeline.Track{
		{Elements: []timeline.Element{
			&timeline.MediaElement{MediaKind: timeline.MediaKindImage},
			&timeline.TextElement{},
		}},
	}}
	if hasAudioBearingElement(model) {
		t.Error("image/text-only timeline should not be audio bearing")
	}
}
