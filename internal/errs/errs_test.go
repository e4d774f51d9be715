package errs

import (
	"errors"
	"testing"
)

func TestValidationErrorMessageSingular(t *testing.T) {
	e := &ValidationError{Offenses: []string{"bad thing"}}
	if e.Error() != "timeline validation failed: bad thing" {
		t.Errorf("Error() = %q", e.Error())
	}
}

func TestValidationErrorMessagePlural(t *testing.T) {
	e := &ValidationError{Offenses: []string{"a", "b"}}
	want := "timeline validation failed with 2 offenses: [a b]"
	if e.Error() != want {
		t.Errorf("Error() = %q, want %q", e.Error(), want)
	}
}

func TestAssetLoadErrorUnwraps(t *testing.T) {
	cause := errors.New("decode failed")
	e := &AssetLoadError{MediaID: "m1", Cause: cause}
	if !errors.Is(e, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestEncoderErrorUnwraps(t *testing.T) {
	cause := errors.New("pipe closed")
	e := &EncoderError{Stage: "video", Cause: cause}
	if !errors.Is(e, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestCancelledErrorMessage(t *testing.T) {
	e := &CancelledError{AtFrame: 42}
	if e.Error() != "export cancelled at frame 42" {
		t.Errorf("Error() = %q", e.Error())
	}
}
