// Package errs defines the closed set of error kinds the compositor
// distinguishes when deciding whether to abort a run, skip an element, or
// skip a frame. The types that carry an underlying cause (AssetLoadError,
// EncoderError) expose it through Unwrap so errors.Is/errors.As reach it.
package errs

import "fmt"

// ValidationError reports structural problems found while validating a
// timeline model. It is always fatal and always raised before the frame loop
// starts.
type ValidationError struct {
	Offenses []string
}

func (e *ValidationError) Error() string {
	if len(e.Offenses) == 1 {
		return fmt.Sprintf("timeline validation failed: %s", e.Offenses[0])
	}
	return fmt.Sprintf("timeline validation failed with %d offenses: %v", len(e.Offenses), e.Offenses)
}

// AssetLoadError means a media asset could not be decoded at all. The
// element is excluded for the whole run; this is a warning, never a fatal
// error.
type AssetLoadError struct {
	MediaID string
	Cause   error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("asset load failed for media %q: %v", e.MediaID, e.Cause)
}

func (e *AssetLoadError) Unwrap() error { return e.Cause }

// SeekTimeoutError is transient: the decoder for MediaID did not produce a
// frame covering the requested timestamp within the per-seek deadline. The
// element is skipped for that frame only.
type SeekTimeoutError struct {
	MediaID   string
	FrameIdx  int64
	Timestamp float64
}

func (e *SeekTimeoutError) Error() string {
	return fmt.Sprintf("seek timeout for media %q at frame %d (t=%.3fs)", e.MediaID, e.FrameIdx, e.Timestamp)
}

// EncoderError is fatal: the video or audio encoder failed to accept or
// flush data. The driver closes encoders and surfaces this error.
type EncoderError struct {
	Stage string // "video", "audio", "mux"
	Cause error
}

func (e *EncoderError) Error() string {
	return fmt.Sprintf("encoder failure during %s: %v", e.Stage, e.Cause)
}

func (e *EncoderError) Unwrap() error { return e.Cause }

// CancelledError is the terminal state produced when a run is explicitly
// cancelled, distinct from a timeout or a failure.
type CancelledError struct {
	AtFrame int64
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("export cancelled at frame %d", e.AtFrame)
}

// UnsupportedEnvironmentError means no acceptable H.264 encoder
// configuration could be found. It is fatal before the frame loop starts.
type UnsupportedEnvironmentError struct {
	Detail string
}

func (e *UnsupportedEnvironmentError) Error() string {
	return fmt.Sprintf("unsupported environment: %s", e.Detail)
}
