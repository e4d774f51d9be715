// Package cache implements the per-run media cache (§4.8): one entry per
// media id, holding either a decoded image bitmap, an open video decoder,
// or a fully decoded audio PCM buffer. Lifetime is the export run; callers
// must call Close when the run finishes or fails.
//
// The structure mirrors the desktop app's silenceCache/cacheMutex pattern
// (app.go) generalized from a single map[CacheKey][]SilencePeriod to a
// typed union of asset kinds, with golang.org/x/sync/singleflight added so
// concurrent first-touches of the same media id and asset kind collapse
// into one decode. Image, video, and audio loads use separate singleflight
// keys, so a clip used both as video and as audio is decoded once for each.
package cache

import (
	"context"
	"fmt"
	"image"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/reelforge/compositor/internal/errs"
	"github.com/reelforge/compositor/internal/timeline"
)

// Entry is the union of what a media id can resolve to in the cache.
type Entry struct {
	Image       image.Image
	VideoDec    *VideoDecoder
	AudioPCM    *DecodedAudio
}

// MediaCache owns every asset opened during one export run.
type MediaCache struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	group   singleflight.Group

	ffprobePath string
	ffmpegPath  string
}

// New builds an empty cache bound to the given ffmpeg/ffprobe binaries.
func New(ffmpegPath, ffprobePath string) *MediaCache {
	return &MediaCache{
		entries:     make(map[string]*Entry),
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
	}
}

// GetImage returns the decoded image for a media element, decoding and
// caching it on first demand. Decode is one-shot per §4.3.
func (c *MediaCache) GetImage(ctx context.Context, mediaID string, source timeline.ByteSource) (image.Image, error) {
	c.mu.RLock()
	if e, ok := c.entries[mediaID]; ok && e.Image != nil {
		c.mu.RUnlock()
		return e.Image, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do("img:"+mediaID, func() (any, error) {
		path, err := resolveLocalPath(ctx, source)
		if err != nil {
			return nil, &errs.AssetLoadError{MediaID: mediaID, Cause: err}
		}
		img, err := DecodeImageFile(path)
		if err != nil {
			return nil, &errs.AssetLoadError{MediaID: mediaID, Cause: err}
		}
		c.mu.Lock()
		c.entries[mediaID] = &Entry{Image: img}
		c.mu.Unlock()
		return img, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(image.Image), nil
}

// GetVideoDecoder returns the long-lived decoder for a media id, opening it
// on first demand. The returned decoder is not safe for concurrent Seek
// calls, matching §4.3's "decoder is not shared across frames being
// rendered in parallel" — the driver renders sequentially, so this is
// enforced by convention, not a lock.
func (c *MediaCache) GetVideoDecoder(ctx context.Context, mediaID string, source timeline.ByteSource, fpsOut float64) (*VideoDecoder, error) {
	c.mu.RLock()
	if e, ok := c.entries[mediaID]; ok && e.VideoDec != nil {
		c.mu.RUnlock()
		return e.VideoDec, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do("vid:"+mediaID, func() (any, error) {
		path, err := resolveLocalPath(ctx, source)
		if err != nil {
			return nil, &errs.AssetLoadError{MediaID: mediaID, Cause: err}
		}
		dec, err := OpenVideoDecoder(ctx, c.ffmpegPath, c.ffprobePath, mediaID, path, fpsOut)
		if err != nil {
			return nil, &errs.AssetLoadError{MediaID: mediaID, Cause: err}
		}
		c.mu.Lock()
		c.entries[mediaID] = &Entry{VideoDec: dec}
		c.mu.Unlock()
		return dec, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*VideoDecoder), nil
}

// GetAudioPCM returns the fully-decoded PCM buffer for a media id's audio
// stream, decoding it on first demand (§4.10 step 1: "decode fully into a
// buffer").
func (c *MediaCache) GetAudioPCM(ctx context.Context, mediaID string, source timeline.ByteSource) (*DecodedAudio, error) {
	c.mu.RLock()
	if e, ok := c.entries[mediaID]; ok && e.AudioPCM != nil {
		c.mu.RUnlock()
		return e.AudioPCM, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do("aud:"+mediaID, func() (any, error) {
		path, err := resolveLocalPath(ctx, source)
		if err != nil {
			return nil, &errs.AssetLoadError{MediaID: mediaID, Cause: err}
		}
		pcm, err := DecodeAudioFile(ctx, c.ffmpegPath, path)
		if err != nil {
			return nil, &errs.AssetLoadError{MediaID: mediaID, Cause: err}
		}
		c.mu.Lock()
		c.entries[mediaID] = &Entry{AudioPCM: pcm}
		c.mu.Unlock()
		return pcm, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*DecodedAudio), nil
}

// Close releases every open decoder. Images and decoded PCM buffers are
// just dropped by the garbage collector once the cache itself goes out of
// scope; only the video decoders hold an external process that needs an
// explicit shutdown.
func (c *MediaCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var firstErr error
	for id, e := range c.entries {
		if e.VideoDec == nil {
			continue
		}
		if err := e.VideoDec.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close video decoder for media %q: %w", id, err)
		}
	}
	c.entries = make(map[string]*Entry)
	return firstErr
}

// resolveLocalPath returns a local filesystem path for a byte source,
// fetching remote URLs into a temp file once per call (§4.8: "cross-origin
// byte sources are fetched once into memory or a temp file").
func resolveLocalPath(ctx context.Context, source timeline.ByteSource) (string, error) {
	if source.FilePath != "" {
		return source.FilePath, nil
	}
	if source.URL != "" {
		return fetchToTempFile(ctx, source.URL)
	}
	return "", fmt.Errorf("byte source has neither filePath nor url")
}
