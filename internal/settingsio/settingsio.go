// Package settingsio loads and saves the JSON documents a run needs: export
// settings, the editor's project/track/element graph, and the media
// library that resolves media ids to byte sources. It is the JSON-file
// counterpart of the desktop app's GetConfig/SaveConfig (app.go) —
// generalized from one freeform map[string]any to the compositor's
// specific, strongly-typed documents.
package settingsio

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/reelforge/compositor/internal/timeline"
)

// exportSettingsDTO mirrors timeline.ExportSettings but spells colors as hex
// strings, the wire format the editor and the CLI both use (adapter.go's
// text/subtitle payloads do the same for their own colors).
type exportSettingsDTO struct {
	Width                  int    `json:"width"`
	Height                 int    `json:"height"`
	ResolutionMultiplier   float64 `json:"resolutionMultiplier"`
	FPS                    float64 `json:"fps"`
	VideoBitrateBPS        int    `json:"videoBitrateBps"`
	AudioSampleRate        int    `json:"audioSampleRate"`
	AudioChannels          int    `json:"audioChannels"`
	AudioBitrateBPS        int    `json:"audioBitrateBps"`
	BackgroundColor        string `json:"backgroundColor"`
	HardwareAccelPreferred bool   `json:"hardwareAccelPreferred"`
	OutputFileName         string `json:"outputFileName"`
}

func toDTO(s timeline.ExportSettings) exportSettingsDTO {
	return exportSettingsDTO{
		Width:                  s.Width,
		Height:                 s.Height,
		ResolutionMultiplier:   s.ResolutionMultiplier,
		FPS:                    s.FPS,
		VideoBitrateBPS:        s.VideoBitrateBPS,
		AudioSampleRate:        s.AudioSampleRate,
		AudioChannels:          s.AudioChannels,
		AudioBitrateBPS:        s.AudioBitrateBPS,
		BackgroundColor:        hexFromColor(s.BackgroundColor),
		HardwareAccelPreferred: s.HardwareAccelPreferred,
		OutputFileName:         s.OutputFileName,
	}
}

func fromDTO(d exportSettingsDTO) timeline.ExportSettings {
	def := timeline.DefaultExportSettings()
	bg, ok := timeline.ParseHexColor(d.BackgroundColor)
	if !ok {
		bg = def.BackgroundColor
	}
	return timeline.ExportSettings{
		Width:                  d.Width,
		Height:                 d.Height,
		ResolutionMultiplier:   d.ResolutionMultiplier,
		FPS:                    d.FPS,
		VideoBitrateBPS:        d.VideoBitrateBPS,
		AudioSampleRate:        d.AudioSampleRate,
		AudioChannels:          d.AudioChannels,
		AudioBitrateBPS:        d.AudioBitrateBPS,
		BackgroundColor:        bg,
		HardwareAccelPreferred: d.HardwareAccelPreferred,
		OutputFileName:         d.OutputFileName,
	}
}

func hexFromColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// LoadExportSettings reads export settings from path, creating the file
// with defaults if it doesn't exist yet — the same create-on-first-read
// behavior as the desktop app's GetConfig.
func LoadExportSettings(path string) (timeline.ExportSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			def := timeline.DefaultExportSettings()
			if err := SaveExportSettings(path, def); err != nil {
				return timeline.ExportSettings{}, err
			}
			return def, nil
		}
		return timeline.ExportSettings{}, fmt.Errorf("read export settings %s: %w", path, err)
	}
	var dto exportSettingsDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return timeline.ExportSettings{}, fmt.Errorf("unmarshal export settings %s: %w", path, err)
	}
	return fromDTO(dto), nil
}

// SaveExportSettings writes settings to path as indented JSON.
func SaveExportSettings(path string, settings timeline.ExportSettings) error {
	data, err := json.MarshalIndent(toDTO(settings), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export settings: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export settings dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export settings %s: %w", path, err)
	}
	return nil
}

// LoadProject reads the editor's track/element graph from path.
func LoadProject(path string) (timeline.EditorProject, error) {
	var project timeline.EditorProject
	data, err := os.ReadFile(path)
	if err != nil {
		return project, fmt.Errorf("read project %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &project); err != nil {
		return project, fmt.Errorf("unmarshal project %s: %w", path, err)
	}
	return project, nil
}

// LoadMediaLibrary reads the media id -> byte source map from path.
func LoadMediaLibrary(path string) (timeline.MediaLibrary, error) {
	var lib timeline.MediaLibrary
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read media library %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("unmarshal media library %s: %w", path, err)
	}
	return lib, nil
}

// ProjectCanvasFile is the on-disk shape of the editor's nominal canvas
// size/fps, loaded alongside the project and media library.
type ProjectCanvasFile struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	FPS    float64 `json:"fps"`
}

// LoadProjectCanvas reads the editor's nominal canvas descriptor from path.
func LoadProjectCanvas(path string) (timeline.ProjectCanvas, error) {
	var f ProjectCanvasFile
	data, err := os.ReadFile(path)
	if err != nil {
		return timeline.ProjectCanvas{}, fmt.Errorf("read project canvas %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &f); err != nil {
		return timeline.ProjectCanvas{}, fmt.Errorf("unmarshal project canvas %s: %w", path, err)
	}
	return timeline.ProjectCanvas{Width: f.Width, Height: f.Height, FPS: f.FPS}, nil
}
