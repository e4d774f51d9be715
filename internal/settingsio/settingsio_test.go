package settingsio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/reelforge/compositor/internal/timeline"
)

func TestLoadExportSettingsCreatesDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	settings, err := LoadExportSettings(path)
	if err != nil {
		t.Fatalf("LoadExportSettings returned error: %v", err)
	}
	def := timeline.DefaultExportSettings()
	if settings != def {
		t.Errorf("settings = %+v, want defaults %+v", settings, def)
	}

	// Second load should read back the same file rather than recreating it.
	again, err := LoadExportSettings(path)
	if err != nil {
		t.Fatalf("second LoadExportSettings returned error: %v", err)
	}
	if again != def {
		t.Errorf("reloaded settings = %+v, want defaults %+v", again, def)
	}
}

func TestSaveThenLoadExportSettingsRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	want := timeline.DefaultExportSettings()
	want.Width = 1280
	want.Height = 720
	want.FPS = 24

	if err := SaveExportSettings(path, want); err != nil {
		t.Fatalf("SaveExportSettings returned error: %v", err)
	}
	got, err := LoadExportSettings(path)
	if err != nil {
		t.Fatalf("LoadExportSettings returned error: %v", err)
	}
	if got != want {
		t.Errorf("round-tripped settings = %+v, want %+v", got, want)
	}
}

func TestLoadProjectAndMediaLibrary(t *testing.T) {
	dir := t.TempDir()
	projectPath := filepath.Join(dir, "project.json")
	libraryPath := filepath.Join(dir, "media.json")

	writeFile(t, projectPath, `{"tracks":[{"id":"t1","kind":"media","elements":[
		{"id":"e1","startTime":0,"duration":2,"kind":"media","media":{"mediaId":"clip1"}}
	]}]}`)
	writeFile(t, libraryPath, `{"clip1":{"source":{"filePath":"/tmp/clip1.mp4"},"kind":"video","width":1280,"height":720}}`)

	project, err := LoadProject(projectPath)
	if err != nil {
		t.Fatalf("LoadProject returned error: %v", err)
	}
	if len(project.Tracks) != 1 || len(project.Tracks[0].Elements) != 1 {
		t.Fatalf("unexpected project shape: %+v", project)
	}

	lib, err := LoadMediaLibrary(libraryPath)
	if err != nil {
		t.Fatalf("LoadMediaLibrary returned error: %v", err)
	}
	entry, ok := lib["clip1"]
	if !ok {
		t.Fatal("expected clip1 to resolve")
	}
	if entry.Kind != timeline.MediaKindVideo || entry.Width != 1280 {
		t.Errorf("unexpected media library entry: %+v", entry)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", path, err)
	}
}
