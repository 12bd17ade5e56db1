package assets

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultManifest(t *testing.T) {
	m := Default()

	for _, name := range Required {
		if _, ok := m.Sheet(name); !ok {
			t.Errorf("default manifest missing %q", name)
		}
	}

	run, _ := m.Sheet(SheetRun)
	if run.FrameWidth() != 80 {
		t.Errorf("run frame width = %d, expected 80", run.FrameWidth())
	}
	if got := run.SourceX(7); got != 80 {
		t.Errorf("SourceX(7) = %d, expected 80 (wraps to frame 1)", got)
	}
}

func TestParseRejectsBadSheets(t *testing.T) {
	full := string(defaultManifest)

	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing sheet",
			yaml: strings.Replace(full, "  attack:", "  ghost:", 1),
		},
		{
			name: "uneven frames",
			yaml: strings.Replace(full, "width: 480", "width: 481", 1),
		},
		{
			name: "zero frames",
			yaml: strings.Replace(full, "frames: 6", "frames: 0", 1),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml), "")
			if !errors.Is(err, ErrInvalidSheet) {
				t.Errorf("err = %v, expected ErrInvalidSheet", err)
			}
		})
	}
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("sheets: [oops"), "")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if errors.Is(err, ErrInvalidSheet) {
		t.Error("syntax errors should not be reported as ErrInvalidSheet")
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
}

func TestLoadWithImages(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "run.png"), 120, 20)

	manifest := strings.Replace(string(defaultManifest),
		"  run:\n    frames: 6\n    width: 480\n    height: 80",
		"  run:\n    path: run.png\n    frames: 6", 1)
	path := filepath.Join(dir, "manifest.yaml")
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	run, _ := m.Sheet(SheetRun)
	if run.Width != 120 || run.Height != 20 {
		t.Errorf("run size = %dx%d, expected 120x20 from image", run.Width, run.Height)
	}
	if run.FrameWidth() != 20 {
		t.Errorf("frame width = %d, expected 20", run.FrameWidth())
	}
}

func TestLoadImageMismatch(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "chest.png"), 10, 10)

	manifest := strings.Replace(string(defaultManifest),
		"  chest:\n", "  chest:\n    path: chest.png\n", 1)
	path := filepath.Join(dir, "manifest.yaml")
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); !errors.Is(err, ErrInvalidSheet) {
		t.Errorf("err = %v, expected ErrInvalidSheet", err)
	}
}

func TestLoadMissingImage(t *testing.T) {
	dir := t.TempDir()
	manifest := strings.Replace(string(defaultManifest),
		"  barrel:\n", "  barrel:\n    path: nope.png\n", 1)
	path := filepath.Join(dir, "manifest.yaml")
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); !errors.Is(err, ErrInvalidSheet) {
		t.Errorf("err = %v, expected ErrInvalidSheet", err)
	}
}
