package main

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

func writeRockImage(t *testing.T) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			img.SetNRGBA(x, y, color.NRGBA{0, 0, 0, 255})
			if x >= 20 && x < 60 && y >= 20 && y < 60 {
				img.SetNRGBA(x, y, color.NRGBA{100, 92, 76, 255})
			}
		}
	}
	path := filepath.Join(t.TempDir(), "map.png")
	if err := imaging.Save(img, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--version"}, &stdout, &stderr); code != exitOK {
		t.Fatalf("exit code: got %d, want 0", code)
	}
	if !strings.Contains(stdout.String(), "rock-contours "+Version) {
		t.Errorf("version output: %q", stdout.String())
	}
}

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-h"}, &stdout, &stderr); code != exitOK {
		t.Fatalf("exit code: got %d, want 0", code)
	}
	if !strings.Contains(stdout.String(), "Usage:") {
		t.Errorf("help output: %q", stdout.String())
	}
}

func TestRun_Pipeline(t *testing.T) {
	out := filepath.Join(t.TempDir(), "game_output")
	input := writeRockImage(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-output", out, "-log-level", "error", input}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code: got %d, stderr: %s", code, stderr.String())
	}

	summary := stdout.String()
	for _, want := range []string{"image size 100x100", "contours: 1, polygons: 1", "rock_contours_vector.geojson"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
	for _, name := range []string{"rock_contours_raster.png", "rock_contours_overlay.png", "rock_contours_vector.geojson"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestRun_EnvironmentFallback(t *testing.T) {
	out := filepath.Join(t.TempDir(), "from_env")
	t.Setenv("ROCK_CONTOURS_OUTPUT", out)
	t.Setenv("ROCK_CONTOURS_SAVE_MASK", "true")
	t.Setenv("ROCK_CONTOURS_LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-input", writeRockImage(t)}, &stdout, &stderr); code != exitOK {
		t.Fatalf("exit code: got %d, stderr: %s", code, stderr.String())
	}
	if _, err := os.Stat(filepath.Join(out, "rock_mask.png")); err != nil {
		t.Errorf("environment settings not applied: %v", err)
	}
}

func TestRun_FlagBeatsEnvironment(t *testing.T) {
	envOut := filepath.Join(t.TempDir(), "env")
	flagOut := filepath.Join(t.TempDir(), "flag")
	t.Setenv("ROCK_CONTOURS_OUTPUT", envOut)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-output", flagOut, "-log-level", "error", writeRockImage(t)}, &stdout, &stderr); code != exitOK {
		t.Fatalf("exit code: got %d, stderr: %s", code, stderr.String())
	}
	if _, err := os.Stat(filepath.Join(flagOut, "rock_contours_raster.png")); err != nil {
		t.Errorf("flag output directory not used: %v", err)
	}
	if _, err := os.Stat(envOut); !os.IsNotExist(err) {
		t.Error("environment output directory should not be created")
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(configPath, []byte("kernel_size: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no input", []string{"-output", dir}, exitUsage},
		{"bad bound", []string{"-lower", "10,30", "x.png"}, exitUsage},
		{"inverted bounds", []string{"-lower", "40,30,50", "x.png"}, exitUsage},
		{"even kernel", []string{"-kernel", "4", "x.png"}, exitUsage},
		{"bad config file", []string{"-config", configPath, "x.png"}, exitUsage},
		{"missing input", []string{"-output", filepath.Join(dir, "out"), filepath.Join(dir, "nope.png")}, exitInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(tt.args, &stdout, &stderr); code != tt.want {
				t.Errorf("exit code: got %d, want %d (stderr: %s)", code, tt.want, stderr.String())
			}
		})
	}
}

func TestRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "cfg_out")
	configPath := filepath.Join(dir, "rocks.yaml")
	content := "output_directory: " + out + "\nsave_mask: true\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-config", configPath, "-log-level", "error", writeRockImage(t)}, &stdout, &stderr); code != exitOK {
		t.Fatalf("exit code: got %d, stderr: %s", code, stderr.String())
	}
	if _, err := os.Stat(filepath.Join(out, "rock_mask.png")); err != nil {
		t.Errorf("config file not applied: %v", err)
	}
}
