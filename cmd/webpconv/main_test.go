package main

import (
	"archive/zip"
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	xwebp "golang.org/x/image/webp"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writePNG(t *testing.T, dir, name string, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 3), G: uint8(y * 3), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func requireContains(t *testing.T, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Fatalf("expected output to contain %q, got:\n%s", want, out)
	}
}

func setupCLITestEnv(t *testing.T) (string, string) {
	t.Helper()
	t.Setenv("WEBPCONV_DATA_DIR", t.TempDir())
	return t.TempDir(), t.TempDir()
}

func TestConvertSingleImage(t *testing.T) {
	inputDir, outputDir := setupCLITestEnv(t)
	src := writePNG(t, inputDir, "photo.png", 80, 60)

	out, _, err := runCLI(t, "convert", "--scale", "50", "--quality", "80", "--output", outputDir, src)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	requireContains(t, out, "photo.png\tDone")
	requireContains(t, out, "40x30")
	requireContains(t, out, "Converted 1 of 1 images")

	data, err := os.ReadFile(filepath.Join(outputDir, "photo.webp"))
	if err != nil {
		t.Fatalf("expected photo.webp: %v", err)
	}
	cfg, err := xwebp.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if cfg.Width != 40 || cfg.Height != 30 {
		t.Fatalf("expected 40x30 output, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestConvertMultipleImagesWritesArchive(t *testing.T) {
	inputDir, outputDir := setupCLITestEnv(t)
	first := writePNG(t, inputDir, "a.png", 20, 20)
	second := writePNG(t, inputDir, "b.png", 20, 20)
	notes := filepath.Join(inputDir, "notes.txt")
	if err := os.WriteFile(notes, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}

	out, _, err := runCLI(t, "convert", "-o", outputDir, first, second, notes)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	requireContains(t, out, "Skipped 1 non-image files")

	archivePath := filepath.Join(outputDir, "converted-images.zip")
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer zr.Close()

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	if strings.Join(names, ",") != "a.webp,b.webp" {
		t.Fatalf("unexpected archive entries: %v", names)
	}
}

func TestConvertReportsFailures(t *testing.T) {
	inputDir, outputDir := setupCLITestEnv(t)
	good := writePNG(t, inputDir, "good.png", 10, 10)
	bad := filepath.Join(inputDir, "bad.png")
	if err := os.WriteFile(bad, []byte("not really a png"), 0o644); err != nil {
		t.Fatalf("write bad fixture: %v", err)
	}

	out, _, err := runCLI(t, "convert", "-o", outputDir, good, bad)
	if !errors.Is(err, errConversionFailed) {
		t.Fatalf("expected errConversionFailed, got %v", err)
	}
	requireContains(t, out, "bad.png\tError")
	requireContains(t, out, "good.png\tDone")

	if _, err := os.Stat(filepath.Join(outputDir, "good.webp")); err != nil {
		t.Fatalf("expected good.webp to be written: %v", err)
	}
}

func TestConvertWithoutImagesFails(t *testing.T) {
	inputDir, outputDir := setupCLITestEnv(t)
	notes := filepath.Join(inputDir, "notes.txt")
	if err := os.WriteFile(notes, []byte("text"), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}

	_, _, err := runCLI(t, "convert", "-o", outputDir, notes)
	if err == nil || !strings.Contains(err.Error(), "no images to convert") {
		t.Fatalf("expected no images error, got %v", err)
	}
}

func TestConvertUsesConfigDefaults(t *testing.T) {
	inputDir, outputDir := setupCLITestEnv(t)
	src := writePNG(t, inputDir, "cfg.png", 100, 100)

	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[conversion]\ndefault_scale = 25\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, _, err := runCLI(t, "--config", configPath, "convert", "-o", outputDir, src)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	requireContains(t, out, "25x25")
}

func TestConvertClampsSettings(t *testing.T) {
	inputDir, outputDir := setupCLITestEnv(t)
	src := writePNG(t, inputDir, "clamp.png", 40, 40)

	out, _, err := runCLI(t, "convert", "--quality", "500", "--scale", "1", "-o", outputDir, src)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	requireContains(t, out, "Settings adjusted to quality 100, scale 10%")
	requireContains(t, out, "4x4")
}

func TestConfigCommands(t *testing.T) {
	setupCLITestEnv(t)

	out, _, err := runCLI(t, "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	requireContains(t, out, "# source: defaults")
	requireContains(t, out, "default_quality = 100")

	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	out, _, err = runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote default configuration")

	if _, _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected init to refuse overwriting")
	}

	out, _, err = runCLI(t, "--config", target, "config")
	if err != nil {
		t.Fatalf("config with file: %v", err)
	}
	requireContains(t, out, "# source: "+target)
}

func TestRenderTable(t *testing.T) {
	out := renderTable([]string{"Name", "Size"}, [][]string{{"a.png", "2.0 KB"}, {"b.png"}}, []columnAlignment{alignLeft, alignRight})
	requireContains(t, out, "a.png")
	requireContains(t, out, "2.0 KB")
	if renderTable(nil, nil, nil) != "" {
		t.Fatal("expected empty table for no headers")
	}
}
