package ioutils

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func encodeTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.Black)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestImageService_ResizeImage(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"landscape", 1500, 1000, 300, 200},
		{"portrait", 1000, 2000, 150, 300},
		{"already small", 100, 50, 100, 50},
	}

	svc := NewImageService(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := svc.ResizeImage(encodeTestPNG(t, tt.w, tt.h), 300, 300)
			if err != nil {
				t.Fatalf("ResizeImage() error = %v", err)
			}
			cfg, err := png.DecodeConfig(bytes.NewReader(out))
			if err != nil {
				t.Fatalf("result is not PNG: %v", err)
			}
			if cfg.Width != tt.wantW || cfg.Height != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", cfg.Width, cfg.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestImageService_ResizeImageRejectsGarbage(t *testing.T) {
	if _, err := NewImageService(nil).ResizeImage([]byte("not an image"), 10, 10); err == nil {
		t.Error("expected decode error")
	}
}

func TestImageService_WriteThumbnail(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "奇异恩典.png")
	if err := os.WriteFile(src, encodeTestPNG(t, 960, 480), 0644); err != nil {
		t.Fatal(err)
	}

	svc := NewImageService(&ThumbnailConfig{MaxSize: 240, DirName: "TINY"})
	out, err := svc.WriteThumbnail(src)
	if err != nil {
		t.Fatalf("WriteThumbnail() error = %v", err)
	}

	want := filepath.Join(dir, "TINY", "奇异恩典.png")
	if out != want {
		t.Errorf("WriteThumbnail() = %q, want %q", out, want)
	}
	if !svc.IsThumbnail(out) {
		t.Errorf("IsThumbnail(%q) = false", out)
	}
	if svc.IsThumbnail(src) {
		t.Errorf("IsThumbnail(%q) = true", src)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width > 240 || cfg.Height > 240 {
		t.Errorf("thumbnail %dx%d exceeds 240", cfg.Width, cfg.Height)
	}
}
