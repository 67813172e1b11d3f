package ioutils

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder registration
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

// ThumbnailConfig controls how sheet thumbnails are produced.
type ThumbnailConfig struct {
	// MaxSize bounds both width and height in pixels.
	MaxSize int

	// DirName is the directory created next to the source image.
	// The resource search only accepts sheets whose path contains "TINY".
	DirName string
}

// DefaultThumbnailConfig returns the thumbnail settings used by the site.
func DefaultThumbnailConfig() *ThumbnailConfig {
	return &ThumbnailConfig{
		MaxSize: 480,
		DirName: "TINY",
	}
}

// ImageService provides image processing operations for sheet music.
//
// ImageService is used to:
//   - Resize sheet scans to fit maximum dimensions
//   - Write the resized copy as PNG into the thumbnail directory
//
// Example usage:
//
//	svc := NewImageService(nil)
//	out, err := svc.WriteThumbnail("/sheets/Amazing Grace.png")
//	// out == "/sheets/TINY/Amazing Grace.png"
type ImageService struct {
	config *ThumbnailConfig
}

// NewImageService creates a new ImageService.
//
// If config is nil, DefaultThumbnailConfig() is used.
func NewImageService(config *ThumbnailConfig) *ImageService {
	if config == nil {
		config = DefaultThumbnailConfig()
	}
	return &ImageService{config: config}
}

// ResizeImage resizes an image to fit within the specified maximum dimensions.
//
// The aspect ratio is preserved. Images already inside the bounds keep their
// size but are still re-encoded. The result is PNG-encoded.
//
// The Catmull-Rom algorithm is used for high-quality resizing.
//
// Example:
//
//	// A 1500x1000 scan becomes 1000x667
//	resized, err := svc.ResizeImage(imageData, 1000, 1000)
func (s *ImageService) ResizeImage(data []byte, maxWidth, maxHeight int) ([]byte, error) {
	if maxWidth <= 0 || maxHeight <= 0 {
		return nil, fmt.Errorf("invalid thumbnail bounds %dx%d", maxWidth, maxHeight)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > maxWidth || height > maxHeight {
		ratio := float64(width) / float64(height)
		if float64(maxWidth)/float64(maxHeight) > ratio {
			// Height is the limiting factor
			width = max(1, int(float64(maxHeight)*ratio))
			height = maxHeight
		} else {
			height = max(1, int(float64(maxWidth)/ratio))
			width = maxWidth
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ThumbnailPath returns where the thumbnail of src is written.
//
// The extension is always .png because the resource search matches
// TINY sheets by that suffix.
func (s *ImageService) ThumbnailPath(src string) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return filepath.Join(filepath.Dir(src), s.config.DirName, base+".png")
}

// IsThumbnail reports whether path already lives in a thumbnail directory.
func (s *ImageService) IsThumbnail(path string) bool {
	return filepath.Base(filepath.Dir(path)) == s.config.DirName
}

// WriteThumbnail reads src, resizes it and writes it to ThumbnailPath(src).
//
// Returns the path written.
func (s *ImageService) WriteThumbnail(src string) (string, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return "", err
	}

	resized, err := s.ResizeImage(data, s.config.MaxSize, s.config.MaxSize)
	if err != nil {
		return "", fmt.Errorf("resize %s: %w", src, err)
	}

	dst := s.ThumbnailPath(src)
	if err := WriteFile(dst, resized); err != nil {
		return "", err
	}

	return dst, nil
}
