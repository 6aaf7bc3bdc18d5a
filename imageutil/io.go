package imageutil

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// FallbackExtensions are tried, in order, when a map image path does not
// exist as given.
var FallbackExtensions = []string{".png", ".jpg", ".bmp"}

// ResolveImagePath returns path if it exists, otherwise the first sibling
// with the same base name and one of FallbackExtensions. The error wraps
// os.ErrNotExist when nothing is found.
func ResolveImagePath(path string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	base := strings.TrimSuffix(path, filepath.Ext(path))
	for _, ext := range FallbackExtensions {
		candidate := base + ext
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("image %q (also tried %s): %w",
		path, strings.Join(FallbackExtensions, ", "), os.ErrNotExist)
}

// LoadImage loads an image from the specified path.
// Supports PNG, JPEG, GIF, BMP, TIFF and WebP formats.
func LoadImage(path string) (*RGBAImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()
	return DecodeImage(f)
}

// DecodeImage decodes any registered format into an RGBAImage.
func DecodeImage(r io.Reader) (*RGBAImage, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return RGBAImageFromImage(img), nil
}

// SaveImage saves an image to the specified path.
// Format is determined by file extension (png, jpg/jpeg, gif).
func SaveImage(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png":
		err = png.Encode(f, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	case ".gif":
		err = gif.Encode(f, img, nil)
	default:
		err = errors.New("unsupported image format: " + ext)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
