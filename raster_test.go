package regionmap

import (
	"image"
	"image/color"
	"testing"
)

func TestImageRasterSubRaster(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 20, 16, 24))
	img.Set(13, 21, color.RGBA{R: 9, G: 8, B: 7, A: 255})

	r := NewImageRaster(img)
	if w, h := r.Dimensions(); w != 6 || h != 4 {
		t.Fatalf("Expected 6x4, got %dx%d", w, h)
	}
	if r.Channels() != 3 {
		t.Errorf("Expected 3 channels, got %d", r.Channels())
	}
	if got := r.RGBAt(3, 1); got != (RGB{9, 8, 7}) {
		t.Errorf("Expected origin-relative access, got %v", got)
	}

	sub := r.SubRaster(image.Rect(2, 0, 8, 2))
	if w, h := sub.Dimensions(); w != 4 || h != 2 {
		t.Errorf("Expected clipped 4x2 view, got %dx%d", w, h)
	}
	if got := sub.RGBAt(1, 1); got != (RGB{9, 8, 7}) {
		t.Errorf("Expected view-relative access, got %v", got)
	}
}

func TestImageRasterChannels(t *testing.T) {
	tests := []struct {
		img  image.Image
		want int
	}{
		{image.NewRGBA(image.Rect(0, 0, 1, 1)), 3},
		{image.NewNRGBA(image.Rect(0, 0, 1, 1)), 3},
		{image.NewPaletted(image.Rect(0, 0, 1, 1), color.Palette{color.Black}), 3},
		{image.NewGray(image.Rect(0, 0, 1, 1)), 1},
		{image.NewGray16(image.Rect(0, 0, 1, 1)), 1},
		{image.NewAlpha(image.Rect(0, 0, 1, 1)), 1},
	}
	for _, tt := range tests {
		if got := NewImageRaster(tt.img).Channels(); got != tt.want {
			t.Errorf("%T: expected %d channels, got %d", tt.img, tt.want, got)
		}
	}
}

func TestImageRasterTranslucentPixels(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 128})
	img.SetNRGBA(1, 0, color.NRGBA{R: 100, G: 50, B: 25, A: 128})
	img.SetNRGBA(2, 0, color.NRGBA{R: 255, A: 255})

	r := NewImageRaster(img)
	want := []RGB{{R: 255}, {R: 100, G: 50, B: 25}, {R: 255}}
	for x, w := range want {
		if got := r.RGBAt(x, 0); got != w {
			t.Errorf("Pixel %d: expected %v, got %v", x, w, got)
		}
	}
}
