package render

import (
	"image"
	"image/color"
	"testing"
)

func TestFillRectClipsToBuffer(t *testing.T) {
	fb := NewFrameBuffer(4, 4)
	red := color.RGBA{R: 255, A: 255}
	fb.FillRect(-2, -2, 4, 4, red)

	if got := fb.RGBA().RGBAAt(1, 1); got != red {
		t.Fatalf("expected red at (1,1), got %v", got)
	}
	if got := fb.RGBA().RGBAAt(2, 2); got != (color.RGBA{}) {
		t.Fatalf("expected untouched pixel at (2,2), got %v", got)
	}
}

func TestBlitPlacesImage(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	blue := color.RGBA{B: 255, A: 255}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.SetRGBA(x, y, blue)
		}
	}
	fb.Blit(src, 5, 6)
	if got := fb.RGBA().RGBAAt(6, 7); got != blue {
		t.Fatalf("expected blue at (6,7), got %v", got)
	}
	if got := fb.RGBA().RGBAAt(4, 6); got == blue {
		t.Fatalf("blit leaked left of destination")
	}
	fb.Blit(nil, 0, 0)
}

func TestFitScalesToViewport(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 72, 72))
	got := Fit(src, 600, 800)
	if b := got.Bounds(); b.Dx() != 600 || b.Dy() != 800 {
		t.Fatalf("unexpected size %v", b)
	}
	if Fit(src, 72, 72) != image.Image(src) {
		t.Fatalf("same-size image should be returned as is")
	}
	if Fit(nil, 10, 10) != nil {
		t.Fatalf("nil image should stay nil")
	}
}
