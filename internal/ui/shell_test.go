package ui

import (
	"image"
	"image/color"
	"testing"

	"pdfviewer/internal/render"
)

func TestDefaultWindowFitsViewport(t *testing.T) {
	theme := DefaultTheme()
	w, h := theme.WindowSize()
	l := ComputeLayout(w, h, theme)

	if l.PageX < 0 || l.PageX+l.PageW > w {
		t.Fatalf("page does not fit horizontally: x=%d w=%d window=%d", l.PageX, l.PageW, w)
	}
	if l.PageY < l.CanvasY || l.PageY+l.PageH > l.NavY {
		t.Fatalf("page overlaps bars: y=%d h=%d canvas=%d nav=%d", l.PageY, l.PageH, l.CanvasY, l.NavY)
	}
	if l.StatusY+l.StatusH != h {
		t.Fatalf("status bar not at bottom: %d+%d != %d", l.StatusY, l.StatusH, h)
	}
}

func TestDrawShellBlitsPage(t *testing.T) {
	theme := DefaultTheme()
	w, h := theme.WindowSize()
	fb := render.NewFrameBuffer(w, h)

	page := image.NewRGBA(image.Rect(0, 0, theme.ViewportW, theme.ViewportH))
	green := color.RGBA{G: 200, A: 255}
	page.SetRGBA(10, 10, green)

	l := DrawShell(fb, page, theme)
	if got := fb.RGBA().RGBAAt(l.PageX+10, l.PageY+10); got != green {
		t.Fatalf("expected page pixel, got %v", got)
	}
	if got := fb.RGBA().RGBAAt(1, 1); got != theme.TopBar {
		t.Fatalf("expected menu bar color, got %v", got)
	}
}
