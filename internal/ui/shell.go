package ui

import (
	"image"

	"pdfviewer/internal/render"
)

type Layout struct {
	MenuH     int
	CanvasY   int
	CanvasH   int
	PageX     int
	PageY     int
	PageW     int
	PageH     int
	NavY      int
	NavH      int
	StatusY   int
	StatusH   int
	NavCenter int
}

// ComputeLayout stacks menu, canvas, navigation and status bars. The page
// viewport keeps its fixed size and is centered in the canvas; a small window
// clips it rather than shrinking it.
func ComputeLayout(w, h int, theme Theme) Layout {
	menuH := theme.MenuHeight
	navH := theme.NavHeight
	statusH := theme.StatusHeight

	canvasY := menuH
	canvasH := h - menuH - navH - statusH
	if canvasH < 0 {
		canvasH = 0
	}

	pageW, pageH := theme.ViewportW, theme.ViewportH
	pageX := (w - pageW) / 2
	if pageX < theme.PageMargin {
		pageX = theme.PageMargin
	}
	pageY := canvasY + (canvasH-pageH)/2
	if pageY < canvasY+theme.PageMargin {
		pageY = canvasY + theme.PageMargin
	}

	navY := canvasY + canvasH
	return Layout{
		MenuH:     menuH,
		CanvasY:   canvasY,
		CanvasH:   canvasH,
		PageX:     pageX,
		PageY:     pageY,
		PageW:     pageW,
		PageH:     pageH,
		NavY:      navY,
		NavH:      navH,
		StatusY:   navY + navH,
		StatusH:   statusH,
		NavCenter: w / 2,
	}
}

// DrawShell paints the window chrome and the current page, already scaled to
// the viewport. A nil page leaves an empty sheet.
func DrawShell(fb *render.FrameBuffer, page image.Image, theme Theme) Layout {
	layout := ComputeLayout(fb.W, fb.H, theme)

	fb.Clear(theme.AppBackground)

	fb.FillRect(0, 0, fb.W, layout.MenuH, theme.TopBar)
	fb.FillRect(0, layout.CanvasY, fb.W, layout.CanvasH, theme.Canvas)

	fb.FillRect(layout.PageX+2, layout.PageY+2, layout.PageW, layout.PageH, theme.Shadow)
	fb.FillRect(layout.PageX, layout.PageY, layout.PageW, layout.PageH, theme.Page)
	fb.Blit(page, layout.PageX, layout.PageY)
	fb.StrokeRect(layout.PageX, layout.PageY, layout.PageW, layout.PageH, 1, theme.Border)

	// Navigation and status bars are drawn last so they cover a clipped page.
	fb.FillRect(0, layout.NavY, fb.W, layout.NavH, theme.NavBar)
	fb.StrokeRect(0, layout.NavY, fb.W, layout.NavH, 1, theme.Border)
	fb.FillRect(0, layout.StatusY, fb.W, layout.StatusH, theme.StatusBar)
	fb.StrokeRect(0, layout.StatusY, fb.W, layout.StatusH, 1, theme.Border)
	return layout
}
