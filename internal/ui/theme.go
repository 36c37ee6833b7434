package ui

import "image/color"

type Theme struct {
	AppBackground color.RGBA
	TopBar        color.RGBA
	NavBar        color.RGBA
	Canvas        color.RGBA
	Page          color.RGBA
	Border        color.RGBA
	StatusBar     color.RGBA
	Accent        color.RGBA
	Shadow        color.RGBA
	MenuHeight    int
	NavHeight     int
	StatusHeight  int
	PageMargin    int
	ViewportW     int
	ViewportH     int
}

func DefaultTheme() Theme {
	return Theme{
		AppBackground: color.RGBA{0xF3, 0xF5, 0xF8, 0xFF},
		TopBar:        color.RGBA{0x2B, 0x57, 0x9A, 0xFF},
		NavBar:        color.RGBA{0xF7, 0xF9, 0xFC, 0xFF},
		Canvas:        color.RGBA{0xE2, 0xE7, 0xEF, 0xFF},
		Page:          color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		Border:        color.RGBA{0xB2, 0xBF, 0xD0, 0xFF},
		StatusBar:     color.RGBA{0xEA, 0xEF, 0xF6, 0xFF},
		Accent:        color.RGBA{0x2B, 0x57, 0x9A, 0xFF},
		Shadow:        color.RGBA{0xC8, 0xCF, 0xDB, 0xFF},
		MenuHeight:    34,
		NavHeight:     42,
		StatusHeight:  28,
		PageMargin:    16,
		ViewportW:     600,
		ViewportH:     800,
	}
}

// WindowSize is the size that shows the whole viewport without scrolling.
func (t Theme) WindowSize() (int, int) {
	return t.ViewportW + 2*t.PageMargin, t.MenuHeight + t.ViewportH + 2*t.PageMargin + t.NavHeight + t.StatusHeight
}
