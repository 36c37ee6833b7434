package app

import (
	"log/slog"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Go fonts carry no CJK glyphs, so the Japanese and Chinese tables look for a
// system font that does.
var cjkFontPaths = []string{
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/google-noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	"/usr/share/fonts/wenquanyi/wqy-microhei/wqy-microhei.ttc",
	"/System/Library/Fonts/Hiragino Sans GB.ttc",
	"/System/Library/Fonts/PingFang.ttc",
	`C:\Windows\Fonts\msyh.ttc`,
	`C:\Windows\Fonts\meiryo.ttc`,
	`C:\Windows\Fonts\msgothic.ttc`,
}

type fontKey struct {
	size int
	bold bool
}

type fontBank struct {
	regular *opentype.Font
	bold    *opentype.Font
	cache   map[fontKey]font.Face
}

func newFontBank(lang string) fontBank {
	bank := fontBank{cache: map[fontKey]font.Face{}}
	if lang != "en" {
		if f := loadSystemFont(cjkFontPaths); f != nil {
			bank.regular = f
			bank.bold = f
			return bank
		}
		slog.Debug("no CJK font found, falling back to Go fonts", "lang", lang)
	}
	reg, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return bank
	}
	bol, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return bank
	}
	bank.regular = reg
	bank.bold = bol
	return bank
}

func loadSystemFont(paths []string) *opentype.Font {
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if coll, err := opentype.ParseCollection(b); err == nil && coll.NumFonts() > 0 {
			if f, err := coll.Font(0); err == nil {
				slog.Debug("loaded UI font", "path", p)
				return f
			}
		}
		if f, err := opentype.Parse(b); err == nil {
			slog.Debug("loaded UI font", "path", p)
			return f
		}
	}
	return nil
}

func (b *fontBank) face(size int, bold bool) font.Face {
	key := fontKey{size: size, bold: bold}
	if f, ok := b.cache[key]; ok {
		return f
	}
	base := b.regular
	if bold {
		base = b.bold
	}
	if base == nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(base, &opentype.FaceOptions{Size: float64(size), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return basicfont.Face7x13
	}
	b.cache[key] = face
	return face
}

func measureString(face font.Face, s string) int {
	adv := font.MeasureString(face, s)
	// 26.6 fixed point to pixels, rounded.
	px := (int(adv) + 32) >> 6
	if px < 0 {
		px = 0
	}
	return px
}
