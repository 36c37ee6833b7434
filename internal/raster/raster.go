package raster

import (
	"errors"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// DefaultDPI matches the PDF user space unit, one pixel per point.
const DefaultDPI = 72

var ErrNeedsPassword = errors.New("raster: document needs password")

type Fitz struct {
	DPI float64
}

func New(dpi float64) *Fitz {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &Fitz{DPI: dpi}
}

func (f *Fitz) Rasterize(data []byte) ([]image.Image, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		if errors.Is(err, fitz.ErrNeedsPassword) {
			return nil, ErrNeedsPassword
		}
		return nil, fmt.Errorf("raster: open: %w", err)
	}
	defer doc.Close()

	n := doc.NumPage()
	pages := make([]image.Image, 0, n)
	for i := 0; i < n; i++ {
		img, err := doc.ImageDPI(i, f.DPI)
		if err != nil {
			return nil, fmt.Errorf("raster: page %d: %w", i+1, err)
		}
		pages = append(pages, img)
	}
	return pages, nil
}
