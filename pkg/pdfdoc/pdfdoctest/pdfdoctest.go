// Package pdfdoctest builds small PDF fixtures and a rasterizer that needs no
// native renderer.
package pdfdoctest

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"pdfviewer/pkg/pdfdoc"
)

// PageSize is the media box edge of every fixture page, in points.
const PageSize = 72

// Blank returns an unencrypted PDF with the given number of pages, each
// carrying a single stroked line.
func Blank(pages int) []byte {
	if pages < 1 {
		pages = 1
	}
	n := 2 + 2*pages
	offsets := make([]int, n+1)
	var b bytes.Buffer
	b.WriteString("%PDF-1.7\n")
	obj := func(num int, body string) {
		offsets[num] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	kids := make([]string, 0, pages)
	for i := 0; i < pages; i++ {
		kids = append(kids, fmt.Sprintf("%d 0 R", 3+2*i))
	}
	obj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	obj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages))
	for i := 0; i < pages; i++ {
		page := 3 + 2*i
		content := page + 1
		obj(page, fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Resources << >> /Contents %d 0 R >>", PageSize, PageSize, content))
		stream := fmt.Sprintf("0 0 m %d %d l S", 10+i, 10+i)
		obj(content, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", n+1)
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[i])
	}
	id := "<8f0e6a1c2b3d4e5f60718293a4b5c6d7>"
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R /ID [%s %s] >>\nstartxref\n%d\n%%%%EOF\n", n+1, id, id, xref)
	return b.Bytes()
}

// Rasterizer paints one white PageSize square per page. It refuses encrypted
// input the way a renderer without the key would.
type Rasterizer struct {
	Calls int
}

func (r *Rasterizer) Rasterize(data []byte) ([]image.Image, error) {
	r.Calls++
	info, err := pdfdoc.Inspect(data)
	if err != nil {
		return nil, err
	}
	if info.Encrypted {
		return nil, fmt.Errorf("pdfdoctest: cannot render encrypted content")
	}
	pages := make([]image.Image, info.Pages)
	for i := range pages {
		img := image.NewRGBA(image.Rect(0, 0, PageSize, PageSize))
		draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
		pages[i] = img
	}
	return pages, nil
}
