// Package memview renders a 64k memory map as an image. Each row is one
// page (256 bytes) and each pixel's gray level is the byte value so code,
// data and untouched RAM are easy to tell apart at a glance.
package memview

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/jmchacon/6502core/memory"
	"golang.org/x/image/draw"
)

const (
	// Width is one page per row.
	Width = 256
	// Height covers all 256 pages.
	Height = memory.Size / Width
)

// Render returns the memory in r as a Width x Height grayscale image scaled by
// scale in each direction. scale values below 1 are treated as 1.
func Render(r memory.Reader, scale int) *image.Gray {
	i := image.NewGray(image.Rect(0, 0, Width, Height))
	for addr := 0; addr < memory.Size; addr++ {
		i.SetGray(addr%Width, addr/Width, color.Gray{Y: r.Read(uint16(addr))})
	}
	if scale <= 1 {
		return i
	}
	d := image.NewGray(image.Rect(0, 0, Width*scale, Height*scale))
	draw.NearestNeighbor.Scale(d, d.Bounds(), i, i.Bounds(), draw.Src, nil)
	return d
}

// WritePNG renders r as Render does and encodes it as a PNG to w.
func WritePNG(w io.Writer, r memory.Reader, scale int) error {
	return png.Encode(w, Render(r, scale))
}
