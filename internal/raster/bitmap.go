// Package raster decodes the packed bitmap that legacy map files store their
// tile layers in, and exposes it as an addressable byte grid.
package raster

import "fmt"

// Bitmap is a row-major grid of bytes addressed by (x, y).
type Bitmap struct {
	width  int
	height int
	pix    []byte
}

// New returns a zero-filled bitmap of the given size.
func New(width, height int) *Bitmap {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("raster: negative size %dx%d", width, height))
	}
	return &Bitmap{width: width, height: height, pix: make([]byte, width*height)}
}

// FromBytes wraps pix as a width×height bitmap. pix is not copied.
func FromBytes(width, height int, pix []byte) (*Bitmap, error) {
	if width < 0 || height < 0 || len(pix) != width*height {
		return nil, fmt.Errorf("raster: %d bytes do not fill %dx%d", len(pix), width, height)
	}
	return &Bitmap{width: width, height: height, pix: pix}, nil
}

// Width returns the number of columns.
func (b *Bitmap) Width() int { return b.width }

// Height returns the number of rows.
func (b *Bitmap) Height() int { return b.height }

// At returns the byte at (x, y), or 0 outside the bitmap.
func (b *Bitmap) At(x, y int) byte {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0
	}
	return b.pix[y*b.width+x]
}

// Set writes v at (x, y). Writes outside the bitmap are ignored.
func (b *Bitmap) Set(x, y int, v byte) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.pix[y*b.width+x] = v
}

// Pix returns the underlying row-major bytes.
func (b *Bitmap) Pix() []byte { return b.pix }

func (b *Bitmap) String() string {
	return fmt.Sprintf("Bitmap(%dx%d)", b.width, b.height)
}
