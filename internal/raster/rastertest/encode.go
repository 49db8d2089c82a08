// Package rastertest builds PIC fixtures for tests. The encoder only emits
// literal LZW codes and short RLE runs. It is not meant to reproduce files
// written by the original tools.
package rastertest

import (
	"encoding/binary"

	"github.com/talgya/civmap/internal/raster"
)

const (
	marker  = 0x90
	maxBits = 11
)

// EncodePIC returns a PIC stream holding a palette section followed by an
// 8-bit image section for b.
func EncodePIC(b *raster.Bitmap) []byte {
	var out []byte
	out = appendSection(out, raster.TagPalette, palette())
	out = appendSection(out, raster.TagImage8, image(b))
	return out
}

func appendSection(out []byte, tag uint16, payload []byte) []byte {
	length := len(payload)
	if length > 0xFFFF {
		length = 0xFFFF
	}
	out = binary.LittleEndian.AppendUint16(out, tag)
	out = binary.LittleEndian.AppendUint16(out, uint16(length))
	return append(out, payload...)
}

func palette() []byte {
	p := []byte{0, 255}
	return append(p, make([]byte, 256*3)...)
}

func image(b *raster.Bitmap) []byte {
	var p []byte
	p = binary.LittleEndian.AppendUint16(p, uint16(b.Width()))
	p = binary.LittleEndian.AppendUint16(p, uint16(b.Height()))
	p = append(p, maxBits)
	return append(p, lzw(rle(b.Pix()))...)
}

// rle writes each run as the literal byte followed by repeat markers.
func rle(pix []byte) []byte {
	var out []byte
	for i := 0; i < len(pix); {
		v := pix[i]
		n := 1
		for i+n < len(pix) && pix[i+n] == v {
			n++
		}
		if v == marker {
			out = append(out, marker, 0)
		} else {
			out = append(out, v)
		}
		for rem := n - 1; rem > 0; {
			c := rem
			if c > 254 {
				c = 254
			}
			out = append(out, marker, byte(c+1))
			rem -= c
		}
		i += n
	}
	return out
}

// lzw emits one literal code per byte, tracking the dictionary size the
// decoder will reach so the code width changes at the same points.
func lzw(data []byte) []byte {
	var (
		out     []byte
		acc     uint32
		nbits   int
		width   = 9
		dictLen = 256
		started bool
	)
	for _, c := range data {
		acc |= uint32(c) << nbits
		nbits += width
		for nbits >= 8 {
			out = append(out, byte(acc))
			acc >>= 8
			nbits -= 8
		}
		if started {
			dictLen++
		}
		started = true
		if dictLen == 1<<width {
			if width < maxBits {
				width++
			} else {
				width = 9
				dictLen = 256
				started = false
			}
		}
	}
	if nbits > 0 {
		out = append(out, byte(acc))
	}
	return out
}
