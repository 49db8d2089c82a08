// PIC container decoding.
//
// A PIC file is a sequence of sections. Each section starts with a
// little-endian uint16 tag and a uint16 payload length. Only the X0 section
// (an 8-bit indexed image) is decoded. Palettes and every other section are
// skipped by seeking over their payload.
//
// The X0 payload holds uint16 width, uint16 height and a byte giving the
// maximum LZW code width. That is followed by the LZW code stream, whose
// output is run-length encoded (see rle.go).
package raster

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Section tags.
const (
	TagPalette uint16 = 0x304D // "M0"
	TagColors  uint16 = 0x3045 // "E0"
	TagImage8  uint16 = 0x3058 // "X0"
)

const (
	minCodeWidth = 9
	maxCodeWidth = 12
)

// MaxDimension bounds the width and height accepted from an image header.
const MaxDimension = 1024

var (
	// ErrNoImage is returned when the stream ends before an X0 section.
	ErrNoImage = errors.New("raster: no image section")
	// ErrBadCode is returned for an LZW code beyond the current dictionary.
	ErrBadCode = errors.New("raster: invalid LZW code")
	// ErrImageTooLarge is returned when a header declares more than
	// MaxDimension pixels on either axis.
	ErrImageTooLarge = errors.New("raster: image too large")
)

// Decode reads the first 8-bit image section from r.
func Decode(r io.ReadSeeker) (*Bitmap, error) {
	var hdr [4]byte
	for {
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			if err == io.EOF {
				return nil, ErrNoImage
			}
			return nil, fmt.Errorf("read section header: %w", err)
		}
		tag := binary.LittleEndian.Uint16(hdr[0:])
		length := binary.LittleEndian.Uint16(hdr[2:])

		if tag == TagImage8 {
			return decodeImage(r)
		}
		if _, err := r.Seek(int64(length), io.SeekCurrent); err != nil {
			return nil, fmt.Errorf("skip section %#04x: %w", tag, err)
		}
	}
}

func decodeImage(r io.Reader) (*Bitmap, error) {
	var hdr [5]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("read image header: %w", noEOF(err))
	}
	width := int(binary.LittleEndian.Uint16(hdr[0:]))
	height := int(binary.LittleEndian.Uint16(hdr[2:]))
	maxBits := int(hdr[4])
	if maxBits < minCodeWidth || maxBits > maxCodeWidth {
		return nil, fmt.Errorf("raster: unsupported LZW width %d", maxBits)
	}
	if width > MaxDimension || height > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, width, height)
	}

	out := newRLEWriter(width * height)
	dec := newLZWDecoder(bufio.NewReader(r), maxBits)
	for !out.full() {
		entry, err := dec.next()
		if err != nil {
			return nil, fmt.Errorf("decode %dx%d image at pixel %d: %w", width, height, len(out.pix), noEOF(err))
		}
		for _, c := range entry {
			out.put(c)
		}
	}

	return &Bitmap{width: width, height: height, pix: out.pix}, nil
}

// noEOF turns a bare EOF inside a section into ErrUnexpectedEOF.
func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
