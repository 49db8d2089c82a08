package raster

import "io"

// lzwDecoder reads variable-width LSB-first codes. The dictionary starts with
// the 256 single bytes and has no clear or stop codes. The code width grows by
// one bit whenever the dictionary fills the current width. When it fills at
// the maximum width the dictionary is reset.
type lzwDecoder struct {
	r       io.ByteReader
	maxBits int

	bits  uint32
	nbits int

	width int
	dict  [][]byte
	prev  []byte
}

func newLZWDecoder(r io.ByteReader, maxBits int) *lzwDecoder {
	d := &lzwDecoder{r: r, maxBits: maxBits}
	d.reset()
	return d
}

func (d *lzwDecoder) reset() {
	d.width = minCodeWidth
	d.dict = make([][]byte, 256, 1<<d.maxBits)
	for i := range d.dict {
		d.dict[i] = []byte{byte(i)}
	}
	d.prev = nil
}

func (d *lzwDecoder) readCode() (int, error) {
	for d.nbits < d.width {
		b, err := d.r.ReadByte()
		if err != nil {
			return 0, err
		}
		d.bits |= uint32(b) << d.nbits
		d.nbits += 8
	}
	code := int(d.bits & (1<<d.width - 1))
	d.bits >>= d.width
	d.nbits -= d.width
	return code, nil
}

// next returns the byte string for the next code. The returned slice must not
// be modified.
func (d *lzwDecoder) next() ([]byte, error) {
	code, err := d.readCode()
	if err != nil {
		return nil, err
	}

	var entry []byte
	switch {
	case code < len(d.dict):
		entry = d.dict[code]
	case code == len(d.dict) && d.prev != nil:
		entry = append(append(make([]byte, 0, len(d.prev)+1), d.prev...), d.prev[0])
	default:
		return nil, ErrBadCode
	}

	if d.prev != nil {
		added := append(append(make([]byte, 0, len(d.prev)+1), d.prev...), entry[0])
		d.dict = append(d.dict, added)
	}
	d.prev = entry

	if len(d.dict) == 1<<d.width {
		if d.width < d.maxBits {
			d.width++
		} else {
			d.reset()
		}
	}
	return entry, nil
}
