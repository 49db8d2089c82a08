package raster

// rleMarker introduces a repeat count for the previous byte. A count of zero
// stands for a literal marker byte.
const rleMarker = 0x90

type rleWriter struct {
	pix    []byte
	last   byte
	marker bool
}

func newRLEWriter(n int) *rleWriter {
	return &rleWriter{pix: make([]byte, 0, n)}
}

func (w *rleWriter) full() bool { return len(w.pix) == cap(w.pix) }

func (w *rleWriter) emit(b byte) {
	if !w.full() {
		w.pix = append(w.pix, b)
	}
	w.last = b
}

func (w *rleWriter) put(b byte) {
	if w.marker {
		w.marker = false
		if b == 0 {
			w.emit(rleMarker)
			return
		}
		for i := 1; i < int(b); i++ {
			w.emit(w.last)
		}
		return
	}
	if b == rleMarker {
		w.marker = true
		return
	}
	w.emit(b)
}
