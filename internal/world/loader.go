package world

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"sort"

	"github.com/talgya/civmap/internal/raster"
)

// DefaultResource is the map file Load opens.
const DefaultResource = "MAP.PIC"

// ErrRasterTooSmall is returned when a raster cannot hold every map layer.
var ErrRasterTooSmall = errors.New("world: raster too small")

// Loader decodes map rasters into tile grids. The collaborators are set once
// by NewLoader and may be swapped in tests.
type Loader struct {
	FS       fs.FS
	Resource string

	Classifier Classifier
	Huts       HutPlacer
	Scorer     LandScorer
}

// NewLoader returns a Loader reading DefaultResource from fsys with the
// legacy rules.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{
		FS:         fsys,
		Resource:   DefaultResource,
		Classifier: LegacyClassifier{},
		Huts:       LegacyHuts{},
		Scorer:     LegacyScorer{},
	}
}

// Load opens the configured resource and decodes it with seed.
func (l *Loader) Load(seed int) (*Map, error) {
	if l.FS == nil {
		return nil, fmt.Errorf("load %s: no filesystem configured", l.Resource)
	}
	f, err := l.FS.Open(l.Resource)
	if err != nil {
		return nil, fmt.Errorf("open map: %w", err)
	}
	defer f.Close()

	rs, ok := f.(io.ReadSeeker)
	if !ok {
		return nil, fmt.Errorf("open map: %s is not seekable", l.Resource)
	}
	return l.Decode(rs, seed)
}

// Decode reads a map raster from r and builds the map for seed.
func (l *Loader) Decode(r io.ReadSeeker, seed int) (*Map, error) {
	bm, err := raster.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode map: %w", err)
	}
	return l.Build(bm, seed)
}

// Build derives the tile grid from an already decoded raster. The passes run
// in a fixed order: classify, huts, land value, improvements.
func (l *Loader) Build(src Raster, seed int) (*Map, error) {
	if src == nil {
		panic("world: Build called with nil raster")
	}
	if src.Width() < MinRasterWidth || src.Height() < MinRasterHeight {
		return nil, fmt.Errorf("%w: %dx%d, need %dx%d",
			ErrRasterTooSmall, src.Width(), src.Height(), MinRasterWidth, MinRasterHeight)
	}

	m := NewMap(seed)
	unknown := make(map[byte]int)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			code := src.At(x, y)
			tile, ok := l.Classifier.Classify(x, y, code, HasExtraResourceOnTile(x, y, seed))
			if !ok {
				unknown[code]++
			}
			m.Set(tile)
		}
	}
	logFallbacks(unknown)

	l.Huts.PlaceHuts(m)
	l.Scorer.CalculateLandValue(m)
	ReadImprovements(m, src)

	slog.Debug("map built", "seed", seed, "huts", HutCount(m))
	return m, nil
}

func logFallbacks(unknown map[byte]int) {
	if len(unknown) == 0 {
		return
	}
	codes := make([]int, 0, len(unknown))
	total := 0
	for c, n := range unknown {
		codes = append(codes, int(c))
		total += n
	}
	sort.Ints(codes)
	for _, c := range codes {
		slog.Debug("unknown terrain code", "code", c, "tiles", unknown[byte(c)])
	}
	slog.Warn("unknown terrain codes decoded as ocean", "codes", codes, "tiles", total)
}
