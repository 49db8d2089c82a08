package world

import (
	"bytes"
	"errors"
	"io/fs"
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/talgya/civmap/internal/raster"
	"github.com/talgya/civmap/internal/raster/rastertest"
)

// sampleRaster lays out bands of every terrain code and a few improvements.
func sampleRaster() *raster.Bitmap {
	codes := []byte{1, 2, 3, 6, 7, 9, 10, 11, 12, 13, 14, 15, 10, 6, 9}
	bm := raster.New(Width*4, Height*4)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			bm.Set(x, y, codes[(x/3+y/2)%len(codes)])
		}
	}
	bm.Set(10, 10+Height*2, 0x0E)
	bm.Set(11, 10+Height*3, 0x01)
	return bm
}

func TestBuildSmallRaster(t *testing.T) {
	l := NewLoader(nil)
	_, err := l.Build(raster.New(MinRasterWidth-1, MinRasterHeight), 0)
	if !errors.Is(err, ErrRasterTooSmall) {
		t.Errorf("err = %v, want ErrRasterTooSmall", err)
	}
	if _, err := l.Build(raster.New(MinRasterWidth, MinRasterHeight), 0); err != nil {
		t.Errorf("minimum raster: %v", err)
	}
}

func TestBuildGrasslandScenario(t *testing.T) {
	m, err := NewLoader(nil).Build(filledRaster(10), 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			tile := m.At(x, y)
			if tile.Terrain != TerrainGrassland || tile.Special {
				t.Fatalf("tile %v: want plain grassland", tile)
			}
			interior := x >= Border && x < Width-Border && y >= Border && y < Height-Border
			want := 0
			if interior {
				want = 8
			}
			if tile.LandValue != want {
				t.Fatalf("tile %v: LandValue = %d, want %d", tile, tile.LandValue, want)
			}
		}
	}
}

func TestBuildSpecialFromResourceStream(t *testing.T) {
	seed := 3
	m, err := NewLoader(nil).Build(filledRaster(12), seed)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i := range m.Tiles {
		tile := &m.Tiles[i]
		if want := HasExtraResourceOnTile(tile.X, tile.Y, seed); tile.Special != want {
			t.Fatalf("tile %v: Special = %v, want %v", tile, tile.Special, want)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	src := sampleRaster()
	l := NewLoader(nil)
	a, err := l.Build(src, 42)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	b, err := l.Build(src, 42)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two builds with the same seed and raster differ")
	}

	c, err := l.Build(src, 43)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if reflect.DeepEqual(a.Tiles, c.Tiles) {
		t.Error("builds with different seeds should differ")
	}
}

func TestBuildHutRemoval(t *testing.T) {
	src := filledRaster(6)
	// Seed 0 puts the hut of block (1,1) at (4,4).
	src.Set(4+Width*2, 4, 0xFF)

	m, err := NewLoader(nil).Build(src, 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if m.At(4, 4).Hut {
		t.Error("hut at (4,4) should be removed by the mask")
	}

	clean, err := NewLoader(nil).Build(filledRaster(6), 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !clean.At(4, 4).Hut {
		t.Error("hut at (4,4) should be present without a mask")
	}
}

type orderRecorder struct {
	calls *[]string
	huts  HutPlacer
	score LandScorer
}

func (r orderRecorder) PlaceHuts(m *Map) {
	*r.calls = append(*r.calls, "huts")
	r.huts.PlaceHuts(m)
}

func (r orderRecorder) CalculateLandValue(m *Map) {
	// Improvements must not be read yet.
	for i := range m.Tiles {
		if m.Tiles[i].Road {
			*r.calls = append(*r.calls, "improvements-before-score")
			break
		}
	}
	*r.calls = append(*r.calls, "score")
	r.score.CalculateLandValue(m)
}

func TestBuildPassOrder(t *testing.T) {
	var calls []string
	rec := orderRecorder{calls: &calls, huts: LegacyHuts{}, score: LegacyScorer{}}
	l := NewLoader(nil)
	l.Huts = rec
	l.Scorer = rec

	src := filledRaster(6)
	for x := 0; x < Width; x++ {
		src.Set(x, 20+Height*2, 0x08)
	}
	m, err := l.Build(src, 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if want := []string{"huts", "score"}; !reflect.DeepEqual(calls, want) {
		t.Errorf("pass order = %v, want %v", calls, want)
	}
	if !m.At(0, 20).Road {
		t.Error("road at (0,20) missing after build")
	}
}

func TestDecodeAndLoad(t *testing.T) {
	src := sampleRaster()
	pic := rastertest.EncodePIC(src)

	want, err := NewLoader(nil).Build(src, 7)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got, err := NewLoader(nil).Decode(bytes.NewReader(pic), 7)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Error("decoded map differs from the map built from the raster")
	}

	fsys := fstest.MapFS{DefaultResource: &fstest.MapFile{Data: pic}}
	loaded, err := NewLoader(fsys).Load(7)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(loaded, want) {
		t.Error("loaded map differs from the map built from the raster")
	}
	if loaded.Seed != 7 {
		t.Errorf("Seed = %d, want 7", loaded.Seed)
	}
	if tile := loaded.At(10, 10); !tile.Irrigation || !tile.Mine || !tile.Road {
		t.Errorf("tile (10,10) improvements lost: %+v", tile)
	}
	if !loaded.At(11, 10).RailRoad {
		t.Error("tile (11,10) railroad lost")
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := NewLoader(fstest.MapFS{}).Load(0)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing resource: err = %v, want fs.ErrNotExist", err)
	}

	fsys := fstest.MapFS{DefaultResource: &fstest.MapFile{Data: []byte{0x58, 0x30, 0x10}}}
	m, err := NewLoader(fsys).Load(0)
	if err == nil || m != nil {
		t.Errorf("truncated resource: map %v, err %v", m, err)
	}

	small := rastertest.EncodePIC(raster.New(10, 10))
	_, err = NewLoader(nil).Decode(bytes.NewReader(small), 0)
	if !errors.Is(err, ErrRasterTooSmall) {
		t.Errorf("small image: err = %v, want ErrRasterTooSmall", err)
	}
}

func TestMapAt(t *testing.T) {
	m := NewMap(1)
	if m.At(-1, 0) != nil || m.At(Width, 0) != nil || m.At(0, Height) != nil {
		t.Error("At outside the grid should return nil")
	}
	tile := m.At(Width-1, Height-1)
	if tile.X != Width-1 || tile.Y != Height-1 {
		t.Errorf("tile position = (%d,%d)", tile.X, tile.Y)
	}
	if m.TileCount() != Width*Height {
		t.Errorf("TileCount = %d", m.TileCount())
	}
}
