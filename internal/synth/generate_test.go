package synth

import (
	"bytes"
	"testing"

	"github.com/talgya/civmap/internal/world"
)

func TestGenerateDeterministic(t *testing.T) {
	cfg := DefaultGenConfig()
	cfg.Seed = 42
	a := Generate(cfg)
	b := Generate(cfg)
	if !bytes.Equal(a.Pix(), b.Pix()) {
		t.Error("same seed produced different rasters")
	}

	cfg.Seed = 43
	c := Generate(cfg)
	if bytes.Equal(a.Pix(), c.Pix()) {
		t.Error("different seeds produced identical rasters")
	}
}

func TestGenerateLayout(t *testing.T) {
	cfg := DefaultGenConfig()
	cfg.Seed = 7
	bm := Generate(cfg)

	if bm.Width() < world.MinRasterWidth || bm.Height() < world.MinRasterHeight {
		t.Fatalf("raster %v too small to load", bm)
	}
	for x := 0; x < world.Width; x++ {
		if bm.At(x, 0) != codeArctic || bm.At(x, world.Height-1) != codeArctic {
			t.Fatalf("polar row at x=%d is not arctic", x)
		}
	}
	for y := 0; y < world.Height; y++ {
		for x := 0; x < world.Width; x++ {
			if _, ok := world.TerrainForCode(bm.At(x, y)); !ok {
				t.Fatalf("tile (%d,%d) has unknown code %d", x, y, bm.At(x, y))
			}
		}
	}
}

func TestGeneratedMapLoads(t *testing.T) {
	cfg := DefaultGenConfig()
	cfg.Seed = 99
	m, err := world.NewLoader(nil).Build(Generate(cfg), 99)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	counts := world.TerrainCounts(m)
	if counts[world.TerrainArctic] < 2*world.Width {
		t.Errorf("arctic tiles = %d, want at least %d", counts[world.TerrainArctic], 2*world.Width)
	}
	for i := range m.Tiles {
		if lv := m.Tiles[i].LandValue; lv != 0 && (lv < 8 || lv > 15) {
			t.Fatalf("tile %v: LandValue %d outside 8..15", &m.Tiles[i], lv)
		}
	}
}
