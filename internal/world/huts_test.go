package world

import "testing"

func TestPlaceHutsSeedZero(t *testing.T) {
	m := filledMap(0, TerrainGrassland, false)
	LegacyHuts{}.PlaceHuts(m)

	// Block (0,0) picks cell 8, which is (2,0), inside the polar band.
	if !HutOnTile(2, 0, 0) {
		t.Fatal("HutOnTile(2,0,0) = false, want true")
	}
	if m.At(2, 0).Hut {
		t.Error("polar tile (2,0) got a hut")
	}
	// Block (1,1): (13+11+0+8) mod 32 = 0, so (4,4).
	if !m.At(4, 4).Hut {
		t.Error("tile (4,4) has no hut, want one")
	}
	// Block (0,1): (11+8) mod 32 = 19, no cell.
	for y := 4; y < 8; y++ {
		for x := 0; x < 4; x++ {
			if m.At(x, y).Hut {
				t.Errorf("tile (%d,%d) in block (0,1) got a hut", x, y)
			}
		}
	}
}

func TestPlaceHutsPolarExclusion(t *testing.T) {
	for seed := 0; seed < 64; seed++ {
		m := filledMap(seed, TerrainPlains, false)
		LegacyHuts{}.PlaceHuts(m)
		for x := 0; x < Width; x++ {
			for _, y := range []int{0, 1, Height - 2, Height - 1} {
				if m.At(x, y).Hut {
					t.Fatalf("seed %d: polar tile (%d,%d) got a hut", seed, x, y)
				}
			}
		}
	}
}

func TestPlaceHutsSkipsOcean(t *testing.T) {
	m := filledMap(0, TerrainOcean, false)
	LegacyHuts{}.PlaceHuts(m)
	if n := HutCount(m); n != 0 {
		t.Errorf("ocean map has %d huts, want 0", n)
	}
}

func TestPlaceHutsOnePerBlock(t *testing.T) {
	seed := 17
	m := filledMap(seed, TerrainHills, false)
	LegacyHuts{}.PlaceHuts(m)

	// Block rows 1..11 lie fully outside the polar bands.
	for by := 1; by <= 11; by++ {
		for bx := 0; bx < Width/BlockSize; bx++ {
			n := 0
			for dy := 0; dy < BlockSize; dy++ {
				for dx := 0; dx < BlockSize; dx++ {
					if m.At(bx*BlockSize+dx, by*BlockSize+dy).Hut {
						n++
					}
				}
			}
			want := 0
			if (bx*13+by*11+seed+8)%32 < 16 {
				want = 1
			}
			if n != want {
				t.Errorf("block (%d,%d): %d huts, want %d", bx, by, n, want)
			}
		}
	}
}

func TestPlaceHutsNilMapPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("PlaceHuts(nil) did not panic")
		}
	}()
	LegacyHuts{}.PlaceHuts(nil)
}
