package world

// HutPlacer marks the tiles that start with a goody hut.
type HutPlacer interface {
	PlaceHuts(m *Map)
}

// LegacyHuts places one candidate hut per 4×4 block from the map seed.
type LegacyHuts struct{}

// PolarRows is the depth of the bands at the top and bottom of the map that
// never hold huts.
const PolarRows = 2

func (LegacyHuts) PlaceHuts(m *Map) {
	if m == nil {
		panic("world: PlaceHuts called with nil map")
	}
	for i := range m.Tiles {
		t := &m.Tiles[i]
		t.Hut = false
		if t.Terrain == TerrainOcean {
			continue
		}
		if t.Y < PolarRows || t.Y > Height-1-PolarRows {
			continue
		}
		t.Hut = HutOnTile(t.X, t.Y, m.Seed)
	}
}
