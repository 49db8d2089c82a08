package world

import "github.com/talgya/civmap/internal/raster"

// filledMap returns a map where every tile has the given terrain.
func filledMap(seed int, terrain Terrain, special bool) *Map {
	m := NewMap(seed)
	for i := range m.Tiles {
		m.Tiles[i].Terrain = terrain
		m.Tiles[i].Special = special
	}
	return m
}

// filledRaster returns a legacy sized raster whose base layer is code.
func filledRaster(code byte) *raster.Bitmap {
	bm := raster.New(Width*4, Height*4)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			bm.Set(x, y, code)
		}
	}
	return bm
}
