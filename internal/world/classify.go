package world

// Classifier turns a raw terrain code into a tile.
type Classifier interface {
	// Classify returns the tile for code at (x, y). ok is false when the
	// code was not recognised and the tile fell back to Ocean.
	Classify(x, y int, code byte, special bool) (tile Tile, ok bool)
}

// LegacyClassifier applies the terrain code table of the original map files.
type LegacyClassifier struct{}

// TerrainForCode maps a raw code to its terrain. Unknown codes are Ocean and
// reported with ok=false.
func TerrainForCode(code byte) (t Terrain, ok bool) {
	switch code {
	case 2:
		return TerrainForest, true
	case 3:
		return TerrainSwamp, true
	case 6:
		return TerrainPlains, true
	case 7:
		return TerrainTundra, true
	case 9:
		return TerrainRiver, true
	case 10:
		return TerrainGrassland, true
	case 11:
		return TerrainJungle, true
	case 12:
		return TerrainHills, true
	case 13:
		return TerrainMountains, true
	case 14:
		return TerrainDesert, true
	case 15:
		return TerrainArctic, true
	case 1:
		// Plain ocean code.
		return TerrainOcean, true
	}
	return TerrainOcean, false
}

func (LegacyClassifier) Classify(x, y int, code byte, special bool) (Tile, bool) {
	terrain, ok := TerrainForCode(code)
	return Tile{
		X:       x,
		Y:       y,
		Terrain: terrain,
		Special: special && terrain.CarriesSpecial(),
	}, ok
}
