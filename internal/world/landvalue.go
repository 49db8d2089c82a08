package world

// LandScorer assigns the land value of every tile.
type LandScorer interface {
	CalculateLandValue(m *Map)
}

// LegacyScorer is the 5×5 land value kernel of the original game.
//
// The north neighbour is doubled a second time on top of the inner ring
// doubling. Changing that would change the values every existing seed
// produces.
type LegacyScorer struct{}

// Border is the width of the unscored frame around the map.
const Border = 2

func (LegacyScorer) CalculateLandValue(m *Map) {
	if m == nil {
		panic("world: CalculateLandValue called with nil map")
	}
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			t := m.At(x, y)
			if x < Border || x >= Width-Border || y < Border || y >= Height-Border || !t.Terrain.Scored() {
				t.LandValue = 0
				continue
			}
			t.LandValue = normalizeLandValue(kernelSum(m, x, y), t)
		}
	}
}

// kernelSum weighs the 21 cells of the 5×5 square around (x, y) without its
// corners.
func kernelSum(m *Map, x, y int) int {
	riverScore := TerrainRiver.LandScore(false)
	grassScore := TerrainGrassland.LandScore(false)

	landValue := 0
	for yy := -2; yy <= 2; yy++ {
		for xx := -2; xx <= 2; xx++ {
			if abs(xx) == 2 && abs(yy) == 2 {
				continue
			}
			n := m.At(x+xx, y+yy)

			var val int
			switch {
			case n.Special && n.Terrain == TerrainRiver:
				val = 2 + riverScore
			case n.Special && n.Terrain == TerrainGrassland:
				val = 2 + grassScore
			default:
				val = n.LandScore()
			}

			if abs(xx) <= 1 && abs(yy) <= 1 && (xx != 0 || yy != 0) {
				val *= 2
			}
			if xx == 0 && yy == -1 {
				val *= 2
			}
			landValue += val
		}
	}
	return landValue
}

func normalizeLandValue(landValue int, c *Tile) int {
	if !c.Special && (c.Terrain == TerrainGrassland || c.Terrain == TerrainRiver) {
		landValue -= 16
	}

	landValue -= 120
	negative := landValue < 0
	landValue = abs(landValue) / 8
	if negative {
		landValue = 1 - landValue
	}

	if landValue < 1 {
		landValue = 1
	}
	if landValue > 15 {
		landValue = 15
	}

	return landValue/2 + 8
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
