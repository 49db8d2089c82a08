package world

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Terrain is the concrete variant of a tile. The zero value is Ocean.
type Terrain uint8

const (
	TerrainOcean Terrain = iota
	TerrainForest
	TerrainSwamp
	TerrainPlains
	TerrainTundra
	TerrainRiver
	TerrainGrassland
	TerrainJungle
	TerrainHills
	TerrainMountains
	TerrainDesert
	TerrainArctic
	numTerrains
)

type terrainInfo struct {
	name string
	// Intrinsic land score of the plain and special variants.
	score, specialScore int
	// Whether the classifier keeps the special flag for this terrain.
	carriesSpecial bool
}

var terrainTable = [numTerrains]terrainInfo{
	TerrainOcean:     {"Ocean", 1, 1, false},
	TerrainForest:    {"Forest", 3, 5, true},
	TerrainSwamp:     {"Swamp", 0, 3, true},
	TerrainPlains:    {"Plains", 4, 6, true},
	TerrainTundra:    {"Tundra", 1, 3, true},
	TerrainRiver:     {"River", 5, 5, false},
	TerrainGrassland: {"Grassland", 4, 4, false},
	TerrainJungle:    {"Jungle", 0, 3, true},
	TerrainHills:     {"Hills", 2, 4, true},
	TerrainMountains: {"Mountains", 0, 3, true},
	TerrainDesert:    {"Desert", 1, 3, true},
	TerrainArctic:    {"Arctic", 0, 2, true},
}

// Terrains lists every terrain variant in declaration order.
func Terrains() []Terrain {
	out := make([]Terrain, numTerrains)
	for i := range out {
		out[i] = Terrain(i)
	}
	return out
}

func (t Terrain) info() terrainInfo {
	if t >= numTerrains {
		return terrainTable[TerrainOcean]
	}
	return terrainTable[t]
}

// String returns a human-readable name for a terrain type.
func (t Terrain) String() string {
	if t >= numTerrains {
		return fmt.Sprintf("Terrain(%d)", uint8(t))
	}
	return terrainTable[t].name
}

// LandScore returns the intrinsic base score used by the land value kernel.
func (t Terrain) LandScore(special bool) int {
	if special {
		return t.info().specialScore
	}
	return t.info().score
}

// CarriesSpecial reports whether tiles of this terrain keep the special flag.
func (t Terrain) CarriesSpecial() bool {
	return t.info().carriesSpecial
}

// Scored reports whether tiles of this terrain receive a land value.
func (t Terrain) Scored() bool {
	return t == TerrainPlains || t == TerrainGrassland || t == TerrainRiver
}

// ParseTerrain looks a terrain up by name, ignoring case. For an unknown
// name the error suggests the closest match when there is one.
func ParseTerrain(name string) (Terrain, error) {
	in := strings.ToLower(strings.TrimSpace(name))
	best, bestDist := Terrain(0), -1
	for t := Terrain(0); t < numTerrains; t++ {
		cand := strings.ToLower(terrainTable[t].name)
		if in == cand {
			return t, nil
		}
		dist := levenshtein.ComputeDistance(in, cand)
		if bestDist < 0 || dist < bestDist {
			best, bestDist = t, dist
		}
	}
	if in != "" && bestDist <= suggestLimit(len(in)) {
		return 0, fmt.Errorf("unknown terrain %q (did you mean %q?)", name, best.String())
	}
	return 0, fmt.Errorf("unknown terrain %q", name)
}

func suggestLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
