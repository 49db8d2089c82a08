package world

import "fmt"

// Tile is a single cell of the world map.
type Tile struct {
	X int `json:"x"`
	Y int `json:"y"`

	Terrain Terrain `json:"terrain"`
	Special bool    `json:"special"`

	Irrigation bool `json:"irrigation"`
	Mine       bool `json:"mine"`
	Road       bool `json:"road"`
	RailRoad   bool `json:"railroad"`
	Hut        bool `json:"hut"`

	// LandValue is 0 for unscored tiles, otherwise 8..15.
	LandValue int `json:"land_value"`

	// ContinentID is assigned by a later pass and left at zero here.
	ContinentID int `json:"continent_id"`
}

// LandScore returns the tile's intrinsic base score.
func (t *Tile) LandScore() int {
	return t.Terrain.LandScore(t.Special)
}

func (t *Tile) String() string {
	s := fmt.Sprintf("%s(%d,%d)", t.Terrain, t.X, t.Y)
	if t.Special {
		s += "*"
	}
	return s
}
