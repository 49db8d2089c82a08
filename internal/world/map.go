package world

import "fmt"

// Grid dimensions of the legacy map.
const (
	Width  = 80
	Height = 50
)

// Map holds the decoded tile grid and the seed it was derived with.
type Map struct {
	Seed  int    `json:"seed"`
	Tiles []Tile `json:"-"` // row-major, Width×Height
}

// NewMap creates a grid of Ocean tiles with their positions filled in.
func NewMap(seed int) *Map {
	m := &Map{
		Seed:  seed,
		Tiles: make([]Tile, Width*Height),
	}
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			t := &m.Tiles[y*Width+x]
			t.X, t.Y = x, y
		}
	}
	return m
}

// InBounds returns true if (x, y) lies on the grid.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// At returns the tile at (x, y), or nil if out of bounds.
func (m *Map) At(x, y int) *Tile {
	if !m.InBounds(x, y) {
		return nil
	}
	return &m.Tiles[y*Width+x]
}

// Set stores t at its own position.
func (m *Map) Set(t Tile) {
	if p := m.At(t.X, t.Y); p != nil {
		*p = t
	}
}

// TileCount returns the total number of tiles in the map.
func (m *Map) TileCount() int {
	return len(m.Tiles)
}

// String returns a summary of the map.
func (m *Map) String() string {
	return fmt.Sprintf("Map(seed=%d, %dx%d)", m.Seed, Width, Height)
}

// TerrainCounts returns a summary of terrain type distribution.
func TerrainCounts(m *Map) map[Terrain]int {
	counts := make(map[Terrain]int)
	for i := range m.Tiles {
		counts[m.Tiles[i].Terrain]++
	}
	return counts
}

// HutCount returns the number of tiles currently holding a hut.
func HutCount(m *Map) int {
	n := 0
	for i := range m.Tiles {
		if m.Tiles[i].Hut {
			n++
		}
	}
	return n
}
