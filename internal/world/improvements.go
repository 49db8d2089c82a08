package world

// Improvement bits of the first and second improvement layers.
const (
	bitIrrigation = 0x02
	bitMine       = 0x04
	bitRoad       = 0x08
	bitRailRoad   = 0x01
)

// Raster is the byte grid a map is decoded from.
type Raster interface {
	Width() int
	Height() int
	At(x, y int) byte
}

// Layer offsets inside the raster.
const (
	improvementRow = Height * 2
	railRoadRow    = Height * 3
	hutMaskColumn  = Width * 2
)

// Smallest raster holding every layer. Map files store a 320×200 image.
const (
	MinRasterWidth  = Width * 3
	MinRasterHeight = Height * 4
)

// ReadImprovements copies the improvement flags out of src and clears huts
// the save recorded as already taken. It only clears huts, never sets them,
// so it runs after hut placement.
func ReadImprovements(m *Map, src Raster) {
	if m == nil || src == nil {
		panic("world: ReadImprovements called with nil map or raster")
	}
	for i := range m.Tiles {
		t := &m.Tiles[i]

		b := src.At(t.X, t.Y+improvementRow)
		t.Irrigation = b&bitIrrigation != 0
		t.Mine = b&bitMine != 0
		t.Road = b&bitRoad != 0
		t.RailRoad = src.At(t.X, t.Y+railRoadRow)&bitRailRoad != 0

		if t.Hut && src.At(t.X+hutMaskColumn, t.Y) != 0 {
			t.Hut = false
		}
	}
}
