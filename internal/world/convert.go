package world

// BlockSize is the edge length of the square blocks the seeded placement
// rules repeat over.
const BlockSize = 4

// IndexOfLocation returns the position of (x, y) inside its block:
// (x mod 4)*4 + (y mod 4).
func IndexOfLocation(x, y int) int {
	return (x%BlockSize)*BlockSize + y%BlockSize
}

// HasExtraResourceOnTile decides the special resource flag. It is a separate
// stream from HutOnTile and the two must stay separate.
func HasExtraResourceOnTile(x, y, seed int) bool {
	bx, by := x/BlockSize, y/BlockSize
	return IndexOfLocation(x, y) == (bx*13+by*11+seed)%16
}

// HutOnTile decides whether (x, y) is the hut cell of its block. The +8 and
// modulus 32 leave about half of all blocks without a hut.
func HutOnTile(x, y, seed int) bool {
	bx, by := x/BlockSize, y/BlockSize
	return IndexOfLocation(x, y) == (bx*13+by*11+seed+8)%32
}
