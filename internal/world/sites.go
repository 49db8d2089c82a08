// Site ranking. Picks well spaced, high land value tiles that collaborators
// such as start position selection and city growth read from a finished map.
package world

import "sort"

// Site is a candidate city location.
type Site struct {
	X         int `json:"x"`
	Y         int `json:"y"`
	LandValue int `json:"land_value"`
}

// RankSites returns up to count scored tiles, best land value first, with no
// two sites closer than minDist (Chebyshev distance). Ties go to the tile
// nearer the top left so the result only depends on the map.
func RankSites(m *Map, count, minDist int) []Site {
	if m == nil {
		panic("world: RankSites called with nil map")
	}

	var candidates []Site
	for i := range m.Tiles {
		t := &m.Tiles[i]
		if t.LandValue == 0 {
			continue
		}
		candidates = append(candidates, Site{X: t.X, Y: t.Y, LandValue: t.LandValue})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.LandValue != b.LandValue {
			return a.LandValue > b.LandValue
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	var sites []Site
	for _, c := range candidates {
		if len(sites) >= count {
			break
		}
		if tooClose(c, sites, minDist) {
			continue
		}
		sites = append(sites, c)
	}
	return sites
}

func tooClose(s Site, existing []Site, minDist int) bool {
	for _, e := range existing {
		if Distance(s.X, s.Y, e.X, e.Y) < minDist {
			return true
		}
	}
	return false
}

// Distance returns the Chebyshev distance between two grid positions.
func Distance(x1, y1, x2, y2 int) int {
	dx := abs(x1 - x2)
	dy := abs(y1 - y2)
	if dx > dy {
		return dx
	}
	return dy
}
