package world

import "testing"

func TestRankSites(t *testing.T) {
	m := filledMap(0, TerrainOcean, false)
	m.At(10, 10).LandValue = 12
	m.At(11, 10).LandValue = 14
	m.At(12, 11).LandValue = 13
	m.At(30, 30).LandValue = 13
	m.At(5, 40).LandValue = 9

	sites := RankSites(m, 3, 3)
	want := []Site{
		{X: 11, Y: 10, LandValue: 14},
		{X: 30, Y: 30, LandValue: 13},
		{X: 5, Y: 40, LandValue: 9},
	}
	if len(sites) != len(want) {
		t.Fatalf("got %d sites %v, want %v", len(sites), sites, want)
	}
	for i := range want {
		if sites[i] != want[i] {
			t.Errorf("site %d = %+v, want %+v", i, sites[i], want[i])
		}
	}
}

func TestRankSitesNoScoredTiles(t *testing.T) {
	m := filledMap(0, TerrainOcean, false)
	if sites := RankSites(m, 5, 2); len(sites) != 0 {
		t.Errorf("got %v, want no sites", sites)
	}
}

func TestDistance(t *testing.T) {
	if d := Distance(0, 0, 3, -5); d != 5 {
		t.Errorf("Distance = %d, want 5", d)
	}
}
