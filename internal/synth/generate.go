// Package synth generates map rasters in the legacy layout from layered
// simplex noise. It stands in for MAP.PIC when no original file is available.
package synth

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/civmap/internal/raster"
	"github.com/talgya/civmap/internal/world"
)

// Terrain codes as stored in the base layer.
const (
	codeOcean     = 1
	codeForest    = 2
	codeSwamp     = 3
	codePlains    = 6
	codeTundra    = 7
	codeRiver     = 9
	codeGrassland = 10
	codeJungle    = 11
	codeHills     = 12
	codeMountains = 13
	codeDesert    = 14
	codeArctic    = 15
)

// GenConfig holds world generation parameters.
type GenConfig struct {
	Seed        int64   // Noise seed (0 = random)
	SeaLevel    float64 // Elevation threshold for ocean (0.0–1.0)
	HillLvl     float64 // Elevation threshold for hills (0.0–1.0)
	MountainLvl float64 // Elevation threshold for mountains (0.0–1.0)
	Rivers      int     // Maximum number of rivers traced
	RemovedHuts float64 // Share of hut mask cells marked as taken
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Seed:        0,
		SeaLevel:    0.42,
		HillLvl:     0.68,
		MountainLvl: 0.78,
		Rivers:      12,
		RemovedHuts: 0.1,
	}
}

// field holds per tile climate samples.
type field struct {
	elev, rain, temp [world.Height][world.Width]float64
}

// Generate returns a raster with terrain, improvement and hut mask layers.
func Generate(cfg GenConfig) *raster.Bitmap {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	// Three noise generators for independent layers.
	elevNoise := opensimplex.NewNormalized(seed)
	rainNoise := opensimplex.NewNormalized(seed + 1)
	tempNoise := opensimplex.NewNormalized(seed + 2)

	var f field
	for y := 0; y < world.Height; y++ {
		// 0 at the poles, 1 at the equator.
		lat := 1.0 - abs(float64(y)-float64(world.Height-1)/2)/(float64(world.Height-1)/2)
		for x := 0; x < world.Width; x++ {
			fx, fy := float64(x), float64(y)
			elev := octaveNoise(elevNoise, fx, fy, 4, 0.06, 0.5)
			rain := octaveNoise(rainNoise, fx, fy, 3, 0.05, 0.5)
			temp := octaveNoise(tempNoise, fx, fy, 3, 0.04, 0.5)

			// Temperature follows latitude and drops with elevation.
			f.elev[y][x] = elev
			f.rain[y][x] = rain
			f.temp[y][x] = temp*0.3 + lat*0.6 + (1.0-elev)*0.1
		}
	}

	bm := raster.New(world.Width*4, world.Height*4)
	for y := 0; y < world.Height; y++ {
		for x := 0; x < world.Width; x++ {
			bm.Set(x, y, deriveCode(f.elev[y][x], f.rain[y][x], f.temp[y][x], y, cfg))
		}
	}

	rng := rand.New(rand.NewSource(seed + 100))
	placeRivers(bm, &f, rng, cfg.Rivers)
	placeImprovements(bm, rng)
	markRemovedHuts(bm, rng, cfg.RemovedHuts)
	return bm
}

// deriveCode determines the terrain code from environmental parameters.
func deriveCode(elev, rain, temp float64, y int, cfg GenConfig) byte {
	if y == 0 || y == world.Height-1 {
		return codeArctic
	}
	if elev < cfg.SeaLevel {
		return codeOcean
	}
	if temp < 0.2 {
		return codeArctic
	}
	if elev > cfg.MountainLvl {
		return codeMountains
	}
	if elev > cfg.HillLvl {
		return codeHills
	}
	if temp < 0.35 {
		return codeTundra
	}
	if rain < 0.3 && temp > 0.6 {
		return codeDesert
	}
	if rain > 0.7 && temp > 0.7 {
		return codeJungle
	}
	if rain > 0.7 && elev < cfg.SeaLevel+0.05 {
		return codeSwamp
	}
	if rain > 0.55 {
		return codeForest
	}
	if rain > 0.4 {
		return codeGrassland
	}
	return codePlains
}

var steps = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// placeRivers picks hill and mountain tiles as sources and traces a river
// from each by steepest descent.
func placeRivers(bm *raster.Bitmap, f *field, rng *rand.Rand, limit int) {
	var sources [][2]int
	for y := 1; y < world.Height-1; y++ {
		for x := 0; x < world.Width; x++ {
			c := bm.At(x, y)
			if c == codeHills || c == codeMountains {
				sources = append(sources, [2]int{x, y})
			}
		}
	}

	rng.Shuffle(len(sources), func(i, j int) {
		sources[i], sources[j] = sources[j], sources[i]
	})
	if len(sources) > limit {
		sources = sources[:limit]
	}

	for _, s := range sources {
		traceRiver(bm, f, s[0], s[1])
	}
}

// traceRiver follows the steepest descent from a source tile until reaching
// ocean or running out of downhill path.
func traceRiver(bm *raster.Bitmap, f *field, x, y int) {
	visited := make(map[[2]int]bool)
	maxSteps := 40

	for step := 0; step < maxSteps; step++ {
		visited[[2]int{x, y}] = true
		c := bm.At(x, y)
		if c == codeOcean || c == codeArctic {
			break
		}
		if c != codeMountains && c != codeHills {
			bm.Set(x, y, codeRiver)
		}

		bestX, bestY, found := 0, 0, false
		bestElev := f.elev[y][x]
		for _, d := range steps {
			nx, ny := x+d[0], y+d[1]
			if nx < 0 || nx >= world.Width || ny < 1 || ny >= world.Height-1 || visited[[2]int{nx, ny}] {
				continue
			}
			if f.elev[ny][nx] < bestElev {
				bestElev = f.elev[ny][nx]
				bestX, bestY, found = nx, ny, true
			}
		}
		if !found {
			break
		}
		x, y = bestX, bestY
	}
}

// placeImprovements irrigates some land next to rivers and runs a few roads.
func placeImprovements(bm *raster.Bitmap, rng *rand.Rand) {
	const layer1, layer2 = world.Height * 2, world.Height * 3

	for y := 1; y < world.Height-1; y++ {
		for x := 1; x < world.Width-1; x++ {
			c := bm.At(x, y)
			if c != codePlains && c != codeGrassland && c != codeDesert {
				continue
			}
			nearRiver := false
			for _, d := range steps {
				if bm.At(x+d[0], y+d[1]) == codeRiver {
					nearRiver = true
					break
				}
			}
			if nearRiver && rng.Float64() < 0.25 {
				bm.Set(x, y+layer1, bm.At(x, y+layer1)|0x02)
			}
		}
	}

	for i := 0; i < 3; i++ {
		y := 5 + rng.Intn(world.Height-10)
		x0 := rng.Intn(world.Width / 2)
		for x := x0; x < x0+world.Width/4; x++ {
			if bm.At(x, y) == codeOcean {
				continue
			}
			bm.Set(x, y+layer1, bm.At(x, y+layer1)|0x08)
			if i == 0 {
				bm.Set(x, y+layer2, 0x01)
			}
		}
	}
}

// markRemovedHuts sets the hut mask for a share of the cells.
func markRemovedHuts(bm *raster.Bitmap, rng *rand.Rand, share float64) {
	for y := 0; y < world.Height; y++ {
		for x := 0; x < world.Width; x++ {
			if rng.Float64() < share {
				bm.Set(x+world.Width*2, y, 1)
			}
		}
	}
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
