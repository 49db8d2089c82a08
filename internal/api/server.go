// Package api provides a read-only HTTP API over a decoded map.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/civmap/internal/persistence"
	"github.com/talgya/civmap/internal/world"
)

// Server serves a map over HTTP.
type Server struct {
	Map  *world.Map
	DB   *persistence.DB // optional, enables /api/v1/maps
	Port int

	// MapLimit bounds bulk map requests per client per minute. 0 uses 60.
	MapLimit int
	// TrustProxy keys the rate limit on X-Forwarded-For.
	TrustProxy bool

	srv *http.Server
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	limit := s.MapLimit
	if limit == 0 {
		limit = 60
	}
	mapLimiter := NewRateLimiter(limit, time.Minute)
	mapLimiter.TrustForwarded = s.TrustProxy

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/status", getOnly(s.handleStatus))
	mux.HandleFunc("/api/v1/tile", getOnly(s.handleTile))
	mux.HandleFunc("/api/v1/map", getOnly(RateLimitMiddleware(mapLimiter, s.handleBulkMap)))
	mux.HandleFunc("/api/v1/terrain", getOnly(s.handleTerrain))
	mux.HandleFunc("/api/v1/sites", getOnly(s.handleSites))
	mux.HandleFunc("/api/v1/maps", getOnly(s.handleMaps))
	return mux
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.Port)
	s.srv = &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	slog.Info("HTTP API starting", "addr", addr, "storage", s.DB != nil)

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// Shutdown stops a server started with Start.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func getOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	terrain := make(map[string]int)
	for t, n := range world.TerrainCounts(s.Map) {
		terrain[t.String()] = n
	}
	tiles, huts := s.Map.TileCount(), world.HutCount(s.Map)
	writeJSON(w, map[string]any{
		"seed":    s.Map.Seed,
		"width":   world.Width,
		"height":  world.Height,
		"tiles":   tiles,
		"huts":    huts,
		"terrain": terrain,
		"summary": fmt.Sprintf("%s tiles, %s huts", humanize.Comma(int64(tiles)), humanize.Comma(int64(huts))),
	})
}

type tileDetail struct {
	world.Tile
	TerrainName string `json:"terrain_name"`
}

// handleTile returns one tile: GET /api/v1/tile?x=&y=
func (s *Server) handleTile(w http.ResponseWriter, r *http.Request) {
	x, err1 := strconv.Atoi(r.URL.Query().Get("x"))
	y, err2 := strconv.Atoi(r.URL.Query().Get("y"))
	if err1 != nil || err2 != nil {
		http.Error(w, "usage: /api/v1/tile?x=N&y=N", http.StatusBadRequest)
		return
	}
	t := s.Map.At(x, y)
	if t == nil {
		http.Error(w, "tile not found", http.StatusNotFound)
		return
	}
	writeJSON(w, tileDetail{Tile: *t, TerrainName: t.Terrain.String()})
}

// handleBulkMap returns every tile as a compact row for map renderers.
func (s *Server) handleBulkMap(w http.ResponseWriter, r *http.Request) {
	type tileEntry struct {
		X         int   `json:"x"`
		Y         int   `json:"y"`
		Terrain   uint8 `json:"terrain"`
		Special   bool  `json:"special,omitempty"`
		Hut       bool  `json:"hut,omitempty"`
		LandValue int   `json:"land_value,omitempty"`
		// Improvement bits: 1 irrigation, 2 mine, 4 road, 8 railroad.
		Improvements uint8 `json:"improvements,omitempty"`
	}

	tiles := make([]tileEntry, 0, s.Map.TileCount())
	for i := range s.Map.Tiles {
		t := &s.Map.Tiles[i]
		e := tileEntry{
			X: t.X, Y: t.Y,
			Terrain:   uint8(t.Terrain),
			Special:   t.Special,
			Hut:       t.Hut,
			LandValue: t.LandValue,
		}
		if t.Irrigation {
			e.Improvements |= 1
		}
		if t.Mine {
			e.Improvements |= 2
		}
		if t.Road {
			e.Improvements |= 4
		}
		if t.RailRoad {
			e.Improvements |= 8
		}
		tiles = append(tiles, e)
	}

	writeJSON(w, map[string]any{
		"seed":   s.Map.Seed,
		"width":  world.Width,
		"height": world.Height,
		"tiles":  tiles,
	})
}

// handleTerrain lists the positions of one terrain: GET /api/v1/terrain?type=name
func (s *Server) handleTerrain(w http.ResponseWriter, r *http.Request) {
	terrain, err := world.ParseTerrain(r.URL.Query().Get("type"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	type pos struct {
		X int `json:"x"`
		Y int `json:"y"`
	}
	positions := []pos{}
	for i := range s.Map.Tiles {
		if t := &s.Map.Tiles[i]; t.Terrain == terrain {
			positions = append(positions, pos{t.X, t.Y})
		}
	}
	writeJSON(w, map[string]any{
		"terrain": terrain.String(),
		"count":   len(positions),
		"tiles":   positions,
	})
}

// handleSites ranks city sites: GET /api/v1/sites?count=N&spacing=N
func (s *Server) handleSites(w http.ResponseWriter, r *http.Request) {
	count, spacing := 10, 4
	if v := r.URL.Query().Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 200 {
			http.Error(w, "count must be 1..200", http.StatusBadRequest)
			return
		}
		count = n
	}
	if v := r.URL.Query().Get("spacing"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "spacing must be a non-negative integer", http.StatusBadRequest)
			return
		}
		spacing = n
	}
	writeJSON(w, world.RankSites(s.Map, count, spacing))
}

func (s *Server) handleMaps(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "storage disabled", http.StatusNotFound)
		return
	}
	maps, err := s.DB.ListMaps()
	if err != nil {
		slog.Error("list maps failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if maps == nil {
		maps = []persistence.MapInfo{}
	}
	writeJSON(w, maps)
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		slog.Debug("write response failed", "error", err)
	}
}
