// Command civmap decodes a legacy map file, stores the tile grid and serves
// it over a read-only HTTP API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/civmap/internal/api"
	"github.com/talgya/civmap/internal/config"
	"github.com/talgya/civmap/internal/persistence"
	"github.com/talgya/civmap/internal/synth"
	"github.com/talgya/civmap/internal/world"
)

func main() {
	seed := flag.Int("seed", -1, "map seed (overrides config)")
	dir := flag.String("dir", "", "directory holding the map file (overrides config)")
	port := flag.Int("port", -1, "API port, 0 disables (overrides config)")
	flag.Parse()

	// ── Configuration ────────────────────────────────────────────────
	cfg, cfgPath, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *seed >= 0 {
		cfg.Map.Seed = *seed
	}
	if *dir != "" {
		cfg.Map.Dir = *dir
	}
	if *port >= 0 {
		cfg.API.Port = *port
	}

	level, _ := config.ParseLevel(cfg.Log.Level)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	slog.Info("configuration loaded", "path", cfgPath, "dir", cfg.Map.Dir, "seed", cfg.Map.Seed)

	// ── World Map ────────────────────────────────────────────────────
	m, err := loadMap(cfg)
	if err != nil {
		slog.Error("failed to load map", "error", err)
		os.Exit(1)
	}
	logSummary(m)

	// ── Database ─────────────────────────────────────────────────────
	var db *persistence.DB
	if cfg.Database.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			slog.Error("failed to create database directory", "error", err)
			os.Exit(1)
		}
		db, err = persistence.Open(cfg.Database.Path)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if _, err := db.SaveMap(m); err != nil {
			slog.Error("failed to save map", "error", err)
		}
	}

	if cfg.API.Port == 0 {
		return
	}

	// ── HTTP API ─────────────────────────────────────────────────────
	srv := &api.Server{Map: m, DB: db, Port: cfg.API.Port, TrustProxy: cfg.API.TrustProxy}
	srv.Start()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", cfg.API.Port)
	<-ctx.Done()

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}

// loadConfig reads CONFIG_PATH, or ./configs/civmap.yaml when it exists, and
// falls back to the defaults otherwise.
func loadConfig() (*config.Config, string, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./configs/civmap.yaml"
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return config.Default(), "", nil
		}
	}
	cfg, err := config.Load(path)
	return cfg, path, err
}

// loadMap decodes the configured map file and generates one when the file is
// missing and synthesis is enabled.
func loadMap(cfg *config.Config) (*world.Map, error) {
	loader := world.NewLoader(os.DirFS(cfg.Map.Dir))
	loader.Resource = cfg.Map.Resource

	m, err := loader.Load(cfg.Map.Seed)
	if err == nil {
		slog.Info("map decoded", "resource", filepath.Join(cfg.Map.Dir, cfg.Map.Resource))
		return m, nil
	}
	if !errors.Is(err, fs.ErrNotExist) || !cfg.Map.Synthesize {
		return nil, err
	}

	slog.Warn("map file not found, generating a synthetic map", "resource", cfg.Map.Resource)
	gen := synth.DefaultGenConfig()
	gen.Seed = int64(cfg.Map.Seed) + 1
	return loader.Build(synth.Generate(gen), cfg.Map.Seed)
}

func logSummary(m *world.Map) {
	counts := world.TerrainCounts(m)
	terrains := make([]world.Terrain, 0, len(counts))
	for t := range counts {
		terrains = append(terrains, t)
	}
	sort.Slice(terrains, func(i, j int) bool { return terrains[i] < terrains[j] })
	for _, t := range terrains {
		slog.Info("terrain", "type", t.String(), "count", counts[t])
	}

	scored := 0
	for i := range m.Tiles {
		if m.Tiles[i].LandValue > 0 {
			scored++
		}
	}
	slog.Info("map ready",
		"seed", m.Seed,
		"tiles", humanize.Comma(int64(m.TileCount())),
		"huts", world.HutCount(m),
		"scored", humanize.Comma(int64(scored)),
	)
	for _, s := range world.RankSites(m, 5, 4) {
		slog.Info("candidate site", "x", s.X, "y", s.Y, "land_value", s.LandValue)
	}
}
