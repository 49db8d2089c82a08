// Package persistence provides SQLite-based storage for decoded maps so
// collaborators can read tiles without decoding the raster again.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/civmap/internal/world"
)

// ErrNotFound is returned when no stored map matches.
var ErrNotFound = errors.New("persistence: map not found")

// DB wraps a SQLite connection for map storage.
type DB struct {
	conn *sqlx.DB
}

// MapInfo describes a stored map.
type MapInfo struct {
	ID        string    `db:"id" json:"id"`
	Seed      int       `db:"seed" json:"seed"`
	Huts      int       `db:"huts" json:"huts"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type tileRow struct {
	MapID       string `db:"map_id"`
	X           int    `db:"x"`
	Y           int    `db:"y"`
	Terrain     uint8  `db:"terrain"`
	Special     bool   `db:"special"`
	Irrigation  bool   `db:"irrigation"`
	Mine        bool   `db:"mine"`
	Road        bool   `db:"road"`
	RailRoad    bool   `db:"railroad"`
	Hut         bool   `db:"hut"`
	LandValue   int    `db:"land_value"`
	ContinentID int    `db:"continent_id"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS maps (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		huts INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tiles (
		map_id TEXT NOT NULL REFERENCES maps(id),
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		terrain INTEGER NOT NULL,
		special INTEGER NOT NULL,
		irrigation INTEGER NOT NULL,
		mine INTEGER NOT NULL,
		road INTEGER NOT NULL,
		railroad INTEGER NOT NULL,
		hut INTEGER NOT NULL,
		land_value INTEGER NOT NULL,
		continent_id INTEGER NOT NULL,
		PRIMARY KEY (map_id, x, y)
	);

	CREATE INDEX IF NOT EXISTS idx_maps_seed ON maps(seed);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveMap stores m under a new id and returns it.
func (db *DB) SaveMap(m *world.Map) (string, error) {
	id := uuid.NewString()

	tx, err := db.conn.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("INSERT INTO maps (id, seed, huts, created_at) VALUES (?, ?, ?, ?)",
		id, m.Seed, world.HutCount(m), time.Now().UTC()); err != nil {
		return "", fmt.Errorf("insert map: %w", err)
	}

	stmt, err := tx.PrepareNamed(`INSERT INTO tiles
		(map_id, x, y, terrain, special, irrigation, mine, road, railroad, hut, land_value, continent_id)
		VALUES (:map_id, :x, :y, :terrain, :special, :irrigation, :mine, :road, :railroad, :hut, :land_value, :continent_id)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for i := range m.Tiles {
		t := &m.Tiles[i]
		row := tileRow{
			MapID: id, X: t.X, Y: t.Y,
			Terrain: uint8(t.Terrain), Special: t.Special,
			Irrigation: t.Irrigation, Mine: t.Mine, Road: t.Road, RailRoad: t.RailRoad,
			Hut: t.Hut, LandValue: t.LandValue, ContinentID: t.ContinentID,
		}
		if _, err := stmt.Exec(row); err != nil {
			return "", fmt.Errorf("insert tile (%d,%d): %w", t.X, t.Y, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	slog.Info("map saved", "id", id, "seed", m.Seed)
	return id, nil
}

// LoadMap reads the map stored under id.
func (db *DB) LoadMap(id string) (*world.Map, error) {
	var info MapInfo
	err := db.conn.Get(&info, "SELECT id, seed, huts, created_at FROM maps WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load map %s: %w", id, err)
	}

	var rows []tileRow
	if err := db.conn.Select(&rows, "SELECT * FROM tiles WHERE map_id = ?", id); err != nil {
		return nil, fmt.Errorf("load tiles of %s: %w", id, err)
	}

	m := world.NewMap(info.Seed)
	for _, r := range rows {
		m.Set(world.Tile{
			X: r.X, Y: r.Y,
			Terrain: world.Terrain(r.Terrain), Special: r.Special,
			Irrigation: r.Irrigation, Mine: r.Mine, Road: r.Road, RailRoad: r.RailRoad,
			Hut: r.Hut, LandValue: r.LandValue, ContinentID: r.ContinentID,
		})
	}
	return m, nil
}

// LatestForSeed returns the id of the most recently saved map for seed.
func (db *DB) LatestForSeed(seed int) (string, error) {
	var id string
	err := db.conn.Get(&id, "SELECT id FROM maps WHERE seed = ? ORDER BY created_at DESC, rowid DESC LIMIT 1", seed)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: seed %d", ErrNotFound, seed)
	}
	return id, err
}

// ListMaps returns every stored map, newest first.
func (db *DB) ListMaps() ([]MapInfo, error) {
	var maps []MapInfo
	err := db.conn.Select(&maps, "SELECT id, seed, huts, created_at FROM maps ORDER BY created_at DESC, rowid DESC")
	return maps, err
}
