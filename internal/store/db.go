// Package store persists derived state (recent folders and window
// placement) in a local SQLite database served by a single worker goroutine.
package store

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/finchapp/finch/internal/debug"
)

type EventType int

const (
	RecordVisit EventType = iota
	FetchRecents
	SavePlacement
	FetchPlacement
)

// Placement is a remembered window geometry for a folder.
type Placement struct {
	X, Y          int
	Width, Height int
}

type Request struct {
	Op        EventType
	Path      string
	Placement Placement
}

type Response struct {
	Op        EventType
	Recents   []string // Most recent first
	Placement Placement
	Found     bool // Whether FetchPlacement matched a row
	Err       error
}

type DB struct {
	conn         *sql.DB
	RequestChan  chan Request
	ResponseChan chan Response
}

func NewDB() *DB {
	return &DB{
		RequestChan:  make(chan Request, 10),
		ResponseChan: make(chan Response, 10),
	}
}

// DefaultPath returns the standard location of the database file.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "finch", "finch.db"), nil
}

// Open initializes the database connection and schema
func (d *DB) Open(dbPath string) error {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}

	// Performance Tuning
	// WAL mode allows simultaneous readers and writers
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return err
	}
	// Synchronous NORMAL is safe against app crashes, faster than FULL
	if _, err := db.Exec("PRAGMA synchronous=NORMAL;"); err != nil {
		return err
	}

	// Schema - Recent folders table
	query := `
	CREATE TABLE IF NOT EXISTS recents (
		path TEXT PRIMARY KEY,
		visited_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := db.Exec(query); err != nil {
		return err
	}

	// Schema - Window placements table
	placementQuery := `
	CREATE TABLE IF NOT EXISTS placements (
		path TEXT PRIMARY KEY,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL
	);
	`
	if _, err := db.Exec(placementQuery); err != nil {
		return err
	}

	d.conn = db
	return nil
}

func (d *DB) Start() {
	for req := range d.RequestChan {
		switch req.Op {
		case RecordVisit:
			d.handleRecordVisit(req.Path)
		case FetchRecents:
			d.handleFetchRecents()
		case SavePlacement:
			d.handleSavePlacement(req.Path, req.Placement)
		case FetchPlacement:
			d.handleFetchPlacement(req.Path)
		}
	}
}

func (d *DB) handleRecordVisit(path string) {
	// Upsert refreshes the timestamp for a repeat visit
	_, err := d.conn.Exec(
		"INSERT INTO recents (path) VALUES (?) ON CONFLICT(path) DO UPDATE SET visited_at = CURRENT_TIMESTAMP",
		path)
	if err != nil {
		log.Printf("Store Error: %v", err)
	}
	debug.Log(debug.STORE, "Recorded visit: %s", path)
}

func (d *DB) handleFetchRecents() {
	rows, err := d.conn.Query("SELECT path FROM recents ORDER BY visited_at DESC LIMIT 20")
	if err != nil {
		d.ResponseChan <- Response{Op: FetchRecents, Err: err}
		return
	}
	defer rows.Close()

	var recents []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err == nil {
			recents = append(recents, path)
		}
	}

	d.ResponseChan <- Response{Op: FetchRecents, Recents: recents}
}

func (d *DB) handleSavePlacement(path string, p Placement) {
	_, err := d.conn.Exec(
		"INSERT OR REPLACE INTO placements (path, x, y, width, height) VALUES (?, ?, ?, ?, ?)",
		path, p.X, p.Y, p.Width, p.Height)
	if err != nil {
		log.Printf("Store Error saving placement: %v", err)
	}
	debug.Log(debug.STORE, "Saved placement for %s: %+v", path, p)
}

func (d *DB) handleFetchPlacement(path string) {
	var p Placement
	err := d.conn.QueryRow(
		"SELECT x, y, width, height FROM placements WHERE path = ?", path).
		Scan(&p.X, &p.Y, &p.Width, &p.Height)
	if err == sql.ErrNoRows {
		d.ResponseChan <- Response{Op: FetchPlacement}
		return
	}
	if err != nil {
		d.ResponseChan <- Response{Op: FetchPlacement, Err: err}
		return
	}
	d.ResponseChan <- Response{Op: FetchPlacement, Placement: p, Found: true}
}

func (d *DB) Close() {
	if d.conn != nil {
		d.conn.Close()
	}
}
