package foodgrid

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // register sqlite3 driver
)

// Ledger is a history of conversions kept in an SQLite database. Each source
// image is stored once, keyed by the SHA-1 of its contents, along with the
// grid produced from it.
type Ledger struct {
	db  *sql.DB
	now func() time.Time
}

// Entry is a single conversion recorded in the ledger
type Entry struct {
	Name string
	SHA1 string
	Grid []byte
	Time time.Time
}

// NewLedger opens or creates the ledger database in file
func NewLedger(file string) (*Ledger, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS source (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, grid BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS conversion (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL, source_id INTEGER NOT NULL, converted_at INTEGER NOT NULL, FOREIGN KEY(source_id) REFERENCES source(id))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Ledger{
		db:  db,
		now: time.Now,
	}, nil
}

// Close closes the underlying database
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) addSource(sha string, grid []byte) (int64, error) {
	var id int64
	switch err := l.db.QueryRow("SELECT id FROM source WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := l.db.Exec("INSERT INTO source (sha1, grid) VALUES (?, ?)", sha, grid)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		if _, err := l.db.Exec("UPDATE source SET grid = ? WHERE id = ?", grid, id); err != nil {
			return 0, err
		}
		return id, nil
	default:
		return 0, err
	}
}

// Record adds a conversion of the source image with the given SHA-1 into the
// named grid
func (l *Ledger) Record(name, sha string, grid []byte) error {
	source, err := l.addSource(sha, grid)
	if err != nil {
		return err
	}

	if _, err := l.db.Exec("INSERT INTO conversion (name, source_id, converted_at) VALUES (?, ?, ?)", name, source, l.now().Unix()); err != nil {
		return err
	}
	return nil
}

// FindGrid returns the most recent grid produced from the source image with
// the given SHA-1, or nil if there isn't one
func (l *Ledger) FindGrid(sha string) ([]byte, error) {
	var grid []byte
	switch err := l.db.QueryRow("SELECT grid FROM source WHERE sha1 = ?", sha).Scan(&grid); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return grid, nil
	default:
		return nil, err
	}
}

// History returns every recorded conversion, oldest first
func (l *Ledger) History() ([]Entry, error) {
	rows, err := l.db.Query("SELECT c.name, s.sha1, s.grid, c.converted_at FROM conversion AS c JOIN source AS s ON c.source_id = s.id ORDER BY c.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts int64
		if err := rows.Scan(&e.Name, &e.SHA1, &e.Grid, &ts); err != nil {
			return nil, err
		}
		e.Time = time.Unix(ts, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
