package state

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/glebarez/sqlite"
	"github.com/google/uuid"
)

// FileName is the journal's name inside the data directory.
const FileName = "state.db"

// Download statuses recorded in the journal.
const (
	StatusStarted = "started"
	StatusSaved   = "saved"
	StatusFailed  = "failed"
)

type DB struct {
	SQL  *sql.DB
	Path string
}

// Open opens (creating if needed) the journal at path. The parent directory must exist.
func Open(path string) (*DB, error) {
	if path == "" {
		return nil, errors.New("journal path required")
	}
	if fi, err := os.Stat(filepath.Dir(path)); err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("journal dir %s unavailable: %v", filepath.Dir(path), err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout=5000&_pragma=journal_mode(WAL)", path)
	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := InitSchema(sqldb); err != nil {
		_ = sqldb.Close()
		return nil, err
	}
	return &DB{SQL: sqldb, Path: path}, nil
}

func (db *DB) Close() error {
	if db == nil || db.SQL == nil {
		return nil
	}
	return db.SQL.Close()
}

// InitSchema creates the journal tables on an open database.
func InitSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS downloads (
			id TEXT PRIMARY KEY,
			url TEXT,
			filename TEXT NOT NULL,
			dest TEXT NOT NULL,
			size INTEGER DEFAULT 0,
			sha256 TEXT,
			status TEXT NOT NULL,
			last_error TEXT,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_downloads_updated ON downloads(updated_at);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

type DownloadRow struct {
	ID        string
	URL       string
	Filename  string
	Dest      string
	Size      int64
	SHA256    string
	Status    string
	LastError string
	CreatedAt int64
	UpdatedAt int64
}

// Record inserts or updates row by ID, assigning a new ID when empty. The row's ID
// is returned.
func (db *DB) Record(row DownloadRow) (string, error) {
	if row.ID == "" {
		row.ID = uuid.New().String()
	}
	now := time.Now().UnixNano()
	_, err := db.SQL.Exec(`INSERT INTO downloads(id, url, filename, dest, size, sha256, status, last_error, created_at, updated_at)
		VALUES(?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET url=excluded.url, filename=excluded.filename, dest=excluded.dest, size=excluded.size, sha256=excluded.sha256, status=excluded.status, last_error=excluded.last_error, updated_at=excluded.updated_at`,
		row.ID, row.URL, row.Filename, row.Dest, row.Size, row.SHA256, row.Status, row.LastError, now, now)
	if err != nil {
		return "", err
	}
	return row.ID, nil
}

// Get returns the row with id, or sql.ErrNoRows.
func (db *DB) Get(id string) (DownloadRow, error) {
	var r DownloadRow
	err := db.SQL.QueryRow(`SELECT `+columns+` FROM downloads WHERE id=?`, id).
		Scan(&r.ID, &r.URL, &r.Filename, &r.Dest, &r.Size, &r.SHA256, &r.Status, &r.LastError, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

const columns = `id,
    COALESCE(url, ''),
    filename,
    dest,
    COALESCE(size, 0),
    COALESCE(sha256, ''),
    status,
    COALESCE(last_error, ''),
    created_at,
    updated_at`

// List returns the newest rows first; limit <= 0 returns everything.
func (db *DB) List(limit int) ([]DownloadRow, error) {
	q := `SELECT ` + columns + ` FROM downloads ORDER BY updated_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.SQL.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []DownloadRow
	for rows.Next() {
		var r DownloadRow
		if err := rows.Scan(&r.ID, &r.URL, &r.Filename, &r.Dest, &r.Size, &r.SHA256, &r.Status, &r.LastError, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Clear removes every row and reports how many were deleted.
func (db *DB) Clear() (int64, error) {
	res, err := db.SQL.Exec(`DELETE FROM downloads`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
