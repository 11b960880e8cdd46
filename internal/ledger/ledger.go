// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger keeps a history of exported documents in a SQLite
// database inside the document directory. It records written files only;
// the image selection itself is never stored.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/snap2pdf/pkg/types"
)

const (
	dbFile       = ".snap2pdf.db"
	defaultLimit = 20
)

// Ledger manages the export history database.
type Ledger struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the ledger in dir and creates the schema if it does
// not exist.
func Open(dir string) (*Ledger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	l := &Ledger{db: db, now: time.Now}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS exports (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			path TEXT NOT NULL,
			pages INTEGER NOT NULL,
			bytes INTEGER NOT NULL,
			sha256 TEXT NOT NULL,
			shared INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_exports_created_at ON exports(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_exports_path ON exports(path)`,
	}
	for _, stmt := range statements {
		if _, err := l.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores rec, assigning an ID and timestamp when they are unset, and
// returns the stored record.
func (l *Ledger) Record(ctx context.Context, rec types.ExportRecord) (types.ExportRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = l.now().UTC()
	}

	_, err := l.db.ExecContext(ctx,
		`INSERT INTO exports (id, name, path, pages, bytes, sha256, shared, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.Path, rec.Pages, rec.Bytes, rec.SHA256, rec.Shared,
		rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return types.ExportRecord{}, fmt.Errorf("recording export %s: %w", rec.Name, err)
	}
	return rec, nil
}

// MarkShared flags the export with id as shared.
func (l *Ledger) MarkShared(ctx context.Context, id string) error {
	res, err := l.db.ExecContext(ctx, `UPDATE exports SET shared = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("updating export %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("export %s not found", id)
	}
	return nil
}

// List returns the most recent exports, newest first. A limit of zero or
// less uses the default (20).
func (l *Ledger) List(ctx context.Context, limit int) ([]types.ExportRecord, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, name, path, pages, bytes, sha256, shared, created_at
		 FROM exports ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying exports: %w", err)
	}
	defer rows.Close()

	var out []types.ExportRecord
	for rows.Next() {
		var (
			rec     types.ExportRecord
			created string
		)
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Path, &rec.Pages, &rec.Bytes, &rec.SHA256, &rec.Shared, &created); err != nil {
			return nil, fmt.Errorf("scanning export: %w", err)
		}
		rec.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("parsing export time %q: %w", created, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
