package export

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/dustin/go-wikigraph"
)

const schema = `
CREATE TABLE IF NOT EXISTS pages (
	id    INTEGER PRIMARY KEY,
	title TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS redirects (
	title  TEXT PRIMARY KEY,
	target TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS links (
	src INTEGER NOT NULL,
	dst INTEGER NOT NULL,
	PRIMARY KEY (src, dst)
);
CREATE INDEX IF NOT EXISTS links_dst ON links (dst);
`

// ErrIDRange is returned for a page id SQLite's signed integers can't hold.
var ErrIDRange = errors.New("page id out of SQLite integer range")

func sqlID(id uint64) (int64, error) {
	if id > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %d", ErrIDRange, id)
	}
	return int64(id), nil
}

// SQLiteStore keeps the mapping and graph as three relational tables.
// Each Load replaces whatever was there before.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates the database file at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer is all SQLite supports anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load replaces the stored pages, redirects and links in one transaction.
func (s *SQLiteStore) Load(ctx context.Context, tm *wikigraph.TitleMapping, g wikigraph.LinkGraph) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"pages", "redirects", "links"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if err := insertAll(ctx, tx, "INSERT INTO pages (id, title) VALUES (?, ?)",
		func(exec func(args ...interface{}) error) error {
			for id, title := range tm.IDToTitle {
				sid, err := sqlID(id)
				if err != nil {
					return err
				}
				if err := exec(sid, title); err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
		return fmt.Errorf("inserting pages: %w", err)
	}

	if err := insertAll(ctx, tx, "INSERT INTO redirects (title, target) VALUES (?, ?)",
		func(exec func(args ...interface{}) error) error {
			for from, to := range tm.Redirects {
				if err := exec(from, to); err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
		return fmt.Errorf("inserting redirects: %w", err)
	}

	if err := insertAll(ctx, tx, "INSERT INTO links (src, dst) VALUES (?, ?)",
		func(exec func(args ...interface{}) error) error {
			for from, set := range g {
				for to := range set {
					src, err := sqlID(from)
					if err != nil {
						return err
					}
					dst, err := sqlID(to)
					if err != nil {
						return err
					}
					if err := exec(src, dst); err != nil {
						return err
					}
				}
			}
			return nil
		}); err != nil {
		return fmt.Errorf("inserting links: %w", err)
	}

	return tx.Commit()
}

// insertAll prepares query once and hands fill a function executing it.
func insertAll(ctx context.Context, tx *sql.Tx, query string,
	fill func(exec func(args ...interface{}) error) error) error {

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	return fill(func(args ...interface{}) error {
		_, err := stmt.ExecContext(ctx, args...)
		return err
	})
}
