package export

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
)

func count(t *testing.T, s *SQLiteStore, table string) int {
	t.Helper()
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("Error counting %v: %v", table, err)
	}
	return n
}

func TestSQLiteLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wiki.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	defer s.Close()

	tm, g := fruit()
	// Twice, to show a reload replaces rather than appends.
	for i := 0; i < 2; i++ {
		if err := s.Load(context.Background(), tm, g); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
	}

	for table, exp := range map[string]int{"pages": 3, "redirects": 2, "links": 4} {
		if got := count(t, s, table); got != exp {
			t.Errorf("Expected %v rows in %v, got %v", exp, table, got)
		}
	}

	var title string
	err = s.db.QueryRow(`SELECT p.title FROM links l JOIN pages p ON p.id = l.src
		WHERE l.dst = 3`).Scan(&title)
	if err != nil {
		t.Fatalf("Error querying links: %v", err)
	}
	if title != "Cherry" {
		t.Errorf("Expected Cherry to link to Banana, got %q", title)
	}
}

func TestSQLiteLoadCanceled(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "wiki.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tm, g := fruit()
	if err := s.Load(ctx, tm, g); err == nil {
		t.Errorf("Expected an error loading with a canceled context")
	}
}

func TestSQLiteLoadIDRange(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "wiki.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	defer s.Close()

	tm, g := fruit()
	if err := s.Load(context.Background(), tm, g); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	huge := uint64(math.MaxInt64) + 1
	g.Add(3, huge)
	if err := s.Load(context.Background(), tm, g); !errors.Is(err, ErrIDRange) {
		t.Fatalf("Expected ErrIDRange, got %v", err)
	}
	// The failed load leaves the previous contents in place.
	if got := count(t, s, "links"); got != 4 {
		t.Errorf("Expected the 4 earlier links, got %v", got)
	}

	tm.IDToTitle[huge] = "Huge"
	tm.TitleToID["Huge"] = huge
	delete(g, 3)
	if err := s.Load(context.Background(), tm, g); !errors.Is(err, ErrIDRange) {
		t.Fatalf("Expected ErrIDRange for a page, got %v", err)
	}
}
