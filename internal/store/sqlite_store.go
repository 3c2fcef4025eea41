package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	_ "github.com/asg017/sqlite-vec-go-bindings/ncruces"
	_ "github.com/ncruces/go-sqlite3/driver"

	"github.com/kittclouds/morfo/pkg/lexicon"
	"github.com/kittclouds/morfo/pkg/model"
	"github.com/kittclouds/morfo/pkg/resources"
	"github.com/kittclouds/morfo/pkg/tagset"
)

// SQLiteStore is the SQLite-backed resource store.
// Safe for concurrent use.
type SQLiteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

// schema defines the resource tables.
const schema = `
-- Exact lexicon, forms stored as given
CREATE TABLE IF NOT EXISTS lexicon (
    form TEXT PRIMARY KEY,
    tag TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_lexicon_tag ON lexicon(tag);

-- Ordered pattern table; position is the match order
CREATE TABLE IF NOT EXISTS patterns (
    position INTEGER PRIMARY KEY,
    expr TEXT NOT NULL,
    tag TEXT NOT NULL
);

-- Multi-token idioms, phrases stored canonical
CREATE TABLE IF NOT EXISTS idioms (
    phrase TEXT PRIMARY KEY,
    tag TEXT NOT NULL
);

-- First-order transition scores
CREATE TABLE IF NOT EXISTS bigrams (
    prev TEXT NOT NULL,
    curr TEXT NOT NULL,
    score REAL NOT NULL,
    PRIMARY KEY (prev, curr)
);

-- Scalar settings (bigram floor)
CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

const (
	floorKey = "bigram_floor"
	foldKey  = "fold_case"
)

// NewSQLiteStore creates a new in-memory SQLite store.
func NewSQLiteStore() (*SQLiteStore, error) {
	return NewSQLiteStoreWithDSN(":memory:")
}

// NewSQLiteStoreWithDSN creates a store with a specific data source name.
// Use ":memory:" for in-memory or a file path for persistent storage.
func NewSQLiteStoreWithDSN(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	// Every pooled connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	// Create schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// =============================================================================
// Lexicon
// =============================================================================

// UpsertEntry inserts or replaces a lexicon entry.
func (s *SQLiteStore) UpsertEntry(entry lexicon.Entry) error {
	if entry.Form == "" || !entry.Tag.IsSet() {
		return fmt.Errorf("store: entry needs a form and a tag")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO lexicon (form, tag) VALUES (?, ?)
		ON CONFLICT(form) DO UPDATE SET tag = excluded.tag
	`, entry.Form, string(entry.Tag))
	return err
}

// GetEntry retrieves an entry by its exact form.
func (s *SQLiteStore) GetEntry(form string) (*lexicon.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var e lexicon.Entry
	var tag string
	err := s.db.QueryRow(`SELECT form, tag FROM lexicon WHERE form = ?`, form).
		Scan(&e.Form, &tag)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	e.Tag = tagset.Tag(tag)
	return &e, nil
}

// DeleteEntry removes an entry by form.
func (s *SQLiteStore) DeleteEntry(form string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return execOne(s.db, `DELETE FROM lexicon WHERE form = ?`, form)
}

// ListEntries returns all entries ordered by form, optionally filtered by
// exact tag.
func (s *SQLiteStore) ListEntries(tag tagset.Tag) ([]lexicon.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return listEntries(s.db, tag)
}

func listEntries(q queryer, tag tagset.Tag) ([]lexicon.Entry, error) {
	var rows *sql.Rows
	var err error

	if tag.IsSet() {
		rows, err = q.Query(`SELECT form, tag FROM lexicon WHERE tag = ? ORDER BY form`, string(tag))
	} else {
		rows, err = q.Query(`SELECT form, tag FROM lexicon ORDER BY form`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []lexicon.Entry{}
	for rows.Next() {
		var e lexicon.Entry
		var t string
		if err := rows.Scan(&e.Form, &t); err != nil {
			return nil, fmt.Errorf("store: scan entry: %w", err)
		}
		e.Tag = tagset.Tag(t)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// =============================================================================
// Patterns
// =============================================================================

// AppendPattern adds a pattern after all existing ones and returns its
// position. The expression must compile.
func (s *SQLiteStore) AppendPattern(spec lexicon.PatternSpec) (int, error) {
	if _, err := lexicon.CompilePatterns([]lexicon.PatternSpec{spec}); err != nil {
		return 0, fmt.Errorf("store: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var pos int
	err := s.db.QueryRow(`
		INSERT INTO patterns (position, expr, tag)
		VALUES ((SELECT COALESCE(MAX(position), 0) + 1 FROM patterns), ?, ?)
		RETURNING position
	`, spec.Expr, string(spec.Tag)).Scan(&pos)
	if err != nil {
		return 0, err
	}
	return pos, nil
}

// DeletePattern removes the pattern at position. Later patterns keep their
// relative order.
func (s *SQLiteStore) DeletePattern(position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return execOne(s.db, `DELETE FROM patterns WHERE position = ?`, position)
}

// ListPatterns returns the patterns in match order.
func (s *SQLiteStore) ListPatterns() ([]lexicon.PatternSpec, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return listPatterns(s.db)
}

func listPatterns(q queryer) ([]lexicon.PatternSpec, error) {
	rows, err := q.Query(`SELECT expr, tag FROM patterns ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	specs := []lexicon.PatternSpec{}
	for rows.Next() {
		var p lexicon.PatternSpec
		var tag string
		if err := rows.Scan(&p.Expr, &tag); err != nil {
			return nil, fmt.Errorf("store: scan pattern: %w", err)
		}
		p.Tag = tagset.Tag(tag)
		specs = append(specs, p)
	}
	return specs, rows.Err()
}

// =============================================================================
// Idioms
// =============================================================================

// UpsertIdiom inserts or replaces an idiom keyed by its canonical phrase.
func (s *SQLiteStore) UpsertIdiom(idiom lexicon.Idiom) error {
	phrase := lexicon.CanonicalizeIdiom(idiom.Phrase)
	if phrase == "" || !idiom.Tag.IsSet() {
		return fmt.Errorf("store: idiom needs a phrase and a tag")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO idioms (phrase, tag) VALUES (?, ?)
		ON CONFLICT(phrase) DO UPDATE SET tag = excluded.tag
	`, phrase, string(idiom.Tag))
	return err
}

// DeleteIdiom removes an idiom.
func (s *SQLiteStore) DeleteIdiom(phrase string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return execOne(s.db, `DELETE FROM idioms WHERE phrase = ?`, lexicon.CanonicalizeIdiom(phrase))
}

// ListIdioms returns all idioms ordered by phrase.
func (s *SQLiteStore) ListIdioms() ([]lexicon.Idiom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return listIdioms(s.db)
}

func listIdioms(q queryer) ([]lexicon.Idiom, error) {
	rows, err := q.Query(`SELECT phrase, tag FROM idioms ORDER BY phrase`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	idioms := []lexicon.Idiom{}
	for rows.Next() {
		var i lexicon.Idiom
		var tag string
		if err := rows.Scan(&i.Phrase, &tag); err != nil {
			return nil, fmt.Errorf("store: scan idiom: %w", err)
		}
		i.Tag = tagset.Tag(tag)
		idioms = append(idioms, i)
	}
	return idioms, rows.Err()
}

// =============================================================================
// Bigrams
// =============================================================================

// UpsertBigram inserts or replaces a transition score.
func (s *SQLiteStore) UpsertBigram(row model.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO bigrams (prev, curr, score) VALUES (?, ?, ?)
		ON CONFLICT(prev, curr) DO UPDATE SET score = excluded.score
	`, string(row.Prev), string(row.Curr), row.Score)
	return err
}

// ListBigrams returns all transition scores ordered by (prev, curr).
func (s *SQLiteStore) ListBigrams() ([]model.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return listBigrams(s.db)
}

func listBigrams(q queryer) ([]model.Row, error) {
	rows, err := q.Query(`SELECT prev, curr, score FROM bigrams ORDER BY prev, curr`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Row{}
	for rows.Next() {
		var r model.Row
		var prev, curr string
		if err := rows.Scan(&prev, &curr, &r.Score); err != nil {
			return nil, fmt.Errorf("store: scan bigram: %w", err)
		}
		r.Prev, r.Curr = tagset.Tag(prev), tagset.Tag(curr)
		out = append(out, r)
	}
	return out, rows.Err()
}

// SetBigramFloor stores the unseen-pair score.
func (s *SQLiteStore) SetBigramFloor(floor float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return setFloor(s.db, floor)
}

func setFloor(q queryer, floor float64) error {
	_, err := q.Exec(`
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, floorKey, strconv.FormatFloat(floor, 'g', -1, 64))
	return err
}

// BigramFloor returns the stored unseen-pair score, or model.DefaultFloor.
func (s *SQLiteStore) BigramFloor() (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, _, err := getFloor(s.db)
	return f, err
}

func getFloor(q queryer) (float64, bool, error) {
	var raw string
	err := q.QueryRow(`SELECT value FROM meta WHERE key = ?`, floorKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultFloor, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("store: bad bigram floor %q: %w", raw, err)
	}
	return f, true, nil
}

// =============================================================================
// Bulk operations
// =============================================================================

// Seed replaces every resource table with the seed's contents in one
// transaction.
func (s *SQLiteStore) Seed(seed *resources.Seed) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.replace(seed)
}

func (s *SQLiteStore) replace(seed *resources.Seed) error {
	if _, err := lexicon.CompilePatterns(seed.Patterns); err != nil {
		return fmt.Errorf("store: seed: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	// Clear all tables
	for _, table := range []string{"lexicon", "patterns", "idioms", "bigrams", "meta"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("store: clear %s: %w", table, err)
		}
	}

	for _, e := range seed.Lexicon {
		if e.Form == "" || !e.Tag.IsSet() {
			continue
		}
		_, err := tx.Exec(`
			INSERT INTO lexicon (form, tag) VALUES (?, ?)
			ON CONFLICT(form) DO UPDATE SET tag = excluded.tag
		`, e.Form, string(e.Tag))
		if err != nil {
			return fmt.Errorf("store: seed entry %q: %w", e.Form, err)
		}
	}

	for i, p := range seed.Patterns {
		if _, err := tx.Exec(`INSERT INTO patterns (position, expr, tag) VALUES (?, ?, ?)`,
			i+1, p.Expr, string(p.Tag)); err != nil {
			return fmt.Errorf("store: seed pattern %d: %w", i, err)
		}
	}

	for _, idiom := range seed.Idioms {
		phrase := lexicon.CanonicalizeIdiom(idiom.Phrase)
		if phrase == "" || !idiom.Tag.IsSet() {
			continue
		}
		_, err := tx.Exec(`
			INSERT INTO idioms (phrase, tag) VALUES (?, ?)
			ON CONFLICT(phrase) DO NOTHING
		`, phrase, string(idiom.Tag))
		if err != nil {
			return fmt.Errorf("store: seed idiom %q: %w", idiom.Phrase, err)
		}
	}

	for _, r := range seed.Bigrams {
		_, err := tx.Exec(`
			INSERT INTO bigrams (prev, curr, score) VALUES (?, ?, ?)
			ON CONFLICT(prev, curr) DO UPDATE SET score = excluded.score
		`, string(r.Prev), string(r.Curr), r.Score)
		if err != nil {
			return fmt.Errorf("store: seed bigram %s>%s: %w", r.Prev, r.Curr, err)
		}
	}

	if seed.BigramFloor != nil {
		if err := setFloor(tx, *seed.BigramFloor); err != nil {
			return fmt.Errorf("store: seed floor: %w", err)
		}
	}

	if seed.FoldCase {
		if _, err := tx.Exec(`INSERT INTO meta (key, value) VALUES (?, 'true')`, foldKey); err != nil {
			return fmt.Errorf("store: seed fold case: %w", err)
		}
	}

	return tx.Commit()
}

// Snapshot reads every table back into a Seed.
func (s *SQLiteStore) Snapshot() (*resources.Seed, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot()
}

func (s *SQLiteStore) snapshot() (*resources.Seed, error) {
	var (
		seed resources.Seed
		err  error
	)
	if seed.Lexicon, err = listEntries(s.db, tagset.None); err != nil {
		return nil, fmt.Errorf("store: snapshot lexicon: %w", err)
	}
	if seed.Patterns, err = listPatterns(s.db); err != nil {
		return nil, fmt.Errorf("store: snapshot patterns: %w", err)
	}
	if seed.Idioms, err = listIdioms(s.db); err != nil {
		return nil, fmt.Errorf("store: snapshot idioms: %w", err)
	}
	if seed.Bigrams, err = listBigrams(s.db); err != nil {
		return nil, fmt.Errorf("store: snapshot bigrams: %w", err)
	}
	floor, ok, err := getFloor(s.db)
	if err != nil {
		return nil, fmt.Errorf("store: snapshot floor: %w", err)
	}
	if ok {
		seed.BigramFloor = &floor
	}
	var fold string
	err = s.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, foldKey).Scan(&fold)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("store: snapshot fold case: %w", err)
	default:
		seed.FoldCase = fold == "true"
	}
	return &seed, nil
}

// Resources compiles the stored tables into a ready-to-inject Bundle.
func (s *SQLiteStore) Resources() (*resources.Bundle, error) {
	seed, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	b, err := seed.Compile()
	if err != nil {
		return nil, fmt.Errorf("store: compile: %w", err)
	}
	return b, nil
}

// Stats counts the rows of each table.
func (s *SQLiteStore) Stats() (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st Stats
	for _, c := range []struct {
		table string
		dst   *int
	}{
		{"lexicon", &st.Entries},
		{"patterns", &st.Patterns},
		{"idioms", &st.Idioms},
		{"bigrams", &st.Bigrams},
	} {
		if err := s.db.QueryRow("SELECT COUNT(*) FROM " + c.table).Scan(c.dst); err != nil {
			return Stats{}, fmt.Errorf("store: count %s: %w", c.table, err)
		}
	}
	return st, nil
}

// Export serializes all tables to JSON bytes in the Seed layout.
func (s *SQLiteStore) Export() ([]byte, error) {
	seed, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return json.Marshal(seed)
}

// Import restores the store from an exported JSON byte slice.
// Clears all existing data and re-inserts from the export.
func (s *SQLiteStore) Import(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	var seed resources.Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("store: import unmarshal: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.replace(&seed)
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// execOne runs a statement that must touch exactly one row.
func execOne(q queryer, query string, args ...any) error {
	res, err := q.Exec(query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Compile-time interface check
var _ Storer = (*SQLiteStore)(nil)
