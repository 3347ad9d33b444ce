package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/hosgoru/vugraph-archive/internal/logger"
)

// document is the on-disk shape of the store.
type document struct {
	UpdatedAt string        `json:"updated_at"`
	Records   []BoardRecord `json:"records"`
	Missing   []Key         `json:"missing,omitempty"`
}

// Store is the in-memory working copy of the JSON document. Mutations
// stay in memory until Save writes the whole document atomically.
type Store struct {
	path    string
	records []BoardRecord
	index   map[Key]int
	missing map[Key]bool
}

// Open loads the store at path. A missing file yields an empty store; a
// corrupt file falls back to the .bak left by the previous Save.
func Open(path string) (*Store, error) {
	s := &Store{
		path:    path,
		index:   make(map[Key]int),
		missing: make(map[Key]bool),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading store: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Warn("store file corrupt, trying backup", logger.Fields{"path": path})
		backup, bakErr := os.ReadFile(path + ".bak")
		if bakErr != nil {
			return nil, fmt.Errorf("parsing store: %w", err)
		}
		if bakErr := json.Unmarshal(backup, &doc); bakErr != nil {
			return nil, fmt.Errorf("parsing store: %w", err)
		}
	}

	s.records = doc.Records
	for i, r := range s.records {
		s.records[i].Date = NormalizeDate(r.Date)
		if _, dup := s.index[r.Key()]; !dup {
			s.index[r.Key()] = i
		}
	}
	for _, k := range doc.Missing {
		s.missing[k] = true
	}
	return s, nil
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	return len(s.records)
}

// Get returns the record under key, if any.
func (s *Store) Get(key Key) (BoardRecord, bool) {
	i, ok := s.index[key]
	if !ok {
		return BoardRecord{}, false
	}
	return s.records[i], true
}

// Upsert inserts or merges a record under the declared key. The merged
// record is validated before it replaces the stored one, so a violating
// merge leaves the pre-state intact.
func (s *Store) Upsert(key Key, rec BoardRecord) (BoardRecord, error) {
	if rec.EventID != "" && rec.EventID != key.EventID {
		return BoardRecord{}, fmt.Errorf("%w: record %s declared under %s", ErrIdentityConflict, rec.Key(), key)
	}
	if rec.Board != 0 && rec.Board != key.Board {
		return BoardRecord{}, fmt.Errorf("%w: record %s declared under %s", ErrIdentityConflict, rec.Key(), key)
	}
	rec.EventID = key.EventID
	rec.Board = key.Board
	rec.Date = NormalizeDate(rec.Date)

	merged := rec
	i, exists := s.index[key]
	if exists {
		merged = merge(s.records[i], rec)
	}
	if err := merged.Validate(); err != nil {
		return BoardRecord{}, err
	}

	if exists {
		s.records[i] = merged
	} else {
		s.index[key] = len(s.records)
		s.records = append(s.records, merged)
	}
	return merged, nil
}

// Filter narrows a Scan. Zero values match everything.
type Filter struct {
	EventID   string
	Date      string
	MissingDD bool
}

// Scan returns the records matching the filter, sorted by event id and
// board number.
func (s *Store) Scan(f Filter) []BoardRecord {
	out := make([]BoardRecord, 0)
	for _, r := range s.records {
		if f.EventID != "" && r.EventID != f.EventID {
			continue
		}
		if f.Date != "" && r.Date != NormalizeDate(f.Date) {
			continue
		}
		if f.MissingDD && r.DD != nil {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EventID != out[j].EventID {
			return out[i].EventID < out[j].EventID
		}
		return out[i].Board < out[j].Board
	})
	return out
}

// Dedup collapses multiple records sharing one key, merging them with the
// upsert rule. Old store files keyed records by an auto-incrementing id
// and could hold duplicates. Returns the number of records removed.
func (s *Store) Dedup() int {
	if len(s.records) == len(s.index) {
		return 0
	}

	kept := make([]BoardRecord, 0, len(s.index))
	index := make(map[Key]int, len(s.index))
	for _, r := range s.records {
		if i, dup := index[r.Key()]; dup {
			kept[i] = merge(kept[i], r)
			continue
		}
		index[r.Key()] = len(kept)
		kept = append(kept, r)
	}

	removed := len(s.records) - len(kept)
	s.records = kept
	s.index = index
	return removed
}

// MarkMissing records that the site has no such board, so future passes
// skip it without a request.
func (s *Store) MarkMissing(key Key) {
	s.missing[key] = true
}

// IsMissing reports whether the board is in the negative cache.
func (s *Store) IsMissing(key Key) bool {
	return s.missing[key]
}

// Save writes the document atomically: the new content lands in a temp
// file, the previous file becomes the .bak fallback, and a rename puts
// the new document in place.
func (s *Store) Save() error {
	doc := document{
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
		Records:   s.Scan(Filter{}),
		Missing:   s.missingKeys(),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding store: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing store: %w", err)
	}
	if _, err := os.Stat(s.path); err == nil {
		if err := os.Rename(s.path, s.path+".bak"); err != nil {
			return fmt.Errorf("rotating backup: %w", err)
		}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing store: %w", err)
	}
	return nil
}

func (s *Store) missingKeys() []Key {
	keys := make([]Key, 0, len(s.missing))
	for k := range s.missing {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].EventID != keys[j].EventID {
			return keys[i].EventID < keys[j].EventID
		}
		return keys[i].Board < keys[j].Board
	})
	return keys
}
