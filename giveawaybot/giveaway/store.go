package giveaway

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/disgoorg/snowflake/v2"
)

// Store is the durable keyed set of committed giveaways, persisted as a
// single JSON document. Mutations are in-memory only; callers persist with
// Save after every Put or Remove so durability always precedes scheduling.
type Store struct {
	mu      sync.Mutex
	path    string
	records map[snowflake.ID]*Record
}

// OpenStore loads the store at path. A missing or unreadable document
// degrades to an empty store so a crash or corruption can never block
// process start.
func OpenStore(path string) *Store {
	s := &Store{
		path:    path,
		records: make(map[snowflake.ID]*Record),
	}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		slog.Warn("Could not read giveaway store, starting empty",
			slog.String("type", "db"),
			slog.String("path", s.path),
			slog.Any("error", err))
		return
	}

	var raw map[string]*Record
	if err := json.Unmarshal(data, &raw); err != nil {
		slog.Warn("Giveaway store is malformed, starting empty",
			slog.String("type", "db"),
			slog.String("path", s.path),
			slog.Any("error", err))
		return
	}

	for key, rec := range raw {
		id, err := snowflake.Parse(key)
		if err != nil || rec == nil {
			slog.Warn("Skipping malformed giveaway entry",
				slog.String("type", "db"),
				slog.String("key", key))
			continue
		}
		rec.MessageID = id
		s.records[id] = rec
	}

	slog.Info("Giveaway store loaded",
		slog.String("type", "db"),
		slog.Int("records", len(s.records)))
}

// Save writes the full document with a write-to-temp-then-rename so a crash
// mid-write can never corrupt previously durable state.
func (s *Store) Save() error {
	s.mu.Lock()
	raw := make(map[string]*Record, len(s.records))
	for id, rec := range s.records {
		raw[id.String()] = rec
	}
	s.mu.Unlock()

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "encode", Err: err}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return &PersistenceError{Op: "write", Err: err}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return &PersistenceError{Op: "replace", Err: err}
	}
	return nil
}

// Put inserts or replaces a record.
func (s *Store) Put(rec *Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.MessageID] = rec
}

// Remove deletes a record and reports whether it existed.
func (s *Store) Remove(id snowflake.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[id]
	delete(s.records, id)
	return ok
}

// Get returns the record keyed by the given announcement message id.
func (s *Store) Get(id snowflake.ID) (*Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	return rec, ok
}

// All returns a snapshot of every record, soonest-ending first.
func (s *Store) All() []*Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EndsAt != out[j].EndsAt {
			return out[i].EndsAt < out[j].EndsAt
		}
		return out[i].MessageID < out[j].MessageID
	})
	return out
}

// Len returns the number of active records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
