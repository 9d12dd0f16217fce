package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/paulinmemphis/AchievrAI-sub004/pkg/model"
	"go.uber.org/zap"
)

const (
	journalFile  = "journal.bin"
	progressFile = "progress.bin"
)

// Store is the encrypted single-file journal store. Entries live in memory;
// every mutation re-serializes the whole collection, seals it and rewrites the
// file atomically. Load replaces the in-memory collection wholesale.
type Store struct {
	mu      sync.Mutex
	dir     string
	codec   *Codec
	entries map[string]model.JournalEntry
	logger  *zap.SugaredLogger
}

func New(dir string, codec *Codec, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &Store{
		dir:     dir,
		codec:   codec,
		entries: map[string]model.JournalEntry{},
		logger:  logger.Sugar(),
	}, nil
}

func (s *Store) journalPath() string {
	return filepath.Join(s.dir, journalFile)
}

func (s *Store) progressPath() string {
	return filepath.Join(s.dir, progressFile)
}

// Load reads, decrypts and deserializes the journal file, replacing the
// in-memory collection. A missing file is a first run, not an error. On any
// decryption or decode failure the collection is left empty and the error
// reported; there is no partial recovery.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.codec.Unlocked() {
		s.logger.Warnw("journal load skipped", "reason", "no passphrase")
		return ErrLocked
	}

	raw, err := os.ReadFile(s.journalPath())
	if err != nil {
		if os.IsNotExist(err) {
			s.entries = map[string]model.JournalEntry{}
			return nil
		}
		return fmt.Errorf("read journal file: %w", err)
	}

	plain, err := s.codec.Open(raw)
	if err != nil {
		s.entries = map[string]model.JournalEntry{}
		s.logger.Errorw("journal decrypt failed", "err", err)
		return fmt.Errorf("decrypt journal: %w", err)
	}

	var list []model.JournalEntry
	if err := json.Unmarshal(plain, &list); err != nil {
		s.entries = map[string]model.JournalEntry{}
		s.logger.Errorw("journal decode failed", "err", err)
		return fmt.Errorf("decode journal: %w", err)
	}

	entries := make(map[string]model.JournalEntry, len(list))
	for _, e := range list {
		entries[e.ID] = e
	}
	s.entries = entries
	return nil
}

// SaveEntry inserts or replaces an entry by ID, then rewrites the journal file.
func (s *Store) SaveEntry(e model.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.codec.Unlocked() {
		s.logger.Warnw("journal save skipped", "reason", "no passphrase", "entry", e.ID)
		return ErrLocked
	}

	s.entries[e.ID] = e
	if err := s.flushLocked(); err != nil {
		// keep the in-memory write; the next successful flush carries it
		return err
	}
	return nil
}

// DeleteEntry removes an entry by ID and rewrites the journal file.
func (s *Store) DeleteEntry(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.codec.Unlocked() {
		return false, ErrLocked
	}
	if _, ok := s.entries[id]; !ok {
		return false, nil
	}
	delete(s.entries, id)
	return true, s.flushLocked()
}

// Get returns an entry by ID.
func (s *Store) Get(id string) (model.JournalEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	return e, ok
}

// List returns all entries ordered by CreatedAt descending.
func (s *Store) List() []model.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked()
}

// Count returns the number of stored entries.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Snapshot returns the sealed bytes of the current collection, suitable for
// mirroring to the cloud key-value store as a single blob.
func (s *Store) Snapshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sealLocked()
}

// Restore replaces the collection from a sealed blob (a cloud pull) and
// rewrites the local file.
func (s *Store) Restore(blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	plain, err := s.codec.Open(blob)
	if err != nil {
		return fmt.Errorf("decrypt snapshot: %w", err)
	}
	var list []model.JournalEntry
	if err := json.Unmarshal(plain, &list); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}

	entries := make(map[string]model.JournalEntry, len(list))
	for _, e := range list {
		entries[e.ID] = e
	}
	s.entries = entries
	return s.flushLocked()
}

// SaveProgress seals the gamification state blob to its own file.
func (s *Store) SaveProgress(p model.Progress) error {
	if !s.codec.Unlocked() {
		return ErrLocked
	}
	plain, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	sealed, err := s.codec.Seal(plain)
	if err != nil {
		return fmt.Errorf("encrypt progress: %w", err)
	}
	return atomicWrite(s.progressPath(), sealed)
}

// LoadProgress reads the gamification state blob, returning first-launch
// defaults when the file does not exist.
func (s *Store) LoadProgress() (model.Progress, error) {
	if !s.codec.Unlocked() {
		return model.NewProgress(), ErrLocked
	}
	raw, err := os.ReadFile(s.progressPath())
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewProgress(), nil
		}
		return model.NewProgress(), fmt.Errorf("read progress file: %w", err)
	}
	plain, err := s.codec.Open(raw)
	if err != nil {
		return model.NewProgress(), fmt.Errorf("decrypt progress: %w", err)
	}
	var p model.Progress
	if err := json.Unmarshal(plain, &p); err != nil {
		return model.NewProgress(), fmt.Errorf("decode progress: %w", err)
	}
	if p.JournaledDays == nil {
		p.JournaledDays = map[string]bool{}
	}
	if p.Badges == nil {
		p.Badges = []string{}
	}
	return p, nil
}

// RestoreProgress validates a sealed progress blob (a cloud pull) and writes
// it over the local progress file.
func (s *Store) RestoreProgress(blob []byte) error {
	plain, err := s.codec.Open(blob)
	if err != nil {
		return fmt.Errorf("decrypt progress snapshot: %w", err)
	}
	var p model.Progress
	if err := json.Unmarshal(plain, &p); err != nil {
		return fmt.Errorf("decode progress snapshot: %w", err)
	}
	return atomicWrite(s.progressPath(), blob)
}

// ProgressSnapshot returns the sealed progress blob for cloud mirroring.
func (s *Store) ProgressSnapshot() ([]byte, error) {
	if !s.codec.Unlocked() {
		return nil, ErrLocked
	}
	raw, err := os.ReadFile(s.progressPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read progress file: %w", err)
	}
	return raw, nil
}

func (s *Store) sortedLocked() []model.JournalEntry {
	out := make([]model.JournalEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Store) sealLocked() ([]byte, error) {
	plain, err := json.Marshal(s.sortedLocked())
	if err != nil {
		return nil, fmt.Errorf("encode journal: %w", err)
	}
	sealed, err := s.codec.Seal(plain)
	if err != nil {
		return nil, fmt.Errorf("encrypt journal: %w", err)
	}
	return sealed, nil
}

func (s *Store) flushLocked() error {
	sealed, err := s.sealLocked()
	if err != nil {
		return err
	}
	if err := atomicWrite(s.journalPath(), sealed); err != nil {
		s.logger.Errorw("journal write failed", "err", err)
		return err
	}
	return nil
}

// atomicWrite writes via a temp file in the same directory and renames it
// over the target, so a crash mid-write never leaves a torn journal.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
