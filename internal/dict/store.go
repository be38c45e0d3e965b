package dict

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Store holds the process-wide dictionary set. The set itself is immutable;
// Reload builds a complete replacement before making it visible, so an
// in-flight record never observes a half-updated dictionary.
type Store struct {
	paths  Paths
	logger *zap.Logger
	set    atomic.Pointer[Set]
}

// NewStore loads the dictionaries once and returns the store. A load failure
// here is fatal to the caller by contract.
func NewStore(paths Paths, logger *zap.Logger) (*Store, error) {
	set, err := Load(paths, logger)
	if err != nil {
		return nil, err
	}
	s := &Store{paths: paths, logger: logger}
	s.set.Store(set)
	return s, nil
}

// NewStaticStore wraps an already-built set with no backing files; Reload
// fails and keeps the set. Intended for tests and embedded callers.
func NewStaticStore(set *Set) *Store {
	s := &Store{logger: zap.NewNop()}
	s.set.Store(set)
	return s
}

// Current returns the active dictionary set.
func (s *Store) Current() *Set {
	return s.set.Load()
}

// Reload re-reads every dictionary file and swaps the whole set atomically.
// On failure the previous set stays active.
func (s *Store) Reload() (*Set, error) {
	set, err := Load(s.paths, s.logger)
	if err != nil {
		return nil, err
	}
	s.set.Store(set)
	return set, nil
}
