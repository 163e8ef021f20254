package pipeline

import (
	"sync"

	"github.com/backmassage/fontsrt/internal/fontmeta"
)

// Store collects metadata read during a scan. Safe for concurrent use;
// each Put holds the lock only for the insert.
type Store struct {
	mu   sync.Mutex
	data map[string]fontmeta.Metadata
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{data: make(map[string]fontmeta.Metadata)}
}

// Put records m for path, replacing any earlier entry.
func (s *Store) Put(path string, m fontmeta.Metadata) {
	s.mu.Lock()
	s.data[path] = m
	s.mu.Unlock()
}

// Snapshot returns a copy of the collected metadata.
func (s *Store) Snapshot() map[string]fontmeta.Metadata {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]fontmeta.Metadata, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// ProcessedSet records paths already acted on during a run. Every path is
// admitted at most once.
type ProcessedSet struct {
	mu    sync.Mutex
	paths map[string]struct{}
}

// NewProcessedSet creates an empty set.
func NewProcessedSet() *ProcessedSet {
	return &ProcessedSet{paths: make(map[string]struct{})}
}

// TryAdd inserts path and reports whether it was absent. Check and insert
// happen under one lock, so exactly one caller wins for a given path.
func (p *ProcessedSet) TryAdd(path string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.paths[path]; ok {
		return false
	}
	p.paths[path] = struct{}{}
	return true
}

// Contains reports whether path was added.
func (p *ProcessedSet) Contains(path string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.paths[path]
	return ok
}

// Len returns the number of paths added.
func (p *ProcessedSet) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.paths)
}
