package naming

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// SuffixedPath inserts "_n" before the extension: ("a/Inter.ttf", 2) →
// "a/Inter_2.ttf". n <= 0 returns path unchanged.
func SuffixedPath(path string, n int) string {
	if n <= 0 {
		return path
	}
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, n, ext))
}

// CollisionResolver tracks target paths claimed by source files during a
// run and resolves collisions by appending "_N" suffixes. A path is free
// when no other source claimed it and exists reports false for it, so
// dry runs see the same numbering as real runs. All methods are
// goroutine-safe.
type CollisionResolver struct {
	mu     sync.Mutex
	owners map[string]string // target path → source path that owns it
	exists func(path string) bool
}

// NewCollisionResolver creates a ready-to-use resolver. exists may be nil,
// in which case only in-run claims count.
func NewCollisionResolver(exists func(path string) bool) *CollisionResolver {
	if exists == nil {
		exists = func(string) bool { return false }
	}
	return &CollisionResolver{
		owners: make(map[string]string),
		exists: exists,
	}
}

// Resolve returns the final target for source. If requested is unclaimed
// and free on disk (or already owned by source) it is returned as-is;
// otherwise the first free "_N" variant is claimed and returned.
func (cr *CollisionResolver) Resolve(source, requested string) string {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	for n := 0; ; n++ {
		candidate := SuffixedPath(requested, n)
		owner, claimed := cr.owners[candidate]
		if claimed {
			if owner == source {
				return candidate
			}
			continue
		}
		if candidate == source || !cr.exists(candidate) {
			cr.owners[candidate] = source
			return candidate
		}
	}
}

// Release drops source's claim on target, e.g. after a failed move.
func (cr *CollisionResolver) Release(source, target string) {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	if cr.owners[target] == source {
		delete(cr.owners, target)
	}
}
