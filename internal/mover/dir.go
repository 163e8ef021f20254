package mover

import (
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// MoveDirectory moves src to dest. When dest does not exist a rename is
// tried; otherwise, or if the rename fails, src is merged into dest and
// removed. A src that no longer exists is a no-op, so a repeated pass over
// the same tree is harmless.
func (m *Mover) MoveDirectory(src, dest string) error {
	if !exists(src) {
		m.log.Debug("Directory already moved: %s", src)
		return nil
	}

	if m.dryRun {
		if exists(dest) {
			m.log.Info("Would merge directory: %s -> %s", src, dest)
		} else {
			m.log.Info("Would move directory: %s -> %s", src, dest)
		}
		return nil
	}

	if !exists(dest) {
		if err := m.EnsureDir(filepath.Dir(dest)); err != nil {
			return err
		}
		err := m.rename(src, dest)
		if err == nil {
			m.log.Trace().Str("src", src).Str("dest", dest).Msg("directory renamed")
			return nil
		}
		m.log.Debug("Directory rename failed, merging instead: %v", err)
	}

	if err := m.EnsureDir(dest); err != nil {
		return err
	}
	if err := m.MergeDirectories(src, dest); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		m.log.Warn("Could not remove merged directory %s: %v", src, err)
	}
	return nil
}

// MergeDirectories moves the contents of src into dest recursively. Files
// that collide get "_N" names, subdirectories are created as needed, and
// source subdirectories emptied by the merge are removed. Per-entry
// failures are logged; the returned error reports how many there were.
func (m *Mover) MergeDirectories(src, dest string) error {
	failed := m.merge(src, dest)
	if failed > 0 {
		return errors.Errorf("merging %s into %s: %d entries failed", src, dest, failed)
	}
	return nil
}

func (m *Mover) merge(src, dest string) int {
	entries, err := os.ReadDir(src)
	if err != nil {
		m.log.Error("Cannot read %s: %v", src, err)
		return 1
	}
	failed := 0
	for _, e := range entries {
		from := filepath.Join(src, e.Name())
		to := filepath.Join(dest, e.Name())
		if e.IsDir() {
			if err := m.EnsureDir(to); err != nil {
				m.log.Error("%v", err)
				failed++
				continue
			}
			failed += m.merge(from, to)
			if !m.dryRun {
				// Only succeeds when the merge left it empty.
				_ = os.Remove(from)
			}
			continue
		}
		if _, err := m.MoveFile(from, to); err != nil {
			m.log.Error("Failed to move %s: %v", from, err)
			failed++
		}
	}
	return failed
}
