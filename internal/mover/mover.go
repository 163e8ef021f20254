// Package mover performs the filesystem side of a run: single-file moves
// with a copy fallback, collision-free destination naming, and recursive
// directory merges. Nothing here overwrites an existing file.
package mover

import (
	"io"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"

	"github.com/backmassage/fontsrt/internal/logging"
	"github.com/backmassage/fontsrt/internal/naming"
)

// ErrSourceMissing is returned by MoveFile when the source no longer exists.
var ErrSourceMissing = errors.Base("source missing")

// Result describes a completed file move.
type Result struct {
	Path        string // Final destination path.
	Renamed     bool   // True when the rename fast path was used.
	StraySource bool   // Copy succeeded but the source could not be removed.
	Bytes       int64
}

// Mover executes moves. In dry-run mode every operation is logged and
// nothing on disk changes.
type Mover struct {
	log    *logging.Logger
	dryRun bool
	rename func(oldpath, newpath string) error
}

// New creates a Mover.
func New(log *logging.Logger, dryRun bool) *Mover {
	return &Mover{log: log, dryRun: dryRun, rename: os.Rename}
}

// DryRun reports whether the mover only logs.
func (m *Mover) DryRun() bool { return m.dryRun }

// exists reports whether anything is present at path.
func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// UniquePath returns path if nothing exists there, otherwise the first free
// "stem_N.ext" variant with N counting from 1.
func UniquePath(path string) string {
	for n := 0; ; n++ {
		candidate := naming.SuffixedPath(path, n)
		if !exists(candidate) {
			return candidate
		}
	}
}

// EnsureDir creates dir and any missing parents.
func (m *Mover) EnsureDir(dir string) error {
	if m.dryRun {
		if !exists(dir) {
			m.log.Debug("Would create directory: %s", dir)
		}
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}

// MoveFile moves src to dest. If dest is taken the first free "_N" variant
// is used instead. Rename is tried first; on failure the bytes are copied
// and the source removed. A failed removal is logged and reported through
// Result.StraySource, not as an error.
func (m *Mover) MoveFile(src, dest string) (Result, error) {
	fi, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{}, errors.Errorf("%w: %s", ErrSourceMissing, src)
		}
		return Result{}, errors.Errorf("stat %s: %w", src, err)
	}
	if fi.IsDir() {
		return Result{}, errors.Errorf("move %s: is a directory", src)
	}

	dest = UniquePath(dest)
	res := Result{Path: dest, Bytes: fi.Size()}

	if m.dryRun {
		m.log.Info("Would move: %s -> %s", src, dest)
		return res, nil
	}

	if err := m.EnsureDir(filepath.Dir(dest)); err != nil {
		return Result{}, err
	}

	rerr := m.rename(src, dest)
	if rerr == nil {
		res.Renamed = true
		m.log.Trace().Str("src", src).Str("dest", dest).Msg("renamed")
		return res, nil
	}
	m.log.Debug("Rename failed, copying instead: %v", rerr)

	if err := copyFile(src, dest, fi.Mode().Perm()); err != nil {
		return Result{}, err
	}
	if err := os.Remove(src); err != nil {
		m.log.Warn("Copied %s but could not remove the source: %v", src, err)
		res.StraySource = true
	}
	m.log.Trace().Str("src", src).Str("dest", dest).Bool("stray", res.StraySource).Msg("copied")
	return res, nil
}

// copyFile writes src to a new file at dest. A partial dest is removed on
// failure.
func copyFile(src, dest string, perm os.FileMode) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return errors.Errorf("creating %s: %w", dest, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = errors.Errorf("closing %s: %w", dest, cerr)
		}
		if err != nil {
			_ = os.Remove(dest)
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return errors.Errorf("copying %s to %s: %w", src, dest, err)
	}
	if err = out.Sync(); err != nil {
		return errors.Errorf("syncing %s: %w", dest, err)
	}
	if err = out.Chmod(perm); err != nil {
		return errors.Errorf("chmod %s: %w", dest, err)
	}
	return nil
}
