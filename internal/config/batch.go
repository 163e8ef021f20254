package config

import (
	"bufio"
	"io"
	"os"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ErrBatch marks a missing, unreadable, or absent batch file. It is fatal
// for the whole batch run.
var ErrBatch = errors.Base("batch file error")

// ParseBatchList reads one directory per line. Lines are trimmed; blank
// lines and lines starting with '#' are ignored. Entries keep file order.
func ParseBatchList(r io.Reader) ([]string, error) {
	var dirs []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		dirs = append(dirs, NormalizeDirArg(line))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Errorf("%w: reading batch list: %w", ErrBatch, err)
	}
	return dirs, nil
}

// LoadBatchFile opens path and parses it with [ParseBatchList].
func LoadBatchFile(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.Errorf("%w: no batch file given", ErrBatch)
	}
	fi, err := os.Stat(path)
	if err != nil {
		return nil, errors.Errorf("%w: batch file %q: %w", ErrBatch, path, err)
	}
	if fi.IsDir() {
		return nil, errors.Errorf("%w: batch file %q is a directory", ErrBatch, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("%w: opening batch file %q: %w", ErrBatch, path, err)
	}
	defer f.Close()
	return ParseBatchList(f)
}
