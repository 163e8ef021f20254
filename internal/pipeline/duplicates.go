package pipeline

import (
	"crypto/sha256"
	"io"
	"os"

	"gitlab.com/tozd/go/errors"

	"github.com/backmassage/fontsrt/internal/fontmeta"
)

// duplicateIndex remembers where each style variant was placed so later
// files with the same signature can be compared against it. Not safe for
// concurrent use; moves are sequential.
type duplicateIndex struct {
	bySig  map[fontmeta.Signature][]string
	hashes map[string][sha256.Size]byte
}

func newDuplicateIndex() *duplicateIndex {
	return &duplicateIndex{
		bySig:  make(map[fontmeta.Signature][]string),
		hashes: make(map[string][sha256.Size]byte),
	}
}

// add records that a file with signature sig now lives at path.
func (d *duplicateIndex) add(sig fontmeta.Signature, path string) {
	d.bySig[sig] = append(d.bySig[sig], path)
}

// find returns an indexed path whose contents are identical to path's and
// whose signature is sig.
func (d *duplicateIndex) find(sig fontmeta.Signature, path string) (string, bool, error) {
	candidates := d.bySig[sig]
	if len(candidates) == 0 {
		return "", false, nil
	}
	sum, err := d.hash(path)
	if err != nil {
		return "", false, err
	}
	for _, c := range candidates {
		other, err := d.hash(c)
		if err != nil {
			continue
		}
		if other == sum {
			return c, true, nil
		}
	}
	return "", false, nil
}

func (d *duplicateIndex) hash(path string) ([sha256.Size]byte, error) {
	if sum, ok := d.hashes[path]; ok {
		return sum, nil
	}
	var sum [sha256.Size]byte
	f, err := os.Open(path)
	if err != nil {
		return sum, errors.Errorf("hashing %s: %w", path, err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return sum, errors.Errorf("hashing %s: %w", path, err)
	}
	copy(sum[:], h.Sum(nil))
	d.hashes[path] = sum
	return sum, nil
}
