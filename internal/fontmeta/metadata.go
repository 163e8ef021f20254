// Package fontmeta reads the name table of TrueType and OpenType files and
// classifies what it finds: weight class, italic flag, and the foundry
// credited with the font.
//
// Parsing is delegated to golang.org/x/image/font/sfnt. Everything else in
// this package is pure string classification driven by data tables, so it
// can be tested without font files.
package fontmeta

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// ErrFontRead marks a file that looked like a font (extension and magic
// bytes) but could not be parsed.
var ErrFontRead = errors.Base("font read error")

// UnknownFoundry is used when no inference step produced a foundry.
const UnknownFoundry = "Unknown"

// Metadata describes one font file. It is produced once per file by a
// [Reader] and never modified afterwards.
type Metadata struct {
	Family    string // Nominal family name, e.g. "Helvetica Neue".
	Subfamily string // Style within the family, e.g. "Bold Italic".
	FullName  string // PostScript name when present, else Family.
	Foundry   string // Inferred foundry, or UnknownFoundry.
	Weight    int    // 100..900 in steps of 100, or 950 for extra-black.
	Italic    bool
	Path      string // Source path the metadata was read from.
}

// Signature identifies a style variant for duplicate detection. It is an
// index key, not an identity: distinct files may share one.
type Signature struct {
	Family string
	Weight int
	Italic bool
}

// Signature returns the duplicate-detection key for m.
func (m Metadata) Signature() Signature {
	return Signature{Family: m.Family, Weight: m.Weight, Italic: m.Italic}
}

// String renders the signature as family_weight_italic.
func (s Signature) String() string {
	return fmt.Sprintf("%s_%d_%t", s.Family, s.Weight, s.Italic)
}

// Reader is the font-reading collaborator used by the pipeline.
type Reader interface {
	// IsFontFile reports whether path has a font extension, font magic
	// bytes, and parses as a font.
	IsFontFile(path string) bool
	// ReadMetadata returns nil metadata with a nil error when the font has
	// no usable family name; such files are skipped, not failed.
	ReadMetadata(path string) (*Metadata, error)
}
