package fontmeta

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/image/font/sfnt"
)

// Magic bytes at the start of TrueType (version 1.0) and CFF OpenType files.
var (
	magicTrueType = []byte{0x00, 0x01, 0x00, 0x00}
	magicOpenType = []byte("OTTO")
)

// fontExtensions lists accepted extensions (lowercase, with leading dot).
var fontExtensions = map[string]bool{
	".ttf": true,
	".otf": true,
}

// SFNTReader implements [Reader] with golang.org/x/image/font/sfnt.
type SFNTReader struct{}

var _ Reader = SFNTReader{}

// HasFontExtension reports whether path ends in .ttf or .otf (any case).
func HasFontExtension(path string) bool {
	return fontExtensions[strings.ToLower(filepath.Ext(path))]
}

// HasFontMagic reports whether header starts with a TrueType or OpenType
// signature.
func HasFontMagic(header []byte) bool {
	return bytes.HasPrefix(header, magicTrueType) || bytes.HasPrefix(header, magicOpenType)
}

// IsFontFile checks extension, magic bytes, and a structural parse.
func (SFNTReader) IsFontFile(path string) bool {
	if !HasFontExtension(path) {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	header := make([]byte, 4)
	if _, err := io.ReadFull(f, header); err != nil || !HasFontMagic(header) {
		return false
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return false
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return false
	}
	_, err = sfnt.Parse(data)
	return err == nil
}

// ReadMetadata parses path and builds its Metadata. A font without a family
// name yields (nil, nil).
func (SFNTReader) ReadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}
	if !HasFontMagic(data) {
		return nil, errors.Errorf("%w: %s: not a TrueType or OpenType file", ErrFontRead, path)
	}
	font, err := sfnt.Parse(data)
	if err != nil {
		return nil, errors.Errorf("%w: %s: %w", ErrFontRead, path, err)
	}
	names, err := readNames(font)
	if err != nil {
		return nil, errors.Errorf("%w: %s: %w", ErrFontRead, path, err)
	}
	return names.metadata(path), nil
}

// nameRecords holds the name-table strings used to build Metadata.
type nameRecords struct {
	family       string
	subfamily    string
	typoFamily   string
	postScript   string
	manufacturer string
}

func readNames(f *sfnt.Font) (nameRecords, error) {
	var (
		buf sfnt.Buffer
		rec nameRecords
	)
	targets := []struct {
		id  sfnt.NameID
		dst *string
	}{
		{sfnt.NameIDFamily, &rec.family},
		{sfnt.NameIDSubfamily, &rec.subfamily},
		{sfnt.NameIDTypographicFamily, &rec.typoFamily},
		{sfnt.NameIDPostScript, &rec.postScript},
		{sfnt.NameIDManufacturer, &rec.manufacturer},
	}
	for _, t := range targets {
		s, err := f.Name(&buf, t.id)
		if err != nil {
			if errors.Is(err, sfnt.ErrNotFound) {
				continue
			}
			return rec, err
		}
		*t.dst = strings.TrimSpace(s)
	}
	return rec, nil
}

// metadata applies the naming and classification rules to raw records.
// Returns nil when no family name is present.
func (r nameRecords) metadata(path string) *Metadata {
	family := r.typoFamily
	if family == "" {
		family = r.family
	}
	if family == "" {
		return nil
	}

	subfamily := subfamilyFromPostScript(r.postScript)
	if subfamily == "" {
		subfamily = r.subfamily
	}
	if subfamily == "" {
		subfamily = "Regular"
	}

	fullName := r.postScript
	if fullName == "" {
		fullName = family
	}

	return &Metadata{
		Family:    family,
		Subfamily: subfamily,
		FullName:  fullName,
		Foundry: InferFoundry(NameSources{
			PostScript:   r.postScript,
			Manufacturer: r.manufacturer,
			Family:       family,
			Path:         path,
		}),
		Weight: Weight(subfamily),
		Italic: IsItalic(subfamily),
		Path:   path,
	}
}

// subfamilyFromPostScript returns the style part of "Family-Style".
func subfamilyFromPostScript(psName string) string {
	_, style, ok := strings.Cut(psName, "-")
	if !ok {
		return ""
	}
	return strings.TrimSpace(style)
}
