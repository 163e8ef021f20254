package fontmeta

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

func writeFont(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestIsFontFile(t *testing.T) {
	tests := []struct {
		name string
		file string
		data []byte
		want bool
	}{
		{"truetype", "Go-Regular.ttf", goregular.TTF, true},
		{"uppercase extension", "Go-Regular.TTF", goregular.TTF, true},
		{"wrong extension", "Go-Regular.woff", goregular.TTF, false},
		{"text file", "notes.ttf", []byte("not a font at all"), false},
		{"magic only", "broken.ttf", []byte{0x00, 0x01, 0x00, 0x00, 0xff, 0xff}, false},
		{"truncated otf", "broken.otf", []byte("OTTO"), false},
		{"too short", "tiny.ttf", []byte{0x00}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFont(t, tt.file, tt.data)
			assert.Equal(t, tt.want, SFNTReader{}.IsFontFile(path))
		})
	}
}

func TestIsFontFileMissing(t *testing.T) {
	assert.False(t, SFNTReader{}.IsFontFile(filepath.Join(t.TempDir(), "gone.ttf")))
}

func TestReadMetadataGoFonts(t *testing.T) {
	tests := []struct {
		name       string
		data       []byte
		wantFamily string
		wantWeight int
		wantItalic bool
	}{
		{"regular", goregular.TTF, "Go", 400, false},
		{"bold", gobold.TTF, "Go", 700, false},
		{"italic", goitalic.TTF, "Go", 400, true},
		{"mono", gomono.TTF, "Go Mono", 400, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFont(t, tt.name+".ttf", tt.data)
			m, err := SFNTReader{}.ReadMetadata(path)
			require.NoError(t, err)
			require.NotNil(t, m)
			assert.Equal(t, tt.wantFamily, m.Family)
			assert.Equal(t, tt.wantWeight, m.Weight)
			assert.Equal(t, tt.wantItalic, m.Italic)
			assert.Equal(t, path, m.Path)
			assert.NotEmpty(t, m.Subfamily)
			assert.NotEmpty(t, m.FullName)
			assert.NotEmpty(t, m.Foundry)
		})
	}
}

func TestReadMetadataErrors(t *testing.T) {
	_, err := SFNTReader{}.ReadMetadata(writeFont(t, "junk.ttf", []byte("junkjunkjunk")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFontRead))

	_, err = SFNTReader{}.ReadMetadata(writeFont(t, "bad.ttf", append([]byte{0x00, 0x01, 0x00, 0x00}, make([]byte, 32)...)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFontRead))

	_, err = SFNTReader{}.ReadMetadata(filepath.Join(t.TempDir(), "missing.ttf"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrFontRead))
}

func TestNameRecordsMetadata(t *testing.T) {
	tests := []struct {
		name string
		rec  nameRecords
		want *Metadata
	}{
		{
			name: "no family is absent",
			rec:  nameRecords{subfamily: "Bold"},
			want: nil,
		},
		{
			name: "postscript style wins",
			rec:  nameRecords{family: "Inter", subfamily: "Regular", postScript: "Inter-SemiBoldItalic"},
			want: &Metadata{Family: "Inter", Subfamily: "SemiBoldItalic", FullName: "Inter-SemiBoldItalic", Foundry: UnknownFoundry, Weight: 600, Italic: true, Path: "/fonts/a.ttf"},
		},
		{
			name: "typographic family preferred",
			rec:  nameRecords{family: "Roboto Light", typoFamily: "Roboto", subfamily: "Light"},
			want: &Metadata{Family: "Roboto", Subfamily: "Light", FullName: "Roboto", Foundry: UnknownFoundry, Weight: 300, Path: "/fonts/a.ttf"},
		},
		{
			name: "defaults to regular",
			rec:  nameRecords{family: "Adobe Garamond", postScript: "AGaramond"},
			want: &Metadata{Family: "Adobe Garamond", Subfamily: "Regular", FullName: "AGaramond", Foundry: "Adobe", Weight: 400, Path: "/fonts/a.ttf"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rec.metadata("/fonts/a.ttf"))
		})
	}
}

func TestSignature(t *testing.T) {
	a := Metadata{Family: "Roboto", Weight: 700, Italic: true, Path: "/a.ttf"}
	b := Metadata{Family: "Roboto", Weight: 700, Italic: true, Path: "/b.ttf"}
	assert.Equal(t, a.Signature(), b.Signature())
	assert.Equal(t, "Roboto_700_true", a.Signature().String())
}
