package grouper

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/fontsrt/internal/fontmeta"
)

func meta(path, family string) fontmeta.Metadata {
	return fontmeta.Metadata{Family: family, Subfamily: "Regular", Weight: 400, Foundry: "Unknown", Path: path}
}

func store(pairs ...string) map[string]fontmeta.Metadata {
	m := make(map[string]fontmeta.Metadata, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		m[pairs[i]] = meta(pairs[i], pairs[i+1])
	}
	return m
}

func TestKey(t *testing.T) {
	assert.Equal(t, "Roboto", Key("Roboto Bold"))
	assert.Equal(t, "Arial", Key("Arial A"))
	assert.Equal(t, "Inter", Key("Inter Variable"))
	assert.Equal(t, "Roboto Mono", Key("Roboto Mono"))
	assert.Equal(t, "Unknown", Key(""))
}

func TestGroup(t *testing.T) {
	groups := Group(store(
		"/in/b.ttf", "Roboto Bold",
		"/in/a.ttf", "Roboto",
		"/in/c.ttf", "Inter",
	))

	require.Len(t, groups, 2)
	require.Len(t, groups["Roboto"], 2)
	assert.Equal(t, "/in/a.ttf", groups["Roboto"][0].Path)
	assert.Equal(t, "/in/b.ttf", groups["Roboto"][1].Path)
	assert.Equal(t, "Roboto Bold", groups["Roboto"][1].Meta.Family)
	assert.Equal(t, 3, groups.Len())
	assert.Equal(t, []string{"Inter", "Roboto"}, groups.Keys())
}

func TestMergeFestivo(t *testing.T) {
	groups := Group(store(
		"/in/1.otf", "Festivo Basic",
		"/in/2.otf", "Festivo Sketch1",
		"/in/3.otf", "Festivo Sketch1",
		"/in/4.otf", "Hygge",
		"/in/5.otf", "Hybrea",
	))

	merged, decisions := Merge(groups)

	assert.Equal(t, []string{"Festivo", "Hybrea", "Hygge"}, merged.Keys())
	assert.Len(t, merged["Festivo"], 3)
	assert.Equal(t, []MergeDecision{{Into: "Festivo", From: "Festivo Basic"}}, decisions)
}

func TestMergeLargestAbsorbs(t *testing.T) {
	groups := Group(store(
		"/in/1.ttf", "Baskervile",
		"/in/2.ttf", "Baskerville",
		"/in/3.ttf", "Baskerville",
	))

	merged, decisions := Merge(groups)

	require.Len(t, merged, 1)
	assert.Len(t, merged["Baskerville"], 3)
	assert.Equal(t, []MergeDecision{{Into: "Baskerville", From: "Baskervile"}}, decisions)
}

func TestMergeNoSimilarGroups(t *testing.T) {
	groups := Group(store("/in/1.ttf", "Futura", "/in/2.ttf", "Garamond"))
	merged, decisions := Merge(groups)
	assert.Equal(t, groups, merged)
	assert.Empty(t, decisions)
}

func TestMergeEmpty(t *testing.T) {
	merged, decisions := Merge(Groups{})
	assert.Empty(t, merged)
	assert.Empty(t, decisions)
}

// TestMergeIsPartition checks that every input entry lands in exactly one
// output group.
func TestMergeIsPartition(t *testing.T) {
	families := []string{
		"Festivo Basic", "Festivo Sketch1", "Festivo Sketch2", "Inter", "Interstate",
		"Hygge Sans", "Hybrea", "Hybrid", "Go", "Go Mono", "Roboto", "Roboto Slab",
		"Noto Sans", "Noto Serif", "Arial A", "Arial B", "Caslon", "Caslon Antique",
	}
	in := make(map[string]fontmeta.Metadata)
	for i, fam := range families {
		for j := 0; j <= i%3; j++ {
			p := fmt.Sprintf("/in/%02d-%d.ttf", i, j)
			in[p] = meta(p, fam)
		}
	}

	groups := Group(in)
	merged, _ := Merge(groups)

	seen := make(map[string]int)
	for _, entries := range merged {
		for _, e := range entries {
			seen[e.Path]++
		}
	}
	assert.Len(t, seen, len(in))
	for p, n := range seen {
		assert.Equal(t, 1, n, "path %s", p)
	}
	assert.Equal(t, groups.Len(), merged.Len())
	assert.LessOrEqual(t, len(merged), len(groups))
}

func TestMergeDeterministic(t *testing.T) {
	in := store(
		"/in/1.ttf", "Noto Sans", "/in/2.ttf", "Noto Serif",
		"/in/3.ttf", "Inter", "/in/4.ttf", "Interstate",
	)
	first, firstDecisions := Merge(Group(in))
	for i := 0; i < 10; i++ {
		again, decisions := Merge(Group(in))
		assert.Equal(t, first, again)
		assert.Equal(t, firstDecisions, decisions)
	}
}

// TestMergeSharedPrefixKeepsFamiliesApart covers two unrelated merges whose
// common word prefix is the same: only the first may take the shorter key.
func TestMergeSharedPrefixKeepsFamiliesApart(t *testing.T) {
	groups := Groups{
		"Big Caslon":    {{Path: "/in/c1.ttf"}, {Path: "/in/c2.ttf"}},
		"Big Caslon2":   {{Path: "/in/c3.ttf"}},
		"Big Shoulders": {{Path: "/in/s1.ttf"}, {Path: "/in/s2.ttf"}},
		"Big Shoulder":  {{Path: "/in/s3.ttf"}},
	}

	merged, decisions := Merge(groups)

	require.Equal(t, []string{"Big", "Big Shoulders"}, merged.Keys())
	paths := func(key string) []string {
		var out []string
		for _, e := range merged[key] {
			out = append(out, e.Path)
		}
		return out
	}
	assert.Equal(t, []string{"/in/c1.ttf", "/in/c2.ttf", "/in/c3.ttf"}, paths("Big"))
	assert.Equal(t, []string{"/in/s1.ttf", "/in/s2.ttf", "/in/s3.ttf"}, paths("Big Shoulders"))
	for _, d := range decisions {
		assert.Contains(t, merged, d.Into)
	}
	assert.Equal(t, []MergeDecision{
		{Into: "Big", From: "Big Caslon2"},
		{Into: "Big Shoulders", From: "Big Shoulder"},
	}, decisions)
}

func TestMergePrefixNamingExistingGroup(t *testing.T) {
	groups := Groups{
		"Big":           {{Path: "/in/b1.ttf"}},
		"Big Shoulders": {{Path: "/in/s1.ttf"}, {Path: "/in/s2.ttf"}},
		"Big Shoulder":  {{Path: "/in/s3.ttf"}},
	}

	merged, _ := Merge(groups)

	assert.Equal(t, groups.Len(), merged.Len())
	for _, entries := range merged {
		assert.NotEmpty(t, entries)
	}
}

func TestFoundry(t *testing.T) {
	entry := func(foundry string) Entry {
		return Entry{Meta: fontmeta.Metadata{Foundry: foundry}}
	}
	tests := []struct {
		name    string
		entries []Entry
		want    string
	}{
		{"empty", nil, fontmeta.UnknownFoundry},
		{"all unknown", []Entry{entry(fontmeta.UnknownFoundry), entry("")}, fontmeta.UnknownFoundry},
		{"known beats unknown", []Entry{entry(fontmeta.UnknownFoundry), entry(fontmeta.UnknownFoundry), entry("Google")}, "Google"},
		{"majority", []Entry{entry("Adobe"), entry("Google"), entry("Google")}, "Google"},
		{"tie is alphabetical", []Entry{entry("Monotype"), entry("Adobe")}, "Adobe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Foundry(tt.entries))
		})
	}
}
