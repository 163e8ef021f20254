// Package grouper buckets font metadata by canonical family key and merges
// near-duplicate buckets.
//
// Grouping runs single-threaded over a complete snapshot of the metadata
// store: merging needs every key at once, and its cost is quadratic string
// comparison rather than I/O.
package grouper

import (
	"slices"
	"sort"

	"github.com/backmassage/fontsrt/internal/fontmeta"
	"github.com/backmassage/fontsrt/internal/naming"
)

// Entry is one font file inside a group.
type Entry struct {
	Path string
	Meta fontmeta.Metadata
}

// Groups maps a canonical family key to its entries, sorted by path.
type Groups map[string][]Entry

// MergeDecision records that group From was absorbed into the group that
// ended up keyed Into.
type MergeDecision struct {
	Into string
	From string
}

// Key returns the canonical grouping key for a raw family name.
func Key(family string) string {
	return naming.Normalize(naming.RootFamily(family))
}

// Group buckets metadata by [Key] of each family name.
func Group(metadata map[string]fontmeta.Metadata) Groups {
	groups := make(Groups)
	for path, m := range metadata {
		key := Key(m.Family)
		groups[key] = append(groups[key], Entry{Path: path, Meta: m})
	}
	for _, entries := range groups {
		sortEntries(entries)
	}
	return groups
}

// Merge folds similar groups together. Groups are visited largest first
// (ties by key); each unmerged group absorbs every later unmerged group
// that is [naming.Similar] to it. A merged group is keyed by the whole
// words its members share when there are any, so "Festivo Basic" and
// "Festivo Sketch1" become "Festivo"; otherwise it keeps the absorbing
// group's key. Every input group lands in exactly one output group.
func Merge(groups Groups) (Groups, []MergeDecision) {
	order := groups.Keys()
	sort.SliceStable(order, func(i, j int) bool {
		return len(groups[order[i]]) > len(groups[order[j]])
	})

	var (
		merged    = make(map[string]bool, len(order))
		out       = make(Groups, len(order))
		decisions []MergeDecision
	)
	for i, lead := range order {
		if merged[lead] {
			continue
		}
		merged[lead] = true

		members := []string{lead}
		entries := append([]Entry(nil), groups[lead]...)
		for _, other := range order[i+1:] {
			if merged[other] || !naming.Similar(lead, other) {
				continue
			}
			merged[other] = true
			members = append(members, other)
			entries = append(entries, groups[other]...)
		}

		key := lead
		if len(members) > 1 {
			if prefix := naming.CommonWordPrefix(members...); prefix != "" && free(prefix, members, groups, out) {
				key = prefix
			}
			for _, from := range members[1:] {
				decisions = append(decisions, MergeDecision{Into: key, From: from})
			}
		}
		out[key] = append(out[key], entries...)
	}

	for _, entries := range out {
		sortEntries(entries)
	}
	return out, decisions
}

// Keys returns the group keys in sorted order.
func (g Groups) Keys() []string {
	keys := make([]string, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the total number of entries across all groups.
func (g Groups) Len() int {
	n := 0
	for _, entries := range g {
		n += len(entries)
	}
	return n
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
}

// free reports whether a merged group may be renamed to prefix without
// landing on another group's key.
func free(prefix string, members []string, groups, out Groups) bool {
	if _, taken := out[prefix]; taken {
		return false
	}
	if _, exists := groups[prefix]; exists {
		return slices.Contains(members, prefix)
	}
	return true
}

// Foundry picks the foundry that names a group's folder: the known foundry
// shared by the most entries, ties broken alphabetically. A group with no
// known foundry gets fontmeta.UnknownFoundry. The choice depends only on
// the group's metadata, so it is stable across runs.
func Foundry(entries []Entry) string {
	counts := make(map[string]int)
	for _, e := range entries {
		if f := e.Meta.Foundry; f != "" && f != fontmeta.UnknownFoundry {
			counts[f]++
		}
	}
	best := fontmeta.UnknownFoundry
	for f, n := range counts {
		if n > counts[best] || (n == counts[best] && f < best) {
			best = f
		}
	}
	return best
}
