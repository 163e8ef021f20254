// Package naming turns raw font family names into grouping keys and safe
// path components.
//
// Contents, split by file:
//   - normalize.go: Normalize, the family-name canonicalizer, driven by the
//     preserve and style token tables.
//   - rootfamily.go: RootFamily, a conservative "Arial A" → "Arial" reduction
//     applied before normalization.
//   - similar.go: Similar, the near-duplicate test used to merge groups.
//   - clean.go: Clean, filesystem-safe path components.
//   - collision.go: CollisionResolver and SuffixedPath for "_N" renames.
//
// Everything here is pure except CollisionResolver, which consults an
// injected existence check.
package naming
