// Package planner computes where each font belongs: the target folder
// from the group key, group foundry and naming pattern, and the file name from the
// font's own metadata.
//
// Contents:
//   - Group, Target, Action (types.go)
//   - FormatName, FileName, FolderPath, Plan, IsOrganized (planner.go)
//
// Planning is pure; collision handling and moves live in the naming and
// mover packages.
package planner
