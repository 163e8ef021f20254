package planner

import "path/filepath"

// Action describes the per-file decision made during a run.
type Action int

const (
	ActionMove      Action = iota // Move into the family folder.
	ActionSkip                    // Already at its planned location.
	ActionDuplicate               // Identical copy; move into duplicates/.
)

func (a Action) String() string {
	switch a {
	case ActionMove:
		return "move"
	case ActionSkip:
		return "skip"
	case ActionDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// Group identifies the folder a font group is planned into.
type Group struct {
	Family  string // Canonical group key.
	Foundry string // Foundry shared by the group's folder.
}

// Target is a planned location: a directory and a file name inside it.
type Target struct {
	Dir  string
	File string
}

// Path joins Dir and File.
func (t Target) Path() string {
	return filepath.Join(t.Dir, t.File)
}
