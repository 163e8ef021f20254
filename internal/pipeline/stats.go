package pipeline

import (
	"strconv"

	"github.com/backmassage/fontsrt/internal/display"
)

// RunStats tracks counters and byte totals for one organize run.
type RunStats struct {
	Found        int // Fonts with usable metadata.
	Processed    int // Fonts acted on (moved, skipped in place, or sent to duplicates).
	Moved        int
	Renamed      int // Moved under a name different from the source's.
	Duplicates   int
	Skipped      int // Already at their planned location.
	Failed       int
	Unreadable   int
	BytesMoved   int64
	StraySources []string // Sources left behind after a copy fallback.
}

// Add folds o into s.
func (s *RunStats) Add(o RunStats) {
	s.Found += o.Found
	s.Processed += o.Processed
	s.Moved += o.Moved
	s.Renamed += o.Renamed
	s.Duplicates += o.Duplicates
	s.Skipped += o.Skipped
	s.Failed += o.Failed
	s.Unreadable += o.Unreadable
	s.BytesMoved += o.BytesMoved
	s.StraySources = append(s.StraySources, o.StraySources...)
}

// Rows renders the counters as table rows, header first.
func (s *RunStats) Rows() [][]string {
	return [][]string{
		{"Result", "Count"},
		{"Fonts found", strconv.Itoa(s.Found)},
		{"Moved", strconv.Itoa(s.Moved)},
		{"Renamed", strconv.Itoa(s.Renamed)},
		{"Already organized", strconv.Itoa(s.Skipped)},
		{"Duplicates", strconv.Itoa(s.Duplicates)},
		{"Unreadable", strconv.Itoa(s.Unreadable)},
		{"Failed", strconv.Itoa(s.Failed)},
		{"Data moved", display.FormatBytes(s.BytesMoved)},
	}
}

// FoundryStats tracks the foundry regrouping pass.
type FoundryStats struct {
	Folders   int // Top-level family folders examined.
	Moved     int
	Skipped   int // No readable font, or already a foundry folder.
	Failed    int
	Foundries map[string]int // Foundry → number of families placed in it.
}

// BatchStats tracks a batch run across directories.
type BatchStats struct {
	Directories int
	Invalid     int // Entries that were not existing directories.
	Failed      int // Directories whose run aborted.
	Totals      RunStats
}
