package page

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Change is one inserted or removed stretch of markup.
type Change struct {
	Type    string `json:"type"` // "added" or "removed"
	Content string `json:"content"`
}

// Diff compares two serialised documents and returns what changed, skipping
// equal runs and whitespace-only edits.
func Diff(before, after string) []Change {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, true))

	changes := make([]Change, 0)
	for _, d := range diffs {
		var kind string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			kind = "added"
		case diffmatchpatch.DiffDelete:
			kind = "removed"
		default:
			continue
		}
		if strings.TrimSpace(d.Text) == "" {
			continue
		}
		changes = append(changes, Change{Type: kind, Content: d.Text})
	}
	return changes
}
