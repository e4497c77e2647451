package syncer

import (
	"fmt"
	"strings"
)

// Rename is a deleted path paired with the added path it became.
type Rename struct {
	From string
	To   string
}

// Delta is the set of changes a sync stages.
type Delta struct {
	Added    []string
	Modified []string
	Deleted  []string
	Renamed  []Rename
}

// Empty reports whether there is nothing to stage.
func (d Delta) Empty() bool {
	return d.Len() == 0
}

// Len returns the number of changed entries, counting a rename once.
func (d Delta) Len() int {
	return len(d.Added) + len(d.Modified) + len(d.Deleted) + len(d.Renamed)
}

// Summary returns a short human readable count, e.g. "2 added, 1 deleted".
func (d Delta) Summary() string {
	var parts []string
	add := func(n int, what string) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, what))
		}
	}
	add(len(d.Added), "added")
	add(len(d.Modified), "modified")
	add(len(d.Deleted), "deleted")
	add(len(d.Renamed), "renamed")
	if len(parts) == 0 {
		return "no changes"
	}
	return strings.Join(parts, ", ")
}
