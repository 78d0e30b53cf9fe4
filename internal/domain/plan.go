package domain

import (
	"sort"
	"time"
)

// Note statuses recorded in the migration ledger. Staged notes have a
// computed destination but no copy yet, which is also the terminal state of
// a dry run.
const (
	StatusStaged  = "staged"
	StatusCopied  = "copied"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// Plan is the full set of computed mappings for one binding, built before
// any file is touched.
type Plan struct {
	Binding VaultBinding
	Entries []Mapping
}

// Pages counts the entries that migrate as regular pages.
func (p *Plan) Pages() int {
	n := 0
	for _, e := range p.Entries {
		if e.Kind == KindPage {
			n++
		}
	}
	return n
}

// Journals counts the entries that migrate as journal entries.
func (p *Plan) Journals() int {
	return len(p.Entries) - p.Pages()
}

// Collision is one destination path claimed by more than one source note.
// The flattening escapes make this possible when identifiers contain
// literal underscore runs, so the migration reports claims instead of
// letting the last copy silently win.
type Collision struct {
	DestinationPath string
	SourcePaths     []string
}

// Collisions returns every destination claimed by multiple entries, sorted
// by destination path for stable output. Source paths keep plan order.
func (p *Plan) Collisions() []Collision {
	byDest := make(map[string][]string)
	for _, e := range p.Entries {
		byDest[e.DestinationPath] = append(byDest[e.DestinationPath], e.SourcePath)
	}

	var out []Collision
	for dest, sources := range byDest {
		if len(sources) > 1 {
			out = append(out, Collision{DestinationPath: dest, SourcePaths: sources})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DestinationPath < out[j].DestinationPath
	})
	return out
}

// CollidingDestinations returns the destination paths of every collision as
// a set, for quick membership checks during the copy phase.
func (p *Plan) CollidingDestinations() map[string]bool {
	set := make(map[string]bool)
	for _, c := range p.Collisions() {
		set[c.DestinationPath] = true
	}
	return set
}

// TitleGroup is one frontmatter title shared by more than one note. Flat
// layouts surface title duplicates that a hierarchy kept apart.
type TitleGroup struct {
	Title       string
	SourcePaths []string
}

// MigrationStats holds the counters of one vault's migration run.
type MigrationStats struct {
	NotesScanned int
	Pages        int
	Journals     int
	Copied       int
	Skipped      int
	Failed       int
	Duration     time.Duration
}
