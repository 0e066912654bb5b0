package placement

import (
	"slices"

	"github.com/talgya/world-composer/internal/feature"
	"github.com/talgya/world-composer/internal/world"
)

// PlacedArea is one committed position of an area.
type PlacedArea struct {
	Area      feature.PreparedArea
	Position  feature.PreparedPosition
	Center    world.HexCoord
	Footprint []world.HexCoord
	Retries   int
}

// Failure records a position that could not be placed.
type Failure struct {
	AreaID    string
	Position  int
	Priority  int
	Mandatory bool
	Retries   int
	Err       error
}

// Result is the immutable outcome of one placement run.
type Result struct {
	input    *feature.Prepared
	seed     int64
	placed   []PlacedArea
	failures []Failure
	retries  int
	success  bool
	message  string

	owners    map[world.HexCoord]int // cell -> index into placed
	areaCells map[string][]world.HexCoord
}

// Input returns the prepared tree the run consumed.
func (r *Result) Input() *feature.Prepared { return r.input }

// Seed returns the seed of the run.
func (r *Result) Seed() int64 { return r.seed }

// Success is false when any mandatory position failed.
func (r *Result) Success() bool { return r.success }

// Message describes mandatory failures; empty on success.
func (r *Result) Message() string { return r.message }

// Retries is the total number of resamples across all positions.
func (r *Result) Retries() int { return r.retries }

// Placed returns the committed positions in placement order.
func (r *Result) Placed() []PlacedArea {
	out := make([]PlacedArea, len(r.placed))
	for i, p := range r.placed {
		p.Footprint = slices.Clone(p.Footprint)
		out[i] = p
	}
	return out
}

// Failures returns every failed position in placement order.
func (r *Result) Failures() []Failure {
	return slices.Clone(r.failures)
}

// Footprint returns every cell owned by the area across all its positions,
// sorted.
func (r *Result) Footprint(areaID string) []world.HexCoord {
	return slices.Clone(r.areaCells[areaID])
}

// Center returns the centroid of the area's placed cells.
func (r *Result) Center(areaID string) (world.HexCoord, bool) {
	cells := r.areaCells[areaID]
	if len(cells) == 0 {
		return world.HexCoord{}, false
	}
	return world.Centroid(cells), true
}

// Owner returns the placed position covering c.
func (r *Result) Owner(c world.HexCoord) (PlacedArea, bool) {
	i, ok := r.owners[c]
	if !ok {
		return PlacedArea{}, false
	}
	p := r.placed[i]
	p.Footprint = slices.Clone(p.Footprint)
	return p, true
}

// OwnedCells returns every owned cell, sorted.
func (r *Result) OwnedCells() []world.HexCoord {
	cells := make([]world.HexCoord, 0, len(r.owners))
	for c := range r.owners {
		cells = append(cells, c)
	}
	world.SortCoords(cells)
	return cells
}

// Disjoint reports whether no two placed footprints share a cell.
func (r *Result) Disjoint() bool {
	seen := make(map[world.HexCoord]bool)
	for _, p := range r.placed {
		for _, c := range p.Footprint {
			if seen[c] {
				return false
			}
			seen[c] = true
		}
	}
	return len(seen) == len(r.owners)
}
