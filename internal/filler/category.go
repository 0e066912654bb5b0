package filler

import (
	"strings"

	"github.com/talgya/world-composer/internal/feature"
	"github.com/talgya/world-composer/internal/world"
)

// Category is the terrain class of a cell no area owns.
type Category uint8

const (
	// CategoryOwned marks cells that belong to a placed area.
	CategoryOwned Category = iota
	CategoryOcean
	CategoryLand
	CategoryCoast
	CategoryMountain
	CategoryLowland
	CategoryContinent
)

// Categories lists every filler category (not CategoryOwned).
var Categories = []Category{
	CategoryOcean,
	CategoryLand,
	CategoryCoast,
	CategoryMountain,
	CategoryLowland,
	CategoryContinent,
}

func (c Category) String() string {
	switch c {
	case CategoryOwned:
		return "OWNED"
	case CategoryOcean:
		return "OCEAN"
	case CategoryLand:
		return "LAND"
	case CategoryCoast:
		return "COAST"
	case CategoryMountain:
		return "MOUNTAIN"
	case CategoryLowland:
		return "LOWLAND"
	case CategoryContinent:
		return "CONTINENT"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory is the inverse of String.
func ParseCategory(name string) (Category, bool) {
	n := strings.ToUpper(strings.TrimSpace(name))
	for c := CategoryOwned; c <= CategoryContinent; c++ {
		if c.String() == n {
			return c, true
		}
	}
	return CategoryOwned, false
}

// landEligible reports whether a first-pass label counts as land.
func (c Category) landEligible() bool {
	return c != CategoryOcean && c != CategoryOwned
}

// Owner identifies the area occupying a cell.
type Owner struct {
	AreaID string
	Kind   feature.Kind
	Tags   feature.Tags
}

// Payload is the per-cell configuration handed to terrain builders.
type Payload struct {
	// Source is the owning area id, or the filler category name.
	Source string
	Tags   feature.Tags
	// Variation is a seeded noise value in [0, 1) builders may use to vary
	// surface detail. It carries no classification meaning.
	Variation float64
}

// FilledHexGrid is the final state of one cell: owned xor filler.
type FilledHexGrid struct {
	Coord    world.HexCoord
	Owner    *Owner
	Category Category
	Config   Payload
}

// clone gives g its own copy of the owner.
func (g FilledHexGrid) clone() FilledHexGrid {
	if g.Owner != nil {
		o := *g.Owner
		g.Owner = &o
	}
	return g
}

// Filler reports whether the cell is unowned.
func (g FilledHexGrid) Filler() bool {
	return g.Owner == nil
}
