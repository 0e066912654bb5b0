// Package filler classifies every unowned cell of the bounding region into a
// terrain category. Classification runs in separate passes that each read
// only the previous pass's labels, so cell order never changes the outcome.
package filler

import (
	"errors"
	"log/slog"
	"maps"

	"github.com/talgya/world-composer/internal/entropy"
	"github.com/talgya/world-composer/internal/feature"
	"github.com/talgya/world-composer/internal/placement"
	"github.com/talgya/world-composer/internal/world"
)

// ErrEmptyRegion is returned when no area was placed, so no bounding region
// exists. Fatal.
var ErrEmptyRegion = errors.New("empty region: no placed areas")

// noiseSalt separates the coastline noise from the placement draws.
const noiseSalt = 7

// Config holds filler parameters.
type Config struct {
	// Margin grows the bounding region beyond the placed footprints.
	Margin int
	// LandRadius is the distance from the region center within which
	// isolated cells default to land.
	LandRadius int
	// CoastRoughness is the noise amplitude, in hex steps, added to
	// LandRadius per cell. Zero gives a clean hexagonal shoreline.
	CoastRoughness float64
	// MountainAdjacency is how many mountain-owned neighbors turn a land
	// cell into MOUNTAIN; fewer (but at least one) gives LOWLAND.
	MountainAdjacency int
	// ContinentDepth: land farther than this from any ocean is CONTINENT.
	ContinentDepth int
}

// DefaultConfig returns a reasonable starting configuration.
func DefaultConfig() Config {
	return Config{
		Margin:            3,
		LandRadius:        12,
		CoastRoughness:    2.0,
		MountainAdjacency: 2,
		ContinentDepth:    4,
	}
}

// SmallTestConfig returns a tight, noise-free configuration.
func SmallTestConfig() Config {
	return Config{
		Margin:            2,
		LandRadius:        2,
		CoastRoughness:    0,
		MountainAdjacency: 2,
		ContinentDepth:    2,
	}
}

// Fill derives the bounding region from the placement result and classifies
// it. Noise is seeded from the placement seed.
//
// The region covers the owned cells, every area center and every resolved
// entry point. A walk between two cells never leaves their cube bounds, so
// every cell a flow can route through is inside the region.
func Fill(res *placement.Result, cfg Config) (*Result, error) {
	owned := res.OwnedCells()
	if len(owned) == 0 {
		return nil, ErrEmptyRegion
	}
	region, ok := world.Bound(append(owned, waypointCells(res)...), cfg.Margin)
	if !ok {
		return nil, ErrEmptyRegion
	}
	owners := make(map[world.HexCoord]Owner, len(owned))
	for _, c := range owned {
		p, _ := res.Owner(c)
		owners[c] = Owner{AreaID: p.Area.ID, Kind: p.Area.Kind, Tags: p.Area.Tags}
	}
	return FillRegion(region, owners, cfg, res.Seed())
}

// waypointCells returns the center of every placed area plus its entry
// points offset from that center.
func waypointCells(res *placement.Result) []world.HexCoord {
	var out []world.HexCoord
	for _, a := range res.Input().Areas {
		center, ok := res.Center(a.ID)
		if !ok {
			continue
		}
		out = append(out, center)
		for _, off := range a.EntryPoints {
			out = append(out, center.Add(off))
		}
	}
	return out
}

// FillRegion classifies every cell of region. Owners outside the region are
// ignored. Fails with ErrEmptyRegion when the region has no cells.
func FillRegion(region world.Region, owners map[world.HexCoord]Owner, cfg Config, seed int64) (*Result, error) {
	cells := region.Cells()
	if len(cells) == 0 {
		return nil, ErrEmptyRegion
	}
	center := region.Center()
	noise := world.NewNoiseField(entropy.NewStream(seed).Derive(noiseSalt).Seed())

	// Pass 1: raw adjacency to owners, or distance from center.
	first := make(map[world.HexCoord]Category, len(cells))
	for _, c := range cells {
		if _, ok := owners[c]; ok {
			continue
		}
		first[c] = classifyRaw(c, owners, center, cfg, noise)
	}

	// Mountain pass: land beside mountain-tagged areas.
	for c, cat := range first {
		if cat != CategoryLand {
			continue
		}
		n := 0
		for _, nb := range c.Neighbors() {
			if o, ok := owners[nb]; ok && o.Tags.Has(feature.TagMountain) {
				n++
			}
		}
		if n == 0 {
			continue
		}
		if n >= max(cfg.MountainAdjacency, 1) {
			first[c] = CategoryMountain
		} else {
			first[c] = CategoryLowland
		}
	}

	// Pass 2: coast, reading only the labels above.
	final := maps.Clone(first)
	for c, cat := range first {
		if cat != CategoryLand && cat != CategoryLowland {
			continue
		}
		if touchesOcean(c, first, region) && touchesLand(c, first, owners, region) {
			final[c] = CategoryCoast
		}
	}

	markContinent(final, owners, cells, region, cfg.ContinentDepth)

	res := &Result{
		region: region,
		cells:  make([]FilledHexGrid, 0, len(cells)),
		index:  make(map[world.HexCoord]int, len(cells)),
		counts: make(map[Category]int),
	}
	for _, c := range cells {
		g := FilledHexGrid{Coord: c}
		if o, ok := owners[c]; ok {
			owner := o
			g.Owner = &owner
			g.Category = CategoryOwned
			g.Config = Payload{Source: o.AreaID, Tags: o.Tags}
			res.owned++
		} else {
			g.Category = final[c]
			g.Config = Payload{Source: g.Category.String(), Tags: categoryTags(g.Category)}
			res.counts[g.Category]++
		}
		g.Config.Variation = noise.At(c)
		res.index[c] = len(res.cells)
		res.cells = append(res.cells, g)
	}

	slog.Info("region filled",
		"region", region.String(),
		"owned", res.owned,
		"ocean", res.counts[CategoryOcean],
		"land", res.counts[CategoryLand],
		"coast", res.counts[CategoryCoast],
		"mountain", res.counts[CategoryMountain],
		"lowland", res.counts[CategoryLowland],
		"continent", res.counts[CategoryContinent],
	)
	return res, nil
}

func classifyRaw(c world.HexCoord, owners map[world.HexCoord]Owner, center world.HexCoord, cfg Config, noise *world.NoiseField) Category {
	hasOwner, allOcean := false, true
	for _, nb := range c.Neighbors() {
		o, ok := owners[nb]
		if !ok {
			continue
		}
		hasOwner = true
		if !o.Tags.Has(feature.TagOcean) {
			allOcean = false
		}
	}
	if hasOwner {
		if allOcean {
			return CategoryOcean
		}
		return CategoryLand
	}

	threshold := float64(cfg.LandRadius)
	if cfg.CoastRoughness != 0 {
		threshold += cfg.CoastRoughness * (noise.At(c)*2 - 1)
	}
	if float64(world.Distance(c, center)) <= threshold {
		return CategoryLand
	}
	return CategoryOcean
}

func touchesOcean(c world.HexCoord, first map[world.HexCoord]Category, region world.Region) bool {
	for _, nb := range c.Neighbors() {
		if !region.InBounds(nb) {
			continue
		}
		if cat, ok := first[nb]; ok && cat == CategoryOcean {
			return true
		}
	}
	return false
}

func touchesLand(c world.HexCoord, first map[world.HexCoord]Category, owners map[world.HexCoord]Owner, region world.Region) bool {
	for _, nb := range c.Neighbors() {
		if !region.InBounds(nb) {
			continue
		}
		if o, ok := owners[nb]; ok {
			if !o.Tags.Has(feature.TagOcean) {
				return true
			}
			continue
		}
		if cat, ok := first[nb]; ok && cat.landEligible() {
			return true
		}
	}
	return false
}

// markContinent relabels land that lies deeper than depth steps from any
// ocean cell. Distances come from a multi-source BFS over the region.
func markContinent(final map[world.HexCoord]Category, owners map[world.HexCoord]Owner, cells []world.HexCoord, region world.Region, depth int) {
	dist := make(map[world.HexCoord]int, len(cells))
	var queue []world.HexCoord
	for _, c := range cells {
		ocean := final[c] == CategoryOcean
		if o, ok := owners[c]; ok {
			ocean = o.Tags.Has(feature.TagOcean)
		}
		if ocean {
			dist[c] = 0
			queue = append(queue, c)
		}
	}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, nb := range c.Neighbors() {
			if !region.InBounds(nb) {
				continue
			}
			if _, seen := dist[nb]; seen {
				continue
			}
			dist[nb] = dist[c] + 1
			queue = append(queue, nb)
		}
	}

	for _, c := range cells {
		if final[c] != CategoryLand {
			continue
		}
		if _, owned := owners[c]; owned {
			continue
		}
		d, reached := dist[c]
		if !reached || d > depth {
			final[c] = CategoryContinent
		}
	}
}

func categoryTags(c Category) feature.Tags {
	switch c {
	case CategoryOcean:
		return feature.TagOcean
	case CategoryMountain:
		return feature.TagLand | feature.TagMountain
	default:
		return feature.TagLand
	}
}

// Result is the immutable outcome of a fill.
type Result struct {
	region world.Region
	cells  []FilledHexGrid
	index  map[world.HexCoord]int
	counts map[Category]int
	owned  int
}

// Region returns the bounding region that was filled.
func (r *Result) Region() world.Region { return r.region }

// Cells returns every cell of the region, sorted by r then q.
func (r *Result) Cells() []FilledHexGrid {
	out := make([]FilledHexGrid, len(r.cells))
	for i, g := range r.cells {
		out[i] = g.clone()
	}
	return out
}

// Cell returns the filled state of c.
func (r *Result) Cell(c world.HexCoord) (FilledHexGrid, bool) {
	i, ok := r.index[c]
	if !ok {
		return FilledHexGrid{}, false
	}
	return r.cells[i].clone(), true
}

// Counts returns the number of filler cells per category.
func (r *Result) Counts() map[Category]int { return maps.Clone(r.counts) }

// Count returns the number of filler cells of one category.
func (r *Result) Count(c Category) int { return r.counts[c] }

// Owned returns the number of owned cells inside the region.
func (r *Result) Owned() int { return r.owned }
