package compose

import (
	"slices"

	"github.com/talgya/world-composer/internal/feature"
	"github.com/talgya/world-composer/internal/filler"
	"github.com/talgya/world-composer/internal/placement"
	"github.com/talgya/world-composer/internal/routing"
	"github.com/talgya/world-composer/internal/world"
)

// Composition is the published result of one run. It is never mutated after
// Compose returns.
type Composition struct {
	name     string
	seed     int64
	prepared *feature.Prepared

	placement *placement.Result
	fill      *filler.Result
	routes    *routing.Result

	cells    []CellConfig
	features map[string]FeatureResult
}

// Name returns the tree name.
func (c *Composition) Name() string { return c.name }

// Seed returns the seed the run used.
func (c *Composition) Seed() int64 { return c.seed }

// Prepared returns the resolver output.
func (c *Composition) Prepared() *feature.Prepared { return c.prepared }

// Placement returns the placement result.
func (c *Composition) Placement() *placement.Result { return c.placement }

// Fill returns the fill result; nil if the pipeline stopped earlier.
func (c *Composition) Fill() *filler.Result { return c.fill }

// Routes returns the routing result; nil if the pipeline stopped earlier.
func (c *Composition) Routes() *routing.Result { return c.routes }

// Complete reports whether every stage ran.
func (c *Composition) Complete() bool { return c.routes != nil }

// Cells returns one entry per region cell, sorted by r then q.
func (c *Composition) Cells() []CellConfig {
	out := make([]CellConfig, len(c.cells))
	for i, cc := range c.cells {
		cc.Flows = slices.Clone(cc.Flows)
		if cc.Owner != nil {
			o := *cc.Owner
			cc.Owner = &o
		}
		out[i] = cc
	}
	return out
}

// Features returns the authored id → result mapping.
func (c *Composition) Features() map[string]FeatureResult {
	out := make(map[string]FeatureResult, len(c.features))
	for id, fr := range c.features {
		out[id] = fr.clone()
	}
	return out
}

// Feature returns the result for one authored id.
func (c *Composition) Feature(id string) (FeatureResult, bool) {
	fr, ok := c.features[id]
	if !ok {
		return FeatureResult{}, false
	}
	return fr.clone(), true
}

func (fr FeatureResult) clone() FeatureResult {
	fr.Footprint = slices.Clone(fr.Footprint)
	fr.Parts = slices.Clone(fr.Parts)
	fr.Errs = slices.Clone(fr.Errs)
	return fr
}

// build assembles the per-cell hand-off and the feature mapping.
func (c *Composition) build() {
	c.features = make(map[string]FeatureResult)
	for _, pf := range c.prepared.Features() {
		switch v := pf.(type) {
		case feature.PreparedArea:
			fr := FeatureResult{ID: v.ID, Kind: v.Kind.String()}
			if center, ok := c.placement.Center(v.ID); ok {
				fr.Placed = true
				fr.Center = center
				fr.Footprint = c.placement.Footprint(v.ID)
			}
			c.features[v.ID] = fr
		case feature.PreparedFlow:
			fr := FeatureResult{ID: v.ID, Kind: v.Kind.String()}
			if route, ok := c.routes.Route(v.ID); ok {
				if route.Err != nil {
					fr.Errs = append(fr.Errs, route.Err)
				} else {
					fr.Placed = true
					fr.Footprint = route.Cells
					fr.Parts = route.Parts
					if len(route.Cells) > 0 {
						fr.Center = world.Centroid(route.Cells)
					}
				}
			}
			c.features[v.ID] = fr
		}
	}
	for _, f := range c.placement.Failures() {
		fr := c.features[f.AreaID]
		fr.Errs = append(fr.Errs, f.Err)
		c.features[f.AreaID] = fr
	}

	grid := c.fill.Cells()
	c.cells = make([]CellConfig, len(grid))
	for i, g := range grid {
		c.cells[i] = CellConfig{
			Coord:    g.Coord,
			Owner:    g.Owner,
			Category: g.Category,
			Payload:  g.Config,
			Flows:    c.routes.PartsAt(g.Coord),
		}
	}
}

// CategoryCounts returns filler counts, or nil if the fill did not run.
func (c *Composition) CategoryCounts() map[filler.Category]int {
	if c.fill == nil {
		return nil
	}
	return c.fill.Counts()
}
