// Package compose runs the full pipeline: resolve positions, place areas,
// fill the bounding region, route flows. Each stage consumes the previous
// stage's immutable result; a fatal failure stops the pipeline.
package compose

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/talgya/world-composer/internal/feature"
	"github.com/talgya/world-composer/internal/filler"
	"github.com/talgya/world-composer/internal/overlay"
	"github.com/talgya/world-composer/internal/placement"
	"github.com/talgya/world-composer/internal/routing"
	"github.com/talgya/world-composer/internal/world"
)

// Options controls a composition run.
type Options struct {
	Seed int64
	// MaxRetries overrides Placement.MaxRetries when set.
	MaxRetries *int
	Placement  placement.Config
	Filler     filler.Config
	Routing    routing.Config
	// Overlay receives debug markers; nil discards them.
	Overlay overlay.Sink
}

// DefaultOptions returns the standard configuration of every stage.
func DefaultOptions() Options {
	return Options{
		Seed:      42,
		Placement: placement.DefaultConfig(),
		Filler:    filler.DefaultConfig(),
		Routing:   routing.DefaultConfig(),
	}
}

// Compose runs the pipeline on one tree. On a fatal error the returned
// Composition (possibly nil) holds the stages completed so far and Cells is
// empty.
func Compose(tree feature.Tree, opts Options) (*Composition, error) {
	sink := opts.Overlay
	if sink == nil {
		sink = overlay.Nop{}
	}
	pcfg := opts.Placement
	if opts.MaxRetries != nil {
		pcfg.MaxRetries = *opts.MaxRetries
	}

	prepared, err := feature.Prepare(tree)
	if err != nil {
		return nil, fmt.Errorf("resolve positions: %w", err)
	}

	c := &Composition{
		name:     tree.Name,
		seed:     opts.Seed,
		prepared: prepared,
	}

	c.placement = placement.NewEngine(pcfg).Place(prepared, opts.Seed)
	for _, p := range c.placement.Placed() {
		sink.Mark(overlay.Marker{At: p.Center, Shape: overlay.Cross, Label: p.Area.ID})
	}
	if !c.placement.Success() {
		return c, fmt.Errorf("place areas: %w: %s", placement.ErrPlacementExhausted, c.placement.Message())
	}

	c.fill, err = filler.Fill(c.placement, opts.Filler)
	if err != nil {
		return c, fmt.Errorf("fill region: %w", err)
	}

	c.routes = routing.Route(prepared.Flows, routing.PlacedWaypoints(c.placement), opts.Routing)
	marked := make(map[string]bool)
	for _, p := range c.routes.Parts() {
		if p.MergeGroup != "" && !marked[p.MergeGroup] {
			marked[p.MergeGroup] = true
			sink.Mark(overlay.Marker{At: p.Cell, Shape: overlay.Circle, Label: p.MergeGroup})
		}
	}

	c.build()
	slog.Info("composition complete",
		"tree", tree.Name,
		"seed", opts.Seed,
		"cells", len(c.cells),
		"features", len(c.features),
	)
	return c, nil
}

// ComposeRegions composes independent trees concurrently. Each tree gets
// its own engine and state; results come back in input order. The overlay
// sink, if any, must be safe for concurrent use.
func ComposeRegions(trees []feature.Tree, opts Options) ([]*Composition, error) {
	out := make([]*Composition, len(trees))
	errs := make([]error, len(trees))

	var wg sync.WaitGroup
	for i, t := range trees {
		wg.Add(1)
		go func(i int, t feature.Tree) {
			defer wg.Done()
			c, err := Compose(t, opts)
			out[i] = c
			if err != nil {
				errs[i] = fmt.Errorf("region %d (%s): %w", i, t.Name, err)
			}
		}(i, t)
	}
	wg.Wait()

	return out, errors.Join(errs...)
}

// IsFatal reports whether err stops the pipeline. Every error Compose
// returns is fatal; per-flow and tolerated placement failures are only
// recorded in the results.
func IsFatal(err error) bool {
	return errors.Is(err, feature.ErrUnresolvedAnchor) ||
		errors.Is(err, feature.ErrInvalidTree) ||
		errors.Is(err, filler.ErrEmptyRegion) ||
		errors.Is(err, placement.ErrPlacementExhausted)
}

// CellConfig is the per-cell hand-off to terrain builders.
type CellConfig struct {
	Coord    world.HexCoord
	Owner    *filler.Owner
	Category filler.Category
	Payload  filler.Payload
	Flows    []routing.Part
}

// FeatureResult maps one authored feature to what composition made of it.
type FeatureResult struct {
	ID   string
	Kind string
	// Placed is true for areas with at least one placed position and for
	// routed flows.
	Placed bool
	Center world.HexCoord
	// Footprint holds owned cells for areas, traversed cells for flows.
	Footprint []world.HexCoord
	Parts     []routing.Part
	Errs      []error
}
