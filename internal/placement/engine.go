// Package placement assigns non-overlapping footprints to prepared areas,
// resampling on conflict within a bounded retry budget.
package placement

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/talgya/world-composer/internal/entropy"
	"github.com/talgya/world-composer/internal/feature"
	"github.com/talgya/world-composer/internal/world"
)

// Config holds placement parameters.
type Config struct {
	// MaxRetries bounds resamples per position; total attempts are
	// MaxRetries+1.
	MaxRetries int
	// Positions with priority above MandatoryPriority must place for the
	// run to succeed.
	MandatoryPriority int
}

// DefaultConfig returns the standard retry budget and threshold.
func DefaultConfig() Config {
	return Config{
		MaxRetries:        32,
		MandatoryPriority: 7,
	}
}

// Engine places prepared areas. An Engine holds no state between runs, so a
// single value may be shared; each Place call owns its footprint state.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine; negative retry budgets are treated as zero.
func NewEngine(cfg Config) *Engine {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &Engine{cfg: cfg}
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// run is the mutable state of a single Place call. It never escapes.
type run struct {
	stream    *entropy.Stream
	occupied  map[world.HexCoord]int
	areaCells map[string][]world.HexCoord
	committed int
	placed    []PlacedArea
	failures  []Failure
	retries   int
}

// Place walks p.Order and places every slot. Failures are recorded and do
// not stop the run. Identical seed and input give an identical Result.
func (e *Engine) Place(p *feature.Prepared, seed int64) *Result {
	st := &run{
		stream:    entropy.NewStream(seed),
		occupied:  make(map[world.HexCoord]int),
		areaCells: make(map[string][]world.HexCoord),
	}

	for _, slot := range p.Order {
		area := p.Areas[slot.Area]
		pos := area.Positions[slot.Position]
		mandatory := pos.Priority > e.cfg.MandatoryPriority

		retries, err := e.placeSlot(st, area, pos)
		st.retries += retries
		if err != nil {
			st.failures = append(st.failures, Failure{
				AreaID:    area.ID,
				Position:  pos.Index,
				Priority:  pos.Priority,
				Mandatory: mandatory,
				Retries:   retries,
				Err:       err,
			})
			slog.Debug("placement failed",
				"area", area.ID,
				"position", pos.Index,
				"priority", pos.Priority,
				"mandatory", mandatory,
				"error", err,
			)
		}
	}

	res := &Result{
		input:     p,
		seed:      seed,
		placed:    st.placed,
		failures:  st.failures,
		retries:   st.retries,
		success:   true,
		owners:    st.occupied,
		areaCells: st.areaCells,
	}

	var mandatoryIDs []string
	for _, f := range st.failures {
		if f.Mandatory {
			mandatoryIDs = append(mandatoryIDs, fmt.Sprintf("%s#%d", f.AreaID, f.Position))
		}
	}
	if len(mandatoryIDs) > 0 {
		res.success = false
		res.message = fmt.Sprintf("%d mandatory position(s) could not be placed: %s",
			len(mandatoryIDs), strings.Join(mandatoryIDs, ", "))
	}

	slog.Info("placement complete",
		"placed", len(st.placed),
		"failed", len(st.failures),
		"retries", st.retries,
		"cells", st.committed,
		"success", res.success,
	)
	return res
}

// placeSlot tries one position until it fits or the budget runs out.
// It returns the number of resamples used.
func (e *Engine) placeSlot(st *run, area feature.PreparedArea, pos feature.PreparedPosition) (int, error) {
	anchor := world.Origin
	if pos.AnchorID != "" {
		cells := st.areaCells[pos.AnchorID]
		if len(cells) == 0 {
			return 0, &ExhaustedError{
				AreaID:   area.ID,
				Position: pos.Index,
				Reason:   fmt.Sprintf("anchor %q was not placed", pos.AnchorID),
			}
		}
		anchor = world.Centroid(cells)
	}

	for attempt := 0; attempt <= e.cfg.MaxRetries; attempt++ {
		c := sample(st.stream, area, pos, anchor)
		if st.overlaps(c.footprint) {
			continue
		}
		if err := st.commit(area, pos, c, attempt); err != nil {
			return attempt, err
		}
		return attempt, nil
	}
	return e.cfg.MaxRetries, &ExhaustedError{
		AreaID:   area.ID,
		Position: pos.Index,
		Retries:  e.cfg.MaxRetries,
		Reason:   "every sampled footprint overlapped a placed area",
	}
}

func (st *run) overlaps(cells []world.HexCoord) bool {
	for _, c := range cells {
		if _, taken := st.occupied[c]; taken {
			return true
		}
	}
	return false
}

// commit records the candidate and re-checks that footprints stay disjoint.
func (st *run) commit(area feature.PreparedArea, pos feature.PreparedPosition, c candidate, retries int) error {
	idx := len(st.placed)
	seen := make(map[world.HexCoord]bool, len(c.footprint))
	for _, cell := range c.footprint {
		if owner, taken := st.occupied[cell]; taken {
			return fmt.Errorf("commit %q: cell %v already owned by %q", area.ID, cell, st.placed[owner].Area.ID)
		}
		if seen[cell] {
			return fmt.Errorf("commit %q: footprint repeats cell %v", area.ID, cell)
		}
		seen[cell] = true
	}
	for _, cell := range c.footprint {
		st.occupied[cell] = idx
	}
	st.committed += len(c.footprint)

	cells := append(st.areaCells[area.ID], c.footprint...)
	world.SortCoords(cells)
	st.areaCells[area.ID] = cells

	st.placed = append(st.placed, PlacedArea{
		Area:      area,
		Position:  pos,
		Center:    c.center,
		Footprint: c.footprint,
		Retries:   retries,
	})
	slog.Debug("area placed",
		"area", area.ID,
		"position", pos.Index,
		"center", c.center.String(),
		"distance", c.distance,
		"cells", len(c.footprint),
		"retries", retries,
	)
	return nil
}
