package feature

import (
	"fmt"
	"log/slog"
	"maps"
	"sort"

	"github.com/talgya/world-composer/internal/world"
)

// ResolveContext records which anchors already have (or will have, by the
// time they are needed) a resolved point.
type ResolveContext struct {
	areas    map[string]bool
	resolved map[string]bool
}

// NewResolveContext creates a context in which areaIDs are valid anchor
// targets. No anchor is resolved yet.
func NewResolveContext(areaIDs ...string) *ResolveContext {
	ctx := &ResolveContext{
		areas:    make(map[string]bool, len(areaIDs)),
		resolved: make(map[string]bool, len(areaIDs)),
	}
	for _, id := range areaIDs {
		ctx.areas[id] = true
	}
	return ctx
}

// MarkResolved records that id has a resolved point.
func (c *ResolveContext) MarkResolved(id string) {
	c.resolved[id] = true
}

// Resolved reports whether id can be used as an anchor now.
func (c *ResolveContext) Resolved(id string) bool {
	return c.resolved[id]
}

// checkAnchor validates one anchor reference from featureID.
func (c *ResolveContext) checkAnchor(featureID, anchor string) error {
	switch {
	case anchor == "":
		return nil
	case anchor == featureID:
		return &AnchorError{FeatureID: featureID, AnchorID: anchor, Reason: "feature cannot anchor to itself"}
	case !c.areas[anchor]:
		return &AnchorError{FeatureID: featureID, AnchorID: anchor, Reason: "no biome or structure with that id"}
	case !c.resolved[anchor]:
		return &AnchorError{FeatureID: featureID, AnchorID: anchor, Reason: "anchor is placed later"}
	}
	return nil
}

// Resolve checks the anchor of one position of featureID and, on success,
// marks featureID resolved so later positions may anchor to it.
func (c *ResolveContext) Resolve(featureID string, pos PreparedPosition) error {
	if err := c.checkAnchor(featureID, pos.AnchorID); err != nil {
		return err
	}
	c.MarkResolved(featureID)
	return nil
}

func preparePositions(positions []RelativePosition) []PreparedPosition {
	if len(positions) == 0 {
		return []PreparedPosition{{Priority: DefaultPriority}}
	}
	out := make([]PreparedPosition, len(positions))
	for i, rp := range positions {
		b := rp.Distance.Resolve(AreaBands)
		out[i] = PreparedPosition{
			Index:        i,
			Direction:    rp.Direction,
			Angle:        rp.Direction.Angle(),
			DistanceFrom: b.From,
			DistanceTo:   b.To,
			AnchorID:     rp.Anchor,
			Priority:     ClampPriority(rp.Priority),
		}
	}
	return out
}

// Prepare resolves every feature of the tree and fixes the placement order.
// Anchors must resolve in dependency order: an anchor has to be placed by a
// strictly earlier slot than any slot referring to it.
func Prepare(tree Tree) (*Prepared, error) {
	if err := validate(tree); err != nil {
		return nil, err
	}

	p := &Prepared{}
	var areaIDs []string
	for order, f := range tree.Features {
		switch v := f.(type) {
		case Biome:
			p.Areas = append(p.Areas, prepareArea(v.Identity, KindBiome, v.Shape, v.Size, v.Tags, v.Positions, nil, order))
			areaIDs = append(areaIDs, v.ID)
		case Structure:
			p.Areas = append(p.Areas, prepareArea(v.Identity, KindStructure, v.Shape, v.Size, v.Tags, v.Positions, v.EntryPoints, order))
			areaIDs = append(areaIDs, v.ID)
		case Flow:
			p.Flows = append(p.Flows, prepareFlow(v, order))
		default:
			return nil, fmt.Errorf("%w: unsupported feature type %T", ErrInvalidTree, f)
		}
	}

	for ai, a := range p.Areas {
		for pi, pos := range a.Positions {
			p.Order = append(p.Order, Slot{Area: ai, Position: pi, Priority: pos.Priority})
		}
	}
	// Areas are already in declaration order, so a stable sort on priority
	// alone keeps the declaration and position-index tie-breaks.
	sort.SliceStable(p.Order, func(i, j int) bool {
		return p.Order[i].Priority > p.Order[j].Priority
	})

	ctx := NewResolveContext(areaIDs...)
	for _, slot := range p.Order {
		a := p.Areas[slot.Area]
		if err := ctx.Resolve(a.ID, a.Positions[slot.Position]); err != nil {
			return nil, err
		}
	}

	slog.Debug("feature tree prepared",
		"tree", tree.Name,
		"areas", len(p.Areas),
		"flows", len(p.Flows),
		"slots", len(p.Order),
	)
	return p, nil
}

func prepareArea(id Identity, kind Kind, shape Shape, size Range, tags Tags, positions []RelativePosition, entries map[string]world.HexCoord, order int) PreparedArea {
	sz := size.Resolve(AreaBands)
	if tags == 0 {
		tags = TagLand
	}
	return PreparedArea{
		ID:          id.ID,
		Name:        id.Name,
		Kind:        kind,
		Shape:       shape,
		SizeFrom:    sz.From,
		SizeTo:      sz.To,
		Tags:        tags,
		EntryPoints: maps.Clone(entries),
		Positions:   preparePositions(positions),
		Order:       order,
	}
}

func prepareFlow(f Flow, order int) PreparedFlow {
	w := f.Width.Resolve(FlowWidthBands)
	return PreparedFlow{
		ID:        f.ID,
		Name:      f.Name,
		Kind:      f.Kind,
		Waypoints: append([]string(nil), f.Waypoints...),
		WidthFrom: w.From,
		WidthTo:   w.To,
		Width:     (w.From + w.To) / 2,
		Level:     f.Level,
		Depth:     f.Depth,
		MergeToID: f.MergeToID,
		Order:     order,
	}
}

func validate(tree Tree) error {
	seen := make(map[string]bool, len(tree.Features))
	for i, f := range tree.Features {
		if f == nil {
			return fmt.Errorf("%w: feature %d is nil", ErrInvalidTree, i)
		}
		id := f.Ident().ID
		if id == "" {
			return fmt.Errorf("%w: feature %d has no id", ErrInvalidTree, i)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidTree, id)
		}
		seen[id] = true
	}
	return nil
}
