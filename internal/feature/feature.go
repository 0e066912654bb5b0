// Package feature holds the authored feature tree of a world region and its
// resolved ("prepared") counterpart. The Position Resolver lives here too:
// it turns relative positions into concrete ranges and a placement order.
package feature

import (
	"strings"

	"github.com/talgya/world-composer/internal/world"
)

// Identity is shared by every feature.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
}

// Feature is one of Biome, Structure or Flow. The set is closed; callers
// dispatch with a type switch.
type Feature interface {
	Ident() Identity
	isFeature()
}

// Shape is the footprint shape of an area.
type Shape uint8

const (
	ShapeCircle Shape = iota
	ShapeLine
	ShapeRectangle
)

func (s Shape) String() string {
	switch s {
	case ShapeCircle:
		return "CIRCLE"
	case ShapeLine:
		return "LINE"
	case ShapeRectangle:
		return "RECTANGLE"
	default:
		return "UNKNOWN"
	}
}

// ParseShape parses "circle", "LINE", "rectangle".
func ParseShape(name string) (Shape, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "CIRCLE":
		return ShapeCircle, true
	case "LINE":
		return ShapeLine, true
	case "RECTANGLE", "RECT":
		return ShapeRectangle, true
	}
	return ShapeCircle, false
}

// Tags classify areas for the filler. Bit set.
type Tags uint8

const (
	TagLand Tags = 1 << iota
	TagOcean
	TagMountain
)

// Has reports whether all bits of t are set.
func (g Tags) Has(t Tags) bool {
	return g&t == t
}

func (g Tags) String() string {
	var parts []string
	if g.Has(TagLand) {
		parts = append(parts, "LAND")
	}
	if g.Has(TagOcean) {
		parts = append(parts, "OCEAN")
	}
	if g.Has(TagMountain) {
		parts = append(parts, "MOUNTAIN")
	}
	return strings.Join(parts, "|")
}

// ParseTag parses a single tag name.
func ParseTag(name string) (Tags, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "LAND":
		return TagLand, true
	case "OCEAN", "WATER":
		return TagOcean, true
	case "MOUNTAIN":
		return TagMountain, true
	}
	return 0, false
}

// Biome is an area of uniform terrain character.
type Biome struct {
	Identity
	Shape     Shape
	Size      Range
	Tags      Tags
	Positions []RelativePosition
}

// Structure is a settlement or other built area. Entry points are named
// offsets from its placed center that flows may use as waypoints.
type Structure struct {
	Identity
	Shape       Shape
	Size        Range
	Tags        Tags
	Positions   []RelativePosition
	EntryPoints map[string]world.HexCoord
}

// FlowKind distinguishes linear features.
type FlowKind uint8

const (
	FlowRiver FlowKind = iota
	FlowRoad
	FlowWall
)

func (k FlowKind) String() string {
	switch k {
	case FlowRiver:
		return "RIVER"
	case FlowRoad:
		return "ROAD"
	case FlowWall:
		return "WALL"
	default:
		return "UNKNOWN"
	}
}

// ParseFlowKind parses "river", "road", "wall".
func ParseFlowKind(name string) (FlowKind, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "RIVER":
		return FlowRiver, true
	case "ROAD":
		return FlowRoad, true
	case "WALL":
		return FlowWall, true
	}
	return FlowRiver, false
}

// Flow is a river, road or wall threading through an ordered list of
// waypoints. A waypoint is an area id, or "<structureID>:<entry>".
type Flow struct {
	Identity
	Kind      FlowKind
	Waypoints []string
	Width     Range
	Level     int
	Depth     int
	MergeToID string
}

func (b Biome) Ident() Identity     { return b.Identity }
func (s Structure) Ident() Identity { return s.Identity }
func (f Flow) Ident() Identity      { return f.Identity }

func (Biome) isFeature()     {}
func (Structure) isFeature() {}
func (Flow) isFeature()      {}

// Tree is a validated world-region definition. Features keep their
// declaration order, which breaks priority ties during placement.
type Tree struct {
	Name     string
	Features []Feature
}

// Lookup returns the feature with the given id.
func (t Tree) Lookup(id string) (Feature, bool) {
	for _, f := range t.Features {
		if f.Ident().ID == id {
			return f, true
		}
	}
	return nil, false
}

// EntryRef splits a waypoint reference into the area id and the optional
// entry-point name.
func EntryRef(ref string) (areaID, entry string) {
	if i := strings.IndexByte(ref, ':'); i >= 0 {
		return ref[:i], ref[i+1:]
	}
	return ref, ""
}
