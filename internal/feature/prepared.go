package feature

import "github.com/talgya/world-composer/internal/world"

// Kind tells biomes and structures apart once prepared.
type Kind uint8

const (
	KindBiome Kind = iota
	KindStructure
)

func (k Kind) String() string {
	if k == KindStructure {
		return "STRUCTURE"
	}
	return "BIOME"
}

// PreparedPosition is a RelativePosition with every value made concrete.
type PreparedPosition struct {
	Index        int
	Direction    world.Direction
	Angle        float64
	DistanceFrom int
	DistanceTo   int
	AnchorID     string
	Priority     int
}

// PreparedFeature is one of PreparedArea or PreparedFlow.
type PreparedFeature interface {
	FeatureID() string
	isPrepared()
}

// PreparedArea is a biome or structure ready for placement.
type PreparedArea struct {
	ID          string
	Name        string
	Kind        Kind
	Shape       Shape
	SizeFrom    int
	SizeTo      int
	Tags        Tags
	EntryPoints map[string]world.HexCoord
	Positions   []PreparedPosition
	// Order is the declaration index within the tree.
	Order int
}

// PreparedFlow is a flow with its width resolved.
type PreparedFlow struct {
	ID        string
	Name      string
	Kind      FlowKind
	Waypoints []string
	WidthFrom int
	WidthTo   int
	// Width is the concrete width handed to builders: the band midpoint.
	Width     int
	Level     int
	Depth     int
	MergeToID string
	Order     int
}

func (a PreparedArea) FeatureID() string { return a.ID }
func (f PreparedFlow) FeatureID() string { return f.ID }

func (PreparedArea) isPrepared() {}
func (PreparedFlow) isPrepared() {}

// Slot is one entry of the placement order: a single position of an area.
type Slot struct {
	Area     int // index into Prepared.Areas
	Position int // index into that area's Positions
	Priority int
}

// Prepared is the resolver's output.
type Prepared struct {
	Areas []PreparedArea
	Flows []PreparedFlow
	// Order lists every area position in the sequence the placement engine
	// must follow: priority descending, then declaration, then position index.
	Order []Slot
}

// Features returns all prepared features in declaration order.
func (p *Prepared) Features() []PreparedFeature {
	out := make([]PreparedFeature, 0, len(p.Areas)+len(p.Flows))
	ai, fi := 0, 0
	for ai < len(p.Areas) || fi < len(p.Flows) {
		switch {
		case fi >= len(p.Flows) || (ai < len(p.Areas) && p.Areas[ai].Order < p.Flows[fi].Order):
			out = append(out, p.Areas[ai])
			ai++
		default:
			out = append(out, p.Flows[fi])
			fi++
		}
	}
	return out
}

// Area returns the prepared area with the given id.
func (p *Prepared) Area(id string) (PreparedArea, bool) {
	for _, a := range p.Areas {
		if a.ID == id {
			return a, true
		}
	}
	return PreparedArea{}, false
}
