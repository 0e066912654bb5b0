package feature

import (
	"strings"

	"github.com/talgya/world-composer/internal/world"
)

// Band is a named distance, size or width range.
type Band uint8

const (
	BandNone Band = iota
	BandSmall
	BandMedium
	BandLarge
	BandWide
)

func (b Band) String() string {
	switch b {
	case BandSmall:
		return "SMALL"
	case BandMedium:
		return "MEDIUM"
	case BandLarge:
		return "LARGE"
	case BandWide:
		return "WIDE"
	default:
		return "NONE"
	}
}

// ParseBand parses a band name. The empty string is BandNone.
func ParseBand(name string) (Band, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "":
		return BandNone, true
	case "SMALL":
		return BandSmall, true
	case "MEDIUM":
		return BandMedium, true
	case "LARGE":
		return BandLarge, true
	case "WIDE":
		return BandWide, true
	}
	return BandNone, false
}

// Bounds is a concrete inclusive integer range.
type Bounds struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// BandTable maps bands onto concrete ranges.
type BandTable map[Band]Bounds

// AreaBands applies to placement distances and area sizes.
var AreaBands = BandTable{
	BandSmall:  {From: 1, To: 3},
	BandMedium: {From: 3, To: 7},
	BandLarge:  {From: 7, To: 15},
	BandWide:   {From: 15, To: 30},
}

// FlowWidthBands applies to flow widths. WIDE has no own entry and falls
// back to LARGE.
var FlowWidthBands = BandTable{
	BandSmall:  {From: 2, To: 4},
	BandMedium: {From: 4, To: 6},
	BandLarge:  {From: 6, To: 10},
}

func (t BandTable) lookup(b Band) (Bounds, bool) {
	if v, ok := t[b]; ok {
		return v, true
	}
	if b == BandWide {
		v, ok := t[BandLarge]
		return v, ok
	}
	return Bounds{}, false
}

// Range is an authored range: a named band, optionally overridden by
// explicit bounds.
type Range struct {
	Band Band
	From *int
	To   *int
}

// Explicit returns a range with both bounds set.
func Explicit(from, to int) Range {
	return Range{From: &from, To: &to}
}

// Named returns a range backed by a band.
func Named(b Band) Range {
	return Range{Band: b}
}

// Resolve returns the effective bounds. Explicit values win over the band,
// the band wins over zero. The result always has 0 <= From <= To.
func (r Range) Resolve(table BandTable) Bounds {
	var out Bounds
	if b, ok := table.lookup(r.Band); ok {
		out = b
	}
	if r.From != nil {
		out.From = *r.From
	}
	if r.To != nil {
		out.To = *r.To
	}
	out.From = max(out.From, 0)
	out.To = max(out.To, 0)
	if out.From > out.To {
		switch {
		case r.From != nil && r.To != nil:
			out.From, out.To = out.To, out.From
		case r.From != nil:
			out.To = out.From
		default:
			out.From = out.To
		}
	}
	return out
}

// Priority bounds. Higher priorities are placed first.
const (
	MinPriority     = 1
	MaxPriority     = 10
	DefaultPriority = 5
)

// ClampPriority maps 0 to DefaultPriority and clamps into [1, 10].
func ClampPriority(p int) int {
	if p == 0 {
		return DefaultPriority
	}
	return min(max(p, MinPriority), MaxPriority)
}

// RelativePosition places an area relative to an anchor: somewhere in the
// direction's cone, at a distance within the range. An empty Anchor means
// the grid origin.
type RelativePosition struct {
	Direction world.Direction
	Distance  Range
	Anchor    string
	Priority  int
}
