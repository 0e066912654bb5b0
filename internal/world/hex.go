// Package world provides the hex grid geometry used by the composer.
// Uses axial coordinates (q, r) on a flat-top hex grid; north is -r.
package world

import (
	"fmt"
	"math"
)

// HexCoord represents a position on the hex grid using axial coordinates.
// The third cube coordinate s is derived: s = -q - r.
type HexCoord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// Origin is the grid origin, used as the anchor when none is named.
var Origin = HexCoord{}

// S returns the implicit third cube coordinate.
func (h HexCoord) S() int {
	return -h.Q - h.R
}

// Add returns h offset by o.
func (h HexCoord) Add(o HexCoord) HexCoord {
	return HexCoord{Q: h.Q + o.Q, R: h.R + o.R}
}

// Sub returns h - o.
func (h HexCoord) Sub(o HexCoord) HexCoord {
	return HexCoord{Q: h.Q - o.Q, R: h.R - o.R}
}

func (h HexCoord) String() string {
	return fmt.Sprintf("(%d,%d)", h.Q, h.R)
}

// Less orders coordinates by r, then q. Used wherever output order must be stable.
func (h HexCoord) Less(o HexCoord) bool {
	if h.R != o.R {
		return h.R < o.R
	}
	return h.Q < o.Q
}

// Side identifies one of the six edges of a flat-top hex cell.
type Side uint8

const (
	SideN Side = iota
	SideNE
	SideSE
	SideS
	SideSW
	SideNW
)

// Sides lists every side clockwise from north.
var Sides = [6]Side{SideN, SideNE, SideSE, SideS, SideSW, SideNW}

// HexNeighborDirections defines the six neighbor offsets in axial coordinates,
// indexed by Side.
var HexNeighborDirections = [6]HexCoord{
	{Q: 0, R: -1},
	{Q: 1, R: -1},
	{Q: 1, R: 0},
	{Q: 0, R: 1},
	{Q: -1, R: 1},
	{Q: -1, R: 0},
}

var sideNames = [6]string{"N", "NE", "SE", "S", "SW", "NW"}

func (s Side) String() string {
	if int(s) < len(sideNames) {
		return sideNames[s]
	}
	return "?"
}

// Opposite returns the side facing s across a shared boundary.
func (s Side) Opposite() Side {
	return (s + 3) % 6
}

// Offset returns the axial step through side s.
func (s Side) Offset() HexCoord {
	return HexNeighborDirections[s%6]
}

// Angle returns the side's heading in degrees, clockwise from north.
func (s Side) Angle() float64 {
	return float64(s%6) * 60
}

// ParseSide parses a side name such as "NE".
func ParseSide(name string) (Side, bool) {
	for i, n := range sideNames {
		if n == name {
			return Side(i), true
		}
	}
	return 0, false
}

// Neighbor returns the adjacent cell through side s.
func (h HexCoord) Neighbor(s Side) HexCoord {
	return h.Add(s.Offset())
}

// Neighbors returns the six adjacent hex coordinates, indexed by Side.
func (h HexCoord) Neighbors() [6]HexCoord {
	var result [6]HexCoord
	for i, dir := range HexNeighborDirections {
		result[i] = HexCoord{Q: h.Q + dir.Q, R: h.R + dir.R}
	}
	return result
}

// SideTo returns the side of h shared with the adjacent cell o.
// ok is false when the cells are not neighbors.
func (h HexCoord) SideTo(o HexCoord) (Side, bool) {
	d := o.Sub(h)
	for i, dir := range HexNeighborDirections {
		if d == dir {
			return Side(i), true
		}
	}
	return 0, false
}

// Distance returns the hex distance between two coordinates.
func Distance(a, b HexCoord) int {
	dq := abs(a.Q - b.Q)
	dr := abs(a.R - b.R)
	ds := abs(a.S() - b.S())
	// Max of the three absolute differences in cube coordinates.
	return max(dq, dr, ds)
}

// Adjacent reports whether a and b share a side.
func Adjacent(a, b HexCoord) bool {
	return Distance(a, b) == 1
}

// Point is a continuous position in pixel space; one hex step between
// neighbor centers has length sqrt(3). +Y points south.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ToPoint converts a hex center to pixel space.
func (h HexCoord) ToPoint() Point {
	return Point{
		X: 1.5 * float64(h.Q),
		Y: math.Sqrt(3) * (float64(h.R) + float64(h.Q)/2),
	}
}

// PointToHex returns the hex containing p.
func PointToHex(p Point) HexCoord {
	q := p.X * 2 / 3
	r := -p.X/3 + p.Y*math.Sqrt(3)/3
	return roundHex(q, r)
}

// roundHex rounds fractional axial coordinates to the nearest cell.
func roundHex(fq, fr float64) HexCoord {
	fs := -fq - fr
	q := math.Round(fq)
	r := math.Round(fr)
	s := math.Round(fs)

	dq := math.Abs(q - fq)
	dr := math.Abs(r - fr)
	ds := math.Abs(s - fs)

	switch {
	case dq > dr && dq > ds:
		q = -r - s
	case dr > ds:
		r = -q - s
	}
	return HexCoord{Q: int(q), R: int(r)}
}

// Polar returns the hex dist steps from the origin at the given heading
// (degrees clockwise from north). The result lies on the ring of radius dist,
// interpolated between the two side corners that bracket the heading.
func Polar(angleDeg, dist float64) HexCoord {
	a := NormalizeAngle(angleDeg)
	k := int(a/60) % 6
	f := (a - float64(k)*60) / 60
	from, to := HexNeighborDirections[k], HexNeighborDirections[(k+1)%6]
	fq := dist * ((1-f)*float64(from.Q) + f*float64(to.Q))
	fr := dist * ((1-f)*float64(from.R) + f*float64(to.R))
	return roundHex(fq, fr)
}

// Centroid returns the cell nearest to the average pixel position of cells.
// Returns Origin for an empty set.
func Centroid(cells []HexCoord) HexCoord {
	if len(cells) == 0 {
		return Origin
	}
	var sx, sy float64
	for _, c := range cells {
		p := c.ToPoint()
		sx += p.X
		sy += p.Y
	}
	n := float64(len(cells))
	return PointToHex(Point{X: sx / n, Y: sy / n})
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
