package world

import (
	"math"
	"strings"
)

// Direction is a compass heading used to aim relative placements.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	SouthEast
	South
	SouthWest
	NorthWest
	East
	West
)

// ConeHalfWidth is the half-angle, in degrees, of the cone a Direction covers.
const ConeHalfWidth = 30.0

var directionAngles = [...]float64{
	North:     0,
	NorthEast: 60,
	SouthEast: 120,
	South:     180,
	SouthWest: 240,
	NorthWest: 300,
	East:      90,
	West:      270,
}

var directionNames = [...]string{
	North:     "NORTH",
	NorthEast: "NORTH_EAST",
	SouthEast: "SOUTH_EAST",
	South:     "SOUTH",
	SouthWest: "SOUTH_WEST",
	NorthWest: "NORTH_WEST",
	East:      "EAST",
	West:      "WEST",
}

// Angle returns the canonical heading in degrees, clockwise from north.
func (d Direction) Angle() float64 {
	if int(d) < len(directionAngles) {
		return directionAngles[d]
	}
	return 0
}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "UNKNOWN"
}

// Side returns the hex side nearest to the heading. Headings between two
// sides (East, West) resolve to the side with the lower angle.
func (d Direction) Side() Side {
	return SideForAngle(d.Angle())
}

// SideForAngle returns the side whose heading is nearest to angleDeg.
func SideForAngle(angleDeg float64) Side {
	a := NormalizeAngle(angleDeg)
	// Half-way points round down so that 90 maps to NE and 270 to SW.
	idx := int(math.Ceil((a-30)/60)) % 6
	if idx < 0 {
		idx += 6
	}
	return Side(idx)
}

// NormalizeAngle maps any angle into [0, 360).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// ParseDirection accepts names like "NORTH", "north_east", "NE", "E".
func ParseDirection(name string) (Direction, bool) {
	n := strings.ToUpper(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "-", "_")
	switch n {
	case "N":
		return North, true
	case "NE", "NORTHEAST":
		return NorthEast, true
	case "SE", "SOUTHEAST":
		return SouthEast, true
	case "S":
		return South, true
	case "SW", "SOUTHWEST":
		return SouthWest, true
	case "NW", "NORTHWEST":
		return NorthWest, true
	case "E":
		return East, true
	case "W":
		return West, true
	}
	for i, dn := range directionNames {
		if dn == n {
			return Direction(i), true
		}
	}
	return North, false
}
