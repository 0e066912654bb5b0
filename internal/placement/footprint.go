package placement

import (
	"github.com/talgya/world-composer/internal/entropy"
	"github.com/talgya/world-composer/internal/feature"
	"github.com/talgya/world-composer/internal/world"
)

// candidate is one sampled attempt at placing an area position.
type candidate struct {
	angle     float64
	distance  int
	center    world.HexCoord
	footprint []world.HexCoord
}

// sample draws a candidate around anchor. The draw order (angle, distance,
// size) is fixed; changing it changes every seeded layout.
func sample(s *entropy.Stream, area feature.PreparedArea, pos feature.PreparedPosition, anchor world.HexCoord) candidate {
	angle := world.NormalizeAngle(pos.Angle + s.FloatRange(-world.ConeHalfWidth, world.ConeHalfWidth))
	dist := s.IntRange(pos.DistanceFrom, pos.DistanceTo)
	center := anchor.Add(world.Polar(angle, float64(dist)))
	return candidate{
		angle:     angle,
		distance:  dist,
		center:    center,
		footprint: shapeFootprint(s, area, center, angle),
	}
}

// shapeFootprint builds the sorted cell set for the area's shape.
func shapeFootprint(s *entropy.Stream, area feature.PreparedArea, center world.HexCoord, angle float64) []world.HexCoord {
	switch area.Shape {
	case feature.ShapeLine:
		length := s.IntRange(max(area.SizeFrom, 1), max(area.SizeTo, 1))
		cells := world.Line(center, angle, length)
		world.SortCoords(cells)
		return cells
	case feature.ShapeRectangle:
		w := s.IntRange(max(area.SizeFrom, 1), max(area.SizeTo, 1))
		h := s.IntRange(max(area.SizeFrom, 1), max(area.SizeTo, 1))
		return world.Rect(center, w, h)
	default:
		radius := s.IntRange(area.SizeFrom, area.SizeTo)
		return world.Disc(center, radius)
	}
}
