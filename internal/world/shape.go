package world

import (
	"math"
	"sort"
)

// Disc returns every cell within radius steps of center, sorted.
func Disc(center HexCoord, radius int) []HexCoord {
	if radius < 0 {
		return nil
	}
	cells := make([]HexCoord, 0, 3*radius*(radius+1)+1)
	for q := -radius; q <= radius; q++ {
		rMin := max(-radius, -q-radius)
		rMax := min(radius, -q+radius)
		for r := rMin; r <= rMax; r++ {
			cells = append(cells, HexCoord{Q: center.Q + q, R: center.R + r})
		}
	}
	SortCoords(cells)
	return cells
}

// Ring returns the cells exactly radius steps from center, sorted.
func Ring(center HexCoord, radius int) []HexCoord {
	if radius <= 0 {
		return []HexCoord{center}
	}
	var cells []HexCoord
	for _, c := range Disc(center, radius) {
		if Distance(c, center) == radius {
			cells = append(cells, c)
		}
	}
	return cells
}

// Rect returns a width x height block of cells in odd-q offset layout,
// centered on center, sorted.
func Rect(center HexCoord, width, height int) []HexCoord {
	if width <= 0 || height <= 0 {
		return nil
	}
	cc, cr := toOffset(center)
	col0 := cc - width/2
	row0 := cr - height/2
	cells := make([]HexCoord, 0, width*height)
	for col := col0; col < col0+width; col++ {
		for row := row0; row < row0+height; row++ {
			cells = append(cells, fromOffset(col, row))
		}
	}
	SortCoords(cells)
	return cells
}

func toOffset(h HexCoord) (col, row int) {
	return h.Q, h.R + (h.Q-(h.Q&1))/2
}

func fromOffset(col, row int) HexCoord {
	return HexCoord{Q: col, R: row - (col-(col&1))/2}
}

// Line returns a straight run of roughly length cells starting at start and
// heading along angleDeg. The run is side-connected.
func Line(start HexCoord, angleDeg float64, length int) []HexCoord {
	if length <= 0 {
		return nil
	}
	end := start.Add(Polar(angleDeg, float64(length-1)))
	path, _ := Walk(start, end, Distance(start, end))
	return path
}

// Walk returns the chain of side-adjacent cells from a to b inclusive.
// Each step moves to a neighbor one step closer to b; among the (at most two)
// such neighbors the one nearest the straight a→b segment wins, then the
// lower side index. ok is false when b is more than maxSteps away.
func Walk(a, b HexCoord, maxSteps int) (path []HexCoord, ok bool) {
	total := Distance(a, b)
	if total > maxSteps {
		return nil, false
	}
	path = make([]HexCoord, 0, total+1)
	path = append(path, a)

	pa, pb := a.ToPoint(), b.ToPoint()
	dx, dy := pb.X-pa.X, pb.Y-pa.Y

	cur := a
	for remaining := total; remaining > 0; remaining-- {
		best := cur
		bestErr := math.Inf(1)
		for _, n := range cur.Neighbors() {
			if Distance(n, b) != remaining-1 {
				continue
			}
			p := n.ToPoint()
			cross := math.Abs(dx*(p.Y-pa.Y) - dy*(p.X-pa.X))
			if cross < bestErr-1e-9 {
				best, bestErr = n, cross
			}
		}
		cur = best
		path = append(path, cur)
	}
	return path, true
}

// SortCoords sorts coordinates in place by r, then q.
func SortCoords(cells []HexCoord) {
	sort.Slice(cells, func(i, j int) bool { return cells[i].Less(cells[j]) })
}
