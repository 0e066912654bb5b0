package world

import "fmt"

// Region is a hexagon-shaped area bounded independently on each cube axis.
// A cell is inside when Min <= coord <= Max holds for q, r and s.
type Region struct {
	MinQ, MaxQ int
	MinR, MaxR int
	MinS, MaxS int
}

// HexagonRegion returns the regular hexagon of the given radius around center.
func HexagonRegion(center HexCoord, radius int) Region {
	return Region{
		MinQ: center.Q - radius, MaxQ: center.Q + radius,
		MinR: center.R - radius, MaxR: center.R + radius,
		MinS: center.S() - radius, MaxS: center.S() + radius,
	}
}

// Bound returns the smallest region covering cells, grown by margin on every
// axis. ok is false when cells is empty.
func Bound(cells []HexCoord, margin int) (Region, bool) {
	if len(cells) == 0 {
		return Region{}, false
	}
	first := cells[0]
	reg := Region{
		MinQ: first.Q, MaxQ: first.Q,
		MinR: first.R, MaxR: first.R,
		MinS: first.S(), MaxS: first.S(),
	}
	for _, c := range cells[1:] {
		reg.MinQ, reg.MaxQ = min(reg.MinQ, c.Q), max(reg.MaxQ, c.Q)
		reg.MinR, reg.MaxR = min(reg.MinR, c.R), max(reg.MaxR, c.R)
		reg.MinS, reg.MaxS = min(reg.MinS, c.S()), max(reg.MaxS, c.S())
	}
	if margin > 0 {
		reg.MinQ -= margin
		reg.MaxQ += margin
		reg.MinR -= margin
		reg.MaxR += margin
		reg.MinS -= margin
		reg.MaxS += margin
	}
	return reg, true
}

// InBounds returns true if the coordinate lies inside the region.
func (g Region) InBounds(c HexCoord) bool {
	s := c.S()
	return c.Q >= g.MinQ && c.Q <= g.MaxQ &&
		c.R >= g.MinR && c.R <= g.MaxR &&
		s >= g.MinS && s <= g.MaxS
}

// Cells returns every cell of the region, sorted by r then q.
func (g Region) Cells() []HexCoord {
	var cells []HexCoord
	for r := g.MinR; r <= g.MaxR; r++ {
		for q := g.MinQ; q <= g.MaxQ; q++ {
			s := -q - r
			if s < g.MinS || s > g.MaxS {
				continue
			}
			cells = append(cells, HexCoord{Q: q, R: r})
		}
	}
	return cells
}

// HexCount returns the total number of cells in the region.
func (g Region) HexCount() int {
	n := 0
	for r := g.MinR; r <= g.MaxR; r++ {
		for q := g.MinQ; q <= g.MaxQ; q++ {
			if s := -q - r; s >= g.MinS && s <= g.MaxS {
				n++
			}
		}
	}
	return n
}

// Center returns the cell nearest the middle of the region's bounds.
func (g Region) Center() HexCoord {
	fq := float64(g.MinQ+g.MaxQ) / 2
	fr := float64(g.MinR+g.MaxR) / 2
	return roundHex(fq, fr)
}

// String returns a summary of the region.
func (g Region) String() string {
	return fmt.Sprintf("Region(q=[%d,%d], r=[%d,%d], s=[%d,%d], hexes=%d)",
		g.MinQ, g.MaxQ, g.MinR, g.MaxR, g.MinS, g.MaxS, g.HexCount())
}
