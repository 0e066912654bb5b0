package world

import "testing"

func TestDirectionSide(t *testing.T) {
	cases := []struct {
		d    Direction
		want Side
	}{
		{North, SideN},
		{NorthEast, SideNE},
		{SouthEast, SideSE},
		{South, SideS},
		{SouthWest, SideSW},
		{NorthWest, SideNW},
		{East, SideNE},
		{West, SideSW},
	}
	for _, tc := range cases {
		if got := tc.d.Side(); got != tc.want {
			t.Fatalf("%v.Side()=%v want %v", tc.d, got, tc.want)
		}
	}
}

func TestSideForAngle(t *testing.T) {
	cases := []struct {
		angle float64
		want  Side
	}{
		{0, SideN},
		{29, SideN},
		{31, SideNE},
		{-10, SideN},
		{330, SideNW},
		{331, SideN},
		{150, SideSE},
		{181, SideS},
		{720 + 60, SideNE},
	}
	for _, tc := range cases {
		if got := SideForAngle(tc.angle); got != tc.want {
			t.Fatalf("SideForAngle(%v)=%v want %v", tc.angle, got, tc.want)
		}
	}
}

func TestParseDirection(t *testing.T) {
	cases := []struct {
		in   string
		want Direction
	}{
		{"NORTH", North},
		{"north_east", NorthEast},
		{"SE", SouthEast},
		{"south-west", SouthWest},
		{"NW", NorthWest},
		{"east", East},
		{"W", West},
	}
	for _, tc := range cases {
		got, ok := ParseDirection(tc.in)
		if !ok || got != tc.want {
			t.Fatalf("ParseDirection(%q)=%v,%v", tc.in, got, ok)
		}
	}
	if _, ok := ParseDirection("UP"); ok {
		t.Fatalf("UP should not parse")
	}
}

func TestRegion(t *testing.T) {
	reg := HexagonRegion(Origin, 3)
	if got := reg.HexCount(); got != 37 {
		t.Fatalf("radius 3 hexagon has %d cells", got)
	}
	cells := reg.Cells()
	if len(cells) != reg.HexCount() {
		t.Fatalf("Cells()=%d HexCount()=%d", len(cells), reg.HexCount())
	}
	for i := 1; i < len(cells); i++ {
		if !cells[i-1].Less(cells[i]) {
			t.Fatalf("cells not sorted at %d", i)
		}
	}
	if reg.Center() != Origin {
		t.Fatalf("center=%v", reg.Center())
	}

	b, ok := Bound([]HexCoord{{Q: 2, R: -1}, {Q: -1, R: 3}}, 1)
	if !ok {
		t.Fatalf("bound of non-empty set failed")
	}
	for _, c := range []HexCoord{{Q: 2, R: -1}, {Q: -1, R: 3}, {Q: 3, R: -2}} {
		if !b.InBounds(c) {
			t.Fatalf("%v should be in %v", c, b)
		}
	}
	if b.InBounds(HexCoord{Q: 10}) {
		t.Fatalf("far cell reported in bounds")
	}
	if _, ok := Bound(nil, 2); ok {
		t.Fatalf("empty bound should fail")
	}
}
