package world

import "testing"

func TestDistance(t *testing.T) {
	cases := []struct {
		a, b HexCoord
		want int
	}{
		{HexCoord{0, 0}, HexCoord{0, 0}, 0},
		{HexCoord{0, 0}, HexCoord{1, 0}, 1},
		{HexCoord{0, 0}, HexCoord{1, -1}, 1},
		{HexCoord{0, 0}, HexCoord{3, -1}, 3},
		{HexCoord{-2, 1}, HexCoord{2, -1}, 4},
		{HexCoord{0, -5}, HexCoord{0, 5}, 10},
	}
	for _, tc := range cases {
		if got := Distance(tc.a, tc.b); got != tc.want {
			t.Fatalf("Distance(%v,%v)=%d want %d", tc.a, tc.b, got, tc.want)
		}
		if got := Distance(tc.b, tc.a); got != tc.want {
			t.Fatalf("Distance not symmetric for %v,%v", tc.a, tc.b)
		}
	}
}

func TestSideOppositeAndNeighbor(t *testing.T) {
	c := HexCoord{Q: 2, R: -3}
	for _, s := range Sides {
		n := c.Neighbor(s)
		if !Adjacent(c, n) {
			t.Fatalf("side %v: %v not adjacent to %v", s, n, c)
		}
		got, ok := c.SideTo(n)
		if !ok || got != s {
			t.Fatalf("SideTo(%v)=%v,%v want %v", n, got, ok, s)
		}
		back, ok := n.SideTo(c)
		if !ok || back != s.Opposite() {
			t.Fatalf("reverse side %v want %v", back, s.Opposite())
		}
		if s.Opposite().Opposite() != s {
			t.Fatalf("opposite not an involution for %v", s)
		}
	}
	if _, ok := c.SideTo(c.Add(HexCoord{Q: 2})); ok {
		t.Fatalf("non-neighbor reported a side")
	}
}

func TestParseSide(t *testing.T) {
	for _, s := range Sides {
		got, ok := ParseSide(s.String())
		if !ok || got != s {
			t.Fatalf("ParseSide(%q)=%v,%v", s.String(), got, ok)
		}
	}
	if _, ok := ParseSide("E"); ok {
		t.Fatalf("E is not a flat-top side")
	}
}

func TestPolarFollowsSides(t *testing.T) {
	for _, s := range Sides {
		got := Polar(s.Angle(), 3)
		want := HexCoord{Q: 3 * s.Offset().Q, R: 3 * s.Offset().R}
		if got != want {
			t.Fatalf("Polar(%v,3)=%v want %v", s.Angle(), got, want)
		}
	}
	if got := Polar(123, 0); got != Origin {
		t.Fatalf("zero distance should stay at origin, got %v", got)
	}
	for angle := -40.0; angle <= 400; angle += 7.5 {
		for d := 1; d <= 9; d++ {
			if got := Distance(Origin, Polar(angle, float64(d))); got != d {
				t.Fatalf("Polar(%v,%d) lands %d steps out", angle, d, got)
			}
		}
	}
}

func TestPointRoundTrip(t *testing.T) {
	for _, c := range Disc(HexCoord{Q: 1, R: -2}, 4) {
		if got := PointToHex(c.ToPoint()); got != c {
			t.Fatalf("PointToHex(ToPoint(%v))=%v", c, got)
		}
	}
}

func TestCentroid(t *testing.T) {
	center := HexCoord{Q: -3, R: 5}
	if got := Centroid(Disc(center, 2)); got != center {
		t.Fatalf("disc centroid=%v want %v", got, center)
	}
	if got := Centroid(nil); got != Origin {
		t.Fatalf("empty centroid=%v", got)
	}
}
