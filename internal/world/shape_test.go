package world

import "testing"

func TestDiscSize(t *testing.T) {
	for r := 0; r <= 6; r++ {
		cells := Disc(HexCoord{Q: 4, R: -1}, r)
		if want := 3*r*(r+1) + 1; len(cells) != want {
			t.Fatalf("Disc radius %d has %d cells want %d", r, len(cells), want)
		}
		for _, c := range cells {
			if Distance(c, HexCoord{Q: 4, R: -1}) > r {
				t.Fatalf("cell %v outside radius %d", c, r)
			}
		}
	}
	if Disc(Origin, -1) != nil {
		t.Fatalf("negative radius should be empty")
	}
}

func TestRing(t *testing.T) {
	if got := Ring(Origin, 0); len(got) != 1 || got[0] != Origin {
		t.Fatalf("ring 0=%v", got)
	}
	for r := 1; r <= 4; r++ {
		if got := len(Ring(Origin, r)); got != 6*r {
			t.Fatalf("ring %d has %d cells", r, got)
		}
	}
}

func TestRect(t *testing.T) {
	cases := []struct{ w, h int }{{1, 1}, {3, 2}, {4, 5}, {7, 3}}
	for _, tc := range cases {
		cells := Rect(HexCoord{Q: 1, R: 1}, tc.w, tc.h)
		if len(cells) != tc.w*tc.h {
			t.Fatalf("Rect(%d,%d) has %d cells", tc.w, tc.h, len(cells))
		}
		seen := map[HexCoord]bool{}
		for _, c := range cells {
			if seen[c] {
				t.Fatalf("duplicate cell %v", c)
			}
			seen[c] = true
		}
	}
	if Rect(Origin, 0, 3) != nil {
		t.Fatalf("zero width should be empty")
	}
}

func assertConnected(t *testing.T, path []HexCoord) {
	t.Helper()
	for i := 1; i < len(path); i++ {
		if !Adjacent(path[i-1], path[i]) {
			t.Fatalf("step %d: %v -> %v not adjacent", i, path[i-1], path[i])
		}
	}
}

func TestWalk(t *testing.T) {
	cases := []struct{ a, b HexCoord }{
		{Origin, Origin},
		{Origin, HexCoord{Q: 5, R: 0}},
		{HexCoord{Q: -3, R: 4}, HexCoord{Q: 6, R: -7}},
		{HexCoord{Q: 2, R: 2}, HexCoord{Q: -4, R: 1}},
	}
	for _, tc := range cases {
		path, ok := Walk(tc.a, tc.b, 64)
		if !ok {
			t.Fatalf("Walk(%v,%v) failed", tc.a, tc.b)
		}
		if len(path) != Distance(tc.a, tc.b)+1 {
			t.Fatalf("Walk(%v,%v) length %d want %d", tc.a, tc.b, len(path), Distance(tc.a, tc.b)+1)
		}
		if path[0] != tc.a || path[len(path)-1] != tc.b {
			t.Fatalf("Walk endpoints %v..%v", path[0], path[len(path)-1])
		}
		assertConnected(t, path)

		again, _ := Walk(tc.a, tc.b, 64)
		for i := range path {
			if path[i] != again[i] {
				t.Fatalf("Walk not deterministic at %d", i)
			}
		}
	}

	if _, ok := Walk(Origin, HexCoord{Q: 10}, 9); ok {
		t.Fatalf("walk beyond maxSteps should fail")
	}
}

func TestLine(t *testing.T) {
	line := Line(HexCoord{Q: 1, R: 1}, 120, 5)
	if len(line) != 5 {
		t.Fatalf("line has %d cells", len(line))
	}
	if line[0] != (HexCoord{Q: 1, R: 1}) {
		t.Fatalf("line starts at %v", line[0])
	}
	assertConnected(t, line)
	if Line(Origin, 0, 0) != nil {
		t.Fatalf("zero length line should be empty")
	}
}
