package feature

import "testing"

func intp(v int) *int { return &v }

func TestRangeResolve(t *testing.T) {
	cases := []struct {
		name  string
		r     Range
		table BandTable
		want  Bounds
	}{
		{"band only", Named(BandMedium), AreaBands, Bounds{3, 7}},
		{"nothing", Range{}, AreaBands, Bounds{0, 0}},
		{"explicit wins", Range{Band: BandLarge, From: intp(2), To: intp(4)}, AreaBands, Bounds{2, 4}},
		{"from overrides band", Range{Band: BandSmall, From: intp(2)}, AreaBands, Bounds{2, 3}},
		{"to overrides band", Range{Band: BandLarge, To: intp(10)}, AreaBands, Bounds{7, 10}},
		{"swapped explicit", Explicit(9, 4), AreaBands, Bounds{4, 9}},
		{"lone from drags to", Range{Band: BandSmall, From: intp(6)}, AreaBands, Bounds{6, 6}},
		{"lone to drags from", Range{Band: BandWide, To: intp(5)}, AreaBands, Bounds{5, 5}},
		{"negative clamped", Explicit(-3, 2), AreaBands, Bounds{0, 2}},
		{"flow wide falls back", Named(BandWide), FlowWidthBands, Bounds{6, 10}},
		{"flow small", Named(BandSmall), FlowWidthBands, Bounds{2, 4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.r.Resolve(tc.table)
			if got != tc.want {
				t.Fatalf("got %+v want %+v", got, tc.want)
			}
			if got.From < 0 || got.From > got.To {
				t.Fatalf("bounds out of order: %+v", got)
			}
		})
	}
}

func TestClampPriority(t *testing.T) {
	cases := map[int]int{0: 5, 1: 1, 7: 7, 10: 10, 11: 10, 99: 10, -4: 1}
	for in, want := range cases {
		if got := ClampPriority(in); got != want {
			t.Fatalf("ClampPriority(%d)=%d want %d", in, got, want)
		}
	}
}

func TestParseBand(t *testing.T) {
	for _, b := range []Band{BandSmall, BandMedium, BandLarge, BandWide} {
		got, ok := ParseBand(b.String())
		if !ok || got != b {
			t.Fatalf("ParseBand(%q)=%v,%v", b.String(), got, ok)
		}
	}
	if got, ok := ParseBand(""); !ok || got != BandNone {
		t.Fatalf("empty band should be BandNone")
	}
	if _, ok := ParseBand("HUGE"); ok {
		t.Fatalf("HUGE should not parse")
	}
}

func TestEntryRef(t *testing.T) {
	if a, e := EntryRef("fort:gate"); a != "fort" || e != "gate" {
		t.Fatalf("EntryRef split %q %q", a, e)
	}
	if a, e := EntryRef("lake"); a != "lake" || e != "" {
		t.Fatalf("EntryRef plain %q %q", a, e)
	}
}
