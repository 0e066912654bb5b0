package feature

import (
	"errors"
	"testing"

	"github.com/talgya/world-composer/internal/world"
)

func biome(id string, positions ...RelativePosition) Biome {
	return Biome{Identity: Identity{ID: id}, Size: Named(BandSmall), Positions: positions}
}

func at(anchor string, priority int) RelativePosition {
	return RelativePosition{Direction: world.North, Distance: Named(BandSmall), Anchor: anchor, Priority: priority}
}

func TestPrepareOrder(t *testing.T) {
	tree := Tree{Features: []Feature{
		biome("a", at("", 5)),
		biome("b", at("", 10), at("", 3)),
		Flow{Identity: Identity{ID: "f"}, Waypoints: []string{"a", "b"}},
		biome("c", at("", 5)),
	}}
	p, err := Prepare(tree)
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}

	type slot struct {
		id  string
		pos int
	}
	want := []slot{{"b", 0}, {"a", 0}, {"c", 0}, {"b", 1}}
	if len(p.Order) != len(want) {
		t.Fatalf("order has %d slots want %d", len(p.Order), len(want))
	}
	for i, s := range p.Order {
		got := slot{p.Areas[s.Area].ID, s.Position}
		if got != want[i] {
			t.Fatalf("slot %d = %+v want %+v", i, got, want[i])
		}
	}

	var ids []string
	for _, f := range p.Features() {
		ids = append(ids, f.FeatureID())
	}
	if len(ids) != 4 || ids[0] != "a" || ids[1] != "b" || ids[2] != "f" || ids[3] != "c" {
		t.Fatalf("declaration order lost: %v", ids)
	}
}

func TestPrepareImplicitPosition(t *testing.T) {
	p, err := Prepare(Tree{Features: []Feature{biome("alone")}})
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	a := p.Areas[0]
	if len(a.Positions) != 1 {
		t.Fatalf("want one implicit position, got %d", len(a.Positions))
	}
	pos := a.Positions[0]
	if pos.AnchorID != "" || pos.Direction != world.North || pos.DistanceFrom != 0 || pos.DistanceTo != 0 || pos.Priority != DefaultPriority {
		t.Fatalf("implicit position = %+v", pos)
	}
	if a.Tags != TagLand {
		t.Fatalf("untagged area should default to land, got %v", a.Tags)
	}
}

func TestPrepareAnchors(t *testing.T) {
	cases := []struct {
		name    string
		tree    Tree
		wantErr error
	}{
		{
			name: "anchor placed first",
			tree: Tree{Features: []Feature{
				biome("base", at("", 9)),
				biome("child", at("base", 4)),
			}},
		},
		{
			name: "anchor declared later but higher priority",
			tree: Tree{Features: []Feature{
				biome("child", at("base", 4)),
				biome("base", at("", 9)),
			}},
		},
		{
			name: "anchor placed later",
			tree: Tree{Features: []Feature{
				biome("base", at("", 2)),
				biome("child", at("base", 8)),
			}},
			wantErr: ErrUnresolvedAnchor,
		},
		{
			name: "equal priority declared later",
			tree: Tree{Features: []Feature{
				biome("child", at("base", 5)),
				biome("base", at("", 5)),
			}},
			wantErr: ErrUnresolvedAnchor,
		},
		{
			name:    "self anchor",
			tree:    Tree{Features: []Feature{biome("loop", at("loop", 5))}},
			wantErr: ErrUnresolvedAnchor,
		},
		{
			name:    "unknown anchor",
			tree:    Tree{Features: []Feature{biome("x", at("ghost", 5))}},
			wantErr: ErrUnresolvedAnchor,
		},
		{
			name: "flow cannot anchor",
			tree: Tree{Features: []Feature{
				Flow{Identity: Identity{ID: "river"}, Waypoints: []string{"x"}},
				biome("x", at("river", 5)),
			}},
			wantErr: ErrUnresolvedAnchor,
		},
		{
			name:    "duplicate id",
			tree:    Tree{Features: []Feature{biome("x"), biome("x")}},
			wantErr: ErrInvalidTree,
		},
		{
			name:    "missing id",
			tree:    Tree{Features: []Feature{biome("")}},
			wantErr: ErrInvalidTree,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Prepare(tc.tree)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err=%v want %v", err, tc.wantErr)
			}
		})
	}
}

func TestResolveContext(t *testing.T) {
	ctx := NewResolveContext("lake", "hill")
	ctx.MarkResolved("lake")

	pos := preparePositions([]RelativePosition{
		{Direction: world.SouthEast, Distance: Named(BandLarge), Anchor: "lake", Priority: 42},
	})[0]
	if pos.Angle != 120 || pos.DistanceFrom != 7 || pos.DistanceTo != 15 || pos.Priority != MaxPriority {
		t.Fatalf("prepared position = %+v", pos)
	}
	if err := ctx.Resolve("lake", PreparedPosition{AnchorID: "hill"}); err == nil {
		t.Fatalf("hill is not resolved yet")
	}
	if err := ctx.Resolve("hill", pos); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !ctx.Resolved("hill") {
		t.Fatalf("hill not marked resolved")
	}
	err := ctx.Resolve("lake", PreparedPosition{AnchorID: "lake"})
	var ae *AnchorError
	if !errors.As(err, &ae) || ae.AnchorID != "lake" {
		t.Fatalf("want AnchorError for self anchor, got %v", err)
	}
	if err := ctx.Resolve("lake", PreparedPosition{AnchorID: "hill"}); err != nil {
		t.Fatalf("hill is resolved now: %v", err)
	}
}

func TestPrepareFlowWidth(t *testing.T) {
	p, err := Prepare(Tree{Features: []Feature{
		Flow{Identity: Identity{ID: "r"}, Kind: FlowRiver, Waypoints: []string{"a", "b"}, Width: Named(BandMedium)},
	}})
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	f := p.Flows[0]
	if f.WidthFrom != 4 || f.WidthTo != 6 || f.Width != 5 {
		t.Fatalf("flow width = %d..%d (%d)", f.WidthFrom, f.WidthTo, f.Width)
	}
}
