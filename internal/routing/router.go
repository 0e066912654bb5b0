// Package routing connects rivers, roads and walls across hex cell sides.
// Every step between adjacent cells yields a TO part on the cell being left
// and a FROM part on the cell being entered.
package routing

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"github.com/talgya/world-composer/internal/feature"
	"github.com/talgya/world-composer/internal/placement"
	"github.com/talgya/world-composer/internal/world"
)

// Config holds routing parameters.
type Config struct {
	// MaxTraversal is the longest hex walk allowed between two waypoints.
	MaxTraversal int
}

// DefaultConfig returns the standard traversal guard.
func DefaultConfig() Config {
	return Config{MaxTraversal: 256}
}

// WaypointResolver maps a waypoint reference to a cell.
type WaypointResolver interface {
	Resolve(ref string) (world.HexCoord, bool)
}

// WaypointMap is a fixed reference table, mostly useful in tests.
type WaypointMap map[string]world.HexCoord

// Resolve implements WaypointResolver.
func (m WaypointMap) Resolve(ref string) (world.HexCoord, bool) {
	c, ok := m[ref]
	return c, ok
}

// placedWaypoints resolves area ids to their placed centroid and
// "<area>:<entry>" to the centroid plus the entry offset.
type placedWaypoints struct {
	res *placement.Result
}

// PlacedWaypoints resolves waypoints against a placement result.
func PlacedWaypoints(res *placement.Result) WaypointResolver {
	return placedWaypoints{res: res}
}

func (p placedWaypoints) Resolve(ref string) (world.HexCoord, bool) {
	areaID, entry := feature.EntryRef(ref)
	center, ok := p.res.Center(areaID)
	if !ok {
		return world.HexCoord{}, false
	}
	if entry == "" {
		return center, true
	}
	area, ok := p.res.Input().Area(areaID)
	if !ok {
		return world.HexCoord{}, false
	}
	off, ok := area.EntryPoints[entry]
	if !ok {
		return world.HexCoord{}, false
	}
	return center.Add(off), true
}

// Route walks every flow's waypoints. A flow that cannot be routed keeps its
// error and contributes no parts.
func Route(flows []feature.PreparedFlow, wp WaypointResolver, cfg Config) *Result {
	if cfg.MaxTraversal <= 0 {
		cfg.MaxTraversal = DefaultConfig().MaxTraversal
	}

	routes := make([]FlowRoute, len(flows))
	for i, f := range flows {
		routes[i] = routeFlow(f, wp, cfg)
		if routes[i].Err != nil {
			slog.Warn("flow not routed", "flow", f.ID, "kind", f.Kind.String(), "error", routes[i].Err)
		}
	}

	assignMergeGroups(flows, routes)

	res := &Result{
		routes: routes,
		byCell: make(map[world.HexCoord][]Part),
	}
	failed := 0
	for _, r := range routes {
		if r.Err != nil {
			failed++
			continue
		}
		for _, p := range r.Parts {
			res.byCell[p.Cell] = append(res.byCell[p.Cell], p)
			res.parts = append(res.parts, p)
		}
	}
	order := make(map[string]int, len(flows))
	for i, f := range flows {
		order[f.ID] = i
	}
	sort.SliceStable(res.parts, func(i, j int) bool {
		a, b := res.parts[i], res.parts[j]
		if a.Cell != b.Cell {
			return a.Cell.Less(b.Cell)
		}
		if a.FlowID != b.FlowID {
			return order[a.FlowID] < order[b.FlowID]
		}
		return a.Seq < b.Seq
	})

	slog.Info("flows routed",
		"flows", len(flows),
		"failed", failed,
		"parts", len(res.parts),
		"cells", len(res.byCell),
	)
	return res
}

func routeFlow(f feature.PreparedFlow, wp WaypointResolver, cfg Config) FlowRoute {
	route := FlowRoute{FlowID: f.ID, Kind: f.Kind}
	fail := func(waypoint, reason string) FlowRoute {
		return FlowRoute{
			FlowID: f.ID,
			Kind:   f.Kind,
			Err:    &WaypointError{FlowID: f.ID, Waypoint: waypoint, Reason: reason},
		}
	}

	if len(f.Waypoints) < 2 {
		return fail("", "a flow needs at least two waypoints")
	}

	points := make([]world.HexCoord, len(f.Waypoints))
	for i, ref := range f.Waypoints {
		c, ok := wp.Resolve(ref)
		if !ok {
			return fail(ref, "waypoint does not resolve to a placed cell")
		}
		points[i] = c
	}

	route.Cells = []world.HexCoord{points[0]}
	for i := 1; i < len(points); i++ {
		path, ok := world.Walk(points[i-1], points[i], cfg.MaxTraversal)
		if !ok {
			return fail(f.Waypoints[i], fmt.Sprintf("more than %d steps from %q", cfg.MaxTraversal, f.Waypoints[i-1]))
		}
		route.Cells = append(route.Cells, path[1:]...)
	}

	for i := 1; i < len(route.Cells); i++ {
		from, to := route.Cells[i-1], route.Cells[i]
		side, ok := from.SideTo(to)
		if !ok {
			return fail(f.Waypoints[len(f.Waypoints)-1], fmt.Sprintf("walk left a gap between %v and %v", from, to))
		}
		route.Connections = append(route.Connections, Connection{From: from, To: to, Side: side})
		route.Parts = append(route.Parts,
			newPart(f, from, side, PartTo, len(route.Parts)),
			newPart(f, to, side.Opposite(), PartFrom, len(route.Parts)+1),
		)
	}
	return route
}

func newPart(f feature.PreparedFlow, cell world.HexCoord, side world.Side, dir PartDir, seq int) Part {
	return Part{
		FlowID: f.ID,
		Kind:   f.Kind,
		Cell:   cell,
		Side:   side,
		Dir:    dir,
		Width:  f.Width,
		Depth:  f.Depth,
		Level:  f.Level,
		Seq:    seq,
	}
}

// assignMergeGroups links flows through MergeToID and tags the parts of
// linked flows at every cell two or more of them share.
func assignMergeGroups(flows []feature.PreparedFlow, routes []FlowRoute) {
	index := make(map[string]int, len(flows))
	for i, f := range flows {
		index[f.ID] = i
	}

	parent := make([]int, len(flows))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra == rb {
			return
		}
		// Lowest declaration index becomes the root, so ids are stable.
		if rb < ra {
			ra, rb = rb, ra
		}
		parent[rb] = ra
	}

	linked := false
	for i, f := range flows {
		if f.MergeToID == "" {
			continue
		}
		j, ok := index[f.MergeToID]
		if !ok || j == i {
			slog.Warn("ignoring merge target", "flow", f.ID, "merge_to", f.MergeToID)
			continue
		}
		union(i, j)
		linked = true
	}
	if !linked {
		return
	}

	// cell -> root -> set of member flows present there
	members := make(map[world.HexCoord]map[int]map[int]bool)
	for i, r := range routes {
		if r.Err != nil {
			continue
		}
		root := find(i)
		for _, c := range r.Cells {
			byRoot, ok := members[c]
			if !ok {
				byRoot = make(map[int]map[int]bool)
				members[c] = byRoot
			}
			if byRoot[root] == nil {
				byRoot[root] = make(map[int]bool)
			}
			byRoot[root][i] = true
		}
	}

	for i := range routes {
		if routes[i].Err != nil {
			continue
		}
		root := find(i)
		for k := range routes[i].Parts {
			p := &routes[i].Parts[k]
			if len(members[p.Cell][root]) < 2 {
				continue
			}
			p.MergeGroup = fmt.Sprintf("%s@%d,%d", flows[root].ID, p.Cell.Q, p.Cell.R)
		}
	}
}

// Result is the immutable outcome of routing.
type Result struct {
	routes []FlowRoute
	parts  []Part
	byCell map[world.HexCoord][]Part
}

// Routes returns one route per flow in declaration order.
func (r *Result) Routes() []FlowRoute {
	out := make([]FlowRoute, len(r.routes))
	for i, fr := range r.routes {
		fr.Cells = slices.Clone(fr.Cells)
		fr.Connections = slices.Clone(fr.Connections)
		fr.Parts = slices.Clone(fr.Parts)
		out[i] = fr
	}
	return out
}

// Route returns the route of one flow.
func (r *Result) Route(flowID string) (FlowRoute, bool) {
	for _, fr := range r.Routes() {
		if fr.FlowID == flowID {
			return fr, true
		}
	}
	return FlowRoute{}, false
}

// Parts returns every part of every routed flow, sorted by cell.
func (r *Result) Parts() []Part { return slices.Clone(r.parts) }

// PartsAt returns the parts on one cell.
func (r *Result) PartsAt(c world.HexCoord) []Part { return slices.Clone(r.byCell[c]) }

// Failures returns the routes that failed.
func (r *Result) Failures() []FlowRoute {
	var out []FlowRoute
	for _, fr := range r.routes {
		if fr.Err != nil {
			out = append(out, fr)
		}
	}
	return out
}
