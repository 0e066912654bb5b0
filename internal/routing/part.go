package routing

import (
	"errors"
	"fmt"

	"github.com/talgya/world-composer/internal/feature"
	"github.com/talgya/world-composer/internal/world"
)

// ErrUnreachableWaypoint fails a single flow; other flows still route.
var ErrUnreachableWaypoint = errors.New("unreachable waypoint")

// WaypointError names the flow and waypoint that failed.
type WaypointError struct {
	FlowID   string
	Waypoint string
	Reason   string
}

func (e *WaypointError) Error() string {
	if e.Waypoint == "" {
		return fmt.Sprintf("flow %q: %s", e.FlowID, e.Reason)
	}
	return fmt.Sprintf("flow %q waypoint %q: %s", e.FlowID, e.Waypoint, e.Reason)
}

func (e *WaypointError) Unwrap() error {
	return ErrUnreachableWaypoint
}

// PartDir says whether a part is where a flow enters or leaves a cell.
type PartDir uint8

const (
	// PartFrom: the flow enters the cell through Side.
	PartFrom PartDir = iota
	// PartTo: the flow leaves the cell through Side.
	PartTo
)

func (d PartDir) String() string {
	if d == PartTo {
		return "TO"
	}
	return "FROM"
}

// Part is one half of a flow crossing a shared cell boundary.
type Part struct {
	FlowID     string
	Kind       feature.FlowKind
	Cell       world.HexCoord
	Side       world.Side
	Dir        PartDir
	Width      int
	Depth      int
	Level      int
	MergeGroup string
	// Seq orders the parts of one flow along its path.
	Seq int
}

// Connection is a directed edge between two adjacent cells, the pair of
// parts a single step produces.
type Connection struct {
	From, To world.HexCoord
	Side     world.Side // side of From the flow leaves through
}

// FlowRoute is the routing outcome for one flow.
type FlowRoute struct {
	FlowID string
	Kind   feature.FlowKind
	// Cells is the full chain of traversed cells, waypoints included once.
	Cells       []world.HexCoord
	Connections []Connection
	Parts       []Part
	Err         error
}

// Routed reports whether the flow produced a path.
func (r FlowRoute) Routed() bool {
	return r.Err == nil
}
