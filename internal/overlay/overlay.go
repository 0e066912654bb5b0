// Package overlay is a debug side channel: composition stages may drop
// markers at hex cells for diagnostic rendering. Nothing reads markers back
// into composition.
package overlay

import (
	"log/slog"
	"sync"

	"github.com/talgya/world-composer/internal/world"
)

// Shape of a marker.
type Shape uint8

const (
	Cross Shape = iota
	Circle
)

func (s Shape) String() string {
	if s == Circle {
		return "circle"
	}
	return "cross"
}

// Marker is one diagnostic mark.
type Marker struct {
	At    world.HexCoord
	Shape Shape
	Label string
}

// Sink receives markers.
type Sink interface {
	Mark(m Marker)
}

// Nop discards every marker.
type Nop struct{}

// Mark implements Sink.
func (Nop) Mark(Marker) {}

// Recorder keeps markers in arrival order. Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	markers []Marker
}

// Mark implements Sink.
func (r *Recorder) Mark(m Marker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markers = append(r.markers, m)
}

// Markers returns a copy of everything recorded so far.
func (r *Recorder) Markers() []Marker {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Marker, len(r.markers))
	copy(out, r.markers)
	return out
}

// Logger writes markers to slog at debug level.
type Logger struct{}

// Mark implements Sink.
func (Logger) Mark(m Marker) {
	slog.Debug("overlay marker", "at", m.At.String(), "shape", m.Shape.String(), "label", m.Label)
}
