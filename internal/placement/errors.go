package placement

import (
	"errors"
	"fmt"
)

// ErrPlacementExhausted is reported when an area position could not find a
// free footprint within the retry budget.
var ErrPlacementExhausted = errors.New("placement exhausted")

// ExhaustedError carries the position that failed.
type ExhaustedError struct {
	AreaID   string
	Position int
	Retries  int
	Reason   string
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("place %q position %d after %d retries: %s", e.AreaID, e.Position, e.Retries, e.Reason)
}

func (e *ExhaustedError) Unwrap() error {
	return ErrPlacementExhausted
}
