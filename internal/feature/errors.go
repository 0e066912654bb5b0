package feature

import (
	"errors"
	"fmt"
)

var (
	// ErrUnresolvedAnchor is returned when a position names an anchor that
	// is not placed before it. Fatal for the whole composition.
	ErrUnresolvedAnchor = errors.New("unresolved anchor")

	// ErrInvalidTree covers structural problems such as duplicate ids.
	ErrInvalidTree = errors.New("invalid feature tree")
)

// AnchorError identifies the offending feature and anchor.
type AnchorError struct {
	FeatureID string
	AnchorID  string
	Reason    string
}

func (e *AnchorError) Error() string {
	return fmt.Sprintf("feature %q anchors to %q: %s", e.FeatureID, e.AnchorID, e.Reason)
}

func (e *AnchorError) Unwrap() error {
	return ErrUnresolvedAnchor
}
