package orderbook

import (
	"errors"
	"fmt"
)

// ErrUnknownOrder is returned by Cancel (and, through Process, by a Cancel
// message) when the referenced id is not resting. It is the only normal
// runtime failure the core produces; the book is left unchanged.
var ErrUnknownOrder = errors.New("orderbook: unknown order")

// IntegrityFault reports record/level back-pointer corruption detected
// during Cancel or Modify. It indicates a programmer error, not a bad
// message: Book panics with it rather than returning it, and the
// embedding program recovers it only to log it and terminate the
// session (cmd/replay does this in runReplay).
type IntegrityFault struct {
	Op  string
	ID  OrderID
	Msg string
}

func (f *IntegrityFault) Error() string {
	return fmt.Sprintf("orderbook: integrity fault during %s for order %d: %s", f.Op, f.ID, f.Msg)
}
