package checkin

import (
	"errors"
	"fmt"
)

// ErrNoMatch means no interpretation of the scanned input produced a
// registration under the target event.
var ErrNoMatch = errors.New("no matching registration")

// EventMismatchError means the input resolved to a real registration, but one
// belonging to a different event than the scan targeted. Distinct from
// ErrNoMatch so the operator can be told "wrong event" instead of "invalid
// code".
type EventMismatchError struct {
	ParsedEventID  uint
	RequestEventID uint
}

func (e *EventMismatchError) Error() string {
	return fmt.Sprintf("registration belongs to event %d, not event %d", e.ParsedEventID, e.RequestEventID)
}
