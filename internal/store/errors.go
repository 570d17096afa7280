package store

import "fmt"

// Error is a non-2xx reply from the remote store, carrying the store's own
// message so callers can surface it verbatim.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("store: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("store: unexpected status %d", e.Status)
}
