package deque

import (
	"errors"
)

// ErrClosed is returned by blocking pops once the deque has been closed and
// holds no more elements.
var ErrClosed = errors.New("deque is closed")

// IsClosedError returns whether err is or wraps ErrClosed.
func IsClosedError(err error) bool {
	return errors.Is(err, ErrClosed)
}
