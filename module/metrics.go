package module

import (
	"time"
)

// DequeMetrics encapsulates the metrics collectors for a concurrent deque.
type DequeMetrics interface {
	// ElementPushed tracks the total number of elements pushed to the deque, by end ("front" or "back").
	ElementPushed(end string)

	// ElementPopped tracks the total number of elements removed from the deque.
	ElementPopped()

	// DequeSize tracks the number of elements in the deque after a push or pop.
	DequeSize(size uint)

	// ConsumersWaiting tracks the number of consumers currently suspended on an empty deque.
	ConsumersWaiting(count uint)

	// ConsumerWaited tracks how long a consumer was suspended before it either
	// received an element or gave up.
	ConsumerWaited(duration time.Duration)
}
