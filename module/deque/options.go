package deque

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/onflow/concurrent-deque/module"
)

// ConstructorOption are optional arguments for the `NewConcurrentDeque`
// constructor to specify properties of the ConcurrentDeque.
type ConstructorOption func(*config) error

// LengthObserver is a callback that can optionally be provided to the
// `NewConcurrentDeque` constructor (via `WithLengthObserver` option).
type LengthObserver func(int)

type config struct {
	log            zerolog.Logger
	metrics        module.DequeMetrics
	lengthObserver LengthObserver
}

// WithLengthObserver is a constructor option for NewConcurrentDeque. Each time the
// deque's length changes, the deque calls the provided callback with the new
// length. By default, the LengthObserver is a NoOp.
// Caution: the LengthObserver callback must be non-blocking
func WithLengthObserver(callback LengthObserver) ConstructorOption {
	return func(cfg *config) error {
		if callback == nil {
			return fmt.Errorf("nil is not a valid LengthObserver")
		}
		cfg.lengthObserver = callback
		return nil
	}
}

// WithMetrics is a constructor option for NewConcurrentDeque. It specifies the
// collector reporting the deque's activity. By default, metrics are discarded.
func WithMetrics(collector module.DequeMetrics) ConstructorOption {
	return func(cfg *config) error {
		if collector == nil {
			return fmt.Errorf("nil is not a valid metrics collector")
		}
		cfg.metrics = collector
		return nil
	}
}

// WithLogger is a constructor option for NewConcurrentDeque. By default, nothing is logged.
func WithLogger(log zerolog.Logger) ConstructorOption {
	return func(cfg *config) error {
		cfg.log = log
		return nil
	}
}
