package metrics

import (
	"time"

	"github.com/onflow/concurrent-deque/module"
)

type NoopCollector struct{}

var _ module.DequeMetrics = (*NoopCollector)(nil)

func NewNoopCollector() *NoopCollector {
	nc := &NoopCollector{}
	return nc
}

func (nc *NoopCollector) ElementPushed(end string)              {}
func (nc *NoopCollector) ElementPopped()                        {}
func (nc *NoopCollector) DequeSize(size uint)                   {}
func (nc *NoopCollector) ConsumersWaiting(count uint)           {}
func (nc *NoopCollector) ConsumerWaited(duration time.Duration) {}
