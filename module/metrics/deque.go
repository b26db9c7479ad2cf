package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/onflow/concurrent-deque/module"
)

const subsystemDeque = "deque"

// DequeCollector reports the state of a single named deque. Every metric name is
// prefixed with the deque name, so that several deques may share a registerer.
type DequeCollector struct {
	pushed           *prometheus.CounterVec
	popped           prometheus.Counter
	size             prometheus.Gauge
	consumersWaiting prometheus.Gauge
	waitDuration     prometheus.Histogram
}

var _ module.DequeMetrics = (*DequeCollector)(nil)

// StressWorkQueueMetricsFactory returns the collector for the work queue exercised by the stress tool.
func StressWorkQueueMetricsFactory(registrar prometheus.Registerer) *DequeCollector {
	return NewDequeCollector(namespaceStress, ResourceWorkQueue, registrar)
}

func NewDequeCollector(nameSpace string, dequeName string, registrar prometheus.Registerer) *DequeCollector {

	pushed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: nameSpace,
		Subsystem: subsystemDeque,
		Name:      dequeName + "_" + "pushed_elements_total",
		Help:      "total number of elements pushed to the deque, by end",
	}, []string{LabelEnd})

	popped := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: nameSpace,
		Subsystem: subsystemDeque,
		Name:      dequeName + "_" + "popped_elements_total",
		Help:      "total number of elements removed from the deque",
	})

	size := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: nameSpace,
		Subsystem: subsystemDeque,
		Name:      dequeName + "_" + "size",
		Help:      "number of elements currently held in the deque",
	})

	consumersWaiting := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: nameSpace,
		Subsystem: subsystemDeque,
		Name:      dequeName + "_" + "waiting_consumers",
		Help:      "number of consumers suspended on an empty deque",
	})

	waitDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: nameSpace,
		Subsystem: subsystemDeque,
		Name:      dequeName + "_" + "consumer_wait_seconds",
		Help:      "time consumers spent suspended on an empty deque",
		Buckets:   []float64{.0001, .001, .01, .1, .5, 1, 5, 10},
	})

	registrar.MustRegister(
		// throughput
		pushed,
		popped,

		// occupancy
		size,
		consumersWaiting,

		// blocking
		waitDuration)

	return &DequeCollector{
		pushed:           pushed,
		popped:           popped,
		size:             size,
		consumersWaiting: consumersWaiting,
		waitDuration:     waitDuration,
	}
}

func (dc *DequeCollector) ElementPushed(end string) {
	dc.pushed.With(prometheus.Labels{LabelEnd: end}).Inc()
}

func (dc *DequeCollector) ElementPopped() {
	dc.popped.Inc()
}

func (dc *DequeCollector) DequeSize(size uint) {
	dc.size.Set(float64(size))
}

func (dc *DequeCollector) ConsumersWaiting(count uint) {
	dc.consumersWaiting.Set(float64(count))
}

func (dc *DequeCollector) ConsumerWaited(duration time.Duration) {
	dc.waitDuration.Observe(duration.Seconds())
}
