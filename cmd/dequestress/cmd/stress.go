package cmd

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/gammazero/workerpool"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	"github.com/onflow/concurrent-deque/module"
	"github.com/onflow/concurrent-deque/module/deque"
)

type stressConfig struct {
	producers        int
	consumers        int
	itemsPerProducer int
	frontRatio       float64
	popTimeout       time.Duration
}

func (c stressConfig) validate() error {
	var err *multierror.Error
	if c.producers < 1 {
		err = multierror.Append(err, fmt.Errorf("producers must be positive, got %d", c.producers))
	}
	if c.consumers < 1 {
		err = multierror.Append(err, fmt.Errorf("consumers must be positive, got %d", c.consumers))
	}
	if c.itemsPerProducer < 1 {
		err = multierror.Append(err, fmt.Errorf("items per producer must be positive, got %d", c.itemsPerProducer))
	}
	if c.frontRatio < 0 || c.frontRatio > 1 {
		err = multierror.Append(err, fmt.Errorf("front ratio must be within [0, 1], got %v", c.frontRatio))
	}
	if c.popTimeout <= 0 {
		err = multierror.Append(err, fmt.Errorf("pop timeout must be positive, got %v", c.popTimeout))
	}
	return err.ErrorOrNil()
}

type stressReport struct {
	pushed   int
	popped   int
	stalls   int64 // pops that gave up after the pop timeout
	duration time.Duration
}

// runStress pushes producers*itemsPerProducer distinct values through a fresh deque and checks
// that the consumers receive every value exactly once. Once all producers are done the deque is
// closed, so consumers drain it and stop.
func runStress(ctx context.Context, log zerolog.Logger, cfg stressConfig, collector module.DequeMetrics) (stressReport, error) {
	total := cfg.producers * cfg.itemsPerProducer
	report := stressReport{pushed: total}

	d, err := deque.NewConcurrentDeque[int](deque.WithLogger(log), deque.WithMetrics(collector))
	if err != nil {
		return report, fmt.Errorf("could not create deque: %w", err)
	}

	start := time.Now()
	stalls := atomic.NewInt64(0)
	popped := make([][]int, cfg.consumers)

	consumers := sync.WaitGroup{}
	consumers.Add(cfg.consumers)
	for c := 0; c < cfg.consumers; c++ {
		c := c
		go func() {
			defer consumers.Done()
			popped[c] = consume(ctx, d, cfg.popTimeout, stalls)
		}()
	}

	pool := workerpool.New(cfg.producers)
	for p := 0; p < cfg.producers; p++ {
		p := p
		pool.Submit(func() {
			produce(ctx, d, p, cfg)
		})
	}
	pool.StopWait()
	log.Debug().Int("pushed", total).Msg("producers finished")

	d.Close()
	consumers.Wait()

	report.duration = time.Since(start)
	report.stalls = stalls.Load()
	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("stress round aborted: %w", err)
	}

	counts := make([]int, total)
	var violations *multierror.Error
	var unexpected []int
	for _, items := range popped {
		report.popped += len(items)
		for _, item := range items {
			if item < 0 || item >= total {
				unexpected = append(unexpected, item)
				continue
			}
			counts[item]++
		}
	}

	var lost, duplicated []int
	for item, count := range counts {
		switch {
		case count == 0:
			lost = append(lost, item)
		case count > 1:
			duplicated = append(duplicated, item)
		}
	}

	if len(unexpected) > 0 {
		violations = multierror.Append(violations, fmt.Errorf("%d unexpected elements popped, first: %d", len(unexpected), unexpected[0]))
	}
	if len(lost) > 0 {
		violations = multierror.Append(violations, fmt.Errorf("%d elements lost, first: %d", len(lost), lost[0]))
	}
	if len(duplicated) > 0 {
		violations = multierror.Append(violations, fmt.Errorf("%d elements popped more than once, first: %d", len(duplicated), duplicated[0]))
	}
	if !d.Empty() {
		violations = multierror.Append(violations, fmt.Errorf("deque not empty after drain: %d elements left", d.Len()))
	}

	return report, violations.ErrorOrNil()
}

// produce pushes the values [p*itemsPerProducer, (p+1)*itemsPerProducer) onto randomly chosen ends.
func produce(ctx context.Context, d *deque.ConcurrentDeque[int], p int, cfg stressConfig) {
	rng := rand.New(rand.NewSource(int64(p)))
	first := p * cfg.itemsPerProducer
	for item := first; item < first+cfg.itemsPerProducer; item++ {
		if ctx.Err() != nil {
			return
		}
		if rng.Float64() < cfg.frontRatio {
			d.PushFront(item)
		} else {
			d.PushBack(item)
		}
	}
}

// consume pops until the deque is closed and drained or ctx is done.
func consume(ctx context.Context, d *deque.ConcurrentDeque[int], popTimeout time.Duration, stalls *atomic.Int64) []int {
	var items []int
	for {
		popCtx, cancel := context.WithTimeout(ctx, popTimeout)
		item, err := d.PopContext(popCtx)
		cancel()

		switch {
		case err == nil:
			items = append(items, item)
		case deque.IsClosedError(err):
			return items
		case ctx.Err() != nil:
			return items
		case errors.Is(err, context.DeadlineExceeded):
			stalls.Inc()
		default:
			return items
		}
	}
}
