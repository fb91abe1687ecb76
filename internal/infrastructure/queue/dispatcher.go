package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/agriscan/platform/internal/api/metrics"
	"github.com/agriscan/platform/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes assessment jobs to a fixed set of workers using consistent
// hashing on the report id, guaranteeing per-report processing order.
type Dispatcher struct {
	workers []chan ports.AssessmentInput
	service ports.AssessmentService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.AssessmentService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.AssessmentInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.AssessmentInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a job to the worker responsible for its report id.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(input ports.AssessmentInput) {
	idx := d.shardIndex(input.ReportID)
	d.workers[idx] <- input
	metrics.AssessmentQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a report id deterministically to a worker index.
func (d *Dispatcher) shardIndex(reportID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(reportID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.AssessmentInput) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case input, ok := <-ch:
			if !ok {
				return
			}
			metrics.AssessmentQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))

			start := time.Now()
			if err := d.service.Process(ctx, input); err != nil {
				metrics.ReportsAssessedTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("report_id", input.ReportID).
					Int("worker_id", id).
					Msg("report assessment failed")
				continue
			}
			metrics.ReportsAssessedTotal.WithLabelValues("ok").Inc()
			metrics.AssessmentDuration.Observe(time.Since(start).Seconds())
		}
	}
}
