package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/clubhub/events-api/internal/api/metrics"
	"github.com/clubhub/events-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes artifact jobs to a fixed set of workers, sharded by
// registration id so retries for one registration never interleave. Enqueue
// is fire-and-forget: the registering request has already returned by the
// time the job runs, and failures are only logged.
type Dispatcher struct {
	workers   []chan ports.ArtifactJob
	processor ports.ArtifactProcessor
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, processor ports.ArtifactProcessor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan ports.ArtifactJob, numWorkers),
		processor: processor,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ArtifactJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a job to the worker responsible for its registration.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(job ports.ArtifactJob) {
	idx := d.shardIndex(job.RegistrationID)
	d.workers[idx] <- job
	metrics.ArtifactQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a registration id deterministically to a worker index.
func (d *Dispatcher) shardIndex(registrationID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(registrationID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ArtifactJob) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			err := d.processor.Process(ctx, job)
			metrics.ArtifactQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err != nil {
				metrics.ArtifactsErrorsTotal.Inc()
				d.log.Error().Err(err).
					Str("registration_id", job.RegistrationID).
					Int("worker_id", id).
					Msg("artifact generation failed")
				continue
			}
			metrics.ArtifactsGeneratedTotal.Inc()
		}
	}
}
