package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/talenthub/job-board/internal/api/metrics"
	"github.com/talenthub/job-board/internal/core/domain"
	"github.com/talenthub/job-board/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes auth events to a fixed set of workers using consistent
// hashing on the subject, guaranteeing per-account event ordering in the
// audit trail.
type Dispatcher struct {
	workers  []chan domain.AuthEvent
	recorder ports.AuditRecorder
	log      zerolog.Logger
	wg       sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, recorder ports.AuditRecorder, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan domain.AuthEvent, numWorkers),
		recorder: recorder,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuthEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers run until Stop closes their
// channels.
func (d *Dispatcher) Start() {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(i, ch)
	}
}

// Stop closes the worker channels and blocks until every queued event has
// been recorded. No Enqueue may happen after Stop.
func (d *Dispatcher) Stop() {
	for _, ch := range d.workers {
		close(ch)
	}
	d.wg.Wait()
}

// Enqueue sends an event to the worker responsible for its subject.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event domain.AuthEvent) {
	i := d.shardIndex(event.Subject)
	d.workers[i] <- event
	metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// shardIndex maps a subject deterministically to a worker index.
func (d *Dispatcher) shardIndex(subject string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(subject))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(id int, ch <-chan domain.AuthEvent) {
	defer d.wg.Done()
	// Detached context: the drain in Stop runs after the server's signal
	// context is already cancelled.
	ctx := context.Background()
	for event := range ch {
		if err := d.recorder.Record(ctx, event); err != nil {
			d.log.Error().Err(err).
				Str("subject", event.Subject).
				Str("type", string(event.Type)).
				Int("worker_id", id).
				Msg("audit event recording failed")
			continue
		}
		metrics.AuthEventsRecordedTotal.WithLabelValues(string(event.Type)).Inc()
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
	}
}
