package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/broday/transportes/internal/api/metrics"
	"github.com/broday/transportes/internal/core/domain"
	"github.com/broday/transportes/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// Dispatcher persists frete audit events on a fixed set of workers. Events are
// sharded by frete id, so the events of one frete are written in the order
// they were recorded.
type Dispatcher struct {
	workers []chan domain.FreteEvent
	repo    ports.EventRepository
	log     zerolog.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.EventRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.FreteEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.FreteEvent, channelBuffer)
	}
	return d
}

var _ ports.EventRecorder = (*Dispatcher)(nil)

// Start launches all worker goroutines. Workers exit once Stop has closed
// their channel and the pending events are written.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Stop rejects new events and waits for the queued ones to be written.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// Record queues an event for the worker responsible for its frete. It never
// blocks: when the worker channel is full the event is dropped and logged.
func (d *Dispatcher) Record(event domain.FreteEvent) {
	from := string(event.From)
	if from == "" {
		from = "none"
	}
	metrics.FreteTransitionsTotal.WithLabelValues(from, string(event.To), string(event.ActorRole)).Inc()

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		d.drop(event, "dispatcher stopped")
		return
	}

	idx := d.shardIndex(event.FreteID)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.drop(event, "worker queue full")
	}
}

func (d *Dispatcher) drop(event domain.FreteEvent, reason string) {
	metrics.AuditEventsDroppedTotal.Inc()
	d.log.Warn().
		Str("frete_id", event.FreteID).
		Str("to", string(event.To)).
		Str("reason", reason).
		Msg("audit event dropped")
}

// shardIndex maps a frete id deterministically to a worker index.
func (d *Dispatcher) shardIndex(freteID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(freteID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.FreteEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for event := range ch {
		metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
		d.persist(ctx, id, event)
	}
}

func (d *Dispatcher) persist(ctx context.Context, id int, event domain.FreteEvent) {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	start := time.Now()
	err := d.repo.InsertEvent(writeCtx, &event)
	if err != nil {
		metrics.AuditWriteDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		d.log.Error().Err(err).
			Str("frete_id", event.FreteID).
			Str("operacao", string(event.Operation)).
			Int("worker_id", id).
			Msg("audit event persistence failed")
		return
	}
	metrics.AuditWriteDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
}
