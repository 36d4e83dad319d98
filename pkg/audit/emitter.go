package audit

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"storyforge-hq/warden/pkg/config"
)

// Emitter writes security events to storage asynchronously.
//
// Emit never blocks: events are queued on a buffered channel drained by
// a background worker, and when the buffer is full the event is dropped
// and counted. Storage errors are logged, never surfaced to callers.
//
// # Thread Safety
//
// All methods are safe for concurrent use. Close drains queued events
// before returning; Emit after Close drops the event.
type Emitter struct {
	storage Storage
	logger  *slog.Logger

	writeTimeout time.Duration

	ch      chan *SecurityEvent
	done    chan struct{}
	wg      sync.WaitGroup
	closed  atomic.Bool
	dropped atomic.Int64
}

// NewEmitter starts the background writer. storage must not be nil.
func NewEmitter(storage Storage, cfg config.EmitterConfig) *Emitter {
	e := &Emitter{
		storage:      storage,
		logger:       slog.Default().With("component", "audit"),
		writeTimeout: cfg.WriteTimeout,
		ch:           make(chan *SecurityEvent, cfg.Buffer),
		done:         make(chan struct{}),
	}

	e.wg.Add(1)
	go e.run()

	return e
}

// Emit queues ev for persistence. Fire-and-forget: if the queue is full
// or the emitter is closed the event is dropped.
func (e *Emitter) Emit(ev *SecurityEvent) {
	if e.closed.Load() {
		e.dropped.Add(1)
		return
	}

	select {
	case e.ch <- ev:
	default:
		n := e.dropped.Add(1)
		if n == 1 || n%100 == 0 {
			e.logger.Warn("audit event dropped, buffer full",
				"dropped_total", n)
		}
	}
}

// Dropped returns the number of events dropped since construction.
func (e *Emitter) Dropped() int64 {
	return e.dropped.Load()
}

// Close stops the writer after draining queued events.
func (e *Emitter) Close() error {
	if e.closed.Swap(true) {
		return nil
	}
	close(e.done)
	e.wg.Wait()
	return nil
}

func (e *Emitter) run() {
	defer e.wg.Done()

	for {
		select {
		case ev := <-e.ch:
			e.write(ev)
		case <-e.done:
			// Drain whatever is still queued before exiting.
			for {
				select {
				case ev := <-e.ch:
					e.write(ev)
				default:
					return
				}
			}
		}
	}
}

func (e *Emitter) write(ev *SecurityEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), e.writeTimeout)
	defer cancel()

	if err := e.storage.Store(ctx, ev); err != nil {
		e.logger.Error("failed to store audit event",
			"event_id", ev.ID,
			"kind", ev.Kind,
			"error", err)
	}
}
