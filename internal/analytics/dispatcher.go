// Package analytics delivers quiz notifications to their sinks without
// ever blocking or failing the quiz itself.
package analytics

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/loftfit-bot/internal/domain/entities"
)

const (
	defaultBufferSize     = 256
	defaultPublishTimeout = 2 * time.Second
)

// Sink is a destination for quiz events.
type Sink interface {
	Name() string
	Publish(ctx context.Context, event entities.Event) error
}

// DispatcherConfig tunes the event buffer.
type DispatcherConfig struct {
	BufferSize     int
	PublishTimeout time.Duration
}

// Dispatcher queues notifications and fans them out to every sink in
// the order they were emitted.
type Dispatcher struct {
	events  chan entities.Event
	sinks   []Sink
	timeout time.Duration
	logger  *zap.Logger
	dropped atomic.Int64
}

// NewDispatcher creates a new Dispatcher. Zero config values fall back to
// the defaults.
func NewDispatcher(cfg DispatcherConfig, logger *zap.Logger, sinks ...Sink) *Dispatcher {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaultBufferSize
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = defaultPublishTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Dispatcher{
		events:  make(chan entities.Event, cfg.BufferSize),
		sinks:   sinks,
		timeout: cfg.PublishTimeout,
		logger:  logger,
	}
}

// Notify enqueues an event. It never blocks: when the buffer is full the
// event is dropped and counted.
func (d *Dispatcher) Notify(name string, payload entities.Payload) {
	event := entities.NewEvent(name, payload)

	select {
	case d.events <- event:
	default:
		n := d.dropped.Add(1)
		d.logger.Warn("analytics buffer full, event dropped",
			zap.String("event", name),
			zap.String("run_id", event.RunID()),
			zap.Int64("dropped_total", n))
	}
}

// Dropped returns how many events were discarded because the buffer was full.
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

// Run delivers queued events until ctx is cancelled, then drains whatever
// is still buffered.
func (d *Dispatcher) Run(ctx context.Context) {
	d.logger.Info("analytics dispatcher started", zap.Int("sinks", len(d.sinks)))

	for {
		select {
		case event := <-d.events:
			d.deliver(ctx, event)
		case <-ctx.Done():
			d.drain(ctx)
			d.logger.Info("analytics dispatcher stopped", zap.Int64("dropped_total", d.Dropped()))
			return
		}
	}
}

func (d *Dispatcher) drain(ctx context.Context) {
	for {
		select {
		case event := <-d.events:
			d.deliver(ctx, event)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, event entities.Event) {
	for _, sink := range d.sinks {
		d.publish(ctx, sink, event)
	}
}

func (d *Dispatcher) publish(ctx context.Context, sink Sink, event entities.Event) {
	// Deliveries during shutdown still get their own deadline.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("analytics sink panicked",
				zap.String("sink", sink.Name()),
				zap.String("event", event.Name),
				zap.Any("panic", r))
		}
	}()

	if err := sink.Publish(pubCtx, event); err != nil {
		d.logger.Error("failed to publish analytics event",
			zap.String("sink", sink.Name()),
			zap.String("event", event.Name),
			zap.String("run_id", event.RunID()),
			zap.Error(err))
	}
}
