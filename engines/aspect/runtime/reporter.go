package runtime

import (
	"log/slog"
	"sync"

	"github.com/robbyt/go-aspect/internal/helpers"
)

// defaultReporterBuffer is the queue depth used when no size is given.
const defaultReporterBuffer = 64

// Sink receives one diagnostic message. Delivery is best-effort: a sink
// that panics loses that message but the reporter keeps running.
type Sink func(msg string)

// Reporter forwards diagnostic messages to a sink from a separate
// goroutine so the interpreter never blocks on delivery. Messages are
// dropped when the queue is full.
type Reporter struct {
	queue chan string
	sink  Sink
	done  chan struct{}
	once  sync.Once

	logHandler slog.Handler
	logger     *slog.Logger
}

// NewReporter starts a reporter delivering to sink. A nil sink logs each
// message at error level instead. Buffer sizes below one fall back to
// the default queue depth.
func NewReporter(handler slog.Handler, sink Sink, buffer int) *Reporter {
	handler, logger := helpers.SetupLogger(handler, "aspect", "Reporter")

	if sink == nil {
		sink = func(msg string) {
			logger.Error(msg)
		}
	}
	if buffer < 1 {
		buffer = defaultReporterBuffer
	}

	r := &Reporter{
		queue:      make(chan string, buffer),
		sink:       sink,
		done:       make(chan struct{}),
		logHandler: handler,
		logger:     logger,
	}
	go r.drain()
	return r
}

func (r *Reporter) drain() {
	defer close(r.done)
	for msg := range r.queue {
		r.emit(msg)
	}
}

// emit delivers one message, absorbing sink panics so a faulty sink cannot
// kill the drain goroutine.
func (r *Reporter) emit(msg string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("diagnostic sink panicked", "recover", rec, "msg", msg)
		}
	}()
	r.sink(msg)
}

// Report queues msg for delivery. The message is dropped when the queue is
// full or the reporter is already closed.
func (r *Reporter) Report(msg string) {
	// The queue is closed by Close; a late send panics and is absorbed
	// here, turning it into a drop.
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Debug("diagnostic dropped after close", "msg", msg)
		}
	}()

	select {
	case r.queue <- msg:
	default:
		r.logger.Debug("diagnostic dropped, queue full", "msg", msg)
	}
}

// Close stops intake and blocks until every queued message has been
// handed to the sink. Safe to call more than once.
func (r *Reporter) Close() {
	r.once.Do(func() {
		close(r.queue)
	})
	<-r.done
}
