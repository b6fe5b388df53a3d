package mirror

import (
	"sync"

	"go.uber.org/zap"
)

type record struct {
	booking *BookingSnapshot
	payment *PaymentSnapshot
}

// Async queues snapshots on a bounded channel drained by a single worker.
// A full queue drops the snapshot.
type Async struct {
	sink   Sink
	log    *zap.Logger
	queue  chan record
	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewAsync(sink Sink, size int, log *zap.Logger) *Async {
	if size <= 0 {
		size = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	a := &Async{
		sink:  sink,
		log:   log,
		queue: make(chan record, size),
		done:  make(chan struct{}),
	}
	go a.worker()
	return a
}

func (a *Async) RecordBooking(s BookingSnapshot) {
	a.enqueue(record{booking: &s}, zap.Int64("booking_id", s.BookingID))
}

func (a *Async) RecordPayment(s PaymentSnapshot) {
	a.enqueue(record{payment: &s}, zap.Int64("payment_id", s.PaymentID))
}

func (a *Async) enqueue(r record, id zap.Field) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		a.log.Warn("mirror closed, snapshot dropped", id)
		return
	}
	select {
	case a.queue <- r:
	default:
		a.log.Warn("mirror queue full, snapshot dropped", id)
	}
}

// Close stops accepting snapshots and waits for the queue to drain.
func (a *Async) Close() {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.queue)
	}
	a.mu.Unlock()
	<-a.done
}

func (a *Async) worker() {
	defer close(a.done)
	for r := range a.queue {
		var err error
		switch {
		case r.booking != nil:
			err = a.sink.WriteBooking(*r.booking)
		case r.payment != nil:
			err = a.sink.WritePayment(*r.payment)
		}
		if err != nil {
			a.log.Error("mirror write failed", zap.Error(err))
		}
	}
}
