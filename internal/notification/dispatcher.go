package notification

import (
	"log"

	"github.com/portfolio-labs/advisory-scheduler/internal/clock"
)

// Notifier is the capability the booking engine consumes: fire and
// forget, delivery failures are never raised to the caller.
type Notifier interface {
	Dispatch(ev Event)
}

type Dispatcher struct {
	sender Sender
	store  *LogStore
	clock  clock.Clock
	queue  chan Event
}

func NewDispatcher(sender Sender, store *LogStore, clk clock.Clock) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		store:  store,
		clock:  clk,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		sendErr := d.sender.Send(ev)
		if sendErr != nil {
			log.Printf("notification send failed: kind=%s to=%s: %v", ev.Kind, ev.Destination, sendErr)
		}

		if d.store != nil {
			if err := d.store.Record(ev, sendErr, d.clock.Now()); err != nil {
				log.Println("notification log error:", err)
			}
		}
	}
}

// Dispatch never blocks; when the queue is full the event is dropped
// rather than stalling a booking transition.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		log.Println("notification queue full, dropping event")
	}
}
