package notification

import "log"

// Sender delivers one event to the outside world (email, SMS, ...).
type Sender interface {
	Send(ev Event) error
}

// LogSender is the default sink: it only logs. Real delivery backends
// plug in behind the same interface.
type LogSender struct{}

func (LogSender) Send(ev Event) error {
	log.Printf("[notify] kind=%s to=%s subject=%q", ev.Kind, ev.Destination, ev.Subject)
	return nil
}
