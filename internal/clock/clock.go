package clock

import "time"

// Clock abstracts the current time so the engine can be tested against a
// fixed instant.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func System() Clock { return systemClock{} }
