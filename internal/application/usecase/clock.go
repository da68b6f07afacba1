package usecase

import "time"

// Clock provides current time (for testability).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// ChangeNotifier is the outbound port for the per-collection change feed.
// Implementations fan a "something changed, re-fetch" signal out to stream
// subscribers; usecases call it after every successful write.
type ChangeNotifier interface {
	Notify(collection string)
}

type nopNotifier struct{}

func (nopNotifier) Notify(string) {}
