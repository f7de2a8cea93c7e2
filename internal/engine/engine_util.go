package engine

import "math/rand"

// NewRand returns a generator for a game. Equal seeds give equal games.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func ContainsEvent(events []Event, eventType EventType) bool {
	_, ok := FindEvent(events, eventType)
	return ok
}

func FindEvent(events []Event, eventType EventType) (Event, bool) {
	for _, event := range events {
		if event.Type == eventType {
			return event, true
		}
	}
	return Event{}, false
}
