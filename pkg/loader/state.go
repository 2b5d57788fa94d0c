package loader

import "fmt"

// State is the lifecycle of the single script load.
type State string

const (
	NotStarted State = "not_started"
	InFlight   State = "in_flight"
	Completed  State = "completed"
)

func (s State) String() string { return string(s) }

// A failed attempt goes back to NotStarted so a later Load can retry.
var transitions = map[State][]State{
	NotStarted: {InFlight},
	InFlight:   {Completed, NotStarted},
}

func canTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func checkTransition(from, to State) error {
	if !canTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
