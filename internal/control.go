package internal

import "fmt"

// Stop represents the reason for flow control.
type Stop int

// Control flow reasons.
const (
	// NoStop indicates normal execution.
	NoStop Stop = iota
	// ContinueStop should be interpreted by loops as a signal to restart the
	// loop immediately.
	ContinueStop
	// BreakStop should be interpreted by loops as a signal to exit the loop.
	BreakStop
	// ReturnStop should be interpreted by function calls as a signal to end
	// the call with the accompanying value.
	ReturnStop
	// ExitStop ends the whole program with the accompanying value. Only the
	// executor handles it.
	ExitStop
)

var stopNames = [...]string{"normal", "continue", "break", "return", "exit"}

// String returns a string representation of the Stop.
func (s Stop) String() string {
	if s < NoStop || s > ExitStop {
		return fmt.Sprintf("Stop(%d)", int(s))
	}
	return stopNames[s]
}

// Err returns nil if s is NoStop or an error value naming the stop otherwise.
// Panics if s is not a valid Stop.
func (s Stop) Err() error {
	switch s {
	case NoStop:
		return nil
	case ContinueStop, BreakStop, ReturnStop, ExitStop:
		return stopError(s)
	default:
		panic(fmt.Sprintf("refl: invalid Stop: %v", s))
	}
}

type stopError Stop

func (err stopError) Error() string {
	return Stop(err).String()
}
