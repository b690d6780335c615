package qreg

// Status tracks the lifecycle of a Register. Transitions only move forward:
// Uninitialized → Initialized on construction, Initialized → Measured on the
// first measurement.
type Status int

const (
	Uninitialized Status = iota
	Initialized
	Measured
)

func (s Status) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Measured:
		return "measured"
	default:
		return "unknown"
	}
}

// advance moves to next when next is later in the lifecycle.
func (s *Status) advance(next Status) {
	if next > *s {
		*s = next
	}
}
