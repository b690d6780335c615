package qreg

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidQubitCount = errors.New("qubit count must be between 1 and 5")
	ErrUninitialized     = errors.New("register is not initialized")
	ErrSamplingUnderflow = errors.New("cumulative probability never reached the random draw")
	ErrInvalidShots      = errors.New("shot count must be positive")

	ErrUnknownGate       = errors.New("unknown gate")
	ErrNotSingleQubit    = errors.New("not a single-qubit gate")
	ErrMissingControl    = errors.New("two-qubit gate requires a control qubit")
	ErrUnexpectedControl = errors.New("single-qubit gate does not take a control qubit")
	ErrQubitOutOfRange   = errors.New("qubit index out of range")
	ErrSameQubit         = errors.New("control and target must differ")
)

// ConstructionError reports a register size outside [1, MaxQubits].
type ConstructionError struct {
	Qubits int
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("cannot build register of %d qubits: %v", e.Qubits, ErrInvalidQubitCount)
}

func (e *ConstructionError) Unwrap() error {
	return ErrInvalidQubitCount
}

// GateError reports a gate application that was rejected. Control is
// NoQubit when none was supplied.
type GateError struct {
	Gate    Gate
	Target  int
	Control int
	Err     error
}

func (e *GateError) Error() string {
	if e.Control == NoQubit {
		return fmt.Sprintf("apply %s to qubit %d: %v", e.Gate, e.Target, e.Err)
	}

	return fmt.Sprintf("apply %s to qubit %d (control %d): %v", e.Gate, e.Target, e.Control, e.Err)
}

func (e *GateError) Unwrap() error {
	return e.Err
}
