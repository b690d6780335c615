package qreg

import (
	"math"
	"time"

	"github.com/theapemachine/errnie"
	"github.com/theapemachine/qreg/qlog"
)

const defaultEpsilon = 1e-9

/*
Register is a simulated quantum register of one to five qubits. It owns a
2^N amplitude vector where qubit k is bit N-1-k of the basis index, so qubit 0
is the most significant bit and MeasureBits reads left to right in qubit order.

A Register is not safe for concurrent use. Its zero value is Uninitialized
and every operation on it fails with ErrUninitialized.
*/
type Register struct {
	qubits int
	state  Vector
	status Status

	random  RandomSource
	logger  *qlog.Logger
	metrics *Metrics
	epsilon float64
}

type RegisterOption func(*Register)

// WithRandomSource fixes the source used for measurement draws. Without it
// every draw builds a fresh clock-seeded generator.
func WithRandomSource(src RandomSource) RegisterOption {
	return func(r *Register) {
		r.random = src
	}
}

func WithLogger(logger *qlog.Logger) RegisterOption {
	return func(r *Register) {
		r.logger = logger
	}
}

func WithMetrics(metrics *Metrics) RegisterOption {
	return func(r *Register) {
		r.metrics = metrics
	}
}

// WithEpsilon sets the norm drift tolerated before a warning is logged.
func WithEpsilon(epsilon float64) RegisterOption {
	return func(r *Register) {
		r.epsilon = epsilon
	}
}

// NewRegister allocates a register of n qubits in |0…0⟩.
func NewRegister(n int, opts ...RegisterOption) (*Register, error) {
	r := &Register{
		logger:  qlog.Default(),
		epsilon: defaultEpsilon,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = qlog.Default()
	}

	if n < 1 || n > MaxQubits {
		r.logger.Error("register size error", "qubits", n, "max", MaxQubits)
		return nil, &ConstructionError{Qubits: n}
	}

	errnie.Info("NewRegister - qubits %d, epsilon %v", n, r.epsilon)

	r.qubits = n
	r.state = Vector{dim: 1 << n}
	r.state.amps[0] = 1
	r.status.advance(Initialized)

	return r, nil
}

func (r *Register) Qubits() int {
	return r.qubits
}

func (r *Register) Status() Status {
	return r.status
}

// Amplitudes returns a copy of the state vector in basis index order.
func (r *Register) Amplitudes() []complex128 {
	return r.state.Slice()
}

func (r *Register) Probabilities() []float64 {
	probs := make([]float64, r.state.dim)
	for i := range probs {
		probs[i] = r.state.probability(i)
	}
	return probs
}

// Norm is the sum of squared amplitude magnitudes.
func (r *Register) Norm() float64 {
	return r.state.norm()
}

/*
ApplyGate applies gate to target. Two-qubit gates take exactly one control
index: for CNOT it is the control qubit, for SWAP the second swapped qubit.
A rejected application returns a *GateError and leaves the state untouched.
*/
func (r *Register) ApplyGate(gate Gate, target int, control ...int) (err error) {
	if r.status == Uninitialized {
		return ErrUninitialized
	}

	if r.metrics != nil {
		defer func(start time.Time) {
			r.metrics.recordGate(gate, start, err)
		}(time.Now())
	}

	ctrl := NoQubit
	switch len(control) {
	case 0:
	case 1:
		ctrl = control[0]
	default:
		return &GateError{Gate: gate, Target: target, Control: control[0], Err: ErrUnexpectedControl}
	}

	op, err := r.operatorFor(gate, target, ctrl)
	if err != nil {
		r.logger.Debug("gate rejected", "err", err)
		return err
	}

	r.state = op.Apply(&r.state)

	if drift := math.Abs(r.state.norm() - 1); drift > r.epsilon {
		r.logger.Warn("state norm drifted", "gate", gate, "drift", drift)
	}

	return nil
}

func (r *Register) operatorFor(gate Gate, target, control int) (Operator, error) {
	fail := func(err error) (Operator, error) {
		return Operator{}, &GateError{Gate: gate, Target: target, Control: control, Err: err}
	}

	if !gate.valid() {
		return fail(ErrUnknownGate)
	}

	if !r.inRange(target) {
		return fail(ErrQubitOutOfRange)
	}

	if !gate.IsTwoQubit() {
		if control != NoQubit {
			return fail(ErrUnexpectedControl)
		}

		m, err := GateMatrix(gate)
		if err != nil {
			return fail(err)
		}

		return r.tensorOperator(m, target), nil
	}

	switch {
	case control == NoQubit:
		return fail(ErrMissingControl)
	case !r.inRange(control):
		return fail(ErrQubitOutOfRange)
	case gate == CNOT && control == target:
		return fail(ErrSameQubit)
	}

	return r.permutationOperator(gate, control, target), nil
}

// tensorOperator builds I ⊗ … ⊗ m ⊗ … ⊗ I with m at the target position.
func (r *Register) tensorOperator(m Matrix2, target int) Operator {
	op := identityOperator(1)

	for position := 0; position < r.qubits; position++ {
		if position == target {
			op = op.Kron(m)
		} else {
			op = op.Kron(identity2)
		}
	}

	return op
}

/*
permutationOperator builds CNOT or SWAP directly on the basis. Column i holds a
single 1 in the row of the basis state that i is mapped to, so no phases are
introduced.
*/
func (r *Register) permutationOperator(gate Gate, control, target int) Operator {
	op := Operator{dim: r.state.dim}
	cMask := r.mask(control)
	tMask := r.mask(target)

	for i := 0; i < op.dim; i++ {
		cBit := i&cMask != 0
		tBit := i&tMask != 0

		switch gate {
		case SWAP:
			cBit, tBit = tBit, cBit
		case CNOT:
			if cBit {
				tBit = !tBit
			}
		}

		j := i &^ (cMask | tMask)
		if cBit {
			j |= cMask
		}
		if tBit {
			j |= tMask
		}

		op.data[j][i] = 1
	}

	return op
}

func (r *Register) inRange(qubit int) bool {
	return qubit >= 0 && qubit < r.qubits
}

// mask selects the index bit that carries qubit.
func (r *Register) mask(qubit int) int {
	return 1 << (r.qubits - 1 - qubit)
}
