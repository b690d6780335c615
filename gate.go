package qreg

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand/v2"
	"strings"
	"time"
)

// Gate identifies one of the supported unitary gates.
type Gate int

const (
	Hadamard Gate = iota + 1
	PauliX
	PauliY
	PauliZ
	CNOT
	SWAP
	PhaseT
)

// NoQubit marks an absent qubit index.
const NoQubit = -1

var gateNames = map[Gate]string{
	Hadamard: "H",
	PauliX:   "X",
	PauliY:   "Y",
	PauliZ:   "Z",
	CNOT:     "CNOT",
	SWAP:     "SWAP",
	PhaseT:   "T",
}

var gateAliases = map[string]Gate{
	"H":        Hadamard,
	"HADAMARD": Hadamard,
	"X":        PauliX,
	"NOT":      PauliX,
	"Y":        PauliY,
	"Z":        PauliZ,
	"CNOT":     CNOT,
	"CX":       CNOT,
	"SWAP":     SWAP,
	"T":        PhaseT,
}

func (g Gate) String() string {
	if name, ok := gateNames[g]; ok {
		return name
	}

	return fmt.Sprintf("Gate(%d)", int(g))
}

// IsTwoQubit reports whether the gate acts jointly on a control and a target.
func (g Gate) IsTwoQubit() bool {
	return g == CNOT || g == SWAP
}

func (g Gate) valid() bool {
	_, ok := gateNames[g]
	return ok
}

// ParseGate resolves a case-insensitive gate name such as "h", "cx" or "swap".
func ParseGate(name string) (Gate, error) {
	if g, ok := gateAliases[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return g, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownGate, name)
}

// Matrix2 is a single-qubit operator in row-major order.
type Matrix2 [2][2]complex128

var identity2 = Matrix2{
	{1, 0},
	{0, 1},
}

// GateMatrix returns the canonical matrix of a single-qubit gate. CNOT and
// SWAP have no 2x2 form and yield ErrNotSingleQubit.
func GateMatrix(g Gate) (Matrix2, error) {
	switch g {
	case Hadamard:
		// H = 1/√2 * [1  1]
		//            [1 -1]
		h := complex(1/math.Sqrt2, 0)
		return Matrix2{
			{h, h},
			{h, -h},
		}, nil
	case PauliX:
		return Matrix2{
			{0, 1},
			{1, 0},
		}, nil
	case PauliY:
		return Matrix2{
			{0, -1i},
			{1i, 0},
		}, nil
	case PauliZ:
		return Matrix2{
			{1, 0},
			{0, -1},
		}, nil
	case PhaseT:
		return Matrix2{
			{1, 0},
			{0, cmplx.Rect(1, math.Pi/4)},
		}, nil
	case CNOT, SWAP:
		return Matrix2{}, ErrNotSingleQubit
	}

	return Matrix2{}, ErrUnknownGate
}

// RandomSource yields uniform samples in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// newClockSource builds a fresh generator seeded from the wall clock, used
// when no source was injected.
func newClockSource() RandomSource {
	seed := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

/*
MeasureQubit reports whether a single qubit reads as 1. It draws once from
src and compares against the |0⟩ probability. The qubit's amplitudes are left
untouched; this is an outcome report, not a collapse.
*/
func MeasureQubit(q *Qubit, src RandomSource) bool {
	if src == nil {
		src = newClockSource()
	}

	alpha, _ := q.Amplitudes()
	p0 := real(alpha)*real(alpha) + imag(alpha)*imag(alpha)

	return src.Float64() >= p0
}
