// Package bb84 simulates the classical bookkeeping of a BB84 key exchange:
// the server prepares polarized photons, the client picks measurement bases
// and the server sifts a key from the positions where the bases agree.
package bb84

import (
	"math/rand/v2"
	"strings"
	"time"
)

// Basis is a polarization basis.
type Basis int

const (
	Rectilinear Basis = iota + 1
	Diagonal
)

func (b Basis) String() string {
	switch b {
	case Rectilinear:
		return "+"
	case Diagonal:
		return "x"
	default:
		return "?"
	}
}

// Photon is a prepared photon. Value 1 or 2 selects the polarization within
// the basis; Value 2 encodes a 0 bit and Value 1 a 1 bit.
type Photon struct {
	Basis Basis
	Value int
}

func (p Photon) Bit() byte {
	if p.Value == 2 {
		return 0
	}
	return 1
}

func (p Photon) String() string {
	switch {
	case p.Basis == Rectilinear && p.Value == 1:
		return "(+, ->)"
	case p.Basis == Rectilinear:
		return "(+, |)"
	case p.Value == 1:
		return "(x, |r)"
	default:
		return "(x, |l)"
	}
}

func formatPhotons(photons []Photon) string {
	parts := make([]string, len(photons))
	for i, p := range photons {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ; ")
}

func formatBases(bases []Basis) string {
	parts := make([]string, len(bases))
	for i, b := range bases {
		parts[i] = b.String()
	}
	return strings.Join(parts, ", ")
}

// Source yields uniform integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

func newClockSource() Source {
	seed := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed>>7))
}

// roll returns 1 or 2 with equal probability.
func roll(src Source) int {
	return src.IntN(2) + 1
}
