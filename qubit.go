package qreg

// Qubit holds the state of a single two-level system. Normalization is the
// caller's responsibility.
type Qubit struct {
	alpha complex128 // |0⟩ amplitude
	beta  complex128 // |1⟩ amplitude
}

func NewQubit(alpha, beta complex128) *Qubit {
	return &Qubit{
		alpha: alpha,
		beta:  beta,
	}
}

// NewZeroQubit returns a qubit in |0⟩.
func NewZeroQubit() *Qubit {
	return NewQubit(1, 0)
}

func (q *Qubit) Amplitudes() (alpha, beta complex128) {
	return q.alpha, q.beta
}

// Replace discards the current amplitudes.
func (q *Qubit) Replace(alpha, beta complex128) {
	q.alpha = alpha
	q.beta = beta
}
