package qreg

import (
	"errors"
	"fmt"
)

/*
Measure samples a basis index with probability |amplitude|². It draws u in
[0, 1) and walks the basis in index order, returning the first outcome with
non-zero probability at which the running sum reaches u. The amplitudes are
not collapsed, so repeated calls re-sample the same distribution.

If rounding keeps the running sum below u, the result is clamped to the last
index that carries probability and ErrSamplingUnderflow is returned with it.
*/
func (r *Register) Measure() (int, error) {
	if r.status == Uninitialized {
		return 0, ErrUninitialized
	}

	src := r.random
	if src == nil {
		src = newClockSource()
	}

	u := src.Float64()
	outcome, err := r.sample(u)

	r.status.advance(Measured)

	if r.metrics != nil {
		r.metrics.recordMeasurement(outcome, err != nil)
	}

	if err != nil {
		r.logger.Warn("measurement underflow", "draw", u, "norm", r.state.norm(), "clamped", outcome)
	}

	return outcome, err
}

func (r *Register) sample(u float64) (int, error) {
	var cumulative float64
	last := r.state.dim - 1

	for i := 0; i < r.state.dim; i++ {
		p := r.state.probability(i)
		if p == 0 {
			continue
		}

		last = i
		cumulative += p

		if cumulative >= u {
			return i, nil
		}
	}

	return last, ErrSamplingUnderflow
}

// MeasureBits is Measure rendered as an N-character binary string, qubit 0
// first.
func (r *Register) MeasureBits() (string, error) {
	outcome, err := r.Measure()
	if errors.Is(err, ErrUninitialized) {
		return "", err
	}

	return r.bits(outcome), err
}

/*
Sample measures the register shots times and counts the bitstrings seen.
Underflowed draws are counted at their clamped outcome and reported as a
single wrapped ErrSamplingUnderflow after all shots ran.
*/
func (r *Register) Sample(shots int) (map[string]int, error) {
	if r.status == Uninitialized {
		return nil, ErrUninitialized
	}

	if shots <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidShots, shots)
	}

	histogram := make(map[string]int)
	underflows := 0

	for range shots {
		outcome, err := r.Measure()
		if err != nil {
			underflows++
		}
		histogram[r.bits(outcome)]++
	}

	if underflows > 0 {
		return histogram, fmt.Errorf("%d of %d shots: %w", underflows, shots, ErrSamplingUnderflow)
	}

	return histogram, nil
}

func (r *Register) bits(index int) string {
	return fmt.Sprintf("%0*b", r.qubits, index)
}
