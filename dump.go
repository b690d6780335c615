package qreg

import (
	"strconv"
	"strings"

	"github.com/theapemachine/qreg/qlog"
)

// DumpState renders the state as a ket sum, e.g. "Φ : 0.707107|00⟩ + 0|01⟩ + …".
func (r *Register) DumpState() string {
	var sb strings.Builder
	sb.WriteString("Φ : ")

	for i := 0; i < r.state.dim; i++ {
		if i > 0 {
			sb.WriteString(" + ")
		}

		amp := r.state.amps[i]
		sb.WriteString(formatFloat(real(amp)))

		if im := imag(amp); im != 0 {
			if im > 0 {
				sb.WriteByte('+')
			}
			sb.WriteString(formatFloat(im))
			sb.WriteByte('i')
		}

		sb.WriteString("|" + r.bits(i) + "⟩")
	}

	return sb.String()
}

// DumpProbabilities lists one "bits => probability" line per basis state.
func (r *Register) DumpProbabilities() string {
	var sb strings.Builder

	for i := 0; i < r.state.dim; i++ {
		sb.WriteString(r.bits(i))
		sb.WriteString(" => ")
		sb.WriteString(formatFloat(r.state.probability(i)))
		sb.WriteByte('\n')
	}

	return sb.String()
}

func (r *Register) LogState() {
	logger := r.logger
	if logger == nil {
		logger = qlog.Default()
	}

	logger.Info(r.DumpState(), "status", r.status)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}
