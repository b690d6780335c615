package qreg

import (
	"sync"
	"time"
)

// Metrics collects gate and measurement activity. One collector can be
// shared by several registers.
type Metrics struct {
	mu sync.RWMutex

	GateApplications map[Gate]int64
	RejectedGates    int64
	TotalGateTime    time.Duration
	AverageGateTime  time.Duration

	Measurements int64
	Underflows   int64
	Outcomes     map[int]int64
}

func NewMetrics() *Metrics {
	return &Metrics{
		GateApplications: make(map[Gate]int64),
		Outcomes:         make(map[int]int64),
	}
}

func (m *Metrics) recordGate(gate Gate, startTime time.Time, err error) {
	duration := time.Since(startTime)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.RejectedGates++
		return
	}

	m.GateApplications[gate]++
	m.TotalGateTime += duration

	var applied int64
	for _, n := range m.GateApplications {
		applied += n
	}
	m.AverageGateTime = m.TotalGateTime / time.Duration(applied)
}

func (m *Metrics) recordMeasurement(outcome int, underflow bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Measurements++
	m.Outcomes[outcome]++
	if underflow {
		m.Underflows++
	}
}

func (m *Metrics) ExportMetrics() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	gates := make(map[string]int64, len(m.GateApplications))
	for gate, n := range m.GateApplications {
		gates[gate.String()] = n
	}

	outcomes := make(map[int]int64, len(m.Outcomes))
	for outcome, n := range m.Outcomes {
		outcomes[outcome] = n
	}

	return map[string]any{
		"gate_applications": gates,
		"rejected_gates":    m.RejectedGates,
		"avg_gate_time_us":  m.AverageGateTime.Microseconds(),
		"measurements":      m.Measurements,
		"underflows":        m.Underflows,
		"outcomes":          outcomes,
	}
}
