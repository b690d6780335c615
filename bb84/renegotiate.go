package bb84

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theapemachine/qreg/qlog"
)

// maxDoublings caps the exponential growth so the photon count cannot overflow.
const maxDoublings = 30

var (
	ErrUnknownStrategy = errors.New("unknown renegotiation strategy")
	ErrPhotonCount     = errors.New("photon count cannot yield a full key")
)

// RenegotiationStrategy decides how many photons to send on each attempt.
// Attempts are numbered from 1.
type RenegotiationStrategy interface {
	PhotonCount(attempt, keySize int) int
}

// ExponentialGrowth sends keySize*Factor photons and doubles on every retry,
// up to maxDoublings times.
type ExponentialGrowth struct {
	Factor int
}

func (eg *ExponentialGrowth) PhotonCount(attempt, keySize int) int {
	return keySize * max(eg.Factor, 1) << min(max(attempt-1, 0), maxDoublings)
}

// LinearGrowth sends keySize*Factor photons and adds Step on every retry.
type LinearGrowth struct {
	Factor int
	Step   int
}

func (lg *LinearGrowth) PhotonCount(attempt, keySize int) int {
	return keySize*max(lg.Factor, 1) + lg.Step*(attempt-1)
}

// NewStrategy resolves a strategy by name: "exponential" or "linear".
func NewStrategy(name string, factor, step int) (RenegotiationStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "exponential", "":
		return &ExponentialGrowth{Factor: factor}, nil
	case "linear":
		return &LinearGrowth{Factor: factor, Step: step}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

type Result struct {
	Key      []byte
	Attempts int
	Photons  int
}

/*
Negotiate runs full exchanges until the server sifts enough bits for a key,
growing the photon count per strategy. A photon count below the key size can
never sift a full key and fails with ErrPhotonCount. Errors other than an
insufficient key stop the negotiation immediately.
*/
func Negotiate(server *Server, client *Client, strategy RenegotiationStrategy, maxAttempts int) (*Result, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		n := strategy.PhotonCount(attempt, server.KeySize())
		if n < server.KeySize() {
			return nil, fmt.Errorf("%w: %d photons on attempt %d for a %d bit key", ErrPhotonCount, n, attempt, server.KeySize())
		}

		photons := server.GeneratePhotons(n)
		bases := client.ChoosePolarizations(len(photons))

		key, err := server.CheckPolarizations(photons, bases)
		if err == nil {
			return &Result{Key: key, Attempts: attempt, Photons: n}, nil
		}

		if !errors.Is(err, ErrInsufficientKey) {
			return nil, err
		}

		qlog.Warn("renegotiating key", "attempt", attempt, "photons", n, "err", err)
	}

	return nil, fmt.Errorf("%w: %d attempts", ErrNegotiationExhausted, maxAttempts)
}
