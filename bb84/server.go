package bb84

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theapemachine/errnie"
	"github.com/theapemachine/qreg/qlog"
)

var (
	ErrInvalidKeySize       = errors.New("key size must be a positive multiple of 8")
	ErrInsufficientKey      = errors.New("not enough matching polarizations for the key size")
	ErrLengthMismatch       = errors.New("photon and basis counts differ")
	ErrNegotiationExhausted = errors.New("key negotiation ran out of attempts")
)

// Server is the initiating side: it prepares photons and sifts the key.
type Server struct {
	keySize int
	dice    Source
}

// NewServer creates a server for keys of keySize bits. A nil src uses a
// clock-seeded generator.
func NewServer(keySize int, src Source) (*Server, error) {
	if keySize <= 0 || keySize%8 != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKeySize, keySize)
	}

	if src == nil {
		src = newClockSource()
	}

	errnie.Info("NewServer - keySize %d", keySize)

	return &Server{
		keySize: keySize,
		dice:    src,
	}, nil
}

func (s *Server) KeySize() int {
	return s.keySize
}

func (s *Server) GeneratePhotons(n int) []Photon {
	qlog.Info("photons generating", "count", n)

	photons := make([]Photon, n)
	for i := range photons {
		photons[i] = Photon{
			Basis: Basis(roll(s.dice)),
			Value: roll(s.dice),
		}
	}

	qlog.Debug("photons", "sequence", formatPhotons(photons))
	return photons
}

/*
CheckPolarizations compares the client's bases with the prepared photons and
builds the key from the photons measured in the right basis. The first
KeySize sifted bits are packed most significant bit first.
*/
func (s *Server) CheckPolarizations(photons []Photon, bases []Basis) ([]byte, error) {
	if len(photons) != len(bases) {
		return nil, fmt.Errorf("%w: %d photons, %d bases", ErrLengthMismatch, len(photons), len(bases))
	}

	var mask, binary strings.Builder
	sifted := make([]byte, 0, len(photons))

	for i, photon := range photons {
		if photon.Basis != bases[i] {
			mask.WriteByte('0')
			continue
		}

		mask.WriteByte('1')
		bit := photon.Bit()
		sifted = append(sifted, bit)
		binary.WriteByte('0' + bit)
	}

	qlog.Debug("correct polarizations", "mask", mask.String())
	qlog.Debug("binary key", "bits", binary.String())
	qlog.Info("key bit length", "sifted", len(sifted), "required", s.keySize)

	if len(sifted) < s.keySize {
		return nil, fmt.Errorf("%w: %d of %d bits", ErrInsufficientKey, len(sifted), s.keySize)
	}

	key := packBits(sifted[:s.keySize])
	qlog.Data("key", key)

	return key, nil
}

// packBits packs a 0/1 slice whose length is a multiple of 8.
func packBits(bits []byte) []byte {
	out := make([]byte, len(bits)/8)
	for i, bit := range bits {
		out[i/8] |= bit << (7 - i%8)
	}
	return out
}
