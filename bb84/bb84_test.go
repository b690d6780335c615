package bb84

import (
	"errors"
	"io"
	"math/rand/v2"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/theapemachine/qreg/qlog"
)

func quiet() {
	qlog.SetDefault(qlog.New(io.Discard, "error"))
}

// fixedPhotons returns one photon per value, all in the rectilinear basis.
func fixedPhotons(values ...int) ([]Photon, []Basis) {
	photons := make([]Photon, len(values))
	bases := make([]Basis, len(values))
	for i, v := range values {
		photons[i] = Photon{Basis: Rectilinear, Value: v}
		bases[i] = Rectilinear
	}
	return photons, bases
}

func TestPhoton(t *testing.T) {
	Convey("Given each basis and polarization", t, func() {
		So(Photon{Rectilinear, 1}.String(), ShouldEqual, "(+, ->)")
		So(Photon{Rectilinear, 2}.String(), ShouldEqual, "(+, |)")
		So(Photon{Diagonal, 1}.String(), ShouldEqual, "(x, |r)")
		So(Photon{Diagonal, 2}.String(), ShouldEqual, "(x, |l)")

		So(Rectilinear.String(), ShouldEqual, "+")
		So(Diagonal.String(), ShouldEqual, "x")

		Convey("Value 2 encodes a zero bit", func() {
			So(Photon{Diagonal, 2}.Bit(), ShouldEqual, byte(0))
			So(Photon{Diagonal, 1}.Bit(), ShouldEqual, byte(1))
		})
	})
}

func TestServer(t *testing.T) {
	quiet()

	Convey("Given an invalid key size", t, func() {
		for _, size := range []int{0, -8, 12} {
			_, err := NewServer(size, nil)
			So(errors.Is(err, ErrInvalidKeySize), ShouldBeTrue)
		}
	})

	Convey("Given a seeded server", t, func() {
		server, err := NewServer(8, rand.New(rand.NewPCG(1, 2)))
		So(err, ShouldBeNil)
		So(server.KeySize(), ShouldEqual, 8)

		Convey("Generated photons use valid bases and values", func() {
			photons := server.GeneratePhotons(64)
			So(len(photons), ShouldEqual, 64)

			for _, p := range photons {
				So(p.Basis, ShouldBeIn, Rectilinear, Diagonal)
				So(p.Value, ShouldBeIn, 1, 2)
			}
		})

		Convey("Matching bases sift the key most significant bit first", func() {
			photons, bases := fixedPhotons(2, 1, 2, 1, 2, 1, 2, 1, 1, 1)

			key, err := server.CheckPolarizations(photons, bases)
			So(err, ShouldBeNil)
			So(key, ShouldResemble, []byte{0x55})
		})

		Convey("Mismatched bases are skipped", func() {
			photons, bases := fixedPhotons(1, 1, 1, 1, 1, 1, 1, 1, 1)
			bases[0] = Diagonal
			bases[1] = Diagonal

			key, err := server.CheckPolarizations(photons, bases)
			So(errors.Is(err, ErrInsufficientKey), ShouldBeTrue)
			So(key, ShouldBeNil)

			photons = append(photons, Photon{Rectilinear, 2}, Photon{Rectilinear, 2})
			bases = append(bases, Rectilinear, Rectilinear)

			key, err = server.CheckPolarizations(photons, bases)
			So(err, ShouldBeNil)
			So(key, ShouldResemble, []byte{0xfe})
		})

		Convey("Differing lengths are rejected", func() {
			photons, bases := fixedPhotons(1, 2, 1)
			_, err := server.CheckPolarizations(photons, bases[:2])
			So(errors.Is(err, ErrLengthMismatch), ShouldBeTrue)
		})
	})
}

func TestClient(t *testing.T) {
	quiet()

	Convey("Given a seeded client", t, func() {
		client := NewClient(rand.New(rand.NewPCG(3, 4)))

		Convey("It picks one basis per photon", func() {
			bases := client.ChoosePolarizations(100)
			So(len(bases), ShouldEqual, 100)

			seen := map[Basis]int{}
			for _, b := range bases {
				seen[b]++
			}
			So(seen[Rectilinear]+seen[Diagonal], ShouldEqual, 100)
			So(seen[Rectilinear], ShouldBeGreaterThan, 0)
			So(seen[Diagonal], ShouldBeGreaterThan, 0)
		})
	})
}

// constantCount always sends the same number of photons.
type constantCount int

func (c constantCount) PhotonCount(int, int) int {
	return int(c)
}

func TestNegotiate(t *testing.T) {
	quiet()

	Convey("Given renegotiation strategies", t, func() {
		exp := &ExponentialGrowth{Factor: 2}
		So(exp.PhotonCount(1, 8), ShouldEqual, 16)
		So(exp.PhotonCount(2, 8), ShouldEqual, 32)
		So(exp.PhotonCount(3, 8), ShouldEqual, 64)

		lin := &LinearGrowth{Factor: 2, Step: 10}
		So(lin.PhotonCount(1, 8), ShouldEqual, 16)
		So(lin.PhotonCount(3, 8), ShouldEqual, 36)

		So((&ExponentialGrowth{}).PhotonCount(1, 8), ShouldEqual, 8)

		Convey("Exponential growth stops doubling at the cap", func() {
			So(exp.PhotonCount(maxDoublings+1, 8), ShouldEqual, 16<<maxDoublings)
			So(exp.PhotonCount(100, 8), ShouldEqual, 16<<maxDoublings)
			So(exp.PhotonCount(0, 8), ShouldEqual, 16)
		})

		Convey("A negative step can shrink the linear count below zero", func() {
			So((&LinearGrowth{Factor: 1, Step: -20}).PhotonCount(2, 8), ShouldEqual, -12)
		})
	})

	Convey("Given strategy names", t, func() {
		strategy, err := NewStrategy("linear", 3, 5)
		So(err, ShouldBeNil)
		So(strategy, ShouldResemble, &LinearGrowth{Factor: 3, Step: 5})

		strategy, err = NewStrategy(" Exponential ", 2, 5)
		So(err, ShouldBeNil)
		So(strategy, ShouldResemble, &ExponentialGrowth{Factor: 2})

		_, err = NewStrategy("fibonacci", 2, 5)
		So(errors.Is(err, ErrUnknownStrategy), ShouldBeTrue)
	})

	Convey("Given a seeded server and client", t, func() {
		server, err := NewServer(128, rand.New(rand.NewPCG(5, 6)))
		So(err, ShouldBeNil)
		client := NewClient(rand.New(rand.NewPCG(7, 8)))

		Convey("Negotiation yields a key of exactly the requested size", func() {
			result, err := Negotiate(server, client, &ExponentialGrowth{Factor: 2}, 8)

			So(err, ShouldBeNil)
			So(len(result.Key)*8, ShouldEqual, 128)
			So(result.Attempts, ShouldBeBetweenOrEqual, 1, 8)
			So(result.Photons, ShouldBeGreaterThanOrEqualTo, 256)
		})

		Convey("Too few photons exhaust the attempts", func() {
			_, err := Negotiate(server, client, constantCount(128), 3)
			So(errors.Is(err, ErrNegotiationExhausted), ShouldBeTrue)
		})

		Convey("Photon counts below the key size are rejected", func() {
			for _, n := range []int{-12, 0, 127} {
				_, err := Negotiate(server, client, constantCount(n), 3)
				So(errors.Is(err, ErrPhotonCount), ShouldBeTrue)
			}
		})
	})

	Convey("Given a linear strategy whose step turns negative", t, func() {
		server, err := NewServer(8, rand.New(rand.NewPCG(9, 10)))
		So(err, ShouldBeNil)
		client := NewClient(rand.New(rand.NewPCG(11, 12)))

		Convey("Negotiation ends with an error instead of a panic", func() {
			So(func() {
				_, err = Negotiate(server, client, &LinearGrowth{Factor: 1, Step: -20}, 4)
			}, ShouldNotPanic)

			if err != nil {
				So(errors.Is(err, ErrPhotonCount), ShouldBeTrue)
			}
		})
	})
}
