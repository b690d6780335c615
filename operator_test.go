package qreg

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestOperator(t *testing.T) {
	Convey("Given the 1x1 identity", t, func() {
		op := identityOperator(1)

		Convey("Kron with a matrix yields that matrix", func() {
			x, _ := GateMatrix(PauliX)
			out := op.Kron(x)

			So(out.Dim(), ShouldEqual, 2)
			So(out.At(0, 1), ShouldEqual, complex(1, 0))
			So(out.At(1, 0), ShouldEqual, complex(1, 0))
			So(out.At(0, 0), ShouldEqual, complex(0, 0))
		})
	})

	Convey("Given X ⊗ I", t, func() {
		x, _ := GateMatrix(PauliX)
		op := operatorFrom(x)
		op = op.Kron(identity2)

		Convey("The left factor drives the high index bit", func() {
			So(op.Dim(), ShouldEqual, 4)

			for col := 0; col < 4; col++ {
				row := col ^ 0b10
				for r := 0; r < 4; r++ {
					if r == row {
						So(op.At(r, col), ShouldEqual, complex(1, 0))
					} else {
						So(op.At(r, col), ShouldEqual, complex(0, 0))
					}
				}
			}
		})

		Convey("Apply maps |00⟩ to |10⟩", func() {
			v := Vector{dim: 4}
			v.amps[0] = 1

			out := op.Apply(&v)
			So(out.Slice(), ShouldResemble, []complex128{0, 0, 1, 0})
			So(out.norm(), ShouldEqual, 1.0)
		})
	})

	Convey("Given identity operators", t, func() {
		for _, dim := range []int{1, 2, 8, MaxStates} {
			op := identityOperator(dim)
			v := Vector{dim: dim}
			for i := 0; i < dim; i++ {
				v.amps[i] = complex(float64(i), float64(-i))
			}

			out := op.Apply(&v)
			So(out.Slice(), ShouldResemble, v.Slice())
		}
	})
}
