package qreg

const (
	MaxQubits = 5
	MaxStates = 1 << MaxQubits
)

// Operator is a square complex matrix of dimension at most MaxStates. It is a
// plain value; copies are independent.
type Operator struct {
	dim  int
	data [MaxStates][MaxStates]complex128
}

// Vector is a complex column vector of length at most MaxStates.
type Vector struct {
	dim  int
	amps [MaxStates]complex128
}

func identityOperator(dim int) Operator {
	op := Operator{dim: dim}
	for i := 0; i < dim; i++ {
		op.data[i][i] = 1
	}
	return op
}

func operatorFrom(m Matrix2) Operator {
	op := Operator{dim: 2}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			op.data[i][j] = m[i][j]
		}
	}
	return op
}

func (op *Operator) Dim() int {
	return op.dim
}

func (op *Operator) At(row, col int) complex128 {
	return op.data[row][col]
}

/*
Kron returns op ⊗ m. Element (i, j) of op scales the 2x2 block starting at
(2i, 2j), so the factors of an iterated product run from the most significant
index bit to the least.
*/
func (op *Operator) Kron(m Matrix2) Operator {
	out := Operator{dim: op.dim * 2}

	for i := 0; i < op.dim; i++ {
		for j := 0; j < op.dim; j++ {
			first := op.data[i][j]
			if first == 0 {
				continue
			}

			for k := 0; k < 2; k++ {
				for l := 0; l < 2; l++ {
					out.data[2*i+k][2*j+l] = first * m[k][l]
				}
			}
		}
	}

	return out
}

// Apply computes op·v. Dimensions must agree.
func (op *Operator) Apply(v *Vector) Vector {
	out := Vector{dim: v.dim}

	for i := 0; i < op.dim; i++ {
		var sum complex128
		for j := 0; j < op.dim; j++ {
			sum += op.data[i][j] * v.amps[j]
		}
		out.amps[i] = sum
	}

	return out
}

func (v *Vector) Dim() int {
	return v.dim
}

func (v *Vector) At(i int) complex128 {
	return v.amps[i]
}

func (v *Vector) Slice() []complex128 {
	out := make([]complex128, v.dim)
	copy(out, v.amps[:v.dim])
	return out
}

// probability returns |amplitude|² at index i.
func (v *Vector) probability(i int) float64 {
	a := v.amps[i]
	return real(a)*real(a) + imag(a)*imag(a)
}

func (v *Vector) norm() float64 {
	var sum float64
	for i := 0; i < v.dim; i++ {
		sum += v.probability(i)
	}
	return sum
}
