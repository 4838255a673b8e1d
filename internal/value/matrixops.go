package value

import "math/big"

// MatMul implements `A @ B`: A is m×k, B is k×n, result is m×n, with
// scalar multiplication/addition dispatched through the arithmetic
// layer so rational precision is preserved when possible.
func MatMul(a, b Matrix, opts Options) (Matrix, error) {
	if a.NumCols() != b.NumRows() {
		return Matrix{}, &TypeError{Op: "@", Left: KindMatrix, Right: KindMatrix,
			Detail: "matrix multiplication requires inner dimensions to match"}
	}
	m, k, n := a.NumRows(), a.NumCols(), b.NumCols()
	rows := make([][]Value, m)
	for i := 0; i < m; i++ {
		row := make([]Value, n)
		for j := 0; j < n; j++ {
			var sum Value = NewRationalInt64(0)
			for p := 0; p < k; p++ {
				term, err := Multiply(a.Rows[i][p], b.Rows[p][j], opts)
				if err != nil {
					return Matrix{}, err
				}
				sum, err = Add(sum, term, opts)
				if err != nil {
					return Matrix{}, err
				}
			}
			row[j] = sum
		}
		rows[i] = row
	}
	return Matrix{Rows: rows}, nil
}

// MatPow implements `M ^ n` for integer n on a square matrix: n=0 is
// the identity, positive n is repeated MatMul, negative n uses the
// matrix inverse.
func MatPow(m Matrix, n int64, opts Options) (Matrix, error) {
	if m.NumRows() != m.NumCols() {
		return Matrix{}, &TypeError{Op: "^", Left: KindMatrix, Right: KindRational, Detail: "matrix power requires a square matrix"}
	}
	if n < 0 {
		inv, err := Inverse(m, opts)
		if err != nil {
			return Matrix{}, err
		}
		return MatPow(inv, -n, opts)
	}
	result := identity(m.NumRows())
	base := m
	for n > 0 {
		if n&1 == 1 {
			var err error
			result, err = MatMul(result, base, opts)
			if err != nil {
				return Matrix{}, err
			}
		}
		var err error
		base, err = MatMul(base, base, opts)
		if err != nil {
			return Matrix{}, err
		}
		n >>= 1
	}
	return result, nil
}

func identity(n int) Matrix {
	rows := make([][]Value, n)
	for i := range rows {
		row := make([]Value, n)
		for j := range row {
			if i == j {
				row[j] = NewRationalInt64(1)
			} else {
				row[j] = NewRationalInt64(0)
			}
		}
		rows[i] = row
	}
	return Matrix{Rows: rows}
}

// Inverse computes the matrix inverse via Gauss-Jordan elimination
// using exact rational arithmetic where possible, falling back to
// double precision when forceDoubleArithmetic is set. Singular
// matrices raise a DomainError.
func Inverse(m Matrix, opts Options) (Matrix, error) {
	n := m.NumRows()
	if n != m.NumCols() {
		return Matrix{}, &TypeError{Op: "inverse", Left: KindMatrix, Right: -1, Detail: "inverse requires a square matrix"}
	}
	aug := make([][]*big.Rat, n)
	for i := 0; i < n; i++ {
		aug[i] = make([]*big.Rat, 2*n)
		for j := 0; j < n; j++ {
			aug[i][j] = toRat(m.Rows[i][j])
			if i == j {
				aug[i][n+j] = big.NewRat(1, 1)
			} else {
				aug[i][n+j] = big.NewRat(0, 1)
			}
		}
	}

	for col := 0; col < n; col++ {
		pivotRow := -1
		for row := col; row < n; row++ {
			if aug[row][col].Sign() != 0 {
				pivotRow = row
				break
			}
		}
		if pivotRow == -1 {
			return Matrix{}, &DomainError{Detail: "matrix is singular; inverse does not exist"}
		}
		aug[col], aug[pivotRow] = aug[pivotRow], aug[col]

		pivot := aug[col][col]
		for j := 0; j < 2*n; j++ {
			aug[col][j] = new(big.Rat).Quo(aug[col][j], pivot)
		}
		for row := 0; row < n; row++ {
			if row == col {
				continue
			}
			factor := aug[row][col]
			if factor.Sign() == 0 {
				continue
			}
			for j := 0; j < 2*n; j++ {
				term := new(big.Rat).Mul(factor, aug[col][j])
				aug[row][j] = new(big.Rat).Sub(aug[row][j], term)
			}
		}
	}

	rows := make([][]Value, n)
	for i := 0; i < n; i++ {
		row := make([]Value, n)
		for j := 0; j < n; j++ {
			if opts.ForceDouble {
				f, _ := aug[i][n+j].Float64()
				row[j] = Double(f)
			} else {
				row[j] = Rational{R: aug[i][n+j]}
			}
		}
		rows[i] = row
	}
	return Matrix{Rows: rows}, nil
}

func toRat(v Value) *big.Rat {
	switch t := v.(type) {
	case Rational:
		return new(big.Rat).Set(t.R)
	case Double:
		r := new(big.Rat)
		r.SetFloat64(float64(t))
		return r
	default:
		r := new(big.Rat)
		r.SetFloat64(toFloat(v))
		return r
	}
}
