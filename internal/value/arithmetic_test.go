package value

import (
	"math/big"
	"testing"
)

func rat(n, d int64) Rational {
	return Rational{R: big.NewRat(n, d)}
}

func TestExactRationalClosure(t *testing.T) {
	// (1/3 + 1/3 + 1/3) == 1, exactly.
	opts := Options{}
	sum, err := Add(rat(1, 3), rat(1, 3), opts)
	if err != nil {
		t.Fatal(err)
	}
	sum, err = Add(sum, rat(1, 3), opts)
	if err != nil {
		t.Fatal(err)
	}
	got := sum.(Rational)
	if got.R.Cmp(big.NewRat(1, 1)) != 0 {
		t.Fatalf("expected 1, got %s", got.String())
	}
}

func TestNumberPlusPercent(t *testing.T) {
	result, err := Add(rat(100, 1), Percent{Fraction: 0.10}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	d, ok := result.(Double)
	if !ok || float64(d) != 110 {
		t.Fatalf("expected Double(110), got %#v", result)
	}
}

func TestUnitPreservedUnderScalarOps(t *testing.T) {
	u := Unit{Magnitude: rat(10, 1), UnitName: "m"}
	result, err := Multiply(u, rat(2, 1), Options{})
	if err != nil {
		t.Fatal(err)
	}
	got, ok := result.(Unit)
	if !ok || got.UnitName != "m" {
		t.Fatalf("expected Unit(m), got %#v", result)
	}
}

func TestUnitDividedByUnitIsPlainRatio(t *testing.T) {
	l := Unit{Magnitude: rat(10, 1), UnitName: "m"}
	r := Unit{Magnitude: rat(5, 1), UnitName: "m"}
	result, err := Divide(l, r, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, isUnit := result.(Unit); isUnit {
		t.Fatalf("expected a plain ratio, got a Unit: %#v", result)
	}
	got, ok := result.(Rational)
	if !ok || got.R.Cmp(big.NewRat(2, 1)) != 0 {
		t.Fatalf("expected 2, got %#v", result)
	}
}

func TestPercentTimesScalarIsPercent(t *testing.T) {
	p := Percent{Fraction: 0.5}
	r1, err := Multiply(p, rat(2, 1), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := r1.(Percent); !ok {
		t.Fatalf("expected Percent, got %#v", r1)
	}
	r2, err := Multiply(rat(2, 1), p, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := r2.(Percent); !ok {
		t.Fatalf("expected Percent, got %#v", r2)
	}
}

func TestPercentDivPercentIsPlainNumber(t *testing.T) {
	result, err := Divide(Percent{Fraction: 0.5}, Percent{Fraction: 0.25}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	d, ok := result.(Double)
	if !ok || float64(d) != 2 {
		t.Fatalf("expected Double(2), got %#v", result)
	}
}

func TestDivisionByZeroFallsThroughToDouble(t *testing.T) {
	result, err := Divide(rat(1, 1), rat(0, 1), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := result.(Double); !ok {
		t.Fatalf("expected Double fallback, got %#v", result)
	}
}

func TestForceDoubleArithmeticDegradesRationals(t *testing.T) {
	result, err := Add(rat(1, 3), rat(1, 3), Options{ForceDouble: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := result.(Double); !ok {
		t.Fatalf("expected Double under forceDoubleArithmetic, got %#v", result)
	}
}

func TestIntegerPowerOnRationalStaysExact(t *testing.T) {
	result, err := Power(rat(2, 1), rat(3, 1), Options{})
	if err != nil {
		t.Fatal(err)
	}
	got, ok := result.(Rational)
	if !ok || got.R.Cmp(big.NewRat(8, 1)) != 0 {
		t.Fatalf("expected 8, got %#v", result)
	}
}

func TestMatrixMultiplicationShape(t *testing.T) {
	a, _ := NewMatrix([][]Value{{rat(1, 1), rat(2, 1)}, {rat(3, 1), rat(4, 1)}})
	b, _ := NewMatrix([][]Value{{rat(5, 1), rat(6, 1)}, {rat(7, 1), rat(8, 1)}})
	result, err := MatMul(a, b, Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := [][]int64{{19, 22}, {43, 50}}
	for i, row := range want {
		for j, v := range row {
			got := result.Rows[i][j].(Rational)
			if got.R.Cmp(big.NewRat(v, 1)) != 0 {
				t.Fatalf("at [%d][%d]: want %d, got %s", i, j, v, got.String())
			}
		}
	}
}

func TestMatrixMultiplicationShapeMismatch(t *testing.T) {
	a, _ := NewMatrix([][]Value{{rat(1, 1), rat(2, 1)}})
	b, _ := NewMatrix([][]Value{{rat(1, 1)}, {rat(2, 1)}, {rat(3, 1)}})
	_, err := MatMul(a, b, Options{})
	if err == nil {
		t.Fatal("expected shape mismatch error")
	}
}
