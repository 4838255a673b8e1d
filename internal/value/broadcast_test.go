package value

import "testing"

func TestScalarBroadcastOverVector(t *testing.T) {
	v := Vector{Elements: []Value{rat(1, 1), rat(2, 1), rat(3, 1)}}
	result, err := BinaryOp("*", v, rat(2, 1), Options{})
	if err != nil {
		t.Fatal(err)
	}
	got := result.(Vector)
	want := []int64{2, 4, 6}
	for i, w := range want {
		if got.Elements[i].(Rational).R.Num().Int64() != w {
			t.Fatalf("at %d: want %d got %s", i, w, got.Elements[i].String())
		}
	}
}

func TestVectorVectorZeroExtension(t *testing.T) {
	l := Vector{Elements: []Value{rat(1, 1), rat(2, 1), rat(3, 1)}}
	r := Vector{Elements: []Value{rat(10, 1)}}
	// r has length 1, so this should broadcast, not zero-extend.
	result, err := BinaryOp("+", l, r, Options{})
	if err != nil {
		t.Fatal(err)
	}
	got := result.(Vector)
	if got.Elements[2].(Rational).R.Num().Int64() != 13 {
		t.Fatalf("expected length-1 broadcast, got %#v", got)
	}

	l2 := Vector{Elements: []Value{rat(1, 1), rat(2, 1), rat(3, 1)}}
	r2 := Vector{Elements: []Value{rat(10, 1), rat(20, 1)}}
	result2, err := BinaryOp("+", l2, r2, Options{})
	if err != nil {
		t.Fatal(err)
	}
	got2 := result2.(Vector)
	if got2.Elements[2].(Rational).R.Num().Int64() != 3 {
		t.Fatalf("expected zero-extension for the uneven tail, got %#v", got2)
	}
}

func TestMatrixShapeMismatchIsTypeError(t *testing.T) {
	a, _ := NewMatrix([][]Value{{rat(1, 1)}})
	b, _ := NewMatrix([][]Value{{rat(1, 1), rat(2, 1)}})
	_, err := BinaryOp("+", a, b, Options{})
	if err == nil {
		t.Fatal("expected shape mismatch TypeError")
	}
	if _, ok := err.(*TypeError); !ok {
		t.Fatalf("expected shape mismatch TypeError, got %v", err)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	cases := []Value{
		rat(3, 4),
		Double(1.5),
		Bool(true),
		String("hello"),
		Percent{Fraction: 0.25},
		Vector{Elements: []Value{rat(1, 1), rat(2, 1)}},
	}
	for _, v := range cases {
		doc, err := ToJSON(v)
		if err != nil {
			t.Fatalf("encode %#v: %v", v, err)
		}
		back, err := FromJSON(doc)
		if err != nil {
			t.Fatalf("decode %q: %v", doc, err)
		}
		if back.String() != v.String() {
			t.Fatalf("round trip mismatch: %s != %s", back.String(), v.String())
		}
	}
}
