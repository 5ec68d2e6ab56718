package fp

import (
	"crypto/rand"
	"testing"
)

func TestEltBasics(t *testing.T) {
	var zero Elt
	zero.SetZero()
	if !zero.IsZero() {
		t.Error("zero element should be zero")
	}

	var one Elt
	one.SetOne()
	if one.IsZero() {
		t.Error("one element should not be zero")
	}
	if !one.Equal(&Elt{n: [5]uint64{1, 0, 0, 0, 0}, magnitude: 1, normalized: true}) {
		t.Error("one should equal the hand-built unit element")
	}
}

func TestEltSetCanonicalBytes(t *testing.T) {
	cases := []struct {
		name  string
		bytes [32]byte
		want  func() Elt
	}{
		{
			name:  "zero",
			bytes: [32]byte{},
			want:  func() Elt { var e Elt; e.SetZero(); return e },
		},
		{
			name: "one",
			bytes: [32]byte{1},
			want:  func() Elt { var e Elt; e.SetOne(); return e },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var e Elt
			if _, err := e.SetCanonicalBytes(tc.bytes[:]); err != nil {
				t.Fatalf("SetCanonicalBytes: %v", err)
			}
			want := tc.want()
			if !e.Equal(&want) {
				t.Error("decoded element did not match expected value")
			}
		})
	}
}

func TestEltRejectsNonCanonical(t *testing.T) {
	// p itself, 2^255 - 19, is not a canonical encoding. Written out byte
	// by byte: Bytes would reduce p to 0 before encoding it.
	var pBytes [32]byte
	for i := range pBytes {
		pBytes[i] = 0xFF
	}
	pBytes[0] = 0xED
	pBytes[31] = 0x7F

	var e Elt
	if _, err := e.SetCanonicalBytes(pBytes[:]); err == nil {
		t.Error("expected rejection of p's own non-canonical encoding")
	}

	var bit255 [32]byte
	bit255[31] = 0x80
	if _, err := e.SetCanonicalBytes(bit255[:]); err == nil {
		t.Error("expected rejection of an encoding with bit 255 set")
	}
}

func TestEltRoundTrip(t *testing.T) {
	for i := 0; i < 64; i++ {
		var raw [32]byte
		rand.Read(raw[:])
		raw[31] &= 0x7F

		var e Elt
		if _, err := e.SetCanonicalBytes(raw[:]); err != nil {
			continue
		}
		var out [32]byte
		e.Bytes(out[:])

		var e2 Elt
		if _, err := e2.SetCanonicalBytes(out[:]); err != nil {
			t.Fatalf("round-tripped encoding rejected: %v", err)
		}
		if !e.Equal(&e2) {
			t.Errorf("round %d: decode(encode(x)) != x", i)
		}
	}
}

func TestEltAddSubNegate(t *testing.T) {
	var a, b Elt
	a.SetUint64(5)
	b.SetUint64(7)

	var sum Elt
	sum.Add(&a, &b)

	var twelve Elt
	twelve.SetUint64(12)
	if !sum.Equal(&twelve) {
		t.Error("5 + 7 should equal 12")
	}

	var neg Elt
	neg.Negate(&a, 1)
	var total Elt
	total.Add(&a, &neg)
	if !total.IsZero() {
		t.Error("a + (-a) should equal zero")
	}

	var diff Elt
	diff.Sub(&sum, &b)
	if !diff.Equal(&a) {
		t.Error("(a + b) - b should equal a")
	}
}

func TestEltMulSquare(t *testing.T) {
	var a, result Elt
	a.SetUint64(3)
	result = a
	result.MulSmall(4)

	var twelve Elt
	twelve.SetUint64(12)
	if !result.Equal(&twelve) {
		t.Error("3 * 4 should equal 12")
	}

	var sq Elt
	sq.Square(&a)
	var nine Elt
	nine.SetUint64(9)
	if !sq.Equal(&nine) {
		t.Error("3^2 should equal 9")
	}

	var mulResult Elt
	mulResult.Mul(&a, &a)
	if !mulResult.Equal(&sq) {
		t.Error("Mul(a, a) should equal Square(a)")
	}
}

func TestEltInvert(t *testing.T) {
	var zero Elt
	zero.SetZero()
	var zeroInv Elt
	zeroInv.Invert(&zero)
	if !zeroInv.IsZero() {
		t.Error("invert(0) should be 0")
	}

	for i := 1; i < 32; i++ {
		var a Elt
		a.SetUint64(uint64(i))
		var inv Elt
		inv.Invert(&a)
		var product Elt
		product.Mul(&a, &inv)
		var one Elt
		one.SetOne()
		if !product.Equal(&one) {
			t.Errorf("%d * invert(%d) should equal 1", i, i)
		}
	}
}

func TestEltSqrt(t *testing.T) {
	var four Elt
	four.SetUint64(4)
	root, ok := (&Elt{}).Sqrt(&four)
	if !ok {
		t.Fatal("sqrt(4) should exist")
	}
	var check Elt
	check.Square(root)
	if !check.Equal(&four) {
		t.Error("sqrt(4)^2 should equal 4")
	}
}

func TestEltCondAssignCondNegate(t *testing.T) {
	var a, b Elt
	a.SetUint64(10)
	b.SetUint64(20)

	result := a
	result.CondAssign(false, &b)
	if !result.Equal(&a) {
		t.Error("CondAssign(false, ...) should not change value")
	}

	result = a
	result.CondAssign(true, &b)
	if !result.Equal(&b) {
		t.Error("CondAssign(true, ...) should change value")
	}

	neg := a
	neg.CondNegate(true)
	var sum Elt
	sum.Add(&a, &neg)
	if !sum.IsZero() {
		t.Error("CondNegate(true) should negate in place")
	}
}

func TestEltIsOdd(t *testing.T) {
	var even, odd Elt
	even.SetUint64(42)
	odd.SetUint64(43)
	if even.IsOdd() {
		t.Error("42 should be even")
	}
	if !odd.IsOdd() {
		t.Error("43 should be odd")
	}
}

func TestEltClear(t *testing.T) {
	var e Elt
	e.SetUint64(12345)
	e.Clear()
	if !e.IsZero() {
		t.Error("cleared element should be zero")
	}
}

func TestBatchInvert(t *testing.T) {
	in := make([]Elt, 8)
	for i := range in {
		in[i].SetUint64(uint64(i + 1))
	}
	out := make([]Elt, 8)
	BatchInvert(out, in)

	for i := range in {
		var product Elt
		product.Mul(&in[i], &out[i])
		var one Elt
		one.SetOne()
		if !product.Equal(&one) {
			t.Errorf("batch-inverted element %d did not invert correctly", i)
		}
	}
}

func TestEltRandomAddSub(t *testing.T) {
	for i := 0; i < 100; i++ {
		var rawA, rawB [32]byte
		rand.Read(rawA[:])
		rand.Read(rawB[:])
		rawA[31] &= 0x7F
		rawB[31] &= 0x7F

		var a, b Elt
		if _, err := a.SetCanonicalBytes(rawA[:]); err != nil {
			continue
		}
		if _, err := b.SetCanonicalBytes(rawB[:]); err != nil {
			continue
		}

		var sum, diff Elt
		sum.Add(&a, &b)
		diff.Sub(&sum, &b)
		if !diff.Equal(&a) {
			t.Errorf("random test %d: (a + b) - b should equal a", i)
		}
	}
}
