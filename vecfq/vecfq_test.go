package vecfq

import (
	"testing"

	"github.com/gibme-c/helioselene-sub001/fq"
)

func fqFromUint64(v uint64) fq.Elt {
	var e fq.Elt
	e.SetUint64(v)
	return e
}

func TestVec4MulMatchesScalarPerLane(t *testing.T) {
	a := Pack4(fqFromUint64(2), fqFromUint64(3), fqFromUint64(5), fqFromUint64(7))
	b := Pack4(fqFromUint64(11), fqFromUint64(13), fqFromUint64(17), fqFromUint64(19))

	var out Vec4
	out.Mul(&a, &b)

	for i := 0; i < 4; i++ {
		al := a.Extract(i)
		bl := b.Extract(i)
		var want fq.Elt
		want.Mul(&al, &bl)
		got := out.Extract(i)
		if !got.Equal(&want) {
			t.Errorf("lane %d: got %v, want %v", i, got, want)
		}
	}
}

func TestVec8SubMatchesScalarPerLane(t *testing.T) {
	var a, b [8]fq.Elt
	for i := range a {
		a[i] = fqFromUint64(uint64(100 + i))
		b[i] = fqFromUint64(uint64(i))
	}
	av := Pack8(a)
	bv := Pack8(b)
	var out Vec8
	out.Sub(&av, &bv)

	for i := 0; i < 8; i++ {
		var want fq.Elt
		want.Sub(&a[i], &b[i])
		got := out.Extract(i)
		if !got.Equal(&want) {
			t.Errorf("lane %d: got %v, want %v", i, got, want)
		}
	}
}

func TestVec4NegMatchesScalarPerLane(t *testing.T) {
	a := Pack4(fqFromUint64(1), fqFromUint64(2), fqFromUint64(3), fqFromUint64(4))
	var out Vec4
	out.Neg(&a)

	for i := 0; i < 4; i++ {
		al := a.Extract(i)
		var want fq.Elt
		want.Negate(&al, 8)
		got := out.Extract(i)
		if !got.Equal(&want) {
			t.Errorf("lane %d: got %v, want %v", i, got, want)
		}
	}
}
