package poly

import (
	"crypto/rand"
	"testing"

	"github.com/gibme-c/helioselene-sub001/fp"
	"github.com/gibme-c/helioselene-sub001/fq"
)

func randomFpElt(t *testing.T) fp.Elt {
	t.Helper()
	for {
		var raw [32]byte
		rand.Read(raw[:])
		raw[31] &= 0x3F
		var e fp.Elt
		if _, err := e.SetCanonicalBytes(raw[:]); err == nil {
			return e
		}
	}
}

func fpFromUint64(v uint64) fp.Elt {
	var e fp.Elt
	e.SetUint64(v)
	return e
}

func TestFpFromRootsEvaluatesToZeroAtRoots(t *testing.T) {
	roots := []fp.Elt{fpFromUint64(1), fpFromUint64(2), fpFromUint64(3)}
	p, err := FpFromRoots(roots)
	if err != nil {
		t.Fatalf("FpFromRoots: %v", err)
	}
	for _, r := range roots {
		v := p.Evaluate(r)
		if !v.IsZero() {
			t.Errorf("polynomial from roots did not vanish at root %v", r)
		}
	}
	if p.Degree() != len(roots) {
		t.Errorf("degree = %d, want %d", p.Degree(), len(roots))
	}
}

func TestFpAddSubRoundTrip(t *testing.T) {
	a, _ := FpFromCoefficients([]fp.Elt{fpFromUint64(1), fpFromUint64(2), fpFromUint64(3)})
	b, _ := FpFromCoefficients([]fp.Elt{fpFromUint64(5), fpFromUint64(7)})

	sum := a.Add(b)
	back := sum.Sub(b)

	x := randomFpElt(t)
	gotBack := back.Evaluate(x)
	gotA := a.Evaluate(x)
	if !gotBack.Equal(&gotA) {
		t.Error("(a+b)-b should evaluate the same as a")
	}
}

func TestFpMulMatchesEvaluationProduct(t *testing.T) {
	a, _ := FpFromCoefficients([]fp.Elt{fpFromUint64(2), fpFromUint64(3)})
	b, _ := FpFromCoefficients([]fp.Elt{fpFromUint64(5), fpFromUint64(1), fpFromUint64(4)})

	product := a.Mul(b)

	x := randomFpElt(t)
	lhs := product.Evaluate(x)
	rhs := a.Evaluate(x)
	rhsB := b.Evaluate(x)
	var want fp.Elt
	want.Mul(&rhs, &rhsB)
	if !lhs.Equal(&want) {
		t.Error("(a*b)(x) should equal a(x)*b(x)")
	}
}

func TestFpMulKaratsubaMatchesSchoolbookAboveThreshold(t *testing.T) {
	aCoeffs := make([]fp.Elt, karatsubaThreshold+5)
	bCoeffs := make([]fp.Elt, karatsubaThreshold+3)
	for i := range aCoeffs {
		aCoeffs[i] = fpFromUint64(uint64(i + 1))
	}
	for i := range bCoeffs {
		bCoeffs[i] = fpFromUint64(uint64(2*i + 1))
	}

	viaKaratsuba := fpKaratsubaMul(aCoeffs, bCoeffs)
	viaSchoolbook := fpSchoolbookMul(aCoeffs, bCoeffs)

	if len(viaKaratsuba) != len(viaSchoolbook) {
		t.Fatalf("length mismatch: %d vs %d", len(viaKaratsuba), len(viaSchoolbook))
	}
	for i := range viaKaratsuba {
		if !viaKaratsuba[i].Equal(&viaSchoolbook[i]) {
			t.Errorf("coefficient %d differs between karatsuba and schoolbook", i)
		}
	}
}

func TestFpDivModReconstructsDividend(t *testing.T) {
	a, _ := FpFromCoefficients([]fp.Elt{fpFromUint64(6), fpFromUint64(11), fpFromUint64(6), fpFromUint64(1)})
	b, _ := FpFromCoefficients([]fp.Elt{fpFromUint64(2), fpFromUint64(1)})

	q, r, err := a.DivMod(b)
	if err != nil {
		t.Fatalf("DivMod: %v", err)
	}

	reconstructed := q.Mul(b).Add(r)
	x := randomFpElt(t)
	gotReconstructed := reconstructed.Evaluate(x)
	gotA := a.Evaluate(x)
	if !gotReconstructed.Equal(&gotA) {
		t.Error("q*divisor + r should evaluate the same as the dividend")
	}
}

func TestFpDivModByZeroErrors(t *testing.T) {
	a, _ := FpFromCoefficients([]fp.Elt{fpFromUint64(1)})
	zero := FpPoly{coeffs: []fp.Elt{{}}}
	_, _, err := a.DivMod(zero)
	if err != ErrDivideByZero {
		t.Errorf("expected ErrDivideByZero, got %v", err)
	}
}

func TestFpInterpolatePassesThroughPoints(t *testing.T) {
	xs := []fp.Elt{fpFromUint64(1), fpFromUint64(2), fpFromUint64(3), fpFromUint64(4)}
	ys := []fp.Elt{fpFromUint64(10), fpFromUint64(20), fpFromUint64(17), fpFromUint64(5)}

	p, err := FpInterpolate(xs, ys)
	if err != nil {
		t.Fatalf("FpInterpolate: %v", err)
	}
	for i, x := range xs {
		got := p.Evaluate(x)
		if !got.Equal(&ys[i]) {
			t.Errorf("point %d: interpolated polynomial does not pass through (x,y)", i)
		}
	}
}

func TestFpInterpolateLengthMismatch(t *testing.T) {
	xs := []fp.Elt{fpFromUint64(1), fpFromUint64(2)}
	ys := []fp.Elt{fpFromUint64(1)}
	_, err := FpInterpolate(xs, ys)
	if err != ErrLengthMismatch {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestFpFromCoefficientsRejectsOversize(t *testing.T) {
	huge := make([]fp.Elt, MaxSize+1)
	_, err := FpFromCoefficients(huge)
	if err != ErrTooLarge {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}

func TestFpZeroPolynomialDegree(t *testing.T) {
	zero, _ := FpFromCoefficients([]fp.Elt{{}})
	if zero.Degree() != 0 {
		t.Errorf("zero polynomial degree = %d, want 0", zero.Degree())
	}
}

func fqFromUint64(v uint64) fq.Elt {
	var e fq.Elt
	e.SetUint64(v)
	return e
}

func TestFqFromRootsEvaluatesToZeroAtRoots(t *testing.T) {
	roots := []fq.Elt{fqFromUint64(7), fqFromUint64(8), fqFromUint64(9)}
	p, err := FqFromRoots(roots)
	if err != nil {
		t.Fatalf("FqFromRoots: %v", err)
	}
	for _, r := range roots {
		v := p.Evaluate(r)
		if !v.IsZero() {
			t.Errorf("polynomial from roots did not vanish at root %v", r)
		}
	}
}

func TestFqInterpolatePassesThroughPoints(t *testing.T) {
	xs := []fq.Elt{fqFromUint64(1), fqFromUint64(2), fqFromUint64(3)}
	ys := []fq.Elt{fqFromUint64(4), fqFromUint64(9), fqFromUint64(16)}

	p, err := FqInterpolate(xs, ys)
	if err != nil {
		t.Fatalf("FqInterpolate: %v", err)
	}
	for i, x := range xs {
		got := p.Evaluate(x)
		if !got.Equal(&ys[i]) {
			t.Errorf("point %d: interpolated polynomial does not pass through (x,y)", i)
		}
	}
}

func TestFqDivModReconstructsDividend(t *testing.T) {
	a, _ := FqFromCoefficients([]fq.Elt{fqFromUint64(6), fqFromUint64(11), fqFromUint64(6), fqFromUint64(1)})
	b, _ := FqFromCoefficients([]fq.Elt{fqFromUint64(2), fqFromUint64(1)})

	q, r, err := a.DivMod(b)
	if err != nil {
		t.Fatalf("DivMod: %v", err)
	}

	reconstructed := q.Mul(b).Add(r)
	x := fqFromUint64(5)
	gotReconstructed := reconstructed.Evaluate(x)
	gotA := a.Evaluate(x)
	if !gotReconstructed.Equal(&gotA) {
		t.Error("q*divisor + r should evaluate the same as the dividend")
	}
}
