package helios

import (
	"crypto/rand"
	"testing"

	"github.com/gibme-c/helioselene-sub001/fq"
)

func randomScalar(t *testing.T) fq.Elt {
	t.Helper()
	for {
		var raw [32]byte
		rand.Read(raw[:])
		raw[31] &= 0x7F
		var e fq.Elt
		if _, err := e.SetCanonicalBytes(raw[:]); err == nil {
			return e
		}
	}
}

func encodeJacobian(p *Jacobian) [32]byte {
	var out [32]byte
	p.ToAffine().Bytes(out[:])
	return out
}

func TestScalarMulTwoMatchesDouble(t *testing.T) {
	g := generator()
	var two fq.Elt
	two.SetUint64(2)

	var viaScalar Jacobian
	ScalarMul(&viaScalar, &two, &g)

	var viaDouble Jacobian
	viaDouble.Double(&g)

	if encodeJacobian(&viaScalar) != encodeJacobian(&viaDouble) {
		t.Error("scalar_mul(2, G) should equal dbl(G)")
	}
}

func TestScalarMulZeroAndOne(t *testing.T) {
	g := generator()
	var zero, one fq.Elt
	zero.SetZero()
	one.SetOne()

	var viaZero Jacobian
	ScalarMul(&viaZero, &zero, &g)
	if !viaZero.IsIdentity() {
		t.Error("scalar_mul(0, G) should be the identity")
	}

	var viaOne Jacobian
	ScalarMul(&viaOne, &one, &g)
	if encodeJacobian(&viaOne) != encodeJacobian(&g) {
		t.Error("scalar_mul(1, G) should equal G")
	}
}

func TestScalarMulCTMatchesVT(t *testing.T) {
	g := generator()
	for i := 0; i < 20; i++ {
		k := randomScalar(t)

		var viaCT Jacobian
		ScalarMul(&viaCT, &k, &g)

		var viaVT Jacobian
		ScalarMulVar(&viaVT, &k, &g)

		if encodeJacobian(&viaCT) != encodeJacobian(&viaVT) {
			t.Errorf("round %d: constant-time and variable-time scalar_mul disagree", i)
		}
	}
}

func TestScalarMulDistributesOverAddition(t *testing.T) {
	g := generator()
	a := randomScalar(t)
	b := randomScalar(t)

	var sum fq.Elt
	sum.Add(&a, &b)

	var lhs Jacobian
	ScalarMul(&lhs, &sum, &g)

	var pa, pb Jacobian
	ScalarMul(&pa, &a, &g)
	ScalarMul(&pb, &b, &g)

	var rhs Jacobian
	SafeAdd(&rhs, &pa, &pb)

	if encodeJacobian(&lhs) != encodeJacobian(&rhs) {
		t.Error("scalar_mul(a+b, G) should equal scalar_mul(a, G) + scalar_mul(b, G)")
	}
}

func TestFixedBaseScalarMulMatchesScalarMul(t *testing.T) {
	g := generator()
	table := BuildFixedBaseTable(&g)

	for i := 0; i < 10; i++ {
		k := randomScalar(t)

		var viaFixed Jacobian
		FixedBaseScalarMul(&viaFixed, &k, table)

		var viaCT Jacobian
		ScalarMul(&viaCT, &k, &g)

		if encodeJacobian(&viaFixed) != encodeJacobian(&viaCT) {
			t.Errorf("round %d: fixed-base scalar_mul disagrees with constant-time scalar_mul", i)
		}
	}
}

func TestMSMStrausMatchesSequential(t *testing.T) {
	g := generator()
	const n = 10
	scalars := make([]*fq.Elt, n)
	points := make([]*Jacobian, n)

	var acc Jacobian
	acc.Identity()
	for i := 0; i < n; i++ {
		k := randomScalar(t)
		scalars[i] = &k

		idx := fq.Elt{}
		idx.SetUint64(uint64(i + 1))
		var p Jacobian
		ScalarMul(&p, &idx, &g)
		points[i] = &p

		var contribution Jacobian
		ScalarMul(&contribution, &k, &p)
		SafeAdd(&acc, &acc, &contribution)
	}

	var msmResult Jacobian
	MSM(&msmResult, scalars, points)

	if encodeJacobian(&msmResult) != encodeJacobian(&acc) {
		t.Error("Straus MSM should match sequential scalar_mul + add")
	}
}

func TestMSMPippengerMatchesSequential(t *testing.T) {
	g := generator()
	const n = 40
	scalars := make([]*fq.Elt, n)
	points := make([]*Jacobian, n)

	var acc Jacobian
	acc.Identity()
	for i := 0; i < n; i++ {
		k := randomScalar(t)
		scalars[i] = &k

		idx := fq.Elt{}
		idx.SetUint64(uint64(i + 1))
		var p Jacobian
		ScalarMul(&p, &idx, &g)
		points[i] = &p

		var contribution Jacobian
		ScalarMul(&contribution, &k, &p)
		SafeAdd(&acc, &acc, &contribution)
	}

	var msmResult Jacobian
	MSM(&msmResult, scalars, points)

	if encodeJacobian(&msmResult) != encodeJacobian(&acc) {
		t.Error("Pippenger MSM should match sequential scalar_mul + add")
	}
}

func TestMSMEmpty(t *testing.T) {
	var out Jacobian
	MSM(&out, nil, nil)
	if !out.IsIdentity() {
		t.Error("MSM of an empty set should be the identity")
	}
}
