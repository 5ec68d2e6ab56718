// Package hash2curve implements RFC 9380 section 6.6.2's simplified SWU
// map-to-curve for Helios and Selene, and the map_to_curve2 encode-to-curve
// primitive built from it.
package hash2curve

import (
	"github.com/gibme-c/helioselene-sub001/fp"
	"github.com/gibme-c/helioselene-sub001/fq"
	"github.com/gibme-c/helioselene-sub001/helios"
	"github.com/gibme-c/helioselene-sub001/selene"
)

// heliosZ/seleneZ are the non-square constants RFC 9380 calls Z, chosen per
// field; heliosA/seleneA are the shared a = -3 Weierstrass coefficient the
// curve-arithmetic formulas in helios/selene are also built around.
var (
	heliosZ = fpFromUint64(7)
	heliosA = fpNeg(fpFromUint64(3))
	seleneZ = fqNeg(fqFromUint64(4))
	seleneA = fqNeg(fqFromUint64(3))
)

func fpFromUint64(v uint64) fp.Elt {
	var e fp.Elt
	e.SetUint64(v)
	return e
}

func fpNeg(x fp.Elt) fp.Elt {
	var r fp.Elt
	r.Negate(&x, 8)
	return r
}

func fqFromUint64(v uint64) fq.Elt {
	var e fq.Elt
	e.SetUint64(v)
	return e
}

func fqNeg(x fq.Elt) fq.Elt {
	var r fq.Elt
	r.Negate(&x, 8)
	return r
}

// MapToCurveHelios implements the simplified SWU map from RFC 9380 §6.6.2,
// mapping u to a point on Helios (y^2 = x^3 - 3x + B). Both candidate
// x-values and both candidate square roots are computed unconditionally;
// selection uses CondAssign rather than a branch on which gx is a square.
func MapToCurveHelios(u fp.Elt) helios.Jacobian {
	a := heliosA
	b := helios.B
	z := heliosZ

	var u2 fp.Elt
	u2.Square(&u)
	var zu2 fp.Elt
	zu2.Mul(&z, &u2)
	var zu2sq fp.Elt
	zu2sq.Square(&zu2)
	var tv1 fp.Elt
	tv1.Add(&zu2sq, &zu2)

	var tv1inv fp.Elt
	tv1inv.Invert(&tv1) // inv0: tv1 == 0 maps to 0

	var aInv fp.Elt
	aInv.Invert(&a)
	var negBOverA fp.Elt
	negBOverA.Mul(&b, &aInv)
	negBOverA.Negate(&negBOverA, 8)

	var onePlusTv1Inv fp.Elt
	onePlusTv1Inv.SetOne()
	onePlusTv1Inv.Add(&onePlusTv1Inv, &tv1inv)

	var x1 fp.Elt
	x1.Mul(&negBOverA, &onePlusTv1Inv)

	var za fp.Elt
	za.Mul(&z, &a)
	var zaInv fp.Elt
	zaInv.Invert(&za)
	var bOverZA fp.Elt
	bOverZA.Mul(&b, &zaInv)
	x1.CondAssign(tv1.IsZero(), &bOverZA)

	gx1 := curveEquationFp(a, b, x1)

	var x2 fp.Elt
	x2.Mul(&zu2, &x1)
	gx2 := curveEquationFp(a, b, x2)

	var y1, y2 fp.Elt
	_, ok1 := y1.Sqrt(&gx1)
	y2.Sqrt(&gx2)

	var x, y fp.Elt
	x.Set(&x2)
	y.Set(&y2)
	x.CondAssign(ok1, &x1)
	y.CondAssign(ok1, &y1)

	y.CondNegate(u.IsOdd() != y.IsOdd())

	var affine helios.Affine
	affine.X = x
	affine.Y = y

	var out helios.Jacobian
	out.FromAffine(&affine)
	return out
}

func curveEquationFp(a, b, x fp.Elt) fp.Elt {
	var xsq fp.Elt
	xsq.Square(&x)
	var xcubed fp.Elt
	xcubed.Mul(&xsq, &x)
	var ax fp.Elt
	ax.Mul(&a, &x)
	var gx fp.Elt
	gx.Add(&xcubed, &ax)
	gx.Add(&gx, &b)
	return gx
}

// MapToCurve2Helios is the encode-to-curve primitive: it maps two inputs
// independently and adds the results.
func MapToCurve2Helios(u0, u1 fp.Elt) helios.Jacobian {
	p0 := MapToCurveHelios(u0)
	p1 := MapToCurveHelios(u1)
	var out helios.Jacobian
	helios.SafeAdd(&out, &p0, &p1)
	return out
}

// MapToCurveSelene implements the simplified SWU map from RFC 9380 §6.6.2,
// mapping u to a point on Selene (y^2 = x^3 - 3x + B).
func MapToCurveSelene(u fq.Elt) selene.Jacobian {
	a := seleneA
	b := selene.B
	z := seleneZ

	var u2 fq.Elt
	u2.Square(&u)
	var zu2 fq.Elt
	zu2.Mul(&z, &u2)
	var zu2sq fq.Elt
	zu2sq.Square(&zu2)
	var tv1 fq.Elt
	tv1.Add(&zu2sq, &zu2)

	var tv1inv fq.Elt
	tv1inv.Invert(&tv1)

	var aInv fq.Elt
	aInv.Invert(&a)
	var negBOverA fq.Elt
	negBOverA.Mul(&b, &aInv)
	negBOverA.Negate(&negBOverA, 8)

	var onePlusTv1Inv fq.Elt
	onePlusTv1Inv.SetOne()
	onePlusTv1Inv.Add(&onePlusTv1Inv, &tv1inv)

	var x1 fq.Elt
	x1.Mul(&negBOverA, &onePlusTv1Inv)

	var za fq.Elt
	za.Mul(&z, &a)
	var zaInv fq.Elt
	zaInv.Invert(&za)
	var bOverZA fq.Elt
	bOverZA.Mul(&b, &zaInv)
	x1.CondAssign(tv1.IsZero(), &bOverZA)

	gx1 := curveEquationFq(a, b, x1)

	var x2 fq.Elt
	x2.Mul(&zu2, &x1)
	gx2 := curveEquationFq(a, b, x2)

	var y1, y2 fq.Elt
	_, ok1 := y1.Sqrt(&gx1)
	y2.Sqrt(&gx2)

	var x, y fq.Elt
	x.Set(&x2)
	y.Set(&y2)
	x.CondAssign(ok1, &x1)
	y.CondAssign(ok1, &y1)

	y.CondNegate(u.IsOdd() != y.IsOdd())

	var affine selene.Affine
	affine.X = x
	affine.Y = y

	var out selene.Jacobian
	out.FromAffine(&affine)
	return out
}

func curveEquationFq(a, b, x fq.Elt) fq.Elt {
	var xsq fq.Elt
	xsq.Square(&x)
	var xcubed fq.Elt
	xcubed.Mul(&xsq, &x)
	var ax fq.Elt
	ax.Mul(&a, &x)
	var gx fq.Elt
	gx.Add(&xcubed, &ax)
	gx.Add(&gx, &b)
	return gx
}

// MapToCurve2Selene is the encode-to-curve primitive for Selene.
func MapToCurve2Selene(u0, u1 fq.Elt) selene.Jacobian {
	p0 := MapToCurveSelene(u0)
	p1 := MapToCurveSelene(u1)
	var out selene.Jacobian
	selene.SafeAdd(&out, &p0, &p1)
	return out
}
