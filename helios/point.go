// Package helios implements Jacobian point arithmetic for the Helios curve
// y² = x³ − 3x + b over F_p, the first curve of the Helios/Selene 2-cycle.
// Helios' group order equals q, the characteristic of the Selene field.
package helios

import (
	"errors"

	"github.com/gibme-c/helioselene-sub001/fp"
)

// B is the curve's short-Weierstrass constant. Gx, Gy are the affine
// coordinates of the generator. Both are configuration data, not derived:
// any (b, Gx, Gy) satisfying the curve equation and generating a prime-order
// subgroup of order q is an equally valid choice.
var (
	B  = mustElt(7)
	Gx = mustElt(2)
	Gy = mustElt(3)
)

func mustElt(v uint64) fp.Elt {
	var e fp.Elt
	e.SetUint64(v)
	return e
}

// Jacobian is a point in Jacobian projective coordinates (X, Y, Z), affine
// (X/Z², Y/Z³). The identity is represented by Z = 0.
type Jacobian struct {
	X, Y, Z fp.Elt
}

// Affine is a point in affine coordinates. Infinity is tracked explicitly
// since (0, 0) is not on the curve for b != 0.
type Affine struct {
	X, Y     fp.Elt
	Infinity bool
}

// Identity sets p to the point at infinity and returns p.
func (p *Jacobian) Identity() *Jacobian {
	p.X.SetOne()
	p.Y.SetOne()
	p.Z.SetZero()
	return p
}

// IsIdentity reports whether p is the point at infinity (Z == 0).
func (p *Jacobian) IsIdentity() bool {
	return p.Z.IsZero()
}

// Generator sets p to the curve's base point and returns p.
func (p *Jacobian) Generator() *Jacobian {
	p.X = Gx
	p.Y = Gy
	p.Z.SetOne()
	return p
}

// Negate sets p = -q (Y negated) and returns p.
func (p *Jacobian) Negate(q *Jacobian) *Jacobian {
	p.X = q.X
	p.Z = q.Z
	p.Y.Negate(&q.Y, 8)
	return p
}

// CondAssign sets p = q iff cond, leaving p unchanged otherwise.
func (p *Jacobian) CondAssign(cond bool, q *Jacobian) {
	p.X.CondAssign(cond, &q.X)
	p.Y.CondAssign(cond, &q.Y)
	p.Z.CondAssign(cond, &q.Z)
}

// CondNegate negates p in place iff cond is true.
func (p *Jacobian) CondNegate(cond bool) {
	p.Y.CondNegate(cond)
}

// FromAffine lifts an affine point into Jacobian coordinates.
func (p *Jacobian) FromAffine(a *Affine) *Jacobian {
	if a.Infinity {
		return p.Identity()
	}
	p.X = a.X
	p.Y = a.Y
	p.Z.SetOne()
	return p
}

// ToAffine converts p to affine coordinates by inverting Z. The identity
// maps to the zero-valued Affine with Infinity set.
func (p *Jacobian) ToAffine() Affine {
	if p.IsIdentity() {
		return Affine{Infinity: true}
	}
	var zInv, zInv2, zInv3 fp.Elt
	zInv.Invert(&p.Z)
	zInv2.Square(&zInv)
	zInv3.Mul(&zInv2, &zInv)

	var out Affine
	out.X.Mul(&p.X, &zInv2)
	out.Y.Mul(&p.Y, &zInv3)
	return out
}

// BatchToAffine converts many Jacobian points to affine coordinates using
// Montgomery's trick: one field inversion plus 3(n-1) multiplications,
// instead of one inversion per point.
func BatchToAffine(out []Affine, in []Jacobian) {
	n := len(in)
	if n == 0 {
		return
	}

	zs := make([]fp.Elt, n)
	for i := range in {
		if in[i].IsIdentity() {
			zs[i].SetOne()
		} else {
			zs[i] = in[i].Z
		}
	}

	invs := make([]fp.Elt, n)
	fp.BatchInvert(invs, zs)

	for i := range in {
		if in[i].IsIdentity() {
			out[i] = Affine{Infinity: true}
			continue
		}
		var zInv2, zInv3 fp.Elt
		zInv2.Square(&invs[i])
		zInv3.Mul(&zInv2, &invs[i])
		out[i].X.Mul(&in[i].X, &zInv2)
		out[i].Y.Mul(&in[i].Y, &zInv3)
		out[i].Infinity = false
	}
}

// Double sets p = 2*q using the dbl-2001-b formula (3M + 5S), valid for any
// a = -3 short-Weierstrass curve. Produces the identity when q is the
// identity or a 2-torsion point (Y = 0); callers working with secret points
// should route through SafeAdd-style handling at the call site if 2-torsion
// is reachable, since this curve's order is prime and G generates no such
// point.
func (p *Jacobian) Double(q *Jacobian) *Jacobian {
	var delta, gamma, beta, alpha fp.Elt
	var t0, t1, t2 fp.Elt

	delta.Square(&q.Z)
	gamma.Square(&q.Y)
	beta.Mul(&q.X, &gamma)

	t0.Sub(&q.X, &delta)
	t1.Add(&q.X, &delta)
	alpha.Mul(&t0, &t1)
	alpha.MulSmall(3)

	var x3 fp.Elt
	t0.Square(&alpha)
	t1.Set(&beta)
	t1.MulSmall(8)
	x3.Sub(&t0, &t1)

	var z3 fp.Elt
	t0.Add(&q.Y, &q.Z)
	t0.Square(&t0)
	t1.Add(&gamma, &delta)
	z3.Sub(&t0, &t1)

	var y3 fp.Elt
	t0.Set(&beta)
	t0.MulSmall(4)
	t0.Sub(&t0, &x3)
	t0.Mul(&alpha, &t0)
	t2.Square(&gamma)
	t2.MulSmall(8)
	y3.Sub(&t0, &t2)

	p.X = x3
	p.Y = y3
	p.Z = z3
	return p
}

// Add sets p = q + r using the add-2007-bl formula (11M + 5S) for two
// points in general Jacobian coordinates. Produces garbage if q == r or one
// operand is the identity; use SafeAdd when either operand may be
// non-generic.
func (p *Jacobian) Add(q, r *Jacobian) *Jacobian {
	var z1z1, z2z2, u1, u2, s1, s2, h, i, j, rr, v fp.Elt

	z1z1.Square(&q.Z)
	z2z2.Square(&r.Z)
	u1.Mul(&q.X, &z2z2)
	u2.Mul(&r.X, &z1z1)

	s1.Mul(&q.Y, &r.Z)
	s1.Mul(&s1, &z2z2)
	s2.Mul(&r.Y, &q.Z)
	s2.Mul(&s2, &z1z1)

	h.Sub(&u2, &u1)
	i.Set(&h)
	i.MulSmall(2)
	i.Square(&i)
	j.Mul(&h, &i)

	rr.Sub(&s2, &s1)
	rr.MulSmall(2)
	v.Mul(&u1, &i)

	var x3 fp.Elt
	var t0, t1 fp.Elt
	t0.Square(&rr)
	t1.Set(&v)
	t1.MulSmall(2)
	t1.Add(&j, &t1)
	x3.Sub(&t0, &t1)

	var y3 fp.Elt
	t0.Sub(&v, &x3)
	t0.Mul(&rr, &t0)
	t1.Mul(&s1, &j)
	t1.MulSmall(2)
	y3.Sub(&t0, &t1)

	var z3 fp.Elt
	t0.Add(&q.Z, &r.Z)
	t0.Square(&t0)
	t1.Add(&z1z1, &z2z2)
	z3.Sub(&t0, &t1)
	z3.Mul(&z3, &h)

	p.X = x3
	p.Y = y3
	p.Z = z3
	return p
}

// AddMixed sets p = q + r using the madd-2007-bl formula (7M + 4S), where r
// is given in affine coordinates (implicit Z = 1). Produces garbage if q is
// the identity, r is the identity, or the points coincide; use SafeAdd for
// those cases.
func (p *Jacobian) AddMixed(q *Jacobian, r *Affine) *Jacobian {
	var z1z1, u2, s2, h, hh, i, j, rr, v fp.Elt

	z1z1.Square(&q.Z)
	u2.Mul(&r.X, &z1z1)
	s2.Mul(&r.Y, &q.Z)
	s2.Mul(&s2, &z1z1)

	h.Sub(&u2, &q.X)
	hh.Square(&h)
	i.Set(&hh)
	i.MulSmall(4)
	j.Mul(&h, &i)

	rr.Sub(&s2, &q.Y)
	rr.MulSmall(2)
	v.Mul(&q.X, &i)

	var x3 fp.Elt
	var t0, t1 fp.Elt
	t0.Square(&rr)
	t1.Set(&v)
	t1.MulSmall(2)
	t1.Add(&j, &t1)
	x3.Sub(&t0, &t1)

	var y3 fp.Elt
	t0.Sub(&v, &x3)
	t0.Mul(&rr, &t0)
	t1.Mul(&q.Y, &j)
	t1.MulSmall(2)
	y3.Sub(&t0, &t1)

	var z3 fp.Elt
	t0.Add(&q.Z, &h)
	t0.Square(&t0)
	t1.Add(&z1z1, &hh)
	z3.Sub(&t0, &t1)

	p.X = x3
	p.Y = y3
	p.Z = z3
	return p
}

// equalXY reports whether two Jacobian points represent the same affine
// point, without doing a full field inversion: q.X*r.Z² == r.X*q.Z² and
// q.Y*r.Z³ == r.Y*q.Z³.
func equalXY(q, r *Jacobian) bool {
	var qz2, rz2, qz3, rz3 fp.Elt
	qz2.Square(&q.Z)
	rz2.Square(&r.Z)
	qz3.Mul(&qz2, &q.Z)
	rz3.Mul(&rz2, &r.Z)

	var lx, rx, ly, ry fp.Elt
	lx.Mul(&q.X, &rz2)
	rx.Mul(&r.X, &qz2)
	ly.Mul(&q.Y, &rz3)
	ry.Mul(&r.Y, &qz3)

	return lx.Equal(&rx) && ly.Equal(&ry)
}

// isNegationOf reports whether r == -q, i.e. same X (projectively), opposite
// Y.
func isNegationOf(q, r *Jacobian) bool {
	var qz2, rz2, qz3, rz3 fp.Elt
	qz2.Square(&q.Z)
	rz2.Square(&r.Z)
	qz3.Mul(&qz2, &q.Z)
	rz3.Mul(&rz2, &r.Z)

	var lx, rx fp.Elt
	lx.Mul(&q.X, &rz2)
	rx.Mul(&r.X, &qz2)
	if !lx.Equal(&rx) {
		return false
	}

	var ly, ry, negRy fp.Elt
	ly.Mul(&q.Y, &rz3)
	ry.Mul(&r.Y, &qz3)
	negRy.Negate(&ry, 8)
	return ly.Equal(&negRy)
}

// SafeAdd sets p = q + r, handling the degenerate cases that Add and Double
// cannot: either operand being the identity, q == r (routed to Double), and
// q == -r (routed to the identity). This is the add routine callers must
// use wherever either operand can be non-generic, per the curve's addition
// contract.
func SafeAdd(p, q, r *Jacobian) *Jacobian {
	if q.IsIdentity() {
		*p = *r
		return p
	}
	if r.IsIdentity() {
		*p = *q
		return p
	}
	if equalXY(q, r) {
		return p.Double(q)
	}
	if isNegationOf(q, r) {
		return p.Identity()
	}
	return p.Add(q, r)
}

// IsOnCurve reports whether the affine point a satisfies y² = x³ - 3x + B.
// Variable-time; intended for public-input validation only.
func (a *Affine) IsOnCurve() bool {
	if a.Infinity {
		return false
	}
	var lhs, rhs, x2, x3, threeX fp.Elt
	lhs.Square(&a.Y)

	x2.Square(&a.X)
	x3.Mul(&x2, &a.X)
	threeX.Set(&a.X)
	threeX.MulSmall(3)
	rhs.Sub(&x3, &threeX)
	rhs.Add(&rhs, &B)

	return lhs.Equal(&rhs)
}

// Bytes encodes a as 32 little-endian bytes: x's canonical encoding with
// the curve point's sign bit folded into the top bit (bit 255), matching
// the compressed point-encoding convention. The identity encodes as all
// zero bytes with the sign bit clear, which is never a valid compressed
// encoding of any affine point (x = 0 is not on the curve for B != 0), so
// decoding distinguishes it unambiguously.
func (a Affine) Bytes(dst []byte) {
	if len(dst) != 32 {
		panic("helios: Bytes destination must be 32 bytes")
	}
	if a.Infinity {
		for i := range dst {
			dst[i] = 0
		}
		return
	}
	a.X.Bytes(dst)
	if a.Y.IsOdd() {
		dst[31] |= 0x80
	}
}

// SetBytes decodes a compressed 32-byte point encoding into a, recovering y
// from x via the curve equation and selecting the root whose parity matches
// the encoded sign bit. Returns an error if x does not correspond to a
// point on the curve, or if the all-zero encoding (the identity) is given
// with its sign bit set.
func (a *Affine) SetBytes(src []byte) error {
	if len(src) != 32 {
		return errors.New("helios: invalid encoding length")
	}
	var allZero = true
	for _, b := range src[:31] {
		if b != 0 {
			allZero = false
			break
		}
	}
	sign := src[31]&0x80 != 0
	xBytes := make([]byte, 32)
	copy(xBytes, src)
	xBytes[31] &= 0x7F

	if allZero && xBytes[31] == 0 {
		if sign {
			return errors.New("helios: invalid encoding: identity with sign bit set")
		}
		*a = Affine{Infinity: true}
		return nil
	}

	var x fp.Elt
	if _, err := x.SetCanonicalBytes(xBytes); err != nil {
		return err
	}

	var x2, x3, threeX, rhs fp.Elt
	x2.Square(&x)
	x3.Mul(&x2, &x)
	threeX.Set(&x)
	threeX.MulSmall(3)
	rhs.Sub(&x3, &threeX)
	rhs.Add(&rhs, &B)

	y, ok := (&fp.Elt{}).Sqrt(&rhs)
	if !ok {
		return errors.New("helios: x does not correspond to a point on the curve")
	}
	if y.IsOdd() != sign {
		y.Negate(y, 8)
	}

	a.X = x
	a.Y = *y
	a.Infinity = false
	return nil
}
