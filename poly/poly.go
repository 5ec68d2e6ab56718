// Package poly implements dense univariate polynomial arithmetic over F_p
// and F_q: the two fields are kept as separate, non-generic types (FpPoly,
// FqPoly) the same way the system this package is modeled on splits its
// polynomial API per field rather than sharing one generic implementation.
package poly

import (
	"errors"

	"github.com/gibme-c/helioselene-sub001/fp"
	"github.com/gibme-c/helioselene-sub001/fq"
)

// MaxSize bounds the number of coefficients/roots/interpolation points
// accepted by any constructor, guarding against unbounded allocation from
// attacker-controlled sizes.
const MaxSize = 1 << 20

// karatsubaThreshold is the coefficient count below which Mul falls back to
// schoolbook multiplication.
const karatsubaThreshold = 32

var (
	ErrEmptyInput     = errors.New("poly: empty coefficient/root list")
	ErrTooLarge       = errors.New("poly: size exceeds maximum")
	ErrLengthMismatch = errors.New("poly: x and y slice lengths differ")
	ErrDivideByZero   = errors.New("poly: division by the zero polynomial")
)

// ---- FpPoly ----

// FpPoly is a polynomial over F_p held as coefficients in ascending order
// of degree: coeffs[i] is the coefficient of x^i. The zero polynomial is
// represented as a single zero coefficient, never an empty slice.
type FpPoly struct {
	coeffs []fp.Elt
}

// Degree returns the polynomial's degree. The zero polynomial has degree 0,
// matching the convention used by the routines this package is grounded on.
func (p FpPoly) Degree() int {
	if len(p.coeffs) == 0 {
		return 0
	}
	return len(p.coeffs) - 1
}

// Coefficients returns a copy of the polynomial's coefficients, lowest
// degree first.
func (p FpPoly) Coefficients() []fp.Elt {
	out := make([]fp.Elt, len(p.coeffs))
	copy(out, p.coeffs)
	return out
}

func (p FpPoly) isZero() bool {
	for i := range p.coeffs {
		if !p.coeffs[i].IsZero() {
			return false
		}
	}
	return true
}

func fpStrip(c []fp.Elt) []fp.Elt {
	n := len(c)
	for n > 1 && c[n-1].IsZero() {
		n--
	}
	return c[:n]
}

// FpFromCoefficients builds a polynomial from coefficients in ascending
// degree order.
func FpFromCoefficients(coeffs []fp.Elt) (FpPoly, error) {
	if len(coeffs) == 0 {
		return FpPoly{}, ErrEmptyInput
	}
	if len(coeffs) > MaxSize {
		return FpPoly{}, ErrTooLarge
	}
	c := make([]fp.Elt, len(coeffs))
	copy(c, coeffs)
	return FpPoly{coeffs: fpStrip(c)}, nil
}

// FpFromRoots builds the monic polynomial whose roots are exactly the given
// values, via the iterated product prod_i (x - roots[i]).
func FpFromRoots(roots []fp.Elt) (FpPoly, error) {
	if len(roots) == 0 {
		return FpPoly{}, ErrEmptyInput
	}
	if len(roots) > MaxSize {
		return FpPoly{}, ErrTooLarge
	}

	result := make([]fp.Elt, 1)
	result[0].SetOne()

	for _, r := range roots {
		next := make([]fp.Elt, len(result)+1)
		var rNeg fp.Elt
		rNeg.Negate(&r, 8)
		for i, c := range result {
			var term fp.Elt
			term.Mul(&c, &rNeg)
			next[i].Add(&next[i], &term)
			next[i+1].Add(&next[i+1], &c)
		}
		result = next
	}
	return FpPoly{coeffs: result}, nil
}

// Evaluate computes p(x) via Horner's method.
func (p FpPoly) Evaluate(x fp.Elt) fp.Elt {
	var result fp.Elt
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		result.Mul(&result, &x)
		result.Add(&result, &p.coeffs[i])
	}
	return result
}

// Add returns p + other.
func (p FpPoly) Add(other FpPoly) FpPoly {
	n := len(p.coeffs)
	if len(other.coeffs) > n {
		n = len(other.coeffs)
	}
	r := make([]fp.Elt, n)
	for i := 0; i < n; i++ {
		var a, b fp.Elt
		if i < len(p.coeffs) {
			a = p.coeffs[i]
		}
		if i < len(other.coeffs) {
			b = other.coeffs[i]
		}
		r[i].Add(&a, &b)
	}
	return FpPoly{coeffs: fpStrip(r)}
}

// Sub returns p - other.
func (p FpPoly) Sub(other FpPoly) FpPoly {
	n := len(p.coeffs)
	if len(other.coeffs) > n {
		n = len(other.coeffs)
	}
	r := make([]fp.Elt, n)
	for i := 0; i < n; i++ {
		var a, b fp.Elt
		if i < len(p.coeffs) {
			a = p.coeffs[i]
		}
		if i < len(other.coeffs) {
			b = other.coeffs[i]
		}
		r[i].Sub(&a, &b)
	}
	return FpPoly{coeffs: fpStrip(r)}
}

func fpSchoolbookMul(a, b []fp.Elt) []fp.Elt {
	r := make([]fp.Elt, len(a)+len(b)-1)
	for i, ai := range a {
		if ai.IsZero() {
			continue
		}
		for j, bj := range b {
			var term fp.Elt
			term.Mul(&ai, &bj)
			r[i+j].Add(&r[i+j], &term)
		}
	}
	return r
}

func fpAddSlices(a, b []fp.Elt) []fp.Elt {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	r := make([]fp.Elt, n)
	for i := 0; i < n; i++ {
		var x, y fp.Elt
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		r[i].Add(&x, &y)
	}
	return r
}

func fpSubSlices(a, b []fp.Elt) []fp.Elt {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	r := make([]fp.Elt, n)
	for i := 0; i < n; i++ {
		var x, y fp.Elt
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		r[i].Sub(&x, &y)
	}
	return r
}

func fpKaratsubaMul(a, b []fp.Elt) []fp.Elt {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	if n <= karatsubaThreshold {
		return fpSchoolbookMul(a, b)
	}

	mid := n / 2
	aLo, aHi := fpSplit(a, mid)
	bLo, bHi := fpSplit(b, mid)

	z0 := fpKaratsubaMul(aLo, bLo)
	z2 := fpKaratsubaMul(aHi, bHi)

	aSum := fpAddSlices(aLo, aHi)
	bSum := fpAddSlices(bLo, bHi)
	z1 := fpKaratsubaMul(aSum, bSum)
	z1 = fpSubSlices(fpSubSlices(z1, z0), z2)

	result := make([]fp.Elt, len(a)+len(b)-1)
	fpAddAt(result, z0, 0)
	fpAddAt(result, z1, mid)
	fpAddAt(result, z2, 2*mid)
	return result
}

func fpSplit(a []fp.Elt, mid int) (lo, hi []fp.Elt) {
	if mid > len(a) {
		mid = len(a)
	}
	lo = a[:mid]
	hi = a[mid:]
	return
}

func fpAddAt(dst, src []fp.Elt, offset int) {
	for i, v := range src {
		dst[offset+i].Add(&dst[offset+i], &v)
	}
}

// Mul returns p * other, using schoolbook multiplication below
// karatsubaThreshold coefficients and Karatsuba above it.
func (p FpPoly) Mul(other FpPoly) FpPoly {
	if p.isZero() || other.isZero() {
		return FpPoly{coeffs: []fp.Elt{{}}}
	}
	n := len(p.coeffs)
	if len(other.coeffs) > n {
		n = len(other.coeffs)
	}
	var r []fp.Elt
	if n <= karatsubaThreshold {
		r = fpSchoolbookMul(p.coeffs, other.coeffs)
	} else {
		r = fpKaratsubaMul(p.coeffs, other.coeffs)
	}
	return FpPoly{coeffs: fpStrip(r)}
}

// DivMod computes quotient and remainder such that p = quotient*divisor +
// remainder with deg(remainder) < deg(divisor), using long division with
// inversion of divisor's leading coefficient (the divisor need not be
// monic).
func (p FpPoly) DivMod(divisor FpPoly) (quotient, remainder FpPoly, err error) {
	if divisor.isZero() {
		return FpPoly{}, FpPoly{}, ErrDivideByZero
	}

	m := divisor.Degree()
	n := p.Degree()
	if n < m || p.isZero() {
		rem := make([]fp.Elt, len(p.coeffs))
		copy(rem, p.coeffs)
		if len(rem) == 0 {
			rem = []fp.Elt{{}}
		}
		zero := []fp.Elt{{}}
		return FpPoly{coeffs: zero}, FpPoly{coeffs: fpStrip(rem)}, nil
	}

	var leadInv fp.Elt
	leadInv.Invert(&divisor.coeffs[m])

	rem := make([]fp.Elt, n+1)
	copy(rem, p.coeffs)

	q := make([]fp.Elt, n-m+1)
	for i := n - m; i >= 0; i-- {
		var coef fp.Elt
		coef.Mul(&rem[i+m], &leadInv)
		q[i] = coef
		if coef.IsZero() {
			continue
		}
		for j := 0; j <= m; j++ {
			var term fp.Elt
			term.Mul(&coef, &divisor.coeffs[j])
			rem[i+j].Sub(&rem[i+j], &term)
		}
	}

	remTail := rem[:m]
	if len(remTail) == 0 {
		remTail = []fp.Elt{{}}
	}
	return FpPoly{coeffs: fpStrip(q)}, FpPoly{coeffs: fpStrip(remTail)}, nil
}

// FpInterpolate returns the unique polynomial of degree < n passing through
// (xs[i], ys[i]) for all i, computed via the vanishing polynomial and a
// single batch inversion of the barycentric weights (prod_{j!=i}(xs[i]-xs[j])).
func FpInterpolate(xs, ys []fp.Elt) (FpPoly, error) {
	if len(xs) == 0 || len(ys) == 0 {
		return FpPoly{}, ErrEmptyInput
	}
	if len(xs) != len(ys) {
		return FpPoly{}, ErrLengthMismatch
	}
	if len(xs) > MaxSize {
		return FpPoly{}, ErrTooLarge
	}

	n := len(xs)
	vanishing, err := FpFromRoots(xs)
	if err != nil {
		return FpPoly{}, err
	}

	denom := make([]fp.Elt, n)
	for i := 0; i < n; i++ {
		denom[i].SetOne()
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			var diff fp.Elt
			diff.Sub(&xs[i], &xs[j])
			denom[i].Mul(&denom[i], &diff)
		}
	}
	weights := make([]fp.Elt, n)
	fp.BatchInvert(weights, denom)

	result := FpPoly{coeffs: []fp.Elt{{}}}
	for i := 0; i < n; i++ {
		linear := FpPoly{coeffs: []fp.Elt{negateFp(xs[i]), oneFp()}}
		qi, _, err := vanishing.DivMod(linear)
		if err != nil {
			return FpPoly{}, err
		}
		var scale fp.Elt
		scale.Mul(&ys[i], &weights[i])
		result = result.Add(qi.Scale(scale))
	}
	return result, nil
}

// Scale returns p with every coefficient multiplied by s.
func (p FpPoly) Scale(s fp.Elt) FpPoly {
	r := make([]fp.Elt, len(p.coeffs))
	for i := range p.coeffs {
		r[i].Mul(&p.coeffs[i], &s)
	}
	return FpPoly{coeffs: fpStrip(r)}
}

func negateFp(x fp.Elt) fp.Elt {
	var r fp.Elt
	r.Negate(&x, 8)
	return r
}

func oneFp() fp.Elt {
	var r fp.Elt
	r.SetOne()
	return r
}

// ---- FqPoly ----

// FqPoly is a polynomial over F_q, structurally identical to FpPoly.
type FqPoly struct {
	coeffs []fq.Elt
}

func (p FqPoly) Degree() int {
	if len(p.coeffs) == 0 {
		return 0
	}
	return len(p.coeffs) - 1
}

func (p FqPoly) Coefficients() []fq.Elt {
	out := make([]fq.Elt, len(p.coeffs))
	copy(out, p.coeffs)
	return out
}

func (p FqPoly) isZero() bool {
	for i := range p.coeffs {
		if !p.coeffs[i].IsZero() {
			return false
		}
	}
	return true
}

func fqStrip(c []fq.Elt) []fq.Elt {
	n := len(c)
	for n > 1 && c[n-1].IsZero() {
		n--
	}
	return c[:n]
}

func FqFromCoefficients(coeffs []fq.Elt) (FqPoly, error) {
	if len(coeffs) == 0 {
		return FqPoly{}, ErrEmptyInput
	}
	if len(coeffs) > MaxSize {
		return FqPoly{}, ErrTooLarge
	}
	c := make([]fq.Elt, len(coeffs))
	copy(c, coeffs)
	return FqPoly{coeffs: fqStrip(c)}, nil
}

func FqFromRoots(roots []fq.Elt) (FqPoly, error) {
	if len(roots) == 0 {
		return FqPoly{}, ErrEmptyInput
	}
	if len(roots) > MaxSize {
		return FqPoly{}, ErrTooLarge
	}

	result := make([]fq.Elt, 1)
	result[0].SetOne()

	for _, r := range roots {
		next := make([]fq.Elt, len(result)+1)
		var rNeg fq.Elt
		rNeg.Negate(&r, 8)
		for i, c := range result {
			var term fq.Elt
			term.Mul(&c, &rNeg)
			next[i].Add(&next[i], &term)
			next[i+1].Add(&next[i+1], &c)
		}
		result = next
	}
	return FqPoly{coeffs: result}, nil
}

func (p FqPoly) Evaluate(x fq.Elt) fq.Elt {
	var result fq.Elt
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		result.Mul(&result, &x)
		result.Add(&result, &p.coeffs[i])
	}
	return result
}

func (p FqPoly) Add(other FqPoly) FqPoly {
	n := len(p.coeffs)
	if len(other.coeffs) > n {
		n = len(other.coeffs)
	}
	r := make([]fq.Elt, n)
	for i := 0; i < n; i++ {
		var a, b fq.Elt
		if i < len(p.coeffs) {
			a = p.coeffs[i]
		}
		if i < len(other.coeffs) {
			b = other.coeffs[i]
		}
		r[i].Add(&a, &b)
	}
	return FqPoly{coeffs: fqStrip(r)}
}

func (p FqPoly) Sub(other FqPoly) FqPoly {
	n := len(p.coeffs)
	if len(other.coeffs) > n {
		n = len(other.coeffs)
	}
	r := make([]fq.Elt, n)
	for i := 0; i < n; i++ {
		var a, b fq.Elt
		if i < len(p.coeffs) {
			a = p.coeffs[i]
		}
		if i < len(other.coeffs) {
			b = other.coeffs[i]
		}
		r[i].Sub(&a, &b)
	}
	return FqPoly{coeffs: fqStrip(r)}
}

func fqSchoolbookMul(a, b []fq.Elt) []fq.Elt {
	r := make([]fq.Elt, len(a)+len(b)-1)
	for i, ai := range a {
		if ai.IsZero() {
			continue
		}
		for j, bj := range b {
			var term fq.Elt
			term.Mul(&ai, &bj)
			r[i+j].Add(&r[i+j], &term)
		}
	}
	return r
}

func fqAddSlices(a, b []fq.Elt) []fq.Elt {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	r := make([]fq.Elt, n)
	for i := 0; i < n; i++ {
		var x, y fq.Elt
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		r[i].Add(&x, &y)
	}
	return r
}

func fqSubSlices(a, b []fq.Elt) []fq.Elt {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	r := make([]fq.Elt, n)
	for i := 0; i < n; i++ {
		var x, y fq.Elt
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		r[i].Sub(&x, &y)
	}
	return r
}

func fqKaratsubaMul(a, b []fq.Elt) []fq.Elt {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	if n <= karatsubaThreshold {
		return fqSchoolbookMul(a, b)
	}

	mid := n / 2
	aLo, aHi := fqSplit(a, mid)
	bLo, bHi := fqSplit(b, mid)

	z0 := fqKaratsubaMul(aLo, bLo)
	z2 := fqKaratsubaMul(aHi, bHi)

	aSum := fqAddSlices(aLo, aHi)
	bSum := fqAddSlices(bLo, bHi)
	z1 := fqKaratsubaMul(aSum, bSum)
	z1 = fqSubSlices(fqSubSlices(z1, z0), z2)

	result := make([]fq.Elt, len(a)+len(b)-1)
	fqAddAt(result, z0, 0)
	fqAddAt(result, z1, mid)
	fqAddAt(result, z2, 2*mid)
	return result
}

func fqSplit(a []fq.Elt, mid int) (lo, hi []fq.Elt) {
	if mid > len(a) {
		mid = len(a)
	}
	lo = a[:mid]
	hi = a[mid:]
	return
}

func fqAddAt(dst, src []fq.Elt, offset int) {
	for i, v := range src {
		dst[offset+i].Add(&dst[offset+i], &v)
	}
}

func (p FqPoly) Mul(other FqPoly) FqPoly {
	if p.isZero() || other.isZero() {
		return FqPoly{coeffs: []fq.Elt{{}}}
	}
	n := len(p.coeffs)
	if len(other.coeffs) > n {
		n = len(other.coeffs)
	}
	var r []fq.Elt
	if n <= karatsubaThreshold {
		r = fqSchoolbookMul(p.coeffs, other.coeffs)
	} else {
		r = fqKaratsubaMul(p.coeffs, other.coeffs)
	}
	return FqPoly{coeffs: fqStrip(r)}
}

func (p FqPoly) DivMod(divisor FqPoly) (quotient, remainder FqPoly, err error) {
	if divisor.isZero() {
		return FqPoly{}, FqPoly{}, ErrDivideByZero
	}

	m := divisor.Degree()
	n := p.Degree()
	if n < m || p.isZero() {
		rem := make([]fq.Elt, len(p.coeffs))
		copy(rem, p.coeffs)
		if len(rem) == 0 {
			rem = []fq.Elt{{}}
		}
		zero := []fq.Elt{{}}
		return FqPoly{coeffs: zero}, FqPoly{coeffs: fqStrip(rem)}, nil
	}

	var leadInv fq.Elt
	leadInv.Invert(&divisor.coeffs[m])

	rem := make([]fq.Elt, n+1)
	copy(rem, p.coeffs)

	q := make([]fq.Elt, n-m+1)
	for i := n - m; i >= 0; i-- {
		var coef fq.Elt
		coef.Mul(&rem[i+m], &leadInv)
		q[i] = coef
		if coef.IsZero() {
			continue
		}
		for j := 0; j <= m; j++ {
			var term fq.Elt
			term.Mul(&coef, &divisor.coeffs[j])
			rem[i+j].Sub(&rem[i+j], &term)
		}
	}

	remTail := rem[:m]
	if len(remTail) == 0 {
		remTail = []fq.Elt{{}}
	}
	return FqPoly{coeffs: fqStrip(q)}, FqPoly{coeffs: fqStrip(remTail)}, nil
}

func FqInterpolate(xs, ys []fq.Elt) (FqPoly, error) {
	if len(xs) == 0 || len(ys) == 0 {
		return FqPoly{}, ErrEmptyInput
	}
	if len(xs) != len(ys) {
		return FqPoly{}, ErrLengthMismatch
	}
	if len(xs) > MaxSize {
		return FqPoly{}, ErrTooLarge
	}

	n := len(xs)
	vanishing, err := FqFromRoots(xs)
	if err != nil {
		return FqPoly{}, err
	}

	denom := make([]fq.Elt, n)
	for i := 0; i < n; i++ {
		denom[i].SetOne()
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			var diff fq.Elt
			diff.Sub(&xs[i], &xs[j])
			denom[i].Mul(&denom[i], &diff)
		}
	}
	weights := make([]fq.Elt, n)
	fq.BatchInvert(weights, denom)

	result := FqPoly{coeffs: []fq.Elt{{}}}
	for i := 0; i < n; i++ {
		linear := FqPoly{coeffs: []fq.Elt{negateFq(xs[i]), oneFq()}}
		qi, _, err := vanishing.DivMod(linear)
		if err != nil {
			return FqPoly{}, err
		}
		var scale fq.Elt
		scale.Mul(&ys[i], &weights[i])
		result = result.Add(qi.Scale(scale))
	}
	return result, nil
}

// Scale returns p with every coefficient multiplied by s.
func (p FqPoly) Scale(s fq.Elt) FqPoly {
	r := make([]fq.Elt, len(p.coeffs))
	for i := range p.coeffs {
		r[i].Mul(&p.coeffs[i], &s)
	}
	return FqPoly{coeffs: fqStrip(r)}
}

func negateFq(x fq.Elt) fq.Elt {
	var r fq.Elt
	r.Negate(&x, 8)
	return r
}

func oneFq() fq.Elt {
	var r fq.Elt
	r.SetOne()
	return r
}
