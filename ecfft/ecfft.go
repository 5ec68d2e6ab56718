// Package ecfft implements the evaluation/coefficient conversion (ENTER,
// EXIT, EXTEND, REDUCE) and polynomial multiplication (MULTIPLY) operations
// an elliptic-curve FFT exposes, for both F_p and F_q.
//
// F_p and F_q lack large smooth-order subgroups of F*, so classical FFT
// butterflies are unavailable; a real ECFFT recovers a recursive 2-to-1
// structure from a 2-isogeny chain on an auxiliary curve instead. This
// package implements the direct O(n^2) Horner/Newton variant, which is
// adequate for the domain sizes small-n use cases need; the Level type's
// butterfly matrices are carried alongside so a future recursive-butterfly
// upgrade has somewhere to live, but ENTER/EXIT/MULTIPLY below do not read
// them.
package ecfft

import (
	"sync"

	"github.com/gibme-c/helioselene-sub001/fp"
	"github.com/gibme-c/helioselene-sub001/fq"
	"github.com/gibme-c/helioselene-sub001/poly"
)

// MaxLogN bounds the domain size N = 2^MaxLogN any context can serve.
const MaxLogN = 16

// MaxN is the largest domain size any context can serve.
const MaxN = 1 << MaxLogN

// ---- F_p ----

// FpLevel holds one recursion level's domain and the forward/inverse 2x2
// butterfly matrices built from consecutive domain pairs. Present to match
// the ECFFT context's documented data shape and the O(n log^2 n)
// recursive-butterfly upgrade path; ENTER/EXIT/MULTIPLY below use the
// direct O(n^2) variant and do not read these matrices.
type FpLevel struct {
	Domain  []fp.Elt
	Forward [][2][2]fp.Elt
	Inverse [][2][2]fp.Elt
}

// FpContext is the owned bundle of precomputed coset and level data for
// F_p: log_n, domain size N = 2^log_n, and one FpLevel per recursion level.
type FpContext struct {
	LogN   int
	N      int
	Coset  []fp.Elt
	Levels []FpLevel
}

var (
	fpCtx     *FpContext
	fpCtxOnce sync.Once
)

// FpContextInstance returns the process-wide F_p ECFFT context, building it
// on the first call; later calls return the same instance.
func FpContextInstance() *FpContext {
	fpCtxOnce.Do(func() {
		fpCtx = buildFpContext(MaxLogN)
	})
	return fpCtx
}

// buildFpContext constructs a context with domain size 2^logN. The coset
// (the evaluation set's x-coordinates) is configuration data: a real
// deployment embeds bytes describing a coset on an auxiliary curve chosen
// offline by a parameter-search tool this package does not implement; here
// it is the first N positive integers lifted into F_p, which is sufficient
// for ENTER/EXIT correctness (Horner evaluation and Newton interpolation
// only require N distinct points) but is not an actual 2-isogeny-generated
// coset. Likewise each level's domain here is a truncation of the level
// above rather than a genuine isogeny image.
func buildFpContext(logN int) *FpContext {
	n := 1 << uint(logN)
	coset := make([]fp.Elt, n)
	for i := range coset {
		coset[i].SetUint64(uint64(i + 1))
	}

	levels := make([]FpLevel, logN)
	domain := coset
	for k := 0; k < logN; k++ {
		half := len(domain) / 2
		forward := make([][2][2]fp.Elt, half)
		inverse := make([][2][2]fp.Elt, half)
		for i := 0; i < half; i++ {
			x0, x1 := domain[2*i], domain[2*i+1]
			forward[i][0][0].SetOne()
			forward[i][0][1].SetOne()
			forward[i][1][0] = x0
			forward[i][1][1] = x1
			inverse[i] = invert2x2Fp(forward[i])
		}

		levelDomain := make([]fp.Elt, len(domain))
		copy(levelDomain, domain)
		levels[k] = FpLevel{Domain: levelDomain, Forward: forward, Inverse: inverse}

		next := make([]fp.Elt, half)
		for i := 0; i < half; i++ {
			next[i] = domain[2*i]
		}
		domain = next
	}

	return &FpContext{LogN: logN, N: n, Coset: coset, Levels: levels}
}

// invert2x2Fp inverts the 2x2 Vandermonde matrix [[1,1],[x0,x1]] built from
// a domain pair, used for the (unused by ENTER/EXIT) butterfly-matrix
// upgrade path.
func invert2x2Fp(m [2][2]fp.Elt) [2][2]fp.Elt {
	var det fp.Elt
	det.Sub(&m[1][1], &m[1][0])
	var detInv fp.Elt
	detInv.Invert(&det)

	var negOne fp.Elt
	negOne.SetOne()
	negOne.Negate(&negOne, 8)

	var negX0 fp.Elt
	negX0.Negate(&m[1][0], 8)

	var inv [2][2]fp.Elt
	inv[0][0].Mul(&m[1][1], &detInv)
	inv[0][1].Mul(&negOne, &detInv)
	inv[1][0].Mul(&negX0, &detInv)
	inv[1][1] = detInv
	return inv
}

func hornerFp(coeffs []fp.Elt, x fp.Elt) fp.Elt {
	var result fp.Elt
	for i := len(coeffs) - 1; i >= 0; i-- {
		result.Mul(&result, &x)
		result.Add(&result, &coeffs[i])
	}
	return result
}

func negateFpElt(x fp.Elt) fp.Elt {
	var r fp.Elt
	r.Negate(&x, 8)
	return r
}

func oneFpElt() fp.Elt {
	var r fp.Elt
	r.SetOne()
	return r
}

// FpEnter evaluates coeffs (coefficients, ascending degree) at the context's
// first n domain points via direct Horner evaluation, O(n^2). n > ctx.N is
// the documented sentinel case: returns nil (result-length 0) rather than
// an error.
func FpEnter(ctx *FpContext, coeffs []fp.Elt, n int) []fp.Elt {
	if n > ctx.N {
		return nil
	}
	out := make([]fp.Elt, n)
	for i := 0; i < n; i++ {
		out[i] = hornerFp(coeffs, ctx.Coset[i])
	}
	return out
}

// FpExit recovers the n coefficients of the polynomial of degree < n that
// takes the given n values at the context's first n domain points, via
// Newton divided differences followed by Newton-to-monomial conversion.
// Each divided-difference level inverts its whole column of gaps in a
// single batch inversion. n > ctx.N or too few evals returns nil.
func FpExit(ctx *FpContext, evals []fp.Elt, n int) []fp.Elt {
	if n > ctx.N || len(evals) < n {
		return nil
	}
	if n == 0 {
		return []fp.Elt{}
	}

	xs := ctx.Coset[:n]
	dd := make([]fp.Elt, n)
	copy(dd, evals[:n])

	for level := 1; level < n; level++ {
		gapCount := n - level
		denom := make([]fp.Elt, gapCount)
		for idx := 0; idx < gapCount; idx++ {
			i := n - 1 - idx
			denom[idx].Sub(&xs[i], &xs[i-level])
		}
		inv := make([]fp.Elt, gapCount)
		fp.BatchInvert(inv, denom)
		for idx := 0; idx < gapCount; idx++ {
			i := n - 1 - idx
			var diff fp.Elt
			diff.Sub(&dd[i], &dd[i-1])
			dd[i].Mul(&diff, &inv[idx])
		}
	}

	result, err := poly.FpFromCoefficients([]fp.Elt{dd[n-1]})
	if err != nil {
		panic("ecfft: unreachable: single-coefficient FpFromCoefficients failed")
	}
	for i := n - 2; i >= 0; i-- {
		linear, _ := poly.FpFromCoefficients([]fp.Elt{negateFpElt(xs[i]), oneFpElt()})
		result = result.Mul(linear)
		constant, _ := poly.FpFromCoefficients([]fp.Elt{dd[i]})
		result = result.Add(constant)
	}

	out := result.Coefficients()
	if len(out) < n {
		padded := make([]fp.Elt, n)
		copy(padded, out)
		out = padded
	}
	return out
}

// FpExtend re-evaluates the polynomial underlying nFrom evaluations at nTo
// domain points (nTo > nFrom): EXIT then ENTER.
func FpExtend(ctx *FpContext, evals []fp.Elt, nFrom, nTo int) []fp.Elt {
	coeffs := FpExit(ctx, evals, nFrom)
	if coeffs == nil {
		return nil
	}
	return FpEnter(ctx, coeffs, nTo)
}

// FpReduce re-evaluates the polynomial underlying nFrom evaluations (whose
// true degree is < nTo) at nTo domain points (nTo < nFrom): EXIT then ENTER,
// identical in implementation to FpExtend — the direction is a caller
// convention, not a different algorithm.
func FpReduce(ctx *FpContext, evals []fp.Elt, nFrom, nTo int) []fp.Elt {
	return FpExtend(ctx, evals, nFrom, nTo)
}

// FpMultiply computes the coefficient-domain product of a and b: zero-pads
// to n = next power of two >= len(a)+len(b)-1, ENTERs both, multiplies
// pointwise, EXITs. Requires n <= ctx.N; otherwise returns nil.
func FpMultiply(ctx *FpContext, a, b []fp.Elt) []fp.Elt {
	n := nextPow2(len(a) + len(b) - 1)
	if n > ctx.N {
		return nil
	}
	evalsA := FpEnter(ctx, a, n)
	evalsB := FpEnter(ctx, b, n)
	product := make([]fp.Elt, n)
	for i := 0; i < n; i++ {
		product[i].Mul(&evalsA[i], &evalsB[i])
	}
	return FpExit(ctx, product, n)
}

// ---- F_q ----

type FqLevel struct {
	Domain  []fq.Elt
	Forward [][2][2]fq.Elt
	Inverse [][2][2]fq.Elt
}

type FqContext struct {
	LogN   int
	N      int
	Coset  []fq.Elt
	Levels []FqLevel
}

var (
	fqCtx     *FqContext
	fqCtxOnce sync.Once
)

func FqContextInstance() *FqContext {
	fqCtxOnce.Do(func() {
		fqCtx = buildFqContext(MaxLogN)
	})
	return fqCtx
}

func buildFqContext(logN int) *FqContext {
	n := 1 << uint(logN)
	coset := make([]fq.Elt, n)
	for i := range coset {
		coset[i].SetUint64(uint64(i + 1))
	}

	levels := make([]FqLevel, logN)
	domain := coset
	for k := 0; k < logN; k++ {
		half := len(domain) / 2
		forward := make([][2][2]fq.Elt, half)
		inverse := make([][2][2]fq.Elt, half)
		for i := 0; i < half; i++ {
			x0, x1 := domain[2*i], domain[2*i+1]
			forward[i][0][0].SetOne()
			forward[i][0][1].SetOne()
			forward[i][1][0] = x0
			forward[i][1][1] = x1
			inverse[i] = invert2x2Fq(forward[i])
		}

		levelDomain := make([]fq.Elt, len(domain))
		copy(levelDomain, domain)
		levels[k] = FqLevel{Domain: levelDomain, Forward: forward, Inverse: inverse}

		next := make([]fq.Elt, half)
		for i := 0; i < half; i++ {
			next[i] = domain[2*i]
		}
		domain = next
	}

	return &FqContext{LogN: logN, N: n, Coset: coset, Levels: levels}
}

func invert2x2Fq(m [2][2]fq.Elt) [2][2]fq.Elt {
	var det fq.Elt
	det.Sub(&m[1][1], &m[1][0])
	var detInv fq.Elt
	detInv.Invert(&det)

	var negOne fq.Elt
	negOne.SetOne()
	negOne.Negate(&negOne, 8)

	var negX0 fq.Elt
	negX0.Negate(&m[1][0], 8)

	var inv [2][2]fq.Elt
	inv[0][0].Mul(&m[1][1], &detInv)
	inv[0][1].Mul(&negOne, &detInv)
	inv[1][0].Mul(&negX0, &detInv)
	inv[1][1] = detInv
	return inv
}

func hornerFq(coeffs []fq.Elt, x fq.Elt) fq.Elt {
	var result fq.Elt
	for i := len(coeffs) - 1; i >= 0; i-- {
		result.Mul(&result, &x)
		result.Add(&result, &coeffs[i])
	}
	return result
}

func negateFqElt(x fq.Elt) fq.Elt {
	var r fq.Elt
	r.Negate(&x, 8)
	return r
}

func oneFqElt() fq.Elt {
	var r fq.Elt
	r.SetOne()
	return r
}

func FqEnter(ctx *FqContext, coeffs []fq.Elt, n int) []fq.Elt {
	if n > ctx.N {
		return nil
	}
	out := make([]fq.Elt, n)
	for i := 0; i < n; i++ {
		out[i] = hornerFq(coeffs, ctx.Coset[i])
	}
	return out
}

func FqExit(ctx *FqContext, evals []fq.Elt, n int) []fq.Elt {
	if n > ctx.N || len(evals) < n {
		return nil
	}
	if n == 0 {
		return []fq.Elt{}
	}

	xs := ctx.Coset[:n]
	dd := make([]fq.Elt, n)
	copy(dd, evals[:n])

	for level := 1; level < n; level++ {
		gapCount := n - level
		denom := make([]fq.Elt, gapCount)
		for idx := 0; idx < gapCount; idx++ {
			i := n - 1 - idx
			denom[idx].Sub(&xs[i], &xs[i-level])
		}
		inv := make([]fq.Elt, gapCount)
		fq.BatchInvert(inv, denom)
		for idx := 0; idx < gapCount; idx++ {
			i := n - 1 - idx
			var diff fq.Elt
			diff.Sub(&dd[i], &dd[i-1])
			dd[i].Mul(&diff, &inv[idx])
		}
	}

	result, err := poly.FqFromCoefficients([]fq.Elt{dd[n-1]})
	if err != nil {
		panic("ecfft: unreachable: single-coefficient FqFromCoefficients failed")
	}
	for i := n - 2; i >= 0; i-- {
		linear, _ := poly.FqFromCoefficients([]fq.Elt{negateFqElt(xs[i]), oneFqElt()})
		result = result.Mul(linear)
		constant, _ := poly.FqFromCoefficients([]fq.Elt{dd[i]})
		result = result.Add(constant)
	}

	out := result.Coefficients()
	if len(out) < n {
		padded := make([]fq.Elt, n)
		copy(padded, out)
		out = padded
	}
	return out
}

func FqExtend(ctx *FqContext, evals []fq.Elt, nFrom, nTo int) []fq.Elt {
	coeffs := FqExit(ctx, evals, nFrom)
	if coeffs == nil {
		return nil
	}
	return FqEnter(ctx, coeffs, nTo)
}

func FqReduce(ctx *FqContext, evals []fq.Elt, nFrom, nTo int) []fq.Elt {
	return FqExtend(ctx, evals, nFrom, nTo)
}

func FqMultiply(ctx *FqContext, a, b []fq.Elt) []fq.Elt {
	n := nextPow2(len(a) + len(b) - 1)
	if n > ctx.N {
		return nil
	}
	evalsA := FqEnter(ctx, a, n)
	evalsB := FqEnter(ctx, b, n)
	product := make([]fq.Elt, n)
	for i := 0; i < n; i++ {
		product[i].Mul(&evalsA[i], &evalsB[i])
	}
	return FqExit(ctx, product, n)
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
