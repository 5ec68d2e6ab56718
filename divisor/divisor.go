// Package divisor implements evaluation-domain elliptic-curve divisors:
// the function-field representative D = a(x) - y*b(x) of a divisor on
// Helios or Selene, sampled at N fixed evaluation points, with merge,
// tree-reduce, and scalar-to-divisor operations built on top.
package divisor

import (
	"sync"

	"github.com/klauspost/cpuid/v2"

	"github.com/gibme-c/helioselene-sub001/fp"
	"github.com/gibme-c/helioselene-sub001/fq"
	"github.com/gibme-c/helioselene-sub001/helios"
	"github.com/gibme-c/helioselene-sub001/poly"
	"github.com/gibme-c/helioselene-sub001/selene"
	"github.com/gibme-c/helioselene-sub001/vecfp"
	"github.com/gibme-c/helioselene-sub001/vecfq"
)

// N is the fixed evaluation-point count every divisor here is sampled at.
// Divisible by both the AVX2 (4) and IFMA (8) merge-kernel widths, so the
// vectorized merge kernels below never need a scalar remainder loop.
const N = 256

// mergeWidth names the lane width the private merge-kernel dispatch selected
// at init time: one lane (scalar fallback), four lanes (AVX2 tier), or eight
// lanes (AVX-512 IFMA tier) — the same CPUID-driven tier selection dispatch
// uses for scalar-mul and MSM, kept private to this package since divisor
// merge has its own dedicated kernels rather than sharing dispatch's table.
type mergeWidth int

const (
	mergeScalar mergeWidth = 1
	mergeAVX2   mergeWidth = 4
	mergeIFMA   mergeWidth = 8
)

var (
	selectedMergeWidth     mergeWidth
	selectedMergeWidthOnce sync.Once
)

func detectMergeWidth() mergeWidth {
	switch {
	case cpuid.CPU.Has(cpuid.AVX512IFMA):
		return mergeIFMA
	case cpuid.CPU.Has(cpuid.AVX2):
		return mergeAVX2
	default:
		return mergeScalar
	}
}

// currentMergeWidth returns the process-wide merge width, detecting it on
// first call.
func currentMergeWidth() mergeWidth {
	selectedMergeWidthOnce.Do(func() {
		selectedMergeWidth = detectMergeWidth()
	})
	return selectedMergeWidth
}

// ---- F_p / Helios ----

// HeliosDivisor is a divisor's a(x), b(x) representative sampled at the
// first N evaluation points (x = 0..N-1).
type HeliosDivisor struct {
	A []fp.Elt
	B []fp.Elt
}

// HeliosDivisorWithSum pairs an evaluation-domain divisor with the EC-point
// sum of the points it represents, carried alongside during tree-reduce.
type HeliosDivisorWithSum struct {
	Divisor *HeliosDivisor
	Sum     helios.Jacobian
}

type fpDivisorContext struct {
	Xs        []fp.Elt
	Curve     []fp.Elt
	Weights   []fp.Elt
	Vanishing poly.FpPoly
}

var (
	fpDivCtx     *fpDivisorContext
	fpDivCtxOnce sync.Once
)

func fpContext() *fpDivisorContext {
	fpDivCtxOnce.Do(func() {
		fpDivCtx = buildFpDivisorContext()
	})
	return fpDivCtx
}

// buildFpDivisorContext precomputes curve(i) = i^3 - 3i + B for i = 0..N-1
// and the barycentric weights w_j = (-1)^(N-1-j) / (j!*(N-1-j)!) for the
// fixed equally-spaced domain 0..N-1, using one batch inversion of all the
// factorial-product denominators.
func buildFpDivisorContext() *fpDivisorContext {
	xs := make([]fp.Elt, N)
	curve := make([]fp.Elt, N)
	for i := 0; i < N; i++ {
		xs[i].SetUint64(uint64(i))
		curve[i] = heliosCurveEquation(xs[i])
	}

	factorial := make([]fp.Elt, N)
	factorial[0].SetOne()
	for k := 1; k < N; k++ {
		var kk fp.Elt
		kk.SetUint64(uint64(k))
		factorial[k].Mul(&factorial[k-1], &kk)
	}

	denom := make([]fp.Elt, N)
	for j := 0; j < N; j++ {
		denom[j].Mul(&factorial[j], &factorial[N-1-j])
	}
	invDenom := make([]fp.Elt, N)
	fp.BatchInvert(invDenom, denom)

	weights := make([]fp.Elt, N)
	for j := 0; j < N; j++ {
		w := invDenom[j]
		if (N-1-j)%2 != 0 {
			w.Negate(&w, 8)
		}
		weights[j] = w
	}

	vanishing, err := poly.FpFromRoots(xs)
	if err != nil {
		panic("divisor: unreachable: vanishing polynomial construction failed")
	}

	return &fpDivisorContext{Xs: xs, Curve: curve, Weights: weights, Vanishing: vanishing}
}

func heliosCurveEquation(x fp.Elt) fp.Elt {
	var xsq, xcubed fp.Elt
	xsq.Square(&x)
	xcubed.Mul(&xsq, &x)
	threeX := x
	threeX.MulSmall(3)
	var g fp.Elt
	g.Sub(&xcubed, &threeX)
	g.Add(&g, &helios.B)
	return g
}

// NewHeliosDivisorFromPoint builds the single-point divisor for P: a(x) and
// b(x) are the constants p_y^2 and p_y at every evaluation point.
func NewHeliosDivisorFromPoint(p *helios.Affine) *HeliosDivisor {
	var py2 fp.Elt
	py2.Square(&p.Y)

	a := make([]fp.Elt, N)
	b := make([]fp.Elt, N)
	for i := 0; i < N; i++ {
		a[i] = py2
		b[i] = p.Y
	}
	return &HeliosDivisor{A: a, B: b}
}

// MergeHelios combines two divisors' supports via the function-field
// product: result.a(x) = a1(x)a2(x) + curve(x)b1(x)b2(x),
// result.b(x) = a1(x)b2(x) + a2(x)b1(x), evaluated pointwise at every N.
// The inner kernel is chosen by currentMergeWidth(): scalar, 4-lane, or
// 8-lane, all producing identical results.
func MergeHelios(d1, d2 *HeliosDivisor) *HeliosDivisor {
	ctx := fpContext()
	switch currentMergeWidth() {
	case mergeIFMA:
		return mergeHeliosVec8(d1, d2, ctx)
	case mergeAVX2:
		return mergeHeliosVec4(d1, d2, ctx)
	default:
		return mergeHeliosScalar(d1, d2, ctx)
	}
}

func mergeHeliosScalar(d1, d2 *HeliosDivisor, ctx *fpDivisorContext) *HeliosDivisor {
	a := make([]fp.Elt, N)
	b := make([]fp.Elt, N)
	for i := 0; i < N; i++ {
		var a1a2, b1b2, curveB1B2 fp.Elt
		a1a2.Mul(&d1.A[i], &d2.A[i])
		b1b2.Mul(&d1.B[i], &d2.B[i])
		curveB1B2.Mul(&ctx.Curve[i], &b1b2)
		a[i].Add(&a1a2, &curveB1B2)

		var a1b2, a2b1 fp.Elt
		a1b2.Mul(&d1.A[i], &d2.B[i])
		a2b1.Mul(&d2.A[i], &d1.B[i])
		b[i].Add(&a1b2, &a2b1)
	}
	return &HeliosDivisor{A: a, B: b}
}

func mergeHeliosVec4(d1, d2 *HeliosDivisor, ctx *fpDivisorContext) *HeliosDivisor {
	a := make([]fp.Elt, N)
	b := make([]fp.Elt, N)
	for base := 0; base < N; base += 4 {
		a1 := vecfp.Pack4(d1.A[base], d1.A[base+1], d1.A[base+2], d1.A[base+3])
		a2 := vecfp.Pack4(d2.A[base], d2.A[base+1], d2.A[base+2], d2.A[base+3])
		b1 := vecfp.Pack4(d1.B[base], d1.B[base+1], d1.B[base+2], d1.B[base+3])
		b2 := vecfp.Pack4(d2.B[base], d2.B[base+1], d2.B[base+2], d2.B[base+3])
		curveVec := vecfp.Pack4(ctx.Curve[base], ctx.Curve[base+1], ctx.Curve[base+2], ctx.Curve[base+3])

		var a1a2, b1b2, curveB1B2, aOut vecfp.Vec4
		a1a2.Mul(&a1, &a2)
		b1b2.Mul(&b1, &b2)
		curveB1B2.Mul(&curveVec, &b1b2)
		aOut.Add(&a1a2, &curveB1B2)

		var a1b2, a2b1, bOut vecfp.Vec4
		a1b2.Mul(&a1, &b2)
		a2b1.Mul(&a2, &b1)
		bOut.Add(&a1b2, &a2b1)

		for lane := 0; lane < 4; lane++ {
			a[base+lane] = aOut.Extract(lane)
			b[base+lane] = bOut.Extract(lane)
		}
	}
	return &HeliosDivisor{A: a, B: b}
}

func mergeHeliosVec8(d1, d2 *HeliosDivisor, ctx *fpDivisorContext) *HeliosDivisor {
	a := make([]fp.Elt, N)
	b := make([]fp.Elt, N)
	for base := 0; base < N; base += 8 {
		var a1Lanes, a2Lanes, b1Lanes, b2Lanes, curveLanes [8]fp.Elt
		copy(a1Lanes[:], d1.A[base:base+8])
		copy(a2Lanes[:], d2.A[base:base+8])
		copy(b1Lanes[:], d1.B[base:base+8])
		copy(b2Lanes[:], d2.B[base:base+8])
		copy(curveLanes[:], ctx.Curve[base:base+8])

		a1 := vecfp.Pack8(a1Lanes)
		a2 := vecfp.Pack8(a2Lanes)
		b1 := vecfp.Pack8(b1Lanes)
		b2 := vecfp.Pack8(b2Lanes)
		curveVec := vecfp.Pack8(curveLanes)

		var a1a2, b1b2, curveB1B2, aOut vecfp.Vec8
		a1a2.Mul(&a1, &a2)
		b1b2.Mul(&b1, &b2)
		curveB1B2.Mul(&curveVec, &b1b2)
		aOut.Add(&a1a2, &curveB1B2)

		var a1b2, a2b1, bOut vecfp.Vec8
		a1b2.Mul(&a1, &b2)
		a2b1.Mul(&a2, &b1)
		bOut.Add(&a1b2, &a2b1)

		for lane := 0; lane < 8; lane++ {
			a[base+lane] = aOut.Extract(lane)
			b[base+lane] = bOut.Extract(lane)
		}
	}
	return &HeliosDivisor{A: a, B: b}
}

// TreeReduceHelios merges a set of point-wise divisors (and their EC-point
// sums) pairwise, carrying any unpaired leaf forward unchanged, until one
// divisor/sum pair remains. This generalizes a power-of-two binary merge
// tree to an arbitrary leaf count, since the Hamming weight driving
// ScalarToDivisorHelios need not be a power of two.
func TreeReduceHelios(leaves []HeliosDivisorWithSum) HeliosDivisorWithSum {
	level := leaves
	for len(level) > 1 {
		next := make([]HeliosDivisorWithSum, 0, (len(level)+1)/2)
		for i := 0; i+1 < len(level); i += 2 {
			merged := MergeHelios(level[i].Divisor, level[i+1].Divisor)
			var sum helios.Jacobian
			helios.SafeAdd(&sum, &level[i].Sum, &level[i+1].Sum)
			next = append(next, HeliosDivisorWithSum{Divisor: merged, Sum: sum})
		}
		if len(level)%2 == 1 {
			next = append(next, level[len(level)-1])
		}
		level = next
	}
	return level[0]
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

func evalsToPolyFp(ctx *fpDivisorContext, ys []fp.Elt) poly.FpPoly {
	result, err := poly.FpFromCoefficients([]fp.Elt{{}})
	if err != nil {
		panic("divisor: unreachable: zero polynomial construction failed")
	}
	for i := 0; i < N; i++ {
		linear, _ := poly.FpFromCoefficients([]fp.Elt{negateFpElt(ctx.Xs[i]), oneFpElt()})
		quotient, _, err := ctx.Vanishing.DivMod(linear)
		if err != nil {
			panic("divisor: unreachable: division by a linear factor failed")
		}
		var scale fp.Elt
		scale.Mul(&ys[i], &ctx.Weights[i])
		result = result.Add(quotient.Scale(scale))
	}
	return result
}

// EvalDivisorToPolyHelios converts an evaluation-domain divisor to its
// coefficient-domain representation, calling the interpolation step twice
// (once for a, once for b) as eval_divisor_to_divisor describes.
func EvalDivisorToPolyHelios(d *HeliosDivisor) (poly.FpPoly, poly.FpPoly) {
	ctx := fpContext()
	return evalsToPolyFp(ctx, d.A), evalsToPolyFp(ctx, d.B)
}

// ScalarToDivisorHelios builds the divisor of a multiset of one copy of P
// per set bit of k: a constant-time branchless scan walks all 256 bit
// positions of k (no early exit), collecting one copy of P per set bit;
// those copies are tree-reduced into a single divisor and EC-point sum.
// The Hamming weight of k is observable through the output divisor's
// degree and the number of points summed — this is documented and
// accepted, since output degree is public.
func ScalarToDivisorHelios(k *fq.Elt, p *helios.Affine) (poly.FpPoly, poly.FpPoly, helios.Jacobian) {
	var kBytes [32]byte
	k.Bytes(kBytes[:])
	defer clearBytes(kBytes[:])

	var pj helios.Jacobian
	pj.FromAffine(p)

	leaves := make([]HeliosDivisorWithSum, 0, 256)
	for bitPos := 0; bitPos < 256; bitPos++ {
		byteIdx := bitPos / 8
		bitIdx := uint(bitPos % 8)
		bit := (kBytes[byteIdx] >> bitIdx) & 1
		if bit == 1 {
			leaves = append(leaves, HeliosDivisorWithSum{
				Divisor: NewHeliosDivisorFromPoint(p),
				Sum:     pj,
			})
		}
	}

	if len(leaves) == 0 {
		a := make([]fp.Elt, N)
		b := make([]fp.Elt, N)
		var identity helios.Jacobian
		identity.Identity()
		aPoly, bPoly := EvalDivisorToPolyHelios(&HeliosDivisor{A: a, B: b})
		return aPoly, bPoly, identity
	}
	if len(leaves) == 1 {
		aPoly, bPoly := EvalDivisorToPolyHelios(leaves[0].Divisor)
		return aPoly, bPoly, leaves[0].Sum
	}

	root := TreeReduceHelios(leaves)
	aPoly, bPoly := EvalDivisorToPolyHelios(root.Divisor)
	return aPoly, bPoly, root.Sum
}

func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ---- F_q / Selene ----

type SeleneDivisor struct {
	A []fq.Elt
	B []fq.Elt
}

type SeleneDivisorWithSum struct {
	Divisor *SeleneDivisor
	Sum     selene.Jacobian
}

type fqDivisorContext struct {
	Xs        []fq.Elt
	Curve     []fq.Elt
	Weights   []fq.Elt
	Vanishing poly.FqPoly
}

var (
	fqDivCtx     *fqDivisorContext
	fqDivCtxOnce sync.Once
)

func fqContext() *fqDivisorContext {
	fqDivCtxOnce.Do(func() {
		fqDivCtx = buildFqDivisorContext()
	})
	return fqDivCtx
}

func buildFqDivisorContext() *fqDivisorContext {
	xs := make([]fq.Elt, N)
	curve := make([]fq.Elt, N)
	for i := 0; i < N; i++ {
		xs[i].SetUint64(uint64(i))
		curve[i] = seleneCurveEquation(xs[i])
	}

	factorial := make([]fq.Elt, N)
	factorial[0].SetOne()
	for k := 1; k < N; k++ {
		var kk fq.Elt
		kk.SetUint64(uint64(k))
		factorial[k].Mul(&factorial[k-1], &kk)
	}

	denom := make([]fq.Elt, N)
	for j := 0; j < N; j++ {
		denom[j].Mul(&factorial[j], &factorial[N-1-j])
	}
	invDenom := make([]fq.Elt, N)
	fq.BatchInvert(invDenom, denom)

	weights := make([]fq.Elt, N)
	for j := 0; j < N; j++ {
		w := invDenom[j]
		if (N-1-j)%2 != 0 {
			w.Negate(&w, 8)
		}
		weights[j] = w
	}

	vanishing, err := poly.FqFromRoots(xs)
	if err != nil {
		panic("divisor: unreachable: vanishing polynomial construction failed")
	}

	return &fqDivisorContext{Xs: xs, Curve: curve, Weights: weights, Vanishing: vanishing}
}

func seleneCurveEquation(x fq.Elt) fq.Elt {
	var xsq, xcubed fq.Elt
	xsq.Square(&x)
	xcubed.Mul(&xsq, &x)
	threeX := x
	threeX.MulSmall(3)
	var g fq.Elt
	g.Sub(&xcubed, &threeX)
	g.Add(&g, &selene.B)
	return g
}

func NewSeleneDivisorFromPoint(p *selene.Affine) *SeleneDivisor {
	var py2 fq.Elt
	py2.Square(&p.Y)

	a := make([]fq.Elt, N)
	b := make([]fq.Elt, N)
	for i := 0; i < N; i++ {
		a[i] = py2
		b[i] = p.Y
	}
	return &SeleneDivisor{A: a, B: b}
}

// MergeSelene is MergeHelios's structural mirror over F_q.
func MergeSelene(d1, d2 *SeleneDivisor) *SeleneDivisor {
	ctx := fqContext()
	switch currentMergeWidth() {
	case mergeIFMA:
		return mergeSeleneVec8(d1, d2, ctx)
	case mergeAVX2:
		return mergeSeleneVec4(d1, d2, ctx)
	default:
		return mergeSeleneScalar(d1, d2, ctx)
	}
}

func mergeSeleneScalar(d1, d2 *SeleneDivisor, ctx *fqDivisorContext) *SeleneDivisor {
	a := make([]fq.Elt, N)
	b := make([]fq.Elt, N)
	for i := 0; i < N; i++ {
		var a1a2, b1b2, curveB1B2 fq.Elt
		a1a2.Mul(&d1.A[i], &d2.A[i])
		b1b2.Mul(&d1.B[i], &d2.B[i])
		curveB1B2.Mul(&ctx.Curve[i], &b1b2)
		a[i].Add(&a1a2, &curveB1B2)

		var a1b2, a2b1 fq.Elt
		a1b2.Mul(&d1.A[i], &d2.B[i])
		a2b1.Mul(&d2.A[i], &d1.B[i])
		b[i].Add(&a1b2, &a2b1)
	}
	return &SeleneDivisor{A: a, B: b}
}

func mergeSeleneVec4(d1, d2 *SeleneDivisor, ctx *fqDivisorContext) *SeleneDivisor {
	a := make([]fq.Elt, N)
	b := make([]fq.Elt, N)
	for base := 0; base < N; base += 4 {
		a1 := vecfq.Pack4(d1.A[base], d1.A[base+1], d1.A[base+2], d1.A[base+3])
		a2 := vecfq.Pack4(d2.A[base], d2.A[base+1], d2.A[base+2], d2.A[base+3])
		b1 := vecfq.Pack4(d1.B[base], d1.B[base+1], d1.B[base+2], d1.B[base+3])
		b2 := vecfq.Pack4(d2.B[base], d2.B[base+1], d2.B[base+2], d2.B[base+3])
		curveVec := vecfq.Pack4(ctx.Curve[base], ctx.Curve[base+1], ctx.Curve[base+2], ctx.Curve[base+3])

		var a1a2, b1b2, curveB1B2, aOut vecfq.Vec4
		a1a2.Mul(&a1, &a2)
		b1b2.Mul(&b1, &b2)
		curveB1B2.Mul(&curveVec, &b1b2)
		aOut.Add(&a1a2, &curveB1B2)

		var a1b2, a2b1, bOut vecfq.Vec4
		a1b2.Mul(&a1, &b2)
		a2b1.Mul(&a2, &b1)
		bOut.Add(&a1b2, &a2b1)

		for lane := 0; lane < 4; lane++ {
			a[base+lane] = aOut.Extract(lane)
			b[base+lane] = bOut.Extract(lane)
		}
	}
	return &SeleneDivisor{A: a, B: b}
}

func mergeSeleneVec8(d1, d2 *SeleneDivisor, ctx *fqDivisorContext) *SeleneDivisor {
	a := make([]fq.Elt, N)
	b := make([]fq.Elt, N)
	for base := 0; base < N; base += 8 {
		var a1Lanes, a2Lanes, b1Lanes, b2Lanes, curveLanes [8]fq.Elt
		copy(a1Lanes[:], d1.A[base:base+8])
		copy(a2Lanes[:], d2.A[base:base+8])
		copy(b1Lanes[:], d1.B[base:base+8])
		copy(b2Lanes[:], d2.B[base:base+8])
		copy(curveLanes[:], ctx.Curve[base:base+8])

		a1 := vecfq.Pack8(a1Lanes)
		a2 := vecfq.Pack8(a2Lanes)
		b1 := vecfq.Pack8(b1Lanes)
		b2 := vecfq.Pack8(b2Lanes)
		curveVec := vecfq.Pack8(curveLanes)

		var a1a2, b1b2, curveB1B2, aOut vecfq.Vec8
		a1a2.Mul(&a1, &a2)
		b1b2.Mul(&b1, &b2)
		curveB1B2.Mul(&curveVec, &b1b2)
		aOut.Add(&a1a2, &curveB1B2)

		var a1b2, a2b1, bOut vecfq.Vec8
		a1b2.Mul(&a1, &b2)
		a2b1.Mul(&a2, &b1)
		bOut.Add(&a1b2, &a2b1)

		for lane := 0; lane < 8; lane++ {
			a[base+lane] = aOut.Extract(lane)
			b[base+lane] = bOut.Extract(lane)
		}
	}
	return &SeleneDivisor{A: a, B: b}
}

func TreeReduceSelene(leaves []SeleneDivisorWithSum) SeleneDivisorWithSum {
	level := leaves
	for len(level) > 1 {
		next := make([]SeleneDivisorWithSum, 0, (len(level)+1)/2)
		for i := 0; i+1 < len(level); i += 2 {
			merged := MergeSelene(level[i].Divisor, level[i+1].Divisor)
			var sum selene.Jacobian
			selene.SafeAdd(&sum, &level[i].Sum, &level[i+1].Sum)
			next = append(next, SeleneDivisorWithSum{Divisor: merged, Sum: sum})
		}
		if len(level)%2 == 1 {
			next = append(next, level[len(level)-1])
		}
		level = next
	}
	return level[0]
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

func evalsToPolyFq(ctx *fqDivisorContext, ys []fq.Elt) poly.FqPoly {
	result, err := poly.FqFromCoefficients([]fq.Elt{{}})
	if err != nil {
		panic("divisor: unreachable: zero polynomial construction failed")
	}
	for i := 0; i < N; i++ {
		linear, _ := poly.FqFromCoefficients([]fq.Elt{negateFqElt(ctx.Xs[i]), oneFqElt()})
		quotient, _, err := ctx.Vanishing.DivMod(linear)
		if err != nil {
			panic("divisor: unreachable: division by a linear factor failed")
		}
		var scale fq.Elt
		scale.Mul(&ys[i], &ctx.Weights[i])
		result = result.Add(quotient.Scale(scale))
	}
	return result
}

func EvalDivisorToPolySelene(d *SeleneDivisor) (poly.FqPoly, poly.FqPoly) {
	ctx := fqContext()
	return evalsToPolyFq(ctx, d.A), evalsToPolyFq(ctx, d.B)
}

func ScalarToDivisorSelene(k *fp.Elt, p *selene.Affine) (poly.FqPoly, poly.FqPoly, selene.Jacobian) {
	var kBytes [32]byte
	k.Bytes(kBytes[:])
	defer clearBytes(kBytes[:])

	var pj selene.Jacobian
	pj.FromAffine(p)

	leaves := make([]SeleneDivisorWithSum, 0, 256)
	for bitPos := 0; bitPos < 256; bitPos++ {
		byteIdx := bitPos / 8
		bitIdx := uint(bitPos % 8)
		bit := (kBytes[byteIdx] >> bitIdx) & 1
		if bit == 1 {
			leaves = append(leaves, SeleneDivisorWithSum{
				Divisor: NewSeleneDivisorFromPoint(p),
				Sum:     pj,
			})
		}
	}

	if len(leaves) == 0 {
		a := make([]fq.Elt, N)
		b := make([]fq.Elt, N)
		var identity selene.Jacobian
		identity.Identity()
		aPoly, bPoly := EvalDivisorToPolySelene(&SeleneDivisor{A: a, B: b})
		return aPoly, bPoly, identity
	}
	if len(leaves) == 1 {
		aPoly, bPoly := EvalDivisorToPolySelene(leaves[0].Divisor)
		return aPoly, bPoly, leaves[0].Sum
	}

	root := TreeReduceSelene(leaves)
	aPoly, bPoly := EvalDivisorToPolySelene(root.Divisor)
	return aPoly, bPoly, root.Sum
}
