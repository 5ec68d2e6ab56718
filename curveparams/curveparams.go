// Package curveparams collects the curve and domain constants that the
// rest of this module treats as fixed configuration data rather than
// values computed at runtime: generator points, the curve equation's b
// coefficient for each curve, Selene's modulus bias gamma, and the
// ECFFT coset/level configuration used by the evaluation-domain code.
//
// None of the values here are re-derived or verified against a
// parameter search; they are re-exported under names a caller working
// at the curve/ECFFT level would look for, so that code outside fp, fq,
// helios, selene, and ecfft does not need to import all five packages
// just to find a generator or a domain size.
package curveparams

import (
	"github.com/gibme-c/helioselene-sub001/ecfft"
	"github.com/gibme-c/helioselene-sub001/fp"
	"github.com/gibme-c/helioselene-sub001/fq"
	"github.com/gibme-c/helioselene-sub001/helios"
	"github.com/gibme-c/helioselene-sub001/selene"
)

var (
	// HeliosB, HeliosGenX, HeliosGenY are Helios's curve-equation b
	// coefficient and base point, mirroring helios.B/Gx/Gy.
	HeliosB    = helios.B
	HeliosGenX = helios.Gx
	HeliosGenY = helios.Gy

	// SeleneB, SeleneGenX, SeleneGenY are Selene's curve-equation b
	// coefficient and base point, mirroring selene.B/Gx/Gy.
	SeleneB    = selene.B
	SeleneGenX = selene.Gx
	SeleneGenY = selene.Gy
)

// Gamma's three 51-bit limbs, mirroring fq's internal gammaLimb0/1/2
// (gamma = 2^127 + 45). fq cannot export these directly since they are
// unexported constants used only in its own reduction step; the
// numeric values are duplicated here rather than the arithmetic, and
// must stay in sync with fq/field.go if that package's constants ever
// change.
const (
	GammaLimb0 = 45
	GammaLimb1 = 0
	GammaLimb2 = uint64(1) << 25
)

// HeliosECFFTContext and SeleneECFFTContext return this process's
// lazily-built ECFFT coset/level configuration for each curve's base
// field. The coset and per-level domains are placeholder configuration
// data (see ecfft's package documentation for what they stand in for);
// curveparams does not rebuild or duplicate that data, it only forwards
// the same singleton ecfft already constructs, so that a caller reaching
// for "the curve parameters" finds the ECFFT configuration alongside the
// generator points instead of needing to import ecfft separately.
func HeliosECFFTContext() *ecfft.FpContext { return ecfft.FpContextInstance() }
func SeleneECFFTContext() *ecfft.FqContext { return ecfft.FqContextInstance() }

// HeliosCurveEquation and SeleneCurveEquation evaluate y^2 = x^3 - 3x + b
// at x, the short-Weierstrass form both curves share with a=-3. This
// mirrors the curve-evaluation helper each of helios, selene, and
// divisor needs internally; exported here so callers outside those
// packages (benchmarks, cross-checks) can evaluate the curve equation
// without re-deriving it.
func HeliosCurveEquation(x fp.Elt) fp.Elt {
	var x2, x3, three, threeX, result fp.Elt
	x2.Square(&x)
	x3.Mul(&x2, &x)
	three.SetUint64(3)
	threeX.Mul(&three, &x)
	result.Sub(&x3, &threeX)
	result.Add(&result, &HeliosB)
	return result
}

func SeleneCurveEquation(x fq.Elt) fq.Elt {
	var x2, x3, three, threeX, result fq.Elt
	x2.Square(&x)
	x3.Mul(&x2, &x)
	three.SetUint64(3)
	threeX.Mul(&three, &x)
	result.Sub(&x3, &threeX)
	result.Add(&result, &SeleneB)
	return result
}
