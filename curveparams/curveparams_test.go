package curveparams

import (
	"testing"

	"github.com/gibme-c/helioselene-sub001/helios"
	"github.com/gibme-c/helioselene-sub001/selene"
)

func TestGeneratorsAreOnCurve(t *testing.T) {
	hg := helios.Affine{X: HeliosGenX, Y: HeliosGenY}
	if !hg.IsOnCurve() {
		t.Fatal("helios generator does not satisfy curve equation")
	}
	sg := selene.Affine{X: SeleneGenX, Y: SeleneGenY}
	if !sg.IsOnCurve() {
		t.Fatal("selene generator does not satisfy curve equation")
	}
}

func TestCurveEquationMatchesGeneratorY2(t *testing.T) {
	rhs := HeliosCurveEquation(HeliosGenX)
	var y2 = HeliosGenY
	y2.Square(&HeliosGenY)
	if !y2.Equal(&rhs) {
		t.Fatal("helios curve equation at generator x does not equal generator y^2")
	}

	srhs := SeleneCurveEquation(SeleneGenX)
	sy2 := SeleneGenY
	sy2.Square(&SeleneGenY)
	if !sy2.Equal(&srhs) {
		t.Fatal("selene curve equation at generator x does not equal generator y^2")
	}
}

func TestECFFTContextsAreSingletons(t *testing.T) {
	if HeliosECFFTContext() != HeliosECFFTContext() {
		t.Fatal("helios ecfft context is not a stable singleton")
	}
	if SeleneECFFTContext() != SeleneECFFTContext() {
		t.Fatal("selene ecfft context is not a stable singleton")
	}
}
