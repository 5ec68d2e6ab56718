// Command helioselene-bench prints rough per-operation timings for the
// representative operations this module's dispatch table and ECFFT
// machinery publish: constant-time scalar multiplication, variable-time
// multi-scalar multiplication, and ECFFT polynomial multiplication, for
// both Helios and Selene. It is not a wire-format or parameter-search
// tool; it exists to give a quick before/after number when touching the
// dispatch or ECFFT code, nothing more.
package main

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/gibme-c/helioselene-sub001/dispatch"
	"github.com/gibme-c/helioselene-sub001/ecfft"
	"github.com/gibme-c/helioselene-sub001/fp"
	"github.com/gibme-c/helioselene-sub001/fq"
	"github.com/gibme-c/helioselene-sub001/helios"
	"github.com/gibme-c/helioselene-sub001/selene"
)

const msmSize = 16

func randomFqScalar() fq.Elt {
	for {
		var raw [32]byte
		rand.Read(raw[:])
		raw[31] &= 0x7f
		var e fq.Elt
		if _, err := e.SetCanonicalBytes(raw[:]); err == nil {
			return e
		}
	}
}

func randomFpScalar() fp.Elt {
	for {
		var raw [32]byte
		rand.Read(raw[:])
		raw[31] &= 0x7f
		var e fp.Elt
		if _, err := e.SetCanonicalBytes(raw[:]); err == nil {
			return e
		}
	}
}

func randomFpCoeffs(n int) []fp.Elt {
	out := make([]fp.Elt, n)
	for i := range out {
		out[i] = randomFpScalar()
	}
	return out
}

func randomFqCoeffs(n int) []fq.Elt {
	out := make([]fq.Elt, n)
	for i := range out {
		out[i] = randomFqScalar()
	}
	return out
}

func timeIt(label string, reps int, f func()) {
	start := time.Now()
	for i := 0; i < reps; i++ {
		f()
	}
	elapsed := time.Since(start)
	fmt.Printf("%-40s %10.3f us/op  (%d reps, %s total)\n",
		label, float64(elapsed.Microseconds())/float64(reps), reps, elapsed)
}

func benchHelios(table *dispatch.Table) {
	var g helios.Jacobian
	g.Generator()

	k := randomFqScalar()
	var out helios.Jacobian
	timeIt("helios scalar-mul (CT)", 200, func() {
		table.HeliosScalarMulCT(&out, &k, &g)
	})
	timeIt("helios scalar-mul (VT)", 200, func() {
		table.HeliosScalarMulVT(&out, &k, &g)
	})

	scalars := make([]*fq.Elt, msmSize)
	points := make([]*helios.Jacobian, msmSize)
	for i := 0; i < msmSize; i++ {
		s := randomFqScalar()
		scalars[i] = &s
		var p helios.Jacobian
		p.Generator()
		points[i] = &p
	}
	timeIt(fmt.Sprintf("helios MSM (VT, n=%d)", msmSize), 20, func() {
		table.HeliosMSMVT(&out, scalars, points)
	})
}

func benchSelene(table *dispatch.Table) {
	var g selene.Jacobian
	g.Generator()

	k := randomFpScalar()
	var out selene.Jacobian
	timeIt("selene scalar-mul (CT)", 200, func() {
		table.SeleneScalarMulCT(&out, &k, &g)
	})
	timeIt("selene scalar-mul (VT)", 200, func() {
		table.SeleneScalarMulVT(&out, &k, &g)
	})

	scalars := make([]*fp.Elt, msmSize)
	points := make([]*selene.Jacobian, msmSize)
	for i := 0; i < msmSize; i++ {
		s := randomFpScalar()
		scalars[i] = &s
		var p selene.Jacobian
		p.Generator()
		points[i] = &p
	}
	timeIt(fmt.Sprintf("selene MSM (VT, n=%d)", msmSize), 20, func() {
		table.SeleneMSMVT(&out, scalars, points)
	})
}

func benchECFFT() {
	const degree = 64
	fpCtx := ecfft.FpContextInstance()
	a := randomFpCoeffs(degree)
	b := randomFpCoeffs(degree)
	timeIt(fmt.Sprintf("helios ecfft multiply (deg=%d)", degree), 50, func() {
		ecfft.FpMultiply(fpCtx, a, b)
	})

	fqCtx := ecfft.FqContextInstance()
	c := randomFqCoeffs(degree)
	d := randomFqCoeffs(degree)
	timeIt(fmt.Sprintf("selene ecfft multiply (deg=%d)", degree), 50, func() {
		ecfft.FqMultiply(fqCtx, c, d)
	})
}

func main() {
	dispatch.Init()
	dispatch.Autotune()
	table := dispatch.Get()

	fmt.Printf("dispatch backend: %s\n\n", table.Backend)

	benchHelios(table)
	benchSelene(table)
	benchECFFT()
}
