// Package dispatch publishes a process-wide table of scalar-multiplication
// and MSM entry points, selected by CPUID feature detection at init time and
// optionally refined by benchmarking at autotune time.
package dispatch

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/klauspost/cpuid/v2"

	"github.com/gibme-c/helioselene-sub001/fp"
	"github.com/gibme-c/helioselene-sub001/fq"
	"github.com/gibme-c/helioselene-sub001/helios"
	"github.com/gibme-c/helioselene-sub001/selene"
)

// Backend names the implementation tier a Table was built from.
type Backend int

const (
	BackendScalar Backend = iota
	BackendAVX2
	BackendIFMA
)

func (b Backend) String() string {
	switch b {
	case BackendScalar:
		return "scalar"
	case BackendAVX2:
		return "avx2"
	case BackendIFMA:
		return "ifma"
	default:
		return "unknown"
	}
}

type (
	HeliosScalarMulFunc func(out *helios.Jacobian, k *fq.Elt, p *helios.Jacobian) *helios.Jacobian
	HeliosMSMFunc       func(out *helios.Jacobian, scalars []*fq.Elt, points []*helios.Jacobian) *helios.Jacobian
	SeleneScalarMulFunc func(out *selene.Jacobian, k *fp.Elt, p *selene.Jacobian) *selene.Jacobian
	SeleneMSMFunc       func(out *selene.Jacobian, scalars []*fp.Elt, points []*selene.Jacobian) *selene.Jacobian
)

// Table is the six-entry function-pointer set published by init and autotune.
// Readers always observe either the pre-init baseline or a fully-populated
// table; there is no field-by-field publication.
type Table struct {
	Backend Backend

	HeliosScalarMulCT HeliosScalarMulFunc
	HeliosScalarMulVT HeliosScalarMulFunc
	HeliosMSMVT       HeliosMSMFunc

	SeleneScalarMulCT SeleneScalarMulFunc
	SeleneScalarMulVT SeleneScalarMulFunc
	SeleneMSMVT       SeleneMSMFunc
}

// scalarTable is the baseline backend: plain fp/fq arithmetic, no SIMD
// lane-parallelism. It is also, today, what BackendAVX2 and BackendIFMA
// publish — vecfp/vecfq (the lane-parallel kernels these tiers are meant to
// be built on) do not yet back an alternate scalar-mul/MSM implementation,
// so all three tiers are functionally identical until that wiring exists.
// CPUID detection and the benchmarking harness below are real; only the
// number of distinct candidate implementations is currently one.
func scalarTable(b Backend) Table {
	return Table{
		Backend:           b,
		HeliosScalarMulCT: helios.ScalarMul,
		HeliosScalarMulVT: helios.ScalarMulVar,
		HeliosMSMVT:       helios.MSM,
		SeleneScalarMulCT: selene.ScalarMul,
		SeleneScalarMulVT: selene.ScalarMulVar,
		SeleneMSMVT:       selene.MSM,
	}
}

var variants = map[Backend]Table{
	BackendScalar: scalarTable(BackendScalar),
	BackendAVX2:   scalarTable(BackendAVX2),
	BackendIFMA:   scalarTable(BackendIFMA),
}

var (
	current      atomic.Pointer[Table]
	initOnce     sync.Once
	autotuneOnce sync.Once
)

// detectBackend reads cached CPUID feature bits and returns the best tier
// a scalar-mul implementation could in principle target on this machine.
func detectBackend() Backend {
	switch {
	case cpuid.CPU.Has(cpuid.AVX512IFMA):
		return BackendIFMA
	case cpuid.CPU.Has(cpuid.AVX2):
		return BackendAVX2
	default:
		return BackendScalar
	}
}

// Init publishes one of the three complete tables (IFMA > AVX2 > scalar)
// chosen by CPUID heuristic. First call wins; subsequent calls are no-ops.
func Init() {
	initOnce.Do(func() {
		tbl := variants[detectBackend()]
		current.Store(&tbl)
	})
}

// Autotune benchmarks each candidate backend on one representative
// operation, the Helios constant-time scalar-mul (8 warmup iterations, 32
// timed, minimum duration kept), and publishes the fastest backend's
// complete table. The other five slots are not timed individually. Must be
// called after Init; the second and later calls are no-ops.
func Autotune() {
	if current.Load() == nil {
		panic("dispatch: Autotune called before Init")
	}
	autotuneOnce.Do(func() {
		best := benchmarkBackends()
		tbl := variants[best]
		current.Store(&tbl)
	})
}

// Get returns the currently published table. Callers must call Init first;
// Get never triggers initialization itself.
func Get() *Table {
	return current.Load()
}

const (
	warmupRounds = 8
	timedRounds  = 32
)

// benchmarkBackends times a representative operation (Helios constant-time
// scalar-mul) against a fixed generator and scalar for each candidate
// backend, taking the minimum of timedRounds runs after warmupRounds, and
// returns whichever backend was fastest.
func benchmarkBackends() Backend {
	var g helios.Jacobian
	g.Generator()
	var k fq.Elt
	k.SetUint64(0xC0FFEE)

	best := BackendScalar
	bestDuration := time.Duration(1<<63 - 1)

	for _, b := range []Backend{BackendScalar, BackendAVX2, BackendIFMA} {
		tbl := variants[b]
		d := timeScalarMul(tbl.HeliosScalarMulCT, &k, &g)
		if d < bestDuration {
			bestDuration = d
			best = b
		}
	}
	return best
}

func timeScalarMul(fn HeliosScalarMulFunc, k *fq.Elt, p *helios.Jacobian) time.Duration {
	var out helios.Jacobian
	for i := 0; i < warmupRounds; i++ {
		fn(&out, k, p)
	}
	min := time.Duration(1<<63 - 1)
	for i := 0; i < timedRounds; i++ {
		start := time.Now()
		fn(&out, k, p)
		elapsed := time.Since(start)
		if elapsed < min {
			min = elapsed
		}
	}
	return min
}
