package helios

import (
	"github.com/gibme-c/helioselene-sub001/fq"
)

// strausThreshold is the point count at or below which MSM uses Straus'
// shared-doubling method; above it, MSM switches to Pippenger's bucket
// method, which amortizes better as n grows.
const strausThreshold = 32

// MSM computes the variable-time multi-scalar multiplication
// sum(scalars[i] * points[i]) and writes it to out. Dispatches to Straus
// for n <= 32 and Pippenger otherwise. Variable-time: scalars must be
// public.
func MSM(out *Jacobian, scalars []*fq.Elt, points []*Jacobian) *Jacobian {
	if len(scalars) != len(points) {
		panic("helios: MSM requires equal-length scalars and points")
	}
	if len(scalars) == 0 {
		out.Identity()
		return out
	}
	if len(scalars) <= strausThreshold {
		return straus(out, scalars, points)
	}
	return pippenger(out, scalars, points)
}

// straus recodes each scalar to 52 radix-32 booth digits (the same
// recoding FixedBaseScalarMul uses) and interleaves all n points' tables
// into a single 52-window scan, sharing the 5 doublings per window across
// every point: 260 total doublings (52 windows of 5) regardless of n, plus
// one addition per nonzero digit (at most 52 per point).
func straus(out *Jacobian, scalars []*fq.Elt, points []*Jacobian) *Jacobian {
	n := len(scalars)
	digitSets := make([][52]int8, n)
	tables := make([][]Affine, n)

	for i := 0; i < n; i++ {
		digitSets[i] = recodeRadix32(scalars[i])
		jacTable := buildSequentialTable(points[i], 16)
		affTable := make([]Affine, 16)
		BatchToAffine(affTable, jacTable)
		tables[i] = affTable
	}

	var acc Jacobian
	acc.Identity()
	for w := 51; w >= 0; w-- {
		for d := 0; d < 5; d++ {
			acc.Double(&acc)
		}
		for i := 0; i < n; i++ {
			digit := int(digitSets[i][w])
			if digit == 0 {
				continue
			}
			negative := digit < 0
			absDigit := digit
			if negative {
				absDigit = -absDigit
			}
			entry := tables[i][absDigit-1]
			entry.Y.CondNegate(negative)
			SafeAdd(&acc, &acc, (&Jacobian{}).FromAffine(&entry))
		}
	}

	*out = acc
	return out
}

// recodeRadix32 is the 52-digit booth recoding shared by FixedBaseScalarMul
// and straus.
func recodeRadix32(k *fq.Elt) [52]int8 {
	var kBytes [32]byte
	k.Bytes(kBytes[:])

	var digits [52]int8
	carry := 0
	bitPos := 0
	for i := 0; i < 52; i++ {
		val := extractBits(kBytes[:], bitPos, 5) + carry
		carry = (val + 16) >> 5
		digits[i] = int8(val - (carry << 5))
		bitPos += 5
	}
	if carry != 0 {
		panic("helios: scalar recoding carry overflow: scalar was not canonically reduced")
	}
	return digits
}

// pippengerWindowBits is the bucket-window width used above the Straus
// threshold. 2^(pippengerWindowBits-1) buckets per window is a reasonable
// tradeoff for the scalar sizes this package deals with (255-bit).
const pippengerWindowBits = 6

// pippenger computes the MSM by routing each point into one of
// 2^(pippengerWindowBits-1) buckets per window according to its signed
// digit, summing each window's buckets with a running-sum sweep (two
// additions per bucket, no per-bucket scalar multiplication), then combining
// windows from the top down with pippengerWindowBits doublings each.
func pippenger(out *Jacobian, scalars []*fq.Elt, points []*Jacobian) *Jacobian {
	n := len(scalars)
	numWindows := (256 + pippengerWindowBits - 1) / pippengerWindowBits
	numBuckets := 1 << uint(pippengerWindowBits-1)

	digitSets := make([][]int8, n)
	for i := 0; i < n; i++ {
		digitSets[i] = recodeRadixW(scalars[i], pippengerWindowBits, numWindows)
	}

	var result Jacobian
	result.Identity()

	for w := numWindows - 1; w >= 0; w-- {
		for d := 0; d < pippengerWindowBits; d++ {
			result.Double(&result)
		}

		buckets := make([]Jacobian, numBuckets+1)
		for b := range buckets {
			buckets[b].Identity()
		}

		for i := 0; i < n; i++ {
			digit := int(digitSets[i][w])
			if digit == 0 {
				continue
			}
			negative := digit < 0
			absDigit := digit
			if negative {
				absDigit = -absDigit
			}
			p := *points[i]
			if negative {
				p.Negate(&p)
			}
			SafeAdd(&buckets[absDigit], &buckets[absDigit], &p)
		}

		var windowSum, runningSum Jacobian
		windowSum.Identity()
		runningSum.Identity()
		for b := numBuckets; b >= 1; b-- {
			SafeAdd(&runningSum, &runningSum, &buckets[b])
			SafeAdd(&windowSum, &windowSum, &runningSum)
		}

		SafeAdd(&result, &result, &windowSum)
	}

	*out = result
	return out
}

// recodeRadixW is the general form of recodeRadix16/recodeRadix32: numWindows
// signed digits of width bits each, in [-(2^(bits-1)), 2^(bits-1)], via the
// same booth-style carry propagation.
func recodeRadixW(k *fq.Elt, bits, numWindows int) []int8 {
	var kBytes [32]byte
	k.Bytes(kBytes[:])

	digits := make([]int8, numWindows)
	carry := 0
	bitPos := 0
	half := 1 << uint(bits)
	for i := 0; i < numWindows; i++ {
		val := extractBits(kBytes[:], bitPos, bits) + carry
		carry = (val + half/2) >> uint(bits)
		digits[i] = int8(val - (carry << uint(bits)))
		bitPos += bits
	}
	if carry != 0 {
		panic("helios: scalar recoding carry overflow: scalar was not canonically reduced")
	}
	return digits
}
