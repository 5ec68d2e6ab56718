package selene

import (
	"github.com/gibme-c/helioselene-sub001/fp"
)

// Selene's scalars live in Z/pZ: the order of the Selene group equals the
// characteristic of F_p, so fp.Elt is reused directly as the scalar type
// rather than introducing a parallel 256-bit integer representation.

// recodeRadix16 implements the booth-style signed-digit recoding described
// for the constant-time windowed scalar multiplier: 64 digits in [-8, 8],
// each representing a nibble of the canonical little-endian scalar encoding
// plus a carry folded in from the digit below it.
func recodeRadix16(k *fp.Elt) [64]int8 {
	var kBytes [32]byte
	k.Bytes(kBytes[:])

	var digits [64]int8
	carry := 0
	for i := 0; i < 64; i++ {
		byteIdx := i / 2
		var nibble int
		if i%2 == 0 {
			nibble = int(kBytes[byteIdx] & 0x0F)
		} else {
			nibble = int(kBytes[byteIdx] >> 4)
		}
		val := nibble + carry
		carry = (val + 8) >> 4
		digits[i] = int8(val - (carry << 4))
	}
	// The top nibble of a canonical scalar is at most 7, so the last digit
	// keeps its carry and stays within [-8, 8].
	digits[63] += int8(carry << 4)
	if digits[63] > 8 {
		panic("selene: scalar recoding carry overflow: scalar was not canonically reduced")
	}
	return digits
}

// buildOddMultiplesTable precomputes the n odd multiples 1*P, 3*P, ...,
// (2n-1)*P in Jacobian coordinates, used by the wNAF table (n = 8: 1P,
// 3P, .., 15P).
func buildOddMultiplesTable(p *Jacobian, n int) []Jacobian {
	table := make([]Jacobian, n)
	table[0] = *p
	var double Jacobian
	double.Double(p)
	for i := 1; i < n; i++ {
		table[i].Add(&table[i-1], &double)
	}
	return table
}

// buildSequentialTable precomputes 1*P, 2*P, ..., n*P in Jacobian
// coordinates, used by the constant-time windowed multiplier's table
// (values 1..8) and the fixed-base table (values 1..16).
func buildSequentialTable(p *Jacobian, n int) []Jacobian {
	table := make([]Jacobian, n)
	table[0] = *p
	for i := 1; i < n; i++ {
		SafeAdd(&table[i], &table[i-1], p)
	}
	return table
}

// ScalarMul sets out = k*p using a constant-time windowed radix-16
// multiplier: the scan order, table size, and digit range are fixed
// regardless of k, table lookups touch every entry via cmov, and the
// accumulator's identity state at the first window is resolved by
// selecting between two always-computed candidates rather than a data
// -dependent branch.
func ScalarMul(out *Jacobian, k *fp.Elt, p *Jacobian) *Jacobian {
	digits := recodeRadix16(k)

	jacTable := buildSequentialTable(p, 8)
	affTable := make([]Affine, 8)
	BatchToAffine(affTable, jacTable)

	var acc Jacobian
	acc.Identity()

	for i := 63; i >= 0; i-- {
		acc.Double(&acc)
		acc.Double(&acc)
		acc.Double(&acc)
		acc.Double(&acc)

		digit := int(digits[i])
		negative := digit < 0
		absDigit := digit
		if negative {
			absDigit = -absDigit
		}

		var selected Affine
		for j := 0; j < 8; j++ {
			cond := absDigit == j+1
			selected.X.CondAssign(cond, &affTable[j].X)
			selected.Y.CondAssign(cond, &affTable[j].Y)
		}
		selected.Y.CondNegate(negative)

		var addedGeneral, addedFromAffine Jacobian
		addedGeneral.AddMixed(&acc, &selected)
		addedFromAffine.FromAffine(&selected)

		var candidate Jacobian
		candidate.CondAssign(acc.IsIdentity(), &addedFromAffine)
		candidate.CondAssign(!acc.IsIdentity(), &addedGeneral)

		acc.CondAssign(digit != 0, &candidate)
	}

	*out = acc
	return out
}

// wnaf computes the width-w non-adjacent form of the scalar held in the
// canonical little-endian byte encoding kBytes, returning digits ordered
// from the lowest bit position (index 0) upward. Variable-time: intended
// only for public scalars.
func wnaf(kBytes [32]byte, w int) []int {
	var limbs [5]uint64
	for i := 0; i < 32; i++ {
		limbs[i/8] |= uint64(kBytes[i]) << uint(8*(i%8))
	}

	isZero := func() bool {
		return limbs[0] == 0 && limbs[1] == 0 && limbs[2] == 0 && limbs[3] == 0 && limbs[4] == 0
	}
	isOdd := func() bool { return limbs[0]&1 == 1 }
	shiftRight1 := func() {
		for i := 0; i < 4; i++ {
			limbs[i] = (limbs[i] >> 1) | (limbs[i+1] << 63)
		}
		limbs[4] >>= 1
	}
	subtractSigned := func(d int) {
		if d >= 0 {
			borrow := uint64(d)
			for i := 0; i < 5 && borrow != 0; i++ {
				old := limbs[i]
				limbs[i] = old - borrow
				if old < borrow {
					borrow = 1
				} else {
					borrow = 0
				}
			}
		} else {
			carry := uint64(-d)
			for i := 0; i < 5 && carry != 0; i++ {
				old := limbs[i]
				limbs[i] = old + carry
				if limbs[i] < old {
					carry = 1
				} else {
					carry = 0
				}
			}
		}
	}

	windowMask := (1 << uint(w)) - 1
	half := 1 << uint(w-1)

	var digits []int
	for !isZero() {
		var digit int
		if isOdd() {
			mod := int(limbs[0]) & windowMask
			if mod >= half {
				digit = mod - (1 << uint(w))
			} else {
				digit = mod
			}
			subtractSigned(digit)
		}
		digits = append(digits, digit)
		shiftRight1()
	}
	return digits
}

// ScalarMulVar sets out = k*p using variable-time width-5 wNAF scalar
// multiplication. Only safe to call with a public scalar.
func ScalarMulVar(out *Jacobian, k *fp.Elt, p *Jacobian) *Jacobian {
	var kBytes [32]byte
	k.Bytes(kBytes[:])

	digits := wnaf(kBytes, 5)

	jacTable := buildOddMultiplesTable(p, 8) // 1P, 3P, 5P, ..., 15P
	affTable := make([]Affine, 8)
	BatchToAffine(affTable, jacTable)

	var acc Jacobian
	acc.Identity()

	for i := len(digits) - 1; i >= 0; i-- {
		acc.Double(&acc)
		d := digits[i]
		if d == 0 {
			continue
		}
		idx := (abs(d) - 1) / 2
		entry := affTable[idx]
		if d < 0 {
			entry.Y.Negate(&entry.Y, 8)
		}
		SafeAdd(&acc, &acc, (&Jacobian{}).FromAffine(&entry))
	}

	*out = acc
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// FixedBaseScalarMul sets out = k*p using a caller-supplied affine table of
// [1*p, 2*p, ..., 16*p] (radix-32, 52 windows of 5 bits, booth-recoded the
// same way as the radix-16 constant-time path).
func FixedBaseScalarMul(out *Jacobian, k *fp.Elt, table []Affine) *Jacobian {
	if len(table) != 16 {
		panic("selene: FixedBaseScalarMul requires a 16-entry table")
	}

	digits := recodeRadix32(k)

	var acc Jacobian
	acc.Identity()
	for i := 51; i >= 0; i-- {
		for d := 0; d < 5; d++ {
			acc.Double(&acc)
		}
		digit := int(digits[i])
		if digit == 0 {
			continue
		}
		negative := digit < 0
		absDigit := digit
		if negative {
			absDigit = -absDigit
		}
		entry := table[absDigit-1]
		entry.Y.CondNegate(negative)
		SafeAdd(&acc, &acc, (&Jacobian{}).FromAffine(&entry))
	}

	*out = acc
	return out
}

// BuildFixedBaseTable precomputes the [1*p, 2*p, ..., 16*p] affine table
// consumed by FixedBaseScalarMul.
func BuildFixedBaseTable(p *Jacobian) []Affine {
	jacTable := buildSequentialTable(p, 16)
	affTable := make([]Affine, 16)
	BatchToAffine(affTable, jacTable)
	return affTable
}

// extractBits reads n bits (n <= 57) starting at bit offset pos from a
// little-endian byte slice, zero-extending past the end of b.
func extractBits(b []byte, pos, n int) int {
	var v uint64
	for i := 0; i < n; i++ {
		bitIdx := pos + i
		byteIdx := bitIdx / 8
		if byteIdx >= len(b) {
			continue
		}
		bit := (b[byteIdx] >> uint(bitIdx%8)) & 1
		v |= uint64(bit) << uint(i)
	}
	return int(v)
}
