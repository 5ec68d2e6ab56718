// Package vecfp implements lane-parallel batched forms of the F_p field
// kernel: a 4-wide lane matching the AVX2 tier and an 8-wide lane matching
// the AVX-512 IFMA tier. Both lanes share the same semantic contract — N
// independent field elements advanced by one logical operation at a time —
// and differ only in width. A SIMD backend would split each lane across a
// different physical radix (2^25.5 10-limb for the 4-way lane, 2^51 5-limb
// for the 8-way lane); at this package's level that collapses to "N
// independent fp.Elt values", since fp.Elt is the only F_p representation
// this module carries.
package vecfp

import "github.com/gibme-c/helioselene-sub001/fp"

// Vec4 holds four independent F_p elements advanced together, matching the
// AVX2 4-way lane width.
type Vec4 struct {
	lanes [4]fp.Elt
}

// Pack4 builds a Vec4 from four scalar elements.
func Pack4(a, b, c, d fp.Elt) Vec4 {
	return Vec4{lanes: [4]fp.Elt{a, b, c, d}}
}

// Extract returns the scalar element held in lane i.
func (v *Vec4) Extract(i int) fp.Elt {
	return v.lanes[i]
}

// Insert sets lane i to x.
func (v *Vec4) Insert(i int, x fp.Elt) {
	v.lanes[i] = x
}

func (v *Vec4) Add(a, b *Vec4) *Vec4 {
	for i := 0; i < 4; i++ {
		v.lanes[i].Add(&a.lanes[i], &b.lanes[i])
	}
	return v
}

func (v *Vec4) Sub(a, b *Vec4) *Vec4 {
	for i := 0; i < 4; i++ {
		v.lanes[i].Sub(&a.lanes[i], &b.lanes[i])
	}
	return v
}

func (v *Vec4) Mul(a, b *Vec4) *Vec4 {
	for i := 0; i < 4; i++ {
		v.lanes[i].Mul(&a.lanes[i], &b.lanes[i])
	}
	return v
}

func (v *Vec4) Sq(a *Vec4) *Vec4 {
	for i := 0; i < 4; i++ {
		v.lanes[i].Square(&a.lanes[i])
	}
	return v
}

// Sq2 computes 2*a^2 per lane.
func (v *Vec4) Sq2(a *Vec4) *Vec4 {
	v.Sq(a)
	for i := 0; i < 4; i++ {
		v.lanes[i].MulSmall(2)
	}
	return v
}

func (v *Vec4) Neg(a *Vec4) *Vec4 {
	for i := 0; i < 4; i++ {
		v.lanes[i].Negate(&a.lanes[i], 8)
	}
	return v
}

// Cmov sets lane i of v to the corresponding lane of a wherever cond[i] is
// true, lane by lane.
func (v *Vec4) Cmov(a *Vec4, cond [4]bool) *Vec4 {
	for i := 0; i < 4; i++ {
		v.lanes[i].CondAssign(cond[i], &a.lanes[i])
	}
	return v
}

// Vec8 holds eight independent F_p elements advanced together, matching
// the AVX-512 IFMA 8-way lane width.
type Vec8 struct {
	lanes [8]fp.Elt
}

// Pack8 builds a Vec8 from eight scalar elements.
func Pack8(elts [8]fp.Elt) Vec8 {
	return Vec8{lanes: elts}
}

func (v *Vec8) Extract(i int) fp.Elt {
	return v.lanes[i]
}

func (v *Vec8) Insert(i int, x fp.Elt) {
	v.lanes[i] = x
}

func (v *Vec8) Add(a, b *Vec8) *Vec8 {
	for i := 0; i < 8; i++ {
		v.lanes[i].Add(&a.lanes[i], &b.lanes[i])
	}
	return v
}

func (v *Vec8) Sub(a, b *Vec8) *Vec8 {
	for i := 0; i < 8; i++ {
		v.lanes[i].Sub(&a.lanes[i], &b.lanes[i])
	}
	return v
}

func (v *Vec8) Mul(a, b *Vec8) *Vec8 {
	for i := 0; i < 8; i++ {
		v.lanes[i].Mul(&a.lanes[i], &b.lanes[i])
	}
	return v
}

func (v *Vec8) Sq(a *Vec8) *Vec8 {
	for i := 0; i < 8; i++ {
		v.lanes[i].Square(&a.lanes[i])
	}
	return v
}

func (v *Vec8) Sq2(a *Vec8) *Vec8 {
	v.Sq(a)
	for i := 0; i < 8; i++ {
		v.lanes[i].MulSmall(2)
	}
	return v
}

func (v *Vec8) Neg(a *Vec8) *Vec8 {
	for i := 0; i < 8; i++ {
		v.lanes[i].Negate(&a.lanes[i], 8)
	}
	return v
}

func (v *Vec8) Cmov(a *Vec8, cond [8]bool) *Vec8 {
	for i := 0; i < 8; i++ {
		v.lanes[i].CondAssign(cond[i], &a.lanes[i])
	}
	return v
}
