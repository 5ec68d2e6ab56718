// Package vecfq is vecfp's structural mirror over F_q: lane-parallel
// batched forms of the field kernel at 4-wide (AVX2 tier) and 8-wide
// (AVX-512 IFMA tier) widths. See vecfp's package doc for why both
// collapse to "N independent fq.Elt values" at this package's level.
package vecfq

import "github.com/gibme-c/helioselene-sub001/fq"

// Vec4 holds four independent F_q elements advanced together, matching the
// AVX2 4-way lane width.
type Vec4 struct {
	lanes [4]fq.Elt
}

func Pack4(a, b, c, d fq.Elt) Vec4 {
	return Vec4{lanes: [4]fq.Elt{a, b, c, d}}
}

func (v *Vec4) Extract(i int) fq.Elt {
	return v.lanes[i]
}

func (v *Vec4) Insert(i int, x fq.Elt) {
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

func (v *Vec4) Cmov(a *Vec4, cond [4]bool) *Vec4 {
	for i := 0; i < 4; i++ {
		v.lanes[i].CondAssign(cond[i], &a.lanes[i])
	}
	return v
}

// Vec8 holds eight independent F_q elements advanced together, matching
// the AVX-512 IFMA 8-way lane width.
type Vec8 struct {
	lanes [8]fq.Elt
}

func Pack8(elts [8]fq.Elt) Vec8 {
	return Vec8{lanes: elts}
}

func (v *Vec8) Extract(i int) fq.Elt {
	return v.lanes[i]
}

func (v *Vec8) Insert(i int, x fq.Elt) {
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
