package fq

import "math/bits"

// Bernstein-Yang safegcd ("divsteps") modular inversion for F_q. q-2 has no
// short addition chain the way p-2 does for F_p, so a square-and-multiply
// ladder over the full 255-bit exponent is the expensive option here;
// divsteps instead walks a fixed 12*62 = 744-iteration schedule of cheap
// 62-bit integer steps (>= 738, the bound for a 255-bit prime), each
// iteration updating a small transition matrix that is then applied in bulk
// to the wider accumulators. Ported from libsecp256k1's modinv64 structure.
//
// Representation: 5 limbs, radix 2^62, kept in signed int64 form so that
// intermediate values (which go negative during the reduction) are exact.

type signed62 [5]int64

type trans2x2 struct {
	u, v, q, r int64
}

const m62 = (uint64(1) << 62) - 1

// wideInt is a signed 128-bit accumulator assembled from a 64-bit multiply
// plus a 64-bit carry, the same shape libsecp256k1's portable (non-__int128)
// path uses.
type wideInt struct {
	lo uint64
	hi int64
}

// smul computes the signed 128-bit product a*b without a native int128 type,
// branchlessly: the low 64 bits of a signed product equal the low 64 bits of
// the unsigned product, and the high word only needs a mask correction for
// each negative operand (Hacker's Delight-style signed-from-unsigned
// widening multiply). Masks, not branches, so the operation has no
// secret-dependent control flow.
func smul(a, b int64) wideInt {
	hiU, loU := bits.Mul64(uint64(a), uint64(b))
	negA := uint64(a >> 63)
	negB := uint64(b >> 63)
	hiU -= negA & uint64(b)
	hiU -= negB & uint64(a)
	return wideInt{lo: loU, hi: int64(hiU)}
}

func addWide(a, b wideInt) wideInt {
	lo := a.lo + b.lo
	var carry uint64
	if lo < a.lo {
		carry = 1
	}
	return wideInt{lo: lo, hi: a.hi + b.hi + int64(carry)}
}

func wideFromInt64(a int64) wideInt {
	hi := int64(0)
	if a < 0 {
		hi = -1
	}
	return wideInt{lo: uint64(a), hi: hi}
}

func wideLo(x wideInt) int64 { return int64(x.lo) }

// wideRsh62 is an arithmetic right shift by 62 of the signed 128-bit value.
func wideRsh62(x wideInt) int64 {
	return int64((x.lo >> 62) | (uint64(x.hi) << 2))
}

// divsteps62 runs 62 divsteps on the low 62 bits of f, g and returns the
// updated delta and the accumulated 2x2 transition matrix t such that
//
//	[new_f]         [t.u  t.v] [old_f]
//	[new_g] * 2^62 = [t.q  t.r] [old_g]
//
// Every step is mask-selected rather than branched, so its trace does not
// depend on the values of f or g.
func divsteps62(delta int64, f0, g0 uint64) (int64, trans2x2) {
	u, v, q, r := int64(1), int64(0), int64(0), int64(1)
	f, g := f0, g0

	for i := 0; i < 62; i++ {
		cpos := ^((delta - 1) >> 63) // all-ones if delta > 0
		codd := -int64(g & 1)        // all-ones if g is odd
		cond := cpos & codd

		xfg := (f ^ g) & uint64(cond)
		f ^= xfg
		g ^= xfg

		xu := (u ^ q) & cond
		u ^= xu
		q ^= xu
		xv := (v ^ r) & cond
		v ^= xv
		r ^= xv

		delta = (delta ^ cond) - cond
		g = (g ^ uint64(cond)) - uint64(cond)
		q = (q ^ cond) - cond
		r = (r ^ cond) - cond

		delta++

		c2 := -int64(g & 1)
		g += f & uint64(c2)
		q += u & c2
		r += v & c2

		g >>= 1
		u <<= 1
		v <<= 1
	}

	return delta, trans2x2{u: u, v: v, q: q, r: r}
}

// updateFG applies t to (f, g), dividing the result by 2^62 (exact, by
// construction of t).
func updateFG(f, g *signed62, t trans2x2) {
	af := addWide(smul(t.u, f[0]), smul(t.v, g[0]))
	ag := addWide(smul(t.q, f[0]), smul(t.r, g[0]))
	cf := wideRsh62(af)
	cg := wideRsh62(ag)

	var fi, gi signed62
	for i := 1; i < 5; i++ {
		af = addWide(wideFromInt64(cf), addWide(smul(t.u, f[i]), smul(t.v, g[i])))
		ag = addWide(wideFromInt64(cg), addWide(smul(t.q, f[i]), smul(t.r, g[i])))
		fi[i-1] = wideLo(af) & int64(m62)
		gi[i-1] = wideLo(ag) & int64(m62)
		cf = wideRsh62(af)
		cg = wideRsh62(ag)
	}
	fi[4] = cf
	gi[4] = cg

	*f = fi
	*g = gi
}

// updateDE applies t to the Bezout accumulators (d, e), folding in a
// modulus-multiple (cd, ce) at each limb so the division by 2^62 stays exact
// while keeping d, e reduced mod q.
func updateDE(d, e *signed62, t trans2x2, modulus *signed62, negModInv62 int64) {
	md := uint64(t.u)*uint64(d[0]) + uint64(t.v)*uint64(e[0])
	me := uint64(t.q)*uint64(d[0]) + uint64(t.r)*uint64(e[0])

	cd := int64((md * uint64(negModInv62)) & m62)
	ce := int64((me * uint64(negModInv62)) & m62)
	cd = (cd << 2) >> 2
	ce = (ce << 2) >> 2

	ad := addWide(addWide(smul(t.u, d[0]), smul(t.v, e[0])), smul(cd, modulus[0]))
	ae := addWide(addWide(smul(t.q, d[0]), smul(t.r, e[0])), smul(ce, modulus[0]))
	cf := wideRsh62(ad)
	cg := wideRsh62(ae)

	var di, ei signed62
	for i := 1; i < 5; i++ {
		ad = addWide(wideFromInt64(cf), addWide(addWide(smul(t.u, d[i]), smul(t.v, e[i])), smul(cd, modulus[i])))
		ae = addWide(wideFromInt64(cg), addWide(addWide(smul(t.q, d[i]), smul(t.r, e[i])), smul(ce, modulus[i])))
		di[i-1] = wideLo(ad) & int64(m62)
		ei[i-1] = wideLo(ae) & int64(m62)
		cf = wideRsh62(ad)
		cg = wideRsh62(ae)
	}
	di[4] = cf
	ei[4] = cg

	*d = di
	*e = ei
}

// limbs51To62 re-radixes five already-reduced (< 2^51) limbs into the
// signed 5x62 layout, by way of the same 4x64-word intermediate Bytes and
// SetCanonicalBytes already use.
func limbs51To62(h [5]uint64) signed62 {
	w0 := h[0] | (h[1] << 51)
	w1 := (h[1] >> 13) | (h[2] << 38)
	w2 := (h[2] >> 26) | (h[3] << 25)
	w3 := (h[3] >> 39) | (h[4] << 12)

	var s signed62
	s[0] = int64(w0 & m62)
	s[1] = int64(((w0 >> 62) | (w1 << 2)) & m62)
	s[2] = int64(((w1 >> 60) | (w2 << 4)) & m62)
	s[3] = int64(((w2 >> 58) | (w3 << 6)) & m62)
	s[4] = int64(w3 >> 56)
	return s
}

// signed62To51 is limbs51To62's inverse, assuming s holds a value already
// reduced to [0, q).
func signed62To51(s signed62) [5]uint64 {
	w0 := uint64(s[0]) | (uint64(s[1]) << 62)
	w1 := (uint64(s[1]) >> 2) | (uint64(s[2]) << 60)
	w2 := (uint64(s[2]) >> 4) | (uint64(s[3]) << 58)
	w3 := (uint64(s[3]) >> 6) | (uint64(s[4]) << 56)

	var out [5]uint64
	out[0] = w0 & maskLow51
	out[1] = ((w0 >> 51) | (w1 << 13)) & maskLow51
	out[2] = ((w1 >> 38) | (w2 << 26)) & maskLow51
	out[3] = ((w2 >> 25) | (w3 << 39)) & maskLow51
	out[4] = w3 >> 12
	return out
}

func feToSigned62(x *Elt) signed62 {
	t := *x
	t.normalize()
	return limbs51To62(t.n)
}

// computeModInv64 returns x^-1 mod 2^64 for odd x via Hensel lifting: each
// iteration doubles the number of correct low bits, so six iterations
// starting from a 2-bit-correct seed reach full 64-bit precision.
func computeModInv64(x uint64) uint64 {
	inv := uint64(1)
	for i := 0; i < 6; i++ {
		inv *= 2 - x*inv
	}
	return inv
}

var fqModulusS62 = limbs51To62([5]uint64{qLimb0, qLimb1, qLimb2, qLimb3, qLimb4})

var fqNegModInv62 = int64((0 - computeModInv64(uint64(fqModulusS62[0]))) & m62)

// divstepsNormalize reduces d (the running Bezout coefficient, magnitude
// bounded but sign not yet resolved) to [0, q): f has converged to +-1, so
// the inverse's sign is the sign of f; d is then carry-normalized, and
// folded back into [0, q) with at most one conditional add and one
// conditional subtract of the modulus.
func divstepsNormalize(d *signed62, f *signed62) [5]uint64 {
	fNeg := f[4] >> 63
	for i := range d {
		d[i] = (d[i] ^ fNeg) - fNeg
	}

	var carry int64
	for i := 0; i < 4; i++ {
		d[i] += carry
		carry = d[i] >> 62
		d[i] -= carry << 62
	}
	d[4] += carry

	negMask := d[4] >> 63
	carry = 0
	for i := 0; i < 5; i++ {
		d[i] += fqModulusS62[i] & negMask
		carry = d[i] >> 62
		if i < 4 {
			d[i] -= carry << 62
			d[i+1] += carry
		}
	}

	var tmp signed62
	var borrow int64
	for i := 0; i < 5; i++ {
		tmp[i] = d[i] - fqModulusS62[i] - borrow
		borrow = (tmp[i] >> 63) & 1
		if i < 4 {
			tmp[i] &= int64(m62)
		}
	}
	geMask := ^(tmp[4] >> 63)
	for i := range d {
		d[i] = (d[i] &^ geMask) | (tmp[i] & geMask)
	}

	return signed62To51(*d)
}

// invertDivsteps computes x^-1 mod q via 12 outer rounds of 62 divsteps
// (744 total, covering the 738-iteration bound for a 255-bit modulus).
func invertDivsteps(x *Elt) Elt {
	f := fqModulusS62
	g := feToSigned62(x)
	var d signed62
	e := signed62{1, 0, 0, 0, 0}

	delta := int64(1)
	for i := 0; i < 12; i++ {
		var t trans2x2
		delta, t = divsteps62(delta, uint64(f[0]), uint64(g[0]))
		updateFG(&f, &g, t)
		updateDE(&d, &e, t, &fqModulusS62, fqNegModInv62)
	}

	out := divstepsNormalize(&d, &f)

	for i := range f {
		f[i], g[i], d[i], e[i] = 0, 0, 0, 0
	}

	var z Elt
	z.SetLimbs(out, 1, true)
	return z
}
