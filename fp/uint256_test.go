package fp

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/holiman/uint256"
)

var bigP = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(19))

func reverse32(b [32]byte) [32]byte {
	var out [32]byte
	for i := range b {
		out[i] = b[31-i]
	}
	return out
}

func eltFromBig(t *testing.T, v *big.Int) Elt {
	reduced := new(big.Int).Mod(v, bigP)
	var le [32]byte
	reduced.FillBytes(le[:])
	le = reverse32(le)
	var e Elt
	if _, err := e.SetCanonicalBytes(le[:]); err != nil {
		t.Fatalf("eltFromBig: %v", err)
	}
	return e
}

func uint256FromElt(e Elt) *uint256.Int {
	var le [32]byte
	e.Bytes(le[:])
	be := reverse32(le)
	return new(uint256.Int).SetBytes(be[:])
}

func uint256Modulus() *uint256.Int {
	var be [32]byte
	bigP.FillBytes(be[:])
	return new(uint256.Int).SetBytes(be[:])
}

// TestAddMatchesUint256 cross-checks this package's modular addition
// against holiman/uint256's independent big-integer implementation on
// random wide inputs, reduced modulo p before comparison.
func TestAddMatchesUint256(t *testing.T) {
	modulus := uint256Modulus()
	for i := 0; i < 64; i++ {
		var buf [64]byte
		if _, err := rand.Read(buf[:]); err != nil {
			t.Fatal(err)
		}
		av := new(big.Int).SetBytes(buf[:32])
		bv := new(big.Int).SetBytes(buf[32:])

		a := eltFromBig(t, av)
		b := eltFromBig(t, bv)
		var sum Elt
		sum.Add(&a, &b)

		ua := uint256FromElt(a)
		ub := uint256FromElt(b)
		var uSum uint256.Int
		uSum.AddMod(ua, ub, modulus)

		if got, want := uint256FromElt(sum), &uSum; got.Cmp(want) != 0 {
			t.Fatalf("round %d: Add mismatch: got %s, want %s", i, got, want)
		}
	}
}

// TestMulMatchesUint256 cross-checks modular multiplication the same way.
func TestMulMatchesUint256(t *testing.T) {
	modulus := uint256Modulus()
	for i := 0; i < 64; i++ {
		var buf [64]byte
		if _, err := rand.Read(buf[:]); err != nil {
			t.Fatal(err)
		}
		av := new(big.Int).SetBytes(buf[:32])
		bv := new(big.Int).SetBytes(buf[32:])

		a := eltFromBig(t, av)
		b := eltFromBig(t, bv)
		var prod Elt
		prod.Mul(&a, &b)

		ua := uint256FromElt(a)
		ub := uint256FromElt(b)
		var uProd uint256.Int
		uProd.MulMod(ua, ub, modulus)

		if got, want := uint256FromElt(prod), &uProd; got.Cmp(want) != 0 {
			t.Fatalf("round %d: Mul mismatch: got %s, want %s", i, got, want)
		}
	}
}
