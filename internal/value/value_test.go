package value

import (
	"math/big"
	"testing"
)

func TestAddKnownValuesMatchesModularArithmetic(t *testing.T) {
	a := New(5, 8, false)
	b := New(9, 8, false)

	sum := Add(a, b, 0)

	want := new(big.Int).Mod(big.NewInt(14), new(big.Int).Lsh(big.NewInt(1), 8))
	if sum.BigInt().Cmp(want) != 0 {
		t.Fatalf("expected %s, got %s", want, sum.BigInt())
	}

	if !sum.IsFullyKnown() {
		t.Fatalf("expected fully known result")
	}
}

func TestAddWithUnknownBitPoisonsCarryChain(t *testing.T) {
	a := Unknown(4, false) // all bits X
	b := New(1, 4, false)

	sum := Add(a, b, 0)

	if sum.IsFullyKnown() {
		t.Fatalf("expected sum to retain unknown bits")
	}
}

func TestWildcardEqualityWorkedExamples(t *testing.T) {
	lhs1 := New(0b0000, 4, false)

	// Build 00XX directly: low two bits X, high two known 0.
	x := Concat(New(0, 2, false), Unknown(2, false))

	if got := WildcardEq(lhs1, x); got.payload.Int64() != 1 {
		t.Fatalf("expected 0000 ==? 00XX = 1, got %v", got)
	}

	lhs2 := New(0b0100, 4, false)
	if got := WildcardEq(lhs2, x); got.payload.Int64() != 0 {
		t.Fatalf("expected 0100 ==? 00XX = 0, got %v", got)
	}
}

func TestDivisionByZeroYieldsAllUnknown(t *testing.T) {
	a := New(10, 8, false)
	z := New(0, 8, false)

	got := UDiv(a, z, 0)
	if got.IsFullyKnown() {
		t.Fatalf("expected division by zero to yield all-unknown")
	}
}

func TestDivisionByUnknownYieldsAllUnknown(t *testing.T) {
	a := New(10, 8, false)
	u := Unknown(8, false)

	got := URem(a, u, 0)
	if got.IsFullyKnown() {
		t.Fatalf("expected modulus by unknown divisor to yield all-unknown")
	}
}

func TestAndDominance(t *testing.T) {
	zero := New(0, 1, false)
	unk := Unknown(1, false)

	got := And(zero, unk, 0)
	if !got.IsFullyKnown() || got.payload.Sign() != 0 {
		t.Fatalf("expected 0 AND X = 0, got %v (known=%v)", got, got.IsFullyKnown())
	}
}

func TestOrDominance(t *testing.T) {
	one := New(1, 1, false)
	unk := Unknown(1, false)

	got := Or(one, unk, 0)
	if !got.IsFullyKnown() || got.payload.Sign() == 0 {
		t.Fatalf("expected 1 OR X = 1, got %v (known=%v)", got, got.IsFullyKnown())
	}
}

func TestPartSelectAndConcatRoundtrip(t *testing.T) {
	v := New(0b1011, 4, false)

	hi := v.PartSelect(3, 2)
	lo := v.PartSelect(1, 0)

	joined := Concat(hi, lo)
	if joined.BigInt().Cmp(v.BigInt()) != 0 {
		t.Fatalf("expected concat(partselect) to roundtrip, got %s want %s", joined.BigInt(), v.BigInt())
	}
}

func TestExpandSignExtends(t *testing.T) {
	neg1 := New(0b1111, 4, true)

	wide := neg1.Expand(8)
	if wide.BigInt().Uint64() != 0xff {
		t.Fatalf("expected sign-extended 0xff, got %x", wide.BigInt())
	}
}

func TestExpandZeroExtendsUnsigned(t *testing.T) {
	v := New(0b1111, 4, false)

	wide := v.Expand(8)
	if wide.BigInt().Uint64() != 0x0f {
		t.Fatalf("expected zero-extended 0x0f, got %x", wide.BigInt())
	}
}
