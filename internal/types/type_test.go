package types

import (
	"testing"

	"github.com/veryl-lang/veryl-analyzer/internal/shape"
)

func TestUnknownIsCompatibleWithEverything(t *testing.T) {
	u := Unknown()
	bit := Scalar(Bit, false)

	if !u.IsCompatible(bit) || !bit.IsCompatible(u) {
		t.Fatalf("expected Unknown to be compatible in both directions")
	}
}

func Test2StateRejects4StateSource(t *testing.T) {
	bit := Scalar(Bit, false)
	logic := Scalar(Logic, false)

	if bit.IsCompatible(logic) {
		t.Fatalf("expected a 2-state target to reject a 4-state source")
	}

	if !logic.IsCompatible(bit) {
		t.Fatalf("expected a 4-state target to accept a 2-state source")
	}
}

func TestClockAcceptsConstLiteral(t *testing.T) {
	clk := Type{Kind: Clock, Width: Scalar(Bit, false).Width}
	lit := Scalar(Bit, false)

	if !clk.IsCompatible(lit) {
		t.Fatalf("expected clock to accept a const 0/1 literal")
	}
}

func TestClockResetCastRejected(t *testing.T) {
	clk := Type{Kind: Clock}
	rst := Type{Kind: Reset}

	if clk.CanCast(rst) {
		t.Fatalf("expected reset->clock cast to be rejected")
	}

	if rst.CanCast(clk) {
		t.Fatalf("expected clock->reset cast to be rejected")
	}
}

func TestStructWidthIsSumOfMembers(t *testing.T) {
	s := StructType([]Member{
		{Type: Scalar(Logic, false).withWidth(2)},
		{Type: Scalar(Logic, false).withWidth(3)},
	})

	if w := s.Width.Total(); w == nil || *w != 5 {
		t.Fatalf("expected struct width 5, got %v", w)
	}
}

func TestUnionWidthIsFirstMember(t *testing.T) {
	u := UnionType([]Member{
		{Type: Scalar(Logic, false).withWidth(2)},
		{Type: Scalar(Logic, false).withWidth(10)},
	})

	if w := u.Width.Total(); w == nil || *w != 2 {
		t.Fatalf("expected union width to equal first member's width, got %v", w)
	}
}

// withWidth is a small test helper to build scalars of a given width.
func (t Type) withWidth(w uint) Type {
	t.Width = shape.New(w)
	return t
}
