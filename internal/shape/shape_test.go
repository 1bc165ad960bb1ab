package shape

import "testing"

func TestCalcIndexWorkedExample(t *testing.T) {
	s := New(2, 3, 4)

	got := s.CalcIndex([]uint{1, 2, 3})
	if got == nil || *got != 23 {
		t.Fatalf("expected 23, got %v", got)
	}
}

func TestCalcRangeWorkedExample(t *testing.T) {
	s := New(2, 3, 4)

	begin, end, ok := s.CalcRange([]uint{1})
	if !ok || begin != 12 || end != 23 {
		t.Fatalf("expected (12,23,true), got (%d,%d,%v)", begin, end, ok)
	}
}

func TestCalcRangeFullySpecified(t *testing.T) {
	s := New(2, 3, 4)

	begin, end, ok := s.CalcRange([]uint{1, 2, 3})
	if !ok || begin != 23 || end != 23 {
		t.Fatalf("expected (23,23,true), got (%d,%d,%v)", begin, end, ok)
	}
}

func TestUnknownDimensionPropagates(t *testing.T) {
	s := Shape{D(2), nil, D(4)}

	if idx := s.CalcIndex([]uint{0, 0, 0}); idx != nil {
		t.Fatalf("expected nil index when a dimension is unknown, got %v", *idx)
	}

	if _, _, ok := s.CalcRange([]uint{0}); ok {
		t.Fatalf("expected calc_range to fail when a needed dimension is unknown")
	}

	if total := s.Total(); total != nil {
		t.Fatalf("expected nil total when a dimension is unknown")
	}
}

func TestScalarShape(t *testing.T) {
	var s Shape

	if total := s.Total(); total == nil || *total != 1 {
		t.Fatalf("expected scalar total 1, got %v", total)
	}

	idx := s.CalcIndex(nil)
	if idx == nil || *idx != 0 {
		t.Fatalf("expected scalar index 0, got %v", idx)
	}
}

type fakeExpr struct {
	kind  string
	value uint64
	l, r  *fakeExpr
}

type fakeBuilder struct{}

func (fakeBuilder) Lit(v uint64) *fakeExpr              { return &fakeExpr{kind: "lit", value: v} }
func (fakeBuilder) Mul(a, b *fakeExpr) *fakeExpr         { return &fakeExpr{kind: "mul", l: a, r: b} }
func (fakeBuilder) Add(a, b *fakeExpr) *fakeExpr         { return &fakeExpr{kind: "add", l: a, r: b} }

func TestCalcIndexExprMatchesArity(t *testing.T) {
	s := New(2, 3, 4)
	idx := []*fakeExpr{{kind: "var"}, {kind: "var"}, {kind: "var"}}

	expr, ok := CalcIndexExpr[*fakeExpr](s, idx, fakeBuilder{})
	if !ok {
		t.Fatalf("expected CalcIndexExpr to succeed")
	}

	if expr.kind != "add" {
		t.Fatalf("expected top-level add, got %s", expr.kind)
	}
}

func TestEqual(t *testing.T) {
	if !Equal(New(1, 2), New(1, 2)) {
		t.Fatalf("expected equal shapes to compare equal")
	}

	if Equal(Shape{D(1), nil}, Shape{D(1), D(2)}) {
		t.Fatalf("expected unknown dimension to compare unequal to a known one")
	}

	if !Equal(Shape{D(1), nil}, Shape{D(1), nil}) {
		t.Fatalf("expected two unknown dimensions to compare equal")
	}
}
