package intern

import "testing"

func TestInsertStrIsIdempotent(t *testing.T) {
	tbl := New()

	a := tbl.InsertStr("clk")
	b := tbl.InsertStr("clk")

	if a != b {
		t.Fatalf("expected same id for repeated insert, got %d and %d", a, b)
	}

	if got := tbl.GetStr(a); got != "clk" {
		t.Fatalf("expected %q, got %q", "clk", got)
	}
}

func TestIdsNeverRecycle(t *testing.T) {
	tbl := New()

	a := tbl.InsertStr("a")
	b := tbl.InsertStr("b")

	if a == b {
		t.Fatalf("distinct strings must get distinct ids")
	}

	if id, ok := tbl.GetStrID("c"); ok {
		t.Fatalf("expected c to be unknown, got %d", id)
	}
}

func TestPathsAreSeparateFromStrings(t *testing.T) {
	tbl := New()

	s := tbl.InsertStr("top")
	p := tbl.InsertPath("top")

	// Both start counting from zero independently, so this is only a
	// sanity check that the two domains don't share storage.
	if tbl.GetStr(s) != tbl.GetPath(p) {
		t.Fatalf("expected matching text for independently interned string/path")
	}
}
