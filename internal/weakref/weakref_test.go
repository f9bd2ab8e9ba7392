package weakref

import "testing"

func TestRef_ZeroValueIsEmpty(t *testing.T) {
	var r Ref[string]

	if !r.Empty() {
		t.Error("expected zero ref to be empty")
	}
	if v, ok := r.Get(); ok || v != "" {
		t.Errorf("expected empty get, got %q, %v", v, ok)
	}
}

func TestRef_GetWhileAlive(t *testing.T) {
	anchor := NewAnchor("delegate")
	r := anchor.Ref()

	v, ok := r.Get()
	if !ok {
		t.Fatal("expected live reference")
	}
	if v != "delegate" {
		t.Errorf("expected 'delegate', got %q", v)
	}
}

func TestRef_ReleaseEmptiesAllRefs(t *testing.T) {
	type ctx struct{ name string }
	anchor := NewAnchor(&ctx{name: "window"})
	first := anchor.Ref()
	second := anchor.Ref()

	anchor.Release()

	for i, r := range []Ref[*ctx]{first, second} {
		if !r.Empty() {
			t.Errorf("ref %d: expected empty after release", i)
		}
		if v, ok := r.Get(); ok || v != nil {
			t.Errorf("ref %d: expected nil, false; got %v, %v", i, v, ok)
		}
	}
}

func TestAnchor_ReleaseIsIdempotent(t *testing.T) {
	anchor := NewAnchor(42)
	anchor.Release()
	anchor.Release()

	if anchor.Alive() {
		t.Error("expected anchor to stay released")
	}
}

func TestAnchor_NilIsNotAlive(t *testing.T) {
	var anchor *Anchor[int]
	if anchor.Alive() {
		t.Error("expected nil anchor to report not alive")
	}
}
