package model

import (
	"reflect"
	"testing"
)

func TestValidHandle(t *testing.T) {
	cases := []struct {
		handle string
		want   bool
	}{
		{"@e1", true},
		{"@e42", true},
		{"@e1234567890", true},  // length 12
		{"@e12345678901", false}, // length 13, over cap
		{"@e", false},
		{"e1", false},
		{"@ex", false},
		{"@e1x", false},
		{"", false},
		{"@e0", true},
	}
	for _, c := range cases {
		if got := ValidHandle(c.handle); got != c.want {
			t.Errorf("ValidHandle(%q) = %v, want %v", c.handle, got, c.want)
		}
	}
}

func TestRefMapAllocateSequential(t *testing.T) {
	m := NewRefMap()
	var handles []string
	for i := 0; i < 5; i++ {
		handles = append(handles, m.Allocate(RefEntry{Role: "button"}))
	}
	want := []string{"@e1", "@e2", "@e3", "@e4", "@e5"}
	for i, h := range handles {
		if h != want[i] {
			t.Errorf("handle[%d] = %q, want %q", i, h, want[i])
		}
	}
	if m.Len() != 5 {
		t.Errorf("Len() = %d, want 5", m.Len())
	}
}

func TestRefMapGetMissing(t *testing.T) {
	m := NewRefMap()
	m.Allocate(RefEntry{Role: "button"})
	if _, ok := m.Get("@e99"); ok {
		t.Error("expected @e99 to be absent")
	}
}

func TestRefMapRoundTrip(t *testing.T) {
	m := NewRefMap()
	h1 := m.Allocate(RefEntry{Role: "button", Name: "OK", PID: 123})
	h2 := m.Allocate(RefEntry{Role: "checkbox", Name: "Remember me"})

	data, err := m.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	loaded := NewRefMap()
	if err := loaded.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}

	for _, h := range []string{h1, h2} {
		got, ok := loaded.Get(h)
		if !ok {
			t.Fatalf("handle %s missing after round-trip", h)
		}
		want, _ := m.Get(h)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("handle %s round-tripped to %+v, want %+v", h, got, want)
		}
	}
}

func TestBoundsHashStableUnderTinyJitter(t *testing.T) {
	a := Rect{X: 10.001, Y: 20.001, Width: 100, Height: 50}
	b := Rect{X: 10.002, Y: 20.002, Width: 100, Height: 50}
	if a.BoundsHash() != b.BoundsHash() {
		t.Error("expected bounds hash to be stable under sub-hundredth jitter")
	}
}

func TestBoundsHashDiffersOnRealMove(t *testing.T) {
	a := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	b := Rect{X: 50, Y: 20, Width: 100, Height: 50}
	if a.BoundsHash() == b.BoundsHash() {
		t.Error("expected bounds hash to differ after a real position change")
	}
}

func TestAccessibilityNodeIdentityKey(t *testing.T) {
	named := AccessibilityNode{Role: "button", Name: "OK"}
	if got := named.IdentityKey(); got != "button:OK" {
		t.Errorf("IdentityKey() = %q, want %q", got, "button:OK")
	}
	anon := AccessibilityNode{Role: "group"}
	if got := anon.IdentityKey(); got != "group" {
		t.Errorf("IdentityKey() = %q, want %q", got, "group")
	}
}

func TestAccessibilityNodeHasState(t *testing.T) {
	n := AccessibilityNode{States: []string{"focused", "disabled"}}
	if !n.HasState("focused") {
		t.Error("expected HasState(focused) to be true")
	}
	if n.HasState("selected") {
		t.Error("expected HasState(selected) to be false")
	}
}
