// Package model holds the host-agnostic data types shared by every
// subsystem: the accessibility tree node shape, the action vocabulary,
// the reference registry's persisted records, and the JSON envelope
// emitted on stdout.
package model

import (
	"hash/fnv"
)

// Rect is a screen rectangle in points, matching the host accessibility
// API's coordinate space (not the normalized 0-1000 scheme some
// LLM-vision tooling uses elsewhere).
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BoundsHash derives an approximate identity for a Rect by quantizing
// each coordinate to hundredths (truncating) before hashing. Two rects
// whose coordinates truncate to the same hundredths hash identically;
// jitter that crosses a hundredth boundary changes the hash.
func (r Rect) BoundsHash() uint64 {
	h := fnv.New64a()
	q := [4]int64{
		int64(r.X * 100),
		int64(r.Y * 100),
		int64(r.Width * 100),
		int64(r.Height * 100),
	}
	var buf [32]byte
	for i, v := range q {
		u := uint64(v)
		for b := 0; b < 8; b++ {
			buf[i*8+b] = byte(u >> (8 * b))
		}
	}
	h.Write(buf[:])
	return h.Sum64()
}

// AccessibilityNode is a canonical, host-agnostic UI node produced by
// the Tree Builder. Every node has a role; children preserve source
// order; a node appears at most once per tree.
type AccessibilityNode struct {
	Role        string              `json:"role"`
	Name        string              `json:"name,omitempty"`
	Value       string              `json:"value,omitempty"`
	Description string              `json:"description,omitempty"`
	States      []string            `json:"states,omitempty"`
	Bounds      *Rect               `json:"bounds,omitempty"`
	Handle      string              `json:"handle,omitempty"`
	Children    []AccessibilityNode `json:"children,omitempty"`
}

// HasState reports whether the node carries the given state label.
func (n *AccessibilityNode) HasState(state string) bool {
	for _, s := range n.States {
		if s == state {
			return true
		}
	}
	return false
}

// IdentityKey is the child-pairing key used by the differ and by
// path formatting: "role:name" when the node has a name, else bare
// "role".
func (n *AccessibilityNode) IdentityKey() string {
	if n.Name != "" {
		return n.Role + ":" + n.Name
	}
	return n.Role
}
