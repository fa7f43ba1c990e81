package model

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// handlePattern is the handle lexical rule: "@e" followed by one or
// more decimal digits, total length 3..12.
var handlePattern = regexp.MustCompile(`^@e[0-9]+$`)

// ValidHandle reports whether s satisfies the handle grammar.
func ValidHandle(s string) bool {
	if len(s) < 3 || len(s) > 12 {
		return false
	}
	return handlePattern.MatchString(s)
}

// RefEntry is a snapshot-scoped descriptor for one element: enough
// information to re-locate its live element with tolerance for
// position drift, but never a native pointer.
type RefEntry struct {
	PID        int      `json:"pid"`
	Role       string   `json:"role"`
	Name       string   `json:"name,omitempty"`
	Value      string   `json:"value,omitempty"`
	States     []string `json:"states,omitempty"`
	Bounds     *Rect    `json:"bounds,omitempty"`
	BoundsHash *uint64  `json:"bounds_hash,omitempty"`
	Actions    []string `json:"actions,omitempty"`
	App        string   `json:"app,omitempty"`
}

// IdentityLabel renders a human-readable "role:name" description of the
// entry for diagnostics that have no handle string at hand (e.g. a
// resolution retry that only carries the stored entry, not its key).
func (e RefEntry) IdentityLabel() string {
	if e.Name == "" {
		return e.Role
	}
	return e.Role + ":" + e.Name
}

// RefMap is the handle -> RefEntry table for one snapshot. Allocation
// order is preserved via a monotonic counter; handles are unique within
// a RefMap.
type RefMap struct {
	Entries map[string]RefEntry `json:"entries"`
	counter int
}

// NewRefMap creates an empty RefMap with the allocation counter at zero.
func NewRefMap() *RefMap {
	return &RefMap{Entries: make(map[string]RefEntry)}
}

// Allocate assigns the next handle in sequence to entry and records it.
// Allocating K entries in sequence from a fresh RefMap yields
// @e1 @e2 ... @eK.
func (m *RefMap) Allocate(entry RefEntry) string {
	m.counter++
	handle := fmt.Sprintf("@e%d", m.counter)
	m.Entries[handle] = entry
	return handle
}

// Get returns the RefEntry for handle, if present.
func (m *RefMap) Get(handle string) (RefEntry, bool) {
	e, ok := m.Entries[handle]
	return e, ok
}

// Len reports the number of allocated entries.
func (m *RefMap) Len() int {
	return len(m.Entries)
}

// refMapWire is the JSON-serializable shape; the allocation counter is
// not persisted and is reset to zero on load, since the
// only thing that matters after load is "what handles exist", not
// "what the next one would have been" — a RefMap is never appended to
// after being loaded from disk.
type refMapWire struct {
	Entries map[string]RefEntry `json:"entries"`
}

// MarshalJSON implements json.Marshaler.
func (m *RefMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(refMapWire{Entries: m.Entries})
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *RefMap) UnmarshalJSON(data []byte) error {
	var w refMapWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Entries == nil {
		w.Entries = make(map[string]RefEntry)
	}
	m.Entries = w.Entries
	m.counter = 0
	return nil
}
