// Package differ implements the Snapshot Differ (C5): a pure structural
// diff over two AccessibilityNode trees with stable child-pairing and
// field-level change detection. Ported operation-for-operation from
// crates/core/src/diff.rs.
package differ

import (
	"encoding/json"
	"fmt"

	"github.com/lahfir/agent-desktop-sub000/internal/model"
)

// EntryKind discriminates a DiffEntry.
type EntryKind string

const (
	Added     EntryKind = "added"
	Removed   EntryKind = "removed"
	Modified  EntryKind = "modified"
	Unchanged EntryKind = "unchanged"
)

// FieldChange records one changed field's before/after value.
type FieldChange struct {
	Field  string          `json:"field"`
	Before json.RawMessage `json:"before"`
	After  json.RawMessage `json:"after"`
}

// Entry is one line of the diff output.
type Entry struct {
	Kind    EntryKind     `json:"kind"`
	Path    string        `json:"path"`
	Changes []FieldChange `json:"changes,omitempty"`
}

// Summary carries the aggregate counts.
type Summary struct {
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Modified  int `json:"modified"`
	Unchanged int `json:"unchanged"`
}

// Result is the full output of Diff.
type Result struct {
	Entries []Entry `json:"entries"`
	Summary Summary `json:"summary"`
}

// Diff compares two trees rooted at old and new, returning an ordered
// sequence of diff entries and summary counts. Output is a pure
// function of the input trees.
func Diff(old, new_ model.AccessibilityNode) Result {
	var entries []Entry
	var summary Summary
	walk(&old, &new_, rootPath(&new_), &entries, &summary)
	return Result{Entries: entries, Summary: summary}
}

func rootPath(n *model.AccessibilityNode) string {
	return formatNodeKey(n)
}

func formatNodeKey(n *model.AccessibilityNode) string {
	if n.Name != "" {
		return fmt.Sprintf("%s[%q]", n.Role, n.Name)
	}
	return n.Role
}

// walk recurses over a paired (old,new) node, recording field changes
// on the pair itself, then pairing children and recursing into pairs,
// then emitting removals and additions for unpaired children — in that
// order, per the original's determinism rule.
func walk(old, new_ *model.AccessibilityNode, path string, entries *[]Entry, summary *Summary) {
	changes := compareFields(old, new_)
	if len(changes) > 0 {
		*entries = append(*entries, Entry{Kind: Modified, Path: path, Changes: changes})
		summary.Modified++
	} else {
		summary.Unchanged++
	}

	pairs, removedOld, addedNew := matchChildren(old.Children, new_.Children)

	for _, p := range pairs {
		childPath := buildChildPath(path, new_.Children, p.newIndex)
		walk(&old.Children[p.oldIndex], &new_.Children[p.newIndex], childPath, entries, summary)
	}

	for _, idx := range removedOld {
		c := &old.Children[idx]
		childPath := buildChildPath(path, old.Children, idx)
		*entries = append(*entries, Entry{Kind: Removed, Path: childPath})
		summary.Removed++
		collectRemoved(c, childPath, entries, summary)
	}

	for _, idx := range addedNew {
		c := &new_.Children[idx]
		childPath := buildChildPath(path, new_.Children, idx)
		*entries = append(*entries, Entry{Kind: Added, Path: childPath})
		summary.Added++
		collectAdded(c, childPath, entries, summary)
	}
}

func collectRemoved(n *model.AccessibilityNode, path string, entries *[]Entry, summary *Summary) {
	for i := range n.Children {
		childPath := buildChildPath(path, n.Children, i)
		*entries = append(*entries, Entry{Kind: Removed, Path: childPath})
		summary.Removed++
		collectRemoved(&n.Children[i], childPath, entries, summary)
	}
}

func collectAdded(n *model.AccessibilityNode, path string, entries *[]Entry, summary *Summary) {
	for i := range n.Children {
		childPath := buildChildPath(path, n.Children, i)
		*entries = append(*entries, Entry{Kind: Added, Path: childPath})
		summary.Added++
		collectAdded(&n.Children[i], childPath, entries, summary)
	}
}

type pair struct {
	oldIndex int
	newIndex int
}

// matchChildren pairs each child of the new node against the old
// children in order: for each new child, scan the old children in
// order and pair the first still-unpaired old child whose identity key
// matches. Old children that remain unpaired are removals; new
// children that remain unpaired are additions.
func matchChildren(oldChildren, newChildren []model.AccessibilityNode) (pairs []pair, removedOld, addedNew []int) {
	oldUsed := make([]bool, len(oldChildren))

	for ni := range newChildren {
		key := newChildren[ni].IdentityKey()
		matched := -1
		for oi := range oldChildren {
			if oldUsed[oi] {
				continue
			}
			if oldChildren[oi].IdentityKey() == key {
				matched = oi
				break
			}
		}
		if matched >= 0 {
			oldUsed[matched] = true
			pairs = append(pairs, pair{oldIndex: matched, newIndex: ni})
		} else {
			addedNew = append(addedNew, ni)
		}
	}

	for oi, used := range oldUsed {
		if !used {
			removedOld = append(removedOld, oi)
		}
	}
	return pairs, removedOld, addedNew
}

// compareFields reports the changed fields between a paired (old,new),
// restricted to value/states/description.
func compareFields(old, new_ *model.AccessibilityNode) []FieldChange {
	var changes []FieldChange
	if old.Value != new_.Value {
		changes = append(changes, fieldChange("value", old.Value, new_.Value))
	}
	if !sameStates(old.States, new_.States) {
		changes = append(changes, fieldChange("states", old.States, new_.States))
	}
	if old.Description != new_.Description {
		changes = append(changes, fieldChange("description", old.Description, new_.Description))
	}
	return changes
}

func sameStates(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	am := make(map[string]bool, len(a))
	for _, s := range a {
		am[s] = true
	}
	for _, s := range b {
		if !am[s] {
			return false
		}
	}
	return true
}

func fieldChange(field string, before, after any) FieldChange {
	b, _ := json.Marshal(before)
	a, _ := json.Marshal(after)
	return FieldChange{Field: field, Before: b, After: a}
}

// buildChildPath appends the child at index idx's identity key (with
// sibling disambiguation) to parentPath.
func buildChildPath(parentPath string, siblings []model.AccessibilityNode, idx int) string {
	key := siblings[idx].IdentityKey()
	occurrence := 0
	for i := 0; i < idx; i++ {
		if siblings[i].IdentityKey() == key {
			occurrence++
		}
	}
	childKey := formatNodeKey(&siblings[idx])
	return fmt.Sprintf("%s/%s[%d]", parentPath, childKey, occurrence)
}

// FormatText renders a Result as the optional colorized summary
// followed by one line per entry, prefixing +/-/~.
func FormatText(r Result) string {
	out := fmt.Sprintf("added=%d removed=%d modified=%d unchanged=%d\n",
		r.Summary.Added, r.Summary.Removed, r.Summary.Modified, r.Summary.Unchanged)
	for _, e := range r.Entries {
		prefix := "~"
		switch e.Kind {
		case Added:
			prefix = "+"
		case Removed:
			prefix = "-"
		case Modified:
			prefix = "~"
		}
		out += fmt.Sprintf("%s %s\n", prefix, e.Path)
	}
	return out
}
