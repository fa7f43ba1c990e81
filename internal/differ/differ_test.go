package differ

import (
	"testing"

	"github.com/lahfir/agent-desktop-sub000/internal/model"
)

func buildPanelTree(secondChildName string) model.AccessibilityNode {
	return model.AccessibilityNode{
		Role: "panel",
		Children: []model.AccessibilityNode{
			{Role: "button", Name: "A"},
			{Role: "button", Name: secondChildName},
		},
	}
}

func nodeCount(n model.AccessibilityNode) int {
	count := 1
	for _, c := range n.Children {
		count += nodeCount(c)
	}
	return count
}

func TestDiffIdenticalTreeIsAllUnchanged(t *testing.T) {
	tree := buildPanelTree("B")
	result := Diff(tree, tree)

	if result.Summary.Added != 0 || result.Summary.Removed != 0 || result.Summary.Modified != 0 {
		t.Fatalf("Diff(T,T) = %+v, want all zero except unchanged", result.Summary)
	}
	if want := nodeCount(tree); result.Summary.Unchanged != want {
		t.Errorf("Unchanged = %d, want %d (total node count)", result.Summary.Unchanged, want)
	}
}

func TestDiffAddRemoveScenario(t *testing.T) {
	// Old tree {role:"panel", children:[{role:"button", name:"A"},{role:"button", name:"B"}]}
	// New tree {role:"panel", children:[{role:"button", name:"A"},{role:"button", name:"C"}]}
	old := buildPanelTree("B")
	newTree := buildPanelTree("C")

	result := Diff(old, newTree)

	if result.Summary.Added != 1 || result.Summary.Removed != 1 || result.Summary.Modified != 0 || result.Summary.Unchanged != 1 {
		t.Fatalf("Diff summary = %+v, want {added:1 removed:1 modified:0 unchanged:1}", result.Summary)
	}

	var sawRemovedB, sawAddedC bool
	for _, e := range result.Entries {
		switch {
		case e.Kind == Removed && hasSuffix(e.Path, `button["B"][0]`):
			sawRemovedB = true
		case e.Kind == Added && hasSuffix(e.Path, `button["C"][0]`):
			sawAddedC = true
		}
	}
	if !sawRemovedB {
		t.Errorf("expected a removal entry ending in button[\"B\"][0], got %+v", result.Entries)
	}
	if !sawAddedC {
		t.Errorf("expected an addition entry ending in button[\"C\"][0], got %+v", result.Entries)
	}
}

func TestDiffModifiedFieldDetection(t *testing.T) {
	old := buildPanelTree("B")
	newTree := buildPanelTree("B")
	newTree.Children[0].Value = "changed"

	result := Diff(old, newTree)

	if result.Summary.Modified != 1 {
		t.Fatalf("Modified = %d, want 1", result.Summary.Modified)
	}
	found := false
	for _, e := range result.Entries {
		if e.Kind == Modified {
			found = true
			if len(e.Changes) != 1 || e.Changes[0].Field != "value" {
				t.Errorf("expected a single 'value' field change, got %+v", e.Changes)
			}
		}
	}
	if !found {
		t.Fatal("expected a modified entry")
	}
}

func TestDiffPathIsPrefixOfDescendantPaths(t *testing.T) {
	old := buildPanelTree("B")
	newTree := buildPanelTree("B")
	newTree.Children[0].Value = "changed"

	result := Diff(old, newTree)
	root := rootPath(&newTree)
	for _, e := range result.Entries {
		if len(e.Path) < len(root) || e.Path[:len(root)] != root {
			t.Errorf("entry path %q is not prefixed by root path %q", e.Path, root)
		}
	}
}

func TestDiffUnnamedSiblingsPairByRoleOnly(t *testing.T) {
	old := model.AccessibilityNode{
		Role: "list",
		Children: []model.AccessibilityNode{
			{Role: "cell", Value: "1"},
			{Role: "cell", Value: "2"},
		},
	}
	newTree := model.AccessibilityNode{
		Role: "list",
		Children: []model.AccessibilityNode{
			{Role: "cell", Value: "1"},
			{Role: "cell", Value: "3"},
		},
	}

	result := Diff(old, newTree)
	if result.Summary.Added != 0 || result.Summary.Removed != 0 {
		t.Fatalf("expected purely role-based pairing with no add/remove, got %+v", result.Summary)
	}
	if result.Summary.Modified != 1 {
		t.Fatalf("expected exactly one modified cell, got %+v", result.Summary)
	}
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}
