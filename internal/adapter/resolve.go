package adapter

import (
	"github.com/lahfir/agent-desktop-sub000/internal/desktoperr"
	"github.com/lahfir/agent-desktop-sub000/internal/model"
	"github.com/lahfir/agent-desktop-sub000/internal/registry"
	"github.com/lahfir/agent-desktop-sub000/internal/roles"
)

// maxWalkDepth is the absolute ceiling enforced regardless of a
// caller's max_depth, matching C2/C3's 50-level cap.
const maxWalkDepth = 50

// ResolveAgainstRoot implements the Registry's resolution algorithm
// (C3): descend the live tree from root up to depth 50, guarded by an
// ancestor-scoped cycle set, looking for a candidate whose canonical
// role and derived name match the stored entry and whose bounds hash
// matches if one was recorded. If no exact match is found the search
// retries once with the bounds constraint relaxed, permitting
// re-resolution after layout drift. Shared by every backend's
// ResolveElement so the traversal-and-matching policy lives in one
// place regardless of which native API walked the tree.
func ResolveAgainstRoot(root Element, entry model.RefEntry) (Element, error) {
	if found := search(root, entry, true, map[uintptr]bool{}, 0); found != nil {
		return found, nil
	}
	if found := search(root, entry, false, map[uintptr]bool{}, 0); found != nil {
		registry.LogRelaxedResolution(entry.IdentityLabel())
		return found, nil
	}
	return nil, desktoperr.StaleRefError("")
}

func search(el Element, entry model.RefEntry, requireBounds bool, ancestors map[uintptr]bool, depth int) Element {
	if el == nil || depth > maxWalkDepth {
		return nil
	}
	addr := el.Address()
	if ancestors[addr] {
		return nil
	}
	ancestors[addr] = true
	defer delete(ancestors, addr)

	attrs := el.Attrs()
	role := roles.ToCanonical(attrs.Role)
	name := deriveName(attrs)

	if matches(role, name, entry, el, requireBounds) {
		return el
	}

	for _, child := range el.Children() {
		if found := search(child, entry, requireBounds, ancestors, depth+1); found != nil {
			return found
		}
	}
	return nil
}

func matches(role, name string, entry model.RefEntry, el Element, requireBounds bool) bool {
	if role != entry.Role {
		return false
	}
	if name != entry.Name {
		return false
	}
	if requireBounds && entry.BoundsHash != nil {
		b, ok := el.Bounds()
		if !ok || b.BoundsHash() != *entry.BoundsHash {
			return false
		}
	}
	return true
}

func deriveName(attrs ElementAttrs) string {
	if attrs.Title != "" {
		return attrs.Title
	}
	return attrs.Description
}
