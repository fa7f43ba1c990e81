// Package tree implements the Accessibility Tree Builder (C2): a
// recursive, depth-first walk of a live adapter.Element graph into a
// canonical model.AccessibilityNode, with cycle protection, a depth
// cap, batched attribute fetches, and Registry handle assignment for
// interactive nodes. Ported from the original's
// crates/core/src/snapshot.rs allocate_refs pass, generalized off the
// adapter.Element seam instead of a single native API.
package tree

import (
	"github.com/lahfir/agent-desktop-sub000/internal/adapter"
	"github.com/lahfir/agent-desktop-sub000/internal/desktoperr"
	"github.com/lahfir/agent-desktop-sub000/internal/model"
	"github.com/lahfir/agent-desktop-sub000/internal/roles"
)

// absoluteDepthCap is enforced regardless of the caller's requested
// max_depth, to stop runaway native graphs.
const absoluteDepthCap = 50

// labelScanDepth bounds the "recover a label from a single immediate
// static-text child" special case.
const labelScanDepth = 5

// Build walks root into a canonical tree, allocating handles into refs
// for every interactive node it encounters. app is the owning
// application label stamped onto each allocated RefEntry.
func Build(root adapter.Element, opts adapter.TreeOptions, refs *model.RefMap, app string) (model.AccessibilityNode, error) {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 || maxDepth > absoluteDepthCap {
		maxDepth = absoluteDepthCap
	}

	node, ok := walk(root, opts, maxDepth, refs, app, map[uintptr]bool{}, 0)
	if !ok {
		return model.AccessibilityNode{}, desktoperr.New(desktoperr.Internal, "tree walk produced no root element")
	}

	if opts.InteractiveOnly {
		pruned, keep := pruneInteractiveOnly(node)
		if !keep {
			return model.AccessibilityNode{}, nil
		}
		return pruned, nil
	}
	return node, nil
}

func walk(el adapter.Element, opts adapter.TreeOptions, maxDepth int, refs *model.RefMap, app string, ancestors map[uintptr]bool, depth int) (model.AccessibilityNode, bool) {
	if el == nil || depth > maxDepth {
		return model.AccessibilityNode{}, false
	}
	addr := el.Address()
	if ancestors[addr] {
		return model.AccessibilityNode{}, false
	}
	ancestors[addr] = true
	defer delete(ancestors, addr)

	attrs := el.Attrs()
	role := roles.ToCanonical(attrs.Role)
	if role == roles.Unknown && attrs.Role == "" && depth == 0 {
		return model.AccessibilityNode{}, false
	}

	name := attrs.Title
	if name == "" {
		name = attrs.Description
	}
	if role == roles.StaticText && name == "" {
		name = attrs.Value
	}

	node := model.AccessibilityNode{Role: role, Name: name, Description: attrs.Description}
	if role != roles.StaticText {
		node.Value = attrs.Value
	}

	if attrs.Focused {
		node.States = append(node.States, "focused")
	}
	if !attrs.Enabled {
		node.States = append(node.States, "disabled")
	}
	if attrs.Selected {
		node.States = append(node.States, "selected")
	}

	var boundsForHash *model.Rect
	if opts.IncludeBounds {
		if b, ok := el.Bounds(); ok {
			node.Bounds = &b
			boundsForHash = &b
		}
	} else if b, ok := el.Bounds(); ok {
		// bounds_hash is computed before bounds are stripped even when
		// the caller didn't ask for bounds in the output, matching the
		// original's ordering.
		boundsForHash = &b
	}

	children := el.Children()
	for _, child := range children {
		if cn, ok := walk(child, opts, maxDepth, refs, app, ancestors, depth+1); ok {
			node.Children = append(node.Children, cn)
		}
	}

	if node.Name == "" && depth < labelScanDepth {
		for _, child := range children {
			ca := child.Attrs()
			if roles.ToCanonical(ca.Role) == roles.StaticText && ca.Title != "" {
				node.Name = ca.Title
				break
			}
		}
	}

	if refs != nil && roles.IsInteractive(role) {
		entry := model.RefEntry{
			PID:     el.PID(),
			Role:    role,
			Name:    node.Name,
			Value:   node.Value,
			States:  node.States,
			Bounds:  boundsForHash,
			Actions: roles.ActionsFor(role),
			App:     app,
		}
		if boundsForHash != nil {
			h := boundsForHash.BoundsHash()
			entry.BoundsHash = &h
		}
		node.Handle = refs.Allocate(entry)
	}

	return node, true
}

// pruneInteractiveOnly removes branches that contain no handle-bearing
// element and have no children, applied bottom-up after the full walk.
func pruneInteractiveOnly(n model.AccessibilityNode) (model.AccessibilityNode, bool) {
	var kept []model.AccessibilityNode
	for _, c := range n.Children {
		if p, keep := pruneInteractiveOnly(c); keep {
			kept = append(kept, p)
		}
	}
	n.Children = kept
	if n.Handle != "" || len(kept) > 0 {
		return n, true
	}
	return n, false
}
