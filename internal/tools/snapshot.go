package tools

import (
	"github.com/lahfir/agent-desktop-sub000/internal/adapter"
	"github.com/lahfir/agent-desktop-sub000/internal/desktoperr"
	"github.com/lahfir/agent-desktop-sub000/internal/differ"
	"github.com/lahfir/agent-desktop-sub000/internal/model"
	"github.com/lahfir/agent-desktop-sub000/internal/registry"
	"github.com/lahfir/agent-desktop-sub000/internal/roles"
	"github.com/lahfir/agent-desktop-sub000/internal/snapshotstore"
	"github.com/lahfir/agent-desktop-sub000/internal/tree"
)

// SnapshotArgs selects which window/surface the snapshot verb walks.
type SnapshotArgs struct {
	App             string
	WindowID        string
	MaxDepth        int
	IncludeBounds   bool
	InteractiveOnly bool
}

// Snapshot builds a fresh accessibility tree rooted at the target
// window, allocates a new ref map for every handle it finds, and
// persists both the ref map and a SnapshotRecord baseline for later
// diff-snapshot calls.
func (rt *Runtime) Snapshot(args SnapshotArgs) (*model.Envelope, error) {
	win, app, err := rt.resolveTargetWindow(args.App, args.WindowID)
	if err != nil {
		return nil, err
	}

	root, err := rt.Adapter.AppRoot(app.PID)
	if err != nil {
		return nil, err
	}

	opts := adapter.TreeOptions{
		MaxDepth:        args.MaxDepth,
		IncludeBounds:   args.IncludeBounds,
		InteractiveOnly: args.InteractiveOnly,
	}
	if opts.MaxDepth == 0 {
		opts = adapter.DefaultTreeOptions()
		opts.InteractiveOnly = args.InteractiveOnly
	}

	refs := model.NewRefMap()
	node, err := tree.Build(root, opts, refs, app.Name)
	if err != nil {
		return nil, err
	}

	if err := registry.Save(registry.Path(rt.StateDir), refs); err != nil {
		return nil, err
	}
	record := snapshotstore.RecordFromTree(node, app.Name, win.ID, win.Title)
	if err := snapshotstore.Save(snapshotstore.Path(rt.StateDir), record); err != nil {
		return nil, err
	}

	return rt.Envelope("snapshot", map[string]any{
		"tree":      node,
		"app":       app.Name,
		"window_id": win.ID,
		"window":    win.Title,
		"ref_count": refs.Len(),
	}), nil
}

// resolveTargetWindow finds the WindowInfo and owning AppInfo for a
// snapshot/tree-root request: an explicit window id wins, else the
// named app's focused (or only) window, else the globally focused
// window.
func (rt *Runtime) resolveTargetWindow(appName, windowID string) (model.WindowInfo, model.AppInfo, error) {
	if windowID != "" {
		wins, err := rt.Adapter.ListWindows(adapter.WindowFilter{})
		if err != nil {
			return model.WindowInfo{}, model.AppInfo{}, err
		}
		for _, w := range wins {
			if w.ID == windowID {
				return w, model.AppInfo{Name: w.App, PID: w.PID}, nil
			}
		}
		return model.WindowInfo{}, model.AppInfo{}, desktoperr.Newf(desktoperr.WindowNotFound, "no window with id %s", windowID)
	}
	if appName != "" {
		wins, err := rt.Adapter.ListWindows(adapter.WindowFilter{App: appName})
		if err != nil {
			return model.WindowInfo{}, model.AppInfo{}, err
		}
		if len(wins) == 0 {
			return model.WindowInfo{}, model.AppInfo{}, desktoperr.Newf(desktoperr.WindowNotFound, "application %q has no windows", appName)
		}
		for _, w := range wins {
			if w.Focused {
				return w, model.AppInfo{Name: w.App, PID: w.PID}, nil
			}
		}
		return wins[0], model.AppInfo{Name: wins[0].App, PID: wins[0].PID}, nil
	}
	win, err := rt.Adapter.FocusedWindow()
	if err != nil {
		return model.WindowInfo{}, model.AppInfo{}, err
	}
	return win, model.AppInfo{Name: win.App, PID: win.PID}, nil
}

// Find resolves a handle and reports its current role/name/value/states
// without performing any action.
func (rt *Runtime) Find(handle string) (*model.Envelope, error) {
	entry, el, err := rt.resolveHandle(handle)
	if err != nil {
		return nil, err
	}
	attrs := el.Attrs()
	return rt.Envelope("find", map[string]any{
		"handle": handle,
		"role":   roles.ToCanonical(attrs.Role),
		"name":   attrs.Title,
		"value":  attrs.Value,
		"app":    entry.App,
	}), nil
}

// Get is a read-only alias of Find kept distinct at the verb layer
// because callers that only want the current live value (e.g. polling a
// progress bar) shouldn't need to remember "find" reads values too.
func (rt *Runtime) Get(handle string) (*model.Envelope, error) {
	_, el, err := rt.resolveHandle(handle)
	if err != nil {
		return nil, err
	}
	value, err := rt.Adapter.ReadLiveValue(el.Native())
	if err != nil {
		return nil, err
	}
	return rt.Envelope("get", map[string]any{"handle": handle, "value": value}), nil
}

// IsChecked reports the current checked state of a toggleable element
// without invoking the dispatcher.
func (rt *Runtime) IsChecked(handle string) (*model.Envelope, error) {
	entry, el, err := rt.resolveHandle(handle)
	if err != nil {
		return nil, err
	}
	role := roles.ToCanonical(el.Attrs().Role)
	if !roles.IsToggleable(role) {
		return nil, desktoperr.Newf(desktoperr.ActionNotSupported, "role %s is not toggleable", entry.Role)
	}
	v := el.Attrs().Value
	checked := v == "1" || v == "true" || v == "on"
	return rt.Envelope("is-checked", map[string]any{"handle": handle, "checked": checked}), nil
}

// DiffSnapshot takes a fresh snapshot of the same target as the stored
// baseline and diffs the two trees, without overwriting the stored
// baseline (the caller re-runs "snapshot" explicitly to rebase).
func (rt *Runtime) DiffSnapshot(args SnapshotArgs) (*model.Envelope, error) {
	baseline, err := snapshotstore.Load(snapshotstore.Path(rt.StateDir))
	if err != nil {
		return nil, err
	}
	if baseline == nil {
		return nil, desktoperr.New(desktoperr.Internal, "no prior snapshot to diff against; run 'snapshot' first")
	}

	win, app, err := rt.resolveTargetWindow(args.App, args.WindowID)
	if err != nil {
		return nil, err
	}
	root, err := rt.Adapter.AppRoot(app.PID)
	if err != nil {
		return nil, err
	}
	opts := adapter.DefaultTreeOptions()
	opts.InteractiveOnly = args.InteractiveOnly
	refs := model.NewRefMap()
	node, err := tree.Build(root, opts, refs, app.Name)
	if err != nil {
		return nil, err
	}

	result := differ.Diff(baseline.Tree, node)
	return rt.Envelope("diff-snapshot", map[string]any{
		"window":  win.Title,
		"summary": result.Summary,
		"entries": result.Entries,
		"text":    differ.FormatText(result),
	}), nil
}
