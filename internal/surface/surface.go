// Package surface implements the Surface Engine (C6): locating the
// element root for a requested UI surface (window, menu, menubar,
// sheet, popover, alert, context menu, focused window) within a given
// application, and listing every currently open transient surface.
// Grounded on spec.md §4.6's locator table and on the ancestor/child
// walking style internal/tree and internal/dispatch already use.
package surface

import (
	"github.com/lahfir/agent-desktop-sub000/internal/adapter"
	"github.com/lahfir/agent-desktop-sub000/internal/desktoperr"
	"github.com/lahfir/agent-desktop-sub000/internal/model"
)

// Kind names the surface kinds an application root can be asked to
// locate, mirroring model.SurfaceKind plus the two directly-locatable
// ones ("window", "focused") SurfaceInfo never lists on its own.
type Kind string

const (
	KindWindow       Kind = "window"
	KindFocused      Kind = "focused"
	KindMenu         Kind = "menu"
	KindMenuBar      Kind = "menubar"
	KindSheet        Kind = "sheet"
	KindPopover      Kind = "popover"
	KindAlert        Kind = "alert"
	KindContextMenu  Kind = "context_menu"
	KindNotification Kind = "notification"
)

// Locate finds the element root for kind within the application rooted
// at appRoot, using windowID/app as a window disambiguator when kind is
// "window".
func Locate(ad adapter.PlatformAdapter, appRoot adapter.Element, kind Kind, windowID, appName string) (adapter.Element, error) {
	switch kind {
	case KindWindow:
		return locateWindow(appRoot, windowID)
	case KindFocused:
		return locateFocusedWindow(appRoot)
	case KindMenuBar:
		return locateMenuBar(appRoot)
	case KindMenu:
		return locateMenu(appRoot)
	case KindContextMenu:
		return locateContextMenu(appRoot)
	case KindSheet:
		return locateSubrole(appRoot, "AXSheet")
	case KindPopover:
		return locateSubrole(appRoot, "AXPopover")
	case KindAlert:
		return locateAlert(appRoot)
	default:
		return nil, desktoperr.Newf(desktoperr.InvalidArgs, "unknown surface kind %q", kind)
	}
}

// locateWindow picks by explicit window id if given, else by focused
// flag, else the first child window.
func locateWindow(appRoot adapter.Element, windowID string) (adapter.Element, error) {
	windows := childrenWithRole(appRoot, "AXWindow")
	if len(windows) == 0 {
		return nil, desktoperr.New(desktoperr.WindowNotFound, "application has no windows")
	}
	if windowID != "" {
		for _, w := range windows {
			if windowAddressID(w) == windowID {
				return w, nil
			}
		}
		return nil, desktoperr.Newf(desktoperr.WindowNotFound, "no window with id %s", windowID)
	}
	for _, w := range windows {
		if w.Attrs().Focused {
			return w, nil
		}
	}
	return windows[0], nil
}

func windowAddressID(el adapter.Element) string {
	return addressToID(el.Address())
}

func addressToID(addr uintptr) string {
	return formatUint(uint64(addr))
}

func formatUint(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

// locateFocusedWindow returns the app's currently focused window.
func locateFocusedWindow(appRoot adapter.Element) (adapter.Element, error) {
	for _, w := range childrenWithRole(appRoot, "AXWindow") {
		if w.Attrs().Focused {
			return w, nil
		}
	}
	return nil, desktoperr.New(desktoperr.WindowNotFound, "application has no focused window")
}

// locateMenuBar returns the app's menu bar child.
func locateMenuBar(appRoot adapter.Element) (adapter.Element, error) {
	for _, c := range appRoot.Children() {
		if c.Attrs().Role == "AXMenuBar" {
			return c, nil
		}
	}
	return nil, desktoperr.New(desktoperr.ElementNotFound, "application has no menu bar")
}

// locateMenu finds a menubar item whose selected flag is true and
// whose child is a menu element; failing that, falls back to a context
// menu reachable from the focused element or as a direct child of the
// app root.
func locateMenu(appRoot adapter.Element) (adapter.Element, error) {
	if bar, err := locateMenuBar(appRoot); err == nil {
		for _, item := range bar.Children() {
			if !item.Attrs().Selected {
				continue
			}
			for _, c := range item.Children() {
				if c.Attrs().Role == "AXMenu" {
					return c, nil
				}
			}
		}
	}
	return locateContextMenu(appRoot)
}

// locateContextMenu looks for an AXMenu reachable from the app's
// focused element, falling back to a direct child of the app root.
func locateContextMenu(appRoot adapter.Element) (adapter.Element, error) {
	if focused := findFocused(appRoot, 6); focused != nil {
		for _, c := range focused.Children() {
			if c.Attrs().Role == "AXMenu" {
				return c, nil
			}
		}
	}
	for _, c := range appRoot.Children() {
		if c.Attrs().Role == "AXMenu" {
			return c, nil
		}
	}
	return nil, desktoperr.New(desktoperr.ElementNotFound, "no open context menu found")
}

// locateSubrole returns the focused window's first child whose native
// role equals subrole.
func locateSubrole(appRoot adapter.Element, subrole string) (adapter.Element, error) {
	win, err := locateFocusedWindow(appRoot)
	if err != nil {
		return nil, err
	}
	for _, c := range win.Children() {
		if c.Attrs().Role == subrole {
			return c, nil
		}
	}
	return nil, desktoperr.Newf(desktoperr.ElementNotFound, "no open %s", subrole)
}

// locateAlert prefers the focused window's dialog/alert/sheet child,
// then falls back to any top-level window carrying that role.
func locateAlert(appRoot adapter.Element) (adapter.Element, error) {
	if win, err := locateFocusedWindow(appRoot); err == nil {
		for _, c := range win.Children() {
			switch c.Attrs().Role {
			case "AXDialog", "AXAlert", "AXSheet":
				return c, nil
			}
		}
	}
	for _, w := range appRoot.Children() {
		switch w.Attrs().Role {
		case "AXDialog", "AXAlert", "AXSheet":
			return w, nil
		}
	}
	return nil, desktoperr.New(desktoperr.ElementNotFound, "no open alert found")
}

func childrenWithRole(el adapter.Element, role string) []adapter.Element {
	var out []adapter.Element
	for _, c := range el.Children() {
		if c.Attrs().Role == role {
			out = append(out, c)
		}
	}
	return out
}

// findFocused performs a bounded breadth-ish depth-first search for the
// element reporting Focused=true.
func findFocused(el adapter.Element, depth int) adapter.Element {
	if el == nil || depth <= 0 {
		return nil
	}
	if el.Attrs().Focused {
		return el
	}
	for _, c := range el.Children() {
		if found := findFocused(c, depth-1); found != nil {
			return found
		}
	}
	return nil
}

// List enumerates every currently open menu (with item counts), every
// context menu, and every sheet/popover/alert, per spec.md §4.6's
// list_surfaces contract.
func List(appRoot adapter.Element) []model.SurfaceInfo {
	var out []model.SurfaceInfo

	if bar, err := locateMenuBar(appRoot); err == nil {
		for _, item := range bar.Children() {
			if !item.Attrs().Selected {
				continue
			}
			for _, c := range item.Children() {
				if c.Attrs().Role == "AXMenu" {
					out = append(out, model.SurfaceInfo{
						Kind:      model.SurfaceMenu,
						Title:     item.Attrs().Title,
						ItemCount: len(c.Children()),
					})
				}
			}
		}
	}

	if ctx, err := locateContextMenu(appRoot); err == nil {
		out = append(out, model.SurfaceInfo{
			Kind:      model.SurfaceContextMenu,
			Title:     ctx.Attrs().Title,
			ItemCount: len(ctx.Children()),
		})
	}

	for _, w := range childrenWithRole(appRoot, "AXWindow") {
		for _, c := range w.Children() {
			kind, ok := surfaceKindForRole(c.Attrs().Role)
			if !ok {
				continue
			}
			out = append(out, model.SurfaceInfo{
				Kind:      kind,
				Title:     c.Attrs().Title,
				ItemCount: len(c.Children()),
			})
		}
	}

	return out
}

func surfaceKindForRole(role string) (model.SurfaceKind, bool) {
	switch role {
	case "AXSheet":
		return model.SurfaceSheet, true
	case "AXPopover":
		return model.SurfacePopover, true
	case "AXDialog", "AXAlert":
		return model.SurfaceAlert, true
	default:
		return "", false
	}
}

