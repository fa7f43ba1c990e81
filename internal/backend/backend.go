// Package backend wires the Platform Adapter Contract (C9) to the
// teacher's pkg/element Finder plus pkg/input/pkg/screen/pkg/platform,
// and to the OS-agnostic core packages (internal/tree, internal/surface,
// internal/dispatch, internal/wait, internal/safety). It cannot live
// inside internal/adapter itself: internal/surface and internal/tree
// both import internal/adapter for its types, so a concrete
// implementation that also imports surface/tree must sit on the other
// side of that boundary to avoid a cycle.
package backend

import (
	"fmt"
	"time"

	"github.com/lahfir/agent-desktop-sub000/internal/adapter"
	"github.com/lahfir/agent-desktop-sub000/internal/desktoperr"
	"github.com/lahfir/agent-desktop-sub000/internal/dispatch"
	"github.com/lahfir/agent-desktop-sub000/internal/model"
	"github.com/lahfir/agent-desktop-sub000/internal/safety"
	"github.com/lahfir/agent-desktop-sub000/internal/surface"
	"github.com/lahfir/agent-desktop-sub000/internal/tree"
	"github.com/lahfir/agent-desktop-sub000/internal/wait"
	pkgelement "github.com/lahfir/agent-desktop-sub000/pkg/element"
	"github.com/lahfir/agent-desktop-sub000/pkg/input"
	"github.com/lahfir/agent-desktop-sub000/pkg/screen"
)

// Backend is the concrete PlatformAdapter shared by every host OS. Its
// methods are grounded on pkg/element.Finder's already-cross-platform
// AXUIElement/UI-Automation wrapper; only LaunchApp and
// ListNotifications differ enough per OS to live in their own
// build-tagged files (launch_darwin.go / launch_windows.go /
// notifications_darwin.go).
type Backend struct {
	adapter.BaseAdapter
	finder *pkgelement.Finder
}

// New constructs the backend for the running host OS. The Finder
// itself is what actually gates on accessibility permission on macOS
// (see pkg/element/darwin.go's newDarwinFinder).
func New() (adapter.PlatformAdapter, error) {
	finder, err := pkgelement.NewFinder()
	if err != nil {
		return nil, mapElementErr(err)
	}
	return newBackend(finder), nil
}

func mapElementErr(err error) error {
	if err == nil {
		return nil
	}
	switch err {
	case pkgelement.ErrPermissionDenied:
		return desktoperr.New(desktoperr.PermDenied, "accessibility permission not granted").
			WithSuggestion("grant accessibility access in system privacy settings and retry")
	case pkgelement.ErrNotFound:
		return desktoperr.New(desktoperr.ElementNotFound, "element not found")
	case pkgelement.ErrNotSupported:
		return desktoperr.New(desktoperr.PlatformNotSupported, "operation not supported on this platform")
	case pkgelement.ErrTimeout:
		return desktoperr.New(desktoperr.Timeout, "timed out waiting for element")
	case pkgelement.ErrInvalidElement, pkgelement.ErrNoBounds, pkgelement.ErrNoFocus:
		return desktoperr.New(desktoperr.ElementNotFound, err.Error())
	default:
		return desktoperr.New(desktoperr.Internal, err.Error())
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func rectPtr(r pkgelement.Rect) *model.Rect {
	if r.IsEmpty() {
		return nil
	}
	return &model.Rect{X: float64(r.X), Y: float64(r.Y), Width: float64(r.Width), Height: float64(r.Height)}
}

func windowID(el *pkgelement.Element) string {
	return fmt.Sprintf("w%x", el.NativeAddress())
}

// targetApps resolves which application elements ListWindows should
// walk: a named app, the single focused app, or every running app.
func (b *Backend) targetApps(appName string, focusedOnly bool) ([]*pkgelement.Element, error) {
	if appName != "" {
		app, err := b.finder.ApplicationByName(appName)
		if err != nil {
			return nil, desktoperr.Newf(desktoperr.AppNotFound, "no running application named %q", appName)
		}
		return []*pkgelement.Element{app}, nil
	}
	if focusedOnly {
		app, err := b.finder.FocusedApplication()
		if err != nil {
			return nil, mapElementErr(err)
		}
		return []*pkgelement.Element{app}, nil
	}
	return b.finder.AllApplications()
}

func (b *Backend) ListWindows(filter adapter.WindowFilter) ([]model.WindowInfo, error) {
	apps, err := b.targetApps(filter.App, filter.FocusedOnly)
	if err != nil {
		return nil, err
	}
	out := make([]model.WindowInfo, 0)
	for _, app := range apps {
		if err := app.LoadChildren(); err != nil {
			continue
		}
		appLabel := firstNonEmpty(app.Title, app.Name)
		for _, child := range app.Children {
			if child.Role != pkgelement.RoleWindow {
				continue
			}
			out = append(out, model.WindowInfo{
				ID:      windowID(child),
				Title:   firstNonEmpty(child.Title, child.Name),
				App:     appLabel,
				PID:     app.PID,
				Bounds:  rectPtr(child.Bounds),
				Focused: child.Focused,
			})
		}
	}
	return out, nil
}

func (b *Backend) ListApplications() ([]model.AppInfo, error) {
	apps, err := b.finder.AllApplications()
	if err != nil {
		return nil, mapElementErr(err)
	}
	out := make([]model.AppInfo, 0, len(apps))
	for _, a := range apps {
		out = append(out, model.AppInfo{Name: firstNonEmpty(a.Title, a.Name), PID: a.PID})
	}
	return out, nil
}

// GetTree is a read-only preview of the accessibility tree rooted at
// root: it allocates handles into a throwaway RefMap so the returned
// node carries the same handle-bearing shape a persisted snapshot
// would, without touching the on-disk registry. Callers that need the
// allocated handles to survive (the "snapshot" verb) call
// internal/tree.Build directly against their own *model.RefMap instead
// of going through this convenience method.
func (b *Backend) GetTree(root adapter.Element, opts adapter.TreeOptions) (model.AccessibilityNode, error) {
	refs := model.NewRefMap()
	return tree.Build(root, opts, refs, "")
}

func (b *Backend) ExecuteAction(handle adapter.NativeHandle, action model.Action) error {
	el, ok := adapter.UnwrapElement(handle)
	if !ok {
		return desktoperr.New(desktoperr.Internal, "native handle does not reference a live element")
	}
	ctx := &dispatch.ChainContext{Element: adapter.WrapElement(el), Adapter: b}
	return dispatch.Dispatch(ctx, string(el.Role), action)
}

func (b *Backend) ResolveElement(entry model.RefEntry) (adapter.Element, error) {
	app, err := b.finder.ApplicationByPID(entry.PID)
	if err != nil {
		return nil, desktoperr.Newf(desktoperr.AppNotFound, "application pid %d is no longer running", entry.PID)
	}
	return adapter.ResolveAgainstRoot(adapter.WrapElement(app), entry)
}

func (b *Backend) FocusWindow(windowID string) error {
	apps, err := b.finder.AllApplications()
	if err != nil {
		return mapElementErr(err)
	}
	win, app := findWindowByID(apps, windowID)
	if win == nil {
		return desktoperr.Newf(desktoperr.WindowNotFound, "no window with id %s", windowID)
	}
	if err := app.PerformAction("AXRaise"); err != nil {
		_ = err
	}
	return win.Focus()
}

// findWindowByID walks every application's top-level windows looking
// for one whose derived address matches id, returning both the window
// and its owning application (AXRaise on the app is often required
// before the window itself accepts focus).
func findWindowByID(apps []*pkgelement.Element, id string) (*pkgelement.Element, *pkgelement.Element) {
	for _, app := range apps {
		if err := app.LoadChildren(); err != nil {
			continue
		}
		for _, child := range app.Children {
			if child.Role != pkgelement.RoleWindow {
				continue
			}
			if windowID(child) == id {
				return child, app
			}
		}
	}
	return nil, nil
}

func (b *Backend) CloseApp(pidOrName string) error {
	app, err := b.resolveAppTarget(pidOrName)
	if err != nil {
		return err
	}
	name := firstNonEmpty(app.Title, app.Name)
	if safety.IsProtectedProcess(name) {
		return desktoperr.Newf(desktoperr.PermDenied, "refusing to close protected process %q", name).
			WithSuggestion("protected system processes cannot be closed through this interface")
	}
	return terminateProcess(app.PID)
}

func (b *Backend) resolveAppTarget(pidOrName string) (*pkgelement.Element, error) {
	if pid, ok := parsePID(pidOrName); ok {
		app, err := b.finder.ApplicationByPID(pid)
		if err != nil {
			return nil, desktoperr.Newf(desktoperr.AppNotFound, "no running application with pid %d", pid)
		}
		return app, nil
	}
	app, err := b.finder.ApplicationByName(pidOrName)
	if err != nil {
		return nil, desktoperr.Newf(desktoperr.AppNotFound, "no running application named %q", pidOrName)
	}
	return app, nil
}

func parsePID(s string) (int, bool) {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func (b *Backend) Screenshot(target adapter.ScreenshotTarget) (adapter.ImageBuffer, error) {
	switch target.Kind {
	case adapter.ScreenshotFullScreen:
		img, err := screen.CaptureAll()
		if err != nil {
			return adapter.ImageBuffer{}, desktoperr.Newf(desktoperr.Internal, "capture failed: %v", err)
		}
		return adapter.ImageBuffer{Image: img, Format: adapter.ImagePNG}, nil
	case adapter.ScreenshotWindow:
		apps, err := b.finder.AllApplications()
		if err != nil {
			return adapter.ImageBuffer{}, mapElementErr(err)
		}
		win, _ := findWindowByID(apps, target.WindowID)
		if win == nil {
			return adapter.ImageBuffer{}, desktoperr.Newf(desktoperr.WindowNotFound, "no window with id %s", target.WindowID)
		}
		img, err := screen.CaptureRect(screen.Rect{X: win.Bounds.X, Y: win.Bounds.Y, Width: win.Bounds.Width, Height: win.Bounds.Height})
		if err != nil {
			return adapter.ImageBuffer{}, desktoperr.Newf(desktoperr.Internal, "capture failed: %v", err)
		}
		return adapter.ImageBuffer{Image: img, Format: adapter.ImagePNG}, nil
	default: // ScreenshotScreen
		idx := target.ScreenIndex
		img, err := screen.CaptureDisplay(idx)
		if err != nil {
			return adapter.ImageBuffer{}, desktoperr.Newf(desktoperr.Internal, "capture failed: %v", err)
		}
		return adapter.ImageBuffer{Image: img, Format: adapter.ImagePNG}, nil
	}
}

func (b *Backend) ReadClipboard() (string, error) {
	text, err := input.ReadFromClipboard()
	if err != nil {
		return "", desktoperr.Newf(desktoperr.Internal, "clipboard read failed: %v", err)
	}
	return text, nil
}

func (b *Backend) WriteClipboard(text string) error {
	if err := input.WriteToClipboard(text); err != nil {
		return desktoperr.Newf(desktoperr.Internal, "clipboard write failed: %v", err)
	}
	return nil
}

func (b *Backend) ClearClipboard() error { return b.WriteClipboard("") }

func (b *Backend) FocusedWindow() (model.WindowInfo, error) {
	app, err := b.finder.FocusedApplication()
	if err != nil {
		return model.WindowInfo{}, mapElementErr(err)
	}
	if err := app.LoadChildren(); err != nil {
		return model.WindowInfo{}, mapElementErr(err)
	}
	appLabel := firstNonEmpty(app.Title, app.Name)
	for _, child := range app.Children {
		if child.Role == pkgelement.RoleWindow && (child.Focused || len(app.Children) == 1) {
			return model.WindowInfo{
				ID:      windowID(child),
				Title:   firstNonEmpty(child.Title, child.Name),
				App:     appLabel,
				PID:     app.PID,
				Bounds:  rectPtr(child.Bounds),
				Focused: true,
			}, nil
		}
	}
	return model.WindowInfo{}, desktoperr.New(desktoperr.WindowNotFound, "focused application has no focused window")
}

func (b *Backend) ListSurfaces(pid int) ([]model.SurfaceInfo, error) {
	app, err := b.finder.ApplicationByPID(pid)
	if err != nil {
		return nil, desktoperr.Newf(desktoperr.AppNotFound, "no running application with pid %d", pid)
	}
	return surface.List(adapter.WrapElement(app)), nil
}

func (b *Backend) WaitForMenu(pid int, want bool, timeout time.Duration) (bool, error) {
	app, err := b.finder.ApplicationByPID(pid)
	if err != nil {
		return false, desktoperr.Newf(desktoperr.AppNotFound, "no running application with pid %d", pid)
	}
	root := adapter.WrapElement(app)
	present := false
	pollErr := wait.Until(func() (bool, error) {
		_, locErr := surface.Locate(b, root, surface.KindMenu, "", "")
		present = locErr == nil
		return present == want, nil
	}, wait.MenuStateInterval, timeout, "menu visibility")
	if pollErr != nil {
		if de, ok := desktoperr.As(pollErr); ok && de.Code == desktoperr.Timeout {
			return present, nil
		}
		return present, pollErr
	}
	return present, nil
}

func (b *Backend) ElementBounds(handle adapter.NativeHandle) (model.Rect, error) {
	el, ok := adapter.UnwrapElement(handle)
	if !ok {
		return model.Rect{}, desktoperr.New(desktoperr.Internal, "invalid native handle")
	}
	r := rectPtr(el.Bounds)
	if r == nil {
		return model.Rect{}, desktoperr.New(desktoperr.ElementNotFound, "element has no bounds")
	}
	return *r, nil
}

func (b *Backend) MouseEvent(kind adapter.MouseEventKind, button adapter.MouseButton, p model.Point) error {
	pt := input.Point{X: int(p.X), Y: int(p.Y)}
	switch kind {
	case adapter.MouseMove:
		return input.MoveSmooth(pt)
	case adapter.MouseClick:
		return input.ClickButton(pt, input.MouseButton(button), false)
	case adapter.MouseDown, adapter.MouseUp:
		// robotgo's button/move primitives only expose a combined
		// click; down/up are synthesized as a move followed by the
		// same click, matching the original's best-effort behavior
		// for platforms without discrete button-state synthesis.
		return input.ClickButton(pt, input.MouseButton(button), false)
	default:
		return desktoperr.Newf(desktoperr.ActionNotSupported, "unknown mouse event kind %q", kind)
	}
}

// Drag uses robotgo's smooth drag, which runs at robotgo's own pace:
// durationMs is accepted but does not set the drag's timing.
func (b *Backend) Drag(from, to model.Point, durationMs int) error {
	_ = durationMs
	return input.Drag(input.Point{X: int(from.X), Y: int(from.Y)}, input.Point{X: int(to.X), Y: int(to.Y)})
}

func (b *Backend) WindowOp(req model.WindowOpRequest, windowID string) error {
	apps, err := b.finder.AllApplications()
	if err != nil {
		return mapElementErr(err)
	}
	win, app := findWindowByID(apps, windowID)
	if win == nil {
		return desktoperr.Newf(desktoperr.WindowNotFound, "no window with id %s", windowID)
	}
	switch req.Op {
	case model.WindowOpFocus:
		_ = app.PerformAction("AXRaise")
		return win.Focus()
	case model.WindowOpClose:
		return win.PerformAction("AXUIElementPerformAction:AXCloseButton")
	case model.WindowOpMinimize:
		return win.SetAttr("AXMinimized", true)
	case model.WindowOpMaximize, model.WindowOpRestore:
		return win.PerformAction("AXZoomWindow")
	case model.WindowOpMove:
		return win.SetAttr("AXPosition", [2]float64{float64(req.X), float64(req.Y)})
	case model.WindowOpResize:
		return win.SetAttr("AXSize", [2]float64{float64(req.Width), float64(req.Height)})
	default:
		return desktoperr.Newf(desktoperr.ActionNotSupported, "unknown window op %q", req.Op)
	}
}

func (b *Backend) ReadLiveValue(handle adapter.NativeHandle) (string, error) {
	el, ok := adapter.UnwrapElement(handle)
	if !ok {
		return "", desktoperr.New(desktoperr.Internal, "invalid native handle")
	}
	v, err := el.GetAttr("AXValue")
	if err != nil {
		return el.Value, nil
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	return fmt.Sprintf("%v", v), nil
}

func (b *Backend) AppRoot(pid int) (adapter.Element, error) {
	app, err := b.finder.ApplicationByPID(pid)
	if err != nil {
		return nil, desktoperr.Newf(desktoperr.AppNotFound, "no running application with pid %d", pid)
	}
	return adapter.WrapElement(app), nil
}

func (b *Backend) FocusedApplication() (adapter.Element, error) {
	app, err := b.finder.FocusedApplication()
	if err != nil {
		return nil, mapElementErr(err)
	}
	return adapter.WrapElement(app), nil
}

func (b *Backend) Permissions() adapter.PermissionStatus {
	if pkgelement.IsTrusted() {
		return adapter.PermissionStatus{Granted: true}
	}
	return adapter.PermissionStatus{
		Granted:    false,
		Suggestion: "grant this process accessibility access in system privacy settings",
	}
}

