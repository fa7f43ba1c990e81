package tools

import (
	"github.com/lahfir/agent-desktop-sub000/internal/adapter"
	"github.com/lahfir/agent-desktop-sub000/internal/dispatch"
	"github.com/lahfir/agent-desktop-sub000/internal/model"
)

func (rt *Runtime) ListWindows(app string, focusedOnly bool) (*model.Envelope, error) {
	wins, err := rt.Adapter.ListWindows(adapter.WindowFilter{App: app, FocusedOnly: focusedOnly})
	if err != nil {
		return nil, err
	}
	return rt.Envelope("list-windows", map[string]any{"windows": wins}), nil
}

func (rt *Runtime) ListApps() (*model.Envelope, error) {
	apps, err := rt.Adapter.ListApplications()
	if err != nil {
		return nil, err
	}
	return rt.Envelope("list-apps", map[string]any{"apps": apps}), nil
}

func (rt *Runtime) FocusWindow(windowID string) (*model.Envelope, error) {
	if err := emptyToErr(windowID, "window_id"); err != nil {
		return nil, err
	}
	if err := rt.Adapter.FocusWindow(windowID); err != nil {
		return nil, err
	}
	return rt.Envelope("focus-window", map[string]any{"window_id": windowID}), nil
}

func (rt *Runtime) windowOp(command, windowID string, req model.WindowOpRequest) (*model.Envelope, error) {
	if err := emptyToErr(windowID, "window_id"); err != nil {
		return nil, err
	}
	if err := dispatch.DispatchWindowOp(rt.Adapter, req, windowID); err != nil {
		return nil, err
	}
	return rt.Envelope(command, map[string]any{"window_id": windowID}), nil
}

func (rt *Runtime) MoveWindow(windowID string, x, y int) (*model.Envelope, error) {
	return rt.windowOp("move-window", windowID, model.WindowOpRequest{Op: model.WindowOpMove, X: x, Y: y})
}

func (rt *Runtime) ResizeWindow(windowID string, width, height int) (*model.Envelope, error) {
	return rt.windowOp("resize-window", windowID, model.WindowOpRequest{Op: model.WindowOpResize, Width: width, Height: height})
}

func (rt *Runtime) RestoreWindow(windowID string) (*model.Envelope, error) {
	return rt.windowOp("restore-window", windowID, model.WindowOpRequest{Op: model.WindowOpRestore})
}

func (rt *Runtime) MinimizeWindow(windowID string) (*model.Envelope, error) {
	return rt.windowOp("minimize-window", windowID, model.WindowOpRequest{Op: model.WindowOpMinimize})
}

func (rt *Runtime) MaximizeWindow(windowID string) (*model.Envelope, error) {
	return rt.windowOp("maximize-window", windowID, model.WindowOpRequest{Op: model.WindowOpMaximize})
}

func (rt *Runtime) CloseWindow(windowID string) (*model.Envelope, error) {
	return rt.windowOp("close-window", windowID, model.WindowOpRequest{Op: model.WindowOpClose})
}

func (rt *Runtime) Launch(nameOrPath string) (*model.Envelope, error) {
	if err := emptyToErr(nameOrPath, "name"); err != nil {
		return nil, err
	}
	app, err := rt.Adapter.LaunchApp(nameOrPath)
	if err != nil {
		return nil, err
	}
	return rt.Envelope("launch", app), nil
}

func (rt *Runtime) CloseApp(pidOrName string) (*model.Envelope, error) {
	if err := emptyToErr(pidOrName, "app"); err != nil {
		return nil, err
	}
	if err := rt.Adapter.CloseApp(pidOrName); err != nil {
		return nil, err
	}
	return rt.Envelope("close-app", map[string]any{"app": pidOrName}), nil
}

func (rt *Runtime) ListSurfaces(pid int) (*model.Envelope, error) {
	if pid <= 0 {
		app, err := rt.Adapter.FocusedApplication()
		if err != nil {
			return nil, err
		}
		pid = app.PID()
	}
	surfaces, err := rt.Adapter.ListSurfaces(pid)
	if err != nil {
		return nil, err
	}
	return rt.Envelope("list-surfaces", map[string]any{"surfaces": surfaces}), nil
}

// Status reports readiness as whether the accessibility permission is
// granted; Permissions reports the full PermissionStatus.
func (rt *Runtime) Status() (*model.Envelope, error) {
	perm := rt.Adapter.Permissions()
	return rt.Envelope("status", map[string]any{"ready": perm.Granted}), nil
}

func (rt *Runtime) Permissions() (*model.Envelope, error) {
	return rt.Envelope("permissions", rt.Adapter.Permissions()), nil
}

// Version reports the command surface's own version, not the host OS's;
// kept a constant here rather than threaded through from main so every
// handler stays host-buildable without a version-injection step.
const EnvelopeAPIVersion = model.EnvelopeVersion

func Version() *model.Envelope {
	e := model.Success("version", map[string]any{"version": EnvelopeAPIVersion})
	return &e
}
