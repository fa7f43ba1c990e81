// Package adapter defines the Platform Adapter Contract (C9): a single
// polymorphic interface between the core and OS-specific backends.
// The concrete implementation is internal/backend's Backend, whose
// native layer (pkg/element) is selected at build time per host OS;
// every capability not
// implemented by a given backend falls back to the PLATFORM_NOT_SUPPORTED
// default supplied by BaseAdapter, matching the teacher's
// finderImpl + var-injection pattern generalized from "element finder"
// to the full adapter surface, and the original's adapter.rs trait.
package adapter

import (
	"image"
	"time"

	"github.com/lahfir/agent-desktop-sub000/internal/desktoperr"
	"github.com/lahfir/agent-desktop-sub000/internal/model"
)

// NativeHandle is an opaque reference to a live native element. Its
// lifetime is adapter-managed and it must never escape the boundary of
// a single command invocation.
type NativeHandle struct {
	ptr any
}

// NativeHandleFrom wraps an arbitrary backend-specific pointer/value.
func NativeHandleFrom(ptr any) NativeHandle { return NativeHandle{ptr: ptr} }

// NullNativeHandle is the zero-value, invalid handle.
func NullNativeHandle() NativeHandle { return NativeHandle{} }

// IsNull reports whether the handle carries no native pointer.
func (h NativeHandle) IsNull() bool { return h.ptr == nil }

// Raw returns the backend-specific payload for use only within the
// backend that produced it.
func (h NativeHandle) Raw() any { return h.ptr }

// PermissionStatus reports whether the process has the OS permissions
// (e.g. macOS Accessibility) this adapter needs.
type PermissionStatus struct {
	Granted    bool   `json:"granted"`
	Suggestion string `json:"suggestion,omitempty"`
}

// WindowFilter narrows ListWindows.
type WindowFilter struct {
	FocusedOnly bool
	App         string
}

// TreeOptions configures GetTree / the Tree Builder.
type TreeOptions struct {
	MaxDepth        int
	IncludeBounds   bool
	InteractiveOnly bool
	Compact         bool
}

// DefaultTreeOptions matches the original's default TreeOptions.
func DefaultTreeOptions() TreeOptions {
	return TreeOptions{MaxDepth: 10, IncludeBounds: true}
}

// ImageFormat names the screenshot encodings the adapter may produce.
type ImageFormat string

const (
	ImagePNG ImageFormat = "png"
	ImageJPG ImageFormat = "jpg"
)

// ImageBuffer is a captured screenshot awaiting encoding.
type ImageBuffer struct {
	Image  image.Image
	Format ImageFormat
}

// ScreenshotTargetKind discriminates ScreenshotTarget.
type ScreenshotTargetKind string

const (
	ScreenshotScreen     ScreenshotTargetKind = "screen"
	ScreenshotWindow     ScreenshotTargetKind = "window"
	ScreenshotFullScreen ScreenshotTargetKind = "full_screen"
)

// ScreenshotTarget selects what Screenshot captures.
type ScreenshotTarget struct {
	Kind        ScreenshotTargetKind
	ScreenIndex int
	WindowID    string
}

// MouseEventKind enumerates the primitive mouse events MouseEvent can
// synthesize.
type MouseEventKind string

const (
	MouseMove  MouseEventKind = "move"
	MouseDown  MouseEventKind = "down"
	MouseUp    MouseEventKind = "up"
	MouseClick MouseEventKind = "click"
)

// MouseButton names which button a mouse event applies to.
type MouseButton string

const (
	ButtonLeft   MouseButton = "left"
	ButtonRight  MouseButton = "right"
	ButtonMiddle MouseButton = "middle"
)

// NotificationFilter narrows ListNotifications.
type NotificationFilter struct {
	AppSubstring  string
	TextSubstring string
	Limit         int
}

// Element is the live-tree traversal surface the Tree Builder and the
// Registry's resolution algorithm both walk. It abstracts over the
// darwin CGo/AXUIElement and Windows UI-Automation backends behind one
// shape so C2/C3 need not know which backend produced a given node.
type Element interface {
	// Attrs performs the single batched attribute fetch C2 specifies:
	// role, title/name, description, value, enabled, focused. A
	// backend that cannot batch falls back to per-attribute fetches
	// internally and still returns this shape.
	Attrs() ElementAttrs
	// Bounds fetches position+size; only called when TreeOptions asks
	// for bounds, per C2's "fetched only when requested".
	Bounds() (model.Rect, bool)
	// Children returns the structural children, preferring a
	// structural-children attribute, falling back to contents, with
	// browser-role nodes using their columns attribute instead — the
	// backend resolves that substitution internally.
	Children() []Element
	// PID is the owning process id.
	PID() int
	// Address is a stable-for-this-invocation identifier used by the
	// ancestor-scoped cycle guard; two Elements referring to the same
	// native object must return the same Address.
	Address() uintptr
	// Native exposes the backend-specific handle for dispatch-time use
	// (performing actions, setting attributes) without widening this
	// interface for every possible native operation.
	Native() NativeHandle
	// IsAttrSettable reports whether a named attribute can be set on
	// this element (used by SetBool chain steps).
	IsAttrSettable(attr string) bool
	// PerformNative invokes a named native accessibility action
	// (e.g. "AXPress", "AXConfirm") on this element.
	PerformNative(action string) error
	// SetAttr sets a named native attribute to value (bool, string, or
	// a backend-specific representation of a list/point).
	SetAttr(attr string, value any) error
	// GetAttr reads a named native attribute's current value.
	GetAttr(attr string) (any, error)
	// Parent returns the element's parent, or nil at the root.
	Parent() Element
	// Release frees any native resource this Element holds. Safe to
	// call multiple times.
	Release()
}

// ElementAttrs is the result of one batched attribute fetch.
type ElementAttrs struct {
	Role        string
	Title       string
	Description string
	Value       string
	Enabled     bool
	Focused     bool
	Selected    bool
}

// PlatformAdapter is the full capability set a concrete backend
// provides. Every method defaults (via BaseAdapter) to
// PLATFORM_NOT_SUPPORTED so a backend need only override what it
// actually implements.
type PlatformAdapter interface {
	ListWindows(filter WindowFilter) ([]model.WindowInfo, error)
	ListApplications() ([]model.AppInfo, error)
	GetTree(root Element, opts TreeOptions) (model.AccessibilityNode, error)
	ExecuteAction(handle NativeHandle, action model.Action) error
	ResolveElement(entry model.RefEntry) (Element, error)
	FocusWindow(windowID string) error
	LaunchApp(nameOrPath string) (model.AppInfo, error)
	CloseApp(pidOrName string) error
	Screenshot(target ScreenshotTarget) (ImageBuffer, error)
	ReadClipboard() (string, error)
	WriteClipboard(text string) error
	ClearClipboard() error
	FocusedWindow() (model.WindowInfo, error)
	ListSurfaces(pid int) ([]model.SurfaceInfo, error)
	ListNotifications(filter NotificationFilter) ([]model.NotificationInfo, error)
	WaitForMenu(pid int, want bool, timeout time.Duration) (bool, error)
	ElementBounds(handle NativeHandle) (model.Rect, error)
	MouseEvent(kind MouseEventKind, button MouseButton, p model.Point) error
	Drag(from, to model.Point, durationMs int) error
	WindowOp(req model.WindowOpRequest, windowID string) error
	ReadLiveValue(handle NativeHandle) (string, error)
	AppRoot(pid int) (Element, error)
	FocusedApplication() (Element, error)
	Permissions() PermissionStatus
}

// BaseAdapter implements every PlatformAdapter method as
// PLATFORM_NOT_SUPPORTED. Concrete backends embed it and override the
// subset they support, so an unported capability fails closed instead
// of panicking on a missing method.
type BaseAdapter struct{}

func notSupported(what string) error {
	return desktoperr.Newf(desktoperr.PlatformNotSupported, "%s is not supported on this platform", what)
}

func (BaseAdapter) ListWindows(WindowFilter) ([]model.WindowInfo, error) {
	return nil, notSupported("list_windows")
}
func (BaseAdapter) ListApplications() ([]model.AppInfo, error) {
	return nil, notSupported("list_apps")
}
func (BaseAdapter) GetTree(Element, TreeOptions) (model.AccessibilityNode, error) {
	return model.AccessibilityNode{}, notSupported("get_tree")
}
func (BaseAdapter) ExecuteAction(NativeHandle, model.Action) error {
	return notSupported("execute_action")
}
func (BaseAdapter) ResolveElement(model.RefEntry) (Element, error) {
	return nil, notSupported("resolve_element")
}
func (BaseAdapter) FocusWindow(string) error { return notSupported("focus_window") }
func (BaseAdapter) LaunchApp(string) (model.AppInfo, error) {
	return model.AppInfo{}, notSupported("launch_app")
}
func (BaseAdapter) CloseApp(string) error { return notSupported("close_app") }
func (BaseAdapter) Screenshot(ScreenshotTarget) (ImageBuffer, error) {
	return ImageBuffer{}, notSupported("screenshot")
}
func (BaseAdapter) ReadClipboard() (string, error)  { return "", notSupported("clipboard_get") }
func (BaseAdapter) WriteClipboard(string) error     { return notSupported("clipboard_set") }
func (BaseAdapter) ClearClipboard() error           { return notSupported("clipboard_clear") }
func (BaseAdapter) FocusedWindow() (model.WindowInfo, error) {
	return model.WindowInfo{}, notSupported("focused_window")
}
func (BaseAdapter) ListSurfaces(int) ([]model.SurfaceInfo, error) {
	return nil, notSupported("list_surfaces")
}
func (BaseAdapter) ListNotifications(NotificationFilter) ([]model.NotificationInfo, error) {
	return nil, notSupported("list_notifications")
}
func (BaseAdapter) WaitForMenu(int, bool, time.Duration) (bool, error) {
	return false, notSupported("wait_for_menu")
}
func (BaseAdapter) ElementBounds(NativeHandle) (model.Rect, error) {
	return model.Rect{}, notSupported("element_bounds")
}
func (BaseAdapter) MouseEvent(MouseEventKind, MouseButton, model.Point) error {
	return notSupported("mouse_event")
}
func (BaseAdapter) Drag(model.Point, model.Point, int) error { return notSupported("drag") }
func (BaseAdapter) WindowOp(model.WindowOpRequest, string) error {
	return notSupported("window_op")
}
func (BaseAdapter) ReadLiveValue(NativeHandle) (string, error) {
	return "", notSupported("read_live_value")
}
func (BaseAdapter) AppRoot(int) (Element, error) { return nil, notSupported("app_root") }
func (BaseAdapter) FocusedApplication() (Element, error) {
	return nil, notSupported("focused_application")
}
func (BaseAdapter) Permissions() PermissionStatus {
	return PermissionStatus{Granted: false, Suggestion: "platform not supported"}
}
