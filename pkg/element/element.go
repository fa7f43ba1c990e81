// Package element provides cross-platform UI element access via accessibility APIs.
//
// This package implements our own element/accessibility layer, inspired by
// patterns from existing implementations but written from scratch in our style.
//
// # Platform Support
//
//   - macOS: Uses AXUIElement API via CGo bindings
//   - Windows: Uses UI Automation API via COM
//
// # Basic Usage
//
//	finder, err := element.NewFinder()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer finder.Close()
//
//	// Resolve the frontmost application
//	app, err := finder.FocusedApplication()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Permissions
//
// On macOS, accessibility permissions are required. The app must be granted
// access in System Settings > Privacy & Security > Accessibility.
//
// On Windows, some applications may require running as Administrator.
package element

import (
	"errors"
	"fmt"
)

// Role represents the semantic type of a UI element.
// These map to accessibility roles across platforms.
type Role string

const (
	RoleWindow      Role = "window"
	RoleButton      Role = "button"
	RoleTextField   Role = "textfield"
	RoleTextArea    Role = "textarea"
	RoleStaticText  Role = "statictext"
	RoleCheckbox    Role = "checkbox"
	RoleRadioButton Role = "radiobutton"
	RoleList        Role = "list"
	RoleListItem    Role = "listitem"
	RoleMenu        Role = "menu"
	RoleMenuItem    Role = "menuitem"
	RoleMenuBar     Role = "menubar"
	RoleToolbar     Role = "toolbar"
	RoleScrollArea  Role = "scrollarea"
	RoleScrollBar   Role = "scrollbar"
	RoleImage       Role = "image"
	RoleLink        Role = "link"
	RoleGroup       Role = "group"
	RoleTab         Role = "tab"
	RoleTabGroup    Role = "tabgroup"
	RoleTable       Role = "table"
	RoleRow         Role = "row"
	RoleCell        Role = "cell"
	RoleColumn      Role = "column"
	RoleSlider      Role = "slider"
	RoleComboBox    Role = "combobox"
	RolePopUpButton Role = "popupbutton"
	RoleProgressBar Role = "progressbar"
	RoleSplitter    Role = "splitter"
	RoleSheet       Role = "sheet"
	RoleDrawer      Role = "drawer"
	RoleDialog      Role = "dialog"
	RoleApplication Role = "application"
	RoleUnknown     Role = "unknown"
)

// Rect represents a rectangle on screen in pixel coordinates.
type Rect struct {
	X      int // Left edge
	Y      int // Top edge
	Width  int
	Height int
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{
		X: r.X + r.Width/2,
		Y: r.Y + r.Height/2,
	}
}

// Contains returns true if the point is within the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// IsEmpty returns true if the rectangle has zero area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Point represents a point on screen in pixel coordinates.
type Point struct {
	X int
	Y int
}

// Element represents a UI element on screen.
// Elements are obtained via Finder and provide information about
// the element's properties and hierarchy.
type Element struct {
	// ID is a unique identifier for this element within the current tree.
	// This is NOT stable across queries - don't cache it.
	ID string

	// Role is the semantic type of the element.
	Role Role

	// Name is the accessible name/label of the element.
	// This is what screen readers announce.
	Name string

	// Title is the window/element title (may differ from Name).
	Title string

	// Value is the current value for inputs, sliders, etc.
	Value string

	// Description is additional accessible description text.
	Description string

	// Bounds is the screen rectangle containing this element.
	Bounds Rect

	// Enabled indicates if the element can be interacted with.
	Enabled bool

	// Focused indicates if the element currently has keyboard focus.
	Focused bool

	// Selected indicates if the element is selected (for selectable items).
	Selected bool

	// Children contains child elements in the accessibility tree.
	// May be nil if not yet loaded (use LoadChildren to populate).
	Children []*Element

	// Parent is the parent element. May be nil for root elements.
	Parent *Element

	// PID is the process ID of the owning application.
	PID int

	// Attributes contains additional platform-specific attributes.
	Attributes map[string]interface{}

	// handle is the platform-specific element reference (unexported).
	// On macOS: AXUIElementRef
	// On Windows: IUIAutomationElement pointer
	handle interface{}
}

// Focus sets keyboard focus to this element.
func (e *Element) Focus() error {
	return focusElement(e)
}

// PerformAction performs a named action on this element.
// Common actions: "AXPress", "AXConfirm", "AXCancel", "AXRaise"
func (e *Element) PerformAction(action string) error {
	return performAction(e, action)
}

// SetValue sets the value of this element (for text fields, sliders, etc).
func (e *Element) SetValue(value string) error {
	return setValue(e, value)
}

// LoadChildren populates the Children slice with immediate child elements.
// Call this if you need to traverse the element tree.
func (e *Element) LoadChildren() error {
	return loadChildren(e)
}

// String returns a human-readable representation of the element.
func (e *Element) String() string {
	name := e.Name
	if name == "" {
		name = e.Title
	}
	if name == "" {
		name = "(no name)"
	}
	return fmt.Sprintf("%s[%s] at (%d,%d) %dx%d",
		e.Role, name, e.Bounds.X, e.Bounds.Y, e.Bounds.Width, e.Bounds.Height)
}

// Common errors
var (
	// ErrNotSupported indicates the operation is not supported on this platform.
	ErrNotSupported = errors.New("element: operation not supported on this platform")

	// ErrPermissionDenied indicates missing accessibility permissions.
	ErrPermissionDenied = errors.New("element: accessibility permission denied")

	// ErrNotFound indicates no element matched the query.
	ErrNotFound = errors.New("element: element not found")

	// ErrNoBounds indicates the element has no valid bounds.
	ErrNoBounds = errors.New("element: element has no bounds")

	// ErrInvalidElement indicates the element reference is no longer valid.
	ErrInvalidElement = errors.New("element: element reference is invalid")

	// ErrTimeout indicates a timeout waiting for an element.
	ErrTimeout = errors.New("element: timeout waiting for element")

	// ErrNoFocus indicates no element currently has focus.
	ErrNoFocus = errors.New("element: no focused element")
)

// GetAttr reads a named native attribute's current raw value (string,
// bool, or a backend-specific representation of a point/list). Used by
// dispatch-layer algorithms that need an attribute this struct doesn't
// surface as a typed field (e.g. a scrollbar's "AXValue" float).
func (e *Element) GetAttr(name string) (any, error) {
	return getAttr(e, name)
}

// SetAttr sets a named native attribute to value.
func (e *Element) SetAttr(name string, value any) error {
	return setAttr(e, name, value)
}

// IsAttrSettable reports whether name can be set on this element.
func (e *Element) IsAttrSettable(name string) bool {
	return isAttrSettable(e, name)
}

// PerformNativeAction is an alias for PerformAction kept for callers
// that think in terms of "native action" rather than "accessibility
// action" — both synthesize the same underlying call.
func (e *Element) PerformNativeAction(action string) error {
	return e.PerformAction(action)
}

// NativeRef exposes the backend-specific handle (AXUIElementRef on
// darwin, IUIAutomationElement pointer on Windows) for callers that
// need to pass it back into a platform-specific API without widening
// this struct. Treat the result as opaque outside the owning backend.
func (e *Element) NativeRef() any {
	return e.handle
}

// ReleaseNative frees any native resource this element holds. Safe to
// call multiple times; a no-op on backends that rely solely on the
// garbage collector finalizer.
func (e *Element) ReleaseNative() {
	releaseNative(e)
}

// IsTrusted reports whether this process holds the accessibility
// permission the current platform requires (macOS Accessibility;
// always true on platforms without an equivalent gate).
func IsTrusted() bool {
	return checkTrusted()
}

// NativeAddress returns a stable-for-this-process identifier for the
// underlying native reference, used by cycle guards that need pointer
// identity rather than the opaque NativeRef payload.
func (e *Element) NativeAddress() uintptr {
	return addressOf(e)
}

// Platform-specific implementations (defined in darwin.go / windows.go)
var (
	focusElement    func(e *Element) error                      = notSupported1[*Element]
	performAction   func(e *Element, action string) error       = notSupported2[*Element, string]
	setValue        func(e *Element, value string) error        = notSupported2[*Element, string]
	loadChildren    func(e *Element) error                      = notSupported1[*Element]
	getAttr        func(e *Element, name string) (any, error)     = defaultGetAttr
	setAttr        func(e *Element, name string, value any) error = defaultSetAttr
	isAttrSettable func(e *Element, name string) bool              = func(*Element, string) bool { return false }
	releaseNative  func(e *Element)                                = func(*Element) {}
	checkTrusted   func() bool                                     = func() bool { return true }
	addressOf      func(e *Element) uintptr                        = func(*Element) uintptr { return 0 }
)

func defaultGetAttr(_ *Element, _ string) (any, error) {
	return nil, ErrNotSupported
}

func defaultSetAttr(_ *Element, _ string, _ any) error {
	return ErrNotSupported
}

// Helper functions for default implementations
func notSupported1[T any](_ T) error {
	return ErrNotSupported
}

func notSupported2[T, U any](_ T, _ U) error {
	return ErrNotSupported
}
