package element

import "time"

// Finder locates UI elements on screen using the accessibility API.
// Create a Finder with NewFinder() and remember to call Close() when done.
type Finder struct {
	// impl holds the platform-specific implementation
	impl finderImpl
}

// finderImpl is the platform-specific finder implementation.
// Defined in darwin.go / windows.go
type finderImpl interface {
	// Root returns the root element (typically the system-wide element).
	Root() (*Element, error)

	// FocusedApplication returns the frontmost application element.
	FocusedApplication() (*Element, error)

	// FocusedElement returns the element that currently has keyboard focus.
	FocusedElement() (*Element, error)

	// ApplicationByPID returns the application element for a process ID.
	ApplicationByPID(pid int) (*Element, error)

	// ApplicationByName returns the application element by name.
	ApplicationByName(name string) (*Element, error)

	// AllApplications returns all running application elements.
	AllApplications() ([]*Element, error)

	// Close releases any resources held by the finder.
	Close() error
}

// NewFinder creates a new Finder for locating UI elements.
// On macOS, this requires accessibility permissions.
// Call Close() when done to release resources.
func NewFinder() (*Finder, error) {
	impl, err := newFinderImpl()
	if err != nil {
		return nil, err
	}
	return &Finder{impl: impl}, nil
}

// Close releases resources held by the Finder.
func (f *Finder) Close() error {
	if f.impl != nil {
		return f.impl.Close()
	}
	return nil
}

// Root returns the system-wide root element.
// All applications are children of this element.
func (f *Finder) Root() (*Element, error) {
	return f.impl.Root()
}

// FocusedApplication returns the frontmost application.
func (f *Finder) FocusedApplication() (*Element, error) {
	return f.impl.FocusedApplication()
}

// FocusedElement returns the element that currently has keyboard focus.
func (f *Finder) FocusedElement() (*Element, error) {
	return f.impl.FocusedElement()
}

// ApplicationByPID returns the application element for a process ID.
func (f *Finder) ApplicationByPID(pid int) (*Element, error) {
	return f.impl.ApplicationByPID(pid)
}

// ApplicationByName returns the application element by name.
// The name is matched case-insensitively.
func (f *Finder) ApplicationByName(name string) (*Element, error) {
	return f.impl.ApplicationByName(name)
}

// AllApplications returns all running application elements.
func (f *Finder) AllApplications() ([]*Element, error) {
	return f.impl.AllApplications()
}

// WaitForApplication polls ApplicationByName until it resolves or
// timeout elapses, returning ErrTimeout on expiry. Used after launching
// an application by name, where the process takes a moment to register
// with the accessibility layer.
func (f *Finder) WaitForApplication(name string, timeout time.Duration) (*Element, error) {
	deadline := time.Now().Add(timeout)
	for {
		if app, err := f.ApplicationByName(name); err == nil {
			return app, nil
		}
		if time.Now().After(deadline) {
			return nil, ErrTimeout
		}
		time.Sleep(150 * time.Millisecond)
	}
}

// Platform-specific implementation constructor (defined in darwin.go / windows.go)
var newFinderImpl func() (finderImpl, error) = func() (finderImpl, error) {
	return nil, ErrNotSupported
}
