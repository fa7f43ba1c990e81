package element

import (
	"runtime"
	"testing"
	"time"
)

func TestRectCenter(t *testing.T) {
	tests := []struct {
		name string
		rect Rect
		want Point
	}{
		{
			name: "simple rectangle",
			rect: Rect{X: 0, Y: 0, Width: 100, Height: 100},
			want: Point{X: 50, Y: 50},
		},
		{
			name: "offset rectangle",
			rect: Rect{X: 100, Y: 200, Width: 50, Height: 60},
			want: Point{X: 125, Y: 230},
		},
		{
			name: "zero size",
			rect: Rect{X: 10, Y: 20, Width: 0, Height: 0},
			want: Point{X: 10, Y: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rect.Center()
			if got != tt.want {
				t.Errorf("Center() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	rect := Rect{X: 10, Y: 20, Width: 100, Height: 50}

	tests := []struct {
		name  string
		point Point
		want  bool
	}{
		{"inside", Point{50, 40}, true},
		{"top-left corner", Point{10, 20}, true},
		{"bottom-right edge", Point{109, 69}, true},
		{"outside left", Point{5, 40}, false},
		{"outside right", Point{111, 40}, false},
		{"outside top", Point{50, 15}, false},
		{"outside bottom", Point{50, 71}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rect.Contains(tt.point); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestRectIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		rect Rect
		want bool
	}{
		{"normal", Rect{X: 0, Y: 0, Width: 100, Height: 50}, false},
		{"zero width", Rect{X: 0, Y: 0, Width: 0, Height: 50}, true},
		{"zero height", Rect{X: 0, Y: 0, Width: 100, Height: 0}, true},
		{"negative width", Rect{X: 0, Y: 0, Width: -10, Height: 50}, true},
		{"negative height", Rect{X: 0, Y: 0, Width: 100, Height: -10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestElementString(t *testing.T) {
	elem := &Element{
		Role:   RoleButton,
		Name:   "Submit",
		Bounds: Rect{X: 100, Y: 200, Width: 80, Height: 30},
	}

	got := elem.String()
	if got == "" {
		t.Error("String() returned empty string")
	}

	// Should contain role and name
	if !containsSubstring(got, "button") {
		t.Errorf("String() should contain role, got %s", got)
	}
	if !containsSubstring(got, "Submit") {
		t.Errorf("String() should contain name, got %s", got)
	}
}

func TestMapRole(t *testing.T) {
	if runtime.GOOS != "darwin" {
		t.Skip("mapRole is only available on macOS")
	}

	tests := []struct {
		axRole string
		want   Role
	}{
		{"AXWindow", RoleWindow},
		{"AXButton", RoleButton},
		{"AXTextField", RoleTextField},
		{"AXStaticText", RoleStaticText},
		{"AXUnknownRole", RoleUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.axRole, func(t *testing.T) {
			got := mapRole(tt.axRole)
			if got != tt.want {
				t.Errorf("mapRole(%s) = %s, want %s", tt.axRole, got, tt.want)
			}
		})
	}
}

// fakeFinderImpl resolves a name after a fixed number of ApplicationByName
// misses, simulating a just-launched process registering with the
// accessibility layer a moment after the process starts.
type fakeFinderImpl struct {
	missesBeforeHit int
	calls           int
}

func (f *fakeFinderImpl) Root() (*Element, error)                  { return nil, ErrNotSupported }
func (f *fakeFinderImpl) FocusedApplication() (*Element, error)    { return nil, ErrNotSupported }
func (f *fakeFinderImpl) FocusedElement() (*Element, error)        { return nil, ErrNotSupported }
func (f *fakeFinderImpl) ApplicationByPID(pid int) (*Element, error) {
	return nil, ErrNotSupported
}
func (f *fakeFinderImpl) AllApplications() ([]*Element, error) { return nil, ErrNotSupported }
func (f *fakeFinderImpl) Close() error                         { return nil }

func (f *fakeFinderImpl) ApplicationByName(name string) (*Element, error) {
	f.calls++
	if f.calls <= f.missesBeforeHit {
		return nil, ErrNotFound
	}
	return &Element{Name: name, PID: 4242}, nil
}

func TestWaitForApplicationRetriesUntilResolved(t *testing.T) {
	impl := &fakeFinderImpl{missesBeforeHit: 2}
	finder := &Finder{impl: impl}

	app, err := finder.WaitForApplication("TextEdit", time.Second)
	if err != nil {
		t.Fatalf("WaitForApplication() error: %v", err)
	}
	if app.PID != 4242 {
		t.Errorf("WaitForApplication() PID = %d, want 4242", app.PID)
	}
	if impl.calls != 3 {
		t.Errorf("WaitForApplication() called ApplicationByName %d times, want 3", impl.calls)
	}
}

func TestWaitForApplicationTimesOut(t *testing.T) {
	impl := &fakeFinderImpl{missesBeforeHit: 1000}
	finder := &Finder{impl: impl}

	_, err := finder.WaitForApplication("Nonexistent", 200*time.Millisecond)
	if err != ErrTimeout {
		t.Errorf("WaitForApplication() error = %v, want ErrTimeout", err)
	}
}

// Helper function
func containsSubstring(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(s) > len(substr) && containsAt(s, substr))
}

func containsAt(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
