package adapter

import (
	pkgelement "github.com/lahfir/agent-desktop-sub000/pkg/element"
	"github.com/lahfir/agent-desktop-sub000/internal/model"
)

// nativeElement adapts a *pkgelement.Element (the teacher's cross-platform
// AXUIElement/UI-Automation wrapper) to the Element interface C2/C3
// traverse. It holds no platform-specific code itself; pkg/element's
// build-tagged files already resolved every operation to the right
// backend, so one wrapper type serves darwin and windows alike.
type nativeElement struct {
	el *pkgelement.Element
}

// WrapElement adapts a *pkgelement.Element into the Element interface.
// It returns nil for a nil input so callers can treat "no element"
// uniformly as a nil Element interface value. Exported for the
// concrete per-OS backend packages (internal/backend), which sit on
// the other side of this package from internal/surface/internal/tree
// and so cannot live inside package adapter themselves without an
// import cycle (surface and tree both import adapter for its types).
func WrapElement(el *pkgelement.Element) Element {
	if el == nil {
		return nil
	}
	return &nativeElement{el: el}
}

func (n *nativeElement) Attrs() ElementAttrs {
	return ElementAttrs{
		Role:        string(n.el.Role),
		Title:       firstNonEmpty(n.el.Title, n.el.Name),
		Description: n.el.Description,
		Value:       n.el.Value,
		Enabled:     n.el.Enabled,
		Focused:     n.el.Focused,
		Selected:    n.el.Selected,
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

func (n *nativeElement) Bounds() (model.Rect, bool) {
	b := n.el.Bounds
	if b.IsEmpty() {
		return model.Rect{}, false
	}
	return model.Rect{
		X:      float64(b.X),
		Y:      float64(b.Y),
		Width:  float64(b.Width),
		Height: float64(b.Height),
	}, true
}

func (n *nativeElement) Children() []Element {
	if n.el.Children == nil {
		if err := n.el.LoadChildren(); err != nil {
			return nil
		}
	}
	out := make([]Element, 0, len(n.el.Children))
	for _, c := range n.el.Children {
		out = append(out, WrapElement(c))
	}
	return out
}

func (n *nativeElement) PID() int { return n.el.PID }

func (n *nativeElement) Address() uintptr { return n.el.NativeAddress() }

func (n *nativeElement) Native() NativeHandle { return NativeHandleFrom(n.el) }

func (n *nativeElement) IsAttrSettable(attr string) bool { return n.el.IsAttrSettable(attr) }

func (n *nativeElement) PerformNative(action string) error { return n.el.PerformAction(action) }

func (n *nativeElement) SetAttr(attr string, value any) error { return n.el.SetAttr(attr, value) }

func (n *nativeElement) GetAttr(attr string) (any, error) { return n.el.GetAttr(attr) }

func (n *nativeElement) Parent() Element { return WrapElement(n.el.Parent) }

func (n *nativeElement) Release() { n.el.ReleaseNative() }

// UnwrapElement recovers the *pkgelement.Element backing a NativeHandle
// minted by nativeElement.Native(), for ExecuteAction/ElementBounds/
// ReadLiveValue callers that only carry a handle, not the full Element.
func UnwrapElement(h NativeHandle) (*pkgelement.Element, bool) {
	el, ok := h.Raw().(*pkgelement.Element)
	return el, ok
}
