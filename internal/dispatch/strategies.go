package dispatch

import (
	"time"

	"github.com/lahfir/agent-desktop-sub000/internal/adapter"
	"github.com/lahfir/agent-desktop-sub000/internal/model"
)

// sleepThen returns a Custom step that only sleeps; used to space out
// the repeated click-chain runs inside DoubleClick/TripleClick.
func sleepThen(d time.Duration) func(ctx *ChainContext) (bool, error) {
	return func(ctx *ChainContext) (bool, error) {
		time.Sleep(d)
		return false, nil
	}
}

// showAlternateUI: if the element advertises an alternate-UI action,
// invoke it, pause, then press the first child that accepts press.
func showAlternateUI(ctx *ChainContext) (bool, error) {
	if err := ctx.Element.PerformNative("AXShowAlternateUI"); err != nil {
		return false, nil
	}
	time.Sleep(100 * time.Millisecond)
	for _, child := range ctx.Element.Children() {
		if child.PerformNative("AXPress") == nil {
			return true, nil
		}
	}
	return true, nil
}

// setSelected sets AXSelected=true when settable, as a click substitute
// for selection-only targets (table rows, list items).
func setSelected(ctx *ChainContext) (bool, error) {
	if !ctx.Element.IsAttrSettable("AXSelected") {
		return false, nil
	}
	return ctx.Element.SetAttr("AXSelected", true) == nil, nil
}

// selectViaParent: if the parent is a table/outline/list and its
// selection attribute is settable, set selection to a one-element list
// containing this element.
func selectViaParent(ctx *ChainContext) (bool, error) {
	parent := ctx.Element.Parent()
	if parent == nil {
		return false, nil
	}
	role := parent.Attrs().Role
	switch role {
	case "AXTable", "AXOutline", "AXList":
	default:
		return false, nil
	}
	if !parent.IsAttrSettable("AXSelectedRows") {
		return false, nil
	}
	err := parent.SetAttr("AXSelectedRows", []any{ctx.Element.Native().Raw()})
	return err == nil, nil
}

// verifiedPress: inside a selection container (row/outline/table),
// perform Press only if the element's selected state changed —
// rejecting ghost successes that report AXPress ok without visibly
// selecting anything.
func verifiedPress(ctx *ChainContext) (bool, error) {
	parent := ctx.Element.Parent()
	if parent == nil {
		return false, nil
	}
	switch parent.Attrs().Role {
	case "AXRow", "AXOutlineRow", "AXOutline", "AXTable":
	default:
		return false, nil
	}
	before := ctx.Element.Attrs().Selected
	if err := ctx.Element.PerformNative("AXPress"); err != nil {
		return false, nil
	}
	after := ctx.Element.Attrs().Selected
	return after != before, nil
}

// keyboardActivate: focus, then post a space key-down/key-up to the
// owning application.
func keyboardActivate(ctx *ChainContext) (bool, error) {
	_ = ctx.Element.SetAttr("AXFocused", true)
	combo := model.KeyCombo{Key: "space"}
	if err := ctx.Adapter.ExecuteAction(adapter.NullNativeHandle(), model.NewKeyDown(combo)); err != nil {
		return false, nil
	}
	err := ctx.Adapter.ExecuteAction(adapter.NullNativeHandle(), model.NewKeyUp(combo))
	return err == nil, nil
}

// focusAppThenShowMenu: ensure the owning app is frontmost, pause, then
// attempt AXShowMenu.
func focusAppThenShowMenu(ctx *ChainContext) (bool, error) {
	if app, err := ctx.Adapter.AppRoot(ctx.Element.PID()); err == nil && app != nil {
		_ = app.SetAttr("AXFrontmost", true)
	}
	time.Sleep(50 * time.Millisecond)
	return ctx.Element.PerformNative("AXShowMenu") == nil, nil
}

// selectThenShowMenu: select the element, then attempt AXShowMenu.
func selectThenShowMenu(ctx *ChainContext) (bool, error) {
	_ = ctx.Element.SetAttr("AXSelected", true)
	return ctx.Element.PerformNative("AXShowMenu") == nil, nil
}

// focusThenSetDynamic: focus, wait, then set the dynamic value — the
// SetValue chain's fallback when a direct AXValue set is refused.
func focusThenSetDynamic(ctx *ChainContext) (bool, error) {
	_ = ctx.Element.SetAttr("AXFocused", true)
	time.Sleep(50 * time.Millisecond)
	return ctx.Element.SetAttr("AXValue", ctx.DynamicValue) == nil, nil
}

// clearValueDirect sets AXValue to the empty string directly.
func clearValueDirect(ctx *ChainContext) (bool, error) {
	return ctx.Element.SetAttr("AXValue", "") == nil, nil
}

// focusThenClear focuses, then sets AXValue to empty.
func focusThenClear(ctx *ChainContext) (bool, error) {
	_ = ctx.Element.SetAttr("AXFocused", true)
	time.Sleep(50 * time.Millisecond)
	return ctx.Element.SetAttr("AXValue", "") == nil, nil
}

// selectAllThenDelete: focus the element, then post cmd+a followed by
// delete to the owning application.
func selectAllThenDelete(ctx *ChainContext) (bool, error) {
	_ = ctx.Element.SetAttr("AXFocused", true)
	selectAll := model.KeyCombo{Key: "a", Modifiers: []model.Modifier{model.ModCmd}}
	if err := ctx.Adapter.ExecuteAction(adapter.NullNativeHandle(), model.NewPressKey(selectAll)); err != nil {
		return false, nil
	}
	del := model.KeyCombo{Key: "delete"}
	err := ctx.Adapter.ExecuteAction(adapter.NullNativeHandle(), model.NewPressKey(del))
	return err == nil, nil
}

// scrollAreaRoles names canonical-ish native roles walkParentsAndScroll
// recognizes as a scrollable container.
var scrollAreaRoles = map[string]bool{"AXScrollArea": true}

// walkParentsAndScroll climbs up to 8 ancestors looking for a scroll
// area; when found, if the element's midline lies outside the scroll
// area's visible range, synthesizes small scroll ticks in the
// appropriate direction.
func walkParentsAndScroll(ctx *ChainContext) (bool, error) {
	el := ctx.Element.Parent()
	for i := 0; i < 8 && el != nil; i++ {
		if scrollAreaRoles[el.Attrs().Role] {
			return scrollIntoView(ctx, el)
		}
		el = el.Parent()
	}
	return false, nil
}

// scrollIntoView nudges the scroll area with up to 20 small ticks so
// the target element's vertical midline falls inside the area's
// visible bounds.
func scrollIntoView(ctx *ChainContext, scrollArea adapter.Element) (bool, error) {
	areaBounds, ok := scrollArea.Bounds()
	if !ok {
		return false, nil
	}
	elBounds, ok := ctx.Element.Bounds()
	if !ok {
		return false, nil
	}
	elMid := elBounds.Y + elBounds.Height/2
	direction := 0
	if elMid < areaBounds.Y {
		direction = -1
	} else if elMid > areaBounds.Y+areaBounds.Height {
		direction = 1
	} else {
		return true, nil
	}
	center := model.Point{X: areaBounds.X + areaBounds.Width/2, Y: areaBounds.Y + areaBounds.Height/2}
	for i := 0; i < 20; i++ {
		_ = ctx.Adapter.MouseEvent(adapter.MouseMove, adapter.ButtonLeft, center)
		dy := direction * 10
		if err := scrollTick(ctx, center, 0, dy); err != nil {
			break
		}
		b, ok := ctx.Element.Bounds()
		if !ok {
			break
		}
		mid := b.Y + b.Height/2
		if mid >= areaBounds.Y && mid <= areaBounds.Y+areaBounds.Height {
			return true, nil
		}
	}
	return false, nil
}

// scrollTick synthesizes one scroll-wheel tick at p via the dispatcher's
// Scroll action, routed through ExecuteAction so every backend handles
// the same code path as the scroll verb.
func scrollTick(ctx *ChainContext, p model.Point, dx, dy int) error {
	dir := model.ScrollDown
	switch {
	case dy < 0:
		dir = model.ScrollUp
	case dx > 0:
		dir = model.ScrollRight
	case dx < 0:
		dir = model.ScrollLeft
	}
	return ctx.Adapter.ExecuteAction(ctx.Element.Native(), model.NewScroll(dir, 1))
}

// cgClick falls back to a synthesized pointer event at the element's
// center using the bounds read from the live element, repeated count
// times for multi-click semantics.
func cgClick(ctx *ChainContext, button string, count int) (bool, error) {
	b, ok := ctx.Element.Bounds()
	if !ok {
		return false, nil
	}
	p := model.Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
	btn := adapter.ButtonLeft
	if button == "right" {
		btn = adapter.ButtonRight
	} else if button == "middle" {
		btn = adapter.ButtonMiddle
	}
	if count <= 0 {
		count = 1
	}
	for i := 0; i < count; i++ {
		if err := ctx.Adapter.MouseEvent(adapter.MouseClick, btn, p); err != nil {
			return false, nil
		}
		if i < count-1 {
			time.Sleep(50 * time.Millisecond)
		}
	}
	return true, nil
}
