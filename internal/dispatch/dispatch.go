// Package dispatch also exposes the higher-level per-verb algorithms
// that sit above the chain executor: Toggle/Check/Uncheck idempotence,
// Select's per-role branching, Scroll's ancestor-walk fallback ladder,
// TypeText, PressKey (including the protected-combo refusal and
// menu-bar shortcut lookup), and Drag/Hover. Ported from the original's
// crates/macos/src/actions/dispatch.rs.
package dispatch

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lahfir/agent-desktop-sub000/internal/adapter"
	"github.com/lahfir/agent-desktop-sub000/internal/desktoperr"
	"github.com/lahfir/agent-desktop-sub000/internal/model"
	"github.com/lahfir/agent-desktop-sub000/internal/roles"
	"github.com/lahfir/agent-desktop-sub000/internal/safety"
)

// auditMu guards auditLogger; ConfigureAudit is normally called once at
// startup but the guard keeps concurrent Batch steps safe.
var (
	auditMu           sync.Mutex
	auditLogger       *safety.AuditLogger
	sensitiveDetector = safety.NewSensitiveDetector()
)

// ConfigureAudit points every subsequent Dispatch call's audit trail at
// the append-only JSON-lines file under stateDir. Safe to call more than
// once; the most recent path wins.
func ConfigureAudit(path string) error {
	logger, err := safety.NewFileAuditLogger(path)
	if err != nil {
		return err
	}
	auditMu.Lock()
	auditLogger = logger
	auditMu.Unlock()
	return nil
}

func logDispatch(action model.Action, target, result string, err error) {
	auditMu.Lock()
	logger := auditLogger
	auditMu.Unlock()
	if logger == nil {
		return
	}
	logger.LogActionResult(string(action.Kind), target, target, result, err)
}

// checkSensitive blocks a dispatch before any native call when the
// target or its payload matches a SensitiveLevelBlock pattern (API
// keys, banking/payment details, government ID fields); Confirm/Warning
// matches are allowed through without being logged, since this CLI has no
// interactive confirmation channel to honor them with.
func checkSensitive(action model.Action, target string) error {
	matches := sensitiveDetector.Check(string(action.Kind), target, action.Text)
	if len(matches) == 0 {
		return nil
	}
	if sensitiveDetector.GetHighestLevel(matches) == safety.SensitiveLevelBlock {
		return desktoperr.Newf(desktoperr.PermDenied, "refusing %s on %q: matches sensitive pattern %q",
			action.Kind, target, matches[0].Pattern.Name).
			WithSuggestion(matches[0].Pattern.Description)
	}
	return nil
}

// dispatchTarget builds the role/title description checkSensitive and
// the audit log key off of.
func dispatchTarget(ctx *ChainContext, role string) string {
	if ctx.Element == nil {
		return role
	}
	attrs := ctx.Element.Attrs()
	name := attrs.Title
	if name == "" {
		name = attrs.Description
	}
	if name == "" {
		return role
	}
	return role + ": " + name
}

// Dispatch routes a high-level Action against a resolved element to the
// chain (or idempotence/branching algorithm) that implements it, gating
// every attempt on the sensitive-pattern check and recording every
// outcome to the audit log.
func Dispatch(ctx *ChainContext, role string, action model.Action) error {
	target := dispatchTarget(ctx, role)
	if err := checkSensitive(action, target); err != nil {
		logDispatch(action, target, "blocked", err)
		return err
	}
	err := dispatchRoute(ctx, role, action)
	result := "ok"
	if err != nil {
		result = "failed"
	}
	logDispatch(action, target, result, err)
	return err
}

func dispatchRoute(ctx *ChainContext, role string, action model.Action) error {
	switch action.Kind {
	case model.ActionClick:
		return Execute(ClickChain(), ctx)
	case model.ActionDoubleClick:
		return Execute(DoubleClickChain(), ctx)
	case model.ActionTripleClick:
		return Execute(TripleClickChain(), ctx)
	case model.ActionRightClick:
		return Execute(RightClickChain(), ctx)
	case model.ActionExpand:
		return Execute(ExpandChain(), ctx)
	case model.ActionCollapse:
		return Execute(CollapseChain(), ctx)
	case model.ActionSetValue:
		ctx.DynamicValue = action.Text
		return Execute(SetValueChain(), ctx)
	case model.ActionClear:
		ctx.DynamicValue = ""
		return Execute(ClearChain(), ctx)
	case model.ActionSetFocus:
		return Execute(SetFocusChain(), ctx)
	case model.ActionScrollTo:
		return Execute(ScrollToChain(), ctx)
	case model.ActionToggle:
		return dispatchToggle(ctx, role)
	case model.ActionCheck:
		return dispatchCheck(ctx, role, true)
	case model.ActionUncheck:
		return dispatchCheck(ctx, role, false)
	case model.ActionSelect:
		return dispatchSelect(ctx, role, action.Text)
	case model.ActionScroll:
		return dispatchScroll(ctx, action.Direction, action.Amount)
	case model.ActionTypeText:
		return dispatchTypeText(ctx, action.Text)
	default:
		return desktoperr.Newf(desktoperr.ActionNotSupported, "action %s is not dispatched through an element chain", action.Kind)
	}
}

// dispatchToggle requires a toggleable role, then runs the Click chain.
func dispatchToggle(ctx *ChainContext, role string) error {
	if !roles.IsToggleable(role) {
		return desktoperr.Newf(desktoperr.ActionNotSupported, "role %s does not support toggle", role)
	}
	return Execute(ClickChain(), ctx)
}

// dispatchCheck is idempotent: if the element is already in the
// requested checked state, it succeeds without running the Click
// chain.
func dispatchCheck(ctx *ChainContext, role string, want bool) error {
	if !roles.IsToggleable(role) {
		return desktoperr.Newf(desktoperr.ActionNotSupported, "role %s does not support check/uncheck", role)
	}
	if isChecked(ctx.Element) == want {
		return nil
	}
	return Execute(ClickChain(), ctx)
}

func isChecked(el adapter.Element) bool {
	v := el.Attrs().Value
	return v == "1" || strings.EqualFold(v, "true") || strings.EqualFold(v, "on")
}

// dispatchSelect branches on canonical role: combobox sets value;
// popupbutton/menubutton presses to open, waits, then scans for a
// matching menu item; list/table/outline scans immediate children;
// other roles fall back to SetValue.
func dispatchSelect(ctx *ChainContext, role, text string) error {
	switch role {
	case roles.ComboBox:
		ctx.DynamicValue = text
		if err := ctx.Element.SetAttr("AXValue", text); err == nil {
			return nil
		}
		return Execute(SetValueChain(), ctx)
	case roles.PopUpButton, roles.MenuButton:
		if err := ctx.Element.PerformNative("AXPress"); err != nil {
			return desktoperr.New(desktoperr.ActionFailed, "could not open menu to select from")
		}
		time.Sleep(200 * time.Millisecond)
		if selectMenuItemByTitle(ctx.Element, text) {
			return nil
		}
		pressEscape(ctx)
		return desktoperr.Newf(desktoperr.ElementNotFound, "no menu item matching %q", text)
	case roles.List, roles.Table, roles.Outline:
		if selectChildByTitle(ctx.Element, text) {
			return nil
		}
		return desktoperr.Newf(desktoperr.ElementNotFound, "no item matching %q", text)
	default:
		ctx.DynamicValue = text
		return Execute(SetValueChain(), ctx)
	}
}

// selectMenuItemByTitle recursively scans a just-opened menu/popup's
// descendants for a menu item whose title matches text case-
// insensitively and presses it.
func selectMenuItemByTitle(root adapter.Element, text string) bool {
	var scan func(el adapter.Element, depth int) bool
	scan = func(el adapter.Element, depth int) bool {
		if el == nil || depth > 10 {
			return false
		}
		attrs := el.Attrs()
		if strings.EqualFold(attrs.Title, text) {
			return el.PerformNative("AXPress") == nil
		}
		for _, c := range el.Children() {
			if scan(c, depth+1) {
				return true
			}
		}
		return false
	}
	return scan(root, 0)
}

// selectChildByTitle scans el's immediate children for one whose title
// matches text case-insensitively and sets it selected/pressed.
func selectChildByTitle(el adapter.Element, text string) bool {
	for _, c := range el.Children() {
		a := c.Attrs()
		name := a.Title
		if name == "" {
			name = a.Description
		}
		if strings.EqualFold(name, text) {
			if c.PerformNative("AXPress") == nil {
				return true
			}
			return c.SetAttr("AXSelected", true) == nil
		}
	}
	return false
}

func pressEscape(ctx *ChainContext) {
	combo := model.KeyCombo{Key: "escape"}
	_ = ctx.Adapter.ExecuteAction(adapter.NullNativeHandle(), model.NewPressKey(combo))
}

// scrollBarRoles are the native roles Scroll recognizes as an
// element's own directional scroll bar.
var scrollBarRoles = map[string]bool{"AXScrollBar": true}

// dispatchScroll walks up to 5 ancestors to find a scroll area and
// tries, in order: AXScrollToVisible, the directional scroll bar's
// Increment/Decrement, the scroll area's page-scroll actions, a direct
// scroll-bar value nudge, scroll-bar sub-element presses, a focused
// keyboard arrow sequence, and finally a synthesized wheel tick at the
// scroll area's center. First success wins. No child-focus or
// row-selection attempt is made.
func dispatchScroll(ctx *ChainContext, dir model.ScrollDirection, amount int) error {
	if amount <= 0 {
		amount = 1
	}
	if ctx.Element.PerformNative("AXScrollToVisible") == nil {
		return nil
	}

	area := ctx.Element.Parent()
	for i := 0; i < 5 && area != nil; i++ {
		if area.Attrs().Role == "AXScrollArea" {
			break
		}
		area = area.Parent()
	}
	if area == nil {
		area = ctx.Element
	}

	incName, decName := "AXIncrement", "AXDecrement"
	directional := findScrollBar(area, dir)
	if directional != nil {
		name := incName
		if dir == model.ScrollUp || dir == model.ScrollLeft {
			name = decName
		}
		pressed := 0
		for i := 0; i < amount; i++ {
			if directional.PerformNative(name) != nil {
				break
			}
			pressed++
		}
		if pressed > 0 {
			return nil
		}
	}

	pageAction := pageScrollAction(dir)
	if pageAction != "" && area.PerformNative(pageAction) == nil {
		return nil
	}

	if directional != nil {
		if nudgeScrollBarValue(directional, dir, amount) {
			return nil
		}
	}

	for _, c := range area.Children() {
		if c.Attrs().Role == "AXScrollBar" {
			sub := subrolePressName(dir)
			if sub != "" && c.PerformNative(sub) == nil {
				return nil
			}
		}
	}

	if ctx.Element.SetAttr("AXFocused", true) == nil {
		combo := arrowComboFor(dir)
		for i := 0; i < amount; i++ {
			_ = ctx.Adapter.ExecuteAction(adapter.NullNativeHandle(), model.NewPressKey(combo))
		}
		return nil
	}

	b, ok := area.Bounds()
	if !ok {
		return desktoperr.New(desktoperr.ActionFailed, "no scrollable ancestor found")
	}
	center := model.Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
	dx, dy := deltaFor(dir)
	for i := 0; i < amount; i++ {
		if err := scrollTick(ctx, center, dx, dy); err != nil {
			return desktoperr.Newf(desktoperr.ActionFailed, "scroll fallback failed: %v", err)
		}
	}
	return nil
}

func findScrollBar(area adapter.Element, dir model.ScrollDirection) adapter.Element {
	want := "AXVerticalOrientation"
	if dir == model.ScrollLeft || dir == model.ScrollRight {
		want = "AXHorizontalOrientation"
	}
	for _, c := range area.Children() {
		if !scrollBarRoles[c.Attrs().Role] {
			continue
		}
		if o, err := c.GetAttr("AXOrientation"); err == nil {
			if s, ok := o.(string); ok && s != want {
				continue
			}
		}
		return c
	}
	return nil
}

func pageScrollAction(dir model.ScrollDirection) string {
	switch dir {
	case model.ScrollUp:
		return "AXScrollUpByPage"
	case model.ScrollDown:
		return "AXScrollDownByPage"
	case model.ScrollLeft:
		return "AXScrollLeftByPage"
	case model.ScrollRight:
		return "AXScrollRightByPage"
	}
	return ""
}

func subrolePressName(dir model.ScrollDirection) string {
	switch dir {
	case model.ScrollUp, model.ScrollLeft:
		return "AXDecrementPage"
	default:
		return "AXIncrementPage"
	}
}

// nudgeScrollBarValue sets the scroll bar's AXValue ±0.1 per unit,
// clamped to [0,1].
func nudgeScrollBarValue(bar adapter.Element, dir model.ScrollDirection, amount int) bool {
	v, err := bar.GetAttr("AXValue")
	if err != nil {
		return false
	}
	f, ok := v.(float64)
	if !ok {
		return false
	}
	delta := 0.1 * float64(amount)
	if dir == model.ScrollUp || dir == model.ScrollLeft {
		delta = -delta
	}
	f += delta
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return bar.SetAttr("AXValue", f) == nil
}

func arrowComboFor(dir model.ScrollDirection) model.KeyCombo {
	switch dir {
	case model.ScrollUp:
		return model.KeyCombo{Key: "up"}
	case model.ScrollDown:
		return model.KeyCombo{Key: "down"}
	case model.ScrollLeft:
		return model.KeyCombo{Key: "left"}
	default:
		return model.KeyCombo{Key: "right"}
	}
}

func deltaFor(dir model.ScrollDirection) (int, int) {
	switch dir {
	case model.ScrollUp:
		return 0, -10
	case model.ScrollDown:
		return 0, 10
	case model.ScrollLeft:
		return -10, 0
	default:
		return 10, 0
	}
}

// dispatchTypeText ensures focus, then synthesizes one keyboard event
// per character via the adapter.
func dispatchTypeText(ctx *ChainContext, text string) error {
	_ = ctx.Element.SetAttr("AXFocused", true)
	return ctx.Adapter.ExecuteAction(ctx.Element.Native(), model.NewTypeText(text))
}

// DispatchPressKey implements the PressKey verb: protected combos are
// refused before any native call; otherwise, if a target application
// element is given, a menu-bar shortcut is attempted first, then
// application-level simple actions for unmodified enter/escape/space,
// and finally a raw key-down/key-up pair.
func DispatchPressKey(ad adapter.PlatformAdapter, appRoot adapter.Element, focused adapter.Element, combo model.KeyCombo) error {
	action := model.NewPressKey(combo)
	if safety.IsProtectedCombo(combo) {
		err := desktoperr.Newf(desktoperr.InvalidArgs, "key combination %s is blocked", combo.String())
		logDispatch(action, combo.String(), "blocked", err)
		return err
	}
	if appRoot != nil {
		if tryMenuBarShortcut(appRoot, combo) {
			logDispatch(action, combo.String(), "ok", nil)
			return nil
		}
	}
	if len(combo.Modifiers) == 0 && focused != nil {
		switch strings.ToLower(combo.Key) {
		case "enter", "return":
			if focused.PerformNative("AXConfirm") == nil {
				logDispatch(action, combo.String(), "ok", nil)
				return nil
			}
		case "escape", "esc":
			if focused.PerformNative("AXCancel") == nil {
				logDispatch(action, combo.String(), "ok", nil)
				return nil
			}
		case "space":
			if focused.PerformNative("AXPress") == nil {
				logDispatch(action, combo.String(), "ok", nil)
				return nil
			}
		}
	}
	err := ad.ExecuteAction(adapter.NullNativeHandle(), model.NewPressKey(combo))
	result := "ok"
	if err != nil {
		result = "failed"
	}
	logDispatch(action, combo.String(), result, err)
	return err
}

// tryMenuBarShortcut walks menubar -> menu -> items looking for an item
// whose command key and modifier mask match combo, pressing the first
// match.
func tryMenuBarShortcut(appRoot adapter.Element, combo model.KeyCombo) bool {
	var menubar adapter.Element
	for _, c := range appRoot.Children() {
		if c.Attrs().Role == "AXMenuBar" {
			menubar = c
			break
		}
	}
	if menubar == nil {
		return false
	}
	for _, menu := range menubar.Children() {
		if matchAndPress(menu, combo) {
			return true
		}
	}
	return false
}

func matchAndPress(el adapter.Element, combo model.KeyCombo) bool {
	cmdChar, _ := el.GetAttr("AXMenuItemCmdChar")
	if ch, ok := cmdChar.(string); ok && ch != "" && strings.EqualFold(ch, combo.Key) {
		// AXMenuItemCmdModifiers: shift=1, option=2, control=4,
		// 8 = no command key; 0 means command alone.
		want := 8
		for _, m := range combo.Modifiers {
			switch m {
			case model.ModShift:
				want |= 1
			case model.ModAlt:
				want |= 2
			case model.ModCtrl:
				want |= 4
			case model.ModCmd:
				want &^= 8
			}
		}
		mods, _ := el.GetAttr("AXMenuItemCmdModifiers")
		if f, ok := mods.(float64); (ok && int(f) == want) || (!ok && want == 0) {
			return el.PerformNative("AXPress") == nil
		}
	}
	for _, c := range el.Children() {
		if matchAndPress(c, combo) {
			return true
		}
	}
	return false
}

// DispatchKeyDown/DispatchKeyUp pass a raw modifier-aware key event
// straight to the adapter, refusing protected combos first.
func DispatchKeyDown(ad adapter.PlatformAdapter, combo model.KeyCombo) error {
	if safety.IsProtectedCombo(combo) {
		err := desktoperr.Newf(desktoperr.InvalidArgs, "key combination %s is blocked", combo.String())
		logDispatch(model.NewKeyDown(combo), combo.String(), "blocked", err)
		return err
	}
	err := ad.ExecuteAction(adapter.NullNativeHandle(), model.NewKeyDown(combo))
	logDispatch(model.NewKeyDown(combo), combo.String(), resultOf(err), err)
	return err
}

func DispatchKeyUp(ad adapter.PlatformAdapter, combo model.KeyCombo) error {
	if safety.IsProtectedCombo(combo) {
		err := desktoperr.Newf(desktoperr.InvalidArgs, "key combination %s is blocked", combo.String())
		logDispatch(model.NewKeyUp(combo), combo.String(), "blocked", err)
		return err
	}
	err := ad.ExecuteAction(adapter.NullNativeHandle(), model.NewKeyUp(combo))
	logDispatch(model.NewKeyUp(combo), combo.String(), resultOf(err), err)
	return err
}

// DispatchHover resolves to a bare point (the caller resolves a handle
// to its bounds center before calling this) and moves the pointer
// there, optionally holding for a duration.
func DispatchHover(ad adapter.PlatformAdapter, p model.Point, durationMs int) error {
	target := pointString(p)
	action := model.NewHover(&p, durationMs)
	err := ad.MouseEvent(adapter.MouseMove, adapter.ButtonLeft, p)
	if err != nil {
		logDispatch(action, target, "failed", err)
		return err
	}
	if durationMs > 0 {
		time.Sleep(time.Duration(durationMs) * time.Millisecond)
	}
	logDispatch(action, target, "ok", nil)
	return nil
}

// DispatchDrag hands a drag from from to to to the adapter's Drag, with
// durationMs defaulting to 300ms. How the drag is interpolated is up to
// the adapter; Backend's Drag does not time it by durationMs.
func DispatchDrag(ad adapter.PlatformAdapter, from, to model.Point, durationMs int) error {
	if durationMs <= 0 {
		durationMs = 300
	}
	err := ad.Drag(from, to, durationMs)
	logDispatch(model.NewDrag(&from, &to, durationMs), pointString(from)+" -> "+pointString(to), resultOf(err), err)
	return err
}

// DispatchWindowOp passes a window management action straight to the
// adapter; the CloseApp path goes through the protected-process check
// at the tools layer, not here, since WindowOp.Close targets a window,
// not a process.
func DispatchWindowOp(ad adapter.PlatformAdapter, req model.WindowOpRequest, windowID string) error {
	err := ad.WindowOp(req, windowID)
	logDispatch(model.Action{Kind: model.ActionKind(req.Op)}, windowID, resultOf(err), err)
	return err
}

func pointString(p model.Point) string {
	return fmt.Sprintf("(%.0f,%.0f)", p.X, p.Y)
}

// resultOf maps a dispatch error into the "ok"/"failed" audit result tag.
func resultOf(err error) string {
	if err != nil {
		return "failed"
	}
	return "ok"
}
