package tools

import (
	"github.com/lahfir/agent-desktop-sub000/internal/desktoperr"
	"github.com/lahfir/agent-desktop-sub000/internal/dispatch"
	"github.com/lahfir/agent-desktop-sub000/internal/model"
)

// parseKeyCombo splits a "mod+mod+key" string (as typed on the command
// line) into a KeyCombo, recognizing cmd/ctrl/alt/shift (case
// insensitive) as modifier tokens and treating everything else as the
// base key.
func parseKeyCombo(s string) (model.KeyCombo, error) {
	if s == "" {
		return model.KeyCombo{}, desktoperr.New(desktoperr.InvalidArgs, "key combo is required")
	}
	var combo model.KeyCombo
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '+' {
			tok := s[start:i]
			start = i + 1
			switch toLower(tok) {
			case "cmd", "command", "super", "meta":
				combo.Modifiers = append(combo.Modifiers, model.ModCmd)
			case "ctrl", "control":
				combo.Modifiers = append(combo.Modifiers, model.ModCtrl)
			case "alt", "option":
				combo.Modifiers = append(combo.Modifiers, model.ModAlt)
			case "shift":
				combo.Modifiers = append(combo.Modifiers, model.ModShift)
			default:
				combo.Key = tok
			}
		}
	}
	if combo.Key == "" {
		return model.KeyCombo{}, desktoperr.Newf(desktoperr.InvalidArgs, "%q has no base key", s)
	}
	return combo, nil
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// PressKey implements the press-key verb: the appRoot used for the
// menu-bar shortcut lookup is the currently focused application, best-
// effort (a lookup failure simply skips that optimization).
func (rt *Runtime) PressKey(comboStr string) (*model.Envelope, error) {
	combo, err := parseKeyCombo(comboStr)
	if err != nil {
		return nil, err
	}
	appRoot, _ := rt.Adapter.FocusedApplication()
	if err := dispatch.DispatchPressKey(rt.Adapter, appRoot, nil, combo); err != nil {
		return nil, err
	}
	return rt.Envelope("press", map[string]any{"combo": combo.String()}), nil
}

func (rt *Runtime) KeyDown(comboStr string) (*model.Envelope, error) {
	combo, err := parseKeyCombo(comboStr)
	if err != nil {
		return nil, err
	}
	if err := dispatch.DispatchKeyDown(rt.Adapter, combo); err != nil {
		return nil, err
	}
	return rt.Envelope("key-down", map[string]any{"combo": combo.String()}), nil
}

func (rt *Runtime) KeyUp(comboStr string) (*model.Envelope, error) {
	combo, err := parseKeyCombo(comboStr)
	if err != nil {
		return nil, err
	}
	if err := dispatch.DispatchKeyUp(rt.Adapter, combo); err != nil {
		return nil, err
	}
	return rt.Envelope("key-up", map[string]any{"combo": combo.String()}), nil
}

// pointFor resolves a hover/drag endpoint: an explicit handle wins
// (resolved to its bounds center), else the caller-supplied x,y.
func (rt *Runtime) pointFor(handle string, x, y float64) (model.Point, error) {
	if handle == "" {
		return model.Point{X: x, Y: y}, nil
	}
	_, el, err := rt.resolveHandle(handle)
	if err != nil {
		return model.Point{}, err
	}
	b, err := rt.Adapter.ElementBounds(el.Native())
	if err != nil {
		return model.Point{}, err
	}
	return model.Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}, nil
}

// Hover moves the pointer to a handle's center (or explicit x,y),
// optionally holding for durationMs.
func (rt *Runtime) Hover(handle string, x, y float64, durationMs int) (*model.Envelope, error) {
	p, err := rt.pointFor(handle, x, y)
	if err != nil {
		return nil, err
	}
	if err := dispatch.DispatchHover(rt.Adapter, p, durationMs); err != nil {
		return nil, err
	}
	return rt.Envelope("hover", map[string]any{"x": p.X, "y": p.Y}), nil
}

// Drag synthesizes a press-move-release gesture from (fromHandle|fromXY)
// to (toHandle|toXY).
func (rt *Runtime) Drag(fromHandle string, fromX, fromY float64, toHandle string, toX, toY float64, durationMs int) (*model.Envelope, error) {
	from, err := rt.pointFor(fromHandle, fromX, fromY)
	if err != nil {
		return nil, err
	}
	to, err := rt.pointFor(toHandle, toX, toY)
	if err != nil {
		return nil, err
	}
	if err := dispatch.DispatchDrag(rt.Adapter, from, to, durationMs); err != nil {
		return nil, err
	}
	return rt.Envelope("drag", map[string]any{"from": from, "to": to}), nil
}
