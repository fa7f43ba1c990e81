package tools

import (
	"github.com/lahfir/agent-desktop-sub000/internal/adapter"
	"github.com/lahfir/agent-desktop-sub000/internal/model"
)

// parseButton maps a command-line button name to adapter.MouseButton,
// defaulting to left.
func parseButton(s string) adapter.MouseButton {
	switch toLower(s) {
	case "right":
		return adapter.ButtonRight
	case "middle":
		return adapter.ButtonMiddle
	default:
		return adapter.ButtonLeft
	}
}

// mouseEvent is the shared implementation behind the four mouse-*
// primitive verbs, direct passthroughs to the adapter's MouseEvent with
// no element resolution or dispatch-chain involvement, per the
// supplemented mouse-* verb set.
func (rt *Runtime) mouseEvent(command string, kind adapter.MouseEventKind, button string, x, y float64) (*model.Envelope, error) {
	p := model.Point{X: x, Y: y}
	if err := rt.Adapter.MouseEvent(kind, parseButton(button), p); err != nil {
		return nil, err
	}
	return rt.Envelope(command, map[string]any{"x": x, "y": y, "button": button}), nil
}

func (rt *Runtime) MouseClick(button string, x, y float64) (*model.Envelope, error) {
	return rt.mouseEvent("mouse-click", adapter.MouseClick, button, x, y)
}

func (rt *Runtime) MouseDown(button string, x, y float64) (*model.Envelope, error) {
	return rt.mouseEvent("mouse-down", adapter.MouseDown, button, x, y)
}

func (rt *Runtime) MouseUp(button string, x, y float64) (*model.Envelope, error) {
	return rt.mouseEvent("mouse-up", adapter.MouseUp, button, x, y)
}

func (rt *Runtime) MouseMove(x, y float64) (*model.Envelope, error) {
	return rt.mouseEvent("mouse-move", adapter.MouseMove, "left", x, y)
}
