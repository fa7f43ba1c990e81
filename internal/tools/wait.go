package tools

import (
	"strings"
	"time"

	"github.com/lahfir/agent-desktop-sub000/internal/adapter"
	"github.com/lahfir/agent-desktop-sub000/internal/desktoperr"
	"github.com/lahfir/agent-desktop-sub000/internal/model"
	"github.com/lahfir/agent-desktop-sub000/internal/tree"
	"github.com/lahfir/agent-desktop-sub000/internal/wait"
)

// WaitArgs names which of the wait verb's predicate families to poll;
// exactly one of Handle/WindowTitle/Text/HasMenu/SleepMs should be set.
type WaitArgs struct {
	Handle      string
	WindowTitle string
	App         string
	Text        string
	HasMenu     *bool
	SleepMs     int
	TimeoutMs   int
}

// Wait implements the wait verb: bounded polling over one predicate
// family, reporting found=true/false rather than failing the whole
// command on a miss (only a malformed request or adapter error fails
// it; a timeout with nothing found is a normal ok=true, found=false
// result per the element-wait example).
func (rt *Runtime) Wait(args WaitArgs) (*model.Envelope, error) {
	timeout := time.Duration(args.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	switch {
	case args.SleepMs > 0:
		if err := wait.Sleep(args.SleepMs); err != nil {
			return nil, err
		}
		return rt.Envelope("wait", map[string]any{"found": true, "kind": "sleep"}), nil

	case args.Handle != "":
		found := false
		pred := func() (bool, error) {
			_, _, err := rt.resolveHandle(args.Handle)
			if err == nil {
				found = true
				return true, nil
			}
			if de, ok := desktoperr.As(err); ok && (de.Code == desktoperr.StaleRef || de.Code == desktoperr.ElementNotFound) {
				return false, nil
			}
			return false, err
		}
		err := wait.Until(pred, wait.DefaultInterval, timeout, "handle "+args.Handle+" to resolve")
		return rt.waitResult("element", found, err)

	case args.WindowTitle != "":
		found := false
		pred := func() (bool, error) {
			wins, err := rt.Adapter.ListWindows(adapter.WindowFilter{App: args.App})
			if err != nil {
				return false, err
			}
			for _, w := range wins {
				if strings.Contains(w.Title, args.WindowTitle) {
					found = true
					return true, nil
				}
			}
			return false, nil
		}
		err := wait.Until(pred, wait.DefaultInterval, timeout, "window titled "+args.WindowTitle)
		return rt.waitResult("window", found, err)

	case args.Text != "":
		found := false
		pred := func() (bool, error) {
			win, app, err := rt.resolveTargetWindow(args.App, "")
			if err != nil {
				return false, nil
			}
			root, err := rt.Adapter.AppRoot(app.PID)
			if err != nil {
				return false, nil
			}
			node, err := tree.Build(root, adapter.DefaultTreeOptions(), nil, app.Name)
			if err != nil {
				return false, nil
			}
			_ = win
			if containsText(node, args.Text) {
				found = true
				return true, nil
			}
			return false, nil
		}
		err := wait.Until(pred, wait.TextWaitInterval, timeout, "text "+args.Text+" to appear")
		return rt.waitResult("text", found, err)

	case args.HasMenu != nil:
		_, app, err := rt.resolveTargetWindow(args.App, "")
		if err != nil {
			return nil, err
		}
		found, err := rt.Adapter.WaitForMenu(app.PID, *args.HasMenu, timeout)
		if err != nil {
			return nil, err
		}
		return rt.Envelope("wait", map[string]any{"found": found, "kind": "menu"}), nil

	default:
		return nil, desktoperr.New(desktoperr.InvalidArgs, "wait requires one of handle, window-title, text, has-menu, or sleep-ms")
	}
}

// waitResult converts a timeout error into a successful found=false
// result; any other error (adapter failure, malformed request)
// propagates as a command failure.
func (rt *Runtime) waitResult(kind string, found bool, err error) (*model.Envelope, error) {
	if err != nil {
		if de, ok := desktoperr.As(err); ok && de.Code == desktoperr.Timeout {
			return rt.Envelope("wait", map[string]any{"found": false, "kind": kind}), nil
		}
		return nil, err
	}
	return rt.Envelope("wait", map[string]any{"found": found, "kind": kind}), nil
}

func containsText(n model.AccessibilityNode, text string) bool {
	if n.Name == text || n.Value == text {
		return true
	}
	for _, c := range n.Children {
		if containsText(c, text) {
			return true
		}
	}
	return false
}
