package tools

import (
	"strconv"

	"github.com/lahfir/agent-desktop-sub000/internal/desktoperr"
	"github.com/lahfir/agent-desktop-sub000/internal/model"
)

// Step is one entry of a batch request: a verb name plus its string-
// keyed arguments, mirroring the CLI's own flag surface so a batch
// script reads like a sequence of individual invocations.
type Step struct {
	Command string
	Args    map[string]string
}

// StepResult pairs a batch step with its own envelope; a failing step
// does not abort the remaining steps unless StopOnError is set, since
// an agent driving several independent elements wants to see every
// outcome rather than lose the tail of the batch to one stale handle.
type StepResult struct {
	Command string          `json:"command"`
	Result  *model.Envelope `json:"result,omitempty"`
}

// BatchArgs controls batch execution.
type BatchArgs struct {
	Steps       []Step
	StopOnError bool
}

// Batch runs each step against this Runtime in order, collecting one
// envelope per step into the batch verb's own envelope.
func (rt *Runtime) Batch(args BatchArgs) (*model.Envelope, error) {
	if len(args.Steps) == 0 {
		return nil, desktoperr.New(desktoperr.InvalidArgs, "batch requires at least one step")
	}
	results := make([]StepResult, 0, len(args.Steps))
	failed := 0
	for _, step := range args.Steps {
		env, err := rt.runStep(step)
		if err != nil {
			env = ErrEnvelope(step.Command, err)
		}
		if !env.OK {
			failed++
		}
		results = append(results, StepResult{Command: step.Command, Result: env})
		if !env.OK && args.StopOnError {
			break
		}
	}
	return rt.Envelope("batch", map[string]any{
		"steps":  results,
		"ran":    len(results),
		"failed": failed,
		"total":  len(args.Steps),
	}), nil
}

// runStep dispatches a single batch step to the matching Runtime
// method, covering the handle-addressed verbs a batch realistically
// chains together; verbs with host side effects outside the element
// graph (launch, screenshot, window geometry) are invoked one at a
// time via the top-level CLI instead of from inside a batch.
func (rt *Runtime) runStep(step Step) (*model.Envelope, error) {
	a := step.Args
	switch step.Command {
	case "click":
		return rt.Click(a["handle"])
	case "double-click":
		return rt.DoubleClick(a["handle"])
	case "triple-click":
		return rt.TripleClick(a["handle"])
	case "right-click":
		return rt.RightClick(a["handle"])
	case "expand":
		return rt.Expand(a["handle"])
	case "collapse":
		return rt.Collapse(a["handle"])
	case "toggle":
		return rt.Toggle(a["handle"])
	case "check":
		return rt.Check(a["handle"])
	case "uncheck":
		return rt.Uncheck(a["handle"])
	case "set-value":
		return rt.SetValue(a["handle"], a["value"])
	case "clear":
		return rt.Clear(a["handle"])
	case "set-focus":
		return rt.SetFocus(a["handle"])
	case "select":
		return rt.Select(a["handle"], a["text"])
	case "scroll-to":
		return rt.ScrollTo(a["handle"])
	case "scroll":
		amount, _ := strconv.Atoi(a["amount"])
		return rt.Scroll(a["handle"], model.ScrollDirection(a["direction"]), amount)
	case "type-text":
		return rt.TypeText(a["handle"], a["text"])
	case "press":
		return rt.PressKey(a["combo"])
	case "find":
		return rt.Find(a["handle"])
	case "get":
		return rt.Get(a["handle"])
	case "is-checked":
		return rt.IsChecked(a["handle"])
	default:
		return nil, desktoperr.Newf(desktoperr.InvalidArgs, "%q is not a batch-eligible verb", step.Command)
	}
}
