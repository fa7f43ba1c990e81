// Package dispatch implements the Action Dispatcher + Chains (C7): each
// high-level Action executes via an ordered chain of attempts, the
// first success winning. Ported step-for-step from the original's
// crates/macos/src/actions/{chain_defs,chain,dispatch}.rs; the Go-
// idiomatic retry/logging shape around each step is grounded on the
// teacher's internal/tools/{click,drag,scroll,key_press,keyboard}.go.
package dispatch

import (
	"time"

	"github.com/lahfir/agent-desktop-sub000/internal/adapter"
	"github.com/lahfir/agent-desktop-sub000/internal/desktoperr"
	"github.com/lahfir/agent-desktop-sub000/pkg/logging"
)

var log = logging.WithPrefix("dispatch")

// StepKind discriminates a ChainStep.
type StepKind string

const (
	StepAction                  StepKind = "action"
	StepSetBool                 StepKind = "set_bool"
	StepSetDynamic               StepKind = "set_dynamic"
	StepFocusThenAction          StepKind = "focus_then_action"
	StepFocusThenConfirmOrPress  StepKind = "focus_then_confirm_or_press"
	StepChildActions             StepKind = "child_actions"
	StepAncestorActions          StepKind = "ancestor_actions"
	StepCustom                   StepKind = "custom"
	StepCGClick                  StepKind = "cg_click"
)

// ChainContext carries per-invocation state a chain's steps need:
// the target element, the adapter for CG fallbacks, and, for
// SetDynamic, the caller-provided string (SetValue/Clear's payload).
type ChainContext struct {
	Element      adapter.Element
	Adapter      adapter.PlatformAdapter
	DynamicValue string
}

// ChainStep is one attempt in a chain.
type ChainStep struct {
	Kind   StepKind
	Name   string   // Action, FocusThenAction
	Names  []string // ChildActions, AncestorActions
	Limit  int      // ChildActions, AncestorActions
	Attr   string   // SetBool, SetDynamic
	Value  bool     // SetBool
	Button string   // CGClick
	Count  int      // CGClick
	Custom func(ctx *ChainContext) (bool, error)
}

// ChainDef is one static chain: the ordered steps and whether the
// element should be scrolled into view before the chain runs.
type ChainDef struct {
	PreScroll  bool
	Steps      []ChainStep
	Suggestion string
}

// chainTimeout is the wall-clock ceiling for one chain invocation.
const chainTimeout = 10 * time.Second

// Execute runs def against ctx: if PreScroll is set, AXScrollToVisible
// is invoked first; then each step is attempted in order until one
// succeeds or the deadline passes. A step's failure simply advances to
// the next step and is not propagated — only the chain's final return
// can fail.
func Execute(def ChainDef, ctx *ChainContext) error {
	deadline := time.Now().Add(chainTimeout)

	if def.PreScroll {
		_ = ctx.Element.PerformNative("AXScrollToVisible")
	}

	for _, step := range def.Steps {
		if time.Now().After(deadline) {
			return desktoperr.New(desktoperr.Timeout, "chain exceeded 10s budget").WithSuggestion(def.Suggestion)
		}
		ok, err := executeStep(step, ctx)
		if err != nil {
			log.Debug("chain step %s errored: %v", step.Kind, err)
			continue
		}
		if ok {
			return nil
		}
	}
	return desktoperr.New(desktoperr.ActionFailed, "no chain step succeeded").WithSuggestion(def.Suggestion)
}

func executeStep(step ChainStep, ctx *ChainContext) (bool, error) {
	switch step.Kind {
	case StepAction:
		return actionStep(ctx.Element, step.Name)
	case StepSetBool:
		if !ctx.Element.IsAttrSettable(step.Attr) {
			return false, nil
		}
		return ctx.Element.SetAttr(step.Attr, step.Value) == nil, nil
	case StepSetDynamic:
		if err := ctx.Element.SetAttr(step.Attr, ctx.DynamicValue); err != nil {
			return false, nil
		}
		return true, nil
	case StepFocusThenAction:
		_ = ctx.Element.SetAttr("AXFocused", true)
		time.Sleep(50 * time.Millisecond)
		return actionStep(ctx.Element, step.Name)
	case StepFocusThenConfirmOrPress:
		_ = ctx.Element.SetAttr("AXFocused", true)
		time.Sleep(50 * time.Millisecond)
		if ok, _ := actionStep(ctx.Element, "AXConfirm"); ok {
			return true, nil
		}
		return actionStep(ctx.Element, "AXPress")
	case StepChildActions:
		children := ctx.Element.Children()
		limit := step.Limit
		if limit > len(children) {
			limit = len(children)
		}
		for i := 0; i < limit; i++ {
			for _, name := range step.Names {
				if ok, _ := actionStep(children[i], name); ok {
					return true, nil
				}
			}
		}
		return false, nil
	case StepAncestorActions:
		el := ctx.Element.Parent()
		for i := 0; i < step.Limit && el != nil; i++ {
			for _, name := range step.Names {
				if ok, _ := actionStep(el, name); ok {
					return true, nil
				}
			}
			el = el.Parent()
		}
		return false, nil
	case StepCustom:
		return step.Custom(ctx)
	case StepCGClick:
		return cgClick(ctx, step.Button, step.Count)
	}
	return false, nil
}

// actionStep performs a named accessibility action, with one retry
// after 100ms on any failure (which covers "cannot complete").
func actionStep(el adapter.Element, name string) (bool, error) {
	if name == "" {
		return false, nil
	}
	err := el.PerformNative(name)
	if err == nil {
		return true, nil
	}
	time.Sleep(100 * time.Millisecond)
	err = el.PerformNative(name)
	return err == nil, err
}
