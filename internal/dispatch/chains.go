package dispatch

import "time"

// The standard chains, defined once and applied by every verb that maps
// to them (spec.md §4.7's table). Each is a static ChainDef; the step
// order encodes the empirical compatibility ordering the original
// implementation settled on, not a runtime policy.

// clickSteps is shared by Click and, doubled/tripled, by DoubleClick and
// TripleClick.
func clickSteps() []ChainStep {
	return []ChainStep{
		{Kind: StepAction, Name: "AXPress"},
		{Kind: StepAction, Name: "AXConfirm"},
		{Kind: StepAction, Name: "AXOpen"},
		{Kind: StepAction, Name: "AXPick"},
		{Kind: StepCustom, Custom: showAlternateUI},
		{Kind: StepChildActions, Names: []string{"AXPress", "AXConfirm", "AXOpen"}, Limit: 5},
		{Kind: StepCustom, Custom: setSelected},
		{Kind: StepCustom, Custom: selectViaParent},
		{Kind: StepCustom, Custom: verifiedPress},
		{Kind: StepFocusThenConfirmOrPress},
		{Kind: StepCustom, Custom: keyboardActivate},
		{Kind: StepAncestorActions, Names: []string{"AXPress", "AXConfirm"}, Limit: 5},
		{Kind: StepCGClick, Button: "left", Count: 1},
	}
}

// ClickChain is the Click verb's chain (spec.md table row 1).
func ClickChain() ChainDef {
	return ChainDef{
		PreScroll:  true,
		Steps:      clickSteps(),
		Suggestion: "the element may not be clickable; try 'mouse-click --xy X,Y'",
	}
}

// DoubleClickChain: AXOpen, then the Click chain run twice with a 50ms
// gap, then a bounds click with count=2.
func DoubleClickChain() ChainDef {
	steps := []ChainStep{{Kind: StepAction, Name: "AXOpen"}}
	steps = append(steps, clickSteps()...)
	steps = append(steps, ChainStep{Kind: StepCustom, Custom: sleepThen(50 * time.Millisecond)})
	steps = append(steps, clickSteps()...)
	steps = append(steps, ChainStep{Kind: StepCGClick, Button: "left", Count: 2})
	return ChainDef{PreScroll: false, Steps: steps, Suggestion: "try 'mouse-click --xy X,Y --count 2'"}
}

// TripleClickChain: the Click chain ×3 with 30ms gaps, then a bounds
// click with count=3.
func TripleClickChain() ChainDef {
	var steps []ChainStep
	for i := 0; i < 3; i++ {
		if i > 0 {
			steps = append(steps, ChainStep{Kind: StepCustom, Custom: sleepThen(30 * time.Millisecond)})
		}
		steps = append(steps, clickSteps()...)
	}
	steps = append(steps, ChainStep{Kind: StepCGClick, Button: "left", Count: 3})
	return ChainDef{PreScroll: false, Steps: steps, Suggestion: "try 'mouse-click --xy X,Y --count 3'"}
}

// RightClickChain.
func RightClickChain() ChainDef {
	return ChainDef{
		Steps: []ChainStep{
			{Kind: StepAction, Name: "AXShowMenu"},
			{Kind: StepCustom, Custom: focusAppThenShowMenu},
			{Kind: StepCustom, Custom: selectThenShowMenu},
			{Kind: StepFocusThenAction, Name: "AXShowMenu"},
			{Kind: StepAncestorActions, Names: []string{"AXShowMenu"}, Limit: 5},
			{Kind: StepChildActions, Names: []string{"AXShowMenu"}, Limit: 5},
			{Kind: StepCGClick, Button: "right", Count: 1},
		},
		Suggestion: "try 'mouse-click --xy X,Y --button right'",
	}
}

// ExpandChain.
func ExpandChain() ChainDef {
	return ChainDef{
		Steps: []ChainStep{
			{Kind: StepAction, Name: "AXExpand"},
			{Kind: StepSetBool, Attr: "AXDisclosing", Value: true},
		},
		Suggestion: "the element may not support expansion",
	}
}

// CollapseChain.
func CollapseChain() ChainDef {
	return ChainDef{
		Steps: []ChainStep{
			{Kind: StepAction, Name: "AXCollapse"},
			{Kind: StepSetBool, Attr: "AXDisclosing", Value: false},
		},
		Suggestion: "the element may not support collapsing",
	}
}

// SetValueChain.
func SetValueChain() ChainDef {
	return ChainDef{
		Steps: []ChainStep{
			{Kind: StepSetDynamic, Attr: "AXValue"},
			{Kind: StepFocusThenAction, Name: ""},
			{Kind: StepCustom, Custom: focusThenSetDynamic},
		},
		Suggestion: "the element may not accept a value directly; try 'type' after 'set-focus'",
	}
}

// ClearChain.
func ClearChain() ChainDef {
	return ChainDef{
		Steps: []ChainStep{
			{Kind: StepCustom, Custom: clearValueDirect},
			{Kind: StepCustom, Custom: focusThenClear},
			{Kind: StepCustom, Custom: selectAllThenDelete},
		},
		Suggestion: "the element may not be clearable directly",
	}
}

// SetFocusChain.
func SetFocusChain() ChainDef {
	return ChainDef{
		Steps: []ChainStep{
			{Kind: StepSetBool, Attr: "AXFocused", Value: true},
			{Kind: StepAction, Name: "AXRaise"},
			{Kind: StepAction, Name: "AXPress"},
			{Kind: StepSetBool, Attr: "AXSelected", Value: true},
			{Kind: StepCGClick, Button: "left", Count: 1},
		},
		Suggestion: "the element may not be focusable",
	}
}

// ScrollToChain.
func ScrollToChain() ChainDef {
	return ChainDef{
		Steps: []ChainStep{
			{Kind: StepAction, Name: "AXScrollToVisible"},
			{Kind: StepCustom, Custom: walkParentsAndScroll},
		},
		Suggestion: "the element may not be inside a scrollable container",
	}
}
