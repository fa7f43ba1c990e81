package model

// ActionKind discriminates the tagged Action variants named in the data
// model. Go has no sum type, so this mirrors the original Rust enum as
// a closed string discriminant plus a struct carrying whichever payload
// fields that variant needs; unused fields stay zero.
type ActionKind string

const (
	ActionClick       ActionKind = "click"
	ActionDoubleClick ActionKind = "double_click"
	ActionTripleClick ActionKind = "triple_click"
	ActionRightClick  ActionKind = "right_click"
	ActionToggle      ActionKind = "toggle"
	ActionCheck       ActionKind = "check"
	ActionUncheck     ActionKind = "uncheck"
	ActionExpand      ActionKind = "expand"
	ActionCollapse    ActionKind = "collapse"
	ActionSetValue    ActionKind = "set_value"
	ActionClear       ActionKind = "clear"
	ActionSetFocus    ActionKind = "set_focus"
	ActionSelect      ActionKind = "select"
	ActionScroll      ActionKind = "scroll"
	ActionScrollTo    ActionKind = "scroll_to"
	ActionHover       ActionKind = "hover"
	ActionDrag        ActionKind = "drag"
	ActionPressKey    ActionKind = "press_key"
	ActionKeyDown     ActionKind = "key_down"
	ActionKeyUp       ActionKind = "key_up"
	ActionTypeText    ActionKind = "type_text"
)

// ScrollDirection names the four cardinal scroll directions accepted by
// Action.Scroll.
type ScrollDirection string

const (
	ScrollUp    ScrollDirection = "up"
	ScrollDown  ScrollDirection = "down"
	ScrollLeft  ScrollDirection = "left"
	ScrollRight ScrollDirection = "right"
)

// Point is a bare screen coordinate, used by Hover/Drag when no handle
// is given.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Modifier is one of the four keyboard modifier tags.
type Modifier string

const (
	ModCmd   Modifier = "cmd"
	ModCtrl  Modifier = "ctrl"
	ModAlt   Modifier = "alt"
	ModShift Modifier = "shift"
)

// KeyCombo is a base key name plus an ordered set of modifier tags.
type KeyCombo struct {
	Key       string     `json:"key"`
	Modifiers []Modifier `json:"modifiers,omitempty"`
}

// HasModifier reports whether the combo carries the given modifier.
func (k KeyCombo) HasModifier(m Modifier) bool {
	for _, x := range k.Modifiers {
		if x == m {
			return true
		}
	}
	return false
}

// String renders the combo in "mod+mod+key" form, the canonical form
// used in suggestion/error text and in the protected-combo table.
func (k KeyCombo) String() string {
	s := ""
	for _, m := range k.Modifiers {
		s += string(m) + "+"
	}
	return s + k.Key
}

// Action is a single high-level action destined for the Action
// Dispatcher. Kind selects which fields are meaningful.
type Action struct {
	Kind ActionKind `json:"kind"`

	// SetValue, Select, TypeText
	Text string `json:"text,omitempty"`

	// Scroll
	Direction ScrollDirection `json:"direction,omitempty"`
	Amount    int             `json:"amount,omitempty"`

	// Hover, Drag: nil means "resolve via handle" at the call site.
	From *Point `json:"from,omitempty"`
	To   *Point `json:"to,omitempty"`

	// Drag, Hover
	DurationMs int `json:"duration_ms,omitempty"`

	// PressKey, KeyDown, KeyUp
	Combo KeyCombo `json:"combo,omitempty"`
}

// WindowOp is the tagged variant set for window management actions.
type WindowOp string

const (
	WindowOpFocus    WindowOp = "focus"
	WindowOpMinimize WindowOp = "minimize"
	WindowOpMaximize WindowOp = "maximize"
	WindowOpRestore  WindowOp = "restore"
	WindowOpClose    WindowOp = "close"
	WindowOpMove     WindowOp = "move"
	WindowOpResize   WindowOp = "resize"
)

// WindowOpRequest carries the optional payload for Move/Resize.
type WindowOpRequest struct {
	Op     WindowOp `json:"op"`
	X      int      `json:"x,omitempty"`
	Y      int      `json:"y,omitempty"`
	Width  int      `json:"width,omitempty"`
	Height int      `json:"height,omitempty"`
}

// NewClick and friends are small constructors for the zero-payload
// variants, kept terse because the struct literal form reads fine for
// the ones that do carry a payload.
func NewClick() Action       { return Action{Kind: ActionClick} }
func NewDoubleClick() Action { return Action{Kind: ActionDoubleClick} }
func NewTripleClick() Action { return Action{Kind: ActionTripleClick} }
func NewRightClick() Action  { return Action{Kind: ActionRightClick} }
func NewToggle() Action      { return Action{Kind: ActionToggle} }
func NewCheck() Action       { return Action{Kind: ActionCheck} }
func NewUncheck() Action     { return Action{Kind: ActionUncheck} }
func NewExpand() Action      { return Action{Kind: ActionExpand} }
func NewCollapse() Action    { return Action{Kind: ActionCollapse} }
func NewClear() Action       { return Action{Kind: ActionClear} }
func NewSetFocus() Action    { return Action{Kind: ActionSetFocus} }
func NewScrollTo() Action    { return Action{Kind: ActionScrollTo} }

func NewSetValue(text string) Action { return Action{Kind: ActionSetValue, Text: text} }
func NewSelect(text string) Action   { return Action{Kind: ActionSelect, Text: text} }
func NewTypeText(text string) Action { return Action{Kind: ActionTypeText, Text: text} }

func NewScroll(dir ScrollDirection, amount int) Action {
	return Action{Kind: ActionScroll, Direction: dir, Amount: amount}
}

func NewHover(from *Point, durationMs int) Action {
	return Action{Kind: ActionHover, From: from, DurationMs: durationMs}
}

func NewDrag(from, to *Point, durationMs int) Action {
	return Action{Kind: ActionDrag, From: from, To: to, DurationMs: durationMs}
}

func NewPressKey(combo KeyCombo) Action { return Action{Kind: ActionPressKey, Combo: combo} }
func NewKeyDown(combo KeyCombo) Action  { return Action{Kind: ActionKeyDown, Combo: combo} }
func NewKeyUp(combo KeyCombo) Action    { return Action{Kind: ActionKeyUp, Combo: combo} }
