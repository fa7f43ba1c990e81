package dispatch

import (
	"testing"

	"github.com/lahfir/agent-desktop-sub000/internal/adapter"
	"github.com/lahfir/agent-desktop-sub000/internal/model"
	"github.com/lahfir/agent-desktop-sub000/internal/roles"
)

// mockElement is a minimal in-memory adapter.Element for exercising the
// chain executor and dispatchCheck without a live accessibility tree.
type mockElement struct {
	value        string
	pressed      int
	performErr   map[string]error
	settable     map[string]bool
	children     []adapter.Element
	parent       adapter.Element
	setAttrCalls []string
}

func (m *mockElement) Attrs() adapter.ElementAttrs {
	return adapter.ElementAttrs{Role: roles.Checkbox, Value: m.value}
}
func (m *mockElement) Bounds() (model.Rect, bool) { return model.Rect{}, false }
func (m *mockElement) Children() []adapter.Element { return m.children }
func (m *mockElement) PID() int                    { return 1 }
func (m *mockElement) Address() uintptr            { return 1 }
func (m *mockElement) Native() adapter.NativeHandle {
	return adapter.NativeHandleFrom(m)
}
func (m *mockElement) IsAttrSettable(attr string) bool { return m.settable[attr] }
func (m *mockElement) PerformNative(action string) error {
	m.pressed++
	if m.performErr != nil {
		return m.performErr[action]
	}
	return nil
}
func (m *mockElement) SetAttr(attr string, value any) error {
	m.setAttrCalls = append(m.setAttrCalls, attr)
	return nil
}
func (m *mockElement) GetAttr(attr string) (any, error) { return nil, nil }
func (m *mockElement) Parent() adapter.Element           { return m.parent }
func (m *mockElement) Release()                          {}

func TestCheckIdempotentWhenAlreadyChecked(t *testing.T) {
	el := &mockElement{value: "1"}
	ctx := &ChainContext{Element: el}

	if err := Dispatch(ctx, roles.Checkbox, model.NewCheck()); err != nil {
		t.Fatalf("Dispatch(Check) on already-checked box: %v", err)
	}
	if el.pressed != 0 {
		t.Errorf("expected no native action invoked for idempotent check, got %d calls", el.pressed)
	}
}

func TestCheckRunsClickChainWhenUnchecked(t *testing.T) {
	el := &mockElement{value: "0"}
	ctx := &ChainContext{Element: el}

	if err := Dispatch(ctx, roles.Checkbox, model.NewCheck()); err != nil {
		t.Fatalf("Dispatch(Check) on unchecked box: %v", err)
	}
	if el.pressed == 0 {
		t.Error("expected the click chain to invoke at least one native action")
	}
}

func TestUncheckIdempotentWhenAlreadyUnchecked(t *testing.T) {
	el := &mockElement{value: "0"}
	ctx := &ChainContext{Element: el}

	if err := Dispatch(ctx, roles.Checkbox, model.NewUncheck()); err != nil {
		t.Fatalf("Dispatch(Uncheck): %v", err)
	}
	if el.pressed != 0 {
		t.Errorf("expected no native action invoked for idempotent uncheck, got %d calls", el.pressed)
	}
}

func TestCheckRejectsNonToggleableRole(t *testing.T) {
	el := &mockElement{value: "0"}
	ctx := &ChainContext{Element: el}

	err := Dispatch(ctx, roles.Button, model.NewCheck())
	if err == nil {
		t.Fatal("expected an error for check on a non-toggleable role")
	}
}

func TestExecuteFirstSucceedingStepWins(t *testing.T) {
	el := &mockElement{performErr: map[string]error{"AXPress": nil}}
	ctx := &ChainContext{Element: el}

	def := ChainDef{
		Steps: []ChainStep{
			{Kind: StepAction, Name: "AXPress"},
			{Kind: StepAction, Name: "AXConfirm"},
		},
	}
	if err := Execute(def, ctx); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if el.pressed != 1 {
		t.Errorf("expected exactly one native call (first step succeeds), got %d", el.pressed)
	}
}

func TestExecuteFailsWhenNoStepSucceeds(t *testing.T) {
	el := &mockElement{}
	ctx := &ChainContext{Element: el}

	def := ChainDef{
		Steps: []ChainStep{
			{Kind: StepCustom, Custom: func(ctx *ChainContext) (bool, error) { return false, nil }},
		},
	}
	if err := Execute(def, ctx); err == nil {
		t.Fatal("expected Execute to fail when every step reports no success")
	}
}
