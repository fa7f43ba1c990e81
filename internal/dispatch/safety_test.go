package dispatch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lahfir/agent-desktop-sub000/internal/adapter"
	"github.com/lahfir/agent-desktop-sub000/internal/model"
	"github.com/lahfir/agent-desktop-sub000/internal/roles"
)

// mockAdapter overrides just enough of adapter.PlatformAdapter to drive
// the DispatchKeyDown/KeyUp/Hover/Drag/WindowOp entry points without a
// live accessibility backend.
type mockAdapter struct {
	adapter.BaseAdapter
}

func (m *mockAdapter) ExecuteAction(adapter.NativeHandle, model.Action) error { return nil }
func (m *mockAdapter) MouseEvent(adapter.MouseEventKind, adapter.MouseButton, model.Point) error {
	return nil
}
func (m *mockAdapter) Drag(from, to model.Point, durationMs int) error         { return nil }
func (m *mockAdapter) WindowOp(req model.WindowOpRequest, windowID string) error { return nil }

func TestDispatchBlocksSensitiveTarget(t *testing.T) {
	el := &mockElement{value: "0"}
	ctx := &ChainContext{Element: el}

	// SetValue carries the sensitive text directly as action.Text.
	action := model.NewSetValue("my bank account number is 12345")
	if err := Dispatch(ctx, roles.TextField, action); err == nil {
		t.Fatal("expected Dispatch to block a banking-pattern SetValue payload")
	}
}

func TestDispatchAllowsOrdinaryText(t *testing.T) {
	el := &mockElement{value: "0"}
	ctx := &ChainContext{Element: el}

	action := model.NewSetValue("hello world")
	if err := Dispatch(ctx, roles.TextField, action); err != nil {
		t.Fatalf("unexpected block for ordinary text: %v", err)
	}
}

func TestConfigureAuditAppendsEntryPerDispatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.jsonl")
	if err := ConfigureAudit(path); err != nil {
		t.Fatalf("ConfigureAudit: %v", err)
	}
	defer func() { auditMu.Lock(); auditLogger = nil; auditMu.Unlock() }()

	el := &mockElement{value: "0"}
	ctx := &ChainContext{Element: el}
	if err := Dispatch(ctx, roles.Checkbox, model.NewCheck()); err != nil {
		t.Fatalf("Dispatch(Check): %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading audit log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) == 0 || lines[0] == "" {
		t.Fatal("expected at least one audit log line after Dispatch")
	}
	if !strings.Contains(lines[0], `"action":"check"`) {
		t.Errorf("audit entry missing action field: %s", lines[0])
	}
}

func TestConfigureAuditCoversKeyDown(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.jsonl")
	if err := ConfigureAudit(path); err != nil {
		t.Fatalf("ConfigureAudit: %v", err)
	}
	defer func() { auditMu.Lock(); auditLogger = nil; auditMu.Unlock() }()

	ad := &mockAdapter{}
	combo := model.KeyCombo{Key: "a"}
	if err := DispatchKeyDown(ad, combo); err != nil {
		t.Fatalf("DispatchKeyDown: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading audit log: %v", err)
	}
	if !strings.Contains(string(data), `"action":"key_down"`) {
		t.Errorf("audit entry missing key_down action: %s", data)
	}
}
