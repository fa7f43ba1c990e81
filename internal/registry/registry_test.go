package registry

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/lahfir/agent-desktop-sub000/internal/desktoperr"
	"github.com/lahfir/agent-desktop-sub000/internal/model"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "last_refmap.json")

	m := model.NewRefMap()
	h1 := m.Allocate(model.RefEntry{Role: "button", Name: "OK", PID: 42})
	h2 := m.Allocate(model.RefEntry{Role: "checkbox", Name: "Remember"})

	if err := Save(path, m); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	for _, h := range []string{h1, h2} {
		want, _ := m.Get(h)
		got, ok := loaded.Get(h)
		if !ok {
			t.Fatalf("handle %s missing after round-trip", h)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("handle %s = %+v, want %+v", h, got, want)
		}
	}
}

func TestGetExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "last_refmap.json")

	m := model.NewRefMap()
	handle := m.Allocate(model.RefEntry{Role: "button", Name: "OK", PID: 7})
	if err := Save(path, m); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entry, err := Get(path, handle)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if entry.Role != "button" || entry.Name != "OK" || entry.PID != 7 {
		t.Errorf("Get(%s) = %+v, unexpected", handle, entry)
	}
}

func TestGetMissingHandleIsStaleRef(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "last_refmap.json")

	m := model.NewRefMap()
	m.Allocate(model.RefEntry{Role: "button"})
	if err := Save(path, m); err != nil {
		t.Fatalf("Save: %v", err)
	}

	_, err := Get(path, "@e999")
	de, ok := desktoperr.As(err)
	if !ok || de.Code != desktoperr.StaleRef {
		t.Fatalf("Get(@e999) err = %v, want STALE_REF", err)
	}
}

func TestGetMissingFileIsStaleRef(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "does-not-exist.json")

	_, err := Get(path, "@e1")
	de, ok := desktoperr.As(err)
	if !ok || de.Code != desktoperr.StaleRef {
		t.Fatalf("Get on missing file err = %v, want STALE_REF", err)
	}
}

func TestGetInvalidHandleIsInvalidArgs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "last_refmap.json")

	for _, bad := range []string{"e1", "@e", "@ex", "", "@e12345678901"} {
		_, err := Get(path, bad)
		de, ok := desktoperr.As(err)
		if !ok || de.Code != desktoperr.InvalidArgs {
			t.Errorf("Get(%q) err = %v, want INVALID_ARGS", bad, err)
		}
	}
}

func TestLoadRejectsOversizedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "last_refmap.json")

	big := make([]byte, MaxRefMapBytes+1)
	for i := range big {
		big[i] = ' '
	}
	if err := os.WriteFile(path, big, 0o600); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected Load to reject an oversized refmap")
	}
}
