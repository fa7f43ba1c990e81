// Package tools implements one handler per command-line verb (spec.md
// §3-§8's full command surface). Each handler composes the OS-agnostic
// core packages (internal/registry, internal/tree, internal/dispatch,
// internal/differ, internal/snapshotstore, internal/surface,
// internal/wait) against a concrete adapter.PlatformAdapter, and returns
// the JSON envelope the CLI prints verbatim to stdout.
package tools

import (
	"path/filepath"

	"github.com/lahfir/agent-desktop-sub000/internal/adapter"
	"github.com/lahfir/agent-desktop-sub000/internal/desktoperr"
	"github.com/lahfir/agent-desktop-sub000/internal/dispatch"
	"github.com/lahfir/agent-desktop-sub000/internal/model"
	"github.com/lahfir/agent-desktop-sub000/internal/registry"
	"github.com/lahfir/agent-desktop-sub000/pkg/logging"
)

var runtimeLog = logging.WithPrefix("runtime")

// Runtime bundles the state every handler needs: the live platform
// adapter and the on-disk state directory holding the ref map and
// snapshot baseline.
type Runtime struct {
	Adapter  adapter.PlatformAdapter
	StateDir string
}

// NewRuntime constructs a Runtime from an already-built adapter. Every
// dispatched action is appended to stateDir/audit.jsonl; a failure to
// open that file is logged, not fatal, so a read-only state dir doesn't
// block the command surface.
func NewRuntime(ad adapter.PlatformAdapter, stateDir string) *Runtime {
	if err := dispatch.ConfigureAudit(filepath.Join(stateDir, "audit.jsonl")); err != nil {
		runtimeLog.Warn("audit log disabled: %v", err)
	}
	return &Runtime{Adapter: ad, StateDir: stateDir}
}

// Envelope wraps a successful result into the command envelope.
func (rt *Runtime) Envelope(command string, data any) *model.Envelope {
	e := model.Success(command, data)
	return &e
}

// ErrEnvelope wraps err into a failure envelope, classifying any error
// that isn't already a *desktoperr.Error as INTERNAL.
func ErrEnvelope(command string, err error) *model.Envelope {
	e := model.Failure(command, desktoperr.ToPayload(err))
	return &e
}

// resolveHandle loads the stored RefEntry for handle from the on-disk
// ref map and asks the adapter to re-resolve it against the live tree,
// returning a STALE_REF error (via registry.LoadOrStale/desktoperr) on
// any failure along the way.
func (rt *Runtime) resolveHandle(handle string) (model.RefEntry, adapter.Element, error) {
	path := registry.Path(rt.StateDir)
	entry, err := registry.Get(path, handle)
	if err != nil {
		return model.RefEntry{}, nil, err
	}
	el, err := rt.Adapter.ResolveElement(entry)
	if err != nil {
		return entry, nil, err
	}
	return entry, el, nil
}

// requireNoArgs-style small helpers used across handlers.
func emptyToErr(s, field string) error {
	if s == "" {
		return desktoperr.Newf(desktoperr.InvalidArgs, "%s is required", field)
	}
	return nil
}
