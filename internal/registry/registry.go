// Package registry implements the Element Reference Registry (C3):
// snapshot-scoped handle allocation, atomic persistence, and
// re-resolution of a handle against a live accessibility tree that may
// have mutated since the snapshot was taken. Ported operation-for-
// operation from the original's crates/core/src/refs.rs.
package registry

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/lahfir/agent-desktop-sub000/internal/desktoperr"
	"github.com/lahfir/agent-desktop-sub000/internal/model"
	"github.com/lahfir/agent-desktop-sub000/pkg/logging"
)

// MaxRefMapBytes caps a persisted RefMap read at 1 MiB.
const MaxRefMapBytes = 1 << 20

var log = logging.WithPrefix("registry")

// Path returns the well-known RefMap path under stateDir.
func Path(stateDir string) string {
	return filepath.Join(stateDir, "last_refmap.json")
}

// Save serializes m to path atomically: write to a sibling temp file
// with owner-only permissions, then rename over the destination. The
// destination directory is created recursively with owner-only
// permissions first.
func Save(path string, m *model.RefMap) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return desktoperr.Newf(desktoperr.Internal, "create state directory: %v", err)
	}

	data, err := json.Marshal(m)
	if err != nil {
		return desktoperr.Newf(desktoperr.Internal, "marshal refmap: %v", err)
	}

	tmp := filepath.Join(dir, ".refmap-"+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return desktoperr.Newf(desktoperr.Internal, "write refmap temp file: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return desktoperr.Newf(desktoperr.Internal, "rename refmap into place: %v", err)
	}
	return nil
}

// Load reads and parses the RefMap at path. A missing file is reported
// via a plain *PathError so callers can distinguish "no snapshot yet"
// from a corrupt one; everything else that dereferences a handle
// converts a missing/corrupt file to STALE_REF.
func Load(path string) (*model.RefMap, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > MaxRefMapBytes {
		return nil, desktoperr.Newf(desktoperr.Internal, "refmap at %s exceeds %d bytes", path, MaxRefMapBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	m := model.NewRefMap()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, desktoperr.Newf(desktoperr.Internal, "parse refmap: %v", err)
	}
	return m, nil
}

// LoadOrStale is the convenience wrapper every handle-dereferencing
// verb uses: any load failure becomes the standard STALE_REF error
// naming handle, since "the refmap disappeared" and "the handle isn't
// in it" are the same actionable outcome for the caller.
func LoadOrStale(path, handle string) (*model.RefMap, error) {
	m, err := Load(path)
	if err != nil {
		return nil, desktoperr.StaleRefError(handle)
	}
	return m, nil
}

// Get resolves handle against the RefMap at path, returning STALE_REF
// if the map can't be loaded or the handle isn't present. Handles that
// fail the lexical grammar are rejected as INVALID_ARGS without
// touching storage.
func Get(path, handle string) (model.RefEntry, error) {
	if !model.ValidHandle(handle) {
		return model.RefEntry{}, desktoperr.Newf(desktoperr.InvalidArgs,
			"%q is not a valid handle (expected @e[0-9]+, length 3..12)", handle)
	}
	m, err := LoadOrStale(path, handle)
	if err != nil {
		return model.RefEntry{}, err
	}
	entry, ok := m.Get(handle)
	if !ok {
		return model.RefEntry{}, desktoperr.StaleRefError(handle)
	}
	return entry, nil
}

// LogRelaxedResolution records that a resolution fell back to the
// bounds-relaxed retry path, per SPEC_FULL's decision to make this
// accepted tradeoff at least observable.
func LogRelaxedResolution(handle string) {
	log.Warn("resolved %s via bounds-relaxed retry (role+name matched, bounds drifted)", handle)
}
