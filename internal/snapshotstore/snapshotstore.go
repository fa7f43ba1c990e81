// Package snapshotstore implements the Snapshot Store (C4): persist and
// retrieve the most recent SnapshotRecord, identical in choreography to
// the Registry's atomic writes. Ported from
// crates/core/src/store.rs.
package snapshotstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/lahfir/agent-desktop-sub000/internal/desktoperr"
	"github.com/lahfir/agent-desktop-sub000/internal/model"
)

// MaxSnapshotBytes caps a persisted snapshot read at 5 MiB.
const MaxSnapshotBytes = 5 * 1024 * 1024

// Path returns the well-known snapshot path under stateDir.
func Path(stateDir string) string {
	return filepath.Join(stateDir, "last_snapshot.json")
}

// Save persists record atomically, the same temp-file+rename
// choreography as the Registry.
func Save(path string, record model.SnapshotRecord) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return desktoperr.Newf(desktoperr.Internal, "create state directory: %v", err)
	}

	data, err := json.Marshal(record)
	if err != nil {
		return desktoperr.Newf(desktoperr.Internal, "marshal snapshot: %v", err)
	}

	tmp := filepath.Join(dir, ".snapshot-"+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return desktoperr.Newf(desktoperr.Internal, "write snapshot temp file: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return desktoperr.Newf(desktoperr.Internal, "rename snapshot into place: %v", err)
	}
	return nil
}

// Load retrieves the persisted SnapshotRecord. A missing file returns
// (nil, nil): "no baseline" is a valid state, not an error.
func Load(path string) (*model.SnapshotRecord, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, desktoperr.Newf(desktoperr.Internal, "stat snapshot: %v", err)
	}
	if info.Size() > MaxSnapshotBytes {
		return nil, desktoperr.Newf(desktoperr.Internal, "snapshot at %s exceeds %d bytes", path, MaxSnapshotBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, desktoperr.Newf(desktoperr.Internal, "read snapshot: %v", err)
	}

	var record model.SnapshotRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, desktoperr.Newf(desktoperr.Internal, "parse snapshot: %v", err)
	}
	return &record, nil
}

// RecordFromTree stamps a new SnapshotRecord with the current
// millisecond wall clock.
func RecordFromTree(tree model.AccessibilityNode, app, windowID, windowTitle string) model.SnapshotRecord {
	return model.SnapshotRecord{
		Tree:        tree,
		App:         app,
		WindowID:    windowID,
		WindowTitle: windowTitle,
		TimestampMs: time.Now().UnixMilli(),
	}
}
