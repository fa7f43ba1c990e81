package model

// SnapshotRecord is the persisted form of a snapshot: the canonical
// tree plus the window identity it was taken from and a wall-clock
// stamp. Overwritten on every snapshot; read by the differ.
type SnapshotRecord struct {
	Tree        AccessibilityNode `json:"tree"`
	App         string            `json:"app"`
	WindowID    string            `json:"window_id"`
	WindowTitle string            `json:"window_title"`
	TimestampMs int64             `json:"timestamp_ms"`
}
