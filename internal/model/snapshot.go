package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type SnapshotState string

const (
	SnapshotStateStored   SnapshotState = "STORED"
	SnapshotStateExported SnapshotState = "EXPORTED"
)

// Snapshot is a decoded tribe log saved for later viewing.
type Snapshot struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	Source        string          `db:"source" json:"source"`
	LineCount     int             `db:"line_count" json:"line_count"`
	DeclaredCount int             `db:"declared_count" json:"declared_count"`
	Lines         json.RawMessage `db:"lines" json:"lines,omitempty"`
	State         SnapshotState   `db:"state" json:"state"`
	ExportKey     string          `db:"export_key" json:"export_key,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}
