package sources

import "context"

// SaveSource yields a complete copy of the save file on every call.
// Implementations must not share buffers between calls.
type SaveSource interface {
	// Describe identifies the save file for logs and snapshots.
	Describe() string
	Read(ctx context.Context) ([]byte, error)
}
