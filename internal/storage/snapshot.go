package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/gordon0907/ark-tribe-log/internal/model"
)

const snapshotPrefix = "snapshots"

// SnapshotKey places a snapshot under its UTC creation date, e.g.
// snapshots/2024/02/17/<id>.json.gz.
func SnapshotKey(id uuid.UUID, at time.Time) string {
	return path.Join(snapshotPrefix, at.UTC().Format("2006/01/02"), id.String()+".json.gz")
}

// ExportSnapshot uploads snap as gzipped JSON and returns the object key.
func (c *O3Client) ExportSnapshot(ctx context.Context, snap *model.Snapshot) (string, error) {
	if c == nil {
		return "", ErrNotConfigured
	}
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if err := json.NewEncoder(zw).Encode(snap); err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("gzip snapshot: %w", err)
	}
	key := SnapshotKey(snap.ID, snap.CreatedAt)
	if err := c.putObject(ctx, key, buf.Bytes(), "application/gzip"); err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return key, nil
}
