package handler

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/gordon0907/ark-tribe-log/internal/model"
	"github.com/gordon0907/ark-tribe-log/internal/response"
)

const defaultSnapshotLimit = 50

// SnapshotStore persists decoded logs. Implemented by repository.SnapshotRepository.
type SnapshotStore interface {
	Create(ctx context.Context, s *model.Snapshot) error
	List(ctx context.Context, limit int) ([]model.Snapshot, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Snapshot, error)
	MarkExported(ctx context.Context, id uuid.UUID, key string) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// Exporter uploads snapshots and returns the object key. Implemented by
// storage.O3Client.
type Exporter interface {
	ExportSnapshot(ctx context.Context, snap *model.Snapshot) (string, error)
}

// CreateSnapshot decodes the save file and stores the result (POST /api/snapshots).
func (h *TribeLogHandler) CreateSnapshot(c echo.Context) error {
	if h.Snapshots == nil {
		return response.Unavailable(c, "snapshots require a database")
	}
	lenient, err := lenientParam(c)
	if err != nil {
		return response.BadRequest(c, "invalid lenient parameter", err.Error())
	}
	ctx := c.Request().Context()
	res, err := h.Decode(ctx, lenient)
	if err != nil {
		h.Logger.Error().Err(err).Msg("decode tribe log for snapshot")
		return response.DecodeFailed(c, err)
	}
	lines, err := json.Marshal(res.Lines)
	if err != nil {
		return response.InternalError(c, "encode lines failed", err.Error())
	}

	snap := model.Snapshot{
		Source:        h.Source.Describe(),
		LineCount:     len(res.Lines),
		DeclaredCount: res.Declared,
		Lines:         lines,
	}
	if err := h.Snapshots.Create(ctx, &snap); err != nil {
		return response.InternalError(c, "create snapshot failed", err.Error())
	}
	h.Logger.Info().Str("id", snap.ID.String()).Int("lines", snap.LineCount).Msg("snapshot stored")
	return response.Created(c, snap, "")
}

// ListSnapshots returns recent snapshots without lines (GET /api/snapshots).
func (h *TribeLogHandler) ListSnapshots(c echo.Context) error {
	if h.Snapshots == nil {
		return response.Unavailable(c, "snapshots require a database")
	}
	limit := defaultSnapshotLimit
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return response.BadRequest(c, "invalid limit", "limit must be a positive integer")
		}
		limit = n
	}
	list, err := h.Snapshots.List(c.Request().Context(), limit)
	if err != nil {
		return response.InternalError(c, "list snapshots failed", err.Error())
	}
	if list == nil {
		list = []model.Snapshot{}
	}
	return response.OK(c, map[string]any{"snapshots": list}, "")
}

func (h *TribeLogHandler) snapshotFromPath(c echo.Context) (*model.Snapshot, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, response.BadRequest(c, "invalid snapshot id", err.Error())
	}
	snap, err := h.Snapshots.GetByID(c.Request().Context(), id)
	if err != nil {
		return nil, response.InternalError(c, "get snapshot failed", err.Error())
	}
	if snap == nil {
		return nil, response.NotFound(c, "snapshot not found", id.String())
	}
	return snap, nil
}

// GetSnapshot returns one snapshot with its lines (GET /api/snapshots/:id).
func (h *TribeLogHandler) GetSnapshot(c echo.Context) error {
	if h.Snapshots == nil {
		return response.Unavailable(c, "snapshots require a database")
	}
	snap, err := h.snapshotFromPath(c)
	if snap == nil {
		return err
	}
	return response.OK(c, snap, "")
}

// DeleteSnapshot removes a snapshot (DELETE /api/snapshots/:id).
func (h *TribeLogHandler) DeleteSnapshot(c echo.Context) error {
	if h.Snapshots == nil {
		return response.Unavailable(c, "snapshots require a database")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "invalid snapshot id", err.Error())
	}
	deleted, err := h.Snapshots.Delete(c.Request().Context(), id)
	if err != nil {
		return response.InternalError(c, "delete snapshot failed", err.Error())
	}
	if !deleted {
		return response.NotFound(c, "snapshot not found", id.String())
	}
	return response.OK(c, nil, "Deleted")
}

// ExportSnapshot uploads a snapshot as gzipped JSON (POST /api/snapshots/:id/export).
func (h *TribeLogHandler) ExportSnapshot(c echo.Context) error {
	if h.Snapshots == nil {
		return response.Unavailable(c, "snapshots require a database")
	}
	if h.Exporter == nil {
		return response.Unavailable(c, "export requires storage.o3")
	}
	snap, err := h.snapshotFromPath(c)
	if snap == nil {
		return err
	}
	ctx := c.Request().Context()
	key, err := h.Exporter.ExportSnapshot(ctx, snap)
	if err != nil {
		return response.InternalError(c, "export snapshot failed", err.Error())
	}
	if err := h.Snapshots.MarkExported(ctx, snap.ID, key); err != nil {
		return response.InternalError(c, "mark snapshot exported failed", err.Error())
	}
	snap.State = model.SnapshotStateExported
	snap.ExportKey = key
	h.Logger.Info().Str("id", snap.ID.String()).Str("key", key).Msg("snapshot exported")
	return response.OK(c, map[string]any{"id": snap.ID, "key": key}, "")
}
