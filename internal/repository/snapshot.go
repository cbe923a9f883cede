package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gordon0907/ark-tribe-log/internal/model"
)

// SnapshotRepository persists and reads decoded tribe log snapshots.
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository returns a SnapshotRepository using the given pool.
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

// Create inserts a new snapshot and returns it with ID and CreatedAt set.
func (r *SnapshotRepository) Create(ctx context.Context, s *model.Snapshot) error {
	query := `
		INSERT INTO snapshots (id, source, line_count, declared_count, lines, state, export_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.State == "" {
		s.State = model.SnapshotStateStored
	}
	return r.pool.QueryRow(ctx, query,
		s.ID,
		s.Source,
		s.LineCount,
		s.DeclaredCount,
		s.Lines,
		s.State,
		s.ExportKey,
	).Scan(&s.ID, &s.CreatedAt)
}

// List returns up to limit snapshots ordered by created_at descending,
// without their lines.
func (r *SnapshotRepository) List(ctx context.Context, limit int) ([]model.Snapshot, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, source, line_count, declared_count, state, export_key, created_at
		FROM snapshots
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Snapshot
	for rows.Next() {
		var s model.Snapshot
		if err := rows.Scan(
			&s.ID,
			&s.Source,
			&s.LineCount,
			&s.DeclaredCount,
			&s.State,
			&s.ExportKey,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// GetByID returns one snapshot by id, or nil if not found.
func (r *SnapshotRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Snapshot, error) {
	var s model.Snapshot
	err := r.pool.QueryRow(ctx, `
		SELECT id, source, line_count, declared_count, lines, state, export_key, created_at
		FROM snapshots WHERE id = $1`, id).Scan(
		&s.ID,
		&s.Source,
		&s.LineCount,
		&s.DeclaredCount,
		&s.Lines,
		&s.State,
		&s.ExportKey,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// MarkExported records the object key a snapshot was exported to.
func (r *SnapshotRepository) MarkExported(ctx context.Context, id uuid.UUID, key string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE snapshots SET state = $2, export_key = $3 WHERE id = $1`,
		id, model.SnapshotStateExported, key)
	return err
}

// Delete removes a snapshot. It reports whether a row was deleted.
func (r *SnapshotRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM snapshots WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
