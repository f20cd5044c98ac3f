package sqlite

import (
	"context"
	"fmt"

	"github.com/latticehq/lattice/internal/domain/snapshot"
)

// SnapshotRepository implements snapshot.Repository for SQLite
type SnapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new SnapshotRepository
func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Create inserts a snapshot.
func (r *SnapshotRepository) Create(ctx context.Context, snap *snapshot.Snapshot) error {
	query := `INSERT INTO snapshots (id, project_id, description, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, snap.ID, snap.ProjectID, snap.Description, snap.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	return nil
}

// List returns a project's snapshots, newest first. The attribute count is
// computed from referencing ledger rows on every read, never stored.
func (r *SnapshotRepository) List(ctx context.Context, projectID string) ([]snapshot.Snapshot, error) {
	query := `
		SELECT s.id, s.project_id, s.description, s.created_at,
			(SELECT COUNT(*) FROM entity_attributes a WHERE a.snapshot_id = s.id) AS attribute_count
		FROM snapshots s
		WHERE s.project_id = ?
		ORDER BY s.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []snapshot.Snapshot
	for rows.Next() {
		var snap snapshot.Snapshot
		err := rows.Scan(&snap.ID, &snap.ProjectID, &snap.Description, &snap.CreatedAt, &snap.AttributeCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot rows: %w", err)
	}
	return snaps, nil
}
