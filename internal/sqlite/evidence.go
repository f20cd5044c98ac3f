package sqlite

import (
	"context"
	"fmt"

	"github.com/latticehq/lattice/internal/domain/evidence"
	"github.com/latticehq/lattice/internal/repository"
)

// EvidenceRepository implements evidence.Repository for SQLite
type EvidenceRepository struct {
	db *DB
}

// NewEvidenceRepository creates a new EvidenceRepository
func NewEvidenceRepository(db *DB) *EvidenceRepository {
	return &EvidenceRepository{db: db}
}

// Add inserts an evidence record.
func (r *EvidenceRepository) Add(ctx context.Context, ev *evidence.Evidence) error {
	query := `
		INSERT INTO evidence (id, entity_id, evidence_type, file_path, source_url, source_name, metadata, captured_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		ev.ID,
		ev.EntityID,
		ev.Type,
		ev.FilePath,
		ev.SourceURL,
		ev.SourceName,
		ev.Metadata,
		ev.CapturedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to add evidence: %w", err)
	}
	return nil
}

// List returns evidence matching the options, newest first.
func (r *EvidenceRepository) List(ctx context.Context, opts evidence.ListOptions) ([]evidence.Evidence, error) {
	query := `
		SELECT id, entity_id, evidence_type, file_path, source_url, source_name, metadata, captured_at
		FROM evidence WHERE 1=1
	`
	var args []any
	if opts.EntityID != "" {
		query += " AND entity_id = ?"
		args = append(args, opts.EntityID)
	}
	if opts.Type != "" {
		query += " AND evidence_type = ?"
		args = append(args, opts.Type)
	}
	if opts.SourceName != "" {
		query += " AND source_name = ?"
		args = append(args, opts.SourceName)
	}
	query += " ORDER BY captured_at DESC LIMIT ?"
	args = append(args, opts.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list evidence: %w", err)
	}
	defer rows.Close()

	var evs []evidence.Evidence
	for rows.Next() {
		var ev evidence.Evidence
		err := rows.Scan(
			&ev.ID,
			&ev.EntityID,
			&ev.Type,
			&ev.FilePath,
			&ev.SourceURL,
			&ev.SourceName,
			&ev.Metadata,
			&ev.CapturedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan evidence: %w", err)
		}
		evs = append(evs, ev)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating evidence rows: %w", err)
	}
	return evs, nil
}

// Delete removes an evidence record. A missing id is a silent no-op.
func (r *EvidenceRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM evidence WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete evidence: %w", err)
	}
	return nil
}
