package sqlite

import (
	"context"
	"fmt"

	"github.com/latticehq/lattice/internal/domain/relationship"
	"github.com/latticehq/lattice/internal/repository"
)

// RelationshipRepository implements relationship.Repository for SQLite
type RelationshipRepository struct {
	db *DB
}

// NewRelationshipRepository creates a new RelationshipRepository
func NewRelationshipRepository(db *DB) *RelationshipRepository {
	return &RelationshipRepository{db: db}
}

// Create inserts an edge. Duplicate (from, to, type) edges are permitted.
func (r *RelationshipRepository) Create(ctx context.Context, edge *relationship.Edge) error {
	query := `
		INSERT INTO entity_relationships (id, from_entity_id, to_entity_id, relationship_type, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		edge.ID,
		edge.FromEntityID,
		edge.ToEntityID,
		edge.Type,
		edge.Metadata,
		edge.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create relationship: %w", err)
	}
	return nil
}

const outgoingQuery = `
	SELECT r.id, r.from_entity_id, r.to_entity_id, r.relationship_type, r.metadata, r.created_at AS created_at,
		'outgoing' AS direction, e.id, e.name
	FROM entity_relationships r
	JOIN entities e ON e.id = r.to_entity_id
	WHERE r.from_entity_id = ?
`

const incomingQuery = `
	SELECT r.id, r.from_entity_id, r.to_entity_id, r.relationship_type, r.metadata, r.created_at AS created_at,
		'incoming' AS direction, e.id, e.name
	FROM entity_relationships r
	JOIN entities e ON e.id = r.from_entity_id
	WHERE r.to_entity_id = ?
`

// List returns the entity's edges in the given direction, each resolved with
// the related entity's name and tagged with its direction.
func (r *RelationshipRepository) List(ctx context.Context, entityID string, direction relationship.Direction) ([]relationship.Resolved, error) {
	var (
		query string
		args  []any
	)
	switch direction {
	case relationship.DirectionOutgoing:
		query = outgoingQuery + " ORDER BY r.created_at ASC"
		args = []any{entityID}
	case relationship.DirectionIncoming:
		query = incomingQuery + " ORDER BY r.created_at ASC"
		args = []any{entityID}
	default:
		query = outgoingQuery + " UNION ALL " + incomingQuery + " ORDER BY created_at ASC"
		args = []any{entityID, entityID}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list relationships: %w", err)
	}
	defer rows.Close()

	var edges []relationship.Resolved
	for rows.Next() {
		var res relationship.Resolved
		err := rows.Scan(
			&res.ID,
			&res.FromEntityID,
			&res.ToEntityID,
			&res.Type,
			&res.Metadata,
			&res.CreatedAt,
			&res.Direction,
			&res.RelatedEntityID,
			&res.RelatedEntityName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan relationship: %w", err)
		}
		edges = append(edges, res)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating relationship rows: %w", err)
	}
	return edges, nil
}

// Delete removes an edge. A missing id is a silent no-op.
func (r *RelationshipRepository) Delete(ctx context.Context, edgeID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM entity_relationships WHERE id = ?`, edgeID); err != nil {
		return fmt.Errorf("failed to delete relationship: %w", err)
	}
	return nil
}
