package relationship

import "context"

// Repository provides persistence for relationship edges.
type Repository interface {
	Create(ctx context.Context, edge *Edge) error
	List(ctx context.Context, entityID string, direction Direction) ([]Resolved, error)
	Delete(ctx context.Context, edgeID string) error
}
