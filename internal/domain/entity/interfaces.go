package entity

import (
	"context"

	"github.com/latticehq/lattice/internal/domain/attribute"
)

// Repository provides persistence for entities. Create writes the entity and
// any seed attribute records in one transaction; Delete soft-deletes and,
// when cascading, covers the whole subtree in one transaction.
type Repository interface {
	Create(ctx context.Context, e *Entity, seed []*attribute.Record) error
	Get(ctx context.Context, id string) (*Entity, error)
	Counts(ctx context.Context, id string) (children, evidence int, err error)
	List(ctx context.Context, opts ListOptions) ([]Entity, error)
	Update(ctx context.Context, id string, f UpdateFields, slug *string) error
	Delete(ctx context.Context, id string, cascade bool) error
	Restore(ctx context.Context, id string) error
}

// AttributeReader resolves current ledger values for the read view.
type AttributeReader interface {
	Current(ctx context.Context, entityID string) (map[string]attribute.CurrentValue, error)
}
