package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/latticehq/lattice/internal/domain/relationship"
)

func testEdge(id, from, to, relType string) *relationship.Edge {
	return &relationship.Edge{
		ID:           id,
		FromEntityID: from,
		ToEntityID:   to,
		Type:         relType,
		CreatedAt:    time.Now(),
	}
}

func TestRelationshipRepository_CreateAndListDirections(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertEntity(t, db, "a", "p1", "alpha", nil)
	insertEntity(t, db, "b", "p1", "beta", nil)
	insertEntity(t, db, "c", "p1", "gamma", nil)

	repo := NewRelationshipRepository(db)
	require.NoError(t, repo.Create(ctx, testEdge("r1", "a", "b", "competes_with")))
	require.NoError(t, repo.Create(ctx, testEdge("r2", "c", "b", "partners_with")))

	outgoing, err := repo.List(ctx, "a", relationship.DirectionOutgoing)
	require.NoError(t, err)
	require.Len(t, outgoing, 1)
	require.Equal(t, relationship.DirectionOutgoing, outgoing[0].Direction)
	require.Equal(t, "b", outgoing[0].RelatedEntityID)
	require.Equal(t, "beta", outgoing[0].RelatedEntityName)

	incoming, err := repo.List(ctx, "b", relationship.DirectionIncoming)
	require.NoError(t, err)
	require.Len(t, incoming, 2)
	for _, res := range incoming {
		require.Equal(t, relationship.DirectionIncoming, res.Direction)
	}

	both, err := repo.List(ctx, "b", relationship.DirectionBoth)
	require.NoError(t, err)
	require.Len(t, both, 2)
	for _, res := range both {
		require.Equal(t, relationship.DirectionIncoming, res.Direction)
	}
}

func TestRelationshipRepository_DuplicateEdgesAllowed(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertEntity(t, db, "a", "p1", "alpha", nil)
	insertEntity(t, db, "b", "p1", "beta", nil)

	repo := NewRelationshipRepository(db)
	require.NoError(t, repo.Create(ctx, testEdge("r1", "a", "b", "supplies")))
	require.NoError(t, repo.Create(ctx, testEdge("r2", "a", "b", "supplies")))

	edges, err := repo.List(ctx, "a", relationship.DirectionOutgoing)
	require.NoError(t, err)
	require.Len(t, edges, 2)
}

func TestRelationshipRepository_Delete(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertEntity(t, db, "a", "p1", "alpha", nil)
	insertEntity(t, db, "b", "p1", "beta", nil)

	repo := NewRelationshipRepository(db)
	require.NoError(t, repo.Create(ctx, testEdge("r1", "a", "b", "supplies")))
	require.NoError(t, repo.Delete(ctx, "r1"))

	edges, err := repo.List(ctx, "a", relationship.DirectionBoth)
	require.NoError(t, err)
	require.Empty(t, edges)

	// Unknown id is a silent no-op.
	require.NoError(t, repo.Delete(ctx, "nope"))
}
