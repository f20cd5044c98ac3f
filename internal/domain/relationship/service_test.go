package relationship_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/latticehq/lattice/internal/domain/relationship"
	"github.com/latticehq/lattice/internal/repository"
	"github.com/latticehq/lattice/internal/repository/mocks"
)

func TestRelationshipService_Create(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.RelationshipRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)

	svc := relationship.NewService(repo, nil)
	edge, err := svc.Create(ctx, relationship.CreateRequest{
		FromEntityID: "a",
		ToEntityID:   "b",
		Type:         "competitor_of",
	})
	require.NoError(t, err)
	require.NotEmpty(t, edge.ID)
	require.Equal(t, "competitor_of", edge.Type)
}

func TestRelationshipService_Create_RequiresEndpointsAndType(t *testing.T) {
	ctx := context.Background()
	svc := relationship.NewService(&mocks.RelationshipRepository{}, nil)

	_, err := svc.Create(ctx, relationship.CreateRequest{FromEntityID: "a", ToEntityID: "b"})
	require.ErrorIs(t, err, repository.ErrInvalidInput)

	_, err = svc.Create(ctx, relationship.CreateRequest{FromEntityID: "a", Type: "competitor_of"})
	require.ErrorIs(t, err, repository.ErrInvalidInput)
}

func TestRelationshipService_List_DirectionDefaultsToBoth(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.RelationshipRepository{}
	repo.On("List", ctx, "a", relationship.DirectionBoth).Return([]relationship.Resolved{}, nil)

	svc := relationship.NewService(repo, nil)
	_, err := svc.List(ctx, "a", "")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestRelationshipService_List_RejectsUnknownDirection(t *testing.T) {
	ctx := context.Background()
	svc := relationship.NewService(&mocks.RelationshipRepository{}, nil)

	_, err := svc.List(ctx, "a", "sideways")
	require.ErrorIs(t, err, repository.ErrInvalidInput)
}
