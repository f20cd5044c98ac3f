package attribute_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/latticehq/lattice/internal/domain/attribute"
	"github.com/latticehq/lattice/internal/repository"
	"github.com/latticehq/lattice/internal/repository/mocks"
)

func TestAttributeService_Set_Defaults(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.AttributeRepository{}
	repo.On("Append", ctx, mock.Anything).Return(nil)

	svc := attribute.NewService(repo, nil)
	rec, err := svc.Set(ctx, attribute.SetRequest{
		EntityID: "e1",
		Slug:     "website",
		Value:    "https://acme.example",
	})
	require.NoError(t, err)
	require.Equal(t, attribute.SourceManual, rec.Source)
	require.False(t, rec.CapturedAt.IsZero())
}

func TestAttributeService_Set_PreservesBackdatedTimestamp(t *testing.T) {
	ctx := context.Background()
	captured := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)

	repo := &mocks.AttributeRepository{}
	repo.On("Append", ctx, mock.Anything).Return(nil)

	svc := attribute.NewService(repo, nil)
	rec, err := svc.Set(ctx, attribute.SetRequest{
		EntityID:   "e1",
		Slug:       "headcount",
		Value:      "40",
		Source:     attribute.SourceMigration,
		CapturedAt: captured,
	})
	require.NoError(t, err)
	require.Equal(t, captured, rec.CapturedAt)
	require.Equal(t, attribute.SourceMigration, rec.Source)
}

func TestAttributeService_Set_RequiresEntityAndSlug(t *testing.T) {
	ctx := context.Background()
	svc := attribute.NewService(&mocks.AttributeRepository{}, nil)

	_, err := svc.Set(ctx, attribute.SetRequest{Slug: "website", Value: "x"})
	require.ErrorIs(t, err, repository.ErrInvalidInput)

	_, err = svc.Set(ctx, attribute.SetRequest{EntityID: "e1", Slug: " ", Value: "x"})
	require.ErrorIs(t, err, repository.ErrInvalidInput)
}

func TestAttributeService_SetTyped_EncodesValue(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.AttributeRepository{}
	repo.On("Append", ctx, mock.Anything).Return(nil)

	svc := attribute.NewService(repo, nil)
	rec, err := svc.SetTyped(ctx, attribute.SetRequest{
		EntityID: "e1",
		Slug:     "is_public",
	}, attribute.Bool(true))
	require.NoError(t, err)
	require.Equal(t, "1", rec.Value)
}

func TestAttributeService_SetMany_SharesTimestampAndSource(t *testing.T) {
	ctx := context.Background()
	snapshotID := "snap1"

	repo := &mocks.AttributeRepository{}
	repo.On("AppendMany", ctx, mock.Anything).Return(nil)

	svc := attribute.NewService(repo, nil)
	recs, err := svc.SetMany(ctx, attribute.SetManyRequest{
		EntityID: "e1",
		Values: map[string]string{
			"website":   "https://acme.example",
			"headcount": "40",
			"hq_city":   "Lisbon",
		},
		Source:     attribute.SourceAI,
		SnapshotID: &snapshotID,
	})
	require.NoError(t, err)
	require.Len(t, recs, 3)
	for _, rec := range recs {
		require.Equal(t, attribute.SourceAI, rec.Source)
		require.Equal(t, recs[0].CapturedAt, rec.CapturedAt)
		require.Equal(t, &snapshotID, rec.SnapshotID)
	}
}

func TestAttributeService_SetMany_EmptyIsNoOp(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.AttributeRepository{}
	svc := attribute.NewService(repo, nil)

	recs, err := svc.SetMany(ctx, attribute.SetManyRequest{EntityID: "e1"})
	require.NoError(t, err)
	require.Empty(t, recs)
	repo.AssertNotCalled(t, "AppendMany", mock.Anything, mock.Anything)
}

func TestAttributeService_History_DefaultsLimit(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.AttributeRepository{}
	repo.On("History", ctx, "e1", "website", attribute.DefaultHistoryLimit).
		Return([]attribute.Record{}, nil)

	svc := attribute.NewService(repo, nil)
	_, err := svc.History(ctx, "e1", "website", 0)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
