package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/latticehq/lattice/internal/domain/attribute"
	"github.com/latticehq/lattice/internal/domain/snapshot"
)

func testSnapshot(id, projectID string) *snapshot.Snapshot {
	return &snapshot.Snapshot{
		ID:        id,
		ProjectID: projectID,
		CreatedAt: time.Now(),
	}
}

func TestSnapshotRepository_CreateList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewSnapshotRepository(db)
	desc := "weekly capture"
	snap := testSnapshot("s1", "p1")
	snap.Description = &desc
	require.NoError(t, repo.Create(ctx, snap))
	require.NoError(t, repo.Create(ctx, testSnapshot("s2", "p2")))

	snaps, err := repo.List(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	require.Equal(t, "s1", snaps[0].ID)
	require.Equal(t, "weekly capture", *snaps[0].Description)
	require.Equal(t, 0, snaps[0].AttributeCount)
}

func TestSnapshotRepository_AttributeCountIsComputed(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertEntity(t, db, "e1", "p1", "acme", nil)

	repo := NewSnapshotRepository(db)
	require.NoError(t, repo.Create(ctx, testSnapshot("s1", "p1")))

	attrRepo := NewAttributeRepository(db)
	snapID := "s1"
	now := time.Now()
	require.NoError(t, attrRepo.AppendMany(ctx, []*attribute.Record{
		{EntityID: "e1", Slug: "a", Value: "1", Source: attribute.SourceAPI, CapturedAt: now, SnapshotID: &snapID},
		{EntityID: "e1", Slug: "b", Value: "2", Source: attribute.SourceAPI, CapturedAt: now, SnapshotID: &snapID},
	}))
	// A write outside the snapshot does not count.
	require.NoError(t, attrRepo.Append(ctx, &attribute.Record{
		EntityID: "e1", Slug: "c", Value: "3", Source: attribute.SourceManual, CapturedAt: now,
	}))

	snaps, err := repo.List(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	require.Equal(t, 2, snaps[0].AttributeCount)
}
