package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/latticehq/lattice/internal/domain/attribute"
	"github.com/latticehq/lattice/internal/repository"
)

func TestAttributeRepository_AppendAndCurrent(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertEntity(t, db, "e1", "p1", "acme", nil)

	repo := NewAttributeRepository(db)
	t1 := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	require.NoError(t, repo.Append(ctx, &attribute.Record{
		EntityID: "e1", Slug: "website", Value: "https://old.acme.com",
		Source: attribute.SourceManual, CapturedAt: t1,
	}))
	require.NoError(t, repo.Append(ctx, &attribute.Record{
		EntityID: "e1", Slug: "website", Value: "https://acme.com",
		Source: attribute.SourceAI, CapturedAt: t2,
	}))

	values, err := repo.Current(ctx, "e1")
	require.NoError(t, err)
	require.Len(t, values, 1)
	require.Equal(t, "https://acme.com", values["website"].Value)
	require.Equal(t, attribute.SourceAI, values["website"].Source)
	require.True(t, values["website"].CapturedAt.Equal(t2))
}

func TestAttributeRepository_TimestampTieBreaksByInsertionOrder(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertEntity(t, db, "e1", "p1", "acme", nil)

	repo := NewAttributeRepository(db)
	ts := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Append(ctx, &attribute.Record{
		EntityID: "e1", Slug: "status", Value: "first", Source: attribute.SourceManual, CapturedAt: ts,
	}))
	require.NoError(t, repo.Append(ctx, &attribute.Record{
		EntityID: "e1", Slug: "status", Value: "second", Source: attribute.SourceManual, CapturedAt: ts,
	}))

	values, err := repo.Current(ctx, "e1")
	require.NoError(t, err)
	require.Equal(t, "second", values["status"].Value)
}

func TestAttributeRepository_At(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertEntity(t, db, "e1", "p1", "acme", nil)

	repo := NewAttributeRepository(db)
	t1 := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	require.NoError(t, repo.Append(ctx, &attribute.Record{
		EntityID: "e1", Slug: "employees", Value: "100", Source: attribute.SourceManual, CapturedAt: t1,
	}))
	require.NoError(t, repo.Append(ctx, &attribute.Record{
		EntityID: "e1", Slug: "employees", Value: "250", Source: attribute.SourceManual, CapturedAt: t2,
	}))

	// Before the first record: slug omitted entirely.
	before, err := repo.At(ctx, "e1", t1.Add(-time.Minute))
	require.NoError(t, err)
	require.Empty(t, before)

	// Between the writes (inclusive of t1): first value.
	mid, err := repo.At(ctx, "e1", t1)
	require.NoError(t, err)
	require.Equal(t, "100", mid["employees"].Value)

	mid2, err := repo.At(ctx, "e1", t2.Add(-time.Minute))
	require.NoError(t, err)
	require.Equal(t, "100", mid2["employees"].Value)

	// Far future behaves like Current.
	future, err := repo.At(ctx, "e1", time.Date(2099, 12, 31, 23, 59, 59, 0, time.UTC))
	require.NoError(t, err)
	current, err := repo.Current(ctx, "e1")
	require.NoError(t, err)
	require.Equal(t, current, future)
}

func TestAttributeRepository_History(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertEntity(t, db, "e1", "p1", "acme", nil)

	repo := NewAttributeRepository(db)
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	for i, v := range []string{"v1", "v2", "v3"} {
		require.NoError(t, repo.Append(ctx, &attribute.Record{
			EntityID: "e1", Slug: "version", Value: v,
			Source: attribute.SourceManual, CapturedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	recs, err := repo.History(ctx, "e1", "version", 50)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	require.Equal(t, "v3", recs[0].Value)
	require.Equal(t, "v1", recs[2].Value)

	limited, err := repo.History(ctx, "e1", "version", 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	require.Equal(t, "v3", limited[0].Value)
}

func TestAttributeRepository_AppendMany_SharesSnapshot(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertEntity(t, db, "e1", "p1", "acme", nil)

	snapRepo := NewSnapshotRepository(db)
	require.NoError(t, snapRepo.Create(ctx, testSnapshot("s1", "p1")))

	repo := NewAttributeRepository(db)
	snapID := "s1"
	now := time.Now()
	recs := []*attribute.Record{
		{EntityID: "e1", Slug: "a", Value: "1", Source: attribute.SourceAPI, CapturedAt: now, SnapshotID: &snapID},
		{EntityID: "e1", Slug: "b", Value: "2", Source: attribute.SourceAPI, CapturedAt: now, SnapshotID: &snapID},
	}
	require.NoError(t, repo.AppendMany(ctx, recs))

	snaps, err := snapRepo.List(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	require.Equal(t, 2, snaps[0].AttributeCount)
}

func TestAttributeRepository_Append_UnknownEntity(t *testing.T) {
	db := NewTestDB(t)

	repo := NewAttributeRepository(db)
	err := repo.Append(context.Background(), &attribute.Record{
		EntityID: "ghost", Slug: "x", Value: "1",
		Source: attribute.SourceManual, CapturedAt: time.Now(),
	})
	require.Equal(t, repository.ErrForeignKeyViolation, err)
}
