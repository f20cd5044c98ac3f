package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/latticehq/lattice/internal/domain/evidence"
)

func testEvidence(id, entityID string) *evidence.Evidence {
	return &evidence.Evidence{
		ID:         id,
		EntityID:   entityID,
		Type:       "screenshot",
		FilePath:   "captures/" + id + ".png",
		CapturedAt: time.Now(),
	}
}

func TestEvidenceRepository_AddListDelete(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertEntity(t, db, "e1", "p1", "acme", nil)
	insertEntity(t, db, "e2", "p1", "other", nil)

	repo := NewEvidenceRepository(db)
	require.NoError(t, repo.Add(ctx, testEvidence("ev1", "e1")))
	require.NoError(t, repo.Add(ctx, testEvidence("ev2", "e1")))
	require.NoError(t, repo.Add(ctx, testEvidence("ev3", "e2")))

	all, err := repo.List(ctx, evidence.ListOptions{Limit: 10})
	require.NoError(t, err)
	require.Len(t, all, 3)

	forEntity, err := repo.List(ctx, evidence.ListOptions{EntityID: "e1", Limit: 10})
	require.NoError(t, err)
	require.Len(t, forEntity, 2)

	require.NoError(t, repo.Delete(ctx, "ev1"))
	forEntity, err = repo.List(ctx, evidence.ListOptions{EntityID: "e1", Limit: 10})
	require.NoError(t, err)
	require.Len(t, forEntity, 1)
}

func TestEvidenceRepository_FilterByTypeAndSource(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertEntity(t, db, "e1", "p1", "acme", nil)

	repo := NewEvidenceRepository(db)
	name := "wayback"
	ev := testEvidence("ev1", "e1")
	ev.Type = "archived_page"
	ev.SourceName = &name
	require.NoError(t, repo.Add(ctx, ev))
	require.NoError(t, repo.Add(ctx, testEvidence("ev2", "e1")))

	byType, err := repo.List(ctx, evidence.ListOptions{Type: "archived_page", Limit: 10})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	require.Equal(t, "ev1", byType[0].ID)

	bySource, err := repo.List(ctx, evidence.ListOptions{SourceName: "wayback", Limit: 10})
	require.NoError(t, err)
	require.Len(t, bySource, 1)
	require.Equal(t, "ev1", bySource[0].ID)
}
