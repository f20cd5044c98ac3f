package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/latticehq/lattice/internal/domain/attribute"
	"github.com/latticehq/lattice/internal/domain/entity"
	"github.com/latticehq/lattice/internal/repository"
)

func TestEntityRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertEntity(t, db, "e1", "p1", "acme", nil)

	repo := NewEntityRepository(db)
	loaded, err := repo.Get(ctx, "e1")
	require.NoError(t, err)
	require.Equal(t, "p1", loaded.ProjectID)
	require.Equal(t, "acme", loaded.Name)
	require.Equal(t, "active", loaded.Status)
	require.False(t, loaded.IsDeleted)
}

func TestEntityRepository_Get_Missing(t *testing.T) {
	db := NewTestDB(t)

	repo := NewEntityRepository(db)
	_, err := repo.Get(context.Background(), "nope")
	require.Equal(t, repository.ErrNotFound, err)
}

func TestEntityRepository_CreateWithSeedAttributes(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewEntityRepository(db)
	attrRepo := NewAttributeRepository(db)

	now := time.Now()
	e := &entity.Entity{
		ID:        "e1",
		ProjectID: "p1",
		TypeSlug:  "company",
		Name:      "Acme",
		Slug:      "acme",
		Status:    "active",
		Tags:      "[]",
		Source:    attribute.SourceManual,
		CreatedAt: now,
		UpdatedAt: now,
	}
	seed := []*attribute.Record{
		{EntityID: "e1", Slug: "website", Value: "https://acme.com", Source: attribute.SourceManual, CapturedAt: now},
		{EntityID: "e1", Slug: "employees", Value: "250", Source: attribute.SourceManual, CapturedAt: now},
	}
	require.NoError(t, repo.Create(ctx, e, seed))

	values, err := attrRepo.Current(ctx, "e1")
	require.NoError(t, err)
	require.Len(t, values, 2)
	require.Equal(t, "https://acme.com", values["website"].Value)
}

func TestEntityRepository_List_ParentFilterStates(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertEntity(t, db, "root1", "p1", "alpha", nil)
	parent := "root1"
	insertEntity(t, db, "child1", "p1", "beta", &parent)
	insertEntity(t, db, "root2", "p1", "gamma", nil)

	repo := NewEntityRepository(db)

	// No filter: everything.
	all, err := repo.List(ctx, entity.ListOptions{ProjectID: "p1"})
	require.NoError(t, err)
	require.Len(t, all, 3)

	// Root sentinel: entities with no parent.
	rootSentinel := entity.RootParent
	roots, err := repo.List(ctx, entity.ListOptions{ProjectID: "p1", ParentID: &rootSentinel})
	require.NoError(t, err)
	require.Len(t, roots, 2)

	// Concrete parent: direct children only.
	children, err := repo.List(ctx, entity.ListOptions{ProjectID: "p1", ParentID: &parent})
	require.NoError(t, err)
	require.Len(t, children, 1)
	require.Equal(t, "child1", children[0].ID)
}

func TestEntityRepository_List_SearchAndSort(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertEntity(t, db, "e1", "p1", "zeta-corp", nil)
	insertEntity(t, db, "e2", "p1", "acme-corp", nil)
	insertEntity(t, db, "e3", "p1", "other", nil)

	repo := NewEntityRepository(db)

	matches, err := repo.List(ctx, entity.ListOptions{ProjectID: "p1", Search: "corp"})
	require.NoError(t, err)
	require.Len(t, matches, 2)

	byName, err := repo.List(ctx, entity.ListOptions{ProjectID: "p1", SortBy: "name"})
	require.NoError(t, err)
	require.Equal(t, "acme-corp", byName[0].Name)
	require.Equal(t, "zeta-corp", byName[2].Name)

	paged, err := repo.List(ctx, entity.ListOptions{ProjectID: "p1", SortBy: "name", Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	require.Equal(t, "other", paged[0].Name)
}

func TestEntityRepository_List_OffsetWithoutLimit(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertEntity(t, db, "e1", "p1", "alpha", nil)
	insertEntity(t, db, "e2", "p1", "beta", nil)
	insertEntity(t, db, "e3", "p1", "gamma", nil)

	repo := NewEntityRepository(db)
	rest, err := repo.List(ctx, entity.ListOptions{ProjectID: "p1", SortBy: "name", Offset: 1})
	require.NoError(t, err)
	require.Len(t, rest, 2)
	require.Equal(t, "beta", rest[0].Name)
	require.Equal(t, "gamma", rest[1].Name)
}

func TestEntityRepository_Update(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertEntity(t, db, "e1", "p1", "acme", nil)

	repo := NewEntityRepository(db)
	before, err := repo.Get(ctx, "e1")
	require.NoError(t, err)

	name := "Acme Inc"
	slug := "acme-inc"
	starred := true
	require.NoError(t, repo.Update(ctx, "e1", entity.UpdateFields{Name: &name, IsStarred: &starred}, &slug))

	after, err := repo.Get(ctx, "e1")
	require.NoError(t, err)
	require.Equal(t, "Acme Inc", after.Name)
	require.Equal(t, "acme-inc", after.Slug)
	require.True(t, after.IsStarred)
	require.False(t, after.UpdatedAt.Before(before.UpdatedAt))
}

func TestEntityRepository_Update_MissingIsNoop(t *testing.T) {
	db := NewTestDB(t)

	repo := NewEntityRepository(db)
	name := "ghost"
	require.NoError(t, repo.Update(context.Background(), "nope", entity.UpdateFields{Name: &name}, &name))
}

func TestEntityRepository_DeleteRestore(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertEntity(t, db, "e1", "p1", "acme", nil)

	repo := NewEntityRepository(db)
	require.NoError(t, repo.Delete(ctx, "e1", false))

	_, err := repo.Get(ctx, "e1")
	require.Equal(t, repository.ErrNotFound, err)

	require.NoError(t, repo.Restore(ctx, "e1"))
	restored, err := repo.Get(ctx, "e1")
	require.NoError(t, err)
	require.False(t, restored.IsDeleted)
	require.Nil(t, restored.DeletedAt)
}

func TestEntityRepository_CascadeDelete(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertEntity(t, db, "a", "p1", "a", nil)
	aID := "a"
	insertEntity(t, db, "b", "p1", "b", &aID)
	bID := "b"
	insertEntity(t, db, "c", "p1", "c", &bID)

	repo := NewEntityRepository(db)
	require.NoError(t, repo.Delete(ctx, "a", true))

	for _, id := range []string{"a", "b", "c"} {
		_, err := repo.Get(ctx, id)
		require.Equal(t, repository.ErrNotFound, err, "entity %s should be deleted", id)
	}

	// Restore is single-node: the subtree stays deleted.
	require.NoError(t, repo.Restore(ctx, "a"))
	_, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	_, err = repo.Get(ctx, "b")
	require.Equal(t, repository.ErrNotFound, err)
}

func TestEntityRepository_Update_RejectsParentCycle(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertEntity(t, db, "a", "p1", "a", nil)
	aID := "a"
	insertEntity(t, db, "b", "p1", "b", &aID)
	bID := "b"
	insertEntity(t, db, "c", "p1", "c", &bID)

	repo := NewEntityRepository(db)

	// Re-parenting under a descendant or under itself closes a loop.
	cID := "c"
	require.Equal(t, repository.ErrInvalidInput,
		repo.Update(ctx, "a", entity.UpdateFields{ParentEntityID: &cID}, nil))
	require.Equal(t, repository.ErrInvalidInput,
		repo.Update(ctx, "a", entity.UpdateFields{ParentEntityID: &aID}, nil))

	// Moving a leaf elsewhere in the tree is fine.
	require.NoError(t, repo.Update(ctx, "c", entity.UpdateFields{ParentEntityID: &aID}, nil))
	moved, err := repo.Get(ctx, "c")
	require.NoError(t, err)
	require.Equal(t, "a", *moved.ParentEntityID)
}

func TestEntityRepository_CascadeDelete_TerminatesOnParentCycle(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertEntity(t, db, "a", "p1", "a", nil)
	aID := "a"
	insertEntity(t, db, "b", "p1", "b", &aID)

	// Corrupt the parent chain directly; Update refuses to write one.
	_, err := db.Exec(`UPDATE entities SET parent_entity_id = 'b' WHERE id = 'a'`)
	require.NoError(t, err)

	repo := NewEntityRepository(db)
	done := make(chan error, 1)
	go func() { done <- repo.Delete(ctx, "a", true) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("cascade delete did not terminate on a parent cycle")
	}

	for _, id := range []string{"a", "b"} {
		_, err := repo.Get(ctx, id)
		require.Equal(t, repository.ErrNotFound, err, "entity %s should be deleted", id)
	}
}

func TestEntityRepository_DeleteWithoutCascade(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertEntity(t, db, "a", "p1", "a", nil)
	aID := "a"
	insertEntity(t, db, "b", "p1", "b", &aID)

	repo := NewEntityRepository(db)
	require.NoError(t, repo.Delete(ctx, "a", false))

	_, err := repo.Get(ctx, "a")
	require.Equal(t, repository.ErrNotFound, err)
	_, err = repo.Get(ctx, "b")
	require.NoError(t, err)
}

func TestEntityRepository_Counts(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertEntity(t, db, "a", "p1", "a", nil)
	aID := "a"
	insertEntity(t, db, "b", "p1", "b", &aID)
	insertEntity(t, db, "c", "p1", "c", &aID)

	repo := NewEntityRepository(db)
	evRepo := NewEvidenceRepository(db)
	require.NoError(t, evRepo.Add(ctx, testEvidence("ev1", "a")))

	children, evCount, err := repo.Counts(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, 2, children)
	require.Equal(t, 1, evCount)

	// Deleted children drop out of the count.
	require.NoError(t, repo.Delete(ctx, "b", false))
	children, _, err = repo.Counts(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, 1, children)
}
