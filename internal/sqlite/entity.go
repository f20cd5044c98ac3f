package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/latticehq/lattice/internal/domain/attribute"
	"github.com/latticehq/lattice/internal/domain/entity"
	"github.com/latticehq/lattice/internal/repository"
)

// EntityRepository implements entity.Repository for SQLite
type EntityRepository struct {
	db *DB
}

// NewEntityRepository creates a new EntityRepository
func NewEntityRepository(db *DB) *EntityRepository {
	return &EntityRepository{db: db}
}

const entityColumns = `
	id, project_id, type_slug, name, slug, parent_entity_id, category_id,
	is_starred, is_deleted, status, confidence_score, tags, raw_research,
	source, created_at, updated_at, deleted_at
`

// Create inserts the entity and any seed attribute records in one
// transaction, so a failed seed leaves no entity behind.
func (r *EntityRepository) Create(ctx context.Context, e *entity.Entity, seed []*attribute.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO entities (` + entityColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		e.ID,
		e.ProjectID,
		e.TypeSlug,
		e.Name,
		e.Slug,
		e.ParentEntityID,
		e.CategoryID,
		e.IsStarred,
		e.IsDeleted,
		e.Status,
		e.ConfidenceScore,
		e.Tags,
		e.RawResearch,
		e.Source,
		e.CreatedAt,
		e.UpdatedAt,
		e.DeletedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create entity: %w", err)
	}

	for _, rec := range seed {
		if err := appendAttribute(ctx, tx, rec); err != nil {
			return fmt.Errorf("failed to seed attribute %s: %w", rec.Slug, err)
		}
	}

	return tx.Commit()
}

// Get retrieves an entity by ID. Soft-deleted entities are reported as not
// found.
func (r *EntityRepository) Get(ctx context.Context, id string) (*entity.Entity, error) {
	query := `SELECT ` + entityColumns + ` FROM entities WHERE id = ? AND is_deleted = 0`

	e, err := scanEntity(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}
	return e, nil
}

// Counts returns the entity's non-deleted child count and its evidence count.
func (r *EntityRepository) Counts(ctx context.Context, id string) (int, int, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM entities c WHERE c.parent_entity_id = ? AND c.is_deleted = 0),
			(SELECT COUNT(*) FROM evidence ev WHERE ev.entity_id = ?)
	`
	var children, evidence int
	if err := r.db.QueryRowContext(ctx, query, id, id).Scan(&children, &evidence); err != nil {
		return 0, 0, fmt.Errorf("failed to count entity references: %w", err)
	}
	return children, evidence, nil
}

var entitySortColumns = map[string]string{
	"name":       "name COLLATE NOCASE ASC",
	"created_at": "created_at DESC",
	"updated_at": "updated_at DESC",
}

// List returns non-deleted entities matching the options.
func (r *EntityRepository) List(ctx context.Context, opts entity.ListOptions) ([]entity.Entity, error) {
	query := `SELECT ` + entityColumns + ` FROM entities WHERE is_deleted = 0`

	var args []any
	if opts.ProjectID != "" {
		query += " AND project_id = ?"
		args = append(args, opts.ProjectID)
	}
	if opts.TypeSlug != "" {
		query += " AND type_slug = ?"
		args = append(args, opts.TypeSlug)
	}
	if opts.ParentID != nil {
		if *opts.ParentID == entity.RootParent {
			query += " AND parent_entity_id IS NULL"
		} else {
			query += " AND parent_entity_id = ?"
			args = append(args, *opts.ParentID)
		}
	}
	if opts.CategoryID != "" {
		query += " AND category_id = ?"
		args = append(args, opts.CategoryID)
	}
	if opts.Search != "" {
		query += " AND (name LIKE ? OR slug LIKE ?)"
		pattern := "%" + opts.Search + "%"
		args = append(args, pattern, pattern)
	}

	order, ok := entitySortColumns[opts.SortBy]
	if !ok {
		order = entitySortColumns["created_at"]
	}
	query += " ORDER BY " + order

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	} else if opts.Offset > 0 {
		// SQLite requires a LIMIT clause before OFFSET; -1 means unbounded.
		query += " LIMIT -1"
	}
	if opts.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	defer rows.Close()

	var entities []entity.Entity
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}
		entities = append(entities, *e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entity rows: %w", err)
	}
	return entities, nil
}

// Update applies the given fields and stamps updated_at. A missing id is a
// silent no-op.
func (r *EntityRepository) Update(ctx context.Context, id string, f entity.UpdateFields, slug *string) error {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now()}

	appendSet := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if f.Name != nil {
		appendSet("name", *f.Name)
	}
	if slug != nil {
		appendSet("slug", *slug)
	}
	if f.CategoryID != nil {
		appendSet("category_id", nullable(*f.CategoryID))
	}
	if f.ParentEntityID != nil {
		if *f.ParentEntityID != "" {
			cyclic, err := r.wouldCreateCycle(ctx, id, *f.ParentEntityID)
			if err != nil {
				return err
			}
			if cyclic {
				return repository.ErrInvalidInput
			}
		}
		appendSet("parent_entity_id", nullable(*f.ParentEntityID))
	}
	if f.IsStarred != nil {
		appendSet("is_starred", *f.IsStarred)
	}
	if f.Status != nil {
		appendSet("status", *f.Status)
	}
	if f.ConfidenceScore != nil {
		appendSet("confidence_score", *f.ConfidenceScore)
	}
	if f.Tags != nil {
		appendSet("tags", *f.Tags)
	}
	if f.RawResearch != nil {
		appendSet("raw_research", *f.RawResearch)
	}

	query := "UPDATE entities SET " + strings.Join(sets, ", ") + " WHERE id = ? AND is_deleted = 0"
	args = append(args, id)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to update entity: %w", err)
	}
	return nil
}

// wouldCreateCycle reports whether making parentID the parent of id would
// place id on its own ancestor chain.
func (r *EntityRepository) wouldCreateCycle(ctx context.Context, id, parentID string) (bool, error) {
	seen := map[string]bool{}
	current := parentID
	for current != "" && !seen[current] {
		if current == id {
			return true, nil
		}
		seen[current] = true

		var next sql.NullString
		err := r.db.QueryRowContext(ctx,
			`SELECT parent_entity_id FROM entities WHERE id = ?`, current,
		).Scan(&next)
		if err == sql.ErrNoRows {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("failed to walk ancestor chain: %w", err)
		}
		current = next.String
	}
	return false, nil
}

// Delete soft-deletes the entity and, when cascading, its whole subtree. The
// descendants are collected with an explicit worklist rather than recursion,
// and the entire cascade commits as one transaction.
func (r *EntityRepository) Delete(ctx context.Context, id string, cascade bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	ids := []string{id}
	if cascade {
		seen := map[string]bool{id: true}
		frontier := []string{id}
		for len(frontier) > 0 {
			children, err := childIDs(ctx, tx, frontier)
			if err != nil {
				return err
			}
			// Skip ids already collected so a corrupted parent chain
			// cannot keep the worklist alive.
			var next []string
			for _, cid := range children {
				if seen[cid] {
					continue
				}
				seen[cid] = true
				next = append(next, cid)
			}
			ids = append(ids, next...)
			frontier = next
		}
	}

	now := time.Now()
	for start := 0; start < len(ids); start += maxBatchParams {
		end := start + maxBatchParams
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]

		query := `UPDATE entities SET is_deleted = 1, deleted_at = ? WHERE id IN (` +
			placeholders(len(batch)) + `) AND is_deleted = 0`
		args := make([]any, 0, len(batch)+1)
		args = append(args, now)
		for _, eid := range batch {
			args = append(args, eid)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to delete entities: %w", err)
		}
	}

	return tx.Commit()
}

// Restore clears the soft-delete flag for exactly this entity. A missing id
// is a silent no-op.
func (r *EntityRepository) Restore(ctx context.Context, id string) error {
	query := `UPDATE entities SET is_deleted = 0, deleted_at = NULL, updated_at = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, time.Now(), id); err != nil {
		return fmt.Errorf("failed to restore entity: %w", err)
	}
	return nil
}

// maxBatchParams keeps IN clauses well under SQLite's bound-parameter limit.
const maxBatchParams = 500

func childIDs(ctx context.Context, tx *sql.Tx, parents []string) ([]string, error) {
	var next []string
	for start := 0; start < len(parents); start += maxBatchParams {
		end := start + maxBatchParams
		if end > len(parents) {
			end = len(parents)
		}
		batch := parents[start:end]

		query := `SELECT id FROM entities WHERE parent_entity_id IN (` +
			placeholders(len(batch)) + `) AND is_deleted = 0`
		args := make([]any, len(batch))
		for i, pid := range batch {
			args[i] = pid
		}

		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to collect descendants: %w", err)
		}
		for rows.Next() {
			var cid string
			if err := rows.Scan(&cid); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan descendant id: %w", err)
			}
			next = append(next, cid)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("error iterating descendant rows: %w", err)
		}
		rows.Close()
	}
	return next, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// nullable maps the empty string to SQL NULL for clearable columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntity(row rowScanner) (*entity.Entity, error) {
	var e entity.Entity
	err := row.Scan(
		&e.ID,
		&e.ProjectID,
		&e.TypeSlug,
		&e.Name,
		&e.Slug,
		&e.ParentEntityID,
		&e.CategoryID,
		&e.IsStarred,
		&e.IsDeleted,
		&e.Status,
		&e.ConfidenceScore,
		&e.Tags,
		&e.RawResearch,
		&e.Source,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
