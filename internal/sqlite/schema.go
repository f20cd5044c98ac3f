package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/latticehq/lattice/internal/domain/schema"
	"github.com/latticehq/lattice/internal/repository"
)

// SchemaRepository persists a project's schema as entity_type_defs rows: one
// row per type, attributes serialized as JSON, and each declared
// relationship stored on its from_type's row.
type SchemaRepository struct {
	db *DB
}

// NewSchemaRepository creates a new SchemaRepository
func NewSchemaRepository(db *DB) *SchemaRepository {
	return &SchemaRepository{db: db}
}

// Save replaces the project's schema in one transaction. The schema is
// normalized before writing; an invalid schema is refused with a
// ValidationError listing every problem.
func (r *SchemaRepository) Save(ctx context.Context, projectID string, s schema.Schema) (schema.Schema, error) {
	normalized := schema.Normalize(s)
	if ok, problems := schema.Validate(normalized); !ok {
		return schema.Schema{}, &schema.ValidationError{Problems: problems}
	}

	declsByType := make(map[string][]schema.RelationshipDecl)
	for _, decl := range normalized.Relationships {
		declsByType[decl.FromType] = append(declsByType[decl.FromType], decl)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entity_type_defs WHERE project_id = ?`, projectID); err != nil {
		return schema.Schema{}, fmt.Errorf("failed to clear schema: %w", err)
	}

	insert := `
		INSERT INTO entity_type_defs (project_id, slug, name, description, icon, parent_type, attributes, relationships, version, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i, t := range normalized.EntityTypes {
		attrs, err := json.Marshal(t.Attributes)
		if err != nil {
			return schema.Schema{}, fmt.Errorf("failed to encode attributes: %w", err)
		}
		decls := declsByType[t.Slug]
		if decls == nil {
			decls = []schema.RelationshipDecl{}
		}
		rels, err := json.Marshal(decls)
		if err != nil {
			return schema.Schema{}, fmt.Errorf("failed to encode relationships: %w", err)
		}

		_, err = tx.ExecContext(ctx, insert,
			projectID,
			t.Slug,
			t.Name,
			t.Description,
			t.Icon,
			nullable(t.ParentType),
			string(attrs),
			string(rels),
			normalized.Version,
			i,
		)
		if err != nil {
			return schema.Schema{}, fmt.Errorf("failed to save type %s: %w", t.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return schema.Schema{}, fmt.Errorf("failed to commit schema: %w", err)
	}
	return normalized, nil
}

// Load reconstructs the project's schema from its entity_type_defs rows.
func (r *SchemaRepository) Load(ctx context.Context, projectID string) (schema.Schema, error) {
	query := `
		SELECT slug, name, description, icon, parent_type, attributes, relationships, version
		FROM entity_type_defs
		WHERE project_id = ?
		ORDER BY position ASC
	`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("failed to load schema: %w", err)
	}
	defer rows.Close()

	s := schema.Schema{
		EntityTypes:   []schema.EntityTypeDef{},
		Relationships: []schema.RelationshipDecl{},
	}
	for rows.Next() {
		var (
			t          schema.EntityTypeDef
			parentType *string
			attrs      string
			rels       string
		)
		if err := rows.Scan(&t.Slug, &t.Name, &t.Description, &t.Icon, &parentType, &attrs, &rels, &s.Version); err != nil {
			return schema.Schema{}, fmt.Errorf("failed to scan type def: %w", err)
		}
		if parentType != nil {
			t.ParentType = *parentType
		}
		if err := json.Unmarshal([]byte(attrs), &t.Attributes); err != nil {
			return schema.Schema{}, fmt.Errorf("failed to decode attributes for %s: %w", t.Slug, err)
		}
		var decls []schema.RelationshipDecl
		if err := json.Unmarshal([]byte(rels), &decls); err != nil {
			return schema.Schema{}, fmt.Errorf("failed to decode relationships for %s: %w", t.Slug, err)
		}
		s.EntityTypes = append(s.EntityTypes, t)
		s.Relationships = append(s.Relationships, decls...)
	}
	if err = rows.Err(); err != nil {
		return schema.Schema{}, fmt.Errorf("error iterating type def rows: %w", err)
	}

	if len(s.EntityTypes) == 0 {
		return schema.Schema{}, repository.ErrNotFound
	}
	return s, nil
}
