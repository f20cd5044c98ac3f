package mcp

import (
	"time"

	"github.com/latticehq/lattice/internal/domain/relationship"
	"github.com/latticehq/lattice/internal/domain/schema"
)

// Schema tools

type GetSchemaParams struct {
	ProjectID string `json:"project_id" jsonschema:"Project whose schema to load"`
}

type SaveSchemaParams struct {
	ProjectID string        `json:"project_id" jsonschema:"Project whose schema to replace"`
	Schema    schema.Schema `json:"schema" jsonschema:"Full schema document; replaces the stored one atomically"`
}

type ValidateSchemaParams struct {
	Schema schema.Schema `json:"schema" jsonschema:"Schema document to check without saving"`
}

type ValidateSchemaResult struct {
	Valid    bool     `json:"valid"`
	Problems []string `json:"problems,omitempty"`
}

// Entity tools

type CreateEntityParams struct {
	ProjectID      string            `json:"project_id"`
	Type           string            `json:"type" jsonschema:"Entity type slug from the project schema"`
	Name           string            `json:"name"`
	ParentEntityID *string           `json:"parent_entity_id,omitempty"`
	CategoryID     *string           `json:"category_id,omitempty"`
	Attributes     map[string]string `json:"attributes,omitempty" jsonschema:"Initial attribute values, seeded in the same transaction"`
	Source         string            `json:"source,omitempty" jsonschema:"Provenance tag; defaults to manual"`
}

type GetEntityParams struct {
	ID string `json:"id"`
}

type ListEntitiesParams struct {
	ProjectID  string  `json:"project_id"`
	Type       string  `json:"type,omitempty"`
	ParentID   *string `json:"parent_id,omitempty" jsonschema:"Direct-children filter; pass \"root\" for entities with no parent"`
	CategoryID string  `json:"category_id,omitempty"`
	Search     string  `json:"search,omitempty" jsonschema:"Substring match against name and slug"`
	SortBy     string  `json:"sort_by,omitempty" jsonschema:"name, created_at, or updated_at"`
	Limit      int     `json:"limit,omitempty"`
	Offset     int     `json:"offset,omitempty"`
}

type UpdateEntityParams struct {
	ID              string   `json:"id"`
	Name            *string  `json:"name,omitempty"`
	CategoryID      *string  `json:"category_id,omitempty" jsonschema:"Empty string clears the category"`
	ParentEntityID  *string  `json:"parent_entity_id,omitempty" jsonschema:"Empty string detaches from the parent"`
	IsStarred       *bool    `json:"is_starred,omitempty"`
	Status          *string  `json:"status,omitempty"`
	ConfidenceScore *float64 `json:"confidence_score,omitempty"`
	Tags            *string  `json:"tags,omitempty" jsonschema:"JSON array of tag strings"`
	RawResearch     *string  `json:"raw_research,omitempty"`
}

type DeleteEntityParams struct {
	ID      string `json:"id"`
	Cascade bool   `json:"cascade,omitempty" jsonschema:"Also soft-delete every descendant"`
}

type RestoreEntityParams struct {
	ID string `json:"id"`
}

// Attribute tools

type SetAttributeParams struct {
	EntityID   string     `json:"entity_id"`
	Slug       string     `json:"slug"`
	Value      any        `json:"value" jsonschema:"String, number, boolean, array, or object; stored as its canonical string encoding"`
	Source     string     `json:"source,omitempty"`
	Confidence *float64   `json:"confidence,omitempty"`
	CapturedAt *time.Time `json:"captured_at,omitempty" jsonschema:"Backdate the observation; defaults to now"`
	SnapshotID *string    `json:"snapshot_id,omitempty"`
}

type SetAttributesParams struct {
	EntityID   string         `json:"entity_id"`
	Values     map[string]any `json:"values"`
	Source     string         `json:"source,omitempty"`
	Confidence *float64       `json:"confidence,omitempty"`
	CapturedAt *time.Time     `json:"captured_at,omitempty"`
	SnapshotID *string        `json:"snapshot_id,omitempty"`
}

type GetAttributesParams struct {
	EntityID string `json:"entity_id"`
}

type GetAttributeHistoryParams struct {
	EntityID string `json:"entity_id"`
	Slug     string `json:"slug"`
	Limit    int    `json:"limit,omitempty"`
}

type GetAttributesAtParams struct {
	EntityID  string    `json:"entity_id"`
	Timestamp time.Time `json:"timestamp" jsonschema:"Point in time; the latest value captured at or before it wins"`
}

// Relationship tools

type CreateRelationshipParams struct {
	FromEntityID string  `json:"from_entity_id"`
	ToEntityID   string  `json:"to_entity_id"`
	Type         string  `json:"relationship_type"`
	Metadata     *string `json:"metadata,omitempty"`
}

type ListRelationshipsParams struct {
	EntityID  string                 `json:"entity_id"`
	Direction relationship.Direction `json:"direction,omitempty" jsonschema:"outgoing, incoming, or both; defaults to both"`
}

type DeleteRelationshipParams struct {
	ID string `json:"id"`
}

// Evidence tools

type AddEvidenceParams struct {
	EntityID   string     `json:"entity_id"`
	Type       string     `json:"evidence_type"`
	FilePath   string     `json:"file_path" jsonschema:"Opaque reference to the stored file; bytes are not managed here"`
	SourceURL  *string    `json:"source_url,omitempty"`
	SourceName *string    `json:"source_name,omitempty"`
	Metadata   *string    `json:"metadata,omitempty"`
	CapturedAt *time.Time `json:"captured_at,omitempty"`
}

type ListEvidenceParams struct {
	EntityID   string `json:"entity_id,omitempty"`
	Type       string `json:"evidence_type,omitempty"`
	SourceName string `json:"source_name,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

type DeleteEvidenceParams struct {
	ID string `json:"id"`
}

// Snapshot tools

type CreateSnapshotParams struct {
	ProjectID   string  `json:"project_id"`
	Description *string `json:"description,omitempty"`
}

type ListSnapshotsParams struct {
	ProjectID string `json:"project_id"`
}
