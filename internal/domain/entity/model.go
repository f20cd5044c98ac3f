// Package entity implements CRUD, hierarchy, and soft-delete over entity
// instances. Type slugs are advisory: they are not FK-enforced against the
// schema at write time.
package entity

import (
	"time"

	"github.com/latticehq/lattice/internal/domain/attribute"
)

// RootParent is the sentinel ParentID filter value meaning "entities with no
// parent". It is distinct from both nil (no filter) and a concrete id.
const RootParent = "root"

// Entity is one instance of a project-defined type.
type Entity struct {
	ID              string     `json:"id"`
	ProjectID       string     `json:"project_id"`
	TypeSlug        string     `json:"type_slug"`
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	ParentEntityID  *string    `json:"parent_entity_id,omitempty"`
	CategoryID      *string    `json:"category_id,omitempty"`
	IsStarred       bool       `json:"is_starred"`
	IsDeleted       bool       `json:"is_deleted"`
	Status          string     `json:"status"`
	ConfidenceScore *float64   `json:"confidence_score,omitempty"`
	Tags            string     `json:"tags"`
	RawResearch     *string    `json:"raw_research,omitempty"`
	Source          string     `json:"source"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
}

// Resolved is the full read view of an entity: counts plus the current value
// of every attribute from the ledger.
type Resolved struct {
	Entity
	ChildCount    int                               `json:"child_count"`
	EvidenceCount int                               `json:"evidence_count"`
	Attributes    map[string]attribute.CurrentValue `json:"attributes"`
}
