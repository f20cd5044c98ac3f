// Package relationship implements the directed, typed edge graph between
// entities. No cardinality constraint is enforced: multiple edges of the
// same type between the same pair are valid.
package relationship

import "time"

// Direction selects which edges List returns relative to an entity.
type Direction string

const (
	DirectionOutgoing Direction = "outgoing"
	DirectionIncoming Direction = "incoming"
	DirectionBoth     Direction = "both"
)

// Edge is one directed, typed relationship between two entities.
type Edge struct {
	ID           string    `json:"id"`
	FromEntityID string    `json:"from_entity_id"`
	ToEntityID   string    `json:"to_entity_id"`
	Type         string    `json:"relationship_type"`
	Metadata     *string   `json:"metadata,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Resolved is an edge viewed from one entity, with the related entity
// resolved and the row tagged with its direction.
type Resolved struct {
	Edge
	Direction         Direction `json:"direction"`
	RelatedEntityID   string    `json:"related_entity_id"`
	RelatedEntityName string    `json:"related_entity_name"`
}
