// Package snapshot implements the batch tokens that group one capture pass.
// Ledger writes reference a snapshot weakly; its attribute count is always
// computed from referencing rows, never cached.
package snapshot

import "time"

// Snapshot is one capture-pass grouping token.
type Snapshot struct {
	ID             string    `json:"id"`
	ProjectID      string    `json:"project_id"`
	Description    *string   `json:"description,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	AttributeCount int       `json:"attribute_count"`
}
