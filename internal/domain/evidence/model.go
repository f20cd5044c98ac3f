// Package evidence implements the attachment library. Records hold only an
// opaque file path reference; the bytes live in an external store and are
// never read or written here.
package evidence

import "time"

// Evidence is one attachment referencing an entity.
type Evidence struct {
	ID         string    `json:"id"`
	EntityID   string    `json:"entity_id"`
	Type       string    `json:"evidence_type"`
	FilePath   string    `json:"file_path"`
	SourceURL  *string   `json:"source_url,omitempty"`
	SourceName *string   `json:"source_name,omitempty"`
	Metadata   *string   `json:"metadata,omitempty"`
	CapturedAt time.Time `json:"captured_at"`
}

// ListOptions filters evidence listings.
type ListOptions struct {
	EntityID   string
	Type       string
	SourceName string
	Limit      int
}
