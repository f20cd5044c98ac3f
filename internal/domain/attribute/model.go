// Package attribute implements the append-only, timestamped fact ledger for
// entities. The ledger stores every value string-encoded and resolves the
// current value per slug by max captured_at, so it can hold any
// project-defined attribute without schema migrations.
package attribute

import (
	"strings"
	"time"
)

// Well-known write sources. Enrichment adapters tag writes with
// MCPSource(adapter).
const (
	SourceManual     = "manual"
	SourceAI         = "ai"
	SourceMigration  = "migration"
	SourceAPI        = "api"
	SourceExtraction = "extraction"
)

// MCPSource builds the source tag for an enrichment adapter, e.g. "mcp:crunchbase".
func MCPSource(adapter string) string {
	return "mcp:" + adapter
}

// IsMCPSource reports whether source was written by an enrichment adapter.
func IsMCPSource(source string) bool {
	return strings.HasPrefix(source, "mcp:")
}

// Record is one ledger row. Rows are only ever appended.
type Record struct {
	ID         int64     `json:"id"`
	EntityID   string    `json:"entity_id"`
	Slug       string    `json:"attr_slug"`
	Value      string    `json:"value"`
	Source     string    `json:"source"`
	Confidence *float64  `json:"confidence,omitempty"`
	CapturedAt time.Time `json:"captured_at"`
	SnapshotID *string   `json:"snapshot_id,omitempty"`
}

// CurrentValue is the resolved value of one slug at a point in time.
type CurrentValue struct {
	Value      string    `json:"value"`
	Source     string    `json:"source"`
	Confidence *float64  `json:"confidence,omitempty"`
	CapturedAt time.Time `json:"captured_at"`
}
