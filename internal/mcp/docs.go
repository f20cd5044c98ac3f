package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `lattice stores project knowledge as typed entities with temporal attributes.

Core concepts (keep this mental model small):
- Schema: per-project entity type definitions (attributes, parent types, declared relationships). Advisory, not enforced on writes.
- Entity: one instance of a type, in an optional parent/child tree. Soft-deleted entities vanish from reads but keep their history.
- Attribute ledger: append-only. set_attribute never overwrites; the newest captured_at wins, everything older is history.
- Relationship: directed, typed edge between two entities. Duplicates are allowed.
- Evidence: file references (screenshots, documents) attached to an entity. Bytes live elsewhere.
- Snapshot: a token grouping the attribute writes of one capture pass.

Rules of engagement (default workflow):
1) Orient: get_schema for the project, then list_entities (parent_id="root" for top-level).
2) Read cheaply: get_entity returns current attributes plus child/evidence counts in one call.
3) Write attributes through the ledger: set_attributes for a batch (share a snapshot_id from create_snapshot), set_attribute for one-offs. Backdate with captured_at when importing.
4) Time travel: get_attributes_at answers "what did we know then"; get_attribute_history shows how one value evolved.
5) Deleting: delete_entity is a soft delete; cascade=true takes the whole subtree atomically. restore_entity brings back exactly one node.
6) Missing ids are not errors: reads return null/empty and deletes are no-ops.

Docs (progressive disclosure):
- lattice://docs/index (what to read when)
- lattice://docs/concepts (glossary + invariants)
- lattice://docs/workflows/capture-pass
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "lattice://docs/index",
		Name:        "docs_index",
		Title:       "lattice docs index",
		Description: "Entry point for agent-facing docs: what exists and what to read.",
		Content: `# lattice: Agent Docs Index

This server is designed for progressive disclosure: keep your baseline context small and load deeper docs only when needed.

## Quick start (no deep docs)

1. get_schema to learn the project's entity types.
2. list_entities with parent_id="root" to see the top of the tree.
3. get_entity for full detail on one entity.
4. create_snapshot + set_attributes to record a capture pass.

## When to read more

- lattice://docs/concepts — if you are unsure what a ledger, snapshot, or soft delete means here.
- lattice://docs/workflows/capture-pass — before writing a batch of attribute observations.

## Known limitations

- Schema is advisory: entity and relationship writes are not checked against it.
- Evidence stores file paths only; this server never reads or writes the files.
`,
	},
	{
		URI:         "lattice://docs/concepts",
		Name:        "docs_concepts",
		Title:       "lattice concepts",
		Description: "Glossary and invariants for the entity, ledger, and snapshot model.",
		Content: `# Concepts

## Entity
One instance of a project-defined type. Entities form an optional tree via parent_entity_id. Entity-level fields (name, status, tags) are mutable in place; everything observed about the outside world goes through the attribute ledger.

## Attribute ledger
Append-only. Each write records slug, value, source, confidence, and captured_at. The current value of a slug is the record with the greatest captured_at (latest insertion wins a tie). History is never rewritten; corrections are new records.

## Soft delete
delete_entity flips a flag; the row and its ledger stay. Reads skip deleted entities. cascade=true deletes the whole subtree in one transaction. restore_entity un-deletes exactly the named node.

## Snapshot
A grouping token for one capture pass. Ledger writes may reference it; its attribute_count is always computed from referencing records, never stored.

## Missing ids
Reads return null or empty results; deletes and updates on unknown ids succeed silently. Only malformed input and invalid schemas are errors.
`,
	},
	{
		URI:         "lattice://docs/workflows/capture-pass",
		Name:        "docs_capture_pass",
		Title:       "Capture pass workflow",
		Description: "How to record a batch of observations against entities.",
		Content: `# Capture pass

A capture pass is one sweep that observes many attribute values, e.g. re-crawling a set of company websites.

1. create_snapshot with a description of the pass.
2. For each entity, set_attributes with the full map of observed values, passing the snapshot_id and a source tag ("api", "extraction", or "mcp:<adapter>").
3. Attach supporting files with add_evidence (page captures, screenshots).
4. list_snapshots later shows each pass with how many observations it recorded.

Pass captured_at only when importing historical data; otherwise the server stamps now, and get_attributes_at can replay the timeline.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
