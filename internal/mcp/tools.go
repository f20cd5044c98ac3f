package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/latticehq/lattice/internal/domain/attribute"
	"github.com/latticehq/lattice/internal/domain/entity"
	"github.com/latticehq/lattice/internal/domain/evidence"
	"github.com/latticehq/lattice/internal/domain/relationship"
	"github.com/latticehq/lattice/internal/domain/schema"
	"github.com/latticehq/lattice/internal/repository"
)

// handlers binds tool implementations to the domain services.
type handlers struct {
	svc Services
}

// registerTools registers every tool on the server.
func registerTools(server *sdkmcp.Server, services Services) {
	h := &handlers{svc: services}

	// Schema
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_schema",
		Description: "Get the stored schema for a project: entity types, their attributes, and declared relationships",
	}, h.getSchema)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "save_schema",
		Description: "Validate and atomically replace a project's schema; rejected with every problem listed if invalid",
	}, h.saveSchema)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "validate_schema",
		Description: "Check a schema document without saving it; returns all problems found",
	}, h.validateSchema)

	// Entities
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_entity",
		Description: "Create an entity, optionally seeding initial attribute values in the same transaction",
	}, h.createEntity)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_entity",
		Description: "Get an entity with its current attribute values and child/evidence counts; null if missing or deleted",
	}, h.getEntity)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_entities",
		Description: "List entities filtered by type, parent (pass \"root\" for top-level), category, or search text",
	}, h.listEntities)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_entity",
		Description: "Update entity-level fields; renaming recomputes the slug; unknown ids are no-ops",
	}, h.updateEntity)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_entity",
		Description: "Soft-delete an entity, optionally cascading to every descendant in one atomic operation",
	}, h.deleteEntity)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "restore_entity",
		Description: "Restore a soft-deleted entity; cascade-deleted descendants stay deleted until restored individually",
	}, h.restoreEntity)

	// Attribute ledger
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_attribute",
		Description: "Append one attribute observation to the ledger; prior values are kept as history",
	}, h.setAttribute)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_attributes",
		Description: "Append several attribute observations at once, sharing one timestamp, source, and snapshot",
	}, h.setAttributes)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_attributes",
		Description: "Get the current value of every attribute on an entity",
	}, h.getAttributes)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_attribute_history",
		Description: "Get the observation history for one attribute, newest first",
	}, h.getAttributeHistory)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_attributes_at",
		Description: "Get every attribute's value as of a point in time",
	}, h.getAttributesAt)

	// Relationships
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_relationship",
		Description: "Create a directed, typed relationship between two entities",
	}, h.createRelationship)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_relationships",
		Description: "List an entity's relationships (outgoing, incoming, or both) with related entity names resolved",
	}, h.listRelationships)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_relationship",
		Description: "Delete a relationship edge; unknown ids are no-ops",
	}, h.deleteRelationship)

	// Evidence
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_evidence",
		Description: "Attach an evidence record (screenshot, document, page capture) to an entity by file reference",
	}, h.addEvidence)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_evidence",
		Description: "List evidence records filtered by entity, type, or source, newest first",
	}, h.listEvidence)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_evidence",
		Description: "Delete an evidence record; the referenced file is not touched",
	}, h.deleteEvidence)

	// Snapshots
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_snapshot",
		Description: "Create a snapshot token to group the attribute writes of one capture pass",
	}, h.createSnapshot)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_snapshots",
		Description: "List a project's snapshots with the count of attribute writes in each",
	}, h.listSnapshots)
}

func (h *handlers) getSchema(ctx context.Context, _ *sdkmcp.CallToolRequest, params GetSchemaParams) (*sdkmcp.CallToolResult, any, error) {
	s, err := h.svc.Schema.Load(ctx, params.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return toolJSON(nil)
		}
		return toolAPIError(err), nil, nil
	}
	return toolJSON(s)
}

func (h *handlers) saveSchema(ctx context.Context, _ *sdkmcp.CallToolRequest, params SaveSchemaParams) (*sdkmcp.CallToolResult, any, error) {
	saved, err := h.svc.Schema.Save(ctx, params.ProjectID, params.Schema)
	if err != nil {
		return toolAPIError(err), nil, nil
	}
	return toolJSON(saved)
}

func (h *handlers) validateSchema(_ context.Context, _ *sdkmcp.CallToolRequest, params ValidateSchemaParams) (*sdkmcp.CallToolResult, any, error) {
	normalized := schema.Normalize(params.Schema)
	valid, problems := schema.Validate(normalized)
	return toolJSON(ValidateSchemaResult{Valid: valid, Problems: problems})
}

func (h *handlers) createEntity(ctx context.Context, _ *sdkmcp.CallToolRequest, params CreateEntityParams) (*sdkmcp.CallToolResult, any, error) {
	e, err := h.svc.Entities.Create(ctx, entity.CreateRequest{
		ProjectID:      params.ProjectID,
		TypeSlug:       params.Type,
		Name:           params.Name,
		ParentEntityID: params.ParentEntityID,
		CategoryID:     params.CategoryID,
		Attributes:     params.Attributes,
		Source:         params.Source,
	})
	if err != nil {
		return toolAPIError(err), nil, nil
	}
	return toolJSON(e)
}

func (h *handlers) getEntity(ctx context.Context, _ *sdkmcp.CallToolRequest, params GetEntityParams) (*sdkmcp.CallToolResult, any, error) {
	resolved, err := h.svc.Entities.Get(ctx, params.ID)
	if err != nil {
		return toolAPIError(err), nil, nil
	}
	return toolJSON(resolved)
}

func (h *handlers) listEntities(ctx context.Context, _ *sdkmcp.CallToolRequest, params ListEntitiesParams) (*sdkmcp.CallToolResult, any, error) {
	entities, err := h.svc.Entities.List(ctx, entity.ListOptions{
		ProjectID:  params.ProjectID,
		TypeSlug:   params.Type,
		ParentID:   params.ParentID,
		CategoryID: params.CategoryID,
		Search:     params.Search,
		SortBy:     params.SortBy,
		Limit:      params.Limit,
		Offset:     params.Offset,
	})
	if err != nil {
		return toolAPIError(err), nil, nil
	}
	if entities == nil {
		entities = []entity.Entity{}
	}
	return toolJSON(entities)
}

func (h *handlers) updateEntity(ctx context.Context, _ *sdkmcp.CallToolRequest, params UpdateEntityParams) (*sdkmcp.CallToolResult, any, error) {
	err := h.svc.Entities.Update(ctx, params.ID, entity.UpdateFields{
		Name:            params.Name,
		CategoryID:      params.CategoryID,
		ParentEntityID:  params.ParentEntityID,
		IsStarred:       params.IsStarred,
		Status:          params.Status,
		ConfidenceScore: params.ConfidenceScore,
		Tags:            params.Tags,
		RawResearch:     params.RawResearch,
	})
	if err != nil {
		return toolAPIError(err), nil, nil
	}
	return toolText("updated"), nil, nil
}

func (h *handlers) deleteEntity(ctx context.Context, _ *sdkmcp.CallToolRequest, params DeleteEntityParams) (*sdkmcp.CallToolResult, any, error) {
	if err := h.svc.Entities.Delete(ctx, params.ID, params.Cascade); err != nil {
		return toolAPIError(err), nil, nil
	}
	return toolText("deleted"), nil, nil
}

func (h *handlers) restoreEntity(ctx context.Context, _ *sdkmcp.CallToolRequest, params RestoreEntityParams) (*sdkmcp.CallToolResult, any, error) {
	if err := h.svc.Entities.Restore(ctx, params.ID); err != nil {
		return toolAPIError(err), nil, nil
	}
	return toolText("restored"), nil, nil
}

func (h *handlers) setAttribute(ctx context.Context, _ *sdkmcp.CallToolRequest, params SetAttributeParams) (*sdkmcp.CallToolResult, any, error) {
	value, err := encodeValue(params.Value)
	if err != nil {
		return toolAPIError(fmt.Errorf("%w: %v", repository.ErrInvalidInput, err)), nil, nil
	}

	rec, err := h.svc.Attributes.Set(ctx, attribute.SetRequest{
		EntityID:   params.EntityID,
		Slug:       params.Slug,
		Value:      value,
		Source:     params.Source,
		Confidence: params.Confidence,
		CapturedAt: timeOrZero(params.CapturedAt),
		SnapshotID: params.SnapshotID,
	})
	if err != nil {
		return toolAPIError(err), nil, nil
	}
	return toolJSON(rec)
}

func (h *handlers) setAttributes(ctx context.Context, _ *sdkmcp.CallToolRequest, params SetAttributesParams) (*sdkmcp.CallToolResult, any, error) {
	values := make(map[string]string, len(params.Values))
	for slug, raw := range params.Values {
		value, err := encodeValue(raw)
		if err != nil {
			return toolAPIError(fmt.Errorf("%w: %s: %v", repository.ErrInvalidInput, slug, err)), nil, nil
		}
		values[slug] = value
	}

	recs, err := h.svc.Attributes.SetMany(ctx, attribute.SetManyRequest{
		EntityID:   params.EntityID,
		Values:     values,
		Source:     params.Source,
		Confidence: params.Confidence,
		CapturedAt: timeOrZero(params.CapturedAt),
		SnapshotID: params.SnapshotID,
	})
	if err != nil {
		return toolAPIError(err), nil, nil
	}
	return toolJSON(recs)
}

func (h *handlers) getAttributes(ctx context.Context, _ *sdkmcp.CallToolRequest, params GetAttributesParams) (*sdkmcp.CallToolResult, any, error) {
	values, err := h.svc.Attributes.Current(ctx, params.EntityID)
	if err != nil {
		return toolAPIError(err), nil, nil
	}
	return toolJSON(values)
}

func (h *handlers) getAttributeHistory(ctx context.Context, _ *sdkmcp.CallToolRequest, params GetAttributeHistoryParams) (*sdkmcp.CallToolResult, any, error) {
	recs, err := h.svc.Attributes.History(ctx, params.EntityID, params.Slug, params.Limit)
	if err != nil {
		return toolAPIError(err), nil, nil
	}
	if recs == nil {
		recs = []attribute.Record{}
	}
	return toolJSON(recs)
}

func (h *handlers) getAttributesAt(ctx context.Context, _ *sdkmcp.CallToolRequest, params GetAttributesAtParams) (*sdkmcp.CallToolResult, any, error) {
	values, err := h.svc.Attributes.At(ctx, params.EntityID, params.Timestamp)
	if err != nil {
		return toolAPIError(err), nil, nil
	}
	return toolJSON(values)
}

func (h *handlers) createRelationship(ctx context.Context, _ *sdkmcp.CallToolRequest, params CreateRelationshipParams) (*sdkmcp.CallToolResult, any, error) {
	edge, err := h.svc.Relationships.Create(ctx, relationship.CreateRequest{
		FromEntityID: params.FromEntityID,
		ToEntityID:   params.ToEntityID,
		Type:         params.Type,
		Metadata:     params.Metadata,
	})
	if err != nil {
		return toolAPIError(err), nil, nil
	}
	return toolJSON(edge)
}

func (h *handlers) listRelationships(ctx context.Context, _ *sdkmcp.CallToolRequest, params ListRelationshipsParams) (*sdkmcp.CallToolResult, any, error) {
	edges, err := h.svc.Relationships.List(ctx, params.EntityID, params.Direction)
	if err != nil {
		return toolAPIError(err), nil, nil
	}
	if edges == nil {
		edges = []relationship.Resolved{}
	}
	return toolJSON(edges)
}

func (h *handlers) deleteRelationship(ctx context.Context, _ *sdkmcp.CallToolRequest, params DeleteRelationshipParams) (*sdkmcp.CallToolResult, any, error) {
	if err := h.svc.Relationships.Delete(ctx, params.ID); err != nil {
		return toolAPIError(err), nil, nil
	}
	return toolText("deleted"), nil, nil
}

func (h *handlers) addEvidence(ctx context.Context, _ *sdkmcp.CallToolRequest, params AddEvidenceParams) (*sdkmcp.CallToolResult, any, error) {
	ev, err := h.svc.Evidence.Add(ctx, evidence.AddRequest{
		EntityID:   params.EntityID,
		Type:       params.Type,
		FilePath:   params.FilePath,
		SourceURL:  params.SourceURL,
		SourceName: params.SourceName,
		Metadata:   params.Metadata,
		CapturedAt: timeOrZero(params.CapturedAt),
	})
	if err != nil {
		return toolAPIError(err), nil, nil
	}
	return toolJSON(ev)
}

func (h *handlers) listEvidence(ctx context.Context, _ *sdkmcp.CallToolRequest, params ListEvidenceParams) (*sdkmcp.CallToolResult, any, error) {
	evs, err := h.svc.Evidence.List(ctx, evidence.ListOptions{
		EntityID:   params.EntityID,
		Type:       params.Type,
		SourceName: params.SourceName,
		Limit:      params.Limit,
	})
	if err != nil {
		return toolAPIError(err), nil, nil
	}
	if evs == nil {
		evs = []evidence.Evidence{}
	}
	return toolJSON(evs)
}

func (h *handlers) deleteEvidence(ctx context.Context, _ *sdkmcp.CallToolRequest, params DeleteEvidenceParams) (*sdkmcp.CallToolResult, any, error) {
	if err := h.svc.Evidence.Delete(ctx, params.ID); err != nil {
		return toolAPIError(err), nil, nil
	}
	return toolText("deleted"), nil, nil
}

func (h *handlers) createSnapshot(ctx context.Context, _ *sdkmcp.CallToolRequest, params CreateSnapshotParams) (*sdkmcp.CallToolResult, any, error) {
	snap, err := h.svc.Snapshots.Create(ctx, params.ProjectID, params.Description)
	if err != nil {
		return toolAPIError(err), nil, nil
	}
	return toolJSON(snap)
}

func (h *handlers) listSnapshots(ctx context.Context, _ *sdkmcp.CallToolRequest, params ListSnapshotsParams) (*sdkmcp.CallToolResult, any, error) {
	snaps, err := h.svc.Snapshots.List(ctx, params.ProjectID)
	if err != nil {
		return toolAPIError(err), nil, nil
	}
	return toolJSON(snaps)
}

// encodeValue converts a JSON tool argument to the canonical ledger string:
// numbers without a trailing zero fraction, booleans as "0"/"1", arrays and
// objects re-serialized as JSON.
func encodeValue(raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", fmt.Errorf("value is required")
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		if v {
			return "1", nil
		}
		return "0", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("unsupported value: %w", err)
		}
		return string(data), nil
	}
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func toolText(text string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: text}},
	}
}

func toolAPIError(err error) *sdkmcp.CallToolResult {
	apiErr := MapError(err)
	data, marshalErr := json.Marshal(apiErr)
	if marshalErr != nil {
		data = []byte(apiErr.Error())
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
		IsError: true,
	}
}

func toolJSON(v any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolAPIError(fmt.Errorf("marshaling result: %w", err)), nil, nil
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}
