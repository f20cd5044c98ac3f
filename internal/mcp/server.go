package mcp

import (
	"context"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/latticehq/lattice/internal/domain/attribute"
	"github.com/latticehq/lattice/internal/domain/entity"
	"github.com/latticehq/lattice/internal/domain/evidence"
	"github.com/latticehq/lattice/internal/domain/relationship"
	"github.com/latticehq/lattice/internal/domain/schema"
	"github.com/latticehq/lattice/internal/domain/snapshot"
)

// SchemaStore defines schema persistence operations needed by MCP.
type SchemaStore interface {
	Save(ctx context.Context, projectID string, s schema.Schema) (schema.Schema, error)
	Load(ctx context.Context, projectID string) (schema.Schema, error)
}

// EntityService defines entity operations needed by MCP.
type EntityService interface {
	Create(ctx context.Context, req entity.CreateRequest) (*entity.Entity, error)
	Get(ctx context.Context, id string) (*entity.Resolved, error)
	List(ctx context.Context, opts entity.ListOptions) ([]entity.Entity, error)
	Update(ctx context.Context, id string, f entity.UpdateFields) error
	Delete(ctx context.Context, id string, cascade bool) error
	Restore(ctx context.Context, id string) error
}

// AttributeService defines attribute ledger operations needed by MCP.
type AttributeService interface {
	Set(ctx context.Context, req attribute.SetRequest) (*attribute.Record, error)
	SetMany(ctx context.Context, req attribute.SetManyRequest) ([]*attribute.Record, error)
	Current(ctx context.Context, entityID string) (map[string]attribute.CurrentValue, error)
	History(ctx context.Context, entityID, slug string, limit int) ([]attribute.Record, error)
	At(ctx context.Context, entityID string, ts time.Time) (map[string]attribute.CurrentValue, error)
}

// RelationshipService defines relationship graph operations needed by MCP.
type RelationshipService interface {
	Create(ctx context.Context, req relationship.CreateRequest) (*relationship.Edge, error)
	List(ctx context.Context, entityID string, direction relationship.Direction) ([]relationship.Resolved, error)
	Delete(ctx context.Context, edgeID string) error
}

// EvidenceService defines evidence library operations needed by MCP.
type EvidenceService interface {
	Add(ctx context.Context, req evidence.AddRequest) (*evidence.Evidence, error)
	List(ctx context.Context, opts evidence.ListOptions) ([]evidence.Evidence, error)
	Delete(ctx context.Context, id string) error
}

// SnapshotService defines snapshot operations needed by MCP.
type SnapshotService interface {
	Create(ctx context.Context, projectID string, description *string) (*snapshot.Snapshot, error)
	List(ctx context.Context, projectID string) ([]snapshot.Snapshot, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Schema        SchemaStore
	Entities      EntityService
	Attributes    AttributeService
	Relationships RelationshipService
	Evidence      EvidenceService
	Snapshots     SnapshotService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "lattice",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}
