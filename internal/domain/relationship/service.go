package relationship

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/latticehq/lattice/internal/repository"
)

// Service handles relationship graph operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new relationship service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateRequest describes a new edge. The relationship type is any non-empty
// string; declared schema relationships are advisory and not enforced here.
type CreateRequest struct {
	FromEntityID string
	ToEntityID   string
	Type         string
	Metadata     *string
}

// Create creates a new edge and returns it.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Edge, error) {
	if strings.TrimSpace(req.FromEntityID) == "" ||
		strings.TrimSpace(req.ToEntityID) == "" ||
		strings.TrimSpace(req.Type) == "" {
		return nil, repository.ErrInvalidInput
	}

	edge := &Edge{
		ID:           uuid.NewString(),
		FromEntityID: req.FromEntityID,
		ToEntityID:   req.ToEntityID,
		Type:         req.Type,
		Metadata:     req.Metadata,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, edge); err != nil {
		return nil, fmt.Errorf("creating relationship: %w", err)
	}
	return edge, nil
}

// List returns the entity's edges in the given direction, each resolved with
// the related entity's name. Direction defaults to both.
func (s *Service) List(ctx context.Context, entityID string, direction Direction) ([]Resolved, error) {
	switch direction {
	case DirectionOutgoing, DirectionIncoming, DirectionBoth:
	case "":
		direction = DirectionBoth
	default:
		return nil, fmt.Errorf("%w: unknown direction %q", repository.ErrInvalidInput, direction)
	}

	edges, err := s.repo.List(ctx, entityID, direction)
	if err != nil {
		return nil, fmt.Errorf("listing relationships: %w", err)
	}
	return edges, nil
}

// Delete removes an edge. Unknown ids are silent no-ops.
func (s *Service) Delete(ctx context.Context, edgeID string) error {
	if err := s.repo.Delete(ctx, edgeID); err != nil {
		return fmt.Errorf("deleting relationship: %w", err)
	}
	return nil
}
