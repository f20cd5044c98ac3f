package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/latticehq/lattice/internal/repository"
)

// Service handles snapshot grouping operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new snapshot service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create creates a snapshot for a project and returns it.
func (s *Service) Create(ctx context.Context, projectID string, description *string) (*Snapshot, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, repository.ErrInvalidInput
	}

	snap := &Snapshot{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		Description: description,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, snap); err != nil {
		return nil, fmt.Errorf("creating snapshot: %w", err)
	}
	return snap, nil
}

// List returns a project's snapshots, newest first, with computed attribute
// counts.
func (s *Service) List(ctx context.Context, projectID string) ([]Snapshot, error) {
	snaps, err := s.repo.List(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	return snaps, nil
}
