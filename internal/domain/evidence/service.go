package evidence

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/latticehq/lattice/internal/repository"
)

// DefaultListLimit bounds List when the caller passes no limit.
const DefaultListLimit = 100

// Service handles evidence library operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new evidence service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// AddRequest describes a new evidence record.
type AddRequest struct {
	EntityID   string
	Type       string
	FilePath   string
	SourceURL  *string
	SourceName *string
	Metadata   *string
	CapturedAt time.Time // zero means now
}

// Add stores an evidence record and returns it.
func (s *Service) Add(ctx context.Context, req AddRequest) (*Evidence, error) {
	if strings.TrimSpace(req.EntityID) == "" ||
		strings.TrimSpace(req.Type) == "" ||
		strings.TrimSpace(req.FilePath) == "" {
		return nil, repository.ErrInvalidInput
	}

	capturedAt := req.CapturedAt
	if capturedAt.IsZero() {
		capturedAt = time.Now()
	}

	ev := &Evidence{
		ID:         uuid.NewString(),
		EntityID:   req.EntityID,
		Type:       req.Type,
		FilePath:   req.FilePath,
		SourceURL:  req.SourceURL,
		SourceName: req.SourceName,
		Metadata:   req.Metadata,
		CapturedAt: capturedAt,
	}

	if err := s.repo.Add(ctx, ev); err != nil {
		return nil, fmt.Errorf("adding evidence: %w", err)
	}
	return ev, nil
}

// List returns evidence matching the options, newest first.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Evidence, error) {
	if opts.Limit <= 0 {
		opts.Limit = DefaultListLimit
	}
	evs, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing evidence: %w", err)
	}
	return evs, nil
}

// Delete removes an evidence record. Unknown ids are silent no-ops.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting evidence: %w", err)
	}
	return nil
}
