package entity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/latticehq/lattice/internal/domain/attribute"
	"github.com/latticehq/lattice/internal/domain/schema"
	"github.com/latticehq/lattice/internal/repository"
)

// StatusActive is the default lifecycle status for new entities.
const StatusActive = "active"

// Service handles entity business logic. Missing ids are an expected
// outcome: reads return nil and writes are silent no-ops, per the contract
// that the calling layer owns existence pre-checks.
type Service struct {
	repo   Repository
	attrs  AttributeReader
	logger *slog.Logger
}

// NewService creates a new entity service.
func NewService(repo Repository, attrs AttributeReader, logger *slog.Logger) *Service {
	return &Service{repo: repo, attrs: attrs, logger: logger}
}

// CreateRequest describes an entity creation. Attributes, when present, are
// seeded through the ledger in the same transaction as the entity row.
type CreateRequest struct {
	ProjectID      string
	TypeSlug       string
	Name           string
	ParentEntityID *string
	CategoryID     *string
	Attributes     map[string]string
	Source         string
}

// Create creates a new entity and returns its id.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Entity, error) {
	if strings.TrimSpace(req.ProjectID) == "" ||
		strings.TrimSpace(req.TypeSlug) == "" ||
		strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}

	source := req.Source
	if source == "" {
		source = attribute.SourceManual
	}

	now := time.Now()
	e := &Entity{
		ID:             uuid.NewString(),
		ProjectID:      req.ProjectID,
		TypeSlug:       req.TypeSlug,
		Name:           req.Name,
		Slug:           schema.Slugify(req.Name),
		ParentEntityID: req.ParentEntityID,
		CategoryID:     req.CategoryID,
		Status:         StatusActive,
		Tags:           "[]",
		Source:         source,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	seed := make([]*attribute.Record, 0, len(req.Attributes))
	for slug, value := range req.Attributes {
		seed = append(seed, &attribute.Record{
			EntityID:   e.ID,
			Slug:       slug,
			Value:      value,
			Source:     source,
			CapturedAt: now,
		})
	}

	if err := s.repo.Create(ctx, e, seed); err != nil {
		return nil, fmt.Errorf("creating entity: %w", err)
	}

	if s.logger != nil {
		s.logger.Debug("entity created", "id", e.ID, "project_id", e.ProjectID, "type", e.TypeSlug)
	}
	return e, nil
}

// Get returns the resolved view of an entity, or nil when the id is missing
// or soft-deleted.
func (s *Service) Get(ctx context.Context, id string) (*Resolved, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting entity: %w", err)
	}

	children, evidence, err := s.repo.Counts(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("counting entity references: %w", err)
	}

	attrs, err := s.attrs.Current(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolving entity attributes: %w", err)
	}

	return &Resolved{
		Entity:        *e,
		ChildCount:    children,
		EvidenceCount: evidence,
		Attributes:    attrs,
	}, nil
}

// List returns non-deleted entities matching the options.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Entity, error) {
	return s.repo.List(ctx, opts)
}

// Update applies entity-level field changes and stamps updated_at. Renaming
// recomputes the slug. Unknown ids are silent no-ops.
func (s *Service) Update(ctx context.Context, id string, f UpdateFields) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	if f.IsEmpty() {
		return nil
	}

	var slug *string
	if f.Name != nil {
		derived := schema.Slugify(*f.Name)
		slug = &derived
	}

	if err := s.repo.Update(ctx, id, f, slug); err != nil {
		return fmt.Errorf("updating entity: %w", err)
	}
	return nil
}

// Delete soft-deletes the entity and, when cascade is true, every
// descendant, as one atomic unit. Unknown ids are silent no-ops.
func (s *Service) Delete(ctx context.Context, id string, cascade bool) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, id, cascade); err != nil {
		return fmt.Errorf("deleting entity: %w", err)
	}
	if s.logger != nil {
		s.logger.Debug("entity deleted", "id", id, "cascade", cascade)
	}
	return nil
}

// Restore clears the soft-delete flag for exactly this entity. Descendants
// deleted by a cascade stay deleted until restored individually.
func (s *Service) Restore(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	if err := s.repo.Restore(ctx, id); err != nil {
		return fmt.Errorf("restoring entity: %w", err)
	}
	return nil
}
