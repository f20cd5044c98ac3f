package attribute

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/latticehq/lattice/internal/repository"
)

// DefaultHistoryLimit bounds History when the caller passes no limit.
const DefaultHistoryLimit = 50

// Service handles attribute ledger operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new attribute service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// SetRequest describes one ledger append.
type SetRequest struct {
	EntityID   string
	Slug       string
	Value      string
	Source     string
	Confidence *float64
	CapturedAt time.Time // zero means now; non-zero allows backdating
	SnapshotID *string
}

// Set appends one record to the ledger. Prior records are never touched.
func (s *Service) Set(ctx context.Context, req SetRequest) (*Record, error) {
	if strings.TrimSpace(req.EntityID) == "" || strings.TrimSpace(req.Slug) == "" {
		return nil, repository.ErrInvalidInput
	}

	rec := &Record{
		EntityID:   req.EntityID,
		Slug:       req.Slug,
		Value:      req.Value,
		Source:     req.Source,
		Confidence: req.Confidence,
		CapturedAt: req.CapturedAt,
		SnapshotID: req.SnapshotID,
	}
	if rec.Source == "" {
		rec.Source = SourceManual
	}
	if rec.CapturedAt.IsZero() {
		rec.CapturedAt = time.Now()
	}

	if err := s.repo.Append(ctx, rec); err != nil {
		return nil, fmt.Errorf("appending attribute: %w", err)
	}
	return rec, nil
}

// SetTyped encodes a tagged value and appends it.
func (s *Service) SetTyped(ctx context.Context, req SetRequest, v Value) (*Record, error) {
	encoded, err := v.Encode()
	if err != nil {
		return nil, fmt.Errorf("encoding %s value: %w", v.Kind(), err)
	}
	req.Value = encoded
	return s.Set(ctx, req)
}

// SetManyRequest describes a batched append. Every entry shares the same
// source, confidence, snapshot, and timestamp.
type SetManyRequest struct {
	EntityID   string
	Values     map[string]string
	Source     string
	Confidence *float64
	CapturedAt time.Time
	SnapshotID *string
}

// SetMany appends one record per entry in a single transaction.
func (s *Service) SetMany(ctx context.Context, req SetManyRequest) ([]*Record, error) {
	if strings.TrimSpace(req.EntityID) == "" {
		return nil, repository.ErrInvalidInput
	}
	if len(req.Values) == 0 {
		return nil, nil
	}

	source := req.Source
	if source == "" {
		source = SourceManual
	}
	capturedAt := req.CapturedAt
	if capturedAt.IsZero() {
		capturedAt = time.Now()
	}

	recs := make([]*Record, 0, len(req.Values))
	for slug, value := range req.Values {
		if strings.TrimSpace(slug) == "" {
			return nil, repository.ErrInvalidInput
		}
		recs = append(recs, &Record{
			EntityID:   req.EntityID,
			Slug:       slug,
			Value:      value,
			Source:     source,
			Confidence: req.Confidence,
			CapturedAt: capturedAt,
			SnapshotID: req.SnapshotID,
		})
	}

	if err := s.repo.AppendMany(ctx, recs); err != nil {
		return nil, fmt.Errorf("appending attributes: %w", err)
	}
	return recs, nil
}

// Current returns, per slug, the record with the maximum captured_at (ties
// broken by insertion order).
func (s *Service) Current(ctx context.Context, entityID string) (map[string]CurrentValue, error) {
	values, err := s.repo.Current(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("resolving current attributes: %w", err)
	}
	return values, nil
}

// History returns records for one slug, newest first, at most limit entries.
func (s *Service) History(ctx context.Context, entityID, slug string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	recs, err := s.repo.History(ctx, entityID, slug, limit)
	if err != nil {
		return nil, fmt.Errorf("loading attribute history: %w", err)
	}
	return recs, nil
}

// At returns, per slug, the latest record with captured_at <= ts. Slugs with
// no qualifying record are omitted.
func (s *Service) At(ctx context.Context, entityID string, ts time.Time) (map[string]CurrentValue, error) {
	values, err := s.repo.At(ctx, entityID, ts)
	if err != nil {
		return nil, fmt.Errorf("resolving attributes at %s: %w", ts.Format(time.RFC3339), err)
	}
	return values, nil
}
