// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/latticehq/lattice/internal/domain/attribute"
	"github.com/latticehq/lattice/internal/domain/entity"
	"github.com/latticehq/lattice/internal/domain/evidence"
	"github.com/latticehq/lattice/internal/domain/relationship"
	"github.com/latticehq/lattice/internal/domain/snapshot"
)

// EntityRepository is a mock for entity.Repository.
type EntityRepository struct {
	mock.Mock
}

func (m *EntityRepository) Create(ctx context.Context, e *entity.Entity, seed []*attribute.Record) error {
	args := m.Called(ctx, e, seed)
	return args.Error(0)
}

func (m *EntityRepository) Get(ctx context.Context, id string) (*entity.Entity, error) {
	args := m.Called(ctx, id)
	if e, ok := args.Get(0).(*entity.Entity); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntityRepository) Counts(ctx context.Context, id string) (int, int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *EntityRepository) List(ctx context.Context, opts entity.ListOptions) ([]entity.Entity, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]entity.Entity); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntityRepository) Update(ctx context.Context, id string, f entity.UpdateFields, slug *string) error {
	args := m.Called(ctx, id, f, slug)
	return args.Error(0)
}

func (m *EntityRepository) Delete(ctx context.Context, id string, cascade bool) error {
	args := m.Called(ctx, id, cascade)
	return args.Error(0)
}

func (m *EntityRepository) Restore(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// AttributeRepository is a mock for attribute.Repository (and the narrower
// entity.AttributeReader).
type AttributeRepository struct {
	mock.Mock
}

func (m *AttributeRepository) Append(ctx context.Context, rec *attribute.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *AttributeRepository) AppendMany(ctx context.Context, recs []*attribute.Record) error {
	args := m.Called(ctx, recs)
	return args.Error(0)
}

func (m *AttributeRepository) Current(ctx context.Context, entityID string) (map[string]attribute.CurrentValue, error) {
	args := m.Called(ctx, entityID)
	if values, ok := args.Get(0).(map[string]attribute.CurrentValue); ok {
		return values, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AttributeRepository) History(ctx context.Context, entityID, slug string, limit int) ([]attribute.Record, error) {
	args := m.Called(ctx, entityID, slug, limit)
	if recs, ok := args.Get(0).([]attribute.Record); ok {
		return recs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AttributeRepository) At(ctx context.Context, entityID string, ts time.Time) (map[string]attribute.CurrentValue, error) {
	args := m.Called(ctx, entityID, ts)
	if values, ok := args.Get(0).(map[string]attribute.CurrentValue); ok {
		return values, args.Error(1)
	}
	return nil, args.Error(1)
}

// RelationshipRepository is a mock for relationship.Repository.
type RelationshipRepository struct {
	mock.Mock
}

func (m *RelationshipRepository) Create(ctx context.Context, edge *relationship.Edge) error {
	args := m.Called(ctx, edge)
	return args.Error(0)
}

func (m *RelationshipRepository) List(ctx context.Context, entityID string, direction relationship.Direction) ([]relationship.Resolved, error) {
	args := m.Called(ctx, entityID, direction)
	if edges, ok := args.Get(0).([]relationship.Resolved); ok {
		return edges, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RelationshipRepository) Delete(ctx context.Context, edgeID string) error {
	args := m.Called(ctx, edgeID)
	return args.Error(0)
}

// EvidenceRepository is a mock for evidence.Repository.
type EvidenceRepository struct {
	mock.Mock
}

func (m *EvidenceRepository) Add(ctx context.Context, ev *evidence.Evidence) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *EvidenceRepository) List(ctx context.Context, opts evidence.ListOptions) ([]evidence.Evidence, error) {
	args := m.Called(ctx, opts)
	if evs, ok := args.Get(0).([]evidence.Evidence); ok {
		return evs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EvidenceRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// SnapshotRepository is a mock for snapshot.Repository.
type SnapshotRepository struct {
	mock.Mock
}

func (m *SnapshotRepository) Create(ctx context.Context, snap *snapshot.Snapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}

func (m *SnapshotRepository) List(ctx context.Context, projectID string) ([]snapshot.Snapshot, error) {
	args := m.Called(ctx, projectID)
	if snaps, ok := args.Get(0).([]snapshot.Snapshot); ok {
		return snaps, args.Error(1)
	}
	return nil, args.Error(1)
}
