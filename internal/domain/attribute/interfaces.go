package attribute

import (
	"context"
	"time"
)

// Repository provides persistence for the attribute ledger.
type Repository interface {
	Append(ctx context.Context, rec *Record) error
	AppendMany(ctx context.Context, recs []*Record) error
	Current(ctx context.Context, entityID string) (map[string]CurrentValue, error)
	History(ctx context.Context, entityID, slug string, limit int) ([]Record, error)
	At(ctx context.Context, entityID string, ts time.Time) (map[string]CurrentValue, error)
}
