package snapshot

import "context"

// Repository provides persistence for snapshots. List computes each
// snapshot's attribute count by counting referencing ledger rows.
type Repository interface {
	Create(ctx context.Context, snap *Snapshot) error
	List(ctx context.Context, projectID string) ([]Snapshot, error)
}
