package evidence

import "context"

// Repository provides persistence for evidence records.
type Repository interface {
	Add(ctx context.Context, ev *Evidence) error
	List(ctx context.Context, opts ListOptions) ([]Evidence, error)
	Delete(ctx context.Context, id string) error
}
