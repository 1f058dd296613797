package catalog

import "context"

// Store is the record store behind the catalog routes.
type Store interface {
	Get(ctx context.Context, id int64) (*Book, error)
	// List returns books ordered by id; limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]Book, error)
	Insert(ctx context.Context, in BookInput) (*Book, error)
	Update(ctx context.Context, id int64, in BookInput) (*Book, error)
	Delete(ctx context.Context, id int64) error
}

// GuardedMutation confirms the record exists before running mutate, so
// update and delete share one lookup-or-ErrNotFound step.
func GuardedMutation(
	ctx context.Context,
	store Store,
	id int64,
	mutate func(ctx context.Context, current *Book) (*Book, error),
) (*Book, error) {

	current, err := store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return mutate(ctx, current)
}
