package audit

import "context"

// Repository persists audit entries. There is deliberately no update or
// delete.
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	List(ctx context.Context, entity string, limit, offset int) ([]*Entry, int, error)
}
