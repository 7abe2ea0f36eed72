package journal

import "context"

type Repository interface {
	Create(ctx context.Context, e Entry) error
	// ListRecent devuelve las más recientes primero.
	ListRecent(ctx context.Context, limit int) ([]Entry, error)
}
