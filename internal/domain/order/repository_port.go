package order

import "context"

// Repository defines the persistence port for Order.
//
// Orders are created outside the console; the console only reads them and
// patches status and priority.
type Repository interface {
	GetAll(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	UpdatePriority(ctx context.Context, id string, priority int) error
}
