package catalog

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("catalog: item not found")

// Repository reads the menuItems collection. The console never writes it;
// only the seed command does.
type Repository interface {
	List(ctx context.Context) ([]Item, error)
	GetByID(ctx context.Context, id string) (Item, error)
}
