// internal/domain/inventory/repository_port.go
package inventory

import "context"

// Repository is the persistence port for the ledger (availableItems).
//
// There is no compare-and-swap: Save replaces the whole record, so two
// clients merging into the same id concurrently can lose an update.
type Repository interface {
	// GetAll loads the whole ledger.
	GetAll(ctx context.Context) (Ledger, error)

	// Save upserts one record by its id.
	Save(ctx context.Context, r StockRecord) error

	// Delete removes the record; a missing id is not an error.
	Delete(ctx context.Context, id string) error
}
