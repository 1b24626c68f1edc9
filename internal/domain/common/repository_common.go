// internal/domain/common/repository_common.go
package common

import (
	"context"
	"errors"
	"strings"
)

// Collection names used by the console.
const (
	CollectionAvailableItems = "availableItems"
	CollectionOrders         = "orders"
	CollectionMenuItems      = "menuItems"
)

var (
	// ErrNotFound is returned by Update when the document does not exist.
	ErrNotFound = errors.New("document: not found")
	// ErrInvalidDocument is returned when collection or id is blank.
	ErrInvalidDocument = errors.New("document: invalid collection or id")
)

// Document is one record of a collection together with its id.
// Data never contains the id; the id is the source of truth.
type Document struct {
	ID   string
	Data map[string]any
}

// DocumentRepository is the remote document store consumed by the console.
//
//   - GetAll: all documents of a collection, each carrying its id
//   - Set:    upsert replacing the entire document at id
//   - Update: partial field update; ErrNotFound if the document is missing
//   - Delete: remove the document at id; a missing id is not an error
type DocumentRepository interface {
	GetAll(ctx context.Context, collection string) ([]Document, error)
	Set(ctx context.Context, collection, id string, data map[string]any) error
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
}

// CheckKey trims collection and id and rejects blanks.
func CheckKey(collection, id string) (string, string, error) {
	c := strings.TrimSpace(collection)
	i := strings.TrimSpace(id)
	if c == "" || i == "" {
		return "", "", ErrInvalidDocument
	}
	return c, i, nil
}

// CloneData returns a shallow copy of a document payload.
func CloneData(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
