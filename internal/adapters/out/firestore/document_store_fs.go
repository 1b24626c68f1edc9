// internal/adapters/out/firestore/document_store_fs.go
package firestore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"canteen/internal/domain/common"
)

// Firestore caps a write batch at 500 operations.
const maxBatchWrites = 500

// DocumentStoreFS implements common.DocumentRepository with Firestore.
type DocumentStoreFS struct {
	Client *firestore.Client
}

func NewDocumentStoreFS(client *firestore.Client) *DocumentStoreFS {
	return &DocumentStoreFS{Client: client}
}

// Compile-time check
var _ common.DocumentRepository = (*DocumentStoreFS)(nil)

func (s *DocumentStoreFS) col(name string) *firestore.CollectionRef {
	return s.Client.Collection(name)
}

// =======================
// Queries
// =======================

func (s *DocumentStoreFS) GetAll(ctx context.Context, collection string) ([]common.Document, error) {
	if s.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	it := s.col(collection).Documents(ctx)
	defer it.Stop()

	var out []common.Document
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		data := snap.Data()
		delete(data, "id")
		out = append(out, common.Document{ID: snap.Ref.ID, Data: data})
	}
	return out, nil
}

// =======================
// Commands
// =======================

func (s *DocumentStoreFS) Set(ctx context.Context, collection, id string, data map[string]any) error {
	if s.Client == nil {
		return errors.New("firestore client is nil")
	}
	c, i, err := common.CheckKey(collection, id)
	if err != nil {
		return err
	}
	_, err = s.col(c).Doc(i).Set(ctx, data)
	return err
}

func (s *DocumentStoreFS) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if s.Client == nil {
		return errors.New("firestore client is nil")
	}
	c, i, err := common.CheckKey(collection, id)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}

	_, err = s.col(c).Doc(i).Update(ctx, toUpdates(fields))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return common.ErrNotFound
		}
		return err
	}
	return nil
}

// Delete on a missing document succeeds in Firestore, which matches the port.
func (s *DocumentStoreFS) Delete(ctx context.Context, collection, id string) error {
	if s.Client == nil {
		return errors.New("firestore client is nil")
	}
	c, i, err := common.CheckKey(collection, id)
	if err != nil {
		return err
	}
	_, err = s.col(c).Doc(i).Delete(ctx)
	return err
}

// SetAll upserts many documents with write batches. Each batch is atomic;
// the sequence of batches is not.
func (s *DocumentStoreFS) SetAll(ctx context.Context, collection string, docs []common.Document) error {
	if s.Client == nil {
		return errors.New("firestore client is nil")
	}

	batch := s.Client.Batch()
	pending := 0
	for _, d := range docs {
		c, i, err := common.CheckKey(collection, d.ID)
		if err != nil {
			return err
		}
		batch.Set(s.col(c).Doc(i), d.Data)
		pending++

		if pending == maxBatchWrites {
			if _, err := batch.Commit(ctx); err != nil {
				return fmt.Errorf("batch commit: %w", err)
			}
			batch = s.Client.Batch()
			pending = 0
		}
	}
	if pending > 0 {
		if _, err := batch.Commit(ctx); err != nil {
			return fmt.Errorf("batch commit: %w", err)
		}
	}
	return nil
}

// toUpdates converts fields into Firestore updates in a stable order.
func toUpdates(fields map[string]any) []firestore.Update {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ups := make([]firestore.Update, 0, len(keys))
	for _, k := range keys {
		ups = append(ups, firestore.Update{Path: k, Value: fields[k]})
	}
	return ups
}
