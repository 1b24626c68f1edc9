// internal/adapters/out/docstore/memory_store.go
package docstore

import (
	"context"
	"sort"
	"sync"

	"canteen/internal/domain/common"
)

// Op names passed to MemoryStore.FailWith.
const (
	OpGetAll = "getAll"
	OpSet    = "set"
	OpUpdate = "update"
	OpDelete = "delete"
)

// MemoryStore is an in-process common.DocumentRepository used by the
// "memory" driver and by tests.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string]map[string]map[string]any

	// FailWith, when set, is consulted before every operation; a non-nil
	// error aborts it.
	FailWith func(op, collection, id string) error
}

var _ common.DocumentRepository = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: map[string]map[string]map[string]any{}}
}

func (s *MemoryStore) fail(op, collection, id string) error {
	if s.FailWith == nil {
		return nil
	}
	return s.FailWith(op, collection, id)
}

// GetAll returns documents sorted by id.
func (s *MemoryStore) GetAll(ctx context.Context, collection string) ([]common.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.fail(OpGetAll, collection, ""); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col := s.docs[collection]
	out := make([]common.Document, 0, len(col))
	for id, data := range col {
		out = append(out, common.Document{ID: id, Data: common.CloneData(data)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) Set(ctx context.Context, collection, id string, data map[string]any) error {
	c, i, err := common.CheckKey(collection, id)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.fail(OpSet, c, i); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.docs[c]
	if !ok {
		col = map[string]map[string]any{}
		s.docs[c] = col
	}
	col[i] = common.CloneData(data)
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	c, i, err := common.CheckKey(collection, id)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.fail(OpUpdate, c, i); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[c][i]
	if !ok {
		return common.ErrNotFound
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	c, i, err := common.CheckKey(collection, id)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.fail(OpDelete, c, i); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs[c], i)
	return nil
}

// Get returns a copy of one document. It is not part of the port; tests and
// the seed command use it to inspect state.
func (s *MemoryStore) Get(collection, id string) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[collection][id]
	if !ok {
		return nil, false
	}
	return common.CloneData(doc), true
}
