// internal/adapters/out/docstore/menu_repository_doc.go
package docstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"canteen/internal/domain/catalog"
	"canteen/internal/domain/common"
)

// MenuRepository implements catalog.Repository over menuItems.
type MenuRepository struct {
	Store common.DocumentRepository
}

func NewMenuRepository(store common.DocumentRepository) *MenuRepository {
	return &MenuRepository{Store: store}
}

var _ catalog.Repository = (*MenuRepository)(nil)

// List returns menu items grouped by category, then by name.
func (r *MenuRepository) List(ctx context.Context) ([]catalog.Item, error) {
	if r.Store == nil {
		return nil, errors.New("menu repository: store is nil")
	}
	docs, err := r.Store.GetAll(ctx, common.CollectionMenuItems)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", common.CollectionMenuItems, err)
	}

	items := make([]catalog.Item, 0, len(docs))
	for _, d := range docs {
		items = append(items, docToItem(d))
	}

	rank := map[catalog.Category]int{}
	for i, c := range catalog.AllCategories() {
		rank[c] = i
	}
	sort.SliceStable(items, func(i, j int) bool {
		ri, iok := rank[items[i].Category]
		rj, jok := rank[items[j].Category]
		if iok != jok {
			return iok
		}
		if ri != rj {
			return ri < rj
		}
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
	return items, nil
}

// GetByID scans the collection; the port has no single-document read.
func (r *MenuRepository) GetByID(ctx context.Context, id string) (catalog.Item, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return catalog.Item{}, catalog.ErrNotFound
	}
	items, err := r.List(ctx)
	if err != nil {
		return catalog.Item{}, err
	}
	for _, it := range items {
		if it.ID == id {
			return it, nil
		}
	}
	return catalog.Item{}, catalog.ErrNotFound
}

// Save writes one menu item. Only the seed command calls it.
func (r *MenuRepository) Save(ctx context.Context, it catalog.Item) error {
	if r.Store == nil {
		return errors.New("menu repository: store is nil")
	}
	if err := it.Validate(); err != nil {
		return err
	}
	if err := r.Store.Set(ctx, common.CollectionMenuItems, it.ID, MenuItemDocument(it)); err != nil {
		return fmt.Errorf("set %s/%s: %w", common.CollectionMenuItems, it.ID, err)
	}
	return nil
}

// MenuItemDocument is the stored shape of a menu item.
func MenuItemDocument(it catalog.Item) map[string]any {
	return itemToDoc(it)
}
