// internal/adapters/out/docstore/stock_repository_doc.go
package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"canteen/internal/domain/catalog"
	"canteen/internal/domain/common"
	"canteen/internal/domain/inventory"
)

// StockRepository implements inventory.Repository over the availableItems
// collection of any document store.
type StockRepository struct {
	Store common.DocumentRepository
}

func NewStockRepository(store common.DocumentRepository) *StockRepository {
	return &StockRepository{Store: store}
}

// Compile-time check
var _ inventory.Repository = (*StockRepository)(nil)

func (r *StockRepository) GetAll(ctx context.Context) (inventory.Ledger, error) {
	if r.Store == nil {
		return nil, errors.New("stock repository: store is nil")
	}
	docs, err := r.Store.GetAll(ctx, common.CollectionAvailableItems)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", common.CollectionAvailableItems, err)
	}

	records := make([]inventory.StockRecord, 0, len(docs))
	for _, d := range docs {
		records = append(records, docToStockRecord(d))
	}
	return inventory.NewLedger(records), nil
}

func (r *StockRepository) Save(ctx context.Context, rec inventory.StockRecord) error {
	if r.Store == nil {
		return errors.New("stock repository: store is nil")
	}
	id := strings.TrimSpace(rec.ID)
	if id == "" {
		return inventory.ErrInvalidRecord
	}
	if err := r.Store.Set(ctx, common.CollectionAvailableItems, id, stockRecordToDoc(rec)); err != nil {
		return fmt.Errorf("set %s/%s: %w", common.CollectionAvailableItems, id, err)
	}
	return nil
}

func (r *StockRepository) Delete(ctx context.Context, id string) error {
	if r.Store == nil {
		return errors.New("stock repository: store is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return inventory.ErrNotFound
	}
	if err := r.Store.Delete(ctx, common.CollectionAvailableItems, id); err != nil {
		return fmt.Errorf("delete %s/%s: %w", common.CollectionAvailableItems, id, err)
	}
	return nil
}

// =======================
// Mapping
// =======================

// docToStockRecord trusts the document id over any "id" field in the payload.
func docToStockRecord(d common.Document) inventory.StockRecord {
	return inventory.StockRecord{
		Item:     docToItem(d),
		Quantity: asInt(d.Data["quantity"]),
	}
}

func stockRecordToDoc(rec inventory.StockRecord) map[string]any {
	m := itemToDoc(rec.Item)
	m["id"] = strings.TrimSpace(rec.ID)
	m["quantity"] = rec.Quantity
	return m
}

func docToItem(d common.Document) catalog.Item {
	return catalog.Item{
		ID:       d.ID,
		Name:     strings.TrimSpace(asString(d.Data["name"])),
		Price:    asDecimal(d.Data["price"]),
		Image:    strings.TrimSpace(asString(d.Data["image"])),
		Category: catalog.Category(strings.TrimSpace(asString(d.Data["category"]))),
	}
}

func itemToDoc(it catalog.Item) map[string]any {
	return map[string]any{
		"name":     it.Name,
		"price":    moneyValue(it.Price),
		"image":    it.Image,
		"category": string(it.Category),
	}
}
