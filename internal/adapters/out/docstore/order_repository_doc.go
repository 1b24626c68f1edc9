// internal/adapters/out/docstore/order_repository_doc.go
package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"canteen/internal/domain/common"
	"canteen/internal/domain/order"
)

// OrderRepository implements order.Repository over the orders collection.
type OrderRepository struct {
	Store common.DocumentRepository
}

func NewOrderRepository(store common.DocumentRepository) *OrderRepository {
	return &OrderRepository{Store: store}
}

var _ order.Repository = (*OrderRepository)(nil)

func (r *OrderRepository) GetAll(ctx context.Context) ([]order.Order, error) {
	if r.Store == nil {
		return nil, errors.New("order repository: store is nil")
	}
	docs, err := r.Store.GetAll(ctx, common.CollectionOrders)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", common.CollectionOrders, err)
	}
	out := make([]order.Order, 0, len(docs))
	for _, d := range docs {
		out = append(out, docToOrder(d))
	}
	return out, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status order.Status) error {
	if !status.Valid() {
		return order.ErrInvalidStatus
	}
	return r.update(ctx, id, map[string]any{"status": string(status)})
}

func (r *OrderRepository) UpdatePriority(ctx context.Context, id string, priority int) error {
	return r.update(ctx, id, map[string]any{"priority": priority})
}

// Create writes a new order document. Orders normally come from the ordering
// app; the seed command uses this for sample data.
func (r *OrderRepository) Create(ctx context.Context, o order.Order) error {
	if r.Store == nil {
		return errors.New("order repository: store is nil")
	}
	id := strings.TrimSpace(o.ID)
	if id == "" {
		return errors.New("order: id is required")
	}
	if err := r.Store.Set(ctx, common.CollectionOrders, id, OrderDocument(o)); err != nil {
		return fmt.Errorf("set %s/%s: %w", common.CollectionOrders, id, err)
	}
	return nil
}

func (r *OrderRepository) update(ctx context.Context, id string, fields map[string]any) error {
	if r.Store == nil {
		return errors.New("order repository: store is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return order.ErrNotFound
	}
	err := r.Store.Update(ctx, common.CollectionOrders, id, fields)
	if errors.Is(err, common.ErrNotFound) {
		return order.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", common.CollectionOrders, id, err)
	}
	return nil
}

// =======================
// Mapping
// =======================

func docToOrder(d common.Document) order.Order {
	o := order.Order{
		ID:            d.ID,
		OrderID:       strings.TrimSpace(asString(d.Data["orderId"])),
		RollNumber:    strings.TrimSpace(asString(d.Data["rollNumber"])),
		Total:         asDecimal(d.Data["total"]),
		Status:        order.Status(strings.ToLower(strings.TrimSpace(asString(d.Data["status"])))),
		Priority:      asInt(d.Data["priority"]),
		QueuePosition: asInt(d.Data["queuePosition"]),
		Time:          strings.TrimSpace(asString(d.Data["time"])),
	}
	if t, ok := asTime(d.Data["date"]); ok {
		o.Date = t
	}
	for _, raw := range asSlice(d.Data["items"]) {
		m := asMap(raw)
		if m == nil {
			continue
		}
		o.Items = append(o.Items, order.Item{
			Name:     strings.TrimSpace(asString(m["name"])),
			Price:    asDecimal(m["price"]),
			Quantity: asInt(m["quantity"]),
		})
	}
	return o
}

// OrderDocument is the stored shape of an order.
func OrderDocument(o order.Order) map[string]any {
	items := make([]any, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, map[string]any{
			"name":     it.Name,
			"price":    moneyValue(it.Price),
			"quantity": it.Quantity,
		})
	}
	return map[string]any{
		"orderId":       o.OrderID,
		"rollNumber":    o.RollNumber,
		"items":         items,
		"total":         moneyValue(o.Total),
		"status":        string(o.Status),
		"priority":      o.Priority,
		"queuePosition": o.QueuePosition,
		"date":          o.Date.UTC(),
		"time":          o.Time,
	}
}
