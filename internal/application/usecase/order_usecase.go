// internal/application/usecase/order_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	orderdom "canteen/internal/domain/order"
)

// OrderUsecase backs the order console. It keeps the last list read from the
// store; status and priority changes are written first and applied to that
// list only when the write succeeds.
type OrderUsecase struct {
	repo orderdom.Repository
	deps Deps

	mu       sync.Mutex
	orders   []orderdom.Order
	loaded   bool
	loadedAt time.Time
}

func NewOrderUsecase(repo orderdom.Repository, deps Deps) *OrderUsecase {
	return &OrderUsecase{repo: repo, deps: deps.normalize("order_uc")}
}

// ============================================================
// Queries
// ============================================================

// Refresh re-reads every order. On failure the previous list is kept.
func (uc *OrderUsecase) Refresh(ctx context.Context) ([]orderdom.Order, error) {
	if uc == nil || uc.repo == nil {
		return nil, errors.New("order usecase/repo is nil")
	}
	orders, err := uc.repo.GetAll(ctx)
	if err != nil {
		uc.deps.failure(ctx, "Failed to fetch orders", err, nil)
		return nil, fmt.Errorf("load orders: %w", err)
	}

	uc.mu.Lock()
	uc.orders = orders
	uc.loaded = true
	uc.loadedAt = uc.deps.Clock.Now()
	uc.mu.Unlock()

	uc.deps.Logger.WithField("orders", len(orders)).Debug("orders refreshed")
	if n := mismatchedTotals(orders); n > 0 {
		uc.deps.Logger.WithField("orders", n).Warn("order totals differ from their items")
	}
	return copyOrders(orders), nil
}

// Orders returns the cached list, loading it on first use.
func (uc *OrderUsecase) Orders(ctx context.Context) ([]orderdom.Order, error) {
	uc.mu.Lock()
	if uc.loaded {
		out := copyOrders(uc.orders)
		uc.mu.Unlock()
		return out, nil
	}
	uc.mu.Unlock()
	return uc.Refresh(ctx)
}

// LoadedAt is when the cache was last filled; zero before the first load.
func (uc *OrderUsecase) LoadedAt() time.Time {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.loadedAt
}

// View is the console list: orders matching spec, ranked.
func (uc *OrderUsecase) View(ctx context.Context, spec orderdom.FilterSpec) ([]orderdom.Order, error) {
	orders, err := uc.Orders(ctx)
	if err != nil {
		return nil, err
	}
	return orderdom.View(orders, spec), nil
}

// Report summarizes the orders matching spec.
func (uc *OrderUsecase) Report(ctx context.Context, spec orderdom.FilterSpec) (orderdom.Summary, error) {
	orders, err := uc.Orders(ctx)
	if err != nil {
		return orderdom.Summary{}, err
	}
	return orderdom.Summarize(orderdom.Filter(orders, spec)), nil
}

// ============================================================
// Commands
// ============================================================

// UpdateStatus writes the new status, then applies it to the cached list.
// Any status may replace any other.
func (uc *OrderUsecase) UpdateStatus(ctx context.Context, id string, status orderdom.Status) (orderdom.Order, error) {
	if uc == nil || uc.repo == nil {
		return orderdom.Order{}, errors.New("order usecase/repo is nil")
	}
	if !status.Valid() {
		return orderdom.Order{}, orderdom.ErrInvalidStatus
	}
	id = strings.TrimSpace(id)
	ctx, cancel := detach(ctx)
	defer cancel()
	if _, err := uc.Orders(ctx); err != nil {
		return orderdom.Order{}, err
	}

	fields := map[string]any{"id": id, "status": string(status)}
	if err := uc.repo.UpdateStatus(ctx, id, status); err != nil {
		uc.deps.Metrics.OrderUpdate("status", false)
		if !errors.Is(err, orderdom.ErrNotFound) {
			uc.deps.failure(ctx, "Failed to update order", err, fields)
		}
		return orderdom.Order{}, err
	}
	uc.deps.Metrics.OrderUpdate("status", true)

	uc.mu.Lock()
	next, err := orderdom.UpdateStatus(uc.orders, id, status)
	if err == nil {
		uc.orders = next
	}
	o, _ := findOrder(uc.orders, id)
	uc.mu.Unlock()

	if err != nil {
		// written to the store but missing locally: the cache is stale
		if _, rerr := uc.Refresh(ctx); rerr == nil {
			uc.mu.Lock()
			o, _ = findOrder(uc.orders, id)
			uc.mu.Unlock()
		}
	}

	uc.deps.success(ctx, "Order marked as "+string(status), fields)
	return o, nil
}

// SetHighPriority gives the order a priority above every cached order.
// Two consoles boosting from the same snapshot can assign equal values.
func (uc *OrderUsecase) SetHighPriority(ctx context.Context, id string) (orderdom.Order, error) {
	if uc == nil || uc.repo == nil {
		return orderdom.Order{}, errors.New("order usecase/repo is nil")
	}
	id = strings.TrimSpace(id)
	ctx, cancel := detach(ctx)
	defer cancel()
	if _, err := uc.Orders(ctx); err != nil {
		return orderdom.Order{}, err
	}

	uc.mu.Lock()
	_, p, err := orderdom.SetHighPriority(uc.orders, id)
	uc.mu.Unlock()
	if err != nil {
		return orderdom.Order{}, err
	}

	fields := map[string]any{"id": id, "priority": p}
	if err := uc.repo.UpdatePriority(ctx, id, p); err != nil {
		uc.deps.Metrics.OrderUpdate("priority", false)
		if !errors.Is(err, orderdom.ErrNotFound) {
			uc.deps.failure(ctx, "Failed to update priority", err, fields)
		}
		return orderdom.Order{}, err
	}
	uc.deps.Metrics.OrderUpdate("priority", true)

	uc.mu.Lock()
	var o orderdom.Order
	if i := indexOrder(uc.orders, id); i >= 0 {
		next := copyOrders(uc.orders)
		next[i].Priority = p
		uc.orders = next
		o = next[i]
	}
	uc.mu.Unlock()

	uc.deps.success(ctx, "Order priority increased", fields)
	return o, nil
}

// ----------------------------
// Helpers
// ----------------------------

func indexOrder(orders []orderdom.Order, id string) int {
	for i := range orders {
		if orders[i].ID == id {
			return i
		}
	}
	return -1
}

func findOrder(orders []orderdom.Order, id string) (orderdom.Order, bool) {
	if i := indexOrder(orders, id); i >= 0 {
		return orders[i], true
	}
	return orderdom.Order{}, false
}

// mismatchedTotals counts orders with items whose stored total disagrees
// with the items. The stored total is still what reports use.
func mismatchedTotals(orders []orderdom.Order) int {
	n := 0
	for _, o := range orders {
		if len(o.Items) > 0 && !o.TotalMatchesItems() {
			n++
		}
	}
	return n
}

func copyOrders(src []orderdom.Order) []orderdom.Order {
	out := make([]orderdom.Order, len(src))
	copy(out, src)
	return out
}
