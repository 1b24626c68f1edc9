// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	cartdom "canteen/internal/domain/cart"
	"canteen/internal/domain/catalog"
	invdom "canteen/internal/domain/inventory"
)

var ErrCartEmpty = errors.New("cart_usecase: cart is empty")

// StockCommitter merges cart lines into the stock ledger.
// InventoryUsecase implements it.
type StockCommitter interface {
	CommitCart(ctx context.Context, lines []cartdom.Line) (invdom.CommitResult, error)
}

// CartUsecase owns the console's single cart.
//
// The mutex only keeps concurrent HTTP handlers from corrupting the slice;
// it is never held across a store call. committing admits one stock
// commit at a time.
type CartUsecase struct {
	mu         sync.Mutex
	cart       *cartdom.Cart
	committing bool

	menu  catalog.Repository
	stock StockCommitter
	deps  Deps
}

func NewCartUsecase(menu catalog.Repository, stock StockCommitter, deps Deps) *CartUsecase {
	return &CartUsecase{
		cart:  cartdom.New(),
		menu:  menu,
		stock: stock,
		deps:  deps.normalize("cart_uc"),
	}
}

func (uc *CartUsecase) Snapshot() cartdom.Snapshot {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.cart.Snapshot()
}

// Add looks the item up in the menu and adds one of it.
func (uc *CartUsecase) Add(ctx context.Context, itemID string) (cartdom.Snapshot, error) {
	if uc.menu == nil {
		return cartdom.Snapshot{}, errors.New("cart usecase: menu repository is nil")
	}
	item, err := uc.menu.GetByID(ctx, strings.TrimSpace(itemID))
	if err != nil {
		if !errors.Is(err, catalog.ErrNotFound) {
			uc.deps.failure(ctx, "Error loading menu items", err, map[string]any{"itemId": itemID})
		}
		return cartdom.Snapshot{}, err
	}
	return uc.AddItem(ctx, item)
}

// AddItem adds one of item; an item already in the cart gets quantity+1.
func (uc *CartUsecase) AddItem(ctx context.Context, item catalog.Item) (cartdom.Snapshot, error) {
	uc.mu.Lock()
	err := uc.cart.Add(item)
	snap := uc.cart.Snapshot()
	uc.mu.Unlock()

	if err != nil {
		return cartdom.Snapshot{}, err
	}
	uc.deps.Metrics.CartOperation("add")
	uc.deps.success(ctx, item.Name+" added to cart!", map[string]any{"itemId": item.ID})
	return snap, nil
}

func (uc *CartUsecase) Remove(ctx context.Context, itemID string) cartdom.Snapshot {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.cart.Remove(itemID)
	uc.deps.Metrics.CartOperation("remove")
	return uc.cart.Snapshot()
}

// SetQuantity sets an absolute quantity; below 1 removes the line.
func (uc *CartUsecase) SetQuantity(ctx context.Context, itemID string, qty int) cartdom.Snapshot {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.cart.SetQuantity(itemID, qty)
	uc.deps.Metrics.CartOperation("set_quantity")
	return uc.cart.Snapshot()
}

func (uc *CartUsecase) Clear(ctx context.Context) cartdom.Snapshot {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.cart.Clear()
	uc.deps.Metrics.CartOperation("clear")
	return uc.cart.Snapshot()
}

// Checkout empties the cart and returns what was in it. Nothing is written
// to the store.
func (uc *CartUsecase) Checkout(ctx context.Context) (cartdom.Snapshot, error) {
	uc.mu.Lock()
	if uc.cart.Len() == 0 {
		uc.mu.Unlock()
		return cartdom.Snapshot{}, ErrCartEmpty
	}
	placed := cartdom.SnapshotOf(uc.cart.ConsumeAll())
	uc.mu.Unlock()

	uc.deps.Metrics.CartOperation("checkout")
	uc.deps.success(ctx, "Order placed successfully! Thank you for your purchase.", map[string]any{
		"items": placed.TotalItems,
		"total": placed.TotalPrice.StringFixed(2),
	})
	return placed, nil
}

// CommitToStock merges the cart into the stock ledger. On full success the
// committed quantities leave the cart; lines added meanwhile stay. On
// failure the cart is left as it is. A second call while one is running
// gets ErrCommitBusy.
func (uc *CartUsecase) CommitToStock(ctx context.Context) (invdom.CommitResult, error) {
	if uc.stock == nil {
		return invdom.CommitResult{}, errors.New("cart usecase: stock committer is nil")
	}

	uc.mu.Lock()
	if uc.committing {
		uc.mu.Unlock()
		return invdom.CommitResult{}, ErrCommitBusy
	}
	uc.committing = true
	lines := uc.cart.Lines()
	uc.mu.Unlock()

	defer func() {
		uc.mu.Lock()
		uc.committing = false
		uc.mu.Unlock()
	}()

	res, err := uc.stock.CommitCart(ctx, lines)
	if err != nil {
		return res, err
	}

	uc.mu.Lock()
	for _, l := range lines {
		if cur, ok := uc.cart.Line(l.ID); ok {
			uc.cart.SetQuantity(l.ID, cur.Quantity-l.Quantity)
		}
	}
	uc.mu.Unlock()

	uc.deps.Metrics.CartOperation("commit")
	return res, nil
}
