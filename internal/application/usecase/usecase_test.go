package usecase

import (
	"context"
	"errors"
	"io"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"canteen/internal/adapters/out/docstore"
	"canteen/internal/domain/catalog"
	"canteen/internal/domain/common"
	invdom "canteen/internal/domain/inventory"
	orderdom "canteen/internal/domain/order"
)

// ----------------------------
// Fakes
// ----------------------------

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type recordingNotifier struct {
	mu   sync.Mutex
	sent []Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

func (r *recordingNotifier) last() Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sent) == 0 {
		return Notification{}
	}
	return r.sent[len(r.sent)-1]
}

func (r *recordingNotifier) count(level Level) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.sent {
		if s.Level == level {
			n++
		}
	}
	return n
}

type countingMetrics struct {
	written, failed int
	orderOK         map[string]int
}

func (m *countingMetrics) CartOperation(string) {}
func (m *countingMetrics) StockWrites(w, f int) { m.written += w; m.failed += f }
func (m *countingMetrics) OrderUpdate(op string, ok bool) {
	if m.orderOK == nil {
		m.orderOK = map[string]int{}
	}
	if ok {
		m.orderOK[op]++
	}
}

var testNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store     *docstore.MemoryStore
	notifier  *recordingNotifier
	metrics   *countingMetrics
	inventory *InventoryUsecase
	cart      *CartUsecase
	orders    *OrderUsecase
	menu      *MenuUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	f := &fixture{
		store:    docstore.NewMemoryStore(),
		notifier: &recordingNotifier{},
		metrics:  &countingMetrics{},
	}
	deps := Deps{Notifier: f.notifier, Metrics: f.metrics, Clock: fixedClock{testNow}, Logger: logger}

	menuRepo := docstore.NewMenuRepository(f.store)
	f.inventory = NewInventoryUsecase(docstore.NewStockRepository(f.store), nil, deps)
	f.cart = NewCartUsecase(menuRepo, f.inventory, deps)
	f.orders = NewOrderUsecase(docstore.NewOrderRepository(f.store), deps)
	f.menu = NewMenuUsecase(menuRepo, nil, deps)
	return f
}

func (f *fixture) seedMenu(t *testing.T, items ...catalog.Item) {
	t.Helper()
	repo := docstore.NewMenuRepository(f.store)
	for _, it := range items {
		if err := repo.Save(context.Background(), it); err != nil {
			t.Fatalf("seed menu: %v", err)
		}
	}
}

func (f *fixture) seedStock(t *testing.T, recs ...invdom.StockRecord) {
	t.Helper()
	repo := docstore.NewStockRepository(f.store)
	for _, r := range recs {
		if err := repo.Save(context.Background(), r); err != nil {
			t.Fatalf("seed stock: %v", err)
		}
	}
}

func (f *fixture) stock(t *testing.T) invdom.Ledger {
	t.Helper()
	l, err := docstore.NewStockRepository(f.store).GetAll(context.Background())
	if err != nil {
		t.Fatalf("read stock: %v", err)
	}
	return l
}

func item(id, name string, price int64, cat catalog.Category) catalog.Item {
	return catalog.Item{ID: id, Name: name, Price: decimal.NewFromInt(price), Image: id + ".jpg", Category: cat}
}

// ----------------------------
// Cart
// ----------------------------

func TestCartAddFromMenu(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedMenu(t, item("tea", "Tea", 10, catalog.CategoryDrink))

	if _, err := f.cart.Add(ctx, "tea"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	snap, err := f.cart.Add(ctx, " tea ")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(snap.Lines) != 1 || snap.Lines[0].Quantity != 2 || snap.TotalItems != 2 {
		t.Fatalf("snapshot = %+v", snap)
	}
	if !snap.TotalPrice.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("total = %s", snap.TotalPrice)
	}
	if n := f.notifier.last(); n.Level != LevelSuccess || n.Message != "Tea added to cart!" || !n.At.Equal(testNow) {
		t.Fatalf("notification = %+v", n)
	}

	if _, err := f.cart.Add(ctx, "missing"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("unknown item: %v", err)
	}
	if f.notifier.count(LevelError) != 0 {
		t.Fatalf("unknown item must not raise an error notification")
	}
}

func TestCartQuantityAndCheckout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _ = f.cart.AddItem(ctx, item("a", "A", 5, catalog.CategorySnacks))
	_, _ = f.cart.AddItem(ctx, item("b", "B", 7, catalog.CategorySnacks))

	snap := f.cart.SetQuantity(ctx, "a", 4)
	if snap.TotalItems != 5 || !snap.TotalPrice.Equal(decimal.NewFromInt(27)) {
		t.Fatalf("after set: %+v", snap)
	}
	snap = f.cart.SetQuantity(ctx, "b", 0)
	if len(snap.Lines) != 1 || snap.Lines[0].ID != "a" {
		t.Fatalf("zero quantity must remove: %+v", snap)
	}

	placed, err := f.cart.Checkout(ctx)
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if placed.TotalItems != 4 || f.cart.Snapshot().TotalItems != 0 {
		t.Fatalf("checkout = %+v, remaining %+v", placed, f.cart.Snapshot())
	}
	if _, err := f.cart.Checkout(ctx); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("empty checkout: %v", err)
	}
	if docs, _ := f.store.GetAll(ctx, common.CollectionAvailableItems); len(docs) != 0 {
		t.Fatalf("checkout must not touch stock")
	}
}

// ----------------------------
// Reconciliation
// ----------------------------

func TestCommitToStockMergesAndEmptiesCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	x := item("x", "Samosa", 12, catalog.CategorySnacks)
	f.seedStock(t, invdom.StockRecord{Item: x, Quantity: 2})

	_, _ = f.cart.AddItem(ctx, x)
	f.cart.SetQuantity(ctx, "x", 3)
	_, _ = f.cart.AddItem(ctx, item("y", "Juice", 20, catalog.CategoryDrink))

	res, err := f.cart.CommitToStock(ctx)
	if err != nil {
		t.Fatalf("CommitToStock: %v", err)
	}
	if !reflect.DeepEqual(res.Written, []string{"x", "y"}) || res.Failed != "" {
		t.Fatalf("result = %+v", res)
	}

	ledger := f.stock(t)
	if ledger["x"].Quantity != 5 || ledger["y"].Quantity != 1 {
		t.Fatalf("ledger = %+v", ledger)
	}
	if f.cart.Snapshot().TotalItems != 0 {
		t.Fatalf("cart not emptied")
	}
	if f.metrics.written != 2 || f.metrics.failed != 0 {
		t.Fatalf("metrics = %+v", f.metrics)
	}
	if n := f.notifier.last(); n.Level != LevelSuccess {
		t.Fatalf("notification = %+v", n)
	}
}

func TestCommitToStockStopsAtFirstFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		_, _ = f.cart.AddItem(ctx, item(id, id, 1, catalog.CategorySnacks))
	}
	boom := errors.New("unavailable")
	f.store.FailWith = func(op, collection, id string) error {
		if op == docstore.OpSet && id == "b" {
			return boom
		}
		return nil
	}

	res, err := f.cart.CommitToStock(ctx)
	var perr *invdom.PartialCommitError
	if !errors.As(err, &perr) || !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	want := invdom.CommitResult{Written: []string{"a"}, Failed: "b", Pending: []string{"c"}}
	if !reflect.DeepEqual(res, want) || !reflect.DeepEqual(perr.Result, want) {
		t.Fatalf("result = %+v", res)
	}

	ledger := f.stock(t)
	if _, ok := ledger["a"]; !ok {
		t.Fatalf("written record must stay")
	}
	if _, ok := ledger["b"]; ok {
		t.Fatalf("failed record present")
	}
	if _, ok := ledger["c"]; ok {
		t.Fatalf("pending record present")
	}
	if f.cart.Snapshot().TotalItems != 3 {
		t.Fatalf("cart must be kept on failure")
	}
	if f.notifier.last().Level != LevelError || f.metrics.failed != 1 || f.metrics.written != 1 {
		t.Fatalf("failure not reported: %+v %+v", f.notifier.last(), f.metrics)
	}
}

func TestCommitCartReadFailureWritesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _ = f.cart.AddItem(ctx, item("a", "A", 1, catalog.CategorySnacks))

	f.store.FailWith = func(op, _, _ string) error {
		if op == docstore.OpGetAll {
			return errors.New("offline")
		}
		return nil
	}
	res, err := f.cart.CommitToStock(ctx)
	if err == nil || !reflect.DeepEqual(res.Pending, []string{"a"}) || len(res.Written) != 0 {
		t.Fatalf("res = %+v err = %v", res, err)
	}
	f.store.FailWith = nil
	if len(f.stock(t)) != 0 {
		t.Fatalf("nothing must be written")
	}
}

func TestCommitEmptyCartIsNoop(t *testing.T) {
	f := newFixture(t)
	res, err := f.cart.CommitToStock(context.Background())
	if err != nil || len(res.Written) != 0 {
		t.Fatalf("res = %+v err = %v", res, err)
	}
	if len(f.notifier.sent) != 0 {
		t.Fatalf("empty commit must be silent")
	}
}

type fakeLocker struct {
	busy     bool
	locked   []string
	released int
}

func (l *fakeLocker) Lock(_ context.Context, key string) (func(context.Context) error, error) {
	if l.busy {
		return nil, ErrCommitBusy
	}
	l.locked = append(l.locked, key)
	return func(context.Context) error {
		l.released++
		return nil
	}, nil
}

func TestCommitHoldsLockForWholeCommit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	lock := &fakeLocker{}
	f.inventory.SetCommitLocker(lock)

	_, _ = f.cart.AddItem(ctx, item("a", "A", 1, catalog.CategorySnacks))
	if _, err := f.cart.CommitToStock(ctx); err != nil {
		t.Fatalf("CommitToStock: %v", err)
	}
	if len(lock.locked) != 1 || lock.locked[0] != commitLockKey || lock.released != 1 {
		t.Fatalf("lock = %+v", lock)
	}
}

func TestCommitBusyLockWritesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.inventory.SetCommitLocker(&fakeLocker{busy: true})

	_, _ = f.cart.AddItem(ctx, item("a", "A", 1, catalog.CategorySnacks))
	res, err := f.cart.CommitToStock(ctx)
	if !errors.Is(err, ErrCommitBusy) || !reflect.DeepEqual(res.Pending, []string{"a"}) {
		t.Fatalf("res = %+v err = %v", res, err)
	}
	if len(f.stock(t)) != 0 || f.cart.Snapshot().TotalItems != 1 {
		t.Fatalf("busy commit must not touch stock or cart")
	}
}

func TestCommitFinishesAfterCallerCancels(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, id := range []string{"a", "b", "c"} {
		_, _ = f.cart.AddItem(ctx, item(id, id, 1, catalog.CategorySnacks))
	}
	// the caller goes away while the first record is being written
	f.store.FailWith = func(op, _, id string) error {
		if op == docstore.OpSet && id == "a" {
			cancel()
		}
		return nil
	}

	res, err := f.cart.CommitToStock(ctx)
	if err != nil || !reflect.DeepEqual(res.Written, []string{"a", "b", "c"}) {
		t.Fatalf("res = %+v err = %v", res, err)
	}
	f.store.FailWith = nil
	ledger := f.stock(t)
	for _, id := range []string{"a", "b", "c"} {
		if ledger[id].Quantity != 1 {
			t.Fatalf("ledger = %+v", ledger)
		}
	}
	if f.cart.Snapshot().TotalItems != 0 {
		t.Fatalf("cart not reduced after commit")
	}
}

func TestOverlappingCommitsReconcileOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	x := item("x", "Samosa", 12, catalog.CategorySnacks)
	_, _ = f.cart.AddItem(ctx, x)
	f.cart.SetQuantity(ctx, "x", 2)

	reading := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	f.store.FailWith = func(op, _, _ string) error {
		if op == docstore.OpGetAll {
			once.Do(func() {
				close(reading)
				<-release
			})
		}
		return nil
	}

	done := make(chan error, 1)
	go func() {
		_, err := f.cart.CommitToStock(ctx)
		done <- err
	}()

	<-reading
	if _, err := f.cart.CommitToStock(ctx); !errors.Is(err, ErrCommitBusy) {
		t.Fatalf("overlapping commit: %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first commit: %v", err)
	}
	f.store.FailWith = nil

	if got := f.stock(t)["x"].Quantity; got != 2 {
		t.Fatalf("ledger x = %d, want 2", got)
	}
	if f.cart.Snapshot().TotalItems != 0 {
		t.Fatalf("cart not emptied")
	}

	_, _ = f.cart.AddItem(ctx, x)
	if _, err := f.cart.CommitToStock(ctx); err != nil {
		t.Fatalf("next commit: %v", err)
	}
	if got := f.stock(t)["x"].Quantity; got != 3 {
		t.Fatalf("ledger x = %d, want 3", got)
	}
}

// ----------------------------
// Inventory
// ----------------------------

func TestInventoryListUpsertDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedStock(t,
		invdom.StockRecord{Item: item("1", "Masala Tea", 10, catalog.CategoryDrink), Quantity: 3},
		invdom.StockRecord{Item: item("2", "Dairy Milk", 20, catalog.CategoryChocolate), Quantity: 1},
		invdom.StockRecord{Item: item("3", "Lemon Tea", 12, catalog.CategoryDrink), Quantity: 0},
	)

	view, err := f.inventory.List(ctx, invdom.Query{Search: "tea", Category: catalog.CategoryDrink})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if view.Total != 3 || len(view.Records) != 2 || view.Records[0].ID != "3" {
		t.Fatalf("view = %+v", view)
	}
	if view.Records[0].ImageURL != "3.jpg" {
		t.Fatalf("image url = %q", view.Records[0].ImageURL)
	}
	counts := map[catalog.Category]int{}
	for _, c := range view.Counts {
		counts[c.Category] = c.Count
	}
	if counts[catalog.CategoryDrink] != 2 || counts[catalog.CategoryChocolate] != 1 || counts[catalog.CategoryLunch] != 0 {
		t.Fatalf("counts = %+v", view.Counts)
	}

	rec := invdom.StockRecord{Item: item("2", "Dairy Milk Silk", 40, catalog.CategoryChocolate), Quantity: 9}
	if _, err := f.inventory.Upsert(ctx, rec); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if got := f.stock(t)["2"]; got.Quantity != 9 || got.Name != "Dairy Milk Silk" {
		t.Fatalf("upserted = %+v", got)
	}

	bad := invdom.StockRecord{Item: item("4", "", 1, catalog.CategoryDrink), Quantity: -1}
	if _, err := f.inventory.Upsert(ctx, bad); !errors.Is(err, invdom.ErrInvalidRecord) {
		t.Fatalf("invalid record: %v", err)
	}

	if err := f.inventory.Delete(ctx, "1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := f.stock(t)["1"]; ok {
		t.Fatalf("record not deleted")
	}
}

// ----------------------------
// Orders
// ----------------------------

func seedOrders(t *testing.T, f *fixture) {
	t.Helper()
	repo := docstore.NewOrderRepository(f.store)
	orders := []orderdom.Order{
		{ID: "A", Status: orderdom.StatusPending, Priority: 0, QueuePosition: 5, Time: "07:15", Total: decimal.NewFromInt(10)},
		{ID: "B", Status: orderdom.StatusCompleted, Priority: 4, QueuePosition: 1, Time: "13:00", Total: decimal.NewFromInt(20)},
		{ID: "C", Status: orderdom.StatusPending, Priority: 3, QueuePosition: 2, Time: "23:50", Total: decimal.NewFromInt(30)},
	}
	for _, o := range orders {
		if err := repo.Create(context.Background(), o); err != nil {
			t.Fatalf("seed orders: %v", err)
		}
	}
}

func orderIDs(orders []orderdom.Order) []string {
	out := []string{}
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

func TestOrderViewAndReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedOrders(t, f)

	got, err := f.orders.View(ctx, orderdom.FilterSpec{})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if !reflect.DeepEqual(orderIDs(got), []string{"C", "A", "B"}) {
		t.Fatalf("view = %v", orderIDs(got))
	}
	if !f.orders.LoadedAt().Equal(testNow) {
		t.Fatalf("loadedAt = %v", f.orders.LoadedAt())
	}

	morning := orderdom.SessionMorning
	got, _ = f.orders.View(ctx, orderdom.FilterSpec{Session: &morning})
	if !reflect.DeepEqual(orderIDs(got), []string{"A"}) {
		t.Fatalf("morning = %v", orderIDs(got))
	}

	sum, err := f.orders.Report(ctx, orderdom.FilterSpec{})
	if err != nil || sum.Orders != 3 || !sum.Revenue.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("report = %+v, %v", sum, err)
	}
}

func TestOrderSetHighPriority(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedOrders(t, f)

	o, err := f.orders.SetHighPriority(ctx, "A")
	if err != nil {
		t.Fatalf("SetHighPriority: %v", err)
	}
	if o.Priority != 5 {
		t.Fatalf("priority = %d, want 5", o.Priority)
	}
	doc, _ := f.store.Get(common.CollectionOrders, "A")
	if doc["priority"] != 5 {
		t.Fatalf("stored priority = %v", doc["priority"])
	}
	cached, _ := f.orders.Orders(ctx)
	for _, c := range cached {
		if c.ID == "B" && c.Priority != 4 || c.ID == "C" && c.Priority != 3 {
			t.Fatalf("other order changed: %+v", c)
		}
	}
	if f.metrics.orderOK["priority"] != 1 {
		t.Fatalf("metrics = %+v", f.metrics.orderOK)
	}

	if _, err := f.orders.SetHighPriority(ctx, "nope"); !errors.Is(err, orderdom.ErrNotFound) {
		t.Fatalf("unknown order: %v", err)
	}
}

func TestOrderWriteFailureKeepsCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedOrders(t, f)
	if _, err := f.orders.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	f.store.FailWith = func(op, _, _ string) error {
		if op == docstore.OpUpdate || op == docstore.OpGetAll {
			return errors.New("offline")
		}
		return nil
	}

	if _, err := f.orders.SetHighPriority(ctx, "A"); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := f.orders.UpdateStatus(ctx, "A", orderdom.StatusPaid); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := f.orders.Refresh(ctx); err == nil {
		t.Fatalf("expected refresh error")
	}

	cached, _ := f.orders.Orders(ctx)
	for _, c := range cached {
		if c.ID == "A" && (c.Priority != 0 || c.Status != orderdom.StatusPending) {
			t.Fatalf("cache changed after failed write: %+v", c)
		}
	}
	if len(cached) != 3 {
		t.Fatalf("failed refresh must keep the previous list")
	}
	if f.notifier.count(LevelError) != 3 {
		t.Fatalf("error notifications = %d", f.notifier.count(LevelError))
	}
}

func TestOrderUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedOrders(t, f)

	o, err := f.orders.UpdateStatus(ctx, "C", orderdom.StatusPaid)
	if err != nil || o.Status != orderdom.StatusPaid {
		t.Fatalf("UpdateStatus = %+v, %v", o, err)
	}
	if n := f.notifier.last(); n.Message != "Order marked as paid" {
		t.Fatalf("notification = %+v", n)
	}
	got, _ := f.orders.View(ctx, orderdom.FilterSpec{})
	if !reflect.DeepEqual(orderIDs(got), []string{"A", "B", "C"}) {
		t.Fatalf("view after status = %v", orderIDs(got))
	}
	if _, err := f.orders.UpdateStatus(ctx, "C", "void"); !errors.Is(err, orderdom.ErrInvalidStatus) {
		t.Fatalf("invalid status: %v", err)
	}
}

func TestWritesIgnoreCallerCancellation(t *testing.T) {
	f := newFixture(t)
	seedOrders(t, f)
	f.seedStock(t, invdom.StockRecord{Item: item("1", "Masala Tea", 10, catalog.CategoryDrink), Quantity: 3})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := f.orders.UpdateStatus(ctx, "A", orderdom.StatusPaid); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if _, err := f.orders.SetHighPriority(ctx, "A"); err != nil {
		t.Fatalf("SetHighPriority: %v", err)
	}
	stored, err := docstore.NewOrderRepository(f.store).GetAll(context.Background())
	if err != nil {
		t.Fatalf("read orders: %v", err)
	}
	for _, o := range stored {
		if o.ID == "A" && (o.Status != orderdom.StatusPaid || o.Priority != 5) {
			t.Fatalf("stored A = %+v", o)
		}
	}

	rec := invdom.StockRecord{Item: item("2", "Dairy Milk", 20, catalog.CategoryChocolate), Quantity: 4}
	if _, err := f.inventory.Upsert(ctx, rec); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := f.inventory.Delete(ctx, "1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	ledger := f.stock(t)
	if _, ok := ledger["1"]; ok || ledger["2"].Quantity != 4 {
		t.Fatalf("ledger = %+v", ledger)
	}
}

func TestRefreshWarnsOnMismatchedTotals(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	store := docstore.NewMemoryStore()
	repo := docstore.NewOrderRepository(store)
	ctx := context.Background()

	for _, o := range []orderdom.Order{
		{ID: "ok", Items: []orderdom.Item{{Name: "Tea", Price: decimal.NewFromInt(10), Quantity: 2}}, Total: decimal.NewFromInt(20)},
		{ID: "off", Items: []orderdom.Item{{Name: "Tea", Price: decimal.NewFromInt(10), Quantity: 2}}, Total: decimal.NewFromInt(25)},
		{ID: "bare", Total: decimal.NewFromInt(5)},
	} {
		if err := repo.Create(ctx, o); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	if _, err := NewOrderUsecase(repo, Deps{Logger: logger}).Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Message == "order totals differ from their items" {
			warned = e.Data["orders"] == 1
		}
	}
	if !warned {
		t.Fatalf("missing mismatch warning: %+v", hook.AllEntries())
	}
}

func TestMenuListByCategory(t *testing.T) {
	f := newFixture(t)
	f.seedMenu(t, item("a", "Tea", 10, catalog.CategoryDrink), item("b", "Meals", 70, catalog.CategoryLunch))

	lunch := catalog.CategoryLunch
	got, err := f.menu.List(context.Background(), &lunch)
	if err != nil || len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("menu = %+v, %v", got, err)
	}
	all, _ := f.menu.List(context.Background(), nil)
	if len(all) != 2 || all[0].Category != catalog.CategoryLunch {
		t.Fatalf("menu order = %+v", all)
	}
}

func TestNotifiersFanOut(t *testing.T) {
	a, b := &recordingNotifier{}, &recordingNotifier{}
	Notifiers{a, nil, b}.Notify(context.Background(), Notification{Level: LevelInfo, Message: "hi"})
	if len(a.sent) != 1 || len(b.sent) != 1 {
		t.Fatalf("fan-out failed")
	}
}
