package main

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"canteen/internal/adapters/out/docstore"
	"canteen/internal/domain/catalog"
	orderdom "canteen/internal/domain/order"
	"canteen/internal/platform/di"
)

func TestMenuDocumentsStableIDs(t *testing.T) {
	a, err := menuDocuments()
	if err != nil {
		t.Fatalf("menuDocuments: %v", err)
	}
	b, _ := menuDocuments()
	if len(a) != len(catalog.DefaultMenu()) {
		t.Fatalf("docs = %d", len(a))
	}
	seen := map[string]bool{}
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("id changed between runs: %s vs %s", a[i].ID, b[i].ID)
		}
		if seen[a[i].ID] {
			t.Fatalf("duplicate id %s", a[i].ID)
		}
		seen[a[i].ID] = true
	}
}

func TestSampleOrders(t *testing.T) {
	menu := []catalog.Item{
		{ID: "1", Name: "poori", Price: decimal.NewFromInt(18), Category: catalog.CategoryMorningFood},
		{ID: "2", Name: "tea", Price: decimal.NewFromInt(10), Category: catalog.CategoryDrink},
	}
	existing := []orderdom.Order{{ID: "x", QueuePosition: 7}}
	now := time.Date(2026, 5, 1, 15, 0, 0, 0, time.UTC)

	orders, err := sampleOrders(menu, 5, existing, now, 42)
	if err != nil {
		t.Fatalf("sampleOrders: %v", err)
	}
	if len(orders) != 5 {
		t.Fatalf("len = %d", len(orders))
	}
	for i, o := range orders {
		if o.QueuePosition != 8+i {
			t.Fatalf("queue position %d = %d", i, o.QueuePosition)
		}
		if !o.TotalMatchesItems() || len(o.Items) == 0 {
			t.Fatalf("order %d total %s items %v", i, o.Total, o.Items)
		}
		if _, ok := o.Hour(); !ok || !o.Status.Valid() {
			t.Fatalf("order %d time=%q status=%q", i, o.Time, o.Status)
		}
	}

	again, _ := sampleOrders(menu, 5, existing, now, 42)
	if again[0].Time != orders[0].Time || again[0].RollNumber != orders[0].RollNumber {
		t.Fatalf("same seed should give the same orders")
	}

	if _, err := sampleOrders(nil, 1, nil, now, 1); err == nil {
		t.Fatalf("empty menu should fail")
	}
}

func TestWriteFallsBackToSet(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	store := docstore.NewMemoryStore()
	env := &seedEnv{infra: &di.Infra{Store: store}, log: log}

	docs, _ := menuDocuments()
	if err := env.write(context.Background(), menuCollection, docs); err != nil {
		t.Fatalf("write: %v", err)
	}
	items, err := docstore.NewMenuRepository(store).List(context.Background())
	if err != nil || len(items) != len(docs) {
		t.Fatalf("menu = %d, %v", len(items), err)
	}

	dry := &seedEnv{infra: &di.Infra{Store: docstore.NewMemoryStore()}, log: log, dryRun: true}
	if err := dry.write(context.Background(), menuCollection, docs); err != nil {
		t.Fatalf("dry-run: %v", err)
	}
	if all, _ := dry.infra.Store.GetAll(context.Background(), menuCollection); len(all) != 0 {
		t.Fatalf("dry-run wrote %d docs", len(all))
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"menu", "orders"} {
		if c, _, err := root.Find([]string{name}); err != nil || c.Name() != name {
			t.Fatalf("missing %s: %v", name, err)
		}
	}
}
