// cmd/seed/seed.go
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"canteen/internal/adapters/out/docstore"
	"canteen/internal/domain/catalog"
	"canteen/internal/domain/common"
	orderdom "canteen/internal/domain/order"
)

const (
	menuCollection  = common.CollectionMenuItems
	orderCollection = common.CollectionOrders
)

// menuNamespace keeps menu ids stable across runs, so re-seeding overwrites
// instead of duplicating.
var menuNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("canteen/menuItems"))

func menuItemID(e catalog.MenuEntry) string {
	return uuid.NewSHA1(menuNamespace, []byte(string(e.Category)+"/"+strings.ToLower(e.Name))).String()
}

func menuDocuments() ([]common.Document, error) {
	entries := catalog.DefaultMenu()
	docs := make([]common.Document, 0, len(entries))
	for _, e := range entries {
		it, err := e.Item(menuItemID(e))
		if err != nil {
			return nil, fmt.Errorf("menu entry %q: %w", e.Name, err)
		}
		docs = append(docs, common.Document{ID: it.ID, Data: docstore.MenuItemDocument(it)})
	}
	return docs, nil
}

// sampleOrders builds n plausible orders over today's serving hours. Queue
// positions continue after existing.
func sampleOrders(menu []catalog.Item, n int, existing []orderdom.Order, now time.Time, seed int64) ([]orderdom.Order, error) {
	if len(menu) == 0 {
		return nil, errors.New("menu is empty; run `seed menu` first")
	}
	if seed == 0 {
		seed = now.UnixNano()
	}
	rnd := rand.New(rand.NewPCG(uint64(seed), uint64(seed>>1)))
	statuses := orderdom.AllStatuses()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	next := orderdom.NextQueuePosition(existing)

	out := make([]orderdom.Order, 0, n)
	for i := 0; i < n; i++ {
		lines := 1 + rnd.IntN(3)
		o := orderdom.Order{
			ID:            uuid.NewString(),
			OrderID:       fmt.Sprintf("ORD-%s-%04d", day.Format("20060102"), next+i),
			RollNumber:    fmt.Sprintf("%02dCS%03d", 20+rnd.IntN(6), 1+rnd.IntN(120)),
			Status:        statuses[rnd.IntN(len(statuses))],
			QueuePosition: next + i,
			Date:          day,
			Time:          fmt.Sprintf("%02d:%02d", 7+rnd.IntN(14), rnd.IntN(60)),
			Total:         decimal.Zero,
		}
		for j := 0; j < lines; j++ {
			it := menu[rnd.IntN(len(menu))]
			oi := orderdom.Item{Name: it.Name, Price: it.Price, Quantity: 1 + rnd.IntN(3)}
			o.Items = append(o.Items, oi)
		}
		o.Total = o.ItemsTotal()
		out = append(out, o)
	}
	return out, nil
}

func orderDocuments(orders []orderdom.Order) []common.Document {
	docs := make([]common.Document, 0, len(orders))
	for _, o := range orders {
		docs = append(docs, common.Document{ID: o.ID, Data: docstore.OrderDocument(o)})
	}
	return docs
}

// write uses a batch when the store supports it, one Set per document
// otherwise.
func (e *seedEnv) write(ctx context.Context, collection string, docs []common.Document) error {
	log := e.log.WithFields(logrus.Fields{"collection": collection, "documents": len(docs)})
	if e.dryRun {
		for _, d := range docs {
			log.WithField("id", d.ID).WithField("data", d.Data).Info("dry-run")
		}
		return nil
	}

	if bw, ok := e.infra.Batch(); ok {
		if err := bw.SetAll(ctx, collection, docs); err != nil {
			return fmt.Errorf("batch write %s: %w", collection, err)
		}
		log.Info("seeded")
		return nil
	}
	for _, d := range docs {
		if err := e.infra.Store.Set(ctx, collection, d.ID, d.Data); err != nil {
			return fmt.Errorf("set %s/%s: %w", collection, d.ID, err)
		}
	}
	log.Info("seeded")
	return nil
}
