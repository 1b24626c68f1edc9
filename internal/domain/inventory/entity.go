// internal/domain/inventory/entity.go
package inventory

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"canteen/internal/domain/catalog"
)

var (
	ErrNotFound      = errors.New("inventory: record not found")
	ErrInvalidRecord = errors.New("inventory: invalid record")
)

// StockRecord is one row of the ledger (availableItems).
// ID equals the originating item id; Quantity is never negative.
type StockRecord struct {
	catalog.Item
	Quantity int `json:"quantity" validate:"gte=0"`
}

// NewStockRecord normalizes and validates a ledger row.
func NewStockRecord(item catalog.Item, quantity int) (StockRecord, error) {
	item.ID = strings.TrimSpace(item.ID)
	item.Name = strings.TrimSpace(item.Name)
	item.Image = strings.TrimSpace(item.Image)

	r := StockRecord{Item: item, Quantity: quantity}
	if err := r.Validate(); err != nil {
		return StockRecord{}, err
	}
	return r, nil
}

func (r StockRecord) Validate() error {
	if err := catalog.Validate(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return nil
}

// Ledger maps id -> record. Keys are unique by construction.
type Ledger map[string]StockRecord

// NewLedger indexes records by id; a later record with the same id wins.
func NewLedger(records []StockRecord) Ledger {
	l := make(Ledger, len(records))
	for _, r := range records {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			continue
		}
		r.ID = id
		l[id] = r
	}
	return l
}

// Clone returns an independent copy.
func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// Records returns the rows ordered by name, then id.
func (l Ledger) Records() []StockRecord {
	out := make([]StockRecord, 0, len(l))
	for _, r := range l {
		out = append(out, r)
	}
	sortRecords(out)
	return out
}

// ========================================
// Listing (inventory table)
// ========================================

// Query narrows the inventory table. Zero value matches everything.
type Query struct {
	// Search is a case-insensitive substring of the name.
	Search string
	// Category, when set, must match exactly.
	Category catalog.Category
}

func (q Query) Match(r StockRecord) bool {
	if s := strings.ToLower(strings.TrimSpace(q.Search)); s != "" {
		if !strings.Contains(strings.ToLower(r.Name), s) {
			return false
		}
	}
	if q.Category != "" && r.Category != q.Category {
		return false
	}
	return true
}

// Find returns the records matching q, ordered like Records.
func (l Ledger) Find(q Query) []StockRecord {
	out := []StockRecord{}
	for _, r := range l {
		if q.Match(r) {
			out = append(out, r)
		}
	}
	sortRecords(out)
	return out
}

// CategoryCount is the number of records in one category.
type CategoryCount struct {
	Category catalog.Category `json:"category"`
	Count    int              `json:"count"`
}

// CountByCategory reports every category, including empty ones, in
// catalog.AllCategories order.
func CountByCategory(records []StockRecord) []CategoryCount {
	counts := map[catalog.Category]int{}
	for _, r := range records {
		counts[r.Category]++
	}
	out := make([]CategoryCount, 0, len(catalog.AllCategories()))
	for _, c := range catalog.AllCategories() {
		out = append(out, CategoryCount{Category: c, Count: counts[c]})
	}
	return out
}

func sortRecords(rs []StockRecord) {
	sort.Slice(rs, func(i, j int) bool {
		ni, nj := strings.ToLower(rs[i].Name), strings.ToLower(rs[j].Name)
		if ni != nj {
			return ni < nj
		}
		return rs[i].ID < rs[j].ID
	})
}
