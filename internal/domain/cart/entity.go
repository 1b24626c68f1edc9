// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"canteen/internal/domain/catalog"
)

var (
	ErrInvalidCart = errors.New("cart: invalid")
)

// Line is one cart row: a copy of the catalog item plus a quantity.
// Quantity is always >= 1; anything lower removes the line.
type Line struct {
	catalog.Item
	Quantity int `json:"quantity"`
}

// Subtotal is price × quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Snapshot is a point-in-time copy of the cart with its derived totals.
type Snapshot struct {
	Lines      []Line          `json:"lines"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// Cart is the in-memory cart. Lines are keyed by item id (at most one line per
// id) and kept in insertion order. The zero value is an empty cart.
//
// Cart is not safe for concurrent use; the owner serializes access.
type Cart struct {
	lines []Line
}

// New builds a cart from lines, merging duplicate ids (quantities add up)
// and dropping lines with quantity < 1.
func New(lines ...Line) *Cart {
	return &Cart{lines: normalizeAndMerge(lines)}
}

// Add increments the line for item.ID, or appends a new line with quantity 1.
func (c *Cart) Add(item catalog.Item) error {
	if c == nil {
		return ErrInvalidCart
	}
	item.ID = strings.TrimSpace(item.ID)
	if item.ID == "" {
		return ErrInvalidCart
	}

	if idx := c.indexOf(item.ID); idx >= 0 {
		c.lines[idx].Quantity++
		return nil
	}
	c.lines = append(c.lines, Line{Item: item, Quantity: 1})
	return nil
}

// Remove deletes the line for id. Unknown ids are a no-op.
func (c *Cart) Remove(id string) {
	if c == nil {
		return
	}
	idx := c.indexOf(strings.TrimSpace(id))
	if idx < 0 {
		return
	}
	c.lines = append(c.lines[:idx:idx], c.lines[idx+1:]...)
}

// SetQuantity sets the absolute quantity for id.
// qty < 1 behaves exactly like Remove(id). Unknown ids are a no-op.
func (c *Cart) SetQuantity(id string, qty int) {
	if c == nil {
		return
	}
	if qty < 1 {
		c.Remove(id)
		return
	}
	if idx := c.indexOf(strings.TrimSpace(id)); idx >= 0 {
		c.lines[idx].Quantity = qty
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	if c == nil {
		return
	}
	c.lines = nil
}

// ConsumeAll clears the cart and returns what it held.
func (c *Cart) ConsumeAll() []Line {
	snap := c.Lines()
	c.Clear()
	return snap
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	if c == nil || len(c.lines) == 0 {
		return []Line{}
	}
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Line returns the line for id.
func (c *Cart) Line(id string) (Line, bool) {
	if c == nil {
		return Line{}, false
	}
	idx := c.indexOf(strings.TrimSpace(id))
	if idx < 0 {
		return Line{}, false
	}
	return c.lines[idx], true
}

func (c *Cart) Len() int {
	if c == nil {
		return 0
	}
	return len(c.lines)
}

// TotalItems is the sum of quantities.
func (c *Cart) TotalItems() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// TotalPrice is the sum of price × quantity.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	if c == nil {
		return total
	}
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (c *Cart) Snapshot() Snapshot {
	return Snapshot{
		Lines:      c.Lines(),
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
	}
}

// SnapshotOf totals lines taken out of a cart.
func SnapshotOf(lines []Line) Snapshot {
	return (&Cart{lines: lines}).Snapshot()
}

// ----------------------------
// Helpers
// ----------------------------

func (c *Cart) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range c.lines {
		if c.lines[i].ID == id {
			return i
		}
	}
	return -1
}

// normalizeAndMerge keeps first-appearance order; later duplicates add
// their quantity to the first line and overwrite its item fields.
func normalizeAndMerge(src []Line) []Line {
	out := make([]Line, 0, len(src))
	pos := map[string]int{}

	for _, l := range src {
		l.ID = strings.TrimSpace(l.ID)
		if l.ID == "" || l.Quantity < 1 {
			continue
		}
		if i, ok := pos[l.ID]; ok {
			qty := out[i].Quantity + l.Quantity
			out[i] = l
			out[i].Quantity = qty
			continue
		}
		pos[l.ID] = len(out)
		out = append(out, l)
	}
	return out
}
