// internal/domain/order/entity.go
package order

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ========================================
// Errors
// ========================================

var (
	ErrNotFound         = errors.New("order: not found")
	ErrInvalidStatus    = errors.New("order: invalid status")
	ErrInvalidSession   = errors.New("order: invalid session")
	ErrInvalidHourRange = errors.New("order: invalid hour range")
)

// ========================================
// Status
// ========================================

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCompleted Status = "completed"
)

// AllStatuses returns the statuses in display order.
func AllStatuses() []Status {
	return []Status{StatusPending, StatusPaid, StatusCompleted}
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCompleted:
		return true
	default:
		return false
	}
}

func ParseStatus(v string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(v)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, v)
	}
	return s, nil
}

// ========================================
// Session (time-of-day bucket)
// ========================================

type Session string

const (
	SessionMorning   Session = "morning"
	SessionAfternoon Session = "afternoon"
	SessionEvening   Session = "evening"
)

func AllSessions() []Session {
	return []Session{SessionMorning, SessionAfternoon, SessionEvening}
}

func (s Session) Valid() bool {
	switch s {
	case SessionMorning, SessionAfternoon, SessionEvening:
		return true
	default:
		return false
	}
}

func ParseSession(v string) (Session, error) {
	s := Session(strings.ToLower(strings.TrimSpace(v)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSession, v)
	}
	return s, nil
}

// SessionOf buckets an hour of day:
// morning [6,12), afternoon [12,17), evening [17,24) and [0,6).
func SessionOf(hour int) Session {
	switch {
	case hour >= 6 && hour < 12:
		return SessionMorning
	case hour >= 12 && hour < 17:
		return SessionAfternoon
	default:
		return SessionEvening
	}
}

// Contains reports whether hour falls in the bucket.
func (s Session) Contains(hour int) bool {
	if hour < 0 || hour > 23 {
		return false
	}
	return SessionOf(hour) == s
}

// ========================================
// Entity
// ========================================

// Item is a point-in-time copy of what was ordered.
type Item struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Order is a placed order as seen by the console.
//
// QueuePosition is assigned once at creation and never changes.
// Priority only grows, through SetHighPriority.
type Order struct {
	ID            string          `json:"id"`
	OrderID       string          `json:"orderId"`
	RollNumber    string          `json:"rollNumber"`
	Items         []Item          `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Status        Status          `json:"status"`
	Priority      int             `json:"priority"`
	QueuePosition int             `json:"queuePosition"`
	Date          time.Time       `json:"date"`
	Time          string          `json:"time"`
}

// Hour parses the hour of day from Time ("HH:MM..."): the leading integer
// before the first ':'. ok is false when it is missing or outside 0-23.
func (o Order) Hour() (int, bool) {
	head, _, _ := strings.Cut(o.Time, ":")
	head = strings.TrimSpace(head)

	end := 0
	for end < len(head) && head[end] >= '0' && head[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	h, err := strconv.Atoi(head[:end])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	return h, true
}

// Session is the bucket of Hour.
func (o Order) Session() (Session, bool) {
	h, ok := o.Hour()
	if !ok {
		return "", false
	}
	return SessionOf(h), true
}

// ItemsTotal recomputes the total from Items. Total itself is stored
// independently and is only compared against this when validating.
func (o Order) ItemsTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum
}

// TotalMatchesItems reports whether the stored total equals ItemsTotal.
func (o Order) TotalMatchesItems() bool {
	return o.Total.Equal(o.ItemsTotal())
}

// NextQueuePosition is one past the highest queue position in orders.
func NextQueuePosition(orders []Order) int {
	highest := 0
	for _, o := range orders {
		if o.QueuePosition > highest {
			highest = o.QueuePosition
		}
	}
	return highest + 1
}

// indexOf returns the index of the order with id, or -1.
func indexOf(orders []Order, id string) int {
	id = strings.TrimSpace(id)
	if id == "" {
		return -1
	}
	for i := range orders {
		if orders[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneOrders(src []Order) []Order {
	out := make([]Order, len(src))
	copy(out, src)
	return out
}
