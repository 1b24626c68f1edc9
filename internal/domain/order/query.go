package order

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// HourRange keeps orders whose hour is in [Start, End).
type HourRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ParseHourRange parses "6-12".
func ParseHourRange(v string) (HourRange, error) {
	a, b, ok := strings.Cut(strings.TrimSpace(v), "-")
	if !ok {
		return HourRange{}, fmt.Errorf("%w: %q", ErrInvalidHourRange, v)
	}
	start, err1 := strconv.Atoi(strings.TrimSpace(a))
	end, err2 := strconv.Atoi(strings.TrimSpace(b))
	if err1 != nil || err2 != nil || start < 0 || end > 24 || start >= end {
		return HourRange{}, fmt.Errorf("%w: %q", ErrInvalidHourRange, v)
	}
	return HourRange{Start: start, End: end}, nil
}

func (r HourRange) Contains(hour int) bool {
	return hour >= r.Start && hour < r.End
}

// FilterSpec selects orders. Nil fields are inactive; active predicates
// are ANDed.
type FilterSpec struct {
	Status *Status
	// StartDate and EndDate bound Date inclusively; applied only when both are set.
	StartDate *time.Time
	EndDate   *time.Time
	Session   *Session
	Hours     *HourRange
}

// Match reports whether o satisfies every active predicate.
func (f FilterSpec) Match(o Order) bool {
	if f.Status != nil && o.Status != *f.Status {
		return false
	}

	if f.StartDate != nil && f.EndDate != nil {
		if o.Date.Before(*f.StartDate) || o.Date.After(*f.EndDate) {
			return false
		}
	}

	if f.Session != nil || f.Hours != nil {
		h, ok := o.Hour()
		if !ok {
			return false
		}
		if f.Session != nil && !f.Session.Contains(h) {
			return false
		}
		if f.Hours != nil && !f.Hours.Contains(h) {
			return false
		}
	}
	return true
}

// Filter returns the orders matching spec, keeping input order.
func Filter(orders []Order, spec FilterSpec) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if spec.Match(o) {
			out = append(out, o)
		}
	}
	return out
}

// Rank orders the queue: pending first, then higher priority, then lower
// queue position. Remaining ties keep their input order. The input slice is
// not modified.
func Rank(orders []Order) []Order {
	out := cloneOrders(orders)
	sort.SliceStable(out, func(i, j int) bool {
		return before(out[i], out[j])
	})
	return out
}

func before(a, b Order) bool {
	ap, bp := a.Status == StatusPending, b.Status == StatusPending
	if ap != bp {
		return ap
	}
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return a.QueuePosition < b.QueuePosition
}

// View is what the console shows: the filtered subset, ranked.
func View(orders []Order, spec FilterSpec) []Order {
	return Rank(Filter(orders, spec))
}
