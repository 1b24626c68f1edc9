package order

import (
	"sort"

	"github.com/shopspring/decimal"
)

// StatusCount, HourCount and SessionCount are report rows.
type StatusCount struct {
	Status Status `json:"status"`
	Count  int    `json:"count"`
}

type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

type SessionCount struct {
	Session Session `json:"session"`
	Count   int     `json:"count"`
}

// Summary aggregates a set of orders. It is computed from the slice it is
// given and holds no reference to it.
type Summary struct {
	Orders    int
	ByStatus  map[Status]int
	ByHour    [24]int
	BySession map[Session]int
	Revenue   decimal.Decimal
}

// Summarize reduces orders into a Summary. Orders without a parsable time
// count toward status and revenue only.
func Summarize(orders []Order) Summary {
	s := Summary{
		Orders:    len(orders),
		ByStatus:  map[Status]int{},
		BySession: map[Session]int{},
		Revenue:   decimal.Zero,
	}
	for _, sess := range AllSessions() {
		s.BySession[sess] = 0
	}

	for _, o := range orders {
		s.ByStatus[o.Status]++
		s.Revenue = s.Revenue.Add(o.Total)

		h, ok := o.Hour()
		if !ok {
			continue
		}
		s.ByHour[h]++
		s.BySession[SessionOf(h)]++
	}
	return s
}

// StatusCounts lists known statuses first in display order, then any
// unexpected stored values alphabetically. Zero counts are omitted.
func (s Summary) StatusCounts() []StatusCount {
	out := []StatusCount{}
	seen := map[Status]bool{}
	for _, st := range AllStatuses() {
		seen[st] = true
		if n := s.ByStatus[st]; n > 0 {
			out = append(out, StatusCount{Status: st, Count: n})
		}
	}
	var extra []Status
	for st, n := range s.ByStatus {
		if !seen[st] && n > 0 {
			extra = append(extra, st)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	for _, st := range extra {
		out = append(out, StatusCount{Status: st, Count: s.ByStatus[st]})
	}
	return out
}

// ActiveHours lists hours with at least one order, ascending.
func (s Summary) ActiveHours() []HourCount {
	out := []HourCount{}
	for h, n := range s.ByHour {
		if n > 0 {
			out = append(out, HourCount{Hour: h, Count: n})
		}
	}
	return out
}

// SessionCounts lists every session, including empty ones.
func (s Summary) SessionCounts() []SessionCount {
	out := make([]SessionCount, 0, len(AllSessions()))
	for _, sess := range AllSessions() {
		out = append(out, SessionCount{Session: sess, Count: s.BySession[sess]})
	}
	return out
}
