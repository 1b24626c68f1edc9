package inventory

import (
	"fmt"
	"strings"

	"canteen/internal/domain/cart"
)

// Reconcile merges cart lines into the ledger and returns the next ledger.
// The input ledger is not modified.
//
// For each line in order: when the ledger holds the id, the record takes the
// line's descriptive fields and quantity becomes existing + line quantity;
// otherwise the line is inserted as is. Lines with a blank id or a quantity
// below 1 are skipped.
//
// Reconcile is a no-op for empty input but is not idempotent for non-empty
// input: applying the same lines twice adds their quantities twice. Callers
// apply a cart at most once and clear it afterwards.
func Reconcile(ledger Ledger, lines []cart.Line) Ledger {
	next := ledger.Clone()
	for _, line := range lines {
		id := strings.TrimSpace(line.ID)
		if id == "" || line.Quantity < 1 {
			continue
		}
		next[id] = merge(next, id, line)
	}
	return next
}

// Plan returns the records Reconcile would write, one per touched id, in the
// order the ids first appear in lines.
func Plan(ledger Ledger, lines []cart.Line) []StockRecord {
	next := Reconcile(ledger, lines)

	seen := map[string]struct{}{}
	out := make([]StockRecord, 0, len(lines))
	for _, line := range lines {
		id := strings.TrimSpace(line.ID)
		if id == "" || line.Quantity < 1 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, next[id])
	}
	return out
}

func merge(ledger Ledger, id string, line cart.Line) StockRecord {
	rec := StockRecord{Item: line.Item, Quantity: line.Quantity}
	rec.ID = id
	if existing, ok := ledger[id]; ok {
		rec.Quantity = clampQuantity(existing.Quantity) + line.Quantity
	}
	return rec
}

func clampQuantity(q int) int {
	if q < 0 {
		return 0
	}
	return q
}

// ========================================
// Commit outcome
// ========================================

// CommitResult describes how far a commit of planned records got.
// Written records stay written when a later record fails.
type CommitResult struct {
	Written []string `json:"written"`
	Failed  string   `json:"failed,omitempty"`
	Pending []string `json:"pending,omitempty"`
}

// PartialCommitError reports a commit that stopped at Failed.
type PartialCommitError struct {
	Result CommitResult
	Err    error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf(
		"inventory: commit stopped at %q (written=%d, pending=%d): %v",
		e.Result.Failed, len(e.Result.Written), len(e.Result.Pending), e.Err,
	)
}

func (e *PartialCommitError) Unwrap() error { return e.Err }
