// internal/application/usecase/inventory_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	cartdom "canteen/internal/domain/cart"
	invdom "canteen/internal/domain/inventory"
)

// ImageResolver turns a stored image reference into a URL a browser can load.
type ImageResolver interface {
	ResolveImage(ctx context.Context, ref string) string
}

// StockView is a ledger row as shown in the inventory table.
type StockView struct {
	invdom.StockRecord
	ImageURL string `json:"imageUrl,omitempty"`
}

// InventoryView is the result of a ledger listing. Counts always cover the
// whole ledger so the category tabs stay stable while filtering.
type InventoryView struct {
	Records []StockView            `json:"records"`
	Counts  []invdom.CategoryCount `json:"counts"`
	Total   int                    `json:"total"`
}

type InventoryUsecase struct {
	repo   invdom.Repository
	images ImageResolver
	locker CommitLocker
	deps   Deps
}

func NewInventoryUsecase(repo invdom.Repository, images ImageResolver, deps Deps) *InventoryUsecase {
	return &InventoryUsecase{repo: repo, images: images, deps: deps.normalize("inventory_uc")}
}

// SetCommitLocker makes CommitCart hold l for the whole commit.
func (uc *InventoryUsecase) SetCommitLocker(l CommitLocker) {
	uc.locker = l
}

// ============================================================
// Queries
// ============================================================

func (uc *InventoryUsecase) List(ctx context.Context, q invdom.Query) (InventoryView, error) {
	if uc == nil || uc.repo == nil {
		return InventoryView{}, errors.New("inventory usecase/repo is nil")
	}
	ledger, err := uc.repo.GetAll(ctx)
	if err != nil {
		uc.deps.failure(ctx, "Error loading items", err, nil)
		return InventoryView{}, fmt.Errorf("load stock: %w", err)
	}

	all := ledger.Records()
	matched := ledger.Find(q)

	view := InventoryView{
		Records: make([]StockView, 0, len(matched)),
		Counts:  invdom.CountByCategory(all),
		Total:   len(all),
	}
	for _, r := range matched {
		view.Records = append(view.Records, StockView{StockRecord: r, ImageURL: uc.resolve(ctx, r.Image)})
	}
	return view, nil
}

// ============================================================
// Commands
// ============================================================

// Upsert replaces the record at rec.ID.
func (uc *InventoryUsecase) Upsert(ctx context.Context, rec invdom.StockRecord) (invdom.StockRecord, error) {
	if uc == nil || uc.repo == nil {
		return invdom.StockRecord{}, errors.New("inventory usecase/repo is nil")
	}
	ctx, cancel := detach(ctx)
	defer cancel()

	rec, err := invdom.NewStockRecord(rec.Item, rec.Quantity)
	if err != nil {
		return invdom.StockRecord{}, err
	}

	if err := uc.repo.Save(ctx, rec); err != nil {
		uc.deps.failure(ctx, "Error updating item", err, map[string]any{"id": rec.ID})
		return invdom.StockRecord{}, err
	}
	uc.deps.success(ctx, "Item updated successfully!", map[string]any{"id": rec.ID})
	return rec, nil
}

func (uc *InventoryUsecase) Delete(ctx context.Context, id string) error {
	if uc == nil || uc.repo == nil {
		return errors.New("inventory usecase/repo is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return invdom.ErrNotFound
	}
	ctx, cancel := detach(ctx)
	defer cancel()
	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.deps.failure(ctx, "Error deleting item", err, map[string]any{"id": id})
		return err
	}
	uc.deps.success(ctx, "Item deleted successfully!", map[string]any{"id": id})
	return nil
}

// CommitCart merges cart lines into the stored ledger.
//
// The ledger is read once, then each planned record is written in order.
// The first failed write stops the commit and nothing already written is
// undone; the returned *invdom.PartialCommitError lists what happened.
// Cancelling ctx does not stop a commit that has started.
// Without a CommitLocker, two commits running at once may lose each
// other's increments.
func (uc *InventoryUsecase) CommitCart(ctx context.Context, lines []cartdom.Line) (invdom.CommitResult, error) {
	if uc == nil || uc.repo == nil {
		return invdom.CommitResult{}, errors.New("inventory usecase/repo is nil")
	}

	touched := invdom.Plan(invdom.Ledger{}, lines)
	if len(touched) == 0 {
		return invdom.CommitResult{}, nil
	}
	ctx, cancel := detach(ctx)
	defer cancel()

	if uc.locker != nil {
		release, err := uc.locker.Lock(ctx, commitLockKey)
		if err != nil {
			uc.deps.failure(ctx, "Error updating available items", err, nil)
			return invdom.CommitResult{Pending: recordIDs(touched)}, err
		}
		defer func() {
			if rerr := release(context.WithoutCancel(ctx)); rerr != nil {
				uc.deps.Logger.WithError(rerr).Warn("release commit lock")
			}
		}()
	}

	ledger, err := uc.repo.GetAll(ctx)
	if err != nil {
		res := invdom.CommitResult{Pending: recordIDs(touched)}
		uc.deps.failure(ctx, "Error updating available items", err, nil)
		return res, fmt.Errorf("load stock: %w", err)
	}

	plan := invdom.Plan(ledger, lines)
	log := uc.deps.Logger.WithField("records", len(plan))
	log.Info("commit cart start")

	var res invdom.CommitResult
	for i, rec := range plan {
		if err := uc.repo.Save(ctx, rec); err != nil {
			res.Failed = rec.ID
			res.Pending = recordIDs(plan[i+1:])
			uc.deps.Metrics.StockWrites(len(res.Written), 1)

			log.WithFields(logrus.Fields{
				"written": len(res.Written),
				"failed":  rec.ID,
				"pending": len(res.Pending),
			}).WithError(err).Error("commit cart stopped")

			perr := &invdom.PartialCommitError{Result: res, Err: err}
			uc.deps.failure(ctx, "Error updating available items", err, map[string]any{
				"written": res.Written,
				"failed":  res.Failed,
				"pending": res.Pending,
			})
			return res, perr
		}
		res.Written = append(res.Written, rec.ID)
	}

	uc.deps.Metrics.StockWrites(len(res.Written), 0)
	log.Info("commit cart done")
	uc.deps.success(ctx, "Items added to available stock!", map[string]any{"written": res.Written})
	return res, nil
}

func (uc *InventoryUsecase) resolve(ctx context.Context, ref string) string {
	if uc.images == nil {
		return ref
	}
	return uc.images.ResolveImage(ctx, ref)
}

func recordIDs(rs []invdom.StockRecord) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}
