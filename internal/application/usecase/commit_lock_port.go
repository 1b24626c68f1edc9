// internal/application/usecase/commit_lock_port.go
package usecase

import (
	"context"
	"errors"

	"canteen/internal/domain/common"
)

var ErrCommitBusy = errors.New("usecase: a stock commit is already running")

// commitLockKey guards the read-merge-write of the whole ledger.
const commitLockKey = "canteen:commit:" + common.CollectionAvailableItems

// CommitLocker serializes stock commits across console instances. Lock
// returns ErrCommitBusy when the lock stays taken.
type CommitLocker interface {
	Lock(ctx context.Context, key string) (release func(context.Context) error, err error)
}
