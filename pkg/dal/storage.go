package dal

import (
	"context"

	"github.com/pkg/errors"
)

// DefaultNextAccountNumber is a seed of the account number allocator
// used when there is no persisted state yet
const DefaultNextAccountNumber = 1

// Persistence error kinds
var (
	// ErrCorruptState is reported when persisted data can not be parsed.
	// Loading is all-or-nothing so nothing is returned along with it
	ErrCorruptState = errors.New("corrupt persisted state")

	// ErrStorageIO is reported when the underlying storage read or write failed
	ErrStorageIO = errors.New("storage io failure")
)

// AccountDTO is a DTO of a single persisted account record
type AccountDTO struct {
	Number  int64
	Owner   string
	Balance string
}

// SnapshotDTO is a complete persisted ledger state: all account records
// plus the allocator counter
type SnapshotDTO struct {
	NextAccountNumber int64
	Accounts          []AccountDTO
}

// Storage is a persistance layer for ledger snapshots
type Storage interface {
	Setup(ctx context.Context) error
	SaveSnapshot(ctx context.Context, snapshot *SnapshotDTO) error
	LoadSnapshot(ctx context.Context) (*SnapshotDTO, error)
}
