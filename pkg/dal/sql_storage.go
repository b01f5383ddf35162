package dal

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	// This has to be here to let go mods work work
	_ "github.com/mattn/go-sqlite3"
)

const nextAccountNumberKey = "next_account_number"

type sqlStorage struct {
	db *sql.DB
}

func (s *sqlStorage) Setup(ctx context.Context) error {
	logger.Info(ctx, "Setup SQL storage")
	_, err := s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS accounts(
	number    INTEGER NOT NULL PRIMARY KEY,
	owner     nvarchar(255) NOT NULL,
	balance   nvarchar(255) NOT NULL
);
CREATE TABLE IF NOT EXISTS ledger_meta(
	key   nvarchar(255) NOT NULL PRIMARY KEY,
	value nvarchar(255) NOT NULL
);
`)
	if err != nil {
		return errors.Wrapf(ErrStorageIO, "failed to setup storage: %v", err)
	}
	return nil
}

// SaveSnapshot replaces persisted state with a given snapshot.
// The rewrite happens within a single transaction so a failed save
// leaves previously persisted data intact
func (s *sqlStorage) SaveSnapshot(ctx context.Context, snapshot *SnapshotDTO) error {
	logger.Debug(ctx, "Saving snapshot of %v accounts", len(snapshot.Accounts))
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrapf(ErrStorageIO, "failed to begin tx: %v", err)
	}

	save := func() error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM accounts`); err != nil {
			return err
		}
		for _, account := range snapshot.Accounts {
			if _, err := tx.ExecContext(ctx, `
			INSERT INTO accounts(number, owner, balance)
			VALUES($1, $2, $3)`,
				account.Number, account.Owner, account.Balance); err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO ledger_meta(key, value)
		VALUES($1, $2)
		ON CONFLICT(key) DO UPDATE
		SET value=$2`,
			nextAccountNumberKey,
			strconv.FormatInt(snapshot.NextAccountNumber, 10)); err != nil {
			return err
		}
		return nil
	}

	if err := save(); err != nil {
		tx.Rollback()
		return errors.Wrapf(ErrStorageIO, "failed to save snapshot: %v", err)
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrapf(ErrStorageIO, "failed to commit snapshot: %v", err)
	}
	return nil
}

func (s *sqlStorage) LoadSnapshot(ctx context.Context) (*SnapshotDTO, error) {
	snapshot := &SnapshotDTO{NextAccountNumber: DefaultNextAccountNumber}

	row := s.db.QueryRowContext(ctx, `
	SELECT value FROM ledger_meta WHERE key = $1`, nextAccountNumberKey)
	var counterValue string
	if err := row.Scan(&counterValue); err != nil {
		if err != sql.ErrNoRows {
			return nil, errors.Wrapf(ErrStorageIO, "failed to read allocator counter: %v", err)
		}
	} else {
		nextNumber, err := strconv.ParseInt(counterValue, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrCorruptState, "bad allocator counter: %v", counterValue)
		}
		snapshot.NextAccountNumber = nextNumber
	}

	res, err := s.db.QueryContext(ctx, `
	SELECT
		number, owner, balance
	FROM accounts ORDER BY number`)
	if err != nil {
		return nil, errors.Wrapf(ErrStorageIO, "failed to read accounts: %v", err)
	}
	defer res.Close()

	for res.Next() {
		var account AccountDTO
		if err := res.Scan(
			&account.Number,
			&account.Owner,
			&account.Balance,
		); err != nil {
			return nil, errors.Wrapf(ErrCorruptState, "bad account record: %v", err)
		}
		if _, err := decimal.NewFromString(account.Balance); err != nil {
			return nil, errors.Wrapf(ErrCorruptState, "bad balance of account %v: %v", account.Number, account.Balance)
		}
		snapshot.Accounts = append(snapshot.Accounts, account)
	}
	if err := res.Err(); err != nil {
		return nil, errors.Wrapf(ErrStorageIO, "failed to read accounts: %v", err)
	}
	return snapshot, nil
}

// SQLStorageOpt is an option of SQL storage
type SQLStorageOpt func(s *sqlStorage)

// WithSQLDb will set an explicit db instance for a storage
func WithSQLDb(db *sql.DB) SQLStorageOpt {
	return func(s *sqlStorage) {
		s.db = db
	}
}

// NewSQLStorage returns an instance of a local storage
func NewSQLStorage(opts ...SQLStorageOpt) (Storage, error) {
	storage := &sqlStorage{}
	for _, opt := range opts {
		opt(storage)
	}
	return storage, nil
}
