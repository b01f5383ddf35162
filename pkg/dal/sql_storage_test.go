package dal

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func newTestSQLStorage(t *testing.T) (Storage, *sql.DB) {
	db, err := sql.Open("sqlite3", ":memory:")
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	t.Cleanup(func() { db.Close() })
	storage, err := NewSQLStorage(WithSQLDb(db))
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	if err := storage.Setup(context.Background()); !assert.NoError(t, err) {
		t.FailNow()
	}
	return storage, db
}

func Test_sqlStorage_SaveSnapshot(t *testing.T) {
	t.Run("persist accounts and counter", func(t *testing.T) {
		storage, _ := newTestSQLStorage(t)
		snapshot := randomSnapshot()
		if err := storage.SaveSnapshot(context.Background(), snapshot); !assert.NoError(t, err) {
			return
		}
		got, err := storage.LoadSnapshot(context.Background())
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, snapshot, got)
	})

	t.Run("overwrite previous snapshot in full", func(t *testing.T) {
		storage, _ := newTestSQLStorage(t)
		if err := storage.SaveSnapshot(context.Background(), randomSnapshot()); !assert.NoError(t, err) {
			return
		}
		next := &SnapshotDTO{
			NextAccountNumber: 2,
			Accounts:          []AccountDTO{randomAccountDTO(1)},
		}
		if err := storage.SaveSnapshot(context.Background(), next); !assert.NoError(t, err) {
			return
		}
		got, err := storage.LoadSnapshot(context.Background())
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, next, got)
	})
}

func Test_sqlStorage_LoadSnapshot(t *testing.T) {
	t.Run("empty database yields empty snapshot", func(t *testing.T) {
		storage, _ := newTestSQLStorage(t)
		got, err := storage.LoadSnapshot(context.Background())
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, int64(DefaultNextAccountNumber), got.NextAccountNumber)
		assert.Empty(t, got.Accounts)
	})

	t.Run("fail with corrupt state on bad balance", func(t *testing.T) {
		storage, db := newTestSQLStorage(t)
		_, err := db.Exec(`
		INSERT INTO accounts(number, owner, balance)
		VALUES($1, $2, $3)`, 1, "Alice", "lots")
		if !assert.NoError(t, err) {
			return
		}
		_, err = storage.LoadSnapshot(context.Background())
		assert.ErrorIs(t, err, ErrCorruptState)
	})

	t.Run("fail with corrupt state on bad counter", func(t *testing.T) {
		storage, db := newTestSQLStorage(t)
		_, err := db.Exec(`
		INSERT INTO ledger_meta(key, value)
		VALUES($1, $2)`, nextAccountNumberKey, "many")
		if !assert.NoError(t, err) {
			return
		}
		_, err = storage.LoadSnapshot(context.Background())
		assert.ErrorIs(t, err, ErrCorruptState)
	})
}
