package ledger

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/evgeny-myasishchev/ledger.accounts/pkg/dal"
	"github.com/evgeny-myasishchev/ledger.accounts/pkg/lib-core-golang/diag"
)

var logger = diag.CreateLogger()

// Ledger owns the account collection and the account number allocator.
// Single operator model: one operation at a time, no locking
type Ledger struct {
	accounts   map[int64]*Account
	nextNumber int64
}

// New creates an empty ledger
func New() *Ledger {
	return &Ledger{
		accounts:   make(map[int64]*Account),
		nextNumber: dal.DefaultNextAccountNumber,
	}
}

// CreateAccount creates a new account and returns its number.
// The allocator is advanced only on success so numbers are
// strictly increasing and never reused
func (l *Ledger) CreateAccount(owner string, initialBalance decimal.Decimal) (int64, error) {
	account, err := NewAccount(l.nextNumber, owner, initialBalance)
	if err != nil {
		return 0, err
	}
	l.accounts[account.Number()] = account
	l.nextNumber++
	return account.Number(), nil
}

// GetAccount looks an account up by number
func (l *Ledger) GetAccount(number int64) (*Account, error) {
	account, ok := l.accounts[number]
	if !ok {
		return nil, errors.Wrapf(ErrAccountNotFound, "account %v", number)
	}
	return account, nil
}

// ListAccounts returns all accounts in ascending number order
func (l *Ledger) ListAccounts() []*Account {
	out := make([]*Account, 0, len(l.accounts))
	for _, account := range l.accounts {
		out = append(out, account)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Number() < out[j].Number()
	})
	return out
}

// Deposit adds an amount to an account balance
func (l *Ledger) Deposit(number int64, amount decimal.Decimal) error {
	account, err := l.GetAccount(number)
	if err != nil {
		return err
	}
	return account.Deposit(amount)
}

// Withdraw subtracts an amount from an account balance
func (l *Ledger) Withdraw(number int64, amount decimal.Decimal) error {
	account, err := l.GetAccount(number)
	if err != nil {
		return err
	}
	return account.Withdraw(amount)
}

// Transfer moves an amount from one account to another as one logical
// unit: if any step fails no balance is changed, total ledger value is
// conserved across the attempt
func (l *Ledger) Transfer(fromNumber int64, toNumber int64, amount decimal.Decimal) error {
	if fromNumber == toNumber {
		return errors.Wrapf(ErrSameAccountTransfer, "account %v", fromNumber)
	}
	from, err := l.GetAccount(fromNumber)
	if err != nil {
		return err
	}
	to, err := l.GetAccount(toNumber)
	if err != nil {
		return err
	}

	sourceBalance := from.balance
	if err := from.Withdraw(amount); err != nil {
		return err
	}
	if err := to.Deposit(amount); err != nil {
		// Deposit of an amount that passed Withdraw validation can not
		// fail today. Should it ever, the source is re-credited with
		// its exact pre-withdrawal balance
		from.balance = sourceBalance
		return err
	}
	return nil
}

// Save persists a complete snapshot of the ledger
func (l *Ledger) Save(ctx context.Context, storage dal.Storage) error {
	snapshot := &dal.SnapshotDTO{NextAccountNumber: l.nextNumber}
	for _, account := range l.ListAccounts() {
		snapshot.Accounts = append(snapshot.Accounts, dal.AccountDTO{
			Number:  account.Number(),
			Owner:   account.Owner(),
			Balance: account.Balance().StringFixed(balancePlaces),
		})
	}
	if err := storage.SaveSnapshot(ctx, snapshot); err != nil {
		return err
	}
	logger.Info(ctx, "Saved %v accounts", len(snapshot.Accounts))
	return nil
}

// Load replaces ledger state with a persisted snapshot. All-or-nothing:
// if any record is bad the ledger keeps its current state
func (l *Ledger) Load(ctx context.Context, storage dal.Storage) error {
	snapshot, err := storage.LoadSnapshot(ctx)
	if err != nil {
		return err
	}

	accounts := make(map[int64]*Account, len(snapshot.Accounts))
	nextNumber := snapshot.NextAccountNumber
	if nextNumber < dal.DefaultNextAccountNumber {
		nextNumber = dal.DefaultNextAccountNumber
	}
	for _, dto := range snapshot.Accounts {
		account, err := restoreAccount(&dto)
		if err != nil {
			return err
		}
		if _, ok := accounts[account.Number()]; ok {
			return errors.Wrapf(dal.ErrCorruptState, "duplicate account %v", account.Number())
		}
		accounts[account.Number()] = account

		// The counter of a hand edited snapshot may lag behind,
		// bump it past the max known number to keep allocations unique
		if account.Number() >= nextNumber {
			nextNumber = account.Number() + 1
		}
	}

	l.accounts = accounts
	l.nextNumber = nextNumber
	logger.Info(ctx, "Loaded %v accounts, next number: %v", len(accounts), nextNumber)
	return nil
}

func restoreAccount(dto *dal.AccountDTO) (*Account, error) {
	if dto.Number < 1 {
		return nil, errors.Wrapf(dal.ErrCorruptState, "bad account number: %v", dto.Number)
	}
	balance, err := decimal.NewFromString(dto.Balance)
	if err != nil {
		return nil, errors.Wrapf(dal.ErrCorruptState, "bad balance of account %v: %v", dto.Number, dto.Balance)
	}
	account, err := NewAccount(dto.Number, dto.Owner, balance)
	if err != nil {
		return nil, errors.Wrapf(dal.ErrCorruptState, "bad account %v: %v", dto.Number, err)
	}
	return account, nil
}
