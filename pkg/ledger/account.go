package ledger

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// balancePlaces is a number of fractional digits balances are kept with
const balancePlaces = 2

// Account represents a single bank account. Balance is kept as an exact
// decimal rounded to balancePlaces, never negative
type Account struct {
	number  int64
	owner   string
	balance decimal.Decimal
}

// NewAccount creates an account with a given number, owner and initial balance
func NewAccount(number int64, owner string, initialBalance decimal.Decimal) (*Account, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, ErrInvalidOwnerName
	}
	if initialBalance.IsNegative() {
		return nil, errors.Wrapf(ErrInvalidInitialBalance, "got %v", initialBalance)
	}
	return &Account{
		number:  number,
		owner:   owner,
		balance: initialBalance.Round(balancePlaces),
	}, nil
}

// Number returns the account number. Assigned once, immutable
func (a *Account) Number() int64 {
	return a.number
}

// Owner returns the account holder display name
func (a *Account) Owner() string {
	return a.owner
}

// Balance returns the current balance
func (a *Account) Balance() decimal.Decimal {
	return a.balance
}

// Deposit adds a positive amount to the balance
func (a *Account) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errors.Wrapf(ErrInvalidAmount, "deposit %v", amount)
	}
	a.balance = a.balance.Add(amount).Round(balancePlaces)
	return nil
}

// Withdraw subtracts a positive amount from the balance.
// Never leaves the balance negative
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errors.Wrapf(ErrInvalidAmount, "withdraw %v", amount)
	}
	if amount.GreaterThan(a.balance) {
		return errors.Wrapf(ErrInsufficientFunds, "withdraw %v of %v", amount, a.balance)
	}
	a.balance = a.balance.Sub(amount).Round(balancePlaces)
	return nil
}

func (a *Account) String() string {
	return fmt.Sprintf("Account Number: %v, Holder: %v, Balance: %v",
		a.number, a.owner, a.balance.StringFixed(balancePlaces))
}
