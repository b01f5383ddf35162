package ledger

import "errors"

// Domain error kinds. Every failed operation reports one of these,
// callers match with errors.Is and decide how to recover
var (
	// ErrInvalidAmount is reported when a deposit or withdrawal amount is not positive
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds is reported when a withdrawal would overdraft the account
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidOwnerName is reported when an account is created with a blank owner
	ErrInvalidOwnerName = errors.New("owner name must not be blank")

	// ErrInvalidInitialBalance is reported when an account is created with a negative balance
	ErrInvalidInitialBalance = errors.New("initial balance can not be negative")

	// ErrAccountNotFound is reported when a referenced account number does not exist
	ErrAccountNotFound = errors.New("account not found")

	// ErrSameAccountTransfer is reported when transfer source and destination are the same account
	ErrSameAccountTransfer = errors.New("can not transfer to the same account")
)
