package ledger

import "github.com/pkg/errors"

var (
	// ErrAccountNotFound is returned when there is no account with given id
	ErrAccountNotFound = errors.New("Account not found")

	// ErrInsufficientFunds is returned when a debit would make balance negative
	ErrInsufficientFunds = errors.New("Insufficient funds")

	// ErrInvalidAmount is returned for non positive amounts
	ErrInvalidAmount = errors.New("Amount must be positive")

	// ErrTransactionNotFound is returned when there is no transaction with given id
	ErrTransactionNotFound = errors.New("Transaction not found")

	// ErrInvalidTransition is returned on attempt to change status of a finalized transaction
	ErrInvalidTransition = errors.New("Invalid transaction status transition")

	// ErrDuplicateTransaction is returned when appending a transaction with existing id
	ErrDuplicateTransaction = errors.New("Duplicate transaction")
)
