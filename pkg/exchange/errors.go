package exchange

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is a stable category of an exchange error
type Kind string

const (
	// KindAccountNotFound - sender, receiver or queried account does not exist
	KindAccountNotFound Kind = "AccountNotFound"

	// KindSelfTransfer - sender and receiver are the same account
	KindSelfTransfer Kind = "SelfTransfer"

	// KindInvalidAmount - amount is not positive or currency is not supported
	KindInvalidAmount Kind = "InvalidAmount"

	// KindInsufficientFunds - a party does not have enough funds
	KindInsufficientFunds Kind = "InsufficientFunds"

	// KindTransactionNotFound - no pending transaction for the receiver
	KindTransactionNotFound Kind = "TransactionNotFound"

	// KindSenderNotFound - transaction references a missing sender. Indicates corrupted ledger
	KindSenderNotFound Kind = "SenderNotFound"
)

// Error is returned by exchange operations
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of exchange error or empty string
// if err is not caused by one
func KindOf(err error) Kind {
	if exchangeErr, ok := errors.Cause(err).(*Error); ok {
		return exchangeErr.Kind
	}
	return ""
}

// IsKind checks if err is an exchange error of given kind
func IsKind(err error, kind Kind) bool {
	return kind != "" && KindOf(err) == kind
}
