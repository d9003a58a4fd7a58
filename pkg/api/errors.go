package api

import (
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/exchange"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/lib-core-golang/router"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/users"
)

type httpErrorFunc func(message string) error

var exchangeErrors = map[exchange.Kind]httpErrorFunc{
	exchange.KindAccountNotFound:     router.ResourceNotFoundError,
	exchange.KindTransactionNotFound: router.ResourceNotFoundError,
	exchange.KindSelfTransfer:        router.BadRequestError,
	exchange.KindInvalidAmount:       router.BadRequestError,
	exchange.KindInsufficientFunds:   router.BadRequestError,
	exchange.KindSenderNotFound:      router.ResourceNotFoundError,
}

var usersErrors = map[users.Kind]httpErrorFunc{
	users.KindBadRequest:   router.BadRequestError,
	users.KindConflict:     router.ConflictError,
	users.KindNotFound:     router.ResourceNotFoundError,
	users.KindUnauthorized: router.UnauthorizedError,
}

// toHTTPError converts domain errors to http errors. Unknown
// errors are returned as is and rendered as internal errors
func toHTTPError(err error) error {
	if kind := exchange.KindOf(err); kind != "" {
		if newErr, ok := exchangeErrors[kind]; ok {
			return newErr(err.Error())
		}
	}
	if kind := users.KindOf(err); kind != "" {
		if newErr, ok := usersErrors[kind]; ok {
			return newErr(err.Error())
		}
	}
	return err
}
