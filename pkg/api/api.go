package api

import (
	"net/http"

	"github.com/evgeny-myasishchev/ledger.exchange/pkg/accounts"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/exchange"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/lib-core-golang/diag"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/lib-core-golang/router"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/users"
)

type routes struct {
	engine   exchange.Engine
	accounts accounts.Service
	users    users.Service
}

// RoutesOpt is an option of SetupRoutes
type RoutesOpt func(r *routes)

// WithEngine sets transfer engine used by transactions routes
func WithEngine(engine exchange.Engine) RoutesOpt {
	return func(r *routes) {
		r.engine = engine
	}
}

// WithAccounts sets accounts service used by accounts routes
func WithAccounts(svc accounts.Service) RoutesOpt {
	return func(r *routes) {
		r.accounts = svc
	}
}

// WithUsers sets users service used by users routes
func WithUsers(svc users.Service) RoutesOpt {
	return func(r *routes) {
		r.users = svc
	}
}

// SetupRoutes registers middlewares and all api routes
func SetupRoutes(r router.Router, opts ...RoutesOpt) {
	rts := &routes{}
	for _, opt := range opts {
		opt(rts)
	}

	r.Use(router.MiddlewareFunc(diag.NewRequestIDMiddleware()))
	r.Use(router.MiddlewareFunc(diag.NewLogRequestsMiddleware()))
	r.Use(router.RecoverMiddleware)

	r.Handle("GET", "/v1/healthcheck/ping", router.ToolkitHandlerFunc(ping))

	if rts.users != nil {
		r.Handle("POST", "/v1/users/sign-up", router.ToolkitHandlerFunc(rts.signUp))
		r.Handle("POST", "/v1/users/sign-in", router.ToolkitHandlerFunc(rts.signIn))
		r.Handle("POST", "/v1/users/verify", router.ToolkitHandlerFunc(rts.verify))
		r.Handle("POST", "/v1/users/forget-password", router.ToolkitHandlerFunc(rts.forgetPassword))
	}

	if rts.accounts != nil {
		r.Handle("POST", "/v1/accounts", router.ToolkitHandlerFunc(rts.createAccount))
		r.Handle("GET", "/v1/accounts/:id", router.ToolkitHandlerFunc(rts.getAccount))
	}

	if rts.engine != nil {
		r.Handle("GET", "/v1/accounts/:id/transactions", router.ToolkitHandlerFunc(rts.listTransactions))
		r.Handle("POST", "/v1/transactions", router.ToolkitHandlerFunc(rts.propose))
		r.Handle("POST", "/v1/transactions/:id/receive", router.ToolkitHandlerFunc(rts.receive))
	}

	r.NotFound(router.NotFoundHandler())
}

func ping(w http.ResponseWriter, req *http.Request, h router.HandlerToolkit) error {
	return h.WriteEnvelope(http.StatusOK, "pong", nil)
}
