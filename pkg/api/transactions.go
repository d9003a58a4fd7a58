package api

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/evgeny-myasishchev/ledger.exchange/pkg/lib-core-golang/router"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/money"
)

type proposePayload struct {
	From     int64  `json:"from" validate:"min=1"`
	To       int64  `json:"to" validate:"min=1"`
	Currency string `json:"currency" validate:"required"`

	// Both json numbers and strings are accepted
	Amount decimal.Decimal `json:"amount"`
}

type receivePayload struct {
	Receiver int64 `json:"receiver" validate:"min=1"`
	Accept   bool  `json:"accept"`
}

type transactionParams struct {
	ID int64 `validate:"min=1"`
}

func (rts *routes) propose(w http.ResponseWriter, req *http.Request, h router.HandlerToolkit) error {
	var payload proposePayload
	if err := h.BindPayload(&payload); err != nil {
		return err
	}
	currency := money.Currency(strings.ToUpper(strings.TrimSpace(payload.Currency)))
	trxID, err := rts.engine.Propose(req.Context(), payload.From, payload.To, currency, payload.Amount)
	if err != nil {
		return toHTTPError(err)
	}
	return h.WriteEnvelope(http.StatusOK, "Transaction proposed", map[string]interface{}{
		"transactionId": trxID,
	})
}

func (rts *routes) receive(w http.ResponseWriter, req *http.Request, h router.HandlerToolkit) error {
	var params transactionParams
	if err := h.BindParams().
		PathParam("id").Int64(&params.ID).
		Validate(&params); err != nil {
		return err
	}
	var payload receivePayload
	if err := h.BindPayload(&payload); err != nil {
		return err
	}
	if err := rts.engine.Receive(req.Context(), params.ID, payload.Receiver, payload.Accept); err != nil {
		return toHTTPError(err)
	}
	message := "Transaction rejected"
	if payload.Accept {
		message = "Transaction accepted"
	}
	return h.WriteEnvelope(http.StatusOK, message, nil)
}

func (rts *routes) listTransactions(w http.ResponseWriter, req *http.Request, h router.HandlerToolkit) error {
	params, err := bindAccountParams(h)
	if err != nil {
		return err
	}
	trxs, err := rts.engine.Transactions(req.Context(), params.ID)
	if err != nil {
		return toHTTPError(err)
	}
	return h.WriteEnvelope(http.StatusOK, "Account transactions", trxs)
}
