package api

import (
	"net/http"

	"github.com/evgeny-myasishchev/ledger.exchange/pkg/lib-core-golang/router"
)

type accountParams struct {
	ID int64 `validate:"min=1"`
}

func bindAccountParams(h router.HandlerToolkit) (accountParams, error) {
	var params accountParams
	err := h.BindParams().
		PathParam("id").Int64(&params.ID).
		Validate(&params)
	return params, err
}

func (rts *routes) createAccount(w http.ResponseWriter, req *http.Request, h router.HandlerToolkit) error {
	id, err := rts.accounts.CreateAccount(req.Context())
	if err != nil {
		return toHTTPError(err)
	}
	return h.WriteEnvelope(http.StatusOK, "Account created", map[string]interface{}{"id": id})
}

func (rts *routes) getAccount(w http.ResponseWriter, req *http.Request, h router.HandlerToolkit) error {
	params, err := bindAccountParams(h)
	if err != nil {
		return err
	}
	info, err := rts.accounts.GetInfo(req.Context(), params.ID)
	if err != nil {
		return toHTTPError(err)
	}
	return h.WriteEnvelope(http.StatusOK, "Account info", info)
}
