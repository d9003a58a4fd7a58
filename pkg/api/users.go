package api

import (
	"net/http"

	"github.com/evgeny-myasishchev/ledger.exchange/pkg/lib-core-golang/router"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/users"
)

type signUpPayload struct {
	Login          string `json:"login"`
	Password       string `json:"password"`
	PasswordRepeat string `json:"passwordRepeat"`
}

type signInPayload struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type verifyPayload struct {
	Login      string `json:"login"`
	Phone      string `json:"phone"`
	Age        string `json:"age"`
	CardNumber string `json:"cardNumber"`
	Geo        string `json:"geo"`
}

type forgetPasswordPayload struct {
	Login       string `json:"login"`
	Phone       string `json:"phone"`
	NewPassword string `json:"newPassword"`
}

func (rts *routes) signUp(w http.ResponseWriter, req *http.Request, h router.HandlerToolkit) error {
	var payload signUpPayload
	if err := h.BindPayload(&payload); err != nil {
		return err
	}
	uid, err := rts.users.SignUp(req.Context(), users.SignUpRequest(payload))
	if err != nil {
		return toHTTPError(err)
	}
	return h.WriteEnvelope(http.StatusOK, "User created", map[string]interface{}{"uid": uid})
}

func (rts *routes) signIn(w http.ResponseWriter, req *http.Request, h router.HandlerToolkit) error {
	var payload signInPayload
	if err := h.BindPayload(&payload); err != nil {
		return err
	}
	if err := rts.users.SignIn(req.Context(), users.SignInRequest(payload)); err != nil {
		return toHTTPError(err)
	}
	return h.WriteEnvelope(http.StatusOK, "Signed in", nil)
}

func (rts *routes) verify(w http.ResponseWriter, req *http.Request, h router.HandlerToolkit) error {
	var payload verifyPayload
	if err := h.BindPayload(&payload); err != nil {
		return err
	}
	if err := rts.users.Verify(req.Context(), users.VerifyRequest(payload)); err != nil {
		return toHTTPError(err)
	}
	return h.WriteEnvelope(http.StatusOK, "User verified", nil)
}

func (rts *routes) forgetPassword(w http.ResponseWriter, req *http.Request, h router.HandlerToolkit) error {
	var payload forgetPasswordPayload
	if err := h.BindPayload(&payload); err != nil {
		return err
	}
	if err := rts.users.ForgetPassword(req.Context(), users.ForgetPasswordRequest(payload)); err != nil {
		return toHTTPError(err)
	}
	return h.WriteEnvelope(http.StatusOK, "Password changed", nil)
}
