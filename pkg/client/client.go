package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/evgeny-myasishchev/ledger.exchange/pkg/accounts"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/ledger"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/lib-core-golang/request"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/lib-core-golang/router"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/money"
)

// APIError is returned when the api responded with an error envelope
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[%v]: %v", e.StatusCode, e.Message)
}

// Client talks to the exchange http api
type Client interface {
	Ping(ctx context.Context) error
	CreateAccount(ctx context.Context) (int64, error)
	GetAccountInfo(ctx context.Context, accountID int64) (*accounts.Info, error)
	Transactions(ctx context.Context, accountID int64) ([]ledger.Transaction, error)
	Propose(ctx context.Context, from, to int64, currency money.Currency, amount decimal.Decimal) (int64, error)

	// Receive accepts or rejects the transaction and returns api message
	Receive(ctx context.Context, transactionID, receiverID int64, accept bool) (string, error)
}

type apiClient struct {
	baseURL string
	timeout time.Duration
}

// ClientOpt is an option of a client
type ClientOpt func(c *apiClient)

// WithTimeout sets timeout of every request
func WithTimeout(timeout time.Duration) ClientOpt {
	return func(c *apiClient) {
		c.timeout = timeout
	}
}

// NewClient creates a client of the api at baseURL
func NewClient(baseURL string, opts ...ClientOpt) Client {
	c := &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *apiClient) url(path string, args ...interface{}) string {
	return c.baseURL + fmt.Sprintf(path, args...)
}

// send performs the request and decodes envelope data into the receiver
func (c *apiClient) send(ctx context.Context, factory request.ReqFactory, receiver interface{}) (string, error) {
	var env envelope
	if err := request.Do(ctx, factory, request.WithTimeout(c.timeout)).DecodeJSON(&env); err != nil {
		return "", newAPIError(err)
	}
	if receiver != nil {
		if err := json.Unmarshal(env.Data, receiver); err != nil {
			return "", errors.Wrap(err, "Failed to decode response data")
		}
	}
	return env.Message, nil
}

func newAPIError(err error) error {
	httpErr, ok := errors.Cause(err).(request.HTTPError)
	if !ok {
		return err
	}
	var env router.Envelope
	if jsonErr := json.Unmarshal(httpErr.Body, &env); jsonErr != nil || env.Message == "" {
		return &APIError{StatusCode: httpErr.StatusCode, Message: httpErr.Status}
	}
	return &APIError{StatusCode: httpErr.StatusCode, Message: env.Message}
}

func (c *apiClient) Ping(ctx context.Context) error {
	_, err := c.send(ctx, request.Get(c.url("/v1/healthcheck/ping")), nil)
	return err
}

func (c *apiClient) CreateAccount(ctx context.Context) (int64, error) {
	var data struct {
		ID int64 `json:"id"`
	}
	if _, err := c.send(ctx, request.Post(c.url("/v1/accounts"), nil), &data); err != nil {
		return 0, err
	}
	return data.ID, nil
}

func (c *apiClient) GetAccountInfo(ctx context.Context, accountID int64) (*accounts.Info, error) {
	var info accounts.Info
	if _, err := c.send(ctx, request.Get(c.url("/v1/accounts/%v", accountID)), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *apiClient) Transactions(ctx context.Context, accountID int64) ([]ledger.Transaction, error) {
	var trxs []ledger.Transaction
	if _, err := c.send(ctx, request.Get(c.url("/v1/accounts/%v/transactions", accountID)), &trxs); err != nil {
		return nil, err
	}
	return trxs, nil
}

func (c *apiClient) Propose(
	ctx context.Context,
	from, to int64,
	currency money.Currency,
	amount decimal.Decimal,
) (int64, error) {
	payload := map[string]interface{}{
		"from":     from,
		"to":       to,
		"currency": currency,
		"amount":   amount,
	}
	var data struct {
		TransactionID int64 `json:"transactionId"`
	}
	if _, err := c.send(ctx, request.Post(c.url("/v1/transactions"), payload), &data); err != nil {
		return 0, err
	}
	return data.TransactionID, nil
}

func (c *apiClient) Receive(ctx context.Context, transactionID, receiverID int64, accept bool) (string, error) {
	payload := map[string]interface{}{
		"receiver": receiverID,
		"accept":   accept,
	}
	return c.send(ctx, request.Post(c.url("/v1/transactions/%v/receive", transactionID), payload), nil)
}
