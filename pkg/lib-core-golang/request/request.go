package request

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/evgeny-myasishchev/ledger.exchange/pkg/lib-core-golang/diag"
)

var defaultLogger = diag.CreateLogger()

type sendCfg struct {
	logger  diag.Logger
	timeout time.Duration
}

// SendOpt is a send specific option
type SendOpt func(cfg *sendCfg)

func withLogger(logger diag.Logger) SendOpt {
	return func(cfg *sendCfg) {
		cfg.logger = logger
	}
}

// WithTimeout sets the timeout of the whole exchange
func WithTimeout(timeout time.Duration) SendOpt {
	return func(cfg *sendCfg) {
		cfg.timeout = timeout
	}
}

// HTTPError is returned if response status is other than 2xx
type HTTPError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e HTTPError) Error() string {
	return fmt.Sprintf("[%v](%v): %s", e.StatusCode, e.Status, e.Body)
}

// NewHTTPErrorFromResponse reads the response and builds an error from it
func NewHTTPErrorFromResponse(res *http.Response) error {
	defer res.Body.Close()
	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return errors.Wrapf(err, "Failed to read response body of status %v", res.StatusCode)
	}
	return HTTPError{
		StatusCode: res.StatusCode,
		Status:     http.StatusText(res.StatusCode),
		Body:       body,
	}
}

// ReqFactory is a function that creates an instance of a request
type ReqFactory func() (*http.Request, error)

// Get creates a new req factory that creates a get request for given url
func Get(url string) ReqFactory {
	return func() (*http.Request, error) {
		return http.NewRequest("GET", url, nil)
	}
}

// Post creates a new req factory that creates a post request with
// payload encoded as JSON. Nil payload means no body
func Post(url string, payload interface{}) ReqFactory {
	return func() (*http.Request, error) {
		if payload == nil {
			return http.NewRequest("POST", url, nil)
		}
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrap(err, "Failed to marshal payload")
		}
		req, err := http.NewRequest("POST", url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("content-type", "application/json")
		return req, nil
	}
}

// ResFactory is a function that holds a request result with a response or error
type ResFactory func() (*http.Response, error)

// ReadAll will read entire body as a byte array
func (f ResFactory) ReadAll() ([]byte, error) {
	res, err := f()
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	return ioutil.ReadAll(res.Body)
}

// DecodeJSON will decode the body into the receiver
func (f ResFactory) DecodeJSON(receiver interface{}) error {
	body, err := f.ReadAll()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, receiver); err != nil {
		return errors.Wrap(err, "Failed to decode response body")
	}
	return nil
}

func newResFactory(res *http.Response, err error) ResFactory {
	if err == nil && res.StatusCode >= 300 {
		err = NewHTTPErrorFromResponse(res)
		res = nil
	}
	return func() (*http.Response, error) {
		return res, err
	}
}

// Do will send the request. Will fail if response status is other than 2xx
func Do(ctx context.Context, factory ReqFactory, opts ...SendOpt) ResFactory {
	cfg := sendCfg{logger: defaultLogger}
	for _, opt := range opts {
		opt(&cfg)
	}
	httpClient := &http.Client{
		Transport: http.DefaultTransport,
		Timeout:   cfg.timeout,
	}
	req, err := factory()
	if err != nil {
		return newResFactory(nil, errors.Wrap(err, "Failed to create request"))
	}
	if requestID := diag.RequestIDValue(ctx); requestID != "" {
		req.Header.Set("x-request-id", requestID)
	}
	cfg.logger.Debug(ctx, "Sending %v %v", req.Method, req.URL)
	res, err := httpClient.Do(req.WithContext(ctx))
	if err != nil {
		cfg.logger.WithError(err).Info(ctx, "Request %v %v failed", req.Method, req.URL)
	} else {
		cfg.logger.Debug(ctx, "Received %v from %v %v", res.StatusCode, req.Method, req.URL)
	}
	return newResFactory(res, err)
}
