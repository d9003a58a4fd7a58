package router

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/go-playground/validator.v9"

	"github.com/evgeny-myasishchev/ledger.exchange/pkg/lib-core-golang/diag"
)

var logger = diag.CreateLogger()

type contextKey string

const (
	validatorRequestKey   contextKey = "validator"
	pathParamValueFuncKey contextKey = "path-param-value-func"
)

// RequestParamType represents type of a request parameter
type RequestParamType string

// PathParam is a request path parameter type
const PathParam RequestParamType = "path"

type structValidator validator.Validate

func newStructValidator() *structValidator {
	return (*structValidator)(validator.New())
}

func (v *structValidator) validateStruct(ctx context.Context, target interface{}) error {
	vdt := (*validator.Validate)(v)
	if err := vdt.Struct(target); err != nil {
		logger.WithError(err).Info(ctx, "Failed to validate params")
		if err, ok := err.(validator.ValidationErrors); ok {
			badFields := make([]string, 0, len(err))
			for _, fieldErr := range err {
				badFields = append(badFields, fieldErr.Field())
			}
			return BadRequestError(fmt.Sprint("ValidationFailed: params ", badFields, " are invalid"))
		}
		return BadRequestError("ValidationFailed: failed to validate params")
	}
	return nil
}

type pathParamValueFunc func(req *http.Request, name string) string

// ParamsBinder binds path params of a request to values. The first
// failure stops binding and is returned by Validate
type ParamsBinder struct {
	req            *http.Request
	err            error
	validator      *structValidator
	pathParamValue pathParamValueFunc
}

func newParamsBinder(req *http.Request, pathParamValue pathParamValueFunc) *ParamsBinder {
	return &ParamsBinder{req: req, validator: newStructValidator(), pathParamValue: pathParamValue}
}

// PathParam binds param from request path
func (b *ParamsBinder) PathParam(name string) *ParamBinder {
	return &ParamBinder{name: name, rawValue: b.pathParamValue(b.req, name), binder: b}
}

// Validate returns binding error if any, otherwise validates exposed fields of the target.
// See https://godoc.org/gopkg.in/go-playground/validator.v9 for more details
func (b *ParamsBinder) Validate(target interface{}) error {
	if b.err != nil {
		return b.err
	}
	return b.validator.validateStruct(b.req.Context(), target)
}

// ParamBinder binds particular param
type ParamBinder struct {
	name     string
	rawValue string
	binder   *ParamsBinder
}

// Int64 bind param as int64
func (pb *ParamBinder) Int64(receiver *int64) *ParamsBinder {
	if pb.binder.err != nil {
		return pb.binder
	}
	value, err := strconv.ParseInt(pb.rawValue, 10, 64)
	if err != nil {
		logger.WithError(err).Info(pb.binder.req.Context(), "Failed to parse path param %v", pb.name)
		pb.binder.err = ParamValidationError(PathParam, pb.name)
		return pb.binder
	}
	*receiver = value
	return pb.binder
}

// HandlerToolkit - Collection of various tools to help processing request and build a response
type HandlerToolkit interface {
	BindParams() *ParamsBinder

	// BindPayload decodes json body into the receiver and validates it
	BindPayload(receiver interface{}) error

	// WriteEnvelope will write the data wrapped into the response envelope
	// with given http status
	WriteEnvelope(statusCode int, message string, data interface{}) error
}

// ToolkitHandlerFunc - a little extension of a builtin HandlerFunc
type ToolkitHandlerFunc func(w http.ResponseWriter, req *http.Request, h HandlerToolkit) error

// ServeHTTP is an implementation of http.Handler. This allows ToolkitHandlerFunc to be used
// in place of the http.Handler
func (f ToolkitHandlerFunc) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	toolkit := handlerToolkit{
		request:        req,
		responseWriter: w,
		validator:      req.Context().Value(validatorRequestKey).(*structValidator),
		pathParamValue: req.Context().Value(pathParamValueFuncKey).(pathParamValueFunc),
	}
	err := f(w, req, &toolkit)
	if err != nil {
		errorResponse := newHTTPErrorFromError(err)
		if errorResponse.StatusCode >= http.StatusInternalServerError {
			logger.WithError(err).Error(req.Context(), "Failed to process request")
		} else {
			logger.WithError(err).Info(req.Context(), "Request rejected")
		}
		errorResponse.Send(w)
	}
}

// MiddlewareFunc is a function that can be injected into a request chain
type MiddlewareFunc func(next http.Handler) http.Handler

// Router is a layer to abstract underlying http router implementation
// so we could swap it with relatively low efforts
type Router interface {
	// Handle registers the handler. Pattern may have named
	// path params, e.g /v1/accounts/:id
	Handle(method string, pattern string, handler http.Handler)

	// NotFound sets a handler of requests that did not match any route.
	// Must be called after all routes are registered
	NotFound(handler http.Handler)

	Use(mw MiddlewareFunc)

	ServeHTTP(http.ResponseWriter, *http.Request)
}

// CreateRouter returns default router implementation
func CreateRouter() Router {
	return createGojiRouter()
}

// NotFoundHandler responds with 404 error envelope
func NotFoundHandler() http.Handler {
	return ToolkitHandlerFunc(func(w http.ResponseWriter, req *http.Request, h HandlerToolkit) error {
		return ResourceNotFoundError(fmt.Sprintf("Route %v %v not found", req.Method, req.URL.Path))
	})
}

// RecoverMiddleware responds with 500 error envelope if a handler panics
func RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				err := errors.Errorf("Request handler panic: %v", rec)
				logger.WithError(err).Error(req.Context(), "Failed to process request")
				newHTTPErrorFromError(err).Send(w)
			}
		}()
		next.ServeHTTP(w, req)
	})
}

const shutdownTimeout = 10 * time.Second

// StartServer start the server with setup router function. The server
// is gracefully stopped when ctx is done
func StartServer(ctx context.Context, port int, setup func(r Router)) error {
	router := CreateRouter()
	setup(router)
	server := &http.Server{Addr: fmt.Sprintf(":%v", port), Handler: router}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info(ctx, "Shutting down server")
		shutdownErr <- server.Shutdown(shutdownCtx)
	}()

	logger.Info(ctx, "Starting server on port %v", port)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return errors.Wrap(err, "Server failed")
	}
	return <-shutdownErr
}
