package diag

import (
	"math"
	"net"
	"net/http"
	"runtime"
	"strings"
	"time"

	uuid "github.com/satori/go.uuid"
)

// Note: router imports diag so router.MiddlewareFunc is not available here

const requestIDHeader = "x-request-id"

// Requests to these paths are served without logging
var quietPaths = map[string]bool{
	"/v1/healthcheck/ping": true,
}

type requestIDMiddlewareCfg struct {
	newUUID func() uuid.UUID
}

type requestIDMiddlewareSetup func(cfg *requestIDMiddlewareCfg)

// NewRequestIDMiddleware - creates a middleware that puts the request id to the
// request context and echoes it back. The id is generated if client did not send one
func NewRequestIDMiddleware(setup ...requestIDMiddlewareSetup) func(next http.Handler) http.Handler {
	cfg := requestIDMiddlewareCfg{newUUID: uuid.NewV4}
	for _, setupFn := range setup {
		setupFn(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			requestID := req.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = cfg.newUUID().String()
			}
			w.Header().Set(requestIDHeader, requestID)
			next.ServeHTTP(w, req.WithContext(ContextWithRequestID(req.Context(), requestID)))
		})
	}
}

// statusRecorder remembers the status written by handlers
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) statusCode() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

type logRequestsMiddlewareCfg struct {
	logger       Logger
	runtimeMemMb func() float64
	now          func() time.Time
}

type logRequestsMiddlewareOpt func(*logRequestsMiddlewareCfg)

func flattenValues(values map[string][]string) map[string]string {
	flattened := make(map[string]string, len(values))
	for key, val := range values {
		flattened[key] = strings.Join(val, ", ")
	}
	return flattened
}

func runtimeMemMb() float64 {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	return math.Round(float64(memStats.Alloc)/1024.0/1024.0*1000) / 1000
}

// NewLogRequestsMiddleware - log request start/end. Server errors are logged at warn level
func NewLogRequestsMiddleware(opts ...logRequestsMiddlewareOpt) func(next http.Handler) http.Handler {
	cfg := logRequestsMiddlewareCfg{
		runtimeMemMb: runtimeMemMb,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = CreateLogger()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			path := req.URL.Path
			if quietPaths[path] {
				next.ServeHTTP(w, req)
				return
			}
			ctx := req.Context()

			ip, port, err := net.SplitHostPort(req.RemoteAddr)
			if err != nil {
				cfg.logger.Warn(ctx, "Can not parse remote addr: %v", req.RemoteAddr)
				ip = req.RemoteAddr
			}

			cfg.logger.
				WithData(MsgData{
					"method":        req.Method,
					"url":           req.URL.RequestURI(),
					"path":          path,
					"userAgent":     req.UserAgent(),
					"headers":       flattenValues(req.Header),
					"query":         flattenValues(req.URL.Query()),
					"remoteAddress": ip,
					"remotePort":    port,
					"memoryUsageMb": cfg.runtimeMemMb(),
				}).
				Info(ctx, "BEGIN REQ: %s %s", req.Method, path)

			recorder := &statusRecorder{ResponseWriter: w}
			startedAt := cfg.now()
			next.ServeHTTP(recorder, req)
			duration := cfg.now().Sub(startedAt)

			status := recorder.statusCode()
			endLogger := cfg.logger.WithData(MsgData{
				"statusCode":    status,
				"headers":       flattenValues(w.Header()),
				"duration":      duration.Seconds(),
				"memoryUsageMb": cfg.runtimeMemMb(),
			})
			if status >= http.StatusInternalServerError {
				endLogger.Warn(ctx, "END REQ: %v - %v", status, path)
			} else {
				endLogger.Info(ctx, "END REQ: %v - %v", status, path)
			}
		})
	}
}
