package router

import (
	"context"
	"net/http"

	"goji.io"
	"goji.io/pat"
)

type gojiRouter struct {
	mux *goji.Mux
}

func (g *gojiRouter) Handle(method string, pattern string, handler http.Handler) {
	g.mux.Handle(pat.NewWithMethods(pattern, method), handler)
}

// NotFound matches any path so must be registered last
func (g *gojiRouter) NotFound(handler http.Handler) {
	g.mux.Handle(pat.New("/*"), handler)
}

func (g *gojiRouter) Use(mw MiddlewareFunc) {
	g.mux.Use(mw)
}

func (g *gojiRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.mux.ServeHTTP(w, r)
}

// createGojiRouter returns a router that supplies toolkit dependencies
// to every request. Validator is shared since it caches struct metadata
func createGojiRouter() Router {
	validator := newStructValidator()
	paramValue := pathParamValueFunc(pat.Param)
	mux := goji.NewMux()
	mux.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), validatorRequestKey, validator)
			ctx = context.WithValue(ctx, pathParamValueFuncKey, paramValue)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	return &gojiRouter{mux: mux}
}
