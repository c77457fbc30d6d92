package server

import (
	"net/http"
)

// BasicRouter is a simple HTTP router implementing the [Router] interface.
//
// Uses [http.ServeMux] internally for path matching, with a per-pattern method
// table so the same pattern can serve different handlers per HTTP method.
type BasicRouter struct {
	mux         *http.ServeMux
	routes      map[string]map[string]http.Handler
	middlewares []Middleware
}

// NewBasicRouter creates a new [BasicRouter] instance.
func NewBasicRouter() *BasicRouter {
	return &BasicRouter{
		mux:         http.NewServeMux(),
		routes:      map[string]map[string]http.Handler{},
		middlewares: []Middleware{},
	}
}

// Use adds [Middleware] to the [Router] instance's middleware stack, applied in the order it's added.
func (r *BasicRouter) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

// Handle registers a handler for the specified HTTP method and path pattern.
// Patterns may contain [http.ServeMux] wildcards such as /status/{id}/check.
//
// The handler is wrapped with all registered middleware. Requests matching the
// pattern with an unregistered method receive 405.
func (r *BasicRouter) Handle(method, path string, handler http.Handler) {
	byMethod, seen := r.routes[path]
	if !seen {
		byMethod = map[string]http.Handler{}
		r.routes[path] = byMethod
		r.mux.Handle(path, r.dispatcher(path))
	}
	byMethod[method] = r.Apply(handler)
}

// Handler registers a custom Handler implementation.
//
// All routes returned by [Handler.Routes] are registered with this handler,
// bypassing method filtering.
func (r *BasicRouter) Handler(handler Handler) {
	wrapped := r.Apply(handler)

	for _, route := range handler.Routes() {
		r.mux.Handle(route, wrapped)
	}
}

// ServeHTTP implements [http.Handler] for the entire router.
func (r *BasicRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Apply wraps a handler with all registered middleware.
//
// Middleware is applied in reverse order (last added wraps first).
func (r *BasicRouter) Apply(handler http.Handler) http.Handler {
	wrapped := handler

	for i := len(r.middlewares) - 1; i >= 0; i-- {
		wrapped = r.middlewares[i](wrapped)
	}

	return wrapped
}

// dispatcher routes a matched pattern to the handler for the request's method.
func (r *BasicRouter) dispatcher(path string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if handler, ok := r.routes[path][req.Method]; ok {
			handler.ServeHTTP(w, req)
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})
}
