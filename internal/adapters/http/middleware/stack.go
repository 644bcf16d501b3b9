// Package middleware
package middleware

import "net/http"

type Middleware func(http.Handler) http.Handler

// Stack composes middleware. The first one added is the outermost.
type Stack struct {
	middlewares []Middleware
}

func New() *Stack {
	return &Stack{}
}

func (s *Stack) Use(mw Middleware) {
	s.middlewares = append(s.middlewares, mw)
}

func (s *Stack) Then(h http.Handler) http.Handler {
	for i := len(s.middlewares) - 1; i >= 0; i-- {
		h = s.middlewares[i](h)
	}
	return h
}

// Apply wraps a whole mux.
func (s *Stack) Apply(mux http.Handler) http.Handler {
	return s.Then(mux)
}
