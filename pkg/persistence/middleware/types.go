package middleware

import "github.com/aretw0/canopy/pkg/ports"

// Middleware allows wrapping a BlackboardStore to add behavior.
type Middleware func(ports.BlackboardStore) ports.BlackboardStore

// Chain applies middlewares right to left, so the first one listed is the
// outermost wrapper.
func Chain(store ports.BlackboardStore, middlewares ...Middleware) ports.BlackboardStore {
	for i := len(middlewares) - 1; i >= 0; i-- {
		store = middlewares[i](store)
	}
	return store
}
