// Package observability bridges the engine's lifecycle hooks to metrics
// backends. The Prometheus collector is the only implementation today.
package observability
