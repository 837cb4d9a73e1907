// Package leaves provides the built-in leaf nodes (constant outcomes, Wait)
// and adapters that lift plain functions into ACTION and CONDITION leaves.
// Domain-specific leaves live in the consuming application, registered
// through the node registry.
package leaves
