// Package composites provides the branching control-flow nodes: Sequence,
// Selector, their memory-preserving variants, and threshold-based Parallel.
// Children are always evaluated left to right within one tick.
package composites
