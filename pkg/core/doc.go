// Package core defines the behavior-tree execution primitives: the Status
// outcome set, the Node lifecycle protocol (Open/Tick/Close composed by
// Execute), the per-agent Blackboard, the Tick traversal context and the
// BehaviorTree aggregate.
//
// Tree definitions are stateless and immutable after load; every piece of
// cross-tick state is an explicit Blackboard entry keyed by (tree, node), so
// one definition can serve any number of agents concurrently.
package core
