package core

import "errors"

// ErrTreeNotFound is returned when a tree ID cannot be resolved.
var ErrTreeNotFound = errors.New("tree not found")

// ErrAgentNotFound is returned when an agent's blackboard cannot be found in a store.
var ErrAgentNotFound = errors.New("agent not found")

// ErrMissingRoot is returned when a tree specification designates a root
// entry that does not exist in its node table.
var ErrMissingRoot = errors.New("root node not found")
