package core

import "fmt"

// Status is the outcome of ticking a node. It is a closed set: nodes must
// report exactly one of the four values below.
type Status uint8

const (
	// StatusSuccess means the node completed its work.
	StatusSuccess Status = iota + 1
	// StatusFailure means the node could not complete its work.
	StatusFailure
	// StatusRunning means the node made partial progress and expects to be
	// ticked again. It is not a suspension; the call stack unwinds normally.
	StatusRunning
	// StatusError signals a domain failure (e.g. a missing precondition).
	// It is a regular value consumed by the caller, never a panic.
	StatusError
)

// Terminal reports whether the status ends an activation. Everything but
// RUNNING is terminal.
func (s Status) Terminal() bool {
	return s != StatusRunning
}

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	case StatusRunning:
		return "running"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}
