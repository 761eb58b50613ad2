// Package behavior implements a behavior tree engine: small decision and
// action nodes composed into a tree that is ticked repeatedly against a
// shared blackboard. Composites support resumable Running children via a
// per-node cursor, and trees are assembled with the fluent stack Builder.
package behavior

import (
	"context"
	"errors"
	"time"
)

// Status represents the execution result of a behavior node tick.
// The zero value is StatusInvalid so a leaf that completes without
// producing a recognizable status can be detected.
type Status int

const (
	StatusInvalid Status = iota
	StatusSuccess
	StatusFailure
	StatusRunning
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusFailure:
		return "Failure"
	case StatusRunning:
		return "Running"
	default:
		return "Invalid"
	}
}

// Valid reports whether s is one of the three tick outcomes.
func (s Status) Valid() bool {
	return s == StatusSuccess || s == StatusFailure || s == StatusRunning
}

// TickContext is passed into every node during Tick. The same Blackboard
// pointer is shared by the whole tree for the duration of a tick, so a
// mutation by one node is visible to siblings evaluated later.
type TickContext struct {
	Ctx       context.Context
	DeltaTime time.Duration
	BB        *Blackboard
}

// Node is a single node in a behavior tree.
type Node interface {
	// Name returns the diagnostic label of the node.
	Name() string

	// Tick evaluates the node once and returns its status. A non-nil error
	// means the tick aborted abnormally; the status is then meaningless.
	Tick(t TickContext) (Status, error)
}

// Construction and contract errors.
var (
	ErrNoNodes         = errors.New("behavior: no nodes to build")
	ErrUnnestedAction  = errors.New("behavior: action must be nested under a composite or decorator")
	ErrUnnestedSplice  = errors.New("behavior: splice must be nested under a composite or decorator")
	ErrUnbalancedEnd   = errors.New("behavior: end called with no open node")
	ErrNilSubtree      = errors.New("behavior: cannot splice a nil subtree")
	ErrInverterChild   = errors.New("behavior: inverter accepts exactly one child")
	ErrInverterNoChild = errors.New("behavior: inverter has no child")
	ErrNoStatus        = errors.New("behavior: node produced no status")
)

// baseNode implements common name storage for nodes.
type baseNode struct{ name string }

func (b baseNode) Name() string { return b.name }

// childAcceptor is implemented by nodes that can take children during
// assembly. Composites accept any number; decorators may refuse.
type childAcceptor interface {
	Node
	acceptChild(child Node) error
}
