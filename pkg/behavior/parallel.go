package behavior

import (
	"github.com/zeusync/behave/pkg/concurrent"
)

// Parallel ticks every child concurrently on each tick and aggregates by
// quota: Success once requiredToSucceed children succeed, else Failure once
// requiredToFail children fail, else Running. A threshold of zero disables
// that clause. Parallel holds no cursor; every tick re-evaluates every
// child from scratch.
//
// Unlike the sequential composites, a child whose evaluation errors is
// contained and counted as a Failure vote rather than aborting the tick.
type Parallel struct {
	baseNode
	children          []Node
	requiredToFail    int
	requiredToSucceed int
}

func NewParallel(name string, requiredToFail, requiredToSucceed int) *Parallel {
	return &Parallel{
		baseNode:          baseNode{name: name},
		requiredToFail:    requiredToFail,
		requiredToSucceed: requiredToSucceed,
	}
}

// AddChild appends a child; Parallel takes any number.
func (p *Parallel) AddChild(child Node) {
	p.children = append(p.children, child)
}

func (p *Parallel) acceptChild(child Node) error {
	p.AddChild(child)
	return nil
}

// Children returns the child list. Evaluation order across children is
// unspecified.
func (p *Parallel) Children() []Node { return p.children }

// Tick fans out all children, joins, then counts votes.
func (p *Parallel) Tick(t TickContext) (Status, error) {
	statuses := concurrent.Collect(p.children, func(child Node) Status {
		st, err := child.Tick(t)
		if err != nil || !st.Valid() {
			return StatusFailure
		}
		return st
	})

	successes, failures := 0, 0
	for _, st := range statuses {
		switch st {
		case StatusSuccess:
			successes++
		case StatusFailure:
			failures++
		}
	}

	if p.requiredToSucceed > 0 && successes >= p.requiredToSucceed {
		return StatusSuccess, nil
	}
	if p.requiredToFail > 0 && failures >= p.requiredToFail {
		return StatusFailure, nil
	}
	return StatusRunning, nil
}
