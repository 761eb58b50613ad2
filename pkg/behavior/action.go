package behavior

import "fmt"

// Action wraps a user callable as a leaf node. The callable may block, e.g.
// for IO; t.Ctx is available to it. Actions hold no state of their own, so
// ticking one repeatedly is safe as long as the callable is.
type Action struct {
	baseNode
	fn func(t TickContext) (Status, error)
}

// NewAction creates a leaf node around fn.
func NewAction(name string, fn func(t TickContext) (Status, error)) *Action {
	return &Action{baseNode: baseNode{name: name}, fn: fn}
}

// Tick invokes the callable and validates its result. A callable that
// completes without a recognizable status is a contract violation and
// reports ErrNoStatus.
func (a *Action) Tick(t TickContext) (Status, error) {
	if a.fn == nil {
		return StatusInvalid, fmt.Errorf("%w: %s", ErrNoStatus, a.name)
	}
	st, err := a.fn(t)
	if err != nil {
		return StatusFailure, err
	}
	if !st.Valid() {
		return StatusInvalid, fmt.Errorf("%w: %s", ErrNoStatus, a.name)
	}
	return st, nil
}

// NewCondition wraps a boolean predicate as a leaf node: true maps to
// Success, false to Failure. Sugar over NewAction.
func NewCondition(name string, pred func(t TickContext) (bool, error)) *Action {
	return NewAction(name, func(t TickContext) (Status, error) {
		ok, err := pred(t)
		if err != nil {
			return StatusFailure, err
		}
		if ok {
			return StatusSuccess, nil
		}
		return StatusFailure, nil
	})
}
