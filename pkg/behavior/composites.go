package behavior

import "fmt"

// Sequential composites: Sequence, Selector, Repeat, UntilFail.
//
// All four run the same cursor loop and differ only in how a child's
// terminal status is handled and what is returned once every child has been
// passed. The reactions live in a stepPolicy value per node kind so the
// near-identical variants cannot drift apart.

// stepPolicy describes how a sequential composite reacts to a child's
// terminal status. A "stops" flag means reset the cursor and return the
// paired result; otherwise the cursor advances to the next child.
type stepPolicy struct {
	successStops    bool
	successResult   Status
	failureStops    bool
	failureResult   Status
	exhaustedResult Status
}

var (
	sequencePolicy = stepPolicy{
		failureStops:    true,
		failureResult:   StatusFailure,
		exhaustedResult: StatusSuccess,
	}
	selectorPolicy = stepPolicy{
		successStops:    true,
		successResult:   StatusSuccess,
		exhaustedResult: StatusFailure,
	}
	// untilFailPolicy reacts to a child Failure exactly like sequencePolicy;
	// only the exhausted result differs.
	untilFailPolicy = stepPolicy{
		failureStops:    true,
		failureResult:   StatusFailure,
		exhaustedResult: StatusRunning,
	}
	repeatPolicy = stepPolicy{
		failureStops:    true,
		failureResult:   StatusRunning,
		exhaustedResult: StatusRunning,
	}
)

// composite owns an ordered child list and the cursor loop shared by the
// sequential node kinds.
type composite struct {
	baseNode
	children  []Node
	keepState bool
	policy    stepPolicy
	cur       *cursor
}

// AddChild appends a child; insertion order is evaluation order.
func (c *composite) AddChild(child Node) {
	c.children = append(c.children, child)
}

func (c *composite) acceptChild(child Node) error {
	c.AddChild(child)
	return nil
}

// Children returns the ordered child list.
func (c *composite) Children() []Node { return c.children }

// Tick runs the cursor loop. Without keepState the cursor is rebuilt every
// tick, so evaluation always restarts at the first child; with keepState a
// Running child leaves the cursor in place and the next tick resumes there.
// Child errors propagate unmodified and abort the tick.
func (c *composite) Tick(t TickContext) (Status, error) {
	if c.cur == nil || !c.keepState {
		c.cur = newCursor(c.children)
	}
	if len(c.children) == 0 {
		return StatusRunning, nil
	}
	for !c.cur.exhausted() {
		st, err := c.cur.current().Tick(t)
		if err != nil {
			return StatusFailure, err
		}
		switch st {
		case StatusRunning:
			// Cursor untouched: this child is re-entered on the next tick.
			return StatusRunning, nil
		case StatusSuccess:
			if c.policy.successStops {
				c.cur.reset()
				return c.policy.successResult, nil
			}
			c.cur.advance()
		case StatusFailure:
			if c.policy.failureStops {
				c.cur.reset()
				return c.policy.failureResult, nil
			}
			c.cur.advance()
		default:
			return StatusInvalid, fmt.Errorf("%w: %s", ErrNoStatus, c.cur.current().Name())
		}
	}
	c.cur.reset()
	return c.policy.exhaustedResult, nil
}

// Sequence runs children in order until one fails; Success once all
// succeed. Failure resets the cursor.
type Sequence struct{ composite }

func NewSequence(name string, keepState bool) *Sequence {
	return &Sequence{composite{baseNode: baseNode{name: name}, keepState: keepState, policy: sequencePolicy}}
}

// Selector runs children in order until one does not fail; the first
// Success wins. Failure of every child yields Failure. With keepState false
// it re-examines higher-priority children on every tick.
type Selector struct{ composite }

func NewSelector(name string, keepState bool) *Selector {
	return &Selector{composite{baseNode: baseNode{name: name}, keepState: keepState, policy: selectorPolicy}}
}

// UntilFail runs children in order and keeps returning Running for as long
// as they all succeed; the first Failure ends the pass with Failure.
type UntilFail struct{ composite }

func NewUntilFail(name string, keepState bool) *UntilFail {
	return &UntilFail{composite{baseNode: baseNode{name: name}, keepState: keepState, policy: untilFailPolicy}}
}

// Repeat runs children in order forever: a full pass and a child Failure
// both restart from the first child, so its own tick never reports Success
// or Failure.
type Repeat struct{ composite }

func NewRepeat(name string, keepState bool) *Repeat {
	return &Repeat{composite{baseNode: baseNode{name: name}, keepState: keepState, policy: repeatPolicy}}
}
