package behavior

// cursor tracks which child of a sequential composite is current between
// ticks. It is the resume point for Running children: the owning composite
// leaves it in place when a child returns Running and re-enters there on the
// next tick, provided the composite keeps state.
type cursor struct {
	children []Node
	pos      int
}

func newCursor(children []Node) *cursor {
	return &cursor{children: children}
}

func (c *cursor) current() Node { return c.children[c.pos] }

func (c *cursor) advance() { c.pos++ }

func (c *cursor) exhausted() bool { return c.pos >= len(c.children) }

func (c *cursor) reset() { c.pos = 0 }
