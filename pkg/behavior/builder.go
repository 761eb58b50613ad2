package behavior

import "fmt"

// Builder assembles a tree from a flat, fluent call sequence. Every call
// that opens a composite or decorator must be balanced by exactly one End;
// the node most recently passed to End becomes the root returned by Build.
//
// Construction errors are sticky: the first one freezes the builder, every
// later call is a no-op, and Build returns the error. No partial tree ever
// escapes a failed build.
//
//	root, err := behavior.NewBuilder().
//		Sequence("patrol", true).
//		Condition("has-target", hasTarget).
//		Do("move", move).
//		End().
//		Build()
type Builder struct {
	stack []childAcceptor
	last  Node
	err   error
}

// NewBuilder creates an empty builder for one build session.
func NewBuilder() *Builder { return &Builder{} }

// push attaches node to the open parent (if any) and opens it for children.
func (b *Builder) push(node childAcceptor) *Builder {
	if b.err != nil {
		return b
	}
	if len(b.stack) > 0 {
		if err := b.top().acceptChild(node); err != nil {
			b.err = err
			return b
		}
	}
	b.stack = append(b.stack, node)
	return b
}

// attach adds a finished leaf or subtree to the open parent.
func (b *Builder) attach(node Node, emptyErr error) *Builder {
	if b.err != nil {
		return b
	}
	if len(b.stack) == 0 {
		b.err = emptyErr
		return b
	}
	if err := b.top().acceptChild(node); err != nil {
		b.err = err
	}
	return b
}

func (b *Builder) top() childAcceptor { return b.stack[len(b.stack)-1] }

// Sequence opens a Sequence node.
func (b *Builder) Sequence(name string, keepState bool) *Builder {
	return b.push(NewSequence(name, keepState))
}

// Selector opens a Selector node.
func (b *Builder) Selector(name string, keepState bool) *Builder {
	return b.push(NewSelector(name, keepState))
}

// Repeat opens a Repeat node.
func (b *Builder) Repeat(name string, keepState bool) *Builder {
	return b.push(NewRepeat(name, keepState))
}

// UntilFail opens an UntilFail node.
func (b *Builder) UntilFail(name string, keepState bool) *Builder {
	return b.push(NewUntilFail(name, keepState))
}

// Parallel opens a Parallel node with the given vote thresholds.
func (b *Builder) Parallel(name string, requiredToFail, requiredToSucceed int) *Builder {
	return b.push(NewParallel(name, requiredToFail, requiredToSucceed))
}

// Inverter opens an Inverter decorator; it accepts exactly one child.
func (b *Builder) Inverter(name string) *Builder {
	return b.push(NewInverter(name))
}

// Do attaches an action leaf to the open parent. Fails if nothing is open.
func (b *Builder) Do(name string, fn func(t TickContext) (Status, error)) *Builder {
	return b.attach(NewAction(name, fn), fmt.Errorf("%w: %s", ErrUnnestedAction, name))
}

// Condition attaches a predicate leaf to the open parent.
func (b *Builder) Condition(name string, pred func(t TickContext) (bool, error)) *Builder {
	return b.attach(NewCondition(name, pred), fmt.Errorf("%w: %s", ErrUnnestedAction, name))
}

// Splice attaches an already built subtree to the open parent without
// opening it for children.
func (b *Builder) Splice(subtree Node) *Builder {
	if b.err == nil && subtree == nil {
		b.err = ErrNilSubtree
		return b
	}
	return b.attach(subtree, ErrUnnestedSplice)
}

// End closes the most recently opened node, making it the candidate root.
func (b *Builder) End() *Builder {
	if b.err != nil {
		return b
	}
	if len(b.stack) == 0 {
		b.err = ErrUnbalancedEnd
		return b
	}
	b.last = b.top()
	b.stack = b.stack[:len(b.stack)-1]
	return b
}

// Build returns the root node, or the first construction error. Building
// without ever closing a node reports ErrNoNodes.
func (b *Builder) Build() (Node, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.last == nil {
		return nil, ErrNoNodes
	}
	return b.last, nil
}
