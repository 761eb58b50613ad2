package behavior

import (
	"time"

	"go.uber.org/zap"
)

// Tree owns a built root node. The caller decides tick cadence; Tree only
// forwards Tick and optionally traces results.
type Tree struct {
	root Node
	log  *zap.Logger
}

// TreeOption configures a Tree.
type TreeOption func(*Tree)

// WithLogger enables debug tracing of every tick on the given logger.
func WithLogger(l *zap.Logger) TreeOption {
	return func(t *Tree) {
		if l != nil {
			t.log = l
		}
	}
}

// NewTree wraps root. A nil root yields a tree whose ticks succeed
// trivially.
func NewTree(root Node, opts ...TreeOption) *Tree {
	t := &Tree{root: root, log: zap.NewNop()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Root returns the wrapped root node.
func (t *Tree) Root() Node { return t.root }

// Tick evaluates the root once.
func (t *Tree) Tick(tc TickContext) (Status, error) {
	if t.root == nil {
		return StatusSuccess, nil
	}
	start := time.Now()
	st, err := t.root.Tick(tc)
	if err != nil {
		t.log.Debug("tick aborted",
			zap.String("root", t.root.Name()),
			zap.Error(err),
		)
		return st, err
	}
	t.log.Debug("tick",
		zap.String("root", t.root.Name()),
		zap.Stringer("status", st),
		zap.Duration("took", time.Since(start)),
	)
	return st, nil
}
