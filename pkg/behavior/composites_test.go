package behavior

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptNode plays back a fixed list of statuses, repeating the last one
// once the script is exhausted, and counts how often it was ticked.
type scriptNode struct {
	name   string
	script []Status
	calls  int
}

func (n *scriptNode) Name() string { return n.name }

func (n *scriptNode) Tick(TickContext) (Status, error) {
	idx := n.calls
	if idx >= len(n.script) {
		idx = len(n.script) - 1
	}
	n.calls++
	return n.script[idx], nil
}

func script(name string, statuses ...Status) *scriptNode {
	return &scriptNode{name: name, script: statuses}
}

// errNode always fails its evaluation with an error.
type errNode struct{ err error }

func (n *errNode) Name() string { return "boom" }

func (n *errNode) Tick(TickContext) (Status, error) {
	return StatusFailure, n.err
}

func tick(t *testing.T, n interface {
	Tick(TickContext) (Status, error)
}) Status {
	t.Helper()
	st, err := n.Tick(TickContext{BB: NewBlackboard()})
	require.NoError(t, err)
	return st
}

func TestSequence(t *testing.T) {
	t.Run("all children succeed", func(t *testing.T) {
		a := script("a", StatusSuccess)
		b := script("b", StatusSuccess)
		seq := NewSequence("seq", true)
		seq.AddChild(a)
		seq.AddChild(b)

		require.Equal(t, StatusSuccess, tick(t, seq))

		// Cursor was reset: the next tick restarts at the first child.
		require.Equal(t, StatusSuccess, tick(t, seq))
		require.Equal(t, 2, a.calls)
		require.Equal(t, 2, b.calls)
	})

	t.Run("failure stops the pass and resets", func(t *testing.T) {
		a := script("a", StatusSuccess)
		b := script("b", StatusFailure)
		c := script("c", StatusSuccess)
		seq := NewSequence("seq", true)
		seq.AddChild(a)
		seq.AddChild(b)
		seq.AddChild(c)

		require.Equal(t, StatusFailure, tick(t, seq))
		require.Equal(t, 0, c.calls)

		require.Equal(t, StatusFailure, tick(t, seq))
		require.Equal(t, 2, a.calls)
	})

	t.Run("running child resumes at the same position", func(t *testing.T) {
		a := script("a", StatusSuccess)
		b := script("b", StatusRunning, StatusRunning, StatusSuccess)
		c := script("c", StatusSuccess)
		seq := NewSequence("seq", true)
		seq.AddChild(a)
		seq.AddChild(b)
		seq.AddChild(c)

		require.Equal(t, StatusRunning, tick(t, seq))
		require.Equal(t, StatusRunning, tick(t, seq))
		require.Equal(t, StatusSuccess, tick(t, seq))

		// The first child ran once; only the running child was re-entered.
		require.Equal(t, 1, a.calls)
		require.Equal(t, 3, b.calls)
		require.Equal(t, 1, c.calls)
	})

	t.Run("without keepState every tick restarts at the first child", func(t *testing.T) {
		a := script("a", StatusSuccess)
		b := script("b", StatusRunning)
		seq := NewSequence("seq", false)
		seq.AddChild(a)
		seq.AddChild(b)

		require.Equal(t, StatusRunning, tick(t, seq))
		require.Equal(t, StatusRunning, tick(t, seq))
		require.Equal(t, StatusRunning, tick(t, seq))
		require.Equal(t, 3, a.calls)
		require.Equal(t, 3, b.calls)
	})

	t.Run("zero children is a running no-op", func(t *testing.T) {
		require.Equal(t, StatusRunning, tick(t, NewSequence("empty", true)))
	})

	t.Run("child error propagates", func(t *testing.T) {
		boom := errors.New("sensor offline")
		seq := NewSequence("seq", true)
		seq.AddChild(&errNode{err: boom})

		_, err := seq.Tick(TickContext{BB: NewBlackboard()})
		require.ErrorIs(t, err, boom)
	})
}

func TestSelector(t *testing.T) {
	t.Run("first non-failing child wins", func(t *testing.T) {
		a := script("a", StatusFailure)
		b := script("b", StatusSuccess)
		c := script("c", StatusSuccess)
		sel := NewSelector("sel", true)
		sel.AddChild(a)
		sel.AddChild(b)
		sel.AddChild(c)

		require.Equal(t, StatusSuccess, tick(t, sel))
		require.Equal(t, 0, c.calls)

		// Success reset the cursor; priority order is re-examined.
		require.Equal(t, StatusSuccess, tick(t, sel))
		require.Equal(t, 2, a.calls)
	})

	t.Run("all children fail", func(t *testing.T) {
		a := script("a", StatusFailure)
		b := script("b", StatusFailure)
		sel := NewSelector("sel", true)
		sel.AddChild(a)
		sel.AddChild(b)

		require.Equal(t, StatusFailure, tick(t, sel))

		require.Equal(t, StatusFailure, tick(t, sel))
		require.Equal(t, 2, a.calls)
		require.Equal(t, 2, b.calls)
	})

	t.Run("running child holds the cursor", func(t *testing.T) {
		a := script("a", StatusFailure)
		b := script("b", StatusRunning, StatusSuccess)
		sel := NewSelector("sel", true)
		sel.AddChild(a)
		sel.AddChild(b)

		require.Equal(t, StatusRunning, tick(t, sel))
		require.Equal(t, StatusSuccess, tick(t, sel))
		require.Equal(t, 1, a.calls)
		require.Equal(t, 2, b.calls)
	})

	t.Run("reactive selector re-checks higher priorities", func(t *testing.T) {
		a := script("a", StatusFailure)
		b := script("b", StatusRunning)
		sel := NewSelector("sel", false)
		sel.AddChild(a)
		sel.AddChild(b)

		require.Equal(t, StatusRunning, tick(t, sel))
		require.Equal(t, StatusRunning, tick(t, sel))
		require.Equal(t, 2, a.calls)
	})
}

func TestUntilFail(t *testing.T) {
	t.Run("all successes keep it running", func(t *testing.T) {
		a := script("a", StatusSuccess)
		b := script("b", StatusSuccess)
		uf := NewUntilFail("uf", true)
		uf.AddChild(a)
		uf.AddChild(b)

		require.Equal(t, StatusRunning, tick(t, uf))

		// Exhaustion reset the cursor; the next tick is a fresh pass.
		require.Equal(t, StatusRunning, tick(t, uf))
		require.Equal(t, 2, a.calls)
		require.Equal(t, 2, b.calls)
	})

	t.Run("first failure ends the pass", func(t *testing.T) {
		a := script("a", StatusSuccess)
		b := script("b", StatusFailure)
		uf := NewUntilFail("uf", true)
		uf.AddChild(a)
		uf.AddChild(b)

		require.Equal(t, StatusFailure, tick(t, uf))

		require.Equal(t, StatusFailure, tick(t, uf))
		require.Equal(t, 2, a.calls)
	})
}

func TestRepeat(t *testing.T) {
	t.Run("never terminal on the success path", func(t *testing.T) {
		a := script("a", StatusSuccess)
		rep := NewRepeat("rep", true)
		rep.AddChild(a)

		for i := 0; i < 5; i++ {
			require.Equal(t, StatusRunning, tick(t, rep))
		}
		require.Equal(t, 5, a.calls)
	})

	t.Run("never terminal on the failure path", func(t *testing.T) {
		a := script("a", StatusFailure)
		rep := NewRepeat("rep", true)
		rep.AddChild(a)

		require.Equal(t, StatusRunning, tick(t, rep))
		require.Equal(t, StatusRunning, tick(t, rep))
		require.Equal(t, 2, a.calls)
	})

	t.Run("running child still resumes", func(t *testing.T) {
		a := script("a", StatusSuccess)
		b := script("b", StatusRunning, StatusSuccess)
		rep := NewRepeat("rep", true)
		rep.AddChild(a)
		rep.AddChild(b)

		require.Equal(t, StatusRunning, tick(t, rep))
		require.Equal(t, StatusRunning, tick(t, rep))
		require.Equal(t, 1, a.calls)
		require.Equal(t, 2, b.calls)
	})
}

func TestCompositeInvalidChildStatus(t *testing.T) {
	bad := &scriptNode{name: "bad", script: []Status{StatusInvalid}}
	seq := NewSequence("seq", true)
	seq.AddChild(bad)

	_, err := seq.Tick(TickContext{BB: NewBlackboard()})
	require.ErrorIs(t, err, ErrNoStatus)
}
