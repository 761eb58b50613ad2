package sim

import (
	"github.com/zeusync/behave/pkg/behavior"
)

// Blackboard keys used by the scout tree.
const (
	keyX         = "x"
	keyY         = "y"
	keyEnergy    = "energy"
	keyArtifacts = "artifacts"
	keyEscaped   = "escaped"
	keySteps     = "steps"
	keyLastTile  = "last_tile"
)

// Energy model tuning.
const (
	fullEnergy    = 100.0
	restThreshold = 25.0
	stepCost      = 5.0
	trapCost      = 20.0
	regenPerSec   = 40.0
)

// NewScoutTree assembles the scout decision tree. Priorities, top to
// bottom: leave through the exit, recover when exhausted, otherwise loot
// and explore. The selector is reactive (keepState false) so a higher
// priority branch can take over between ticks even while a lower one was
// mid-flight.
func NewScoutTree(world *World) (behavior.Node, error) {
	loot, err := newLootTree(world)
	if err != nil {
		return nil, err
	}

	return behavior.NewBuilder().
		Selector("scout", false).
		Sequence("leave", true).
		Condition("at-exit", atExit(world)).
		Do("escape", escape()).
		End().
		Sequence("recover", true).
		Condition("exhausted", exhausted()).
		UntilFail("rest", true).
		Do("sleep", sleep()).
		End().
		End().
		Sequence("roam", true).
		Inverter("still-inside").
		Condition("escaped", hasEscaped()).
		End().
		Splice(loot).
		Parallel("sense-and-move", 1, 2).
		Do("scan", scan(world)).
		Do("advance", advance(world)).
		End().
		End().
		End().
		Build()
}

// newLootTree is a self-contained subtree spliced into the scout: pick up
// an artifact when standing on one, otherwise succeed and move on.
func newLootTree(world *World) (behavior.Node, error) {
	return behavior.NewBuilder().
		Selector("loot", true).
		Sequence("grab", true).
		Condition("on-artifact", onArtifact(world)).
		Do("pickup", pickup(world)).
		End().
		Condition("nothing-here", func(behavior.TickContext) (bool, error) { return true, nil }).
		End().
		Build()
}

// NewIdleTree is the behavior of an agent with nowhere to go: wander one
// step and pause, forever. The Repeat root never reports a terminal
// status, which is exactly what a background NPC loop wants.
func NewIdleTree(world *World) (behavior.Node, error) {
	return behavior.NewBuilder().
		Repeat("idle", true).
		Do("wander", advance(world)).
		Do("pause", func(behavior.TickContext) (behavior.Status, error) {
			return behavior.StatusSuccess, nil
		}).
		End().
		Build()
}

func position(t behavior.TickContext) (int, int) {
	x, _ := t.BB.GetInt(keyX)
	y, _ := t.BB.GetInt(keyY)
	return x, y
}

func atExit(world *World) func(behavior.TickContext) (bool, error) {
	return func(t behavior.TickContext) (bool, error) {
		x, y := position(t)
		return world.At(x, y) == TileExit, nil
	}
}

func escape() func(behavior.TickContext) (behavior.Status, error) {
	return func(t behavior.TickContext) (behavior.Status, error) {
		t.BB.Set(keyEscaped, true)
		return behavior.StatusSuccess, nil
	}
}

func hasEscaped() func(behavior.TickContext) (bool, error) {
	return func(t behavior.TickContext) (bool, error) {
		escaped, _ := t.BB.GetBool(keyEscaped)
		return escaped, nil
	}
}

func exhausted() func(behavior.TickContext) (bool, error) {
	return func(t behavior.TickContext) (bool, error) {
		energy, ok := t.BB.GetFloat(keyEnergy)
		return ok && energy < restThreshold, nil
	}
}

// sleep regenerates energy scaled by DeltaTime and fails once the scout is
// fully rested, which is what ends the enclosing UntilFail loop.
func sleep() func(behavior.TickContext) (behavior.Status, error) {
	return func(t behavior.TickContext) (behavior.Status, error) {
		energy, _ := t.BB.GetFloat(keyEnergy)
		energy += regenPerSec * t.DeltaTime.Seconds()
		if energy >= fullEnergy {
			t.BB.Set(keyEnergy, fullEnergy)
			return behavior.StatusFailure, nil
		}
		t.BB.Set(keyEnergy, energy)
		return behavior.StatusSuccess, nil
	}
}

func onArtifact(world *World) func(behavior.TickContext) (bool, error) {
	return func(t behavior.TickContext) (bool, error) {
		x, y := position(t)
		return world.At(x, y) == TileArtifact, nil
	}
}

func pickup(world *World) func(behavior.TickContext) (behavior.Status, error) {
	return func(t behavior.TickContext) (behavior.Status, error) {
		x, y := position(t)
		if !world.Consume(x, y) {
			// Another scout got here first this tick.
			return behavior.StatusFailure, nil
		}
		n, _ := t.BB.GetInt(keyArtifacts)
		t.BB.Set(keyArtifacts, n+1)
		return behavior.StatusSuccess, nil
	}
}

// scan records the tile under foot and charges trap damage.
func scan(world *World) func(behavior.TickContext) (behavior.Status, error) {
	return func(t behavior.TickContext) (behavior.Status, error) {
		x, y := position(t)
		tile := world.At(x, y)
		t.BB.Set(keyLastTile, tile.String())
		if tile == TileTrap {
			energy, _ := t.BB.GetFloat(keyEnergy)
			t.BB.Set(keyEnergy, energy-trapCost)
		}
		return behavior.StatusSuccess, nil
	}
}

// advance takes one random step and charges movement cost.
func advance(world *World) func(behavior.TickContext) (behavior.Status, error) {
	return func(t behavior.TickContext) (behavior.Status, error) {
		x, y := position(t)
		nx, ny := world.RandomStep(x, y)
		t.BB.Set(keyX, nx)
		t.BB.Set(keyY, ny)

		energy, _ := t.BB.GetFloat(keyEnergy)
		t.BB.Set(keyEnergy, energy-stepCost)

		steps, _ := t.BB.GetInt(keySteps)
		t.BB.Set(keySteps, steps+1)
		return behavior.StatusSuccess, nil
	}
}

// SeedScout writes the initial scout state onto a blackboard.
func SeedScout(bb *behavior.Blackboard, x, y int) {
	bb.Set(keyX, x)
	bb.Set(keyY, y)
	bb.Set(keyEnergy, fullEnergy)
	bb.Set(keyArtifacts, 0)
	bb.Set(keySteps, 0)
	bb.Set(keyEscaped, false)
}
