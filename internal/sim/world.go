// Package sim is a small grid-world simulation that drives the behavior
// tree engine: scout agents explore a tile map, dodge traps, loot
// artifacts and head for the exit. It exists to exercise the public API
// end to end and to feed the telemetry endpoints.
package sim

import (
	"math/rand"
	"sync"
)

// Tile is the content of one world cell.
type Tile int

const (
	TileEmpty Tile = iota
	TileTrap
	TileArtifact
	TileExit
)

func (t Tile) String() string {
	switch t {
	case TileTrap:
		return "trap"
	case TileArtifact:
		return "artifact"
	case TileExit:
		return "exit"
	default:
		return "empty"
	}
}

// World is a randomized rectangular tile grid. Agents tick concurrently
// under the manager, so all access is guarded.
type World struct {
	mu     sync.Mutex
	width  int
	height int
	grid   [][]Tile
	rng    *rand.Rand
}

// NewWorld creates a width x height world with one exit and the requested
// number of traps and artifacts placed on distinct empty cells.
func NewWorld(width, height, traps, artifacts int, seed int64) *World {
	w := &World{
		width:  width,
		height: height,
		grid:   make([][]Tile, height),
		rng:    rand.New(rand.NewSource(seed)),
	}
	for y := 0; y < height; y++ {
		w.grid[y] = make([]Tile, width)
	}

	ex := w.rng.Intn(width)
	ey := w.rng.Intn(height)
	w.grid[ey][ex] = TileExit

	w.place(TileTrap, traps)
	w.place(TileArtifact, artifacts)
	return w
}

func (w *World) place(t Tile, n int) {
	for i := 0; i < n; i++ {
		for {
			x := w.rng.Intn(w.width)
			y := w.rng.Intn(w.height)
			if w.grid[y][x] == TileEmpty {
				w.grid[y][x] = t
				break
			}
		}
	}
}

// Width returns the horizontal cell count.
func (w *World) Width() int { return w.width }

// Height returns the vertical cell count.
func (w *World) Height() int { return w.height }

// InBounds reports whether (x, y) lies on the grid.
func (w *World) InBounds(x, y int) bool {
	return x >= 0 && x < w.width && y >= 0 && y < w.height
}

// At returns the tile at (x, y); out-of-bounds cells read as empty.
func (w *World) At(x, y int) Tile {
	if !w.InBounds(x, y) {
		return TileEmpty
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.grid[y][x]
}

// Consume clears an artifact at (x, y) and reports whether one was there.
func (w *World) Consume(x, y int) bool {
	if !w.InBounds(x, y) {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.grid[y][x] != TileArtifact {
		return false
	}
	w.grid[y][x] = TileEmpty
	return true
}

// RandomStep returns a neighbor of (x, y), clamped to the grid.
func (w *World) RandomStep(x, y int) (int, int) {
	w.mu.Lock()
	dir := w.rng.Intn(4)
	w.mu.Unlock()

	switch dir {
	case 0:
		x++
	case 1:
		x--
	case 2:
		y++
	default:
		y--
	}
	if x < 0 {
		x = 0
	}
	if x >= w.width {
		x = w.width - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= w.height {
		y = w.height - 1
	}
	return x, y
}

// Snapshot copies the grid for telemetry consumers.
func (w *World) Snapshot() [][]Tile {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([][]Tile, len(w.grid))
	for y, row := range w.grid {
		out[y] = append([]Tile(nil), row...)
	}
	return out
}
