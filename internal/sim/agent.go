package sim

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zeusync/behave/pkg/behavior"
	"github.com/zeusync/behave/pkg/concurrent"
)

// Agent binds one behavior tree to its blackboard.
type Agent struct {
	id   uuid.UUID
	name string
	tree *behavior.Tree
	bb   *behavior.Blackboard
}

// NewAgent creates an agent around a built tree root.
func NewAgent(name string, root behavior.Node, logger *zap.Logger) *Agent {
	return &Agent{
		id:   uuid.New(),
		name: name,
		tree: behavior.NewTree(root, behavior.WithLogger(logger)),
		bb:   behavior.NewBlackboard(),
	}
}

// ID returns the agent's unique identifier.
func (a *Agent) ID() uuid.UUID { return a.id }

// Name returns the agent's name.
func (a *Agent) Name() string { return a.name }

// Blackboard returns the agent's blackboard.
func (a *Agent) Blackboard() *behavior.Blackboard { return a.bb }

// Update ticks the agent's tree once with the elapsed time.
func (a *Agent) Update(ctx context.Context, deltaTime time.Duration) (behavior.Status, error) {
	return a.tree.Tick(behavior.TickContext{
		Ctx:       ctx,
		DeltaTime: deltaTime,
		BB:        a.bb,
	})
}

// AgentState is a telemetry snapshot of one agent.
type AgentState struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	Data map[string]any `json:"data"`
}

// Manager owns a set of agents and ticks them concurrently.
type Manager struct {
	mu     sync.RWMutex
	agents map[uuid.UUID]*Agent
	log    *zap.Logger
}

// NewManager creates an empty manager.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		agents: make(map[uuid.UUID]*Agent),
		log:    logger,
	}
}

// Add registers an agent.
func (m *Manager) Add(a *Agent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.agents[a.id] = a
}

// Remove unregisters an agent and reports whether it existed.
func (m *Manager) Remove(id uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, exists := m.agents[id]
	delete(m.agents, id)
	return exists
}

// Get retrieves an agent by ID.
func (m *Manager) Get(id uuid.UUID) (*Agent, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, exists := m.agents[id]
	return a, exists
}

// Agents returns a snapshot of all registered agents.
func (m *Manager) Agents() []*Agent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Agent, 0, len(m.agents))
	for _, a := range m.agents {
		out = append(out, a)
	}
	return out
}

// Update ticks every agent concurrently and waits for all of them. The
// first tick error is returned after every agent has been updated.
func (m *Manager) Update(ctx context.Context, deltaTime time.Duration) error {
	return concurrent.ForEach(m.Agents(), func(a *Agent) error {
		if _, err := a.Update(ctx, deltaTime); err != nil {
			m.log.Warn("agent tick aborted",
				zap.String("agent", a.Name()),
				zap.Error(err),
			)
			return err
		}
		return nil
	})
}

// Snapshot collects telemetry state for every agent, ordered by name so
// consumers can diff consecutive frames.
func (m *Manager) Snapshot() []AgentState {
	agents := m.Agents()
	sort.Slice(agents, func(i, j int) bool { return agents[i].name < agents[j].name })
	return concurrent.Collect(agents, func(a *Agent) AgentState {
		return AgentState{
			ID:   a.ID().String(),
			Name: a.Name(),
			Data: a.Blackboard().Snapshot(),
		}
	})
}
