package fsm

import "sync"

// Agent is anything that can be addressed by the dispatcher and updated each
// frame. Game objects typically embed a StateMachine and forward these calls
// to it.
type Agent interface {
	// ID returns the agent's stable identifier, usually the id of the
	// entity the agent controls.
	ID() string
	// Update advances the agent by dt seconds.
	Update(dt float64)
	// HandleMessage reacts to a delivered telegram, reporting whether the
	// message was handled.
	HandleMessage(t *Telegram) bool
}

// Manager is an explicit registry of agents, owned by whoever runs the
// simulation. There is no process-wide instance: every collaborator that
// needs agent lookup is handed a Manager reference.
type Manager struct {
	mu     sync.Mutex
	agents map[string]Agent
}

// NewManager creates an empty agent registry.
func NewManager() *Manager {
	return &Manager{agents: make(map[string]Agent)}
}

// Register adds an agent under its own id, replacing any previous agent with
// the same id.
func (m *Manager) Register(a Agent) {
	if a == nil || a.ID() == "" {
		return
	}
	m.mu.Lock()
	m.agents[a.ID()] = a
	m.mu.Unlock()
}

// Remove deregisters the agent with the given id.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.agents, id)
	m.mu.Unlock()
}

// AgentByID returns the registered agent with the given id.
func (m *Manager) AgentByID(id string) (Agent, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.agents[id]
	return a, ok
}

// Count returns the number of registered agents.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.agents)
}

// Update advances every registered agent by dt seconds.
func (m *Manager) Update(dt float64) {
	m.mu.Lock()
	agents := make([]Agent, 0, len(m.agents))
	for _, a := range m.agents {
		agents = append(agents, a)
	}
	m.mu.Unlock()

	for _, a := range agents {
		a.Update(dt)
	}
}
