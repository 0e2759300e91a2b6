package fsm

// State is one state in an agent's finite state machine.
type State[T any] interface {
	// Enter runs once when the machine transitions into this state.
	Enter(owner T)
	// Execute runs every update while this state is current.
	Execute(owner T, dt float64)
	// Exit runs once when the machine transitions out of this state.
	Exit(owner T)
	// OnMessage reacts to a telegram delivered while this state is
	// current, reporting whether the message was handled.
	OnMessage(owner T, t *Telegram) bool
}

// StateMachine drives an owner through State transitions. The optional
// global state executes on every update regardless of the current state and
// gets a second chance at messages the current state declines.
type StateMachine[T any] struct {
	owner    T
	current  State[T]
	previous State[T]
	global   State[T]
}

// NewStateMachine creates a machine for the given owner with no states set.
func NewStateMachine[T any](owner T) *StateMachine[T] {
	return &StateMachine[T]{owner: owner}
}

// SetCurrentState sets the current state without running Enter/Exit.
func (m *StateMachine[T]) SetCurrentState(s State[T]) { m.current = s }

// SetPreviousState sets the state RevertToPreviousState returns to.
func (m *StateMachine[T]) SetPreviousState(s State[T]) { m.previous = s }

// SetGlobalState sets the always-running state.
func (m *StateMachine[T]) SetGlobalState(s State[T]) { m.global = s }

// CurrentState returns the current state.
func (m *StateMachine[T]) CurrentState() State[T] { return m.current }

// PreviousState returns the last state the machine changed out of.
func (m *StateMachine[T]) PreviousState() State[T] { return m.previous }

// GlobalState returns the always-running state.
func (m *StateMachine[T]) GlobalState() State[T] { return m.global }

// Update executes the global state, then the current state.
func (m *StateMachine[T]) Update(dt float64) {
	if m.global != nil {
		m.global.Execute(m.owner, dt)
	}
	if m.current != nil {
		m.current.Execute(m.owner, dt)
	}
}

// ChangeState exits the current state, records it as previous, and enters
// the new one.
func (m *StateMachine[T]) ChangeState(next State[T]) {
	if next == nil {
		panic("fsm: cannot change to a nil state")
	}
	m.previous = m.current
	if m.current != nil {
		m.current.Exit(m.owner)
	}
	m.current = next
	m.current.Enter(m.owner)
}

// RevertToPreviousState changes back to the state before the last change.
func (m *StateMachine[T]) RevertToPreviousState() {
	if m.previous != nil {
		m.ChangeState(m.previous)
	}
}

// IsInState reports whether the given state is current.
func (m *StateMachine[T]) IsInState(s State[T]) bool {
	return m.current == s
}

// HandleMessage offers the telegram to the current state, then to the global
// state, reporting whether either handled it.
func (m *StateMachine[T]) HandleMessage(t *Telegram) bool {
	if m.current != nil && m.current.OnMessage(m.owner, t) {
		return true
	}
	if m.global != nil && m.global.OnMessage(m.owner, t) {
		return true
	}
	return false
}
