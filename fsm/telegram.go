// Package fsm provides the messaging and state-machine layer that drives
// entity behavior on top of the pooled ECS core: telegrams carry typed
// messages between agents, a Dispatcher delivers them immediately or after a
// delay, and StateMachine runs per-agent state logic.
package fsm

import (
	"container/heap"
	"fmt"
)

// SmallestDelay is the window, in seconds, within which two telegrams with
// the same sender, receiver, and type are considered duplicates and the
// second one is not queued.
const SmallestDelay = 0.25

// Telegram is one message between two agents: who sent it, who receives it,
// an application-defined type code, an optional payload, and the simulation
// time at which it becomes due.
type Telegram struct {
	Sender     string
	Receiver   string
	Type       int
	Info       map[string]any
	DispatchAt float64
}

func (t *Telegram) String() string {
	return fmt.Sprintf("Telegram{type=%d, %s -> %s, at=%.3f}",
		t.Type, t.Sender, t.Receiver, t.DispatchAt)
}

// sameMessage reports whether two telegrams carry the same message close
// enough in time to be deduplicated.
func sameMessage(a, b *Telegram) bool {
	d := a.DispatchAt - b.DispatchAt
	if d < 0 {
		d = -d
	}
	return d < SmallestDelay &&
		a.Sender == b.Sender &&
		a.Receiver == b.Receiver &&
		a.Type == b.Type
}

// telegramQueue is a min-heap of telegrams ordered by due time.
type telegramQueue []*Telegram

func (q telegramQueue) Len() int           { return len(q) }
func (q telegramQueue) Less(i, j int) bool { return q[i].DispatchAt < q[j].DispatchAt }
func (q telegramQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *telegramQueue) Push(x any)        { *q = append(*q, x.(*Telegram)) }
func (q *telegramQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}

// peek returns the earliest-due telegram without removing it.
func (q telegramQueue) peek() *Telegram {
	if len(q) == 0 {
		return nil
	}
	return q[0]
}

var _ heap.Interface = (*telegramQueue)(nil)
