package fsm

import (
	"container/heap"
	"sync"

	"go.uber.org/zap"
)

// Resolver looks up message receivers. *Manager implements it.
type Resolver interface {
	AgentByID(id string) (Agent, bool)
}

// Dispatcher delivers telegrams between agents. Immediate messages are
// discharged synchronously; delayed messages wait in a priority queue until
// Update advances the dispatcher's clock past their due time. The dispatcher
// keeps its own simulation clock, advanced only by Update, so delivery order
// is deterministic under a fixed-step loop.
type Dispatcher struct {
	mu       sync.Mutex
	resolver Resolver
	queue    telegramQueue
	now      float64
	log      *zap.Logger
}

// NewDispatcher creates a dispatcher resolving receivers through the given
// resolver. A nil logger disables drop logging.
func NewDispatcher(resolver Resolver, logger *zap.Logger) *Dispatcher {
	if resolver == nil {
		panic("fsm: dispatcher requires a resolver")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		resolver: resolver,
		log:      logger,
	}
}

// Dispatch delivers a message to the receiver immediately.
func (d *Dispatcher) Dispatch(sender, receiver string, msgType int, info map[string]any) {
	d.mu.Lock()
	t := &Telegram{
		Sender:     sender,
		Receiver:   receiver,
		Type:       msgType,
		Info:       info,
		DispatchAt: d.now,
	}
	d.mu.Unlock()
	d.discharge(t)
}

// DispatchAfter schedules a message for delivery delay seconds from the
// dispatcher's current time. A non-positive delay delivers immediately. A
// telegram that duplicates an already-queued one (same sender, receiver, and
// type, due within SmallestDelay) is discarded.
func (d *Dispatcher) DispatchAfter(delay float64, sender, receiver string, msgType int, info map[string]any) {
	if delay <= 0 {
		d.Dispatch(sender, receiver, msgType, info)
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	t := &Telegram{
		Sender:     sender,
		Receiver:   receiver,
		Type:       msgType,
		Info:       info,
		DispatchAt: d.now + delay,
	}
	for _, queued := range d.queue {
		if sameMessage(queued, t) {
			return
		}
	}
	heap.Push(&d.queue, t)
}

// Update advances the dispatcher clock by dt seconds and delivers every
// telegram that has come due, in due-time order.
func (d *Dispatcher) Update(dt float64) {
	d.mu.Lock()
	d.now += dt

	var due []*Telegram
	for {
		next := d.queue.peek()
		if next == nil || next.DispatchAt > d.now {
			break
		}
		due = append(due, heap.Pop(&d.queue).(*Telegram))
	}
	d.mu.Unlock()

	for _, t := range due {
		d.discharge(t)
	}
}

// Pending returns the number of queued, not-yet-due telegrams.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

// Now returns the dispatcher's current simulation time in seconds.
func (d *Dispatcher) Now() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.now
}

// discharge hands a telegram to its receiver. Undeliverable or unhandled
// telegrams are dropped with a log line; there is no redelivery.
func (d *Dispatcher) discharge(t *Telegram) {
	agent, ok := d.resolver.AgentByID(t.Receiver)
	if !ok {
		d.log.Debug("telegram dropped, receiver not found",
			zap.String("receiver", t.Receiver),
			zap.Int("type", t.Type))
		return
	}
	if !agent.HandleMessage(t) {
		d.log.Debug("telegram unhandled",
			zap.String("receiver", t.Receiver),
			zap.Int("type", t.Type))
	}
}
