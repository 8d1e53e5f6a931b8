package event

import (
	"errors"
	"sync"
)

// Wildcard passed to UnsubscribeAll clears handlers of every event.
const Wildcard = "*"

// ErrNilHandler is returned when a nil handler is registered.
var ErrNilHandler = errors.New("event: handler must not be nil")

// Handler receives the payload of a published event.
type Handler[T any] func(payload T)

// Subscription identifies one handler registration.
type Subscription struct {
	name string
	id   uint64
}

// Name returns the event name the subscription was registered for.
func (s Subscription) Name() string { return s.name }

type entry[T any] struct {
	id      uint64
	handler Handler[T]
	once    bool
}

// Bus dispatches named events to registered handlers.
// It is safe for concurrent use.
type Bus[T any] struct {
	mu       sync.Mutex
	nextID   uint64
	handlers map[string][]entry[T]
}

// NewBus creates an empty bus.
func NewBus[T any]() *Bus[T] {
	return &Bus[T]{
		handlers: make(map[string][]entry[T]),
	}
}

// Subscribe appends h to the handler list of name.
func (b *Bus[T]) Subscribe(name string, h Handler[T]) (Subscription, error) {
	return b.add(name, h, false)
}

// SubscribeOnce appends h to the handler list of name. The handler is removed
// after its first invocation.
func (b *Bus[T]) SubscribeOnce(name string, h Handler[T]) (Subscription, error) {
	return b.add(name, h, true)
}

func (b *Bus[T]) add(name string, h Handler[T], once bool) (Subscription, error) {
	if h == nil {
		return Subscription{}, ErrNilHandler
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.handlers[name] = append(b.handlers[name], entry[T]{
		id:      b.nextID,
		handler: h,
		once:    once,
	})

	return Subscription{name: name, id: b.nextID}, nil
}

// Unsubscribe removes the handler registered under sub.
// It reports whether the handler was still registered.
func (b *Bus[T]) Unsubscribe(sub Subscription) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.remove(sub.name, sub.id)
}

// UnsubscribeAll removes every handler registered for name. Passing Wildcard
// removes the handlers of all events.
func (b *Bus[T]) UnsubscribeAll(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if name == Wildcard {
		clear(b.handlers)
		return
	}

	delete(b.handlers, name)
}

// Publish invokes every handler currently registered for name, in
// registration order, with payload. Handlers registered or removed while
// publishing take effect for the next Publish. One-shot handlers are
// deregistered before they run, so concurrent publishes invoke each of them
// at most once.
func (b *Bus[T]) Publish(name string, payload T) {
	b.mu.Lock()
	list := b.handlers[name]
	if len(list) == 0 {
		b.mu.Unlock()
		return
	}

	snapshot := make([]entry[T], len(list))
	copy(snapshot, list)

	kept := list[:0:0]
	for _, e := range list {
		if !e.once {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		delete(b.handlers, name)
	} else if len(kept) != len(list) {
		b.handlers[name] = kept
	}
	b.mu.Unlock()

	for _, e := range snapshot {
		e.handler(payload)
	}
}

// Len returns the number of handlers registered for name.
func (b *Bus[T]) Len(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.handlers[name])
}

// remove must be called with b.mu held.
func (b *Bus[T]) remove(name string, id uint64) bool {
	list := b.handlers[name]
	for i, e := range list {
		if e.id != id {
			continue
		}

		list = append(list[:i:i], list[i+1:]...)
		if len(list) == 0 {
			delete(b.handlers, name)
		} else {
			b.handlers[name] = list
		}

		return true
	}

	return false
}
