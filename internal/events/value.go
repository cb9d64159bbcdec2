package events

import "sync"

// Value is a push-based observable container. It holds the latest value,
// invokes subscribers synchronously on every change, and replays the current
// value to a newly attached subscriber.
type Value[T any] struct {
	mu      sync.Mutex
	current T
	set     bool
	nextID  int
	subs    map[int]func(T)
}

// NewValue constructs an empty observable value.
func NewValue[T any]() *Value[T] {
	return &Value[T]{subs: make(map[int]func(T))}
}

// Set stores the value and notifies every subscriber.
func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	v.current = value
	v.set = true
	subs := make([]func(T), 0, len(v.subs))
	for _, fn := range v.subs {
		subs = append(subs, fn)
	}
	v.mu.Unlock()
	for _, fn := range subs {
		fn(value)
	}
}

// Get returns the latest value and whether one has been set.
func (v *Value[T]) Get() (T, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current, v.set
}

// Subscribe registers fn and replays the current value when one exists.
// The returned function cancels the subscription.
func (v *Value[T]) Subscribe(fn func(T)) func() {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.subs[id] = fn
	current, replay := v.current, v.set
	v.mu.Unlock()

	if replay {
		fn(current)
	}
	return func() {
		v.mu.Lock()
		delete(v.subs, id)
		v.mu.Unlock()
	}
}
