// Package store provides observable single-value containers.
//
// A Value holds one current value. Observers registered with Subscribe
// receive the current value immediately and every value passed to Set
// afterwards, synchronously and in order. Values are independent; there is
// no transaction spanning more than one Value.
package store

import (
	"context"
	"sync"
	"sync/atomic"
)

// Observer receives values published by a Value.
type Observer[T any] func(value T)

// CancelFunc stops a subscription. It is safe to call more than once.
type CancelFunc func()

type subscriber[T any] struct {
	id       int
	observer Observer[T]
	canceled atomic.Bool
}

// Value is a thread-safe observable holder of a single value.
// Observers must not call Set, Update or Subscribe on the Value that is
// notifying them; Get and cancelling are fine.
type Value[T any] struct {
	// pmu serializes publishing so observers see values in Set order.
	pmu sync.Mutex

	// smu protects value, subscribers and sid.
	smu         sync.RWMutex
	value       T
	subscribers []*subscriber[T]
	sid         int
}

// New creates a Value holding initial.
func New[T any](initial T) *Value[T] {
	return &Value[T]{value: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.smu.RLock()
	defer v.smu.RUnlock()

	return v.value
}

// Set replaces the current value and notifies every observer before returning.
func (v *Value[T]) Set(value T) {
	v.pmu.Lock()
	defer v.pmu.Unlock()

	v.publish(value)
}

// publish stores value and calls the observers. Callers must hold pmu.
func (v *Value[T]) publish(value T) {
	v.smu.Lock()
	v.value = value
	subs := make([]*subscriber[T], len(v.subscribers))
	copy(subs, v.subscribers)
	v.smu.Unlock()

	for _, sub := range subs {
		if sub.canceled.Load() {
			continue
		}
		sub.observer(value)
	}
}

// Update sets the value to fn(current). No other Set can interleave between
// reading the current value and publishing the result.
func (v *Value[T]) Update(fn func(current T) T) {
	v.pmu.Lock()
	defer v.pmu.Unlock()

	v.smu.RLock()
	current := v.value
	v.smu.RUnlock()

	v.publish(fn(current))
}

// Subscribe registers observer. It is called with the current value before
// Subscribe returns and then with every subsequent value until the returned
// CancelFunc is called.
func (v *Value[T]) Subscribe(observer Observer[T]) CancelFunc {
	v.pmu.Lock()
	defer v.pmu.Unlock()

	v.smu.Lock()
	sub := &subscriber[T]{id: v.sid, observer: observer}
	v.sid++
	v.subscribers = append(v.subscribers, sub)
	current := v.value
	v.smu.Unlock()

	observer(current)

	return cancelFunc(v, sub)
}

// Watch returns a channel that receives the current value and every later
// one. The channel is closed once ctx is done. A slow reader blocks Set
// callers once the buffer is full, so size buffer for the expected burst.
func (v *Value[T]) Watch(ctx context.Context, buffer int) <-chan T {
	if buffer < 1 {
		buffer = 1
	}

	ch := make(chan T, buffer)

	var (
		mu     sync.Mutex
		closed bool
	)

	cancel := v.Subscribe(func(value T) {
		mu.Lock()
		defer mu.Unlock()

		if closed {
			return
		}

		select {
		case ch <- value:
		case <-ctx.Done():
		}
	})

	go func() {
		<-ctx.Done()
		cancel()

		mu.Lock()
		closed = true
		close(ch)
		mu.Unlock()
	}()

	return ch
}

// Subscribers returns the number of active subscriptions.
func (v *Value[T]) Subscribers() int {
	v.smu.RLock()
	defer v.smu.RUnlock()

	return len(v.subscribers)
}

func cancelFunc[T any](v *Value[T], sub *subscriber[T]) CancelFunc {
	return func() {
		if sub.canceled.Swap(true) {
			return
		}

		v.smu.Lock()
		defer v.smu.Unlock()

		l := make([]*subscriber[T], 0, len(v.subscribers))
		for _, s := range v.subscribers {
			if s.id == sub.id {
				continue
			}
			l = append(l, s)
		}
		v.subscribers = l
	}
}
