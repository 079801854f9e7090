// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package reactive provides observable values with narrow subscriptions.
//
// Each Value notifies only its own subscribers, synchronously and in
// subscription order, so a component re-renders only when one of the values
// it actually depends on changes. Values are not safe for concurrent use.
package reactive

// Value holds a T and notifies subscribers when it changes.
type Value[T any] struct {
	v     T
	equal func(a, b T) bool
	subs  []*subscription[T]
	gen   uint64
}

type subscription[T any] struct {
	fn   func(T)
	live bool
}

// New returns a Value that uses == to suppress no-op updates.
func New[T comparable](v T) *Value[T] {
	return NewFunc(v, func(a, b T) bool { return a == b })
}

// NewFunc returns a Value that uses equal to suppress no-op updates.
// A nil equal treats every Set as a change.
func NewFunc[T any](v T, equal func(a, b T) bool) *Value[T] {
	return &Value[T]{v: v, equal: equal}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	return v.v
}

// Set stores x and notifies subscribers. It reports whether the value
// changed; an equal value is dropped without notification.
func (v *Value[T]) Set(x T) bool {
	if v.equal != nil && v.equal(v.v, x) {
		return false
	}
	v.v = x
	v.gen++
	v.notify()
	return true
}

// Subscribe registers fn to be called with every new value. The returned
// function removes the subscription; calling it more than once is a no-op.
func (v *Value[T]) Subscribe(fn func(T)) (cancel func()) {
	s := &subscription[T]{fn: fn, live: true}
	v.subs = append(v.subs, s)
	return func() {
		if !s.live {
			return
		}
		s.live = false
		for i, cur := range v.subs {
			if cur == s {
				v.subs = append(v.subs[:i:i], v.subs[i+1:]...)
				break
			}
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (v *Value[T]) Subscribers() int {
	return len(v.subs)
}

func (v *Value[T]) notify() {
	gen := v.gen
	subs := v.subs
	for _, s := range subs {
		// A subscriber that set the value again has already delivered the
		// newer value to everyone.
		if v.gen != gen {
			return
		}
		if s.live {
			s.fn(v.v)
		}
	}
}
