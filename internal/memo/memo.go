// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package memo provides a bounded memo table for pure functions.
//
// A Table remembers the results of the most recently used keys and
// evicts the least recently used one once its limit is reached.
//
//	shapes := memo.New(512, parse)
//	eq := shapes.Get("y = x^2") // parsed once
//
// Table is safe for concurrent use.
package memo

import "sync"

// DefaultLimit is the limit used when New is given a limit below 1.
const DefaultLimit = 256

// node is an entry of the recency list; head is the most recently used.
type node[K comparable, V any] struct {
	key        K
	value      V
	prev, next *node[K, V]
}

// Table memoizes fn.
type Table[K comparable, V any] struct {
	mu      sync.Mutex
	fn      func(K) V
	limit   int
	entries map[K]*node[K, V]
	head    *node[K, V]
	tail    *node[K, V]

	hits, misses uint64
}

// New returns a table that remembers up to limit results of fn.
func New[K comparable, V any](limit int, fn func(K) V) *Table[K, V] {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &Table[K, V]{
		fn:      fn,
		limit:   limit,
		entries: make(map[K]*node[K, V], limit),
	}
}

// Get returns fn(key), computing it on a miss. fn runs under the table
// lock, so it is called at most once per key while the key is resident.
func (t *Table[K, V]) Get(key K) V {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n, ok := t.entries[key]; ok {
		t.hits++
		t.moveToFront(n)
		return n.value
	}
	t.misses++
	n := &node[K, V]{key: key, value: t.fn(key)}
	t.entries[key] = n
	t.pushFront(n)
	if len(t.entries) > t.limit {
		oldest := t.tail
		t.unlink(oldest)
		delete(t.entries, oldest.key)
	}
	return n.value
}

// Len returns the number of remembered results.
func (t *Table[K, V]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Stats returns the number of hits and misses since the last Reset.
func (t *Table[K, V]) Stats() (hits, misses uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hits, t.misses
}

// Reset forgets every result.
func (t *Table[K, V]) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.entries)
	t.head, t.tail = nil, nil
	t.hits, t.misses = 0, 0
}

func (t *Table[K, V]) pushFront(n *node[K, V]) {
	n.prev = nil
	n.next = t.head
	if t.head != nil {
		t.head.prev = n
	}
	t.head = n
	if t.tail == nil {
		t.tail = n
	}
}

func (t *Table[K, V]) moveToFront(n *node[K, V]) {
	if n == t.head {
		return
	}
	t.unlink(n)
	t.pushFront(n)
}

func (t *Table[K, V]) unlink(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		t.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		t.tail = n.prev
	}
	n.prev, n.next = nil, nil
}
