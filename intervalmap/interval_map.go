// Copyright 2025 Radu Berinde.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package intervalmap implements a total map from an ordered key domain to
// values, optimized for maps that are constant over large ranges of keys.
package intervalmap

import (
	"cmp"
	"fmt"
	"iter"

	"github.com/RaduBerinde/stepmap"
	"github.com/google/btree"
)

type Key = stepmap.Key
type Value = stepmap.Value

// T is a map which associates a value with every key of an ordered domain. The
// map is stored as a base value and a table of breakpoints: a breakpoint (k, v)
// means that v is associated with all keys from k (inclusive) up to the next
// breakpoint (exclusive). The base value is associated with all keys before the
// first breakpoint.
//
// The table is always canonical: consecutive breakpoints never have equal
// values, and the first breakpoint never has a value equal to the base value.
// In particular, a map where every key has the base value has no breakpoints.
//
// T is not safe for concurrent use; Get calls can run concurrently only when
// no Assign is in progress.
type T[K Key, V Value] struct {
	less stepmap.LessFn[K]
	eq   stepmap.EqualFn[V]
	base V
	tree *btree.BTreeG[entry[K, V]]
	// scratch is reused across Assign calls to collect breakpoints to delete.
	scratch []entry[K, V]
}

type entry[K Key, V Value] struct {
	key K
	val V
}

const btreeDegree = 8

// New creates a map that associates base with every key.
func New[K Key, V Value](less stepmap.LessFn[K], eq stepmap.EqualFn[V], base V) *T[K, V] {
	t := &T[K, V]{}
	t.Init(less, eq, base)
	return t
}

// NewOrdered creates a map with keys ordered by the < operator and values
// compared with ==.
func NewOrdered[K cmp.Ordered, V comparable](base V) *T[K, V] {
	return New[K, V](cmp.Less[K], func(a, b V) bool { return a == b }, base)
}

// Init initializes (or reinitializes) the map so that it associates base with
// every key.
func (t *T[K, V]) Init(less stepmap.LessFn[K], eq stepmap.EqualFn[V], base V) {
	t.less = less
	t.eq = eq
	t.base = base
	t.tree = btree.NewG[entry[K, V]](btreeDegree, func(a, b entry[K, V]) bool {
		return less(a.key, b.key)
	})
	t.scratch = nil
}

// Assign associates value with all keys in [start, end), overwriting previous
// values in this interval. Keys outside the interval are not affected.
//
// If !less(start, end), the interval is empty and Assign does nothing.
func (t *T[K, V]) Assign(start, end K, value V) {
	if !t.less(start, end) {
		return
	}
	prev := t.valueBefore(start)
	inside, last, atEnd, hasEnd := t.scanRange(start, end, prev)

	for _, e := range inside {
		t.tree.Delete(e)
	}
	clear(inside)
	t.scratch = inside[:0]

	// Fix up the boundary at end. An existing breakpoint at end already
	// describes the keys after the interval; otherwise the keys at and after
	// end keep the value that was in force just before end.
	if hasEnd {
		if t.eq(atEnd.val, value) {
			t.tree.Delete(atEnd)
		}
	} else if !t.eq(last, value) {
		t.tree.ReplaceOrInsert(entry[K, V]{key: end, val: last})
	}

	if !t.eq(prev, value) {
		t.tree.ReplaceOrInsert(entry[K, V]{key: start, val: value})
	}
}

// Get returns the value associated with the given key.
func (t *T[K, V]) Get(key K) V {
	v := t.base
	t.tree.DescendLessOrEqual(entry[K, V]{key: key}, func(e entry[K, V]) bool {
		v = e.val
		return false
	})
	return v
}

// Base returns the value associated with all keys before the first
// breakpoint.
func (t *T[K, V]) Base() V {
	return t.base
}

// Len returns the number of breakpoints.
func (t *T[K, V]) Len() int {
	return t.tree.Len()
}

// Ascend calls fn for each breakpoint, in increasing key order, until fn
// returns false. The map must not be modified during the iteration.
func (t *T[K, V]) Ascend(fn func(key K, value V) bool) {
	t.tree.Ascend(func(e entry[K, V]) bool {
		return fn(e.key, e.val)
	})
}

// All returns an iterator over the breakpoints, in increasing key order.
func (t *T[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		t.Ascend(yield)
	}
}

// Clone returns a copy of the map. The copy shares structure with the
// original lazily, so cloning is cheap.
func (t *T[K, V]) Clone() *T[K, V] {
	return &T[K, V]{
		less: t.less,
		eq:   t.eq,
		base: t.base,
		tree: t.tree.Clone(),
	}
}

// CheckInvariants can be used in testing builds to verify internal invariants.
func (t *T[K, V]) CheckInvariants() {
	prevVal := t.base
	var prevKey K
	first := true
	t.tree.Ascend(func(e entry[K, V]) bool {
		if !first && !t.less(prevKey, e.key) {
			panic(fmt.Sprintf("breakpoint %v not after %v", e.key, prevKey))
		}
		if t.eq(prevVal, e.val) {
			panic(fmt.Sprintf("redundant breakpoint at %v (value %v)", e.key, e.val))
		}
		first = false
		prevKey, prevVal = e.key, e.val
		return true
	})
}
