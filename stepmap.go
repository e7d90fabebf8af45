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

// Package stepmap contains common definitions for piecewise-constant maps over
// an ordered key domain: the capabilities required of keys and values, and
// helpers for formatting and parsing keys and half-open intervals.
package stepmap

import "iter"

// Key is an arbitrary type that represents a point on an ordered axis. The
// only operation required of a key is the strict ordering provided by a
// LessFn.
type Key any

// Value is an arbitrary type associated with a range of keys. The only
// operation required of a value is the equality provided by an EqualFn.
type Value any

// LessFn is a strict total order on keys. Two keys a and b are considered
// equal when neither less(a, b) nor less(b, a).
type LessFn[K Key] func(a, b K) bool

// EqualFn is used to compare two values. If it returns true, the two values
// can be used interchangeably and adjacent ranges carrying them are merged.
type EqualFn[V Value] func(a, b V) bool

// Equivalent returns true if neither key is less than the other.
func (less LessFn[K]) Equivalent(a, b K) bool {
	return !less(a, b) && !less(b, a)
}

// IntRange returns the integers in [start, end), in increasing order.
func IntRange(start, end int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := start; i < end; i++ {
			if !yield(i) {
				return
			}
		}
	}
}
