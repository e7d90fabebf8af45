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

package intervalmap

import (
	"fmt"
	"iter"
	"strings"

	"github.com/RaduBerinde/stepmap"
)

// String returns a listing of the constant segments of the map, one per line:
//
//	(-inf, 2) = A
//	[2, 5) = B
//	[5, +inf) = A
func (t *T[K, V]) String(f stepmap.Formatter[K]) string {
	var b strings.Builder
	var lastKey K
	lastVal := t.base
	first := true
	t.tree.Ascend(func(e entry[K, V]) bool {
		if first {
			first = false
			fmt.Fprintf(&b, "%s = %v\n", stepmap.FormatBefore(f, e.key), lastVal)
		} else {
			fmt.Fprintf(&b, "%s = %v\n", f.FormatInterval(lastKey, e.key), lastVal)
		}
		lastKey, lastVal = e.key, e.val
		return true
	})
	if first {
		return fmt.Sprintf("(-inf, +inf) = %v\n", t.base)
	}
	fmt.Fprintf(&b, "%s = %v\n", stepmap.FormatFrom(f, lastKey), lastVal)
	return b.String()
}

// Breakpoints returns the breakpoint table in the form "[2, B][5, A]". The
// result is empty if there are no breakpoints.
func (t *T[K, V]) Breakpoints(f stepmap.Formatter[K]) string {
	var b strings.Builder
	t.tree.Ascend(func(e entry[K, V]) bool {
		fmt.Fprintf(&b, "[%s, %v]", f.FormatKey(e.key), e.val)
		return true
	})
	return b.String()
}

// Values returns the concatenation of the values associated with the given
// keys.
func (t *T[K, V]) Values(keys iter.Seq[K]) string {
	var b strings.Builder
	for k := range keys {
		fmt.Fprint(&b, t.Get(k))
	}
	return b.String()
}

// Lookups returns a "key -> value" line for each of the given keys.
func (t *T[K, V]) Lookups(f stepmap.Formatter[K], keys iter.Seq[K]) string {
	var b strings.Builder
	for k := range keys {
		fmt.Fprintf(&b, "%s -> %v\n", f.FormatKey(k), t.Get(k))
	}
	return b.String()
}
