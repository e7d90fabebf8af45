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

// valueBefore returns the value associated with the keys immediately preceding
// k, i.e. the value of the last breakpoint strictly before k, or the base
// value if there is none.
func (t *T[K, V]) valueBefore(k K) V {
	v := t.base
	t.tree.DescendLessOrEqual(entry[K, V]{key: k}, func(e entry[K, V]) bool {
		if t.less(e.key, k) {
			v = e.val
			return false
		}
		// This breakpoint is at k; the one before it (if any) is what we want.
		return true
	})
	return v
}

// scanRange collects the breakpoints in [start, end) and looks at the first
// breakpoint at or after end. It returns:
//   - inside: the breakpoints in [start, end), backed by t.scratch;
//   - last: the value associated with the keys immediately preceding end
//     (prev if there are no breakpoints inside the range);
//   - atEnd, hasEnd: the breakpoint exactly at end, if it exists.
func (t *T[K, V]) scanRange(
	start, end K, prev V,
) (inside []entry[K, V], last V, atEnd entry[K, V], hasEnd bool) {
	inside = t.scratch[:0]
	last = prev
	t.tree.AscendGreaterOrEqual(entry[K, V]{key: start}, func(e entry[K, V]) bool {
		if t.less(e.key, end) {
			inside = append(inside, e)
			last = e.val
			return true
		}
		if !t.less(end, e.key) {
			atEnd, hasEnd = e, true
		}
		return false
	})
	return inside, last, atEnd, hasEnd
}
