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
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/RaduBerinde/stepmap"
	"github.com/cockroachdb/datadriven"
	"github.com/stretchr/testify/require"
)

func TestDataDriven(t *testing.T) {
	t.Run("ints", func(t *testing.T) {
		testDataDriven(t, "testdata/ints", cmp.Less[int], stepmap.MakeBasicFormatter[int](), stepmap.MakeBasicParser[int]())
	})
	t.Run("strings", func(t *testing.T) {
		testDataDriven(t, "testdata/strings", cmp.Less[string], stepmap.MakeBasicFormatter[string](), stepmap.MakeBasicParser[string]())
	})
}

func testDataDriven[K Key](
	t *testing.T, path string, less func(a, b K) bool, f stepmap.Formatter[K], p stepmap.Parser[K],
) {
	var m *T[K, string]
	datadriven.RunTest(t, path, func(t *testing.T, td *datadriven.TestData) string {
		switch td.Cmd {
		case "init":
			var base string
			td.ScanArgs(t, "base", &base)
			m = New[K, string](less, func(a, b string) bool { return a == b }, base)

		case "assign":
			for _, l := range strings.Split(strings.TrimSpace(td.Input), "\n") {
				start, end, val := stepmap.MustParseIntervalPrefix(p, l)
				m.Assign(start, end, val)
				m.CheckInvariants()
			}

		case "get":
			var keys []K
			for _, l := range strings.Split(strings.TrimSpace(td.Input), "\n") {
				keys = append(keys, stepmap.MustParseKey(p, l))
			}
			return m.Lookups(f, slices.Values(keys))

		case "values":
			var start, end int
			td.ScanArgs(t, "range", &start, &end)
			im, ok := any(m).(*T[int, string])
			if !ok {
				td.Fatalf(t, "values requires integer keys")
			}
			return im.Values(stepmap.IntRange(start, end)) + "\n"

		default:
			td.Fatalf(t, "unknown command: %q", td.Cmd)
		}
		var buf strings.Builder
		bp := m.Breakpoints(f)
		if bp == "" {
			bp = "<empty>"
		}
		fmt.Fprintf(&buf, "breakpoints: %s\nsegments:\n", bp)
		for _, l := range strings.Split(strings.TrimSpace(m.String(f)), "\n") {
			fmt.Fprintf(&buf, "  %s\n", l)
		}
		return buf.String()
	})
}

func TestScenarios(t *testing.T) {
	f := stepmap.MakeBasicFormatter[int]()
	type assignment struct {
		start, end int
		val        byte
	}
	testCases := []struct {
		name        string
		assigns     []assignment
		breakpoints string
		from, to    int
		values      string
	}{
		{
			name:   "empty",
			from:   -4,
			to:     5,
			values: "AAAAAAAAA",
		},
		{
			name:        "single",
			assigns:     []assignment{{2, 5, 'B'}},
			breakpoints: "[2, 66][5, 65]",
			from:        0,
			to:          9,
			values:      "AABBBAAAA",
		},
		{
			name:        "adjacent",
			assigns:     []assignment{{2, 5, 'B'}, {5, 8, 'C'}},
			breakpoints: "[2, 66][5, 67][8, 65]",
			from:        0,
			to:          9,
			values:      "AABBBCCCA",
		},
		{
			name:        "merge-left",
			assigns:     []assignment{{2, 4, 'B'}, {4, 6, 'C'}, {6, 8, 'D'}, {4, 6, 'B'}},
			breakpoints: "[2, 66][6, 68][8, 65]",
			from:        0,
			to:          10,
			values:      "AABBBBDDAA",
		},
		{
			name:    "revert-to-base",
			assigns: []assignment{{2, 4, 'B'}, {2, 4, 'A'}},
			from:    0,
			to:      9,
			values:  "AAAAAAAAA",
		},
		{
			name:    "inverted",
			assigns: []assignment{{8, 5, 'C'}},
			from:    0,
			to:      9,
			values:  "AAAAAAAAA",
		},
		{
			name:        "inverted-nonempty",
			assigns:     []assignment{{2, 5, 'B'}, {8, 5, 'C'}, {5, 5, 'C'}},
			breakpoints: "[2, 66][5, 65]",
			from:        0,
			to:          7,
			values:      "AABBBAA",
		},
		{
			name:        "inside",
			assigns:     []assignment{{0, 10, 'B'}, {3, 4, 'C'}},
			breakpoints: "[0, 66][3, 67][4, 66][10, 65]",
			from:        -1,
			to:          11,
			values:      "ABBBCBBBBBBA",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewOrdered[int, byte]('A')
			for _, a := range tc.assigns {
				m.Assign(a.start, a.end, a.val)
				m.CheckInvariants()
			}
			require.Equal(t, tc.breakpoints, m.Breakpoints(f))
			var b strings.Builder
			for k := range stepmap.IntRange(tc.from, tc.to) {
				b.WriteByte(m.Get(k))
			}
			require.Equal(t, tc.values, b.String())
		})
	}
}

func TestAccessors(t *testing.T) {
	m := NewOrdered[int, string]("A")
	require.Equal(t, "A", m.Base())
	require.Equal(t, 0, m.Len())

	m.Assign(2, 5, "B")
	m.Assign(5, 8, "C")
	require.Equal(t, 3, m.Len())
	require.Equal(t, "A", m.Base())

	var keys []int
	var vals []string
	for k, v := range m.All() {
		keys = append(keys, k)
		vals = append(vals, v)
	}
	require.Equal(t, []int{2, 5, 8}, keys)
	require.Equal(t, []string{"B", "C", "A"}, vals)

	// Early stop.
	n := 0
	m.Ascend(func(key int, value string) bool {
		n++
		return false
	})
	require.Equal(t, 1, n)

	f := stepmap.MakeBasicFormatter[int]()
	require.Equal(t, "AABBBCCCA", m.Values(stepmap.IntRange(0, 9)))
	require.Equal(t, "1 -> A\n2 -> B\n", m.Lookups(f, stepmap.IntRange(1, 3)))
	require.Equal(t, "(-inf, 2) = A\n[2, 5) = B\n[5, 8) = C\n[8, +inf) = A\n", m.String(f))
}

func TestClone(t *testing.T) {
	f := stepmap.MakeBasicFormatter[int]()
	m := NewOrdered[int, string]("A")
	m.Assign(2, 5, "B")
	c := m.Clone()
	c.Assign(3, 10, "C")
	m.Assign(0, 1, "D")
	require.Equal(t, "[0, D][1, A][2, B][5, A]", m.Breakpoints(f))
	require.Equal(t, "[2, B][3, C][10, A]", c.Breakpoints(f))
	m.CheckInvariants()
	c.CheckInvariants()
}

func TestInit(t *testing.T) {
	var m T[string, int]
	m.Init(func(a, b string) bool { return a < b }, func(a, b int) bool { return a == b }, 0)
	m.Assign("b", "d", 1)
	require.Equal(t, 1, m.Get("c"))
	require.Equal(t, 0, m.Get("d"))

	// Reinitializing drops all breakpoints.
	m.Init(func(a, b string) bool { return a < b }, func(a, b int) bool { return a == b }, 5)
	require.Equal(t, 0, m.Len())
	require.Equal(t, 5, m.Get("c"))
}

func TestCheckInvariants(t *testing.T) {
	m := NewOrdered[int, string]("A")
	m.Assign(2, 5, "B")
	require.NotPanics(t, m.CheckInvariants)

	// Corrupt the table behind the map's back.
	m.tree.ReplaceOrInsert(entry[int, string]{key: 7, val: "A"})
	require.Panics(t, m.CheckInvariants)

	m = NewOrdered[int, string]("A")
	m.tree.ReplaceOrInsert(entry[int, string]{key: 1, val: "A"})
	require.Panics(t, m.CheckInvariants)
}

// opaqueKey only supports the ordering; opaqueValue only supports equality.
// The counters verify that Assign touches values a bounded number of times.
type opaqueKey struct{ k int }

type opaqueValue struct{ v string }

func TestCapabilityCounts(t *testing.T) {
	var lessCalls, eqCalls int
	less := func(a, b opaqueKey) bool {
		lessCalls++
		return a.k < b.k
	}
	eq := func(a, b opaqueValue) bool {
		eqCalls++
		return a.v == b.v
	}
	m := New[opaqueKey, opaqueValue](less, eq, opaqueValue{"A"})
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 1000; i++ {
		a, b := rng.IntN(100), rng.IntN(100)
		v := opaqueValue{string(rune('A' + rng.IntN(4)))}
		eqCalls = 0
		m.Assign(opaqueKey{a}, opaqueKey{b}, v)
		require.LessOrEqual(t, eqCalls, 2)
	}
	m.CheckInvariants()

	// Degenerate intervals use a single key comparison.
	lessCalls, eqCalls = 0, 0
	m.Assign(opaqueKey{5}, opaqueKey{5}, opaqueValue{"Z"})
	require.Equal(t, 1, lessCalls)
	require.Equal(t, 0, eqCalls)
}

func TestProperties(t *testing.T) {
	seed := rand.Uint64()
	rng := rand.New(rand.NewPCG(seed, seed))
	f := stepmap.MakeBasicFormatter[int]()

	randomMap := func() *T[int, int] {
		m := NewOrdered[int, int](0)
		for i := rng.IntN(20); i > 0; i-- {
			a := rng.IntN(50)
			m.Assign(a, a+rng.IntN(10), rng.IntN(4))
		}
		return m
	}

	for i := 0; i < 200; i++ {
		m := randomMap()
		before := m.Breakpoints(f)

		// Degenerate intervals are no-ops.
		a := rng.IntN(60)
		m.Assign(a, a-rng.IntN(5), rng.IntN(4))
		require.Equal(t, before, m.Breakpoints(f), "seed: %d", seed)

		// Idempotence.
		a, b, v := rng.IntN(60), rng.IntN(60), rng.IntN(4)
		m.Assign(a, b, v)
		once := m.Breakpoints(f)
		m.Assign(a, b, v)
		require.Equal(t, once, m.Breakpoints(f), "seed: %d", seed)

		// Disjoint writes commute.
		x := randomMap()
		y := x.Clone()
		s1 := rng.IntN(30)
		e1 := s1 + rng.IntN(10)
		s2 := e1 + rng.IntN(5)
		e2 := s2 + rng.IntN(10)
		v1, v2 := rng.IntN(4), rng.IntN(4)
		x.Assign(s1, e1, v1)
		x.Assign(s2, e2, v2)
		y.Assign(s2, e2, v2)
		y.Assign(s1, e1, v1)
		require.Equal(t, x.Breakpoints(f), y.Breakpoints(f), "seed: %d", seed)
		x.CheckInvariants()
		y.CheckInvariants()
	}
}

func TestIntervalMapRand(t *testing.T) {
	f := stepmap.MakeBasicFormatter[int]()
	for test := 0; test < 100; test++ {
		seed := rand.Uint64()
		rng := rand.New(rand.NewPCG(seed, seed))

		m := NewOrdered[int, int](0)
		n := naiveInts{}

		keyRange := rng.IntN(maxRange) + 1
		if rng.IntN(10) == 0 {
			keyRange = rng.IntN(10) + 1
		}
		numValues := rng.IntN(5) + 2
		var log strings.Builder
		for op := 0; op < 500; op++ {
			a, b := rng.IntN(keyRange), rng.IntN(keyRange)
			if rng.IntN(10) != 0 && a > b {
				a, b = b, a
			}
			v := rng.IntN(numValues)
			m.Assign(a, b, v)
			n.Assign(a, b, v)
			fmt.Fprintf(&log, "[%d, %d) = %d\n", a, b, v)
			m.CheckInvariants()

			if exp, actual := n.Breakpoints(), m.Breakpoints(f); exp != actual {
				t.Fatalf("breakpoints mismatch after:\n%s\n%s\nexpected:\n%s\nseed: %d", log.String(), actual, exp, seed)
			}
			if rng.IntN(10) == 0 {
				for k := -1; k <= maxRange; k++ {
					if exp, actual := n.Get(k), m.Get(k); exp != actual {
						t.Fatalf("Get(%d) = %d, expected %d\nseed: %d", k, actual, exp, seed)
					}
				}
			}
		}
	}
}

const maxRange = 1000

// naiveInts models a map over the keys [-1, maxRange] with base value 0.
type naiveInts struct {
	values [maxRange + 2]int
}

func (n *naiveInts) Assign(start, end, val int) {
	for i := start; i < end; i++ {
		n.values[i+1] = val
	}
}

func (n *naiveInts) Get(k int) int {
	return n.values[k+1]
}

func (n *naiveInts) Breakpoints() string {
	var b strings.Builder
	last := 0
	for i, v := range n.values {
		if v != last {
			fmt.Fprintf(&b, "[%d, %d]", i-1, v)
			last = v
		}
	}
	return b.String()
}
