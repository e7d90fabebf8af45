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

package stepmap

import "fmt"

// Formatter is an interface for formatting keys and intervals.
type Formatter[K Key] interface {
	// FormatKey formats a "bare" key.
	FormatKey(k K) string
	// FormatInterval formats the half-open interval [start, end).
	FormatInterval(start, end K) string
}

// MakeBasicFormatter creates a Formatter[K] that uses the `%v` format for the
// keys.
func MakeBasicFormatter[K Key]() Formatter[K] {
	return basicFormatter[K]{}
}

type basicFormatter[K Key] struct{}

var _ Formatter[int] = basicFormatter[int]{}

func (basicFormatter[K]) FormatKey(k K) string {
	return fmt.Sprint(k)
}

func (basicFormatter[K]) FormatInterval(start, end K) string {
	return fmt.Sprintf("[%v, %v)", start, end)
}

// FormatBefore formats the unbounded interval of all keys less than end.
func FormatBefore[K Key](f Formatter[K], end K) string {
	return fmt.Sprintf("(-inf, %s)", f.FormatKey(end))
}

// FormatFrom formats the unbounded interval of all keys not less than start.
func FormatFrom[K Key](f Formatter[K], start K) string {
	return fmt.Sprintf("[%s, +inf)", f.FormatKey(start))
}
