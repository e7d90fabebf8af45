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

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidInterval is returned when an interval cannot be parsed.
var ErrInvalidInterval = errors.New("invalid interval")

// ErrInvalidKey is returned when a key cannot be parsed.
var ErrInvalidKey = errors.New("invalid key")

// Parser is an interface for parsing keys and intervals; it is the inverse of
// Formatter.
type Parser[K Key] interface {
	// ParseKey parses a "bare" key.
	ParseKey(input string) (K, error)
	// ParseInterval parses an interval of the form "[start, end)" at the
	// beginning of the input, returning the rest of the input (with leading
	// whitespace removed).
	ParseInterval(input string) (start, end K, remainder string, err error)
}

// MakeBasicParser creates a Parser[K] for intervals formatted by
// MakeBasicFormatter. Integer and string keys are parsed directly; other
// types go through fmt.Sscan.
func MakeBasicParser[K Key]() Parser[K] {
	return basicParser[K]{}
}

type basicParser[K Key] struct{}

var _ Parser[int] = basicParser[int]{}

func (basicParser[K]) ParseKey(input string) (K, error) {
	var k K
	if input == "" || strings.ContainsAny(input, " \t\n,[]()") {
		return k, fmt.Errorf("%w: %q", ErrInvalidKey, input)
	}
	switch p := any(&k).(type) {
	case *string:
		*p = input
	case *int:
		v, err := strconv.Atoi(input)
		if err != nil {
			return k, fmt.Errorf("%w: %q: %w", ErrInvalidKey, input, err)
		}
		*p = v
	default:
		if _, err := fmt.Sscan(input, p); err != nil {
			return k, fmt.Errorf("%w: %q: %w", ErrInvalidKey, input, err)
		}
	}
	return k, nil
}

func (p basicParser[K]) ParseInterval(input string) (start, end K, remainder string, err error) {
	fail := func(reason string) (K, K, string, error) {
		var zero K
		return zero, zero, "", fmt.Errorf("%w %q: %s", ErrInvalidInterval, input, reason)
	}
	s, ok := strings.CutPrefix(input, "[")
	if !ok {
		return fail("expected '['")
	}
	startStr, s, ok := strings.Cut(s, ", ")
	if !ok {
		return fail("expected ', '")
	}
	endStr, s, ok := strings.Cut(s, ")")
	if !ok {
		return fail("expected ')'")
	}
	if start, err = p.ParseKey(startStr); err != nil {
		return fail(err.Error())
	}
	if end, err = p.ParseKey(endStr); err != nil {
		return fail(err.Error())
	}
	return start, end, strings.TrimSpace(s), nil
}

// MustParseKey parses a key and panics on error.
func MustParseKey[K Key](p Parser[K], input string) K {
	k, err := p.ParseKey(input)
	if err != nil {
		panic(err)
	}
	return k
}

// MustParseInterval parses an interval that takes up the entire input and
// panics on error.
func MustParseInterval[K Key](p Parser[K], input string) (start, end K) {
	start, end, rem := MustParseIntervalPrefix(p, input)
	if rem != "" {
		panic(fmt.Sprintf("%q: unexpected input after interval: %q", input, rem))
	}
	return start, end
}

// MustParseIntervalPrefix parses an interval at the beginning of the input
// and panics on error.
func MustParseIntervalPrefix[K Key](p Parser[K], input string) (start, end K, remainder string) {
	start, end, remainder, err := p.ParseInterval(input)
	if err != nil {
		panic(err)
	}
	return start, end, remainder
}
