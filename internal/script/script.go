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

// Package script implements a small line-oriented language for driving an
// interval map:
//
//	base A             reset to a map where every key maps to A
//	assign [2, 5) B    assign B to the keys in [2, 5)
//	get 4              print the value of a key
//	values [0, 9)      print the values of the (integer) keys in [0, 9)
//	lookups [0, 9)     print "key -> value" for the (integer) keys in [0, 9)
//	breakpoints        print the breakpoint table
//	show               print the constant segments of the map
//
// Blank lines and lines starting with # are ignored.
package script

import (
	"bufio"
	"cmp"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/RaduBerinde/stepmap"
	"github.com/RaduBerinde/stepmap/intervalmap"
	"github.com/rs/zerolog"
)

var (
	// ErrUnknownCommand is returned for commands that don't exist.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUsage is returned when a command has malformed arguments.
	ErrUsage = errors.New("invalid usage")
	// ErrIntegerKeysOnly is returned by commands that enumerate keys when the
	// key type is not int.
	ErrIntegerKeysOnly = errors.New("command requires integer keys")
	// ErrUnknownKeyType is returned by NewForKeyType.
	ErrUnknownKeyType = errors.New("unknown key type")
)

// Runner executes commands; it hides the key type of an Interpreter.
type Runner interface {
	Exec(line string) (string, error)
	Run(r io.Reader, w io.Writer) error
}

// KeyTypes lists the key types accepted by NewForKeyType.
var KeyTypes = []string{"int", "string"}

// NewForKeyType creates an interpreter for the named key type ("int" or
// "string").
func NewForKeyType(keyType string, base string, logger zerolog.Logger) (Runner, error) {
	switch keyType {
	case "int":
		return New(base, stepmap.MakeBasicParser[int](), stepmap.MakeBasicFormatter[int](), logger), nil
	case "string":
		return New(base, stepmap.MakeBasicParser[string](), stepmap.MakeBasicFormatter[string](), logger), nil
	default:
		return nil, fmt.Errorf("%w %q (expected one of %s)", ErrUnknownKeyType, keyType, strings.Join(KeyTypes, ", "))
	}
}

// Interpreter executes commands against an interval map with string values.
type Interpreter[K cmp.Ordered] struct {
	parser stepmap.Parser[K]
	f      stepmap.Formatter[K]
	log    zerolog.Logger
	m      *intervalmap.T[K, string]
}

var _ Runner = (*Interpreter[int])(nil)

// New creates an interpreter with a map that associates base with every key.
func New[K cmp.Ordered](
	base string, parser stepmap.Parser[K], f stepmap.Formatter[K], logger zerolog.Logger,
) *Interpreter[K] {
	return &Interpreter[K]{
		parser: parser,
		f:      f,
		log:    logger,
		m:      intervalmap.NewOrdered[K, string](base),
	}
}

// Map returns the current map.
func (i *Interpreter[K]) Map() *intervalmap.T[K, string] {
	return i.m
}

// Exec executes a single command and returns its output.
func (i *Interpreter[K]) Exec(line string) (string, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", nil
	}
	cmd, args, _ := strings.Cut(line, " ")
	args = strings.TrimSpace(args)
	out, err := i.exec(cmd, args)
	if err != nil {
		return "", fmt.Errorf("%s: %w", cmd, err)
	}
	i.log.Debug().
		Str("cmd", cmd).
		Str("args", args).
		Int("breakpoints", i.m.Len()).
		Msg("executed")
	return out, nil
}

func (i *Interpreter[K]) exec(cmd, args string) (string, error) {
	switch cmd {
	case "base":
		if err := checkValue(args); err != nil {
			return "", err
		}
		i.m = intervalmap.NewOrdered[K, string](args)
		return "", nil

	case "assign":
		start, end, val, err := i.parser.ParseInterval(args)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrUsage, err)
		}
		if err := checkValue(val); err != nil {
			return "", err
		}
		if !(start < end) {
			i.log.Debug().Str("interval", i.f.FormatInterval(start, end)).Msg("empty interval")
		}
		i.m.Assign(start, end, val)
		return "", nil

	case "get":
		k, err := i.parser.ParseKey(args)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return i.m.Get(k) + "\n", nil

	case "values", "lookups":
		im, ok := any(i.m).(*intervalmap.T[int, string])
		if !ok {
			return "", ErrIntegerKeysOnly
		}
		start, end, rem, err := stepmap.MakeBasicParser[int]().ParseInterval(args)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrUsage, err)
		}
		if rem != "" {
			return "", fmt.Errorf("%w: unexpected %q", ErrUsage, rem)
		}
		if cmd == "values" {
			return im.Values(stepmap.IntRange(start, end)) + "\n", nil
		}
		return im.Lookups(stepmap.MakeBasicFormatter[int](), stepmap.IntRange(start, end)), nil

	case "breakpoints":
		if args != "" {
			return "", fmt.Errorf("%w: no arguments expected", ErrUsage)
		}
		bp := i.m.Breakpoints(i.f)
		if bp == "" {
			bp = "<empty>"
		}
		return bp + "\n", nil

	case "show":
		if args != "" {
			return "", fmt.Errorf("%w: no arguments expected", ErrUsage)
		}
		return i.m.String(i.f), nil

	default:
		return "", fmt.Errorf("%w %q", ErrUnknownCommand, cmd)
	}
}

func checkValue(v string) error {
	if v == "" || strings.ContainsAny(v, " \t") {
		return fmt.Errorf("%w: expected a single value, got %q", ErrUsage, v)
	}
	return nil
}

// Run executes all the commands in r and writes their output to w. It stops
// at the first error.
func (i *Interpreter[K]) Run(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		out, err := i.Exec(scanner.Text())
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		if _, err := io.WriteString(w, out); err != nil {
			return err
		}
	}
	return scanner.Err()
}
