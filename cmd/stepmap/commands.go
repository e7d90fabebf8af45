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

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/RaduBerinde/stepmap/internal/script"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags.
var version = "dev"

type rootOptions struct {
	keys     string
	logLevel string
	base     string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "stepmap",
		Short: "Run interval map scripts",
		Long: `stepmap maintains a map from an ordered key domain to values that is
constant over ranges of keys, driven by commands:

  base A             reset to a map where every key maps to A
  assign [2, 5) B    assign B to the keys in [2, 5)
  get 4              print the value of a key
  values [0, 9)      print the values of the (integer) keys in [0, 9)
  lookups [0, 9)     print "key -> value" for the (integer) keys in [0, 9)
  breakpoints        print the breakpoint table
  show               print the constant segments of the map`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.keys, "keys", "k", "int", "key type ("+strings.Join(script.KeyTypes, ", ")+")")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")
	flags.StringVarP(&opts.base, "base", "b", "A", "value initially associated with every key")

	rootCmd.AddCommand(newRunCommand(opts))
	rootCmd.AddCommand(newExecCommand(opts))
	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

func (o *rootOptions) runner(stderr io.Writer) (script.Runner, error) {
	level, err := zerolog.ParseLevel(o.logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr}).Level(level).With().Timestamp().Logger()
	return script.NewForKeyType(o.keys, o.base, logger)
}

func newRunCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run <script-file|->",
		Short: "Execute the commands in a script file (- for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.runner(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			in := cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			if err := r.Run(in, cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return nil
		},
	}
}

func newExecCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "exec <command>...",
		Short:   "Execute each argument as a command against a new map",
		Example: `  stepmap exec "assign [2, 5) B" "values [0, 9)"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.runner(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			for _, a := range args {
				out, err := r.Exec(a)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "stepmap %s\n", version)
		},
	}
}
