/*
 Copyright 2026 The GoPlus Authors (goplus.org)
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at
     http://www.apache.org/licenses/LICENSE-2.0
 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

// Package commands provides the CLI commands of the ovlist tool.
package commands

import (
	"fmt"
	"os"

	"github.com/goplus/overload/packages"
	"github.com/goplus/overload/typeinfo"
	"github.com/spf13/cobra"
)

type options struct {
	dir    string
	tags   string
	format string
	color  string
	debug  bool
	strict bool
}

// NewRootCmd creates the ovlist command with its subcommands.
func NewRootCmd() *cobra.Command {
	opts := new(options)
	cmd := &cobra.Command{
		Use:   "ovlist [flags] package...",
		Short: "List the overload groups declared by Go packages",
		Long: `ovlist loads packages from export data and lists every overload group
they declare, by numbered members (Name__0, Name__1, ...) or by Gopo_
constants, with the members in the order a call tries them.

A member is reported as shadowed when an earlier member of its group
accepts every call it accepts, so it can never be selected.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, args)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.dir, "dir", "C", "", "Run in `dir` instead of the current directory")
	flags.StringVar(&opts.tags, "tags", "", "Comma-separated build tags")
	flags.StringVar(&opts.format, "format", "text", "Output format: text or yaml")
	flags.StringVar(&opts.color, "color", "auto", "Colorize text output: auto, always or never")
	flags.BoolVar(&opts.debug, "debug", false, "Log lookups and discovered groups")
	flags.BoolVar(&opts.strict, "strict", false, "Fail if any member is shadowed")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the ovlist command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runList(cmd *cobra.Command, opts *options, args []string) error {
	out := cmd.OutOrStdout()
	colored, err := useColor(opts.color, out)
	if err != nil {
		return err
	}
	if opts.format != "text" && opts.format != "yaml" {
		return fmt.Errorf("unknown format %q", opts.format)
	}
	if opts.debug {
		typeinfo.SetDebug(typeinfo.DbgFlagAll)
		defer typeinfo.SetDebug(0)
	}

	pkgPaths, err := packages.List(opts.dir, opts.tags, args...)
	if err != nil {
		return err
	}
	imp := packages.NewImporter(nil, opts.dir)
	imp.SetTags(opts.tags)
	reports := make([]*pkgReport, 0, len(pkgPaths))
	for _, pkgPath := range pkgPaths {
		pkg, err := imp.Import(pkgPath)
		if err != nil {
			return err
		}
		groups, err := typeinfo.Groups(pkg)
		if err != nil {
			return fmt.Errorf("%s: %w", pkgPath, err)
		}
		reports = append(reports, newPkgReport(pkg, groups))
	}

	if opts.format == "yaml" {
		err = writeYAML(out, reports)
	} else {
		err = writeText(out, reports, colored)
	}
	if err != nil {
		return err
	}
	if opts.strict {
		if n := numShadowed(reports); n > 0 {
			return fmt.Errorf("%d shadowed overload member(s)", n)
		}
	}
	return nil
}
