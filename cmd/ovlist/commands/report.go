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

package commands

import (
	"bufio"
	"fmt"
	"go/types"
	"io"
	"os"

	"github.com/goplus/overload/typeinfo"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

type pkgReport struct {
	Path   string         `yaml:"path"`
	Groups []*groupReport `yaml:"groups"`
}

type groupReport struct {
	Name    string          `yaml:"name"`
	Members []*memberReport `yaml:"members"`
}

type memberReport struct {
	Func       string `yaml:"func"`
	Signature  string `yaml:"signature"`
	ShadowedBy string `yaml:"shadowedBy,omitempty"`
}

func newPkgReport(pkg *types.Package, groups []*typeinfo.Group) *pkgReport {
	qual := types.RelativeTo(pkg)
	ret := &pkgReport{Path: pkg.Path(), Groups: make([]*groupReport, len(groups))}
	for i, g := range groups {
		gr := &groupReport{Name: g.FullName(), Members: make([]*memberReport, len(g.Members))}
		for j, m := range g.Members {
			gr.Members[j] = &memberReport{
				Func:      memberName(m),
				Signature: types.TypeString(m.Func.Type(), qual),
			}
		}
		for _, s := range g.Shadowed() {
			gr.Members[s.Member].ShadowedBy = gr.Members[s.By].Func
		}
		ret.Groups[i] = gr
	}
	return ret
}

func memberName(m *typeinfo.Member) string {
	fn := m.Func
	recv := fn.Type().(*types.Signature).Recv()
	if recv == nil {
		return fn.Name()
	}
	t, ptr := types.Unalias(recv.Type()), false
	if p, ok := t.(*types.Pointer); ok {
		t, ptr = types.Unalias(p.Elem()), true
	}
	name := types.TypeString(t, nil)
	if named, ok := t.(*types.Named); ok {
		name = named.Obj().Name()
	}
	if ptr {
		return "(*" + name + ")." + fn.Name()
	}
	return name + "." + fn.Name()
}

func numShadowed(reports []*pkgReport) (n int) {
	for _, r := range reports {
		for _, g := range r.Groups {
			for _, m := range g.Members {
				if m.ShadowedBy != "" {
					n++
				}
			}
		}
	}
	return
}

// ----------------------------------------------------------------------------

func writeYAML(w io.Writer, reports []*pkgReport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(reports); err != nil {
		return fmt.Errorf("ovlist: marshal report: %w", err)
	}
	return enc.Close()
}

const (
	colorWarn  = "\x1b[33m"
	colorGroup = "\x1b[1m"
	colorReset = "\x1b[0m"
)

func writeText(w io.Writer, reports []*pkgReport, colored bool) error {
	paint := func(color, s string) string {
		if colored {
			return color + s + colorReset
		}
		return s
	}
	// bufio.Writer keeps the first write error, reported by Flush.
	bw := bufio.NewWriter(w)
	for _, r := range reports {
		fmt.Fprintf(bw, "package %s\n", r.Path)
		for _, g := range r.Groups {
			fmt.Fprintf(bw, "  %s\n", paint(colorGroup, g.Name))
			for i, m := range g.Members {
				fmt.Fprintf(bw, "    %d: %s %s\n", i, m.Func, m.Signature)
				if m.ShadowedBy != "" {
					fmt.Fprintf(bw, "       %s\n", paint(colorWarn, "shadowed by "+m.ShadowedBy))
				}
			}
		}
	}
	return bw.Flush()
}

// useColor decides whether text output written to out is colorized.
func useColor(mode string, out io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false, nil
		}
		f, ok := out.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	}
	return false, fmt.Errorf("unknown color mode %q", mode)
}
