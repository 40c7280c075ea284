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

package overload

import (
	"sort"
	"strings"
)

// ----------------------------------------------------------------------------

// A Keyword is a keyword argument passed through the variadic call surface.
type Keyword struct {
	Name  string
	Value any
}

// Kw returns a keyword argument.
func Kw(name string, value any) Keyword {
	return Keyword{Name: name, Value: value}
}

// Args are the arguments of one call: positional values in order plus
// keyword values by name.
type Args struct {
	Pos []any
	Kw  map[string]any

	names []string // keyword names in call order
}

// MakeArgs splits call-surface values into positional and keyword
// arguments. Keyword values are recognized by their Keyword type and may
// appear anywhere; positional values keep their relative order. It returns
// false if a keyword name is given twice.
func MakeArgs(vals ...any) (args Args, ok bool) {
	for _, v := range vals {
		kw, isKw := v.(Keyword)
		if !isKw {
			args.Pos = append(args.Pos, v)
			continue
		}
		if _, dup := args.Kw[kw.Name]; dup {
			return args, false
		}
		if args.Kw == nil {
			args.Kw = make(map[string]any)
		}
		args.Kw[kw.Name] = kw.Value
		args.names = append(args.names, kw.Name)
	}
	return args, true
}

// keywords returns keyword names in call order. Args built by hand carry no
// order, so their names come out sorted.
func (p *Args) keywords() []string {
	if len(p.names) == len(p.Kw) {
		return p.names
	}
	names := make([]string, 0, len(p.Kw))
	for name := range p.Kw {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// shift removes the first positional value and returns it.
func (p Args) shift() (first any, rest Args, ok bool) {
	if len(p.Pos) == 0 {
		return nil, p, false
	}
	rest = p
	rest.Pos = p.Pos[1:]
	return p.Pos[0], rest, true
}

func (p Args) String() string {
	parts := make([]string, 0, len(p.Pos)+len(p.Kw))
	for _, v := range p.Pos {
		parts = append(parts, formatValue(v))
	}
	for _, name := range p.keywords() {
		parts = append(parts, name+"="+formatValue(p.Kw[name]))
	}
	return strings.Join(parts, ", ")
}

// ----------------------------------------------------------------------------
