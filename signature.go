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
	"fmt"
	"log"
	"reflect"
	"strconv"
	"strings"
)

// ----------------------------------------------------------------------------

// Kwargs is the type of a variadic-keyword collector. A parameter of this
// type placed after all ordinary parameters (and before a ...T parameter,
// if any) absorbs keyword arguments that name no declared parameter.
type Kwargs map[string]any

var (
	tyKwargs = reflect.TypeOf(Kwargs(nil))
	tyError  = reflect.TypeOf((*error)(nil)).Elem()
)

// A Param describes one declared parameter of an implementation.
type Param struct {
	name   string
	typ    reflect.Type // nil means unconstrained
	in     int          // index in the implementation's parameter list
	kwOnly bool
	hasDef bool
	def    any
}

// Name returns the parameter name.
func (p *Param) Name() string {
	return p.name
}

// Type returns the declared type constraint of the parameter, or nil if
// the parameter accepts any value.
func (p *Param) Type() reflect.Type {
	return p.typ
}

// KwOnly reports whether the parameter can only be supplied by keyword.
func (p *Param) KwOnly() bool {
	return p.kwOnly
}

// Default returns the default value of the parameter.
func (p *Param) Default() (v any, ok bool) {
	return p.def, p.hasDef
}

func (p *Param) String() string {
	var b strings.Builder
	b.WriteString(p.name)
	if p.typ != nil {
		b.WriteByte(' ')
		b.WriteString(p.typ.String())
	}
	if p.hasDef {
		b.WriteString(" = ")
		b.WriteString(formatValue(p.def))
	}
	return b.String()
}

// ----------------------------------------------------------------------------

// A Signature is the calling shape of one registered implementation. It is
// built once at registration and never changes afterwards.
type Signature struct {
	params      []*Param
	index       map[string]int
	npos        int // number of positional-capable params
	numIn       int
	recv        bool
	hasVariadic bool
	variadic    reflect.Type // element constraint of the ...T collector
	kwargs      int          // index of the Kwargs collector, -1 if none
}

// Params returns the declared parameters, receiver and collectors excluded.
func (p *Signature) Params() []*Param {
	return append([]*Param(nil), p.params...)
}

// NumPositional returns the number of parameters that can be supplied by
// position.
func (p *Signature) NumPositional() int {
	return p.npos
}

// Lookup returns the parameter with the given name, or nil.
func (p *Signature) Lookup(name string) *Param {
	if i, ok := p.index[name]; ok {
		return p.params[i]
	}
	return nil
}

// Recv reports whether the first parameter of the implementation is a
// receiver supplied by the call mechanism.
func (p *Signature) Recv() bool {
	return p.recv
}

// Variadic reports whether the implementation has a variadic-positional
// collector, and returns the element constraint (nil if unconstrained).
func (p *Signature) Variadic() (elem reflect.Type, ok bool) {
	return p.variadic, p.hasVariadic
}

// KwVariadic reports whether the implementation has a Kwargs collector.
func (p *Signature) KwVariadic() bool {
	return p.kwargs >= 0
}

func (p *Signature) String() string {
	parts := make([]string, 0, len(p.params)+3)
	if p.recv {
		parts = append(parts, "recv")
	}
	for i, param := range p.params {
		if i == p.npos {
			parts = append(parts, "*")
		}
		parts = append(parts, param.String())
	}
	if p.hasVariadic {
		if p.variadic != nil {
			parts = append(parts, "..."+p.variadic.String())
		} else {
			parts = append(parts, "...any")
		}
	}
	if p.kwargs >= 0 {
		parts = append(parts, "**kwargs")
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ----------------------------------------------------------------------------

// Hints carries the declaration facts that Go reflection cannot recover
// from a func value: parameter names, default values and keyword-only
// parameters. It also carries the public name and documentation of the
// implementation.
type Hints struct {
	Name string
	Doc  string

	// Params names the parameters in declaration order, receiver excluded.
	// It may name either the ordinary parameters only, or every parameter
	// including the Kwargs and ...T collectors.
	Params []string

	// Defaults holds default values of the trailing positional parameters.
	Defaults []any

	// KwDefaults holds default values by parameter name.
	KwDefaults map[string]any

	// KwOnly names the trailing parameters that can only be supplied by
	// keyword.
	KwOnly []string

	// Recv marks the first parameter as a receiver.
	Recv bool
}

// An Option sets a hint for one implementation.
type Option func(h *Hints)

// Name sets the public name of an implementation.
func Name(name string) Option {
	return func(h *Hints) { h.Name = name }
}

// Doc sets the documentation string of an implementation.
func Doc(doc string) Option {
	return func(h *Hints) { h.Doc = doc }
}

// Params names the parameters of an implementation.
func Params(names ...string) Option {
	return func(h *Hints) { h.Params = names }
}

// Defaults sets default values of the trailing positional parameters.
func Defaults(vals ...any) Option {
	return func(h *Hints) { h.Defaults = vals }
}

// KwDefault sets the default value of the named parameter.
func KwDefault(name string, val any) Option {
	return func(h *Hints) {
		if h.KwDefaults == nil {
			h.KwDefaults = make(map[string]any)
		}
		h.KwDefaults[name] = val
	}
}

// KwOnly marks the named trailing parameters as keyword-only.
func KwOnly(names ...string) Option {
	return func(h *Hints) { h.KwOnly = names }
}

// ----------------------------------------------------------------------------

// An Extractor builds the Signature of an implementation.
type Extractor interface {
	Extract(fn reflect.Value, h *Hints) *Signature
}

type reflectExtractor struct{}

func (reflectExtractor) Extract(fn reflect.Value, h *Hints) *Signature {
	return NewSignature(fn.Type(), h)
}

// Reflect is the default Extractor. It takes parameter types from the func
// type and everything else from hints; unnamed parameters are called p0,
// p1 and so on.
var Reflect Extractor = reflectExtractor{}

// NewSignature builds the Signature of a func type. It panics if t is not a
// func type or if hints contradict the declaration.
func NewSignature(t reflect.Type, h *Hints) *Signature {
	if t.Kind() != reflect.Func {
		log.Panicln("overload: implementation must be a func, got", t)
	}
	if h == nil {
		h = new(Hints)
	}
	n := t.NumIn()
	sig := &Signature{numIn: n, kwargs: -1, recv: h.Recv}
	first, last := 0, n
	if h.Recv {
		if n == 0 {
			log.Panicln("overload: method requires a receiver parameter:", t)
		}
		first = 1
	}
	if t.IsVariadic() {
		last--
		sig.hasVariadic = true
		sig.variadic = constraint(t.In(last).Elem())
	}
	if last > first && t.In(last-1) == tyKwargs {
		last--
		sig.kwargs = last
	}
	nparam := last - first
	names := h.Params
	switch len(names) {
	case nparam:
	case n - first:
		names = names[:nparam]
	case 0:
		names = make([]string, nparam)
		for i := range names {
			names[i] = "p" + strconv.Itoa(i)
		}
	default:
		log.Panicf("overload: %d parameter names for %d parameters of %v\n", len(names), nparam, t)
	}
	sig.params = make([]*Param, nparam)
	sig.index = make(map[string]int, nparam)
	for i, name := range names {
		if _, ok := sig.index[name]; ok {
			log.Panicln("overload: duplicate parameter name", name, "in", t)
		}
		sig.index[name] = i
		sig.params[i] = &Param{name: name, typ: constraint(t.In(first + i)), in: first + i}
	}
	sig.npos = nparam - len(h.KwOnly)
	if sig.npos < 0 {
		log.Panicln("overload: too many keyword-only parameters for", t)
	}
	for _, name := range h.KwOnly {
		i, ok := sig.index[name]
		if !ok || i < sig.npos {
			log.Panicln("overload: keyword-only parameter must be a trailing parameter:", name)
		}
		sig.params[i].kwOnly = true
	}
	if len(h.Defaults) > sig.npos {
		log.Panicln("overload: more defaults than positional parameters in", t)
	}
	for i, v := range h.Defaults {
		sig.setDefault(t, sig.params[sig.npos-len(h.Defaults)+i], v)
	}
	for name, v := range h.KwDefaults {
		i, ok := sig.index[name]
		if !ok {
			log.Panicln("overload: default for unknown parameter", name)
		}
		sig.setDefault(t, sig.params[i], v)
	}
	for i := 1; i < sig.npos; i++ {
		if sig.params[i-1].hasDef && !sig.params[i].hasDef {
			log.Panicln("overload: parameter without default follows parameter with default:", sig.params[i].name)
		}
	}
	return sig
}

func (p *Signature) setDefault(t reflect.Type, param *Param, v any) {
	if !compatible(v, t.In(param.in)) {
		log.Panicf("overload: default %s of parameter %s is not assignable to %v\n", formatValue(v), param.name, t.In(param.in))
	}
	param.def, param.hasDef = v, true
}

// constraint returns the recorded type hint for a declared type: any type
// except the empty interface constrains its argument.
func constraint(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Interface && t.NumMethod() == 0 {
		return nil
	}
	return t
}

// compatible reports whether v can be passed where t is declared.
func compatible(v any, t reflect.Type) bool {
	if v == nil {
		switch t.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map,
			reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
			return true
		}
		return false
	}
	return reflect.TypeOf(v).AssignableTo(t)
}

func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprint(v)
}

// ----------------------------------------------------------------------------
