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
	"log"
	"reflect"
)

// ----------------------------------------------------------------------------

// binding is the result of a successful match: which parameter receives
// which call value.
type binding struct {
	vals   []any
	set    []bool
	extra  []any  // absorbed by the ...T collector
	kwargs Kwargs // absorbed by the Kwargs collector
}

// match checks args against the signature. The checks run in order (arity,
// keyword names, types) and the first failing one is reported as why.
func (p *Signature) match(args *Args) (b *binding, why string) {
	n := len(p.params)
	b = &binding{vals: make([]any, n), set: make([]bool, n)}

	// arity
	npos := len(args.Pos)
	if npos > p.npos {
		if !p.hasVariadic {
			return nil, "too many positional arguments"
		}
		b.extra = args.Pos[p.npos:]
		npos = p.npos
	}
	for i := 0; i < npos; i++ {
		b.vals[i], b.set[i] = args.Pos[i], true
	}
	var unknown []string
	for _, name := range args.keywords() {
		i, ok := p.index[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		if b.set[i] {
			return nil, "multiple values for argument " + name
		}
		b.vals[i], b.set[i] = args.Kw[name], true
	}
	for i, param := range p.params {
		if !b.set[i] && !param.hasDef {
			return nil, "missing argument " + param.name
		}
	}

	// keyword names
	if len(unknown) > 0 {
		if p.kwargs < 0 {
			return nil, "unexpected keyword argument " + unknown[0]
		}
		b.kwargs = make(Kwargs, len(unknown))
		for _, name := range unknown {
			b.kwargs[name] = args.Kw[name]
		}
	}

	// types
	for i, param := range p.params {
		if b.set[i] && param.typ != nil && !compatible(b.vals[i], param.typ) {
			return nil, "argument " + param.name + ": " + formatValue(b.vals[i]) + " is not " + param.typ.String()
		}
	}
	if p.variadic != nil {
		for _, v := range b.extra {
			if !compatible(v, p.variadic) {
				return nil, "variadic argument " + formatValue(v) + " is not " + p.variadic.String()
			}
		}
	}
	return b, ""
}

// Match reports whether the signature accepts args.
func (p *Signature) Match(args Args) bool {
	_, why := p.match(&args)
	return why == ""
}

// inputs lays the bound values out as the implementation's parameter list.
func (p *Signature) inputs(t reflect.Type, recv reflect.Value, b *binding) []reflect.Value {
	in := make([]reflect.Value, 0, p.numIn+len(b.extra))
	if p.recv {
		if !recv.IsValid() {
			recv = reflect.Zero(t.In(0))
		}
		in = append(in, recv)
	}
	for i, param := range p.params {
		v := param.def
		if b.set[i] {
			v = b.vals[i]
		}
		in = append(in, valueOf(v, t.In(param.in)))
	}
	if p.kwargs >= 0 {
		kw := b.kwargs
		if kw == nil {
			kw = Kwargs{}
		}
		in = append(in, reflect.ValueOf(kw))
	}
	if p.hasVariadic {
		elem := t.In(p.numIn - 1).Elem()
		for _, v := range b.extra {
			in = append(in, valueOf(v, elem))
		}
	}
	return in
}

func valueOf(v any, t reflect.Type) reflect.Value {
	if v == nil {
		return reflect.Zero(t)
	}
	return reflect.ValueOf(v)
}

// results converts the return values of an implementation. A trailing error
// result is returned as err.
func results(out []reflect.Value) (ret []any, err error) {
	if n := len(out); n > 0 && out[n-1].Type() == tyError {
		if e := out[n-1].Interface(); e != nil {
			err = e.(error)
		}
		out = out[:n-1]
	}
	ret = make([]any, len(out))
	for i, v := range out {
		ret[i] = v.Interface()
	}
	return
}

// ----------------------------------------------------------------------------

// selectEntry scans the entries in registration order and returns the first
// one whose signature accepts args.
func (p *Func) selectEntry(args *Args) (idx int, b *binding, err error) {
	for i, e := range p.entries {
		b, why := e.sig.match(args)
		if why == "" {
			if debugMatch {
				log.Printf("==> Match %s #%d %v\n", p.name, i, e.sig)
			}
			return i, b, nil
		}
		if debugMatch {
			log.Printf("==> Reject %s #%d %v: %s\n", p.name, i, e.sig, why)
		}
	}
	return -1, nil, &InvalidCallError{Name: p.name, Args: *args, Tried: len(p.entries)}
}

// dispatch selects an implementation for args and invokes it. For method
// registries recv is passed as the receiver. The receiver takes no part in
// selection, but a receiver the selected implementation cannot take fails
// the call.
func (p *Func) dispatch(recv reflect.Value, args *Args) ([]any, error) {
	idx, b, err := p.selectEntry(args)
	if err != nil {
		return nil, err
	}
	e := p.entries[idx]
	if e.sig.recv && recv.IsValid() && !recv.Type().AssignableTo(e.fn.Type().In(0)) {
		if debugCall {
			log.Printf("==> Reject %s #%d: receiver %v is not %v\n", p.name, idx, recv.Type(), e.fn.Type().In(0))
		}
		return nil, &InvalidCallError{Name: p.name, Args: *args, Tried: idx + 1}
	}
	if debugCall {
		log.Printf("==> Call %s #%d (%v)\n", p.name, idx, args)
	}
	return results(e.fn.Call(e.sig.inputs(e.fn.Type(), recv, b)))
}

// ----------------------------------------------------------------------------
