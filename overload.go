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

// Package overload lets several Go funcs share one public name. The call
// arguments select which implementation runs: the first registered one
// whose signature accepts them.
package overload

import (
	"log"
	"reflect"
	"runtime"
	"strings"
)

// ----------------------------------------------------------------------------

const (
	DbgFlagRegister = 1 << iota
	DbgFlagMatch
	DbgFlagCall
	DbgFlagSetDebug
	DbgFlagAll = DbgFlagRegister | DbgFlagMatch | DbgFlagCall | DbgFlagSetDebug
)

var (
	debugRegister bool
	debugMatch    bool
	debugCall     bool
)

func SetDebug(dbgFlags int) {
	debugRegister = (dbgFlags & DbgFlagRegister) != 0
	debugMatch = (dbgFlags & DbgFlagMatch) != 0
	debugCall = (dbgFlags & DbgFlagCall) != 0
	if (dbgFlags & DbgFlagSetDebug) != 0 {
		log.Printf("SetDebug: register=%v, match=%v, call=%v\n", debugRegister, debugMatch, debugCall)
	}
}

// ----------------------------------------------------------------------------

// Config type
type Config struct {
	// Extractor builds the signature of every implementation added to the
	// registry. If Extractor is nil, Reflect is used.
	Extractor Extractor
}

type entry struct {
	fn  reflect.Value
	sig *Signature
}

// Func is an overloaded function: an ordered set of implementations sharing
// one name. Registration order is match priority.
//
// A Func is not safe for concurrent Add. Concurrent calls are safe as long
// as no Add is in progress.
type Func struct {
	name    string
	doc     string
	recv    bool
	extract Extractor
	entries []*entry
}

// New creates an overloaded function whose first implementation is fn. The
// name and documentation of the result are taken from fn and never change.
func New(fn any, opts ...Option) *Func {
	return newFunc(nil, false, fn, opts)
}

// NewWith is like New but uses conf.
func NewWith(conf *Config, fn any, opts ...Option) *Func {
	return newFunc(conf, false, fn, opts)
}

// NewMethod creates an overloaded method. Every implementation takes the
// receiver as its first parameter, like a method expression T.M; the
// receiver is never checked and is supplied by Bind or by the first
// positional argument of Call.
func NewMethod(fn any, opts ...Option) *Func {
	return newFunc(nil, true, fn, opts)
}

// NewMethodWith is like NewMethod but uses conf.
func NewMethodWith(conf *Config, fn any, opts ...Option) *Func {
	return newFunc(conf, true, fn, opts)
}

func newFunc(conf *Config, recv bool, fn any, opts []Option) *Func {
	if conf == nil {
		conf = new(Config)
	}
	extract := conf.Extractor
	if extract == nil {
		extract = Reflect
	}
	p := &Func{recv: recv, extract: extract}
	p.add(fn, opts)
	return p
}

// Add appends one more implementation and returns p, so additions chain.
// The name and documentation of p are not affected.
func (p *Func) Add(fn any, opts ...Option) *Func {
	p.add(fn, opts)
	return p
}

func (p *Func) add(fn any, opts []Option) {
	h := &Hints{Recv: p.recv}
	for _, opt := range opts {
		opt(h)
	}
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		log.Panicf("overload: implementation of %s must be a func, got %T\n", p.name, fn)
	}
	if p.entries == nil {
		p.name, p.doc = h.Name, h.Doc
		if p.name == "" {
			p.name = funcName(v)
		}
	}
	sig := p.extract.Extract(v, h)
	p.entries = append(p.entries, &entry{fn: v, sig: sig})
	if debugRegister {
		log.Printf("==> Add %s #%d %v\n", p.name, len(p.entries)-1, sig)
	}
}

// Name returns the public name, taken from the first implementation.
func (p *Func) Name() string {
	return p.name
}

// Doc returns the documentation, taken from the first implementation.
func (p *Func) Doc() string {
	return p.doc
}

// Len returns the number of registered implementations.
func (p *Func) Len() int {
	return len(p.entries)
}

// Signatures returns the signatures of all implementations in registration
// order.
func (p *Func) Signatures() []*Signature {
	sigs := make([]*Signature, len(p.entries))
	for i, e := range p.entries {
		sigs[i] = e.sig
	}
	return sigs
}

func (p *Func) String() string {
	return p.name
}

// ----------------------------------------------------------------------------

// Call invokes the first implementation that accepts args. Keyword
// arguments are passed as Kw(name, value). For an overloaded method the
// first positional argument is the receiver.
//
// The results of the implementation are returned as ret; if its last
// result is an error, that error is returned as err unchanged. If no
// implementation accepts args, err is an *InvalidCallError and nothing is
// invoked.
func (p *Func) Call(args ...any) (ret []any, err error) {
	a, ok := MakeArgs(args...)
	if !ok {
		return nil, &InvalidCallError{Name: p.name, Args: a}
	}
	return p.Apply(a)
}

// Apply is like Call but takes prepared arguments.
func (p *Func) Apply(args Args) (ret []any, err error) {
	var recv reflect.Value
	if p.recv {
		first, rest, ok := args.shift()
		if !ok {
			return nil, &InvalidCallError{Name: p.name, Args: args}
		}
		recv, args = reflect.ValueOf(first), rest
	}
	return p.dispatch(recv, &args)
}

// Select returns the index of the implementation Call would invoke with
// args, without invoking it.
func (p *Func) Select(args ...any) (int, error) {
	a, ok := MakeArgs(args...)
	if !ok {
		return -1, &InvalidCallError{Name: p.name, Args: a}
	}
	if p.recv {
		_, rest, ok := a.shift()
		if !ok {
			return -1, &InvalidCallError{Name: p.name, Args: a}
		}
		a = rest
	}
	idx, _, err := p.selectEntry(&a)
	return idx, err
}

// ----------------------------------------------------------------------------

// funcName returns the short name of a func the way it was declared.
func funcName(v reflect.Value) string {
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return v.Type().String()
	}
	name := strings.TrimSuffix(rf.Name(), "-fm")
	if pos := strings.IndexByte(name, '['); pos > 0 {
		name = name[:pos]
	}
	if pos := strings.LastIndexByte(name, '.'); pos >= 0 {
		name = name[pos+1:]
	}
	return name
}

// ----------------------------------------------------------------------------
