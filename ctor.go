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

// Ctor is an overloaded constructor of T. Every implementation returns a
// value assignable to T, optionally followed by an error.
//
// Implementations do not delegate to each other: each one calls a fixed,
// explicitly named base construction step of its own.
type Ctor[T any] struct {
	fn *Func
}

// NewCtor creates an overloaded constructor whose first implementation is
// fn. Its name defaults to the name of T.
func NewCtor[T any](fn any, opts ...Option) *Ctor[T] {
	t := reflect.TypeFor[T]()
	checkCtor(t, fn)
	if name := t.Name(); name != "" {
		opts = append([]Option{Name(name)}, opts...)
	}
	return &Ctor[T]{fn: New(fn, opts...)}
}

// Add appends one more constructor implementation and returns p.
func (p *Ctor[T]) Add(fn any, opts ...Option) *Ctor[T] {
	checkCtor(reflect.TypeFor[T](), fn)
	p.fn.Add(fn, opts...)
	return p
}

// New constructs a T with the first implementation that accepts args.
func (p *Ctor[T]) New(args ...any) (obj T, err error) {
	ret, err := p.fn.Call(args...)
	if err != nil {
		return
	}
	obj, _ = ret[0].(T)
	return
}

// Func returns the underlying overloaded function.
func (p *Ctor[T]) Func() *Func {
	return p.fn
}

// Name returns the public name of the constructor.
func (p *Ctor[T]) Name() string {
	return p.fn.name
}

// Doc returns the documentation of the constructor.
func (p *Ctor[T]) Doc() string {
	return p.fn.doc
}

func checkCtor(t reflect.Type, fn any) {
	ft := reflect.TypeOf(fn)
	if ft == nil || ft.Kind() != reflect.Func {
		log.Panicf("overload: constructor of %v must be a func, got %T\n", t, fn)
	}
	switch ft.NumOut() {
	case 2:
		if ft.Out(1) != tyError {
			break
		}
		fallthrough
	case 1:
		if ft.Out(0).AssignableTo(t) {
			return
		}
	}
	log.Panicf("overload: constructor %v must return %v\n", ft, t)
}

// ----------------------------------------------------------------------------
