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
	"reflect"
)

// ----------------------------------------------------------------------------

// Bound is an overloaded function bound to a receiver.
type Bound struct {
	fn   *Func
	recv any
}

// Bind returns p bound to recv. Binding a registry created by New (a plain
// function) ignores recv, the way a static method ignores its instance.
func (p *Func) Bind(recv any) *Bound {
	return &Bound{fn: p, recv: recv}
}

// Func returns the overloaded function p was bound from.
func (p *Bound) Func() *Func {
	return p.fn
}

// Call invokes the first implementation that accepts args, passing the
// bound receiver. See Func.Call.
func (p *Bound) Call(args ...any) (ret []any, err error) {
	a, ok := MakeArgs(args...)
	if !ok {
		return nil, &InvalidCallError{Name: p.fn.name, Args: a}
	}
	if !p.fn.recv {
		return p.fn.dispatch(reflect.Value{}, &a)
	}
	return p.fn.dispatch(reflect.ValueOf(p.recv), &a)
}

// ----------------------------------------------------------------------------
