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

package typeinfo

import (
	"go/types"
)

// ----------------------------------------------------------------------------

// A Shadow reports that the member at index Member can never be selected by
// a positional call, since the earlier member at index By accepts every
// such call first.
type Shadow struct {
	Member int
	By     int
}

// Shadowed returns the members of p shadowed by an earlier member. Only
// positional calls are considered, and acceptance is judged from the
// declared types: a member accepts an argument if its static type is
// assignable to the parameter type.
func (p *Group) Shadowed() (ret []Shadow) {
	for j := 1; j < len(p.Members); j++ {
		for i := 0; i < j; i++ {
			if Covers(p.Members[i], p.Members[j]) {
				ret = append(ret, Shadow{Member: j, By: i})
				break
			}
		}
	}
	return
}

// Covers reports whether a accepts every positional call that b accepts.
func Covers(a, b *Member) bool {
	pa, va := a.Params()
	pb, vb := b.Params()
	minA, maxA := arity(pa, va)
	minB, maxB := arity(pb, vb)
	if minB < minA {
		return false
	}
	if maxA >= 0 && (maxB < 0 || maxB > maxA) {
		return false
	}
	limit := maxB
	if limit < 0 {
		limit = max(len(pa), len(pb)) + 1
	}
	for i := 0; i < limit; i++ {
		if !accepts(typeAt(pa, va, i), typeAt(pb, vb, i)) {
			return false
		}
	}
	return true
}

// arity returns the accepted argument counts; hi is -1 if unbounded.
func arity(params []*types.Var, variadic bool) (lo, hi int) {
	n := len(params)
	if variadic {
		return n - 1, -1
	}
	return n, n
}

func typeAt(params []*types.Var, variadic bool, i int) types.Type {
	if n := len(params); variadic && i >= n-1 {
		return params[n-1].Type().(*types.Slice).Elem()
	}
	return params[i].Type()
}

func accepts(param, arg types.Type) bool {
	if t, ok := param.Underlying().(*types.Interface); ok && t.Empty() {
		return true
	}
	return types.AssignableTo(arg, param)
}

// ----------------------------------------------------------------------------
