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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ----------------------------------------------------------------------------

func TestSignatureShape(t *testing.T) {
	fn := func(a int, b string, c any, kw Kwargs, rest ...int) {}
	sig := NewSignature(reflect.TypeOf(fn), &Hints{
		Params:   []string{"a", "b", "c"},
		Defaults: []any{"x", nil},
	})
	params := sig.Params()
	require.Len(t, params, 3)
	assert.Equal(t, "a", params[0].Name())
	assert.Equal(t, reflect.TypeOf(0), params[0].Type())
	assert.Nil(t, params[2].Type())
	_, ok := params[0].Default()
	assert.False(t, ok)
	v, ok := params[1].Default()
	assert.True(t, ok)
	assert.Equal(t, "x", v)
	assert.Equal(t, 3, sig.NumPositional())
	assert.True(t, sig.KwVariadic())
	elem, ok := sig.Variadic()
	assert.True(t, ok)
	assert.Equal(t, reflect.TypeOf(0), elem)
	assert.False(t, sig.Recv())
	assert.Same(t, params[1], sig.Lookup("b"))
	assert.Nil(t, sig.Lookup("kw"))
	assert.Equal(t, `(a int, b string = "x", c = <nil>, ...int, **kwargs)`, sig.String())
}

func TestSignatureAllNames(t *testing.T) {
	fn := func(a int, kw Kwargs, rest ...any) {}
	sig := NewSignature(reflect.TypeOf(fn), &Hints{Params: []string{"a", "kw", "rest"}})
	require.Len(t, sig.Params(), 1)
	elem, ok := sig.Variadic()
	assert.True(t, ok)
	assert.Nil(t, elem)
	assert.Equal(t, "(a int, ...any, **kwargs)", sig.String())
}

func TestSignatureAutoNames(t *testing.T) {
	sig := NewSignature(reflect.TypeOf(func(int, string) {}), nil)
	assert.Equal(t, "(p0 int, p1 string)", sig.String())
}

func TestSignatureRecv(t *testing.T) {
	fn := func(recv *Func, a int) {}
	sig := NewSignature(reflect.TypeOf(fn), &Hints{Recv: true, Params: []string{"a"}})
	assert.True(t, sig.Recv())
	require.Len(t, sig.Params(), 1)
	assert.Equal(t, "(recv, a int)", sig.String())

	assert.Panics(t, func() {
		NewSignature(reflect.TypeOf(func() {}), &Hints{Recv: true})
	})
}

func TestSignatureKwOnly(t *testing.T) {
	fn := func(a, b, c int) {}
	sig := NewSignature(reflect.TypeOf(fn), &Hints{
		Params:     []string{"a", "b", "c"},
		KwOnly:     []string{"c"},
		Defaults:   []any{2},
		KwDefaults: map[string]any{"c": 3},
	})
	assert.Equal(t, 2, sig.NumPositional())
	assert.True(t, sig.Lookup("c").KwOnly())
	assert.False(t, sig.Lookup("b").KwOnly())
	assert.Equal(t, "(a int, b int = 2, *, c int = 3)", sig.String())
}

func TestSignatureMatch(t *testing.T) {
	sig := NewSignature(reflect.TypeOf(func(a int, b string) {}), &Hints{Params: []string{"a", "b"}})
	args, ok := MakeArgs(1, Kw("b", "x"))
	require.True(t, ok)
	assert.True(t, sig.Match(args))
	args, _ = MakeArgs(1)
	assert.False(t, sig.Match(args))
}

func TestSignatureInvalid(t *testing.T) {
	cases := []struct {
		name string
		typ  reflect.Type
		h    *Hints
	}{
		{"not func", reflect.TypeOf(0), nil},
		{"names count", reflect.TypeOf(func(a, b int) {}), &Hints{Params: []string{"a"}}},
		{"duplicate name", reflect.TypeOf(func(a, b int) {}), &Hints{Params: []string{"a", "a"}}},
		{"default order", reflect.TypeOf(func(a, b int) {}), &Hints{KwDefaults: map[string]any{"p0": 1}}},
		{"default type", reflect.TypeOf(func(a int) {}), &Hints{Defaults: []any{"x"}}},
		{"too many defaults", reflect.TypeOf(func(a int) {}), &Hints{Defaults: []any{1, 2}}},
		{"unknown default", reflect.TypeOf(func(a int) {}), &Hints{KwDefaults: map[string]any{"z": 1}}},
		{"kwonly not trailing", reflect.TypeOf(func(a, b int) {}), &Hints{Params: []string{"a", "b"}, KwOnly: []string{"a"}}},
		{"kwonly unknown", reflect.TypeOf(func(a int) {}), &Hints{KwOnly: []string{"z"}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Panics(t, func() { NewSignature(c.typ, c.h) })
		})
	}
}

func TestConstraint(t *testing.T) {
	assert.Nil(t, constraint(reflect.TypeOf((*any)(nil)).Elem()))
	tyStringer := reflect.TypeOf((*interface{ String() string })(nil)).Elem()
	assert.Equal(t, tyStringer, constraint(tyStringer))

	assert.True(t, compatible(nil, reflect.TypeOf([]int(nil))))
	assert.True(t, compatible(nil, reflect.TypeOf(map[string]int(nil))))
	assert.False(t, compatible(nil, reflect.TypeOf("")))
	assert.True(t, compatible(1, reflect.TypeOf(0)))
	assert.False(t, compatible(int64(1), reflect.TypeOf(0)))
}

// ----------------------------------------------------------------------------
