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
	"go/constant"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ----------------------------------------------------------------------------

func memberNames(g *Group) []string {
	names := make([]string, len(g.Members))
	for i, m := range g.Members {
		names[i] = m.Func.Name()
	}
	return names
}

func TestGroups(t *testing.T) {
	SetDebug(DbgFlagAll)
	defer SetDebug(0)
	groups, err := Groups(importShapes(t))
	require.NoError(t, err)

	byName := make(map[string]*Group)
	var names []string
	for _, g := range groups {
		names = append(names, g.FullName())
		byName[g.FullName()] = g
	}
	assert.Equal(t, []string{"Area", "Canvas.Draw", "Canvas.Fill", "Canvas.Paint", "Join", "New", "Scale"}, names)

	assert.Equal(t, []string{"Area__0", "Area__1", "Area__2"}, memberNames(byName["Area"]))
	assert.Equal(t, []string{"Join__0", "JoinAll"}, memberNames(byName["Join"]))
	assert.Equal(t, []string{"NewRect", "NewSquare", "NewUnit"}, memberNames(byName["New"]))
	assert.Equal(t, []string{"Draw__0", "Draw__1"}, memberNames(byName["Canvas.Draw"]))
	assert.Equal(t, []string{"DrawAll", "FillRect"}, memberNames(byName["Canvas.Paint"]))

	fill := byName["Canvas.Fill"]
	assert.Equal(t, "Fill", fill.Name)
	assert.Equal(t, "Canvas", fill.Recv.Name())
	assert.Equal(t, []string{"FillRect", "FillCanvas", "FillAny"}, memberNames(fill))
	assert.False(t, fill.Members[0].RecvParam)
	assert.True(t, fill.Members[1].RecvParam)
	params, variadic := fill.Members[1].Params()
	require.Len(t, params, 1)
	assert.Equal(t, "name", params[0].Name())
	assert.False(t, variadic)
	assert.Nil(t, byName["Join"].Recv)
}

func TestShadowed(t *testing.T) {
	groups, err := Groups(importShapes(t))
	require.NoError(t, err)
	shadows := make(map[string][]Shadow)
	for _, g := range groups {
		if s := g.Shadowed(); s != nil {
			shadows[g.FullName()] = s
		}
	}
	assert.Equal(t, map[string][]Shadow{
		"Scale":        {{Member: 1, By: 0}},
		"Canvas.Paint": {{Member: 1, By: 0}},
	}, shadows)
}

// ----------------------------------------------------------------------------

func newFunc(pkg *types.Package, name string, variadic bool, params ...types.Type) *types.Func {
	vars := make([]*types.Var, len(params))
	for i, t := range params {
		vars[i] = types.NewParam(token.NoPos, pkg, "", t)
	}
	sig := types.NewSignatureType(nil, nil, nil, types.NewTuple(vars...), nil, variadic)
	return types.NewFunc(token.NoPos, pkg, name, sig)
}

func TestCovers(t *testing.T) {
	pkg := types.NewPackage("example.com/p", "p")
	tyInt := types.Typ[types.Int]
	tyString := types.Typ[types.String]
	tyAny := types.NewInterfaceType(nil, nil).Complete()
	m := func(variadic bool, params ...types.Type) *Member {
		return &Member{Func: newFunc(pkg, "f", variadic, params...)}
	}
	cases := []struct {
		name string
		a, b *Member
		want bool
	}{
		{"same", m(false, tyInt), m(false, tyInt), true},
		{"any covers int", m(false, tyAny), m(false, tyInt), true},
		{"int not any", m(false, tyInt), m(false, tyAny), false},
		{"arity differs", m(false, tyInt), m(false, tyInt, tyInt), false},
		{"variadic covers fixed", m(true, types.NewSlice(tyAny)), m(false, tyInt, tyString), true},
		{"fixed not variadic", m(false, tyInt), m(true, types.NewSlice(tyInt)), false},
		{"variadic elem", m(true, types.NewSlice(tyInt)), m(true, tyInt, types.NewSlice(tyString)), false},
		{"variadic min", m(true, tyInt, types.NewSlice(tyInt)), m(true, types.NewSlice(tyInt)), false},
		{"variadic both", m(true, types.NewSlice(tyAny)), m(true, tyInt, types.NewSlice(tyString)), true},
		{"empty", m(false), m(false), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Covers(c.a, c.b))
		})
	}
}

func TestGroupsInvalid(t *testing.T) {
	pkg := types.NewPackage("example.com/bad", "bad")
	pkg.Scope().Insert(newFunc(pkg, "F__3", false))
	_, err := Groups(pkg)
	assert.Error(t, err)

	pkg = types.NewPackage("example.com/bad", "bad")
	pkg.Scope().Insert(newFunc(pkg, "F__0", false))
	pkg.Scope().Insert(newFunc(pkg, "F__Z", false))
	_, err = Groups(pkg)
	assert.Error(t, err)

	pkg = types.NewPackage("example.com/bad", "bad")
	pkg.Scope().Insert(types.NewConst(token.NoPos, pkg, "Gopo_F", types.Typ[types.UntypedInt], constant.MakeInt64(1)))
	_, err = Groups(pkg)
	assert.Error(t, err)

	pkg = types.NewPackage("example.com/bad", "bad")
	pkg.Scope().Insert(types.NewConst(token.NoPos, pkg, "Gopo_F", types.Typ[types.UntypedString], constant.MakeString("G,,.M")))
	pkg.Scope().Insert(newFunc(pkg, "G", false))
	pkg.Scope().Insert(newFunc(pkg, "F__1", false))
	_, err = Groups(pkg)
	assert.EqualError(t, err, `Gopo_F: member ".M" (index 2) not found`)
}

// ----------------------------------------------------------------------------
