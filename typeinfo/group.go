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
	"fmt"
	"go/constant"
	"go/types"
	"log"
	"sort"
	"strings"
)

// ----------------------------------------------------------------------------

// A Member is one implementation of an overload group.
type Member struct {
	Func *types.Func

	// RecvParam reports that Func is a plain func standing in for a method:
	// its first parameter is the receiver.
	RecvParam bool
}

// Params returns the parameters of the member, receiver excluded.
func (p *Member) Params() (params []*types.Var, variadic bool) {
	sig := p.Func.Type().(*types.Signature)
	tuple := sig.Params()
	first := 0
	if p.RecvParam {
		first = 1
	}
	for i := first; i < tuple.Len(); i++ {
		params = append(params, tuple.At(i))
	}
	return params, sig.Variadic()
}

// A Group is an ordered overload set declared by a package. The order of
// Members is match priority.
type Group struct {
	Name    string
	Recv    *types.TypeName // nil for a function group
	Members []*Member
}

// FullName returns Name for a function group and T.Name for a method group.
func (p *Group) FullName() string {
	if p.Recv != nil {
		return p.Recv.Name() + "." + p.Name
	}
	return p.Name
}

// ----------------------------------------------------------------------------

// Groups returns the overload groups declared by pkg, sorted by FullName.
//
// A group is declared either by numbered members, Name__0, Name__1, ...
// (methods T.Name__0, ... for a method group), or by a string constant
// Gopo_Name / Gopo_T_Name listing members separated by commas. In a Gopo
// list an empty item stands for Name__<index>, an item ".M" for method M of
// T, and any other item for a package func; in a method group such a func
// takes the receiver as its first parameter. A Gopo constant replaces the
// numbered group of the same name.
func Groups(pkg *types.Package) (groups []*Group, err error) {
	type omthd struct {
		named *types.TypeName
		mthd  string
	}
	scope := pkg.Scope()
	overloads := make(map[string][]types.Object)
	moverloads := make(map[omthd][]types.Object)
	var gopos []*types.Const
	for _, name := range scope.Names() {
		o := scope.Lookup(name)
		if c, ok := o.(*types.Const); ok && strings.HasPrefix(name, gopoPrefix) {
			gopos = append(gopos, c)
			continue
		}
		if isOverloadName(name) {
			if _, ok := o.(*types.Func); ok {
				key := name[:len(name)-3]
				overloads[key] = append(overloads[key], o)
			}
		} else if tn, ok := o.(*types.TypeName); ok && !tn.IsAlias() {
			if named, ok := tn.Type().(*types.Named); ok {
				for i, n := 0, named.NumMethods(); i < n; i++ {
					m := named.Method(i)
					if mName := m.Name(); isOverloadName(mName) {
						key := omthd{tn, mName[:len(mName)-3]}
						moverloads[key] = append(moverloads[key], m)
					}
				}
			}
		}
	}
	byName := make(map[string]*Group)
	for _, c := range gopos {
		g, err := gopoGroup(pkg, c)
		if err != nil {
			return nil, err
		}
		byName[g.FullName()] = g
	}
	// a Gopo_ constant takes the place of the numbered members it names
	for key, items := range overloads {
		if _, ok := byName[key]; ok {
			continue
		}
		fns, err := overloadFuncs(len(key)+2, items)
		if err != nil {
			return nil, err
		}
		g := &Group{Name: key, Members: members(fns)}
		byName[g.FullName()] = g
	}
	for key, items := range moverloads {
		if _, ok := byName[key.named.Name()+"."+key.mthd]; ok {
			continue
		}
		fns, err := overloadFuncs(len(key.mthd)+2, items)
		if err != nil {
			return nil, err
		}
		g := &Group{Name: key.mthd, Recv: key.named, Members: members(fns)}
		byName[g.FullName()] = g
	}
	for _, g := range byName {
		if debugGroups {
			log.Println("==> Group", pkg.Path(), g.FullName(), len(g.Members))
		}
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].FullName() < groups[j].FullName()
	})
	return
}

const gopoPrefix = "Gopo_"

func isOverloadName(name string) bool {
	n := len(name)
	return n > 3 && name[n-3:n-1] == "__"
}

func members(fns []types.Object) []*Member {
	ret := make([]*Member, len(fns))
	for i, fn := range fns {
		ret[i] = &Member{Func: fn.(*types.Func)}
	}
	return ret
}

func overloadFuncs(off int, items []types.Object) ([]types.Object, error) {
	fns := make([]types.Object, len(items))
	for _, item := range items {
		idx, ok := toIndex(item.Name()[off])
		if !ok || idx >= len(items) {
			return nil, fmt.Errorf("overload func must be from 0 to %d: %s", len(items)-1, item.Name())
		}
		if fns[idx] != nil {
			return nil, fmt.Errorf("overload func exists: %s", item.Name())
		}
		fns[idx] = item
	}
	return fns, nil
}

func toIndex(c byte) (int, bool) {
	if c >= '0' && c <= '9' {
		return int(c - '0'), true
	}
	if c >= 'a' && c <= 'z' {
		return int(c - ('a' - 10)), true
	}
	return 0, false
}

func indexChar(i int) byte {
	if i < 10 {
		return byte('0' + i)
	}
	return byte('a' + i - 10)
}

func gopoGroup(pkg *types.Package, c *types.Const) (*Group, error) {
	if c.Val().Kind() != constant.String {
		return nil, fmt.Errorf("%s: should be string constant", c.Name())
	}
	scope := pkg.Scope()
	key := strings.TrimPrefix(strings.TrimPrefix(c.Name(), gopoPrefix), "_")
	g := &Group{Name: key}
	sep := "__"
	if !strings.Contains(key, sep) {
		sep = "_"
	}
	if pos := strings.Index(key, sep); pos > 0 {
		if tn, ok := scope.Lookup(key[:pos]).(*types.TypeName); ok {
			g.Name, g.Recv = key[pos+len(sep):], tn
		}
	}
	items := strings.Split(constant.StringVal(c.Val()), ",")
	for i, item := range items {
		var m *Member
		switch {
		case item == "":
			name := g.Name + "__" + string(indexChar(i))
			if g.Recv != nil {
				m = methodMember(g.Recv, name)
			} else {
				m = funcMember(scope, name, false)
			}
		case item[0] == '.':
			if g.Recv != nil {
				m = methodMember(g.Recv, item[1:])
			}
		default:
			m = funcMember(scope, item, g.Recv != nil)
		}
		if m == nil {
			return nil, fmt.Errorf("%s: member %q (index %d) not found", c.Name(), item, i)
		}
		g.Members = append(g.Members, m)
	}
	return g, nil
}

func funcMember(scope *types.Scope, name string, recvParam bool) *Member {
	if fn, ok := scope.Lookup(name).(*types.Func); ok {
		return &Member{Func: fn, RecvParam: recvParam}
	}
	return nil
}

func methodMember(tn *types.TypeName, name string) *Member {
	if fn := lookupMethod(tn, name); fn != nil {
		return &Member{Func: fn}
	}
	return nil
}

// ----------------------------------------------------------------------------
