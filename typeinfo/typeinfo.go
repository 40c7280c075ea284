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

// Package typeinfo reads overload information from package type data: the
// parameter names of runtime funcs, and the overload groups a package
// declares with the GoPlus naming conventions.
package typeinfo

import (
	"errors"
	"go/types"
	"log"
	"reflect"
	"runtime"
	"strings"

	"github.com/goplus/overload"
)

// ----------------------------------------------------------------------------

const (
	DbgFlagLookup = 1 << iota
	DbgFlagGroups
	DbgFlagAll = DbgFlagLookup | DbgFlagGroups
)

var (
	debugLookup bool
	debugGroups bool
)

func SetDebug(dbgFlags int) {
	debugLookup = (dbgFlags & DbgFlagLookup) != 0
	debugGroups = (dbgFlags & DbgFlagGroups) != 0
}

var (
	ErrNotFound = errors.New("func declaration not found")
	ErrUnnamed  = errors.New("func has unnamed parameters")
)

// ----------------------------------------------------------------------------

// Extractor is an overload.Extractor that names parameters after their
// declaration, read from the type data of the declaring package. Funcs it
// cannot find (closures, unexported funcs missing from export data) keep
// the default names.
type Extractor struct {
	imp types.Importer
}

// NewExtractor creates an Extractor importing packages with imp.
func NewExtractor(imp types.Importer) *Extractor {
	return &Extractor{imp: imp}
}

// Extract implements overload.Extractor.
func (p *Extractor) Extract(fn reflect.Value, h *overload.Hints) *overload.Signature {
	if h == nil {
		h = new(overload.Hints)
	}
	if len(h.Params) == 0 {
		names, err := p.ParamNames(fn)
		if err == nil {
			n := fn.Type().NumIn()
			if h.Recv {
				n--
			}
			if h.Recv && len(names) == n+1 {
				names = names[1:] // a plain func taking the receiver first
			}
			if len(names) == n {
				hh := *h
				hh.Params = names
				h = &hh
			}
		} else if debugLookup {
			log.Println("==> ParamNames:", err)
		}
	}
	return overload.NewSignature(fn.Type(), h)
}

// ParamNames returns the declared parameter names of fn, receiver excluded.
func (p *Extractor) ParamNames(fn reflect.Value) ([]string, error) {
	rf := runtime.FuncForPC(fn.Pointer())
	if rf == nil {
		return nil, ErrNotFound
	}
	obj, err := p.Lookup(rf.Name())
	if err != nil {
		return nil, err
	}
	params := obj.Type().(*types.Signature).Params()
	names := make([]string, params.Len())
	for i := range names {
		name := params.At(i).Name()
		if name == "" || name == "_" {
			return nil, ErrUnnamed
		}
		names[i] = name
	}
	return names, nil
}

// Lookup finds the declaration of a func by its runtime name, such as
// "path/to/pkg.Func", "path/to/pkg.(*T).Method" or "path/to/pkg.T.Method-fm".
func (p *Extractor) Lookup(fullName string) (*types.Func, error) {
	name := strings.TrimSuffix(fullName, "-fm")
	if pos := strings.IndexByte(name, '['); pos > 0 {
		name = name[:pos]
	}
	start := strings.LastIndexByte(name, '/') + 1
	var lastErr error = ErrNotFound
	for off := start; ; {
		dot := strings.IndexByte(name[off:], '.')
		if dot < 0 {
			return nil, lastErr
		}
		off += dot
		pkg, err := p.imp.Import(name[:off])
		off++
		if err != nil {
			lastErr = err
			continue
		}
		if fn := lookupFunc(pkg, strings.Split(name[off:], ".")); fn != nil {
			if debugLookup {
				log.Println("==> Lookup", fullName, "=>", fn)
			}
			return fn, nil
		}
		return nil, ErrNotFound
	}
}

func lookupFunc(pkg *types.Package, sel []string) *types.Func {
	switch len(sel) {
	case 1:
		fn, _ := pkg.Scope().Lookup(sel[0]).(*types.Func)
		return fn
	case 2:
		recv := strings.TrimSuffix(strings.TrimPrefix(sel[0], "(*"), ")")
		tn, ok := pkg.Scope().Lookup(recv).(*types.TypeName)
		if !ok {
			return nil
		}
		return lookupMethod(tn, sel[1])
	}
	return nil
}

func lookupMethod(tn *types.TypeName, name string) *types.Func {
	obj, _, _ := types.LookupFieldOrMethod(tn.Type(), true, tn.Pkg(), name)
	fn, _ := obj.(*types.Func)
	return fn
}

// ----------------------------------------------------------------------------
