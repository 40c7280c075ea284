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

// Package packages imports Go packages from compiler export data, located
// with `go list -export`.
package packages

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"go/types"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/tools/go/gcexportdata"
)

// ----------------------------------------------------------------------------

// Cache locates the export data of a package without running `go list`.
// typeinfo reads the same packages over and over (once per registered
// implementation), so a Cache lets callers keep export files around.
type Cache interface {
	Find(dir, pkgPath string) (f io.ReadCloser, err error)
}

// Importer loads the declarations of Go packages from compiler export
// data. Overload discovery and parameter naming only need declarations,
// never source, so export data is enough. It implements types.Importer and
// types.ImporterFrom and is safe for concurrent use.
type Importer struct {
	mu    sync.RWMutex
	pkgs  map[string]*types.Package // by import path, shared with gcexportdata
	fset  *token.FileSet
	dir   string
	tags  string
	cache Cache
}

// NewImporter creates an Importer resolving import paths from workDir, the
// directory `go list` runs in (the current directory if omitted). A nil
// fset gets a fresh one.
func NewImporter(fset *token.FileSet, workDir ...string) *Importer {
	if fset == nil {
		fset = token.NewFileSet()
	}
	p := &Importer{
		pkgs: map[string]*types.Package{"unsafe": types.Unsafe},
		fset: fset,
	}
	if len(workDir) > 0 {
		p.dir = workDir[0]
	}
	return p
}

// SetCache makes the importer ask cache for export data instead of `go list`.
func (p *Importer) SetCache(cache Cache) {
	p.cache = cache
}

func (p *Importer) Cache() Cache {
	return p.cache
}

// SetTags sets the build tags that select which files, and so which overload
// members, a package declares.
func (p *Importer) SetTags(tags string) {
	p.tags = tags
}

func (p *Importer) Tags() string {
	return p.tags
}

// Import loads the package pkgPath, resolved from the importer's directory.
func (p *Importer) Import(pkgPath string) (*types.Package, error) {
	return p.ImportFrom(pkgPath, p.dir, 0)
}

// ImportFrom loads the package pkgPath, resolved from dir. A package is read
// once: later calls return the same *types.Package, so objects found through
// it (overload members, their receivers) compare equal.
func (p *Importer) ImportFrom(pkgPath, dir string, mode types.ImportMode) (*types.Package, error) {
	if pkg := p.lookup(pkgPath); pkg != nil {
		return pkg, nil
	}
	f, err := p.findExport(dir, pkgPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.read(f, pkgPath)
}

func (p *Importer) lookup(pkgPath string) *types.Package {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if pkg, ok := p.pkgs[pkgPath]; ok && pkg.Complete() {
		return pkg
	}
	return nil
}

// read decodes export data. Dependencies it mentions land in p.pkgs too.
func (p *Importer) read(f io.Reader, pkgPath string) (*types.Package, error) {
	r, err := gcexportdata.NewReader(f)
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return gcexportdata.Read(r, p.fset, p.pkgs, pkgPath)
}

// ----------------------------------------------------------------------------

// findExport opens the export file of pkgPath, from the cache if one is set.
func (p *Importer) findExport(dir, pkgPath string) (io.ReadCloser, error) {
	if p.cache != nil {
		return p.cache.Find(dir, pkgPath)
	}
	atomic.AddInt32(&nlist, 1)
	data, err := golist(dir, p.tags, "-export", "-f={{.Export}}", pkgPath)
	if err != nil {
		return nil, err
	}
	expfile := strings.TrimSpace(string(data))
	if expfile == "" {
		return nil, fmt.Errorf("packages: no export data for %s", pkgPath)
	}
	return os.Open(expfile)
}

// List expands package patterns such as ./... into import paths.
func List(dir, tags string, pattern ...string) (pkgPaths []string, err error) {
	args := append([]string{"-f={{.ImportPath}}"}, pattern...)
	data, err := golist(dir, tags, args...)
	if err != nil {
		return
	}
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			pkgPaths = append(pkgPaths, line)
		}
	}
	return
}

func golist(dir, tags string, args ...string) (ret []byte, err error) {
	var stdout, stderr bytes.Buffer
	cmdArgs := []string{"list"}
	if tags != "" {
		cmdArgs = append(cmdArgs, "-tags="+tags)
	}
	cmdArgs = append(cmdArgs, args...)
	cmd := exec.Command("go", cmdArgs...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Dir = dir
	err = cmd.Run()
	if err == nil {
		ret = stdout.Bytes()
	} else if stderr.Len() > 0 {
		err = errors.New(stderr.String())
	}
	return
}

var (
	nlist int32
)

// ListTimes returns the number of times `go list` ran to find export data.
func ListTimes() int {
	return int(atomic.LoadInt32(&nlist))
}

// ----------------------------------------------------------------------------
