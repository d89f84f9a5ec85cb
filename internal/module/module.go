// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package module locates the Go module the generator runs in.
package module

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/mod/modfile"
)

func findModuleRoot(dir string) string {
	dir = filepath.Clean(dir)
	if dir == "" {
		return ""
	}
	for {
		if fi, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil && !fi.IsDir() {
			return dir
		}
		d := filepath.Dir(dir)
		if d == dir {
			break
		}
		dir = d
	}
	return ""
}

// Module is a Go module on the local filesystem.
type Module struct {
	root string
	name string
}

// Find returns the module containing a directory.
func Find(osPath string) (*Module, error) {
	modRoot := findModuleRoot(osPath)
	if modRoot == "" {
		return nil, errors.Errorf("directory %q is not in a Go module: cannot find go.mod", osPath)
	}
	absModRoot, err := filepath.Abs(modRoot)
	if err != nil {
		return nil, errors.Errorf("invalid path %q: %v", modRoot, err)
	}
	modPath := filepath.Join(absModRoot, "go.mod")
	modData, err := os.ReadFile(modPath)
	if err != nil {
		return nil, errors.Errorf("cannot read %s: %v", modPath, err)
	}
	name := modfile.ModulePath(modData)
	if name == "" {
		return nil, errors.Errorf("cannot find the module path in %s", modPath)
	}
	return &Module{root: absModRoot, name: name}, nil
}

// Current returns the module of the current working directory.
func Current() (*Module, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return Find(wd)
}

// Name of the module as specified in the go.mod file.
func (mod *Module) Name() string {
	return mod.name
}

// Root returns the directory containing go.mod.
func (mod *Module) Root() string {
	return mod.root
}

// OSPath converts a path relative to the module root to a path on the
// operating system. Absolute paths are returned unchanged.
func (mod *Module) OSPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(mod.root, path)
}

// ImportPath returns the import path of a directory inside the module.
func (mod *Module) ImportPath(osPath string) (string, error) {
	rel, err := filepath.Rel(mod.root, mod.OSPath(osPath))
	if err != nil {
		return "", errors.Wrapf(err, "cannot compute the import path of %s", osPath)
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", errors.Errorf("%s is outside module %s", osPath, mod.name)
	}
	if rel == "." {
		return mod.name, nil
	}
	return mod.name + "/" + rel, nil
}
