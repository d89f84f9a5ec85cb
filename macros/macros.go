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

// Package macros describes the C preprocessor macros that need to be
// callable as real functions.
package macros

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Void is the return type of macros that do not return a value.
const Void = "void"

type (
	// Param is a parameter of a macro.
	Param struct {
		Type string
		Name string
	}

	// Descriptor is the signature of a function forwarding to a macro.
	// Name is the identifier of the macro the function shadows.
	Descriptor struct {
		Return string
		Name   string
		Params []Param
	}

	// Table is an ordered list of macro descriptors.
	Table []Descriptor
)

// Func returns a new descriptor.
func Func(ret, name string, params ...Param) Descriptor {
	return Descriptor{Return: ret, Name: name, Params: params}
}

// P returns a new parameter.
func P(typ, name string) Param {
	return Param{Type: typ, Name: name}
}

// IsVoid returns true if the function does not return a value.
func (d Descriptor) IsVoid() bool {
	return d.Return == Void
}

// ParamList returns the C parameter list, types and names separated by commas.
func (d Descriptor) ParamList() string {
	if len(d.Params) == 0 {
		return "void"
	}
	params := make([]string, len(d.Params))
	for i, p := range d.Params {
		params[i] = p.String()
	}
	return strings.Join(params, ", ")
}

// ArgList returns the names of the parameters separated by commas.
func (d Descriptor) ArgList() string {
	args := make([]string, len(d.Params))
	for i, p := range d.Params {
		args[i] = p.Name
	}
	return strings.Join(args, ", ")
}

// Signature returns the C prototype of the function without the trailing semicolon.
func (d Descriptor) Signature() string {
	return fmt.Sprintf("%s %s(%s)", d.Return, d.Name, d.ParamList())
}

func (d Descriptor) String() string {
	return d.Signature()
}

// String returns the parameter as it appears in a C parameter list.
func (p Param) String() string {
	return p.Type + " " + p.Name
}

// cWords are the identifiers of C type specifiers and qualifiers.
var cWords = map[string]bool{
	"void": true, "char": true, "short": true, "int": true, "long": true,
	"float": true, "double": true, "signed": true, "unsigned": true,
	"_Bool": true, "const": true, "volatile": true, "restrict": true,
	"struct": true, "union": true, "enum": true,
}

var wordRe = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// TypeNames returns the named types, such as typedefs, used by the
// signature in order of first appearance.
func (d Descriptor) TypeNames() []string {
	types := make([]string, 0, len(d.Params)+1)
	types = append(types, d.Return)
	for _, p := range d.Params {
		types = append(types, p.Type)
	}
	var names []string
	seen := make(map[string]bool)
	for _, typ := range types {
		for _, word := range wordRe.FindAllString(typ, -1) {
			if cWords[word] || seen[word] {
				continue
			}
			seen[word] = true
			names = append(names, word)
		}
	}
	return names
}

// Names returns the name of all the macros in the table order.
func (t Table) Names() []string {
	names := make([]string, len(t))
	for i, d := range t {
		names[i] = d.Name
	}
	return names
}

// Lookup returns the descriptor of a macro given its name.
func (t Table) Lookup(name string) (Descriptor, bool) {
	for _, d := range t {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Defect is an error in a macro table entry.
type Defect struct {
	Index int
	Name  string
	Msg   string
}

func (d *Defect) Error() string {
	if d.Name == "" {
		return fmt.Sprintf("macro table entry %d: %s", d.Index, d.Msg)
	}
	return fmt.Sprintf("macro table entry %d (%s): %s", d.Index, d.Name, d.Msg)
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks the table for defects that would otherwise only
// surface when the generated C code is compiled.
// All the defects found are returned in a single error.
func (t Table) Validate() error {
	var errs error
	seen := make(map[string]int, len(t))
	for i, d := range t {
		defect := func(format string, a ...any) {
			errs = multierr.Append(errs, &Defect{
				Index: i,
				Name:  d.Name,
				Msg:   fmt.Sprintf(format, a...),
			})
		}
		if !identRe.MatchString(d.Name) {
			defect("invalid macro name %q", d.Name)
		}
		if prev, ok := seen[d.Name]; ok {
			defect("duplicate macro name: already declared by entry %d", prev)
		} else {
			seen[d.Name] = i
		}
		if strings.TrimSpace(d.Return) == "" {
			defect("empty return type")
		}
		params := make(map[string]bool, len(d.Params))
		for j, p := range d.Params {
			if p.Type == "..." || p.Name == "..." {
				defect("parameter %d: variadic parameters cannot be forwarded", j)
				continue
			}
			if strings.TrimSpace(p.Type) == "" || p.Type == Void {
				defect("parameter %d: invalid type %q", j, p.Type)
			}
			if !identRe.MatchString(p.Name) {
				defect("parameter %d: invalid name %q", j, p.Name)
				continue
			}
			if p.Name == d.Name {
				defect("parameter %d: name shadows the macro", j)
			}
			if params[p.Name] {
				defect("parameter %d: duplicate name %q", j, p.Name)
			}
			params[p.Name] = true
		}
	}
	return errs
}

// Defects returns the list of defects contained in an error returned by Validate.
func Defects(err error) []*Defect {
	var defects []*Defect
	for _, err := range multierr.Errors(err) {
		var defect *Defect
		if errors.As(err, &defect) {
			defects = append(defects, defect)
		}
	}
	return defects
}
