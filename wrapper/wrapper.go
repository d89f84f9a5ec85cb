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

// Package wrapper generates C functions forwarding to preprocessor macros.
//
// For each macro, the generated header declares a function with the same
// name as the macro. The macro definition is hidden for the duration of the
// declaration with #pragma push_macro/pop_macro so that code including the
// header after the declaration still sees the macro.
//
// The generated source defines the function body the same way, except that
// the macro is restored before the body statement so that the statement
// expands to the macro.
package wrapper

import (
	"io"
	"text/template"

	"github.com/SkylerLipthay/duktape-go/macros"

	_ "embed"
)

var (
	//go:embed wrapper.h.tmpl
	headerSource string
	hTemplate    = template.Must(template.New("hTMPL").Parse(headerSource))

	//go:embed wrapper.c.tmpl
	cSource   string
	cTemplate = template.Must(template.New("cTMPL").Parse(cSource))
)

// Options of the generated files.
type Options struct {
	// LibraryHeader is the header defining the macros.
	LibraryHeader string
	// HeaderName is the name of the generated header.
	HeaderName string
	// SourceName is the name of the generated C source file.
	SourceName string
}

// DefaultOptions returns the options used for Duktape.
func DefaultOptions() Options {
	return Options{
		LibraryHeader: "duktape.h",
		HeaderName:    "wrapper.h",
		SourceName:    "wrapper.c",
	}
}

// File is a generated file.
type File interface {
	// Name of the file.
	Name() string
	// WriteBindings writes the content of the file.
	WriteBindings(w io.Writer) error
}

// Binder generates the wrapper files for a macro table.
type Binder interface {
	// Files returns the header and the source file, in that order.
	Files() []File
	// Header returns the generated header.
	Header() File
	// Source returns the generated C source.
	Source() File
}

type binder struct {
	Options
	Funcs []*function
}

// New returns a new binder for a table.
// The table is not validated.
func New(table macros.Table, opts Options) Binder {
	b := &binder{Options: opts}
	b.Funcs = make([]*function, len(table))
	for i, desc := range table {
		b.Funcs[i] = newFunc(desc)
	}
	return b
}

func (b *binder) Files() []File {
	return []File{b.Header(), b.Source()}
}

func (b *binder) Header() File {
	return headerFile{binder: b}
}

func (b *binder) Source() File {
	return sourceFile{binder: b}
}

type headerFile struct {
	*binder
}

func (f headerFile) Name() string {
	return f.HeaderName
}

func (f headerFile) WriteBindings(w io.Writer) error {
	return hTemplate.Execute(w, f)
}

type sourceFile struct {
	*binder
}

func (f sourceFile) Name() string {
	return f.SourceName
}

func (f sourceFile) WriteBindings(w io.Writer) error {
	return cTemplate.Execute(w, f)
}
