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

// Package features maps optional library behaviors to C defines.
//
// Each toggle is enabled at build time with a Go build tag. A file is
// generated for every known toggle: it adds the define of the toggle to the
// cgo flags of the bindings package when the tag is set. The generated
// duk_config.h wraps the stock Duktape configuration and changes its flags
// when a toggle define is set.
package features

import (
	"io"
	"strings"
	"text/template"

	"golang.org/x/exp/slices"

	_ "embed"
)

var (
	//go:embed features.go.tmpl
	featureSource   string
	featureTemplate = template.Must(template.New("featureTMPL").Parse(featureSource))

	//go:embed duk_config.h.tmpl
	configSource   string
	configTemplate = template.Must(template.New("configTMPL").Parse(configSource))
)

// Toggle is an optional behavior of the library.
type Toggle struct {
	// Name of the toggle on the command line.
	Name string
	// Define is the C preprocessor symbol defined when the toggle is enabled.
	Define string
	// Doc describes the toggle.
	Doc string
	// Undefs are the Duktape configuration flags undefined by the toggle.
	Undefs []string
}

// Known lists the toggles understood by the Duktape configuration.
var Known = []Toggle{
	{
		Name:   "prevent-tracebacks",
		Define: "DUK_GO_PREVENT_TRACEBACKS",
		Doc:    "do not augment errors with a traceback",
		Undefs: []string{"DUK_USE_TRACEBACKS"},
	},
}

// Tag returns the build tag enabling the toggle.
func (t Toggle) Tag() string {
	return "duktape_" + strings.ReplaceAll(t.Name, "-", "_")
}

// Names returns the sorted names of the known toggles.
func Names() []string {
	names := make([]string, len(Known))
	for i, t := range Known {
		names[i] = t.Name
	}
	slices.Sort(names)
	return names
}

// Lookup returns a known toggle given its name.
func Lookup(name string) (Toggle, bool) {
	for _, t := range Known {
		if t.Name == name {
			return t, true
		}
	}
	return Toggle{}, false
}

// File is the cgo file enabling a toggle in a Go package.
type File struct {
	Toggle
	Package string
}

// Files returns the cgo files of the toggles for a Go package.
func Files(pkg string, toggles []Toggle) []*File {
	files := make([]*File, len(toggles))
	for i, t := range toggles {
		files[i] = &File{Toggle: t, Package: pkg}
	}
	return files
}

// Name of the generated file.
func (f *File) Name() string {
	return "features_" + strings.TrimPrefix(f.Tag(), "duktape_") + ".go"
}

// WriteBindings writes the cgo file of the toggle.
func (f *File) WriteBindings(w io.Writer) error {
	return featureTemplate.Execute(w, f)
}

const (
	// ConfigHeader is the name of the configuration header included by Duktape.
	ConfigHeader = "duk_config.h"
	// DefaultConfigHeader is the name under which the stock configuration
	// header of the Duktape distribution is kept.
	DefaultConfigHeader = "duk_config_default.h"
)

// Config is the Duktape configuration header applying the toggles.
type Config struct {
	Default string
	Toggles []Toggle
}

// NewConfig returns the configuration header for a set of toggles.
func NewConfig(toggles []Toggle) *Config {
	return &Config{Default: DefaultConfigHeader, Toggles: toggles}
}

// Name of the generated header.
func (c *Config) Name() string {
	return ConfigHeader
}

// WriteBindings writes the configuration header.
func (c *Config) WriteBindings(w io.Writer) error {
	return configTemplate.Execute(w, c)
}
