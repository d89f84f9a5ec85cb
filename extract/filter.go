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

package extract

import (
	"regexp"
	"strings"

	"github.com/SkylerLipthay/duktape-go/macros"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Prefixes of the declarations exported in addition to the wrapped macros.
type Prefixes struct {
	Functions []string `yaml:"functions"`
	Types     []string `yaml:"types"`
	Constants []string `yaml:"constants"`
}

// DuktapePrefixes returns the prefixes of the public Duktape API.
func DuktapePrefixes() Prefixes {
	return Prefixes{
		Functions: []string{"duk_"},
		Types:     []string{"duk_"},
		Constants: []string{"DUK_"},
	}
}

// Filter selects the declarations of the generated header for which
// bindings are generated. Declarations not matching any pattern are omitted.
type Filter struct {
	Functions []*regexp.Regexp
	Types     []*regexp.Regexp
	Constants []*regexp.Regexp
}

// PrefixPattern returns a pattern matching names starting with prefix.
func PrefixPattern(prefix string) string {
	return "^" + regexp.QuoteMeta(prefix)
}

// ExactPattern returns a pattern matching a single name.
func ExactPattern(name string) string {
	return "^" + regexp.QuoteMeta(name) + "$"
}

func compile(kind string, patterns []string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s pattern %q", kind, pattern)
		}
		res = append(res, re)
	}
	return res, nil
}

// NewFilter compiles a filter from regular expressions.
func NewFilter(functions, types, constants []string) (*Filter, error) {
	f := &Filter{}
	var err error
	if f.Functions, err = compile("function", functions); err != nil {
		return nil, err
	}
	if f.Types, err = compile("type", types); err != nil {
		return nil, err
	}
	if f.Constants, err = compile("constant", constants); err != nil {
		return nil, err
	}
	return f, nil
}

func prefixPatterns(prefixes []string) []string {
	patterns := make([]string, 0, len(prefixes))
	for _, prefix := range prefixes {
		if strings.TrimSpace(prefix) == "" {
			continue
		}
		patterns = append(patterns, PrefixPattern(prefix))
	}
	return patterns
}

// FilterFor returns a filter accepting every function of the table by its
// exact name together with the declarations matching the prefixes.
func FilterFor(table macros.Table, prefixes Prefixes) (*Filter, error) {
	var functions []string
	for _, name := range table.Names() {
		functions = append(functions, ExactPattern(name))
	}
	functions = append(functions, prefixPatterns(prefixes.Functions)...)
	return NewFilter(functions, prefixPatterns(prefixes.Types), prefixPatterns(prefixes.Constants))
}

// FilterWith returns a filter accepting the functions matching the
// regular expressions and the types and constants matching the prefixes.
func FilterWith(functions []string, prefixes Prefixes) (*Filter, error) {
	return NewFilter(functions, prefixPatterns(prefixes.Types), prefixPatterns(prefixes.Constants))
}

func matchAny(res []*regexp.Regexp, name string) bool {
	for _, re := range res {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// MatchFunction returns true if bindings are generated for a function.
func (f *Filter) MatchFunction(name string) bool {
	return matchAny(f.Functions, name)
}

// MatchType returns true if bindings are generated for a type.
func (f *Filter) MatchType(name string) bool {
	return matchAny(f.Types, name)
}

// Uncovered returns the function names not matched by the filter.
func (f *Filter) Uncovered(names []string) []string {
	var uncovered []string
	for _, name := range names {
		if !f.MatchFunction(name) {
			uncovered = append(uncovered, name)
		}
	}
	return uncovered
}

// UncoveredTypes returns the types used by the signatures of the table
// for which no binding is generated.
func (f *Filter) UncoveredTypes(table macros.Table) []string {
	var uncovered []string
	seen := make(map[string]bool)
	for _, desc := range table {
		for _, name := range desc.TypeNames() {
			if seen[name] || f.MatchType(name) {
				continue
			}
			seen[name] = true
			uncovered = append(uncovered, name)
		}
	}
	return uncovered
}

// CheckCoverage returns an error if a wrapper function of the table, or a
// type of its signature, would not be exported by the extractor.
func (f *Filter) CheckCoverage(table macros.Table) error {
	var err error
	if uncovered := f.Uncovered(table.Names()); len(uncovered) > 0 {
		err = multierr.Append(err, errors.Errorf("%d wrapper functions are not matched by the function filter: %s", len(uncovered), strings.Join(uncovered, ", ")))
	}
	if uncovered := f.UncoveredTypes(table); len(uncovered) > 0 {
		err = multierr.Append(err, errors.Errorf("%d types used by the wrappers are not matched by the type filter: %s", len(uncovered), strings.Join(uncovered, ", ")))
	}
	return err
}

func sources(res []*regexp.Regexp) []string {
	ss := make([]string, len(res))
	for i, re := range res {
		ss[i] = re.String()
	}
	return ss
}
