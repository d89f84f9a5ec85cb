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
	"io"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

type (
	// Manifest is the configuration read by c-for-go.
	Manifest struct {
		Generator  GeneratorSection  `yaml:"GENERATOR"`
		Parser     ParserSection     `yaml:"PARSER"`
		Translator TranslatorSection `yaml:"TRANSLATOR"`
	}

	// GeneratorSection configures the generated Go package.
	GeneratorSection struct {
		PackageName        string      `yaml:"PackageName"`
		PackageDescription string      `yaml:"PackageDescription,omitempty"`
		PackageLicense     string      `yaml:"PackageLicense,omitempty"`
		Includes           []string    `yaml:"Includes"`
		FlagGroups         []FlagGroup `yaml:"FlagGroups,omitempty"`
	}

	// FlagGroup is a set of #cgo flags.
	FlagGroup struct {
		Name   string   `yaml:"name"`
		Traits []string `yaml:"traits,omitempty"`
		Flags  []string `yaml:"flags"`
	}

	// ParserSection configures the C parser.
	ParserSection struct {
		IncludePaths []string          `yaml:"IncludePaths"`
		SourcesPaths []string          `yaml:"SourcesPaths"`
		Defines      map[string]string `yaml:"Defines,omitempty"`
	}

	// TranslatorSection configures the translation of C declarations to Go.
	TranslatorSection struct {
		ConstRules map[string]string `yaml:"ConstRules,omitempty"`
		Rules      map[string][]Rule `yaml:"Rules"`
	}

	// Rule is a c-for-go translation rule.
	Rule struct {
		Action    string `yaml:"action,omitempty"`
		From      string `yaml:"from,omitempty"`
		To        string `yaml:"to,omitempty"`
		Transform string `yaml:"transform,omitempty"`
	}
)

const (
	ruleAccept = "accept"

	// c-for-go rule groups.
	ruleFunction   = "function"
	ruleType       = "type"
	ruleConst      = "const"
	rulePostGlobal = "post-global"
)

// stdVersions maps C language standards to the value of __STDC_VERSION__.
var stdVersions = map[string]string{
	"c89": "",
	"c90": "",
	"c99": "199901L",
	"c11": "201112L",
	"c17": "201710L",
	"c18": "201710L",
}

// StdVersion returns the value of __STDC_VERSION__ for a C standard.
func StdVersion(std string) (string, error) {
	version, ok := stdVersions[std]
	if !ok {
		known := make([]string, 0, len(stdVersions))
		for k := range stdVersions {
			known = append(known, k)
		}
		sort.Strings(known)
		return "", errors.Errorf("unknown C standard %q: known standards are %v", std, known)
	}
	return version, nil
}

func acceptRules(res []string) []Rule {
	rules := make([]Rule, len(res))
	for i, re := range res {
		rules[i] = Rule{Action: ruleAccept, From: re}
	}
	return rules
}

// srcDirInclude returns the #cgo include flag of dir relative to the
// directory of the generated package. Only the parser reads absolute paths:
// the flags are written in the generated package.
func srcDirInclude(pkgDir, dir string) (string, error) {
	rel, err := filepath.Rel(pkgDir, dir)
	if err != nil {
		return "", errors.Wrapf(err, "cannot include %s from the generated package", dir)
	}
	if rel == "." {
		return "-I${SRCDIR}", nil
	}
	return "-I${SRCDIR}/" + filepath.ToSlash(rel), nil
}

// NewManifest returns the c-for-go manifest for a request.
// Include directories are absolute in the PARSER section and relative to
// ${SRCDIR} in the #cgo flags, so the generated package does not depend
// on where it was generated.
func NewManifest(req Request) (*Manifest, error) {
	if req.Filter == nil {
		return nil, errors.Errorf("no filter: the extractor would not export any declaration")
	}
	version, err := StdVersion(req.Std)
	if err != nil {
		return nil, err
	}
	var includes []string
	for _, dir := range req.IncludeDirs {
		if slices.Contains(includes, dir) {
			continue
		}
		includes = append(includes, dir)
	}
	cflags := []string{"-std=" + req.Std}
	for _, dir := range includes {
		flag, err := srcDirInclude(req.PackageDir(), dir)
		if err != nil {
			return nil, err
		}
		if slices.Contains(cflags, flag) {
			continue
		}
		cflags = append(cflags, flag)
	}
	defines := map[string]string{}
	for k, v := range req.Defines {
		defines[k] = v
	}
	if version != "" {
		defines["__STDC_VERSION__"] = version
	}
	return &Manifest{
		Generator: GeneratorSection{
			PackageName:        req.PackageName,
			PackageDescription: req.Description,
			PackageLicense:     req.License,
			Includes:           []string{req.HeaderInclude()},
			FlagGroups: []FlagGroup{
				{Name: "CFLAGS", Flags: cflags},
			},
		},
		Parser: ParserSection{
			IncludePaths: includes,
			SourcesPaths: []string{req.Header},
			Defines:      defines,
		},
		Translator: TranslatorSection{
			ConstRules: map[string]string{"defines": "expand"},
			Rules: map[string][]Rule{
				ruleFunction:   acceptRules(sources(req.Filter.Functions)),
				ruleType:       acceptRules(sources(req.Filter.Types)),
				ruleConst:      acceptRules(sources(req.Filter.Constants)),
				rulePostGlobal: {{Transform: "export"}},
			},
		},
	}, nil
}

// Write the manifest in YAML.
func (m *Manifest) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return errors.Wrap(err, "cannot encode c-for-go manifest")
	}
	return enc.Close()
}
