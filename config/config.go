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

// Package config holds the configuration of the wrapper generator.
//
// The configuration starts from Default, is overridden by an optional YAML
// file, then by environment variables. Relative paths are relative to the
// root of the Go module in which the generator runs.
package config

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/SkylerLipthay/duktape-go/extract"
	"github.com/SkylerLipthay/duktape-go/internal/module"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file looked up at the root of the module.
const FileName = "dukgen.yaml"

// Environment variables overriding the configuration.
const (
	EnvExtractor = "DUKGEN_EXTRACTOR"
	EnvDebug     = "DUKGEN_DEBUG"
)

// Config is the configuration of a generator run.
type Config struct {
	// LibraryDir contains the vendored library sources and LibraryHeader.
	LibraryDir    string `yaml:"library_dir"`
	LibraryHeader string `yaml:"library_header"`
	// OutputDir receives the generated header and source files.
	OutputDir  string `yaml:"output_dir"`
	HeaderName string `yaml:"header"`
	SourceName string `yaml:"source"`
	// IncludeDirs are additional directories searched by the extractor.
	IncludeDirs []string `yaml:"include_dirs"`
	// Std is the C language standard used to parse the header.
	Std string `yaml:"std"`

	// PackageName is the name of the generated Go package, created in BindingsDir.
	PackageName string `yaml:"package"`
	BindingsDir string `yaml:"bindings_dir"`
	Description string `yaml:"description"`
	// Prefixes of the library declarations exported next to the wrappers.
	Prefixes extract.Prefixes `yaml:"prefixes"`
	// FunctionPatterns replaces the function filter derived from the macro
	// table and the function prefixes when not empty.
	FunctionPatterns []string `yaml:"function_patterns"`

	// Extractor is the path of the c-for-go executable.
	Extractor     string   `yaml:"extractor"`
	ExtractorArgs []string `yaml:"extractor_args"`
	// SkipExtract stops the generator after the C files are written.
	SkipExtract bool `yaml:"skip_extract"`

	// Verbose is the log verbosity. Set from the command line or EnvDebug.
	Verbose int `yaml:"-"`
}

// Default returns the configuration of the Duktape bindings.
func Default() Config {
	return Config{
		LibraryDir:    "duktape",
		LibraryHeader: "duktape.h",
		OutputDir:     "duktape",
		HeaderName:    "wrapper.h",
		SourceName:    "wrapper.c",
		Std:           "c99",
		PackageName:   "duktape",
		BindingsDir:   ".",
		Description:   "Package duktape provides Go bindings for the Duktape JavaScript engine.",
		Prefixes:      extract.DuktapePrefixes(),
		Extractor:     extract.DefaultCommand,
	}
}

// Decode overrides the configuration with the YAML document read from r.
// Unknown keys are rejected.
func (c *Config) Decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return errors.Wrap(err, "cannot decode configuration")
	}
	return nil
}

// LoadFile overrides the configuration with a YAML file.
// If optional is true, a missing file is not an error.
func (c *Config) LoadFile(path string, optional bool) error {
	f, err := os.Open(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "cannot open configuration")
	}
	defer f.Close()
	if err := c.Decode(f); err != nil {
		return errors.Wrapf(err, "%s", path)
	}
	return nil
}

// ApplyEnv overrides the configuration with environment variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvExtractor); ok && strings.TrimSpace(v) != "" {
		c.Extractor = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvDebug); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			if b {
				c.Verbose = max(c.Verbose, 1)
			}
			return nil
		}
		level, err := strconv.Atoi(v)
		if err != nil {
			return errors.Errorf("invalid value %q for %s: want a boolean or a verbosity level", v, EnvDebug)
		}
		c.Verbose = max(c.Verbose, level)
	}
	return nil
}

// Validate returns an error if a required field is empty.
func (c *Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"library_dir", c.LibraryDir},
		{"library_header", c.LibraryHeader},
		{"output_dir", c.OutputDir},
		{"header", c.HeaderName},
		{"source", c.SourceName},
		{"std", c.Std},
		{"package", c.PackageName},
		{"bindings_dir", c.BindingsDir},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return errors.Errorf("invalid configuration: %s cannot be empty", field.key)
		}
	}
	if c.HeaderName == c.SourceName {
		return errors.Errorf("invalid configuration: header and source are both named %q", c.HeaderName)
	}
	if _, err := extract.StdVersion(c.Std); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}

// Resolve returns a copy of the configuration with all paths made
// absolute with respect to the module root.
func (c Config) Resolve(mod *module.Module) Config {
	c.LibraryDir = mod.OSPath(c.LibraryDir)
	c.OutputDir = mod.OSPath(c.OutputDir)
	c.BindingsDir = mod.OSPath(c.BindingsDir)
	dirs := make([]string, len(c.IncludeDirs))
	for i, dir := range c.IncludeDirs {
		dirs[i] = mod.OSPath(dir)
	}
	c.IncludeDirs = dirs
	return c
}

// Load returns the configuration of the module: defaults, overridden by
// the configuration file, overridden by the environment. If path is empty,
// FileName is looked up at the root of the module.
func Load(mod *module.Module, path string) (Config, error) {
	cfg := Default()
	optional := path == ""
	if optional {
		path = mod.OSPath(FileName)
	}
	if err := cfg.LoadFile(path, optional); err != nil {
		return Config{}, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
