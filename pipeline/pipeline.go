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

// Package pipeline runs the stages generating the wrappers and the bindings.
//
// Stages run in order and the first failure aborts the run:
//
//	validate        check the macro table and the configuration
//	whitelist       check that the extractor exports every wrapper
//	header          write the header declaring the wrappers
//	implementation  write the C source defining the wrappers
//	features        write the Duktape configuration header and the cgo
//	                files of the optional features
//	extract         run the binding extractor on the header
package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/SkylerLipthay/duktape-go/config"
	"github.com/SkylerLipthay/duktape-go/extract"
	"github.com/SkylerLipthay/duktape-go/features"
	"github.com/SkylerLipthay/duktape-go/internal/artifact"
	"github.com/SkylerLipthay/duktape-go/internal/logutil"
	"github.com/SkylerLipthay/duktape-go/macros"
	"github.com/SkylerLipthay/duktape-go/wrapper"
	"github.com/pkg/errors"
)

// Stage of the pipeline.
type Stage string

// Stages of the pipeline in execution order.
const (
	StageValidate       Stage = "validate"
	StageWhitelist      Stage = "whitelist"
	StageHeader         Stage = "header"
	StageImplementation Stage = "implementation"
	StageFeatures       Stage = "features"
	StageExtract        Stage = "extract"
)

// StageError is returned when a stage fails.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Format writes the error into the state of the formatter.
func (e *StageError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s stage failed: %+v", e.Stage, e.Err)
		return
	}
	fmt.Fprint(s, e.Error())
}

// Pipeline generates the wrappers of a macro table.
type Pipeline struct {
	// Config with absolute paths. See config.Config.Resolve.
	Config config.Config
	Table  macros.Table
	// Extractor generates the bindings. Not used if Config.SkipExtract is set.
	Extractor extract.Extractor
	Logger    *slog.Logger
}

// Result lists the files written by a run.
type Result struct {
	Header string
	Source string
	// Config is the Duktape configuration header applying the features.
	Config   string
	Features []string
	// Bindings is the directory of the generated Go package.
	// Empty if the extraction was skipped.
	Bindings string
}

// New returns a pipeline running c-for-go as configured.
func New(cfg config.Config, table macros.Table, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		Config: cfg,
		Table:  table,
		Extractor: &extract.Command{
			Path:   cfg.Extractor,
			Args:   cfg.ExtractorArgs,
			Logger: logger,
		},
		Logger: logger,
	}
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return logutil.Discard()
}

func (p *Pipeline) stage(ctx context.Context, stage Stage, f func() error) error {
	p.logger().InfoContext(ctx, "running stage", "stage", string(stage))
	if err := f(); err != nil {
		return &StageError{Stage: stage, Err: err}
	}
	return nil
}

func (p *Pipeline) wrapperOptions() wrapper.Options {
	return wrapper.Options{
		LibraryHeader: p.Config.LibraryHeader,
		HeaderName:    p.Config.HeaderName,
		SourceName:    p.Config.SourceName,
	}
}

func (p *Pipeline) filter() (*extract.Filter, error) {
	if len(p.Config.FunctionPatterns) > 0 {
		return extract.FilterWith(p.Config.FunctionPatterns, p.Config.Prefixes)
	}
	return extract.FilterFor(p.Table, p.Config.Prefixes)
}

func (p *Pipeline) bindingsDir() string {
	return filepath.Join(p.Config.BindingsDir, p.Config.PackageName)
}

// Check runs the stages not writing any file.
func (p *Pipeline) Check(ctx context.Context) error {
	if err := p.stage(ctx, StageValidate, p.validate); err != nil {
		return err
	}
	return p.stage(ctx, StageWhitelist, func() error {
		filter, err := p.filter()
		if err != nil {
			return err
		}
		return filter.CheckCoverage(p.Table)
	})
}

func (p *Pipeline) validate() error {
	if err := p.Config.Validate(); err != nil {
		return err
	}
	if len(p.Table) == 0 {
		return errors.Errorf("no macro to wrap")
	}
	return p.Table.Validate()
}

func (p *Pipeline) write(ctx context.Context, dir string, f artifact.File) (string, error) {
	path, err := artifact.Write(dir, f)
	if err != nil {
		return "", err
	}
	p.logger().DebugContext(ctx, "generated", "path", path)
	return path, nil
}

var generatedRe = regexp.MustCompile(`^// Code generated .* DO NOT EDIT\.$`)

// writeConfig writes the Duktape configuration header in the library
// directory. A header not generated by dukgen is never overwritten: it is
// the stock configuration, which has to be renamed first.
func (p *Pipeline) writeConfig(ctx context.Context) (string, error) {
	cfg := features.NewConfig(features.Known)
	path := filepath.Join(p.Config.LibraryDir, cfg.Name())
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return "", errors.Wrapf(err, "cannot read %s", path)
	default:
		first, _, _ := strings.Cut(string(data), "\n")
		if !generatedRe.MatchString(strings.TrimSpace(first)) {
			return "", errors.Errorf("%s is not generated: rename the stock Duktape configuration to %s", path, features.DefaultConfigHeader)
		}
	}
	return p.write(ctx, p.Config.LibraryDir, cfg)
}

// Run all the stages of the pipeline.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	if err := p.Check(ctx); err != nil {
		return nil, err
	}
	res := &Result{}
	bnd := wrapper.New(p.Table, p.wrapperOptions())
	if err := p.stage(ctx, StageHeader, func() (err error) {
		res.Header, err = p.write(ctx, p.Config.OutputDir, bnd.Header())
		return err
	}); err != nil {
		return nil, err
	}
	if err := p.stage(ctx, StageImplementation, func() (err error) {
		res.Source, err = p.write(ctx, p.Config.OutputDir, bnd.Source())
		return err
	}); err != nil {
		return nil, err
	}
	if err := p.stage(ctx, StageFeatures, func() (err error) {
		if res.Config, err = p.writeConfig(ctx); err != nil {
			return err
		}
		for _, f := range features.Files(p.Config.PackageName, features.Known) {
			path, err := p.write(ctx, p.bindingsDir(), f)
			if err != nil {
				return err
			}
			res.Features = append(res.Features, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if p.Config.SkipExtract {
		p.logger().InfoContext(ctx, "skipping binding extraction")
		return res, nil
	}
	if err := p.stage(ctx, StageExtract, func() error {
		if p.Extractor == nil {
			return errors.Errorf("no binding extractor")
		}
		filter, err := p.filter()
		if err != nil {
			return err
		}
		req := extract.Request{
			Header:      res.Header,
			IncludeDirs: append([]string{p.Config.OutputDir, p.Config.LibraryDir}, p.Config.IncludeDirs...),
			Std:         p.Config.Std,
			Filter:      filter,
			PackageName: p.Config.PackageName,
			Description: p.Config.Description,
			OutDir:      p.Config.BindingsDir,
		}
		if err := p.Extractor.Extract(ctx, req); err != nil {
			return err
		}
		res.Bindings = req.PackageDir()
		return nil
	}); err != nil {
		return nil, err
	}
	return res, nil
}
