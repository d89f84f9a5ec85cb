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

package pipeline_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SkylerLipthay/duktape-go/config"
	"github.com/SkylerLipthay/duktape-go/extract"
	"github.com/SkylerLipthay/duktape-go/internal/gentesting"
	"github.com/SkylerLipthay/duktape-go/macros"
	"github.com/SkylerLipthay/duktape-go/pipeline"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

type fakeExtractor struct {
	reqs []extract.Request
	err  error
}

func (f *fakeExtractor) Extract(ctx context.Context, req extract.Request) error {
	f.reqs = append(f.reqs, req)
	return f.err
}

func newPipeline(t *testing.T, table macros.Table) (*pipeline.Pipeline, *fakeExtractor) {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.LibraryDir = filepath.Join(root, "duktape")
	cfg.OutputDir = filepath.Join(root, "duktape")
	cfg.BindingsDir = root
	ext := &fakeExtractor{}
	return &pipeline.Pipeline{
		Config:    cfg,
		Table:     table,
		Extractor: ext,
	}, ext
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestRun(t *testing.T) {
	p, ext := newPipeline(t, macros.Duktape)
	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if want := filepath.Join(p.Config.OutputDir, "wrapper.h"); res.Header != want {
		t.Errorf("got header %q but want %q", res.Header, want)
	}
	if want := filepath.Join(p.Config.OutputDir, "wrapper.c"); res.Source != want {
		t.Errorf("got source %q but want %q", res.Source, want)
	}
	header := readFile(t, res.Header)
	if n := len(gentesting.Blocks(header)); n != len(macros.Duktape) {
		t.Errorf("got %d blocks in header but want %d:\n%s", n, len(macros.Duktape), gentesting.NumberLines(header))
	}
	source := readFile(t, res.Source)
	if n := len(gentesting.Blocks(source)); n != len(macros.Duktape) {
		t.Errorf("got %d blocks in source but want %d:\n%s", n, len(macros.Duktape), gentesting.NumberLines(source))
	}
	if !strings.HasPrefix(header, "// Code generated by dukgen. DO NOT EDIT.\n\n#include \"duktape.h\"\n") {
		t.Errorf("header does not start with the library include:\n%s", gentesting.NumberLines(header))
	}
	if !strings.Contains(source, "#include \"wrapper.h\"\n") {
		t.Errorf("source does not include the generated header:\n%s", gentesting.NumberLines(source))
	}
	if want := filepath.Join(p.Config.LibraryDir, "duk_config.h"); res.Config != want {
		t.Errorf("got configuration header %q but want %q", res.Config, want)
	}
	dukConfig := readFile(t, res.Config)
	for _, want := range []string{
		"#include \"duk_config_default.h\"\n",
		"#ifdef DUK_GO_PREVENT_TRACEBACKS\n#undef DUK_USE_TRACEBACKS\n#endif\n",
	} {
		if !strings.Contains(dukConfig, want) {
			t.Errorf("%q cannot be found in configuration header:\n%s", want, gentesting.NumberLines(dukConfig))
		}
	}
	wantFeatures := []string{filepath.Join(p.Config.BindingsDir, "duktape", "features_prevent_tracebacks.go")}
	if diff := cmp.Diff(wantFeatures, res.Features); diff != "" {
		t.Errorf("unexpected feature files (-want +got):\n%s", diff)
	}

	if len(ext.reqs) != 1 {
		t.Fatalf("extractor called %d times but want 1", len(ext.reqs))
	}
	req := ext.reqs[0]
	if req.Header != res.Header {
		t.Errorf("extractor got header %q but want %q", req.Header, res.Header)
	}
	if req.Std != "c99" {
		t.Errorf("extractor got standard %q but want c99", req.Std)
	}
	if err := req.Filter.CheckCoverage(macros.Duktape); err != nil {
		t.Error(err)
	}
	if want := filepath.Join(p.Config.BindingsDir, "duktape"); res.Bindings != want {
		t.Errorf("got bindings %q but want %q", res.Bindings, want)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	p, _ := newPipeline(t, macros.Duktape)
	first, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("%+v", err)
	}
	header, source := readFile(t, first.Header), readFile(t, first.Source)
	second, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if diff := cmp.Diff(header, readFile(t, second.Header)); diff != "" {
		t.Errorf("header changed between two runs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(source, readFile(t, second.Source)); diff != "" {
		t.Errorf("source changed between two runs (-first +second):\n%s", diff)
	}
}

func TestStockConfigIsKept(t *testing.T) {
	p, ext := newPipeline(t, macros.Duktape)
	path := filepath.Join(p.Config.LibraryDir, "duk_config.h")
	if err := os.MkdirAll(p.Config.LibraryDir, 0755); err != nil {
		t.Fatal(err)
	}
	const stock = "/*\n *  duk_config.h configuration header generated by genconfig.py.\n */\n"
	if err := os.WriteFile(path, []byte(stock), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := p.Run(context.Background())
	if got := stageOf(t, err); got != pipeline.StageFeatures {
		t.Errorf("got stage %s but want %s", got, pipeline.StageFeatures)
	}
	if !strings.Contains(err.Error(), "duk_config_default.h") {
		t.Errorf("error %q does not explain where the stock configuration goes", err.Error())
	}
	if got := readFile(t, path); got != stock {
		t.Errorf("stock configuration overwritten:\n%s", got)
	}
	if len(ext.reqs) != 0 {
		t.Errorf("extractor called after a failed stage")
	}
}

func TestManifestDoesNotDependOnCheckout(t *testing.T) {
	p, ext := newPipeline(t, macros.Duktape)
	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("%+v", err)
	}
	m, err := extract.NewManifest(ext.reqs[0])
	if err != nil {
		t.Fatal(err)
	}
	out := &bytes.Buffer{}
	if err := m.Write(out); err != nil {
		t.Fatal(err)
	}
	generator, parser, _ := strings.Cut(out.String(), "PARSER:")
	root := p.Config.BindingsDir
	if strings.Contains(generator, root) {
		t.Errorf("GENERATOR section depends on the checkout directory %s:\n%s", root, generator)
	}
	if !strings.Contains(parser, p.Config.LibraryDir) {
		t.Errorf("PARSER section does not search %s:\n%s", p.Config.LibraryDir, parser)
	}
}

func TestSkipExtract(t *testing.T) {
	p, ext := newPipeline(t, macros.Duktape)
	p.Config.SkipExtract = true
	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if len(ext.reqs) != 0 {
		t.Errorf("extractor called with extraction disabled")
	}
	if res.Bindings != "" {
		t.Errorf("got bindings %q but want none", res.Bindings)
	}
}

func stageOf(t *testing.T, err error) pipeline.Stage {
	t.Helper()
	var stageErr *pipeline.StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("got error %T but want %T: %v", err, stageErr, err)
	}
	return stageErr.Stage
}

func TestTableDefect(t *testing.T) {
	table := macros.Table{
		macros.Func("int", "bar", macros.P("int", "x")),
		macros.Func("int", "bar", macros.P("int", "x")),
	}
	p, ext := newPipeline(t, table)
	_, err := p.Run(context.Background())
	if got := stageOf(t, err); got != pipeline.StageValidate {
		t.Errorf("got stage %s but want %s", got, pipeline.StageValidate)
	}
	if defects := macros.Defects(err); len(defects) != 1 {
		t.Errorf("got %d table defects but want 1: %v", len(defects), err)
	}
	if _, statErr := os.Stat(filepath.Join(p.Config.OutputDir, "wrapper.h")); !os.IsNotExist(statErr) {
		t.Errorf("header written despite a table defect")
	}
	if len(ext.reqs) != 0 {
		t.Errorf("extractor called despite a table defect")
	}
}

func TestEmptyTable(t *testing.T) {
	p, _ := newPipeline(t, nil)
	_, err := p.Run(context.Background())
	if got := stageOf(t, err); got != pipeline.StageValidate {
		t.Errorf("got stage %s but want %s", got, pipeline.StageValidate)
	}
}

func TestWhitelistDrift(t *testing.T) {
	p, _ := newPipeline(t, macros.Table{macros.Func("void", "foo")})
	if err := p.Check(context.Background()); err != nil {
		t.Fatalf("exact rules do not cover the table: %v", err)
	}
	p.Config.FunctionPatterns = []string{"^duk_"}
	err := p.Check(context.Background())
	if got := stageOf(t, err); got != pipeline.StageWhitelist {
		t.Errorf("got stage %s but want %s", got, pipeline.StageWhitelist)
	}
	if !strings.Contains(err.Error(), "foo") {
		t.Errorf("error %q does not name the uncovered function", err.Error())
	}
	p.Config.FunctionPatterns = []string{"("}
	err = p.Check(context.Background())
	if got := stageOf(t, err); got != pipeline.StageWhitelist {
		t.Errorf("got stage %s but want %s", got, pipeline.StageWhitelist)
	}
}

func TestIOFailure(t *testing.T) {
	p, ext := newPipeline(t, macros.Duktape)
	// A file in place of the output directory.
	if err := os.WriteFile(filepath.Join(filepath.Dir(p.Config.OutputDir), "blocker"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	p.Config.OutputDir = filepath.Join(filepath.Dir(p.Config.OutputDir), "blocker")
	_, err := p.Run(context.Background())
	if got := stageOf(t, err); got != pipeline.StageHeader {
		t.Errorf("got stage %s but want %s", got, pipeline.StageHeader)
	}
	if len(ext.reqs) != 0 {
		t.Errorf("extractor called after a failed stage")
	}
}

func TestExtractionFailure(t *testing.T) {
	p, ext := newPipeline(t, macros.Duktape)
	failure := &extract.Failure{Cmd: "c-for-go", Err: errors.New("exit status 1"), Stderr: "wrapper.h:4:1: unknown type duk_context"}
	ext.err = failure
	_, err := p.Run(context.Background())
	if got := stageOf(t, err); got != pipeline.StageExtract {
		t.Errorf("got stage %s but want %s", got, pipeline.StageExtract)
	}
	var got *extract.Failure
	if !errors.As(err, &got) || got != failure {
		t.Errorf("extractor failure not propagated: %v", err)
	}
	if !strings.Contains(err.Error(), "unknown type duk_context") {
		t.Errorf("error %q does not contain the extractor output", err.Error())
	}
}
