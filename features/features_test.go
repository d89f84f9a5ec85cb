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

package features_test

import (
	"go/format"
	"strings"
	"testing"

	"github.com/SkylerLipthay/duktape-go/features"
	"github.com/google/go-cmp/cmp"
)

func TestLookup(t *testing.T) {
	toggle, ok := features.Lookup("prevent-tracebacks")
	if !ok {
		t.Fatal("cannot find prevent-tracebacks")
	}
	if got, want := toggle.Tag(), "duktape_prevent_tracebacks"; got != want {
		t.Errorf("got tag %q but want %q", got, want)
	}
	if _, ok := features.Lookup("jit"); ok {
		t.Errorf("found an unknown feature")
	}
	if diff := cmp.Diff([]string{"prevent-tracebacks"}, features.Names()); diff != "" {
		t.Errorf("unexpected names (-want +got):\n%s", diff)
	}
}

func TestFiles(t *testing.T) {
	files := features.Files("duktape", features.Known)
	if len(files) != len(features.Known) {
		t.Fatalf("got %d files but want %d", len(files), len(features.Known))
	}
	f := files[0]
	if got, want := f.Name(), "features_prevent_tracebacks.go"; got != want {
		t.Errorf("got file name %q but want %q", got, want)
	}
	out := &strings.Builder{}
	if err := f.WriteBindings(out); err != nil {
		t.Fatal(err)
	}
	want := `// Code generated by dukgen. DO NOT EDIT.

//go:build duktape_prevent_tracebacks

package duktape

// #cgo CFLAGS: -DDUK_GO_PREVENT_TRACEBACKS
import "C"
`
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("unexpected file (-want +got):\n%s", diff)
	}
	formatted, err := format.Source([]byte(out.String()))
	if err != nil {
		t.Fatal(err)
	}
	if string(formatted) != out.String() {
		t.Errorf("generated file is not formatted:\n%s", out.String())
	}
}

func TestConfig(t *testing.T) {
	tests := []struct {
		toggles []features.Toggle
		want    string
	}{
		{
			toggles: features.Known,
			want: `// Code generated by dukgen. DO NOT EDIT.

// Wraps the stock Duktape configuration, renamed duk_config_default.h, so that
// build tags can change configuration flags at compile time.

#if !defined(DUK_GO_CONFIG_H_INCLUDED)
#define DUK_GO_CONFIG_H_INCLUDED

#include "duk_config_default.h"

#ifdef DUK_GO_PREVENT_TRACEBACKS
#undef DUK_USE_TRACEBACKS
#endif

#endif
`,
		},
		{
			want: `// Code generated by dukgen. DO NOT EDIT.

// Wraps the stock Duktape configuration, renamed duk_config_default.h, so that
// build tags can change configuration flags at compile time.

#if !defined(DUK_GO_CONFIG_H_INCLUDED)
#define DUK_GO_CONFIG_H_INCLUDED

#include "duk_config_default.h"

#endif
`,
		},
	}
	for i, test := range tests {
		cfg := features.NewConfig(test.toggles)
		if got, want := cfg.Name(), "duk_config.h"; got != want {
			t.Errorf("got file name %q but want %q", got, want)
		}
		out := &strings.Builder{}
		if err := cfg.WriteBindings(out); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(test.want, out.String()); diff != "" {
			t.Errorf("test %d: unexpected configuration header (-want +got):\n%s", i, diff)
		}
	}
}

func TestKnownTogglesChangeConfig(t *testing.T) {
	out := &strings.Builder{}
	if err := features.NewConfig(features.Known).WriteBindings(out); err != nil {
		t.Fatal(err)
	}
	for _, toggle := range features.Known {
		if !strings.Contains(out.String(), "#ifdef "+toggle.Define+"\n") {
			t.Errorf("%s: define %s is not read by the configuration header", toggle.Name, toggle.Define)
		}
		if len(toggle.Undefs) == 0 {
			t.Errorf("%s: toggle does not change any configuration flag", toggle.Name)
		}
	}
}
