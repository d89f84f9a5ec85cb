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

// Package extract runs the binding extractor on the generated header.
//
// The extractor is c-for-go. It is configured with a manifest generated
// from a Request and only exports the declarations accepted by a Filter.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/SkylerLipthay/duktape-go/internal/logutil"
	"github.com/pkg/errors"
)

// Request describes the bindings to extract.
type Request struct {
	// Header is the path of the generated header. It is the only source
	// given to the extractor.
	Header string
	// IncludeDirs are searched for the headers included by Header.
	IncludeDirs []string
	// Std is the C language standard, for example c99.
	Std string
	// Defines are passed to the C parser.
	Defines map[string]string
	// Filter selects the declarations for which bindings are generated.
	Filter *Filter

	// PackageName is the name of the generated Go package.
	PackageName string
	// Description and License are written in the package documentation.
	Description string
	License     string
	// OutDir is the directory in which the package directory is created.
	OutDir string
}

// HeaderInclude returns the name under which the generated package includes the header.
func (r Request) HeaderInclude() string {
	return filepath.Base(r.Header)
}

// PackageDir returns the directory of the generated Go package.
func (r Request) PackageDir() string {
	return filepath.Join(r.OutDir, r.PackageName)
}

// Extractor generates Go bindings from a C header.
type Extractor interface {
	Extract(ctx context.Context, req Request) error
}

// Failure is returned when the extractor rejects the header.
type Failure struct {
	Cmd    string
	Err    error
	Stderr string
}

func (f *Failure) Error() string {
	msg := fmt.Sprintf("binding extractor %q failed: %v", f.Cmd, f.Err)
	if stderr := strings.TrimSpace(f.Stderr); stderr != "" {
		msg += "\n" + stderr
	}
	return msg
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// DefaultCommand is the name of the c-for-go executable.
const DefaultCommand = "c-for-go"

// Command runs c-for-go as an external process.
type Command struct {
	// Path of the executable. DefaultCommand is looked up in PATH if empty.
	Path string
	// Args are passed to the executable before the generated flags.
	Args []string
	// Env is appended to the environment of the current process.
	Env []string
	// Stdout receives the standard output of the extractor if not nil.
	Stdout io.Writer
	// Logger logs the command line. slog.Default is used if nil.
	Logger *slog.Logger
}

var _ Extractor = (*Command)(nil)

func (c *Command) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c *Command) path() string {
	if c.Path != "" {
		return c.Path
	}
	return DefaultCommand
}

// Extract writes the manifest of the request in a temporary file and runs
// the extractor on it.
func (c *Command) Extract(ctx context.Context, req Request) error {
	manifest, err := NewManifest(req)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(req.OutDir, 0755); err != nil {
		return errors.Wrapf(err, "cannot create bindings directory")
	}
	f, err := os.CreateTemp("", req.PackageName+"-*.yml")
	if err != nil {
		return errors.Wrap(err, "cannot create c-for-go manifest")
	}
	defer os.Remove(f.Name())
	rendered := &bytes.Buffer{}
	if err := manifest.Write(rendered); err != nil {
		f.Close()
		return err
	}
	logutil.Trace(ctx, c.logger(), "c-for-go manifest", "path", f.Name(), "manifest", rendered.String())
	if _, err := f.Write(rendered.Bytes()); err != nil {
		f.Close()
		return errors.Wrap(err, "cannot write c-for-go manifest")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "cannot write c-for-go manifest")
	}

	args := append([]string{}, c.Args...)
	args = append(args, "-nostamp", "-out", req.OutDir, f.Name())
	cmd := exec.CommandContext(ctx, c.path(), args...)
	cmd.Env = append(os.Environ(), c.Env...)
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr
	if c.Stdout != nil {
		cmd.Stdout = c.Stdout
	}
	c.logger().DebugContext(ctx, "running binding extractor", "cmd", c.path(), "args", args)
	if err := cmd.Run(); err != nil {
		return &Failure{
			Cmd:    c.path(),
			Err:    err,
			Stderr: stderr.String(),
		}
	}
	return nil
}
